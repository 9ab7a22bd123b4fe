package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationKind selects the mail template
type NotificationKind string

const (
	NotificationReceipt    NotificationKind = "receipt"
	NotificationFailure    NotificationKind = "failure"
	NotificationGiftInvite NotificationKind = "gift_invite"
)

// NotificationJob is published for the mailer worker
type NotificationJob struct {
	Kind          NotificationKind `json:"kind"`
	TransactionID uuid.UUID        `json:"transaction_id"`
	UserID        uuid.UUID        `json:"user_id"`
	To            string           `json:"to,omitempty"`
	Purpose       Purpose          `json:"purpose"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      string           `json:"currency"`
	Status        PaymentStatus    `json:"status"`
	Reason        string           `json:"reason,omitempty"`
	GiftToken     string           `json:"gift_token,omitempty"`
	GiftExpiresAt *time.Time       `json:"gift_expires_at,omitempty"`
	Plan          Plan             `json:"plan,omitempty"`
	Message       string           `json:"message,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ReconciledEvent is broadcast after a transaction reached a terminal state
type ReconciledEvent struct {
	TransactionID uuid.UUID        `json:"transaction_id"`
	UserID        uuid.UUID        `json:"user_id"`
	Purpose       Purpose          `json:"purpose"`
	Status        PaymentStatus    `json:"status"`
	ResolvedBy    ResolutionSource `json:"resolved_by"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      string           `json:"currency"`
	Timestamp     time.Time        `json:"timestamp"`
}
