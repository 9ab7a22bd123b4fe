package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionStatus represents valid subscription states
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
)

// Subscription is the single subscription a user may hold
type Subscription struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	UserID             uuid.UUID          `json:"user_id" db:"user_id"`
	Plan               Plan               `json:"plan" db:"plan"`
	Status             SubscriptionStatus `json:"status" db:"status"`
	CurrentPeriodStart time.Time          `json:"current_period_start" db:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end" db:"current_period_end"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end" db:"cancel_at_period_end"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// Period is a subscription entitlement window
type Period struct {
	Start time.Time
	End   time.Time
}

// GiftStatus represents valid gift states
type GiftStatus string

const (
	GiftPending  GiftStatus = "PENDING"
	GiftRedeemed GiftStatus = "REDEEMED"
	GiftExpired  GiftStatus = "EXPIRED"
	GiftCanceled GiftStatus = "CANCELED"
)

// GiftClaimWindow is how long an issued gift can be redeemed
const GiftClaimWindow = 90 * 24 * time.Hour

// GiftSubscription is a prepaid subscription claimable with its token
type GiftSubscription struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	Token               string          `json:"-" db:"token"`
	SourceTransactionID uuid.UUID       `json:"source_transaction_id" db:"source_transaction_id"`
	CreatedByUserID     uuid.UUID       `json:"created_by_user_id" db:"created_by_user_id"`
	RecipientEmail      *string         `json:"recipient_email,omitempty" db:"recipient_email"`
	Message             *string         `json:"message,omitempty" db:"message"`
	Plan                Plan            `json:"plan" db:"plan"`
	Interval            Interval        `json:"interval" db:"billing_interval"`
	Amount              decimal.Decimal `json:"amount" db:"amount"`
	Status              GiftStatus      `json:"status" db:"status"`
	ExpiresAt           time.Time       `json:"expires_at" db:"expires_at"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
}

// CreditTopup is one entry written to the credit ledger
type CreditTopup struct {
	UserID    uuid.UUID  `db:"user_id"`
	Kind      CreditKind `db:"kind"`
	Amount    int        `db:"amount"`
	Reference string     `db:"reference"`
}
