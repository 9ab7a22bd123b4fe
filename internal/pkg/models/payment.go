package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the ledger state of a payment attempt
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentExpired PaymentStatus = "EXPIRED"
)

// IsTerminal reports whether the status can no longer change
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentPaid || s == PaymentFailed || s == PaymentExpired
}

// Purpose classifies what a payment buys
type Purpose string

const (
	PurposeAICredits          Purpose = "AI_CREDITS"
	PurposeRecruiterCVCredits Purpose = "RECRUITER_CV_CREDITS"
	PurposeSubscription       Purpose = "SUBSCRIPTION"
	PurposeGift               Purpose = "GIFT"
	PurposeOther              Purpose = "OTHER"
)

// Plan is a subscription tier
type Plan string

const (
	PlanStarter Plan = "STARTER"
	PlanPro     Plan = "PRO"
	PlanGrowth  Plan = "GROWTH"
)

// Valid reports whether p is a known plan
func (p Plan) Valid() bool {
	switch p {
	case PlanStarter, PlanPro, PlanGrowth:
		return true
	}
	return false
}

// Interval is a billing interval
type Interval string

const (
	IntervalMonthly Interval = "MONTHLY"
	IntervalYearly  Interval = "YEARLY"
)

// Months returns the number of calendar months the interval covers, 0 if unknown
func (i Interval) Months() int {
	switch i {
	case IntervalMonthly:
		return 1
	case IntervalYearly:
		return 12
	}
	return 0
}

// PaymentTransaction is one payment attempt against the gateway
type PaymentTransaction struct {
	ID                    uuid.UUID       `json:"id" db:"id"`
	UserID                uuid.UUID       `json:"user_id" db:"user_id"`
	Provider              string          `json:"provider" db:"provider"`
	ProviderBillID        *string         `json:"provider_bill_id,omitempty" db:"provider_bill_id"`
	ProviderTransactionID *string         `json:"provider_transaction_id,omitempty" db:"provider_transaction_id"`
	Purpose               Purpose         `json:"purpose" db:"purpose"`
	Plan                  *Plan           `json:"plan,omitempty" db:"plan"`
	Interval              *Interval       `json:"interval,omitempty" db:"billing_interval"`
	Credits               *int            `json:"credits,omitempty" db:"credits"`
	RecipientEmail        *string         `json:"recipient_email,omitempty" db:"recipient_email"`
	Message               *string         `json:"message,omitempty" db:"message"`
	PayerEmail            *string         `json:"payer_email,omitempty" db:"payer_email"`
	Amount                decimal.Decimal `json:"amount" db:"amount"`
	Currency              string          `json:"currency" db:"currency"`
	Status                PaymentStatus   `json:"status" db:"status"`
	GiftID                *uuid.UUID      `json:"gift_id,omitempty" db:"gift_id"`
	Metadata              AuditMetadata   `json:"metadata" db:"metadata"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at" db:"updated_at"`
	PaidAt                *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
}

// BillID returns the provider bill id or an empty string
func (t *PaymentTransaction) BillID() string {
	if t.ProviderBillID == nil {
		return ""
	}
	return *t.ProviderBillID
}

// TransactionRef returns the provider transaction id or an empty string
func (t *PaymentTransaction) TransactionRef() string {
	if t.ProviderTransactionID == nil {
		return ""
	}
	return *t.ProviderTransactionID
}

// CheckoutRequest is the body of a checkout call
type CheckoutRequest struct {
	Purpose        Purpose  `json:"purpose"`
	Plan           Plan     `json:"plan,omitempty"`
	Interval       Interval `json:"interval,omitempty"`
	Credits        int      `json:"credits,omitempty"`
	RecipientEmail string   `json:"recipient_email,omitempty"`
	Message        string   `json:"message,omitempty"`
	PayerEmail     string   `json:"payer_email,omitempty"`
}

// CheckoutResponse is returned after a pending transaction was opened at the gateway
type CheckoutResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	BillID        string          `json:"bill_id"`
	PaymentURL    string          `json:"payment_url"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}
