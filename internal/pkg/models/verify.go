package models

import "github.com/google/uuid"

// VerifyOutcome is what the verification endpoint reports to the client
type VerifyOutcome string

const (
	VerifyNoPending   VerifyOutcome = "no_pending"
	VerifyPending     VerifyOutcome = "pending"
	VerifyCheckFailed VerifyOutcome = "check_failed"
	VerifySuccess     VerifyOutcome = "success"
)

// VerifyResult is the body of the verification response
type VerifyResult struct {
	Outcome          VerifyOutcome `json:"status"`
	TransactionID    *uuid.UUID    `json:"transaction_id,omitempty"`
	Purpose          Purpose       `json:"purpose,omitempty"`
	ProviderStatus   string        `json:"provider_status,omitempty"`
	AlreadyProcessed bool          `json:"already_processed,omitempty"`
}

// WebhookAck is the fixed acknowledgement returned to the gateway
type WebhookAck struct {
	Status string `json:"status"`
}

// WebhookReceived is the only body the webhook endpoint ever sends after authentication
var WebhookReceived = WebhookAck{Status: "received"}

// ReconcileResult reports what a single reconciliation attempt did
type ReconcileResult struct {
	Applied       bool
	Status        PaymentStatus
	Transaction   *PaymentTransaction
	Gift          *GiftSubscription
	Subscription  *Subscription
	CreditsGrant  int
	BundleCredits int
}
