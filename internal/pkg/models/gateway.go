package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is the internal tri-state a provider status collapses to
type Outcome int

const (
	OutcomeNeither Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeFailure:
		return "FAILURE"
	default:
		return "NEITHER"
	}
}

var providerStatusTable = map[string]PaymentStatus{
	"PAID":      PaymentPaid,
	"SUCCESS":   PaymentPaid,
	"SUCCEEDED": PaymentPaid,
	"COMPLETED": PaymentPaid,
	"SETTLED":   PaymentPaid,
	"CAPTURED":  PaymentPaid,

	"DECLINED":  PaymentFailed,
	"FAILED":    PaymentFailed,
	"FAILURE":   PaymentFailed,
	"CANCELED":  PaymentFailed,
	"CANCELLED": PaymentFailed,
	"REJECTED":  PaymentFailed,
	"VOIDED":    PaymentFailed,
	"ERROR":     PaymentFailed,

	"EXPIRED":   PaymentExpired,
	"TIMEOUT":   PaymentExpired,
	"TIMED_OUT": PaymentExpired,
}

// MapProviderStatus maps a raw gateway status to an outcome and the ledger
// status a finalization should write. Unknown and intermediate statuses map
// to OutcomeNeither with PaymentPending.
func MapProviderStatus(raw string) (Outcome, PaymentStatus) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")

	status, ok := providerStatusTable[key]
	switch {
	case !ok:
		return OutcomeNeither, PaymentPending
	case status == PaymentPaid:
		return OutcomeSuccess, PaymentPaid
	default:
		return OutcomeFailure, status
	}
}

// GatewayStatus is the normalized answer of a bill or transaction status lookup
type GatewayStatus struct {
	Status string     `json:"status"`
	IsPaid bool       `json:"is_paid"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

// WebhookPayload is the body the gateway posts on every status change
type WebhookPayload struct {
	Event       string              `json:"event"`
	Transaction *WebhookTransaction `json:"transaction"`
	Bill        *WebhookBill        `json:"bill"`
}

// WebhookTransaction is the transaction descriptor inside a webhook delivery
type WebhookTransaction struct {
	ID     string     `json:"id"`
	BillID string     `json:"bill_id"`
	Status string     `json:"status"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

// WebhookBill is the bill descriptor inside a webhook delivery
type WebhookBill struct {
	ID     string     `json:"id"`
	Status string     `json:"status"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

// WebhookEvent is a delivery reduced to what reconciliation needs
type WebhookEvent struct {
	TransactionID  string
	BillID         string
	ProviderStatus string
	PaidAt         *time.Time
}

// Normalize extracts the ids and status from the nested descriptors.
// ok is false when the payload carries no usable id.
func (p *WebhookPayload) Normalize() (WebhookEvent, bool) {
	var ev WebhookEvent
	if p.Transaction != nil {
		ev.TransactionID = strings.TrimSpace(p.Transaction.ID)
		ev.BillID = strings.TrimSpace(p.Transaction.BillID)
		ev.ProviderStatus = p.Transaction.Status
		ev.PaidAt = p.Transaction.PaidAt
	}
	if p.Bill != nil {
		if ev.BillID == "" {
			ev.BillID = strings.TrimSpace(p.Bill.ID)
		}
		if ev.ProviderStatus == "" {
			ev.ProviderStatus = p.Bill.Status
		}
		if ev.PaidAt == nil {
			ev.PaidAt = p.Bill.PaidAt
		}
	}
	return ev, ev.TransactionID != "" || ev.BillID != ""
}

// CreateBillRequest asks the gateway to open a bill the user is redirected to
type CreateBillRequest struct {
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	PayerEmail  string          `json:"payer_email,omitempty"`
	CallbackURL string          `json:"callback_url"`
	RedirectURL string          `json:"redirect_url"`
}

// Bill is the gateway's answer to CreateBillRequest
type Bill struct {
	ID         string `json:"id"`
	PaymentURL string `json:"payment_url"`
	Status     string `json:"status"`
}
