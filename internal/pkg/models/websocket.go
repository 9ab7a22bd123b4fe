package models

import "encoding/json"

// WebSocket event names pushed to payment status subscribers
const (
	EventPaymentReconciled = "payment_reconciled"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}
