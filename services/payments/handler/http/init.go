package http

import (
	"github.com/piresc/payrecon/services/payments"
)

// maxWebhookBody caps what is read from a gateway delivery
const maxWebhookBody = 64 << 10

// PaymentsHandler handles HTTP requests for payment operations
type PaymentsHandler struct {
	paymentUC payments.PaymentUC
}

// NewPaymentsHandler creates a new payments HTTP handler
func NewPaymentsHandler(paymentUC payments.PaymentUC) *PaymentsHandler {
	return &PaymentsHandler{
		paymentUC: paymentUC,
	}
}
