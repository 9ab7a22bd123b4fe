package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
	"github.com/piresc/payrecon/internal/utils"
)

// Webhook receives gateway status deliveries. It acknowledges everything it
// cannot act on and only fails when the ledger could not be written, so the
// gateway redelivers.
func (h *PaymentsHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()
	txn := nrpkg.FromEchoContext(c)
	if txn != nil {
		txn.SetName("Payments.Webhook")
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read webhook body", logger.Err(err))
		return c.JSON(http.StatusOK, models.WebhookReceived)
	}

	var payload models.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.WarnCtx(ctx, "Malformed webhook payload acknowledged",
			logger.Int("body_size", len(body)),
			logger.Err(err))
		return c.JSON(http.StatusOK, models.WebhookReceived)
	}

	event, ok := payload.Normalize()
	if !ok {
		logger.WarnCtx(ctx, "Webhook without transaction or bill id acknowledged",
			logger.String("event", payload.Event))
		return c.JSON(http.StatusOK, models.WebhookReceived)
	}

	if err := h.paymentUC.ProcessWebhook(ctx, event); err != nil {
		logger.ErrorCtx(ctx, "Failed to process webhook",
			logger.String("bill_id", event.BillID),
			logger.String("provider_transaction_id", event.TransactionID),
			logger.Err(err))
		if txn != nil {
			txn.NoticeError(err)
		}
		return utils.InternalServerErrorResponse(c, "")
	}

	return c.JSON(http.StatusOK, models.WebhookReceived)
}
