package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	reqctx "github.com/piresc/payrecon/internal/pkg/context"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
)

// ProcessWebhook applies one authenticated gateway delivery. Only storage
// failures are returned; every business outcome is logged and absorbed.
func (uc *paymentUC) ProcessWebhook(ctx context.Context, event models.WebhookEvent) error {
	outcome, status := models.MapProviderStatus(event.ProviderStatus)

	fields := []logger.Field{
		logger.String("bill_id", event.BillID),
		logger.String("provider_transaction_id", event.TransactionID),
		logger.String("provider_status", event.ProviderStatus),
		logger.String("outcome", outcome.String()),
	}
	nrpkg.AddAttribute(ctx, "payment.outcome", outcome.String())

	if outcome == models.OutcomeNeither {
		uc.logger.Ctx(ctx).Info("Webhook carries an intermediate status, nothing to finalize", fields...)
		uc.rememberProviderRef(ctx, event)
		return nil
	}

	key := deliveryKey(event)
	held := false
	if uc.guard != nil {
		first, err := uc.guard.MarkDelivery(ctx, key, inFlightGuardTTL)
		switch {
		case err != nil:
			uc.logger.Ctx(ctx).Warn("Delivery guard unavailable, processing anyway", append(fields, logger.Err(err))...)
		case !first:
			uc.logger.Ctx(ctx).Info("Duplicate webhook delivery ignored", fields...)
			return nil
		default:
			held = true
		}
	}

	err := uc.applyWebhook(ctx, event, outcome, status)
	if held {
		uc.settleDelivery(ctx, key, err, fields)
	}
	return err
}

// settleDelivery keeps the guard key for the full TTL once the delivery was
// applied and drops it when it failed, so the gateway's redelivery is
// processed. The request context may already be canceled by a gateway that
// hung up, so Redis is called on a detached one.
func (uc *paymentUC) settleDelivery(ctx context.Context, key string, applyErr error, fields []logger.Field) {
	gctx, cancel := reqctx.DetachWithTimeout(ctx, guardSettleTimeout)
	defer cancel()

	if applyErr != nil {
		if err := uc.guard.ReleaseDelivery(gctx, key); err != nil {
			uc.logger.Ctx(ctx).Warn("Failed to release delivery guard", append(fields, logger.Err(err))...)
		}
		return
	}
	if err := uc.guard.ConfirmDelivery(gctx, key, uc.guardTTL()); err != nil {
		uc.logger.Ctx(ctx).Warn("Failed to confirm delivery guard", append(fields, logger.Err(err))...)
	}
}

// rememberProviderRef stores the gateway transaction id carried by an
// intermediate delivery on the pending row it belongs to, so the poller can
// also look the payment up by transaction. Failures are logged only.
func (uc *paymentUC) rememberProviderRef(ctx context.Context, event models.WebhookEvent) {
	if event.BillID == "" || event.TransactionID == "" {
		return
	}
	txn, err := uc.repo.FindByProviderRef(ctx, event.BillID, "")
	if err != nil {
		if !errors.Is(err, models.ErrTransactionNotFound) {
			uc.logger.Ctx(ctx).Warn("Failed to look up transaction for provider reference",
				logger.String("bill_id", event.BillID), logger.Err(err))
		}
		return
	}
	if txn.Status.IsTerminal() || txn.TransactionRef() != "" {
		return
	}

	attached, err := uc.repo.AttachProviderTransactionID(ctx, txn.ID, event.TransactionID)
	if err != nil {
		uc.logger.Ctx(ctx).Warn("Failed to record provider transaction id",
			logger.UUID("transaction_id", txn.ID),
			logger.String("provider_transaction_id", event.TransactionID),
			logger.Err(err))
		return
	}
	if attached {
		uc.logger.Ctx(ctx).Info("Provider transaction id recorded",
			logger.UUID("transaction_id", txn.ID),
			logger.String("provider_transaction_id", event.TransactionID))
	}
}

func (uc *paymentUC) applyWebhook(ctx context.Context, event models.WebhookEvent, outcome models.Outcome, status models.PaymentStatus) error {
	txn, err := uc.repo.FindByProviderRef(ctx, event.BillID, event.TransactionID)
	if errors.Is(err, models.ErrTransactionNotFound) {
		uc.logger.Ctx(ctx).Warn("Webhook for unknown transaction acknowledged",
			logger.String("bill_id", event.BillID),
			logger.String("provider_transaction_id", event.TransactionID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up transaction: %w", err)
	}

	if txn.Status.IsTerminal() {
		uc.logger.Ctx(ctx).Info("Webhook for finalized transaction ignored",
			logger.UUID("transaction_id", txn.ID),
			logger.String("status", string(txn.Status)))
		return nil
	}

	f := finalization{
		status:         status,
		source:         models.ResolvedByWebhook,
		providerStatus: event.ProviderStatus,
		providerTxnID:  event.TransactionID,
	}
	if outcome == models.OutcomeSuccess {
		f.paidAt = event.PaidAt
	} else {
		f.failureReason = "gateway reported " + strings.ToUpper(strings.TrimSpace(event.ProviderStatus))
	}

	_, err = uc.reconcile(ctx, txn, f)
	if errors.Is(err, models.ErrUnknownPurpose) || errors.Is(err, models.ErrInvalidEntitlement) {
		uc.logger.Ctx(ctx).Error("Paid transaction cannot be dispatched, left pending",
			logger.UUID("transaction_id", txn.ID),
			logger.Err(err))
		return nil
	}
	return err
}

func deliveryKey(event models.WebhookEvent) string {
	return fmt.Sprintf("%s:%s:%s", event.BillID, event.TransactionID,
		strings.ToUpper(strings.TrimSpace(event.ProviderStatus)))
}
