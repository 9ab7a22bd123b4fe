package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
)

// VerifyLatest asks the gateway about the caller's latest pending payment
// and reconciles it when the gateway says it is paid
func (uc *paymentUC) VerifyLatest(ctx context.Context, userID uuid.UUID) (*models.VerifyResult, error) {
	txn, err := uc.repo.FindLatestPending(ctx, userID)
	if errors.Is(err, models.ErrNoPendingPayment) {
		return &models.VerifyResult{Outcome: models.VerifyNoPending}, nil
	}
	if err != nil {
		return nil, err
	}

	id := txn.ID
	res := &models.VerifyResult{TransactionID: &id, Purpose: txn.Purpose}

	status, providerTxnID := uc.lookupStatus(ctx, txn)
	if status == nil {
		res.Outcome = models.VerifyCheckFailed
		return res, nil
	}
	res.ProviderStatus = status.Status

	if !isPaid(status) {
		res.Outcome = models.VerifyPending
		return res, nil
	}

	result, err := uc.reconcile(ctx, txn, finalization{
		status:         models.PaymentPaid,
		source:         models.ResolvedByPoll,
		providerStatus: status.Status,
		providerTxnID:  providerTxnID,
		paidAt:         status.PaidAt,
	})
	if err != nil {
		return nil, err
	}

	res.Outcome = models.VerifySuccess
	res.AlreadyProcessed = !result.Applied
	return res, nil
}

// lookupStatus tries the bill first and the transaction second. The first
// answer that says paid wins; otherwise the last answer is returned. nil
// means no lookup could be performed.
func (uc *paymentUC) lookupStatus(ctx context.Context, txn *models.PaymentTransaction) (*models.GatewayStatus, string) {
	var last *models.GatewayStatus

	if billID := txn.BillID(); billID != "" {
		status, err := uc.gateway.GetBillStatus(ctx, billID)
		if err != nil {
			uc.logger.Ctx(ctx).Warn("Bill status lookup failed",
				logger.UUID("transaction_id", txn.ID),
				logger.String("bill_id", billID),
				logger.Err(err))
		} else {
			if isPaid(status) {
				return status, ""
			}
			last = status
		}
	}

	if ref := txn.TransactionRef(); ref != "" {
		status, err := uc.gateway.GetTransactionStatus(ctx, ref)
		if err != nil {
			uc.logger.Ctx(ctx).Warn("Transaction status lookup failed",
				logger.UUID("transaction_id", txn.ID),
				logger.String("provider_transaction_id", ref),
				logger.Err(err))
		} else {
			if isPaid(status) {
				return status, ref
			}
			last = status
		}
	}

	return last, ""
}

func isPaid(status *models.GatewayStatus) bool {
	if status.IsPaid {
		return true
	}
	outcome, _ := models.MapProviderStatus(status.Status)
	return outcome == models.OutcomeSuccess
}
