package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
	"github.com/piresc/payrecon/services/payments"
)

// finalization describes the terminal transition one confirmation path wants
type finalization struct {
	status         models.PaymentStatus
	source         models.ResolutionSource
	providerStatus string
	providerTxnID  string
	paidAt         *time.Time
	failureReason  string
}

func (f finalization) patch() models.AuditMetadata {
	patch := models.NewAuditMetadata()
	patch.ResolvedBy = f.source
	patch.ProviderStatus = f.providerStatus
	patch.ProviderPaidAt = f.paidAt
	patch.FailureReason = f.failureReason
	if f.providerTxnID != "" {
		patch.SetExtra(models.MetadataKeyProviderTransactionID, f.providerTxnID)
	}
	return patch
}

// reconcile flips txn to its terminal status and, for a payment, applies the
// entitlement in the same database transaction. Only the caller that wins the
// status flip applies anything; everyone else gets Applied=false.
func (uc *paymentUC) reconcile(ctx context.Context, txn *models.PaymentTransaction, f finalization) (*models.ReconcileResult, error) {
	var entitlement models.Entitlement
	if f.status == models.PaymentPaid {
		var err error
		if entitlement, err = txn.Entitlement(); err != nil {
			return nil, err
		}
	}

	now := uc.now().UTC()
	var paidAt *time.Time
	if f.status == models.PaymentPaid {
		paidAt = &now
		if f.paidAt != nil {
			paidAt = f.paidAt
		}
	}

	result := &models.ReconcileResult{Status: f.status, Transaction: txn}
	err := nrpkg.WithSegment(ctx, "Payments.Reconcile", func() error {
		return uc.repo.WithinTx(ctx, func(tx payments.LedgerTx) error {
			won, err := tx.TryFinalize(ctx, txn.ID, f.status, paidAt, f.patch())
			if err != nil {
				return err
			}
			if !won {
				return nil
			}
			result.Applied = true
			if entitlement == nil {
				return nil
			}
			return uc.dispatch(ctx, tx, txn, entitlement, now, result)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile transaction %s: %w", txn.ID, err)
	}

	if !result.Applied {
		uc.logger.Ctx(ctx).Info("Transaction already finalized",
			logger.UUID("transaction_id", txn.ID),
			logger.String("resolved_by", string(f.source)))
		return result, nil
	}

	txn.Status = f.status
	txn.PaidAt = paidAt
	uc.logger.Ctx(ctx).Info("Transaction finalized",
		logger.UUID("transaction_id", txn.ID),
		logger.UUID("user_id", txn.UserID),
		logger.String("purpose", string(txn.Purpose)),
		logger.String("status", string(f.status)),
		logger.String("resolved_by", string(f.source)),
		logger.String("provider_status", f.providerStatus))

	uc.afterCommit(ctx, txn, f, result)
	return result, nil
}

func (uc *paymentUC) dispatch(ctx context.Context, tx payments.LedgerTx, txn *models.PaymentTransaction, entitlement models.Entitlement, now time.Time, result *models.ReconcileResult) error {
	switch e := entitlement.(type) {
	case models.CreditGrant:
		return uc.grantCredits(ctx, tx, txn, e, result)
	case models.SubscriptionRenewal:
		return uc.renewSubscription(ctx, tx, txn, e, now, result)
	case models.GiftPurchase:
		return uc.issueGift(ctx, tx, txn, e, now, result)
	case models.NoEntitlement:
		return nil
	default:
		return fmt.Errorf("%w: %T", models.ErrUnknownPurpose, entitlement)
	}
}

func (uc *paymentUC) grantCredits(ctx context.Context, tx payments.LedgerTx, txn *models.PaymentTransaction, grant models.CreditGrant, result *models.ReconcileResult) error {
	credits := grant.Credits
	if credits <= 0 {
		credits = uc.creditsFor(grant.Kind, txn.Amount)
	}
	if credits <= 0 {
		uc.logger.Ctx(ctx).Warn("Paid amount buys no credits",
			logger.UUID("transaction_id", txn.ID),
			logger.String("amount", txn.Amount.String()))
		return nil
	}

	granted, err := tx.RecordTopup(ctx, models.CreditTopup{
		UserID:    txn.UserID,
		Kind:      grant.Kind,
		Amount:    credits,
		Reference: "payment:" + txn.ID.String(),
	})
	if err != nil {
		return err
	}
	if granted {
		result.CreditsGrant = credits
	}
	return nil
}

func (uc *paymentUC) renewSubscription(ctx context.Context, tx payments.LedgerTx, txn *models.PaymentTransaction, renewal models.SubscriptionRenewal, now time.Time, result *models.ReconcileResult) error {
	existing, err := tx.GetSubscriptionForUpdate(ctx, txn.UserID)
	if err != nil {
		return err
	}

	period := ExtendPeriod(existing, renewal.Interval.Months(), now)
	sub := &models.Subscription{
		UserID:             txn.UserID,
		Plan:               renewal.Plan,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: period.Start,
		CurrentPeriodEnd:   period.End,
		CancelAtPeriodEnd:  false,
	}
	if existing != nil {
		sub.ID = existing.ID
	}

	saved, err := tx.UpsertSubscription(ctx, sub)
	if err != nil {
		return err
	}
	result.Subscription = saved

	bundle := uc.bundleCredits(renewal)
	if bundle == 0 {
		return nil
	}
	granted, err := tx.RecordTopup(ctx, models.CreditTopup{
		UserID:    txn.UserID,
		Kind:      uc.bundleCreditKind(),
		Amount:    bundle,
		Reference: fmt.Sprintf("subscription:%s:%s", saved.ID, saved.CurrentPeriodEnd.UTC().Format(time.RFC3339)),
	})
	if err != nil {
		return err
	}
	if granted {
		result.BundleCredits = bundle
	}
	return nil
}

func (uc *paymentUC) issueGift(ctx context.Context, tx payments.LedgerTx, txn *models.PaymentTransaction, purchase models.GiftPurchase, now time.Time, result *models.ReconcileResult) error {
	if txn.GiftID != nil {
		uc.logger.Ctx(ctx).Info("Gift already issued",
			logger.UUID("transaction_id", txn.ID),
			logger.UUID("gift_id", *txn.GiftID))
		return nil
	}

	token, err := NewGiftToken(uc.random)
	if err != nil {
		return err
	}
	gift := IssueGift(txn, purchase, token, now)

	created, err := tx.CreateGift(ctx, gift)
	if err != nil {
		return err
	}
	if !created {
		uc.logger.Ctx(ctx).Warn("Gift for transaction exists, skipping issuance", logger.UUID("transaction_id", txn.ID))
		return nil
	}

	linked, err := tx.LinkGift(ctx, txn.ID, gift.ID)
	if err != nil {
		return err
	}
	if !linked {
		return fmt.Errorf("%w: %s", models.ErrGiftAlreadyIssued, txn.ID)
	}

	txn.GiftID = &gift.ID
	result.Gift = gift
	return nil
}

// afterCommit sends notifications and the reconciled event without holding
// up the caller. Failures are logged and never touch the ledger.
func (uc *paymentUC) afterCommit(ctx context.Context, txn *models.PaymentTransaction, f finalization, result *models.ReconcileResult) {
	bg := nrpkg.NewBackgroundContext(ctx)
	snapshot := *txn

	uc.spawn(func() {
		ctx, cancel := context.WithTimeout(bg, postCommitTimeout)
		defer cancel()

		uc.notify(ctx, &snapshot, f, result)

		if uc.events == nil {
			return
		}
		event := models.ReconciledEvent{
			TransactionID: snapshot.ID,
			UserID:        snapshot.UserID,
			Purpose:       snapshot.Purpose,
			Status:        f.status,
			ResolvedBy:    f.source,
			Amount:        snapshot.Amount,
			Currency:      snapshot.Currency,
			Timestamp:     uc.now().UTC(),
		}
		if err := uc.events.PublishReconciled(ctx, event); err != nil {
			uc.logger.Ctx(ctx).Warn("Failed to publish reconciled event",
				logger.UUID("transaction_id", snapshot.ID),
				logger.Err(err))
		}
	})
}

func (uc *paymentUC) notify(ctx context.Context, txn *models.PaymentTransaction, f finalization, result *models.ReconcileResult) {
	job := models.NotificationJob{
		TransactionID: txn.ID,
		UserID:        txn.UserID,
		Purpose:       txn.Purpose,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		Status:        f.status,
		CreatedAt:     uc.now().UTC(),
	}
	if txn.PayerEmail != nil {
		job.To = *txn.PayerEmail
	}

	if f.status != models.PaymentPaid {
		job.Kind = models.NotificationFailure
		job.Reason = f.failureReason
		uc.logNotifyError(ctx, txn, job.Kind, uc.notifier.SendFailure(ctx, job))
		return
	}

	job.Kind = models.NotificationReceipt
	uc.logNotifyError(ctx, txn, job.Kind, uc.notifier.SendReceipt(ctx, job))

	gift := result.Gift
	if gift == nil || gift.RecipientEmail == nil {
		return
	}
	invite := job
	invite.Kind = models.NotificationGiftInvite
	invite.To = *gift.RecipientEmail
	invite.GiftToken = gift.Token
	invite.GiftExpiresAt = &gift.ExpiresAt
	invite.Plan = gift.Plan
	if gift.Message != nil {
		invite.Message = *gift.Message
	}
	uc.logNotifyError(ctx, txn, invite.Kind, uc.notifier.SendGiftInvite(ctx, invite))
}

func (uc *paymentUC) logNotifyError(ctx context.Context, txn *models.PaymentTransaction, kind models.NotificationKind, err error) {
	if err == nil {
		return
	}
	uc.logger.Ctx(ctx).Warn("Failed to queue notification",
		logger.UUID("transaction_id", txn.ID),
		logger.String("kind", string(kind)),
		logger.Err(err))
}
