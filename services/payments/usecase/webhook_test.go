package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	reqctx "github.com/piresc/payrecon/internal/pkg/context"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errDB = errors.New("connection reset by peer")

func webhookEvent(status string) models.WebhookEvent {
	return models.WebhookEvent{
		TransactionID:  "tx_1",
		BillID:         "bill_1",
		ProviderStatus: status,
	}
}

func TestProcessWebhook_IntermediateStatusRecordsTransactionRef(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeOther)

	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "").Return(txn, nil)
	d.repo.EXPECT().AttachProviderTransactionID(gomock.Any(), txn.ID, "tx_1").Return(true, nil)

	err := uc.ProcessWebhook(context.Background(), webhookEvent("processing"))

	assert.NoError(t, err)
}

func TestProcessWebhook_IntermediateStatusWithKnownRef(t *testing.T) {
	tests := []struct {
		name string
		txn  func() *models.PaymentTransaction
		err  error
	}{
		{
			name: "ref already stored",
			txn: func() *models.PaymentTransaction {
				txn := pendingTxn(models.PurposeOther)
				txn.ProviderTransactionID = strPtr("tx_0")
				return txn
			},
		},
		{
			name: "finalized transaction",
			txn: func() *models.PaymentTransaction {
				txn := pendingTxn(models.PurposeOther)
				txn.Status = models.PaymentFailed
				return txn
			},
		},
		{
			name: "unknown bill",
			txn:  func() *models.PaymentTransaction { return nil },
			err:  models.ErrTransactionNotFound,
		},
		{
			name: "lookup error is absorbed",
			txn:  func() *models.PaymentTransaction { return nil },
			err:  errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newTestUC(t)
			d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "").Return(tt.txn(), tt.err)

			assert.NoError(t, uc.ProcessWebhook(context.Background(), webhookEvent("pending")))
		})
	}
}

func TestProcessWebhook_IntermediateStatusWithoutTransactionID(t *testing.T) {
	uc, _ := newTestUC(t)

	err := uc.ProcessWebhook(context.Background(), models.WebhookEvent{BillID: "bill_1", ProviderStatus: "due"})

	assert.NoError(t, err)
}

func TestProcessWebhook_DuplicateDeliveryIsIgnored(t *testing.T) {
	uc, d := newTestUC(t)

	d.guard.EXPECT().MarkDelivery(gomock.Any(), "bill_1:tx_1:PAID", inFlightGuardTTL).Return(false, nil)

	err := uc.ProcessWebhook(context.Background(), webhookEvent("paid"))

	assert.NoError(t, err)
}

func TestProcessWebhook_UnknownTransactionIsAcknowledged(t *testing.T) {
	uc, d := newTestUC(t)

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), "bill_1:tx_1:PAID", time.Minute).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(nil, models.ErrTransactionNotFound)

	err := uc.ProcessWebhook(context.Background(), webhookEvent("PAID"))

	assert.NoError(t, err)
}

func TestProcessWebhook_FinalizedTransactionIsNotTouched(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeAICredits)
	txn.Status = models.PaymentPaid

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), "bill_1:tx_1:FAILED", time.Minute).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)

	err := uc.ProcessWebhook(context.Background(), webhookEvent("FAILED"))

	assert.NoError(t, err)
}

func TestProcessWebhook_PaidGrantsCredits(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeAICredits)

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), "bill_1:tx_1:PAID", time.Minute).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)
	d.expectTx()
	d.tx.EXPECT().
		TryFinalize(gomock.Any(), txn.ID, models.PaymentPaid, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) (bool, error) {
			require.NotNil(t, paidAt)
			assert.Equal(t, fixedNow, *paidAt)
			assert.Equal(t, models.ResolvedByWebhook, patch.ResolvedBy)
			assert.Equal(t, "PAID", patch.ProviderStatus)
			assert.Equal(t, "tx_1", patch.Extra["provider_transaction_id"])
			return true, nil
		})
	d.tx.EXPECT().
		RecordTopup(gomock.Any(), models.CreditTopup{
			UserID:    txn.UserID,
			Kind:      models.CreditKindAI,
			Amount:    38,
			Reference: "payment:" + txn.ID.String(),
		}).
		Return(true, nil)
	d.notifier.EXPECT().
		SendReceipt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job models.NotificationJob) error {
			assert.Equal(t, models.NotificationReceipt, job.Kind)
			assert.Equal(t, "payer@example.com", job.To)
			assert.Equal(t, txn.ID, job.TransactionID)
			return nil
		})
	d.events.EXPECT().
		PublishReconciled(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev models.ReconciledEvent) error {
			assert.Equal(t, models.PaymentPaid, ev.Status)
			assert.Equal(t, models.ResolvedByWebhook, ev.ResolvedBy)
			return nil
		})

	err := uc.ProcessWebhook(context.Background(), webhookEvent("PAID"))

	assert.NoError(t, err)
}

func TestProcessWebhook_ProviderPaidAtIsKept(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeOther)
	paidAt := fixedNow.Add(-5 * time.Minute)
	event := webhookEvent("completed")
	event.PaidAt = &paidAt

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), "bill_1:tx_1:COMPLETED", time.Minute).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)
	d.expectTx()
	d.tx.EXPECT().
		TryFinalize(gomock.Any(), txn.ID, models.PaymentPaid, &paidAt, gomock.Any()).
		Return(true, nil)
	d.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).Return(nil)
	d.events.EXPECT().PublishReconciled(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, uc.ProcessWebhook(context.Background(), event))
}

func TestProcessWebhook_FailureStatuses(t *testing.T) {
	tests := []struct {
		raw    string
		status models.PaymentStatus
		reason string
	}{
		{"declined", models.PaymentFailed, "gateway reported DECLINED"},
		{"Cancelled", models.PaymentFailed, "gateway reported CANCELLED"},
		{"expired", models.PaymentExpired, "gateway reported EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			uc, d := newTestUC(t)
			txn := pendingTxn(models.PurposeSubscription)

			d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			d.guard.EXPECT().ConfirmDelivery(gomock.Any(), gomock.Any(), time.Minute).Return(nil)
			d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)
			d.expectTx()
			d.tx.EXPECT().
				TryFinalize(gomock.Any(), txn.ID, tt.status, (*time.Time)(nil), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ uuid.UUID, _ models.PaymentStatus, _ *time.Time, patch models.AuditMetadata) (bool, error) {
					assert.Equal(t, tt.reason, patch.FailureReason)
					return true, nil
				})
			d.notifier.EXPECT().
				SendFailure(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, job models.NotificationJob) error {
					assert.Equal(t, models.NotificationFailure, job.Kind)
					assert.Equal(t, tt.status, job.Status)
					assert.Equal(t, tt.reason, job.Reason)
					return nil
				})
			d.events.EXPECT().PublishReconciled(gomock.Any(), gomock.Any()).Return(nil)

			assert.NoError(t, uc.ProcessWebhook(context.Background(), webhookEvent(tt.raw)))
		})
	}
}

func TestProcessWebhook_LostRaceAppliesNothing(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeAICredits)

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), "bill_1:tx_1:PAID", time.Minute).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)
	d.expectTx()
	d.tx.EXPECT().TryFinalize(gomock.Any(), txn.ID, models.PaymentPaid, gomock.Any(), gomock.Any()).Return(false, nil)

	assert.NoError(t, uc.ProcessWebhook(context.Background(), webhookEvent("PAID")))
}

func TestProcessWebhook_GuardUnavailableStillProcesses(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeAICredits)

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis: connection refused"))
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)
	d.expectTx()
	d.tx.EXPECT().TryFinalize(gomock.Any(), txn.ID, models.PaymentPaid, gomock.Any(), gomock.Any()).Return(false, nil)

	assert.NoError(t, uc.ProcessWebhook(context.Background(), webhookEvent("PAID")))
}

func TestProcessWebhook_StorageErrorReleasesGuard(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeAICredits)

	d.guard.EXPECT().MarkDelivery(gomock.Any(), "bill_1:tx_1:PAID", gomock.Any()).Return(true, nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)
	d.expectTx()
	d.tx.EXPECT().TryFinalize(gomock.Any(), txn.ID, models.PaymentPaid, gomock.Any(), gomock.Any()).Return(true, nil)
	d.tx.EXPECT().RecordTopup(gomock.Any(), gomock.Any()).Return(false, errDB)
	d.guard.EXPECT().ReleaseDelivery(gomock.Any(), "bill_1:tx_1:PAID").Return(nil)

	err := uc.ProcessWebhook(context.Background(), webhookEvent("PAID"))

	assert.ErrorIs(t, err, errDB)
}

func TestProcessWebhook_LookupErrorReleasesGuard(t *testing.T) {
	uc, d := newTestUC(t)

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(nil, errDB)
	d.guard.EXPECT().ReleaseDelivery(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	err := uc.ProcessWebhook(context.Background(), webhookEvent("PAID"))

	assert.ErrorIs(t, err, errDB)
}

func TestProcessWebhook_InvalidEntitlementLeavesPending(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeSubscription)
	txn.Plan = nil

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), "bill_1:tx_1:PAID", time.Minute).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)

	err := uc.ProcessWebhook(context.Background(), webhookEvent("PAID"))

	assert.NoError(t, err)
}

func TestProcessWebhook_InvalidEntitlementIsLoggedWithRequestID(t *testing.T) {
	uc, d := newTestUC(t)
	core, logs := observer.New(zapcore.InfoLevel)
	uc.logger = &logger.ZapLogger{Logger: zap.New(core)}
	txn := pendingTxn(models.PurposeSubscription)
	txn.Plan = nil

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)

	ctx := reqctx.WithRequestID(context.Background(), "req-webhook-1")
	require.NoError(t, uc.ProcessWebhook(ctx, webhookEvent("PAID")))

	entries := logs.FilterMessage("Paid transaction cannot be dispatched, left pending").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "req-webhook-1", entries[0].ContextMap()["request_id"])
}

func TestProcessWebhook_GiftIssuesAndInvites(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeGift)
	txn.RecipientEmail = strPtr("friend@example.com")
	txn.Message = strPtr("Enjoy")

	var issued *models.GiftSubscription
	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), "bill_1:tx_1:PAID", time.Minute).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)
	d.expectTx()
	d.tx.EXPECT().TryFinalize(gomock.Any(), txn.ID, models.PaymentPaid, gomock.Any(), gomock.Any()).Return(true, nil)
	d.tx.EXPECT().
		CreateGift(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, gift *models.GiftSubscription) (bool, error) {
			issued = gift
			assert.Equal(t, txn.ID, gift.SourceTransactionID)
			assert.Len(t, gift.Token, 64)
			return true, nil
		})
	d.tx.EXPECT().LinkGift(gomock.Any(), txn.ID, gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).Return(nil)
	d.notifier.EXPECT().
		SendGiftInvite(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job models.NotificationJob) error {
			assert.Equal(t, "friend@example.com", job.To)
			assert.Equal(t, issued.Token, job.GiftToken)
			assert.Equal(t, "Enjoy", job.Message)
			assert.Equal(t, models.PlanStarter, job.Plan)
			return nil
		})
	d.events.EXPECT().PublishReconciled(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, uc.ProcessWebhook(context.Background(), webhookEvent("PAID")))
}

func TestProcessWebhook_NotificationFailureDoesNotFail(t *testing.T) {
	uc, d := newTestUC(t)
	txn := pendingTxn(models.PurposeOther)

	d.guard.EXPECT().MarkDelivery(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.guard.EXPECT().ConfirmDelivery(gomock.Any(), "bill_1:tx_1:PAID", time.Minute).Return(nil)
	d.repo.EXPECT().FindByProviderRef(gomock.Any(), "bill_1", "tx_1").Return(txn, nil)
	d.expectTx()
	d.tx.EXPECT().TryFinalize(gomock.Any(), txn.ID, models.PaymentPaid, gomock.Any(), gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().SendReceipt(gomock.Any(), gomock.Any()).Return(errors.New("nsq down"))
	d.events.EXPECT().PublishReconciled(gomock.Any(), gomock.Any()).Return(errors.New("nats down"))

	assert.NoError(t, uc.ProcessWebhook(context.Background(), webhookEvent("PAID")))
}

func TestDeliveryKey(t *testing.T) {
	assert.Equal(t, "bill_1:tx_1:PAID", deliveryKey(webhookEvent(" paid ")))
	assert.Equal(t, "bill_1::FAILED", deliveryKey(models.WebhookEvent{BillID: "bill_1", ProviderStatus: "failed"}))
}
