package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/payrecon/internal/pkg/models"
)

// PaymentRepo is the transaction ledger
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/payrecon/services/payments PaymentRepo,LedgerTx,DeliveryGuard
type PaymentRepo interface {
	CreatePending(ctx context.Context, txn *models.PaymentTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error)
	FindByProviderRef(ctx context.Context, billID, transactionID string) (*models.PaymentTransaction, error)
	FindLatestPending(ctx context.Context, userID uuid.UUID) (*models.PaymentTransaction, error)
	AttachProviderTransactionID(ctx context.Context, id uuid.UUID, providerTransactionID string) (bool, error)
	TryFinalize(ctx context.Context, id uuid.UUID, status models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) (bool, error)
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the set of writes that commit atomically with a finalization
type LedgerTx interface {
	TryFinalize(ctx context.Context, id uuid.UUID, status models.PaymentStatus, paidAt *time.Time, patch models.AuditMetadata) (bool, error)
	GetSubscriptionForUpdate(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	UpsertSubscription(ctx context.Context, sub *models.Subscription) (*models.Subscription, error)
	RecordTopup(ctx context.Context, topup models.CreditTopup) (bool, error)
	CreateGift(ctx context.Context, gift *models.GiftSubscription) (bool, error)
	LinkGift(ctx context.Context, transactionID, giftID uuid.UUID) (bool, error)
}

// DeliveryGuard remembers recently seen webhook deliveries. A delivery is
// marked in flight, then confirmed once applied or released when it failed.
type DeliveryGuard interface {
	MarkDelivery(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ConfirmDelivery(ctx context.Context, key string, ttl time.Duration) error
	ReleaseDelivery(ctx context.Context, key string) error
}
