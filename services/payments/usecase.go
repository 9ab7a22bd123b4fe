package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/payrecon/internal/pkg/models"
)

// PaymentUC confirms payments and applies their entitlements
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/payrecon/services/payments PaymentUC
type PaymentUC interface {
	Checkout(ctx context.Context, userID uuid.UUID, req models.CheckoutRequest) (*models.CheckoutResponse, error)
	ProcessWebhook(ctx context.Context, event models.WebhookEvent) error
	VerifyLatest(ctx context.Context, userID uuid.UUID) (*models.VerifyResult, error)
}
