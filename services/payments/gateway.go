package payments

import (
	"context"

	"github.com/piresc/payrecon/internal/pkg/models"
)

// PaymentGW talks to the external payment gateway
//
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/payrecon/services/payments PaymentGW,NotificationGW,EventGW
type PaymentGW interface {
	CreateBill(ctx context.Context, req models.CreateBillRequest) (*models.Bill, error)
	GetBillStatus(ctx context.Context, billID string) (*models.GatewayStatus, error)
	GetTransactionStatus(ctx context.Context, transactionID string) (*models.GatewayStatus, error)
}

// NotificationGW hands mail jobs to the mailer worker
type NotificationGW interface {
	SendReceipt(ctx context.Context, job models.NotificationJob) error
	SendFailure(ctx context.Context, job models.NotificationJob) error
	SendGiftInvite(ctx context.Context, job models.NotificationJob) error
}

// EventGW broadcasts reconciliation outcomes to other services
type EventGW interface {
	PublishReconciled(ctx context.Context, event models.ReconciledEvent) error
}
