package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout_Credits(t *testing.T) {
	uc, d := newTestUC(t)
	userID := uuid.New()

	d.gateway.EXPECT().
		CreateBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.CreateBillRequest) (*models.Bill, error) {
			assert.Equal(t, "20", req.Amount.String())
			assert.Equal(t, "MYR", req.Currency)
			assert.Equal(t, "40 AI credits", req.Description)
			assert.Equal(t, "https://api.example.com/api/v1/payments/webhook", req.CallbackURL)
			_, err := uuid.Parse(req.Reference)
			assert.NoError(t, err)
			return &models.Bill{ID: "bill_9", PaymentURL: "https://pay.example.com/bill_9"}, nil
		})
	d.repo.EXPECT().
		CreatePending(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txn *models.PaymentTransaction) error {
			assert.Equal(t, userID, txn.UserID)
			assert.Equal(t, "bill_9", txn.BillID())
			assert.Equal(t, models.PurposeAICredits, txn.Purpose)
			require.NotNil(t, txn.Credits)
			assert.Equal(t, 40, *txn.Credits)
			assert.Nil(t, txn.Plan)
			assert.Equal(t, "https://pay.example.com/bill_9", txn.Metadata.CheckoutURL)
			return nil
		})

	resp, err := uc.Checkout(context.Background(), userID, models.CheckoutRequest{
		Purpose: models.PurposeAICredits,
		Credits: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, "bill_9", resp.BillID)
	assert.Equal(t, "https://pay.example.com/bill_9", resp.PaymentURL)
	assert.Equal(t, "20", resp.Amount.String())
}

func TestCheckout_YearlyGift(t *testing.T) {
	uc, d := newTestUC(t)

	d.gateway.EXPECT().
		CreateBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.CreateBillRequest) (*models.Bill, error) {
			assert.Equal(t, "190", req.Amount.String())
			assert.Equal(t, "Gift: STARTER plan, yearly", req.Description)
			return &models.Bill{ID: "bill_2"}, nil
		})
	d.repo.EXPECT().
		CreatePending(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txn *models.PaymentTransaction) error {
			require.NotNil(t, txn.RecipientEmail)
			assert.Equal(t, "friend@example.com", *txn.RecipientEmail)
			require.NotNil(t, txn.Message)
			assert.Len(t, *txn.Message, maxGiftMessageLength)
			require.NotNil(t, txn.Interval)
			assert.Equal(t, models.IntervalYearly, *txn.Interval)
			return nil
		})

	_, err := uc.Checkout(context.Background(), uuid.New(), models.CheckoutRequest{
		Purpose:        models.PurposeGift,
		Plan:           models.PlanStarter,
		Interval:       models.IntervalYearly,
		RecipientEmail: " friend@example.com ",
		Message:        strings.Repeat("x", 800),
	})

	require.NoError(t, err)
}

func TestCheckout_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  models.CheckoutRequest
	}{
		{"zero credits", models.CheckoutRequest{Purpose: models.PurposeAICredits}},
		{"too many credits", models.CheckoutRequest{Purpose: models.PurposeRecruiterCVCredits, Credits: maxCreditsPerPurchase + 1}},
		{"unknown plan", models.CheckoutRequest{Purpose: models.PurposeSubscription, Plan: "ENTERPRISE", Interval: models.IntervalMonthly}},
		{"unknown interval", models.CheckoutRequest{Purpose: models.PurposeSubscription, Plan: models.PlanPro, Interval: "WEEKLY"}},
		{"bad recipient", models.CheckoutRequest{Purpose: models.PurposeGift, Plan: models.PlanPro, Interval: models.IntervalMonthly, RecipientEmail: "nope"}},
		{"bad payer", models.CheckoutRequest{Purpose: models.PurposeAICredits, Credits: 1, PayerEmail: "nope"}},
		{"other purpose", models.CheckoutRequest{Purpose: models.PurposeOther}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUC(t)

			_, err := uc.Checkout(context.Background(), uuid.New(), tt.req)

			assert.ErrorIs(t, err, models.ErrInvalidCheckout)
		})
	}
}

func TestCheckout_GatewayError(t *testing.T) {
	uc, d := newTestUC(t)

	d.gateway.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(nil, models.ErrGatewayUnavailable)

	_, err := uc.Checkout(context.Background(), uuid.New(), models.CheckoutRequest{
		Purpose:  models.PurposeSubscription,
		Plan:     models.PlanPro,
		Interval: models.IntervalMonthly,
	})

	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
}

func TestCheckout_RepositoryError(t *testing.T) {
	uc, d := newTestUC(t)

	d.gateway.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(&models.Bill{ID: "bill_3"}, nil)
	d.repo.EXPECT().CreatePending(gomock.Any(), gomock.Any()).Return(errDB)

	_, err := uc.Checkout(context.Background(), uuid.New(), models.CheckoutRequest{
		Purpose:  models.PurposeSubscription,
		Plan:     models.PlanPro,
		Interval: models.IntervalMonthly,
	})

	assert.ErrorIs(t, err, errDB)
}

func TestNewPaymentUC_RequiresDependencies(t *testing.T) {
	_, err := NewPaymentUC(nil, nil, nil, nil, nil, nil, nil)

	assert.Error(t, err)
}
