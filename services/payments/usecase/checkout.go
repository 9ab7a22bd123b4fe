package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/piresc/payrecon/internal/utils"
	"github.com/shopspring/decimal"
)

const maxGiftMessageLength = 500

// Checkout prices the request, opens a bill at the gateway and records the
// pending transaction the confirmation paths will later resolve
func (uc *paymentUC) Checkout(ctx context.Context, userID uuid.UUID, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	amount, err := uc.quote(&req)
	if err != nil {
		return nil, err
	}

	txnID := uuid.New()
	bill, err := uc.gateway.CreateBill(ctx, models.CreateBillRequest{
		Reference:   txnID.String(),
		Amount:      amount,
		Currency:    uc.cfg.Pricing.Currency,
		Description: describe(req),
		PayerEmail:  req.PayerEmail,
		CallbackURL: uc.cfg.Gateway.CallbackURL,
		RedirectURL: uc.cfg.Gateway.RedirectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	txn := &models.PaymentTransaction{
		ID:             txnID,
		UserID:         userID,
		Provider:       uc.cfg.Gateway.Provider,
		ProviderBillID: &bill.ID,
		Purpose:        req.Purpose,
		Amount:         amount,
		Currency:       uc.cfg.Pricing.Currency,
		Metadata:       models.NewAuditMetadata(),
	}
	txn.Metadata.CheckoutURL = bill.PaymentURL
	switch req.Purpose {
	case models.PurposeAICredits, models.PurposeRecruiterCVCredits:
		credits := req.Credits
		txn.Credits = &credits
	case models.PurposeSubscription, models.PurposeGift:
		plan, interval := req.Plan, req.Interval
		txn.Plan = &plan
		txn.Interval = &interval
	}
	if req.RecipientEmail != "" {
		txn.RecipientEmail = &req.RecipientEmail
	}
	if req.Message != "" {
		txn.Message = &req.Message
	}
	if req.PayerEmail != "" {
		txn.PayerEmail = &req.PayerEmail
	}

	if err := uc.repo.CreatePending(ctx, txn); err != nil {
		return nil, err
	}

	uc.logger.Ctx(ctx).Info("Checkout opened",
		logger.UUID("transaction_id", txn.ID),
		logger.UUID("user_id", userID),
		logger.String("purpose", string(req.Purpose)),
		logger.String("bill_id", bill.ID),
		logger.String("amount", amount.String()))

	return &models.CheckoutResponse{
		TransactionID: txn.ID,
		BillID:        bill.ID,
		PaymentURL:    bill.PaymentURL,
		Amount:        amount,
		Currency:      txn.Currency,
	}, nil
}

// quote validates req and returns its price. It normalizes req in place.
func (uc *paymentUC) quote(req *models.CheckoutRequest) (decimal.Decimal, error) {
	req.RecipientEmail = strings.TrimSpace(req.RecipientEmail)
	req.PayerEmail = strings.TrimSpace(req.PayerEmail)
	if req.PayerEmail != "" && !utils.IsValidEmail(req.PayerEmail) {
		return decimal.Zero, fmt.Errorf("%w: invalid payer email", models.ErrInvalidCheckout)
	}

	switch req.Purpose {
	case models.PurposeAICredits, models.PurposeRecruiterCVCredits:
		if req.Credits <= 0 || req.Credits > maxCreditsPerPurchase {
			return decimal.Zero, fmt.Errorf("%w: credits must be between 1 and %d", models.ErrInvalidCheckout, maxCreditsPerPurchase)
		}
		kind := models.CreditKindAI
		if req.Purpose == models.PurposeRecruiterCVCredits {
			kind = models.CreditKindRecruiterCV
		}
		price := uc.creditUnitPrice(kind)
		if !price.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: no price for %s credits", models.ErrInvalidCheckout, kind)
		}
		req.Plan, req.Interval, req.RecipientEmail, req.Message = "", "", "", ""
		return price.Mul(decimal.NewFromInt(int64(req.Credits))), nil

	case models.PurposeSubscription, models.PurposeGift:
		if !req.Plan.Valid() {
			return decimal.Zero, fmt.Errorf("%w: unknown plan %q", models.ErrInvalidCheckout, req.Plan)
		}
		if req.Purpose == models.PurposeGift {
			if req.RecipientEmail != "" && !utils.IsValidEmail(req.RecipientEmail) {
				return decimal.Zero, fmt.Errorf("%w: invalid recipient email", models.ErrInvalidCheckout)
			}
			req.Message = utils.Truncate(strings.TrimSpace(req.Message), maxGiftMessageLength)
		} else {
			req.RecipientEmail, req.Message = "", ""
		}
		req.Credits = 0
		return uc.planPrice(req.Plan, req.Interval)
	}

	return decimal.Zero, fmt.Errorf("%w: purpose %q cannot be bought", models.ErrInvalidCheckout, req.Purpose)
}

func describe(req models.CheckoutRequest) string {
	switch req.Purpose {
	case models.PurposeAICredits:
		return fmt.Sprintf("%d AI credits", req.Credits)
	case models.PurposeRecruiterCVCredits:
		return fmt.Sprintf("%d recruiter CV credits", req.Credits)
	case models.PurposeSubscription:
		return fmt.Sprintf("%s plan, %s", req.Plan, strings.ToLower(string(req.Interval)))
	case models.PurposeGift:
		return fmt.Sprintf("Gift: %s plan, %s", req.Plan, strings.ToLower(string(req.Interval)))
	}
	return string(req.Purpose)
}
