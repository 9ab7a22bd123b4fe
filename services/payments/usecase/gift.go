package usecase

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/payrecon/internal/pkg/models"
)

const giftTokenBytes = 32

// NewGiftToken reads giftTokenBytes from src and hex encodes them
func NewGiftToken(src io.Reader) (string, error) {
	buf := make([]byte, giftTokenBytes)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("failed to generate gift token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IssueGift builds the pending gift bought by txn
func IssueGift(txn *models.PaymentTransaction, purchase models.GiftPurchase, token string, now time.Time) *models.GiftSubscription {
	gift := &models.GiftSubscription{
		ID:                  uuid.New(),
		Token:               token,
		SourceTransactionID: txn.ID,
		CreatedByUserID:     txn.UserID,
		Plan:                purchase.Plan,
		Interval:            purchase.Interval,
		Amount:              txn.Amount,
		Status:              models.GiftPending,
		ExpiresAt:           now.Add(models.GiftClaimWindow),
		CreatedAt:           now,
	}
	if purchase.RecipientEmail != "" {
		email := purchase.RecipientEmail
		gift.RecipientEmail = &email
	}
	if purchase.Message != "" {
		msg := purchase.Message
		gift.Message = &msg
	}
	return gift
}
