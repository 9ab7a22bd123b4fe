package usecase

import (
	"bytes"
	"strings"
	"testing"

	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGiftToken(t *testing.T) {
	token, err := NewGiftToken(bytes.NewReader(bytes.Repeat([]byte{0x0f}, 32)))

	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, strings.Repeat("0f", 32), token)
}

func TestNewGiftToken_ShortSource(t *testing.T) {
	_, err := NewGiftToken(bytes.NewReader([]byte{1, 2, 3}))

	assert.Error(t, err)
}

func TestIssueGift(t *testing.T) {
	txn := pendingTxn(models.PurposeGift)
	purchase := models.GiftPurchase{
		Plan:           models.PlanPro,
		Interval:       models.IntervalYearly,
		RecipientEmail: "friend@example.com",
		Message:        "Happy birthday",
	}

	gift := IssueGift(txn, purchase, "tok", fixedNow)

	assert.Equal(t, txn.ID, gift.SourceTransactionID)
	assert.Equal(t, txn.UserID, gift.CreatedByUserID)
	assert.Equal(t, models.PlanPro, gift.Plan)
	assert.Equal(t, models.IntervalYearly, gift.Interval)
	assert.Equal(t, models.GiftPending, gift.Status)
	assert.Equal(t, "tok", gift.Token)
	assert.True(t, txn.Amount.Equal(gift.Amount))
	assert.Equal(t, fixedNow.AddDate(0, 0, 90), gift.ExpiresAt)
	require.NotNil(t, gift.RecipientEmail)
	assert.Equal(t, "friend@example.com", *gift.RecipientEmail)
	require.NotNil(t, gift.Message)
	assert.Equal(t, "Happy birthday", *gift.Message)
}

func TestIssueGift_WithoutRecipient(t *testing.T) {
	gift := IssueGift(pendingTxn(models.PurposeGift), models.GiftPurchase{Plan: models.PlanStarter, Interval: models.IntervalMonthly}, "tok", fixedNow)

	assert.Nil(t, gift.RecipientEmail)
	assert.Nil(t, gift.Message)
}
