package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/middleware"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/piresc/payrecon/services/payments/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWebhook(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(uc *mocks.MockPaymentUC)
		expectedStatus int
	}{
		{
			name: "paid delivery",
			body: `{"event":"payment.updated","transaction":{"id":"tx_1","bill_id":"bill_1","status":"PAID"}}`,
			setup: func(uc *mocks.MockPaymentUC) {
				uc.EXPECT().
					ProcessWebhook(gomock.Any(), models.WebhookEvent{TransactionID: "tx_1", BillID: "bill_1", ProviderStatus: "PAID"}).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "bill only delivery",
			body: `{"bill":{"id":"bill_1","status":"expired"}}`,
			setup: func(uc *mocks.MockPaymentUC) {
				uc.EXPECT().
					ProcessWebhook(gomock.Any(), models.WebhookEvent{BillID: "bill_1", ProviderStatus: "expired"}).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed json is acknowledged",
			body:           `{"transaction":`,
			setup:          func(uc *mocks.MockPaymentUC) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "payload without ids is acknowledged",
			body:           `{"event":"ping"}`,
			setup:          func(uc *mocks.MockPaymentUC) {},
			expectedStatus: http.StatusOK,
		},
		{
			name: "storage failure asks for redelivery",
			body: `{"transaction":{"id":"tx_1","status":"PAID"}}`,
			setup: func(uc *mocks.MockPaymentUC) {
				uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockPaymentUC(ctrl)
			tt.setup(uc)
			h := NewPaymentsHandler(uc)

			c, rec := newContext(http.MethodPost, tt.body)
			require.NoError(t, h.Webhook(c))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"status":"received"}`, rec.Body.String())
			}
		})
	}
}

func TestVerify(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentsHandler(uc)
	userID := uuid.New()
	txnID := uuid.New()

	uc.EXPECT().
		VerifyLatest(gomock.Any(), userID).
		Return(&models.VerifyResult{Outcome: models.VerifySuccess, TransactionID: &txnID, AlreadyProcessed: true}, nil)

	c, rec := newContext(http.MethodGet, "")
	c.Set(middleware.ContextUserID, userID)
	require.NoError(t, h.Verify(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data models.VerifyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.VerifySuccess, body.Data.Outcome)
	assert.True(t, body.Data.AlreadyProcessed)
}

func TestVerify_Errors(t *testing.T) {
	t.Run("missing identity", func(t *testing.T) {
		h := NewPaymentsHandler(mocks.NewMockPaymentUC(gomock.NewController(t)))
		c, rec := newContext(http.MethodGet, "")

		require.NoError(t, h.Verify(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("usecase error", func(t *testing.T) {
		uc := mocks.NewMockPaymentUC(gomock.NewController(t))
		uc.EXPECT().VerifyLatest(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
		h := NewPaymentsHandler(uc)
		c, rec := newContext(http.MethodGet, "")
		c.Set(middleware.ContextUserID, uuid.New())

		require.NoError(t, h.Verify(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCheckout(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		ucErr          error
		callsUC        bool
		expectedStatus int
	}{
		{name: "created", body: `{"purpose":"AI_CREDITS","credits":10}`, callsUC: true, expectedStatus: http.StatusCreated},
		{name: "invalid request", body: `{"purpose":"OTHER"}`, ucErr: models.ErrInvalidCheckout, callsUC: true, expectedStatus: http.StatusBadRequest},
		{name: "gateway down", body: `{"purpose":"AI_CREDITS","credits":10}`, ucErr: models.ErrGatewayUnavailable, callsUC: true, expectedStatus: http.StatusBadGateway},
		{name: "storage error", body: `{"purpose":"AI_CREDITS","credits":10}`, ucErr: errors.New("db down"), callsUC: true, expectedStatus: http.StatusInternalServerError},
		{name: "bad json", body: `{"purpose":`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockPaymentUC(ctrl)
			userID := uuid.New()
			if tt.callsUC {
				uc.EXPECT().
					Checkout(gomock.Any(), userID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
						if tt.ucErr != nil {
							return nil, tt.ucErr
						}
						assert.Equal(t, models.PurposeAICredits, req.Purpose)
						assert.Equal(t, 10, req.Credits)
						return &models.CheckoutResponse{TransactionID: uuid.New(), BillID: "bill_1", Amount: decimal.RequireFromString("5")}, nil
					})
			}
			h := NewPaymentsHandler(uc)

			c, rec := newContext(http.MethodPost, tt.body)
			c.Set(middleware.ContextUserID, userID)
			require.NoError(t, h.Checkout(c))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
