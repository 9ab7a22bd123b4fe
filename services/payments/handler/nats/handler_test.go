package nats

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	subject string
	handler nats.MsgHandler
	err     error
}

func (f *fakeSubscriber) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.subject = subject
	f.handler = handler
	return nil, nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyUser(userID uuid.UUID, event string, data interface{}) error {
	args := m.Called(userID, event, data)
	return args.Error(0)
}

func TestNatsHandler_ForwardsReconciledEvents(t *testing.T) {
	sub := &fakeSubscriber{}
	notifier := new(mockNotifier)
	h := NewNatsHandler(sub, notifier, "payments.reconciled")

	require.NoError(t, h.InitNATSConsumers())
	assert.Equal(t, "payments.reconciled", sub.subject)

	event := models.ReconciledEvent{
		TransactionID: uuid.New(),
		UserID:        uuid.New(),
		Purpose:       models.PurposeSubscription,
		Status:        models.PaymentPaid,
		ResolvedBy:    models.ResolvedByWebhook,
		Amount:        decimal.NewFromInt(19),
		Currency:      "MYR",
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	notifier.On("NotifyUser", event.UserID, models.EventPaymentReconciled, mock.MatchedBy(func(data interface{}) bool {
		got, ok := data.(models.ReconciledEvent)
		return ok && got.TransactionID == event.TransactionID
	})).Return(nil).Once()

	sub.handler(&nats.Msg{Data: body})

	notifier.AssertExpectations(t)

	h.Close()
}

func TestNatsHandler_DropsInvalidEvents(t *testing.T) {
	sub := &fakeSubscriber{}
	notifier := new(mockNotifier)
	h := NewNatsHandler(sub, notifier, "payments.reconciled")
	require.NoError(t, h.InitNATSConsumers())

	sub.handler(&nats.Msg{Data: []byte(`{`)})
	sub.handler(&nats.Msg{Data: []byte(`{"transaction_id":"` + uuid.NewString() + `"}`)})

	notifier.AssertNotCalled(t, "NotifyUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestNatsHandler_SubscribeError(t *testing.T) {
	h := NewNatsHandler(&fakeSubscriber{err: errors.New("nats: not connected")}, new(mockNotifier), "payments.reconciled")

	err := h.InitNATSConsumers()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to subscribe to reconciled events")
}
