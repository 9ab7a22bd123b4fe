package nats

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
)

// Subscriber is the part of the NATS client the handler needs
type Subscriber interface {
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
}

// UserNotifier pushes an event to a user's live connections
type UserNotifier interface {
	NotifyUser(userID uuid.UUID, event string, data interface{}) error
}

// NatsHandler forwards reconciliation events to connected clients
type NatsHandler struct {
	natsClient Subscriber
	notifier   UserNotifier
	subject    string
	subs       []*nats.Subscription
}

// NewNatsHandler creates a handler consuming subject
func NewNatsHandler(natsClient Subscriber, notifier UserNotifier, subject string) *NatsHandler {
	return &NatsHandler{
		natsClient: natsClient,
		notifier:   notifier,
		subject:    subject,
	}
}

// InitNATSConsumers subscribes to the reconciled subject
func (h *NatsHandler) InitNATSConsumers() error {
	sub, err := h.natsClient.Subscribe(h.subject, func(msg *nats.Msg) {
		if err := h.handleReconciledEvent(msg.Data); err != nil {
			logger.Error("Error handling reconciled event", logger.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to reconciled events: %w", err)
	}
	h.subs = append(h.subs, sub)
	return nil
}

// Close unsubscribes all consumers
func (h *NatsHandler) Close() {
	for _, sub := range h.subs {
		if sub == nil {
			continue
		}
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", logger.String("subject", sub.Subject), logger.Err(err))
		}
	}
	h.subs = nil
}

func (h *NatsHandler) handleReconciledEvent(data []byte) error {
	var event models.ReconciledEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("failed to unmarshal reconciled event: %w", err)
	}
	if event.UserID == uuid.Nil {
		return fmt.Errorf("reconciled event %s has no user", event.TransactionID)
	}
	return h.notifier.NotifyUser(event.UserID, models.EventPaymentReconciled, event)
}
