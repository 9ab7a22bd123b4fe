package gateway_nats

import (
	"context"
	"fmt"

	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
)

// JSONPublisher is the part of the NATS client the event gateway needs
type JSONPublisher interface {
	PublishJSON(subject string, v interface{}) error
}

// EventGateway broadcasts reconciliation outcomes on NATS
type EventGateway struct {
	client  JSONPublisher
	subject string
}

// NewEventGateway creates an event gateway publishing to subject
func NewEventGateway(client JSONPublisher, subject string) *EventGateway {
	return &EventGateway{client: client, subject: subject}
}

// PublishReconciled announces that a transaction reached a terminal status
func (g *EventGateway) PublishReconciled(ctx context.Context, event models.ReconciledEvent) error {
	err := nrpkg.WithMessageSegment(ctx, "NATS", g.subject, func() error {
		return g.client.PublishJSON(g.subject, event)
	})
	if err != nil {
		return fmt.Errorf("failed to publish reconciled event: %w", err)
	}

	logger.Debug("Published reconciled event",
		logger.String("subject", g.subject),
		logger.UUID("transaction_id", event.TransactionID),
		logger.String("status", string(event.Status)))
	return nil
}
