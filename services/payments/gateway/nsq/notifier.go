package gateway_nsq

import (
	"context"
	"fmt"

	"github.com/piresc/payrecon/internal/pkg/models"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
)

// Publisher is the part of the NSQ producer the notifier needs
type Publisher interface {
	Publish(topic string, message interface{}) error
}

// Notifier queues mail jobs for the mailer worker
type Notifier struct {
	producer Publisher
	topic    string
}

// NewNotifier creates a notifier publishing to topic
func NewNotifier(producer Publisher, topic string) *Notifier {
	return &Notifier{producer: producer, topic: topic}
}

// SendReceipt queues a payment receipt
func (n *Notifier) SendReceipt(ctx context.Context, job models.NotificationJob) error {
	job.Kind = models.NotificationReceipt
	return n.publish(ctx, job)
}

// SendFailure queues a failed payment notice
func (n *Notifier) SendFailure(ctx context.Context, job models.NotificationJob) error {
	job.Kind = models.NotificationFailure
	return n.publish(ctx, job)
}

// SendGiftInvite queues the invitation for a gift recipient
func (n *Notifier) SendGiftInvite(ctx context.Context, job models.NotificationJob) error {
	job.Kind = models.NotificationGiftInvite
	return n.publish(ctx, job)
}

func (n *Notifier) publish(ctx context.Context, job models.NotificationJob) error {
	err := nrpkg.WithMessageSegment(ctx, "NSQ", n.topic, func() error {
		return n.producer.Publish(n.topic, job)
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s notification: %w", job.Kind, err)
	}
	return nil
}
