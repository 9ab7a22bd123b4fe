package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/payrecon/internal/pkg/constants"
	"github.com/piresc/payrecon/internal/pkg/database"
)

const (
	deliveryInFlight   = "in_flight"
	deliveryDonePrefix = "done:"
)

// DeliveryGuard remembers webhook deliveries in Redis
type DeliveryGuard struct {
	redis *database.RedisClient
}

// NewDeliveryGuard creates a guard on top of redisClient
func NewDeliveryGuard(redisClient *database.RedisClient) *DeliveryGuard {
	return &DeliveryGuard{redis: redisClient}
}

// MarkDelivery claims key for ttl. It reports true for the first delivery
// and false while an identical one is in flight or remembered.
func (g *DeliveryGuard) MarkDelivery(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	first, err := g.redis.SetNX(ctx, fmt.Sprintf(constants.KeyWebhookDelivery, key), deliveryInFlight, ttl)
	if err != nil {
		return false, fmt.Errorf("failed to mark webhook delivery: %w", err)
	}
	return first, nil
}

// ConfirmDelivery keeps key for ttl after the delivery was applied
func (g *DeliveryGuard) ConfirmDelivery(ctx context.Context, key string, ttl time.Duration) error {
	value := deliveryDonePrefix + time.Now().UTC().Format(time.RFC3339)
	if err := g.redis.Set(ctx, fmt.Sprintf(constants.KeyWebhookDelivery, key), value, ttl); err != nil {
		return fmt.Errorf("failed to confirm webhook delivery: %w", err)
	}
	return nil
}

// ReleaseDelivery forgets key so a redelivery is processed again
func (g *DeliveryGuard) ReleaseDelivery(ctx context.Context, key string) error {
	if err := g.redis.Delete(ctx, fmt.Sprintf(constants.KeyWebhookDelivery, key)); err != nil {
		return fmt.Errorf("failed to release webhook delivery: %w", err)
	}
	return nil
}
