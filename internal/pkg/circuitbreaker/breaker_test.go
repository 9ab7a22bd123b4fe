package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func newTestBreaker(threshold uint32) (*CircuitBreaker, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultConfig("gateway")
	cfg.FailureThreshold = threshold
	cfg.Timeout = 10 * time.Second
	cb := New(cfg, logger.NewNopLogger())
	cb.now = func() time.Time { return now }
	cb.expiry = now.Add(cfg.Interval)
	return cb, &now
}

func fail(context.Context) error    { return errBoom }
func succeed(context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	}

	assert.Equal(t, StateOpen, cb.State())
	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)
	assert.NoError(t, cb.Execute(ctx, succeed))
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	t.Run("successful trial closes", func(t *testing.T) {
		cb, now := newTestBreaker(1)
		ctx := context.Background()

		_ = cb.Execute(ctx, fail)
		assert.Equal(t, StateOpen, cb.State())

		*now = now.Add(11 * time.Second)
		assert.NoError(t, cb.Execute(ctx, succeed))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("failed trial reopens", func(t *testing.T) {
		cb, now := newTestBreaker(1)
		ctx := context.Background()

		_ = cb.Execute(ctx, fail)
		*now = now.Add(11 * time.Second)
		assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
		assert.Equal(t, StateOpen, cb.State())
	})
}

func TestCircuitBreaker_IgnoresNonFailures(t *testing.T) {
	cfg := DefaultConfig("gateway")
	cfg.FailureThreshold = 1
	cfg.IsFailure = func(err error) bool { return err != nil && !errors.Is(err, errBoom) }
	cb := New(cfg, logger.NewNopLogger())

	_ = cb.Execute(context.Background(), fail)

	assert.Equal(t, StateClosed, cb.State())
}
