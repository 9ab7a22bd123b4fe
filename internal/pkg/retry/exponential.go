package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/piresc/payrecon/internal/pkg/logger"
)

// RetryableFunc represents a function that can be retried
type RetryableFunc func(ctx context.Context) error

// Policy is the retry policy shared by every outbound HTTP client
type Policy struct {
	MaxRetries int           // retries after the first attempt
	BaseDelay  time.Duration // delay before the first retry
	MaxDelay   time.Duration
	Multiplier float64
	Jitter     bool
	Retryable  func(error) bool
}

// DefaultPolicy retries rate-limited and server-side responses twice with
// exponential backoff
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 2,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   2 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
		Retryable:  IsRetryableStatusError,
	}
}

// Delay returns the backoff before retry number attempt (0 based)
func (p Policy) Delay(attempt int) time.Duration {
	mult := p.Multiplier
	if mult <= 0 {
		mult = 2.0
	}
	delay := float64(p.BaseDelay) * math.Pow(mult, float64(attempt))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	if p.Jitter {
		// up to 10% extra
		delay += delay * 0.1 * rand.Float64()
	}
	return time.Duration(delay)
}

// StatusCoder is implemented by errors that carry an HTTP response status
type StatusCoder interface {
	HTTPStatus() int
}

// IsRetryableStatus reports whether a response status is worth retrying
func IsRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// IsRetryableStatusError retries only errors carrying a 429 or 5xx status.
// Transport errors and other statuses abort immediately.
func IsRetryableStatusError(err error) bool {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return IsRetryableStatus(sc.HTTPStatus())
	}
	return false
}

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	policy Policy
	logger *logger.ZapLogger
}

// New creates a new retrier with the given policy
func New(policy Policy, l *logger.ZapLogger) *Retrier {
	if policy.Retryable == nil {
		policy.Retryable = IsRetryableStatusError
	}
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &Retrier{policy: policy, logger: l}
}

// Policy returns the policy the retrier applies
func (r *Retrier) Policy() Policy {
	return r.policy
}

// Execute runs fn until it succeeds, returns a non-retryable error, the
// retry budget is spent or ctx is done
func (r *Retrier) Execute(ctx context.Context, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("Call succeeded after retries", logger.Int("attempts", attempt+1))
			}
			return nil
		}
		lastErr = err

		if !r.policy.Retryable(err) {
			r.logger.Debug("Error is not retryable, stopping",
				logger.Err(err),
				logger.Int("attempt", attempt+1))
			return err
		}

		if attempt == r.policy.MaxRetries {
			break
		}

		delay := r.policy.Delay(attempt)
		r.logger.Debug("Call failed, retrying",
			logger.Err(err),
			logger.Int("attempt", attempt+1),
			logger.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.logger.Warn("Call failed after all retries",
		logger.Err(lastErr),
		logger.Int("total_attempts", r.policy.MaxRetries+1))

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", r.policy.MaxRetries+1, lastErr)
}
