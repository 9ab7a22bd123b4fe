// Package context carries the request correlation id of the payments API.
// One id ties together the logs of a webhook delivery, a verify poll or a
// checkout, including the receipt and event work that outlives the request.
package context

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID tags ctx with the id of the inbound call. Calls that arrive
// without one, such as gateway webhooks, get a fresh UUID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns the id set by WithRequestID, or "" outside a request
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}

// Detach drops the deadline and cancellation of ctx and keeps only its
// request id. Work after a committed reconciliation runs on it, since the
// gateway may hang up as soon as it has its acknowledgement.
func Detach(ctx context.Context) context.Context {
	bg := context.Background()
	if requestID := GetRequestID(ctx); requestID != "" {
		bg = context.WithValue(bg, requestIDKey{}, requestID)
	}
	return bg
}

// DetachWithTimeout is Detach bounded by d, for cleanup that must finish
// even when the caller is gone, like settling a webhook delivery guard
func DetachWithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(Detach(ctx), d)
}
