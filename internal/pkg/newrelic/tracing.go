package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	reqctx "github.com/piresc/payrecon/internal/pkg/context"
)

// FromEchoContext extracts the transaction started by the nrecho middleware
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext extracts the transaction carried by ctx
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// Middleware returns the nrecho middleware, or a pass-through when app is nil
func Middleware(app *newrelic.Application) echo.MiddlewareFunc {
	if app == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(app)
}

// AddAttribute annotates the transaction in ctx, if any
func AddAttribute(ctx context.Context, key string, value interface{}) {
	if txn := FromContext(ctx); txn != nil {
		txn.AddAttribute(key, value)
	}
}

// WithSegment runs fn inside a named segment of the transaction in ctx
func WithSegment(ctx context.Context, name string, fn func() error) error {
	if txn := FromContext(ctx); txn != nil {
		defer txn.StartSegment(name).End()
	}
	return fn()
}

// NewBackgroundContext returns a context detached from the request's
// cancellation that still carries its transaction and request ID
func NewBackgroundContext(ctx context.Context) context.Context {
	bg := reqctx.Detach(ctx)
	if txn := FromContext(ctx); txn != nil {
		return newrelic.NewContext(bg, txn.NewGoroutine())
	}
	return bg
}

// StartBackgroundTransaction starts a non-web transaction for worker code.
// The returned end func is safe to call when app is nil.
func StartBackgroundTransaction(ctx context.Context, app *newrelic.Application, name string) (context.Context, func()) {
	if app == nil {
		return ctx, func() {}
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn.End
}
