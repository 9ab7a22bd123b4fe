package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/utils"
)

// PanicRecoveryWithZapMiddleware turns a handler panic into a 500 response,
// logs the stack and reports it to New Relic when a transaction is active
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	if zapLogger == nil {
		zapLogger = logger.GetGlobalLogger()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				req := c.Request()
				txn := newrelic.FromContext(req.Context())
				requestID := c.Response().Header().Get(echo.HeaderXRequestID)
				if requestID == "" {
					requestID = req.Header.Get(echo.HeaderXRequestID)
				}

				if txn != nil {
					txn.NoticeError(newrelic.Error{
						Message: fmt.Sprintf("panic: %v", r),
						Class:   "PanicError",
					})
				}

				zapLogger.WithTransaction(txn).Error("Panic recovered during request processing",
					logger.Any("panic_value", r),
					logger.String("panic_type", fmt.Sprintf("%T", r)),
					logger.String("stack_trace", string(debug.Stack())),
					logger.String("method", req.Method),
					logger.String("path", req.URL.Path),
					logger.String("request_id", requestID),
				)

				if !c.Response().Committed {
					err = utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Internal server error")
				}
			}()

			return next(c)
		}
	}
}
