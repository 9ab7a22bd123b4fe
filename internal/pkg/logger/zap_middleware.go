package logger

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs every request with its latency and status and
// annotates the New Relic transaction when one is present
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			txn := newrelic.FromContext(req.Context())

			err := next(c)
			if err != nil {
				// let echo write the error response so the logged status is accurate
				c.Error(err)
			}

			latency := time.Since(start)
			userID := "anonymous"
			if v := c.Get("user_id"); v != nil {
				userID = fmt.Sprintf("%v", v)
			}
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			if txn != nil {
				txn.AddAttribute("user_id", userID)
				txn.AddAttribute("request_id", requestID)
				if err != nil {
					txn.NoticeError(err)
				}
			}

			logger.LogHTTPRequest(txn, req.Method, req.URL.Path, c.RealIP(), userID, requestID,
				c.Response().Status, latency, err)
			return nil
		}
	}
}
