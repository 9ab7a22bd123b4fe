package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/utils"
)

// DefaultWebhookSecretHeader carries the shared secret on gateway deliveries
const DefaultWebhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret rejects requests whose secret header does not exactly match
// the configured secret. The comparison is constant time and case sensitive.
// An empty configured secret rejects every request.
func WebhookSecret(header, secret string) echo.MiddlewareFunc {
	if header == "" {
		header = DefaultWebhookSecretHeader
	}
	expected := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := c.Request().Header.Get(header)
			if presented == "" || len(expected) == 0 ||
				subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
				logger.WarnCtx(c.Request().Context(), "Rejected webhook delivery",
					logger.String("client_ip", c.RealIP()),
					logger.Bool("header_present", presented != ""))
				return utils.UnauthorizedResponse(c, "Invalid webhook secret")
			}
			return next(c)
		}
	}
}
