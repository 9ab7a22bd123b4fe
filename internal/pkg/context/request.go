package context

import (
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware copies the request ID assigned by echo's RequestID
// middleware into the request context so downstream logs can carry it.
// It must run after middleware.RequestID.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithRequestID(req.Context(), requestID)))
			return next(c)
		}
	}
}
