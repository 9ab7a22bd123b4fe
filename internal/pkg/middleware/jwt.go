package middleware

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/payrecon/internal/pkg/jwt"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/piresc/payrecon/internal/utils"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// JWTAuthMiddleware authenticates the bearer token and stores the caller's
// id and role on the echo context
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			rawID, ok := (*claims)["user_id"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing user_id claim")
			}
			userID, err := uuid.Parse(fmt.Sprintf("%v", rawID))
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token: user_id is not a valid UUID")
			}

			c.Set(ContextUserID, userID)
			if role, ok := (*claims)["role"]; ok {
				c.Set(ContextUserRole, fmt.Sprintf("%v", role))
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated caller set by JWTAuthMiddleware
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextUserID).(uuid.UUID)
	return id, ok
}
