package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/middleware"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
	"github.com/piresc/payrecon/internal/utils"
)

// Verify checks the caller's latest pending payment with the gateway
func (h *PaymentsHandler) Verify(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	ctx := c.Request().Context()
	nrpkg.AddAttribute(ctx, "user.id", userID.String())

	result, err := h.paymentUC.VerifyLatest(ctx, userID)
	if err != nil {
		logger.ErrorCtx(ctx, "Payment verification failed",
			logger.UUID("user_id", userID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to verify payment")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment verification completed", result)
}
