package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/middleware"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/piresc/payrecon/internal/utils"
)

// Checkout opens a bill for the caller's purchase
func (h *PaymentsHandler) Checkout(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	ctx := c.Request().Context()
	resp, err := h.paymentUC.Checkout(ctx, userID, req)
	switch {
	case err == nil:
		return utils.SuccessResponse(c, http.StatusCreated, "Checkout created", resp)
	case errors.Is(err, models.ErrInvalidCheckout):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrGatewayRejected), errors.Is(err, models.ErrGatewayUnavailable):
		logger.WarnCtx(ctx, "Gateway refused checkout",
			logger.UUID("user_id", userID),
			logger.Err(err))
		return utils.BadGatewayResponse(c, "Payment gateway unavailable")
	default:
		logger.ErrorCtx(ctx, "Checkout failed",
			logger.UUID("user_id", userID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to create checkout")
	}
}
