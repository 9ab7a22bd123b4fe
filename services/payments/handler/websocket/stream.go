package websocket

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/middleware"
	pkgws "github.com/piresc/payrecon/internal/pkg/websocket"
	"github.com/piresc/payrecon/internal/utils"
)

// StreamHandler serves the live payment status stream
type StreamHandler struct {
	manager *pkgws.Manager
}

// NewStreamHandler creates a stream handler backed by manager
func NewStreamHandler(manager *pkgws.Manager) *StreamHandler {
	return &StreamHandler{manager: manager}
}

// Stream upgrades the authenticated caller to a WebSocket that receives
// payment_reconciled events for their own transactions
func (h *StreamHandler) Stream(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	return h.manager.HandleConnection(c, userID)
}
