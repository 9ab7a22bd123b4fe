package handler

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/middleware"
	"github.com/piresc/payrecon/internal/pkg/models"
	pkgws "github.com/piresc/payrecon/internal/pkg/websocket"
	"github.com/piresc/payrecon/services/payments"
	httpHandler "github.com/piresc/payrecon/services/payments/handler/http"
	wsHandler "github.com/piresc/payrecon/services/payments/handler/websocket"
)

// Handler combines all handlers for the payments service
type Handler struct {
	paymentsHTTP *httpHandler.PaymentsHandler
	stream       *wsHandler.StreamHandler
	cfg          *models.Config
	redis        *redis.Client
}

// NewHandler creates a new combined handler. redisClient backs the verify
// rate limit and wsManager the status stream; either may be nil.
func NewHandler(paymentUC payments.PaymentUC, cfg *models.Config, redisClient *redis.Client, wsManager *pkgws.Manager) *Handler {
	h := &Handler{
		paymentsHTTP: httpHandler.NewPaymentsHandler(paymentUC),
		cfg:          cfg,
		redis:        redisClient,
	}
	if wsManager != nil {
		h.stream = wsHandler.NewStreamHandler(wsManager)
	}
	return h
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	group := e.Group("/api/v1/payments")

	// Gateway deliveries authenticate with the shared secret only
	group.POST("/webhook", h.paymentsHTTP.Webhook,
		middleware.WebhookSecret(h.cfg.Webhook.SecretHeader, h.cfg.Webhook.Secret))

	auth := middleware.JWTAuthMiddleware(h.cfg.JWT)
	group.POST("/checkout", h.paymentsHTTP.Checkout, auth)

	verifyChain := []echo.MiddlewareFunc{auth}
	if h.redis != nil && h.cfg.Verify.RateLimit > 0 {
		verifyChain = append(verifyChain,
			middleware.UserRateLimiter(h.cfg.Verify.RateLimit, h.cfg.Verify.RatePeriod, h.redis))
	}
	group.GET("/verify", h.paymentsHTTP.Verify, verifyChain...)

	if h.stream != nil {
		group.GET("/stream", h.stream.Stream, auth)
	}
}
