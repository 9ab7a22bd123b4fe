package gateway_http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	httpclient "github.com/piresc/payrecon/internal/pkg/http"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/piresc/payrecon/internal/pkg/retry"
)

// billResponse is the gateway's bill resource
type billResponse struct {
	ID     string     `json:"id"`
	State  string     `json:"state"`
	Paid   bool       `json:"paid"`
	PaidAt *time.Time `json:"paid_at"`
	URL    string     `json:"url"`
}

// transactionResponse is the gateway's transaction resource
type transactionResponse struct {
	ID     string     `json:"id"`
	BillID string     `json:"bill_id"`
	Status string     `json:"status"`
	PaidAt *time.Time `json:"paid_at"`
}

// ProviderGateway is the client of the external payment gateway
type ProviderGateway struct {
	client *httpclient.Client
}

// NewProviderGateway creates a gateway client from config. Calls share the
// retry policy and a circuit breaker keyed on the gateway host.
func NewProviderGateway(cfg models.GatewayConfig, zapLogger *logger.ZapLogger) *ProviderGateway {
	policy := retry.DefaultPolicy()
	policy.MaxRetries = cfg.MaxRetries
	if cfg.BaseBackoff > 0 {
		policy.BaseDelay = cfg.BaseBackoff
	}
	if cfg.MaxBackoff > 0 {
		policy.MaxDelay = cfg.MaxBackoff
	}

	return &ProviderGateway{
		client: httpclient.NewClient(httpclient.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
			Retry:   policy,
		}, zapLogger),
	}
}

// CreateBill opens a bill the payer is redirected to
func (g *ProviderGateway) CreateBill(ctx context.Context, req models.CreateBillRequest) (*models.Bill, error) {
	var resp billResponse
	if err := g.client.PostJSON(ctx, "/v1/bills", req, &resp); err != nil {
		return nil, classify("create bill", err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: bill created without id", models.ErrGatewayUnavailable)
	}
	return &models.Bill{ID: resp.ID, PaymentURL: resp.URL, Status: resp.State}, nil
}

// GetBillStatus looks a bill up by id
func (g *ProviderGateway) GetBillStatus(ctx context.Context, billID string) (*models.GatewayStatus, error) {
	var resp billResponse
	if err := g.client.GetJSON(ctx, "/v1/bills/"+url.PathEscape(billID), &resp); err != nil {
		return nil, classify("get bill status", err)
	}
	return &models.GatewayStatus{
		Status: resp.State,
		IsPaid: resp.Paid || strings.EqualFold(resp.State, "paid"),
		PaidAt: resp.PaidAt,
	}, nil
}

// GetTransactionStatus looks a transaction up by id
func (g *ProviderGateway) GetTransactionStatus(ctx context.Context, transactionID string) (*models.GatewayStatus, error) {
	var resp transactionResponse
	if err := g.client.GetJSON(ctx, "/v1/transactions/"+url.PathEscape(transactionID), &resp); err != nil {
		return nil, classify("get transaction status", err)
	}
	outcome, _ := models.MapProviderStatus(resp.Status)
	return &models.GatewayStatus{
		Status: resp.Status,
		IsPaid: outcome == models.OutcomeSuccess,
		PaidAt: resp.PaidAt,
	}, nil
}

// classify maps client errors to ErrGatewayRejected and everything else to
// ErrGatewayUnavailable
func classify(op string, err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode >= http.StatusBadRequest &&
		!retry.IsRetryableStatus(httpErr.StatusCode) {
		return fmt.Errorf("%w: %s: %v", models.ErrGatewayRejected, op, err)
	}
	return fmt.Errorf("%w: %s: %v", models.ErrGatewayUnavailable, op, err)
}
