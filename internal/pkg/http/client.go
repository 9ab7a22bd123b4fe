package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/circuitbreaker"
	"github.com/piresc/payrecon/internal/pkg/logger"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
	"github.com/piresc/payrecon/internal/pkg/retry"
)

const (
	DefaultTimeout = 5 * time.Second
	APIKeyHeader   = "X-API-Key"

	maxErrorBody = 1 << 10
)

// HTTPError is returned for every non-2xx response
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus lets the retry policy classify the response
func (e *HTTPError) HTTPStatus() int {
	return e.StatusCode
}

// Config describes an outbound JSON API
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retry   retry.Policy
	Breaker circuitbreaker.Config
}

// Client is a JSON client that applies the shared retry policy to each call
// and trips a circuit breaker when the remote keeps failing
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *nethttp.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
	logger     *logger.ZapLogger
}

// NewClient creates a client for the API at config.BaseURL
func NewClient(config Config, l *logger.ZapLogger) *Client {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	breaker := config.Breaker
	if breaker.FailureThreshold == 0 {
		breaker = circuitbreaker.DefaultConfig(config.BaseURL)
		breaker.IsFailure = nil
	}
	if breaker.IsFailure == nil {
		breaker.IsFailure = isRemoteFailure
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &nethttp.Client{Timeout: config.Timeout},
		retrier:    retry.New(config.Retry, l),
		breaker:    circuitbreaker.New(breaker, l),
		logger:     l,
	}
}

// isRemoteFailure counts transport errors and retryable statuses against the
// breaker. A 4xx answer means the remote is healthy.
func isRemoteFailure(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return retry.IsRetryableStatus(httpErr.StatusCode)
	}
	return !errors.Is(err, context.Canceled)
}

// GetJSON issues a GET and decodes the response into out
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, nethttp.MethodGet, path, nil, out)
}

// PostJSON issues a POST with body encoded as JSON and decodes the response into out
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, nethttp.MethodPost, path, body, out)
}

// BreakerState exposes the breaker state for health reporting
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}
	url := c.baseURL + path

	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			return c.attempt(ctx, method, url, payload, out)
		})
	})
}

func (c *Client) attempt(ctx context.Context, method, url string, payload []byte, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := nethttp.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("HTTP request completed",
		logger.String("method", method),
		logger.String("url", url),
		logger.Int("status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
