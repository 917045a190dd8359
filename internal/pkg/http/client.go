package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/piresc/triptracker/internal/pkg/circuitbreaker"
	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/metrics"
	nrpkg "github.com/piresc/triptracker/internal/pkg/newrelic"
	"github.com/piresc/triptracker/internal/pkg/requestcontext"
	"github.com/piresc/triptracker/internal/pkg/retry"
)

// DefaultTimeout for HTTP requests
const DefaultTimeout = 10 * time.Second

// Config configures a Client
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client is a JSON client for the trip backend. Every call goes through a
// per-host circuit breaker and a New Relic external segment.
type Client struct {
	baseURL    string
	token      string
	httpClient *nethttp.Client
	breakers   *circuitbreaker.Manager
}

// NewClient creates a new HTTP client. breakers may be nil.
func NewClient(config Config, breakers *circuitbreaker.Manager) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if breakers == nil {
		breakers = circuitbreaker.NewManager(DefaultBreakerConfig(), nil)
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		token:      config.Token,
		httpClient: &nethttp.Client{Timeout: config.Timeout},
		breakers:   breakers,
	}
}

// HTTPError is a non-2xx answer from the backend
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Permanent reports whether retrying cannot help. Client errors are the
// backend's verdict; server errors may go away.
func (e *HTTPError) Permanent() bool {
	return e.StatusCode < 500
}

// GetJSON performs a GET request and decodes the JSON response into result
func (c *Client) GetJSON(ctx context.Context, endpoint string, result interface{}) error {
	return c.do(ctx, nethttp.MethodGet, endpoint, nil, result)
}

// PostJSON performs a POST request with a JSON body and decodes the response
func (c *Client) PostJSON(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	return c.do(ctx, nethttp.MethodPost, endpoint, body, result)
}

// PostJSONWithRetry is PostJSON retried with r on transient failures.
// Use it for one-shot commands; polls retry on their next tick instead.
func (c *Client) PostJSONWithRetry(ctx context.Context, r *retry.Retrier, endpoint string, body interface{}, result interface{}) error {
	return r.Execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, nethttp.MethodPost, endpoint, body, result)
	})
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestcontext.RequestIDOrNew(ctx))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	host := req.URL.Host
	if host == "" {
		host = "unknown"
	}

	start := time.Now()
	status := "error"
	defer func() {
		metrics.ObserveBackendCall(endpoint, status, time.Since(start).Seconds())
	}()

	return c.breakers.Execute(ctx, host, func(ctx context.Context) error {
		resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
			return c.httpClient.Do(req)
		})
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, endpoint, err)
		}
		defer resp.Body.Close()
		status = strconv.Itoa(resp.StatusCode)

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 400 {
			httpErr := &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(data, resp.Status)}
			logger.Debug("Backend rejected request",
				logger.String("endpoint", endpoint),
				logger.Int("status", resp.StatusCode),
				logger.String("message", httpErr.Message))
			if httpErr.Permanent() {
				// the backend answered; that says nothing about its health
				return breakerNeutral{httpErr}
			}
			return httpErr
		}

		if result == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response of %s: %w", endpoint, err)
		}
		return nil
	})
}

// DefaultBreakerConfig is the breaker template for backend hosts. Client
// errors do not trip it.
func DefaultBreakerConfig() circuitbreaker.Config {
	cfg := circuitbreaker.DefaultConfig("backend")
	cfg.IsFailure = IsBreakerFailure
	return cfg
}

// breakerNeutral wraps errors that must not count against the breaker
type breakerNeutral struct {
	err *HTTPError
}

func (b breakerNeutral) Error() string { return b.err.Error() }
func (b breakerNeutral) Unwrap() error { return b.err }

// IsBreakerFailure is the IsFailure predicate the backend breakers use
func IsBreakerFailure(err error) bool {
	if err == nil {
		return false
	}
	var neutral breakerNeutral
	return !errors.As(err, &neutral)
}

func errorMessage(body []byte, fallback string) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" && len(s) < 256 {
		return s
	}
	return fallback
}
