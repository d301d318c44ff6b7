package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/logger"
)

// Default configuration values.
const (
	DefaultBaseURL           = domain.DefaultAPIBaseURL
	DefaultTimeout           = domain.DefaultAPITimeout
	DefaultRequestsPerSecond = domain.DefaultRequestsPerSecond

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 4 << 20

	// HeaderRequestID carries a per-request identifier for tracing.
	HeaderRequestID = "X-Request-Id"
)

// Config holds configuration for the WeatherAPI client.
type Config struct {
	// BaseURL is the API base URL (default: https://api.weatherapi.com/v1).
	BaseURL string

	// APIKey authenticates every request.
	APIKey string

	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (default: 2).
	RequestsPerSecond float64
}

// ConfigFromSettings builds a client config from application settings.
func ConfigFromSettings(s domain.APISettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		APIKey:            s.APIKey,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// Client performs authenticated, rate-limited GET requests against WeatherAPI.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter

	mu     sync.RWMutex
	apiKey string
}

// NewClient creates a new WeatherAPI client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// SetAPIKey replaces the key used by subsequent requests.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = strings.TrimSpace(key)
}

// APIKey returns the key used for requests.
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// get fetches path with params and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	apiKey := c.APIKey()
	if apiKey == "" {
		return domain.ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %w", domain.ErrNetwork, err)
	}

	params.Set("key", apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	logger.Debug("GET %s q=%q request_id=%s", path, params.Get("q"), requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, path, body)
		return fmt.Errorf("%w: %w", classify(apiErr), apiErr)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrParse, path, err)
	}
	return nil
}

// newAPIError builds an APIError from a non-2xx response body.
func newAPIError(status int, path string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, URL: path}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
