// Package httpclient provides the shared HTTP client used by every source:
// one attempt per call, a per-request timeout, optional proxy and rate limiting.
package httpclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"vita/internal/platform/errors"
	"vita/internal/platform/logx"
)

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "vita/1.0 (+passive subdomain discovery)"

// Client wraps a pooled *http.Client. It is safe for concurrent use and is
// shared read-only by all sources of a run.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout bounds each request, including reading the body.
	// Default: 15 seconds
	Timeout time.Duration

	// UserAgent is the User-Agent header value.
	UserAgent string

	// ProxyURL routes every request through an HTTP(S) proxy when set.
	ProxyURL string

	// RateLimit is the maximum requests per second across all sources.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// MaxBodyBytes caps how much of a response body is read.
	// Default: 64 MiB
	MaxBodyBytes int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:        15 * time.Second,
		UserAgent:      DefaultUserAgent,
		RateLimitBurst: 1,
		MaxBodyBytes:   64 << 20,
	}
}

// New creates a client. It fails only when ProxyURL cannot be parsed.
func New(config Config, logger logx.Logger) (*Client, error) {
	def := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = def.RateLimitBurst
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = def.MaxBodyBytes
	}
	if logger == nil {
		logger = logx.NewNop()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16
	if config.ProxyURL != "" {
		proxy, err := url.Parse(config.ProxyURL)
		if err != nil || proxy.Scheme == "" || proxy.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q", config.ProxyURL)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		rateLimiter: limiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}, nil
}

// Default returns a client built from DefaultConfig that logs nothing.
func Default() *Client {
	c, _ := New(DefaultConfig(), logx.NewNop())
	return c
}

// Request performs a single HTTP request. There is no retry: a failed
// attempt is reported to the caller as-is.
func (c *Client) Request(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limit wait failed")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for %s %s", method, url)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Debug("HTTP request failed",
			"method", method,
			"url", url,
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		if ctx.Err() == nil && isTimeout(err) {
			return nil, errors.Wrapf(errors.ErrTimeout, "%s %s", method, url)
		}
		return nil, errors.Wrapf(err, "%s %s", method, url)
	}

	c.logger.Debug("HTTP response received",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}

// FetchBody performs a request, validates the status and returns the body.
func (c *Client) FetchBody(ctx context.Context, method, url string, body io.Reader, headers map[string]string) ([]byte, error) {
	resp, err := c.Request(ctx, method, url, body, headers)
	if err != nil {
		return nil, err
	}

	if err := CheckStatus(resp); err != nil {
		drain(resp)
		return nil, err
	}

	return c.readBody(resp)
}

// FetchJSON performs a GET request with an Accept: application/json header
// and returns the raw body.
func (c *Client) FetchJSON(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.FetchBody(ctx, http.MethodGet, url, nil, withJSON(headers, false))
}

// FetchText performs a GET request and returns the body as a string.
func (c *Client) FetchText(ctx context.Context, url string, headers map[string]string) (string, error) {
	body, err := c.FetchBody(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DecodeJSON issues method against url with an optional JSON payload and
// decodes the response into v.
func (c *Client) DecodeJSON(ctx context.Context, method, url string, payload any, headers map[string]string, v any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		body = bytesReader(buf)
	}

	raw, err := c.FetchBody(ctx, method, url, body, withJSON(headers, payload != nil))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(errors.ErrInvalidResponse, "decode %s: %v", url, err)
	}
	return nil
}

func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

// CheckStatus validates the HTTP status code and returns an *errors.StatusError
// for anything outside 2xx.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	se := &errors.StatusError{Code: resp.StatusCode, Status: resp.Status}
	if resp.Request != nil && resp.Request.URL != nil {
		se.URL = resp.Request.URL.Redacted()
	}
	return se
}

// BasicAuth returns the value of an Authorization header for user:pass.
func BasicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, rate_limit=%.1f/s, proxy=%t}",
		c.config.Timeout,
		c.config.RateLimit,
		c.config.ProxyURL != "",
	)
}
