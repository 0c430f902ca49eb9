package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ClientConfig contains configuration for an upstream HTTP client.
type ClientConfig struct {
	// Name identifies the upstream in errors, logs and metrics.
	Name string

	// Timeout is the maximum duration for a single request.
	Timeout time.Duration

	// MaxIdleConns controls the connection pool size.
	MaxIdleConns int

	// MaxIdleConnsPerHost controls per-host idle connections.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections are kept.
	IdleConnTimeout time.Duration
}

// Client is the base HTTP client shared by upstream adapters.
// It provides connection pooling, timeout handling, and typed error mapping
// for transport failures and non-2xx responses.
//
// Concrete adapters (LastFM, Discord) embed this and implement their own
// endpoint methods on top of GetJSON.
type Client struct {
	config ClientConfig
	http   *http.Client
}

// NewClient creates a new base upstream client with connection pooling.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 10
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = 5
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// Name returns the upstream's configured name.
func (c *Client) Name() string {
	return c.config.Name
}

// GetJSON performs a GET request and decodes the JSON response into out.
//
// Failures are mapped to typed errors:
//   - context deadline or client timeout -> *TimeoutError
//   - other transport failures           -> *Error with Cause
//   - non-2xx response                   -> *Error with StatusCode
//   - undecodable 2xx body               -> *ParseError
//
// The relay does not retry: structured upstream errors must surface to the
// client unchanged, and the route budget is bounded by the pipeline timeout.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	slog.Debug("sending upstream request",
		"upstream", c.config.Name,
		"method", http.MethodGet,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &TimeoutError{Service: c.config.Name, Timeout: c.config.Timeout}
		}
		return &Error{
			Service: c.config.Name,
			Message: "request failed",
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		slog.Warn("upstream returned error status",
			"upstream", c.config.Name,
			"status", resp.StatusCode,
		)
		return &Error{
			Service:    c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Service: c.config.Name, Cause: err}
	}

	return nil
}
