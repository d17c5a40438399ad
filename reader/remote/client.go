// Package remote reads exchanges from the exchange-listing HTTP endpoint.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/chaukidar/core"
)

const (
	// DefaultPath is the exchange-listing route appended to the base URL.
	DefaultPath = "/api/exchanges"

	// DefaultTimeout bounds a single request when the caller's context
	// carries no deadline.
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 32 << 20
)

// Client fetches the exchange list with GET <base-url>/api/exchanges. It
// sends no credentials and performs no retries; the poll loop's next tick
// is the retry.
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
	logger     *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       DefaultPath,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPath overrides the exchange-listing route.
func WithPath(path string) ClientOption {
	return func(c *Client) {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.path = path
	}
}

// Endpoint returns the full URL that ReadExchanges requests.
func (c *Client) Endpoint() string {
	return c.baseURL + c.path
}

// ReadExchanges performs one fetch. Failures are returned as
// *TransportError, *StatusError or *ShapeError.
func (c *Client) ReadExchanges(ctx context.Context) (core.Snapshot, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "do request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       excerpt(body),
		}
	}

	snap, err := Decode(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched exchanges",
		"url", c.Endpoint(),
		"count", len(snap),
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return snap, nil
}
