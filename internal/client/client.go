// Package client is a typed HTTP client for the snippet review API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/server/handler"
)

// DefaultServerURL is used when no server address is configured.
const DefaultServerURL = "http://localhost:8000"

// Client talks to a running snippet review server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig)

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// New creates a new Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("client: server URL is required")
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := &http.Client{}
	if cfg.httpClient != nil {
		// copied so the timeout below does not leak into the caller's client
		c := *cfg.httpClient
		httpClient = &c
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = c }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = l }
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

// Submit sends code for review and returns the stored outcome. A degraded
// review is not an error; check Status.
func (c *Client) Submit(ctx context.Context, code string) (*handler.ReviewResponse, error) {
	body, err := json.Marshal(handler.ReviewRequest{Code: &code})
	if err != nil {
		return nil, fmt.Errorf("submit: encode request: %w", err)
	}

	var out handler.ReviewResponse
	if err := c.doJSON(ctx, http.MethodPost, "/review", "submit", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Snippet fetches a stored snippet with all its reviews.
func (c *Client) Snippet(ctx context.Context, id int64) (*core.SnippetDetail, error) {
	var out core.SnippetDetail
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/snippets/%d", id), "get snippet", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping calls GET / and returns the greeting.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("ping: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ping: do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ping: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newAPIError("ping", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return string(data), nil
}

// doJSON executes an HTTP request and decodes the JSON response into dst.
// If the response has an error status, it returns an *APIError.
func (c *Client) doJSON(ctx context.Context, method, path, operation string, body io.Reader, dst any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "API request", "operation", operation, "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API response", "operation", operation, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var errResp handler.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return newAPIError(operation, resp.StatusCode, errResp.Error)
		}
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = resp.Status
		}
		return newAPIError(operation, resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
