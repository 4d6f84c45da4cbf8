package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hairizuanbinnoorazman/script-tracker/logger"
)

var (
	// ErrTransport wraps failures to reach the backend or read its reply.
	ErrTransport = errors.New("transport error")

	// ErrMalformedResponse wraps replies whose body is not a JSON envelope.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a business rejection reported by the backend (success:false).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Envelope is the JSON wrapper every backend reply uses.
type Envelope[T any] struct {
	Success       bool     `json:"success"`
	Data          T        `json:"data"`
	Error         string   `json:"error,omitempty"`
	Message       string   `json:"message,omitempty"`
	Count         int      `json:"count,omitempty"`
	ImportedCount int      `json:"imported_count,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	ExportedAt    string   `json:"exported_at,omitempty"`

	// StatusCode is the HTTP status the envelope arrived with.
	StatusCode int `json:"-"`
}

// Err returns nil for a successful envelope and an *APIError otherwise.
func (e *Envelope[T]) Err() error {
	if e.Success {
		return nil
	}
	return &APIError{StatusCode: e.StatusCode, Message: e.Error}
}

// Client is an HTTP client for the script tracker API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger logs every request at debug level.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends the request and decodes the reply into out regardless of the HTTP
// status: error statuses still carry a JSON envelope with success:false.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := logger.RequestID(ctx); ok {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	if c.logger != nil {
		c.logger.Debug(ctx, "api request", map[string]interface{}{
			"method":      method,
			"path":        path,
			"status":      resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: status %d: %v", ErrMalformedResponse, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

// Get sends a GET request and decodes the JSON reply into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) (int, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the JSON reply into out. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) (int, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON and decodes the JSON reply into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) (int, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete sends a DELETE request and decodes the JSON reply into out.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) (int, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}
