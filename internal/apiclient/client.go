// Package apiclient fetches JSON envelopes from the backend API server.
//
// Every endpoint answers with an envelope of the form
// {"success": bool, ...payload}. Two failure kinds are distinguished:
// transport failures (network errors and non-2xx responses, *HTTPError)
// and application failures (success:false or a missing payload, *AppError).
// Requests are never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ziadkadry99/opsdash/internal/config"
)

// HTTPError is a transport failure. StatusCode is 0 when no response
// was received.
type HTTPError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("failed to fetch: %v", e.Err)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *HTTPError) Unwrap() error { return e.Err }

// AppError is an application-level failure reported inside a 2xx response.
type AppError struct {
	Message string
}

func (e *AppError) Error() string { return e.Message }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// IsApplication reports whether err is an application-level failure.
func IsApplication(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Client talks to one backend API server.
type Client struct {
	baseURL   string
	http      *http.Client
	endpoints config.EndpointsConfig
	verbose   bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithEndpoints overrides the backend paths.
func WithEndpoints(e config.EndpointsConfig) Option {
	return func(c *Client) { c.endpoints = e }
}

// WithVerbose logs every request and its outcome.
func WithVerbose(v bool) Option {
	return func(c *Client) { c.verbose = v }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:      &http.Client{},
		endpoints: config.DefaultEndpoints,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig creates a Client from the dashboard configuration.
func FromConfig(cfg *config.Config, verbose bool) *Client {
	return New(cfg.APIBaseURL,
		WithEndpoints(cfg.Endpoints),
		WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second),
		WithVerbose(verbose),
	)
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the part of every response the client inspects itself.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GetJSON issues a GET and decodes a successful envelope into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, out)
}

// PostJSON issues a POST without a body and decodes a successful envelope into out.
func (c *Client) PostJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logf("%s %s failed after %s: %v", method, u, time.Since(start), err)
		return &HTTPError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.logf("%s %s -> %d (%d bytes, %s)", method, u, resp.StatusCode, len(body), time.Since(start))
	if err != nil {
		return &HTTPError{URL: u, Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, URL: u, Err: errors.New(string(bytes.TrimSpace(body)))}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &AppError{Message: fmt.Sprintf("invalid response from %s: %v", path, err)}
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "Unknown error"
		}
		return &AppError{Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &AppError{Message: fmt.Sprintf("invalid response from %s: %v", path, err)}
	}
	return nil
}

func (c *Client) logf(format string, args ...any) {
	if c.verbose {
		log.Printf("apiclient: "+format, args...)
	}
}
