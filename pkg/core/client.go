package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds a single Core round trip.
	DefaultTimeout = 15 * time.Second
	// FallbackToken is sent when no credential is configured, so Core's
	// auth enforcement still sees a bearer header.
	FallbackToken = "dev-token"
	// MaxResponseBytes caps how much of a Core response is read.
	MaxResponseBytes = 10 << 20
)

// Request is one outbound call to Core. It is built per tool invocation
// and not modified afterwards.
type Request struct {
	Path   string
	Method string
	Body   any
}

// Config holds the connection settings for Core.
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	UserAgent string
}

// Client executes requests against Core. It is safe for concurrent use;
// it holds no per-call state.
type Client struct {
	base      string
	token     string
	timeout   time.Duration
	userAgent string
	http      *http.Client
	logger    *slog.Logger
	observer  Observer
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver registers an observer notified after every call.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient validates cfg and returns a Client for it.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid Core base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid Core base URL %q: expected http(s)://host", cfg.BaseURL)
	}

	c := &Client{
		base:      strings.TrimRight(u.String(), "/"),
		token:     cfg.Token,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		http:      &http.Client{},
		logger:    slog.Default(),
	}
	if c.token == "" {
		c.token = FallbackToken
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// BaseURL returns the normalized Core base URL.
func (c *Client) BaseURL() string { return c.base }

// NormalizePath prepends the leading separator when it is missing.
func NormalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// Response is a successful Core reply: the decoded value and the trimmed
// body it was decoded from. Both are nil for an empty body.
type Response struct {
	Value any
	Raw   json.RawMessage
}

// Execute performs exactly one round trip to Core and returns the decoded
// body. An empty response body yields (nil, nil). See Do.
func (c *Client) Execute(ctx context.Context, path, method string, body any) (any, error) {
	resp, err := c.Do(ctx, Request{Path: path, Method: method, Body: body})
	return resp.Value, err
}

// Do performs exactly one round trip to Core for req and classifies the
// result. Failures are logged once here and returned as *CoreError,
// *TransportError, *SerializationError or *RequestError.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	path, method, body := req.Path, req.Method, req.Body
	start := time.Now()
	empty := strings.TrimSpace(path) == ""
	method = strings.ToUpper(method)
	path = NormalizePath(path)
	reqID := uuid.NewString()

	call := CallObservation{
		Tool:      ToolFromContext(ctx),
		Method:    method,
		Path:      path,
		RequestID: reqID,
		Started:   start,
	}
	logger := c.logger.With("method", method, "path", path, "request_id", reqID)
	if call.Tool != "" {
		logger = logger.With("tool", call.Tool)
	}

	if empty {
		return Response{}, c.fail(ctx, logger, call, &RequestError{Reason: "empty path"})
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPatch:
	default:
		return Response{}, c.fail(ctx, logger, call, &RequestError{Reason: fmt.Sprintf("unsupported method %q", method)})
	}

	var payload io.Reader
	if body != nil && method != http.MethodGet {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Response{}, c.fail(ctx, logger, call, &SerializationError{Op: "encode request", Err: err})
		}
		payload = bytes.NewReader(encoded)
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("core request", "body", Redact(body))
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, method, c.base+path, payload)
	if err != nil {
		return Response{}, c.fail(ctx, logger, call, &RequestError{Reason: err.Error()})
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, c.fail(ctx, logger, call, c.transportError(callCtx, method, path, err))
	}
	defer resp.Body.Close()
	call.Status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return Response{}, c.fail(ctx, logger, call, c.transportError(callCtx, method, path, err))
	}
	if len(raw) > MaxResponseBytes {
		return Response{}, c.fail(ctx, logger, call, &TransportError{
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("response exceeds %d bytes", MaxResponseBytes),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, c.fail(ctx, logger, call, &CoreError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp, raw),
		})
	}

	var result Response
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &result.Value); err != nil {
			return Response{}, c.fail(ctx, logger, call, &SerializationError{Op: "decode response", Err: err})
		}
		result.Raw = json.RawMessage(trimmed)
	}

	call.Duration = time.Since(start)
	logger.Info("core response", "status", resp.StatusCode, "duration_ms", call.Duration.Milliseconds())
	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("core payload", "payload", Redact(result.Value))
	}
	c.observe(ctx, call)
	return result, nil
}

// fail is the single place a failed call is logged.
func (c *Client) fail(ctx context.Context, logger *slog.Logger, call CallObservation, err error) error {
	call.Duration = time.Since(call.Started)
	call.Err = err

	attrs := []any{"duration_ms", call.Duration.Milliseconds(), "error", err}
	if call.Status != 0 {
		attrs = append([]any{"status", call.Status}, attrs...)
	}
	logger.Error("core request failed", attrs...)
	c.observe(ctx, call)
	return err
}

func (c *Client) observe(ctx context.Context, call CallObservation) {
	if c.observer != nil {
		c.observer.ObserveCall(ctx, call)
	}
}

func (c *Client) transportError(callCtx context.Context, method, path string, err error) *TransportError {
	te := &TransportError{Method: method, Path: path, Err: err}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		te.Timeout = true
		te.Err = fmt.Errorf("no response within %dms: %w", c.timeout.Milliseconds(), err)
	}
	return te
}

// errorMessage prefers the "message" field of a JSON object body, then the
// reason phrase Core sent, then the canonical status text.
func errorMessage(resp *http.Response, raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg, ok := body["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "unknown status"
}
