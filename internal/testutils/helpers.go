package testutils

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// LogRecorder is a slog.Handler that keeps every record for assertions.
type LogRecorder struct {
	mu      sync.Mutex
	records []slog.Record
	attrs   []slog.Attr
	shared  *LogRecorder
}

// NewLogger returns a debug-level logger backed by a fresh recorder.
func NewLogger() (*slog.Logger, *LogRecorder) {
	rec := &LogRecorder{}
	return slog.New(rec), rec
}

func (r *LogRecorder) root() *LogRecorder {
	if r.shared != nil {
		return r.shared
	}
	return r
}

func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *LogRecorder) Handle(_ context.Context, rec slog.Record) error {
	rec = rec.Clone()
	rec.AddAttrs(r.attrs...)
	root := r.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.records = append(root.records, rec)
	return nil
}

func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogRecorder{
		attrs:  append(append([]slog.Attr(nil), r.attrs...), attrs...),
		shared: r.root(),
	}
}

func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// NopLogger returns a logger that drops everything.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Records returns a copy of everything logged so far.
func (r *LogRecorder) Records() []slog.Record {
	root := r.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	return append([]slog.Record(nil), root.records...)
}

// Count returns how many records were logged at exactly level.
func (r *LogRecorder) Count(level slog.Level) int {
	n := 0
	for _, rec := range r.Records() {
		if rec.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the messages logged at level, in order.
func (r *LogRecorder) Messages(level slog.Level) []string {
	var out []string
	for _, rec := range r.Records() {
		if rec.Level == level {
			out = append(out, rec.Message)
		}
	}
	return out
}

// Attr returns the value of key on the first record with message msg.
func (r *LogRecorder) Attr(msg, key string) (slog.Value, bool) {
	for _, rec := range r.Records() {
		if rec.Message != msg {
			continue
		}
		var (
			val   slog.Value
			found bool
		)
		rec.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				val, found = a.Value, true
				return false
			}
			return true
		})
		return val, found
	}
	return slog.Value{}, false
}

// CapturedRequest is what a MockCore saw for one call.
type CapturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// MockCore is an httptest server standing in for Core.
type MockCore struct {
	*httptest.Server

	hits     atomic.Int64
	mu       sync.Mutex
	requests []CapturedRequest
}

// NewMockCore starts a server that records each request and delegates the
// response to handler. The server is closed when the test ends.
func NewMockCore(t *testing.T, handler http.HandlerFunc) *MockCore {
	t.Helper()
	m := &MockCore{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		m.hits.Add(1)
		m.mu.Lock()
		m.requests = append(m.requests, CapturedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		m.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(m.Server.Close)
	return m
}

// Hits returns how many requests reached the server.
func (m *MockCore) Hits() int { return int(m.hits.Load()) }

// Requests returns the captured requests in arrival order.
func (m *MockCore) Requests() []CapturedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CapturedRequest(nil), m.requests...)
}

// JSON returns a handler answering with status and v encoded as JSON.
func JSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Raw returns a handler answering with status and the body verbatim.
func Raw(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}
