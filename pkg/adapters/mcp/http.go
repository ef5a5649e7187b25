package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/mcp"
)

// MaxMessageBytes caps the size of one JSON-RPC message on POST /mcp.
const MaxMessageBytes = 1 << 20

// ServerFactory builds a fresh Server. The HTTP handler calls it once per
// request so no server state outlives a request.
type ServerFactory func() (*Server, error)

// HTTPOptions configures NewHTTPHandler.
type HTTPOptions struct {
	// AllowedOrigins lists accepted Origin header values. Empty accepts any.
	AllowedOrigins []string
	// AllowedHosts lists accepted Host header names (port ignored). Empty
	// accepts any.
	AllowedHosts []string
	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler
	// OpenAPI, when set, renders the document served at /openapi.yaml.
	OpenAPI func() ([]byte, error)
	Logger  *slog.Logger
}

// NewHTTPHandler returns the router for the network listener.
func NewHTTPHandler(factory ServerFactory, opts HTTPOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hostGuard(opts.AllowedHosts, logger))
	r.Use(originGuard(opts.AllowedOrigins, logger))

	r.Post("/mcp", messageHandler(factory, logger))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "server": ServerName})
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	if opts.OpenAPI != nil {
		r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
			doc, err := opts.OpenAPI()
			if err != nil {
				logger.Error("render openapi document", "error", err)
				http.Error(w, "failed to render document", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(doc)
		})
	}
	return r
}

func messageHandler(factory ServerFactory, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxMessageBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeRPCError(w, http.StatusRequestEntityTooLarge, mcp.INVALID_REQUEST, "message too large")
				return
			}
			writeRPCError(w, http.StatusBadRequest, mcp.PARSE_ERROR, "unreadable body")
			return
		}
		if !json.Valid(raw) {
			writeRPCError(w, http.StatusBadRequest, mcp.PARSE_ERROR, "invalid JSON")
			return
		}

		srv, err := factory()
		if err != nil {
			logger.Error("build mcp server", "error", err)
			writeRPCError(w, http.StatusInternalServerError, mcp.INTERNAL_ERROR, "server unavailable")
			return
		}

		resp := srv.HandleMessage(r.Context(), raw)
		if resp == nil {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func hostGuard(allowed []string, logger *slog.Logger) func(http.Handler) http.Handler {
	set := toSet(allowed)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(set) > 0 {
				if _, ok := set[strings.ToLower(hostname(r.Host))]; !ok {
					logger.Warn("rejected host", "host", r.Host, "path", r.URL.Path)
					http.Error(w, "host not allowed", http.StatusForbidden)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originGuard(allowed []string, logger *slog.Logger) func(http.Handler) http.Handler {
	set := toSet(allowed)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if len(set) > 0 {
					if _, ok := set[strings.ToLower(origin)]; !ok {
						logger.Warn("rejected origin", "origin", origin, "path", r.URL.Path)
						http.Error(w, "origin not allowed", http.StatusForbidden)
						return
					}
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, Mcp-Session-Id, Mcp-Protocol-Version")
				w.Header().Set("Access-Control-Max-Age", "300")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hostname(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return strings.Trim(hostport, "[]")
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRPCError(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, map[string]any{
		"jsonrpc": mcp.JSONRPC_VERSION,
		"id":      nil,
		"error":   map[string]any{"code": code, "message": message},
	})
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("MCP HTTP listener started", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listener: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("MCP HTTP listener shutting down", "address", addr)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
