package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/opsmcp"
	"github.com/aretw0/opsmcp/internal/config"
	"github.com/aretw0/opsmcp/internal/logging"
	mcpadapter "github.com/aretw0/opsmcp/pkg/adapters/mcp"
	"github.com/aretw0/opsmcp/pkg/contract"
	"github.com/aretw0/opsmcp/pkg/core"
	"github.com/aretw0/opsmcp/pkg/gateway"
	"github.com/aretw0/opsmcp/pkg/observability"
	"github.com/aretw0/opsmcp/pkg/registry"
)

// App is the wired gateway: everything built from the configuration once
// at startup and shared read-only afterwards.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Registry *registry.Registry
	Client   *core.Client
	Metrics  *observability.Metrics

	shutdownTracing func(context.Context) error
}

// AppOption adjusts how NewApp wires the gateway.
type AppOption func(*appOptions)

type appOptions struct {
	logOutput io.Writer
	tracer    trace.Tracer
}

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) AppOption {
	return func(o *appOptions) { o.logOutput = w }
}

// WithTracer records Core spans with t instead of the global provider.
func WithTracer(t trace.Tracer) AppOption {
	return func(o *appOptions) { o.tracer = t }
}

// NewApp validates cfg and wires the gateway.
func NewApp(ctx context.Context, cfg config.Config, opts ...AppOption) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(level, cfg.Log.Format, o.logOutput)

	shutdown := func(context.Context) error { return nil }
	if o.tracer == nil {
		var err error
		shutdown, err = observability.SetupTracing(ctx, cfg.OTLPEndpoint, mcpadapter.ServerName, opsmcp.Version)
		if err != nil {
			return nil, err
		}
		o.tracer = observability.Tracer()
	}

	metrics := observability.NewMetrics()
	client, err := core.NewClient(core.Config{
		BaseURL:   cfg.Core.URL,
		Token:     cfg.Core.Token,
		Timeout:   cfg.Timeout(),
		UserAgent: opsmcp.UserAgent(),
	},
		core.WithLogger(logger),
		core.WithObserver(observability.NewCoreObserver(metrics, o.tracer)),
	)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	reg, err := registry.Default(cfg.Tools.EnableMutations)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	if cfg.Core.Token == "" {
		logger.Warn("CORE_API_TOKEN not set, using placeholder credential")
	}

	return &App{
		Config:          cfg,
		Logger:          logger,
		Registry:        reg,
		Client:          client,
		Metrics:         metrics,
		shutdownTracing: shutdown,
	}, nil
}

// Dispatcher returns a new dispatcher over the shared registry and client.
func (a *App) Dispatcher() *gateway.Dispatcher {
	return gateway.New(a.Registry, a.Client, a.Logger)
}

// NewMCPServer builds a fresh MCP server around a fresh dispatcher.
func (a *App) NewMCPServer() (*mcpadapter.Server, error) {
	return mcpadapter.NewServer(a.Dispatcher(), a.Logger)
}

// HTTPHandler returns the network listener's router.
func (a *App) HTTPHandler() http.Handler {
	return mcpadapter.NewHTTPHandler(a.NewMCPServer, mcpadapter.HTTPOptions{
		AllowedOrigins: a.Config.HTTP.AllowedOrigins,
		AllowedHosts:   a.Config.HTTP.AllowedHosts,
		Metrics:        a.Metrics.Handler(),
		OpenAPI:        a.OpenAPIYAML,
		Logger:         a.Logger,
	})
}

// OpenAPIYAML renders the Core surface used by the registered tools.
func (a *App) OpenAPIYAML() ([]byte, error) {
	doc := contract.OpenAPI(a.Registry.All(), opsmcp.Version, a.Client.BaseURL())
	return contract.OpenAPIYAML(doc)
}

// Close flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	return a.shutdownTracing(ctx)
}
