package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/opsmcp"
	"github.com/aretw0/opsmcp/internal/cli"
	"github.com/aretw0/opsmcp/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio (and HTTP when a port is set)",
	Long: `Starts the gateway as an MCP server.

Transports:
- stdio (always): JSON-RPC on Standard Input/Output. Logs go to Stderr.
- http (MCP_HTTP_PORT, default 7070; 0 disables): one JSON-RPC message per
  POST /mcp, each handled by a fresh server instance. Also serves /healthz,
  /metrics and /openapi.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		app, err := cli.NewApp(sc, cfg)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := app.Close(ctx); err != nil {
				app.Logger.Warn("telemetry shutdown", "error", err)
			}
		}()

		if term.IsTerminal(int(os.Stderr.Fd())) {
			httpAddr := "disabled"
			if cfg.HTTPEnabled() {
				httpAddr = cfg.HTTPAddr()
			}
			tui.PrintBanner(os.Stderr, opsmcp.Version, [][2]string{
				{"core", app.Client.BaseURL()},
				{"tools", strconv.Itoa(app.Registry.Len())},
				{"http", httpAddr},
			})
		}

		err = cli.Serve(sc, app, os.Stdin, os.Stdout)
		if sig := sc.Signal(); sig != nil {
			app.Logger.Info("shutdown", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("http-port", 7070, "HTTP listener port (0 disables; overrides MCP_HTTP_PORT)")
}
