package cli

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	mcpadapter "github.com/aretw0/opsmcp/pkg/adapters/mcp"
)

// Serve runs the stdio channel on in/out and, when enabled, the HTTP
// listener. It returns when ctx is cancelled, stdin closes or a transport
// fails; the other transport is then stopped.
func Serve(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	stdio, err := app.NewMCPServer()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	gctx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer stop()
		app.Logger.Info("MCP stdio channel ready", "tools", app.Registry.Len())
		err := stdio.ServeStdio(gctx, in, out)
		if isShutdown(err) {
			return nil
		}
		return err
	})

	if app.Config.HTTPEnabled() {
		handler := app.HTTPHandler()
		g.Go(func() error {
			return mcpadapter.ListenAndServe(gctx, app.Config.HTTPAddr(), handler, app.Logger)
		})
	}

	return g.Wait()
}

func isShutdown(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe)
}
