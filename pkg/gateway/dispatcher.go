// Package gateway dispatches tool calls: it looks up the contract,
// validates input, calls Core through the request pipeline and wraps the
// result in an envelope.
package gateway

import (
	"context"
	"log/slog"

	"github.com/aretw0/opsmcp/pkg/contract"
	"github.com/aretw0/opsmcp/pkg/core"
	"github.com/aretw0/opsmcp/pkg/envelope"
	"github.com/aretw0/opsmcp/pkg/registry"
)

// Executor performs one Core round trip. *core.Client implements it.
type Executor interface {
	Do(ctx context.Context, req core.Request) (core.Response, error)
}

// Dispatcher routes calls to registered tools. It holds only read-only
// state and is safe for concurrent use.
type Dispatcher struct {
	registry *registry.Registry
	exec     Executor
	logger   *slog.Logger
}

// New returns a Dispatcher over reg that reaches Core through exec.
func New(reg *registry.Registry, exec Executor, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{registry: reg, exec: exec, logger: logger}
}

// Tools returns the registered contracts in registration order.
func (d *Dispatcher) Tools() []contract.ToolContract {
	return d.registry.All()
}

// Lookup returns the contract registered under name.
func (d *Dispatcher) Lookup(name string) (contract.ToolContract, bool) {
	return d.registry.Lookup(name)
}

// Dispatch runs the tool called name with args.
//
// Unknown names and invalid input fail before any network effect. String
// arguments are sanitized after validation. Core failures were already
// logged by the pipeline and are returned as is.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (envelope.Envelope, error) {
	c, ok := d.registry.Lookup(name)
	if !ok {
		d.logger.Debug("unknown tool", "tool", name)
		return envelope.Envelope{}, &UnknownToolError{Name: name}
	}

	input, err := c.Input.Apply(args)
	if err == nil {
		err = sanitizeArgs(input, DefaultMaxStringSize)
	}
	if err != nil {
		d.logger.Debug("tool input rejected", "tool", name, "error", err)
		return envelope.Envelope{}, &ValidationError{Tool: name, Err: err}
	}

	req, err := c.Resolve(input)
	if err != nil {
		return envelope.Envelope{}, &ValidationError{Tool: name, Err: err}
	}

	resp, err := d.exec.Do(core.WithTool(ctx, name), req)
	if err != nil {
		return envelope.Envelope{}, err
	}

	if err := c.Output.Check(resp.Value); err != nil {
		d.logger.Warn("unexpected Core response shape", "tool", name, "error", err)
	}
	return envelope.WrapJSON(resp.Raw, resp.Value), nil
}
