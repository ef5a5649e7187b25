package core

import (
	"context"
	"time"
)

// CallObservation describes one finished Core call.
type CallObservation struct {
	Tool      string
	Method    string
	Path      string
	RequestID string
	Status    int
	Started   time.Time
	Duration  time.Duration
	Err       error
}

// Observer receives one observation per Do, success or failure.
type Observer interface {
	ObserveCall(ctx context.Context, obs CallObservation)
}

type ctxKey string

const ctxKeyTool ctxKey = "tool"

// WithTool tags ctx with the tool name on whose behalf Core is called.
func WithTool(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKeyTool, name)
}

// ToolFromContext returns the tool name set by WithTool, if any.
func ToolFromContext(ctx context.Context) string {
	name, _ := ctx.Value(ctxKeyTool).(string)
	return name
}
