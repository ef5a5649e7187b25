package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/opsmcp/pkg/core"
)

// CoreObserver records every Core call into metrics and a span.
type CoreObserver struct {
	metrics *Metrics
	tracer  trace.Tracer
}

// NewCoreObserver returns an observer. Either argument may be nil.
func NewCoreObserver(metrics *Metrics, tracer trace.Tracer) *CoreObserver {
	return &CoreObserver{metrics: metrics, tracer: tracer}
}

// ObserveCall implements core.Observer.
func (o *CoreObserver) ObserveCall(ctx context.Context, obs core.CallObservation) {
	if o == nil {
		return
	}
	outcome := core.Outcome(obs.Err)

	if o.metrics != nil {
		o.metrics.recordCall(obs.Tool, obs.Method, outcome, obs.Status, obs.Duration.Seconds())
	}
	if o.tracer == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", obs.Method),
		attribute.String("url.path", obs.Path),
		attribute.String("opsmcp.request_id", obs.RequestID),
		attribute.String("opsmcp.outcome", outcome),
	}
	if obs.Tool != "" {
		attrs = append(attrs, attribute.String("opsmcp.tool", obs.Tool))
	}
	if obs.Status != 0 {
		attrs = append(attrs, attribute.Int("http.response.status_code", obs.Status))
	}

	_, span := o.tracer.Start(ctx, "core "+obs.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(obs.Started),
		trace.WithAttributes(attrs...),
	)
	if obs.Err != nil {
		span.RecordError(obs.Err)
		span.SetStatus(codes.Error, outcome)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(obs.Started.Add(obs.Duration)))
}

var _ core.Observer = (*CoreObserver)(nil)
