package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for vlite applications.
const defaultTracerName = "vlite"

// Tracer starts render-pass spans.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer resolves a tracer from the global provider. An empty name uses
// "vlite".
func NewTracer(name string) *Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return &Tracer{tracer: otel.Tracer(name)}
}

// NewTracerFrom wraps an explicit provider, mostly for tests.
func NewTracerFrom(tp trace.TracerProvider, name string) *Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return &Tracer{tracer: tp.Tracer(name)}
}

// StartPass opens a span for one render pass. The returned func ends the
// span and records err on it.
func (t *Tracer) StartPass(ctx context.Context, mountID string, forestSize int) (context.Context, func(err error)) {
	if t == nil {
		return ctx, func(error) {}
	}
	ctx, span := t.tracer.Start(ctx, "vlite.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("vlite.mount_id", mountID),
			attribute.Int("vlite.forest_size", forestSize),
		),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
