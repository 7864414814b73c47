package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the traceweave tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("traceweave")

// SpanManager handles span lifecycle around stitch operations.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartStitchSpan starts a span covering one stitch of a scheduled
	// operation. Returns the context with span and the span itself.
	StartStitchSpan(ctx context.Context, kind string, id, trigger uint64) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartStitchSpan starts a span covering one stitch operation.
func (m *otelSpanManager) StartStitchSpan(ctx context.Context, kind string, id, trigger uint64) (context.Context, trace.Span) {
	return tracer.Start(ctx, "traceweave.stitch",
		trace.WithAttributes(
			attribute.String("op.kind", kind),
			attribute.Int64("op.id", int64(id)),
			attribute.Int64("op.trigger_id", int64(trigger)),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
