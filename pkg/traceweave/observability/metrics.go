package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records traceweave engine metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordStitch records one stitched trace: the kind of operation, the
	// stored depth, and how many frames were deduplicated or truncated away.
	RecordStitch(ctx context.Context, kind string, depth, deduped, truncated int)

	// RecordDestroy records teardown of a tracked operation.
	RecordDestroy(ctx context.Context, live int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	opsScheduled    metric.Int64Counter
	opsDestroyed    metric.Int64Counter
	framesDeduped   metric.Int64Counter
	framesTruncated metric.Int64Counter
	traceDepth      metric.Int64Histogram
	liveOps         metric.Int64Gauge
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("traceweave")

	opsScheduled, err := meter.Int64Counter("traceweave.operations.scheduled",
		metric.WithDescription("Number of asynchronous operations scheduled"),
	)
	if err != nil {
		return nil, err
	}

	opsDestroyed, err := meter.Int64Counter("traceweave.operations.destroyed",
		metric.WithDescription("Number of asynchronous operations destroyed"),
	)
	if err != nil {
		return nil, err
	}

	framesDeduped, err := meter.Int64Counter("traceweave.frames.deduped",
		metric.WithDescription("Frames removed as same-scope duplicates during stitching"),
	)
	if err != nil {
		return nil, err
	}

	framesTruncated, err := meter.Int64Counter("traceweave.frames.truncated",
		metric.WithDescription("Frames dropped to enforce the trace depth limit"),
	)
	if err != nil {
		return nil, err
	}

	traceDepth, err := meter.Int64Histogram("traceweave.trace.depth",
		metric.WithDescription("Depth of stored causal traces"),
	)
	if err != nil {
		return nil, err
	}

	liveOps, err := meter.Int64Gauge("traceweave.operations.live",
		metric.WithDescription("Currently tracked (not yet destroyed) operations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		opsScheduled:    opsScheduled,
		opsDestroyed:    opsDestroyed,
		framesDeduped:   framesDeduped,
		framesTruncated: framesTruncated,
		traceDepth:      traceDepth,
		liveOps:         liveOps,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordStitch records one stitched trace.
func (m *otelMetrics) RecordStitch(ctx context.Context, kind string, depth, deduped, truncated int) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
	}

	m.opsScheduled.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.traceDepth.Record(ctx, int64(depth), metric.WithAttributes(attrs...))

	if deduped > 0 {
		m.framesDeduped.Add(ctx, int64(deduped), metric.WithAttributes(attrs...))
	}
	if truncated > 0 {
		m.framesTruncated.Add(ctx, int64(truncated), metric.WithAttributes(attrs...))
	}
}

// RecordDestroy records teardown of a tracked operation.
func (m *otelMetrics) RecordDestroy(ctx context.Context, live int) {
	m.opsDestroyed.Add(ctx, 1)
	m.liveOps.Record(ctx, int64(live))
}
