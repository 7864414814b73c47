package traceweave

import (
	"log/slog"

	"github.com/traceweave/traceweave/pkg/traceweave/config"
	"github.com/traceweave/traceweave/pkg/traceweave/frame"
	"github.com/traceweave/traceweave/pkg/traceweave/observability"
	"github.com/traceweave/traceweave/pkg/traceweave/record"
)

// DefaultMaxDepth bounds stored causal traces when no explicit limit is
// configured. It mirrors the conventional stack-trace-limit knob.
const DefaultMaxDepth = frame.DefaultLimit

// DefaultSkipFrames is the number of engine-internal frames between a
// lifecycle callback and the frame capture call.
const DefaultSkipFrames = 2

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the maximum stored trace depth.
// Default: DefaultMaxDepth. Non-positive values are ignored.
//
// The limit is fixed for the engine's lifetime; the same-scope
// deduplication heuristic depends on captures sharing one limit.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithSkipFrames sets how many innermost frames of instrumentation
// overhead each capture skips. Default: DefaultSkipFrames, which covers
// the engine's own frames; integrations that interpose additional call
// layers between the lifecycle source and the engine raise it.
// Negative values are ignored.
func WithSkipFrames(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.skip = n
		}
	}
}

// WithFrameSource sets the frame source. Default: a frame.RuntimeSource
// limited to the engine's max depth. Nil is ignored.
func WithFrameSource(s frame.Source) Option {
	return func(e *Engine) {
		if s != nil {
			e.source = s
		}
	}
}

// WithLogger sets the logger for engine lifecycle logging.
// Default: nil (silent).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics. Nil is ignored.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithSpans sets the span manager wrapping stitch operations.
// Default: observability.NoopSpanManager. Nil is ignored.
func WithSpans(m observability.SpanManager) Option {
	return func(e *Engine) {
		if m != nil {
			e.spans = m
		}
	}
}

// WithRecorder attaches a recorder that receives each operation's composed
// trace at teardown. Default: none.
func WithRecorder(r record.Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// FromConfig translates a loaded configuration into engine options.
//
// Recognized keys:
//   - max_depth: maximum stored trace depth (int)
//   - skip_frames: instrumentation frames to skip per capture (int)
func FromConfig(cfg config.Config) []Option {
	return []Option{
		WithMaxDepth(cfg.Int("max_depth", DefaultMaxDepth)),
		WithSkipFrames(cfg.Int("skip_frames", DefaultSkipFrames)),
	}
}
