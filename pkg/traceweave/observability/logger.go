// Package observability provides production-grade observability features
// for traceweave: structured logging, metrics, and spans around the
// stitching engine's lifecycle handling.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Stitch spans via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// LogScheduled logs a stitched trace being stored for a scheduled operation.
func LogScheduled(logger *slog.Logger, id uint64, kind string, trigger uint64, depth int) {
	if logger == nil {
		return
	}
	logger.Debug("operation scheduled",
		slog.Uint64("op_id", id),
		slog.String("kind", kind),
		slog.Uint64("trigger_id", trigger),
		slog.Int("trace_depth", depth),
	)
}

// LogDestroyed logs teardown of a tracked operation.
func LogDestroyed(logger *slog.Logger, id uint64, live int) {
	if logger == nil {
		return
	}
	logger.Debug("operation destroyed",
		slog.Uint64("op_id", id),
		slog.Int("live_operations", live),
	)
}

// LogScopeUnderflow logs a dispatch-exit event with no matching enter.
// This indicates a bug in the lifecycle event source, not in the engine.
func LogScopeUnderflow(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Warn("dispatch exit without matching enter; scope depth clamped at zero")
}

// LogRecordError logs a trace recorder failure (non-fatal).
func LogRecordError(logger *slog.Logger, id uint64, err error) {
	if logger == nil {
		return
	}
	logger.Warn("trace recording failed",
		slog.Uint64("op_id", id),
		slog.String("error", err.Error()),
	)
}
