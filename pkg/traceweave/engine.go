package traceweave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/traceweave/traceweave/pkg/traceweave/frame"
	"github.com/traceweave/traceweave/pkg/traceweave/observability"
	"github.com/traceweave/traceweave/pkg/traceweave/record"
)

// ID identifies one tracked asynchronous operation instance. Identifiers
// are opaque, process-unique, and never reused while the operation is
// tracked; the lifecycle event source owns their allocation.
type ID uint64

// Root is the reserved identifier for "no trigger": operations scheduled
// from top-level execution rather than from another tracked operation.
const Root ID = 0

// opMeta retains scheduling metadata for the recorder. Only kept while a
// recorder is attached.
type opMeta struct {
	kind        string
	scheduledAt time.Time
}

// Engine is the causal-trace stitching engine.
//
// It tracks the lifecycle of asynchronous operations, stores one bounded
// causal trace per live operation, and composes traces on demand. Create
// one with New; the zero value is not usable.
//
// Engine implements the lifecycle listener contract of package event, so
// it can be registered on an event.Dispatcher directly.
type Engine struct {
	mu sync.Mutex

	source   frame.Source
	maxDepth int
	skip     int

	store *traceStore
	scope *scopeTracker
	meta  map[ID]opMeta

	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	recorder record.Recorder
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxDepth: DefaultMaxDepth,
		skip:     DefaultSkipFrames,
		store:    newTraceStore(),
		scope:    newScopeTracker(),
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.source == nil {
		e.source = frame.RuntimeSource{Limit: e.maxDepth}
	}
	if e.recorder != nil {
		e.meta = make(map[ID]opMeta)
	}
	return e
}

// Scheduled records that operation id of the given kind was scheduled by
// trigger. It captures the current synchronous frames, stitches them to
// the trigger's stored trace, and stores the composed trace under id.
//
// trigger is Root when the operation has no logical trigger. A trigger
// whose trace is no longer stored (destroyed, or never tracked)
// contributes nothing; scheduling never fails.
func (e *Engine) Scheduled(id ID, kind string, trigger ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.spans.StartStitchSpan(context.Background(), kind, uint64(id), uint64(trigger))
	seq, deduped, truncated := e.stitch(trigger)
	e.store.insert(id, seq)
	e.scope.recordInit(id)
	e.spans.EndSpanWithError(span, nil)

	if e.meta != nil {
		e.meta[id] = opMeta{kind: kind, scheduledAt: time.Now().UTC()}
	}

	observability.LogScheduled(e.logger, uint64(id), kind, uint64(trigger), len(seq))
	e.metrics.RecordStitch(ctx, kind, len(seq), deduped, truncated)
}

// DispatchEnter records entry into a lifecycle dispatch (an asynchronous
// callback starting to run). Entering an outermost dispatch resets the
// recent-inits scope used for frame deduplication.
func (e *Engine) DispatchEnter() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scope.enter()
}

// DispatchExit records exit from a lifecycle dispatch. Calls must pair
// with DispatchEnter; an unmatched exit indicates a bug in the lifecycle
// source and is clamped rather than corrupting scope state.
func (e *Engine) DispatchExit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.scope.exit() {
		observability.LogScopeUnderflow(e.logger)
	}
}

// Destroyed releases all bookkeeping for operation id. It is a no-op when
// id is not tracked, so duplicate destroy events are harmless.
//
// When a recorder is attached, the operation's composed trace is handed to
// it before the state is released. Recorder failures are logged and
// swallowed; teardown itself never fails.
func (e *Engine) Destroyed(id ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	seq, ok := e.store.get(id)
	if !ok {
		return
	}
	e.store.remove(id)

	if e.recorder != nil {
		meta := e.meta[id]
		delete(e.meta, id)
		err := e.recorder.Record(record.Entry{
			OpID:        uint64(id),
			Kind:        meta.kind,
			Trace:       frame.Format(seq),
			ScheduledAt: meta.scheduledAt,
			DestroyedAt: time.Now().UTC(),
		})
		if err != nil {
			observability.LogRecordError(e.logger, uint64(id), err)
		}
	}

	observability.LogDestroyed(e.logger, uint64(id), e.store.size())
	e.metrics.RecordDestroy(context.Background(), e.store.size())
}

// Compose returns the stored causal trace for the operation whose context
// is currently executing, innermost frame first, for appending to a
// freshly built synchronous trace. It returns nil when id is not tracked.
func (e *Engine) Compose(id ID) []frame.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	seq, ok := e.store.get(id)
	if !ok {
		return nil
	}
	// Return a copy so callers cannot disturb the stored trace.
	out := make([]frame.Frame, len(seq))
	copy(out, seq)
	return out
}

// Tracked returns the number of currently tracked (not yet destroyed)
// operations.
func (e *Engine) Tracked() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.size()
}
