// Package record provides write-only sinks for completed causal traces.
//
// A Recorder receives one Entry per tracked operation at teardown time, so
// stitched traces can be inspected after the operation (and its in-memory
// bookkeeping) is gone. Recorders never feed back into the stitching
// engine; they are observers only.
package record

import (
	"errors"
	"time"
)

// Entry is one recorded trace: the operation's identity and its composed
// causal trace, rendered as display text.
type Entry struct {
	// OpID is the operation identifier the trace belonged to.
	OpID uint64

	// Kind is the operation kind reported at scheduling (e.g. "TIMER").
	Kind string

	// Trace is the formatted causal trace, one frame per line.
	Trace string

	// ScheduledAt is when the operation was scheduled.
	ScheduledAt time.Time

	// DestroyedAt is when the operation was torn down.
	DestroyedAt time.Time
}

// Recorder persists completed traces.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// Record stores one completed trace.
	Record(e Entry) error

	// List returns recorded entries for a kind, oldest first.
	// An empty kind matches all entries. Returns an empty slice (not an
	// error) when nothing matches.
	List(kind string) ([]Entry, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for recorder operations.
var (
	// ErrRecorderClosed indicates the recorder has been closed.
	ErrRecorderClosed = errors.New("trace recorder closed")
)
