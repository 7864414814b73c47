// Package event provides lifecycle event plumbing between an asynchronous
// operation source and one or more stitching engines.
//
// A lifecycle source announces four events per operation: scheduled,
// dispatch enter, dispatch exit, and destroyed. The Dispatcher fans these
// out synchronously, preserving the strict per-operation ordering the
// engine depends on (scheduled, then dispatch pairs, then destroyed).
// Delivery happens inline on the announcing goroutine; buffering would
// break the ordering guarantee.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/traceweave/traceweave/pkg/traceweave"
)

// Type identifies a lifecycle event.
type Type string

// Lifecycle event types.
const (
	TypeScheduled     Type = "operation.scheduled"
	TypeDispatchEnter Type = "dispatch.enter"
	TypeDispatchExit  Type = "dispatch.exit"
	TypeDestroyed     Type = "operation.destroyed"
)

// Metadata carries identity and timing for one announced event.
type Metadata struct {
	// EventID uniquely identifies this event instance.
	EventID string `json:"id"`
	// Timestamp is when the event was announced.
	Timestamp time.Time `json:"timestamp"`
}

func newMetadata() Metadata {
	return Metadata{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
}

// Event is implemented by all lifecycle event values.
type Event interface {
	// Type returns the lifecycle event type.
	Type() Type
	// Metadata returns the event's identity and timing.
	Metadata() Metadata
}

// Scheduled announces that an operation was scheduled by a trigger.
type Scheduled struct {
	Meta    Metadata      `json:"metadata"`
	Op      traceweave.ID `json:"op_id"`
	Kind    string        `json:"kind"`
	Trigger traceweave.ID `json:"trigger_id"`
}

// Type returns TypeScheduled.
func (e Scheduled) Type() Type { return TypeScheduled }

// Metadata returns the event metadata.
func (e Scheduled) Metadata() Metadata { return e.Meta }

// DispatchEnter announces entry into a lifecycle dispatch.
type DispatchEnter struct {
	Meta Metadata `json:"metadata"`
}

// Type returns TypeDispatchEnter.
func (e DispatchEnter) Type() Type { return TypeDispatchEnter }

// Metadata returns the event metadata.
func (e DispatchEnter) Metadata() Metadata { return e.Meta }

// DispatchExit announces exit from a lifecycle dispatch.
type DispatchExit struct {
	Meta Metadata `json:"metadata"`
}

// Type returns TypeDispatchExit.
func (e DispatchExit) Type() Type { return TypeDispatchExit }

// Metadata returns the event metadata.
func (e DispatchExit) Metadata() Metadata { return e.Meta }

// Destroyed announces teardown of an operation.
type Destroyed struct {
	Meta Metadata      `json:"metadata"`
	Op   traceweave.ID `json:"op_id"`
}

// Type returns TypeDestroyed.
func (e Destroyed) Type() Type { return TypeDestroyed }

// Metadata returns the event metadata.
func (e Destroyed) Metadata() Metadata { return e.Meta }

// Listener consumes lifecycle events in delivery order.
// *traceweave.Engine satisfies Listener.
type Listener interface {
	Scheduled(id traceweave.ID, kind string, trigger traceweave.ID)
	DispatchEnter()
	DispatchExit()
	Destroyed(id traceweave.ID)
}

// Compile-time check that the engine is wireable.
var _ Listener = (*traceweave.Engine)(nil)
