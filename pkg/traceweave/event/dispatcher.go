package event

import (
	"sync"

	"github.com/google/uuid"

	"github.com/traceweave/traceweave/pkg/traceweave"
)

// Dispatcher fans lifecycle events out to registered listeners and taps.
//
// Delivery is synchronous and serialized: each announce call runs every
// listener to completion, in registration order, before returning. That
// preserves the strict event ordering the stitching engine requires.
type Dispatcher struct {
	mu        sync.Mutex
	order     []string
	listeners map[string]Listener
	taps      map[string]func(Event)
	closed    bool
}

// Subscription represents a registered listener or tap.
type Subscription interface {
	// Unsubscribe removes the registration. Safe to call more than once.
	Unsubscribe()
}

type subscription struct {
	id       string
	d        *Dispatcher
	isListen bool
}

// Unsubscribe implements Subscription.
func (s *subscription) Unsubscribe() {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if s.isListen {
		delete(s.d.listeners, s.id)
		for i, id := range s.d.order {
			if id == s.id {
				s.d.order = append(s.d.order[:i], s.d.order[i+1:]...)
				break
			}
		}
	} else {
		delete(s.d.taps, s.id)
	}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[string]Listener),
		taps:      make(map[string]func(Event)),
	}
}

// Register adds a lifecycle listener. Listeners are invoked in
// registration order.
func (d *Dispatcher) Register(l Listener) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := uuid.NewString()
	d.listeners[id] = l
	d.order = append(d.order, id)
	return &subscription{id: id, d: d, isListen: true}
}

// Tap adds an observer that receives every announced event value,
// including its metadata, after the listeners have run. Taps are for
// logging and auditing; they cannot influence delivery.
func (d *Dispatcher) Tap(fn func(Event)) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := uuid.NewString()
	d.taps[id] = fn
	return &subscription{id: id, d: d}
}

// Close drops all registrations. Announcing on a closed dispatcher is a
// no-op.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	d.listeners = make(map[string]Listener)
	d.taps = make(map[string]func(Event))
	d.order = nil
	return nil
}

// Scheduled announces an operation scheduling to all listeners.
func (d *Dispatcher) Scheduled(id traceweave.ID, kind string, trigger traceweave.ID) {
	d.announce(Scheduled{Meta: newMetadata(), Op: id, Kind: kind, Trigger: trigger}, func(l Listener) {
		l.Scheduled(id, kind, trigger)
	})
}

// DispatchEnter announces entry into a lifecycle dispatch.
func (d *Dispatcher) DispatchEnter() {
	d.announce(DispatchEnter{Meta: newMetadata()}, func(l Listener) {
		l.DispatchEnter()
	})
}

// DispatchExit announces exit from a lifecycle dispatch.
func (d *Dispatcher) DispatchExit() {
	d.announce(DispatchExit{Meta: newMetadata()}, func(l Listener) {
		l.DispatchExit()
	})
}

// Destroyed announces teardown of an operation.
func (d *Dispatcher) Destroyed(id traceweave.ID) {
	d.announce(Destroyed{Meta: newMetadata(), Op: id}, func(l Listener) {
		l.Destroyed(id)
	})
}

// announce delivers one event to every listener in registration order,
// then to every tap. The dispatcher lock is held throughout, serializing
// concurrent announcers.
func (d *Dispatcher) announce(evt Event, deliver func(Listener)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	for _, id := range d.order {
		deliver(d.listeners[id])
	}
	for _, tap := range d.taps {
		tap(evt)
	}
}
