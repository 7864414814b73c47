/*
Package traceweave reconstructs causal stack traces across asynchronous
boundaries.

# Overview

When an error is raised inside an asynchronous callback, the synchronous
call stack only reaches back to the event-loop dispatch point. The chain of
asynchronous operations that logically led there (timers, promise
continuations, I/O callbacks) is gone. traceweave records, at the moment
each asynchronous operation is scheduled, the synchronous frames leading to
that scheduling call, stitches them onto the stored trace of the operation
that triggered the scheduling, and serves the composed causal trace back
whenever a stack trace is built from that operation's context.

The library provides:
  - An Engine tracking operation lifecycle (scheduled, dispatch enter/exit,
    destroyed) and storing one bounded causal trace per live operation
  - Pluggable frame capture (package frame) with a runtime.Callers default
  - Extension points for error formatting (package hook): filtering out
    instrumentation frames and extending a trace with causal ancestry
  - Optional recording of completed traces at teardown (package record)
  - Structured logging, metrics, and spans (package observability)

# Basic Usage

Create an engine and feed it lifecycle events:

	eng := traceweave.New(traceweave.WithMaxDepth(32))

	// An operation scheduled from top-level execution.
	eng.Scheduled(1, "TIMER", traceweave.Root)

	// Its callback runs; inside it, another operation is scheduled.
	eng.DispatchEnter()
	eng.Scheduled(2, "PROMISE", 1)
	eng.DispatchExit()

	// Later, from operation 2's context, compose the causal ancestry.
	frames := eng.Compose(2)
	fmt.Print(frame.Format(frames))

	// Teardown releases all bookkeeping for the operation.
	eng.Destroyed(1)

Lifecycle events for a given operation must arrive in order: scheduled,
then any number of dispatch enter/exit pairs, then destroyed. The engine
assumes the lifecycle source honors this ordering.

# Event Plumbing

Package event provides a synchronous Dispatcher for wiring a lifecycle
source to one or more engines without coupling them:

	d := event.NewDispatcher()
	d.Register(eng)
	d.Scheduled(1, "TIMER", traceweave.Root)

# Error Formatting

Package hook supplies the two extension points consumed by whatever builds
human-visible traces: a filter removing traceweave's own frames, and an
extender appending Compose output to synchronously gathered frames.

# Concurrency

All Engine entry points run synchronously to completion and are safe for
concurrent use; a single mutex serializes access to the causal bookkeeping.
Within one lifecycle event, no call blocks or suspends.
*/
package traceweave
