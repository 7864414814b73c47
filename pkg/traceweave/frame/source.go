package frame

import (
	"runtime"
)

// DefaultLimit bounds captured traces when no explicit limit is configured.
// It mirrors the conventional stack-trace-limit knob of managed runtimes.
const DefaultLimit = 16

// Source captures the synchronous call chain of the current goroutine.
//
// Capture returns frames innermost first, excluding skip innermost frames of
// instrumentation overhead on top of the source's own internal frames. The
// configured frame limit applies to the frames remaining after the skip, so
// skipping never starves the trace of useful depth.
type Source interface {
	Capture(skip int) []Frame
}

// RuntimeSource captures frames from the Go runtime.
//
// It resolves program counters through runtime.CallersFrames, which expands
// inlined calls correctly. Column numbers are reported as 0; the runtime
// does not track them.
type RuntimeSource struct {
	// Limit bounds the number of frames returned after skipping.
	// Zero or negative means DefaultLimit.
	Limit int
}

// Capture implements Source.
//
// Skip accounting: runtime.Callers counts itself as frame 0, and Capture
// adds one more internal frame, so the caller-visible skip starts at +2.
func (s RuntimeSource) Capture(skip int) []Frame {
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if skip < 0 {
		skip = 0
	}

	// Relax the buffer by the skip so the limit applies to useful frames.
	pc := make([]uintptr, limit+skip)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make([]Frame, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, New(fr.PC, fr.File, fr.Line, 0, fr.Function))
		if len(out) == limit || !more {
			break
		}
	}
	return out
}
