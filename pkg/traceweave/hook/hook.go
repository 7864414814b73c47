// Package hook provides the extension points for presenting stitched
// traces: a filter that hides instrumentation frames, an extender that
// appends stored ancestry to freshly captured frames, and a formatter
// for human-readable output.
package hook

import (
	"io"
	"strings"

	"github.com/traceweave/traceweave/pkg/traceweave"
	"github.com/traceweave/traceweave/pkg/traceweave/frame"
)

// internalPrefixes identifies functions belonging to the stitching
// machinery itself. Frames whose function matches one of these are
// noise in user-facing traces.
var internalPrefixes = []string{
	"github.com/traceweave/traceweave/pkg/traceweave.",
	"github.com/traceweave/traceweave/pkg/traceweave/",
}

// Filter returns the frames with instrumentation-internal entries
// removed. Frames whose function name is unknown are kept. The input
// slice is never modified.
func Filter(frames []frame.Frame) []frame.Frame {
	out := make([]frame.Frame, 0, len(frames))
	for _, f := range frames {
		fn, ok := f.Function()
		if ok && isInternal(fn) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isInternal(fn string) bool {
	for _, prefix := range internalPrefixes {
		if strings.HasPrefix(fn, prefix) {
			return true
		}
	}
	return false
}

// Composer resolves an operation's stored causal trace.
// *traceweave.Engine satisfies it.
type Composer interface {
	Compose(id traceweave.ID) []frame.Frame
}

var _ Composer = (*traceweave.Engine)(nil)

// Extender appends an operation's stored ancestry to frames gathered
// by some other means, such as a panic handler's own stack capture.
type Extender struct {
	composer Composer
}

// NewExtender returns an Extender backed by c.
func NewExtender(c Composer) *Extender {
	return &Extender{composer: c}
}

// Extend returns frames followed by the stored trace for current. The
// input slice is never modified; the result is always a fresh slice.
func (e *Extender) Extend(current traceweave.ID, frames []frame.Frame) []frame.Frame {
	ancestry := e.composer.Compose(current)
	out := make([]frame.Frame, 0, len(frames)+len(ancestry))
	out = append(out, frames...)
	out = append(out, ancestry...)
	return out
}

// Format renders frames for display with instrumentation entries
// filtered out.
func Format(frames []frame.Frame) string {
	return frame.Format(Filter(frames))
}

// WriteTrace writes the filtered rendering of frames to w.
func WriteTrace(w io.Writer, frames []frame.Frame) error {
	_, err := io.WriteString(w, Format(frames))
	return err
}
