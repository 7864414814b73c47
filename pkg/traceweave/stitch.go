package traceweave

import (
	"github.com/traceweave/traceweave/pkg/traceweave/frame"
)

// stitch composes the causal trace for a newly scheduled operation: it
// captures the current synchronous frames, trims frames duplicated from a
// same-scope trigger, appends the trigger's stored ancestry, and truncates
// to the depth limit. Callers hold e.mu.
//
// It returns the composed trace together with the number of frames trimmed
// by deduplication and by truncation.
func (e *Engine) stitch(trigger ID) (seq []frame.Frame, deduped, truncated int) {
	captured := e.source.Capture(e.skip)

	if e.scope.recentlyInit(trigger) {
		// The trigger was scheduled earlier in the same outermost dispatch,
		// so both captures walked back through the same synchronous call
		// chain and the tails may overlap. Walk the trigger's trace
		// backward, popping matching frames off the capture. Never pop the
		// last captured frame; a trace must not degenerate to empty.
		//
		// The walk compares only the final captured frame against a moving
		// position in the parent trace. That is a heuristic which assumes
		// the depth limit stayed constant between the two captures; the
		// limit is fixed at construction, so the assumption holds here.
		parent, _ := e.store.get(trigger)
		for i := len(parent) - 1; i >= 0 && len(captured) > 1; i-- {
			if !frame.Equal(parent[i], captured[len(captured)-1]) {
				break
			}
			captured = captured[:len(captured)-1]
			deduped++
		}
	}

	if trigger != Root {
		// Carry the trigger's own causal ancestry forward. A trigger with
		// no stored trace contributes nothing. The full slice expression
		// forces a copy, so the stored parent trace is never aliased.
		parent, _ := e.store.get(trigger)
		captured = append(captured[:len(captured):len(captured)], parent...)
	}

	if len(captured) > e.maxDepth {
		// Keep the innermost-first prefix; the oldest ancestry drops off.
		truncated = len(captured) - e.maxDepth
		captured = captured[:e.maxDepth]
	}

	return captured, deduped, truncated
}
