package traceweave

import (
	"github.com/traceweave/traceweave/pkg/traceweave/frame"
)

// traceStore maps live operation identifiers to their stored causal
// traces. An identifier present in the store always denotes a tracked,
// not-yet-destroyed operation: entries are inserted exactly once at
// scheduling and removed exactly once at teardown.
//
// The store is not synchronized; the Engine's mutex owns it.
type traceStore struct {
	seqs map[ID][]frame.Frame
}

func newTraceStore() *traceStore {
	return &traceStore{
		seqs: make(map[ID][]frame.Frame),
	}
}

func (s *traceStore) insert(id ID, seq []frame.Frame) {
	s.seqs[id] = seq
}

func (s *traceStore) get(id ID) ([]frame.Frame, bool) {
	seq, ok := s.seqs[id]
	return seq, ok
}

func (s *traceStore) remove(id ID) {
	delete(s.seqs, id)
}

func (s *traceStore) size() int {
	return len(s.seqs)
}
