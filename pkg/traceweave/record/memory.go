package record

import (
	"sync"
)

// MemoryRecorder is an in-memory trace recorder for testing.
// Entries are lost when the process exits.
type MemoryRecorder struct {
	mu      sync.RWMutex
	entries []Entry
	closed  bool
}

// NewMemoryRecorder creates a new in-memory trace recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record implements Recorder.
func (m *MemoryRecorder) Record(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrRecorderClosed
	}

	m.entries = append(m.entries, e)
	return nil
}

// List implements Recorder.
func (m *MemoryRecorder) List(kind string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrRecorderClosed
	}

	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if kind == "" || e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close implements Recorder.
func (m *MemoryRecorder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil
	return nil
}
