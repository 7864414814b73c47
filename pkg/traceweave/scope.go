package traceweave

// scopeTracker tracks the nesting depth of lifecycle dispatches and the
// set of operations scheduled since the last outermost dispatch began.
//
// Membership in recent gates frame deduplication: only a trigger scheduled
// in the current outermost dispatch can share a synchronous call tail with
// a new capture. The set is cleared exactly when depth transitions 0 -> 1,
// never mid-nesting, so operations scheduled at depth 0 stay recent until
// the next outermost dispatch begins.
type scopeTracker struct {
	depth  int
	recent map[ID]struct{}
}

func newScopeTracker() *scopeTracker {
	return &scopeTracker{
		recent: make(map[ID]struct{}),
	}
}

// enter records entry into a dispatch, resetting the recent-inits set when
// this is an outermost dispatch.
func (s *scopeTracker) enter() {
	if s.depth == 0 {
		clear(s.recent)
	}
	s.depth++
}

// exit records leaving a dispatch. It reports false when there is no
// matching enter, leaving the depth clamped at zero.
func (s *scopeTracker) exit() bool {
	if s.depth == 0 {
		return false
	}
	s.depth--
	return true
}

// recordInit marks id as scheduled within the current outermost dispatch.
func (s *scopeTracker) recordInit(id ID) {
	s.recent[id] = struct{}{}
}

// recentlyInit reports whether id was scheduled within the current
// outermost dispatch.
func (s *scopeTracker) recentlyInit(id ID) bool {
	_, ok := s.recent[id]
	return ok
}
