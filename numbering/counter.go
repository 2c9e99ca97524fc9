package numbering

// CounterState holds the running counters of one render pass, keyed by
// (numbering instance, level). A level without an entry is uninitialized.
//
// A CounterState belongs to exactly one pass and is not safe for
// concurrent use. Discarding it is the only cleanup a pass needs.
type CounterState struct {
	counters map[int]map[int]int // instanceID -> level -> count
}

// NewCounterState returns an empty counter state.
func NewCounterState() *CounterState {
	return &CounterState{counters: make(map[int]map[int]int)}
}

// Value returns the current count of (instanceID, level).
func (s *CounterState) Value(instanceID, level int) (int, bool) {
	v, ok := s.counters[instanceID][level]
	return v, ok
}

// Len returns the number of active counters.
func (s *CounterState) Len() int {
	n := 0
	for _, levels := range s.counters {
		n += len(levels)
	}
	return n
}

// Reset discards all counters.
func (s *CounterState) Reset() {
	s.counters = make(map[int]map[int]int)
}

// advance initializes the counter to start on first use and increments it
// otherwise. It returns the new value.
func (s *CounterState) advance(instanceID, level, start int) int {
	levels, ok := s.counters[instanceID]
	if !ok {
		levels = make(map[int]int)
		s.counters[instanceID] = levels
	}
	v, active := levels[level]
	if active {
		v++
	} else {
		v = start
	}
	levels[level] = v
	return v
}

// resetDeeper discards the counters of instanceID deeper than level for
// which restart reports true.
func (s *CounterState) resetDeeper(instanceID, level int, restart func(deeper int) bool) {
	for l := range s.counters[instanceID] {
		if l > level && restart(l) {
			delete(s.counters[instanceID], l)
		}
	}
}
