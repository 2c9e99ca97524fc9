package numbering

import (
	"fmt"
	"sort"
)

type levelKey struct {
	abstractID int
	level      int
}

// LevelStore is an immutable table of level definitions indexed by
// (abstract numbering id, level).
type LevelStore struct {
	levels map[levelKey]LevelDefinition
	byID   map[int][]int // abstractID -> sorted level indexes
}

// NewLevelStore indexes the levels of every abstract numbering. A level
// defined twice within one abstract is an error.
func NewLevelStore(abstracts []AbstractNumbering) (*LevelStore, error) {
	s := &LevelStore{
		levels: make(map[levelKey]LevelDefinition),
		byID:   make(map[int][]int),
	}

	for _, a := range abstracts {
		for _, lvl := range a.Levels {
			key := levelKey{abstractID: a.ID, level: lvl.Level}
			if _, dup := s.levels[key]; dup {
				return nil, fmt.Errorf("%w: abstractNumId %d level %d", ErrDuplicateDefinition, a.ID, lvl.Level)
			}
			s.levels[key] = lvl
			s.byID[a.ID] = append(s.byID[a.ID], lvl.Level)
		}
	}

	for id := range s.byID {
		sort.Ints(s.byID[id])
	}

	return s, nil
}

// Lookup returns the definition of level in the given abstract numbering.
func (s *LevelStore) Lookup(abstractID, level int) (LevelDefinition, bool) {
	def, ok := s.levels[levelKey{abstractID: abstractID, level: level}]
	return def, ok
}

// Levels returns the defined level indexes of an abstract numbering in
// ascending order.
func (s *LevelStore) Levels(abstractID int) []int {
	src := s.byID[abstractID]
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// Len returns the number of stored level definitions.
func (s *LevelStore) Len() int {
	return len(s.levels)
}
