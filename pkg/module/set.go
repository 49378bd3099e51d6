package module

import (
	"iter"
	"slices"
)

// IDSet is an insertion-ordered set of module IDs.
// The zero value is an empty set ready to use.
type IDSet struct {
	order []string
	index map[string]struct{}
}

// Add inserts id and reports whether it was not already present.
func (s *IDSet) Add(id string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Has reports whether id is in the set.
func (s *IDSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s *IDSet) Len() int { return len(s.order) }

// Items returns a copy of the IDs in insertion order.
func (s *IDSet) Items() []string { return slices.Clone(s.order) }

// All iterates the IDs in insertion order.
func (s *IDSet) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, id := range s.order {
			if !yield(id) {
				return
			}
		}
	}
}
