package iteratable

import (
	"fmt"
	"strings"
)

// Set is an insertion-ordered set of comparable values. The zero value is
// not usable; create sets with NewSet.
//
// Iteration with IterateOnce/Next/Item tolerates additions to the set during
// iteration: added items will be visited in the same iteration run.
type Set[T comparable] struct {
	items  []T
	index  map[T]int
	cursor int
}

// NewSet creates an empty set with an initial capacity.
func NewSet[T comparable](capacity int) *Set[T] {
	return &Set[T]{
		items: make([]T, 0, capacity),
		index: make(map[T]int, capacity),
	}
}

// Add adds items to s, ignoring duplicates. Returns s.
func (s *Set[T]) Add(items ...T) *Set[T] {
	for _, item := range items {
		if _, ok := s.index[item]; !ok {
			s.index[item] = len(s.items)
			s.items = append(s.items, item)
		}
	}
	return s
}

// Contains is true if item is in s.
func (s *Set[T]) Contains(item T) bool {
	_, ok := s.index[item]
	return ok
}

// Remove removes item from s, keeping the order of the remaining items.
func (s *Set[T]) Remove(item T) *Set[T] {
	i, ok := s.index[item]
	if !ok {
		return s
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, item)
	for k := i; k < len(s.items); k++ {
		s.index[s.items[k]] = k
	}
	if s.cursor > i {
		s.cursor--
	}
	return s
}

// Size returns the number of items in s.
func (s *Set[T]) Size() int {
	return len(s.items)
}

// Empty is true for sets without items.
func (s *Set[T]) Empty() bool {
	return len(s.items) == 0
}

// Values returns the items of s in insertion order, as a copy.
func (s *Set[T]) Values() []T {
	return append([]T(nil), s.items...)
}

// First returns the first item of s.
func (s *Set[T]) First() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[0], true
}

// Copy returns a new set with the items of s.
func (s *Set[T]) Copy() *Set[T] {
	c := NewSet[T](len(s.items))
	return c.Add(s.items...)
}

// Equals is true if s and other contain the same items, in any order.
func (s *Set[T]) Equals(other *Set[T]) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for _, item := range s.items {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}

// Union adds all items of other to s (destructive). Returns s.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	return s.Add(other.items...)
}

// Difference removes all items of other from s (destructive). Returns s.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	kept := s.items[:0]
	for _, item := range s.items {
		if !other.Contains(item) {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.index = make(map[T]int, len(kept))
	for i, item := range kept {
		s.index[item] = i
	}
	s.cursor = 0
	return s
}

// Subset returns a new set with the items of s satisfying pred.
func (s *Set[T]) Subset(pred func(T) bool) *Set[T] {
	r := NewSet[T](len(s.items))
	for _, item := range s.items {
		if pred(item) {
			r.Add(item)
		}
	}
	return r
}

// IterateOnce starts an iteration run.
func (s *Set[T]) IterateOnce() {
	s.cursor = 0
}

// Next advances the iteration. It is false when all items have been visited.
func (s *Set[T]) Next() bool {
	if s.cursor >= len(s.items) {
		return false
	}
	s.cursor++
	return true
}

// Item returns the current item of an iteration run.
func (s *Set[T]) Item() T {
	return s.items[s.cursor-1]
}

func (s *Set[T]) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, item := range s.items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", item)
	}
	b.WriteString("}")
	return b.String()
}
