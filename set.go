// set.go -- a perfect-hashed membership set
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package pthash

import "iter"

// Set is a perfect-hashed membership set. It stores each key once and
// compares it on every Contains call, so a query for a key outside the
// original set reliably reports false.
type Set[K comparable] struct {
	raw RawMap[K, K]
}

// NewSet reconstructs a table directly from previously constructed PHF
// parameters and a slice of elements, without repeating the bucket/pilot
// search.
func NewSet[K comparable](seed uint64, pilots []uint16, elements []K, free []uint32) *Set[K] {
	return &Set[K]{raw: *NewRawMap[K, K](seed, pilots, elements, free)}
}

// Get returns the copy of element stored in the set, and whether it was
// found.
func (s *Set[K]) Get(element K) (K, bool) {
	if s.raw.IsEmpty() {
		var zero K
		return zero, false
	}

	k, err := s.raw.Get(element)
	if err != nil || k != element {
		var zero K
		return zero, false
	}
	return k, true
}

// Contains reports whether element is a member of the set.
func (s *Set[K]) Contains(element K) bool {
	_, ok := s.Get(element)
	return ok
}

// Len returns the number of elements in the set.
func (s *Set[K]) Len() int {
	return s.raw.Len()
}

// IsEmpty returns true if the set holds no elements.
func (s *Set[K]) IsEmpty() bool {
	return s.raw.IsEmpty()
}

// All returns an iterator over every element, in no particular order.
func (s *Set[K]) All() iter.Seq[K] {
	return s.raw.Values()
}

// Difference returns an iterator over every element of s that is not in o.
func (s *Set[K]) Difference(o *Set[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range s.All() {
			if !o.Contains(k) {
				if !yield(k) {
					return
				}
			}
		}
	}
}

// Intersection returns an iterator over every element that is in both s
// and o.
func (s *Set[K]) Intersection(o *Set[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range s.All() {
			if o.Contains(k) {
				if !yield(k) {
					return
				}
			}
		}
	}
}

// SymmetricDifference returns an iterator over every element that is in
// exactly one of s or o.
func (s *Set[K]) SymmetricDifference(o *Set[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range s.Difference(o) {
			if !yield(k) {
				return
			}
		}
		for k := range o.Difference(s) {
			if !yield(k) {
				return
			}
		}
	}
}

// Union returns an iterator over every element that is in s or o.
func (s *Set[K]) Union(o *Set[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range s.All() {
			if !yield(k) {
				return
			}
		}
		for k := range o.Difference(s) {
			if !yield(k) {
				return
			}
		}
	}
}

// IsDisjoint reports whether s and o share no elements.
func (s *Set[K]) IsDisjoint(o *Set[K]) bool {
	for range s.Intersection(o) {
		return false
	}
	return true
}

// IsSubset reports whether every element of s is also in o.
func (s *Set[K]) IsSubset(o *Set[K]) bool {
	for range s.Difference(o) {
		return false
	}
	return true
}

// IsSuperset reports whether every element of o is also in s.
func (s *Set[K]) IsSuperset(o *Set[K]) bool {
	return o.IsSubset(s)
}

// Seed returns the seed this set's parameters were constructed with.
// Exported for the code emitter and the artifact store writer.
func (s *Set[K]) Seed() uint64 { return s.raw.Seed() }

// Pilots returns the per-bucket pilot table. Exported for the code
// emitter and the artifact store writer.
func (s *Set[K]) Pilots() []uint16 { return s.raw.Pilots() }

// Free returns the back-to-front redirection table. Exported for the code
// emitter and the artifact store writer.
func (s *Set[K]) Free() []uint32 { return s.raw.Free() }

// RawElements returns the underlying elements in slot order. Exported for
// the code emitter and the artifact store writer.
func (s *Set[K]) RawElements() []K { return s.raw.RawValues() }

// Equal reports whether s and o contain the same elements.
func (s *Set[K]) Equal(o *Set[K]) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k := range s.All() {
		if !o.Contains(k) {
			return false
		}
	}
	return true
}
