// rawmap.go -- a perfect-hashed table that stores only values
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

// RawMap is a perfect-hashed table that stores only values, not keys. A
// lookup for a key that was present at construction time returns the right
// value in one hash, one multiply, and two modulo reductions; a lookup for
// any other key silently returns some value from the table -- there is no
// way to detect a miss, since the keys themselves were never kept.
//
// Use Map instead when queries may present keys outside the original set
// and a definite answer is required.
type RawMap[K any, V any] struct {
	p      *params
	values []V
}

// NewRawMap reconstructs a table directly from previously constructed PHF
// parameters, without repeating the bucket/pilot search. This is the entry
// point emitted Go source (see emit.go) and the artifact store reader (see
// filestore_reader.go) both call to bring a table back to life cheaply.
func NewRawMap[K any, V any](seed uint64, pilots []uint16, values []V, free []uint32) *RawMap[K, V] {
	n := len(values)
	codomainLen := uint64(n + len(free))
	if codomainLen == 0 {
		codomainLen = 1
	}
	bucketsLen := uint64(len(pilots))
	if bucketsLen == 0 {
		bucketsLen = 1
	}

	p := &params{
		Seed:     seed,
		Pilots:   pilots,
		Free:     free,
		n:        n,
		buckets:  newDivisor(bucketsLen),
		codomain: newDivisor(codomainLen),
	}
	return &RawMap[K, V]{p: p, values: values}
}

// Get returns the value associated with key. If the table was built from
// zero keys, Get has nothing to return and fails with ErrEmptyLookup. For
// any non-empty table, Get always returns a value -- if key was not one of
// the keys the table was built from, the returned value is an arbitrary
// element of the table, not a useful answer.
func (m *RawMap[K, V]) Get(key K) (V, error) {
	var zero V
	if len(m.values) == 0 {
		return zero, ErrEmptyLookup
	}

	h := hashKey(key, m.p.Seed)
	return m.values[m.p.locate(h)], nil
}

// Len returns the number of values in the table.
func (m *RawMap[K, V]) Len() int {
	return len(m.values)
}

// IsEmpty returns true if the table holds no values.
func (m *RawMap[K, V]) IsEmpty() bool {
	return len(m.values) == 0
}

// Seed returns the seed this table's parameters were constructed with.
// Exported for the code emitter and the artifact store writer.
func (m *RawMap[K, V]) Seed() uint64 { return m.p.Seed }

// Pilots returns the per-bucket pilot table. Exported for the code
// emitter and the artifact store writer.
func (m *RawMap[K, V]) Pilots() []uint16 { return m.p.Pilots }

// Free returns the back-to-front redirection table. Exported for the code
// emitter and the artifact store writer.
func (m *RawMap[K, V]) Free() []uint32 { return m.p.Free }

// RawValues returns the underlying value slice in slot order, i.e. value i
// is stored at codomain slot i. Exported for the code emitter and the
// artifact store writer; ordinary callers should prefer Values.
func (m *RawMap[K, V]) RawValues() []V { return m.values }

// Values returns an iterator over every stored value, in no particular
// order.
func (m *RawMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.values {
			if !yield(v) {
				return
			}
		}
	}
}
