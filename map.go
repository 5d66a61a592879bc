// map.go -- a perfect-hashed table that verifies keys
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

// Map is a perfect-hashed table of (key, value) pairs. Unlike RawMap, it
// stores the key alongside each value and compares it on every lookup, so
// a query for a key outside the original set reliably reports a miss
// instead of returning an arbitrary answer.
type Map[K comparable, V any] struct {
	raw RawMap[K, entry[K, V]]
}

type entry[K comparable, V any] struct {
	key K
	val V
}

// NewMap reconstructs a table directly from previously constructed PHF
// parameters and a slice of (key, value) entries, without repeating the
// bucket/pilot search.
func NewMap[K comparable, V any](seed uint64, pilots []uint16, keys []K, values []V, free []uint32) *Map[K, V] {
	entries := make([]entry[K, V], len(keys))
	for i := range keys {
		entries[i] = entry[K, V]{key: keys[i], val: values[i]}
	}
	return &Map[K, V]{raw: *NewRawMap[K, entry[K, V]](seed, pilots, entries, free)}
}

// GetKeyValue returns the stored key and value matching key, and whether
// one was found.
func (m *Map[K, V]) GetKeyValue(key K) (K, V, bool) {
	if m.raw.IsEmpty() {
		var zk K
		var zv V
		return zk, zv, false
	}

	e, err := m.raw.Get(key)
	if err != nil || e.key != key {
		var zk K
		var zv V
		return zk, zv, false
	}
	return e.key, e.val, true
}

// Get returns the value matching key, and whether one was found.
func (m *Map[K, V]) Get(key K) (V, bool) {
	_, v, ok := m.GetKeyValue(key)
	return v, ok
}

// GetKey returns the copy of key stored in the map, and whether one was
// found. Useful when K carries data beyond what equality compares (e.g. a
// struct with an ignored field), so the caller can recover the canonical
// stored copy.
func (m *Map[K, V]) GetKey(key K) (K, bool) {
	k, _, ok := m.GetKeyValue(key)
	return k, ok
}

// ContainsKey reports whether key is present in the map.
func (m *Map[K, V]) ContainsKey(key K) bool {
	_, _, ok := m.GetKeyValue(key)
	return ok
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.raw.Len()
}

// IsEmpty returns true if the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.raw.IsEmpty()
}

// All returns an iterator over every (key, value) pair, in no particular
// order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.raw.Values() {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// Keys returns an iterator over every stored key, in no particular order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := range m.raw.Values() {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Values returns an iterator over every stored value, in no particular
// order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := range m.raw.Values() {
			if !yield(e.val) {
				return
			}
		}
	}
}

// Seed returns the seed this map's parameters were constructed with.
// Exported for the code emitter and the artifact store writer.
func (m *Map[K, V]) Seed() uint64 { return m.raw.Seed() }

// Pilots returns the per-bucket pilot table. Exported for the code
// emitter and the artifact store writer.
func (m *Map[K, V]) Pilots() []uint16 { return m.raw.Pilots() }

// Free returns the back-to-front redirection table. Exported for the code
// emitter and the artifact store writer.
func (m *Map[K, V]) Free() []uint32 { return m.raw.Free() }

// RawEntries returns the underlying (key, value) pairs in slot order.
// Exported for the code emitter and the artifact store writer.
func (m *Map[K, V]) RawEntries() (keys []K, values []V) {
	raw := m.raw.RawValues()
	keys = make([]K, len(raw))
	values = make([]V, len(raw))
	for i, e := range raw {
		keys[i] = e.key
		values[i] = e.val
	}
	return keys, values
}

// Equal reports whether m and o contain the same set of (key, value) pairs.
func (m *Map[K, V]) Equal(o *Map[K, V], eq func(a, b V) bool) bool {
	if m.Len() != o.Len() {
		return false
	}
	for k, v := range m.All() {
		ov, ok := o.Get(k)
		if !ok || !eq(v, ov) {
			return false
		}
	}
	return true
}
