// map_test.go -- test suite for Map
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

import "testing"

func TestMapBasic(t *testing.T) {
	assert := newAsserter(t)

	values := make([]int, len(keyw))
	for i := range keyw {
		values[i] = len(keyw[i])
	}

	m, err := BuildMap[string, int](keyw, values)
	assert(err == nil, "BuildMap failed: %s", err)
	assert(m.Len() == len(keyw), "Len() = %d, want %d", m.Len(), len(keyw))

	for i, k := range keyw {
		v, ok := m.Get(k)
		assert(ok, "Get(%q) reported a miss", k)
		assert(v == values[i], "Get(%q) = %d, want %d", k, v, values[i])
		assert(m.ContainsKey(k), "ContainsKey(%q) = false", k)
	}
}

func TestMapMissOnUnknownKey(t *testing.T) {
	assert := newAsserter(t)

	values := make([]int, len(keyw))
	m, err := BuildMap[string, int](keyw, values)
	assert(err == nil, "BuildMap failed: %s", err)

	_, ok := m.Get("this key was never added")
	assert(!ok, "Get on an absent key reported a hit")
	assert(!m.ContainsKey("this key was never added"), "ContainsKey on an absent key returned true")
}

func TestMapEmptyMiss(t *testing.T) {
	assert := newAsserter(t)

	m, err := BuildMap[string, int](nil, nil)
	assert(err == nil, "BuildMap(nil) failed: %s", err)

	_, ok := m.Get("anything")
	assert(!ok, "Get on an empty map reported a hit")
}

func TestMapAllKeysValues(t *testing.T) {
	assert := newAsserter(t)

	values := make([]int, len(keyw))
	for i := range keyw {
		values[i] = i
	}

	m, err := BuildMap[string, int](keyw, values)
	assert(err == nil, "BuildMap failed: %s", err)

	seenKeys := make(map[string]bool)
	for k, v := range m.All() {
		want, ok := m.Get(k)
		assert(ok && want == v, "All() yielded (%q, %d) inconsistent with Get", k, v)
		seenKeys[k] = true
	}
	assert(len(seenKeys) == len(keyw), "All() yielded %d distinct keys, want %d", len(seenKeys), len(keyw))

	n := 0
	for range m.Keys() {
		n++
	}
	assert(n == len(keyw), "Keys() yielded %d entries, want %d", n, len(keyw))

	n = 0
	for range m.Values() {
		n++
	}
	assert(n == len(keyw), "Values() yielded %d entries, want %d", n, len(keyw))
}

func TestMapEqual(t *testing.T) {
	assert := newAsserter(t)

	values := make([]int, len(keyw))
	for i := range keyw {
		values[i] = i
	}

	a, err := BuildMap[string, int](keyw, values)
	assert(err == nil, "BuildMap failed: %s", err)
	b, err := BuildMap[string, int](keyw, values)
	assert(err == nil, "BuildMap failed: %s", err)

	eq := func(x, y int) bool { return x == y }
	assert(a.Equal(b, eq), "two maps built from identical input were not Equal")

	values2 := append([]int(nil), values...)
	values2[0]++
	c, err := BuildMap[string, int](keyw, values2)
	assert(err == nil, "BuildMap failed: %s", err)
	assert(!a.Equal(c, eq), "maps with a differing value were reported Equal")
}

func TestMapReconstructionRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	values := make([]int, len(keyw))
	for i := range keyw {
		values[i] = i
	}

	m, err := BuildMap[string, int](keyw, values)
	assert(err == nil, "BuildMap failed: %s", err)

	keysOut, valuesOut := m.RawEntries()
	m2 := NewMap[string, int](m.Seed(), m.Pilots(), keysOut, valuesOut, m.Free())

	for i, k := range keyw {
		v, ok := m2.Get(k)
		assert(ok, "reconstructed Get(%q) reported a miss", k)
		assert(v == values[i], "reconstructed Get(%q) = %d, want %d", k, v, values[i])
	}
}
