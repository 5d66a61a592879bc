// construct_test.go -- test suite for PTHash construction
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

func hashAllFor(keys []string) func(seed uint64) []uint64 {
	return func(seed uint64) []uint64 {
		out := make([]uint64, len(keys))
		for i, k := range keys {
			out[i] = hashKey(k, seed)
		}
		return out
	}
}

func eqFor(keys []string) func(i, j int) bool {
	return func(i, j int) bool { return keys[i] == keys[j] }
}

func TestBuildParamsEmpty(t *testing.T) {
	assert := newAsserter(t)

	p, err := buildParams(0, eqFor(nil), hashAllFor(nil))
	assert(err == nil, "buildParams(0) failed: %s", err)
	assert(p.n == 0, "n = %d, want 0", p.n)
}

func TestBuildParamsSingleKey(t *testing.T) {
	assert := newAsserter(t)

	keys := []string{"lonely"}
	p, err := buildParams(1, eqFor(keys), hashAllFor(keys))
	assert(err == nil, "buildParams(1) failed: %s", err)

	h := hashKey(keys[0], p.Seed)
	slot := p.locate(h)
	assert(slot == 0, "single-key slot = %d, want 0", slot)
}

func TestBuildParamsPermutation(t *testing.T) {
	assert := newAsserter(t)

	n := len(keyw)
	p, err := buildParams(n, eqFor(keyw), hashAllFor(keyw))
	assert(err == nil, "buildParams(%d) failed: %s", n, err)

	seen := make(map[int]string)
	for _, k := range keyw {
		h := hashKey(k, p.Seed)
		slot := p.locate(h)
		assert(slot >= 0 && slot < n, "key %q mapped to out-of-range slot %d", k, slot)

		if other, ok := seen[slot]; ok {
			t.Fatalf("slot %d claimed by both %q and %q", slot, other, k)
		}
		seen[slot] = k
	}
	assert(len(seen) == n, "only %d of %d slots claimed", len(seen), n)
}

func TestBuildParamsDuplicateKeyDetected(t *testing.T) {
	assert := newAsserter(t)

	keys := []string{"a", "b", "a", "c"}
	_, err := buildParams(len(keys), eqFor(keys), hashAllFor(keys))
	assert(err != nil, "expected duplicate-key error")

	de, ok := err.(*DuplicateKeyError)
	assert(ok, "expected *DuplicateKeyError, got %T: %s", err, err)
	assert((de.I == 0 && de.J == 2) || (de.I == 2 && de.J == 0),
		"expected indices (0,2), got (%d,%d)", de.I, de.J)
}

func TestIlog2(t *testing.T) {
	assert := newAsserter(t)

	cases := map[uint64]uint{
		1: 0, 2: 1, 3: 1, 4: 2, 7: 2, 8: 3, 1023: 9, 1024: 10,
	}
	for n, want := range cases {
		got := ilog2(n)
		assert(got == want, "ilog2(%d) = %d, want %d", n, got, want)
	}
}
