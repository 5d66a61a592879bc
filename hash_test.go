// hash_test.go -- test suite for the keyed hashing kernel
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

func TestHashKeyDeterministic(t *testing.T) {
	assert := newAsserter(t)

	seed := rand64()
	for _, s := range keyw {
		a := hashKey(s, seed)
		b := hashKey(s, seed)
		assert(a == b, "hashKey(%q) not deterministic: %#x vs %#x", s, a, b)
	}
}

func TestHashKeyDifferentSeeds(t *testing.T) {
	assert := newAsserter(t)

	a := hashKey("expectoration", uint64(1)<<32)
	b := hashKey("expectoration", uint64(2)<<32)
	assert(a != b, "two different seeds produced the same hash")
}

func TestHashKeyDistinctKeys(t *testing.T) {
	assert := newAsserter(t)

	seed := rand64()
	seen := make(map[uint64]string)
	for _, s := range keyw {
		h := hashKey(s, seed)
		other, ok := seen[h]
		assert(!ok, "hash collision between %q and %q at seed %#x", s, other, seed)
		seen[h] = s
	}
}

func TestHashKeyEmptyString(t *testing.T) {
	assert := newAsserter(t)

	seed := rand64()
	empty := hashKey("", seed)
	zeros := hashKey(string([]byte{0}), seed)
	assert(empty != zeros, "empty string collided with a single zero byte")
}

func TestHashKeyIntegers(t *testing.T) {
	assert := newAsserter(t)

	seed := rand64()
	seen := make(map[uint64]bool)
	for i := int64(0); i < 256; i++ {
		h := hashKey(i, seed)
		assert(!seen[h], "collision hashing small integer %d", i)
		seen[h] = true
	}
}

func TestHashKeyBool(t *testing.T) {
	assert := newAsserter(t)

	seed := rand64()
	a := hashKey(true, seed)
	b := hashKey(false, seed)
	assert(a != b, "true and false hashed identically")
}

type point struct {
	x, y int32
}

func (p point) HashInto(h *Hasher) {
	h.WriteInt64(int64(p.x))
	h.WriteInt64(int64(p.y))
}

func TestHashKeyHashable(t *testing.T) {
	assert := newAsserter(t)

	seed := rand64()
	a := hashKey(point{1, 2}, seed)
	b := hashKey(point{2, 1}, seed)
	assert(a != b, "distinct Hashable values hashed identically")

	c := hashKey(point{1, 2}, seed)
	assert(a == c, "Hashable hashing not deterministic")
}

func TestHashKeyPanicsOnUnsupportedType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected hashKey to panic on a type with no hash rule")
		}
	}()

	type unsupported struct{ a, b int }
	hashKey(unsupported{1, 2}, 0)
}

func TestHashPilotVaries(t *testing.T) {
	assert := newAsserter(t)

	seen := make(map[uint64]bool)
	for p := uint16(0); p < 1024; p++ {
		h := hashPilot(p)
		assert(!seen[h], "hashPilot collided at pilot %d", p)
		seen[h] = true
	}
}

func TestHashPilotZero(t *testing.T) {
	assert := newAsserter(t)
	assert(hashPilot(0) == 0, "hashPilot(0) must be 0, got %#x", hashPilot(0))
}
