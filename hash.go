// hash.go -- keyed hashing kernel used by the PHF construction and lookup
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

import (
	"math"
	"math/bits"
)

// Hashable is implemented by key types that don't already have a built-in
// hashing rule in this package. Build{RawMap,Map,Set} fall back to this
// interface for any key type that isn't one of the recognized built-ins
// (the signed/unsigned integer kinds, float32/float64, string, bool,
// []byte).
type Hashable interface {
	// HashInto feeds the byte representation of the receiver into h.
	// Two values that compare equal must feed identical bytes.
	HashInto(h *Hasher)
}

// Hasher is a keyed streaming hash state, wyhash-style (after Wang Yi's
// wyhash), seeded per PHF instance so that construction can retry with a
// fresh seed on collision without ever colliding with a different table's
// hash space. It is not byte-compatible with any reference wyhash
// implementation; cross-platform/cross-version stability of the hash
// itself is not a goal, only of the seed/pilot search built on top of it.
//
// Hasher is not safe for concurrent use; callers construct one per call to
// hashKey and discard it.
type Hasher struct {
	seed uint64
	h    uint64
	seen bool
}

const (
	wyp0 = 0xa0761d6478bd642f
	wyp1 = 0xe7037ed1a0b428db
	wyp2 = 0x8ebc6af09c88c6e3
	wyp3 = 0x589965cc75374cc3
)

func wymix(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}

func newHasher(seed uint64) *Hasher {
	return &Hasher{seed: seed ^ wyp0}
}

func (h *Hasher) absorb(v uint64) {
	mixed := wymix(v^wyp1, h.seed^wyp2)
	if !h.seen {
		h.h = wymix(mixed, wyp3)
		h.seen = true
		return
	}
	h.h = wymix(h.h^mixed, wyp3)
}

// WriteUint64 feeds an unsigned 64 bit value into the hash state.
func (h *Hasher) WriteUint64(v uint64) { h.absorb(v) }

// WriteInt64 feeds a signed 64 bit value into the hash state.
func (h *Hasher) WriteInt64(v int64) { h.absorb(uint64(v)) }

// WriteBool feeds a boolean into the hash state.
func (h *Hasher) WriteBool(v bool) {
	if v {
		h.absorb(1)
	} else {
		h.absorb(0)
	}
}

// WriteBytes feeds an arbitrary byte string into the hash state, folding it
// 8 bytes at a time and absorbing the true length last so that "" and a
// run of zero bytes never collide by construction.
func (h *Hasher) WriteBytes(b []byte) {
	n := len(b)
	for len(b) >= 8 {
		h.absorb(leUint64(b))
		b = b[8:]
	}
	if len(b) > 0 {
		var tail [8]byte
		copy(tail[:], b)
		h.absorb(leUint64(tail[:]))
	}
	h.absorb(uint64(n))
}

// WriteString feeds a string into the hash state.
func (h *Hasher) WriteString(s string) {
	h.WriteBytes([]byte(s))
}

// Sum64 finalizes and returns the 64 bit digest. Sum64 may be called only
// once per Hasher.
func (h *Hasher) Sum64() uint64 {
	if !h.seen {
		h.h = h.seed ^ wyp2
	}
	return wymix(h.h, uint64(8)^wyp3)
}

func leUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

// hashKey computes the seeded hash of key for this PHF instance, dispatching
// on its concrete type. Types without a built-in rule must implement
// Hashable.
func hashKey[K any](key K, seed uint64) uint64 {
	h := newHasher(seed)
	switch v := any(key).(type) {
	case string:
		h.WriteString(v)
	case []byte:
		h.WriteBytes(v)
	case int:
		h.WriteInt64(int64(v))
	case int8:
		h.WriteInt64(int64(v))
	case int16:
		h.WriteInt64(int64(v))
	case int32:
		h.WriteInt64(int64(v))
	case int64:
		h.WriteInt64(v)
	case uint:
		h.WriteUint64(uint64(v))
	case uint8:
		h.WriteUint64(uint64(v))
	case uint16:
		h.WriteUint64(uint64(v))
	case uint32:
		h.WriteUint64(uint64(v))
	case uint64:
		h.WriteUint64(v)
	case uintptr:
		h.WriteUint64(uint64(v))
	case bool:
		h.WriteBool(v)
	case float32:
		h.WriteUint64(uint64(math.Float32bits(v)))
	case float64:
		h.WriteUint64(math.Float64bits(v))
	case Hashable:
		v.HashInto(h)
	default:
		panic("pthash: key type has no built-in hash rule; implement Hashable")
	}
	return h.Sum64()
}

// hashPilot is the pilot-mixing step from the original quickphf crate: a
// single odd multiplicative constant borrowed from fxhash, applied to the
// candidate pilot value before XOR-folding it against a key's hash.
func hashPilot(pilot uint16) uint64 {
	const k = 0x517cc1b727220a95
	return uint64(pilot) * k
}
