// bitvector.go -- simple bitvector used as construction-time occupancy scratch
//
// (c) Sudhi Herle 2018
//
// License GPLv2
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package pthash

// bitVector is a fixed-size bit array. It backs the pilot search's
// occupancy tracking: a global vector recording which destination slots
// in [0, M) are taken, and a per-bucket scratch vector used to detect
// within-bucket collisions before a pilot candidate is accepted.
//
// Construction is single-threaded (see package doc), so unlike some
// bitvectors in this lineage this one carries no internal locking.
type bitVector struct {
	v []uint64
}

// newBitVector creates a bitvector able to hold at least 'sz' bits,
// rounded up to the next multiple of 64.
func newBitVector(sz uint64) *bitVector {
	sz += 63
	sz &= ^(uint64(63))
	words := sz / 64
	return &bitVector{v: make([]uint64, words)}
}

// Set sets bit 'i'.
func (b *bitVector) Set(i uint64) {
	b.v[i/64] |= uint64(1) << (i % 64)
}

// IsSet returns true if bit 'i' is set.
func (b *bitVector) IsSet(i uint64) bool {
	return 1 == (1 & (b.v[i/64] >> (i % 64)))
}

// Reset clears every bit.
func (b *bitVector) Reset() {
	v := b.v
	for i := range v {
		v[i] = 0
	}
}

// Merge ORs the contents of 'o' into 'b'. Both must be the same size.
func (b *bitVector) Merge(o *bitVector) {
	for i, z := range o.v {
		b.v[i] |= z
	}
}
