// divisor.go -- precomputed-reciprocal fast division/modulo for uint64
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

import "math/bits"

// divisor precomputes a 128 bit reciprocal for a fixed uint64 divisor, so
// that the repeated "hash % n" reductions on the lookup hot path (once
// against the bucket count, once against the codomain size) cost two
// 128x64 bit multiplies (four 64x64->128 products) instead of a hardware DIV. Both of this package's
// moduli are fixed for the lifetime of a table, so the reciprocal is built
// once at construction time and reused for every lookup.
//
// This is the same folklore trick described in Lemire, "Faster Remainder by
// Direct Computation" -- the reciprocal here is kept as a full 128 bit value
// (mHi, mLo) rather than a single word, which is what makes it exact for
// every 64 bit divisor rather than only powers of two.
type divisor struct {
	d   uint64
	mHi uint64
	mLo uint64
}

func newDivisor(d uint64) divisor {
	if d == 0 {
		panic("pthash: zero divisor")
	}
	if d == 1 {
		return divisor{d: 1}
	}

	// M = floor((2^128 - 1) / d) + 1, computed as a 128 bit quotient by
	// first dividing the high word, then feeding its remainder (which is
	// always < d) into the low-word division.
	qHi := ^uint64(0) / d
	rHi := ^uint64(0) % d
	qLo, _ := bits.Div64(rHi, ^uint64(0), d)

	mLo, carry := bits.Add64(qLo, 1, 0)
	mHi := qHi + carry

	return divisor{d: d, mHi: mHi, mLo: mLo}
}

// Get returns the divisor's value, i.e. n in "x % n".
func (dv divisor) Get() uint64 {
	return dv.d
}

// Rem returns x % dv.d without a hardware division instruction.
func (dv divisor) Rem(x uint64) uint64 {
	if dv.d == 1 {
		return 0
	}

	// lowbits = (M * x) mod 2^128: the low two words of the 192 bit
	// product, discarding the overflow word.
	_, p1, p0 := mul128by64(dv.mHi, dv.mLo, x)

	// remainder = high word of (lowbits * d), a 128x64->192 bit product.
	r, _, _ := mul128by64(p1, p0, dv.d)
	return r
}

// mul128by64 multiplies the 128 bit value (aHi:aLo) by the 64 bit value b
// and returns the full 192 bit product as three words, most significant
// first.
func mul128by64(aHi, aLo, b uint64) (p2, p1, p0 uint64) {
	hi1, lo0 := bits.Mul64(aLo, b)
	hi2, lo2 := bits.Mul64(aHi, b)
	mid, carry := bits.Add64(lo2, hi1, 0)
	return hi2 + carry, mid, lo0
}
