// params.go -- the constructed PHF parameters shared by all table shapes
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

// params is the output of PTHash construction: the minimal set of numbers
// needed to re-derive, for any key, the unique slot in [0, n) it was
// assigned during construction.
//
// A lookup for key k computes:
//
//	h      := hashKey(k, Seed)
//	bucket := h % len(Pilots)
//	pilot  := Pilots[bucket]
//	slot   := (h ^ hashPilot(pilot)) % codomainLen
//	if slot >= n { slot = Free[slot-n] }
//
// where codomainLen is n+len(Free) at construction time; n itself is not
// exported since RawMap/Map/Set each already know their own length.
type params struct {
	Seed   uint64
	Pilots []uint16
	Free   []uint32
	n      int // number of keys; codomainLen = n + len(Free)

	buckets  divisor
	codomain divisor
}

func (p *params) locate(h uint64) int {
	bucket := p.buckets.Rem(h)
	pilot := p.Pilots[bucket]
	slot := p.codomain.Rem(h ^ hashPilot(pilot))
	if int(slot) >= p.n {
		return int(p.Free[int(slot)-p.n])
	}
	return int(slot)
}
