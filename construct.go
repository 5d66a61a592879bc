// construct.go -- the PTHash construction algorithm
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
	"sort"
)

const (
	maxAlpha = 0.99
	minC     = 1.5
)

// ilog2 returns floor(log2(n)) for n >= 1.
func ilog2(n uint64) uint {
	b := uint(0)
	for n > 1 {
		n >>= 1
		b++
	}
	return b
}

type hashedEntry struct {
	idx    int
	hash   uint64
	bucket uint64
}

type bucketSpan struct {
	idx      int
	startIdx int
	size     int
}

// buildParams runs PTHash construction. n is the key count; eq reports
// whether the two original keys at the given indices compare equal (used
// only to distinguish a genuine duplicate key from an incidental full-hash
// collision); hashAll computes the seeded hash of every key for a candidate
// seed, in original key order.
//
// Construction retries with seed (1<<32), (2<<32), (3<<32), ... until a
// seed yields a complete bucket/pilot assignment. The search is unbounded,
// matching the reference construction this package is ported from: in
// practice it succeeds on the first or second attempt.
func buildParams(n int, eq func(i, j int) bool, hashAll func(seed uint64) []uint64) (*params, error) {
	if n == 0 {
		return &params{
			Seed:     0,
			Pilots:   []uint16{0},
			Free:     []uint32{0},
			n:        0,
			buckets:  newDivisor(1),
			codomain: newDivisor(1),
		}, nil
	}

	lg := float64(ilog2(uint64(n)))
	if n == 1 {
		lg = 0
	}

	var bucketsLen uint64
	if n > 1 {
		c := minC + 0.2*lg
		bucketsLen = uint64(math.Ceil((c * float64(n)) / lg))
	} else {
		bucketsLen = 1
	}

	alpha := maxAlpha - 0.001*lg
	candidate := uint64(math.Ceil(float64(n) / alpha))
	codomainLen := candidate + (1 - candidate%2)

	for seedN := uint64(1); ; seedN++ {
		seed := seedN << 32
		hashes := hashAll(seed)

		p, err := tryBuildParams(hashes, bucketsLen, codomainLen, seed, eq)
		if err == nil {
			return p, nil
		}
		if _, ok := err.(*DuplicateKeyError); ok {
			return nil, err
		}
	}
}

func tryBuildParams(hashes []uint64, bucketsLen, codomainLen, seed uint64, eq func(i, j int) bool) (*params, error) {
	n := len(hashes)
	bdiv := newDivisor(bucketsLen)

	entries := make([]hashedEntry, n)
	for i, h := range hashes {
		entries[i] = hashedEntry{idx: i, hash: h, bucket: bdiv.Rem(h)}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.bucket != b.bucket {
			return a.bucket < b.bucket
		}
		return a.hash < b.hash
	})

	for i := 1; i < n; i++ {
		a, b := entries[i-1], entries[i]
		if a.hash == b.hash && a.bucket == b.bucket {
			if eq(a.idx, b.idx) {
				return nil, &DuplicateKeyError{I: a.idx, J: b.idx}
			}
			return nil, errSeedFailed
		}
	}

	buckets := make([]bucketSpan, 0, bucketsLen)
	start := 0
	for bi := uint64(0); bi < bucketsLen; bi++ {
		size := 0
		for start+size < n && entries[start+size].bucket == bi {
			size++
		}
		buckets = append(buckets, bucketSpan{idx: int(bi), startIdx: start, size: size})
		start += size
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].size > buckets[j].size
	})

	const empty = math.MaxUint32

	pilots := make([]uint16, bucketsLen)
	placement := make([]uint32, codomainLen)
	for i := range placement {
		placement[i] = empty
	}

	cdiv := newDivisor(codomainLen)
	occ := newBitVector(codomainLen)
	bOcc := newBitVector(codomainLen)

	type pending struct {
		idx  int
		dest uint64
	}
	adds := make([]pending, 0, 64)

	for _, bucket := range buckets {
		if bucket.size == 0 {
			continue
		}

		bucketEntries := entries[bucket.startIdx : bucket.startIdx+bucket.size]
		found := false

	pilotSearch:
		for pilot := 0; pilot <= math.MaxUint16; pilot++ {
			adds = adds[:0]
			bOcc.Reset()
			ph := hashPilot(uint16(pilot))

			for _, e := range bucketEntries {
				dest := cdiv.Rem(e.hash ^ ph)
				if occ.IsSet(dest) || bOcc.IsSet(dest) {
					continue pilotSearch
				}
				bOcc.Set(dest)
				adds = append(adds, pending{idx: e.idx, dest: dest})
			}

			found = true
			occ.Merge(bOcc)
			for _, a := range adds {
				placement[a.dest] = uint32(a.idx)
			}
			pilots[bucket.idx] = uint16(pilot)
			break
		}

		if !found {
			return nil, errSeedFailed
		}
	}

	// placement has codomainLen slots but only n are occupied; slide the
	// back-half occupants into the front-half gaps and record where each
	// one came from in free, so a lookup landing past n can redirect.
	extra := int(codomainLen) - n
	free := make([]uint32, extra)

	backIdx := n
	for frontIdx := 0; frontIdx < n; frontIdx++ {
		if placement[frontIdx] != empty {
			continue
		}
		for placement[backIdx] == empty {
			backIdx++
		}
		placement[frontIdx] = placement[backIdx]
		free[backIdx-n] = uint32(frontIdx)
		backIdx++
	}

	return &params{
		Seed:     seed,
		Pilots:   pilots,
		Free:     free,
		n:        n,
		buckets:  bdiv,
		codomain: cdiv,
	}, nil
}
