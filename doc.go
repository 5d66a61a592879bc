// doc.go - top level documentation
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

// Package pthash implements PTHash, a perfect hash function construction
// scheme for static key sets: http://arxiv.org/abs/2104.10402.
//
// Given N distinct keys, Build{RawMap,Map,Set} produce a set of parameters
// (a seed, a per-bucket pilot table, and a small "free" redirection table)
// such that every key maps to a unique slot in [0, N) via a closed-form
// function of its hash. Lookup costs one hash, one multiply, two modulo
// reductions and at most three array reads (the pilot, at most one free
// table entry, and the stored slot) - there is no probing and no
// collision list to walk.
//
// Three table shapes share the same construction and lookup machinery:
//
//	RawMap - stores only values; querying an unknown key returns an
//	         arbitrary but valid value (no verification).
//	Map    - stores (key, value) pairs; querying an unknown key compares
//	         the stored key and returns false.
//	Set    - stores only keys; Contains compares the stored key.
//
// Tables built in-process can be rendered as Go source (see emit.go) for
// embedding into a consumer binary as a package-level constant, or
// persisted to a single mmap'd file (see filestore_writer.go and
// filestore_reader.go) for out-of-process reuse.
//
// Construction is synchronous, single-threaded and CPU-bound. Lookup is a
// pure function of immutable data, safe for unsynchronized concurrent
// reads by any number of goroutines.
package pthash
