// filestore_writer.go -- persist a PTHash RawMap index plus its values as a
// single mmap'able file on disk
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
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dchest/siphash"
)

// The on-disk file has the following structure:
//
//   - 64 byte header, all multi-byte integers big-endian:
//       magic    [4]byte  "PTH1"
//       flags    uint32   reserved, currently always 0
//       salt     [16]byte random salt for per-record siphash checksums
//       nkeys    uint64   number of keys
//       seed     uint64   PHF seed
//       buckets  uint64   length of the pilot table
//       free     uint64   length of the free table
//       offtbl   uint64   file offset of the index section (page aligned)
//
//   - Record area: one variable-length record per key, in insertion order:
//       cksum    uint64  siphash-2-4 over (offset || key || value), big endian
//       keylen   uint32  big endian
//       vallen   uint32  big endian
//       key      []byte
//       value    []byte
//
//   - Padding to the next page boundary.
//   - Index section, little-endian, memory-mapped by the reader and
//     converted to native order on read:
//       offsets  []uint64  record start offset, in PHF slot order
//       free     []uint32  PHF free table
//       pilots   []uint16  PHF pilot table
//   - 32 bytes of SHA512-256 over the header and the index section. Record
//     bytes are not covered by this trailer -- they carry their own
//     checksum so that verifying the whole store does not require reading
//     every value.
const (
	fileStoreMagic = "PTH1"
)

// FileStoreWriter builds a single-file, mmap'able persisted form of a
// PTHash-indexed key/value store. Keys and values are arbitrary byte
// strings; keys are kept on disk (unlike RawMap's in-memory form) since an
// on-disk store must be able to tell a present key from an absent one
// without trusting the caller.
type FileStoreWriter struct {
	fd  *os.File
	off uint64

	keymap map[string]uint64 // key -> record offset
	salt   []byte

	fn, fntmp string
	state     wstate
}

type wstate int

const (
	wsAborted wstate = -1
	wsOpen    wstate = 0
	wsFrozen  wstate = 1
)

// NewFileStoreWriter prepares file fn to receive a persisted store. The
// store is built incrementally with Add and committed with Freeze.
func NewFileStoreWriter(fn string) (*FileStoreWriter, error) {
	tmp := fmt.Sprintf("%s.tmp.%d", fn, rand32())
	fd, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}

	w := &FileStoreWriter{
		fd:     fd,
		keymap: make(map[string]uint64),
		salt:   randbytes(16),
		off:    64,
		fn:     fn,
		fntmp:  tmp,
	}

	var z [64]byte
	wr := newErrWriter(fd)
	wr.Write(z[:])
	if err := wr.Error(); err != nil {
		return nil, err
	}
	return w, nil
}

// Len returns the number of keys added so far.
func (w *FileStoreWriter) Len() int {
	return len(w.keymap)
}

// Add records a (key, value) pair. Duplicate keys return ErrExists.
func (w *FileStoreWriter) Add(key string, val []byte) error {
	if w.state != wsOpen {
		return ErrFrozen
	}
	if _, ok := w.keymap[key]; ok {
		return ErrExists
	}
	if uint64(len(key)) > uint64(^uint32(0)) {
		return ErrKeyTooLarge
	}
	if uint64(len(val)) > uint64(^uint32(0)) {
		return ErrValueTooLarge
	}

	off := w.off
	if err := w.writeRecord(key, val, off); err != nil {
		return err
	}
	w.keymap[key] = off
	return nil
}

// Abort discards the in-progress store and removes the temporary file.
func (w *FileStoreWriter) Abort() error {
	if w.state != wsOpen {
		return ErrFrozen
	}
	return w.abort()
}

func (w *FileStoreWriter) abort() error {
	name := w.fd.Name()
	w.fd.Close()
	if err := os.Remove(name); err != nil {
		return err
	}
	w.state = wsAborted
	return nil
}

// Freeze builds the perfect hash index over every key added so far,
// writes it to disk and commits the file at fn. The writer cannot be
// reused afterwards.
func (w *FileStoreWriter) Freeze() (err error) {
	defer func(e *error) {
		if *e != nil {
			w.abort()
		}
	}(&err)

	if w.state != wsOpen {
		return ErrFrozen
	}

	n := len(w.keymap)
	keys := make([]string, 0, n)
	offs := make([]uint64, 0, n)
	for k, o := range w.keymap {
		keys = append(keys, k)
		offs = append(offs, o)
	}

	idx, err := BuildRawMap[string, uint64](keys, offs)
	if err != nil {
		return err
	}

	pgsz := uint64(os.Getpagesize())
	pgsz_m1 := pgsz - 1
	offtbl := (w.off + pgsz_m1) &^ pgsz_m1
	if offtbl > w.off {
		wr := newErrWriter(w.fd)
		wr.Write(make([]byte, offtbl-w.off))
		if err = wr.Error(); err != nil {
			return err
		}
		w.off = offtbl
	}

	h := sha512.New512_256()
	tee := io.MultiWriter(w.fd, h)

	var ehdr [64]byte
	be := binary.BigEndian
	copy(ehdr[:4], fileStoreMagic)
	be.PutUint64(ehdr[24:32], uint64(n))
	be.PutUint64(ehdr[32:40], idx.Seed())
	be.PutUint64(ehdr[40:48], uint64(len(idx.Pilots())))
	be.PutUint64(ehdr[48:56], uint64(len(idx.Free())))
	be.PutUint64(ehdr[56:64], offtbl)
	copy(ehdr[8:24], w.salt)

	h.Write(ehdr[:])

	// The index arrays are always stored little-endian and written as a
	// reinterpret-cast of the slices. On little-endian hosts the toLE
	// helpers are the identity; on big-endian hosts (see endian_be.go) they
	// swap here, and FileStoreReader swaps back on read.
	offsets := make([]uint64, idx.Len())
	for i, v := range idx.RawValues() {
		offsets[i] = toLEUint64(v)
	}
	free := make([]uint32, len(idx.Free()))
	for i, v := range idx.Free() {
		free[i] = toLEUint32(v)
	}
	pilots := make([]uint16, len(idx.Pilots()))
	for i, v := range idx.Pilots() {
		pilots[i] = toLEUint16(v)
	}

	iw := newErrWriter(tee)
	iw.Write(u64sToByteSlice(offsets))
	iw.Write(u32sToByteSlice(free))
	iw.Write(u16sToByteSlice(pilots))
	if err = iw.Error(); err != nil {
		return err
	}
	w.off += uint64(len(offsets))*8 + uint64(len(free))*4 + uint64(len(pilots))*2

	cksum := h.Sum(nil)
	fw := newErrWriter(w.fd)
	fw.Write(cksum)
	if err = fw.Error(); err != nil {
		return err
	}

	if _, err = w.fd.Seek(0, 0); err != nil {
		return err
	}
	hw := newErrWriter(w.fd)
	hw.Write(ehdr[:])
	if err = hw.Error(); err != nil {
		return err
	}
	if err = w.fd.Sync(); err != nil {
		return err
	}
	if err = w.fd.Close(); err != nil {
		return err
	}
	if err = os.Rename(w.fntmp, w.fn); err != nil {
		return err
	}

	w.state = wsFrozen
	return nil
}

// writeRecord appends one record at the current file offset and advances
// it.
func (w *FileStoreWriter) writeRecord(key string, val []byte, off uint64) error {
	var hdr [16]byte
	be := binary.BigEndian
	be.PutUint32(hdr[0:4], uint32(len(key)))
	be.PutUint32(hdr[4:8], uint32(len(val)))

	var o [8]byte
	be.PutUint64(o[:], off)

	h := siphash.New(w.salt)
	h.Write(o[:])
	h.Write([]byte(key))
	h.Write(val)

	var c [8]byte
	be.PutUint64(c[:], h.Sum64())

	wr := newErrWriter(w.fd)
	wr.Write(c[:])
	wr.Write(hdr[:8])
	wr.Write([]byte(key))
	wr.Write(val)
	if err := wr.Error(); err != nil {
		return err
	}

	w.off += 8 + 8 + uint64(len(key)) + uint64(len(val))
	return nil
}
