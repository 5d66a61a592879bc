// filestore_reader.go -- open and query a file written by FileStoreWriter
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
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dchest/siphash"
	arc "github.com/hashicorp/golang-lru/arc/v2"
	"github.com/opencoff/go-mmap"
)

// FileStoreReader opens a file previously written by FileStoreWriter and
// serves lookups against it. The index (offsets, pilots, free table) is
// memory mapped; record bytes are read (and their siphash checksum
// verified) on demand and opportunistically cached.
type FileStoreReader struct {
	raw *RawMap[string, uint64]

	cache *arc.ARCCache[string, []byte]

	salt   []byte
	nkeys  uint64
	offtbl uint64

	mm *mmap.Mapping
	fd *os.File
	fn string
}

// OpenFileStore opens fn for querying. cacheSize bounds the number of
// decoded values kept in memory; 0 selects a default of 128.
func OpenFileStore(fn string, cacheSize int) (rd *FileStoreReader, err error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	if cacheSize <= 0 {
		cacheSize = 128
	}

	rd = &FileStoreReader{
		fd: fd,
		fn: fn,
	}

	st, err := fd.Stat()
	if err != nil {
		return nil, fmt.Errorf("%s: can't stat: %w", fn, err)
	}
	if st.Size() < 64+32 {
		return nil, fmt.Errorf("%s: file too small or corrupted: %w", fn, ErrTooSmall)
	}

	var hdrb [64]byte
	if _, err = io.ReadFull(fd, hdrb[:]); err != nil {
		return nil, fmt.Errorf("%s: can't read header: %w", fn, err)
	}

	var seed, bucketsLen, freeLen uint64
	seed, bucketsLen, freeLen, err = rd.decodeHeader(hdrb[:], st.Size())
	if err != nil {
		return nil, err
	}

	if err = rd.verifyChecksum(hdrb[:], st.Size()); err != nil {
		return nil, err
	}

	rd.cache, err = arc.NewARC[string, []byte](cacheSize)
	if err != nil {
		return nil, err
	}

	mmapsz := st.Size() - int64(rd.offtbl) - 32
	mm := mmap.New(fd)
	mapping, err := mm.Map(mmapsz, int64(rd.offtbl), mmap.PROT_READ, mmap.F_READAHEAD)
	if err != nil {
		return nil, fmt.Errorf("%s: can't mmap %d bytes at off %d: %w", fn, mmapsz, rd.offtbl, err)
	}

	bs := mapping.Bytes()
	rd.mm = mapping

	offsz := rd.nkeys * 8
	freesz := freeLen * 4
	pilotsz := bucketsLen * 2

	if uint64(len(bs)) < offsz+freesz+pilotsz {
		mapping.Unmap()
		return nil, fmt.Errorf("%s: corrupt index section: %w", fn, ErrTooSmall)
	}

	leOffsets := bsToUint64Slice(bs[:offsz])
	leFree := bsToUint32Slice(bs[offsz : offsz+freesz])
	lePilots := bsToUint16Slice(bs[offsz+freesz : offsz+freesz+pilotsz])

	offsets := make([]uint64, rd.nkeys)
	for i, v := range leOffsets {
		offsets[i] = toLEUint64(v)
	}
	free := make([]uint32, freeLen)
	for i, v := range leFree {
		free[i] = toLEUint32(v)
	}
	pilots := make([]uint16, bucketsLen)
	for i, v := range lePilots {
		pilots[i] = toLEUint16(v)
	}

	rd.raw = NewRawMap[string, uint64](seed, pilots, offsets, free)
	return rd, nil
}

// Len returns the number of keys in the store.
func (rd *FileStoreReader) Len() int {
	return int(rd.nkeys)
}

// Close releases the mmap'd region, closes the underlying file and drops
// the in-memory cache.
func (rd *FileStoreReader) Close() error {
	rd.mm.Unmap()
	err := rd.fd.Close()
	rd.cache.Purge()
	rd.salt = nil
	rd.fd = nil
	return err
}

// Lookup returns the value stored for key, or (nil, false) if it is
// absent.
func (rd *FileStoreReader) Lookup(key string) ([]byte, bool) {
	v, err := rd.Find(key)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Find returns the value stored for key, or an error if the key is
// absent, the record is corrupted, or disk i/o fails.
func (rd *FileStoreReader) Find(key string) ([]byte, error) {
	if v, ok := rd.cache.Get(key); ok {
		return v, nil
	}

	off, err := rd.raw.Get(key)
	if err != nil {
		return nil, ErrNoKey
	}

	val, err := rd.decodeRecord(key, off)
	if err != nil {
		return nil, err
	}

	rd.cache.Add(key, val)
	return val, nil
}

func (rd *FileStoreReader) decodeRecord(key string, off uint64) ([]byte, error) {
	gotKey, val, err := rd.readRecordAt(off)
	if err != nil {
		return nil, err
	}
	if string(gotKey) != key {
		return nil, ErrNoKey
	}
	return val, nil
}

// readRecordAt reads and checksum-verifies the record at off, returning its
// stored key and value without comparing against any expected key.
func (rd *FileStoreReader) readRecordAt(off uint64) (key, val []byte, err error) {
	var hdr [16]byte
	if _, err = rd.fd.ReadAt(hdr[:], int64(off)); err != nil {
		return nil, nil, err
	}

	be := binary.BigEndian
	csum := be.Uint64(hdr[0:8])
	keylen := be.Uint32(hdr[8:12])
	vallen := be.Uint32(hdr[12:16])

	body := make([]byte, uint64(keylen)+uint64(vallen))
	if _, err = rd.fd.ReadAt(body, int64(off)+16); err != nil {
		return nil, nil, err
	}

	key = body[:keylen]
	val = body[keylen:]

	var o [8]byte
	be.PutUint64(o[:], off)

	h := siphash.New(rd.salt)
	h.Write(o[:])
	h.Write(key)
	h.Write(val)

	if h.Sum64() != csum {
		return nil, nil, fmt.Errorf("%s: corrupted record at off %d: %w", rd.fn, off, ErrChecksum)
	}

	return key, val, nil
}

// IterFunc calls fp once for every (key, value) pair in the store, in PHF
// slot order. Iteration stops early if fp returns a non-nil error, which is
// then returned to the caller.
func (rd *FileStoreReader) IterFunc(fp func(key string, val []byte) error) error {
	for _, off := range rd.raw.RawValues() {
		key, val, err := rd.readRecordAt(off)
		if err != nil {
			return fmt.Errorf("iter: record at %#x: %w", off, err)
		}
		if err := fp(string(key), val); err != nil {
			return err
		}
	}
	return nil
}

// Desc returns a human-readable one-line description of the store.
func (rd *FileStoreReader) Desc() string {
	return fmt.Sprintf("pthash filestore: %d keys, offtbl at %#x", rd.nkeys, rd.offtbl)
}

func (rd *FileStoreReader) verifyChecksum(hdrb []byte, sz int64) error {
	h := sha512.New512_256()
	h.Write(hdrb)

	remsz := sz - int64(rd.offtbl) - 32
	if _, err := rd.fd.Seek(int64(rd.offtbl), 0); err != nil {
		return err
	}

	nw, err := io.CopyN(h, rd.fd, remsz)
	if err != nil {
		return fmt.Errorf("%s: metadata i/o error: %w", rd.fn, err)
	}
	if nw != remsz {
		return fmt.Errorf("%s: partial read while verifying checksum, exp %d, saw %d", rd.fn, remsz, nw)
	}

	var expsum [32]byte
	if _, err = rd.fd.Seek(sz-32, 0); err != nil {
		return err
	}
	if _, err = io.ReadFull(rd.fd, expsum[:]); err != nil {
		return fmt.Errorf("%s: checksum i/o error: %w", rd.fn, err)
	}

	csum := h.Sum(nil)
	if subtle.ConstantTimeCompare(csum, expsum[:]) != 1 {
		return fmt.Errorf("%s: %w", rd.fn, ErrChecksum)
	}

	_, err = rd.fd.Seek(int64(rd.offtbl), 0)
	return err
}

func (rd *FileStoreReader) decodeHeader(b []byte, sz int64) (seed, bucketsLen, freeLen uint64, err error) {
	magic := string(b[:4])
	if magic != fileStoreMagic {
		return 0, 0, 0, fmt.Errorf("%s: bad file magic %q", rd.fn, magic)
	}

	be := binary.BigEndian
	rd.salt = append([]byte(nil), b[8:24]...)
	rd.nkeys = be.Uint64(b[24:32])
	seed = be.Uint64(b[32:40])
	bucketsLen = be.Uint64(b[40:48])
	freeLen = be.Uint64(b[48:56])
	rd.offtbl = be.Uint64(b[56:64])

	if rd.offtbl < 64 || rd.offtbl >= uint64(sz-32) {
		return 0, 0, 0, fmt.Errorf("%s: corrupt header", rd.fn)
	}
	return seed, bucketsLen, freeLen, nil
}
