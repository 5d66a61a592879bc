// mmap_util.go -- zero-copy reinterpretation between byte slices and
// fixed-width integer slices, used to view an mmap'd artifact file in
// place without copying
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

import "unsafe"

// bsToUint16Slice reinterprets a byte slice as a uint16 slice without
// copying. The caller is responsible for ensuring b is sized and aligned
// appropriately (our on-disk index starts on a page boundary and stores
// the uint64, uint32 and uint16 arrays in that order with no padding, so
// each array starts at a multiple of its own element size).
func bsToUint16Slice(b []byte) []uint16 {
	n := len(b) / 2
	return unsafe.Slice((*uint16)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// u16sToByteSlice reinterprets a uint16 slice as a byte slice without
// copying.
func u16sToByteSlice(v []uint16) []byte {
	n := len(v) * 2
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), n)
}

// bsToUint32Slice reinterprets a byte slice as a uint32 slice without
// copying.
func bsToUint32Slice(b []byte) []uint32 {
	n := len(b) / 4
	return unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// u32sToByteSlice reinterprets a uint32 slice as a byte slice without
// copying.
func u32sToByteSlice(v []uint32) []byte {
	n := len(v) * 4
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), n)
}

// bsToUint64Slice reinterprets a byte slice as a uint64 slice without
// copying.
func bsToUint64Slice(b []byte) []uint64 {
	n := len(b) / 8
	return unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// u64sToByteSlice reinterprets a uint64 slice as a byte slice without
// copying.
func u64sToByteSlice(v []uint64) []byte {
	n := len(v) * 8
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), n)
}
