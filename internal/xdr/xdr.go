// Package xdr reads and writes fixed-width unsigned elements stored in byte
// slices, for buffers whose memory layout is shared with hardware or files.
//
// Elements are 1, 2, 4 or 8 bytes wide. Multi-byte elements use the byte
// order passed by the caller; [ByteOrder] is the little-endian default used
// by GPU upload buffers.
package xdr

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrElementSize is returned for element widths other than 1, 2, 4 or 8
// bytes.
var ErrElementSize = errors.New("xdr: unsupported element size")

// ByteOrder is the default element byte order.
var ByteOrder binary.ByteOrder = binary.LittleEndian

// CheckSize reports whether size bytes is a supported element width.
func CheckSize(size int) error {
	switch size {
	case 1, 2, 4, 8:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrElementSize, size)
}

// Elements returns the number of whole elements of the given size in b.
func Elements(b []byte, size int) int {
	return len(b) / size
}

// Uint reads element i. The caller guarantees that size is supported and
// that i is in range.
func Uint(order binary.ByteOrder, b []byte, size, i int) uint64 {
	off := i * size
	switch size {
	case 1:
		return uint64(b[off])
	case 2:
		return uint64(order.Uint16(b[off:]))
	case 4:
		return uint64(order.Uint32(b[off:]))
	default:
		return order.Uint64(b[off:])
	}
}

// PutUint writes the low size*8 bits of v to element i.
func PutUint(order binary.ByteOrder, b []byte, size, i int, v uint64) {
	off := i * size
	switch size {
	case 1:
		b[off] = byte(v)
	case 2:
		order.PutUint16(b[off:], uint16(v))
	case 4:
		order.PutUint32(b[off:], uint32(v))
	default:
		order.PutUint64(b[off:], v)
	}
}

// CopyElements copies n elements from src element srcOff to dst element
// dstOff. Both slices must use the same element size and byte order.
func CopyElements(dst []byte, dstOff int, src []byte, srcOff, size, n int) {
	copy(dst[dstOff*size:(dstOff+n)*size], src[srcOff*size:(srcOff+n)*size])
}
