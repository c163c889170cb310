package buffer

import (
	"fmt"

	"github.com/mrjoshuak/go-texel/internal/xdr"
)

// Copy copies n elements from src starting at srcOff to dst starting at
// dstOff. Both buffers must have the same kind. Overlapping ranges of the
// same buffer behave like the built-in copy.
func Copy(dst Buffer, dstOff int, src Buffer, srcOff, n int) error {
	if err := checkRange(dst, src, dstOff, srcOff, n, 1, 1); err != nil {
		return err
	}
	if copyNative(dst, dstOff, src, srcOff, n) {
		return nil
	}
	if dstOff > srcOff {
		for i := n - 1; i >= 0; i-- {
			dst.SetBits(dstOff+i, src.Bits(srcOff+i))
		}
		return nil
	}
	for i := range n {
		dst.SetBits(dstOff+i, src.Bits(srcOff+i))
	}
	return nil
}

// CopyStrided copies n elements, stepping dstStride elements in dst and
// srcStride elements in src after each one. Strides may be negative.
func CopyStrided(dst Buffer, dstOff, dstStride int, src Buffer, srcOff, srcStride, n int) error {
	if dstStride == 1 && srcStride == 1 {
		return Copy(dst, dstOff, src, srcOff, n)
	}
	if err := checkRange(dst, src, dstOff, srcOff, n, dstStride, srcStride); err != nil {
		return err
	}
	for i := range n {
		dst.SetBits(dstOff+i*dstStride, src.Bits(srcOff+i*srcStride))
	}
	return nil
}

func checkRange(dst, src Buffer, dstOff, srcOff, n, dstStride, srcStride int) error {
	if dst.Kind() != src.Kind() {
		return fmt.Errorf("%w: %v into %v", ErrKindMismatch, src.Kind(), dst.Kind())
	}
	if n <= 0 {
		if n < 0 {
			return fmt.Errorf("%w: negative count %d", ErrOutOfRange, n)
		}
		return nil
	}
	if !inRange(dstOff, dstStride, n, dst.Len()) || !inRange(srcOff, srcStride, n, src.Len()) {
		return fmt.Errorf("%w: %d elements from %d (stride %d) into %d (stride %d)",
			ErrOutOfRange, n, srcOff, srcStride, dstOff, dstStride)
	}
	return nil
}

func inRange(off, stride, n, length int) bool {
	last := off + (n-1)*stride
	return off >= 0 && off < length && last >= 0 && last < length
}

func copyNative(dst Buffer, dstOff int, src Buffer, srcOff, n int) bool {
	switch d := dst.(type) {
	case Integers[uint8]:
		return copySlice(d, dstOff, src, srcOff, n)
	case Integers[uint16]:
		return copySlice(d, dstOff, src, srcOff, n)
	case Integers[uint32]:
		return copySlice(d, dstOff, src, srcOff, n)
	case Integers[uint64]:
		return copySlice(d, dstOff, src, srcOff, n)
	case Integers[int8]:
		return copySlice(d, dstOff, src, srcOff, n)
	case Integers[int16]:
		return copySlice(d, dstOff, src, srcOff, n)
	case Integers[int32]:
		return copySlice(d, dstOff, src, srcOff, n)
	case Integers[int64]:
		return copySlice(d, dstOff, src, srcOff, n)
	case Float32s:
		return copySlice(d, dstOff, src, srcOff, n)
	case Float64s:
		return copySlice(d, dstOff, src, srcOff, n)
	case *Bytes:
		s, ok := src.(*Bytes)
		if !ok || s.order != d.order {
			return false
		}
		xdr.CopyElements(d.data, dstOff, s.data, srcOff, d.size, n)
		return true
	}
	return false
}

func copySlice[S ~[]E, E any](d S, dstOff int, src Buffer, srcOff, n int) bool {
	s, ok := src.(S)
	if !ok {
		return false
	}
	copy(d[dstOff:dstOff+n], s[srcOff:srcOff+n])
	return true
}
