// Package buffer provides the typed linear buffers that back pixel arrays.
//
// A [Buffer] is a fixed-length sequence of primitive elements accessed by
// raw bit pattern: integers zero-extended from their width, floats as their
// IEEE 754 bits. Native Go slices are wrapped with [Wrap], [Float32s] and
// [Float64s]; byte slices shared with hardware or files are wrapped with
// [NewBytes].
package buffer

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/mrjoshuak/go-texel/numeric"
)

var (
	// ErrKindMismatch is returned when two buffers of different element kinds
	// are copied as raw elements.
	ErrKindMismatch = errors.New("buffer: element kind mismatch")

	// ErrOutOfRange is returned when an element range exceeds a buffer.
	ErrOutOfRange = errors.New("buffer: element range out of bounds")
)

// Kind is the primitive element type of a buffer.
type Kind uint8

const (
	Invalid Kind = iota
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
)

var kindNames = [...]string{
	Invalid: "invalid",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if k != int(Invalid) && name == s {
			return Kind(k), true
		}
	}
	return Invalid, false
}

// Bits returns the element width in bits.
func (k Kind) Bits() int {
	switch k {
	case Uint8, Int8:
		return 8
	case Uint16, Int16:
		return 16
	case Uint32, Int32, Float32:
		return 32
	case Uint64, Int64, Float64:
		return 64
	default:
		return 0
	}
}

// Signed reports whether the kind is a signed integer.
func (k Kind) Signed() bool { return k >= Int8 && k <= Int64 }

// Float reports whether the kind is a floating-point type.
func (k Kind) Float() bool { return k == Float32 || k == Float64 }

// Integer reports whether the kind is a signed or unsigned integer.
func (k Kind) Integer() bool { return k >= Uint8 && k <= Int64 }

// UnsignedFor returns the unsigned integer kind with the given width, or
// Invalid.
func UnsignedFor(bits int) Kind {
	switch bits {
	case 8:
		return Uint8
	case 16:
		return Uint16
	case 32:
		return Uint32
	case 64:
		return Uint64
	}
	return Invalid
}

// Buffer is a fixed-length sequence of primitive elements.
type Buffer interface {
	Kind() Kind
	Len() int
	// Bits returns element i's bit pattern in the low Kind().Bits() bits.
	Bits(i int) uint64
	// SetBits stores the low Kind().Bits() bits of v into element i.
	SetBits(i int, v uint64)
}

// Integers is a buffer backed by a native integer slice.
type Integers[T constraints.Integer] []T

// Wrap returns data as a buffer without copying.
func Wrap[T constraints.Integer](data []T) Integers[T] { return Integers[T](data) }

func (b Integers[T]) Kind() Kind {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	k := UnsignedFor(bits)
	if ^zero < 0 {
		k += Int8 - Uint8
	}
	return k
}

func (b Integers[T]) Len() int { return len(b) }

func (b Integers[T]) Bits(i int) uint64 {
	var zero T
	return uint64(b[i]) & numeric.Mask(int(unsafe.Sizeof(zero))*8)
}

func (b Integers[T]) SetBits(i int, v uint64) { b[i] = T(v) }

// Float32s is a buffer backed by a []float32.
type Float32s []float32

func (b Float32s) Kind() Kind              { return Float32 }
func (b Float32s) Len() int                { return len(b) }
func (b Float32s) Bits(i int) uint64       { return uint64(math.Float32bits(b[i])) }
func (b Float32s) SetBits(i int, v uint64) { b[i] = math.Float32frombits(uint32(v)) }

// Float64s is a buffer backed by a []float64.
type Float64s []float64

func (b Float64s) Kind() Kind              { return Float64 }
func (b Float64s) Len() int                { return len(b) }
func (b Float64s) Bits(i int) uint64       { return math.Float64bits(b[i]) }
func (b Float64s) SetBits(i int, v uint64) { b[i] = math.Float64frombits(v) }

// New allocates a zeroed native buffer of n elements.
func New(kind Kind, n int) (Buffer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: length %d", ErrOutOfRange, n)
	}
	switch kind {
	case Uint8:
		return make(Integers[uint8], n), nil
	case Uint16:
		return make(Integers[uint16], n), nil
	case Uint32:
		return make(Integers[uint32], n), nil
	case Uint64:
		return make(Integers[uint64], n), nil
	case Int8:
		return make(Integers[int8], n), nil
	case Int16:
		return make(Integers[int16], n), nil
	case Int32:
		return make(Integers[int32], n), nil
	case Int64:
		return make(Integers[int64], n), nil
	case Float32:
		return make(Float32s, n), nil
	case Float64:
		return make(Float64s, n), nil
	}
	return nil, fmt.Errorf("%w: cannot allocate %v", ErrKindMismatch, kind)
}
