// Package numeric converts between normalized float64 values and the
// fixed-width bit patterns stored in a pixel field.
//
// Every conversion clamps its input to the representable range before
// quantizing and rounds to nearest. Out-of-range input is not an error.
// Signed kinds use two's complement within the field width, not the host
// integer width.
package numeric

import (
	"errors"
	"fmt"
	"math"

	"github.com/mrjoshuak/go-texel/half"
)

// ErrUnsupported is returned when a kind cannot be stored in the requested
// number of bits.
var ErrUnsupported = errors.New("numeric: unsupported kind and width")

// Kind identifies the numeric encoding of a field.
type Kind uint8

const (
	// None marks a field that carries no value (padding).
	None Kind = iota
	// Uint is an unsigned integer, read back as its integer value.
	Uint
	// Sint is a two's complement signed integer.
	Sint
	// Uscaled is an unsigned integer converted to float without scaling.
	Uscaled
	// Sscaled is a signed integer converted to float without scaling.
	Sscaled
	// Unorm maps [0, 2^n-1] onto [0, 1].
	Unorm
	// Snorm maps [-(2^(n-1)-1), 2^(n-1)-1] onto [-1, 1].
	Snorm
	// Ufloat is an unsigned float with a 5-bit exponent. In a shared-exponent
	// format it denotes a mantissa instead.
	Ufloat
	// Sfloat is an IEEE 754 float of 16, 32 or 64 bits.
	Sfloat
	// Exponent is the common exponent of a shared-exponent format.
	Exponent
)

// String returns the lower-case name used by format strings.
func (k Kind) String() string {
	switch k {
	case None:
		return "x"
	case Uint:
		return "uint"
	case Sint:
		return "sint"
	case Uscaled:
		return "uscaled"
	case Sscaled:
		return "sscaled"
	case Unorm:
		return "unorm"
	case Snorm:
		return "snorm"
	case Ufloat:
		return "ufloat"
	case Sfloat:
		return "sfloat"
	case Exponent:
		return "exp"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, bool) {
	for k := None; k <= Exponent; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return None, false
}

// Signed reports whether the kind can represent negative values.
func (k Kind) Signed() bool {
	return k == Sint || k == Sscaled || k == Snorm || k == Sfloat
}

// Normalized reports whether values are scaled into [0,1] or [-1,1].
func (k Kind) Normalized() bool {
	return k == Unorm || k == Snorm
}

// Float reports whether the kind is a floating-point encoding.
func (k Kind) Float() bool {
	return k == Ufloat || k == Sfloat
}

// Supports reports whether kind k can be encoded in the given number of bits.
func Supports(k Kind, bits int) bool {
	switch k {
	case None, Uint, Uscaled, Unorm, Exponent:
		return bits >= 1 && bits <= 64
	case Sint, Sscaled, Snorm:
		return bits >= 2 && bits <= 64
	case Ufloat:
		return bits >= 6 && bits <= 16
	case Sfloat:
		return bits == 16 || bits == 32 || bits == 64
	default:
		return false
	}
}

// Mask returns a mask of the low n bits.
func Mask(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return uint64(1)<<uint(bits) - 1
}

// SignExtend interprets the low n bits of raw as a two's complement value.
func SignExtend(raw uint64, bits int) int64 {
	shift := uint(64 - bits)
	return int64(raw<<shift) >> shift
}

// Codec encodes and decodes one field. The mask and normalization scale are
// computed once by [NewCodec].
type Codec struct {
	kind  Kind
	bits  int
	mask  uint64
	scale float64 // 2^n-1 for unorm, 2^(n-1)-1 for snorm, 1 otherwise
	lo    float64
	hi    float64
	uf    half.UFloat
}

// NewCodec returns the codec for kind k stored in bits bits.
func NewCodec(k Kind, bits int) (Codec, error) {
	if !Supports(k, bits) {
		return Codec{}, fmt.Errorf("%w: %s%d", ErrUnsupported, k, bits)
	}
	c := Codec{kind: k, bits: bits, mask: Mask(bits), scale: 1}
	switch k {
	case Uint, Uscaled, Exponent:
		c.lo, c.hi = 0, float64(c.mask)
	case Sint, Sscaled:
		c.hi = float64(Mask(bits - 1))
		c.lo = -c.hi - 1
	case Unorm:
		c.scale = float64(c.mask)
		c.lo, c.hi = 0, 1
	case Snorm:
		c.scale = float64(Mask(bits - 1))
		c.lo, c.hi = -1, 1
	case Ufloat:
		c.uf = half.UFloat{MantissaBits: bits - 5}
		c.lo, c.hi = 0, c.uf.Max()
	case Sfloat:
		switch bits {
		case 16:
			c.hi = half.MaxValue
		case 32:
			c.hi = math.MaxFloat32
		default:
			c.hi = math.MaxFloat64
		}
		c.lo = -c.hi
	}
	return c, nil
}

// MustCodec is like [NewCodec] but panics on error.
func MustCodec(k Kind, bits int) Codec {
	c, err := NewCodec(k, bits)
	if err != nil {
		panic(err)
	}
	return c
}

// Kind returns the codec's kind.
func (c Codec) Kind() Kind { return c.kind }

// Bits returns the field width.
func (c Codec) Bits() int { return c.bits }

// Mask returns the field mask.
func (c Codec) Mask() uint64 { return c.mask }

// Scale returns the normalization scalar.
func (c Codec) Scale() float64 { return c.scale }

// Range returns the representable value range.
func (c Codec) Range() (lo, hi float64) { return c.lo, c.hi }

// Clamp clamps v to the representable range. NaN is kept for Sfloat and
// mapped to zero otherwise.
func (c Codec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		if c.kind == Sfloat {
			return v
		}
		return 0
	}
	return math.Max(c.lo, math.Min(c.hi, v))
}

// Encode converts v to the field's bit pattern. The result never has bits
// set above the field width.
func (c Codec) Encode(v float64) uint64 {
	switch c.kind {
	case Uint, Uscaled, Exponent:
		v = math.Round(c.Clamp(v))
		if v >= c.hi {
			return c.mask
		}
		return uint64(v)
	case Sint, Sscaled:
		v = math.Round(c.Clamp(v))
		if v >= c.hi {
			return Mask(c.bits - 1)
		}
		return uint64(int64(v)) & c.mask
	case Unorm:
		q := math.Round(c.Clamp(v) * c.scale)
		if q >= c.scale {
			return c.mask
		}
		return uint64(q)
	case Snorm:
		top := Mask(c.bits - 1)
		q := math.Round(c.Clamp(v) * c.scale)
		switch {
		case q >= c.scale:
			return top
		case q <= -c.scale:
			return uint64(-int64(top)) & c.mask
		}
		return uint64(int64(q)) & c.mask
	case Ufloat:
		return c.uf.Encode(v)
	case Sfloat:
		v = c.Clamp(v)
		switch c.bits {
		case 16:
			return uint64(half.FromFloat64(v).Bits())
		case 32:
			return uint64(math.Float32bits(float32(v)))
		default:
			return math.Float64bits(v)
		}
	default:
		return 0
	}
}

// Decode converts a bit pattern to its value. Bits above the field width are
// ignored.
func (c Codec) Decode(raw uint64) float64 {
	raw &= c.mask
	switch c.kind {
	case Uint, Uscaled, Exponent:
		return float64(raw)
	case Sint, Sscaled:
		return float64(SignExtend(raw, c.bits))
	case Unorm:
		return math.Min(1, float64(raw)/c.scale)
	case Snorm:
		return math.Max(-1, float64(SignExtend(raw, c.bits))/c.scale)
	case Ufloat:
		return c.uf.Decode(raw)
	case Sfloat:
		switch c.bits {
		case 16:
			return half.FromBits(uint16(raw)).Float64()
		case 32:
			return float64(math.Float32frombits(uint32(raw)))
		default:
			return math.Float64frombits(raw)
		}
	default:
		return 0
	}
}

// ToBits encodes v as kind k in bits bits. Unsupported combinations encode
// as zero.
func ToBits(k Kind, bits int, v float64) uint64 {
	c, err := NewCodec(k, bits)
	if err != nil {
		return 0
	}
	return c.Encode(v)
}

// ToValue decodes raw as kind k in bits bits. Unsupported combinations
// decode as zero.
func ToValue(k Kind, bits int, raw uint64) float64 {
	c, err := NewCodec(k, bits)
	if err != nil {
		return 0
	}
	return c.Decode(raw)
}
