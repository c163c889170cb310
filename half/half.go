// Package half provides IEEE 754 binary16 half-precision floating-point numbers
// and the unsigned small floats used by packed texture formats.
//
// Half-precision floats use 16 bits with the following layout:
//   - 1 bit sign
//   - 5 bits exponent (bias of 15)
//   - 10 bits mantissa (implicit leading 1 for normalized values)
//
// Unsigned small floats (see [UFloat]) drop the sign bit and keep the 5-bit
// exponent, so an 11-bit value carries a 6-bit mantissa and a 10-bit value a
// 5-bit mantissa.
package half

import (
	"math"
)

// Half represents an IEEE 754 binary16 half-precision floating-point number.
// The underlying storage is a uint16.
type Half uint16

const (
	signBit      = 0x8000
	exponentMask = 0x7C00
	mantissaMask = 0x03FF

	exponentBias = 15
	maxExponent  = 31

	posInf = Half(0x7C00)
	negInf = Half(0xFC00)
	nan    = Half(0x7E00)

	maxHalf = Half(0x7BFF) // ~65504
)

var (
	// Inf is positive infinity.
	Inf = posInf
	// NegInf is negative infinity.
	NegInf = negInf
	// NaN is a quiet NaN value.
	NaN = nan
	// Max is the largest finite positive half-precision value (~65504).
	Max = maxHalf
)

// MaxValue is the largest finite value representable by a Half.
const MaxValue = 65504.0

// FromFloat32 converts a float32 to a Half using round-to-nearest-even.
func FromFloat32(f float32) Half {
	return fromFloat32Bits(math.Float32bits(f))
}

func fromFloat32Bits(bits uint32) Half {
	sign := uint16((bits >> 16) & signBit)
	exp := int((bits >> 23) & 0xFF)
	mantissa := bits & 0x007FFFFF

	switch {
	case exp == 0xFF:
		if mantissa == 0 {
			return Half(sign | uint16(exponentMask))
		}
		return Half(sign | uint16(exponentMask) | uint16(mantissa>>13) | 0x0200)
	case exp == 0:
		// float32 subnormals are far below the half range
		return Half(sign)
	}

	exp = exp - 127 + exponentBias
	if exp >= maxExponent {
		return Half(sign | uint16(exponentMask))
	}
	if exp < -10 {
		return Half(sign)
	}

	if exp <= 0 {
		mantissa |= 0x00800000
		shift := uint(14 - exp)
		if shift > 24 {
			return Half(sign)
		}
		halfMantissa := mantissa >> shift
		round := mantissa >> (shift - 1) & 1
		sticky := mantissa & ((1 << (shift - 1)) - 1)
		if round != 0 && (sticky != 0 || (halfMantissa&1) != 0) {
			halfMantissa++
		}
		return Half(sign | uint16(halfMantissa&0x07FF))
	}

	halfMantissa := mantissa >> 13
	round := (mantissa >> 12) & 1
	sticky := mantissa & 0x0FFF
	if round != 0 && (sticky != 0 || (halfMantissa&1) != 0) {
		halfMantissa++
		if halfMantissa > mantissaMask {
			halfMantissa = 0
			exp++
			if exp >= maxExponent {
				return Half(sign | uint16(exponentMask))
			}
		}
	}
	return Half(sign | uint16(exp<<10) | uint16(halfMantissa&mantissaMask))
}

// Float32 converts a Half to a float32.
func (h Half) Float32() float32 {
	return math.Float32frombits(h.float32Bits())
}

func (h Half) float32Bits() uint32 {
	sign := uint32(h&signBit) << 16
	exp := int((h >> 10) & 0x1F)
	mantissa := uint32(h & mantissaMask)

	switch {
	case exp == 0:
		if mantissa == 0 {
			return sign
		}
		for mantissa&0x0400 == 0 {
			mantissa <<= 1
			exp--
		}
		exp++
		mantissa &= mantissaMask
		exp = exp - exponentBias + 127
		return sign | uint32(exp<<23) | (mantissa << 13)
	case exp == maxExponent:
		if mantissa == 0 {
			return sign | 0x7F800000
		}
		return sign | 0x7F800000 | (mantissa << 13) | 0x00400000
	default:
		exp = exp - exponentBias + 127
		return sign | uint32(exp<<23) | (mantissa << 13)
	}
}

// FromFloat64 converts a float64 to a Half using round-to-nearest-even on
// the full float64 mantissa.
func FromFloat64(f float64) Half {
	bits := math.Float64bits(f)
	sign := uint16(bits>>48) & signBit
	exp := int(bits>>52) & 0x7FF
	mantissa := bits & (1<<52 - 1)

	switch {
	case exp == 0x7FF:
		if mantissa == 0 {
			return Half(sign | uint16(exponentMask))
		}
		return Half(sign | uint16(exponentMask) | uint16(mantissa>>42) | 0x0200)
	case exp == 0:
		return Half(sign)
	}

	exp = exp - 1023 + exponentBias
	if exp >= maxExponent {
		return Half(sign | uint16(exponentMask))
	}
	if exp < -10 {
		return Half(sign)
	}

	if exp <= 0 {
		mantissa |= 1 << 52
		shift := uint(43 - exp)
		halfMantissa := mantissa >> shift
		round := mantissa >> (shift - 1) & 1
		sticky := mantissa & (1<<(shift-1) - 1)
		if round != 0 && (sticky != 0 || halfMantissa&1 != 0) {
			halfMantissa++
		}
		return Half(sign | uint16(halfMantissa))
	}

	halfMantissa := mantissa >> 42
	round := mantissa >> 41 & 1
	sticky := mantissa & (1<<41 - 1)
	if round != 0 && (sticky != 0 || halfMantissa&1 != 0) {
		halfMantissa++
		if halfMantissa > mantissaMask {
			halfMantissa = 0
			exp++
			if exp >= maxExponent {
				return Half(sign | uint16(exponentMask))
			}
		}
	}
	return Half(sign | uint16(exp<<10) | uint16(halfMantissa))
}

// Float64 converts a Half to a float64.
func (h Half) Float64() float64 {
	return float64(h.Float32())
}

// IsNaN returns true if h is a NaN value.
func (h Half) IsNaN() bool {
	return h&exponentMask == exponentMask && h&mantissaMask != 0
}

// IsInf returns true if h is positive or negative infinity.
func (h Half) IsInf() bool {
	return h&0x7FFF == exponentMask
}

// IsFinite returns true if h is not Inf or NaN.
func (h Half) IsFinite() bool {
	return h&exponentMask != exponentMask
}

// Bits returns the IEEE 754 binary16 representation of h.
func (h Half) Bits() uint16 {
	return uint16(h)
}

// FromBits creates a Half from its IEEE 754 binary16 bit representation.
func FromBits(bits uint16) Half {
	return Half(bits)
}
