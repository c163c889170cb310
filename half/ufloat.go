package half

import "math"

// UFloat describes an unsigned small float with a 5-bit exponent (bias 15)
// and MantissaBits bits of mantissa, as used by packed formats such as
// B10G11R11. The value has no sign bit; the encoded width is
// MantissaBits + 5.
type UFloat struct {
	MantissaBits int
}

// Common unsigned small floats.
var (
	UFloat11 = UFloat{MantissaBits: 6}
	UFloat10 = UFloat{MantissaBits: 5}
)

// Bits returns the encoded width.
func (u UFloat) Bits() int {
	return u.MantissaBits + 5
}

// Max returns the largest finite value.
func (u UFloat) Max() float64 {
	m := float64(uint64(1) << u.MantissaBits)
	return (2 - 1/m) * math.Ldexp(1, maxExponent-1-exponentBias)
}

// Encode converts v to its bit pattern, rounding to nearest.
// Negative values and NaN encode as zero, values above [UFloat.Max]
// (including +Inf) clamp to the largest finite value.
func (u UFloat) Encode(v float64) uint64 {
	if !(v > 0) {
		return 0
	}
	mbits := uint(u.MantissaBits)
	one := uint64(1) << mbits
	maxBits := uint64(maxExponent-1)<<mbits | (one - 1)
	if v >= u.Max() {
		return maxBits
	}

	frac, e := math.Frexp(v) // v = frac * 2^e, frac in [0.5, 1)
	exp := e - 1 + exponentBias
	if exp <= 0 {
		// subnormal: v = m/2^mbits * 2^(1-bias)
		m := uint64(math.Round(math.Ldexp(v, int(mbits)+exponentBias-1)))
		// m == one rolls over into the smallest normal, which has the same encoding
		return m
	}

	m := uint64(math.Round((frac*2 - 1) * float64(one)))
	if m == one {
		m = 0
		exp++
	}
	if exp >= maxExponent {
		return maxBits
	}
	return uint64(exp)<<mbits | m
}

// Decode converts a bit pattern to its value. Bits above the encoded width
// are ignored.
func (u UFloat) Decode(bits uint64) float64 {
	mbits := uint(u.MantissaBits)
	one := uint64(1) << mbits
	exp := int(bits>>mbits) & maxExponent
	m := bits & (one - 1)

	switch exp {
	case 0:
		return math.Ldexp(float64(m), 1-exponentBias-int(mbits))
	case maxExponent:
		if m == 0 {
			return math.Inf(1)
		}
		return math.NaN()
	default:
		return math.Ldexp(float64(one+m), exp-exponentBias-int(mbits))
	}
}
