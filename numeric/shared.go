package numeric

import (
	"fmt"
	"math"
)

// SharedExponent encodes a vector of non-negative values as unsigned
// mantissas with one common exponent, the way RGB9E5 does. Mantissas have no
// implicit leading one and the exponent bias is 2^(ExponentBits-1)-1.
type SharedExponent struct {
	MantissaBits int
	ExponentBits int
}

// RGB9E5 is the shared-exponent configuration of E5B9G9R9.
var RGB9E5 = SharedExponent{MantissaBits: 9, ExponentBits: 5}

// Validate reports whether the configuration can be encoded in 64 bits.
func (s SharedExponent) Validate() error {
	if s.MantissaBits < 1 || s.MantissaBits > 52 || s.ExponentBits < 2 || s.ExponentBits > 11 {
		return fmt.Errorf("%w: shared exponent m%d e%d", ErrUnsupported, s.MantissaBits, s.ExponentBits)
	}
	return nil
}

// Bias returns the exponent bias.
func (s SharedExponent) Bias() int {
	return 1<<(s.ExponentBits-1) - 1
}

func (s SharedExponent) maxExponent() int {
	return 1<<s.ExponentBits - 1
}

// Max returns the largest representable value.
func (s SharedExponent) Max() float64 {
	n := math.Ldexp(1, s.MantissaBits)
	return (n - 1) / n * math.Ldexp(1, s.maxExponent()-s.Bias())
}

// Encode quantizes values into mantissas and returns the shared exponent.
// Each value is clamped to [0, Max] first; NaN encodes as zero. mantissas
// must be at least as long as values.
func (s SharedExponent) Encode(values []float64, mantissas []uint64) uint64 {
	limit := s.Max()
	maxV := 0.0
	for _, v := range values {
		if v > maxV {
			maxV = math.Min(v, limit)
		}
	}

	bias := s.Bias()
	exp := int(math.Max(float64(-bias-1), math.Floor(math.Log2(maxV)))) + 1 + bias
	denom := math.Ldexp(1, exp-bias-s.MantissaBits)
	if math.Floor(maxV/denom+0.5) == math.Ldexp(1, s.MantissaBits) {
		exp++
		denom *= 2
	}

	top := Mask(s.MantissaBits)
	for i, v := range values {
		if !(v > 0) {
			mantissas[i] = 0
			continue
		}
		m := uint64(math.Floor(math.Min(v, limit)/denom + 0.5))
		mantissas[i] = min(m, top)
	}
	return uint64(exp)
}

// Decode expands mantissas sharing exponent exp into dst.
func (s SharedExponent) Decode(mantissas []uint64, exp uint64, dst []float64) {
	e := int(exp&Mask(s.ExponentBits)) - s.Bias() - s.MantissaBits
	top := Mask(s.MantissaBits)
	for i, m := range mantissas {
		dst[i] = math.Ldexp(float64(m&top), e)
	}
}
