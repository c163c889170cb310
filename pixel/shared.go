package pixel

import (
	"fmt"

	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/hwformat"
	"github.com/mrjoshuak/go-texel/layout"
	"github.com/mrjoshuak/go-texel/numeric"
)

// SharedExponent stores the color mantissas of a pixel and their common
// exponent in one integer element, the way E5B9G9R9 does. It has no alpha.
type SharedExponent struct {
	rootBase
	codec     numeric.SharedExponent
	buf       buffer.Buffer
	shifts    []int // per color channel
	expShift  int
	mantMask  uint64
	expMask   uint64
	nchannels int
}

// NewSharedExponent returns an array over buf. f must be a shared-exponent
// format and buf an integer buffer as wide as the format.
func NewSharedExponent(f *format.Format, l layout.Layout, buf buffer.Buffer, opts ...Option) (*SharedExponent, error) {
	if f == nil || l == nil {
		return nil, fmt.Errorf("%w: nil format or layout", ErrIncompatibleFormat)
	}
	if !f.IsSharedExponent() {
		return nil, fmt.Errorf("%w: %v has no shared exponent", format.ErrInvalidFormat, f)
	}
	if err := checkWord(f, l, buf); err != nil {
		return nil, err
	}
	codec := f.SharedExponent()
	n := f.ColorChannelCount()
	a := &SharedExponent{
		codec:     codec,
		buf:       buf,
		shifts:    make([]int, n),
		expShift:  f.BitOffset(f.ExponentField()),
		mantMask:  numeric.Mask(codec.MantissaBits),
		expMask:   numeric.Mask(codec.ExponentBits),
		nchannels: n,
	}
	for c := range n {
		a.shifts[c] = f.BitOffset(f.FieldForColorChannel(c))
	}
	a.rootBase = newRootBase(f, l, []buffer.Buffer{buf}, applyOptions(opts))
	return a, nil
}

// Codec returns the shared-exponent configuration.
func (a *SharedExponent) Codec() numeric.SharedExponent { return a.codec }

func (a *SharedExponent) encoding() Encoding     { return EncodingSharedExponent }
func (a *SharedExponent) unwrap() (root, []Step) { return a, nil }

func (a *SharedExponent) Get(x, y int, color []float64) (float64, error) {
	return rootGet(a, x, y, color)
}

func (a *SharedExponent) Set(x, y int, color []float64, alpha float64) error {
	return rootSet(a, x, y, color, alpha)
}

func (a *SharedExponent) Alpha(x, y int) (float64, error)        { return rootAlpha(a, x, y) }
func (a *SharedExponent) SetAlpha(x, y int, alpha float64) error { return rootSetAlpha(a, x, y, alpha) }

func (a *SharedExponent) GPUFormat() (hwformat.Entry, bool) { return gpuFormat(a, true) }
func (a *SharedExponent) GPUCompatible() bool               { return gpuCompatible(a) }

func (a *SharedExponent) get(x, y int, color []float64) float64 {
	off := a.layout.Offset(x, y, 0)
	if off < 0 {
		return a.fillBackground(color)
	}
	word := a.buf.Bits(off)
	mantissas := make([]uint64, a.nchannels)
	for c, s := range a.shifts {
		mantissas[c] = (word >> s) & a.mantMask
	}
	a.codec.Decode(mantissas, (word>>a.expShift)&a.expMask, color)
	return 1
}

// set encodes the color vector; alpha is ignored.
func (a *SharedExponent) set(x, y int, color []float64, _ float64) {
	off := a.layout.Offset(x, y, 0)
	if off < 0 {
		return
	}
	mantissas := make([]uint64, a.nchannels)
	word := a.codec.Encode(color[:a.nchannels], mantissas) << a.expShift
	for c, s := range a.shifts {
		word |= mantissas[c] << s
	}
	a.buf.SetBits(off, word)
}

func (a *SharedExponent) alpha(x, y int) float64 {
	if a.layout.Offset(x, y, 0) < 0 {
		return a.backgroundAlpha
	}
	return 1
}

func (a *SharedExponent) setAlpha(int, int, float64) {}
