package pixel

import (
	"fmt"

	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/hwformat"
	"github.com/mrjoshuak/go-texel/layout"
	"github.com/mrjoshuak/go-texel/numeric"
)

// Packed stores each pixel as one integer element holding every field. The
// first field occupies the most significant bits.
type Packed struct {
	rootBase
	codecs []numeric.Codec
	shifts []int
	buf    buffer.Buffer
}

// NewPacked returns an array over buf, an integer buffer whose element
// width equals the format's total bit width. l must have a single band.
func NewPacked(f *format.Format, l layout.Layout, buf buffer.Buffer, opts ...Option) (*Packed, error) {
	if f == nil || l == nil {
		return nil, fmt.Errorf("%w: nil format or layout", ErrIncompatibleFormat)
	}
	if f.IsSharedExponent() {
		return nil, fmt.Errorf("%w: %v is a shared-exponent format", format.ErrInvalidFormat, f)
	}
	if err := checkWord(f, l, buf); err != nil {
		return nil, err
	}
	a := &Packed{
		codecs: make([]numeric.Codec, f.FieldCount()),
		shifts: f.BitOffsets(),
		buf:    buf,
	}
	for i := range f.FieldCount() {
		if fd := f.Field(i); fd.Kind != numeric.None {
			a.codecs[i] = numeric.MustCodec(fd.Kind, fd.Bits)
		}
	}
	a.rootBase = newRootBase(f, l, []buffer.Buffer{buf}, applyOptions(opts))
	return a, nil
}

func (a *Packed) encoding() Encoding     { return EncodingPacked }
func (a *Packed) unwrap() (root, []Step) { return a, nil }

func (a *Packed) Get(x, y int, color []float64) (float64, error) {
	return rootGet(a, x, y, color)
}

func (a *Packed) Set(x, y int, color []float64, alpha float64) error {
	return rootSet(a, x, y, color, alpha)
}

func (a *Packed) Alpha(x, y int) (float64, error)        { return rootAlpha(a, x, y) }
func (a *Packed) SetAlpha(x, y int, alpha float64) error { return rootSetAlpha(a, x, y, alpha) }

func (a *Packed) GPUFormat() (hwformat.Entry, bool) { return gpuFormat(a, true) }
func (a *Packed) GPUCompatible() bool               { return gpuCompatible(a) }

// field extracts field i from a packed word.
func (a *Packed) field(word uint64, i int) float64 {
	c := a.codecs[i]
	return c.Decode((word >> a.shifts[i]) & c.Mask())
}

func (a *Packed) get(x, y int, color []float64) float64 {
	off := a.layout.Offset(x, y, 0)
	if off < 0 {
		return a.fillBackground(color)
	}
	word := a.buf.Bits(off)
	for c := range a.format.ColorChannelCount() {
		color[c] = a.field(word, a.format.FieldForColorChannel(c))
	}
	if i := a.format.FieldForAlpha(); i >= 0 {
		return a.field(word, i)
	}
	return 1
}

// set rebuilds the whole word. Skipped fields are written as zero.
func (a *Packed) set(x, y int, color []float64, alpha float64) {
	off := a.layout.Offset(x, y, 0)
	if off < 0 {
		return
	}
	var word uint64
	for c := range a.format.ColorChannelCount() {
		i := a.format.FieldForColorChannel(c)
		word |= a.codecs[i].Encode(color[c]) << a.shifts[i]
	}
	if i := a.format.FieldForAlpha(); i >= 0 {
		word |= a.codecs[i].Encode(alpha) << a.shifts[i]
	}
	a.buf.SetBits(off, word)
}

func (a *Packed) alpha(x, y int) float64 {
	off := a.layout.Offset(x, y, 0)
	if off < 0 {
		return a.backgroundAlpha
	}
	i := a.format.FieldForAlpha()
	if i < 0 {
		return 1
	}
	return a.field(a.buf.Bits(off), i)
}

// setAlpha clears only the alpha bits of the stored word.
func (a *Packed) setAlpha(x, y int, alpha float64) {
	off := a.layout.Offset(x, y, 0)
	i := a.format.FieldForAlpha()
	if off < 0 || i < 0 {
		return
	}
	c := a.codecs[i]
	word := a.buf.Bits(off) &^ (c.Mask() << a.shifts[i])
	a.buf.SetBits(off, word|c.Encode(alpha)<<a.shifts[i])
}
