package pixel

import (
	"fmt"

	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/hwformat"
	"github.com/mrjoshuak/go-texel/layout"
	"github.com/mrjoshuak/go-texel/numeric"
)

// Unpacked stores every field in its own buffer element.
//
// The fields either share one buffer, one layout band per field, or each
// field has its own buffer and the layout has a single band.
type Unpacked struct {
	rootBase
	codecs []numeric.Codec
	shared bool
	signed []bool // sign-extend before storing
}

// NewUnpacked returns an array over buffers. Pass one buffer when the layout
// has a band per field, or one buffer per field for a single-band layout.
//
// Integer buffers hold fields up to their own width; 16-bit floats are kept
// as raw bits in 16-bit integer buffers. Float buffers hold only floats of
// the same width.
func NewUnpacked(f *format.Format, l layout.Layout, buffers []buffer.Buffer, opts ...Option) (*Unpacked, error) {
	if f == nil || l == nil {
		return nil, fmt.Errorf("%w: nil format or layout", ErrIncompatibleFormat)
	}
	if f.IsSharedExponent() {
		return nil, fmt.Errorf("%w: %v is a shared-exponent format", format.ErrInvalidFormat, f)
	}
	n := f.FieldCount()
	a := &Unpacked{
		codecs: make([]numeric.Codec, n),
		signed: make([]bool, n),
	}
	switch {
	case len(buffers) == 1 && l.Bands() == n:
		a.shared = true
	case len(buffers) == n && l.Bands() == 1:
	default:
		return nil, fmt.Errorf("%w: %d fields in %d buffers with %d bands",
			ErrIncompatibleFormat, n, len(buffers), l.Bands())
	}
	for _, buf := range buffers {
		if err := checkBuffer(buf, l); err != nil {
			return nil, err
		}
	}

	for i := range n {
		fd := f.Field(i)
		buf := buffers[0]
		if !a.shared {
			buf = buffers[i]
		}
		if err := checkFieldStorage(fd, buf.Kind()); err != nil {
			return nil, err
		}
		if fd.Kind != numeric.None {
			a.codecs[i] = numeric.MustCodec(fd.Kind, fd.Bits)
		}
		a.signed[i] = fd.Kind.Signed() && fd.Kind != numeric.Sfloat && buf.Kind().Signed()
	}
	a.rootBase = newRootBase(f, l, append([]buffer.Buffer(nil), buffers...), applyOptions(opts))
	return a, nil
}

func checkFieldStorage(fd format.Field, k buffer.Kind) error {
	ok := false
	switch {
	case k.Float():
		ok = fd.Kind == numeric.Sfloat && fd.Bits == k.Bits() || fd.Kind == numeric.None && fd.Bits <= k.Bits()
	case k.Integer():
		ok = fd.Bits <= k.Bits() && (fd.Kind != numeric.Sfloat || fd.Bits == k.Bits())
	}
	if !ok {
		return fmt.Errorf("%w: field %v in %v buffer", ErrIncompatibleFormat, fd, k)
	}
	return nil
}

func (a *Unpacked) encoding() Encoding     { return EncodingUnpacked }
func (a *Unpacked) unwrap() (root, []Step) { return a, nil }

func (a *Unpacked) Get(x, y int, color []float64) (float64, error) {
	return rootGet(a, x, y, color)
}

func (a *Unpacked) Set(x, y int, color []float64, alpha float64) error {
	return rootSet(a, x, y, color, alpha)
}

func (a *Unpacked) Alpha(x, y int) (float64, error)        { return rootAlpha(a, x, y) }
func (a *Unpacked) SetAlpha(x, y int, alpha float64) error { return rootSetAlpha(a, x, y, alpha) }

func (a *Unpacked) GPUFormat() (hwformat.Entry, bool) { return gpuFormat(a, false) }
func (a *Unpacked) GPUCompatible() bool               { return gpuCompatible(a) }

// locate returns the buffer and element of field i at (x, y), or a negative
// offset for a layout hole.
func (a *Unpacked) locate(x, y, i int) (buffer.Buffer, int) {
	if a.shared {
		return a.buffers[0], a.layout.Offset(x, y, i)
	}
	return a.buffers[i], a.layout.Offset(x, y, 0)
}

func (a *Unpacked) read(x, y, i int) float64 {
	buf, off := a.locate(x, y, i)
	return a.codecs[i].Decode(buf.Bits(off))
}

func (a *Unpacked) write(x, y, i int, v float64) {
	buf, off := a.locate(x, y, i)
	raw := a.codecs[i].Encode(v)
	if a.signed[i] {
		raw = uint64(numeric.SignExtend(raw, a.codecs[i].Bits()))
	}
	buf.SetBits(off, raw)
}

func (a *Unpacked) hole(x, y int) bool {
	return a.layout.Offset(x, y, 0) < 0
}

func (a *Unpacked) get(x, y int, color []float64) float64 {
	if a.hole(x, y) {
		return a.fillBackground(color)
	}
	for c := range a.format.ColorChannelCount() {
		color[c] = a.read(x, y, a.format.FieldForColorChannel(c))
	}
	return a.alpha(x, y)
}

func (a *Unpacked) set(x, y int, color []float64, alpha float64) {
	if a.hole(x, y) {
		return
	}
	for c := range a.format.ColorChannelCount() {
		a.write(x, y, a.format.FieldForColorChannel(c), color[c])
	}
	a.setAlpha(x, y, alpha)
}

func (a *Unpacked) alpha(x, y int) float64 {
	if a.hole(x, y) {
		return a.backgroundAlpha
	}
	i := a.format.FieldForAlpha()
	if i < 0 {
		return 1
	}
	return a.read(x, y, i)
}

func (a *Unpacked) setAlpha(x, y int, alpha float64) {
	i := a.format.FieldForAlpha()
	if i < 0 || a.hole(x, y) {
		return
	}
	a.write(x, y, i, alpha)
}
