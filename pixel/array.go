// Package pixel stores logical color and alpha values in typed buffers.
//
// A root array owns its buffers and encodes pixels in one of three ways:
// [Unpacked] keeps each field in its own element, [Packed] shifts all fields
// into one integer element, and [SharedExponent] stores color mantissas that
// share one exponent. A [View] wraps a root with a chain of transform steps
// (read-only, sub-window, reorientation, premultiplied alpha, virtual padded
// window) without copying pixels. [Copy] moves rectangles between arrays,
// copying raw elements when both sides store pixels the same way.
//
// Colors are exchanged as []float64 with one value per color channel of the
// array's format, in channel order. Arrays are not safe for concurrent
// writes to the same pixels.
package pixel

import (
	"errors"
	"fmt"
	"image"

	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/hwformat"
	"github.com/mrjoshuak/go-texel/layout"
)

var (
	// ErrIncompatibleDimensions is returned when sizes of cooperating arrays,
	// layouts, buffers or rectangles disagree.
	ErrIncompatibleDimensions = errors.New("pixel: incompatible dimensions")

	// ErrIncompatibleFormat is returned when a format cannot be stored in
	// the given buffers or layout.
	ErrIncompatibleFormat = errors.New("pixel: incompatible format")

	// ErrReadOnly is returned when writing through a read-only view.
	ErrReadOnly = errors.New("pixel: array is read-only")

	// ErrUnsupported is returned for transforms the array cannot provide.
	ErrUnsupported = errors.New("pixel: unsupported operation")

	// ErrOutOfBounds is returned for coordinates outside an array.
	ErrOutOfBounds = layout.ErrOutOfBounds
)

// Array is a 2D grid of pixels with a fixed format.
//
// The set of implementations is closed: [*Unpacked], [*Packed],
// [*SharedExponent] and [*View].
type Array interface {
	Width() int
	Height() int
	Format() *format.Format
	// Layout maps pixel coordinates to element offsets in the root buffers.
	Layout() layout.Layout
	ReadOnly() bool

	// Get decodes the pixel at (x, y) into color and returns its alpha.
	// color must hold at least Format().ColorChannelCount() values. Formats
	// without alpha report 1.
	Get(x, y int, color []float64) (alpha float64, err error)
	// Set encodes color and alpha at (x, y). Values outside a field's range
	// are clamped. alpha is ignored by formats without alpha.
	Set(x, y int, color []float64, alpha float64) error
	// Alpha returns only the alpha of (x, y).
	Alpha(x, y int) (float64, error)
	// SetAlpha replaces only the alpha of (x, y), keeping its color.
	SetAlpha(x, y int, alpha float64) error

	// GPUFormat returns the hardware format that stores this array's
	// elements, if there is exactly one. It panics if the catalog holds
	// more than one candidate.
	GPUFormat() (hwformat.Entry, bool)
	// GPUCompatible reports whether the buffer can be handed to a GPU as-is:
	// a hardware format exists and the layout is plain row-major order.
	GPUCompatible() bool

	unwrap() (root, []Step)
}

// Encoding identifies the kind of root array.
type Encoding uint8

const (
	EncodingUnpacked Encoding = iota
	EncodingPacked
	EncodingSharedExponent
)

func (e Encoding) String() string {
	switch e {
	case EncodingUnpacked:
		return "unpacked"
	case EncodingPacked:
		return "packed"
	case EncodingSharedExponent:
		return "shared-exponent"
	default:
		return fmt.Sprintf("Encoding(%d)", e)
	}
}

// root is implemented by the arrays that own buffers. Coordinates passed to
// the lowercase methods are in bounds and in root space.
type root interface {
	Array
	encoding() Encoding
	base() *rootBase
	get(x, y int, color []float64) float64
	set(x, y int, color []float64, alpha float64)
	alpha(x, y int) float64
	setAlpha(x, y int, alpha float64)
}

// EncodingOf returns the encoding of a's root array.
func EncodingOf(a Array) Encoding {
	r, _ := a.unwrap()
	return r.encoding()
}

// Buffers returns the buffers owned by a's root array.
func Buffers(a Array) []buffer.Buffer {
	r, _ := a.unwrap()
	return append([]buffer.Buffer(nil), r.base().buffers...)
}

// rootBase holds what every root array shares.
type rootBase struct {
	format  *format.Format
	layout  layout.Layout
	buffers []buffer.Buffer
	srgb    bool

	// Returned for layout holes, see layout.Padded.
	background      []float64
	backgroundAlpha float64
}

func newRootBase(f *format.Format, l layout.Layout, buffers []buffer.Buffer, o options) rootBase {
	return rootBase{
		format:          f,
		layout:          l,
		buffers:         buffers,
		srgb:            o.srgb,
		background:      o.background,
		backgroundAlpha: o.backgroundAlpha,
	}
}

func (b *rootBase) Width() int             { return b.layout.Width() }
func (b *rootBase) Height() int            { return b.layout.Height() }
func (b *rootBase) Format() *format.Format { return b.format }
func (b *rootBase) Layout() layout.Layout  { return b.layout }
func (b *rootBase) ReadOnly() bool         { return false }
func (b *rootBase) base() *rootBase        { return b }

// SRGB reports whether the color values are tagged as sRGB encoded.
func (b *rootBase) SRGB() bool { return b.srgb }

// fillBackground writes the hole color into color and returns the hole alpha.
func (b *rootBase) fillBackground(color []float64) float64 {
	n := b.format.ColorChannelCount()
	clear(color[:n])
	copy(color[:n], b.background)
	return b.backgroundAlpha
}

func (b *rootBase) checkPoint(x, y int) error {
	if !layout.Contains(b.layout, x, y, 0) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, b.Width(), b.Height())
	}
	return nil
}

func checkColor(f *format.Format, color []float64) error {
	if n := f.ColorChannelCount(); len(color) < n {
		return fmt.Errorf("%w: %d color values for %d channels", ErrIncompatibleFormat, len(color), n)
	}
	return nil
}

// The exported accessors of the three root types share these helpers.

func rootGet(r root, x, y int, color []float64) (float64, error) {
	b := r.base()
	if err := b.checkPoint(x, y); err != nil {
		return 0, err
	}
	if err := checkColor(b.format, color); err != nil {
		return 0, err
	}
	return r.get(x, y, color), nil
}

func rootSet(r root, x, y int, color []float64, alpha float64) error {
	b := r.base()
	if err := b.checkPoint(x, y); err != nil {
		return err
	}
	if err := checkColor(b.format, color); err != nil {
		return err
	}
	r.set(x, y, color, alpha)
	return nil
}

func rootAlpha(r root, x, y int) (float64, error) {
	if err := r.base().checkPoint(x, y); err != nil {
		return 0, err
	}
	return r.alpha(x, y), nil
}

func rootSetAlpha(r root, x, y int, alpha float64) error {
	if err := r.base().checkPoint(x, y); err != nil {
		return err
	}
	r.setAlpha(x, y, alpha)
	return nil
}

// checkBuffer verifies that buf can back layout l.
func checkBuffer(buf buffer.Buffer, l layout.Layout) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrIncompatibleFormat)
	}
	if buf.Len() < l.RequiredElements() {
		return fmt.Errorf("%w: buffer holds %d elements, layout needs %d",
			ErrIncompatibleDimensions, buf.Len(), l.RequiredElements())
	}
	return nil
}

// checkWord verifies that buf stores one whole packed pixel per element.
func checkWord(f *format.Format, l layout.Layout, buf buffer.Buffer) error {
	if err := checkBuffer(buf, l); err != nil {
		return err
	}
	if l.Bands() != 1 {
		return fmt.Errorf("%w: packed pixels need a single-band layout, got %d bands",
			ErrIncompatibleFormat, l.Bands())
	}
	if k := buf.Kind(); !k.Integer() || k.Bits() != f.TotalBitWidth() {
		return fmt.Errorf("%w: %d-bit format in %v buffer", ErrIncompatibleFormat, f.TotalBitWidth(), k)
	}
	return nil
}

// gpuFormat looks up the hardware format for a root array.
func gpuFormat(r root, packed bool) (hwformat.Entry, bool) {
	b := r.base()
	if len(b.buffers) != 1 {
		return hwformat.Undefined, false
	}
	e, err := hwformat.Match(hwformat.Query{
		Format:  b.format,
		Storage: b.buffers[0].Kind(),
		Packed:  packed,
		SRGB:    b.srgb,
	})
	if err != nil {
		panic(err)
	}
	return e, !e.IsUndefined()
}

func gpuCompatible(a Array) bool {
	if _, ok := a.GPUFormat(); !ok {
		return false
	}
	l := a.Layout()
	return l.GPUCompatible() && !layout.HasHoles(l)
}

// bounds returns a's extent as a rectangle at the origin.
func bounds(a Array) image.Rectangle {
	return image.Rect(0, 0, a.Width(), a.Height())
}
