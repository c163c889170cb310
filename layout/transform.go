package layout

import (
	"fmt"
	"image"
)

// Inverted mirrors its parent horizontally and/or vertically.
type Inverted struct {
	parent       Layout
	flipX, flipY bool
}

// NewInverted wraps parent, mirroring x when flipX is set and y when flipY is
// set.
func NewInverted(parent Layout, flipX, flipY bool) *Inverted {
	return &Inverted{parent: parent, flipX: flipX, flipY: flipY}
}

// Parent returns the wrapped layout.
func (l *Inverted) Parent() Layout { return l.parent }

// Flips returns the mirrored axes.
func (l *Inverted) Flips() (x, y bool) { return l.flipX, l.flipY }

func (l *Inverted) Width() int  { return l.parent.Width() }
func (l *Inverted) Height() int { return l.parent.Height() }
func (l *Inverted) Bands() int  { return l.parent.Bands() }

func (l *Inverted) flip(x, y int) (int, int) {
	if l.flipX {
		x = l.parent.Width() - 1 - x
	}
	if l.flipY {
		y = l.parent.Height() - 1 - y
	}
	return x, y
}

func (l *Inverted) Offset(x, y, band int) int {
	x, y = l.flip(x, y)
	return l.parent.Offset(x, y, band)
}

func (l *Inverted) RequiredElements() int  { return l.parent.RequiredElements() }
func (l *Inverted) GPUCompatible() bool    { return false }
func (l *Inverted) PixelInterleaved() bool { return l.parent.PixelInterleaved() }
func (l *Inverted) Sorted() bool           { return false }

func (l *Inverted) Run(x, y int) (int, int) {
	if l.flipX {
		return 1, 0
	}
	x, y = l.flip(x, y)
	return l.parent.Run(x, y)
}

func (l *Inverted) Locate(offset int) (x, y, band int, err error) {
	x, y, band, err = l.parent.Locate(offset)
	if err != nil {
		return 0, 0, 0, err
	}
	x, y = l.flip(x, y)
	return x, y, band, nil
}

func (*Inverted) layout() {}

// Transposed swaps the axes of its parent: (x, y) maps to the parent's
// (y, x).
type Transposed struct {
	parent Layout
}

// NewTransposed wraps parent with its axes swapped.
func NewTransposed(parent Layout) *Transposed {
	return &Transposed{parent: parent}
}

// Parent returns the wrapped layout.
func (l *Transposed) Parent() Layout { return l.parent }

func (l *Transposed) Width() int  { return l.parent.Height() }
func (l *Transposed) Height() int { return l.parent.Width() }
func (l *Transposed) Bands() int  { return l.parent.Bands() }

func (l *Transposed) Offset(x, y, band int) int {
	return l.parent.Offset(y, x, band)
}

func (l *Transposed) RequiredElements() int  { return l.parent.RequiredElements() }
func (l *Transposed) GPUCompatible() bool    { return false }
func (l *Transposed) PixelInterleaved() bool { return l.parent.PixelInterleaved() }
func (l *Transposed) Sorted() bool           { return false }
func (l *Transposed) Run(x, y int) (int, int) {
	return 1, 0
}

func (l *Transposed) Locate(offset int) (x, y, band int, err error) {
	x, y, band, err = l.parent.Locate(offset)
	return y, x, band, err
}

func (*Transposed) layout() {}

// Window exposes a rectangle of its parent, translated to the origin.
type Window struct {
	parent Layout
	rect   image.Rectangle
}

// NewWindow returns the sub-window r of parent. r must be non-empty and lie
// inside the parent.
func NewWindow(parent Layout, r image.Rectangle) (*Window, error) {
	if r.Empty() || !r.In(Bounds(parent)) {
		return nil, fmt.Errorf("%w: window %v outside %v", ErrOutOfBounds, r, Bounds(parent))
	}
	return &Window{parent: parent, rect: r}, nil
}

// Parent returns the wrapped layout.
func (l *Window) Parent() Layout { return l.parent }

// Rect returns the window in parent coordinates.
func (l *Window) Rect() image.Rectangle { return l.rect }

func (l *Window) Width() int  { return l.rect.Dx() }
func (l *Window) Height() int { return l.rect.Dy() }
func (l *Window) Bands() int  { return l.parent.Bands() }

func (l *Window) Offset(x, y, band int) int {
	return l.parent.Offset(x+l.rect.Min.X, y+l.rect.Min.Y, band)
}

func (l *Window) RequiredElements() int { return l.parent.RequiredElements() }

// GPUCompatible holds only for windows spanning whole rows of a compatible
// parent.
func (l *Window) GPUCompatible() bool {
	return l.parent.GPUCompatible() && l.rect.Dx() == l.parent.Width()
}

func (l *Window) PixelInterleaved() bool { return l.parent.PixelInterleaved() }
func (l *Window) Sorted() bool           { return l.parent.Sorted() }

func (l *Window) Run(x, y int) (int, int) {
	n, stride := l.parent.Run(x+l.rect.Min.X, y+l.rect.Min.Y)
	return min(n, l.rect.Dx()-x), stride
}

func (l *Window) Locate(offset int) (x, y, band int, err error) {
	x, y, band, err = l.parent.Locate(offset)
	if err != nil {
		return 0, 0, 0, err
	}
	if !image.Pt(x, y).In(l.rect) {
		return 0, 0, 0, fmt.Errorf("%w: offset %d is outside the window", ErrOutOfBounds, offset)
	}
	return x - l.rect.Min.X, y - l.rect.Min.Y, band, nil
}

func (*Window) layout() {}

// Padded is a virtual window over its parent. The window may extend past
// the parent on any side; coordinates with no parent pixel have offset -1.
type Padded struct {
	parent Layout
	rect   image.Rectangle
}

// NewPadded returns the virtual window r, given in parent coordinates.
func NewPadded(parent Layout, r image.Rectangle) (*Padded, error) {
	if r.Empty() {
		return nil, fmt.Errorf("%w: empty virtual window %v", ErrInvalidLayout, r)
	}
	return &Padded{parent: parent, rect: r}, nil
}

// Parent returns the wrapped layout.
func (l *Padded) Parent() Layout { return l.parent }

// Rect returns the virtual window in parent coordinates.
func (l *Padded) Rect() image.Rectangle { return l.rect }

// Inside reports whether (x, y) maps to a parent pixel.
func (l *Padded) Inside(x, y int) bool {
	px, py := x+l.rect.Min.X, y+l.rect.Min.Y
	return px >= 0 && py >= 0 && px < l.parent.Width() && py < l.parent.Height()
}

func (l *Padded) Width() int  { return l.rect.Dx() }
func (l *Padded) Height() int { return l.rect.Dy() }
func (l *Padded) Bands() int  { return l.parent.Bands() }

func (l *Padded) Offset(x, y, band int) int {
	if !l.Inside(x, y) {
		return -1
	}
	return l.parent.Offset(x+l.rect.Min.X, y+l.rect.Min.Y, band)
}

func (l *Padded) RequiredElements() int  { return l.parent.RequiredElements() }
func (l *Padded) GPUCompatible() bool    { return false }
func (l *Padded) PixelInterleaved() bool { return l.parent.PixelInterleaved() }
func (l *Padded) Sorted() bool           { return false }
func (l *Padded) Run(x, y int) (int, int) {
	return 1, 0
}

func (l *Padded) Locate(offset int) (x, y, band int, err error) {
	x, y, band, err = l.parent.Locate(offset)
	if err != nil {
		return 0, 0, 0, err
	}
	x, y = x-l.rect.Min.X, y-l.rect.Min.Y
	if x < 0 || y < 0 || x >= l.Width() || y >= l.Height() {
		return 0, 0, 0, fmt.Errorf("%w: offset %d is outside the virtual window", ErrOutOfBounds, offset)
	}
	return x, y, band, nil
}

func (*Padded) layout() {}
