// Package layout maps 2D pixel coordinates and band indices to linear
// element offsets.
//
// The set of layouts is closed: [Scanline], [Tiled], [Inverted],
// [Transposed], [Window] and [Padded]. Wrapping layouts delegate to a parent
// after remapping the coordinate. All layouts are immutable.
//
// Offset does not bounds-check its arguments; use [Checked] when the
// coordinate comes from outside.
package layout

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrOutOfBounds is returned for a coordinate or offset outside a layout.
	ErrOutOfBounds = errors.New("layout: coordinate out of bounds")

	// ErrInvalidLayout is returned when layout parameters are inconsistent.
	ErrInvalidLayout = errors.New("layout: invalid layout")
)

// Layout maps (x, y, band) to an element offset.
type Layout interface {
	// Width and Height give the extent in pixels; both are at least 1.
	Width() int
	Height() int
	// Bands is the number of offsets per pixel.
	Bands() int
	// Offset returns the element offset of band at (x, y). Offsets are
	// unique over the valid domain. A negative offset means the coordinate
	// has no storage (see Padded).
	Offset(x, y, band int) int
	// RequiredElements is the minimum buffer length.
	RequiredElements() int
	// GPUCompatible reports whether the element order is the plain
	// row-major, band-interleaved order hardware expects.
	GPUCompatible() bool
	// PixelInterleaved reports whether all bands of a pixel are adjacent.
	PixelInterleaved() bool
	// Sorted reports whether offsets strictly increase in row-major,
	// band-innermost order.
	Sorted() bool
	// Run returns n >= 1 and a stride such that, for every band and i < n,
	// Offset(x+i, y, band) == Offset(x, y, band) + i*stride.
	Run(x, y int) (n, stride int)
	// Locate inverts Offset.
	Locate(offset int) (x, y, band int, err error)

	layout()
}

// Bounds returns the layout's extent as a rectangle at the origin.
func Bounds(l Layout) image.Rectangle {
	return image.Rect(0, 0, l.Width(), l.Height())
}

// Contains reports whether (x, y, band) is inside the layout's domain.
func Contains(l Layout, x, y, band int) bool {
	return x >= 0 && y >= 0 && band >= 0 && x < l.Width() && y < l.Height() && band < l.Bands()
}

// Checked is Offset with bounds checking.
func Checked(l Layout, x, y, band int) (int, error) {
	if !Contains(l, x, y, band) {
		return 0, fmt.Errorf("%w: (%d, %d) band %d outside %dx%dx%d",
			ErrOutOfBounds, x, y, band, l.Width(), l.Height(), l.Bands())
	}
	return l.Offset(x, y, band), nil
}

// Forward reports whether Run can return runs longer than one pixel.
func Forward(l Layout) bool {
	switch v := l.(type) {
	case *Scanline, *Tiled:
		return true
	case *Window:
		return Forward(v.parent)
	case *Inverted:
		return !v.flipX && Forward(v.parent)
	default:
		return false
	}
}

// HasHoles reports whether some coordinate of l has no storage.
func HasHoles(l Layout) bool {
	switch v := l.(type) {
	case *Padded:
		return true
	case *Inverted:
		return HasHoles(v.parent)
	case *Transposed:
		return HasHoles(v.parent)
	case *Window:
		return HasHoles(v.parent)
	default:
		return false
	}
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Layout) bool {
	switch x := a.(type) {
	case *Scanline:
		y, ok := b.(*Scanline)
		return ok && *x == *y
	case *Tiled:
		y, ok := b.(*Tiled)
		return ok && *x == *y
	case *Inverted:
		y, ok := b.(*Inverted)
		return ok && x.flipX == y.flipX && x.flipY == y.flipY && Equal(x.parent, y.parent)
	case *Transposed:
		y, ok := b.(*Transposed)
		return ok && Equal(x.parent, y.parent)
	case *Window:
		y, ok := b.(*Window)
		return ok && x.rect == y.rect && Equal(x.parent, y.parent)
	case *Padded:
		y, ok := b.(*Padded)
		return ok && x.rect == y.rect && Equal(x.parent, y.parent)
	default:
		return false
	}
}

func checkExtent(w, h, bands int) error {
	if w < 1 || h < 1 || bands < 1 {
		return fmt.Errorf("%w: %dx%d with %d bands", ErrInvalidLayout, w, h, bands)
	}
	return nil
}

func outOfRange(offset int) error {
	return fmt.Errorf("%w: offset %d", ErrOutOfBounds, offset)
}
