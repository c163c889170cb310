package layout

import "fmt"

// InterleavingUnit says how the bands of a tiled layout are interleaved.
type InterleavingUnit uint8

const (
	// InterleavePixel keeps all bands of a pixel adjacent.
	InterleavePixel InterleavingUnit = iota
	// InterleaveScanline stores each band's part of a tile row in turn.
	InterleaveScanline
	// InterleaveTile stores each band's whole tile in turn.
	InterleaveTile
	// InterleaveImage stores each band as its own plane of the full image.
	InterleaveImage
)

func (u InterleavingUnit) String() string {
	switch u {
	case InterleavePixel:
		return "pixel"
	case InterleaveScanline:
		return "scanline"
	case InterleaveTile:
		return "tile"
	case InterleaveImage:
		return "image"
	default:
		return fmt.Sprintf("InterleavingUnit(%d)", u)
	}
}

// Tiled stores the image as a row-major grid of tiles, each tile row-major.
// Tiles in the last column and row are cut short when the image size is not
// a multiple of the tile size.
type Tiled struct {
	w, h, bands int
	tw, th      int
	unit        InterleavingUnit

	fullX, fullY int // number of whole tiles per row and column
	hangW, hangH int // extent of the hanging tiles, 0 if none
}

// NewTiled returns a w x h layout split into tw x th tiles.
func NewTiled(w, h, bands, tw, th int, unit InterleavingUnit) (*Tiled, error) {
	if err := checkExtent(w, h, bands); err != nil {
		return nil, err
	}
	if tw < 1 || th < 1 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrInvalidLayout, tw, th)
	}
	if unit > InterleaveImage {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, unit)
	}
	l := &Tiled{w: w, h: h, bands: bands, tw: tw, th: th, unit: unit}
	l.fullX, l.fullY = w/tw, h/th
	l.hangW, l.hangH = w-l.fullX*tw, h-l.fullY*th
	return l, nil
}

// MustTiled is like [NewTiled] but panics on error.
func MustTiled(w, h, bands, tw, th int, unit InterleavingUnit) *Tiled {
	l, err := NewTiled(w, h, bands, tw, th, unit)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Tiled) Width() int  { return l.w }
func (l *Tiled) Height() int { return l.h }
func (l *Tiled) Bands() int  { return l.bands }

// TileWidth returns the width of a whole tile.
func (l *Tiled) TileWidth() int { return l.tw }

// TileHeight returns the height of a whole tile.
func (l *Tiled) TileHeight() int { return l.th }

// Unit returns the band interleaving unit.
func (l *Tiled) Unit() InterleavingUnit { return l.unit }

// tileWidth returns the width of tiles in tile column tx.
func (l *Tiled) tileWidth(tx int) int {
	if tx < l.fullX {
		return l.tw
	}
	return l.hangW
}

// tileHeight returns the height of tiles in tile row ty.
func (l *Tiled) tileHeight(ty int) int {
	if ty < l.fullY {
		return l.th
	}
	return l.hangH
}

// tileBase returns the number of pixels stored before tile (tx, ty).
func (l *Tiled) tileBase(tx, ty, lh int) int {
	return ty*l.th*l.w + tx*l.tw*lh
}

func (l *Tiled) Offset(x, y, band int) int {
	tx, lx := x/l.tw, x%l.tw
	ty, ly := y/l.th, y%l.th
	lw, lh := l.tileWidth(tx), l.tileHeight(ty)
	base := l.tileBase(tx, ty, lh)

	switch l.unit {
	case InterleavePixel:
		return l.bands*(base+ly*lw+lx) + band
	case InterleaveScanline:
		return l.bands*(base+ly*lw) + band*lw + lx
	case InterleaveTile:
		return l.bands*base + band*lw*lh + ly*lw + lx
	default:
		return band*l.w*l.h + base + ly*lw + lx
	}
}

func (l *Tiled) RequiredElements() int { return l.w * l.h * l.bands }

func (l *Tiled) GPUCompatible() bool {
	return l.unit == InterleavePixel && l.tw >= l.w && l.th >= l.h
}

func (l *Tiled) PixelInterleaved() bool {
	return l.unit == InterleavePixel || l.bands == 1
}

func (l *Tiled) Sorted() bool {
	return l.tw >= l.w && l.PixelInterleaved()
}

func (l *Tiled) Run(x, y int) (int, int) {
	tx := x / l.tw
	n := tx*l.tw + l.tileWidth(tx) - x
	if l.unit == InterleavePixel {
		return n, l.bands
	}
	return n, 1
}

func (l *Tiled) Locate(offset int) (x, y, band int, err error) {
	if offset < 0 || offset >= l.RequiredElements() {
		return 0, 0, 0, outOfRange(offset)
	}

	b := l.bands
	if l.unit == InterleaveImage {
		band, offset = offset/(l.w*l.h), offset%(l.w*l.h)
		b = 1
	}

	ty := offset / (b * l.th * l.w)
	rem := offset - ty*b*l.th*l.w
	lh := l.tileHeight(ty)
	tx := rem / (b * l.tw * lh)
	rem -= tx * b * l.tw * lh
	lw := l.tileWidth(tx)

	var lx, ly int
	switch l.unit {
	case InterleavePixel:
		band = rem % b
		rem /= b
		ly, lx = rem/lw, rem%lw
	case InterleaveScanline:
		ly, rem = rem/(lw*b), rem%(lw*b)
		band, lx = rem/lw, rem%lw
	case InterleaveTile:
		band, rem = rem/(lw*lh), rem%(lw*lh)
		ly, lx = rem/lw, rem%lw
	default:
		ly, lx = rem/lw, rem%lw
	}
	return tx*l.tw + lx, ty*l.th + ly, band, nil
}

func (*Tiled) layout() {}
