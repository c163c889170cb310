package layout

// Scanline stores pixels row by row with all bands of a pixel adjacent.
type Scanline struct {
	w, h, bands int
}

// NewScanline returns a w x h scanline layout with the given band count.
func NewScanline(w, h, bands int) (*Scanline, error) {
	if err := checkExtent(w, h, bands); err != nil {
		return nil, err
	}
	return &Scanline{w: w, h: h, bands: bands}, nil
}

// MustScanline is like [NewScanline] but panics on error.
func MustScanline(w, h, bands int) *Scanline {
	l, err := NewScanline(w, h, bands)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Scanline) Width() int  { return l.w }
func (l *Scanline) Height() int { return l.h }
func (l *Scanline) Bands() int  { return l.bands }

func (l *Scanline) Offset(x, y, band int) int {
	return l.bands*(y*l.w+x) + band
}

func (l *Scanline) RequiredElements() int  { return l.w * l.h * l.bands }
func (l *Scanline) GPUCompatible() bool    { return true }
func (l *Scanline) PixelInterleaved() bool { return true }
func (l *Scanline) Sorted() bool           { return true }

func (l *Scanline) Run(x, y int) (int, int) {
	return l.w - x, l.bands
}

func (l *Scanline) Locate(offset int) (x, y, band int, err error) {
	if offset < 0 || offset >= l.RequiredElements() {
		return 0, 0, 0, outOfRange(offset)
	}
	p := offset / l.bands
	return p % l.w, p / l.w, offset % l.bands, nil
}

func (*Scanline) layout() {}
