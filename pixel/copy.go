package pixel

import (
	"fmt"
	"image"

	texel "github.com/mrjoshuak/go-texel"
	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/layout"
	"github.com/mrjoshuak/go-texel/numeric"
)

// CopyPath is the strategy [Copy] uses.
type CopyPath uint8

const (
	// CopyPixels decodes every source pixel and encodes it into dst.
	CopyPixels CopyPath = iota
	// CopyRuns copies whole runs of interleaved pixels at once.
	CopyRuns
	// CopyBands copies runs one band at a time.
	CopyBands
	// CopyElements copies raw elements one at a time.
	CopyElements
)

func (p CopyPath) String() string {
	switch p {
	case CopyPixels:
		return "pixels"
	case CopyRuns:
		return "runs"
	case CopyBands:
		return "bands"
	case CopyElements:
		return "elements"
	default:
		return fmt.Sprintf("CopyPath(%d)", p)
	}
}

// copyPlan is a resolved copy. For the raw paths the rectangles are in root
// coordinates and map onto each other by translation.
type copyPlan struct {
	path             CopyPath
	dstRoot, srcRoot root
	dstRect, srcRect image.Rectangle
	fixes            []rawFix // per band, nil when raw elements are stored as is
}

// rawFix describes what Set does to the raw element of one band: bands of
// skipped fields are never written, and bits outside the field are cleared
// or hold the sign.
type rawFix struct {
	skip bool
	keep uint64 // zero keeps every bit
	sign int    // sign-extend from this width when positive
}

func (f rawFix) apply(v uint64) uint64 {
	if f.keep != 0 {
		v &= f.keep
	}
	if f.sign > 0 {
		v = uint64(numeric.SignExtend(v, f.sign))
	}
	return v
}

// PlanCopy reports the path [Copy] would take for the same arguments.
func PlanCopy(dst Array, dstRect image.Rectangle, src Array, srcRect image.Rectangle) (CopyPath, error) {
	p, err := planCopy(dst, dstRect, src, srcRect)
	return p.path, err
}

// Copy copies srcRect of src to dstRect of dst. The rectangles must have
// the same size and lie inside their arrays.
//
// The result equals decoding each source pixel with Get and encoding it with
// Set. When both arrays store pixels identically, which includes equal
// formats, buffer kinds and orientation, raw elements are copied instead.
// Padding bits are cleared and skipped bands left alone as Set would, but
// values with more than one encoding keep the source's: the most negative
// snorm value, NaN and infinity payloads, and shared-exponent words that
// are not normalized. Copying between overlapping areas of the same root is
// undefined.
func Copy(dst Array, dstRect image.Rectangle, src Array, srcRect image.Rectangle) error {
	p, err := planCopy(dst, dstRect, src, srcRect)
	if err != nil {
		return err
	}
	texel.Logger().Debug("pixel: copy", "path", p.path, "size", srcRect.Size())
	if srcRect.Empty() {
		return nil
	}

	switch p.path {
	case CopyRuns:
		return copyRuns(p)
	case CopyBands:
		return copyBands(p)
	case CopyElements:
		copyElements(p)
		return nil
	}
	return copyPixels(dst, dstRect, src, srcRect)
}

func planCopy(dst Array, dstRect image.Rectangle, src Array, srcRect image.Rectangle) (copyPlan, error) {
	if dst.ReadOnly() {
		return copyPlan{}, ErrReadOnly
	}
	if dstRect.Size() != srcRect.Size() {
		return copyPlan{}, fmt.Errorf("%w: copy %v to %v", ErrIncompatibleDimensions, srcRect, dstRect)
	}
	if srcRect.Empty() {
		return copyPlan{path: CopyPixels}, nil
	}
	if !srcRect.In(bounds(src)) || !dstRect.In(bounds(dst)) {
		return copyPlan{}, fmt.Errorf("%w: copy %v of %v to %v of %v",
			ErrOutOfBounds, srcRect, bounds(src), dstRect, bounds(dst))
	}

	p := copyPlan{path: CopyPixels}
	dr, dsteps := dst.unwrap()
	sr, ssteps := src.unwrap()
	if !rootsCompatible(dr, sr) {
		return p, nil
	}
	dchain, ok1 := orientations(dsteps)
	schain, ok2 := orientations(ssteps)
	if !ok1 || !ok2 || len(dchain) != len(schain) {
		return p, nil
	}
	for i := range dchain {
		if dchain[i] != schain[i] {
			return p, nil
		}
	}

	p.dstRoot, p.srcRoot = dr, sr
	p.dstRect = rootRect(dst, dstRect)
	p.srcRect = rootRect(src, srcRect)

	var masked bool
	p.fixes, masked = rawFixes(sr)

	dl, sl := dr.Layout(), sr.Layout()
	switch {
	case p.fixes == nil && len(dr.base().buffers) == 1 && len(sr.base().buffers) == 1 &&
		dl.PixelInterleaved() && sl.PixelInterleaved() && layout.Forward(dl) && layout.Forward(sl):
		p.path = CopyRuns
	case !masked && layout.Forward(dl) && layout.Forward(sl):
		p.path = CopyBands
	default:
		p.path = CopyElements
	}
	return p, nil
}

// rootsCompatible reports whether raw elements of b can be stored in a
// unchanged.
func rootsCompatible(a, b root) bool {
	ab, bb := a.base(), b.base()
	if a.encoding() != b.encoding() || !ab.format.Equivalent(bb.format) ||
		len(ab.buffers) != len(bb.buffers) || ab.layout.Bands() != bb.layout.Bands() {
		return false
	}
	for i := range ab.buffers {
		if ab.buffers[i].Kind() != bb.buffers[i].Kind() {
			return false
		}
	}
	return !layout.HasHoles(ab.layout) && !layout.HasHoles(bb.layout)
}

// rawFixes returns the per-band fixes raw elements of r need to match Set,
// or nil if none do. masked reports whether any element bits change, as
// opposed to whole bands being skipped.
func rawFixes(r root) (fixes []rawFix, masked bool) {
	b := r.base()
	f := b.format
	if r.encoding() != EncodingUnpacked {
		var keep uint64
		for i := range f.FieldCount() {
			if !f.IsFieldSkipped(i) {
				keep |= numeric.Mask(f.Field(i).Bits) << f.BitOffset(i)
			}
		}
		if keep == numeric.Mask(f.TotalBitWidth()) {
			return nil, false
		}
		return []rawFix{{keep: keep}}, true
	}

	u := r.(*Unpacked)
	fixes = make([]rawFix, f.FieldCount())
	needed := false
	for i := range fixes {
		buf := b.buffers[0]
		if !u.shared {
			buf = b.buffers[i]
		}
		fd := f.Field(i)
		switch {
		case f.IsFieldSkipped(i):
			fixes[i].skip = true
			needed = true
		case fd.Bits < buf.Kind().Bits():
			fixes[i].keep = numeric.Mask(fd.Bits)
			if u.signed[i] {
				fixes[i].sign = fd.Bits
			}
			needed, masked = true, true
		}
	}
	if !needed {
		return nil, false
	}
	return fixes, masked
}

// orientations drops window and read-only steps from a chain. It reports
// false if a step changes values.
func orientations(steps []Step) ([]Orientation, bool) {
	var out []Orientation
	for _, s := range steps {
		switch s.Kind {
		case StepReorient:
			out = append(out, s.Orientation)
		case StepPremultiply, StepVirtual:
			return nil, false
		}
	}
	return out, true
}

// rootRect maps r, a rectangle of a, to the root's coordinates.
func rootRect(a Array, r image.Rectangle) image.Rectangle {
	v, ok := a.(*View)
	if !ok {
		return r
	}
	x0, y0, _ := v.resolve(r.Min.X, r.Min.Y)
	x1, y1, _ := v.resolve(r.Max.X-1, r.Max.Y-1)
	return image.Rect(min(x0, x1), min(y0, y1), max(x0, x1)+1, max(y0, y1)+1)
}

// band returns the buffer and element offset of band b at (x, y).
func band(r root, x, y, b int) (buffer.Buffer, int) {
	base := r.base()
	if len(base.buffers) == 1 {
		return base.buffers[0], base.layout.Offset(x, y, b)
	}
	return base.buffers[b], base.layout.Offset(x, y, 0)
}

func bandCount(r root) int {
	base := r.base()
	if len(base.buffers) == 1 {
		return base.layout.Bands()
	}
	return len(base.buffers)
}

// eachRun calls fn for maximal runs that are contiguous in both layouts.
func eachRun(p copyPlan, fn func(dx, dy, sx, sy, n, dstStride, srcStride int) error) error {
	dl, sl := p.dstRoot.Layout(), p.srcRoot.Layout()
	w := p.srcRect.Dx()
	for row := range p.srcRect.Dy() {
		sy, dy := p.srcRect.Min.Y+row, p.dstRect.Min.Y+row
		for i := 0; i < w; {
			sx, dx := p.srcRect.Min.X+i, p.dstRect.Min.X+i
			ns, ss := sl.Run(sx, sy)
			nd, ds := dl.Run(dx, dy)
			n := min(ns, nd, w-i)
			if err := fn(dx, dy, sx, sy, n, ds, ss); err != nil {
				return err
			}
			i += n
		}
	}
	return nil
}

func copyRuns(p copyPlan) error {
	bands := p.srcRoot.Layout().Bands()
	return eachRun(p, func(dx, dy, sx, sy, n, ds, ss int) error {
		dbuf, doff := band(p.dstRoot, dx, dy, 0)
		sbuf, soff := band(p.srcRoot, sx, sy, 0)
		if ds == bands && ss == bands {
			return buffer.Copy(dbuf, doff, sbuf, soff, n*bands)
		}
		for b := range bands {
			if err := buffer.CopyStrided(dbuf, doff+b, ds, sbuf, soff+b, ss, n); err != nil {
				return err
			}
		}
		return nil
	})
}

func copyBands(p copyPlan) error {
	bands := bandCount(p.srcRoot)
	return eachRun(p, func(dx, dy, sx, sy, n, ds, ss int) error {
		for b := range bands {
			if p.fixes != nil && p.fixes[b].skip {
				continue
			}
			dbuf, doff := band(p.dstRoot, dx, dy, b)
			sbuf, soff := band(p.srcRoot, sx, sy, b)
			if err := buffer.CopyStrided(dbuf, doff, ds, sbuf, soff, ss, n); err != nil {
				return err
			}
		}
		return nil
	})
}

func copyElements(p copyPlan) {
	bands := bandCount(p.srcRoot)
	for row := range p.srcRect.Dy() {
		for col := range p.srcRect.Dx() {
			sx, sy := p.srcRect.Min.X+col, p.srcRect.Min.Y+row
			dx, dy := p.dstRect.Min.X+col, p.dstRect.Min.Y+row
			for b := range bands {
				if p.fixes != nil && p.fixes[b].skip {
					continue
				}
				dbuf, doff := band(p.dstRoot, dx, dy, b)
				sbuf, soff := band(p.srcRoot, sx, sy, b)
				v := sbuf.Bits(soff)
				if p.fixes != nil {
					v = p.fixes[b].apply(v)
				}
				dbuf.SetBits(doff, v)
			}
		}
	}
}

func copyPixels(dst Array, dstRect image.Rectangle, src Array, srcRect image.Rectangle) error {
	n := max(src.Format().ColorChannelCount(), dst.Format().ColorChannelCount())
	color := make([]float64, n)
	for row := range srcRect.Dy() {
		for col := range srcRect.Dx() {
			clear(color)
			alpha, err := src.Get(srcRect.Min.X+col, srcRect.Min.Y+row, color)
			if err != nil {
				return err
			}
			if err := dst.Set(dstRect.Min.X+col, dstRect.Min.Y+row, color, alpha); err != nil {
				return err
			}
		}
	}
	return nil
}
