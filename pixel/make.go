package pixel

import (
	"fmt"

	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/hwformat"
	"github.com/mrjoshuak/go-texel/layout"
)

// Make allocates a zeroed w x h root array for f.
//
// Shared-exponent formats always get a [SharedExponent] array, and
// [WithPacked] selects a [Packed] one. Otherwise the array is [Unpacked]:
// one buffer with a band per field when all fields have the same natural
// storage (see [hwformat.FieldStorage]) or [WithStorage] names one, else a
// buffer per field.
func Make(f *format.Format, w, h int, opts ...Option) (Array, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil format", ErrIncompatibleFormat)
	}
	o := applyOptions(opts)
	word := f.IsSharedExponent() || o.packed && f.FieldCount() > 1

	bands := 1
	if !word {
		if hwformat.StorageFor(f, false) != buffer.Invalid || o.storage != buffer.Invalid {
			bands = f.FieldCount()
		}
	}
	l := o.layout
	if l == nil {
		var err error
		if l, err = layout.NewScanline(w, h, bands); err != nil {
			return nil, err
		}
	}
	if l.Width() != w || l.Height() != h {
		return nil, fmt.Errorf("%w: %dx%d layout for a %dx%d array",
			ErrIncompatibleDimensions, l.Width(), l.Height(), w, h)
	}

	if word {
		kind := o.storage
		if kind == buffer.Invalid {
			kind = hwformat.StorageFor(f, true)
		}
		if kind.Bits() != f.TotalBitWidth() {
			return nil, fmt.Errorf("%w: no %d-bit integer storage for %v", ErrUnsupported, f.TotalBitWidth(), f)
		}
		buf, err := buffer.New(kind, l.RequiredElements())
		if err != nil {
			return nil, err
		}
		if f.IsSharedExponent() {
			return NewSharedExponent(f, l, buf, opts...)
		}
		return NewPacked(f, l, buf, opts...)
	}

	var buffers []buffer.Buffer
	if l.Bands() == 1 && f.FieldCount() > 1 {
		for i := range f.FieldCount() {
			kind := o.storage
			if kind == buffer.Invalid {
				kind = hwformat.FieldStorage(f.Field(i))
			}
			buf, err := buffer.New(kind, l.RequiredElements())
			if err != nil {
				return nil, err
			}
			buffers = append(buffers, buf)
		}
	} else {
		kind := o.storage
		if kind == buffer.Invalid {
			kind = hwformat.StorageFor(f, false)
		}
		if kind == buffer.Invalid {
			return nil, fmt.Errorf("%w: fields of %v have no common storage for a %d-band layout",
				ErrIncompatibleFormat, f, l.Bands())
		}
		buf, err := buffer.New(kind, l.RequiredElements())
		if err != nil {
			return nil, err
		}
		buffers = []buffer.Buffer{buf}
	}
	return NewUnpacked(f, l, buffers, opts...)
}
