package hwformat

import (
	"errors"
	"fmt"
	"strings"

	texel "github.com/mrjoshuak/go-texel"
	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/numeric"
)

// ErrAmbiguousFormat is returned when more than one catalog entry matches a
// query. With a consistent catalog this cannot happen.
var ErrAmbiguousFormat = errors.New("hwformat: ambiguous format")

// Query describes how a pixel array stores its pixels.
type Query struct {
	Format *format.Format
	// Storage is the element kind of the backing buffers.
	Storage buffer.Kind
	// Packed is set when all fields share one storage element.
	Packed bool
	// SRGB is set when the color values are sRGB encoded. Only then are
	// SRGB entries considered, and they win over UNORM ones.
	SRGB bool
}

// Match returns the catalog entry for q, or [Undefined] if there is none.
func Match(q Query) (Entry, error) {
	return MatchIn(catalog, q)
}

// MatchIn is [Match] over an arbitrary set of entries.
func MatchIn(entries []Entry, q Query) (Entry, error) {
	if q.Format == nil {
		return Undefined, nil
	}
	// A single field is the same whether packed or not.
	if q.Format.FieldCount() == 1 {
		q.Packed = false
	}

	var found []Entry
	for _, e := range entries {
		if matches(e, q) {
			found = append(found, e)
		}
	}
	if q.SRGB {
		var srgb []Entry
		for _, e := range found {
			if e.Kind == SRGB {
				srgb = append(srgb, e)
			}
		}
		if len(srgb) > 0 {
			found = srgb
		}
	}

	log := texel.Logger()
	switch len(found) {
	case 0:
		log.Debug("hwformat: no match", "format", q.Format, "storage", q.Storage, "packed", q.Packed)
		return Undefined, nil
	case 1:
		log.Debug("hwformat: match", "format", q.Format, "entry", found[0].Name)
		return found[0], nil
	}
	names := make([]string, len(found))
	for i, e := range found {
		names[i] = e.Name
	}
	log.Warn("hwformat: ambiguous match", "format", q.Format, "entries", names)
	return Undefined, fmt.Errorf("%w: %v matches %s", ErrAmbiguousFormat, q.Format, strings.Join(names, ", "))
}

func matches(e Entry, q Query) bool {
	f := q.Format
	if e.Compressed || e.Packed != q.Packed || len(e.Order) != f.FieldCount() {
		return false
	}
	if e.Kind == SRGB && !q.SRGB {
		return false
	}

	if e.Packed {
		if !q.Storage.Integer() || q.Storage.Bits() != e.PrimitiveBits {
			return false
		}
	} else if q.Storage.Bits() != e.PrimitiveBits || !e.Kind.acceptsStorage(q.Storage, e.PrimitiveBits) {
		return false
	}

	want := e.Kind.numericKind()
	for i := range f.FieldCount() {
		fd := f.Field(i)
		sym, ok := symbolFor(fd.Channel)
		if !ok || sym != e.Order[i] || fd.Bits != e.Bits[i] {
			return false
		}
		switch fd.Channel.Role {
		case format.RoleSkip, format.RoleExponent:
			// Kind is implied by the role.
		default:
			if fd.Kind != want {
				return false
			}
		}
	}
	return true
}

// FieldStorage returns the natural buffer kind for one unpacked field: the
// narrowest element holding its bits, signed for signed kinds and floating
// point for 32 and 64-bit floats. 16-bit floats are stored as raw bits.
func FieldStorage(fd format.Field) buffer.Kind {
	w := storageBits(fd.Bits)
	switch fd.Kind {
	case numeric.Sfloat:
		switch w {
		case 32:
			return buffer.Float32
		case 64:
			return buffer.Float64
		}
		return buffer.UnsignedFor(w)
	case numeric.Sint, numeric.Snorm, numeric.Sscaled:
		return buffer.UnsignedFor(w) + buffer.Int8 - buffer.Uint8
	}
	return buffer.UnsignedFor(w)
}

// StorageFor returns the buffer kind that holds f. Packed formats use an
// unsigned element wide enough for every field. Unpacked formats return
// [buffer.Invalid] unless every field that is not skipped has the same
// natural storage and the skipped ones fit in it.
func StorageFor(f *format.Format, packed bool) buffer.Kind {
	if packed && f.FieldCount() > 1 || f.IsSharedExponent() {
		return buffer.UnsignedFor(storageBits(f.TotalBitWidth()))
	}
	k := buffer.Invalid
	for i := range f.FieldCount() {
		if f.IsFieldSkipped(i) {
			continue
		}
		switch fk := FieldStorage(f.Field(i)); {
		case k == buffer.Invalid:
			k = fk
		case fk != k:
			return buffer.Invalid
		}
	}
	if k == buffer.Invalid {
		return FieldStorage(f.Field(0))
	}
	for i := range f.FieldCount() {
		if f.IsFieldSkipped(i) && f.Field(i).Bits > k.Bits() {
			return buffer.Invalid
		}
	}
	return k
}

func storageBits(bits int) int {
	switch {
	case bits <= 8:
		return 8
	case bits <= 16:
		return 16
	case bits <= 32:
		return 32
	}
	return 64
}
