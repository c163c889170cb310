// Package format describes how logical color and alpha channels map onto the
// data fields of a pixel.
//
// A [Format] is an ordered list of fields. Each field has a bit width, a
// numeric kind and the channel it carries. For packed encodings the first
// field occupies the most significant bits; for unpacked encodings the field
// order is the band order in memory.
//
// Formats are immutable once constructed and may be shared freely.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-texel/numeric"
)

// ErrInvalidFormat is returned when a field list does not describe a valid
// format.
var ErrInvalidFormat = errors.New("format: invalid format")

// Field is one numeric value slot of a pixel.
type Field struct {
	Bits    int
	Kind    numeric.Kind
	Channel Channel
}

// String returns the field in the syntax accepted by [Parse].
func (f Field) String() string {
	if f.Channel.Role == RoleSkip {
		return "x" + strconv.Itoa(f.Bits)
	}
	return f.Kind.String() + strconv.Itoa(f.Bits) + ":" + f.Channel.String()
}

// Format is a validated, immutable field list.
type Format struct {
	fields   []Field
	colors   []int // color index -> field index
	alpha    int
	exponent int
	total    int
	offsets  []int
}

// New validates fields and returns the resulting format. Errors wrap
// [ErrInvalidFormat].
func New(fields ...Field) (*Format, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidFormat)
	}

	f := &Format{
		fields:   append([]Field(nil), fields...),
		alpha:    -1,
		exponent: -1,
	}

	colorAt := map[int]int{}
	maxColor := -1
	carried := 0
	for i, fd := range f.fields {
		if fd.Bits < 1 || fd.Bits > 64 {
			return nil, fmt.Errorf("%w: field %d has width %d", ErrInvalidFormat, i, fd.Bits)
		}
		f.total += fd.Bits

		switch fd.Channel.Role {
		case RoleSkip:
			if fd.Kind != numeric.None {
				return nil, fmt.Errorf("%w: skipped field %d has kind %v", ErrInvalidFormat, i, fd.Kind)
			}
			continue
		case RoleAlpha:
			if f.alpha >= 0 {
				return nil, fmt.Errorf("%w: fields %d and %d are both alpha", ErrInvalidFormat, f.alpha, i)
			}
			f.alpha = i
		case RoleExponent:
			if f.exponent >= 0 {
				return nil, fmt.Errorf("%w: fields %d and %d are both exponents", ErrInvalidFormat, f.exponent, i)
			}
			if fd.Kind != numeric.Exponent {
				return nil, fmt.Errorf("%w: exponent field %d has kind %v", ErrInvalidFormat, i, fd.Kind)
			}
			f.exponent = i
		case RoleColor:
			if fd.Channel.Index < 0 {
				return nil, fmt.Errorf("%w: field %d has color index %d", ErrInvalidFormat, i, fd.Channel.Index)
			}
			if prev, dup := colorAt[fd.Channel.Index]; dup {
				return nil, fmt.Errorf("%w: fields %d and %d both carry %v", ErrInvalidFormat, prev, i, fd.Channel)
			}
			colorAt[fd.Channel.Index] = i
			maxColor = max(maxColor, fd.Channel.Index)
		default:
			return nil, fmt.Errorf("%w: field %d has unknown role %d", ErrInvalidFormat, i, fd.Channel.Role)
		}
		if fd.Kind == numeric.None || (fd.Kind == numeric.Exponent) != (fd.Channel.Role == RoleExponent) {
			return nil, fmt.Errorf("%w: field %d carries %v with kind %v", ErrInvalidFormat, i, fd.Channel, fd.Kind)
		}
		carried++
	}
	if carried == 0 {
		return nil, fmt.Errorf("%w: every field is skipped", ErrInvalidFormat)
	}

	f.colors = make([]int, maxColor+1)
	for c := range f.colors {
		fi, ok := colorAt[c]
		if !ok {
			return nil, fmt.Errorf("%w: color channel %d is missing", ErrInvalidFormat, c)
		}
		f.colors[c] = fi
	}

	if f.exponent >= 0 {
		if err := f.validateSharedExponent(); err != nil {
			return nil, err
		}
	} else {
		for i, fd := range f.fields {
			if fd.Channel.Role != RoleSkip && !numeric.Supports(fd.Kind, fd.Bits) {
				return nil, fmt.Errorf("%w: field %d: %v cannot be stored in %d bits", ErrInvalidFormat, i, fd.Kind, fd.Bits)
			}
		}
	}

	f.offsets = make([]int, len(f.fields))
	shift := 0
	for i := len(f.fields) - 1; i >= 0; i-- {
		f.offsets[i] = shift
		shift += f.fields[i].Bits
	}
	return f, nil
}

func (f *Format) validateSharedExponent() error {
	if f.alpha >= 0 {
		return fmt.Errorf("%w: shared-exponent format has an alpha field", ErrInvalidFormat)
	}
	if len(f.colors) < 2 {
		return fmt.Errorf("%w: shared-exponent format needs at least 2 color channels, has %d", ErrInvalidFormat, len(f.colors))
	}
	if f.total > 64 {
		return fmt.Errorf("%w: shared-exponent format is %d bits wide", ErrInvalidFormat, f.total)
	}
	mantissa := f.fields[f.colors[0]].Bits
	for c, fi := range f.colors {
		fd := f.fields[fi]
		if fd.Kind != numeric.Ufloat {
			return fmt.Errorf("%w: shared-exponent color channel %d has kind %v", ErrInvalidFormat, c, fd.Kind)
		}
		if fd.Bits != mantissa {
			return fmt.Errorf("%w: shared-exponent mantissas differ in width (%d and %d)", ErrInvalidFormat, mantissa, fd.Bits)
		}
	}
	return f.SharedExponent().Validate()
}

// MustNew is like [New] but panics on error.
func MustNew(fields ...Field) *Format {
	f, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return f
}

// FieldCount returns the number of fields, skipped ones included.
func (f *Format) FieldCount() int { return len(f.fields) }

// Field returns field i.
func (f *Format) Field(i int) Field { return f.fields[i] }

// Fields returns a copy of the field list.
func (f *Format) Fields() []Field { return append([]Field(nil), f.fields...) }

// ColorChannelCount returns the number of color channels.
func (f *Format) ColorChannelCount() int { return len(f.colors) }

// HasAlpha reports whether the format declares an alpha field.
func (f *Format) HasAlpha() bool { return f.alpha >= 0 }

// TotalBitWidth returns the sum of all field widths.
func (f *Format) TotalBitWidth() int { return f.total }

// FieldForColorChannel returns the index of the field carrying color channel i.
func (f *Format) FieldForColorChannel(i int) int { return f.colors[i] }

// FieldForAlpha returns the index of the alpha field, or -1.
func (f *Format) FieldForAlpha() int { return f.alpha }

// ExponentField returns the index of the shared exponent field, or -1.
func (f *Format) ExponentField() int { return f.exponent }

// IsSharedExponent reports whether the color channels share one exponent.
func (f *Format) IsSharedExponent() bool { return f.exponent >= 0 }

// IsFieldSkipped reports whether field i is padding.
func (f *Format) IsFieldSkipped(i int) bool { return f.fields[i].Channel.Role == RoleSkip }

// SharedExponent returns the shared-exponent codec configuration. It is only
// meaningful when [Format.IsSharedExponent] is true.
func (f *Format) SharedExponent() numeric.SharedExponent {
	if f.exponent < 0 || len(f.colors) == 0 {
		return numeric.SharedExponent{}
	}
	return numeric.SharedExponent{
		MantissaBits: f.fields[f.colors[0]].Bits,
		ExponentBits: f.fields[f.exponent].Bits,
	}
}

// BitOffsets returns, for each field, its shift from the least significant
// bit when the fields are packed into one integer with field 0 on top.
func (f *Format) BitOffsets() []int { return append([]int(nil), f.offsets...) }

// BitOffset returns the packed shift of field i.
func (f *Format) BitOffset(i int) int { return f.offsets[i] }

// Equivalent reports whether both formats have the same fields in the same
// order: widths, kinds and channels.
func (f *Format) Equivalent(other *Format) bool {
	if f == other {
		return true
	}
	if other == nil || len(f.fields) != len(other.fields) {
		return false
	}
	for i := range f.fields {
		if f.fields[i] != other.fields[i] {
			return false
		}
	}
	return true
}

// WithChannel returns a format with field i reassigned to channel ch. Moving
// a field to or from [Skip] also changes its kind: skipped fields become
// [numeric.None], revived ones become unsigned normalized.
func (f *Format) WithChannel(i int, ch Channel) (*Format, error) {
	if i < 0 || i >= len(f.fields) {
		return nil, fmt.Errorf("%w: no field %d", ErrInvalidFormat, i)
	}
	fields := f.Fields()
	fd := &fields[i]
	switch {
	case ch.Role == RoleSkip:
		fd.Kind = numeric.None
	case fd.Kind == numeric.None:
		fd.Kind = numeric.Unorm
	}
	fd.Channel = ch
	return New(fields...)
}

// String returns the field list in the syntax accepted by [Parse].
func (f *Format) String() string {
	parts := make([]string, len(f.fields))
	for i, fd := range f.fields {
		parts[i] = fd.String()
	}
	return strings.Join(parts, ",")
}
