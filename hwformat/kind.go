package hwformat

import (
	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/numeric"
)

// Kind is the numeric interpretation of a catalog entry.
type Kind uint8

const (
	UNORM Kind = iota
	SNORM
	USCALED
	SSCALED
	UINT
	SINT
	UFLOAT
	SFLOAT
	SRGB
)

var kindNames = [...]string{
	UNORM:   "UNORM",
	SNORM:   "SNORM",
	USCALED: "USCALED",
	SSCALED: "SSCALED",
	UINT:    "UINT",
	SINT:    "SINT",
	UFLOAT:  "UFLOAT",
	SFLOAT:  "SFLOAT",
	SRGB:    "SRGB",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "INVALID"
}

// Signed reports whether the kind has a sign.
func (k Kind) Signed() bool {
	return k == SNORM || k == SSCALED || k == SINT || k == SFLOAT
}

// numericKind returns the field kind that stores k.
func (k Kind) numericKind() numeric.Kind {
	switch k {
	case UNORM, SRGB:
		return numeric.Unorm
	case SNORM:
		return numeric.Snorm
	case USCALED:
		return numeric.Uscaled
	case SSCALED:
		return numeric.Sscaled
	case UINT:
		return numeric.Uint
	case SINT:
		return numeric.Sint
	case UFLOAT:
		return numeric.Ufloat
	default:
		return numeric.Sfloat
	}
}

// acceptsStorage reports whether buffers of kind s can hold entries of kind
// k. Integer storage holds every integer kind of matching signedness, and
// unsigned storage also holds the raw bits of 16-bit floats.
func (k Kind) acceptsStorage(s buffer.Kind, bits int) bool {
	switch {
	case s.Float():
		return k == SFLOAT
	case s.Signed():
		return k == SNORM || k == SSCALED || k == SINT
	case s.Integer():
		if k == SFLOAT {
			return bits == 16
		}
		return !k.Signed()
	}
	return false
}

// Symbol names the channel a catalog entry stores in one position.
type Symbol uint8

const (
	R Symbol = iota
	G
	B
	A
	X
	E
)

func (s Symbol) String() string {
	return [...]string{"R", "G", "B", "A", "X", "E"}[s]
}

// symbolFor translates a format channel to a catalog symbol. Color channels
// past the third have no symbol.
func symbolFor(ch format.Channel) (Symbol, bool) {
	switch ch.Role {
	case format.RoleColor:
		if ch.Index < 3 {
			return Symbol(ch.Index), true
		}
		return 0, false
	case format.RoleAlpha:
		return A, true
	case format.RoleExponent:
		return E, true
	default:
		return X, true
	}
}

func (s Symbol) channel() format.Channel {
	switch s {
	case R, G, B:
		return format.Color(int(s))
	case A:
		return format.Alpha
	case E:
		return format.Exponent
	default:
		return format.Skip
	}
}
