package format

import "strconv"

// Role is the logical purpose of a field.
type Role uint8

const (
	// RoleSkip marks padding that carries no channel.
	RoleSkip Role = iota
	// RoleColor marks a color channel; the channel index says which one.
	RoleColor
	// RoleAlpha marks the alpha channel.
	RoleAlpha
	// RoleExponent marks the common exponent of a shared-exponent format.
	RoleExponent
)

// Channel is the logical channel a field carries.
type Channel struct {
	Role  Role
	Index int // color index, only meaningful for RoleColor
}

// Predefined channels.
var (
	Red      = Color(0)
	Green    = Color(1)
	Blue     = Color(2)
	Alpha    = Channel{Role: RoleAlpha}
	Skip     = Channel{Role: RoleSkip}
	Exponent = Channel{Role: RoleExponent}
)

// Color returns the color channel with index i.
func Color(i int) Channel {
	return Channel{Role: RoleColor, Index: i}
}

// IsColor reports whether c is a color channel.
func (c Channel) IsColor() bool { return c.Role == RoleColor }

// String returns R, G, B for the first three color channels, cN for the
// rest, and A, X or E for the other roles.
func (c Channel) String() string {
	switch c.Role {
	case RoleColor:
		switch c.Index {
		case 0:
			return "R"
		case 1:
			return "G"
		case 2:
			return "B"
		}
		return "c" + strconv.Itoa(c.Index)
	case RoleAlpha:
		return "A"
	case RoleExponent:
		return "E"
	default:
		return "X"
	}
}

// ParseChannel is the inverse of [Channel.String].
func ParseChannel(s string) (Channel, bool) {
	switch s {
	case "R", "r":
		return Red, true
	case "G", "g":
		return Green, true
	case "B", "b":
		return Blue, true
	case "A", "a":
		return Alpha, true
	case "X", "x":
		return Skip, true
	case "E", "e":
		return Exponent, true
	}
	if len(s) > 1 && s[0] == 'c' {
		if i, err := strconv.Atoi(s[1:]); err == nil && i >= 0 {
			return Color(i), true
		}
	}
	return Channel{}, false
}
