package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-texel/numeric"
)

// Parse builds a format from a comma-separated field list such as
// "unorm8:R,unorm8:G,unorm8:B,x8". Each field is a kind name followed by its
// width and, after a colon, its channel (R, G, B, A, E or cN). A field
// written as xN is N bits of padding.
func Parse(s string) (*Format, error) {
	fields, err := ParseFields(s)
	if err != nil {
		return nil, err
	}
	return New(fields...)
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string) *Format {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseFields splits a field list without validating it as a whole.
func ParseFields(s string) ([]Field, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty field list", ErrInvalidFormat)
	}
	parts := strings.Split(s, ",")
	fields := make([]Field, 0, len(parts))
	for _, part := range parts {
		fd, err := parseField(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
	}
	return fields, nil
}

func parseField(s string) (Field, error) {
	head, chName, hasChannel := strings.Cut(s, ":")

	digits := len(head)
	for digits > 0 && head[digits-1] >= '0' && head[digits-1] <= '9' {
		digits--
	}
	bits, err := strconv.Atoi(head[digits:])
	if err != nil {
		return Field{}, fmt.Errorf("%w: field %q has no width", ErrInvalidFormat, s)
	}
	kind, ok := numeric.ParseKind(head[:digits])
	if !ok {
		return Field{}, fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidFormat, s, head[:digits])
	}

	if kind == numeric.None {
		if hasChannel && chName != "X" && chName != "x" {
			return Field{}, fmt.Errorf("%w: padding field %q names a channel", ErrInvalidFormat, s)
		}
		return Field{Bits: bits, Channel: Skip}, nil
	}
	if !hasChannel {
		return Field{}, fmt.Errorf("%w: field %q has no channel", ErrInvalidFormat, s)
	}
	ch, ok := ParseChannel(chName)
	if !ok {
		return Field{}, fmt.Errorf("%w: field %q has unknown channel %q", ErrInvalidFormat, s, chName)
	}
	return Field{Bits: bits, Kind: kind, Channel: ch}, nil
}
