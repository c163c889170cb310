// Package hwformat is a fixed catalog of hardware texture formats and a
// matcher that finds the entry storing a given pixel encoding.
//
// Entry names follow the Vulkan spelling, for example R8G8B8A8_UNORM or
// A2B10G10R10_UNORM_PACK32. Entries that WebGPU also defines carry the
// matching [gputypes.TextureFormat]. Block-compressed entries are listed so
// they can be looked up, but they describe no field layout and never match
// an uncompressed pixel format.
package hwformat

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/numeric"
)

// ErrCompressed is returned when a field layout is requested for a
// block-compressed entry.
var ErrCompressed = errors.New("hwformat: compressed format has no field layout")

// Entry describes one hardware texture format.
type Entry struct {
	Name string
	// PrimitiveBits is the width of one storage element: the channel width
	// for unpacked entries, the whole pixel for packed ones and the block
	// size for compressed ones.
	PrimitiveBits int
	Kind          Kind
	// Bits holds the per-channel widths in Order, nil when compressed.
	Bits       []int
	Order      []Symbol
	Packed     bool
	Compressed bool
	WebGPU     gputypes.TextureFormat
}

// Undefined is returned when no catalog entry matches.
var Undefined = Entry{Name: "UNDEFINED", WebGPU: gputypes.TextureFormatUndefined}

// IsUndefined reports whether e is the [Undefined] sentinel.
func (e Entry) IsUndefined() bool { return e.Name == Undefined.Name }

func (e Entry) String() string { return e.Name }

// Storage returns the buffer kind that holds one primitive of e.
func (e Entry) Storage() buffer.Kind {
	switch {
	case e.Compressed || e.IsUndefined():
		return buffer.Invalid
	case e.Packed:
		return buffer.UnsignedFor(e.PrimitiveBits)
	case e.Kind == SFLOAT && e.PrimitiveBits == 32:
		return buffer.Float32
	case e.Kind == SFLOAT && e.PrimitiveBits == 64:
		return buffer.Float64
	case e.Kind == SNORM || e.Kind == SSCALED || e.Kind == SINT:
		return buffer.UnsignedFor(e.PrimitiveBits) + buffer.Int8 - buffer.Uint8
	default:
		return buffer.UnsignedFor(e.PrimitiveBits)
	}
}

// Format returns the pixel format that e stores. Packed entries list their
// fields from the most significant bit, matching the entry name.
func (e Entry) Format() (*format.Format, error) {
	if e.Compressed || e.IsUndefined() {
		return nil, fmt.Errorf("%w: %s", ErrCompressed, e.Name)
	}
	fields := make([]format.Field, len(e.Order))
	for i, s := range e.Order {
		fd := format.Field{Bits: e.Bits[i], Kind: e.Kind.numericKind(), Channel: s.channel()}
		switch s {
		case X:
			fd.Kind = numeric.None
		case E:
			fd.Kind = numeric.Exponent
		}
		fields[i] = fd
	}
	return format.New(fields...)
}

var catalog = build()

// Catalog returns every entry in catalog order.
func Catalog() []Entry { return slices.Clone(catalog) }

// Lookup returns the entry with the given name.
func Lookup(name string) (Entry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Undefined, false
}

// ForWebGPU returns the entry that WebGPU calls tf.
func ForWebGPU(tf gputypes.TextureFormat) (Entry, bool) {
	if tf == gputypes.TextureFormatUndefined {
		return Undefined, false
	}
	for _, e := range catalog {
		if e.WebGPU == tf {
			return e, true
		}
	}
	return Undefined, false
}

// Validate checks entries for internal consistency: unique names, channel
// widths that agree with the primitive width, and a supported numeric kind
// for every channel.
func Validate(entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	webgpu := make(map[gputypes.TextureFormat]string)
	for _, e := range entries {
		if seen[e.Name] {
			return fmt.Errorf("hwformat: duplicate entry %s", e.Name)
		}
		seen[e.Name] = true
		if e.WebGPU != gputypes.TextureFormatUndefined {
			if prev, dup := webgpu[e.WebGPU]; dup {
				return fmt.Errorf("hwformat: %s and %s both map to %v", prev, e.Name, e.WebGPU)
			}
			webgpu[e.WebGPU] = e.Name
		}

		if e.Compressed {
			if e.Bits != nil || (e.PrimitiveBits != 64 && e.PrimitiveBits != 128) {
				return fmt.Errorf("hwformat: %s: compressed entry with %d-bit blocks", e.Name, e.PrimitiveBits)
			}
			continue
		}
		if len(e.Bits) == 0 || len(e.Bits) != len(e.Order) {
			return fmt.Errorf("hwformat: %s: %d widths for %d channels", e.Name, len(e.Bits), len(e.Order))
		}
		total := 0
		for _, b := range e.Bits {
			total += b
			if !e.Packed && b != e.PrimitiveBits {
				return fmt.Errorf("hwformat: %s: %d-bit channel in %d-bit primitive", e.Name, b, e.PrimitiveBits)
			}
		}
		if e.Packed && total != e.PrimitiveBits {
			return fmt.Errorf("hwformat: %s: channels total %d bits, primitive is %d", e.Name, total, e.PrimitiveBits)
		}
		if _, err := e.Format(); err != nil {
			return fmt.Errorf("hwformat: %s: %w", e.Name, err)
		}
	}
	return nil
}

// build assembles the catalog. It runs once at package initialization.
func build() []Entry {
	var entries []Entry
	add := func(e Entry) {
		e.WebGPU = webgpuFormats[e.Name]
		entries = append(entries, e)
	}

	unpacked := func(bits int, order string, kinds ...Kind) {
		for _, k := range kinds {
			e := Entry{PrimitiveBits: bits, Kind: k}
			var name strings.Builder
			for _, c := range order {
				s := parseSymbol(c)
				e.Order = append(e.Order, s)
				e.Bits = append(e.Bits, bits)
				name.WriteString(s.String() + strconv.Itoa(bits))
			}
			e.Name = name.String() + "_" + k.String()
			add(e)
		}
	}

	// packed takes the channel list MSB first, e.g. "A2B10G10R10".
	packed := func(layout string, kinds ...Kind) {
		var order []Symbol
		var bits []int
		total := 0
		for i := 0; i < len(layout); {
			s := parseSymbol(rune(layout[i]))
			j := i + 1
			for j < len(layout) && layout[j] >= '0' && layout[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(layout[i+1 : j])
			order = append(order, s)
			bits = append(bits, n)
			total += n
			i = j
		}
		for _, k := range kinds {
			add(Entry{
				Name:          fmt.Sprintf("%s_%s_PACK%d", layout, k, total),
				PrimitiveBits: total,
				Kind:          k,
				Bits:          slices.Clone(bits),
				Order:         slices.Clone(order),
				Packed:        true,
			})
		}
	}

	compressed := func(name string, blockBits int, order string, k Kind) {
		e := Entry{Name: name, PrimitiveBits: blockBits, Kind: k, Compressed: true}
		for _, c := range order {
			e.Order = append(e.Order, parseSymbol(c))
		}
		add(e)
	}

	eight := []Kind{UNORM, SNORM, USCALED, SSCALED, UINT, SINT, SRGB}
	sixteen := []Kind{UNORM, SNORM, USCALED, SSCALED, UINT, SINT, SFLOAT}
	wide := []Kind{UINT, SINT, SFLOAT}

	for _, order := range []string{"R", "RG", "RGB", "BGR", "RGBA", "BGRA"} {
		unpacked(8, order, eight...)
	}
	for _, order := range []string{"R", "RG", "RGB", "RGBA"} {
		unpacked(16, order, sixteen...)
	}
	for _, bits := range []int{32, 64} {
		for _, order := range []string{"R", "RG", "RGB", "RGBA"} {
			unpacked(bits, order, wide...)
		}
	}

	packed("R4G4", UNORM)
	packed("R4G4B4A4", UNORM)
	packed("B4G4R4A4", UNORM)
	packed("R5G6B5", UNORM)
	packed("B5G6R5", UNORM)
	packed("R5G5B5A1", UNORM)
	packed("B5G5R5A1", UNORM)
	packed("A1R5G5B5", UNORM)
	packed("A8B8G8R8", UNORM, SNORM, USCALED, SSCALED, UINT, SINT, SRGB)
	packed("A2R10G10B10", UNORM, SNORM, USCALED, SSCALED, UINT, SINT)
	packed("A2B10G10R10", UNORM, SNORM, USCALED, SSCALED, UINT, SINT)
	packed("B10G11R11", UFLOAT)
	packed("E5B9G9R9", UFLOAT)

	for _, k := range []Kind{UNORM, SRGB} {
		compressed("BC1_RGB_"+k.String()+"_BLOCK", 64, "RGB", k)
		compressed("BC1_RGBA_"+k.String()+"_BLOCK", 64, "RGBA", k)
		compressed("BC2_"+k.String()+"_BLOCK", 128, "RGBA", k)
		compressed("BC3_"+k.String()+"_BLOCK", 128, "RGBA", k)
	}
	compressed("BC4_UNORM_BLOCK", 64, "R", UNORM)
	compressed("BC4_SNORM_BLOCK", 64, "R", SNORM)
	compressed("BC5_UNORM_BLOCK", 128, "RG", UNORM)
	compressed("BC5_SNORM_BLOCK", 128, "RG", SNORM)
	compressed("BC6H_UFLOAT_BLOCK", 128, "RGB", UFLOAT)
	compressed("BC6H_SFLOAT_BLOCK", 128, "RGB", SFLOAT)
	compressed("BC7_UNORM_BLOCK", 128, "RGBA", UNORM)
	compressed("BC7_SRGB_BLOCK", 128, "RGBA", SRGB)
	for _, k := range []Kind{UNORM, SRGB} {
		compressed("ETC2_R8G8B8_"+k.String()+"_BLOCK", 64, "RGB", k)
		compressed("ETC2_R8G8B8A1_"+k.String()+"_BLOCK", 64, "RGBA", k)
		compressed("ETC2_R8G8B8A8_"+k.String()+"_BLOCK", 128, "RGBA", k)
	}
	compressed("EAC_R11_UNORM_BLOCK", 64, "R", UNORM)
	compressed("EAC_R11_SNORM_BLOCK", 64, "R", SNORM)
	compressed("EAC_R11G11_UNORM_BLOCK", 128, "RG", UNORM)
	compressed("EAC_R11G11_SNORM_BLOCK", 128, "RG", SNORM)
	for _, block := range astcBlocks {
		for _, k := range []Kind{UNORM, SRGB} {
			compressed("ASTC_"+block+"_"+k.String()+"_BLOCK", 128, "RGBA", k)
		}
	}
	return entries
}

var astcBlocks = []string{
	"4x4", "5x4", "5x5", "6x5", "6x6", "8x5", "8x6", "8x8",
	"10x5", "10x6", "10x8", "10x10", "12x10", "12x12",
}

func parseSymbol(c rune) Symbol {
	switch c {
	case 'R':
		return R
	case 'G':
		return G
	case 'B':
		return B
	case 'A':
		return A
	case 'E':
		return E
	default:
		return X
	}
}
