package pixel

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/layout"
	"github.com/mrjoshuak/go-texel/numeric"
)

func mustMake(t testing.TB, f *format.Format, w, h int, opts ...Option) Array {
	t.Helper()
	a, err := Make(f, w, h, opts...)
	if err != nil {
		t.Fatalf("Make(%v, %d, %d): %v", f, w, h, err)
	}
	return a
}

func get(t testing.TB, a Array, x, y int) ([]float64, float64) {
	t.Helper()
	color := make([]float64, a.Format().ColorChannelCount())
	alpha, err := a.Get(x, y, color)
	if err != nil {
		t.Fatalf("Get(%d, %d): %v", x, y, err)
	}
	return color, alpha
}

func set(t testing.TB, a Array, x, y int, color []float64, alpha float64) {
	t.Helper()
	if err := a.Set(x, y, color, alpha); err != nil {
		t.Fatalf("Set(%d, %d): %v", x, y, err)
	}
}

// quantum returns the coarsest step of any field of f.
func quantum(f *format.Format) float64 {
	q := 0.0
	for _, fd := range f.Fields() {
		switch fd.Kind {
		case numeric.Unorm:
			q = max(q, 1/float64(uint64(1)<<fd.Bits-1))
		case numeric.Snorm:
			q = max(q, 1/float64(uint64(1)<<(fd.Bits-1)-1))
		}
	}
	return q
}

func TestPackedRoundTrip(t *testing.T) {
	formats := []*format.Format{
		format.R5G6B5,
		format.RGBA4,
		format.A2B10G10R10,
		format.MustParse("unorm3:R,unorm3:G,unorm2:B"),
		format.MustParse("snorm8:A,snorm8:B,snorm8:G,snorm8:R"),
	}
	values := [][]float64{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0.25, 0.5, 0.75, 0.3},
		{0.9, 0.1, 0.6, 0.7},
	}
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			a := mustMake(t, f, 3, 2, WithPacked())
			if _, ok := a.(*Packed); !ok {
				t.Fatalf("Make returned %T, want *Packed", a)
			}
			n := f.ColorChannelCount()
			opt := cmpopts.EquateApprox(0, quantum(f)/2+1e-12)
			for i, v := range values {
				x, y := i%3, i/3
				set(t, a, x, y, v[:n], v[3])
				got, alpha := get(t, a, x, y)
				if diff := cmp.Diff(v[:n], got, opt); diff != "" {
					t.Errorf("color %v (-want +got):\n%s", v, diff)
				}
				want := 1.0
				if f.HasAlpha() {
					want = v[3]
				}
				if !cmp.Equal(want, alpha, opt) {
					t.Errorf("alpha = %v, want %v", alpha, want)
				}
			}
		})
	}
}

func TestPackedBits(t *testing.T) {
	a := mustMake(t, format.R5G6B5, 2, 1, WithPacked())
	set(t, a, 0, 0, []float64{1, 0, 0}, 1)
	set(t, a, 1, 0, []float64{0, 1, 0}, 1)
	buf := Buffers(a)[0]
	if buf.Kind() != buffer.Uint16 {
		t.Fatalf("storage %v, want uint16", buf.Kind())
	}
	if got := buf.Bits(0); got != 0xF800 {
		t.Errorf("red = %#x, want 0xf800", got)
	}
	if got := buf.Bits(1); got != 0x07E0 {
		t.Errorf("green = %#x, want 0x07e0", got)
	}
}

func TestPackedSetAlphaKeepsColor(t *testing.T) {
	a := mustMake(t, format.RGBA4, 1, 1, WithPacked())
	set(t, a, 0, 0, []float64{1, 0, 7.0 / 15}, 0.2)
	before, _ := get(t, a, 0, 0)
	if err := a.SetAlpha(0, 0, 0.8); err != nil {
		t.Fatal(err)
	}
	after, alpha := get(t, a, 0, 0)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("color changed (-before +after):\n%s", diff)
	}
	if math.Abs(alpha-0.8) > 1.0/30 {
		t.Errorf("alpha = %v, want 0.8", alpha)
	}
	if got, _ := a.Alpha(0, 0); got != alpha {
		t.Errorf("Alpha = %v, Get alpha = %v", got, alpha)
	}
}

func TestPackedSkippedBitsCleared(t *testing.T) {
	f := format.MustParse("x8,unorm8:R,unorm8:G,unorm8:B")
	buf := buffer.Wrap([]uint32{0xFFFFFFFF})
	a, err := NewPacked(f, layout.MustScanline(1, 1, 1), buf)
	if err != nil {
		t.Fatal(err)
	}
	set(t, a, 0, 0, []float64{1, 0, 1}, 1)
	if buf[0] != 0x00FF00FF {
		t.Errorf("word = %#x, want 0x00ff00ff", buf[0])
	}
}

func TestUnpackedNoAlpha(t *testing.T) {
	a := mustMake(t, format.RGB8, 2, 2)
	set(t, a, 1, 1, []float64{0, 1, 0}, 0.25)
	_, alpha := get(t, a, 1, 1)
	if alpha != 1 {
		t.Errorf("alpha = %v, want 1", alpha)
	}
	if err := a.SetAlpha(1, 1, 0); err != nil {
		t.Fatal(err)
	}
	if got, _ := a.Alpha(1, 1); got != 1 {
		t.Errorf("Alpha after SetAlpha = %v, want 1", got)
	}
	if got := Buffers(a)[0].Bits(layout.MustScanline(2, 2, 3).Offset(1, 1, 1)); got != 255 {
		t.Errorf("green element = %d, want 255", got)
	}
}

func TestUnpackedSeparateBuffers(t *testing.T) {
	l := layout.MustScanline(2, 2, 1)
	r, g, b, al := make([]uint8, 4), make([]uint8, 4), make([]uint8, 4), make([]uint8, 4)
	a, err := NewUnpacked(format.RGBA8, l, []buffer.Buffer{buffer.Wrap(r), buffer.Wrap(g), buffer.Wrap(b), buffer.Wrap(al)})
	if err != nil {
		t.Fatal(err)
	}
	set(t, a, 1, 0, []float64{1, 0, 0.2, 1}, 0.6)
	if r[1] != 255 || g[1] != 0 || b[1] != 51 || al[1] != 153 {
		t.Errorf("stored %d %d %d %d, want 255 0 51 153", r[1], g[1], b[1], al[1])
	}
	if len(Buffers(a)) != 4 {
		t.Errorf("%d buffers, want 4", len(Buffers(a)))
	}
}

func TestUnpackedSigned(t *testing.T) {
	f := format.MustParse("snorm8:R,sint12:G")
	l := layout.MustScanline(1, 1, 1)
	rs, gs := make([]int8, 1), make([]int16, 1)
	a, err := NewUnpacked(f, l, []buffer.Buffer{buffer.Wrap(rs), buffer.Wrap(gs)})
	if err != nil {
		t.Fatal(err)
	}
	set(t, a, 0, 0, []float64{-1, -300}, 1)
	if rs[0] != -127 || gs[0] != -300 {
		t.Errorf("stored %d %d, want -127 -300", rs[0], gs[0])
	}
	got, _ := get(t, a, 0, 0)
	if diff := cmp.Diff([]float64{-1, -300}, got); diff != "" {
		t.Errorf("Get (-want +got):\n%s", diff)
	}

	set(t, a, 0, 0, []float64{2, 5000}, 1)
	got, _ = get(t, a, 0, 0)
	if diff := cmp.Diff([]float64{1, 2047}, got); diff != "" {
		t.Errorf("clamped (-want +got):\n%s", diff)
	}
}

func TestUnpackedFloat(t *testing.T) {
	for _, f := range []*format.Format{format.RGBA16F, format.RGBA32F} {
		t.Run(f.String(), func(t *testing.T) {
			a := mustMake(t, f, 2, 1)
			want := []float64{0.5, -2, 1024, 0.125}
			set(t, a, 1, 0, want[:3], want[3])
			got, alpha := get(t, a, 1, 0)
			if diff := cmp.Diff(want, append(got, alpha)); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
	if k := Buffers(mustMake(t, format.RGBA32F, 1, 1))[0].Kind(); k != buffer.Float32 {
		t.Errorf("RGBA32F storage %v, want float32", k)
	}
}

func TestUnpackedHoles(t *testing.T) {
	data := []uint8{10, 20, 30, 40}
	padded, err := layout.NewPadded(layout.MustScanline(2, 2, 1), image.Rect(-1, 0, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewUnpacked(format.Gray8, padded, []buffer.Buffer{buffer.Wrap(data)}, WithBackground([]float64{0.25}, 0.75))
	if err != nil {
		t.Fatal(err)
	}
	color, alpha := get(t, a, 0, 1)
	if color[0] != 0.25 || alpha != 0.75 {
		t.Errorf("hole = %v %v, want 0.25 0.75", color[0], alpha)
	}
	color, _ = get(t, a, 2, 1)
	if color[0] != 40.0/255 {
		t.Errorf("inside = %v, want %v", color[0], 40.0/255)
	}
	set(t, a, 0, 0, []float64{1}, 1)
	if diff := cmp.Diff([]uint8{10, 20, 30, 40}, data); diff != "" {
		t.Errorf("hole write changed storage (-want +got):\n%s", diff)
	}
}

func TestSharedExponent(t *testing.T) {
	a := mustMake(t, format.RGB9E5, 2, 2)
	if _, ok := a.(*SharedExponent); !ok {
		t.Fatalf("Make returned %T, want *SharedExponent", a)
	}

	want := []float64{60000, 50000, 40000}
	set(t, a, 1, 1, want, 0.5)
	got, alpha := get(t, a, 1, 1)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(1.0/512, 0)); diff != "" {
		t.Errorf("near max (-want +got):\n%s", diff)
	}
	if alpha != 1 {
		t.Errorf("alpha = %v, want 1", alpha)
	}

	set(t, a, 0, 0, []float64{1, 1, 1}, 1)
	if got := Buffers(a)[0].Bits(0); got != 0x84020100 {
		t.Errorf("word = %#x, want 0x84020100", got)
	}
	if err := a.SetAlpha(0, 0, 0); err != nil {
		t.Fatal(err)
	}
	if got, _ := a.Alpha(0, 0); got != 1 {
		t.Errorf("Alpha = %v, want 1", got)
	}
}

func TestConstructorErrors(t *testing.T) {
	l := layout.MustScanline(2, 2, 1)
	u8 := func(n int) buffer.Buffer { return buffer.Wrap(make([]uint8, n)) }
	tests := []struct {
		name string
		err  error
		fn   func() error
	}{
		{"buffer count", ErrIncompatibleFormat, func() error {
			_, err := NewUnpacked(format.RGB8, l, []buffer.Buffer{u8(4), u8(4)})
			return err
		}},
		{"short buffer", ErrIncompatibleDimensions, func() error {
			_, err := NewUnpacked(format.Gray8, l, []buffer.Buffer{u8(3)})
			return err
		}},
		{"float buffer for unorm", ErrIncompatibleFormat, func() error {
			_, err := NewUnpacked(format.Gray8, l, []buffer.Buffer{make(buffer.Float32s, 4)})
			return err
		}},
		{"half in wide buffer", ErrIncompatibleFormat, func() error {
			_, err := NewUnpacked(format.MustParse("sfloat16:R"), l, []buffer.Buffer{buffer.Wrap(make([]uint32, 4))})
			return err
		}},
		{"packed width", ErrIncompatibleFormat, func() error {
			_, err := NewPacked(format.R5G6B5, l, u8(4))
			return err
		}},
		{"packed shared exponent", format.ErrInvalidFormat, func() error {
			_, err := NewPacked(format.RGB9E5, l, buffer.Wrap(make([]uint32, 4)))
			return err
		}},
		{"shared exponent format", format.ErrInvalidFormat, func() error {
			_, err := NewSharedExponent(format.RGB8, l, buffer.Wrap(make([]uint32, 4)))
			return err
		}},
		{"unpacked shared exponent", format.ErrInvalidFormat, func() error {
			_, err := NewUnpacked(format.RGB9E5, l, []buffer.Buffer{buffer.Wrap(make([]uint32, 4))})
			return err
		}},
		{"layout size", ErrIncompatibleDimensions, func() error {
			_, err := Make(format.RGB8, 3, 2, WithLayout(layout.MustScanline(2, 2, 3)))
			return err
		}},
		{"odd packed width", ErrUnsupported, func() error {
			_, err := Make(format.MustParse("unorm3:R,unorm3:G,unorm3:B"), 2, 2, WithPacked())
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestAccessErrors(t *testing.T) {
	a := mustMake(t, format.RGB8, 2, 2)
	if _, err := a.Get(2, 0, make([]float64, 3)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Get out of bounds: %v", err)
	}
	if err := a.Set(0, -1, make([]float64, 3), 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Set out of bounds: %v", err)
	}
	if _, err := a.Get(0, 0, make([]float64, 2)); !errors.Is(err, ErrIncompatibleFormat) {
		t.Errorf("short color: %v", err)
	}
}

func TestMakeStorage(t *testing.T) {
	mixed := format.MustParse("unorm8:R,unorm16:G")
	a := mustMake(t, mixed, 2, 2)
	bufs := Buffers(a)
	if len(bufs) != 2 || bufs[0].Kind() != buffer.Uint8 || bufs[1].Kind() != buffer.Uint16 {
		t.Errorf("mixed widths got %d buffers", len(bufs))
	}

	wide := mustMake(t, format.RGBA8, 2, 2, WithStorage(buffer.Uint16))
	if k := Buffers(wide)[0].Kind(); k != buffer.Uint16 {
		t.Errorf("WithStorage: %v", k)
	}
	if EncodingOf(wide) != EncodingUnpacked {
		t.Errorf("encoding %v", EncodingOf(wide))
	}

	// Padding does not split the buffers.
	rgbx := format.MustParse("snorm8:R,snorm8:G,snorm8:B,x8")
	for _, opts := range [][]Option{nil, {WithLayout(layout.MustScanline(2, 2, 4))}} {
		a := mustMake(t, rgbx, 2, 2, opts...)
		if bufs := Buffers(a); len(bufs) != 1 || bufs[0].Kind() != buffer.Int8 {
			t.Errorf("padded format got %d buffers", len(bufs))
		}
	}

	_, err := Make(mixed, 2, 2, WithLayout(layout.MustScanline(2, 2, 2)))
	if !errors.Is(err, ErrIncompatibleFormat) {
		t.Errorf("mixed widths in one banded buffer: %v", err)
	}
}

func TestGPUFormat(t *testing.T) {
	srgb := mustMake(t, format.RGBA8, 4, 4, WithSRGB())
	e, ok := srgb.GPUFormat()
	if !ok || e.Name != "R8G8B8A8_SRGB" || e.WebGPU != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("sRGB array: %v %v (%v)", e.Name, ok, e.WebGPU)
	}

	rgba := mustMake(t, format.RGBA8, 4, 4)
	window, err := SubWindow(rgba, image.Rect(0, 1, 4, 3))
	if err != nil {
		t.Fatal(err)
	}
	premul, err := Premultiplied(rgba)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		a          Array
		entry      string
		compatible bool
	}{
		{"linear", rgba, "R8G8B8A8_UNORM", true},
		{"packed", mustMake(t, format.R5G6B5, 4, 4, WithPacked()), "R5G6B5_UNORM_PACK16", true},
		{"shared exponent", mustMake(t, format.RGB9E5, 4, 4), "E5B9G9R9_UFLOAT_PACK32", true},
		{"half float", mustMake(t, format.RGBA16F, 4, 4), "R16G16B16A16_SFLOAT", true},
		{"tiled", mustMake(t, format.RGBA8, 4, 4,
			WithLayout(layout.MustTiled(4, 4, 4, 2, 2, layout.InterleavePixel))), "R8G8B8A8_UNORM", false},
		{"separate buffers", mustMake(t, format.RGBA8, 4, 4, WithLayout(layout.MustScanline(4, 4, 1))), "", false},
		{"four colors", mustMake(t, format.MustParse("unorm8:R,unorm8:G,unorm8:B,unorm8:c3"), 4, 4), "", false},
		{"flipped", Reorient(rgba, Orientation{FlipY: true}), "R8G8B8A8_UNORM", false},
		{"full-width window", window, "R8G8B8A8_UNORM", true},
		{"read-only", ReadOnly(rgba), "R8G8B8A8_UNORM", true},
		{"premultiplied", premul, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := tt.a.GPUFormat()
			if ok != (tt.entry != "") || ok && e.Name != tt.entry {
				t.Errorf("GPUFormat = %s, %v; want %q", e.Name, ok, tt.entry)
			}
			if got := tt.a.GPUCompatible(); got != tt.compatible {
				t.Errorf("GPUCompatible = %v, want %v", got, tt.compatible)
			}
		})
	}
}
