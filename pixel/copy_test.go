package pixel

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	texel "github.com/mrjoshuak/go-texel"
	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/layout"
)

// fill writes random values into every pixel of a.
func fill(t testing.TB, a Array, seed uint64) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 1))
	color := make([]float64, a.Format().ColorChannelCount())
	for y := range a.Height() {
		for x := range a.Width() {
			for c := range color {
				color[c] = rng.Float64()
			}
			set(t, a, x, y, color, rng.Float64())
		}
	}
}

// naiveCopy is the reference: decode and re-encode every pixel.
func naiveCopy(t testing.TB, dst Array, dr image.Rectangle, src Array, sr image.Rectangle) {
	t.Helper()
	color := make([]float64, max(src.Format().ColorChannelCount(), dst.Format().ColorChannelCount()))
	for y := range sr.Dy() {
		for x := range sr.Dx() {
			clear(color)
			alpha, err := src.Get(sr.Min.X+x, sr.Min.Y+y, color)
			if err != nil {
				t.Fatal(err)
			}
			set(t, dst, dr.Min.X+x, dr.Min.Y+y, color, alpha)
		}
	}
}

// elements returns every element of every buffer of a's root.
func elements(a Array) [][]uint64 {
	var out [][]uint64
	for _, buf := range Buffers(a) {
		e := make([]uint64, buf.Len())
		for i := range e {
			e[i] = buf.Bits(i)
		}
		out = append(out, e)
	}
	return out
}

func TestCopyEquivalence(t *testing.T) {
	scan := func(bands int) Option { return WithLayout(layout.MustScanline(7, 5, bands)) }
	tiled := func(unit layout.InterleavingUnit) Option {
		return WithLayout(layout.MustTiled(7, 5, 4, 3, 2, unit))
	}
	flipped := WithLayout(layout.NewInverted(layout.MustScanline(7, 5, 4), true, false))

	type side struct {
		f    *format.Format
		opts []Option
		wrap func(t testing.TB, a Array) Array
	}
	plain := func(f *format.Format, opts ...Option) side { return side{f: f, opts: opts} }
	wrapped := func(f *format.Format, wrap func(testing.TB, Array) Array, opts ...Option) side {
		return side{f: f, opts: opts, wrap: wrap}
	}
	transpose := func(_ testing.TB, a Array) Array { return Reorient(a, Orientation{Transpose: true}) }
	flipX := func(_ testing.TB, a Array) Array { return Reorient(a, Orientation{FlipX: true}) }
	window := func(t testing.TB, a Array) Array {
		v, err := SubWindow(a, image.Rect(1, 0, 7, 5))
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	premul := func(t testing.TB, a Array) Array {
		v, err := Premultiplied(a)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	rgba := format.RGBA8
	tests := []struct {
		name     string
		dst, src side
		dr, sr   image.Rectangle
		path     CopyPath
	}{
		{"scanline", plain(rgba), plain(rgba),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyRuns},
		{"tiled to scanline", plain(rgba), plain(rgba, tiled(layout.InterleavePixel)),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyRuns},
		{"tile to scanline interleaving", plain(rgba, tiled(layout.InterleaveScanline)), plain(rgba, tiled(layout.InterleaveTile)),
			image.Rect(2, 0, 7, 3), image.Rect(0, 1, 5, 4), CopyBands},
		{"image planes", plain(rgba, tiled(layout.InterleaveImage)), plain(rgba),
			image.Rect(0, 0, 7, 5), image.Rect(0, 0, 7, 5), CopyBands},
		{"separate buffers", plain(rgba, scan(1)), plain(rgba, scan(1)),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyBands},
		{"both transposed", wrapped(rgba, transpose), wrapped(rgba, transpose),
			image.Rect(0, 2, 3, 7), image.Rect(1, 1, 4, 6), CopyRuns},
		{"both flipped", wrapped(rgba, flipX), wrapped(rgba, flipX),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyRuns},
		{"window", plain(rgba), wrapped(rgba, window),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyRuns},
		{"mirrored root layouts", plain(rgba, flipped), plain(rgba, flipped),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyElements},
		{"different orientation", plain(rgba), wrapped(rgba, flipX),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyPixels},
		{"packed", plain(format.R5G6B5, WithPacked()), wrapped(format.R5G6B5, window, WithPacked()),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyRuns},
		{"packed to unpacked", plain(format.RGB8), plain(format.R5G6B5, WithPacked()),
			image.Rect(0, 0, 7, 5), image.Rect(0, 0, 7, 5), CopyPixels},
		{"storage kinds differ", plain(rgba, WithStorage(buffer.Uint16)), plain(rgba),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyPixels},
		{"premultiplied", plain(rgba), wrapped(rgba, premul),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyPixels},
		{"fewer channels", plain(format.RGB8), plain(rgba),
			image.Rect(0, 2, 5, 5), image.Rect(1, 1, 6, 4), CopyPixels},
	}

	build := func(t *testing.T, s side, seed uint64) Array {
		a := mustMake(t, s.f, 7, 5, s.opts...)
		fill(t, a, seed)
		if s.wrap != nil {
			return s.wrap(t, a)
		}
		return a
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := build(t, tt.src, 1)
			fast := build(t, tt.dst, 2)
			slow := build(t, tt.dst, 2)

			path, err := PlanCopy(fast, tt.dr, src, tt.sr)
			if err != nil {
				t.Fatal(err)
			}
			if path != tt.path {
				t.Errorf("path = %v, want %v", path, tt.path)
			}
			if err := Copy(fast, tt.dr, src, tt.sr); err != nil {
				t.Fatal(err)
			}
			naiveCopy(t, slow, tt.dr, src, tt.sr)

			want, got := elements(slow), elements(fast)
			for b := range want {
				for i := range want[b] {
					if got[b][i] != want[b][i] {
						t.Fatalf("buffer %d element %d = %#x, want %#x", b, i, got[b][i], want[b][i])
					}
				}
			}
		})
	}
}

func TestCopyByteBuffers(t *testing.T) {
	l := layout.MustScanline(4, 3, 4)
	data := make([]byte, l.RequiredElements())
	bb, err := buffer.NewBytes(data, buffer.Uint8, binary.LittleEndian)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := NewUnpacked(format.RGBA8, l, []buffer.Buffer{bb})
	if err != nil {
		t.Fatal(err)
	}
	src := mustMake(t, format.RGBA8, 4, 3)
	fill(t, src, 3)

	r := image.Rect(0, 0, 4, 3)
	if p, _ := PlanCopy(dst, r, src, r); p != CopyRuns {
		t.Errorf("path = %v, want runs", p)
	}
	if err := Copy(dst, r, src, r); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, rawBytes(src)) {
		t.Error("byte buffer differs from source")
	}
}

func TestCopySharedExponent(t *testing.T) {
	src := mustMake(t, format.RGB9E5, 3, 3)
	fill(t, src, 4)
	dst := mustMake(t, format.RGB9E5, 3, 3)
	r := image.Rect(0, 0, 3, 3)
	if p, _ := PlanCopy(dst, r, src, r); p != CopyRuns {
		t.Errorf("path = %v, want runs", p)
	}
	if err := Copy(dst, r, src, r); err != nil {
		t.Fatal(err)
	}
	if !equalElements(elements(src), elements(dst)) {
		t.Error("destination differs from source")
	}
}

func equalElements(a, b [][]uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// fillRaw writes v into every element of every buffer of a's root.
func fillRaw(a Array, v uint64) {
	for _, buf := range Buffers(a) {
		for i := range buf.Len() {
			buf.SetBits(i, v)
		}
	}
}

func TestCopyRawBits(t *testing.T) {
	bgrx := format.MustParse("unorm8:B,unorm8:G,unorm8:R,x8")
	tests := []struct {
		name string
		f    *format.Format
		opts []Option
		src  func(t testing.TB) Array
		raw  uint64
		path CopyPath
	}{
		{name: "packed padding", f: format.MustParse("x8,unorm8:R"), opts: []Option{WithPacked()},
			raw: 0xAB12, path: CopyElements},
		{name: "padding band", f: bgrx, raw: 0xFF, path: CopyBands},
		{name: "padding band in bytes", f: bgrx, raw: 0xFF, path: CopyBands,
			src: func(t testing.TB) Array {
				l := layout.MustScanline(4, 3, 4)
				bb, err := buffer.NewBytes(make([]byte, l.RequiredElements()), buffer.Uint8, binary.LittleEndian)
				if err != nil {
					t.Fatal(err)
				}
				a, err := NewUnpacked(bgrx, l, []buffer.Buffer{bb})
				if err != nil {
					t.Fatal(err)
				}
				return a
			}},
		{name: "narrow unsigned field", f: format.MustParse("unorm10:R"), opts: []Option{WithStorage(buffer.Uint16)},
			raw: 0xFFFF, path: CopyElements},
		{name: "narrow signed field", f: format.MustParse("sint4:R,sint4:G"), opts: []Option{WithStorage(buffer.Int8)},
			raw: 0x7C, path: CopyElements},
		{name: "separate padding buffer", f: bgrx, opts: []Option{WithLayout(layout.MustScanline(4, 3, 1))},
			raw: 0x5A, path: CopyBands},
	}
	r := image.Rect(0, 0, 4, 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := func() Array {
				if tt.src != nil {
					return tt.src(t)
				}
				return mustMake(t, tt.f, 4, 3, tt.opts...)
			}()
			fillRaw(src, tt.raw)
			fast := mustMake(t, tt.f, 4, 3, tt.opts...)
			slow := mustMake(t, tt.f, 4, 3, tt.opts...)

			path, err := PlanCopy(fast, r, src, r)
			if err != nil {
				t.Fatal(err)
			}
			if path != tt.path {
				t.Errorf("path = %v, want %v", path, tt.path)
			}
			if err := Copy(fast, r, src, r); err != nil {
				t.Fatal(err)
			}
			naiveCopy(t, slow, r, src, r)
			if got, want := elements(fast), elements(slow); !equalElements(got, want) {
				t.Errorf("raw copy %#x, per-pixel copy %#x", got, want)
			}
		})
	}
}

func TestCopyPackedPaddingCleared(t *testing.T) {
	f := format.MustParse("x8,unorm8:R")
	src := mustMake(t, f, 1, 1, WithPacked())
	dst := mustMake(t, f, 1, 1, WithPacked())
	Buffers(src)[0].SetBits(0, 0xAB12)
	r := image.Rect(0, 0, 1, 1)
	if err := Copy(dst, r, src, r); err != nil {
		t.Fatal(err)
	}
	if got := Buffers(dst)[0].Bits(0); got != 0x12 {
		t.Errorf("copied word = %#x, want 0x12", got)
	}
}

// The most negative snorm value has a second encoding; raw copies keep it.
func TestCopyKeepsSnormMinimum(t *testing.T) {
	f := format.MustParse("snorm8:R")
	src := mustMake(t, f, 1, 1)
	dst := mustMake(t, f, 1, 1)
	Buffers(src)[0].SetBits(0, 0x80)
	r := image.Rect(0, 0, 1, 1)
	if p, _ := PlanCopy(dst, r, src, r); p != CopyRuns {
		t.Errorf("path = %v, want runs", p)
	}
	if err := Copy(dst, r, src, r); err != nil {
		t.Fatal(err)
	}
	if got := Buffers(dst)[0].Bits(0); got != 0x80 {
		t.Errorf("copied element = %#x, want 0x80", got)
	}
	if got := value(t, dst, 0, 0); got != -1 {
		t.Errorf("copied value = %v, want -1", got)
	}
}

func TestCopyErrors(t *testing.T) {
	a := mustMake(t, format.RGBA8, 4, 4)
	b := mustMake(t, format.RGBA8, 4, 4)
	if err := Copy(a, image.Rect(0, 0, 2, 2), b, image.Rect(0, 0, 3, 2)); !errors.Is(err, ErrIncompatibleDimensions) {
		t.Errorf("size mismatch: %v", err)
	}
	if err := Copy(a, image.Rect(3, 3, 5, 5), b, image.Rect(0, 0, 2, 2)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("outside dst: %v", err)
	}
	if err := Copy(a, image.Rect(0, 0, 2, 2), b, image.Rect(-1, 0, 1, 2)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("outside src: %v", err)
	}
	if err := Copy(a, image.Rectangle{}, b, image.Rectangle{}); err != nil {
		t.Errorf("empty copy: %v", err)
	}
}

func TestCopyLogsPath(t *testing.T) {
	var out bytes.Buffer
	texel.SetLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer texel.SetLogger(nil)

	a := mustMake(t, format.RGBA8, 2, 2)
	b := mustMake(t, format.RGBA8, 2, 2)
	r := image.Rect(0, 0, 2, 2)
	if err := Copy(a, r, b, r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "path=runs") {
		t.Errorf("log %q does not name the path", out.String())
	}
}

func BenchmarkCopy(b *testing.B) {
	src := mustMake(b, format.RGBA8, 256, 256)
	fill(b, src, 1)
	r := image.Rect(0, 0, 256, 256)

	b.Run("runs", func(b *testing.B) {
		dst := mustMake(b, format.RGBA8, 256, 256)
		for b.Loop() {
			if err := Copy(dst, r, src, r); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("pixels", func(b *testing.B) {
		dst := mustMake(b, format.RGBA8, 256, 256, WithStorage(buffer.Uint16))
		for b.Loop() {
			if err := Copy(dst, r, src, r); err != nil {
				b.Fatal(err)
			}
		}
	})
}
