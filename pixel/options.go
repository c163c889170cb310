package pixel

import (
	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/layout"
)

// Option configures a root array during creation.
//
// Example:
//
//	// sRGB-tagged RGBA8 image, 4x4 tiles
//	a, err := pixel.Make(format.RGBA8, 64, 64,
//		pixel.WithSRGB(),
//		pixel.WithLayout(layout.MustTiled(64, 64, 4, 4, 4, layout.InterleavePixel)))
type Option func(*options)

type options struct {
	srgb            bool
	background      []float64
	backgroundAlpha float64

	// Used by Make only.
	layout  layout.Layout
	storage buffer.Kind
	packed  bool
}

func defaultOptions() options {
	return options{storage: buffer.Invalid}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSRGB tags the color values as sRGB encoded. It only affects which
// hardware format [Array.GPUFormat] reports; no color math is applied.
func WithSRGB() Option {
	return func(o *options) {
		o.srgb = true
	}
}

// WithBackground sets the color and alpha read back from layout holes,
// i.e. coordinates of a [layout.Padded] layout with no storage.
func WithBackground(color []float64, alpha float64) Option {
	return func(o *options) {
		o.background = append([]float64(nil), color...)
		o.backgroundAlpha = alpha
	}
}

// WithLayout makes [Make] use l instead of a scanline layout. Its extent
// must match the requested size.
func WithLayout(l layout.Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithStorage makes [Make] allocate buffers of kind k instead of the
// narrowest kind that holds the format.
func WithStorage(k buffer.Kind) Option {
	return func(o *options) {
		o.storage = k
	}
}

// WithPacked makes [Make] pack all fields into one element per pixel.
func WithPacked() Option {
	return func(o *options) {
		o.packed = true
	}
}
