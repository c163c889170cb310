package pixel

import (
	"fmt"
	"image"

	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/hwformat"
	"github.com/mrjoshuak/go-texel/layout"
)

// StepKind identifies a transform step.
type StepKind uint8

const (
	// StepReadOnly rejects writes.
	StepReadOnly StepKind = iota
	// StepWindow exposes a rectangle of its parent.
	StepWindow
	// StepReorient mirrors and/or transposes its parent.
	StepReorient
	// StepPremultiply multiplies color by alpha on read and divides on write.
	StepPremultiply
	// StepVirtual places its parent inside a larger or shifted rectangle.
	// Pixels with no parent pixel read as a background and ignore writes.
	StepVirtual
)

func (k StepKind) String() string {
	switch k {
	case StepReadOnly:
		return "read-only"
	case StepWindow:
		return "window"
	case StepReorient:
		return "reorient"
	case StepPremultiply:
		return "premultiply"
	case StepVirtual:
		return "virtual"
	default:
		return fmt.Sprintf("StepKind(%d)", k)
	}
}

// Orientation describes a reorientation. Transpose swaps the axes first;
// the flips then mirror the parent's x and y.
type Orientation struct {
	FlipX, FlipY bool
	Transpose    bool
}

// Step is one transform in a view chain.
type Step struct {
	Kind StepKind
	// Rect is the window (StepWindow) or virtual rectangle (StepVirtual) in
	// parent coordinates.
	Rect        image.Rectangle
	Orientation Orientation
	// Background color and alpha of a StepVirtual.
	Background      []float64
	BackgroundAlpha float64

	parentW, parentH int
}

// View is a root array seen through a chain of transform steps. Steps are
// stored root first. A view borrows the root's buffers and never copies
// pixels.
type View struct {
	root     root
	steps    []Step
	layout   layout.Layout
	readOnly bool
	premul   int
}

// newView appends step to a's chain.
func newView(a Array, step Step) (*View, error) {
	r, steps := a.unwrap()
	step.parentW, step.parentH = a.Width(), a.Height()

	l := a.Layout()
	var err error
	switch step.Kind {
	case StepWindow:
		l, err = layout.NewWindow(l, step.Rect)
	case StepVirtual:
		l, err = layout.NewPadded(l, step.Rect)
	case StepReorient:
		o := step.Orientation
		if o.FlipX || o.FlipY {
			l = layout.NewInverted(l, o.FlipX, o.FlipY)
		}
		if o.Transpose {
			l = layout.NewTransposed(l)
		}
	}
	if err != nil {
		return nil, err
	}

	v := &View{
		root:   r,
		steps:  append(append(make([]Step, 0, len(steps)+1), steps...), step),
		layout: l,
	}
	for _, s := range v.steps {
		switch s.Kind {
		case StepReadOnly:
			v.readOnly = true
		case StepPremultiply:
			v.premul++
		}
	}
	return v, nil
}

// ReadOnly returns a view of a that rejects writes with [ErrReadOnly].
func ReadOnly(a Array) *View {
	v, _ := newView(a, Step{Kind: StepReadOnly})
	return v
}

// SubWindow returns the rectangle r of a, translated to the origin. r must
// be non-empty and inside a.
func SubWindow(a Array, r image.Rectangle) (*View, error) {
	return newView(a, Step{Kind: StepWindow, Rect: r})
}

// Reorient returns a mirrored and/or transposed view of a.
func Reorient(a Array, o Orientation) *View {
	v, _ := newView(a, Step{Kind: StepReorient, Orientation: o})
	return v
}

// Premultiplied returns a view of a whose colors are multiplied by alpha.
// Writes divide by alpha; a zero alpha stores zero color. a's format must
// have alpha.
func Premultiplied(a Array) (*View, error) {
	if !a.Format().HasAlpha() {
		return nil, fmt.Errorf("%w: premultiplied view of %v, which has no alpha", ErrUnsupported, a.Format())
	}
	return newView(a, Step{Kind: StepPremultiply})
}

// Virtual returns the rectangle r around a, given in a's coordinates; r may
// extend past a on any side. Pixels outside a read as background and alpha
// and ignore writes.
func Virtual(a Array, r image.Rectangle, background []float64, alpha float64) (*View, error) {
	return newView(a, Step{
		Kind:            StepVirtual,
		Rect:            r,
		Background:      append([]float64(nil), background...),
		BackgroundAlpha: alpha,
	})
}

// Root returns the array that owns v's buffers.
func (v *View) Root() Array { return v.root }

// Steps returns v's transform chain, root first.
func (v *View) Steps() []Step { return append([]Step(nil), v.steps...) }

func (v *View) Width() int             { return v.layout.Width() }
func (v *View) Height() int            { return v.layout.Height() }
func (v *View) Format() *format.Format { return v.root.Format() }
func (v *View) Layout() layout.Layout  { return v.layout }
func (v *View) ReadOnly() bool         { return v.readOnly }
func (v *View) unwrap() (root, []Step) { return v.root, v.steps }

// GPUFormat reports the root's hardware format. Views that change values
// have none.
func (v *View) GPUFormat() (hwformat.Entry, bool) {
	for _, s := range v.steps {
		if s.Kind == StepPremultiply || s.Kind == StepVirtual {
			return hwformat.Undefined, false
		}
	}
	return v.root.GPUFormat()
}

func (v *View) GPUCompatible() bool { return gpuCompatible(v) }

// resolve maps (x, y) to root coordinates. miss is the index of the virtual
// step that has no parent pixel there, or -1.
func (v *View) resolve(x, y int) (rx, ry, miss int) {
	for i := len(v.steps) - 1; i >= 0; i-- {
		s := &v.steps[i]
		switch s.Kind {
		case StepWindow:
			x, y = x+s.Rect.Min.X, y+s.Rect.Min.Y
		case StepReorient:
			if s.Orientation.Transpose {
				x, y = y, x
			}
			if s.Orientation.FlipX {
				x = s.parentW - 1 - x
			}
			if s.Orientation.FlipY {
				y = s.parentH - 1 - y
			}
		case StepVirtual:
			x, y = x+s.Rect.Min.X, y+s.Rect.Min.Y
			if x < 0 || y < 0 || x >= s.parentW || y >= s.parentH {
				return 0, 0, i
			}
		}
	}
	return x, y, -1
}

func (v *View) checkPoint(x, y int) error {
	if !layout.Contains(v.layout, x, y, 0) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d view", ErrOutOfBounds, x, y, v.Width(), v.Height())
	}
	return nil
}

func (v *View) Get(x, y int, color []float64) (float64, error) {
	if err := v.checkPoint(x, y); err != nil {
		return 0, err
	}
	f := v.root.Format()
	if err := checkColor(f, color); err != nil {
		return 0, err
	}

	rx, ry, miss := v.resolve(x, y)
	var alpha float64
	if miss >= 0 {
		s := &v.steps[miss]
		n := f.ColorChannelCount()
		clear(color[:n])
		copy(color[:n], s.Background)
		alpha = s.BackgroundAlpha
	} else {
		alpha = v.root.get(rx, ry, color)
	}

	// Premultiply steps outside the miss apply to the background too.
	for i := miss + 1; i < len(v.steps); i++ {
		if v.steps[i].Kind == StepPremultiply {
			for c := range f.ColorChannelCount() {
				color[c] *= alpha
			}
		}
	}
	return alpha, nil
}

func (v *View) Set(x, y int, color []float64, alpha float64) error {
	if v.readOnly {
		return ErrReadOnly
	}
	if err := v.checkPoint(x, y); err != nil {
		return err
	}
	f := v.root.Format()
	if err := checkColor(f, color); err != nil {
		return err
	}

	rx, ry, miss := v.resolve(x, y)
	if miss >= 0 {
		return nil
	}
	if v.premul > 0 {
		straight := make([]float64, f.ColorChannelCount())
		for c := range straight {
			straight[c] = color[c]
			for range v.premul {
				if alpha == 0 {
					straight[c] = 0
				} else {
					straight[c] /= alpha
				}
			}
		}
		color = straight
	}
	v.root.set(rx, ry, color, alpha)
	return nil
}

func (v *View) Alpha(x, y int) (float64, error) {
	if err := v.checkPoint(x, y); err != nil {
		return 0, err
	}
	rx, ry, miss := v.resolve(x, y)
	if miss >= 0 {
		return v.steps[miss].BackgroundAlpha, nil
	}
	return v.root.alpha(rx, ry), nil
}

// SetAlpha replaces the stored alpha. The stored, unpremultiplied color is
// kept, so premultiplied reads change with it.
func (v *View) SetAlpha(x, y int, alpha float64) error {
	if v.readOnly {
		return ErrReadOnly
	}
	if err := v.checkPoint(x, y); err != nil {
		return err
	}
	rx, ry, miss := v.resolve(x, y)
	if miss < 0 {
		v.root.setAlpha(rx, ry, alpha)
	}
	return nil
}
