package graphicsstate

import (
	"fmt"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/font"
	"github.com/tsawler/vellum/model"
)

// RenderingMode is the text rendering mode set by the Tr operator.
type RenderingMode int

const (
	RenderFill RenderingMode = iota
	RenderStroke
	RenderFillStroke
	RenderNeither
	RenderFillClip
	RenderStrokeClip
	RenderFillStrokeClip
	RenderClip
)

// IsFill reports whether glyphs are filled in this mode.
func (m RenderingMode) IsFill() bool {
	return m == RenderFill || m == RenderFillStroke || m == RenderFillClip || m == RenderFillStrokeClip
}

// IsStroke reports whether glyphs are stroked in this mode.
func (m RenderingMode) IsStroke() bool {
	return m == RenderStroke || m == RenderFillStroke || m == RenderStrokeClip || m == RenderFillStrokeClip
}

// IsClip reports whether glyphs are added to the clipping path.
func (m RenderingMode) IsClip() bool {
	return m >= RenderFillClip
}

// Color is a color value with the color space it was set in. Pattern
// color spaces carry the pattern name instead of components.
type Color struct {
	Space      string
	Components []float64
	Pattern    string
}

// NewColorRGB returns an RGB color in DeviceRGB.
func NewColorRGB(r, g, b float64) Color {
	return Color{Space: "DeviceRGB", Components: []float64{r, g, b}}
}

// NewColorGray returns a gray color in DeviceGray.
func NewColorGray(g float64) Color {
	return Color{Space: "DeviceGray", Components: []float64{g}}
}

// RGB approximates the color as RGB components for extraction
// purposes.
func (c Color) RGB() [3]float64 {
	switch c.Space {
	case "DeviceRGB":
		if len(c.Components) >= 3 {
			return [3]float64{c.Components[0], c.Components[1], c.Components[2]}
		}
	case "DeviceGray", "CalGray":
		if len(c.Components) >= 1 {
			g := c.Components[0]
			return [3]float64{g, g, g}
		}
	case "DeviceCMYK":
		if len(c.Components) >= 4 {
			cy, m, y, k := c.Components[0], c.Components[1], c.Components[2], c.Components[3]
			return [3]float64{(1 - cy) * (1 - k), (1 - m) * (1 - k), (1 - y) * (1 - k)}
		}
	default:
		// unknown spaces with components fall back to the first three
		if len(c.Components) >= 3 {
			return [3]float64{c.Components[0], c.Components[1], c.Components[2]}
		}
		if len(c.Components) == 1 {
			g := c.Components[0]
			return [3]float64{g, g, g}
		}
	}
	return [3]float64{0, 0, 0}
}

// clone deep-copies the color.
func (c Color) clone() Color {
	out := c
	if c.Components != nil {
		out.Components = append([]float64(nil), c.Components...)
	}
	return out
}

// DashPattern is the line dash set by the d operator.
type DashPattern struct {
	Array []float64
	Phase float64
}

// TextState holds the text parameters that persist across text
// objects. The text and line matrices are not part of this record;
// they exist only between BT and ET and are tracked by the engine.
type TextState struct {
	Font     font.Font
	FontName string
	FontSize float64

	CharSpacing       float64
	WordSpacing       float64
	HorizontalScaling float64 // percent, 100 is neutral
	Leading           float64
	Rise              float64
	RenderingMode     RenderingMode
	Knockout          bool
}

// State is a full graphics state record. Save and restore semantics
// are provided by Stack; State itself is a value holder with deep
// Clone.
type State struct {
	CTM model.Matrix

	// Clip is the current clipping bounds in device space.
	Clip model.BBox

	Text TextState

	LineWidth  float64
	LineCap    int
	LineJoin   int
	MiterLimit float64
	Dash       DashPattern

	RenderingIntent string
	Flatness        float64

	StrokeColorSpace string
	FillColorSpace   string
	StrokeColor      Color
	FillColor        Color

	BlendMode   string
	StrokeAlpha float64
	FillAlpha   float64
	SoftMask    core.Dict
}

// New creates a graphics state with PDF default values, clipped to
// the given device-space bounds.
func New(clip model.BBox) *State {
	return &State{
		CTM:              model.Identity(),
		Clip:             clip,
		LineWidth:        1.0,
		MiterLimit:       10.0,
		RenderingIntent:  "RelativeColorimetric",
		StrokeColorSpace: "DeviceGray",
		FillColorSpace:   "DeviceGray",
		StrokeColor:      NewColorGray(0),
		FillColor:        NewColorGray(0),
		BlendMode:        "Normal",
		StrokeAlpha:      1.0,
		FillAlpha:        1.0,
		Text: TextState{
			HorizontalScaling: 100.0,
		},
	}
}

// Clone creates a deep copy of the state.
func (s *State) Clone() *State {
	out := *s
	out.StrokeColor = s.StrokeColor.clone()
	out.FillColor = s.FillColor.clone()
	if s.Dash.Array != nil {
		out.Dash.Array = append([]float64(nil), s.Dash.Array...)
	}
	// the soft mask dictionary is shared; gs replaces it wholesale
	return &out
}

// Concatenate applies m ahead of the CTM (cm operator).
func (s *State) Concatenate(m model.Matrix) {
	s.CTM = m.Multiply(s.CTM)
}

// IntersectClip intersects the clip with a device-space box.
func (s *State) IntersectClip(box model.BBox) {
	s.Clip = s.Clip.Intersection(box)
}

// Stack is a graphics state stack with q/Q semantics. The bottom
// entry is the active state of a fresh stack; Current always returns
// the top.
type Stack struct {
	states []*State
}

// NewStack creates a stack whose single entry is initial.
func NewStack(initial *State) *Stack {
	return &Stack{states: []*State{initial}}
}

// Current returns the active (top) state.
func (st *Stack) Current() *State {
	return st.states[len(st.states)-1]
}

// Save pushes a clone of the current state (q operator).
func (st *Stack) Save() {
	st.states = append(st.states, st.Current().Clone())
}

// Restore pops the top state (Q operator). Popping the last remaining
// state is an underflow.
func (st *Stack) Restore() error {
	if len(st.states) <= 1 {
		return fmt.Errorf("graphics state stack underflow")
	}
	st.states = st.states[:len(st.states)-1]
	return nil
}

// Size returns the number of states on the stack.
func (st *Stack) Size() int {
	return len(st.states)
}
