// Package graphics extracts vector elements from path paint events:
// stroked segments become lines, four-corner right-angled subpaths
// become rectangles. Table detectors and layout analysis consume the result.
package graphics

import (
	"math"

	"github.com/tsawler/vellum/graphicsstate"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/model"
)

// Line is a stroked segment in device space.
type Line struct {
	Start model.Point
	End   model.Point

	// Width is the stroke width after the CTM is applied.
	Width float64
	Color [3]float64

	IsHorizontal bool
	IsVertical   bool

	BBox model.BBox
}

// Rect is a painted rectangular subpath in device space.
type Rect struct {
	BBox model.BBox

	StrokeWidth float64
	StrokeColor [3]float64
	FillColor   [3]float64
	Filled      bool
	Stroked     bool
}

// Extractor collects lines and rectangles from paint events. Register
// it as the engine sink and process a page.
type Extractor struct {
	interpreter.BaseSink

	// AngleTolerance is the device-space deviation, in points, below
	// which a segment counts as horizontal or vertical.
	AngleTolerance float64

	lines []Line
	rects []Rect
}

// NewExtractor returns an extractor with a half-point axis tolerance.
func NewExtractor() *Extractor {
	return &Extractor{AngleTolerance: 0.5}
}

// PaintPath implements interpreter.EventSink.
func (e *Extractor) PaintPath(it *interpreter.Interpreter, ev interpreter.PaintEvent) error {
	if !ev.Stroke && !ev.Fill {
		return nil
	}
	device := ev.Path.Transform(ev.State.CTM)

	if bbox, ok := rectangularSubpath(device, e.AngleTolerance); ok {
		r := Rect{BBox: bbox, Filled: ev.Fill, Stroked: ev.Stroke}
		if ev.Stroke {
			r.StrokeWidth = it.TransformedWidth(ev.State.LineWidth)
			r.StrokeColor = ev.State.StrokeColor.RGB()
		}
		if ev.Fill {
			r.FillColor = ev.State.FillColor.RGB()
		}
		e.rects = append(e.rects, r)
		return nil
	}

	if ev.Stroke {
		e.collectSegments(it, device, ev.State)
	}
	return nil
}

// collectSegments walks the device-space path and records one Line
// per drawn segment. Curves are flattened to their chord, which is
// enough for ruling detection.
func (e *Extractor) collectSegments(it *interpreter.Interpreter, p *graphicsstate.Path, st *graphicsstate.State) {
	var current, start model.Point
	for _, seg := range p.Segments {
		switch seg.Type {
		case graphicsstate.PathMoveTo:
			current = seg.Points[0]
			start = current
		case graphicsstate.PathLineTo:
			e.lines = append(e.lines, e.newLine(it, st, current, seg.Points[0]))
			current = seg.Points[0]
		case graphicsstate.PathCurveTo:
			end := seg.Points[2]
			e.lines = append(e.lines, e.newLine(it, st, current, end))
			current = end
		case graphicsstate.PathClosePath:
			if !samePoint(current, start, 0.1) {
				e.lines = append(e.lines, e.newLine(it, st, current, start))
			}
			current = start
		}
	}
}

func (e *Extractor) newLine(it *interpreter.Interpreter, st *graphicsstate.State, start, end model.Point) Line {
	dx := end.X - start.X
	dy := end.Y - start.Y
	return Line{
		Start:        start,
		End:          end,
		Width:        it.TransformedWidth(st.LineWidth),
		Color:        st.StrokeColor.RGB(),
		IsHorizontal: math.Abs(dy) < e.AngleTolerance,
		IsVertical:   math.Abs(dx) < e.AngleTolerance,
		BBox:         model.NewBBoxFromCorners(start.X, start.Y, end.X, end.Y),
	}
}

// rectangularSubpath reports whether p is a single four-corner subpath
// with right angles, returning its bounding box. A closing h or a final
// lineto back to the start point is accepted but not required.
func rectangularSubpath(p *graphicsstate.Path, tolerance float64) (model.BBox, bool) {
	segs := p.Segments
	if len(segs) < 4 || segs[0].Type != graphicsstate.PathMoveTo {
		return model.BBox{}, false
	}

	corners := []model.Point{segs[0].Points[0]}
	for _, seg := range segs[1:] {
		switch seg.Type {
		case graphicsstate.PathLineTo:
			corners = append(corners, seg.Points[0])
		case graphicsstate.PathClosePath:
		default:
			return model.BBox{}, false
		}
	}
	if len(corners) == 5 && samePoint(corners[0], corners[4], 0.1) {
		corners = corners[:4]
	}
	if len(corners) != 4 || !rightAngled(corners, tolerance) {
		return model.BBox{}, false
	}

	box := model.NewBBoxFromCorners(corners[0].X, corners[0].Y, corners[2].X, corners[2].Y)
	for _, c := range corners {
		box = box.Union(model.BBox{X: c.X, Y: c.Y})
	}
	return box, true
}

// rightAngled checks that consecutive edges of the quad meet at
// roughly ninety degrees.
func rightAngled(corners []model.Point, tolerance float64) bool {
	for i := 0; i < 4; i++ {
		p0 := corners[i]
		p1 := corners[(i+1)%4]
		p2 := corners[(i+2)%4]

		v1x, v1y := p1.X-p0.X, p1.Y-p0.Y
		v2x, v2y := p2.X-p1.X, p2.Y-p1.Y

		len1 := math.Hypot(v1x, v1y)
		len2 := math.Hypot(v2x, v2y)
		if len1 < tolerance || len2 < tolerance {
			continue
		}
		cos := (v1x*v2x + v1y*v2y) / (len1 * len2)
		if math.Abs(cos) > 0.1 {
			return false
		}
	}
	return true
}

func samePoint(a, b model.Point, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance
}

// Lines returns every collected line.
func (e *Extractor) Lines() []Line { return e.lines }

// Rects returns every collected rectangle.
func (e *Extractor) Rects() []Rect { return e.rects }

// HorizontalLines returns the lines classified as horizontal.
func (e *Extractor) HorizontalLines() []Line {
	var out []Line
	for _, l := range e.lines {
		if l.IsHorizontal {
			out = append(out, l)
		}
	}
	return out
}

// VerticalLines returns the lines classified as vertical.
func (e *Extractor) VerticalLines() []Line {
	var out []Line
	for _, l := range e.lines {
		if l.IsVertical {
			out = append(out, l)
		}
	}
	return out
}

// LinesLongerThan filters lines by device-space length.
func (e *Extractor) LinesLongerThan(min float64) []Line {
	var out []Line
	for _, l := range e.lines {
		if math.Hypot(l.End.X-l.Start.X, l.End.Y-l.Start.Y) >= min {
			out = append(out, l)
		}
	}
	return out
}

// Reset discards collected elements so the extractor can be reused.
func (e *Extractor) Reset() {
	e.lines = nil
	e.rects = nil
}
