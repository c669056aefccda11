package graphicsstate

import (
	"math"

	"github.com/tsawler/vellum/model"
)

// PathSegmentType identifies the kind of a path segment.
type PathSegmentType int

const (
	// PathMoveTo starts a new subpath
	PathMoveTo PathSegmentType = iota
	// PathLineTo draws a line to a point
	PathLineTo
	// PathCurveTo draws a cubic Bézier curve
	PathCurveTo
	// PathClosePath closes the current subpath
	PathClosePath
)

// PathSegment is a single segment of a path.
type PathSegment struct {
	Type PathSegmentType

	// For MoveTo and LineTo: single point.
	// For CurveTo: control point 1, control point 2, end point.
	Points []model.Point
}

// Path is the current path being constructed between path-segment
// operators and the painting operator that consumes it. Coordinates
// are in user space; the painting step transforms them through the
// CTM.
type Path struct {
	Segments []PathSegment

	// CurrentPoint is the current point in user space.
	CurrentPoint model.Point

	// SubpathStart is the start of the current subpath, where
	// ClosePath returns to.
	SubpathStart model.Point

	// HasCurrentPoint indicates whether a current point exists.
	HasCurrentPoint bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at the given point (m operator).
func (p *Path) MoveTo(x, y float64) {
	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, PathSegment{
		Type:   PathMoveTo,
		Points: []model.Point{pt},
	})
	p.CurrentPoint = pt
	p.SubpathStart = pt
	p.HasCurrentPoint = true
}

// LineTo appends a line from the current point to (x, y) (l
// operator). Without a current point the segment degrades to a
// moveto.
func (p *Path) LineTo(x, y float64) {
	if !p.HasCurrentPoint {
		p.MoveTo(x, y)
		return
	}

	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, PathSegment{
		Type:   PathLineTo,
		Points: []model.Point{pt},
	})
	p.CurrentPoint = pt
}

// CurveTo appends a cubic Bézier curve with control points (x1, y1)
// and (x2, y2) and end point (x3, y3) (c operator).
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !p.HasCurrentPoint {
		p.MoveTo(x1, y1)
	}

	p.Segments = append(p.Segments, PathSegment{
		Type: PathCurveTo,
		Points: []model.Point{
			{X: x1, Y: y1},
			{X: x2, Y: y2},
			{X: x3, Y: y3},
		},
	})
	p.CurrentPoint = model.Point{X: x3, Y: y3}
}

// CurveToV appends a cubic Bézier curve whose first control point is
// the current point (v operator).
func (p *Path) CurveToV(x2, y2, x3, y3 float64) {
	if !p.HasCurrentPoint {
		return
	}
	p.CurveTo(p.CurrentPoint.X, p.CurrentPoint.Y, x2, y2, x3, y3)
}

// CurveToY appends a cubic Bézier curve whose second control point
// coincides with the end point (y operator).
func (p *Path) CurveToY(x1, y1, x3, y3 float64) {
	if !p.HasCurrentPoint {
		return
	}
	p.CurveTo(x1, y1, x3, y3, x3, y3)
}

// ClosePath closes the current subpath (h operator).
func (p *Path) ClosePath() {
	if !p.HasCurrentPoint {
		return
	}

	p.Segments = append(p.Segments, PathSegment{
		Type: PathClosePath,
	})
	p.CurrentPoint = p.SubpathStart
}

// Rectangle appends a rectangle as a complete closed subpath (re
// operator).
func (p *Path) Rectangle(x, y, width, height float64) {
	p.MoveTo(x, y)
	p.LineTo(x+width, y)
	p.LineTo(x+width, y+height)
	p.LineTo(x, y+height)
	p.ClosePath()
}

// Clear resets the path to empty.
func (p *Path) Clear() {
	p.Segments = p.Segments[:0]
	p.HasCurrentPoint = false
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Clone deep-copies the path.
func (p *Path) Clone() *Path {
	out := &Path{
		CurrentPoint:    p.CurrentPoint,
		SubpathStart:    p.SubpathStart,
		HasCurrentPoint: p.HasCurrentPoint,
	}
	if p.Segments != nil {
		out.Segments = make([]PathSegment, len(p.Segments))
		for i, seg := range p.Segments {
			cp := seg
			if seg.Points != nil {
				cp.Points = append([]model.Point(nil), seg.Points...)
			}
			out.Segments[i] = cp
		}
	}
	return out
}

// Bounds returns the user-space bounding box of all path points.
// Bézier control points are included, which over-approximates curved
// subpaths but never under-approximates them. The zero box is
// returned for an empty path.
func (p *Path) Bounds() model.BBox {
	first := true
	var minX, minY, maxX, maxY float64
	for _, seg := range p.Segments {
		for _, pt := range seg.Points {
			if first {
				minX, maxX = pt.X, pt.X
				minY, maxY = pt.Y, pt.Y
				first = false
				continue
			}
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if first {
		return model.BBox{}
	}
	return model.BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Transform returns a copy of the path with every point mapped
// through m.
func (p *Path) Transform(m model.Matrix) *Path {
	out := p.Clone()
	for i := range out.Segments {
		for j, pt := range out.Segments[i].Points {
			out.Segments[i].Points[j] = m.Transform(pt)
		}
	}
	out.CurrentPoint = m.Transform(p.CurrentPoint)
	out.SubpathStart = m.Transform(p.SubpathStart)
	return out
}
