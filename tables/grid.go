package tables

import (
	"math"
	"sort"

	"github.com/tsawler/vellum/graphics"
	"github.com/tsawler/vellum/model"
)

// GridDetector assembles table grids from drawn lines alone, without
// reference to text. Lines aligned on the same axis within the
// tolerance are grouped into one rule; enough intersecting horizontal
// and vertical rules form a grid hypothesis.
type GridDetector struct {
	// AlignmentTolerance is the axis distance, in points, within
	// which lines merge into one rule.
	AlignmentTolerance float64

	// MinAlignedLines is the minimum number of rules per axis.
	MinAlignedLines int

	// MinLineLength discards short decorative strokes.
	MinLineLength float64
}

// NewGridDetector returns a detector with the default settings.
func NewGridDetector() *GridDetector {
	return &GridDetector{
		AlignmentTolerance: 3,
		MinAlignedLines:    2,
		MinLineLength:      10,
	}
}

// GridHypothesis is a candidate table grid assembled from rules.
type GridHypothesis struct {
	BBox model.BBox

	// RowLines holds the Y positions of horizontal rules, top to
	// bottom. ColLines holds the X positions of vertical rules,
	// left to right.
	RowLines []float64
	ColLines []float64

	Confidence float64
	Rows       int
	Cols       int

	// Bordered reports rules on all four outer edges.
	Bordered bool
}

// alignedGroup is a set of lines sharing one axis position.
type alignedGroup struct {
	position  float64
	lines     []graphics.Line
	minExtent float64
	maxExtent float64
}

// Detect returns grid hypotheses found among the lines. Only lines
// classified horizontal or vertical participate.
func (gd *GridDetector) Detect(lines []graphics.Line) []*GridHypothesis {
	var horizontals, verticals []graphics.Line
	for _, line := range lines {
		if lineLength(line) < gd.MinLineLength {
			continue
		}
		switch {
		case line.IsHorizontal:
			horizontals = append(horizontals, line)
		case line.IsVertical:
			verticals = append(verticals, line)
		}
	}
	if len(horizontals) < gd.MinAlignedLines || len(verticals) < gd.MinAlignedLines {
		return nil
	}

	hGroups := gd.groupAligned(horizontals, true)
	vGroups := gd.groupAligned(verticals, false)
	if len(hGroups) < gd.MinAlignedLines || len(vGroups) < gd.MinAlignedLines {
		return nil
	}
	return gd.findGrids(hGroups, vGroups)
}

// groupAligned merges lines whose axis positions fall within the
// tolerance, tracking a running average position per group.
func (gd *GridDetector) groupAligned(lines []graphics.Line, horizontal bool) []alignedGroup {
	sorted := append([]graphics.Line(nil), lines...)
	sort.Slice(sorted, func(i, j int) bool {
		return axisPosition(sorted[i], horizontal) < axisPosition(sorted[j], horizontal)
	})

	var groups []alignedGroup
	current := alignedGroup{position: axisPosition(sorted[0], horizontal), lines: []graphics.Line{sorted[0]}}
	for _, line := range sorted[1:] {
		pos := axisPosition(line, horizontal)
		if pos-current.position <= gd.AlignmentTolerance {
			current.lines = append(current.lines, line)
			current.position += (pos - current.position) / float64(len(current.lines))
		} else {
			groups = append(groups, finishGroup(current, horizontal))
			current = alignedGroup{position: pos, lines: []graphics.Line{line}}
		}
	}
	return append(groups, finishGroup(current, horizontal))
}

// finishGroup computes the group extent along the perpendicular axis.
func finishGroup(g alignedGroup, horizontal bool) alignedGroup {
	g.minExtent = math.Inf(1)
	g.maxExtent = math.Inf(-1)
	for _, line := range g.lines {
		var lo, hi float64
		if horizontal {
			lo = math.Min(line.Start.X, line.End.X)
			hi = math.Max(line.Start.X, line.End.X)
		} else {
			lo = math.Min(line.Start.Y, line.End.Y)
			hi = math.Max(line.Start.Y, line.End.Y)
		}
		g.minExtent = math.Min(g.minExtent, lo)
		g.maxExtent = math.Max(g.maxExtent, hi)
	}
	return g
}

// findGrids keeps the rules spanning at least half of the joint grid
// extent and builds one hypothesis from them.
func (gd *GridDetector) findGrids(hGroups, vGroups []alignedGroup) []*GridHypothesis {
	left, right := positionRange(vGroups)
	bottom, top := positionRange(hGroups)
	if right <= left || top <= bottom {
		return nil
	}

	relevantH := gd.filterByExtent(hGroups, left, right)
	relevantV := gd.filterByExtent(vGroups, bottom, top)
	if len(relevantH) < gd.MinAlignedLines || len(relevantV) < gd.MinAlignedLines {
		return nil
	}

	sort.Slice(relevantH, func(i, j int) bool { return relevantH[i].position > relevantH[j].position })
	sort.Slice(relevantV, func(i, j int) bool { return relevantV[i].position < relevantV[j].position })

	h := &GridHypothesis{
		BBox:     model.NewBBoxFromCorners(left, bottom, right, top),
		RowLines: groupPositions(relevantH),
		ColLines: groupPositions(relevantV),
		Rows:     len(relevantH) - 1,
		Cols:     len(relevantV) - 1,
	}
	if h.Rows < 1 || h.Cols < 1 {
		return nil
	}

	borders := 0
	if math.Abs(h.RowLines[0]-top) < gd.AlignmentTolerance {
		borders++
	}
	if math.Abs(h.RowLines[len(h.RowLines)-1]-bottom) < gd.AlignmentTolerance {
		borders++
	}
	if math.Abs(h.ColLines[0]-left) < gd.AlignmentTolerance {
		borders++
	}
	if math.Abs(h.ColLines[len(h.ColLines)-1]-right) < gd.AlignmentTolerance {
		borders++
	}
	h.Bordered = borders == 4
	h.Confidence = gd.hypothesisConfidence(h, borders)

	return []*GridHypothesis{h}
}

// hypothesisConfidence weighs cell count, spacing regularity, and
// border completeness into a 0 to 1 score.
func (gd *GridDetector) hypothesisConfidence(h *GridHypothesis, borders int) float64 {
	score := 0.0
	cells := h.Rows * h.Cols
	if cells >= 4 {
		score += 0.2
	}
	if cells >= 9 {
		score += 0.1
	}
	score += gd.spacingRegularity(h) * 0.3
	score += float64(borders) / 4 * 0.2
	return math.Min(1, score)
}

func (gd *GridDetector) spacingRegularity(h *GridHypothesis) float64 {
	rowScore := 1.0
	if h.Rows > 1 {
		heights := make([]float64, h.Rows)
		for i := range heights {
			heights[i] = h.RowLines[i] - h.RowLines[i+1]
		}
		rowScore = math.Max(0, 1-coefficientOfVariation(heights))
	}
	colScore := 1.0
	if h.Cols > 1 {
		widths := make([]float64, h.Cols)
		for i := range widths {
			widths[i] = h.ColLines[i+1] - h.ColLines[i]
		}
		colScore = math.Max(0, 1-coefficientOfVariation(widths))
	}
	return (rowScore + colScore) / 2
}

// filterByExtent keeps groups whose lines cover at least half of the
// grid span and overlap it.
func (gd *GridDetector) filterByExtent(groups []alignedGroup, lo, hi float64) []alignedGroup {
	required := (hi - lo) * 0.5
	var out []alignedGroup
	for _, g := range groups {
		if g.maxExtent-g.minExtent < required {
			continue
		}
		if math.Min(g.maxExtent, hi) > math.Max(g.minExtent, lo) {
			out = append(out, g)
		}
	}
	return out
}

func positionRange(groups []alignedGroup) (min, max float64) {
	min, max = groups[0].position, groups[0].position
	for _, g := range groups[1:] {
		min = math.Min(min, g.position)
		max = math.Max(max, g.position)
	}
	return min, max
}

func groupPositions(groups []alignedGroup) []float64 {
	out := make([]float64, len(groups))
	for i, g := range groups {
		out[i] = g.position
	}
	return out
}

func axisPosition(line graphics.Line, horizontal bool) float64 {
	if horizontal {
		return (line.Start.Y + line.End.Y) / 2
	}
	return (line.Start.X + line.End.X) / 2
}

func lineLength(line graphics.Line) float64 {
	return math.Hypot(line.End.X-line.Start.X, line.End.Y-line.Start.Y)
}

// coefficientOfVariation is the standard deviation over the mean.
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}
