package tables

import (
	"math"
	"sort"

	"github.com/tsawler/vellum/graphics"
	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/text"
)

// Config tunes table detection.
type Config struct {
	// MinRows and MinCols reject degenerate grids.
	MinRows int
	MinCols int

	// MinConfidence discards candidates scoring below it.
	MinConfidence float64

	// UseLines recovers ruled tables whose text alone does not
	// align into a grid.
	UseLines bool

	// MaxRowGap is the vertical gap, in points, that separates one
	// block of fragments from the next.
	MaxRowGap float64

	// AlignmentTolerance is the distance, in points, within which
	// edges count as aligned.
	AlignmentTolerance float64

	// DetectMergedCells grows Row/ColSpan for cells whose content
	// crosses grid boundaries.
	DetectMergedCells bool
}

// DefaultConfig returns the detection defaults.
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		MinConfidence:      0.5,
		UseLines:           true,
		MaxRowGap:          50,
		AlignmentTolerance: 2,
		DetectMergedCells:  true,
	}
}

// Cell is one table cell. Spans are 1 unless the cell content extends
// into neighboring grid cells.
type Cell struct {
	Text    string
	BBox    model.BBox
	RowSpan int
	ColSpan int
}

// Table is a detected table: a rectangular cell matrix in row-major
// order, rows running top to bottom.
type Table struct {
	BBox       model.BBox
	Confidence float64

	// Ruled reports that at least half of the grid boundaries are
	// drawn as graphical lines.
	Ruled bool

	Cells [][]Cell
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.Cells) }

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// Cell returns the cell at row, col, or nil when out of range.
func (t *Table) Cell(row, col int) *Cell {
	if row < 0 || row >= t.RowCount() || col < 0 || col >= t.ColCount() {
		return nil
	}
	return &t.Cells[row][col]
}

// Detector finds tables in extracted page content. Text fragments are
// clustered by vertical proximity and each cluster is tested for grid
// structure; with UseLines, ruled grids recover tables whose text
// edges are too ragged to form one.
type Detector struct {
	config Config
	ruled  *GridDetector
}

// NewDetector returns a detector with the default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig(), ruled: NewGridDetector()}
}

// Configure replaces the detector configuration.
func (d *Detector) Configure(config Config) { d.config = config }

// Detect finds tables among the page's text fragments and vector
// graphics. Stroked rectangles contribute their edges as ruling
// lines.
func (d *Detector) Detect(fragments []text.TextFragment, lines []graphics.Line, rects []graphics.Rect) []Table {
	rules := append(append([]graphics.Line(nil), lines...), rectEdges(rects)...)

	var tables []Table
	for _, cluster := range d.clusterFragments(fragments) {
		if t, ok := d.detectInCluster(cluster, rules); ok {
			tables = append(tables, t)
		}
	}

	if d.config.UseLines {
		for _, h := range d.ruled.Detect(rules) {
			if overlapsAny(h.BBox, tables) {
				continue
			}
			if t, ok := d.tableFromHypothesis(h, fragments); ok {
				tables = append(tables, t)
			}
		}
	}

	sort.Slice(tables, func(i, j int) bool { return tables[i].BBox.Top() > tables[j].BBox.Top() })
	return tables
}

// clusterFragments groups fragments by vertical proximity, top to
// bottom. A gap wider than MaxRowGap starts a new cluster.
func (d *Detector) clusterFragments(fragments []text.TextFragment) [][]text.TextFragment {
	if len(fragments) == 0 {
		return nil
	}
	sorted := append([]text.TextFragment(nil), fragments...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var clusters [][]text.TextFragment
	current := []text.TextFragment{sorted[0]}
	for _, frag := range sorted[1:] {
		prev := current[len(current)-1]
		if prev.Y-(frag.Y+frag.Height) > d.config.MaxRowGap {
			clusters = append(clusters, current)
			current = nil
		}
		current = append(current, frag)
	}
	return append(clusters, current)
}

func (d *Detector) detectInCluster(fragments []text.TextFragment, rules []graphics.Line) (Table, bool) {
	if len(fragments) < d.config.MinRows*d.config.MinCols {
		return Table{}, false
	}
	g := d.buildGrid(fragments, rules)
	if g == nil || g.rowCount() < d.config.MinRows || g.colCount() < d.config.MinCols {
		return Table{}, false
	}
	confidence := d.confidence(g, fragments)
	if confidence < d.config.MinConfidence {
		return Table{}, false
	}
	return d.buildTable(g, fragments, confidence), true
}

// tableFromHypothesis populates a ruled grid with the fragments whose
// centers fall inside it. A grid without any text is not a table.
func (d *Detector) tableFromHypothesis(h *GridHypothesis, fragments []text.TextFragment) (Table, bool) {
	if h.Rows < d.config.MinRows || h.Cols < d.config.MinCols || h.Confidence < d.config.MinConfidence {
		return Table{}, false
	}
	var inside []text.TextFragment
	for _, frag := range fragments {
		if h.BBox.Contains(fragBox(frag).Center()) {
			inside = append(inside, frag)
		}
	}
	if len(inside) == 0 {
		return Table{}, false
	}
	g := &grid{
		rows:   h.RowLines,
		cols:   h.ColLines,
		hRuled: allTrue(len(h.RowLines)),
		vRuled: allTrue(len(h.ColLines)),
	}
	return d.buildTable(g, inside, h.Confidence), true
}

// grid is a candidate cell lattice: row boundaries sorted top to
// bottom (descending Y), column boundaries left to right. hRuled and
// vRuled mark boundaries backed by drawn lines.
type grid struct {
	rows   []float64
	cols   []float64
	hRuled []bool
	vRuled []bool
}

func (g *grid) rowCount() int { return len(g.rows) - 1 }
func (g *grid) colCount() int { return len(g.cols) - 1 }

func (g *grid) cellBox(row, col int) model.BBox {
	return model.NewBBoxFromCorners(g.cols[col], g.rows[row+1], g.cols[col+1], g.rows[row])
}

func (g *grid) bounds() model.BBox {
	return model.NewBBoxFromCorners(g.cols[0], g.rows[len(g.rows)-1], g.cols[len(g.cols)-1], g.rows[0])
}

// locate returns the cell containing p, or ok=false when p lies
// outside the lattice.
func (g *grid) locate(p model.Point) (row, col int, ok bool) {
	row, col = -1, -1
	for i := 0; i < g.rowCount(); i++ {
		if p.Y <= g.rows[i] && p.Y >= g.rows[i+1] {
			row = i
			break
		}
	}
	for i := 0; i < g.colCount(); i++ {
		if p.X >= g.cols[i] && p.X <= g.cols[i+1] {
			col = i
			break
		}
	}
	return row, col, row >= 0 && col >= 0
}

func (g *grid) rulingScore() float64 {
	total := len(g.hRuled) + len(g.vRuled)
	if total == 0 {
		return 0
	}
	count := 0
	for _, r := range g.hRuled {
		if r {
			count++
		}
	}
	for _, r := range g.vRuled {
		if r {
			count++
		}
	}
	return float64(count) / float64(total)
}

// regularity scores how even the row heights and column widths are.
func (g *grid) regularity() float64 {
	if g.rowCount() < 2 || g.colCount() < 2 {
		return 0
	}
	heights := make([]float64, g.rowCount())
	for i := range heights {
		heights[i] = g.rows[i] - g.rows[i+1]
	}
	widths := make([]float64, g.colCount())
	for i := range widths {
		widths[i] = g.cols[i+1] - g.cols[i]
	}
	rowScore := math.Max(0, 1-coefficientOfVariation(heights))
	colScore := math.Max(0, 1-coefficientOfVariation(widths))
	return (rowScore + colScore) / 2
}

func (d *Detector) buildGrid(fragments []text.TextFragment, rules []graphics.Line) *grid {
	rows := d.rowBoundaries(fragments)
	if len(rows) < d.config.MinRows+1 {
		return nil
	}
	cols := d.columnBoundaries(fragments)
	if len(cols) < d.config.MinCols+1 {
		return nil
	}
	return &grid{
		rows:   rows,
		cols:   cols,
		hRuled: d.ruledRows(rows, rules),
		vRuled: d.ruledColumns(cols, rules),
	}
}

// rowBoundaries clusters the top and bottom edges of the fragments
// into row boundaries, sorted top to bottom.
func (d *Detector) rowBoundaries(fragments []text.TextFragment) []float64 {
	values := make([]float64, 0, len(fragments)*2)
	for _, frag := range fragments {
		box := fragBox(frag)
		values = append(values, box.Top(), box.Bottom())
	}
	sort.Float64s(values)
	clustered := d.clusterValues(values)
	sort.Sort(sort.Reverse(sort.Float64Slice(clustered)))
	return clustered
}

// columnBoundaries clusters the left and right edges of the fragments
// into column boundaries, sorted left to right.
func (d *Detector) columnBoundaries(fragments []text.TextFragment) []float64 {
	values := make([]float64, 0, len(fragments)*2)
	for _, frag := range fragments {
		box := fragBox(frag)
		values = append(values, box.Left(), box.Right())
	}
	sort.Float64s(values)
	return d.clusterValues(values)
}

// clusterValues merges sorted values closer than the alignment
// tolerance, averaging each merged pair into the cluster position.
func (d *Detector) clusterValues(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	clustered := []float64{values[0]}
	for _, v := range values[1:] {
		last := len(clustered) - 1
		if v-clustered[last] > d.config.AlignmentTolerance {
			clustered = append(clustered, v)
		} else {
			clustered[last] = (clustered[last] + v) / 2
		}
	}
	return clustered
}

func (d *Detector) ruledRows(rows []float64, rules []graphics.Line) []bool {
	ruled := make([]bool, len(rows))
	for i, y := range rows {
		for _, line := range rules {
			if !line.IsHorizontal {
				continue
			}
			if math.Abs(line.Start.Y-y) < d.config.AlignmentTolerance &&
				math.Abs(line.End.Y-y) < d.config.AlignmentTolerance {
				ruled[i] = true
				break
			}
		}
	}
	return ruled
}

func (d *Detector) ruledColumns(cols []float64, rules []graphics.Line) []bool {
	ruled := make([]bool, len(cols))
	for i, x := range cols {
		for _, line := range rules {
			if !line.IsVertical {
				continue
			}
			if math.Abs(line.Start.X-x) < d.config.AlignmentTolerance &&
				math.Abs(line.End.X-x) < d.config.AlignmentTolerance {
				ruled[i] = true
				break
			}
		}
	}
	return ruled
}

// confidence combines grid regularity, fragment alignment, visible
// ruling, and cell occupancy into a 0 to 1 score.
func (d *Detector) confidence(g *grid, fragments []text.TextFragment) float64 {
	return g.regularity()*0.3 +
		d.alignmentQuality(fragments, g)*0.3 +
		g.rulingScore()*0.2 +
		d.occupancy(fragments, g)*0.2
}

// alignmentQuality is the fraction of fragments with at least two
// edges on grid boundaries.
func (d *Detector) alignmentQuality(fragments []text.TextFragment, g *grid) float64 {
	if len(fragments) == 0 {
		return 0
	}
	aligned := 0
	for _, frag := range fragments {
		box := fragBox(frag)
		edges := 0
		if d.nearBoundary(box.Left(), g.cols) {
			edges++
		}
		if d.nearBoundary(box.Right(), g.cols) {
			edges++
		}
		if d.nearBoundary(box.Top(), g.rows) {
			edges++
		}
		if d.nearBoundary(box.Bottom(), g.rows) {
			edges++
		}
		if edges >= 2 {
			aligned++
		}
	}
	return float64(aligned) / float64(len(fragments))
}

func (d *Detector) nearBoundary(value float64, boundaries []float64) bool {
	for _, b := range boundaries {
		if math.Abs(value-b) < d.config.AlignmentTolerance*2 {
			return true
		}
	}
	return false
}

// occupancy is the fraction of cells holding at least one fragment.
func (d *Detector) occupancy(fragments []text.TextFragment, g *grid) float64 {
	occupied := make(map[[2]int]bool)
	for _, frag := range fragments {
		if row, col, ok := g.locate(fragBox(frag).Center()); ok {
			occupied[[2]int{row, col}] = true
		}
	}
	return float64(len(occupied)) / float64(g.rowCount()*g.colCount())
}

func (d *Detector) buildTable(g *grid, fragments []text.TextFragment, confidence float64) Table {
	cells := make([][]Cell, g.rowCount())
	for i := range cells {
		row := make([]Cell, g.colCount())
		for j := range row {
			row[j] = Cell{RowSpan: 1, ColSpan: 1}
		}
		cells[i] = row
	}

	type placement struct {
		row, col int
		frag     text.TextFragment
	}
	var placements []placement
	for _, frag := range fragments {
		if row, col, ok := g.locate(fragBox(frag).Center()); ok {
			placements = append(placements, placement{row, col, frag})
		}
	}
	sort.Slice(placements, func(i, j int) bool {
		a, b := placements[i], placements[j]
		if a.row != b.row {
			return a.row < b.row
		}
		return a.frag.X < b.frag.X
	})

	for _, p := range placements {
		cell := &cells[p.row][p.col]
		if cell.Text != "" {
			cell.Text += " "
		}
		cell.Text += p.frag.Text
		if cell.BBox.IsEmpty() {
			cell.BBox = fragBox(p.frag)
		} else {
			cell.BBox = cell.BBox.Union(fragBox(p.frag))
		}
	}

	if d.config.DetectMergedCells {
		d.expandSpans(cells, g)
	}

	return Table{
		BBox:       g.bounds(),
		Confidence: confidence,
		Ruled:      g.rulingScore() >= 0.5,
		Cells:      cells,
	}
}

// expandSpans grows spans for cells whose content box reaches past the
// next grid boundary. Touching a boundary is not enough; the overlap
// must exceed the alignment tolerance.
func (d *Detector) expandSpans(cells [][]Cell, g *grid) {
	for i := range cells {
		for j := range cells[i] {
			cell := &cells[i][j]
			if cell.BBox.IsEmpty() {
				continue
			}
			for k := i + 1; k < len(cells); k++ {
				if cell.BBox.Intersection(g.cellBox(k, j)).Height <= d.config.AlignmentTolerance {
					break
				}
				cell.RowSpan = k - i + 1
			}
			for k := j + 1; k < len(cells[i]); k++ {
				if cell.BBox.Intersection(g.cellBox(i, k)).Width <= d.config.AlignmentTolerance {
					break
				}
				cell.ColSpan = k - j + 1
			}
		}
	}
}

// rectEdges converts stroked rectangles into their four border lines
// so cell borders drawn as rects count as ruling.
func rectEdges(rects []graphics.Rect) []graphics.Line {
	var out []graphics.Line
	for _, r := range rects {
		if !r.Stroked || !r.BBox.IsValid() {
			continue
		}
		b := r.BBox
		out = append(out,
			edgeLine(model.Point{X: b.Left(), Y: b.Top()}, model.Point{X: b.Right(), Y: b.Top()}, r),
			edgeLine(model.Point{X: b.Left(), Y: b.Bottom()}, model.Point{X: b.Right(), Y: b.Bottom()}, r),
			edgeLine(model.Point{X: b.Left(), Y: b.Bottom()}, model.Point{X: b.Left(), Y: b.Top()}, r),
			edgeLine(model.Point{X: b.Right(), Y: b.Bottom()}, model.Point{X: b.Right(), Y: b.Top()}, r),
		)
	}
	return out
}

func edgeLine(start, end model.Point, r graphics.Rect) graphics.Line {
	return graphics.Line{
		Start:        start,
		End:          end,
		Width:        r.StrokeWidth,
		Color:        r.StrokeColor,
		IsHorizontal: start.Y == end.Y,
		IsVertical:   start.X == end.X,
		BBox:         model.NewBBoxFromCorners(start.X, start.Y, end.X, end.Y),
	}
}

func fragBox(f text.TextFragment) model.BBox {
	return model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

func overlapsAny(box model.BBox, tables []Table) bool {
	for _, t := range tables {
		if box.Intersects(t.BBox) {
			return true
		}
	}
	return false
}

func allTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}
