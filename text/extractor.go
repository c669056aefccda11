// Package text extracts positioned text from content streams. The
// Extractor is an interpreter sink: it assembles glyph events into
// fragments, groups fragments into lines, and joins lines with
// direction-aware ordering and adaptive word spacing.
package text

import (
	"sort"
	"strings"

	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/model"
)

// TextFragment is a run of text at a device-space position.
type TextFragment struct {
	Text      string
	X, Y      float64
	Width     float64
	Height    float64
	FontName  string
	FontSize  float64
	Direction Direction
}

// Extractor accumulates text fragments from interpreter glyph events.
// Register it as the engine sink, process one or more pages, then call
// Text or Fragments.
type Extractor struct {
	interpreter.BaseSink

	fragments []TextFragment
	pending   *run
	spaceEm   map[string]float64
}

// run is a fragment under construction. Consecutive glyphs extend it
// while they continue the pen position; any jump closes it.
type run struct {
	text     strings.Builder
	x, y     float64
	end      float64
	height   float64
	fontName string
	fontSize float64
}

// NewExtractor returns an empty extractor.
func NewExtractor() *Extractor {
	return &Extractor{spaceEm: make(map[string]float64)}
}

// ShowGlyph implements interpreter.EventSink.
func (e *Extractor) ShowGlyph(it *interpreter.Interpreter, g interpreter.Glyph) error {
	x, y := g.Trm[4], g.Trm[5]
	size := g.Trm.ScalingFactorY()
	adv := g.Trm.TransformVector(model.Vector{X: g.Displacement.X, Y: g.Displacement.Y})
	name := g.Font.Name()

	if _, ok := e.spaceEm[name]; !ok {
		e.spaceEm[name] = g.Font.Displacement(32).X
	}

	if p := e.pending; p != nil {
		gap := x - p.end
		sameLine := abs(y-p.y) <= p.height*0.2
		if sameLine && p.fontName == name && gap >= -size*0.1 && gap <= size*0.3 {
			p.text.WriteString(g.Text)
			p.end = x + adv.X
			if size > p.height {
				p.height = size
			}
			return nil
		}
		e.flush()
	}

	p := &run{x: x, y: y, end: x + adv.X, height: size, fontName: name, fontSize: size}
	p.text.WriteString(g.Text)
	e.pending = p
	return nil
}

// EndText implements interpreter.EventSink. Closing a text object
// closes the fragment under construction.
func (e *Extractor) EndText(*interpreter.Interpreter) { e.flush() }

func (e *Extractor) flush() {
	p := e.pending
	if p == nil {
		return
	}
	e.pending = nil
	t := p.text.String()
	if t == "" {
		return
	}
	e.fragments = append(e.fragments, TextFragment{
		Text:      t,
		X:         p.x,
		Y:         p.y,
		Width:     p.end - p.x,
		Height:    p.height,
		FontName:  p.fontName,
		FontSize:  p.fontSize,
		Direction: DetectDirection(t),
	})
}

// Fragments returns the fragments collected so far.
func (e *Extractor) Fragments() []TextFragment {
	e.flush()
	return e.fragments
}

// Reset discards collected fragments so the extractor can be reused
// for another page.
func (e *Extractor) Reset() {
	e.flush()
	e.fragments = nil
	e.pending = nil
}

// Line is a baseline group of fragments in reading order, with the
// assembled line text.
type Line struct {
	Fragments []TextFragment
	Direction Direction
	Text      string
}

// Lines groups the collected fragments by baseline and puts each line
// in reading order.
func (e *Extractor) Lines() []Line {
	frags := e.Fragments()
	if len(frags) == 0 {
		return nil
	}

	var out []Line
	for _, group := range groupLines(frags) {
		dir := lineDirection(group)
		ordered := readingOrder(group, dir)
		out = append(out, Line{
			Fragments: ordered,
			Direction: dir,
			Text:      e.lineText(ordered, dir),
		})
	}
	return out
}

// lineText joins an ordered line, inserting spaces where the
// horizontal gaps say a word boundary fell between fragments.
func (e *Extractor) lineText(ordered []TextFragment, dir Direction) string {
	metrics := measureLine(ordered, dir)
	var sb strings.Builder
	for i, frag := range ordered {
		sb.WriteString(frag.Text)
		if i < len(ordered)-1 {
			gap := horizontalGap(frag, ordered[i+1], dir)
			if e.wordBoundary(frag, ordered[i+1], gap, metrics) {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// Text assembles the collected fragments into plain text. Extra
// leading between lines becomes a paragraph break.
func (e *Extractor) Text() string {
	lines := e.Lines()
	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(line.Text)
		if i < len(lines)-1 {
			if ParagraphBreak(line, lines[i+1]) {
				sb.WriteString("\n\n")
			} else {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// ParagraphBreak reports whether the leading between two consecutive
// lines exceeds normal line spacing.
func ParagraphBreak(line, next Line) bool {
	a, b := line.Fragments[0], next.Fragments[0]
	return abs(b.Y-a.Y) > a.Height*1.5
}

// groupLines splits fragments into lines. A fragment belongs to the
// current line while its baseline stays within half the previous
// fragment's height.
func groupLines(frags []TextFragment) [][]TextFragment {
	lines := make([][]TextFragment, 0)
	current := []TextFragment{frags[0]}

	for i := 1; i < len(frags); i++ {
		prev := frags[i-1]
		if abs(frags[i].Y-prev.Y) <= prev.Height*0.5 {
			current = append(current, frags[i])
		} else {
			lines = append(lines, current)
			current = []TextFragment{frags[i]}
		}
	}
	return append(lines, current)
}

// lineDirection returns the dominant direction among the line's
// fragments, defaulting to LTR when nothing is strongly directional.
func lineDirection(line []TextFragment) Direction {
	ltr, rtl := 0, 0
	for _, frag := range line {
		switch frag.Direction {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	if rtl > ltr {
		return RTL
	}
	return LTR
}

// readingOrder sorts a line's fragments into visual reading order:
// ascending X for LTR, descending for RTL.
func readingOrder(line []TextFragment, dir Direction) []TextFragment {
	ordered := make([]TextFragment, len(line))
	copy(ordered, line)
	sort.SliceStable(ordered, func(i, j int) bool {
		if dir == RTL {
			return ordered[i].X > ordered[j].X
		}
		return ordered[i].X < ordered[j].X
	})
	return ordered
}

// horizontalGap is the distance between the trailing edge of frag and
// the leading edge of next along the reading direction. Negative
// values mean overlap.
func horizontalGap(frag, next TextFragment, dir Direction) float64 {
	if dir == RTL {
		return frag.X - (next.X + next.Width)
	}
	return next.X - (frag.X + frag.Width)
}

// lineMetrics summarizes a line's gap distribution so word-boundary
// thresholds can adapt to how the producer emitted text: whole words,
// single glyphs with explicit spaces, or single glyphs with spacing
// encoded purely as gaps.
type lineMetrics struct {
	characterLevel bool
	explicitSpaces bool
	baselineGap    float64 // 10th percentile of positive gaps
	typicalGap     float64 // 25th percentile of positive gaps
}

func measureLine(line []TextFragment, dir Direction) lineMetrics {
	var m lineMetrics
	if len(line) == 0 {
		return m
	}

	totalChars := 0
	for _, frag := range line {
		totalChars += len([]rune(frag.Text))
		if strings.TrimSpace(frag.Text) == "" || strings.Contains(frag.Text, " ") {
			m.explicitSpaces = true
		}
	}
	m.characterLevel = float64(totalChars)/float64(len(line)) <= 2.0

	gaps := make([]float64, 0, len(line)-1)
	for i := 0; i < len(line)-1; i++ {
		if strings.TrimSpace(line[i].Text) == "" || strings.TrimSpace(line[i+1].Text) == "" {
			continue
		}
		if gap := horizontalGap(line[i], line[i+1], dir); gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) > 0 {
		sort.Float64s(gaps)
		m.baselineGap = gaps[len(gaps)/10]
		p25 := len(gaps) / 4
		if p25 >= len(gaps) {
			p25 = len(gaps) - 1
		}
		m.typicalGap = gaps[p25]
	}
	return m
}

// wordBoundary decides whether a space belongs between two adjacent
// fragments.
func (e *Extractor) wordBoundary(frag, next TextFragment, gap float64, m lineMetrics) bool {
	if endsWithSpace(frag.Text) || startsWithSpace(next.Text) {
		return false
	}
	if gap < frag.FontSize*0.05 {
		return false
	}

	if m.characterLevel && m.explicitSpaces {
		// The producer emits real space glyphs; trust those and only
		// bridge gaps far outside the inter-character norm.
		if m.typicalGap > 0 {
			return gap >= m.typicalGap*5.0
		}
		return false
	}

	if m.characterLevel {
		threshold := frag.FontSize * 0.8
		if m.baselineGap > 0 && m.baselineGap*3.0 > threshold {
			threshold = m.baselineGap * 3.0
		}
		return gap >= threshold
	}

	return gap >= e.spaceWidth(frag.FontName, frag.FontSize)*0.5
}

// spaceWidth is the device width of a space in the named font, from
// the font's own metrics when it carries a space glyph.
func (e *Extractor) spaceWidth(fontName string, fontSize float64) float64 {
	if em, ok := e.spaceEm[fontName]; ok && em > 0 {
		return em * fontSize
	}
	return fontSize * 0.25
}

func endsWithSpace(s string) bool {
	return s != "" && isSpaceByte(s[len(s)-1])
}

func startsWithSpace(s string) bool {
	return s != "" && isSpaceByte(s[0])
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
