package text

import (
	"testing"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/interpreter/operators"
	"github.com/tsawler/vellum/model"
)

// contentPage drives raw content bytes through the engine.
type contentPage struct {
	contents  []byte
	resources core.Dict
}

func (p *contentPage) CropBox() model.BBox                   { return model.NewBBox(0, 0, 612, 792) }
func (p *contentPage) Matrix() model.Matrix                  { return model.Identity() }
func (p *contentPage) HasContents() bool                     { return len(p.contents) > 0 }
func (p *contentPage) Contents() ([]byte, error)             { return p.contents, nil }
func (p *contentPage) Resources() core.Dict                  { return p.resources }
func (p *contentPage) Annotations() []interpreter.Annotation { return nil }

func helveticaRes() core.Dict {
	return core.Dict{
		"Font": core.Dict{
			"F1": core.Dict{
				"Type":     core.Name("Font"),
				"Subtype":  core.Name("Type1"),
				"BaseFont": core.Name("Helvetica"),
			},
		},
	}
}

func extract(t *testing.T, contents string) *Extractor {
	t.Helper()
	ex := NewExtractor()
	it := interpreter.New(ex)
	operators.RegisterStandard(it)
	page := &contentPage{contents: []byte(contents), resources: helveticaRes()}
	if err := it.ProcessPage(page); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	return ex
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func TestFragmentPosition(t *testing.T) {
	ex := extract(t, "BT /F1 12 Tf 100 700 Td (Hello) Tj ET")
	frags := ex.Fragments()
	if len(frags) != 1 {
		t.Fatalf("fragments = %d, want 1", len(frags))
	}
	f := frags[0]
	if f.Text != "Hello" {
		t.Errorf("Text = %q", f.Text)
	}
	if !near(f.X, 100) || !near(f.Y, 700) {
		t.Errorf("position = (%v, %v), want (100, 700)", f.X, f.Y)
	}
	if !near(f.FontSize, 12) || !near(f.Height, 12) {
		t.Errorf("size = %v height = %v, want 12", f.FontSize, f.Height)
	}
	if f.FontName != "Helvetica" {
		t.Errorf("FontName = %q", f.FontName)
	}
	if f.Direction != LTR {
		t.Errorf("Direction = %v, want LTR", f.Direction)
	}
}

func TestFragmentWidthFromMetrics(t *testing.T) {
	ex := extract(t, "BT /F1 12 Tf 0 0 Td (HH) Tj ET")
	frags := ex.Fragments()
	if len(frags) != 1 {
		t.Fatalf("fragments = %d, want 1", len(frags))
	}
	// Helvetica H is 722/1000 em wide
	want := 2 * 0.722 * 12
	if !near(frags[0].Width, want) {
		t.Errorf("Width = %v, want %v", frags[0].Width, want)
	}
}

func TestAdjacentShowsMerge(t *testing.T) {
	ex := extract(t, "BT /F1 12 Tf 0 0 Td (Hel) Tj (lo) Tj ET")
	frags := ex.Fragments()
	if len(frags) != 1 {
		t.Fatalf("fragments = %d, want 1", len(frags))
	}
	if frags[0].Text != "Hello" {
		t.Errorf("Text = %q, want Hello", frags[0].Text)
	}
}

func TestKerningAdjustmentMerges(t *testing.T) {
	ex := extract(t, "BT /F1 12 Tf 0 0 Td [(Hel) -20 (lo)] TJ ET")
	frags := ex.Fragments()
	if len(frags) != 1 {
		t.Fatalf("fragments = %d, want 1", len(frags))
	}
	if frags[0].Text != "Hello" {
		t.Errorf("Text = %q, want Hello", frags[0].Text)
	}
}

func TestWordGapSplitsFragments(t *testing.T) {
	ex := extract(t, "BT /F1 12 Tf 0 0 Td [(Hello) -600 (world)] TJ ET")
	frags := ex.Fragments()
	if len(frags) != 2 {
		t.Fatalf("fragments = %d, want 2", len(frags))
	}
	if frags[0].Text != "Hello" || frags[1].Text != "world" {
		t.Errorf("texts = %q, %q", frags[0].Text, frags[1].Text)
	}
	if frags[1].X <= frags[0].X+frags[0].Width {
		t.Errorf("second fragment at %v does not clear the first (end %v)",
			frags[1].X, frags[0].X+frags[0].Width)
	}
}

func TestExplicitSpaceGlyphMerges(t *testing.T) {
	ex := extract(t, "BT /F1 12 Tf 0 0 Td (a) Tj ( ) Tj (b) Tj ET")
	frags := ex.Fragments()
	if len(frags) != 1 {
		t.Fatalf("fragments = %d, want 1", len(frags))
	}
	if frags[0].Text != "a b" {
		t.Errorf("Text = %q, want %q", frags[0].Text, "a b")
	}
}

func TestCTMScalesFragments(t *testing.T) {
	ex := extract(t, "2 0 0 2 0 0 cm BT /F1 12 Tf 10 10 Td (A) Tj ET")
	frags := ex.Fragments()
	if len(frags) != 1 {
		t.Fatalf("fragments = %d, want 1", len(frags))
	}
	f := frags[0]
	if !near(f.X, 20) || !near(f.Y, 20) {
		t.Errorf("position = (%v, %v), want (20, 20)", f.X, f.Y)
	}
	if !near(f.FontSize, 24) {
		t.Errorf("FontSize = %v, want 24 under a 2x CTM", f.FontSize)
	}
}

func TestWordLevelSpacing(t *testing.T) {
	ex := extract(t, "BT /F1 12 Tf 0 0 Td [(Hello) -600 (world)] TJ ET")
	if got := ex.Text(); got != "Hello world" {
		t.Errorf("Text = %q, want %q", got, "Hello world")
	}
}

func TestOverlappingFragmentsNotSpaced(t *testing.T) {
	// the second show overdraws the first, as in fake-bold output
	ex := extract(t, "BT /F1 12 Tf 0 0 Td (Hi) Tj 0.01 0 Td (Hi) Tj ET")
	if got := ex.Text(); got != "HiHi" {
		t.Errorf("Text = %q, want %q", got, "HiHi")
	}
}

func TestCharacterLevelAdaptiveSpacing(t *testing.T) {
	e := NewExtractor()
	at := func(text string, x float64) TextFragment {
		return TextFragment{Text: text, X: x, Y: 700, Width: 8, Height: 10, FontName: "F", FontSize: 10, Direction: DetectDirection(text)}
	}
	e.fragments = []TextFragment{at("w", 0), at("o", 10), at("r", 20), at("d", 30), at("x", 60)}
	if got := e.Text(); got != "word x" {
		t.Errorf("Text = %q, want %q", got, "word x")
	}
}

func TestExplicitSpaceFragmentsTrusted(t *testing.T) {
	e := NewExtractor()
	e.fragments = []TextFragment{
		{Text: "h", X: 0, Y: 700, Width: 8, Height: 10, FontSize: 10},
		{Text: "i", X: 10, Y: 700, Width: 8, Height: 10, FontSize: 10},
		{Text: " ", X: 20, Y: 700, Width: 4, Height: 10, FontSize: 10},
		{Text: "y", X: 26, Y: 700, Width: 8, Height: 10, FontSize: 10},
		{Text: "o", X: 36, Y: 700, Width: 8, Height: 10, FontSize: 10},
	}
	if got := e.Text(); got != "hi yo" {
		t.Errorf("Text = %q, want %q", got, "hi yo")
	}
}

func TestRTLLineReordered(t *testing.T) {
	e := NewExtractor()
	e.fragments = []TextFragment{
		{Text: "שלום", X: 200, Y: 700, Width: 40, Height: 12, FontSize: 12, Direction: RTL},
		{Text: "עולם", X: 100, Y: 700, Width: 40, Height: 12, FontSize: 12, Direction: RTL},
	}
	if got := e.Text(); got != "שלום עולם" {
		t.Errorf("Text = %q, want rightmost fragment first", got)
	}
}

func TestReset(t *testing.T) {
	ex := extract(t, "BT /F1 12 Tf 0 0 Td (abc) Tj ET")
	if len(ex.Fragments()) == 0 {
		t.Fatal("no fragments before Reset")
	}
	ex.Reset()
	if len(ex.Fragments()) != 0 {
		t.Error("fragments survive Reset")
	}
	if ex.Text() != "" {
		t.Error("Text not empty after Reset")
	}
}
