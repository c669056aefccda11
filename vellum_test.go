package vellum

import (
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/model"
)

type stubPage struct {
	contents  []byte
	resources core.Dict
}

func (p *stubPage) CropBox() model.BBox                   { return model.NewBBox(0, 0, 612, 792) }
func (p *stubPage) Matrix() model.Matrix                  { return model.Identity() }
func (p *stubPage) HasContents() bool                     { return len(p.contents) > 0 }
func (p *stubPage) Contents() ([]byte, error)             { return p.contents, nil }
func (p *stubPage) Resources() core.Dict                  { return p.resources }
func (p *stubPage) Annotations() []interpreter.Annotation { return nil }

func textPage(contents string) *stubPage {
	return &stubPage{
		contents: []byte(contents),
		resources: core.Dict{
			"Font": core.Dict{
				"F1": core.Dict{
					"Type":     core.Name("Font"),
					"Subtype":  core.Name("Type1"),
					"BaseFont": core.Name("Helvetica"),
				},
			},
		},
	}
}

func TestTextExtraction(t *testing.T) {
	ex := New()
	if err := ex.ProcessPage(textPage("BT /F1 12 Tf 72 720 Td (Hello world) Tj ET")); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	if got := ex.Text(); got != "Hello world" {
		t.Errorf("Text = %q, want %q", got, "Hello world")
	}

	pages := ex.Pages()
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	if pages[0].Number != 1 || pages[0].OCR {
		t.Errorf("page = %+v", pages[0])
	}
	if len(pages[0].Fragments) == 0 || len(pages[0].Lines) != 1 {
		t.Errorf("fragments = %d lines = %d", len(pages[0].Fragments), len(pages[0].Lines))
	}
}

func TestPagesJoined(t *testing.T) {
	ex := New()
	for _, c := range []string{
		"BT /F1 12 Tf 72 720 Td (one) Tj ET",
		"BT /F1 12 Tf 72 720 Td (two) Tj ET",
	} {
		if err := ex.ProcessPage(textPage(c)); err != nil {
			t.Fatalf("ProcessPage failed: %v", err)
		}
	}
	if got := ex.Text(); got != "one\n\ntwo" {
		t.Errorf("Text = %q", got)
	}
	if pages := ex.Pages(); pages[1].Number != 2 {
		t.Errorf("second page number = %d", pages[1].Number)
	}
}

func TestGraphicsCaptured(t *testing.T) {
	ex := New()
	if err := ex.ProcessPage(&stubPage{contents: []byte("0 0 m 100 0 l S 10 10 50 20 re f")}); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	p := ex.Pages()[0]
	if len(p.VectorLines) != 1 {
		t.Errorf("vector lines = %d, want 1", len(p.VectorLines))
	}
	if len(p.VectorRects) != 1 {
		t.Errorf("vector rects = %d, want 1", len(p.VectorRects))
	}
}

func TestTableDetection(t *testing.T) {
	// A fully ruled 2x2 grid over 100..300 x 500..600 with one short
	// text in each cell.
	content := "100 600 m 300 600 l S 100 550 m 300 550 l S 100 500 m 300 500 l S " +
		"100 500 m 100 600 l S 200 500 m 200 600 l S 300 500 m 300 600 l S " +
		"BT /F1 10 Tf 110 560 Td (ab) Tj 95 15 Td (cd) Tj -75 -60 Td (ef) Tj 110 -10 Td (gh) Tj ET"

	page := textPage(content)

	ex := New(WithTableDetection())
	if err := ex.ProcessPage(page); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	found := ex.Pages()[0].Tables
	if len(found) != 1 {
		t.Fatalf("tables = %d, want 1", len(found))
	}
	table := found[0]
	if table.RowCount() != 2 || table.ColCount() != 2 {
		t.Fatalf("table is %dx%d, want 2x2", table.RowCount(), table.ColCount())
	}
	if got := table.Cell(0, 0).Text; got != "ab" {
		t.Errorf("Cell(0,0) = %q, want ab", got)
	}
	if got := table.Cell(1, 1).Text; got != "gh" {
		t.Errorf("Cell(1,1) = %q, want gh", got)
	}
	if !table.Ruled {
		t.Error("ruled table not flagged")
	}

	plain := New()
	if err := plain.ProcessPage(page); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	if got := plain.Pages()[0].Tables; got != nil {
		t.Errorf("tables without detection enabled = %v, want nil", got)
	}
}

func TestUnsupportedOperatorWarns(t *testing.T) {
	ex := New()
	if err := ex.ProcessPage(&stubPage{contents: []byte("XYZ")}); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	ws := ex.Warnings()
	if len(ws) != 1 {
		t.Fatalf("warnings = %d, want 1", len(ws))
	}
	if ws[0].Page != 1 || ws[0].Op != "XYZ" || ws[0].Err != nil {
		t.Errorf("warning = %+v", ws[0])
	}
	if !strings.Contains(FormatWarnings(ws), "unsupported operator XYZ") {
		t.Errorf("FormatWarnings = %q", FormatWarnings(ws))
	}
}

func TestUnmatchedRestoreLenient(t *testing.T) {
	ex := New()
	if err := ex.ProcessPage(&stubPage{contents: []byte("Q")}); err != nil {
		t.Fatalf("lenient mode should absorb unmatched Q: %v", err)
	}
	ws := ex.Warnings()
	if len(ws) != 1 || ws[0].Op != "Q" || ws[0].Err == nil {
		t.Errorf("warnings = %+v", ws)
	}
}

func TestUnmatchedRestoreStrict(t *testing.T) {
	ex := New(WithStrictMode())
	if err := ex.ProcessPage(&stubPage{contents: []byte("Q")}); err == nil {
		t.Error("strict mode should fail on unmatched Q")
	}
}

type glyphCounter struct {
	interpreter.BaseSink
	count int
}

func (g *glyphCounter) ShowGlyph(*interpreter.Interpreter, interpreter.Glyph) error {
	g.count++
	return nil
}

func TestWithSink(t *testing.T) {
	counter := &glyphCounter{}
	ex := New(WithSink(counter))
	if err := ex.ProcessPage(textPage("BT /F1 12 Tf 0 0 Td (abc) Tj ET")); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	if counter.count != 3 {
		t.Errorf("extra sink saw %d glyphs, want 3", counter.count)
	}
}

func TestHTMLOutput(t *testing.T) {
	ex := New()
	if err := ex.ProcessPage(textPage("BT /F1 12 Tf 72 720 Td (Hello) Tj ET")); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	out, err := ex.HTML("Doc")
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(out, "<title>Doc</title>") || !strings.Contains(out, "<p>Hello</p>") {
		t.Errorf("HTML = %s", out)
	}
}

func TestReset(t *testing.T) {
	ex := New()
	if err := ex.ProcessPage(textPage("BT /F1 12 Tf 0 0 Td (abc) Tj ET")); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	ex.Reset()
	if len(ex.Pages()) != 0 || ex.Text() != "" || len(ex.Warnings()) != 0 {
		t.Error("Reset left content behind")
	}
	if err := ex.ProcessPage(textPage("BT /F1 12 Tf 0 0 Td (again) Tj ET")); err != nil {
		t.Fatalf("ProcessPage after Reset failed: %v", err)
	}
	if ex.Pages()[0].Number != 1 {
		t.Error("numbering not restarted after Reset")
	}
}

func TestMust(t *testing.T) {
	if got := Must("value", nil); got != "value" {
		t.Errorf("Must = %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must("", errors.New("boom"))
}
