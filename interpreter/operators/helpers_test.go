package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/model"
)

// stubPage is a minimal page for driving content through the engine.
type stubPage struct {
	contents  []byte
	resources core.Dict
	crop      model.BBox
	matrix    model.Matrix
}

func newStubPage(contents string, resources core.Dict) *stubPage {
	return &stubPage{
		contents:  []byte(contents),
		resources: resources,
		crop:      model.NewBBox(0, 0, 612, 792),
		matrix:    model.Identity(),
	}
}

func (p *stubPage) CropBox() model.BBox                  { return p.crop }
func (p *stubPage) Matrix() model.Matrix                 { return p.matrix }
func (p *stubPage) HasContents() bool                    { return len(p.contents) > 0 }
func (p *stubPage) Contents() ([]byte, error)            { return p.contents, nil }
func (p *stubPage) Resources() core.Dict                 { return p.resources }
func (p *stubPage) Annotations() []interpreter.Annotation { return nil }

// recordingSink captures engine events for assertions.
type recordingSink struct {
	interpreter.BaseSink

	glyphs      []recordedGlyph
	paints      []recordedPaint
	images      []string
	marked      []string
	shades      []string
	errops      []string
	unsupported []string
}

type recordedGlyph struct {
	text string
	trm  model.Matrix
	size float64
}

type recordedPaint struct {
	stroke  bool
	fill    bool
	evenOdd bool
	bounds  model.BBox
	fillRGB [3]float64
}

func (s *recordingSink) ShowGlyph(it *interpreter.Interpreter, g interpreter.Glyph) error {
	s.glyphs = append(s.glyphs, recordedGlyph{
		text: g.Text,
		trm:  g.Trm,
		size: g.State.Text.FontSize,
	})
	return nil
}

func (s *recordingSink) PaintPath(it *interpreter.Interpreter, p interpreter.PaintEvent) error {
	s.paints = append(s.paints, recordedPaint{
		stroke:  p.Stroke,
		fill:    p.Fill,
		evenOdd: p.EvenOdd,
		bounds:  p.Path.Bounds(),
		fillRGB: p.State.FillColor.RGB(),
	})
	return nil
}

func (s *recordingSink) ShowImage(it *interpreter.Interpreter, img interpreter.ImageEvent) error {
	s.images = append(s.images, img.Name)
	return nil
}

func (s *recordingSink) Shading(it *interpreter.Interpreter, name string, shading core.Dict) error {
	s.shades = append(s.shades, name)
	return nil
}

func (s *recordingSink) BeginMarkedContent(it *interpreter.Interpreter, tag string, properties core.Dict) {
	s.marked = append(s.marked, "begin:"+tag)
}

func (s *recordingSink) EndMarkedContent(it *interpreter.Interpreter) {
	s.marked = append(s.marked, "end")
}

func (s *recordingSink) OperatorError(it *interpreter.Interpreter, op string, operands []core.Object, err error) {
	s.errops = append(s.errops, op)
}

func (s *recordingSink) Unsupported(it *interpreter.Interpreter, op string, operands []core.Object) {
	s.unsupported = append(s.unsupported, op)
}

// run pushes a content stream through a fresh engine and returns the
// sink and engine for inspection.
func run(t interface{ Fatalf(string, ...interface{}) }, contents string, resources core.Dict, opts ...interpreter.Option) (*recordingSink, *interpreter.Interpreter) {
	sink := &recordingSink{}
	it := interpreter.New(sink, opts...)
	RegisterStandard(it)
	if err := it.ProcessPage(newStubPage(contents, resources)); err != nil {
		t.Fatalf("ProcessPage failed: %v", err)
	}
	return sink, it
}

func helveticaResources() core.Dict {
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

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
