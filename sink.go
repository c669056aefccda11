package vellum

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
)

// multiSink fans engine events out to every registered sink. Error
// hooks stop at the first failing sink; an annotation renders only
// when every sink accepts it.
type multiSink struct {
	sinks []interpreter.EventSink
}

func (m *multiSink) BeginText(it *interpreter.Interpreter) {
	for _, s := range m.sinks {
		s.BeginText(it)
	}
}

func (m *multiSink) EndText(it *interpreter.Interpreter) {
	for _, s := range m.sinks {
		s.EndText(it)
	}
}

func (m *multiSink) ShowGlyph(it *interpreter.Interpreter, g interpreter.Glyph) error {
	for _, s := range m.sinks {
		if err := s.ShowGlyph(it, g); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiSink) PaintPath(it *interpreter.Interpreter, p interpreter.PaintEvent) error {
	for _, s := range m.sinks {
		if err := s.PaintPath(it, p); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiSink) ShowImage(it *interpreter.Interpreter, img interpreter.ImageEvent) error {
	for _, s := range m.sinks {
		if err := s.ShowImage(it, img); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiSink) Shading(it *interpreter.Interpreter, name string, shading core.Dict) error {
	for _, s := range m.sinks {
		if err := s.Shading(it, name, shading); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiSink) BeginMarkedContent(it *interpreter.Interpreter, tag string, properties core.Dict) {
	for _, s := range m.sinks {
		s.BeginMarkedContent(it, tag, properties)
	}
}

func (m *multiSink) EndMarkedContent(it *interpreter.Interpreter) {
	for _, s := range m.sinks {
		s.EndMarkedContent(it)
	}
}

func (m *multiSink) Unsupported(it *interpreter.Interpreter, op string, operands []core.Object) {
	for _, s := range m.sinks {
		s.Unsupported(it, op, operands)
	}
}

func (m *multiSink) OperatorError(it *interpreter.Interpreter, op string, operands []core.Object, err error) {
	for _, s := range m.sinks {
		s.OperatorError(it, op, operands, err)
	}
}

func (m *multiSink) Annotation(it *interpreter.Interpreter, annot interpreter.Annotation) bool {
	for _, s := range m.sinks {
		if !s.Annotation(it, annot) {
			return false
		}
	}
	return true
}

// collector gathers what the facade needs beyond the text and
// graphics sinks: warnings, shown images, and whether any glyph
// appeared on the page.
type collector struct {
	interpreter.BaseSink

	glyphs   int
	images   []*core.Stream
	warnings []Warning
}

func (c *collector) ShowGlyph(*interpreter.Interpreter, interpreter.Glyph) error {
	c.glyphs++
	return nil
}

func (c *collector) ShowImage(_ *interpreter.Interpreter, img interpreter.ImageEvent) error {
	c.images = append(c.images, img.Stream)
	return nil
}

func (c *collector) Unsupported(_ *interpreter.Interpreter, op string, _ []core.Object) {
	c.warnings = append(c.warnings, Warning{Op: op})
}

func (c *collector) OperatorError(_ *interpreter.Interpreter, op string, _ []core.Object, err error) {
	c.warnings = append(c.warnings, Warning{Op: op, Err: err})
}

func (c *collector) reset() {
	c.glyphs = 0
	c.images = nil
	c.warnings = nil
}
