package interpreter

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/font"
	"github.com/tsawler/vellum/graphicsstate"
	"github.com/tsawler/vellum/model"
)

// Glyph is the event emitted for every decoded character code during
// text showing.
type Glyph struct {
	// Trm is the text rendering matrix at the moment the glyph is
	// placed. It maps text space to device space.
	Trm model.Matrix

	Font font.Font

	// Code is the decoded character code; Length is the number of
	// string bytes it occupied.
	Code   int
	Length int

	// Text is the Unicode text for the code, empty when unmapped.
	Text string

	// Displacement is the advance vector in text space.
	Displacement model.Vector

	// State is the graphics state at placement time. It is mutated
	// after the hook returns; clone for a durable copy.
	State *graphicsstate.State
}

// PaintEvent is emitted when a path-painting operator consumes the
// current path. Path coordinates are in user space; transform
// through State.CTM for device space.
type PaintEvent struct {
	Path    *graphicsstate.Path
	Stroke  bool
	Fill    bool
	EvenOdd bool

	// State is the graphics state at paint time; same mutation
	// caveat as Glyph.State.
	State *graphicsstate.State
}

// ImageEvent is emitted for image XObjects and inline images.
type ImageEvent struct {
	// Name is the XObject resource name, empty for inline images.
	Name   string
	Stream *core.Stream

	// State carries the CTM that maps the unit square to the
	// image's device-space placement.
	State *graphicsstate.State
}

// EventSink receives engine events. Implementations embed BaseSink
// and override the hooks they need. Hooks run on the engine's
// goroutine; any state the engine passes is valid only for the
// duration of the call.
type EventSink interface {
	// BeginText and EndText bracket BT/ET pairs.
	BeginText(it *Interpreter)
	EndText(it *Interpreter)

	// ShowGlyph is called once per decoded code, in order.
	ShowGlyph(it *Interpreter, g Glyph) error

	// PaintPath is called for S, s, f, F, f*, B, B*, b, b*, and n; for
	// n neither Stroke nor Fill is set.
	PaintPath(it *Interpreter, p PaintEvent) error

	// ShowImage is called for image XObjects and inline images.
	ShowImage(it *Interpreter, img ImageEvent) error

	// Shading is called for the sh operator.
	Shading(it *Interpreter, name string, shading core.Dict) error

	// BeginMarkedContent and EndMarkedContent bracket BMC/BDC..EMC.
	// Properties is nil for BMC.
	BeginMarkedContent(it *Interpreter, tag string, properties core.Dict)
	EndMarkedContent(it *Interpreter)

	// Unsupported is called when no handler is registered for an
	// operator.
	Unsupported(it *Interpreter, op string, operands []core.Object)

	// OperatorError observes every handler failure before the
	// engine's recovery policy runs.
	OperatorError(it *Interpreter, op string, operands []core.Object, err error)

	// Annotation filters which annotations ShowAnnotation renders.
	Annotation(it *Interpreter, annot Annotation) bool
}

// BaseSink is a no-op EventSink for embedding.
type BaseSink struct{}

func (BaseSink) BeginText(*Interpreter)                                {}
func (BaseSink) EndText(*Interpreter)                                  {}
func (BaseSink) ShowGlyph(*Interpreter, Glyph) error                   { return nil }
func (BaseSink) PaintPath(*Interpreter, PaintEvent) error              { return nil }
func (BaseSink) ShowImage(*Interpreter, ImageEvent) error              { return nil }
func (BaseSink) Shading(*Interpreter, string, core.Dict) error         { return nil }
func (BaseSink) BeginMarkedContent(*Interpreter, string, core.Dict)    {}
func (BaseSink) EndMarkedContent(*Interpreter)                         {}
func (BaseSink) Unsupported(*Interpreter, string, []core.Object)       {}
func (BaseSink) OperatorError(*Interpreter, string, []core.Object, error) {
}
func (BaseSink) Annotation(*Interpreter, Annotation) bool { return true }
