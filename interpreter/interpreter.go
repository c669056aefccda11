package interpreter

import (
	"math"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/graphicsstate"
	"github.com/tsawler/vellum/logging"
	"github.com/tsawler/vellum/model"
)

// Handler processes one operator. Handlers receive the interpreter
// explicitly; they hold no state between invocations.
type Handler interface {
	// Name returns the operator this handler is registered for.
	Name() string

	// Process runs the operator against the interpreter.
	Process(it *Interpreter, operands []core.Object) error
}

// Page is the capability surface the engine consumes from a page.
type Page interface {
	// CropBox returns the visible region in default user space.
	CropBox() model.BBox

	// Matrix maps default user space to device space, accounting
	// for rotation.
	Matrix() model.Matrix

	// HasContents reports whether the page has any content stream.
	HasContents() bool

	// Contents returns the decoded content-stream bytes. Multiple
	// streams are joined with whitespace.
	Contents() ([]byte, error)

	// Resources returns the page resource dictionary, or nil.
	Resources() core.Dict

	// Annotations returns the page's annotations.
	Annotations() []Annotation
}

// Stream is a nested content stream with optional own resources.
type Stream interface {
	Data() ([]byte, error)
	Resources() core.Dict
}

// Form is a content stream with placement geometry: form XObjects,
// transparency groups, annotation appearances.
type Form interface {
	Stream
	Matrix() model.Matrix
	BBox() model.BBox
}

// Pattern is a tiling pattern content stream.
type Pattern interface {
	Stream
	Matrix() model.Matrix
	BBox() model.BBox
}

// Annotation is the capability surface for page annotations.
type Annotation interface {
	// Rect returns the annotation rectangle in default user space.
	Rect() model.BBox

	// Appearance returns the normal appearance stream, or nil.
	Appearance() Form
}

// ClipRule identifies a pending clipping-path request.
type ClipRule int

const (
	ClipNone ClipRule = iota
	ClipNonZero
	ClipEvenOdd
)

// Interpreter drives content streams: it tokenizes, accumulates
// operands, dispatches operators, and maintains the graphics state,
// resource scope, and text matrices. Events flow to the sink. An
// Interpreter is reusable across pages but not safe for concurrent
// use.
type Interpreter struct {
	sink     EventSink
	handlers map[string]Handler
	resolver core.Resolver
	maxDepth int
	strict   bool

	stack         *graphicsstate.Stack
	resources     core.Dict
	page          Page
	initialMatrix model.Matrix

	// tm and tlm exist only between BT and ET
	tm  *model.Matrix
	tlm *model.Matrix

	level int

	path        *graphicsstate.Path
	pendingClip ClipRule
}

// New creates an interpreter delivering events to sink. A nil sink
// gets a no-op BaseSink. Register handlers before processing; the
// operators package provides the standard set.
func New(sink EventSink, opts ...Option) *Interpreter {
	if sink == nil {
		sink = BaseSink{}
	}
	it := &Interpreter{
		sink:     sink,
		handlers: make(map[string]Handler),
		maxDepth: DefaultMaxRecursionDepth,
		stack:    graphicsstate.NewStack(graphicsstate.New(model.BBox{})),
		path:     graphicsstate.NewPath(),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Register installs a handler under its advertised name. Late
// registration overrides silently.
func (it *Interpreter) Register(h Handler) {
	it.handlers[h.Name()] = h
}

// Sink returns the event sink.
func (it *Interpreter) Sink() EventSink { return it.sink }

// Resolver returns the indirect-reference resolver, which may be
// nil.
func (it *Interpreter) Resolver() core.Resolver { return it.resolver }

// StrictMode reports whether lenient recovery is disabled.
func (it *Interpreter) StrictMode() bool { return it.strict }

// GS returns the current (top) graphics state.
func (it *Interpreter) GS() *graphicsstate.State {
	return it.stack.Current()
}

// SaveGS pushes a clone of the current graphics state (q).
func (it *Interpreter) SaveGS() {
	it.stack.Save()
}

// RestoreGS pops the graphics state (Q). Popping the last state
// fails with an EmptyGraphicsStackError.
func (it *Interpreter) RestoreGS() error {
	if err := it.stack.Restore(); err != nil {
		return &EmptyGraphicsStackError{}
	}
	return nil
}

// StackDepth returns the number of saved states above the base
// state.
func (it *Interpreter) StackDepth() int {
	return it.stack.Size() - 1
}

// Resources returns the effective resource dictionary.
func (it *Interpreter) Resources() core.Dict { return it.resources }

// Resource looks up a named resource in the given category of the
// effective scope. The result has indirect references resolved.
func (it *Interpreter) Resource(kind, name string) (core.Object, error) {
	if it.resources != nil {
		if sub, ok := core.Resolve(it.resources.Get(kind), it.resolver).(core.Dict); ok {
			if obj := core.Resolve(sub.Get(name), it.resolver); obj != nil {
				if _, isNull := obj.(core.Null); !isNull {
					return obj, nil
				}
			}
		}
	}
	return nil, &MissingResourceError{Kind: kind, Name: name}
}

// Page returns the current page, nil outside page processing.
func (it *Interpreter) Page() Page { return it.page }

// InitialMatrix returns the CTM in effect at the start of the
// currently executing stream.
func (it *Interpreter) InitialMatrix() model.Matrix { return it.initialMatrix }

// InText reports whether a BT..ET text object is open.
func (it *Interpreter) InText() bool { return it.tm != nil }

// TextMatrix returns Tm; ok is false outside a text object.
func (it *Interpreter) TextMatrix() (model.Matrix, bool) {
	if it.tm == nil {
		return model.Matrix{}, false
	}
	return *it.tm, true
}

// LineMatrix returns Tlm; ok is false outside a text object.
func (it *Interpreter) LineMatrix() (model.Matrix, bool) {
	if it.tlm == nil {
		return model.Matrix{}, false
	}
	return *it.tlm, true
}

// SetTextMatrix sets Tm, opening an implicit text object if none is
// open.
func (it *Interpreter) SetTextMatrix(m model.Matrix) {
	if it.tm == nil {
		it.tm = new(model.Matrix)
	}
	*it.tm = m
}

// SetLineMatrix sets Tlm, opening an implicit text object if none is
// open.
func (it *Interpreter) SetLineMatrix(m model.Matrix) {
	if it.tlm == nil {
		it.tlm = new(model.Matrix)
	}
	*it.tlm = m
}

// BeginTextObject initializes both text matrices to identity (BT)
// and notifies the sink.
func (it *Interpreter) BeginTextObject() {
	m := model.Identity()
	it.tm = &m
	l := model.Identity()
	it.tlm = &l
	it.sink.BeginText(it)
}

// EndTextObject clears both text matrices (ET) and notifies the
// sink.
func (it *Interpreter) EndTextObject() {
	it.tm = nil
	it.tlm = nil
	it.sink.EndText(it)
}

// Level returns the nested-stream recursion depth.
func (it *Interpreter) Level() int { return it.level }

// MaxDepth returns the configured recursion ceiling.
func (it *Interpreter) MaxDepth() int { return it.maxDepth }

// IncreaseLevel increments the recursion depth.
func (it *Interpreter) IncreaseLevel() { it.level++ }

// DecreaseLevel decrements the recursion depth, logging if it goes
// negative.
func (it *Interpreter) DecreaseLevel() {
	it.level--
	if it.level < 0 {
		logging.Logger().Error("recursion level below zero", "level", it.level)
	}
}

// TransformedPoint maps a user-space point through the current CTM.
func (it *Interpreter) TransformedPoint(x, y float64) model.Point {
	return it.GS().CTM.Transform(model.Point{X: x, Y: y})
}

// TransformedWidth converts a user-space stroke width to a
// device-neutral width using the CTM's scale and shear components.
func (it *Interpreter) TransformedWidth(w float64) float64 {
	m := it.GS().CTM
	x := m[0] + m[2]
	y := m[1] + m[3]
	return w * math.Sqrt((x*x+y*y)/2)
}

// SetLineDashPattern installs a dash pattern (d), clamping a
// negative phase to zero.
func (it *Interpreter) SetLineDashPattern(array []float64, phase float64) {
	if phase < 0 {
		logging.Logger().Warn("dash phase is negative, clamping to 0", "phase", phase)
		phase = 0
	}
	it.GS().Dash = graphicsstate.DashPattern{Array: array, Phase: phase}
}

// Path returns the path under construction.
func (it *Interpreter) Path() *graphicsstate.Path { return it.path }

// SetPendingClip records a W or W* request; the clip applies after
// the next painting operator.
func (it *Interpreter) SetPendingClip(rule ClipRule) {
	it.pendingClip = rule
}

// PendingClip returns the pending clip rule.
func (it *Interpreter) PendingClip() ClipRule { return it.pendingClip }

// PaintPath consumes the current path: the sink observes the paint
// event with the clip still in its pre-paint state, then any pending
// clip is intersected in, and the path resets.
func (it *Interpreter) PaintPath(stroke, fill, evenOdd bool) error {
	ev := PaintEvent{
		Path:    it.path,
		Stroke:  stroke,
		Fill:    fill,
		EvenOdd: evenOdd,
		State:   it.GS(),
	}
	err := it.sink.PaintPath(it, ev)

	if it.pendingClip != ClipNone {
		if !it.path.IsEmpty() {
			box := it.path.Bounds().Transform(it.GS().CTM)
			it.GS().IntersectClip(box)
		}
		it.pendingClip = ClipNone
	}
	it.path = graphicsstate.NewPath()
	return err
}
