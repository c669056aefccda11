package interpreter

import (
	"errors"
	"fmt"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/font"
	"github.com/tsawler/vellum/graphicsstate"
	"github.com/tsawler/vellum/logging"
	"github.com/tsawler/vellum/model"
)

// errSkipStream aborts a nested stream before execution without
// reporting an error. Resource and state bookkeeping still runs.
var errSkipStream = errors.New("skip stream")

// pushResources makes res the effective resource scope and returns
// the previous one. A nil res inherits the enclosing scope; if there
// is none, the page's resources apply, and failing that an empty
// dictionary so lookups fail cleanly rather than panic.
func (it *Interpreter) pushResources(res core.Dict) core.Dict {
	prev := it.resources
	switch {
	case res != nil:
		it.resources = res
	case prev != nil:
		// inherit
	case it.page != nil && it.page.Resources() != nil:
		it.resources = it.page.Resources()
	default:
		it.resources = core.Dict{}
	}
	return prev
}

func (it *Interpreter) popResources(prev core.Dict) {
	it.resources = prev
}

// saveStack replaces the graphics state stack with a fresh one seeded
// from a clone of the current state and returns the old stack.
func (it *Interpreter) saveStack() *graphicsstate.Stack {
	prev := it.stack
	it.stack = graphicsstate.NewStack(prev.Current().Clone())
	return prev
}

func (it *Interpreter) restoreStack(prev *graphicsstate.Stack) {
	it.stack = prev
}

// processStream runs a nested stream after the caller has arranged
// the graphics state. Resource scope, stack, and initial matrix are
// restored afterwards regardless of the outcome.
func (it *Interpreter) processStream(s Stream, arrange func() error) error {
	prevRes := it.pushResources(s.Resources())
	prevStack := it.saveStack()
	prevInitial := it.initialMatrix
	defer func() {
		it.initialMatrix = prevInitial
		it.restoreStack(prevStack)
		it.popResources(prevRes)
	}()

	if arrange != nil {
		if err := arrange(); err != nil {
			if errors.Is(err, errSkipStream) {
				return nil
			}
			return err
		}
	}

	data, err := s.Data()
	if err != nil {
		return fmt.Errorf("reading content stream: %w", err)
	}
	return it.processData(data)
}

// ProcessPage runs the content stream of a page. The graphics state
// is initialized from the page's crop box and rotation matrix.
func (it *Interpreter) ProcessPage(p Page) error {
	if !p.HasContents() {
		return nil
	}
	it.page = p
	defer func() { it.page = nil }()

	pageMatrix := p.Matrix()
	base := graphicsstate.New(p.CropBox().Transform(pageMatrix))
	base.CTM = pageMatrix
	it.stack = graphicsstate.NewStack(base)
	it.initialMatrix = pageMatrix
	it.tm = nil
	it.tlm = nil
	it.path = graphicsstate.NewPath()
	it.pendingClip = ClipNone

	prevRes := it.pushResources(p.Resources())
	defer it.popResources(prevRes)

	data, err := p.Contents()
	if err != nil {
		return fmt.Errorf("reading page contents: %w", err)
	}
	return it.processData(data)
}

// ProcessChildStream runs a stream in the context of the given page
// without the form-placement geometry. The current graphics state
// carries over.
func (it *Interpreter) ProcessChildStream(s Stream, p Page) error {
	if p == nil {
		return fmt.Errorf("child stream requires a page")
	}
	prevPage := it.page
	it.page = p
	defer func() { it.page = prevPage }()

	return it.processStream(s, nil)
}

// ShowForm draws a form XObject: its matrix is concatenated onto the
// CTM and its bounding box clips the content.
func (it *Interpreter) ShowForm(f Form) error {
	if it.page == nil {
		return fmt.Errorf("form requires a page context")
	}
	return it.processStream(f, func() error {
		gs := it.GS()
		gs.Concatenate(f.Matrix())
		it.initialMatrix = gs.CTM
		bbox := f.BBox()
		if bbox.IsValid() {
			gs.IntersectClip(bbox.Transform(gs.CTM))
		}
		return nil
	})
}

// ShowTransparencyGroup draws a transparency group like a form, with
// blending parameters reset to their defaults inside the group.
func (it *Interpreter) ShowTransparencyGroup(f Form) error {
	if it.page == nil {
		return fmt.Errorf("transparency group requires a page context")
	}
	return it.processStream(f, func() error {
		gs := it.GS()
		gs.Concatenate(f.Matrix())
		it.initialMatrix = gs.CTM
		bbox := f.BBox()
		if bbox.IsValid() {
			gs.IntersectClip(bbox.Transform(gs.CTM))
		}
		gs.BlendMode = "Normal"
		gs.StrokeAlpha = 1.0
		gs.FillAlpha = 1.0
		gs.SoftMask = nil
		return nil
	})
}

// ShowSoftMask draws a soft-mask group. The CTM is replaced with the
// matrix that was current when the enclosing gs operator ran, inside
// a save/restore pair.
func (it *Interpreter) ShowSoftMask(group Form, ctm model.Matrix) error {
	it.SaveGS()
	defer func() {
		if err := it.RestoreGS(); err != nil {
			logging.Logger().Error("restoring state after soft mask", "error", err)
		}
	}()
	it.GS().CTM = ctm
	return it.ShowTransparencyGroup(group)
}

// ShowTilingPattern runs a tiling pattern cell. The pattern matrix
// maps pattern space to the default user space of the stream the
// pattern is used in, so it composes with the initial matrix rather
// than the CTM. For uncolored patterns the caller supplies the color
// to paint with.
func (it *Interpreter) ShowTilingPattern(pat Pattern, color *graphicsstate.Color, colorSpace string) error {
	matrix := pat.Matrix().Multiply(it.initialMatrix)

	prevRes := it.pushResources(pat.Resources())
	prevStack := it.stack
	prevInitial := it.initialMatrix
	prevPath := it.path
	prevTm, prevTlm := it.tm, it.tlm
	defer func() {
		it.tm, it.tlm = prevTm, prevTlm
		it.path = prevPath
		it.initialMatrix = prevInitial
		it.stack = prevStack
		it.popResources(prevRes)
	}()

	base := graphicsstate.New(pat.BBox().Transform(matrix))
	base.CTM = matrix
	if color != nil {
		base.FillColor = *color
		base.FillColorSpace = colorSpace
		base.StrokeColor = *color
		base.StrokeColorSpace = colorSpace
	}
	it.stack = graphicsstate.NewStack(base)
	it.initialMatrix = matrix
	it.path = graphicsstate.NewPath()
	it.tm = nil
	it.tlm = nil

	data, err := pat.Data()
	if err != nil {
		return fmt.Errorf("reading pattern stream: %w", err)
	}
	return it.processData(data)
}

// ShowType3Glyph runs the char proc for a Type 3 glyph. The CTM is
// replaced with the font matrix composed onto the text rendering
// matrix; the glyph box is not clipped.
func (it *Interpreter) ShowType3Glyph(f font.Type3, code int, trm model.Matrix) error {
	proc := f.CharProc(code)
	if proc == nil {
		return nil
	}

	prevRes := it.pushResources(f.Resources())
	prevStack := it.saveStack()
	prevInitial := it.initialMatrix
	prevTm, prevTlm := it.tm, it.tlm
	defer func() {
		it.tm, it.tlm = prevTm, prevTlm
		it.initialMatrix = prevInitial
		it.restoreStack(prevStack)
		it.popResources(prevRes)
	}()

	gs := it.GS()
	gs.CTM = f.FontMatrix().Multiply(trm)
	it.initialMatrix = gs.CTM
	it.tm = nil
	it.tlm = nil

	data, err := proc.Decoded()
	if err != nil {
		return fmt.Errorf("decoding char proc: %w", err)
	}
	return it.processData(data)
}

// ShowAnnotation draws an annotation's normal appearance, mapped from
// its form bounding box onto the annotation rectangle. The sink's
// Annotation hook filters which annotations render.
func (it *Interpreter) ShowAnnotation(annot Annotation) error {
	if !it.sink.Annotation(it, annot) {
		return nil
	}
	ap := annot.Appearance()
	if ap == nil {
		return nil
	}

	rect := annot.Rect()
	return it.processStream(ap, func() error {
		tbox := ap.BBox().Transform(ap.Matrix())
		if !rect.IsValid() || !tbox.IsValid() {
			return errSkipStream
		}

		sx := rect.Width / tbox.Width
		sy := rect.Height / tbox.Height
		a := model.Translate(-tbox.X, -tbox.Y).
			Multiply(model.Scale(sx, sy)).
			Multiply(model.Translate(rect.X, rect.Y))
		aa := ap.Matrix().Multiply(a)

		gs := it.GS()
		gs.CTM = aa
		it.initialMatrix = aa
		bbox := ap.BBox()
		if bbox.IsValid() {
			gs.IntersectClip(bbox.Transform(aa))
		}
		return nil
	})
}
