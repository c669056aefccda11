package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/font"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/logging"
	"github.com/tsawler/vellum/model"
)

// Save handles q.
type Save struct{}

func (Save) Name() string { return "q" }

func (Save) Process(it *interpreter.Interpreter, _ []core.Object) error {
	it.SaveGS()
	return nil
}

// Restore handles Q.
type Restore struct{}

func (Restore) Name() string { return "Q" }

func (Restore) Process(it *interpreter.Interpreter, _ []core.Object) error {
	return it.RestoreGS()
}

// Concat handles cm.
type Concat struct{}

func (Concat) Name() string { return "cm" }

func (Concat) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("cm", operands, 6)
	if err != nil {
		return err
	}
	it.GS().Concatenate(model.NewMatrix(v[0], v[1], v[2], v[3], v[4], v[5]))
	return nil
}

// SetLineWidth handles w.
type SetLineWidth struct{}

func (SetLineWidth) Name() string { return "w" }

func (SetLineWidth) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("w", operands)
	if err != nil {
		return err
	}
	it.GS().LineWidth = v
	return nil
}

// SetLineCap handles J.
type SetLineCap struct{}

func (SetLineCap) Name() string { return "J" }

func (SetLineCap) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("J", operands)
	if err != nil {
		return err
	}
	it.GS().LineCap = int(v)
	return nil
}

// SetLineJoin handles j.
type SetLineJoin struct{}

func (SetLineJoin) Name() string { return "j" }

func (SetLineJoin) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("j", operands)
	if err != nil {
		return err
	}
	it.GS().LineJoin = int(v)
	return nil
}

// SetMiterLimit handles M.
type SetMiterLimit struct{}

func (SetMiterLimit) Name() string { return "M" }

func (SetMiterLimit) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("M", operands)
	if err != nil {
		return err
	}
	it.GS().MiterLimit = v
	return nil
}

// SetLineDash handles d.
type SetLineDash struct{}

func (SetLineDash) Name() string { return "d" }

func (SetLineDash) Process(it *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 2 {
		return &interpreter.MissingOperandError{Operator: "d", Have: len(operands), Want: 2}
	}
	arr, ok := operands[0].(core.Array)
	if !ok {
		return &interpreter.MissingOperandError{Operator: "d", Have: len(operands), Want: 2}
	}
	pattern, ok := arr.Floats()
	if !ok {
		return &interpreter.MissingOperandError{Operator: "d", Have: len(operands), Want: 2}
	}
	phase, ok := core.ToFloat(operands[1])
	if !ok {
		return &interpreter.MissingOperandError{Operator: "d", Have: len(operands), Want: 2}
	}
	it.SetLineDashPattern(pattern, phase)
	return nil
}

// SetRenderingIntent handles ri.
type SetRenderingIntent struct{}

func (SetRenderingIntent) Name() string { return "ri" }

func (SetRenderingIntent) Process(it *interpreter.Interpreter, operands []core.Object) error {
	n, err := name("ri", operands)
	if err != nil {
		return err
	}
	it.GS().RenderingIntent = n
	return nil
}

// SetFlatness handles i.
type SetFlatness struct{}

func (SetFlatness) Name() string { return "i" }

func (SetFlatness) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("i", operands)
	if err != nil {
		return err
	}
	it.GS().Flatness = v
	return nil
}

// SetExtGState handles gs, applying the entries of a named ExtGState
// dictionary to the current state.
type SetExtGState struct{}

func (SetExtGState) Name() string { return "gs" }

func (SetExtGState) Process(it *interpreter.Interpreter, operands []core.Object) error {
	n, err := name("gs", operands)
	if err != nil {
		return err
	}
	obj, err := it.Resource("ExtGState", n)
	if err != nil {
		return err
	}
	dict, ok := obj.(core.Dict)
	if !ok {
		return &interpreter.MissingResourceError{Kind: "ExtGState", Name: n}
	}
	applyExtGState(it, dict)
	return nil
}

func applyExtGState(it *interpreter.Interpreter, dict core.Dict) {
	gs := it.GS()
	r := it.Resolver()

	if v, ok := dict.GetFloat("LW"); ok {
		gs.LineWidth = v
	}
	if v, ok := dict.GetInt("LC"); ok {
		gs.LineCap = int(v)
	}
	if v, ok := dict.GetInt("LJ"); ok {
		gs.LineJoin = int(v)
	}
	if v, ok := dict.GetFloat("ML"); ok {
		gs.MiterLimit = v
	}
	if arr, ok := dict.GetArray("D"); ok && arr.Len() == 2 {
		if inner, ok := arr.Get(0).(core.Array); ok {
			if pattern, ok := inner.Floats(); ok {
				phase, _ := arr.GetFloat(1)
				it.SetLineDashPattern(pattern, phase)
			}
		}
	}
	if v, ok := dict.GetName("RI"); ok {
		gs.RenderingIntent = string(v)
	}
	if v, ok := dict.GetFloat("FL"); ok {
		gs.Flatness = v
	}
	if v, ok := dict.GetFloat("CA"); ok {
		gs.StrokeAlpha = v
	}
	if v, ok := dict.GetFloat("ca"); ok {
		gs.FillAlpha = v
	}
	switch bm := core.Resolve(dict.Get("BM"), r).(type) {
	case core.Name:
		gs.BlendMode = string(bm)
	case core.Array:
		if v, ok := bm.GetName(0); ok {
			gs.BlendMode = string(v)
		}
	}
	switch sm := core.Resolve(dict.Get("SMask"), r).(type) {
	case core.Name:
		if string(sm) == "None" {
			gs.SoftMask = nil
		}
	case core.Dict:
		gs.SoftMask = sm
	}
	if arr, ok := dict.GetArray("Font"); ok && arr.Len() == 2 {
		if fd, ok := core.Resolve(arr.Get(0), r).(core.Dict); ok {
			f, err := font.FromDict(fd, r)
			if err != nil {
				logging.Logger().Warn("loading ExtGState font", "error", err)
			} else {
				gs.Text.Font = f
			}
		}
		if size, ok := arr.GetFloat(1); ok {
			gs.Text.FontSize = size
		}
	}
}
