package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/font"
	"github.com/tsawler/vellum/graphicsstate"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/logging"
)

// BeginText handles BT.
type BeginText struct{}

func (BeginText) Name() string { return "BT" }

func (BeginText) Process(it *interpreter.Interpreter, _ []core.Object) error {
	if it.InText() {
		logging.Logger().Warn("BT inside an open text object")
	}
	it.BeginTextObject()
	return nil
}

// EndText handles ET.
type EndText struct{}

func (EndText) Name() string { return "ET" }

func (EndText) Process(it *interpreter.Interpreter, _ []core.Object) error {
	if !it.InText() {
		logging.Logger().Warn("ET without an open text object")
	}
	it.EndTextObject()
	return nil
}

// SetCharSpacing handles Tc.
type SetCharSpacing struct{}

func (SetCharSpacing) Name() string { return "Tc" }

func (SetCharSpacing) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("Tc", operands)
	if err != nil {
		return err
	}
	it.GS().Text.CharSpacing = v
	return nil
}

// SetWordSpacing handles Tw.
type SetWordSpacing struct{}

func (SetWordSpacing) Name() string { return "Tw" }

func (SetWordSpacing) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("Tw", operands)
	if err != nil {
		return err
	}
	it.GS().Text.WordSpacing = v
	return nil
}

// SetHorizontalScaling handles Tz.
type SetHorizontalScaling struct{}

func (SetHorizontalScaling) Name() string { return "Tz" }

func (SetHorizontalScaling) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("Tz", operands)
	if err != nil {
		return err
	}
	it.GS().Text.HorizontalScaling = v
	return nil
}

// SetLeading handles TL.
type SetLeading struct{}

func (SetLeading) Name() string { return "TL" }

func (SetLeading) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("TL", operands)
	if err != nil {
		return err
	}
	it.GS().Text.Leading = v
	return nil
}

// SetFont handles Tf, loading the named font resource.
type SetFont struct{}

func (SetFont) Name() string { return "Tf" }

func (SetFont) Process(it *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 2 {
		return &interpreter.MissingOperandError{Operator: "Tf", Have: len(operands), Want: 2}
	}
	fontName, ok := operands[0].(core.Name)
	if !ok {
		return &interpreter.MissingOperandError{Operator: "Tf", Have: len(operands), Want: 2}
	}
	size, ok := core.ToFloat(operands[1])
	if !ok {
		return &interpreter.MissingOperandError{Operator: "Tf", Have: len(operands), Want: 2}
	}

	ts := &it.GS().Text
	ts.FontName = string(fontName)
	ts.FontSize = size

	obj, err := it.Resource("Font", string(fontName))
	if err != nil {
		ts.Font = font.Fallback()
		return err
	}
	dict, ok := obj.(core.Dict)
	if !ok {
		ts.Font = font.Fallback()
		return &interpreter.MissingResourceError{Kind: "Font", Name: string(fontName)}
	}
	f, err := font.FromDict(dict, it.Resolver())
	if err != nil {
		logging.Logger().Warn("loading font, using fallback", "font", string(fontName), "error", err)
		ts.Font = font.Fallback()
		return nil
	}
	ts.Font = f
	return nil
}

// SetRenderingMode handles Tr.
type SetRenderingMode struct{}

func (SetRenderingMode) Name() string { return "Tr" }

func (SetRenderingMode) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("Tr", operands)
	if err != nil {
		return err
	}
	it.GS().Text.RenderingMode = graphicsstate.RenderingMode(int(v))
	return nil
}

// SetRise handles Ts.
type SetRise struct{}

func (SetRise) Name() string { return "Ts" }

func (SetRise) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("Ts", operands)
	if err != nil {
		return err
	}
	it.GS().Text.Rise = v
	return nil
}
