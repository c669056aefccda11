package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
)

// ShowText handles Tj.
type ShowText struct{}

func (ShowText) Name() string { return "Tj" }

func (ShowText) Process(it *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 1 {
		return &interpreter.MissingOperandError{Operator: "Tj", Have: 0, Want: 1}
	}
	s, ok := operands[0].(core.String)
	if !ok {
		return &interpreter.MissingOperandError{Operator: "Tj", Have: len(operands), Want: 1}
	}
	return it.ShowTextString([]byte(s))
}

// ShowTextLine handles ', which moves to the next line and shows.
type ShowTextLine struct{}

func (ShowTextLine) Name() string { return "'" }

func (ShowTextLine) Process(it *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 1 {
		return &interpreter.MissingOperandError{Operator: "'", Have: 0, Want: 1}
	}
	if err := (NextLine{}).Process(it, nil); err != nil {
		return err
	}
	return (ShowText{}).Process(it, operands)
}

// ShowTextLineAndSpace handles ", which sets word and character
// spacing, then behaves like '.
type ShowTextLineAndSpace struct{}

func (ShowTextLineAndSpace) Name() string { return "\"" }

func (ShowTextLineAndSpace) Process(it *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 3 {
		return &interpreter.MissingOperandError{Operator: "\"", Have: len(operands), Want: 3}
	}
	aw, ok1 := core.ToFloat(operands[0])
	ac, ok2 := core.ToFloat(operands[1])
	s, ok3 := operands[2].(core.String)
	if !ok1 || !ok2 || !ok3 {
		return &interpreter.MissingOperandError{Operator: "\"", Have: len(operands), Want: 3}
	}
	ts := &it.GS().Text
	ts.WordSpacing = aw
	ts.CharSpacing = ac
	if err := (NextLine{}).Process(it, nil); err != nil {
		return err
	}
	return it.ShowTextString([]byte(s))
}

// ShowTextAdjusted handles TJ.
type ShowTextAdjusted struct{}

func (ShowTextAdjusted) Name() string { return "TJ" }

func (ShowTextAdjusted) Process(it *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 1 {
		return &interpreter.MissingOperandError{Operator: "TJ", Have: 0, Want: 1}
	}
	arr, ok := operands[0].(core.Array)
	if !ok {
		return &interpreter.MissingOperandError{Operator: "TJ", Have: len(operands), Want: 1}
	}
	return it.ShowTextArray(arr)
}

// SetCharWidth handles d0 inside a Type 3 char proc. The engine takes
// glyph metrics from the font's width array, so the operands only
// need validating.
type SetCharWidth struct{}

func (SetCharWidth) Name() string { return "d0" }

func (SetCharWidth) Process(_ *interpreter.Interpreter, operands []core.Object) error {
	_, err := floats("d0", operands, 2)
	return err
}

// SetCharWidthBBox handles d1 inside a Type 3 char proc.
type SetCharWidthBBox struct{}

func (SetCharWidthBBox) Name() string { return "d1" }

func (SetCharWidthBBox) Process(_ *interpreter.Interpreter, operands []core.Object) error {
	_, err := floats("d1", operands, 6)
	return err
}
