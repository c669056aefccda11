package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/logging"
	"github.com/tsawler/vellum/model"
)

// moveLine translates the line matrix by (tx, ty) and resets the text
// matrix to it.
func moveLine(it *interpreter.Interpreter, tx, ty float64) {
	tlm, ok := it.LineMatrix()
	if !ok {
		logging.Logger().Warn("text positioning outside text object")
		tlm = model.Identity()
	}
	next := model.Translate(tx, ty).Multiply(tlm)
	it.SetLineMatrix(next)
	it.SetTextMatrix(next)
}

// MoveText handles Td.
type MoveText struct{}

func (MoveText) Name() string { return "Td" }

func (MoveText) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("Td", operands, 2)
	if err != nil {
		return err
	}
	moveLine(it, v[0], v[1])
	return nil
}

// MoveTextSetLeading handles TD.
type MoveTextSetLeading struct{}

func (MoveTextSetLeading) Name() string { return "TD" }

func (MoveTextSetLeading) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("TD", operands, 2)
	if err != nil {
		return err
	}
	it.GS().Text.Leading = -v[1]
	moveLine(it, v[0], v[1])
	return nil
}

// SetTextMatrix handles Tm.
type SetTextMatrix struct{}

func (SetTextMatrix) Name() string { return "Tm" }

func (SetTextMatrix) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("Tm", operands, 6)
	if err != nil {
		return err
	}
	m := model.NewMatrix(v[0], v[1], v[2], v[3], v[4], v[5])
	it.SetTextMatrix(m)
	it.SetLineMatrix(m)
	return nil
}

// NextLine handles T*.
type NextLine struct{}

func (NextLine) Name() string { return "T*" }

func (NextLine) Process(it *interpreter.Interpreter, _ []core.Object) error {
	moveLine(it, 0, -it.GS().Text.Leading)
	return nil
}
