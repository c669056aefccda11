package interpreter

import (
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/vellum/contentstream"
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/logging"
)

// ProcessOperator dispatches a single operator with its operands.
// Unregistered operators go to the sink's Unsupported hook and are
// not an error.
func (it *Interpreter) ProcessOperator(op string, operands []core.Object) error {
	h, ok := it.handlers[op]
	if !ok {
		it.sink.Unsupported(it, op, operands)
		return nil
	}
	if err := h.Process(it, operands); err != nil {
		return it.handleOperatorError(op, operands, err)
	}
	return nil
}

// handleOperatorError applies the recovery policy after notifying the
// sink. Missing operands, missing resources, and missing image codecs
// are always recoverable. Graphics-stack underflow and XObject
// failures are recoverable unless strict mode is on. Everything else
// propagates.
func (it *Interpreter) handleOperatorError(op string, operands []core.Object, err error) error {
	it.sink.OperatorError(it, op, operands, err)

	var missingOperand *MissingOperandError
	var missingResource *MissingResourceError
	var missingReader *MissingImageReaderError
	var emptyStack *EmptyGraphicsStackError

	switch {
	case errors.As(err, &missingOperand),
		errors.As(err, &missingResource),
		errors.As(err, &missingReader):
		logging.Logger().Error("operator failed", "operator", op, "error", err)
		return nil
	case errors.As(err, &emptyStack):
		if it.strict {
			return fmt.Errorf("operator %q: %w", op, err)
		}
		logging.Logger().Warn("graphics state stack underflow", "operator", op)
		return nil
	case op == "Do":
		if it.strict {
			return fmt.Errorf("operator %q: %w", op, err)
		}
		logging.Logger().Warn("xobject failed", "operator", op, "error", err)
		return nil
	}
	return fmt.Errorf("operator %q: %w", op, err)
}

// processData tokenizes a content stream and runs the operand
// accumulation loop. Operands left dangling at end of stream are
// discarded.
func (it *Interpreter) processData(data []byte) error {
	tok := contentstream.NewTokenizer(data)
	var operands []core.Object
	for {
		obj, op, err := tok.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("tokenizing content stream: %w", err)
		}
		if op == "" {
			operands = append(operands, obj)
			continue
		}
		// inline images arrive as an operand bundled with the
		// operator token
		if obj != nil {
			operands = append(operands, obj)
		}
		if err := it.ProcessOperator(op, operands); err != nil {
			return err
		}
		operands = operands[:0]
	}
}
