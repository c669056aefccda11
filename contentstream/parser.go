package contentstream

import (
	"errors"
	"io"

	"github.com/tsawler/vellum/core"
)

// Operation is a single content-stream operation: an operator and the
// operands that preceded it.
type Operation struct {
	Operator string
	Operands []core.Object
}

// Parser drains a Tokenizer into a flat list of operations. It is a
// convenience for callers that do not need streaming dispatch.
type Parser struct {
	tok *Tokenizer
}

// NewParser creates a content stream parser for the given data.
func NewParser(data []byte) *Parser {
	return &Parser{tok: NewTokenizer(data)}
}

// Parse tokenizes the whole stream and returns all operations in
// order. Operands left dangling at end of input are discarded.
func (p *Parser) Parse() ([]Operation, error) {
	var ops []Operation
	var operands []core.Object

	for {
		obj, op, err := p.tok.Next()
		if errors.Is(err, io.EOF) {
			return ops, nil
		}
		if err != nil {
			return nil, err
		}
		if op == "" {
			operands = append(operands, obj)
			continue
		}
		if obj != nil {
			// inline image token carries its stream as the operand
			operands = append(operands, obj)
		}
		ops = append(ops, Operation{Operator: op, Operands: operands})
		operands = nil
	}
}
