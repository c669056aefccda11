// Package contentstream provides tokenization of PDF content streams.
//
// Content streams contain the instructions for rendering page content:
// text display, graphics operations, and image placement.
//
// # Tokenizer
//
// The Tokenizer is a pull lexer. Each call to Next returns either an
// operand object or an operator name:
//
//	tok := contentstream.NewTokenizer(streamData)
//	for {
//	    obj, op, err := tok.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if op != "" {
//	        // operator: consume accumulated operands
//	    } else {
//	        // operand: accumulate obj
//	    }
//	}
//
// Inline images (BI ... ID ... EI) are consumed as a single token: the
// returned operator is "BI" and the operand is a *core.Stream holding
// the image parameters and raw data.
//
// # Parser
//
// Parser drains a Tokenizer into a flat []Operation for callers that
// want the whole stream at once:
//
//	ops, err := contentstream.NewParser(streamData).Parse()
//	for _, op := range ops {
//	    fmt.Printf("%s %v\n", op.Operator, op.Operands)
//	}
//
// # Operand Types
//
// Operands can be any PDF object type: numbers (core.Int, core.Real),
// strings (core.String), names (core.Name), arrays (core.Array), and
// dictionaries (core.Dict).
package contentstream
