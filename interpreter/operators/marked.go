package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
)

// resolveProperties turns the second BDC/DP operand into a property
// dictionary, looking inline dictionaries up directly and names in
// the Properties resource category.
func resolveProperties(it *interpreter.Interpreter, operand core.Object) core.Dict {
	switch v := operand.(type) {
	case core.Dict:
		return v
	case core.Name:
		if obj, err := it.Resource("Properties", string(v)); err == nil {
			if d, ok := obj.(core.Dict); ok {
				return d
			}
		}
	}
	return nil
}

// BeginMarkedContent handles BMC.
type BeginMarkedContent struct{}

func (BeginMarkedContent) Name() string { return "BMC" }

func (BeginMarkedContent) Process(it *interpreter.Interpreter, operands []core.Object) error {
	tag, err := name("BMC", operands)
	if err != nil {
		return err
	}
	it.Sink().BeginMarkedContent(it, tag, nil)
	return nil
}

// BeginMarkedContentProps handles BDC.
type BeginMarkedContentProps struct{}

func (BeginMarkedContentProps) Name() string { return "BDC" }

func (BeginMarkedContentProps) Process(it *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 2 {
		return &interpreter.MissingOperandError{Operator: "BDC", Have: len(operands), Want: 2}
	}
	tag, ok := operands[0].(core.Name)
	if !ok {
		return &interpreter.MissingOperandError{Operator: "BDC", Have: len(operands), Want: 2}
	}
	it.Sink().BeginMarkedContent(it, string(tag), resolveProperties(it, operands[1]))
	return nil
}

// EndMarkedContent handles EMC.
type EndMarkedContent struct{}

func (EndMarkedContent) Name() string { return "EMC" }

func (EndMarkedContent) Process(it *interpreter.Interpreter, _ []core.Object) error {
	it.Sink().EndMarkedContent(it)
	return nil
}

// MarkedContentPoint handles MP. Point marks carry no content, so
// only the operand is validated.
type MarkedContentPoint struct{}

func (MarkedContentPoint) Name() string { return "MP" }

func (MarkedContentPoint) Process(_ *interpreter.Interpreter, operands []core.Object) error {
	_, err := name("MP", operands)
	return err
}

// MarkedContentPointProps handles DP.
type MarkedContentPointProps struct{}

func (MarkedContentPointProps) Name() string { return "DP" }

func (MarkedContentPointProps) Process(_ *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 2 {
		return &interpreter.MissingOperandError{Operator: "DP", Have: len(operands), Want: 2}
	}
	return nil
}

// BeginCompat handles BX.
type BeginCompat struct{}

func (BeginCompat) Name() string { return "BX" }

func (BeginCompat) Process(*interpreter.Interpreter, []core.Object) error { return nil }

// EndCompat handles EX.
type EndCompat struct{}

func (EndCompat) Name() string { return "EX" }

func (EndCompat) Process(*interpreter.Interpreter, []core.Object) error { return nil }

// ShadingFill handles sh.
type ShadingFill struct{}

func (ShadingFill) Name() string { return "sh" }

func (ShadingFill) Process(it *interpreter.Interpreter, operands []core.Object) error {
	n, err := name("sh", operands)
	if err != nil {
		return err
	}
	obj, err := it.Resource("Shading", n)
	if err != nil {
		return err
	}
	var dict core.Dict
	switch v := obj.(type) {
	case core.Dict:
		dict = v
	case *core.Stream:
		dict = v.Dict
	default:
		return &interpreter.MissingResourceError{Kind: "Shading", Name: n}
	}
	return it.Sink().Shading(it, n, dict)
}
