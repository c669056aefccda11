package operators

import (
	"errors"
	"fmt"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/xobject"
)

// DrawObject handles Do, dispatching on the XObject subtype.
type DrawObject struct{}

func (DrawObject) Name() string { return "Do" }

func (DrawObject) Process(it *interpreter.Interpreter, operands []core.Object) error {
	n, err := name("Do", operands)
	if err != nil {
		return err
	}
	obj, err := it.Resource("XObject", n)
	if err != nil {
		return err
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return &interpreter.MissingResourceError{Kind: "XObject", Name: n}
	}

	switch xobject.Subtype(stream) {
	case "Image":
		return showImage(it, n, stream)
	case "Form":
		if it.Level() >= it.MaxDepth() {
			return fmt.Errorf("form %q: recursion depth %d exceeds limit", n, it.Level())
		}
		it.IncreaseLevel()
		defer it.DecreaseLevel()

		form := xobject.NewForm(stream, it.Resolver())
		if xobject.IsTransparencyGroup(stream, it.Resolver()) {
			return it.ShowTransparencyGroup(form)
		}
		return it.ShowForm(form)
	default:
		return fmt.Errorf("xobject %q: unsupported subtype %q", n, xobject.Subtype(stream))
	}
}

func showImage(it *interpreter.Interpreter, name string, stream *core.Stream) error {
	err := it.Sink().ShowImage(it, interpreter.ImageEvent{
		Name:   name,
		Stream: stream,
		State:  it.GS(),
	})
	var missing *core.MissingCodecError
	if errors.As(err, &missing) {
		return &interpreter.MissingImageReaderError{Filter: missing.Filter}
	}
	return err
}

// InlineImage handles BI. The tokenizer delivers the whole inline
// image as a single stream operand.
type InlineImage struct{}

func (InlineImage) Name() string { return "BI" }

func (InlineImage) Process(it *interpreter.Interpreter, operands []core.Object) error {
	if len(operands) < 1 {
		return &interpreter.MissingOperandError{Operator: "BI", Have: 0, Want: 1}
	}
	stream, ok := operands[len(operands)-1].(*core.Stream)
	if !ok {
		return &interpreter.MissingOperandError{Operator: "BI", Have: len(operands), Want: 1}
	}
	err := it.Sink().ShowImage(it, interpreter.ImageEvent{
		Stream: stream,
		State:  it.GS(),
	})
	var missing *core.MissingCodecError
	if errors.As(err, &missing) {
		return &interpreter.MissingImageReaderError{Filter: missing.Filter}
	}
	return err
}
