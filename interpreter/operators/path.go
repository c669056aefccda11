package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
)

// MoveTo handles m.
type MoveTo struct{}

func (MoveTo) Name() string { return "m" }

func (MoveTo) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("m", operands, 2)
	if err != nil {
		return err
	}
	it.Path().MoveTo(v[0], v[1])
	return nil
}

// LineTo handles l.
type LineTo struct{}

func (LineTo) Name() string { return "l" }

func (LineTo) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("l", operands, 2)
	if err != nil {
		return err
	}
	it.Path().LineTo(v[0], v[1])
	return nil
}

// CurveTo handles c.
type CurveTo struct{}

func (CurveTo) Name() string { return "c" }

func (CurveTo) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("c", operands, 6)
	if err != nil {
		return err
	}
	it.Path().CurveTo(v[0], v[1], v[2], v[3], v[4], v[5])
	return nil
}

// CurveToReplicateInitial handles v, where the first control point
// coincides with the current point.
type CurveToReplicateInitial struct{}

func (CurveToReplicateInitial) Name() string { return "v" }

func (CurveToReplicateInitial) Process(it *interpreter.Interpreter, operands []core.Object) error {
	vals, err := floats("v", operands, 4)
	if err != nil {
		return err
	}
	it.Path().CurveToV(vals[0], vals[1], vals[2], vals[3])
	return nil
}

// CurveToReplicateFinal handles y, where the second control point
// coincides with the endpoint.
type CurveToReplicateFinal struct{}

func (CurveToReplicateFinal) Name() string { return "y" }

func (CurveToReplicateFinal) Process(it *interpreter.Interpreter, operands []core.Object) error {
	vals, err := floats("y", operands, 4)
	if err != nil {
		return err
	}
	it.Path().CurveToY(vals[0], vals[1], vals[2], vals[3])
	return nil
}

// ClosePath handles h.
type ClosePath struct{}

func (ClosePath) Name() string { return "h" }

func (ClosePath) Process(it *interpreter.Interpreter, _ []core.Object) error {
	it.Path().ClosePath()
	return nil
}

// AppendRectangle handles re.
type AppendRectangle struct{}

func (AppendRectangle) Name() string { return "re" }

func (AppendRectangle) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("re", operands, 4)
	if err != nil {
		return err
	}
	it.Path().Rectangle(v[0], v[1], v[2], v[3])
	return nil
}

// StrokePath handles S.
type StrokePath struct{}

func (StrokePath) Name() string { return "S" }

func (StrokePath) Process(it *interpreter.Interpreter, _ []core.Object) error {
	return it.PaintPath(true, false, false)
}

// CloseStrokePath handles s.
type CloseStrokePath struct{}

func (CloseStrokePath) Name() string { return "s" }

func (CloseStrokePath) Process(it *interpreter.Interpreter, _ []core.Object) error {
	it.Path().ClosePath()
	return it.PaintPath(true, false, false)
}

// FillPath handles f.
type FillPath struct{}

func (FillPath) Name() string { return "f" }

func (FillPath) Process(it *interpreter.Interpreter, _ []core.Object) error {
	return it.PaintPath(false, true, false)
}

// FillPathCompat handles F, the deprecated alias of f.
type FillPathCompat struct{}

func (FillPathCompat) Name() string { return "F" }

func (FillPathCompat) Process(it *interpreter.Interpreter, _ []core.Object) error {
	return it.PaintPath(false, true, false)
}

// FillPathEvenOdd handles f*.
type FillPathEvenOdd struct{}

func (FillPathEvenOdd) Name() string { return "f*" }

func (FillPathEvenOdd) Process(it *interpreter.Interpreter, _ []core.Object) error {
	return it.PaintPath(false, true, true)
}

// FillStrokePath handles B.
type FillStrokePath struct{}

func (FillStrokePath) Name() string { return "B" }

func (FillStrokePath) Process(it *interpreter.Interpreter, _ []core.Object) error {
	return it.PaintPath(true, true, false)
}

// FillStrokePathEvenOdd handles B*.
type FillStrokePathEvenOdd struct{}

func (FillStrokePathEvenOdd) Name() string { return "B*" }

func (FillStrokePathEvenOdd) Process(it *interpreter.Interpreter, _ []core.Object) error {
	return it.PaintPath(true, true, true)
}

// CloseFillStrokePath handles b.
type CloseFillStrokePath struct{}

func (CloseFillStrokePath) Name() string { return "b" }

func (CloseFillStrokePath) Process(it *interpreter.Interpreter, _ []core.Object) error {
	it.Path().ClosePath()
	return it.PaintPath(true, true, false)
}

// CloseFillStrokePathEvenOdd handles b*.
type CloseFillStrokePathEvenOdd struct{}

func (CloseFillStrokePathEvenOdd) Name() string { return "b*" }

func (CloseFillStrokePathEvenOdd) Process(it *interpreter.Interpreter, _ []core.Object) error {
	it.Path().ClosePath()
	return it.PaintPath(true, true, true)
}

// EndPath handles n, which paints nothing but still applies a pending
// clip.
type EndPath struct{}

func (EndPath) Name() string { return "n" }

func (EndPath) Process(it *interpreter.Interpreter, _ []core.Object) error {
	return it.PaintPath(false, false, false)
}

// ClipNonZero handles W.
type ClipNonZero struct{}

func (ClipNonZero) Name() string { return "W" }

func (ClipNonZero) Process(it *interpreter.Interpreter, _ []core.Object) error {
	it.SetPendingClip(interpreter.ClipNonZero)
	return nil
}

// ClipEvenOdd handles W*.
type ClipEvenOdd struct{}

func (ClipEvenOdd) Name() string { return "W*" }

func (ClipEvenOdd) Process(it *interpreter.Interpreter, _ []core.Object) error {
	it.SetPendingClip(interpreter.ClipEvenOdd)
	return nil
}
