package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
)

// RegisterStandard installs the full standard operator set on it.
func RegisterStandard(it *interpreter.Interpreter) {
	handlers := []interpreter.Handler{
		// graphics state
		Save{}, Restore{}, Concat{}, SetExtGState{},
		SetLineWidth{}, SetLineCap{}, SetLineJoin{}, SetMiterLimit{},
		SetLineDash{}, SetRenderingIntent{}, SetFlatness{},

		// text object and state
		BeginText{}, EndText{},
		SetCharSpacing{}, SetWordSpacing{}, SetHorizontalScaling{},
		SetLeading{}, SetFont{}, SetRenderingMode{}, SetRise{},

		// text positioning
		MoveText{}, MoveTextSetLeading{}, SetTextMatrix{}, NextLine{},

		// text showing
		ShowText{}, ShowTextLine{}, ShowTextLineAndSpace{}, ShowTextAdjusted{},

		// Type 3 glyph metrics
		SetCharWidth{}, SetCharWidthBBox{},

		// path construction
		MoveTo{}, LineTo{}, CurveTo{}, CurveToReplicateInitial{},
		CurveToReplicateFinal{}, ClosePath{}, AppendRectangle{},

		// path painting and clipping
		StrokePath{}, CloseStrokePath{}, FillPath{}, FillPathCompat{},
		FillPathEvenOdd{}, FillStrokePath{}, FillStrokePathEvenOdd{},
		CloseFillStrokePath{}, CloseFillStrokePathEvenOdd{}, EndPath{},
		ClipNonZero{}, ClipEvenOdd{},

		// color
		SetStrokeColorSpace{}, SetFillColorSpace{},
		SetStrokeColor{}, SetStrokeColorN{},
		SetFillColor{}, SetFillColorN{},
		SetStrokeGray{}, SetFillGray{},
		SetStrokeRGB{}, SetFillRGB{},
		SetStrokeCMYK{}, SetFillCMYK{},

		// XObjects and images
		DrawObject{}, InlineImage{},

		// shading
		ShadingFill{},

		// marked content and compatibility
		BeginMarkedContent{}, BeginMarkedContentProps{},
		MarkedContentPoint{}, MarkedContentPointProps{},
		EndMarkedContent{}, BeginCompat{}, EndCompat{},
	}
	for _, h := range handlers {
		it.Register(h)
	}
}

// floats extracts n numeric operands from the front of operands.
func floats(op string, operands []core.Object, n int) ([]float64, error) {
	if len(operands) < n {
		return nil, &interpreter.MissingOperandError{Operator: op, Have: len(operands), Want: n}
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := core.ToFloat(operands[i])
		if !ok {
			return nil, &interpreter.MissingOperandError{Operator: op, Have: len(operands), Want: n}
		}
		out[i] = v
	}
	return out, nil
}

// float1 extracts a single numeric operand.
func float1(op string, operands []core.Object) (float64, error) {
	vals, err := floats(op, operands, 1)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// name extracts a single name operand.
func name(op string, operands []core.Object) (string, error) {
	if len(operands) < 1 {
		return "", &interpreter.MissingOperandError{Operator: op, Have: 0, Want: 1}
	}
	n, ok := operands[0].(core.Name)
	if !ok {
		return "", &interpreter.MissingOperandError{Operator: op, Have: len(operands), Want: 1}
	}
	return string(n), nil
}
