package operators

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/graphicsstate"
	"github.com/tsawler/vellum/interpreter"
)

// resolveColorSpaceName maps a color space operand to its canonical
// name, consulting the ColorSpace resource category for non-device
// names. The resource entry itself (often an array form like
// [/ICCBased ...]) is reduced to its family name.
func resolveColorSpaceName(it *interpreter.Interpreter, n string) string {
	switch n {
	case "DeviceGray", "DeviceRGB", "DeviceCMYK", "Pattern", "CalGray", "CalRGB", "Lab", "Indexed", "Separation", "DeviceN", "ICCBased":
		return n
	}
	obj, err := it.Resource("ColorSpace", n)
	if err != nil {
		return n
	}
	switch cs := obj.(type) {
	case core.Name:
		return string(cs)
	case core.Array:
		if family, ok := cs.GetName(0); ok {
			return string(family)
		}
	}
	return n
}

// initialColor returns the default color for a space, which is black
// in the device spaces.
func initialColor(space string) graphicsstate.Color {
	switch space {
	case "DeviceRGB", "CalRGB":
		return graphicsstate.Color{Space: space, Components: []float64{0, 0, 0}}
	case "DeviceCMYK":
		return graphicsstate.Color{Space: space, Components: []float64{0, 0, 0, 1}}
	case "Pattern":
		return graphicsstate.Color{Space: space}
	default:
		return graphicsstate.Color{Space: space, Components: []float64{0}}
	}
}

// SetStrokeColorSpace handles CS.
type SetStrokeColorSpace struct{}

func (SetStrokeColorSpace) Name() string { return "CS" }

func (SetStrokeColorSpace) Process(it *interpreter.Interpreter, operands []core.Object) error {
	n, err := name("CS", operands)
	if err != nil {
		return err
	}
	gs := it.GS()
	gs.StrokeColorSpace = resolveColorSpaceName(it, n)
	gs.StrokeColor = initialColor(gs.StrokeColorSpace)
	return nil
}

// SetFillColorSpace handles cs.
type SetFillColorSpace struct{}

func (SetFillColorSpace) Name() string { return "cs" }

func (SetFillColorSpace) Process(it *interpreter.Interpreter, operands []core.Object) error {
	n, err := name("cs", operands)
	if err != nil {
		return err
	}
	gs := it.GS()
	gs.FillColorSpace = resolveColorSpaceName(it, n)
	gs.FillColor = initialColor(gs.FillColorSpace)
	return nil
}

// componentColor builds a color from numeric operands in the given
// space. A trailing name operand selects a pattern instead.
func componentColor(op, space string, operands []core.Object) (graphicsstate.Color, error) {
	if len(operands) > 0 {
		if pat, ok := operands[len(operands)-1].(core.Name); ok {
			return graphicsstate.Color{Space: "Pattern", Pattern: string(pat)}, nil
		}
	}
	components := make([]float64, 0, len(operands))
	for _, o := range operands {
		v, ok := core.ToFloat(o)
		if !ok {
			return graphicsstate.Color{}, &interpreter.MissingOperandError{Operator: op, Have: len(operands), Want: len(operands)}
		}
		components = append(components, v)
	}
	if len(components) == 0 {
		return graphicsstate.Color{}, &interpreter.MissingOperandError{Operator: op, Have: 0, Want: 1}
	}
	return graphicsstate.Color{Space: space, Components: components}, nil
}

// SetStrokeColor handles SC.
type SetStrokeColor struct{}

func (SetStrokeColor) Name() string { return "SC" }

func (SetStrokeColor) Process(it *interpreter.Interpreter, operands []core.Object) error {
	gs := it.GS()
	c, err := componentColor("SC", gs.StrokeColorSpace, operands)
	if err != nil {
		return err
	}
	gs.StrokeColor = c
	return nil
}

// SetStrokeColorN handles SCN, which additionally accepts pattern
// names.
type SetStrokeColorN struct{}

func (SetStrokeColorN) Name() string { return "SCN" }

func (SetStrokeColorN) Process(it *interpreter.Interpreter, operands []core.Object) error {
	gs := it.GS()
	c, err := componentColor("SCN", gs.StrokeColorSpace, operands)
	if err != nil {
		return err
	}
	gs.StrokeColor = c
	return nil
}

// SetFillColor handles sc.
type SetFillColor struct{}

func (SetFillColor) Name() string { return "sc" }

func (SetFillColor) Process(it *interpreter.Interpreter, operands []core.Object) error {
	gs := it.GS()
	c, err := componentColor("sc", gs.FillColorSpace, operands)
	if err != nil {
		return err
	}
	gs.FillColor = c
	return nil
}

// SetFillColorN handles scn.
type SetFillColorN struct{}

func (SetFillColorN) Name() string { return "scn" }

func (SetFillColorN) Process(it *interpreter.Interpreter, operands []core.Object) error {
	gs := it.GS()
	c, err := componentColor("scn", gs.FillColorSpace, operands)
	if err != nil {
		return err
	}
	gs.FillColor = c
	return nil
}

// SetStrokeGray handles G.
type SetStrokeGray struct{}

func (SetStrokeGray) Name() string { return "G" }

func (SetStrokeGray) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("G", operands)
	if err != nil {
		return err
	}
	gs := it.GS()
	gs.StrokeColorSpace = "DeviceGray"
	gs.StrokeColor = graphicsstate.NewColorGray(v)
	return nil
}

// SetFillGray handles g.
type SetFillGray struct{}

func (SetFillGray) Name() string { return "g" }

func (SetFillGray) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := float1("g", operands)
	if err != nil {
		return err
	}
	gs := it.GS()
	gs.FillColorSpace = "DeviceGray"
	gs.FillColor = graphicsstate.NewColorGray(v)
	return nil
}

// SetStrokeRGB handles RG.
type SetStrokeRGB struct{}

func (SetStrokeRGB) Name() string { return "RG" }

func (SetStrokeRGB) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("RG", operands, 3)
	if err != nil {
		return err
	}
	gs := it.GS()
	gs.StrokeColorSpace = "DeviceRGB"
	gs.StrokeColor = graphicsstate.NewColorRGB(v[0], v[1], v[2])
	return nil
}

// SetFillRGB handles rg.
type SetFillRGB struct{}

func (SetFillRGB) Name() string { return "rg" }

func (SetFillRGB) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("rg", operands, 3)
	if err != nil {
		return err
	}
	gs := it.GS()
	gs.FillColorSpace = "DeviceRGB"
	gs.FillColor = graphicsstate.NewColorRGB(v[0], v[1], v[2])
	return nil
}

// SetStrokeCMYK handles K.
type SetStrokeCMYK struct{}

func (SetStrokeCMYK) Name() string { return "K" }

func (SetStrokeCMYK) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("K", operands, 4)
	if err != nil {
		return err
	}
	gs := it.GS()
	gs.StrokeColorSpace = "DeviceCMYK"
	gs.StrokeColor = graphicsstate.Color{Space: "DeviceCMYK", Components: v}
	return nil
}

// SetFillCMYK handles k.
type SetFillCMYK struct{}

func (SetFillCMYK) Name() string { return "k" }

func (SetFillCMYK) Process(it *interpreter.Interpreter, operands []core.Object) error {
	v, err := floats("k", operands, 4)
	if err != nil {
		return err
	}
	gs := it.GS()
	gs.FillColorSpace = "DeviceCMYK"
	gs.FillColor = graphicsstate.Color{Space: "DeviceCMYK", Components: v}
	return nil
}
