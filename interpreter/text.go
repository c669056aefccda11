package interpreter

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/font"
	"github.com/tsawler/vellum/logging"
	"github.com/tsawler/vellum/model"
)

// ShowTextString shows a string of character codes (Tj and the text
// parts of ' and ").
func (it *Interpreter) ShowTextString(b []byte) error {
	return it.showText(b)
}

// ShowTextArray shows a TJ array: strings are shown, numbers adjust
// the text matrix by -n/1000 in text space. A nested array is logged
// and skipped; any other element type is an error.
func (it *Interpreter) ShowTextArray(arr core.Array) error {
	for i := 0; i < arr.Len(); i++ {
		el := arr.Get(i)
		if n, ok := core.ToFloat(el); ok {
			it.applyTJAdjustment(n)
			continue
		}
		switch v := el.(type) {
		case core.String:
			if err := it.showText([]byte(v)); err != nil {
				return err
			}
		case core.Array:
			logging.Logger().Error("nested array in text array", "index", i)
		default:
			return &MalformedTextArrayError{Index: i, Type: fmt.Sprintf("%T", el)}
		}
	}
	return nil
}

// applyTJAdjustment moves the text matrix by a TJ number, which is
// expressed in thousandths of an em and acts against the writing
// direction.
func (it *Interpreter) applyTJAdjustment(n float64) {
	ts := &it.GS().Text
	if ts.Font != nil && ts.Font.IsVertical() {
		it.ApplyTextAdjustment(0, -n/1000*ts.FontSize)
		return
	}
	it.ApplyTextAdjustment(-n/1000*ts.FontSize*ts.HorizontalScaling/100, 0)
}

// ApplyTextAdjustment translates the text matrix by (tx, ty) in text
// space.
func (it *Interpreter) ApplyTextAdjustment(tx, ty float64) {
	if it.tm == nil {
		logging.Logger().Warn("text adjustment outside text object")
		m := model.Identity()
		it.tm = &m
	}
	*it.tm = model.Translate(tx, ty).Multiply(*it.tm)
}

// showText decodes the string through the current font and emits one
// glyph event per code, advancing the text matrix as it goes.
func (it *Interpreter) showText(b []byte) error {
	gs := it.GS()
	ts := &gs.Text

	f := ts.Font
	if f == nil {
		logging.Logger().Warn("no font set, using fallback")
		f = font.Fallback()
		ts.Font = f
	}
	if it.tm == nil {
		logging.Logger().Warn("text shown outside text object")
		m := model.Identity()
		it.tm = &m
		l := model.Identity()
		it.tlm = &l
	}

	fontSize := ts.FontSize
	hScale := ts.HorizontalScaling / 100
	charSpacing := ts.CharSpacing
	rise := ts.Rise

	// text space -> glyph placement parameters
	params := model.NewMatrix(fontSize*hScale, 0, 0, fontSize, 0, rise)

	r := bytes.NewReader(b)
	for {
		code, length, err := f.ReadCode(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading character code: %w", err)
		}

		// word spacing applies only to single-byte code 32
		wordSpacing := 0.0
		if length == 1 && code == 32 {
			wordSpacing = ts.WordSpacing
		}

		trm := params.Multiply(*it.tm).Multiply(gs.CTM)
		if f.IsVertical() {
			v := f.PositionVector(code)
			trm = model.Translate(v.X, v.Y).Multiply(trm)
		}

		w := f.Displacement(code)

		if t3, ok := f.(font.Type3); ok {
			if err := it.ShowType3Glyph(t3, code, trm); err != nil {
				return err
			}
		}

		g := Glyph{
			Trm:          trm,
			Font:         f,
			Code:         code,
			Length:       length,
			Text:         f.ToUnicode(code),
			Displacement: w,
			State:        gs,
		}
		if err := it.sink.ShowGlyph(it, g); err != nil {
			return err
		}

		var tx, ty float64
		if f.IsVertical() {
			ty = w.Y*fontSize + charSpacing + wordSpacing
		} else {
			tx = (w.X*fontSize + charSpacing + wordSpacing) * hScale
		}
		*it.tm = model.Translate(tx, ty).Multiply(*it.tm)
	}
}
