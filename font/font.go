package font

import (
	"bytes"
	"fmt"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/model"
)

// Font is the capability surface the engine needs from a font. A font
// decodes character codes from show-string bytes and reports the
// metrics that drive text positioning. Widths are in text space,
// where one em is 1.0 (glyph-space thousandths divided by 1000).
type Font interface {
	// Name returns the BaseFont name.
	Name() string

	// ReadCode consumes the next character code from r, returning
	// the code and the number of bytes it occupied. io.EOF signals
	// the end of the string.
	ReadCode(r *bytes.Reader) (code int, length int, err error)

	// IsVertical reports whether the font uses vertical writing
	// mode.
	IsVertical() bool

	// Displacement returns the advance vector for a code in text
	// space.
	Displacement(code int) model.Vector

	// PositionVector returns the vertical-mode position vector for
	// a code in text space. Horizontal fonts return the zero
	// vector.
	PositionVector(code int) model.Vector

	// ToUnicode returns the Unicode text for a code, or the empty
	// string if no mapping exists.
	ToUnicode(code int) string
}

// Type3 is implemented by Type 3 fonts, whose glyphs are content
// streams executed by the engine.
type Type3 interface {
	Font

	// CharProc returns the glyph content stream for a code, or nil.
	CharProc(code int) *core.Stream

	// FontMatrix maps glyph space to text space.
	FontMatrix() model.Matrix

	// Resources returns the font's own resource dictionary, which
	// may be nil.
	Resources() core.Dict
}

// FromDict builds a Font from a font dictionary. The resolver is used
// to follow indirect references to descendant fonts, ToUnicode
// streams, and char procs.
func FromDict(dict core.Dict, r core.Resolver) (Font, error) {
	if dict == nil {
		return nil, fmt.Errorf("font dictionary is nil")
	}
	subtype, _ := dict.GetName("Subtype")
	switch subtype {
	case "Type0":
		return newCompositeFont(dict, r)
	case "Type3":
		return newType3Font(dict, r)
	case "Type1", "MMType1", "TrueType", "":
		return newSimpleFont(dict, r)
	default:
		// unrecognized subtypes get the one-byte treatment
		return newSimpleFont(dict, r)
	}
}

// Fallback returns the font used when a text-showing operator runs
// with no font set: Helvetica with standard metrics.
func Fallback() Font {
	return &SimpleFont{
		baseFont: "Helvetica",
		encoding: StandardEncoding("WinAnsiEncoding"),
		std:      standardFonts["Helvetica"],
	}
}

// toUnicodeCMap loads the ToUnicode CMap from a font dictionary if
// present.
func toUnicodeCMap(dict core.Dict, r core.Resolver) *CMap {
	obj := core.Resolve(dict.Get("ToUnicode"), r)
	stream, ok := obj.(*core.Stream)
	if !ok {
		return nil
	}
	cm, err := ParseToUnicodeCMap(stream)
	if err != nil {
		return nil
	}
	return cm
}
