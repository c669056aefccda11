package font

import (
	"bytes"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/model"
)

// Type3Font draws its glyphs by running the content stream in
// CharProcs. Widths are in glyph space and scale through the font
// matrix.
type Type3Font struct {
	name       string
	fontMatrix model.Matrix
	charProcs  core.Dict
	resources  core.Dict
	encoding   map[int]string // code -> glyph name
	toUnicode  *CMap
	widths     map[int]float64
	firstChar  int
	resolver   core.Resolver
}

func newType3Font(dict core.Dict, r core.Resolver) (*Type3Font, error) {
	f := &Type3Font{
		fontMatrix: model.NewMatrix(0.001, 0, 0, 0.001, 0, 0),
		encoding:   make(map[int]string),
		widths:     make(map[int]float64),
		resolver:   r,
	}
	if name, ok := dict.GetName("Name"); ok {
		f.name = string(name)
	} else if name, ok := dict.GetName("BaseFont"); ok {
		f.name = string(name)
	}

	if arr, ok := core.Resolve(dict.Get("FontMatrix"), r).(core.Array); ok {
		if vals, ok := arr.Floats(); ok && len(vals) == 6 {
			f.fontMatrix = model.NewMatrix(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
		}
	}

	if procs, ok := core.Resolve(dict.Get("CharProcs"), r).(core.Dict); ok {
		f.charProcs = procs
	}
	if res, ok := core.Resolve(dict.Get("Resources"), r).(core.Dict); ok {
		f.resources = res
	}
	if enc, ok := core.Resolve(dict.Get("Encoding"), r).(core.Dict); ok {
		if arr, ok := core.Resolve(enc.Get("Differences"), r).(core.Array); ok {
			f.encoding = parseDifferences(arr)
		}
	}
	f.toUnicode = toUnicodeCMap(dict, r)

	if fc, ok := dict.GetInt("FirstChar"); ok {
		f.firstChar = int(fc)
	}
	if arr, ok := core.Resolve(dict.Get("Widths"), r).(core.Array); ok {
		for i := 0; i < arr.Len(); i++ {
			if w, ok := arr.GetFloat(i); ok {
				f.widths[f.firstChar+i] = w
			}
		}
	}

	return f, nil
}

// Name returns the font name.
func (f *Type3Font) Name() string { return f.name }

// ReadCode consumes one byte per code.
func (f *Type3Font) ReadCode(r *bytes.Reader) (int, int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	return int(b), 1, nil
}

// IsVertical is always false for Type 3 fonts.
func (f *Type3Font) IsVertical() bool { return false }

// Displacement returns the glyph-space width mapped through the font
// matrix into text space.
func (f *Type3Font) Displacement(code int) model.Vector {
	w := f.widths[code]
	return f.fontMatrix.TransformVector(model.Vector{X: w})
}

// PositionVector returns the zero vector.
func (f *Type3Font) PositionVector(code int) model.Vector {
	return model.Vector{}
}

// ToUnicode maps through the ToUnicode CMap, then the encoding's
// glyph names.
func (f *Type3Font) ToUnicode(code int) string {
	if f.toUnicode != nil {
		if text := f.toUnicode.Lookup(code); text != "" {
			return NormalizeUnicode(text)
		}
	}
	if glyphName, ok := f.encoding[code]; ok {
		if u, ok := glyphToUnicode[glyphName]; ok {
			return u
		}
	}
	return ""
}

// CharProc returns the glyph content stream for a code, or nil when
// the encoding or CharProcs entry is missing.
func (f *Type3Font) CharProc(code int) *core.Stream {
	if f.charProcs == nil {
		return nil
	}
	glyphName, ok := f.encoding[code]
	if !ok {
		return nil
	}
	stream, ok := core.Resolve(f.charProcs.Get(glyphName), f.resolver).(*core.Stream)
	if !ok {
		return nil
	}
	return stream
}

// FontMatrix maps glyph space to text space.
func (f *Type3Font) FontMatrix() model.Matrix { return f.fontMatrix }

// Resources returns the font's resource dictionary, which may be
// nil.
func (f *Type3Font) Resources() core.Dict { return f.resources }
