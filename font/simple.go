package font

import (
	"bytes"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/model"
)

// SimpleFont covers Type1, MMType1, and TrueType fonts. Codes are
// single bytes; widths come from the Widths array, falling back to
// standard 14 metrics through the encoding.
type SimpleFont struct {
	baseFont  string
	encoding  *Encoding
	toUnicode *CMap

	// widths by character code, from FirstChar and Widths
	widths       map[int]float64
	missingWidth float64

	// std is the standard 14 metrics table, keyed by rune, used
	// when no Widths entry covers a code
	std map[rune]float64
}

func newSimpleFont(dict core.Dict, r core.Resolver) (*SimpleFont, error) {
	f := &SimpleFont{
		widths: make(map[int]float64),
	}
	if name, ok := dict.GetName("BaseFont"); ok {
		f.baseFont = string(name)
	}

	f.encoding = readSimpleEncoding(dict, r)
	f.toUnicode = toUnicodeCMap(dict, r)

	if std, ok := standardWidths(f.baseFont); ok {
		f.std = std
	}

	firstChar := 0
	if fc, ok := dict.GetInt("FirstChar"); ok {
		firstChar = int(fc)
	}
	if arr, ok := core.Resolve(dict.Get("Widths"), r).(core.Array); ok {
		for i := 0; i < arr.Len(); i++ {
			if w, ok := arr.GetFloat(i); ok {
				f.widths[firstChar+i] = w
			}
		}
	}

	if fd, ok := core.Resolve(dict.Get("FontDescriptor"), r).(core.Dict); ok {
		if mw, ok := fd.GetFloat("MissingWidth"); ok {
			f.missingWidth = mw
		}
	}

	return f, nil
}

// readSimpleEncoding resolves the Encoding entry, which is either a
// name or a dictionary with BaseEncoding and Differences.
func readSimpleEncoding(dict core.Dict, r core.Resolver) *Encoding {
	switch enc := core.Resolve(dict.Get("Encoding"), r).(type) {
	case core.Name:
		return StandardEncoding(string(enc))
	case core.Dict:
		base := ""
		if b, ok := enc.GetName("BaseEncoding"); ok {
			base = string(b)
		}
		e := StandardEncoding(base)
		if arr, ok := core.Resolve(enc.Get("Differences"), r).(core.Array); ok {
			e = e.WithDifferences(parseDifferences(arr))
		}
		return e
	default:
		return StandardEncoding("")
	}
}

// parseDifferences walks a Differences array: an integer sets the
// next code, names assign glyphs to consecutive codes.
func parseDifferences(arr core.Array) map[int]string {
	diff := make(map[int]string)
	code := 0
	for i := 0; i < arr.Len(); i++ {
		switch v := arr.Get(i).(type) {
		case core.Int:
			code = int(v)
		case core.Name:
			diff[code] = string(v)
			code++
		}
	}
	return diff
}

// Name returns the BaseFont name.
func (f *SimpleFont) Name() string { return f.baseFont }

// ReadCode consumes one byte per code.
func (f *SimpleFont) ReadCode(r *bytes.Reader) (int, int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	return int(b), 1, nil
}

// IsVertical is always false for simple fonts.
func (f *SimpleFont) IsVertical() bool { return false }

// Displacement returns the horizontal advance in text space.
func (f *SimpleFont) Displacement(code int) model.Vector {
	return model.Vector{X: f.widthForCode(code) / 1000}
}

// PositionVector returns the zero vector; simple fonts are never
// vertical.
func (f *SimpleFont) PositionVector(code int) model.Vector {
	return model.Vector{}
}

// ToUnicode maps a code through the ToUnicode CMap when present,
// otherwise through the encoding.
func (f *SimpleFont) ToUnicode(code int) string {
	if f.toUnicode != nil {
		if text := f.toUnicode.Lookup(code); text != "" {
			return NormalizeUnicode(text)
		}
	}
	return NormalizeUnicode(f.encoding.Decode(code))
}

func (f *SimpleFont) widthForCode(code int) float64 {
	if w, ok := f.widths[code]; ok {
		return w
	}
	if f.std != nil {
		if text := f.encoding.Decode(code); text != "" {
			runes := []rune(text)
			if len(runes) == 1 {
				if w, ok := f.std[runes[0]]; ok {
					return w
				}
			}
		}
	}
	if f.missingWidth > 0 {
		return f.missingWidth
	}
	return 500
}
