package font

import (
	"bytes"
	"fmt"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/model"
)

// CompositeFont is a Type0 font. The encoding CMap turns string
// bytes into character codes and codes into CIDs; the descendant
// CIDFont supplies the metrics.
type CompositeFont struct {
	baseFont  string
	encoding  *CMap
	toUnicode *CMap

	// widths by CID, from the descendant W array
	widths       map[int]float64
	defaultWidth float64

	// vertical metrics by CID, from W2; defaults from DW2
	vertical        bool
	verticalMetrics map[int]verticalMetric
	defaultVY       float64
	defaultW1       float64
}

type verticalMetric struct {
	w1 float64 // vertical displacement
	vx float64 // position vector x
	vy float64 // position vector y
}

func newCompositeFont(dict core.Dict, r core.Resolver) (*CompositeFont, error) {
	f := &CompositeFont{
		widths:          make(map[int]float64),
		verticalMetrics: make(map[int]verticalMetric),
		defaultWidth:    1000,
		defaultVY:       880,
		defaultW1:       -1000,
	}
	if name, ok := dict.GetName("BaseFont"); ok {
		f.baseFont = string(name)
	}

	f.encoding = readCompositeEncoding(dict, r)
	f.vertical = f.encoding.IsVertical()
	f.toUnicode = toUnicodeCMap(dict, r)

	descendant, err := descendantFont(dict, r)
	if err != nil {
		return nil, err
	}
	if descendant != nil {
		f.readCIDMetrics(descendant, r)
	}

	return f, nil
}

// readCompositeEncoding resolves the Encoding entry, which is a
// predefined CMap name or an embedded CMap stream. Unresolvable
// encodings degrade to an identity CMap: Identity-V for an unsupported
// predefined name ending in -V, Identity-H otherwise.
func readCompositeEncoding(dict core.Dict, r core.Resolver) *CMap {
	switch enc := core.Resolve(dict.Get("Encoding"), r).(type) {
	case core.Name:
		if cm, err := ParsePredefined(string(enc)); err == nil {
			return cm
		}
		// unsupported predefined CMaps keep the vertical flag
		cm := NewIdentityCMap(IsVerticalEncoding(string(enc)))
		return cm
	case *core.Stream:
		data, err := enc.Decoded()
		if err != nil {
			return NewIdentityCMap(false)
		}
		cm, err := ParseCMap(data)
		if err != nil {
			return NewIdentityCMap(false)
		}
		return cm
	default:
		return NewIdentityCMap(false)
	}
}

// IsVerticalEncoding reports whether an encoding name selects
// vertical writing mode.
func IsVerticalEncoding(name string) bool {
	return len(name) >= 2 && name[len(name)-2:] == "-V"
}

func descendantFont(dict core.Dict, r core.Resolver) (core.Dict, error) {
	arr, ok := core.Resolve(dict.Get("DescendantFonts"), r).(core.Array)
	if !ok || arr.Len() == 0 {
		return nil, fmt.Errorf("Type0 font %q has no descendant font", dict.Get("BaseFont"))
	}
	descendant, ok := core.Resolve(arr.Get(0), r).(core.Dict)
	if !ok {
		return nil, fmt.Errorf("descendant font is not a dictionary")
	}
	return descendant, nil
}

// readCIDMetrics loads DW, W, DW2, and W2 from the descendant
// CIDFont dictionary.
func (f *CompositeFont) readCIDMetrics(descendant core.Dict, r core.Resolver) {
	if dw, ok := descendant.GetFloat("DW"); ok {
		f.defaultWidth = dw
	}
	if arr, ok := core.Resolve(descendant.Get("W"), r).(core.Array); ok {
		f.parseWArray(arr, r)
	}
	if arr, ok := core.Resolve(descendant.Get("DW2"), r).(core.Array); ok && arr.Len() >= 2 {
		if vy, ok := arr.GetFloat(0); ok {
			f.defaultVY = vy
		}
		if w1, ok := arr.GetFloat(1); ok {
			f.defaultW1 = w1
		}
	}
	if arr, ok := core.Resolve(descendant.Get("W2"), r).(core.Array); ok {
		f.parseW2Array(arr, r)
	}
}

// parseWArray handles both W forms: "c [w1 w2 ...]" and
// "cFirst cLast w".
func (f *CompositeFont) parseWArray(arr core.Array, r core.Resolver) {
	i := 0
	for i < arr.Len() {
		first, ok := core.ToFloat(core.Resolve(arr.Get(i), r))
		if !ok {
			return
		}
		i++
		if i >= arr.Len() {
			return
		}
		switch next := core.Resolve(arr.Get(i), r).(type) {
		case core.Array:
			cid := int(first)
			for j := 0; j < next.Len(); j++ {
				if w, ok := next.GetFloat(j); ok {
					f.widths[cid+j] = w
				}
			}
			i++
		default:
			last, ok := core.ToFloat(next)
			if !ok {
				return
			}
			i++
			if i >= arr.Len() {
				return
			}
			w, ok := core.ToFloat(core.Resolve(arr.Get(i), r))
			if !ok {
				return
			}
			i++
			for cid := int(first); cid <= int(last); cid++ {
				f.widths[cid] = w
			}
		}
	}
}

// parseW2Array handles both W2 forms: "c [w1 vx vy ...]" and
// "cFirst cLast w1 vx vy".
func (f *CompositeFont) parseW2Array(arr core.Array, r core.Resolver) {
	i := 0
	for i < arr.Len() {
		first, ok := core.ToFloat(core.Resolve(arr.Get(i), r))
		if !ok {
			return
		}
		i++
		if i >= arr.Len() {
			return
		}
		switch next := core.Resolve(arr.Get(i), r).(type) {
		case core.Array:
			cid := int(first)
			for j := 0; j+3 <= next.Len(); j += 3 {
				w1, ok1 := next.GetFloat(j)
				vx, ok2 := next.GetFloat(j + 1)
				vy, ok3 := next.GetFloat(j + 2)
				if ok1 && ok2 && ok3 {
					f.verticalMetrics[cid] = verticalMetric{w1: w1, vx: vx, vy: vy}
				}
				cid++
			}
			i++
		default:
			last, ok := core.ToFloat(next)
			if !ok || i+3 > arr.Len() {
				return
			}
			w1, ok1 := core.ToFloat(core.Resolve(arr.Get(i+1), r))
			vx, ok2 := core.ToFloat(core.Resolve(arr.Get(i+2), r))
			vy, ok3 := core.ToFloat(core.Resolve(arr.Get(i+3), r))
			i += 4
			if !ok1 || !ok2 || !ok3 {
				return
			}
			for cid := int(first); cid <= int(last); cid++ {
				f.verticalMetrics[cid] = verticalMetric{w1: w1, vx: vx, vy: vy}
			}
		}
	}
}

// Name returns the BaseFont name.
func (f *CompositeFont) Name() string { return f.baseFont }

// ReadCode consumes a multi-byte code per the encoding CMap's
// codespace ranges.
func (f *CompositeFont) ReadCode(r *bytes.Reader) (int, int, error) {
	return f.encoding.ReadCode(r)
}

// IsVertical reports the encoding CMap's writing mode.
func (f *CompositeFont) IsVertical() bool { return f.vertical }

// Displacement returns the advance vector for a code in text space.
func (f *CompositeFont) Displacement(code int) model.Vector {
	cid := f.encoding.CID(code)
	if f.vertical {
		if m, ok := f.verticalMetrics[cid]; ok {
			return model.Vector{Y: m.w1 / 1000}
		}
		return model.Vector{Y: f.defaultW1 / 1000}
	}
	if w, ok := f.widths[cid]; ok {
		return model.Vector{X: w / 1000}
	}
	return model.Vector{X: f.defaultWidth / 1000}
}

// PositionVector returns the vertical-mode position vector in text
// space. The default position is half the glyph width across and
// DW2's vy up.
func (f *CompositeFont) PositionVector(code int) model.Vector {
	if !f.vertical {
		return model.Vector{}
	}
	cid := f.encoding.CID(code)
	if m, ok := f.verticalMetrics[cid]; ok {
		return model.Vector{X: m.vx / 1000, Y: m.vy / 1000}
	}
	w := f.defaultWidth
	if hw, ok := f.widths[cid]; ok {
		w = hw
	}
	return model.Vector{X: w / 2 / 1000, Y: f.defaultVY / 1000}
}

// ToUnicode maps a code through the ToUnicode CMap when present.
// Identity encodings without a ToUnicode map have no reliable text.
func (f *CompositeFont) ToUnicode(code int) string {
	if f.toUnicode != nil {
		if text := f.toUnicode.Lookup(code); text != "" {
			return NormalizeUnicode(text)
		}
	}
	return ""
}
