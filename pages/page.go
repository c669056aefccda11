package pages

import (
	"bytes"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/logging"
	"github.com/tsawler/vellum/model"
	"github.com/tsawler/vellum/xobject"
)

// letterWidth and letterHeight are the US Letter fallback dimensions
// used when a page carries no MediaBox.
const (
	letterWidth  = 612.0
	letterHeight = 792.0
)

// Page wraps a page dictionary.
type Page struct {
	dict     core.Dict
	resolver core.Resolver
}

// New wraps dict as a page. The resolver follows indirect references
// in the dictionary and its Parent chain.
func New(dict core.Dict, r core.Resolver) *Page {
	return &Page{dict: dict, resolver: r}
}

// Dict returns the underlying page dictionary.
func (p *Page) Dict() core.Dict { return p.dict }

// inherited looks up key on the page, then up the Parent chain.
func (p *Page) inherited(key string) core.Object {
	dict := p.dict
	for i := 0; dict != nil && i < 64; i++ {
		if obj := core.Resolve(dict.Get(key), p.resolver); obj != nil {
			if _, isNull := obj.(core.Null); !isNull {
				return obj
			}
		}
		parent, ok := core.Resolve(dict.Get("Parent"), p.resolver).(core.Dict)
		if !ok {
			return nil
		}
		dict = parent
	}
	return nil
}

func (p *Page) boxEntry(key string) (model.BBox, bool) {
	if arr, ok := p.inherited(key).(core.Array); ok {
		if v, ok := arr.Floats(); ok && len(v) == 4 {
			return model.NewBBoxFromCorners(v[0], v[1], v[2], v[3]), true
		}
	}
	return model.BBox{}, false
}

// MediaBox returns the page media box, defaulting to US Letter.
func (p *Page) MediaBox() model.BBox {
	if box, ok := p.boxEntry("MediaBox"); ok && box.IsValid() {
		return box
	}
	return model.NewBBox(0, 0, letterWidth, letterHeight)
}

// CropBox returns the visible region in default user space. An absent
// or degenerate crop box falls back to the media box.
func (p *Page) CropBox() model.BBox {
	media := p.MediaBox()
	if box, ok := p.boxEntry("CropBox"); ok && box.IsValid() {
		return box.Intersection(media)
	}
	return media
}

// Rotation returns the page rotation normalized to 0, 90, 180 or 270.
func (p *Page) Rotation() int {
	r, ok := p.inherited("Rotate").(core.Int)
	if !ok {
		return 0
	}
	rot := int(r) % 360
	if rot < 0 {
		rot += 360
	}
	if rot%90 != 0 {
		logging.Logger().Warn("invalid page rotation, ignoring", "rotate", int(r))
		return 0
	}
	return rot
}

// Matrix maps default user space to device space: the crop box origin
// moves to (0, 0) and the rotation is applied so the rotated page
// lies in the positive quadrant.
func (p *Page) Matrix() model.Matrix {
	crop := p.CropBox()
	origin := model.Translate(-crop.X, -crop.Y)
	switch p.Rotation() {
	case 90:
		return origin.Multiply(model.NewMatrix(0, 1, -1, 0, crop.Height, 0))
	case 180:
		return origin.Multiply(model.NewMatrix(-1, 0, 0, -1, crop.Width, crop.Height))
	case 270:
		return origin.Multiply(model.NewMatrix(0, -1, 1, 0, 0, crop.Width))
	default:
		return origin
	}
}

// contentStreams collects the resolved content streams of the page.
func (p *Page) contentStreams() []*core.Stream {
	switch c := core.Resolve(p.dict.Get("Contents"), p.resolver).(type) {
	case *core.Stream:
		return []*core.Stream{c}
	case core.Array:
		out := make([]*core.Stream, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if s, ok := core.Resolve(c.Get(i), p.resolver).(*core.Stream); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// HasContents reports whether the page has at least one content
// stream.
func (p *Page) HasContents() bool {
	return len(p.contentStreams()) > 0
}

// Contents returns the decoded content bytes. Multiple streams are
// joined with a single space so tokens split across stream boundaries
// stay separated.
func (p *Page) Contents() ([]byte, error) {
	streams := p.contentStreams()
	if len(streams) == 1 {
		return streams[0].Decoded()
	}
	var buf bytes.Buffer
	for i, s := range streams {
		data, err := s.Decoded()
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// Resources returns the page resource dictionary, inherited through
// the Parent chain, or nil.
func (p *Page) Resources() core.Dict {
	if d, ok := p.inherited("Resources").(core.Dict); ok {
		return d
	}
	return nil
}

// Annotations returns the page's annotations.
func (p *Page) Annotations() []interpreter.Annotation {
	arr, ok := core.Resolve(p.dict.Get("Annots"), p.resolver).(core.Array)
	if !ok {
		return nil
	}
	out := make([]interpreter.Annotation, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if d, ok := core.Resolve(arr.Get(i), p.resolver).(core.Dict); ok {
			out = append(out, &Annotation{dict: d, resolver: p.resolver})
		}
	}
	return out
}

// Annotation wraps an annotation dictionary.
type Annotation struct {
	dict     core.Dict
	resolver core.Resolver
}

// Dict returns the underlying annotation dictionary.
func (a *Annotation) Dict() core.Dict { return a.dict }

// Subtype returns the annotation subtype name.
func (a *Annotation) Subtype() string {
	n, _ := a.dict.GetName("Subtype")
	return string(n)
}

// IsHidden reports whether the Hidden or NoView flags are set.
func (a *Annotation) IsHidden() bool {
	f, ok := a.dict.GetInt("F")
	return ok && (f&2 != 0 || f&32 != 0)
}

// Rect returns the annotation rectangle in default user space.
func (a *Annotation) Rect() model.BBox {
	if arr, ok := core.Resolve(a.dict.Get("Rect"), a.resolver).(core.Array); ok {
		if v, ok := arr.Floats(); ok && len(v) == 4 {
			return model.NewBBoxFromCorners(v[0], v[1], v[2], v[3])
		}
	}
	return model.BBox{}
}

// Appearance returns the normal appearance stream, or nil. When the
// normal appearance is a state dictionary the AS entry selects the
// active state; a single-state dictionary without AS uses that state.
func (a *Annotation) Appearance() interpreter.Form {
	ap, ok := core.Resolve(a.dict.Get("AP"), a.resolver).(core.Dict)
	if !ok {
		return nil
	}
	switch n := core.Resolve(ap.Get("N"), a.resolver).(type) {
	case *core.Stream:
		return xobject.NewForm(n, a.resolver)
	case core.Dict:
		if state, ok := a.dict.GetName("AS"); ok {
			if s, ok := core.Resolve(n.Get(string(state)), a.resolver).(*core.Stream); ok {
				return xobject.NewForm(s, a.resolver)
			}
			return nil
		}
		if len(n) == 1 {
			for _, v := range n {
				if s, ok := core.Resolve(v, a.resolver).(*core.Stream); ok {
					return xobject.NewForm(s, a.resolver)
				}
			}
		}
	}
	return nil
}
