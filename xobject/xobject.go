// Package xobject wraps external-object streams (forms, transparency
// groups, tiling patterns) behind the capability surfaces the
// interpreter consumes.
package xobject

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/model"
)

// Subtype returns the /Subtype of an XObject stream dictionary.
func Subtype(s *core.Stream) string {
	n, _ := s.Dict.GetName("Subtype")
	return string(n)
}

// IsImage reports whether the stream is an image XObject.
func IsImage(s *core.Stream) bool { return Subtype(s) == "Image" }

// IsForm reports whether the stream is a form XObject.
func IsForm(s *core.Stream) bool { return Subtype(s) == "Form" }

// IsTransparencyGroup reports whether a form carries a transparency
// group attributes dictionary.
func IsTransparencyGroup(s *core.Stream, r core.Resolver) bool {
	if group, ok := core.Resolve(s.Dict.Get("Group"), r).(core.Dict); ok {
		if sub, ok := group.GetName("S"); ok {
			return sub == "Transparency"
		}
	}
	return false
}

// Form is a form XObject, a transparency group, or an annotation
// appearance stream. It exposes placement geometry alongside the
// content bytes.
type Form struct {
	stream   *core.Stream
	resolver core.Resolver
}

// NewForm wraps a form stream.
func NewForm(s *core.Stream, r core.Resolver) *Form {
	return &Form{stream: s, resolver: r}
}

// Data returns the decoded content bytes.
func (f *Form) Data() ([]byte, error) { return f.stream.Decoded() }

// Resources returns the form's own resource dictionary, or nil to
// inherit the enclosing scope.
func (f *Form) Resources() core.Dict {
	if d, ok := core.Resolve(f.stream.Dict.Get("Resources"), f.resolver).(core.Dict); ok {
		return d
	}
	return nil
}

// Matrix returns the form matrix, defaulting to identity.
func (f *Form) Matrix() model.Matrix {
	return matrixEntry(f.stream.Dict, "Matrix", f.resolver)
}

// BBox returns the form bounding box in form space.
func (f *Form) BBox() model.BBox {
	return bboxEntry(f.stream.Dict, "BBox", f.resolver)
}

// Stream returns the underlying stream object.
func (f *Form) Stream() *core.Stream { return f.stream }

// TilingPattern is a pattern stream with PatternType 1.
type TilingPattern struct {
	stream   *core.Stream
	resolver core.Resolver
}

// NewTilingPattern wraps a tiling pattern stream.
func NewTilingPattern(s *core.Stream, r core.Resolver) *TilingPattern {
	return &TilingPattern{stream: s, resolver: r}
}

// Data returns the decoded pattern cell bytes.
func (p *TilingPattern) Data() ([]byte, error) { return p.stream.Decoded() }

// Resources returns the pattern's resource dictionary, or nil.
func (p *TilingPattern) Resources() core.Dict {
	if d, ok := core.Resolve(p.stream.Dict.Get("Resources"), p.resolver).(core.Dict); ok {
		return d
	}
	return nil
}

// Matrix returns the pattern matrix, which maps pattern space to the
// default user space of the stream the pattern is used in.
func (p *TilingPattern) Matrix() model.Matrix {
	return matrixEntry(p.stream.Dict, "Matrix", p.resolver)
}

// BBox returns the pattern cell bounding box.
func (p *TilingPattern) BBox() model.BBox {
	return bboxEntry(p.stream.Dict, "BBox", p.resolver)
}

// IsColored reports whether the pattern supplies its own color
// (PaintType 1).
func (p *TilingPattern) IsColored() bool {
	pt, ok := p.stream.Dict.GetInt("PaintType")
	return !ok || pt == 1
}

// SoftMaskGroup extracts the transparency group stream from a soft
// mask dictionary, or nil if absent.
func SoftMaskGroup(smask core.Dict, r core.Resolver) *Form {
	if g, ok := core.Resolve(smask.Get("G"), r).(*core.Stream); ok {
		return NewForm(g, r)
	}
	return nil
}

func matrixEntry(dict core.Dict, key string, r core.Resolver) model.Matrix {
	if arr, ok := core.Resolve(dict.Get(key), r).(core.Array); ok {
		if v, ok := arr.Floats(); ok && len(v) == 6 {
			return model.NewMatrix(v[0], v[1], v[2], v[3], v[4], v[5])
		}
	}
	return model.Identity()
}

func bboxEntry(dict core.Dict, key string, r core.Resolver) model.BBox {
	if arr, ok := core.Resolve(dict.Get(key), r).(core.Array); ok {
		if v, ok := arr.Floats(); ok && len(v) == 4 {
			return model.NewBBoxFromCorners(v[0], v[1], v[2], v[3])
		}
	}
	return model.BBox{}
}
