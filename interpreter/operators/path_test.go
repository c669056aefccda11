package operators

import (
	"testing"

	"github.com/tsawler/vellum/model"
)

func TestFillRectangle(t *testing.T) {
	sink, _ := run(t, "10 20 100 50 re f", nil)
	if len(sink.paints) != 1 {
		t.Fatalf("paints = %d, want 1", len(sink.paints))
	}
	p := sink.paints[0]
	if p.stroke || !p.fill || p.evenOdd {
		t.Errorf("flags = stroke %v fill %v evenOdd %v", p.stroke, p.fill, p.evenOdd)
	}
	want := model.NewBBox(10, 20, 100, 50)
	if p.bounds != want {
		t.Errorf("bounds = %v, want %v", p.bounds, want)
	}
}

func TestPaintFlags(t *testing.T) {
	tests := []struct {
		op      string
		stroke  bool
		fill    bool
		evenOdd bool
	}{
		{"S", true, false, false},
		{"s", true, false, false},
		{"f", false, true, false},
		{"F", false, true, false},
		{"f*", false, true, true},
		{"B", true, true, false},
		{"B*", true, true, true},
		{"b", true, true, false},
		{"b*", true, true, true},
		{"n", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			sink, _ := run(t, "0 0 10 10 re "+tt.op, nil)
			if len(sink.paints) != 1 {
				t.Fatalf("paints = %d, want 1", len(sink.paints))
			}
			p := sink.paints[0]
			if p.stroke != tt.stroke || p.fill != tt.fill || p.evenOdd != tt.evenOdd {
				t.Errorf("flags = %v/%v/%v, want %v/%v/%v",
					p.stroke, p.fill, p.evenOdd, tt.stroke, tt.fill, tt.evenOdd)
			}
		})
	}
}

func TestPathResetAfterPaint(t *testing.T) {
	sink, it := run(t, "0 0 10 10 re f 50 50 m 60 60 l S", nil)
	if len(sink.paints) != 2 {
		t.Fatalf("paints = %d, want 2", len(sink.paints))
	}
	want := model.NewBBox(50, 50, 10, 10)
	if sink.paints[1].bounds != want {
		t.Errorf("second paint bounds = %v, want %v", sink.paints[1].bounds, want)
	}
	if !it.Path().IsEmpty() {
		t.Error("path should be empty after painting")
	}
}

func TestClipAppliedAfterPaint(t *testing.T) {
	_, it := run(t, "100 100 200 200 re W n", nil)
	want := model.NewBBox(100, 100, 200, 200)
	if got := it.GS().Clip; got != want {
		t.Errorf("Clip = %v, want %v", got, want)
	}
}

func TestClipIntersectsExisting(t *testing.T) {
	_, it := run(t, "0 0 150 150 re W n 100 100 200 200 re W* n", nil)
	want := model.NewBBox(100, 100, 50, 50)
	if got := it.GS().Clip; got != want {
		t.Errorf("Clip = %v, want %v", got, want)
	}
}

func TestClipTransformedByCTM(t *testing.T) {
	_, it := run(t, "2 0 0 2 0 0 cm 10 10 50 50 re W n", nil)
	want := model.NewBBox(20, 20, 100, 100)
	if got := it.GS().Clip; got != want {
		t.Errorf("Clip = %v, want %v", got, want)
	}
}

func TestClipRestoredByQ(t *testing.T) {
	_, it := run(t, "q 10 10 20 20 re W n Q", nil)
	want := model.NewBBox(0, 0, 612, 792)
	if got := it.GS().Clip; got != want {
		t.Errorf("Clip after Q = %v, want page crop %v", got, want)
	}
}

func TestCurveBounds(t *testing.T) {
	sink, _ := run(t, "0 0 m 10 40 30 40 40 0 c S", nil)
	if len(sink.paints) != 1 {
		t.Fatalf("paints = %d, want 1", len(sink.paints))
	}
	b := sink.paints[0].bounds
	if b.X != 0 || b.Y != 0 || b.Width != 40 {
		t.Errorf("bounds = %v", b)
	}
	// control points are included in the box
	if b.Height != 40 {
		t.Errorf("Height = %v, want 40", b.Height)
	}
}
