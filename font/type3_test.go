package font

import (
	"testing"

	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/model"
)

func testType3Dict() core.Dict {
	return core.Dict{
		"Subtype":    core.Name("Type3"),
		"Name":       core.Name("F9"),
		"FontMatrix": core.Array{core.Real(0.01), core.Int(0), core.Int(0), core.Real(0.01), core.Int(0), core.Int(0)},
		"CharProcs": core.Dict{
			"square": &core.Stream{Dict: core.Dict{}, Data: []byte("0 0 10 10 re f")},
		},
		"Encoding": core.Dict{
			"Differences": core.Array{core.Int(97), core.Name("square")},
		},
		"Resources": core.Dict{"ProcSet": core.Array{core.Name("PDF")}},
		"FirstChar": core.Int(97),
		"Widths":    core.Array{core.Int(100)},
	}
}

func TestType3FontCharProc(t *testing.T) {
	f, err := newType3Font(testType3Dict(), nil)
	if err != nil {
		t.Fatalf("newType3Font failed: %v", err)
	}

	proc := f.CharProc(97)
	if proc == nil {
		t.Fatal("CharProc(97) = nil")
	}
	if string(proc.Data) != "0 0 10 10 re f" {
		t.Errorf("char proc data = %q", proc.Data)
	}

	if f.CharProc(98) != nil {
		t.Error("CharProc for unmapped code should be nil")
	}
}

func TestType3FontMatrix(t *testing.T) {
	f, err := newType3Font(testType3Dict(), nil)
	if err != nil {
		t.Fatalf("newType3Font failed: %v", err)
	}

	want := model.NewMatrix(0.01, 0, 0, 0.01, 0, 0)
	if f.FontMatrix() != want {
		t.Errorf("FontMatrix = %v, want %v", f.FontMatrix(), want)
	}
}

func TestType3FontMatrixDefault(t *testing.T) {
	f, err := newType3Font(core.Dict{"Subtype": core.Name("Type3")}, nil)
	if err != nil {
		t.Fatalf("newType3Font failed: %v", err)
	}
	want := model.NewMatrix(0.001, 0, 0, 0.001, 0, 0)
	if f.FontMatrix() != want {
		t.Errorf("FontMatrix = %v, want glyph-space default", f.FontMatrix())
	}
}

func TestType3FontDisplacement(t *testing.T) {
	f, err := newType3Font(testType3Dict(), nil)
	if err != nil {
		t.Fatalf("newType3Font failed: %v", err)
	}

	// width 100 in glyph space through a 0.01 font matrix
	if got := f.Displacement(97).X; !floatNear(got, 1.0) {
		t.Errorf("Displacement(97).X = %v, want 1.0", got)
	}
	if got := f.Displacement(98).X; !floatNear(got, 0) {
		t.Errorf("Displacement for unmapped code = %v, want 0", got)
	}
}

func TestType3FontResources(t *testing.T) {
	f, err := newType3Font(testType3Dict(), nil)
	if err != nil {
		t.Fatalf("newType3Font failed: %v", err)
	}
	if f.Resources() == nil {
		t.Error("Resources = nil")
	}

	bare, _ := newType3Font(core.Dict{"Subtype": core.Name("Type3")}, nil)
	if bare.Resources() != nil {
		t.Error("Resources for bare font should be nil")
	}
}

func TestType3FontImplementsType3(t *testing.T) {
	f, err := FromDict(testType3Dict(), nil)
	if err != nil {
		t.Fatalf("FromDict failed: %v", err)
	}
	if _, ok := f.(Type3); !ok {
		t.Fatalf("%T does not implement Type3", f)
	}
}
