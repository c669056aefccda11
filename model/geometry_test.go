package model

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func pointsEqual(a, b Point) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Point{1, 1}, Point{1, 1}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"diagonal", Point{0, 0}, Point{3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); !approxEqual(got, tt.want) {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixTransform(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		p    Point
		want Point
	}{
		{"identity", Identity(), Point{3, 4}, Point{3, 4}},
		{"translate", Translate(10, 20), Point{1, 2}, Point{11, 22}},
		{"scale", Scale(2, 3), Point{4, 5}, Point{8, 15}},
		{"rotate 90", Rotate(math.Pi / 2), Point{1, 0}, Point{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Transform(tt.p); !pointsEqual(got, tt.want) {
				t.Errorf("Transform = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// in m.Multiply(n), m applies first: scale then translate
	m := Scale(2, 2).Multiply(Translate(10, 0))
	got := m.Transform(Point{1, 1})
	want := Point{12, 2}
	if !pointsEqual(got, want) {
		t.Errorf("scale-then-translate: got %+v, want %+v", got, want)
	}

	// translate then scale gives a different result
	m = Translate(10, 0).Multiply(Scale(2, 2))
	got = m.Transform(Point{1, 1})
	want = Point{22, 2}
	if !pointsEqual(got, want) {
		t.Errorf("translate-then-scale: got %+v, want %+v", got, want)
	}
}

func TestMatrixMultiplyIdentity(t *testing.T) {
	m := NewMatrix(2, 0, 0, 3, 5, 7)
	if got := m.Multiply(Identity()); got != m {
		t.Errorf("m x I = %v, want %v", got, m)
	}
	if got := Identity().Multiply(m); got != m {
		t.Errorf("I x m = %v, want %v", got, m)
	}
}

func TestMatrixTransformVector(t *testing.T) {
	// translation must not affect displacements
	m := Translate(100, 200).Multiply(Scale(2, 3))
	got := m.TransformVector(Vector{1, 1})
	want := Vector{2, 3}
	if !approxEqual(got.X, want.X) || !approxEqual(got.Y, want.Y) {
		t.Errorf("TransformVector = %+v, want %+v", got, want)
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("Translate(1,0).IsIdentity() = true")
	}
}

func TestMatrixScalingFactors(t *testing.T) {
	m := Scale(3, 4)
	if got := m.ScalingFactorX(); !approxEqual(got, 3) {
		t.Errorf("ScalingFactorX = %v, want 3", got)
	}
	if got := m.ScalingFactorY(); !approxEqual(got, 4) {
		t.Errorf("ScalingFactorY = %v, want 4", got)
	}

	r := Rotate(math.Pi / 2)
	if got := r.ScalingFactorX(); !approxEqual(got, 1) {
		t.Errorf("rotated ScalingFactorX = %v, want 1", got)
	}
}

func TestBBoxEdges(t *testing.T) {
	b := NewBBox(10, 20, 30, 40)
	if b.Left() != 10 || b.Right() != 40 || b.Bottom() != 20 || b.Top() != 60 {
		t.Errorf("edges = (%v %v %v %v)", b.Left(), b.Right(), b.Bottom(), b.Top())
	}
	if c := b.Center(); !pointsEqual(c, Point{25, 40}) {
		t.Errorf("Center = %+v", c)
	}
	if !approxEqual(b.Area(), 1200) {
		t.Errorf("Area = %v, want 1200", b.Area())
	}
}

func TestBBoxFromCorners(t *testing.T) {
	// swapped corners normalize
	b := NewBBoxFromCorners(100, 200, 0, 50)
	want := NewBBox(0, 50, 100, 150)
	if b != want {
		t.Errorf("NewBBoxFromCorners = %+v, want %+v", b, want)
	}
}

func TestBBoxContains(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)
	if !b.Contains(Point{5, 5}) {
		t.Error("Contains(center) = false")
	}
	if !b.Contains(Point{0, 0}) {
		t.Error("Contains(corner) = false")
	}
	if b.Contains(Point{11, 5}) {
		t.Error("Contains(outside) = true")
	}
}

func TestBBoxIntersection(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(5, 5, 10, 10)
	got := a.Intersection(b)
	want := NewBBox(5, 5, 5, 5)
	if got != want {
		t.Errorf("Intersection = %+v, want %+v", got, want)
	}

	c := NewBBox(20, 20, 5, 5)
	if got := a.Intersection(c); got != (BBox{}) {
		t.Errorf("disjoint Intersection = %+v, want zero box", got)
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 5, 5)
	b := NewBBox(10, 10, 5, 5)
	got := a.Union(b)
	want := NewBBox(0, 0, 15, 15)
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestBBoxValidity(t *testing.T) {
	if !NewBBox(0, 0, 1, 1).IsValid() {
		t.Error("positive box IsValid = false")
	}
	if NewBBox(0, 0, 0, 1).IsValid() {
		t.Error("zero-width box IsValid = true")
	}
	if NewBBox(0, 0, -1, 1).IsValid() {
		t.Error("negative-width box IsValid = true")
	}
	if !NewBBox(0, 0, 0, 1).IsEmpty() {
		t.Error("zero-width box IsEmpty = false")
	}
}

func TestBBoxTransform(t *testing.T) {
	b := NewBBox(0, 0, 10, 20)

	got := b.Transform(Translate(5, 5))
	want := NewBBox(5, 5, 10, 20)
	if got != want {
		t.Errorf("translated box = %+v, want %+v", got, want)
	}

	// rotation by 90 degrees swaps width and height
	got = b.Transform(Rotate(math.Pi / 2))
	if !approxEqual(got.Width, 20) || !approxEqual(got.Height, 10) {
		t.Errorf("rotated box = %+v, want 20x10", got)
	}
}
