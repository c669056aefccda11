package core

import (
	"fmt"
	"testing"
)

func TestObjectTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  ObjectType
		want string
	}{
		{"Null", ObjNull, "Null"},
		{"Bool", ObjBool, "Bool"},
		{"Int", ObjInt, "Int"},
		{"Real", ObjReal, "Real"},
		{"String", ObjString, "String"},
		{"Name", ObjName, "Name"},
		{"Array", ObjArray, "Array"},
		{"Dict", ObjDict, "Dict"},
		{"Stream", ObjStream, "Stream"},
		{"IndirectRef", ObjIndirect, "IndirectRef"},
		{"Unknown", ObjectType(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("ObjectType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScalarObjects(t *testing.T) {
	tests := []struct {
		name  string
		obj   Object
		wantT ObjectType
		wantS string
	}{
		{"null", Null{}, ObjNull, "null"},
		{"true", Bool(true), ObjBool, "true"},
		{"false", Bool(false), ObjBool, "false"},
		{"zero", Int(0), ObjInt, "0"},
		{"negative", Int(-42), ObjInt, "-42"},
		{"real", Real(1.5), ObjReal, "1.5"},
		{"string", String("abc"), ObjString, "abc"},
		{"name", Name("Font"), ObjName, "/Font"},
		{"ref", IndirectRef{Number: 7, Generation: 0}, ObjIndirect, "7 0 R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.obj.Type() != tt.wantT {
				t.Errorf("Type() = %v, want %v", tt.obj.Type(), tt.wantT)
			}
			if tt.obj.String() != tt.wantS {
				t.Errorf("String() = %q, want %q", tt.obj.String(), tt.wantS)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		obj    Object
		want   float64
		wantOK bool
	}{
		{Int(3), 3, true},
		{Real(2.5), 2.5, true},
		{String("x"), 0, false},
		{Name("x"), 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.obj), func(t *testing.T) {
			got, ok := ToFloat(tt.obj)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ToFloat(%v) = (%v, %v), want (%v, %v)", tt.obj, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestArrayAccessors(t *testing.T) {
	arr := Array{Int(1), Real(2.5), Name("N"), String("s")}

	if arr.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", arr.Len())
	}
	if got := arr.Get(-1); got != nil {
		t.Errorf("Get(-1) = %v, want nil", got)
	}
	if got := arr.Get(4); got != nil {
		t.Errorf("Get(4) = %v, want nil", got)
	}
	if f, ok := arr.GetFloat(1); !ok || f != 2.5 {
		t.Errorf("GetFloat(1) = (%v, %v), want (2.5, true)", f, ok)
	}
	if n, ok := arr.GetName(2); !ok || n != "N" {
		t.Errorf("GetName(2) = (%v, %v), want (N, true)", n, ok)
	}
	if i, ok := arr.GetInt(0); !ok || i != 1 {
		t.Errorf("GetInt(0) = (%v, %v), want (1, true)", i, ok)
	}
	if arr.String() != "[1 2.5 /N s]" {
		t.Errorf("String() = %q", arr.String())
	}
}

func TestArrayFloats(t *testing.T) {
	fs, ok := Array{Int(1), Real(2), Int(3)}.Floats()
	if !ok {
		t.Fatal("Floats() not ok for numeric array")
	}
	want := []float64{1, 2, 3}
	for i := range want {
		if fs[i] != want[i] {
			t.Errorf("Floats()[%d] = %v, want %v", i, fs[i], want[i])
		}
	}

	if _, ok := (Array{Int(1), Name("x")}).Floats(); ok {
		t.Error("Floats() ok for mixed array, want false")
	}
}

func TestDictAccessors(t *testing.T) {
	dict := Dict{
		"Name":   Name("F1"),
		"Int":    Int(12),
		"Real":   Real(0.5),
		"Bool":   Bool(true),
		"String": String("hi"),
		"Array":  Array{Int(1)},
		"Dict":   Dict{"K": Int(2)},
		"Stream": &Stream{Dict: Dict{}},
		"Ref":    IndirectRef{Number: 3},
	}

	if n, ok := dict.GetName("Name"); !ok || n != "F1" {
		t.Errorf("GetName = (%v, %v)", n, ok)
	}
	if i, ok := dict.GetInt("Int"); !ok || i != 12 {
		t.Errorf("GetInt = (%v, %v)", i, ok)
	}
	if f, ok := dict.GetFloat("Real"); !ok || f != 0.5 {
		t.Errorf("GetFloat = (%v, %v)", f, ok)
	}
	if f, ok := dict.GetFloat("Int"); !ok || f != 12 {
		t.Errorf("GetFloat on Int = (%v, %v)", f, ok)
	}
	if b, ok := dict.GetBool("Bool"); !ok || !bool(b) {
		t.Errorf("GetBool = (%v, %v)", b, ok)
	}
	if s, ok := dict.GetString("String"); !ok || s != "hi" {
		t.Errorf("GetString = (%v, %v)", s, ok)
	}
	if a, ok := dict.GetArray("Array"); !ok || a.Len() != 1 {
		t.Errorf("GetArray = (%v, %v)", a, ok)
	}
	if d, ok := dict.GetDict("Dict"); !ok || !d.Has("K") {
		t.Errorf("GetDict = (%v, %v)", d, ok)
	}
	if _, ok := dict.GetStream("Stream"); !ok {
		t.Error("GetStream not ok")
	}
	if r, ok := dict.GetIndirectRef("Ref"); !ok || r.Number != 3 {
		t.Errorf("GetIndirectRef = (%v, %v)", r, ok)
	}
	if dict.Has("Missing") {
		t.Error("Has(Missing) = true")
	}
	if _, ok := dict.GetName("Int"); ok {
		t.Error("GetName on Int succeeded")
	}
}

func TestDictSetAndKeys(t *testing.T) {
	d := Dict{}
	d.Set("A", Int(1))
	d.Set("B", Int(2))
	keys := d.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() len = %d, want 2", len(keys))
	}
}

type mapResolver map[IndirectRef]Object

func (m mapResolver) Resolve(ref IndirectRef) (Object, error) {
	obj, ok := m[ref]
	if !ok {
		return nil, fmt.Errorf("object %s not found", ref)
	}
	return obj, nil
}

func TestResolve(t *testing.T) {
	r := mapResolver{
		{Number: 1}: Int(42),
		{Number: 2}: IndirectRef{Number: 1},
	}

	if got := Resolve(IndirectRef{Number: 1}, r); got != Int(42) {
		t.Errorf("Resolve(1 0 R) = %v, want 42", got)
	}
	// chains follow through
	if got := Resolve(IndirectRef{Number: 2}, r); got != Int(42) {
		t.Errorf("Resolve(2 0 R) = %v, want 42", got)
	}
	// direct objects pass through
	if got := Resolve(Name("X"), r); got != Name("X") {
		t.Errorf("Resolve(/X) = %v, want /X", got)
	}
	// missing objects resolve to null
	if got := Resolve(IndirectRef{Number: 9}, r); got != (Null{}) {
		t.Errorf("Resolve(9 0 R) = %v, want null", got)
	}
	// nil resolver leaves references alone
	if got := Resolve(IndirectRef{Number: 1}, nil); got != (IndirectRef{Number: 1}) {
		t.Errorf("Resolve with nil resolver = %v", got)
	}
}
