package resolver

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tsawler/vellum/core"
)

func TestResolveFollowsChain(t *testing.T) {
	store := MapStore{
		1: core.IndirectRef{Number: 2},
		2: core.IndirectRef{Number: 3},
		3: core.Int(42),
	}
	r := New(store)

	obj, err := r.Resolve(core.IndirectRef{Number: 1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if obj != core.Int(42) {
		t.Errorf("Resolve = %v, want 42", obj)
	}
}

func TestResolveDetectsCycle(t *testing.T) {
	store := MapStore{
		1: core.IndirectRef{Number: 2},
		2: core.IndirectRef{Number: 1},
	}
	r := New(store)

	if _, err := r.Resolve(core.IndirectRef{Number: 1}); err == nil {
		t.Error("Resolve did not report the reference cycle")
	}
}

func TestResolveUnknownObject(t *testing.T) {
	r := New(MapStore{})
	_, err := r.Resolve(core.IndirectRef{Number: 9})
	if err == nil || !strings.Contains(err.Error(), "9") {
		t.Errorf("Resolve error = %v, want object number in message", err)
	}
}

func TestExpandContainers(t *testing.T) {
	store := MapStore{
		1: core.String("leaf"),
		2: core.Array{core.Int(1), core.IndirectRef{Number: 1}},
	}
	r := New(store)

	obj, err := r.Expand(core.Dict{
		"Direct": core.Name("kept"),
		"Ref":    core.IndirectRef{Number: 1},
		"Nested": core.IndirectRef{Number: 2},
	})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	want := core.Dict{
		"Direct": core.Name("kept"),
		"Ref":    core.String("leaf"),
		"Nested": core.Array{core.Int(1), core.String("leaf")},
	}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandStreamDict(t *testing.T) {
	store := MapStore{1: core.Int(7)}
	r := New(store)

	obj, err := r.Expand(&core.Stream{
		Dict: core.Dict{"Length": core.IndirectRef{Number: 1}},
		Data: []byte("abc"),
	})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	s, ok := obj.(*core.Stream)
	if !ok {
		t.Fatalf("Expand returned %T, want *core.Stream", obj)
	}
	if n, _ := s.Dict.GetInt("Length"); n != 7 {
		t.Errorf("Length = %d, want 7", n)
	}
	if string(s.Data) != "abc" {
		t.Errorf("Data = %q, want abc", s.Data)
	}
}

func TestExpandSharedObjectAcrossBranches(t *testing.T) {
	store := MapStore{1: core.Int(1)}
	r := New(store)

	obj, err := r.Expand(core.Array{
		core.IndirectRef{Number: 1},
		core.IndirectRef{Number: 1},
	})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	arr := obj.(core.Array)
	if arr[0] != core.Int(1) || arr[1] != core.Int(1) {
		t.Errorf("Expand = %v, shared references must resolve in every branch", arr)
	}
}

func TestExpandDepthBound(t *testing.T) {
	store := MapStore{
		1: core.Array{core.Array{core.Array{core.Int(0)}}},
	}
	r := New(store, WithMaxDepth(2))

	if _, err := r.Expand(core.IndirectRef{Number: 1}); err == nil {
		t.Error("Expand did not enforce the depth bound")
	}
}

func TestResolverSatisfiesCoreResolver(t *testing.T) {
	var r core.Resolver = New(MapStore{1: core.Bool(true)})
	obj := core.Resolve(core.IndirectRef{Number: 1}, r)
	if obj != core.Bool(true) {
		t.Errorf("core.Resolve = %v, want true", obj)
	}
}
