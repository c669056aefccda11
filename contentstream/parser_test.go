package contentstream

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tsawler/vellum/core"
)

func TestParseSimpleOperator(t *testing.T) {
	ops, err := NewParser([]byte("q")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}
	if ops[0].Operator != "q" {
		t.Errorf("expected operator 'q', got %q", ops[0].Operator)
	}
	if len(ops[0].Operands) != 0 {
		t.Errorf("expected 0 operands, got %d", len(ops[0].Operands))
	}
}

func TestParseOperandGrouping(t *testing.T) {
	input := []byte("1 0 0 1 72 720 cm BT /F1 12 Tf (Hi) Tj ET")
	ops, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Operation{
		{Operator: "cm", Operands: []core.Object{
			core.Int(1), core.Int(0), core.Int(0), core.Int(1), core.Int(72), core.Int(720),
		}},
		{Operator: "BT"},
		{Operator: "Tf", Operands: []core.Object{core.Name("F1"), core.Int(12)}},
		{Operator: "Tj", Operands: []core.Object{core.String("Hi")}},
		{Operator: "ET"},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTJArray(t *testing.T) {
	ops, err := NewParser([]byte("[(He) -30 (llo)] TJ")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 1 || ops[0].Operator != "TJ" {
		t.Fatalf("expected single TJ operation, got %v", ops)
	}
	arr, ok := ops[0].Operands[0].(core.Array)
	if !ok {
		t.Fatalf("expected Array operand, got %T", ops[0].Operands[0])
	}
	if arr.Len() != 3 {
		t.Errorf("expected 3 array elements, got %d", arr.Len())
	}
}

func TestParseDanglingOperands(t *testing.T) {
	// operands with no trailing operator are discarded
	ops, err := NewParser([]byte("q Q 1 2 3")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}
}

func TestParseInlineImageOperation(t *testing.T) {
	ops, err := NewParser([]byte("BI /W 1 /H 1 ID x EI S")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}
	if ops[0].Operator != "BI" {
		t.Errorf("expected BI, got %q", ops[0].Operator)
	}
	if _, ok := ops[0].Operands[0].(*core.Stream); !ok {
		t.Errorf("expected stream operand, got %T", ops[0].Operands[0])
	}
	if ops[1].Operator != "S" {
		t.Errorf("expected S, got %q", ops[1].Operator)
	}
}

func TestParseEmptyInput(t *testing.T) {
	ops, err := NewParser(nil).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("expected no operations, got %d", len(ops))
	}
}
