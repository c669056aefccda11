package filters

import (
	"bytes"
	"testing"
)

func TestRunLengthDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"empty", nil, nil},
		{"eod only", []byte{128}, nil},
		{"literal run", []byte{2, 'a', 'b', 'c', 128}, []byte("abc")},
		{"repeat run", []byte{255, 'x', 128}, []byte("xx")},
		{"max repeat", []byte{129, 'y', 128}, bytes.Repeat([]byte("y"), 128)},
		{"mixed", []byte{1, 'a', 'b', 254, 'c', 0, 'd', 128}, []byte("abcccd")},
		{"no eod marker", []byte{0, 'z'}, []byte("z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RunLengthDecode(tt.input)
			if err != nil {
				t.Fatalf("RunLengthDecode failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("RunLengthDecode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunLengthDecodeTruncated(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"truncated literal", []byte{5, 'a'}},
		{"truncated repeat", []byte{200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RunLengthDecode(tt.input); err == nil {
				t.Fatal("expected error for truncated input")
			}
		})
	}
}
