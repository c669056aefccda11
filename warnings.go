package vellum

import (
	"fmt"
	"strings"
)

// Warning records a non-fatal problem met while interpreting a page:
// an operator with no handler, or a handler failure the lenient
// recovery policy absorbed.
type Warning struct {
	// Page is the 1-based page number the warning arose on.
	Page int

	// Op is the operator involved.
	Op string

	// Err is the handler failure, nil for unsupported operators.
	Err error
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("page %d: operator %s: %v", w.Page, w.Op, w.Err)
	}
	return fmt.Sprintf("page %d: unsupported operator %s", w.Page, w.Op)
}

// FormatWarnings joins warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
