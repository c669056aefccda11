package interpreter

import "github.com/tsawler/vellum/core"

// DefaultMaxRecursionDepth bounds how deeply form XObjects may nest
// through Do before Do refuses to recurse. Only the Do form path counts
// levels; patterns, Type 3 glyphs, and soft masks do not.
const DefaultMaxRecursionDepth = 25

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithMaxRecursionDepth overrides the nested-stream recursion ceiling.
func WithMaxRecursionDepth(n int) Option {
	return func(it *Interpreter) {
		if n > 0 {
			it.maxDepth = n
		}
	}
}

// WithStrictMode disables lenient recovery: graphics-stack underflow
// and XObject failures become hard errors instead of logged warnings.
func WithStrictMode() Option {
	return func(it *Interpreter) {
		it.strict = true
	}
}

// WithResolver supplies a resolver for indirect references in
// resource dictionaries and font programs.
func WithResolver(r core.Resolver) Option {
	return func(it *Interpreter) {
		it.resolver = r
	}
}
