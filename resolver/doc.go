// Package resolver resolves PDF indirect references.
//
// Documents refer to shared objects through references like "5 0 R".
// A Resolver follows such references against a Store, the source of
// indirect objects:
//
//	r := resolver.New(store)
//	obj, err := r.Resolve(ref)
//
// Resolver satisfies core.Resolver, so it plugs into the interpreter
// and the page wrappers directly.
//
// # Deep Expansion
//
// Expand rebuilds a container with every nested reference replaced by
// its object:
//
//	expanded, err := r.Expand(dict)
//
// Reference cycles are reported as errors rather than followed, and
// expansion depth is bounded:
//
//	r := resolver.New(store, resolver.WithMaxDepth(50))
//
// # Stores
//
// Any type with Object(number, generation) can back a resolver.
// MapStore is a map-based store for synthetic documents.
package resolver
