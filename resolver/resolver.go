package resolver

import (
	"fmt"

	"github.com/tsawler/vellum/core"
)

// Store supplies indirect objects by number and generation. A reader
// backed by a cross-reference table is the usual implementation;
// MapStore serves synthetic documents and tests.
type Store interface {
	Object(number, generation int) (core.Object, error)
}

// DefaultMaxDepth bounds recursion during deep expansion.
const DefaultMaxDepth = 100

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the recursion bound for Expand.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		r.maxDepth = depth
	}
}

// Resolver resolves indirect references against a Store. Reference
// chains are followed to the final object; a chain that revisits an
// object number fails rather than looping.
type Resolver struct {
	store    Store
	maxDepth int
}

// New creates a resolver over store.
func New(store Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve follows ref to the object it names. Chained references
// resolve through to the final non-reference object.
func (r *Resolver) Resolve(ref core.IndirectRef) (core.Object, error) {
	visited := map[int]bool{}
	for {
		if visited[ref.Number] {
			return nil, fmt.Errorf("circular reference for object %d", ref.Number)
		}
		visited[ref.Number] = true

		obj, err := r.store.Object(ref.Number, ref.Generation)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", ref, err)
		}
		next, ok := obj.(core.IndirectRef)
		if !ok {
			return obj, nil
		}
		ref = next
	}
}

// Expand returns obj with every nested indirect reference replaced by
// the object it names. Dictionaries, arrays, and stream dictionaries
// are rebuilt; primitives pass through. Recursion past the configured
// depth fails.
func (r *Resolver) Expand(obj core.Object) (core.Object, error) {
	return r.expand(obj, map[int]bool{}, 0)
}

func (r *Resolver) expand(obj core.Object, visited map[int]bool, depth int) (core.Object, error) {
	if depth >= r.maxDepth {
		return nil, fmt.Errorf("expansion exceeds depth %d", r.maxDepth)
	}

	switch v := obj.(type) {
	case core.IndirectRef:
		if visited[v.Number] {
			return nil, fmt.Errorf("circular reference for object %d", v.Number)
		}
		visited[v.Number] = true
		defer delete(visited, v.Number)

		resolved, err := r.Resolve(v)
		if err != nil {
			return nil, err
		}
		return r.expand(resolved, visited, depth+1)

	case core.Dict:
		out := make(core.Dict, len(v))
		for key, value := range v {
			expanded, err := r.expand(value, visited, depth+1)
			if err != nil {
				return nil, fmt.Errorf("expanding dict key %s: %w", key, err)
			}
			out[key] = expanded
		}
		return out, nil

	case core.Array:
		out := make(core.Array, len(v))
		for i, elem := range v {
			expanded, err := r.expand(elem, visited, depth+1)
			if err != nil {
				return nil, fmt.Errorf("expanding array element %d: %w", i, err)
			}
			out[i] = expanded
		}
		return out, nil

	case *core.Stream:
		dict, err := r.expand(v.Dict, visited, depth+1)
		if err != nil {
			return nil, fmt.Errorf("expanding stream dict: %w", err)
		}
		return &core.Stream{Dict: dict.(core.Dict), Data: v.Data}, nil

	default:
		return obj, nil
	}
}

// MapStore is an in-memory Store keyed by object number. Generations
// are ignored.
type MapStore map[int]core.Object

// Object returns the stored object, or an error for an unknown
// number.
func (m MapStore) Object(number, _ int) (core.Object, error) {
	obj, ok := m[number]
	if !ok {
		return nil, fmt.Errorf("object %d not found", number)
	}
	return obj, nil
}
