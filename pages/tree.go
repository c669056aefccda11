package pages

import (
	"fmt"

	"github.com/tsawler/vellum/core"
)

// maxTreeDepth bounds page tree traversal so a malformed tree with a
// Kids cycle terminates.
const maxTreeDepth = 64

// Catalog wraps the document catalog dictionary, the root of the
// document structure.
type Catalog struct {
	dict     core.Dict
	resolver core.Resolver
}

// NewCatalog wraps dict as the document catalog.
func NewCatalog(dict core.Dict, r core.Resolver) *Catalog {
	return &Catalog{dict: dict, resolver: r}
}

// Dict returns the underlying catalog dictionary.
func (c *Catalog) Dict() core.Dict { return c.dict }

// PageTree returns the catalog's page tree.
func (c *Catalog) PageTree() (*Tree, error) {
	root, ok := core.Resolve(c.dict.Get("Pages"), c.resolver).(core.Dict)
	if !ok {
		return nil, fmt.Errorf("catalog has no /Pages tree")
	}
	return NewTree(root, c.resolver), nil
}

// Metadata returns the catalog metadata stream, or nil.
func (c *Catalog) Metadata() *core.Stream {
	s, _ := core.Resolve(c.dict.Get("Metadata"), c.resolver).(*core.Stream)
	return s
}

// Tree flattens a page tree into its leaf pages. Intermediate Pages
// nodes carry inheritable attributes, which the Page wrapper reads
// through the Parent chain.
type Tree struct {
	root     core.Dict
	resolver core.Resolver

	pages []*Page
}

// NewTree wraps the root Pages dictionary.
func NewTree(root core.Dict, r core.Resolver) *Tree {
	return &Tree{root: root, resolver: r}
}

// Count returns the declared page count, falling back to the number
// of leaves found by traversal.
func (t *Tree) Count() (int, error) {
	if n, ok := t.root.GetInt("Count"); ok {
		return int(n), nil
	}
	pages, err := t.Pages()
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// Pages returns the leaf pages in document order. The flattened list
// is cached; the first call walks the tree.
func (t *Tree) Pages() ([]*Page, error) {
	if t.pages == nil {
		pages := make([]*Page, 0)
		if err := t.walk(t.root, 0, &pages); err != nil {
			return nil, fmt.Errorf("walking page tree: %w", err)
		}
		t.pages = pages
	}
	return t.pages, nil
}

// Page returns the page at index, 0-based.
func (t *Tree) Page(index int) (*Page, error) {
	pages, err := t.Pages()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(pages))
	}
	return pages[index], nil
}

// walk visits node and its descendants. A node with Kids is an
// intermediate Pages node even when its Type is missing; anything
// else is taken as a leaf.
func (t *Tree) walk(node core.Dict, depth int, out *[]*Page) error {
	if depth >= maxTreeDepth {
		return fmt.Errorf("tree deeper than %d levels", maxTreeDepth)
	}

	typeName, _ := node.GetName("Type")
	kids, hasKids := core.Resolve(node.Get("Kids"), t.resolver).(core.Array)

	switch {
	case typeName == "Page":
		*out = append(*out, New(node, t.resolver))
	case hasKids:
		for i := 0; i < kids.Len(); i++ {
			kid, ok := core.Resolve(kids.Get(i), t.resolver).(core.Dict)
			if !ok {
				return fmt.Errorf("kid %d is not a dictionary", i)
			}
			if err := t.walk(kid, depth+1, out); err != nil {
				return err
			}
		}
	case typeName == "Pages":
		return fmt.Errorf("Pages node has no /Kids")
	default:
		*out = append(*out, New(node, t.resolver))
	}
	return nil
}
