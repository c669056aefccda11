// Package pages wraps page dictionaries behind the capability surface
// the interpreter consumes, and flattens page trees into leaf pages.
//
// A Page exposes crop box, page matrix, decoded contents, resources,
// and annotations. Inheritable attributes (MediaBox, CropBox, Rotate,
// Resources) are read through the Parent chain:
//
//	page := pages.New(dict, resolver)
//	err := it.ProcessPage(page)
//
// # Page Tree
//
// Documents organize pages as a tree of Pages nodes. Tree flattens it
// in document order:
//
//	tree, _ := pages.NewCatalog(catalogDict, resolver).PageTree()
//	all, _ := tree.Pages()
//	first, _ := tree.Page(0)
//
// Indirect references throughout are followed with a core.Resolver;
// the resolver package provides one backed by an object store.
package pages
