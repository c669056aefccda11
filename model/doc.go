// Package model provides the geometric primitives the engine is built
// on.
//
//   - [Matrix] - 2D affine transformation in PDF's six-entry form
//   - [Point] - 2D point with distance calculation
//   - [Vector] - 2D displacement, unaffected by translation
//   - [BBox] - bounding box with intersection, union, and transform
//
// # Matrix Convention
//
// PDF transforms points as row vectors, so in a product
// m.Multiply(n) the transform m applies first:
//
//	ctm = ctm.Multiply(pageMatrix)
//	p := ctm.Transform(model.Point{X: x, Y: y})
//
// All coordinates follow the PDF convention with Y growing upward.
package model
