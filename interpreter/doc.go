// Package interpreter drives PDF content streams. An Interpreter
// tokenizes a stream, accumulates operands, dispatches operators to
// registered handlers, and maintains the graphics state stack, the
// effective resource scope, and the text matrices. Semantic events
// (glyphs, painted paths, images, shadings, marked content) flow to
// an EventSink supplied by the caller.
//
// The operators package registers the standard operator set; sinks in
// the text and graphics packages turn events into extracted content.
package interpreter
