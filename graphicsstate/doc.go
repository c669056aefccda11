// Package graphicsstate models the PDF graphics state.
//
// [State] is a value record of every parameter the content stream
// operators can set: the CTM, clip, color, line attributes, text
// state, and transparency parameters. [Stack] layers q/Q save and
// restore semantics on top with deep [State.Clone] copies. [Path] is
// the current path under construction between segment operators and
// the painting operator that consumes it.
//
// Text and line matrices are deliberately absent from [TextState].
// They exist only between BT and ET and are owned by the engine that
// runs the stream.
package graphicsstate
