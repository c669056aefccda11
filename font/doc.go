// Package font provides the font capability surface the engine
// consumes during text showing: decoding character codes from show
// strings, reporting advance and position vectors, and mapping codes
// to Unicode.
//
// [FromDict] dispatches on the font dictionary's Subtype:
//
//   - Type1, MMType1, TrueType -> [SimpleFont], one byte per code
//   - Type0 -> [CompositeFont], multi-byte codes through a CMap
//   - Type3 -> [Type3Font], glyphs as content streams
//
// All metrics returned by [Font.Displacement] and
// [Font.PositionVector] are in text space, where one em is 1.0.
package font
