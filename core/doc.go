// Package core provides the PDF object model the rest of vellum is
// built on.
//
// # Object Types
//
// PDF defines eight basic object types, all implemented as types
// satisfying the Object interface:
//
//   - [Null] - represents the PDF null object
//   - [Bool] - represents PDF boolean values (true/false)
//   - [Int] - represents PDF integers
//   - [Real] - represents PDF real numbers (floating point)
//   - [String] - represents PDF string objects (literal or hexadecimal)
//   - [Name] - represents PDF name objects (e.g., /Type, /Font)
//   - [Array] - represents PDF arrays
//   - [Dict] - represents PDF dictionaries
//
// Additionally, [Stream] represents a PDF stream (dictionary + binary
// data), and [IndirectRef] represents a reference to an indirect
// object. [Resolver] abstracts over how references are followed, so
// the object graph can come from a parsed file or be built in memory.
//
// # Numeric Access
//
// Operators accept integers and reals interchangeably. [ToFloat] and
// the GetFloat accessors on [Array] and [Dict] handle the coercion.
//
// # Stream Decoding
//
// [Stream.Decoded] applies the stream's filter chain (FlateDecode,
// ASCIIHexDecode, ASCII85Decode, RunLengthDecode, CCITTFaxDecode) and
// caches the result. Image codecs without a registered decoder
// (DCTDecode, JPXDecode) report a [MissingCodecError] that carries the
// compressed bytes.
package core
