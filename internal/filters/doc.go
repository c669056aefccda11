// Package filters provides PDF stream decompression filters.
//
// # Supported Filters
//
// FlateDecode (zlib/deflate):
//
//	decoded, err := filters.FlateDecode(data, params)
//
// FlateDecode supports predictors for image data. The Predictor
// parameter specifies the algorithm:
//   - 1: No prediction (default)
//   - 2: TIFF Predictor 2
//   - 10-15: PNG predictors (None, Sub, Up, Average, Paeth)
//
// ASCIIHexDecode and ASCII85Decode:
//
//	decoded, err := filters.ASCIIHexDecode(data)
//	decoded, err := filters.ASCII85Decode(data)
//
// RunLengthDecode:
//
//	decoded, err := filters.RunLengthDecode(data)
//
// CCITTFaxDecode (Group 3/4 bi-level images, via golang.org/x/image/ccitt):
//
//	decoded, err := filters.CCITTFaxDecode(data, params)
//
// # Decode Parameters
//
// Filters accept a Params map mirroring the stream's DecodeParms
// dictionary:
//
//	params := filters.Params{
//	    "Predictor": 12,
//	    "Columns":   100,
//	    "Colors":    3,
//	}
//	decoded, err := filters.FlateDecode(data, params)
package filters
