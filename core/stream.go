package core

import (
	"fmt"

	"github.com/tsawler/vellum/internal/filters"
)

// MissingCodecError reports a stream filter whose compressed format has
// no registered decoder (DCTDecode and JPXDecode image codecs). The
// stream data up to that filter is preserved in Data.
type MissingCodecError struct {
	Filter string
	Data   []byte
}

func (e *MissingCodecError) Error() string {
	return fmt.Sprintf("no codec for filter %s", e.Filter)
}

// Decoded returns the stream data with all filters applied. The result
// is cached; repeated calls do not re-decode.
//
// DCTDecode and JPXDecode terminate the chain with a *MissingCodecError
// carrying the still-compressed image bytes, so callers can hand the
// data to an external image decoder.
func (s *Stream) Decoded() ([]byte, error) {
	if s.decoded == nil && s.decErr == nil {
		s.decoded, s.decErr = s.decode()
	}
	return s.decoded, s.decErr
}

// Filters returns the stream's filter chain as a slice of names. A
// single /Filter name yields a one-element slice.
func (s *Stream) Filters() []string {
	switch f := s.Dict.Get("Filter").(type) {
	case Name:
		return []string{string(f)}
	case Array:
		out := make([]string, 0, len(f))
		for _, obj := range f {
			if n, ok := obj.(Name); ok {
				out = append(out, string(n))
			}
		}
		return out
	}
	return nil
}

func (s *Stream) decode() ([]byte, error) {
	filterObj := s.Dict.Get("Filter")
	if filterObj == nil {
		return s.Data, nil
	}

	paramsObj := s.Dict.Get("DecodeParms")
	if paramsObj == nil {
		paramsObj = s.Dict.Get("DP")
	}

	switch f := filterObj.(type) {
	case Name:
		return applyFilter(s.Data, string(f), paramsDict(paramsObj))
	case Array:
		data := s.Data
		for i, entry := range f {
			name, ok := entry.(Name)
			if !ok {
				return nil, fmt.Errorf("filter %d is not a name: %T", i, entry)
			}
			var params Dict
			if pa, ok := paramsObj.(Array); ok {
				if i < len(pa) {
					params = paramsDict(pa[i])
				}
			} else {
				params = paramsDict(paramsObj)
			}
			var err error
			data, err = applyFilter(data, string(name), params)
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s): %w", i, name, err)
			}
		}
		return data, nil
	}
	return nil, fmt.Errorf("invalid Filter type: %T", filterObj)
}

func applyFilter(data []byte, name string, params Dict) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, dictToParams(params))
	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)
	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)
	case "RunLengthDecode", "RL":
		return filters.RunLengthDecode(data)
	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, dictToParams(params))
	case "DCTDecode", "DCT":
		return nil, &MissingCodecError{Filter: "DCTDecode", Data: data}
	case "JPXDecode":
		return nil, &MissingCodecError{Filter: "JPXDecode", Data: data}
	case "LZWDecode", "LZW":
		return nil, fmt.Errorf("LZWDecode not supported")
	case "JBIG2Decode":
		return nil, fmt.Errorf("JBIG2Decode not supported")
	case "Crypt":
		return nil, fmt.Errorf("Crypt filter not supported")
	default:
		return nil, fmt.Errorf("unknown filter: %s", name)
	}
}

func paramsDict(obj Object) Dict {
	d, _ := obj.(Dict)
	return d
}

// dictToParams lowers a Dict to the primitive map the filters package
// works with.
func dictToParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}
	params := make(filters.Params, len(dict))
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}
