package filters

import (
	"bytes"
	"fmt"
)

// RunLengthDecode decodes run-length encoded data.
// Each run begins with a length byte L: if L is 0-127, the next L+1
// bytes are copied literally; if L is 129-255, the next byte is
// repeated 257-L times; 128 marks end of data.
func RunLengthDecode(data []byte) ([]byte, error) {
	var result bytes.Buffer

	i := 0
	for i < len(data) {
		length := data[i]
		i++

		if length == 128 {
			break
		}

		if length < 128 {
			n := int(length) + 1
			if i+n > len(data) {
				return nil, fmt.Errorf("truncated literal run: need %d bytes, have %d", n, len(data)-i)
			}
			result.Write(data[i : i+n])
			i += n
			continue
		}

		if i >= len(data) {
			return nil, fmt.Errorf("truncated repeat run at offset %d", i)
		}
		n := 257 - int(length)
		result.Write(bytes.Repeat(data[i:i+1], n))
		i++
	}

	return result.Bytes(), nil
}
