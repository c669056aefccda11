package contentstream

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/tsawler/vellum/core"
)

// Tokenizer is a pull lexer over content-stream bytes. Each call to
// Next yields either a single operand object or an operator name, in
// stream order. The caller accumulates operands until an operator
// arrives.
type Tokenizer struct {
	data []byte
	pos  int
}

// NewTokenizer creates a tokenizer over data. The slice is not copied;
// callers must not mutate it while tokenizing.
func NewTokenizer(data []byte) *Tokenizer {
	return &Tokenizer{data: data}
}

// Next returns the next token from the stream.
//
// For an operand, obj is non-nil and op is empty. For an operator, op
// is non-empty and obj is nil, with one exception: an inline image
// (BI ... ID ... EI) is consumed as a single token with op == "BI" and
// obj holding a *core.Stream whose dictionary is the image parameters
// and whose data is the raw bytes between ID and EI.
//
// At end of input Next returns io.EOF.
func (t *Tokenizer) Next() (obj core.Object, op string, err error) {
	t.skipWhitespaceAndComments()
	if t.pos >= len(t.data) {
		return nil, "", io.EOF
	}

	c := t.data[t.pos]

	switch {
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		obj, err = t.readNumber()
		return obj, "", err
	case c == '(':
		obj, err = t.readLiteralString()
		return obj, "", err
	case c == '<':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
			obj, err = t.readDict()
		} else {
			obj, err = t.readHexString()
		}
		return obj, "", err
	case c == '/':
		obj, err = t.readName()
		return obj, "", err
	case c == '[':
		obj, err = t.readArray()
		return obj, "", err
	case c == ']':
		return nil, "", fmt.Errorf("unexpected ']' at position %d", t.pos)
	case c == '\'' || c == '"':
		t.pos++
		return nil, string(c), nil
	case isRegular(c):
		word := t.readWord()
		switch word {
		case "true":
			return core.Bool(true), "", nil
		case "false":
			return core.Bool(false), "", nil
		case "null":
			return core.Null{}, "", nil
		case "BI":
			obj, err = t.readInlineImage()
			return obj, "BI", err
		}
		return nil, word, nil
	}

	return nil, "", fmt.Errorf("unexpected character %q at position %d", c, t.pos)
}

// readWord consumes a run of regular characters (an operator or
// keyword).
func (t *Tokenizer) readWord() string {
	start := t.pos
	for t.pos < len(t.data) && isRegular(t.data[t.pos]) {
		t.pos++
	}
	return string(t.data[start:t.pos])
}

func (t *Tokenizer) skipWhitespaceAndComments() {
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if isWhitespace(c) {
			t.pos++
			continue
		}
		if c == '%' {
			for t.pos < len(t.data) && t.data[t.pos] != '\r' && t.data[t.pos] != '\n' {
				t.pos++
			}
			continue
		}
		return
	}
}

func (t *Tokenizer) readNumber() (core.Object, error) {
	start := t.pos
	hasDecimal := false

	if t.data[t.pos] == '+' || t.data[t.pos] == '-' {
		t.pos++
	}
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if c >= '0' && c <= '9' {
			t.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			t.pos++
		} else {
			break
		}
	}

	numStr := string(t.data[start:t.pos])
	if hasDecimal {
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real number %q at position %d: %w", numStr, start, err)
		}
		return core.Real(val), nil
	}
	val, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q at position %d: %w", numStr, start, err)
	}
	return core.Int(val), nil
}

func (t *Tokenizer) readLiteralString() (core.Object, error) {
	t.pos++ // opening '('
	var result bytes.Buffer
	depth := 1

	for t.pos < len(t.data) && depth > 0 {
		c := t.data[t.pos]

		switch {
		case c == '\\' && t.pos+1 < len(t.data):
			t.pos++
			next := t.data[t.pos]
			switch next {
			case 'n':
				result.WriteByte('\n')
				t.pos++
			case 'r':
				result.WriteByte('\r')
				t.pos++
			case 't':
				result.WriteByte('\t')
				t.pos++
			case 'b':
				result.WriteByte('\b')
				t.pos++
			case 'f':
				result.WriteByte('\f')
				t.pos++
			case '(', ')', '\\':
				result.WriteByte(next)
				t.pos++
			case '\r':
				// line continuation
				t.pos++
				if t.pos < len(t.data) && t.data[t.pos] == '\n' {
					t.pos++
				}
			case '\n':
				t.pos++
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := int(next - '0')
				t.pos++
				for i := 0; i < 2 && t.pos < len(t.data); i++ {
					d := t.data[t.pos]
					if d < '0' || d > '7' {
						break
					}
					val = val*8 + int(d-'0')
					t.pos++
				}
				result.WriteByte(byte(val & 0xFF))
			default:
				// unknown escape, backslash is dropped
				result.WriteByte(next)
				t.pos++
			}
		case c == '(':
			depth++
			result.WriteByte(c)
			t.pos++
		case c == ')':
			depth--
			if depth > 0 {
				result.WriteByte(c)
			}
			t.pos++
		default:
			result.WriteByte(c)
			t.pos++
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unclosed string at end of stream")
	}
	return core.String(result.String()), nil
}

func (t *Tokenizer) readHexString() (core.Object, error) {
	t.pos++ // opening '<'
	var result bytes.Buffer
	var pending byte
	havePending := false

	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if c == '>' {
			t.pos++
			if havePending {
				// odd digit count, final digit is the high nibble
				result.WriteByte(pending << 4)
			}
			return core.String(result.String()), nil
		}
		if isWhitespace(c) {
			t.pos++
			continue
		}
		if !isHexDigit(c) {
			return nil, fmt.Errorf("invalid hex digit %q at position %d", c, t.pos)
		}
		if havePending {
			result.WriteByte((pending << 4) | hexValue(c))
			havePending = false
		} else {
			pending = hexValue(c)
			havePending = true
		}
		t.pos++
	}
	return nil, fmt.Errorf("unclosed hex string at end of stream")
}

func (t *Tokenizer) readName() (core.Object, error) {
	t.pos++ // leading '/'
	var result bytes.Buffer

	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && t.pos+2 < len(t.data) &&
			isHexDigit(t.data[t.pos+1]) && isHexDigit(t.data[t.pos+2]) {
			result.WriteByte((hexValue(t.data[t.pos+1]) << 4) | hexValue(t.data[t.pos+2]))
			t.pos += 3
			continue
		}
		result.WriteByte(c)
		t.pos++
	}
	return core.Name(result.String()), nil
}

func (t *Tokenizer) readArray() (core.Object, error) {
	t.pos++ // opening '['
	arr := core.Array{}

	for {
		t.skipWhitespaceAndComments()
		if t.pos >= len(t.data) {
			return nil, fmt.Errorf("unclosed array at end of stream")
		}
		if t.data[t.pos] == ']' {
			t.pos++
			return arr, nil
		}
		obj, err := t.readValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (t *Tokenizer) readDict() (core.Object, error) {
	t.pos += 2 // opening '<<'
	dict := make(core.Dict)

	for {
		t.skipWhitespaceAndComments()
		if t.pos+1 >= len(t.data) {
			return nil, fmt.Errorf("unclosed dictionary at end of stream")
		}
		if t.data[t.pos] == '>' && t.data[t.pos+1] == '>' {
			t.pos += 2
			return dict, nil
		}
		if t.data[t.pos] != '/' {
			return nil, fmt.Errorf("dictionary key at position %d is not a name", t.pos)
		}
		key, err := t.readName()
		if err != nil {
			return nil, err
		}
		t.skipWhitespaceAndComments()
		value, err := t.readValue()
		if err != nil {
			return nil, err
		}
		dict[string(key.(core.Name))] = value
	}
}

// readValue reads a single object inside an array or dictionary, where
// operators cannot occur. The only keywords accepted are true, false
// and null; any other bare word, including R, is an error, so indirect
// references are not recognized.
func (t *Tokenizer) readValue() (core.Object, error) {
	if t.pos >= len(t.data) {
		return nil, fmt.Errorf("unexpected end of stream")
	}
	c := t.data[t.pos]

	switch {
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return t.readNumber()
	case c == '(':
		return t.readLiteralString()
	case c == '<':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
			return t.readDict()
		}
		return t.readHexString()
	case c == '/':
		return t.readName()
	case c == '[':
		return t.readArray()
	case isRegular(c):
		word := t.readWord()
		switch word {
		case "true":
			return core.Bool(true), nil
		case "false":
			return core.Bool(false), nil
		case "null":
			return core.Null{}, nil
		}
		return nil, fmt.Errorf("unexpected keyword %q at position %d", word, t.pos)
	}
	return nil, fmt.Errorf("unexpected character %q at position %d", c, t.pos)
}

// readInlineImage parses the remainder of a BI ... ID ... EI sequence.
// The BI keyword has already been consumed. The parameter dictionary
// between BI and ID becomes the stream dictionary; the bytes between
// ID and the EI delimiter become the stream data.
func (t *Tokenizer) readInlineImage() (core.Object, error) {
	dict := make(core.Dict)

	for {
		t.skipWhitespaceAndComments()
		if t.pos >= len(t.data) {
			return nil, fmt.Errorf("inline image missing ID keyword")
		}
		if t.data[t.pos] != '/' {
			word := t.readWord()
			if word == "ID" {
				break
			}
			return nil, fmt.Errorf("unexpected token %q in inline image dictionary", word)
		}
		key, err := t.readName()
		if err != nil {
			return nil, err
		}
		t.skipWhitespaceAndComments()
		value, err := t.readValue()
		if err != nil {
			return nil, err
		}
		dict[string(key.(core.Name))] = value
	}

	// a single whitespace byte separates ID from the image data
	if t.pos < len(t.data) && isWhitespace(t.data[t.pos]) {
		t.pos++
	}

	start := t.pos
	for t.pos < len(t.data) {
		if t.data[t.pos] == 'E' && t.pos+1 < len(t.data) && t.data[t.pos+1] == 'I' {
			endOK := t.pos+2 >= len(t.data) || isWhitespace(t.data[t.pos+2]) || isDelimiter(t.data[t.pos+2])
			startOK := t.pos == start || isWhitespace(t.data[t.pos-1])
			if startOK && endOK {
				data := t.data[start:t.pos]
				if len(data) > 0 && isWhitespace(data[len(data)-1]) {
					data = data[:len(data)-1]
				}
				t.pos += 2
				return &core.Stream{Dict: dict, Data: data}, nil
			}
		}
		t.pos++
	}
	return nil, fmt.Errorf("inline image missing EI delimiter")
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isDelimiter reports whether c is a PDF delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

// isRegular reports whether c can appear in an operator or keyword.
func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
