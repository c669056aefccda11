package font

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// Encoding maps single-byte character codes to Unicode text. The
// base table comes from one of the standard encodings; a Differences
// array overlays individual codes.
type Encoding struct {
	name        string
	base        *charmap.Charmap
	differences map[int]string
}

// StandardEncoding returns the named standard encoding. Unknown
// names fall back to WinAnsi, which matches how most simple fonts
// without an explicit encoding behave in practice.
func StandardEncoding(name string) *Encoding {
	switch name {
	case "MacRomanEncoding":
		return &Encoding{name: name, base: charmap.Macintosh}
	case "WinAnsiEncoding", "StandardEncoding", "":
		return &Encoding{name: "WinAnsiEncoding", base: charmap.Windows1252}
	default:
		return &Encoding{name: name, base: charmap.Windows1252}
	}
}

// Name returns the encoding name.
func (e *Encoding) Name() string { return e.name }

// WithDifferences returns a copy of the encoding with per-code glyph
// overrides. Glyph names are resolved through the standard glyph
// list; unresolvable names are dropped.
func (e *Encoding) WithDifferences(diff map[int]string) *Encoding {
	out := &Encoding{name: e.name, base: e.base, differences: make(map[int]string, len(diff))}
	for code, glyphName := range diff {
		if u, ok := glyphToUnicode[glyphName]; ok {
			out.differences[code] = u
		}
	}
	return out
}

// Decode returns the Unicode text for a single code.
func (e *Encoding) Decode(code int) string {
	if u, ok := e.differences[code]; ok {
		return u
	}
	if code < 0 || code > 255 {
		return ""
	}
	r := e.base.DecodeByte(byte(code))
	if r == '�' {
		return ""
	}
	return string(r)
}

// DecodeString decodes a byte string code by code.
func (e *Encoding) DecodeString(data []byte) string {
	out := make([]rune, 0, len(data))
	for _, b := range data {
		if s := e.Decode(int(b)); s != "" {
			out = append(out, []rune(s)...)
		}
	}
	return string(out)
}

var (
	utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
)

// DecodeUTF16BE decodes big-endian UTF-16 bytes, tolerating a
// truncated final code unit.
func DecodeUTF16BE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	out, err := utf16be.Bytes(data)
	if err != nil {
		return ""
	}
	return string(out)
}

// DecodeUTF16LE decodes little-endian UTF-16 bytes, tolerating a
// truncated final code unit.
func DecodeUTF16LE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	out, err := utf16le.Bytes(data)
	if err != nil {
		return ""
	}
	return string(out)
}

// NormalizeUnicode applies NFC normalization so that extracted text
// compares stably regardless of how the producer composed it.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// glyphToUnicode covers the glyph names that appear in Differences
// arrays of Latin-text fonts. It is a working subset of the Adobe
// glyph list.
var glyphToUnicode = map[string]string{
	"space": " ", "exclam": "!", "quotedbl": "\"", "numbersign": "#",
	"dollar": "$", "percent": "%", "ampersand": "&", "quotesingle": "'",
	"parenleft": "(", "parenright": ")", "asterisk": "*", "plus": "+",
	"comma": ",", "hyphen": "-", "period": ".", "slash": "/",
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"colon": ":", "semicolon": ";", "less": "<", "equal": "=",
	"greater": ">", "question": "?", "at": "@",
	"A": "A", "B": "B", "C": "C", "D": "D", "E": "E", "F": "F",
	"G": "G", "H": "H", "I": "I", "J": "J", "K": "K", "L": "L",
	"M": "M", "N": "N", "O": "O", "P": "P", "Q": "Q", "R": "R",
	"S": "S", "T": "T", "U": "U", "V": "V", "W": "W", "X": "X",
	"Y": "Y", "Z": "Z",
	"bracketleft": "[", "backslash": "\\", "bracketright": "]",
	"asciicircum": "^", "underscore": "_", "grave": "`",
	"a": "a", "b": "b", "c": "c", "d": "d", "e": "e", "f": "f",
	"g": "g", "h": "h", "i": "i", "j": "j", "k": "k", "l": "l",
	"m": "m", "n": "n", "o": "o", "p": "p", "q": "q", "r": "r",
	"s": "s", "t": "t", "u": "u", "v": "v", "w": "w", "x": "x",
	"y": "y", "z": "z",
	"braceleft": "{", "bar": "|", "braceright": "}", "asciitilde": "~",
	"quoteleft": "‘", "quoteright": "’",
	"quotedblleft": "“", "quotedblright": "”",
	"endash": "–", "emdash": "—",
	"bullet": "•", "ellipsis": "…",
	"fi": "ﬁ", "fl": "ﬂ",
	"dagger": "†", "daggerdbl": "‡",
	"trademark": "™", "registered": "®", "copyright": "©",
	"degree": "°", "plusminus": "±", "multiply": "×",
	"divide": "÷", "minus": "−",
	"cent": "¢", "sterling": "£", "yen": "¥",
	"Euro": "€", "florin": "ƒ", "currency": "¤",
	"section": "§", "paragraph": "¶",
	"exclamdown": "¡", "questiondown": "¿",
	"guillemotleft": "«", "guillemotright": "»",
	"guilsinglleft": "‹", "guilsinglright": "›",
	"quotesinglbase": "‚", "quotedblbase": "„",
	"Agrave": "À", "Aacute": "Á", "Acircumflex": "Â",
	"Atilde": "Ã", "Adieresis": "Ä", "Aring": "Å",
	"AE": "Æ", "Ccedilla": "Ç",
	"Egrave": "È", "Eacute": "É", "Ecircumflex": "Ê",
	"Edieresis": "Ë",
	"Igrave": "Ì", "Iacute": "Í", "Icircumflex": "Î",
	"Idieresis": "Ï",
	"Ntilde": "Ñ",
	"Ograve": "Ò", "Oacute": "Ó", "Ocircumflex": "Ô",
	"Otilde": "Õ", "Odieresis": "Ö", "Oslash": "Ø",
	"Ugrave": "Ù", "Uacute": "Ú", "Ucircumflex": "Û",
	"Udieresis": "Ü", "Yacute": "Ý",
	"agrave": "à", "aacute": "á", "acircumflex": "â",
	"atilde": "ã", "adieresis": "ä", "aring": "å",
	"ae": "æ", "ccedilla": "ç",
	"egrave": "è", "eacute": "é", "ecircumflex": "ê",
	"edieresis": "ë",
	"igrave": "ì", "iacute": "í", "icircumflex": "î",
	"idieresis": "ï",
	"ntilde": "ñ",
	"ograve": "ò", "oacute": "ó", "ocircumflex": "ô",
	"otilde": "õ", "odieresis": "ö", "oslash": "ø",
	"ugrave": "ù", "uacute": "ú", "ucircumflex": "û",
	"udieresis": "ü", "yacute": "ý", "ydieresis": "ÿ",
	"germandbls": "ß", "eth": "ð", "thorn": "þ",
	"Thorn": "Þ", "Eth": "Ð",
	"OE": "Œ", "oe": "œ",
	"Scaron": "Š", "scaron": "š",
	"Zcaron": "Ž", "zcaron": "ž",
	"Ydieresis": "Ÿ",
	"circumflex": "ˆ", "tilde": "˜",
	"macron": "¯", "breve": "˘", "dotaccent": "˙",
	"ring": "˚", "cedilla": "¸", "hungarumlaut": "˝",
	"ogonek": "˛", "caron": "ˇ",
	"perthousand": "‰",
	"periodcentered": "·", "middot": "·",
	"nbspace": " ", "softhyphen": "­",
	"onequarter": "¼", "onehalf": "½", "threequarters": "¾",
	"onesuperior": "¹", "twosuperior": "²", "threesuperior": "³",
	"ordfeminine": "ª", "ordmasculine": "º",
	"logicalnot": "¬", "mu": "µ", "brokenbar": "¦",
	"dieresis": "¨", "acute": "´",
}
