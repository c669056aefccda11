package font

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/vellum/core"
)

// CMap is a character map. Two roles share this type: a ToUnicode
// CMap maps character codes to Unicode text, and an encoding CMap
// maps raw string bytes to codes (via codespace ranges) and codes to
// CIDs. The identity CMaps cover the second role for the common
// Identity-H and Identity-V encodings.
type CMap struct {
	name     string
	vertical bool
	identity bool

	// bfchar and bfrange results
	charMappings  map[uint32]string
	rangeMappings []cmapRange

	// cidchar and cidrange results
	cidMappings map[uint32]int
	cidRanges   []cidRange

	codespaces []codespaceRange
}

type cmapRange struct {
	startCode    uint32
	endCode      uint32
	startUnicode uint32
}

type cidRange struct {
	startCode uint32
	endCode   uint32
	startCID  int
}

type codespaceRange struct {
	start    uint32
	end      uint32
	numBytes int
}

// NewCMap creates an empty CMap.
func NewCMap() *CMap {
	return &CMap{
		charMappings: make(map[uint32]string),
		cidMappings:  make(map[uint32]int),
	}
}

// NewIdentityCMap returns the Identity-H or Identity-V CMap: two-byte
// codes that map to themselves.
func NewIdentityCMap(vertical bool) *CMap {
	cm := NewCMap()
	cm.identity = true
	cm.vertical = vertical
	if vertical {
		cm.name = "Identity-V"
	} else {
		cm.name = "Identity-H"
	}
	cm.codespaces = []codespaceRange{{start: 0x0000, end: 0xFFFF, numBytes: 2}}
	return cm
}

// ParsePredefined returns a built-in CMap by name. Only the identity
// CMaps are built in; other predefined names return an error and
// callers fall back to identity behavior.
func ParsePredefined(name string) (*CMap, error) {
	switch name {
	case "Identity-H":
		return NewIdentityCMap(false), nil
	case "Identity-V":
		return NewIdentityCMap(true), nil
	}
	return nil, fmt.Errorf("predefined CMap %q is not available", name)
}

// ParseToUnicodeCMap parses a ToUnicode CMap stream.
func ParseToUnicodeCMap(stream *core.Stream) (*CMap, error) {
	if stream == nil {
		return nil, fmt.Errorf("stream is nil")
	}
	data, err := stream.Decoded()
	if err != nil {
		return nil, fmt.Errorf("decoding ToUnicode stream: %w", err)
	}
	return ParseCMap(data)
}

// ParseCMap parses CMap data. Sections it does not understand are
// skipped; a CMap with no recognized sections is still valid and
// simply maps nothing.
func ParseCMap(data []byte) (*CMap, error) {
	cm := NewCMap()
	content := string(data)

	cm.parseWMode(content)
	cm.parseSections(content, "begincodespacerange", "endcodespacerange", cm.parseCodespaceLine)
	cm.parseSections(content, "beginbfchar", "endbfchar", cm.parseBfCharLine)
	cm.parseBfRange(content)
	cm.parseSections(content, "begincidchar", "endcidchar", cm.parseCidCharLine)
	cm.parseSections(content, "begincidrange", "endcidrange", cm.parseCidRangeLine)

	return cm, nil
}

// Name returns the CMap name, empty for parsed streams without one.
func (cm *CMap) Name() string { return cm.name }

// IsVertical reports whether WMode selects vertical writing.
func (cm *CMap) IsVertical() bool { return cm.vertical }

func (cm *CMap) parseWMode(content string) {
	idx := strings.Index(content, "/WMode")
	if idx == -1 {
		return
	}
	rest := strings.TrimSpace(content[idx+len("/WMode"):])
	if len(rest) > 0 && rest[0] == '1' {
		cm.vertical = true
	}
}

// parseSections finds every begin/end pair and feeds the enclosed
// lines to the line parser.
func (cm *CMap) parseSections(content, begin, end string, parseLine func(string)) {
	start := 0
	for {
		beginIdx := strings.Index(content[start:], begin)
		if beginIdx == -1 {
			return
		}
		beginIdx += start

		endIdx := strings.Index(content[beginIdx:], end)
		if endIdx == -1 {
			return
		}
		endIdx += beginIdx

		section := content[beginIdx+len(begin) : endIdx]
		for _, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				parseLine(line)
			}
		}

		start = endIdx + len(end)
	}
}

// parseCodespaceLine parses "<start> <end>".
func (cm *CMap) parseCodespaceLine(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return
	}
	startHex := extractHexString(parts[0])
	endHex := extractHexString(parts[1])
	if startHex == "" || endHex == "" {
		return
	}
	start, err1 := parseHexToUint32(startHex)
	end, err2 := parseHexToUint32(endHex)
	if err1 != nil || err2 != nil {
		return
	}
	cm.codespaces = append(cm.codespaces, codespaceRange{
		start:    start,
		end:      end,
		numBytes: (len(startHex) + 1) / 2,
	})
}

// parseBfCharLine parses "<srcCode> <dstUnicode>".
func (cm *CMap) parseBfCharLine(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return
	}
	srcHex := extractHexString(parts[0])
	dstHex := extractHexString(parts[1])
	if srcHex == "" || dstHex == "" {
		return
	}
	srcCode, err := parseHexToUint32(srcHex)
	if err != nil {
		return
	}
	text, err := hexToUnicode(dstHex)
	if err != nil {
		return
	}
	cm.charMappings[srcCode] = text
}

// parseBfRange handles both range forms, including the array form
// that can span lines.
func (cm *CMap) parseBfRange(content string) {
	start := 0
	for {
		beginIdx := strings.Index(content[start:], "beginbfrange")
		if beginIdx == -1 {
			return
		}
		beginIdx += start

		endIdx := strings.Index(content[beginIdx:], "endbfrange")
		if endIdx == -1 {
			return
		}
		endIdx += beginIdx

		section := content[beginIdx+len("beginbfrange") : endIdx]
		lines := strings.Split(section, "\n")
		i := 0
		for i < len(lines) {
			line := strings.TrimSpace(lines[i])
			if line == "" {
				i++
				continue
			}
			if strings.Contains(line, "[") {
				fullLine := line
				for !strings.Contains(fullLine, "]") && i+1 < len(lines) {
					i++
					fullLine += " " + strings.TrimSpace(lines[i])
				}
				cm.parseBfRangeArray(fullLine)
				i++
				continue
			}
			cm.parseBfRangeLine(line)
			i++
		}

		start = endIdx + len("endbfrange")
	}
}

// parseBfRangeLine parses "<start> <end> <unicode>".
func (cm *CMap) parseBfRangeLine(line string) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return
	}
	startHex := extractHexString(parts[0])
	endHex := extractHexString(parts[1])
	dstHex := extractHexString(parts[2])
	if startHex == "" || endHex == "" || dstHex == "" {
		return
	}
	startCode, err1 := parseHexToUint32(startHex)
	endCode, err2 := parseHexToUint32(endHex)
	dstUnicode, err3 := parseHexToUint32(dstHex)
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	cm.rangeMappings = append(cm.rangeMappings, cmapRange{
		startCode:    startCode,
		endCode:      endCode,
		startUnicode: dstUnicode,
	})
}

// parseBfRangeArray parses "<start> <end> [<u1> <u2> ...]".
func (cm *CMap) parseBfRangeArray(line string) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return
	}
	startCode, err1 := parseHexToUint32(extractHexString(parts[0]))
	endCode, err2 := parseHexToUint32(extractHexString(parts[1]))
	if err1 != nil || err2 != nil {
		return
	}

	arrayStart := strings.Index(line, "[")
	arrayEnd := strings.Index(line, "]")
	if arrayStart == -1 || arrayEnd == -1 {
		return
	}

	currentCode := startCode
	for _, hexStr := range strings.Fields(line[arrayStart+1 : arrayEnd]) {
		h := extractHexString(hexStr)
		if h == "" {
			continue
		}
		if text, err := hexToUnicode(h); err == nil && currentCode <= endCode {
			cm.charMappings[currentCode] = text
		}
		currentCode++
	}
}

// parseCidCharLine parses "<srcCode> dstCID" with a decimal CID.
func (cm *CMap) parseCidCharLine(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return
	}
	srcHex := extractHexString(parts[0])
	if srcHex == "" {
		return
	}
	srcCode, err := parseHexToUint32(srcHex)
	if err != nil {
		return
	}
	cid, err := strconv.Atoi(parts[1])
	if err != nil {
		return
	}
	cm.cidMappings[srcCode] = cid
}

// parseCidRangeLine parses "<start> <end> dstCID" with a decimal CID.
func (cm *CMap) parseCidRangeLine(line string) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return
	}
	startCode, err1 := parseHexToUint32(extractHexString(parts[0]))
	endCode, err2 := parseHexToUint32(extractHexString(parts[1]))
	if err1 != nil || err2 != nil {
		return
	}
	cid, err := strconv.Atoi(parts[2])
	if err != nil {
		return
	}
	cm.cidRanges = append(cm.cidRanges, cidRange{
		startCode: startCode,
		endCode:   endCode,
		startCID:  cid,
	})
}

// ReadCode consumes the next character code from r using the
// codespace ranges. Without codespace information two-byte codes are
// assumed, which matches the identity encodings.
func (cm *CMap) ReadCode(r *bytes.Reader) (int, int, error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}

	if len(cm.codespaces) == 0 {
		b1, err := r.ReadByte()
		if err != nil {
			return int(b0), 1, nil
		}
		return int(b0)<<8 | int(b1), 2, nil
	}

	code := uint32(b0)
	length := 1
	for {
		for _, cs := range cm.codespaces {
			if cs.numBytes == length && code >= cs.start && code <= cs.end {
				return int(code), length, nil
			}
		}
		if length >= 4 {
			return int(code), length, nil
		}
		b, err := r.ReadByte()
		if err != nil {
			return int(code), length, nil
		}
		code = code<<8 | uint32(b)
		length++
	}
}

// CID maps a character code to a CID.
func (cm *CMap) CID(code int) int {
	if cm.identity {
		return code
	}
	if cid, ok := cm.cidMappings[uint32(code)]; ok {
		return cid
	}
	for _, r := range cm.cidRanges {
		c := uint32(code)
		if c >= r.startCode && c <= r.endCode {
			return r.startCID + int(c-r.startCode)
		}
	}
	return 0
}

// Lookup returns the Unicode text for a character code, or the empty
// string when no mapping exists.
func (cm *CMap) Lookup(code int) string {
	charCode := uint32(code)
	if text, ok := cm.charMappings[charCode]; ok {
		return text
	}
	for _, r := range cm.rangeMappings {
		if charCode >= r.startCode && charCode <= r.endCode {
			return string(rune(r.startUnicode + (charCode - r.startCode)))
		}
	}
	return ""
}

// HasMappings reports whether the CMap maps any code to Unicode.
func (cm *CMap) HasMappings() bool {
	return len(cm.charMappings) > 0 || len(cm.rangeMappings) > 0
}

// extractHexString extracts hex content from the <ABCD> form.
func extractHexString(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return ""
	}
	if s[0] == '<' && s[len(s)-1] == '>' {
		return s[1 : len(s)-1]
	}
	return ""
}

func parseHexToUint32(hexStr string) (uint32, error) {
	if len(hexStr)%2 != 0 {
		hexStr = "0" + hexStr
	}
	val, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(val), nil
}

// hexToUnicode converts a hex destination string to Unicode text.
// Two or more bytes are UTF-16BE, one byte is a direct code point.
func hexToUnicode(hexStr string) (string, error) {
	if len(hexStr)%2 != 0 {
		hexStr = "0" + hexStr
	}
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return "", err
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		data = data[2:]
	}
	if len(data) >= 2 {
		return DecodeUTF16BE(data), nil
	}
	if len(data) == 1 {
		return string(rune(data[0])), nil
	}
	return "", fmt.Errorf("empty unicode destination")
}
