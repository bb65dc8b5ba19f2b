package domain

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// DecodeHex decodes hexadecimal text into bytes.
// The text must have an even number of digits; case is ignored.
func DecodeHex(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if len(text)%2 != 0 {
		return nil, fmt.Errorf("hex text %q has odd length %d", text, len(text))
	}
	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode hex %q: %w", text, err)
	}
	return b, nil
}

// DecodeHexFixed decodes hexadecimal text that must describe exactly n bytes.
func DecodeHexFixed(text string, n int) ([]byte, error) {
	b, err := DecodeHex(text)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("hex text decodes to %d bytes, want %d", len(b), n)
	}
	return b, nil
}

// ParseHexUint32 parses hexadecimal text into an unsigned 32-bit value.
// An optional 0x prefix and surrounding whitespace are accepted.
func ParseHexUint32(text string) (uint32, error) {
	text = strings.TrimSpace(text)
	if len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X") {
		text = text[2:]
	}
	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse hex value %q: %w", text, err)
	}
	return uint32(v), nil
}

// EncodeHex renders bytes as uppercase hexadecimal text.
func EncodeHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
