// Package infer recovers display types for untyped field values.
//
// Guess applies fixed length and trailing-byte rules to a single value.
// Pairer scans the fields of one node and detects a plaintext field that is
// immediately followed by a field holding its hash. Neither ever fails: a
// miss falls back to hex.
package infer

import (
	"strconv"

	"github.com/arloliu/fcb/field"
	"github.com/arloliu/fcb/format"
)

// Result is a guessed type together with the text of the value under it.
type Result struct {
	Type format.FieldType
	Text string
}

// Guess classifies data from its length and trailing bytes:
//
//   - 1 byte: Int8, only when the value is above 1 and not 255
//   - 2 bytes: Int16
//   - more than 4 bytes: String, when the last byte is 0, the one before is
//     not, and the bytes decode as a string
//
// Anything else is no match.
func Guess(data []byte) (Result, bool) {
	switch n := len(data); {
	case n == 1:
		if data[0] > 1 && data[0] != 0xFF {
			return Result{Type: format.TypeInt8, Text: strconv.Itoa(int(int8(data[0])))}, true //nolint:gosec
		}
	case n == 2:
		v := int16(uint16(data[0]) | uint16(data[1])<<8) //nolint:gosec
		return Result{Type: format.TypeInt16, Text: strconv.Itoa(int(v))}, true
	case n > 4:
		if data[n-1] == 0 && data[n-2] > 0 {
			if s, err := field.DecodeString(data); err == nil {
				return Result{Type: format.TypeString, Text: s}, true
			}
		}
	}

	return Result{}, false
}

// IsXMLText reports whether s only holds characters an XML 1.0 document can
// carry in character data and read back unchanged.
func IsXMLText(s string) bool {
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			// includes '\r', which parsers normalize to '\n'
			return false
		}
	}

	return true
}
