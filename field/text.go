package field

import (
	"bytes"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/format"
)

var (
	stringCodec = newStringCodec()
	binHexCodec = newBinHexCodec()
)

// DecodeString decodes a NUL-terminated UTF-8 string.
//
// It fails unless data ends with its only NUL and holds valid UTF-8.
func DecodeString(data []byte) (string, error) {
	return stringCodec.Compose(data)
}

func newStringCodec() *valueCodec[string] {
	typ := format.TypeString

	return &valueCodec[string]{
		typ: typ,
		decode: func(data []byte) (string, int, error) {
			if err := needSize(typ, data, 1); err != nil {
				return "", 0, err
			}

			end := bytes.IndexByte(data, 0)
			if end < 0 {
				return "", 0, errs.Format(errs.ErrMalformedValue, "%s: missing terminator", typ)
			}
			if !utf8.Valid(data[:end]) {
				return "", 0, errs.Format(errs.ErrMalformedValue, "%s: invalid UTF-8", typ)
			}

			// bytes after an interior NUL are left unconsumed
			return string(data[:end]), end + 1, nil
		},
		encode: func(dst []byte, v string) []byte {
			dst = append(dst, v...)
			return append(dst, 0)
		},
		format: func(v string) string {
			return v
		},
		scan: func(text string) (string, error) {
			if strings.IndexByte(text, 0) >= 0 || !utf8.ValidString(text) {
				return "", malformed(typ, text, nil)
			}

			return text, nil
		},
	}
}

// EncodeHex returns the uppercase hex text of data.
func EncodeHex(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(data))
}

// DecodeHex parses hex text in either case, ignoring whitespace.
func DecodeHex(text string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, text)

	data, err := hex.DecodeString(compact)
	if err != nil {
		return nil, malformed(format.TypeBinHex, text, err)
	}

	return data, nil
}

func newBinHexCodec() *valueCodec[[]byte] {
	return &valueCodec[[]byte]{
		typ: format.TypeBinHex,
		decode: func(data []byte) ([]byte, int, error) {
			return data, len(data), nil
		},
		encode: func(dst []byte, v []byte) []byte {
			return append(dst, v...)
		},
		format: EncodeHex,
		scan:   DecodeHex,
	}
}
