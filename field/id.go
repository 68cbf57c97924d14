package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/fcb/endian"
	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/format"
	"github.com/arloliu/fcb/hash"
)

var (
	stringIDCodec       = newIDCodec(format.TypeStringId, format.HashCRC32)
	noCaseStringIDCodec = newIDCodec(format.TypeNoCaseStringId, format.HashCRC64WD2)
	pathIDCodec         = newIDCodec(format.TypePathId, format.HashFNV64WD1)

	hashLabelCodecs = map[format.HashAlgorithm]*valueCodec[uint64]{
		format.HashCRC32:     newHashLabelCodec(format.HashCRC32),
		format.HashCRC32R:    newHashLabelCodec(format.HashCRC32R),
		format.HashFNV64WD1:  newHashLabelCodec(format.HashFNV64WD1),
		format.HashCRC64WD2R: newHashLabelCodec(format.HashCRC64WD2R),
		format.HashCRC64WD2:  newHashLabelCodec(format.HashCRC64WD2),
	}
)

func formatID(v uint64, width int) string {
	return fmt.Sprintf("0x%0*X", width*2, v)
}

// parseID accepts "0x" followed by at most width*2 hex digits, or any other
// text which is hashed with alg.
func parseID(typ format.FieldType, alg format.HashAlgorithm, width int, text string) (uint64, error) {
	trimmed := strings.TrimSpace(text)
	digits, ok := strings.CutPrefix(trimmed, "0x")
	if !ok {
		digits, ok = strings.CutPrefix(trimmed, "0X")
	}
	if !ok {
		return hash.Compute(alg, text), nil
	}

	if digits == "" || len(digits) > width*2 {
		return 0, errs.Format(errs.ErrMalformedHexID, "%s %q: expected up to %d hex digits", typ, text, width*2)
	}

	v, err := strconv.ParseUint(digits, 16, width*8)
	if err != nil {
		return 0, errs.Format(errs.ErrMalformedHexID, "%s %q", typ, text)
	}

	return v, nil
}

// newIDCodec builds an identifier codec. Values are stored little-endian like
// any other integer.
func newIDCodec(typ format.FieldType, alg format.HashAlgorithm) *valueCodec[uint64] {
	width := typ.Size()

	return &valueCodec[uint64]{
		typ: typ,
		decode: func(data []byte) (uint64, int, error) {
			if err := needSize(typ, data, width); err != nil {
				return 0, 0, err
			}

			return readUint(data, width), width, nil
		},
		encode: func(dst []byte, v uint64) []byte {
			return appendUint(dst, v, width)
		},
		format: func(v uint64) string {
			return formatID(v, width)
		},
		scan: func(text string) (uint64, error) {
			return parseID(typ, alg, width, text)
		},
	}
}

// newHashLabelCodec builds the codec for a field whose type attribute names a
// hash algorithm. The text is always hashed and the digest is stored
// big-endian, so the stored bytes read as the digest in hex.
func newHashLabelCodec(alg format.HashAlgorithm) *valueCodec[uint64] {
	width := alg.Width()
	be := endian.GetBigEndianEngine()

	return &valueCodec[uint64]{
		typ: alg,
		decode: func(data []byte) (uint64, int, error) {
			if err := needSize(alg, data, width); err != nil {
				return 0, 0, err
			}

			if width == 8 {
				return be.Uint64(data), 8, nil
			}

			return uint64(be.Uint32(data)), 4, nil
		},
		encode: func(dst []byte, v uint64) []byte {
			if width == 8 {
				return be.AppendUint64(dst, v)
			}

			return be.AppendUint32(dst, uint32(v)) //nolint:gosec
		},
		format: func(v uint64) string {
			return formatID(v, width)
		},
		scan: func(text string) (uint64, error) {
			return hash.Compute(alg, text), nil
		},
	}
}
