package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/fcb/endian"
	"github.com/arloliu/fcb/format"
)

var le = endian.GetLittleEndianEngine()

type signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	int8Codec   = signedCodec[int8](format.TypeInt8)
	int16Codec  = signedCodec[int16](format.TypeInt16)
	int32Codec  = signedCodec[int32](format.TypeInt32)
	int64Codec  = signedCodec[int64](format.TypeInt64)
	uint8Codec  = unsignedCodec[uint8](format.TypeUInt8)
	uint16Codec = unsignedCodec[uint16](format.TypeUInt16)
	uint32Codec = unsignedCodec[uint32](format.TypeUInt32)
	uint64Codec = unsignedCodec[uint64](format.TypeUInt64)
	enumCodec   = signedCodec[int32](format.TypeEnum)
	floatCodec  = newFloatCodec()
	boolCodec   = newBoolCodec()
)

// readUint reads a little-endian unsigned integer of 1, 2, 4 or 8 bytes.
func readUint(data []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(data[0])
	case 2:
		return uint64(le.Uint16(data))
	case 4:
		return uint64(le.Uint32(data))
	default:
		return le.Uint64(data)
	}
}

// appendUint appends the low size bytes of v in little-endian order.
func appendUint(dst []byte, v uint64, size int) []byte {
	switch size {
	case 1:
		return append(dst, byte(v))
	case 2:
		return le.AppendUint16(dst, uint16(v)) //nolint:gosec
	case 4:
		return le.AppendUint32(dst, uint32(v)) //nolint:gosec
	default:
		return le.AppendUint64(dst, v)
	}
}

func signedCodec[T signed](typ format.FieldType) *valueCodec[T] {
	size := typ.Size()

	return &valueCodec[T]{
		typ: typ,
		decode: func(data []byte) (T, int, error) {
			if err := needSize(typ, data, size); err != nil {
				return 0, 0, err
			}

			return T(readUint(data, size)), size, nil //nolint:gosec
		},
		encode: func(dst []byte, v T) []byte {
			return appendUint(dst, uint64(v), size) //nolint:gosec
		},
		format: func(v T) string {
			return strconv.FormatInt(int64(v), 10)
		},
		scan: func(text string) (T, error) {
			v, err := strconv.ParseInt(strings.TrimSpace(text), 10, size*8)
			if err != nil {
				return 0, malformed(typ, text, err)
			}

			return T(v), nil
		},
	}
}

func unsignedCodec[T unsigned](typ format.FieldType) *valueCodec[T] {
	size := typ.Size()

	return &valueCodec[T]{
		typ: typ,
		decode: func(data []byte) (T, int, error) {
			if err := needSize(typ, data, size); err != nil {
				return 0, 0, err
			}

			return T(readUint(data, size)), size, nil
		},
		encode: func(dst []byte, v T) []byte {
			return appendUint(dst, uint64(v), size)
		},
		format: func(v T) string {
			return strconv.FormatUint(uint64(v), 10)
		},
		scan: func(text string) (T, error) {
			v, err := strconv.ParseUint(strings.TrimSpace(text), 10, size*8)
			if err != nil {
				return 0, malformed(typ, text, err)
			}

			return T(v), nil
		},
	}
}

func readFloat(data []byte) float32 {
	return math.Float32frombits(le.Uint32(data))
}

func appendFloat(dst []byte, v float32) []byte {
	return le.AppendUint32(dst, math.Float32bits(v))
}

// quietNaN is the bit pattern written back for the text "NaN".
const quietNaN uint32 = 0x7FC00000

// nanBitsPrefix introduces any other NaN, followed by its bits in hex.
const nanBitsPrefix = "NaN:"

func isNaNBits(bits uint32) bool {
	return bits&0x7F800000 == 0x7F800000 && bits&0x007FFFFF != 0
}

func formatFloat(v float32) string {
	if bits := math.Float32bits(v); isNaNBits(bits) && bits != quietNaN {
		return nanBitsPrefix + fmt.Sprintf("%08X", bits)
	}

	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func scanFloat(typ format.FieldType, text string) (float32, error) {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) > len(nanBitsPrefix) && strings.EqualFold(trimmed[:len(nanBitsPrefix)], nanBitsPrefix) {
		bits, err := strconv.ParseUint(trimmed[len(nanBitsPrefix):], 16, 32)
		if err != nil || !isNaNBits(uint32(bits)) { //nolint:gosec
			return 0, malformed(typ, text, err)
		}

		return math.Float32frombits(uint32(bits)), nil //nolint:gosec
	}

	v, err := strconv.ParseFloat(trimmed, 32)
	if err != nil {
		return 0, malformed(typ, text, err)
	}
	if math.IsNaN(v) {
		return math.Float32frombits(quietNaN), nil
	}

	return float32(v), nil
}

func newFloatCodec() *valueCodec[float32] {
	return &valueCodec[float32]{
		typ: format.TypeFloat,
		decode: func(data []byte) (float32, int, error) {
			if err := needSize(format.TypeFloat, data, 4); err != nil {
				return 0, 0, err
			}

			return readFloat(data), 4, nil
		},
		encode: appendFloat,
		format: formatFloat,
		scan: func(text string) (float32, error) {
			return scanFloat(format.TypeFloat, text)
		},
	}
}

func newBoolCodec() *valueCodec[bool] {
	return &valueCodec[bool]{
		typ: format.TypeBoolean,
		decode: func(data []byte) (bool, int, error) {
			if err := needSize(format.TypeBoolean, data, 1); err != nil {
				return false, 0, err
			}

			switch data[0] {
			case 0:
				return false, 1, nil
			case 1:
				return true, 1, nil
			default:
				return false, 0, malformed(format.TypeBoolean, strconv.Itoa(int(data[0])), nil)
			}
		},
		encode: func(dst []byte, v bool) []byte {
			if v {
				return append(dst, 1)
			}

			return append(dst, 0)
		},
		format: strconv.FormatBool,
		scan: func(text string) (bool, error) {
			v, err := strconv.ParseBool(strings.TrimSpace(text))
			if err != nil {
				return false, malformed(format.TypeBoolean, text, err)
			}

			return v, nil
		},
	}
}
