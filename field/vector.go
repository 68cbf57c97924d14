package field

import (
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/fcb/format"
)

// colorScale converts between stored 0.0-1.0 components and 0-255 text.
const colorScale = 255

var (
	vector2Codec     = newFloatVectorCodec(format.TypeVector2, 2)
	vector3Codec     = newFloatVectorCodec(format.TypeVector3, 3)
	vector4Codec     = newFloatVectorCodec(format.TypeVector4, 4)
	quaternionCodec  = newFloatVectorCodec(format.TypeQuaternion, 4)
	vectorCodec      = newFloatVectorCodec(format.TypeVector, 0)
	vectorColorCodec = newColorCodec()
	vectorIntCodec   = newIntVectorCodec()
)

// splitList splits comma-separated text. It never returns an empty element
// list for non-blank text.
func splitList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// componentCount returns how many 4-byte components to decode from data.
// A fixed count of 0 means any positive number.
func componentCount(typ format.FieldType, data []byte, fixed int) (int, error) {
	if fixed > 0 {
		if err := needSize(typ, data, fixed*4); err != nil {
			return 0, err
		}

		return fixed, nil
	}

	if err := needSize(typ, data, 4); err != nil {
		return 0, err
	}

	return len(data) / 4, nil
}

func checkComponents(typ format.FieldType, text string, parts []string, fixed int) error {
	if len(parts) == 0 || (fixed > 0 && len(parts) != fixed) {
		return malformed(typ, text, nil)
	}

	return nil
}

func newFloatVectorCodec(typ format.FieldType, fixed int) *valueCodec[[]float32] {
	return &valueCodec[[]float32]{
		typ: typ,
		decode: func(data []byte) ([]float32, int, error) {
			n, err := componentCount(typ, data, fixed)
			if err != nil {
				return nil, 0, err
			}

			values := make([]float32, n)
			for i := range values {
				values[i] = readFloat(data[i*4:])
			}

			return values, n * 4, nil
		},
		encode: func(dst []byte, v []float32) []byte {
			for _, f := range v {
				dst = appendFloat(dst, f)
			}

			return dst
		},
		format: func(v []float32) string {
			parts := make([]string, len(v))
			for i, f := range v {
				parts[i] = formatFloat(f)
			}

			return strings.Join(parts, ",")
		},
		scan: func(text string) ([]float32, error) {
			parts := splitList(text)
			if err := checkComponents(typ, text, parts, fixed); err != nil {
				return nil, err
			}

			values := make([]float32, len(parts))
			for i, part := range parts {
				f, err := scanFloat(typ, part)
				if err != nil {
					return nil, err
				}
				values[i] = f
			}

			return values, nil
		},
	}
}

// newColorCodec builds the VectorColor codec. The product of a float32 and
// 255 is exact in float64, so text produced by format scans back to the
// same bits.
func newColorCodec() *valueCodec[[]float32] {
	c := newFloatVectorCodec(format.TypeVectorColor, 0)

	c.format = func(v []float32) string {
		parts := make([]string, len(v))
		for i, f := range v {
			if math.IsNaN(float64(f)) {
				parts[i] = formatFloat(f)
				continue
			}
			parts[i] = strconv.FormatFloat(float64(f)*colorScale, 'g', -1, 64)
		}

		return strings.Join(parts, ",")
	}

	c.scan = func(text string) ([]float32, error) {
		parts := splitList(text)
		if err := checkComponents(format.TypeVectorColor, text, parts, 0); err != nil {
			return nil, err
		}

		values := make([]float32, len(parts))
		for i, part := range parts {
			if len(part) >= 3 && strings.EqualFold(part[:3], "nan") {
				f, err := scanFloat(format.TypeVectorColor, part)
				if err != nil {
					return nil, err
				}
				values[i] = f

				continue
			}

			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, malformed(format.TypeVectorColor, text, err)
			}
			if !math.IsInf(f, 0) && math.Abs(f/colorScale) > math.MaxFloat32 {
				return nil, malformed(format.TypeVectorColor, text, nil)
			}
			values[i] = float32(f / colorScale)
		}

		return values, nil
	}

	return c
}

func newIntVectorCodec() *valueCodec[[]int32] {
	typ := format.TypeVectorInt

	return &valueCodec[[]int32]{
		typ: typ,
		decode: func(data []byte) ([]int32, int, error) {
			n, err := componentCount(typ, data, 0)
			if err != nil {
				return nil, 0, err
			}

			values := make([]int32, n)
			for i := range values {
				values[i] = int32(le.Uint32(data[i*4:])) //nolint:gosec
			}

			return values, n * 4, nil
		},
		encode: func(dst []byte, v []int32) []byte {
			for _, n := range v {
				dst = le.AppendUint32(dst, uint32(n)) //nolint:gosec
			}

			return dst
		},
		format: func(v []int32) string {
			parts := make([]string, len(v))
			for i, n := range v {
				parts[i] = strconv.FormatInt(int64(n), 10)
			}

			return strings.Join(parts, ",")
		},
		scan: func(text string) ([]int32, error) {
			parts := splitList(text)
			if err := checkComponents(typ, text, parts, 0); err != nil {
				return nil, err
			}

			values := make([]int32, len(parts))
			for i, part := range parts {
				n, err := strconv.ParseInt(part, 10, 32)
				if err != nil {
					return nil, malformed(typ, text, err)
				}
				values[i] = int32(n)
			}

			return values, nil
		},
	}
}
