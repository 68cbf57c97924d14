package field

import (
	"strings"

	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/format"
)

// ArraySeparator joins the element texts of an Array32 value.
const ArraySeparator = ";"

const arrayCountSize = 4

// arrayCodec handles Array32 values: a u32 element count followed by the
// elements of a fixed-size type.
type arrayCodec struct {
	elem     format.FieldType
	elemSize int
	codec    Codec
}

var _ Codec = (*arrayCodec)(nil)

func newArrayCodec(elem format.FieldType) (*arrayCodec, error) {
	size := elem.Size()
	if size == 0 {
		return nil, errs.Format(errs.ErrUnsupportedArray, "%s", elem)
	}

	codec, err := Lookup(elem)
	if err != nil {
		return nil, err
	}

	return &arrayCodec{elem: elem, elemSize: size, codec: codec}, nil
}

func (c *arrayCodec) Label() string {
	return format.TypeArray32.String()
}

// Element returns the element type.
func (c *arrayCodec) Element() format.FieldType {
	return c.elem
}

func (c *arrayCodec) Compose(data []byte) (string, error) {
	if err := needSize(format.TypeArray32, data, arrayCountSize); err != nil {
		return "", err
	}

	count := int(le.Uint32(data))
	region := data[arrayCountSize:]

	if len(region)%c.elemSize != 0 {
		return "", errs.Format(errs.ErrMalformedArray,
			"%d bytes is not a multiple of %s size %d", len(region), c.elem, c.elemSize)
	}
	if count != len(region)/c.elemSize {
		return "", &errs.FormatError{
			Err:       errs.ErrMalformedArray,
			Expected:  count,
			Actual:    len(region) / c.elemSize,
			HasCounts: true,
			Detail:    c.elem.String(),
		}
	}

	parts := make([]string, count)
	for i := range parts {
		text, err := c.codec.Compose(region[i*c.elemSize : (i+1)*c.elemSize])
		if err != nil {
			return "", err
		}
		parts[i] = text
	}

	return strings.Join(parts, ArraySeparator), nil
}

func (c *arrayCodec) Parse(text string) ([]byte, error) {
	var parts []string
	if strings.TrimSpace(text) != "" {
		parts = strings.Split(text, ArraySeparator)
	}

	out := make([]byte, 0, arrayCountSize+len(parts)*c.elemSize)
	out = le.AppendUint32(out, uint32(len(parts))) //nolint:gosec

	for _, part := range parts {
		data, err := c.codec.Parse(part)
		if err != nil {
			return nil, err
		}
		if len(data) != c.elemSize {
			return nil, &errs.FormatError{
				Err:       errs.ErrMalformedArray,
				Expected:  c.elemSize,
				Actual:    len(data),
				HasCounts: true,
				Detail:    c.elem.String(),
			}
		}
		out = append(out, data...)
	}

	return out, nil
}
