// Package field converts field values between their stored bytes and their
// canonical text form.
//
// Every format.FieldType is bound to exactly one codec. Codecs are stateless
// and safe for concurrent use.
//
// # Basic Usage
//
//	codec, err := field.Lookup(format.TypeFloat)
//	if err != nil {
//	    return err
//	}
//	text, err := codec.Compose(value) // "1.5"
//	data, err := codec.Parse(text)    // value again
package field

import (
	"fmt"

	"github.com/arloliu/fcb/errs"
)

// Codec converts one field type between bytes and text.
type Codec interface {
	// Label returns the type attribute written for values of this codec.
	Label() string

	// Parse converts canonical text into stored bytes.
	Parse(text string) ([]byte, error)

	// Compose converts stored bytes into canonical text.
	//
	// All of data must be consumed, otherwise the result is a FormatError
	// wrapping errs.ErrUnconsumedData.
	Compose(data []byte) (string, error)
}

// Typed is implemented by codecs with a Go value representation.
type Typed[T any] interface {
	Codec

	// Deserialize decodes a value from buf[off:off+n] and returns the
	// number of bytes it consumed.
	Deserialize(buf []byte, off, n int) (T, int, error)

	// Serialize encodes v.
	Serialize(v T) []byte
}

// valueCodec implements Typed with plain functions.
//
// decode receives exactly the requested slice; it may consume less than the
// whole slice, which Compose reports.
type valueCodec[T any] struct {
	typ    fmt.Stringer
	decode func(data []byte) (T, int, error)
	encode func(dst []byte, v T) []byte
	format func(v T) string
	scan   func(text string) (T, error)
}

var _ Typed[int32] = (*valueCodec[int32])(nil)

func (c *valueCodec[T]) Label() string {
	return c.typ.String()
}

func (c *valueCodec[T]) Deserialize(buf []byte, off, n int) (T, int, error) {
	var zero T
	if off < 0 || n < 0 || off+n > len(buf) {
		return zero, 0, errs.Counts(errs.ErrTruncated, n, len(buf)-off)
	}

	return c.decode(buf[off : off+n])
}

func (c *valueCodec[T]) Serialize(v T) []byte {
	return c.encode(make([]byte, 0, 8), v)
}

func (c *valueCodec[T]) Compose(data []byte) (string, error) {
	v, consumed, err := c.Deserialize(data, 0, len(data))
	if err != nil {
		return "", err
	}

	if err := checkConsumed(c.typ, consumed, len(data)); err != nil {
		return "", err
	}

	return c.format(v), nil
}

func (c *valueCodec[T]) Parse(text string) ([]byte, error) {
	v, err := c.scan(text)
	if err != nil {
		return nil, err
	}

	return c.Serialize(v), nil
}

func checkConsumed(typ fmt.Stringer, consumed, total int) error {
	if consumed == total {
		return nil
	}

	return &errs.FormatError{
		Err:       errs.ErrUnconsumedData,
		Expected:  total,
		Actual:    consumed,
		HasCounts: true,
		Detail:    typ.String(),
	}
}

// needSize fails unless data holds at least size bytes.
func needSize(typ fmt.Stringer, data []byte, size int) error {
	if len(data) >= size {
		return nil
	}

	return &errs.FormatError{
		Err:       errs.ErrInvalidFieldSize,
		Expected:  size,
		Actual:    len(data),
		HasCounts: true,
		Detail:    typ.String(),
	}
}

func malformed(typ fmt.Stringer, text string, err error) error {
	if err != nil {
		return errs.Format(errs.ErrMalformedValue, "%s %q: %v", typ, text, err)
	}

	return errs.Format(errs.ErrMalformedValue, "%s %q", typ, text)
}
