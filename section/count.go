package section

import (
	"math"

	"github.com/arloliu/fcb/endian"
	"github.com/arloliu/fcb/errs"
)

// AppendCount appends n using the variable count encoding.
func AppendCount(dst []byte, n int) []byte {
	if n < CountInlineLimit {
		return append(dst, byte(n))
	}

	dst = append(dst, CountMarkerWide)

	return endian.GetLittleEndianEngine().AppendUint32(dst, uint32(n)) //nolint:gosec
}

// CountSize returns the number of bytes AppendCount uses for n.
func CountSize(n int) int {
	if n < CountInlineLimit {
		return 1
	}

	return CountWideSize
}

// ReadCount decodes a count at data[offset:].
//
// It returns the decoded value, whether it is a back-reference rather than a
// count, and the number of bytes consumed.
func ReadCount(data []byte, offset int) (value uint32, isOffset bool, n int, err error) {
	if offset < 0 || offset >= len(data) {
		return 0, false, 0, errs.Format(errs.ErrTruncated, "count at offset %d", offset)
	}

	b := data[offset]
	if b < CountInlineLimit {
		return uint32(b), false, 1, nil
	}

	if len(data)-offset < CountWideSize {
		return 0, false, 0, errs.Format(errs.ErrTruncated, "wide count at offset %d", offset)
	}

	value = endian.GetLittleEndianEngine().Uint32(data[offset+1 : offset+CountWideSize])
	if value > math.MaxInt32 {
		return 0, false, 0, errs.Format(errs.ErrCountOutOfRange, "count %d at offset %d", value, offset)
	}

	return value, b == CountMarkerOffset, CountWideSize, nil
}
