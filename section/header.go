package section

import (
	"bytes"

	"github.com/arloliu/fcb/endian"
	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/format"
)

// FileHeader represents the fixed 16-byte header that follows the magic search.
type FileHeader struct {
	// Version is preserved but not interpreted.
	Version uint16 // 2 bytes, offset 4-5
	// Flags must only hold recognized bits.
	Flags format.HeaderFlags // 2 bytes, offset 6-7
	// ObjectCount is the total number of objects in the tree.
	ObjectCount uint32 // 4 bytes, offset 8-11
	// ValueCount is the total number of field values in the tree.
	ValueCount uint32 // 4 bytes, offset 12-15
}

// NewFileHeader creates a FileHeader with the given version and flags.
func NewFileHeader(version uint16, flags format.HeaderFlags) (*FileHeader, error) {
	if !flags.IsValid() {
		return nil, errs.Format(errs.ErrUnsupportedFlags, "flags 0x%04X", uint16(flags))
	}

	return &FileHeader{Version: version, Flags: flags}, nil
}

// Parse parses the header from a byte slice starting with the magic.
// It returns an error if the data is not exactly 16 bytes, the magic is wrong
// or the flags hold unknown bits.
func (h *FileHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.Counts(errs.ErrInvalidHeaderSize, HeaderSize, len(data))
	}

	engine := endian.GetLittleEndianEngine()

	if magic := engine.Uint32(data[0:4]); magic != Magic {
		return errs.Format(errs.ErrInvalidMagicNumber, "0x%08X", magic)
	}

	h.Version = engine.Uint16(data[4:6])
	h.Flags = format.HeaderFlags(engine.Uint16(data[6:8]))
	h.ObjectCount = engine.Uint32(data[8:12])
	h.ValueCount = engine.Uint32(data[12:16])

	if !h.Flags.IsValid() {
		return errs.Format(errs.ErrUnsupportedFlags, "flags 0x%04X", uint16(h.Flags))
	}

	return nil
}

// Bytes serializes the FileHeader, magic included.
func (h *FileHeader) Bytes() []byte {
	return h.Append(make([]byte, 0, HeaderSize))
}

// Append appends the serialized FileHeader to dst.
func (h *FileHeader) Append(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = engine.AppendUint32(dst, Magic)
	dst = engine.AppendUint16(dst, h.Version)
	dst = engine.AppendUint16(dst, uint16(h.Flags))
	dst = engine.AppendUint32(dst, h.ObjectCount)
	dst = engine.AppendUint32(dst, h.ValueCount)

	return dst
}

// FindMagic returns the offset of the first magic signature in data, or -1.
func FindMagic(data []byte) int {
	var sig [4]byte
	endian.GetLittleEndianEngine().PutUint32(sig[:], Magic)

	return bytes.Index(data, sig[:])
}
