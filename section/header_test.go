package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/format"
)

func TestNewFileHeader(t *testing.T) {
	t.Run("Default flags", func(t *testing.T) {
		header, err := NewFileHeader(DefaultVersion, format.FlagsNone)

		require.NoError(t, err)
		require.Equal(t, DefaultVersion, header.Version)
		require.Equal(t, format.FlagsNone, header.Flags)
	})

	t.Run("Debug flag", func(t *testing.T) {
		header, err := NewFileHeader(2, format.FlagsDebug)

		require.NoError(t, err)
		require.Equal(t, format.FlagsDebug, header.Flags)
	})

	t.Run("Unknown flag bits", func(t *testing.T) {
		header, err := NewFileHeader(DefaultVersion, format.HeaderFlags(0x4))

		require.ErrorIs(t, err, errs.ErrUnsupportedFlags)
		require.Nil(t, header)
	})
}

func TestFileHeader_Bytes(t *testing.T) {
	header := &FileHeader{Version: 3, Flags: format.FlagsDebug, ObjectCount: 7, ValueCount: 300}

	data := header.Bytes()

	require.Len(t, data, HeaderSize)
	require.Equal(t, []byte{
		0x6E, 0x62, 0x43, 0x46, // magic
		0x03, 0x00, // version
		0x01, 0x00, // flags
		0x07, 0x00, 0x00, 0x00, // objects
		0x2C, 0x01, 0x00, 0x00, // values
	}, data)
}

func TestFileHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := &FileHeader{Version: 5, Flags: format.FlagsNone, ObjectCount: 1, ValueCount: 2}

		parsed := &FileHeader{}
		err := parsed.Parse(original.Bytes())

		require.NoError(t, err)
		require.Equal(t, original, parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		err := (&FileHeader{}).Parse([]byte{1, 2, 3})

		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Invalid magic", func(t *testing.T) {
		data := (&FileHeader{}).Bytes()
		data[0] = 0

		err := (&FileHeader{}).Parse(data)

		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("Unknown flags", func(t *testing.T) {
		data := (&FileHeader{Flags: 0x8000}).Bytes()

		err := (&FileHeader{}).Parse(data)

		require.ErrorIs(t, err, errs.ErrUnsupportedFlags)
	})
}

func TestFindMagic(t *testing.T) {
	require.Equal(t, 0, FindMagic([]byte("nbCF....")))
	require.Equal(t, 3, FindMagic([]byte("abcnbCF")))
	require.Equal(t, -1, FindMagic([]byte("nbC")))
	require.Equal(t, -1, FindMagic(nil))
}

func TestCount(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		encoded []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"inline max", 0xFD, []byte{0xFD}},
		{"first wide", 0xFE, []byte{0xFF, 0xFE, 0x00, 0x00, 0x00}},
		{"large", 0x12345, []byte{0xFF, 0x45, 0x23, 0x01, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := AppendCount(nil, tt.value)
			require.Equal(t, tt.encoded, encoded)
			require.Equal(t, len(encoded), CountSize(tt.value))

			value, isOffset, n, err := ReadCount(encoded, 0)
			require.NoError(t, err)
			require.False(t, isOffset)
			require.Equal(t, len(encoded), n)
			require.Equal(t, uint32(tt.value), value) //nolint:gosec
		})
	}

	t.Run("Offset marker", func(t *testing.T) {
		value, isOffset, n, err := ReadCount([]byte{0xFE, 0x10, 0x00, 0x00, 0x00}, 0)

		require.NoError(t, err)
		require.True(t, isOffset)
		require.Equal(t, 5, n)
		require.Equal(t, uint32(0x10), value)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, _, _, err := ReadCount([]byte{0xFF, 0x01}, 0)
		require.ErrorIs(t, err, errs.ErrTruncated)

		_, _, _, err = ReadCount(nil, 0)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("Out of range", func(t *testing.T) {
		_, _, _, err := ReadCount([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 0)
		require.ErrorIs(t, err, errs.ErrCountOutOfRange)
	})
}
