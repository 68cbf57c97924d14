package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcb/errs"
	"github.com/arloliu/fcb/format"
)

func TestLookup_AllTypes(t *testing.T) {
	for typ := format.TypeBinHex; typ < format.TypeArray32; typ++ {
		codec, err := Lookup(typ)
		require.NoError(t, err, typ.String())
		assert.Equal(t, typ.String(), codec.Label())
	}

	_, err := Lookup(format.TypeArray32)
	require.ErrorIs(t, err, errs.ErrUnsupportedArray)

	_, err = Lookup(format.TypeInvalid)
	require.ErrorIs(t, err, errs.ErrUnknownFieldType)

	_, err = Lookup(format.FieldType(200))
	require.ErrorIs(t, err, errs.ErrUnknownFieldType)
}

func TestIDCodec_Parse(t *testing.T) {
	stringID := mustLookup(t, format.TypeStringId)

	t.Run("Plain text is hashed", func(t *testing.T) {
		data, err := stringID.Parse("Name")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x38, 0xD1, 0x11, 0xFE}, data)

		data, err = mustLookup(t, format.TypePathId).Parse("graphics/Foo.xbt")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xF6, 0xDD, 0x3D, 0xA7}, data)

		data, err = mustLookup(t, format.TypeNoCaseStringId).Parse("NAME")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x74, 0xDB, 0xBE, 0xBB, 0x7E, 0x1B, 0x41, 0xBE}, data)
	})

	t.Run("Short hex literal is zero padded", func(t *testing.T) {
		data, err := stringID.Parse("0x123")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x23, 0x01, 0, 0}, data)

		text, err := stringID.Compose(data)
		require.NoError(t, err)
		assert.Equal(t, "0x00000123", text)
	})

	t.Run("Malformed hex literal", func(t *testing.T) {
		for _, text := range []string{"0x", "0x123456789", "0xZZ", "0X12G4"} {
			_, err := stringID.Parse(text)
			require.ErrorIs(t, err, errs.ErrMalformedHexID, text)
		}

		_, err := mustLookup(t, format.TypeNoCaseStringId).Parse("0x1234567890ABCDEF")
		require.NoError(t, err)
	})
}

func TestLookupHash(t *testing.T) {
	tests := []struct {
		alg      format.HashAlgorithm
		expected []byte
	}{
		{format.HashCRC32, []byte{0xFE, 0x11, 0xD1, 0x38}},
		{format.HashCRC32R, []byte{0x38, 0xD1, 0x11, 0xFE}},
		{format.HashFNV64WD1, []byte{0xBB, 0xBE, 0xDB, 0x74}},
		{format.HashCRC64WD2R, []byte{0x74, 0xDB, 0xBE, 0xBB, 0x7E, 0x1B, 0x41, 0xBE}},
		{format.HashCRC64WD2, []byte{0xBE, 0x41, 0x1B, 0x7E, 0xBB, 0xBE, 0xDB, 0x74}},
	}

	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			codec, err := LookupHash(tt.alg)
			require.NoError(t, err)
			assert.Equal(t, tt.alg.String(), codec.Label())

			data, err := codec.Parse("Name")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, data)
			assert.Equal(t, "0x"+EncodeHex(tt.expected), mustCompose(t, codec, data))
		})
	}

	_, err := LookupHash(format.HashAlgorithm(0))
	require.ErrorIs(t, err, errs.ErrUnknownFieldType)
}

func mustCompose(t *testing.T, codec Codec, data []byte) string {
	t.Helper()

	text, err := codec.Compose(data)
	require.NoError(t, err)

	return text
}

func TestForLabel(t *testing.T) {
	tests := []struct {
		typ, elem string
		label     string
	}{
		{"float", "", "Float"},
		{"String", "ignored", "String"},
		{"Array32", "int16", "Array32"},
		{"crc32_r", "", "CRC32_R"},
		{"CRC64_WD2_R", "", "CRC64_WD2_R"},
	}

	for _, tt := range tests {
		codec, err := ForLabel(tt.typ, tt.elem)
		require.NoError(t, err, tt.typ)
		assert.Equal(t, tt.label, codec.Label())
	}

	for _, bad := range [][2]string{{"Bogus", ""}, {"", ""}, {"Array32", ""}, {"Array32", "Bogus"}} {
		_, err := ForLabel(bad[0], bad[1])
		require.ErrorIs(t, err, errs.ErrUnknownFieldType, bad)
	}

	_, err := ForLabel("Array32", "String")
	require.ErrorIs(t, err, errs.ErrUnsupportedArray)
}

func TestFor(t *testing.T) {
	codec, err := For(format.TypeInt32, format.TypeInvalid)
	require.NoError(t, err)
	assert.Equal(t, "Int32", codec.Label())

	codec, err = For(format.TypeArray32, format.TypeFloat)
	require.NoError(t, err)
	assert.Equal(t, "Array32", codec.Label())
}
