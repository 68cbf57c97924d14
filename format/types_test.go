package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FieldType
		ok   bool
	}{
		{"exact", "String", TypeString, true},
		{"lower case", "vectorcolor", TypeVectorColor, true},
		{"upper case", "BINHEX", TypeBinHex, true},
		{"padded", "  Int32 ", TypeInt32, true},
		{"invalid keyword", "Invalid", TypeInvalid, false},
		{"unknown", "Rml", TypeInvalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFieldType(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}

	for ft := TypeBinHex; ft <= TypeArray32; ft++ {
		got, ok := ParseFieldType(ft.String())
		require.True(t, ok, ft.String())
		require.Equal(t, ft, got)
		require.True(t, ft.IsValid())
	}
	require.False(t, TypeInvalid.IsValid())
	require.Equal(t, "Unknown", FieldType(200).String())
}

func TestFieldTypeSize(t *testing.T) {
	require.Equal(t, 1, TypeBoolean.Size())
	require.Equal(t, 2, TypeUInt16.Size())
	require.Equal(t, 4, TypePathId.Size())
	require.Equal(t, 8, TypeNoCaseStringId.Size())
	require.Equal(t, 12, TypeVector3.Size())
	require.Equal(t, 16, TypeQuaternion.Size())
	require.Zero(t, TypeString.Size())
	require.Zero(t, TypeVector.Size())
	require.Zero(t, TypeArray32.Size())
}

func TestHeaderFlags(t *testing.T) {
	require.True(t, FlagsNone.IsValid())
	require.True(t, FlagsDebug.IsValid())
	require.False(t, HeaderFlags(2).IsValid())
	require.False(t, HeaderFlags(3).IsValid())

	f, ok := ParseHeaderFlags("Debug")
	require.True(t, ok)
	require.Equal(t, FlagsDebug, f)

	_, ok = ParseHeaderFlags("Stripped")
	require.False(t, ok)
}

func TestHashAlgorithm(t *testing.T) {
	for _, a := range PairingOrder {
		got, ok := ParseHashAlgorithm(a.String())
		require.True(t, ok)
		require.Equal(t, a, got)
	}

	a, ok := ParseHashAlgorithm("crc64_wd2")
	require.True(t, ok)
	require.Equal(t, HashCRC64WD2, a)
	require.Equal(t, 8, a.Width())
	require.Equal(t, 4, HashFNV64WD1.Width())

	_, ok = ParseHashAlgorithm("String")
	require.False(t, ok)
}

func TestCompressionForPath(t *testing.T) {
	require.Equal(t, CompressionZstd, CompressionForPath("strings.txt.zst"))
	require.Equal(t, CompressionZstd, CompressionForPath("dir/strings.ZSTD"))
	require.Equal(t, CompressionS2, CompressionForPath("strings.s2"))
	require.Equal(t, CompressionLZ4, CompressionForPath("strings.lz4"))
	require.Equal(t, CompressionNone, CompressionForPath("strings.txt"))
	require.Equal(t, CompressionNone, CompressionForPath("strings"))
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}
