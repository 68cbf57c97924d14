package hash

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcb/format"
)

func TestCRC32(t *testing.T) {
	tests := []struct {
		name string
		text string
		want uint32
	}{
		{"display name", "Name", 0xFE11D138},
		{"entity libraries", "EntityLibraries", 0xBCDD10B4},
		{"entity", "Entity", 0x0984415E},
		{"lib", "lib", 0xA90F3BCC},
		{"hidden name", "text_hidName", 0x9D8873F8},
		{"template", "Template", 0x6E167DD5},
		{"library item id", "disLibItemId", 0x8EDB0295},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CRC32(tt.text))
		})
	}

	require.NotEqual(t, CRC32("name"), CRC32("Name"), "CRC32 is case-sensitive")
}

func TestCRC32R(t *testing.T) {
	require.Equal(t, uint32(0x38D111FE), CRC32R("Name"))
}

func TestFNV64WD1(t *testing.T) {
	tests := []struct {
		name string
		text string
		want uint32
	}{
		{"empty", "", 0x84222325},
		{"display name", "Name", 0xBBBEDB74},
		{"path", "graphics/Foo.xbt", 0xA73DDDF6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FNV64WD1(tt.text))
		})
	}

	require.Equal(t, FNV64WD1("graphics/foo.xbt"), FNV64WD1(`GRAPHICS\FOO.XBT`))
}

func TestCRC64WD2(t *testing.T) {
	tests := []struct {
		name string
		text string
		want uint64
	}{
		{"empty", "", 0xABF29CE484222325},
		{"display name", "Name", 0xBE411B7EBBBEDB74},
		{"path", "graphics/Foo.xbt", 0xAD1974BDA73DDDF6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CRC64WD2(tt.text))
			require.Equal(t, tt.want, Compute(format.HashCRC64WD2, tt.text))
		})
	}

	require.Equal(t, uint64(0x74DBBEBB7E1B41BE), CRC64WD2R("Name"))
}

func TestCRC64WD2TopBits(t *testing.T) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for range 1000 {
		text := randString(seededRand, seededRand.Intn(64))
		require.Equal(t, uint64(0b101), CRC64WD2(text)>>61, "text %q", text)
	}
}

func TestFNVMatchesStandardLibrary(t *testing.T) {
	texts := []string{"", "a", "Name", "Some/Mixed\\Path.bin", "ÄÖÜ/straße"}
	for _, text := range texts {
		h := fnv.New64()
		_, _ = h.Write([]byte(strings.ToLower(strings.ReplaceAll(text, "/", "\\"))))
		want := h.Sum64()

		require.Equal(t, uint32(want), FNV64WD1(text), "text %q", text) //nolint:gosec
		require.Equal(t, want&wd2Mask|wd2Tag, CRC64WD2(text), "text %q", text)
	}
}

func TestBundleMatch(t *testing.T) {
	b := NewBundle("Name")

	alg, ok := b.Match(0xFE11D138)
	require.True(t, ok)
	require.Equal(t, format.HashCRC32, alg)

	alg, ok = b.Match(0x38D111FE)
	require.True(t, ok)
	require.Equal(t, format.HashCRC32R, alg)

	alg, ok = b.Match(0xBBBEDB74)
	require.True(t, ok)
	require.Equal(t, format.HashFNV64WD1, alg)

	alg, ok = b.Match(0x74DBBEBB7E1B41BE)
	require.True(t, ok)
	require.Equal(t, format.HashCRC64WD2R, alg)

	_, ok = b.Match(0xBE411B7EBBBEDB74)
	require.False(t, ok, "forward CRC64WD2 is not part of the pairing set")

	_, ok = NewBundle("").Match(0)
	require.False(t, ok, "zero digests never match")
}

func TestBundleMatchWidth(t *testing.T) {
	b := NewBundle("Name")

	alg, ok := b.MatchWidth(0xFE11D138, 4)
	require.True(t, ok)
	require.Equal(t, format.HashCRC32, alg)

	_, ok = b.MatchWidth(0xFE11D138, 8)
	require.False(t, ok, "an 8-byte value never pairs with a 32-bit digest")

	alg, ok = b.MatchWidth(0x74DBBEBB7E1B41BE, 8)
	require.True(t, ok)
	require.Equal(t, format.HashCRC64WD2R, alg)
}

func TestFingerprint(t *testing.T) {
	require.Equal(t, uint64(0xef46db3751d8e999), Fingerprint(nil))
	require.Equal(t, uint64(0x4fdcca5ddb678139), Fingerprint([]byte("test")))
	require.Equal(t, Fingerprint([]byte("test")), FingerprintString("test"))
}

func randString(r *rand.Rand, n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ/\\._"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkCRC64WD2(b *testing.B) {
	text := "graphics/_common/_textures/some_texture_name.xbt"
	for b.Loop() {
		CRC64WD2(text)
	}
}

func BenchmarkNewBundle(b *testing.B) {
	for b.Loop() {
		NewBundle("EntityLibraryItem")
	}
}
