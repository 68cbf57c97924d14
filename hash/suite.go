// Package hash implements the identifier hash algorithms used by the object
// container format, and the content fingerprint used for round-trip checks.
//
// The producing engine accumulated several hash variants over time. Each
// function here reproduces one of them bit for bit:
//
//   - CRC32: IEEE CRC32 of the UTF-8 text, case-sensitive. Used for object
//     and field name hashes.
//   - CRC32R: CRC32 with its four bytes reversed.
//   - FNV64WD1: path-normalized, lower-cased FNV-1 64 truncated to 32 bits.
//   - CRC64WD2: the same accumulation kept at 64 bits with the top three bits
//     forced to 101. Despite the name it is not a CRC.
//
// All functions are pure and safe for concurrent use.
package hash

import (
	"hash/crc32"
	"strings"
	"unicode"

	"github.com/arloliu/fcb/endian"
	"github.com/arloliu/fcb/format"
)

const (
	fnvOffset64 = 0xCBF29CE484222325
	fnvPrime64  = 0x100000001B3

	wd2Mask = 0x1FFFFFFFFFFFFFFF
	wd2Tag  = 0xA000000000000000
)

// CRC32 computes the IEEE CRC32 of text.
func CRC32(text string) uint32 {
	return crc32.ChecksumIEEE([]byte(text))
}

// CRC32R computes CRC32 with the result bytes reversed.
func CRC32R(text string) uint32 {
	return endian.Swap32(CRC32(text))
}

// FNV64WD1 computes the 32-bit path hash.
func FNV64WD1(text string) uint32 {
	return uint32(fnv1Path(text)) //nolint:gosec
}

// CRC64WD2 computes the 64-bit tagged path hash. The top three bits of the
// result are always 101.
func CRC64WD2(text string) uint64 {
	return fnv1Path(text)&wd2Mask | wd2Tag
}

// CRC64WD2R computes CRC64WD2 with the result bytes reversed.
func CRC64WD2R(text string) uint64 {
	return endian.Swap64(CRC64WD2(text))
}

// Compute returns the digest of text under alg, widened to 64 bits.
// Unknown algorithms yield 0.
func Compute(alg format.HashAlgorithm, text string) uint64 {
	switch alg {
	case format.HashCRC32:
		return uint64(CRC32(text))
	case format.HashCRC32R:
		return uint64(CRC32R(text))
	case format.HashFNV64WD1:
		return uint64(FNV64WD1(text))
	case format.HashCRC64WD2R:
		return CRC64WD2R(text)
	case format.HashCRC64WD2:
		return CRC64WD2(text)
	default:
		return 0
	}
}

// fnv1Path runs FNV-1 64 over text after replacing '/' with '\' and lower-casing.
func fnv1Path(text string) uint64 {
	h := uint64(fnvOffset64)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 0x80 {
			return fnv1PathSlow(text)
		}
		switch {
		case c == '/':
			c = '\\'
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		h *= fnvPrime64
		h ^= uint64(c)
	}

	return h
}

// fnv1PathSlow handles text with non-ASCII runes, which need full Unicode lower-casing.
func fnv1PathSlow(text string) uint64 {
	normalized := strings.Map(unicode.ToLower, strings.ReplaceAll(text, "/", "\\"))

	h := uint64(fnvOffset64)
	for i := 0; i < len(normalized); i++ {
		h *= fnvPrime64
		h ^= uint64(normalized[i])
	}

	return h
}
