// Package endian provides byte order utilities for the object container format.
//
// The container is always little-endian on disk, but identifier hashes are
// sometimes stored byte-reversed by the producing engine, so the package also
// exposes the byte swaps the hash suite and the pairing heuristic rely on.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, nameHash)
//	reversed := endian.Swap32(hash.CRC32("Name"))
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine used by the container format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
//
// Hash label values are stored big-endian so their hex text reads as the digest.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Swap32 reverses the four bytes of v.
func Swap32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

// Swap64 reverses the eight bytes of v.
func Swap64(v uint64) uint64 {
	return bits.ReverseBytes64(v)
}
