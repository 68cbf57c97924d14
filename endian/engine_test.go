package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckEndianness()

	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result, "CheckEndianness() should return BigEndian")
	case 0x02:
		require.Equal(binary.LittleEndian, result, "CheckEndianness() should return LittleEndian")
	default:
		require.Failf("Unexpected byte value", "got: %v", testBytes[0])
	}

	require.Equal(result == binary.LittleEndian, IsNativeLittleEndian())
}

func TestEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	buf := le.AppendUint32(nil, 0x4643626E)
	require.Equal(t, []byte("nbCF"), buf)

	buf = be.AppendUint32(nil, 0xFE11D138)
	require.Equal(t, []byte{0xFE, 0x11, 0xD1, 0x38}, buf)
}

func TestSwap(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		out  uint32
	}{
		{"zero", 0, 0},
		{"name hash", 0xFE11D138, 0x38D111FE},
		{"palindrome", 0x11222211, 0x11222211},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.out, Swap32(tt.in))
			require.Equal(t, tt.in, Swap32(Swap32(tt.in)))
		})
	}

	require.Equal(t, uint64(0x0807060504030201), Swap64(0x0102030405060708))
}
