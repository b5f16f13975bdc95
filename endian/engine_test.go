package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	if first == 0x02 {
		require.Equal(t, binary.LittleEndian, CheckEndianness())
	} else {
		require.Equal(t, binary.BigEndian, CheckEndianness())
	}
}

func TestCompareNativeEndian(t *testing.T) {
	native := CheckEndianness() == binary.LittleEndian
	require.Equal(t, native, CompareNativeEndian(GetLittleEndianEngine()))
	require.Equal(t, !native, CompareNativeEndian(GetBigEndianEngine()))
}

func TestLittleEndianEngine_ResourceFields(t *testing.T) {
	engine := GetLittleEndianEngine()

	// "RSC7" magic as stored at the start of a resource
	buf := engine.AppendUint32(nil, 0x37435352)
	require.Equal(t, []byte("RSC7"), buf)
	require.Equal(t, uint32(0x37435352), engine.Uint32(buf))

	buf = engine.AppendUint16(buf[:0], 0x0079)
	require.Equal(t, []byte{0x79, 0x00}, buf)
}
