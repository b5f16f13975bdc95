// Package endian provides the byte order used to read resource pages.
//
// RSC7 resources built for PC store every multi-byte field little-endian. The
// EndianEngine interface combines binary.ByteOrder and binary.AppendByteOrder so the
// same engine reads pages in the decoder and appends fields when tests assemble
// resource fixtures:
//
//	engine := endian.GetLittleEndianEngine()
//	key := engine.Uint32(page[0:4])
//	page = engine.AppendUint32(page, key)
//
// # Thread Safety
//
// The returned engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the host byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	// little-endian hosts store the low byte (0x00) first
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the engine for PC resources.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the engine for big-endian console resources.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
