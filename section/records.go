package section

import "github.com/arloliu/metagraph/format"

// DataBlockInfo describes one data block.
type DataBlockInfo struct {
	Key         uint32 // byte offset 0-3, element type key
	DataLength  int32  // byte offset 4-7
	DataPointer uint64 // byte offset 8-15
}

// Parse parses the record from at least DataBlockInfoSize bytes.
func (e *DataBlockInfo) Parse(b []byte) {
	e.Key = engine.Uint32(b[0:4])
	e.DataLength = int32(engine.Uint32(b[4:8])) //nolint:gosec
	e.DataPointer = engine.Uint64(b[8:16])
}

// Bytes serializes the record.
func (e *DataBlockInfo) Bytes() []byte {
	var b [DataBlockInfoSize]byte
	engine.PutUint32(b[0:4], e.Key)
	engine.PutUint32(b[4:8], uint32(e.DataLength)) //nolint:gosec
	engine.PutUint64(b[8:16], e.DataPointer)

	return b[:]
}

// StructureInfoRecord describes one structure type.
type StructureInfoRecord struct {
	Key            uint32 // byte offset 0x00-0x03, structure name hash
	Unknown4       uint32 // byte offset 0x04-0x07
	Unknown8       uint32 // byte offset 0x08-0x0B
	UnknownC       uint32 // byte offset 0x0C-0x0F
	EntriesPointer uint64 // byte offset 0x10-0x17
	StructureSize  int32  // byte offset 0x18-0x1B
	Unknown1C      uint16 // byte offset 0x1C-0x1D
	EntriesCount   uint16 // byte offset 0x1E-0x1F
}

// Parse parses the record from at least StructureInfoSize bytes.
func (e *StructureInfoRecord) Parse(b []byte) {
	e.Key = engine.Uint32(b[0x00:0x04])
	e.Unknown4 = engine.Uint32(b[0x04:0x08])
	e.Unknown8 = engine.Uint32(b[0x08:0x0C])
	e.UnknownC = engine.Uint32(b[0x0C:0x10])
	e.EntriesPointer = engine.Uint64(b[0x10:0x18])
	e.StructureSize = int32(engine.Uint32(b[0x18:0x1C])) //nolint:gosec
	e.Unknown1C = engine.Uint16(b[0x1C:0x1E])
	e.EntriesCount = engine.Uint16(b[0x1E:0x20])
}

// Bytes serializes the record.
func (e *StructureInfoRecord) Bytes() []byte {
	var b [StructureInfoSize]byte
	engine.PutUint32(b[0x00:0x04], e.Key)
	engine.PutUint32(b[0x04:0x08], e.Unknown4)
	engine.PutUint32(b[0x08:0x0C], e.Unknown8)
	engine.PutUint32(b[0x0C:0x10], e.UnknownC)
	engine.PutUint64(b[0x10:0x18], e.EntriesPointer)
	engine.PutUint32(b[0x18:0x1C], uint32(e.StructureSize)) //nolint:gosec
	engine.PutUint16(b[0x1C:0x1E], e.Unknown1C)
	engine.PutUint16(b[0x1E:0x20], e.EntriesCount)

	return b[:]
}

// StructureEntryInfo describes one field of a structure.
type StructureEntryInfo struct {
	EntryNameHash      uint32          // byte offset 0x0-0x3
	DataOffset         int32           // byte offset 0x4-0x7
	DataType           format.DataType // byte offset 0x8
	Unknown9           uint8           // byte offset 0x9
	ReferenceTypeIndex int16           // byte offset 0xA-0xB
	ReferenceKey       uint32          // byte offset 0xC-0xF
}

// Parse parses the record from at least StructureEntryInfoSize bytes.
func (e *StructureEntryInfo) Parse(b []byte) {
	e.EntryNameHash = engine.Uint32(b[0x0:0x4])
	e.DataOffset = int32(engine.Uint32(b[0x4:0x8])) //nolint:gosec
	e.DataType = format.DataType(b[0x8])
	e.Unknown9 = b[0x9]
	e.ReferenceTypeIndex = int16(engine.Uint16(b[0xA:0xC])) //nolint:gosec
	e.ReferenceKey = engine.Uint32(b[0xC:0x10])
}

// Bytes serializes the record.
func (e *StructureEntryInfo) Bytes() []byte {
	var b [StructureEntryInfoSize]byte
	engine.PutUint32(b[0x0:0x4], e.EntryNameHash)
	engine.PutUint32(b[0x4:0x8], uint32(e.DataOffset)) //nolint:gosec
	b[0x8] = uint8(e.DataType)
	b[0x9] = e.Unknown9
	engine.PutUint16(b[0xA:0xC], uint16(e.ReferenceTypeIndex)) //nolint:gosec
	engine.PutUint32(b[0xC:0x10], e.ReferenceKey)

	return b[:]
}

// EnumInfoRecord describes one enum type.
type EnumInfoRecord struct {
	EnumNameHash   uint32 // byte offset 0x00-0x03
	EnumKey        uint32 // byte offset 0x04-0x07
	EntriesPointer uint64 // byte offset 0x08-0x0F
	EntriesCount   int32  // byte offset 0x10-0x13
}

// Parse parses the record from at least EnumInfoSize bytes.
func (e *EnumInfoRecord) Parse(b []byte) {
	e.EnumNameHash = engine.Uint32(b[0x00:0x04])
	e.EnumKey = engine.Uint32(b[0x04:0x08])
	e.EntriesPointer = engine.Uint64(b[0x08:0x10])
	e.EntriesCount = int32(engine.Uint32(b[0x10:0x14])) //nolint:gosec
}

// Bytes serializes the record.
func (e *EnumInfoRecord) Bytes() []byte {
	var b [EnumInfoSize]byte
	engine.PutUint32(b[0x00:0x04], e.EnumNameHash)
	engine.PutUint32(b[0x04:0x08], e.EnumKey)
	engine.PutUint64(b[0x08:0x10], e.EntriesPointer)
	engine.PutUint32(b[0x10:0x14], uint32(e.EntriesCount)) //nolint:gosec

	return b[:]
}

// EnumEntry is one named enum value.
type EnumEntry struct {
	NameHash uint32 // byte offset 0-3
	Value    int32  // byte offset 4-7
}

// Parse parses the record from at least EnumEntryInfoSize bytes.
func (e *EnumEntry) Parse(b []byte) {
	e.NameHash = engine.Uint32(b[0:4])
	e.Value = int32(engine.Uint32(b[4:8])) //nolint:gosec
}

// Bytes serializes the record.
func (e *EnumEntry) Bytes() []byte {
	var b [EnumEntryInfoSize]byte
	engine.PutUint32(b[0:4], e.NameHash)
	engine.PutUint32(b[4:8], uint32(e.Value)) //nolint:gosec

	return b[:]
}
