package section

import (
	"fmt"

	"github.com/arloliu/metagraph/endian"
	"github.com/arloliu/metagraph/errs"
)

var engine = endian.GetLittleEndianEngine()

// MetaHeader is the fixed-size header at the start of the system region.
type MetaHeader struct {
	VFT      uint32 // byte offset 0x00-0x03
	Unknown4 uint32 // byte offset 0x04-0x07

	// Magic must equal MetaMagic.
	Magic int32 // byte offset 0x10-0x13
	// MagicVersion must equal MetaMagicVersion.
	MagicVersion uint16 // byte offset 0x14-0x15
	// HasUselessData reports whether UselessPointer addresses padding data.
	HasUselessData uint8 // byte offset 0x16

	// RootBlockIndex is the 1-based index of the block holding the root, as recorded
	// by the writer. Decoding locates the root itself and only reports this value.
	RootBlockIndex int32 // byte offset 0x1C-0x1F

	StructureInfosPointer uint64 // byte offset 0x20-0x27
	EnumInfosPointer      uint64 // byte offset 0x28-0x2F
	DataBlocksPointer     uint64 // byte offset 0x30-0x37
	NamePointer           uint64 // byte offset 0x38-0x3F
	UselessPointer        uint64 // byte offset 0x40-0x47

	StructureInfosCount uint16 // byte offset 0x48-0x49
	EnumInfosCount      uint16 // byte offset 0x4A-0x4B
	DataBlocksCount     uint16 // byte offset 0x4C-0x4D
}

// NewMetaHeader creates a header with the constant fields set.
func NewMetaHeader() *MetaHeader {
	return &MetaHeader{
		Unknown4:     1,
		Magic:        MetaMagic,
		MagicVersion: MetaMagicVersion,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 0x70 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 0x70 bytes, ErrInvalidMagic if the
//     magic constants do not match
func (h *MetaHeader) Parse(data []byte) error {
	if len(data) != MetaHeaderSize {
		return fmt.Errorf("%w: meta header of %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h.VFT = engine.Uint32(data[0x00:0x04])
	h.Unknown4 = engine.Uint32(data[0x04:0x08])
	h.Magic = int32(engine.Uint32(data[0x10:0x14])) //nolint:gosec
	h.MagicVersion = engine.Uint16(data[0x14:0x16])
	h.HasUselessData = data[0x16]
	h.RootBlockIndex = int32(engine.Uint32(data[0x1C:0x20])) //nolint:gosec
	h.StructureInfosPointer = engine.Uint64(data[0x20:0x28])
	h.EnumInfosPointer = engine.Uint64(data[0x28:0x30])
	h.DataBlocksPointer = engine.Uint64(data[0x30:0x38])
	h.NamePointer = engine.Uint64(data[0x38:0x40])
	h.UselessPointer = engine.Uint64(data[0x40:0x48])
	h.StructureInfosCount = engine.Uint16(data[0x48:0x4A])
	h.EnumInfosCount = engine.Uint16(data[0x4A:0x4C])
	h.DataBlocksCount = engine.Uint16(data[0x4C:0x4E])

	if h.Magic != MetaMagic || h.MagicVersion != MetaMagicVersion {
		return fmt.Errorf("%w: meta header 0x%08X/0x%04X", errs.ErrInvalidMagic, uint32(h.Magic), h.MagicVersion) //nolint:gosec
	}

	return nil
}

// Bytes serializes the header.
func (h *MetaHeader) Bytes() []byte {
	b := make([]byte, MetaHeaderSize)
	engine.PutUint32(b[0x00:0x04], h.VFT)
	engine.PutUint32(b[0x04:0x08], h.Unknown4)
	engine.PutUint32(b[0x10:0x14], uint32(h.Magic)) //nolint:gosec
	engine.PutUint16(b[0x14:0x16], h.MagicVersion)
	b[0x16] = h.HasUselessData
	engine.PutUint32(b[0x1C:0x20], uint32(h.RootBlockIndex)) //nolint:gosec
	engine.PutUint64(b[0x20:0x28], h.StructureInfosPointer)
	engine.PutUint64(b[0x28:0x30], h.EnumInfosPointer)
	engine.PutUint64(b[0x30:0x38], h.DataBlocksPointer)
	engine.PutUint64(b[0x38:0x40], h.NamePointer)
	engine.PutUint64(b[0x40:0x48], h.UselessPointer)
	engine.PutUint16(b[0x48:0x4A], h.StructureInfosCount)
	engine.PutUint16(b[0x4A:0x4C], h.EnumInfosCount)
	engine.PutUint16(b[0x4C:0x4E], h.DataBlocksCount)

	return b
}

// ParseMetaHeader parses a MetaHeader from the start of a system region.
func ParseMetaHeader(data []byte) (MetaHeader, error) {
	if len(data) < MetaHeaderSize {
		return MetaHeader{}, fmt.Errorf("%w: system region of %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := MetaHeader{}
	if err := h.Parse(data[:MetaHeaderSize]); err != nil {
		return MetaHeader{}, err
	}

	return h, nil
}
