package resource

import (
	"fmt"

	"github.com/arloliu/metagraph/endian"
	"github.com/arloliu/metagraph/errs"
)

const (
	// HeaderSize is the size of the container header in bytes.
	HeaderSize = 16
	// Ident is the "RSC7" magic in little-endian order.
	Ident uint32 = 0x37435352
	// MetaVersion is the resource version used by meta resources.
	MetaVersion uint32 = 2
)

var engine = endian.GetLittleEndianEngine()

// Header is the fixed container header.
type Header struct {
	Ident         uint32 // byte offset 0-3
	Version       uint32 // byte offset 4-7
	SystemFlags   uint32 // byte offset 8-11
	GraphicsFlags uint32 // byte offset 12-15
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 16 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 16 bytes, ErrInvalidMagic if the
//     ident is not "RSC7"
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h.Ident = engine.Uint32(data[0:4])
	h.Version = engine.Uint32(data[4:8])
	h.SystemFlags = engine.Uint32(data[8:12])
	h.GraphicsFlags = engine.Uint32(data[12:16])

	if h.Ident != Ident {
		return fmt.Errorf("%w: 0x%08X", errs.ErrInvalidMagic, h.Ident)
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine.PutUint32(b[0:4], h.Ident)
	engine.PutUint32(b[4:8], h.Version)
	engine.PutUint32(b[8:12], h.SystemFlags)
	engine.PutUint32(b[12:16], h.GraphicsFlags)

	return b
}

// SystemSize returns the byte size of the system region.
func (h *Header) SystemSize() int {
	return SizeFromFlags(h.SystemFlags)
}

// GraphicsSize returns the byte size of the graphics region.
func (h *Header) GraphicsSize() int {
	return SizeFromFlags(h.GraphicsFlags)
}

// ParseHeader parses a Header from the start of a container.
//
// Returns:
//   - Header: Parsed header
//   - error: ErrInvalidHeaderSize if data is shorter than 16 bytes, ErrInvalidMagic
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
