package resource

import (
	"fmt"

	"github.com/arloliu/metagraph/compress"
	"github.com/arloliu/metagraph/errs"
)

// Virtual base addresses of the two memory regions.
const (
	SystemBase   uint64 = 0x50000000
	GraphicsBase uint64 = 0x60000000

	regionMask = 0xF0000000
	offsetMask = 0x0FFFFFFF
)

// File is a loaded container with its decompressed memory regions.
type File struct {
	Header   Header
	System   []byte
	Graphics []byte
}

// Load parses the header of data and decompresses its pages with codec.
//
// Decompressed data shorter than the regions declared by the page flags is an
// ErrInvalidPageFlags error; trailing bytes beyond them are ignored.
func Load(data []byte, codec compress.Decompressor) (*File, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	pages, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("decompress pages: %w", err)
	}

	sysSize, gfxSize := h.SystemSize(), h.GraphicsSize()
	if len(pages) < sysSize+gfxSize {
		return nil, fmt.Errorf("%w: flags declare %d+%d bytes, pages hold %d",
			errs.ErrInvalidPageFlags, sysSize, gfxSize, len(pages))
	}

	return &File{
		Header:   h,
		System:   pages[:sysSize:sysSize],
		Graphics: pages[sysSize : sysSize+gfxSize : sysSize+gfxSize],
	}, nil
}

// Slice returns n bytes of memory starting at the virtual address ptr.
//
// The returned slice aliases the region and must not be modified.
func (f *File) Slice(ptr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d at 0x%08X", errs.ErrInvalidPointer, n, ptr)
	}

	region, err := f.region(ptr)
	if err != nil {
		return nil, err
	}

	off := ptr & offsetMask
	if off+uint64(n) > uint64(len(region)) {
		return nil, fmt.Errorf("%w: 0x%08X+%d beyond %d byte region", errs.ErrInvalidPointer, ptr, n, len(region))
	}

	return region[off : off+uint64(n)], nil
}

// Tail returns the memory from the virtual address ptr to the end of its region.
func (f *File) Tail(ptr uint64) ([]byte, error) {
	region, err := f.region(ptr)
	if err != nil {
		return nil, err
	}

	off := ptr & offsetMask
	if off > uint64(len(region)) {
		return nil, fmt.Errorf("%w: 0x%08X beyond %d byte region", errs.ErrInvalidPointer, ptr, len(region))
	}

	return region[off:], nil
}

func (f *File) region(ptr uint64) ([]byte, error) {
	switch ptr &^ offsetMask {
	case SystemBase:
		return f.System, nil
	case GraphicsBase:
		return f.Graphics, nil
	default:
		return nil, fmt.Errorf("%w: 0x%08X", errs.ErrInvalidPointer, ptr)
	}
}
