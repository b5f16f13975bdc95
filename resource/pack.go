package resource

import (
	"fmt"

	"github.com/arloliu/metagraph/compress"
)

// Pack builds a container holding the given regions, padded to their page sizes.
//
// Pack is meant for tools that repack resources with another codec and for
// producing test fixtures; decoded meta graphs cannot be written back.
func Pack(version uint32, system, graphics []byte, codec compress.Compressor) ([]byte, error) {
	sysFlags, err := FlagsForSize(len(system))
	if err != nil {
		return nil, fmt.Errorf("system region: %w", err)
	}
	gfxFlags, err := FlagsForSize(len(graphics))
	if err != nil {
		return nil, fmt.Errorf("graphics region: %w", err)
	}

	sysSize, gfxSize := SizeFromFlags(sysFlags), SizeFromFlags(gfxFlags)
	pages := make([]byte, sysSize+gfxSize)
	copy(pages, system)
	copy(pages[sysSize:], graphics)

	compressed, err := codec.Compress(pages)
	if err != nil {
		return nil, fmt.Errorf("compress pages: %w", err)
	}

	h := Header{Ident: Ident, Version: version, SystemFlags: sysFlags, GraphicsFlags: gfxFlags}
	out := make([]byte, 0, HeaderSize+len(compressed))
	out = append(out, h.Bytes()...)

	return append(out, compressed...), nil
}
