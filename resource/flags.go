package resource

import (
	"fmt"

	"github.com/arloliu/metagraph/errs"
)

const (
	basePageSize = 0x200
	maxPageShift = 0xF
	// maxPageUnits is the largest weighted page count a flags value can hold.
	maxPageUnits = 1*256 + 3*128 + 15*64 + 63*32 + 127*16 + 8 + 4 + 2 + 1
)

// pageField describes one page-count field of the flags: count bits at shift,
// each page weighing weight base pages.
type pageField struct {
	shift  uint
	mask   uint32
	weight int
}

// pageFields are ordered from the heaviest page to the lightest.
var pageFields = [...]pageField{
	{shift: 4, mask: 0x1, weight: 256},
	{shift: 5, mask: 0x3, weight: 128},
	{shift: 7, mask: 0xF, weight: 64},
	{shift: 11, mask: 0x3F, weight: 32},
	{shift: 17, mask: 0x7F, weight: 16},
	{shift: 24, mask: 0x1, weight: 8},
	{shift: 25, mask: 0x1, weight: 4},
	{shift: 26, mask: 0x1, weight: 2},
	{shift: 27, mask: 0x1, weight: 1},
}

// SizeFromFlags returns the region size in bytes described by flags.
func SizeFromFlags(flags uint32) int {
	units := 0
	for _, f := range pageFields {
		units += int((flags>>f.shift)&f.mask) * f.weight
	}

	return (basePageSize << (flags & maxPageShift)) * units
}

// FlagsForSize returns flags describing the smallest region of at least size bytes.
//
// The base page shift is the smallest one whose page count fits the flags fields.
// The high nibble of the flags is left zero.
func FlagsForSize(size int) (uint32, error) {
	if size < 0 {
		return 0, fmt.Errorf("%w: negative size %d", errs.ErrInvalidPageFlags, size)
	}
	if size == 0 {
		return 0, nil
	}

	for shift := range uint32(maxPageShift + 1) {
		base := basePageSize << shift
		units := (size + base - 1) / base
		if units > maxPageUnits {
			continue
		}

		flags := shift
		for _, f := range pageFields {
			n := min(units/f.weight, int(f.mask))
			flags |= uint32(n) << f.shift //nolint:gosec
			units -= n * f.weight
		}
		if units == 0 {
			return flags, nil
		}
	}

	return 0, fmt.Errorf("%w: %d bytes exceed the largest region", errs.ErrInvalidPageFlags, size)
}
