// Package errs defines the sentinel errors returned by metagraph.
//
// Call sites wrap these values with additional context using fmt.Errorf and %w,
// so callers should always test for them with errors.Is:
//
//	root, err := metagraph.Decode(data)
//	if errors.Is(err, errs.ErrMalformedGraph) {
//	    // the resource does not have exactly one root structure
//	}
package errs

import "errors"

// Decode stage failures.
var (
	// ErrIOFailure is returned when a resource cannot be opened or fully read.
	ErrIOFailure = errors.New("resource I/O failure")
	// ErrUnknownType is returned when a type key is neither a built-in kind nor described
	// by the structure metadata of the resource.
	ErrUnknownType = errors.New("unknown type key")
	// ErrCorruptReference is returned when a pointer descriptor is misaligned or points
	// outside the decoded data.
	ErrCorruptReference = errors.New("corrupt reference")
	// ErrMalformedGraph is returned when the resolved graph does not have exactly one root.
	ErrMalformedGraph = errors.New("malformed graph")
	// ErrCorruptBlock is returned when decoding a block would read past its end.
	ErrCorruptBlock = errors.New("corrupt data block")
)

// Container failures.
var (
	ErrInvalidHeaderSize      = errors.New("invalid header size")
	ErrInvalidMagic           = errors.New("invalid resource magic")
	ErrInvalidPageFlags       = errors.New("invalid page flags")
	ErrInvalidPointer         = errors.New("invalid resource pointer")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	ErrInvalidWorkers         = errors.New("invalid worker count")
)
