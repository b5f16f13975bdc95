package meta

import (
	"fmt"
	"math"

	"github.com/arloliu/metagraph/endian"
	"github.com/arloliu/metagraph/errs"
)

// Cursor is a forward-only reader over block or instance bytes.
//
// Every read is bounds checked; reading past the end reports errs.ErrCorruptBlock
// and leaves the cursor unchanged.
type Cursor struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewCursor creates a little-endian cursor over data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data, engine: endian.GetLittleEndianEngine()}
}

// newCursorAt creates a cursor over data starting at offset.
func newCursorAt(data []byte, offset uint32) (*Cursor, error) {
	if uint64(offset) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: offset %d beyond %d bytes", errs.ErrCorruptBlock, offset, len(data))
	}

	return &Cursor{data: data[offset:], engine: endian.GetLittleEndianEngine()}, nil
}

// Pos returns the number of bytes consumed.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Done reports whether every byte has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.data)
}

// Next consumes n bytes and returns them without copying.
func (c *Cursor) Next(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("%w: read of %d bytes at %d exceeds %d bytes", errs.ErrCorruptBlock, n, c.pos, len(c.data))
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

// Skip consumes n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.Next(n)
	return err
}

func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.Next(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.Next(2)
	if err != nil {
		return 0, err
	}

	return c.engine.Uint16(b), nil
}

func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.Next(4)
	if err != nil {
		return 0, err
	}

	return c.engine.Uint32(b), nil
}

func (c *Cursor) Float32() (float32, error) {
	v, err := c.Uint32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// Vector reads n consecutive floats into a 4-component vector.
func (c *Cursor) Vector(n int) ([4]float32, error) {
	var v [4]float32
	b, err := c.Next(4 * n)
	if err != nil {
		return v, err
	}
	for i := range n {
		v[i] = math.Float32frombits(c.engine.Uint32(b[4*i:]))
	}

	return v, nil
}
