package meta

import (
	"fmt"

	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/format"
)

// RawBlock is an undecoded data block as stored in the resource.
type RawBlock struct {
	Key  format.TypeKey
	Data []byte
}

// Block is a decoded data block: a homogeneous sequence of values of one type.
type Block struct {
	Key         format.TypeKey
	ElementSize int
	// Data is the raw block content. Values may share memory with it.
	Data   []byte
	Values []Value
}

// Len returns the number of elements.
func (b *Block) Len() int {
	return len(b.Values)
}

// DecodeBlock decodes every element of raw with the codec registered for its key.
//
// The block length must be a multiple of the element size; a trailing partial
// element is reported as errs.ErrCorruptBlock and nothing is returned. An empty
// block decodes to no values even when its type has no size.
func DecodeBlock(reg *Registry, raw RawBlock) (*Block, error) {
	codec, err := reg.CodecFor(raw.Key)
	if err != nil {
		return nil, err
	}

	size := codec.Size()
	if size <= 0 {
		if len(raw.Data) == 0 {
			return &Block{Key: raw.Key, ElementSize: size, Data: raw.Data}, nil
		}

		return nil, fmt.Errorf("%w: type %s has element size %d", errs.ErrCorruptBlock, raw.Key, size)
	}
	if len(raw.Data)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes of type %s is not a multiple of %d",
			errs.ErrCorruptBlock, len(raw.Data), raw.Key, size)
	}

	block := &Block{
		Key:         raw.Key,
		ElementSize: size,
		Data:        raw.Data,
		Values:      make([]Value, 0, len(raw.Data)/size),
	}

	c := NewCursor(raw.Data)
	for !c.Done() {
		start := c.Pos()
		v, err := codec.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("element %d of type %s: %w", len(block.Values), raw.Key, err)
		}
		if c.Pos()-start != size {
			return nil, fmt.Errorf("%w: codec for %s consumed %d bytes, want %d",
				errs.ErrCorruptBlock, raw.Key, c.Pos()-start, size)
		}
		block.Values = append(block.Values, v)
	}

	return block, nil
}
