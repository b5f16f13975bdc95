package meta

import (
	"bytes"
	"fmt"

	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/format"
)

// Wire sizes of pointer descriptors.
const (
	genericSize      = 8
	arraySize        = 16
	charPointerSize  = 16
	blockPointerSize = 16
)

// maxNestingDepth bounds inline structure nesting; deeper layouts are treated as corrupt.
const maxNestingDepth = 64

// Codec decodes one element of a block.
//
// Decode must consume exactly Size bytes from the cursor on success.
type Codec interface {
	Size() int
	Decode(c *Cursor) (Value, error)
}

// scalarCodec decodes built-in scalar block elements.
type scalarCodec struct {
	kind Kind
	size int
}

var _ Codec = scalarCodec{}

func (sc scalarCodec) Size() int {
	return sc.size
}

func (sc scalarCodec) Decode(c *Cursor) (Value, error) {
	v, err := readScalar(c, sc.kind)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// genericCodec decodes blocks of generic pointers.
type genericCodec struct{}

var _ Codec = genericCodec{}

func (genericCodec) Size() int {
	return genericSize
}

func (genericCodec) Decode(c *Cursor) (Value, error) {
	g, err := readGeneric(c)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// structureCodec decodes instances of one structure type using its layout.
type structureCodec struct {
	info *StructureInfo
	reg  *Registry
}

var _ Codec = (*structureCodec)(nil)

func (sc *structureCodec) Size() int {
	return int(sc.info.Length)
}

func (sc *structureCodec) Decode(c *Cursor) (Value, error) {
	instance, err := c.Next(int(sc.info.Length))
	if err != nil {
		return nil, err
	}

	s, err := decodeStructure(sc.reg, sc.info, instance, 0)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func decodeStructure(reg *Registry, info *StructureInfo, instance []byte, depth int) (*Structure, error) {
	if depth > maxNestingDepth {
		return nil, fmt.Errorf("%w: structure 0x%08X nested deeper than %d", errs.ErrCorruptBlock, info.Key, maxNestingDepth)
	}

	s := newStructure(info.Key, len(info.Fields))
	for i := range info.Fields {
		f := &info.Fields[i]
		if f.Key == arrayItemKey {
			continue
		}

		fc, err := newCursorAt(instance, f.Offset)
		if err != nil {
			return nil, fmt.Errorf("structure 0x%08X field 0x%08X: %w", info.Key, f.Key, err)
		}

		v, err := decodeField(reg, f, fc, depth)
		if err != nil {
			return nil, fmt.Errorf("structure 0x%08X field 0x%08X: %w", info.Key, f.Key, err)
		}
		s.set(f.Key, v)
	}

	return s, nil
}

func decodeField(reg *Registry, f *FieldInfo, c *Cursor, depth int) (Value, error) {
	switch f.Type {
	case format.DataBool:
		return readScalar(c, KindBool)
	case format.DataInt8:
		return readScalar(c, KindInt8)
	case format.DataUint8:
		return readScalar(c, KindUint8)
	case format.DataInt16:
		return readScalar(c, KindInt16)
	case format.DataUint16:
		return readScalar(c, KindUint16)
	case format.DataInt32:
		return readScalar(c, KindInt32)
	case format.DataUint32:
		return readScalar(c, KindUint32)
	case format.DataFloat:
		return readScalar(c, KindFloat)
	case format.DataVector3:
		return readScalar(c, KindVector3)
	case format.DataVector4:
		return readScalar(c, KindVector4)
	case format.DataHash:
		return readScalar(c, KindHash)
	case format.DataByteEnum:
		v, err := c.Uint8()
		if err != nil {
			return nil, err
		}

		return newEnum(KindEnum, int64(v), f.RefKey), nil
	case format.DataIntEnum:
		v, err := c.Uint32()
		if err != nil {
			return nil, err
		}

		return newEnum(KindEnum, int64(int32(v)), f.RefKey), nil //nolint:gosec
	case format.DataShortFlags:
		v, err := c.Uint16()
		if err != nil {
			return nil, err
		}

		return newEnum(KindFlags, int64(v), f.RefKey), nil
	case format.DataIntFlags1, format.DataIntFlags2:
		v, err := c.Uint32()
		if err != nil {
			return nil, err
		}

		return newEnum(KindFlags, int64(v), f.RefKey), nil
	case format.DataArrayOfBytes:
		b, err := c.Next(int(f.RefKey))
		if err != nil {
			return nil, err
		}

		return &Bytes{data: b}, nil
	case format.DataArrayOfChars:
		b, err := c.Next(int(f.RefKey & 0xFFFF))
		if err != nil {
			return nil, err
		}
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}

		return &String{value: string(b)}, nil
	case format.DataArray:
		return readArray(c)
	case format.DataCharPointer:
		return readCharPointer(c)
	case format.DataBlockPointer:
		return readBlockPointer(c)
	case format.DataStructurePointer:
		return readGeneric(c)
	case format.DataStructure:
		info, ok := reg.Structure(f.RefKey)
		if !ok {
			return nil, fmt.Errorf("%w: nested structure 0x%08X", errs.ErrUnknownType, f.RefKey)
		}
		if info.Length == 0 {
			return nil, fmt.Errorf("%w: nested structure 0x%08X has zero length", errs.ErrCorruptBlock, f.RefKey)
		}

		instance, err := c.Next(int(info.Length))
		if err != nil {
			return nil, err
		}

		return decodeStructure(reg, info, instance, depth+1)
	default:
		return nil, fmt.Errorf("%w: field data type 0x%02X", errs.ErrUnknownType, uint8(f.Type))
	}
}

func readScalar(c *Cursor, kind Kind) (*Scalar, error) {
	switch kind {
	case KindBool, KindUint8:
		v, err := c.Uint8()
		if err != nil {
			return nil, err
		}

		return newUint(kind, uint64(v)), nil
	case KindInt8:
		v, err := c.Uint8()
		if err != nil {
			return nil, err
		}

		return newInt(kind, int64(int8(v))), nil //nolint:gosec
	case KindInt16:
		v, err := c.Uint16()
		if err != nil {
			return nil, err
		}

		return newInt(kind, int64(int16(v))), nil //nolint:gosec
	case KindUint16:
		v, err := c.Uint16()
		if err != nil {
			return nil, err
		}

		return newUint(kind, uint64(v)), nil
	case KindInt32:
		v, err := c.Uint32()
		if err != nil {
			return nil, err
		}

		return newInt(kind, int64(int32(v))), nil //nolint:gosec
	case KindUint32, KindHash:
		v, err := c.Uint32()
		if err != nil {
			return nil, err
		}

		return newUint(kind, uint64(v)), nil
	case KindFloat:
		v, err := c.Float32()
		if err != nil {
			return nil, err
		}

		return newFloat(v), nil
	case KindVector3:
		v, err := c.Vector(3)
		if err != nil {
			return nil, err
		}

		return newVector(kind, v), nil
	case KindVector4:
		v, err := c.Vector(4)
		if err != nil {
			return nil, err
		}

		return newVector(kind, v), nil
	default:
		return nil, fmt.Errorf("%w: scalar kind %s", errs.ErrUnknownType, kind)
	}
}

func readGeneric(c *Cursor) (*Generic, error) {
	ptr, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(genericSize - 4); err != nil {
		return nil, err
	}

	return &Generic{Ref: ParsePointer(ptr)}, nil
}

// readCounted reads the shared array/char pointer layout:
// pointer, 4 unused bytes, count, capacity, 4 unused bytes.
func readCounted(c *Cursor) (BlockRef, uint16, uint16, error) {
	ptr, err := c.Uint32()
	if err != nil {
		return BlockRef{}, 0, 0, err
	}
	if err := c.Skip(4); err != nil {
		return BlockRef{}, 0, 0, err
	}
	count, err := c.Uint16()
	if err != nil {
		return BlockRef{}, 0, 0, err
	}
	capacity, err := c.Uint16()
	if err != nil {
		return BlockRef{}, 0, 0, err
	}
	if err := c.Skip(4); err != nil {
		return BlockRef{}, 0, 0, err
	}

	return ParsePointer(ptr), count, capacity, nil
}

func readArray(c *Cursor) (*Array, error) {
	ref, count, capacity, err := readCounted(c)
	if err != nil {
		return nil, err
	}

	return &Array{Ref: ref, Count: count, Capacity: capacity}, nil
}

func readCharPointer(c *Cursor) (*CharPointer, error) {
	ref, length, capacity, err := readCounted(c)
	if err != nil {
		return nil, err
	}

	return &CharPointer{Ref: ref, Length: length, Capacity: capacity}, nil
}

func readBlockPointer(c *Cursor) (*BlockPointer, error) {
	ptr, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(blockPointerSize - 4); err != nil {
		return nil, err
	}

	return &BlockPointer{Ref: ParsePointer(ptr)}, nil
}
