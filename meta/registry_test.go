package meta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/format"
)

func TestRegistry_BuiltinSizes(t *testing.T) {
	reg := NewRegistry(nil)

	tests := []struct {
		key  format.TypeKey
		size int
	}{
		{format.TypeInt8, 1},
		{format.TypeUint8, 1},
		{format.TypeUint16, 2},
		{format.TypeUint32, 4},
		{format.TypeFloat, 4},
		{format.TypeVector4, 16},
		{format.TypeHash, 4},
		{format.TypeGeneric, 8},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			size, err := reg.SizeOf(tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.size, size)
		})
	}
}

func TestRegistry_StructureSizes(t *testing.T) {
	reg := NewRegistry([]StructureInfo{
		{Key: 0x1000, Length: 32},
		{Key: 0x2000, Length: 48},
	})

	size, err := reg.SizeOf(0x2000)
	require.NoError(t, err)
	require.Equal(t, 48, size)

	info, ok := reg.Structure(0x1000)
	require.True(t, ok)
	require.Equal(t, uint32(32), info.Length)
}

func TestRegistry_UnknownType(t *testing.T) {
	reg := NewRegistry([]StructureInfo{{Key: 0x1000, Length: 32}})

	_, err := reg.SizeOf(0x1234)
	require.ErrorIs(t, err, errs.ErrUnknownType)
	require.Contains(t, err.Error(), "0x00001234")

	_, err = reg.CodecFor(0x12)
	require.ErrorIs(t, err, errs.ErrUnknownType)
}

func TestRegistry_DuplicateFirstWins(t *testing.T) {
	reg := NewRegistry([]StructureInfo{
		{Key: 0x1000, Length: 16},
		{Key: 0x1000, Length: 64},
	})

	size, err := reg.SizeOf(0x1000)
	require.NoError(t, err)
	require.Equal(t, 16, size)

	dups := reg.Duplicates()
	require.Equal(t, map[uint32]int{0x1000: 1}, dups)

	dups[0x1000] = 9
	require.Equal(t, 1, reg.Duplicates()[0x1000], "callers get a copy")

	require.Empty(t, NewRegistry([]StructureInfo{{Key: 0x1000, Length: 16}}).Duplicates())
}

func TestRegistry_BuiltinNotOverridden(t *testing.T) {
	reg := NewRegistry([]StructureInfo{{Key: uint32(format.TypeUint32), Length: 64}})

	size, err := reg.SizeOf(format.TypeUint32)
	require.NoError(t, err)
	require.Equal(t, 4, size)
}

type constCodec struct{}

func (constCodec) Size() int { return 2 }

func (constCodec) Decode(c *Cursor) (Value, error) {
	if err := c.Skip(2); err != nil {
		return nil, err
	}

	return newUint(KindUint16, 7), nil
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(0xCAFE, constCodec{})

	block, err := DecodeBlock(reg, RawBlock{Key: 0xCAFE, Data: make([]byte, 6)})
	require.NoError(t, err)
	require.Equal(t, 3, block.Len())
	require.Equal(t, uint64(7), block.Values[2].(*Scalar).Uint())
}
