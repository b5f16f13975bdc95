package meta

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/format"
	"github.com/arloliu/metagraph/internal/hash"
)

func TestDecodeBlock_ScalarCounts(t *testing.T) {
	reg := NewRegistry(nil)

	for _, key := range []format.TypeKey{
		format.TypeInt8, format.TypeUint8, format.TypeUint16, format.TypeUint32,
		format.TypeFloat, format.TypeVector4, format.TypeHash, format.TypeGeneric,
	} {
		t.Run(key.String(), func(t *testing.T) {
			size, err := reg.SizeOf(key)
			require.NoError(t, err)

			for _, n := range []int{0, 1, 5} {
				block, err := DecodeBlock(reg, RawBlock{Key: key, Data: make([]byte, n*size)})
				require.NoError(t, err)
				require.Equal(t, n, block.Len())
				require.Equal(t, size, block.ElementSize)
			}

			if size > 1 {
				_, err := DecodeBlock(reg, RawBlock{Key: key, Data: make([]byte, 2*size+1)})
				require.ErrorIs(t, err, errs.ErrCorruptBlock)
			}
		})
	}
}

func TestDecodeBlock_ByteOrder(t *testing.T) {
	reg := NewRegistry(nil)

	t.Run("uint32", func(t *testing.T) {
		block, err := DecodeBlock(reg, RawBlock{Key: format.TypeUint32, Data: u32Bytes(10, 20, 0xFFFFFFFF)})
		require.NoError(t, err)

		got := make([]uint64, 0, block.Len())
		for _, v := range block.Values {
			require.Equal(t, KindUint32, v.Kind())
			got = append(got, v.(*Scalar).Uint())
		}
		require.Equal(t, []uint64{10, 20, 0xFFFFFFFF}, got)
	})

	t.Run("int8 sign extension", func(t *testing.T) {
		block, err := DecodeBlock(reg, RawBlock{Key: format.TypeInt8, Data: []byte{0x7F, 0x80, 0xFF}})
		require.NoError(t, err)
		require.Equal(t, int64(127), block.Values[0].(*Scalar).Int())
		require.Equal(t, int64(-128), block.Values[1].(*Scalar).Int())
		require.Equal(t, int64(-1), block.Values[2].(*Scalar).Int())
	})

	t.Run("uint16", func(t *testing.T) {
		block, err := DecodeBlock(reg, RawBlock{Key: format.TypeUint16, Data: []byte{0x34, 0x12, 0xFF, 0xFF}})
		require.NoError(t, err)
		require.Equal(t, uint64(0x1234), block.Values[0].(*Scalar).Uint())
		require.Equal(t, uint64(0xFFFF), block.Values[1].(*Scalar).Uint())
	})

	t.Run("float and hash", func(t *testing.T) {
		block, err := DecodeBlock(reg, RawBlock{Key: format.TypeFloat, Data: u32Bytes(math.Float32bits(2.5))})
		require.NoError(t, err)
		require.Equal(t, float32(2.5), block.Values[0].(*Scalar).Float())

		block, err = DecodeBlock(reg, RawBlock{Key: format.TypeHash, Data: u32Bytes(hash.Joaat("adder"))})
		require.NoError(t, err)
		require.Equal(t, KindHash, block.Values[0].Kind())
		require.Equal(t, uint64(0xB779A091), block.Values[0].(*Scalar).Uint())
	})

	t.Run("vector4", func(t *testing.T) {
		block, err := DecodeBlock(reg, RawBlock{Key: format.TypeVector4, Data: vectorBytes([4]float32{1, 2, 3, 4}, [4]float32{5, 6, 7, 8})})
		require.NoError(t, err)
		require.Equal(t, [4]float32{5, 6, 7, 8}, block.Values[1].(*Scalar).Vector())
	})

	t.Run("generic", func(t *testing.T) {
		block, err := DecodeBlock(reg, RawBlock{Key: format.TypeGeneric, Data: concat(genericBytes(3, 2), genericBytes(0, 0))})
		require.NoError(t, err)

		g := block.Values[0].(*Generic)
		require.Equal(t, BlockRef{Block: 2, Offset: 2, Valid: true}, g.Ref)
		require.False(t, g.Resolved())
		require.False(t, block.Values[1].(*Generic).Ref.Valid)
	})
}

func TestDecodeBlock_UnknownType(t *testing.T) {
	_, err := DecodeBlock(NewRegistry(nil), RawBlock{Key: 0xABCDEF01, Data: make([]byte, 8)})
	require.ErrorIs(t, err, errs.ErrUnknownType)
}

func TestDecodeBlock_ZeroLengthStructure(t *testing.T) {
	reg := NewRegistry([]StructureInfo{{Key: 0x1000, Length: 0}})

	t.Run("with data", func(t *testing.T) {
		_, err := DecodeBlock(reg, RawBlock{Key: 0x1000, Data: make([]byte, 8)})
		require.ErrorIs(t, err, errs.ErrCorruptBlock)
	})

	t.Run("empty", func(t *testing.T) {
		block, err := DecodeBlock(reg, RawBlock{Key: 0x1000})
		require.NoError(t, err)
		require.Zero(t, block.Len())
		require.Equal(t, 0, block.ElementSize)
	})
}

const (
	allFieldsKey = 0x1000
	innerKey     = 0x2000
)

func put(buf []byte, off int, b []byte) {
	copy(buf[off:], b)
}

func allFieldsInfos() []StructureInfo {
	f := func(name string, off uint32, dt format.DataType, refKey uint32) FieldInfo {
		return FieldInfo{Key: hash.Joaat(name), Offset: off, Type: dt, RefIndex: -1, RefKey: refKey}
	}

	return []StructureInfo{
		{
			Key:    allFieldsKey,
			Length: 0xB0,
			Fields: []FieldInfo{
				f("flag", 0x00, format.DataBool, 0),
				f("i8", 0x01, format.DataInt8, 0),
				f("i16", 0x02, format.DataInt16, 0),
				f("u16", 0x04, format.DataUint16, 0),
				f("u8", 0x06, format.DataUint8, 0),
				f("i32", 0x08, format.DataInt32, 0),
				f("u32", 0x0C, format.DataUint32, 0),
				f("f", 0x10, format.DataFloat, 0),
				f("h", 0x14, format.DataHash, 0),
				f("benum", 0x18, format.DataByteEnum, 0xE1),
				f("ienum", 0x1C, format.DataIntEnum, 0xE2),
				f("sflags", 0x20, format.DataShortFlags, 0xE3),
				f("iflags", 0x24, format.DataIntFlags1, 0xE4),
				f("chars", 0x28, format.DataArrayOfChars, 8),
				f("bytes", 0x30, format.DataArrayOfBytes, 4),
				f("v3", 0x40, format.DataVector3, 0),
				f("v4", 0x50, format.DataVector4, 0),
				{Key: arrayItemKey, Offset: 0x98, Type: format.DataUint32, RefIndex: -1},
				{Key: hash.Joaat("list"), Offset: 0x60, Type: format.DataArray, RefIndex: 17},
				f("name", 0x70, format.DataCharPointer, 0),
				f("ptr", 0x80, format.DataStructurePointer, 0),
				f("raw", 0x88, format.DataBlockPointer, 0),
				f("inner", 0xA0, format.DataStructure, innerKey),
			},
		},
		{
			Key:    innerKey,
			Length: 8,
			Fields: []FieldInfo{
				f("a", 0, format.DataUint32, 0),
				f("b", 4, format.DataFloat, 0),
			},
		},
	}
}

func allFieldsInstance() []byte {
	buf := make([]byte, 0xB0)
	buf[0x00] = 1
	buf[0x01] = 0xFF
	put(buf, 0x02, le.AppendUint16(nil, 0xFFFE))
	put(buf, 0x04, le.AppendUint16(nil, 500))
	buf[0x06] = 200
	put(buf, 0x08, u32Bytes(0xFFFFFFFB))
	put(buf, 0x0C, u32Bytes(7))
	put(buf, 0x10, u32Bytes(math.Float32bits(1.5)))
	put(buf, 0x14, u32Bytes(0xB779A091))
	buf[0x18] = 3
	put(buf, 0x1C, u32Bytes(0xFFFFFFFF))
	put(buf, 0x20, le.AppendUint16(nil, 0x0101))
	put(buf, 0x24, u32Bytes(0x80000000))
	put(buf, 0x28, []byte("abc"))
	put(buf, 0x30, []byte{1, 2, 3, 4})
	put(buf, 0x40, vectorBytes([4]float32{1, 2, 3, 9}))
	put(buf, 0x50, vectorBytes([4]float32{1, 2, 3, 4}))
	put(buf, 0x60, countedBytes(2, 8, 3))
	put(buf, 0x70, countedBytes(3, 1, 5))
	put(buf, 0x80, genericBytes(4, 2))
	put(buf, 0x88, blockPointerBytes(5))
	put(buf, 0xA0, u32Bytes(42, math.Float32bits(-0.5)))

	return buf
}

func TestDecodeBlock_StructureFields(t *testing.T) {
	blocks := decodeBlocks(t, allFieldsInfos(), []RawBlock{{Key: allFieldsKey, Data: allFieldsInstance()}})
	require.Len(t, blocks, 1)
	require.Equal(t, 1, blocks[0].Len())

	s, ok := blocks[0].Values[0].(*Structure)
	require.True(t, ok)
	require.Equal(t, uint32(allFieldsKey), s.Key())
	require.Equal(t, 22, s.Len(), "array item descriptor is not a field")

	scalar := func(name string) *Scalar {
		v, ok := field(t, s, name).(*Scalar)
		require.True(t, ok, name)

		return v
	}

	require.True(t, scalar("flag").Bool())
	require.Equal(t, KindBool, scalar("flag").Kind())
	require.Equal(t, int64(-1), scalar("i8").Int())
	require.Equal(t, int64(-2), scalar("i16").Int())
	require.Equal(t, uint64(500), scalar("u16").Uint())
	require.Equal(t, uint64(200), scalar("u8").Uint())
	require.Equal(t, int64(-5), scalar("i32").Int())
	require.Equal(t, uint64(7), scalar("u32").Uint())
	require.Equal(t, float32(1.5), scalar("f").Float())
	require.Equal(t, uint64(0xB779A091), scalar("h").Uint())

	require.Equal(t, KindEnum, scalar("benum").Kind())
	require.Equal(t, int64(3), scalar("benum").Int())
	require.Equal(t, uint32(0xE1), scalar("benum").EnumKey())
	require.Equal(t, int64(-1), scalar("ienum").Int())
	require.Equal(t, KindFlags, scalar("sflags").Kind())
	require.Equal(t, uint64(0x0101), scalar("sflags").Uint())
	require.Equal(t, uint64(0x80000000), scalar("iflags").Uint())
	require.Equal(t, uint32(0xE4), scalar("iflags").EnumKey())

	require.Equal(t, "abc", field(t, s, "chars").(*String).Text())
	require.Equal(t, []byte{1, 2, 3, 4}, field(t, s, "bytes").(*Bytes).Data())
	require.Equal(t, [4]float32{1, 2, 3, 0}, scalar("v3").Vector())
	require.Equal(t, KindVector3, scalar("v3").Kind())
	require.Equal(t, [4]float32{1, 2, 3, 4}, scalar("v4").Vector())

	arr := field(t, s, "list").(*Array)
	require.Equal(t, BlockRef{Block: 1, Offset: 8, Valid: true}, arr.Ref)
	require.Equal(t, uint16(3), arr.Count)
	require.False(t, arr.Resolved())

	cp := field(t, s, "name").(*CharPointer)
	require.Equal(t, BlockRef{Block: 2, Offset: 1, Valid: true}, cp.Ref)
	require.Equal(t, uint16(5), cp.Length)

	require.Equal(t, BlockRef{Block: 3, Offset: 2, Valid: true}, field(t, s, "ptr").(*Generic).Ref)
	require.Equal(t, BlockRef{Block: 4, Valid: true}, field(t, s, "raw").(*BlockPointer).Ref)

	inner := field(t, s, "inner").(*Structure)
	require.Equal(t, uint32(innerKey), inner.Key())
	require.Equal(t, uint64(42), field(t, inner, "a").(*Scalar).Uint())
	require.Equal(t, float32(-0.5), field(t, inner, "b").(*Scalar).Float())
}

func TestDecodeBlock_FieldOrder(t *testing.T) {
	blocks := decodeBlocks(t, allFieldsInfos(), []RawBlock{{Key: allFieldsKey, Data: allFieldsInstance()}})
	s := blocks[0].Values[0].(*Structure)

	var keys []uint32
	for key := range s.Fields() {
		keys = append(keys, key)
	}
	require.Len(t, keys, 22)
	require.Equal(t, hash.Joaat("flag"), keys[0])
	require.Equal(t, hash.Joaat("list"), keys[17])
	require.Equal(t, hash.Joaat("inner"), keys[21])
}

func TestDecodeBlock_StructureErrors(t *testing.T) {
	t.Run("unknown nested structure", func(t *testing.T) {
		infos := []StructureInfo{{
			Key:    0x1000,
			Length: 8,
			Fields: []FieldInfo{{Key: 1, Offset: 0, Type: format.DataStructure, RefKey: 0x9999}},
		}}
		_, err := DecodeBlock(NewRegistry(infos), RawBlock{Key: 0x1000, Data: make([]byte, 8)})
		require.ErrorIs(t, err, errs.ErrUnknownType)
	})

	t.Run("field past instance end", func(t *testing.T) {
		infos := []StructureInfo{{
			Key:    0x1000,
			Length: 8,
			Fields: []FieldInfo{{Key: 1, Offset: 6, Type: format.DataUint32}},
		}}
		_, err := DecodeBlock(NewRegistry(infos), RawBlock{Key: 0x1000, Data: make([]byte, 8)})
		require.ErrorIs(t, err, errs.ErrCorruptBlock)
	})

	t.Run("field offset beyond instance", func(t *testing.T) {
		infos := []StructureInfo{{
			Key:    0x1000,
			Length: 8,
			Fields: []FieldInfo{{Key: 1, Offset: 64, Type: format.DataUint8}},
		}}
		_, err := DecodeBlock(NewRegistry(infos), RawBlock{Key: 0x1000, Data: make([]byte, 8)})
		require.ErrorIs(t, err, errs.ErrCorruptBlock)
	})

	t.Run("unknown field data type", func(t *testing.T) {
		infos := []StructureInfo{{
			Key:    0x1000,
			Length: 8,
			Fields: []FieldInfo{{Key: 1, Offset: 0, Type: format.DataType(0xEE)}},
		}}
		_, err := DecodeBlock(NewRegistry(infos), RawBlock{Key: 0x1000, Data: make([]byte, 8)})
		require.ErrorIs(t, err, errs.ErrUnknownType)
	})

	t.Run("self nesting", func(t *testing.T) {
		infos := []StructureInfo{{
			Key:    0x1000,
			Length: 8,
			Fields: []FieldInfo{{Key: 1, Offset: 0, Type: format.DataStructure, RefKey: 0x1000}},
		}}
		_, err := DecodeBlock(NewRegistry(infos), RawBlock{Key: 0x1000, Data: make([]byte, 8)})
		require.ErrorIs(t, err, errs.ErrCorruptBlock)
	})
}

func BenchmarkDecodeBlock_Structures(b *testing.B) {
	infos := allFieldsInfos()
	reg := NewRegistry(infos)
	instance := allFieldsInstance()
	data := make([]byte, 0, len(instance)*256)
	for range 256 {
		data = append(data, instance...)
	}
	raw := RawBlock{Key: allFieldsKey, Data: data}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := DecodeBlock(reg, raw); err != nil {
			b.Fatal(err)
		}
	}
}
