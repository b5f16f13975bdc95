package meta

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metagraph/endian"
	"github.com/arloliu/metagraph/format"
	"github.com/arloliu/metagraph/internal/hash"
)

var le = endian.GetLittleEndianEngine()

func u32Bytes(vs ...uint32) []byte {
	var b []byte
	for _, v := range vs {
		b = le.AppendUint32(b, v)
	}

	return b
}

func vectorBytes(vs ...[4]float32) []byte {
	var b []byte
	for _, v := range vs {
		for _, f := range v {
			b = le.AppendUint32(b, math.Float32bits(f))
		}
	}

	return b
}

// countedBytes encodes the array and char pointer layout.
func countedBytes(block int, offset uint32, count uint16) []byte {
	b := le.AppendUint32(nil, MakePointer(block, offset))
	b = le.AppendUint32(b, 0)
	b = le.AppendUint16(b, count)
	b = le.AppendUint16(b, count)

	return le.AppendUint32(b, 0)
}

func genericBytes(block int, offset uint32) []byte {
	b := le.AppendUint32(nil, MakePointer(block, offset))
	return le.AppendUint32(b, 0)
}

func blockPointerBytes(block int) []byte {
	b := le.AppendUint32(nil, MakePointer(block, 0))
	return append(b, make([]byte, blockPointerSize-4)...)
}

func concat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}

	return b
}

// singleField describes a structure whose only field sits at offset 0.
func singleField(key uint32, length uint32, name string, dt format.DataType) StructureInfo {
	return StructureInfo{
		Key:    key,
		Length: length,
		Fields: []FieldInfo{{Key: hash.Joaat(name), Offset: 0, Type: dt, RefIndex: -1}},
	}
}

func decodeGraph(t *testing.T, infos []StructureInfo, raws []RawBlock, opts ...SessionOption) (*Graph, error) {
	t.Helper()

	s, err := NewSession(infos, opts...)
	require.NoError(t, err)

	return s.Decode(context.Background(), raws)
}

func decodeBlocks(t *testing.T, infos []StructureInfo, raws []RawBlock) []*Block {
	t.Helper()

	reg := NewRegistry(infos)
	blocks := make([]*Block, len(raws))
	for i, raw := range raws {
		b, err := DecodeBlock(reg, raw)
		require.NoError(t, err)
		blocks[i] = b
	}

	return blocks
}

func field(t *testing.T, s *Structure, name string) Value {
	t.Helper()

	v, ok := s.FieldByName(name)
	require.True(t, ok, "field %q", name)

	return v
}
