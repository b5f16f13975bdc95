package resource

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metagraph/compress"
	"github.com/arloliu/metagraph/errs"
)

func TestPackLoad(t *testing.T) {
	system := []byte("system pages")
	graphics := []byte{1, 2, 3}

	for name, codec := range map[string]compress.Codec{
		"deflate": compress.NewDeflateCompressor(),
		"none":    compress.NewNoOpCompressor(),
		"zstd":    compress.NewZstdCompressor(),
		"lz4":     compress.NewLZ4Compressor(),
		"s2":      compress.NewS2Compressor(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := Pack(MetaVersion, system, graphics, codec)
			require.NoError(t, err)

			f, err := Load(data, codec)
			require.NoError(t, err)
			require.Equal(t, MetaVersion, f.Header.Version)
			require.Len(t, f.System, 0x200)
			require.Len(t, f.Graphics, 0x200)
			require.Equal(t, system, f.System[:len(system)])
			require.Equal(t, graphics, f.Graphics[:len(graphics)])
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	deflate := compress.NewDeflateCompressor()

	t.Run("short header", func(t *testing.T) {
		_, err := Load([]byte("RSC7"), deflate)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("pages shorter than flags", func(t *testing.T) {
		h := Header{Ident: Ident, Version: MetaVersion, SystemFlags: 1 << 26}
		compressed, err := deflate.Compress(make([]byte, 0x200))
		require.NoError(t, err)

		_, err = Load(append(h.Bytes(), compressed...), deflate)
		require.ErrorIs(t, err, errs.ErrInvalidPageFlags)
	})

	t.Run("corrupt pages", func(t *testing.T) {
		h := Header{Ident: Ident, Version: MetaVersion, SystemFlags: 1 << 27}
		_, err := Load(append(h.Bytes(), 0xFF, 0xFF, 0xFF, 0xFF), deflate)
		require.Error(t, err)
	})
}

func TestFile_Slice(t *testing.T) {
	f := &File{System: []byte("0123456789"), Graphics: []byte("gfx")}

	b, err := f.Slice(SystemBase+2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte("234"), b)

	b, err = f.Slice(GraphicsBase, 3)
	require.NoError(t, err)
	require.Equal(t, []byte("gfx"), b)

	b, err = f.Slice(SystemBase+10, 0)
	require.NoError(t, err)
	require.Empty(t, b)

	tail, err := f.Tail(SystemBase + 7)
	require.NoError(t, err)
	require.Equal(t, []byte("789"), tail)

	for _, tc := range []struct {
		ptr uint64
		n   int
	}{
		{0, 1},
		{0x10000000, 1},
		{SystemBase + 8, 3},
		{GraphicsBase + 1, 5},
		{SystemBase, -1},
		{1<<32 | SystemBase, 1},
	} {
		_, err := f.Slice(tc.ptr, tc.n)
		require.ErrorIs(t, err, errs.ErrInvalidPointer, "ptr 0x%X n %d", tc.ptr, tc.n)
	}

	_, err = f.Tail(SystemBase + 11)
	require.ErrorIs(t, err, errs.ErrInvalidPointer)
}
