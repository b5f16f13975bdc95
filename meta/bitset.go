package meta

import (
	"math/bits"

	"github.com/arloliu/metagraph/internal/pool"
)

var bitsetWordPool = pool.NewSlicePool[uint64](64)

// bitset marks arena indices of referenced values.
type bitset struct {
	words   []uint64
	release func([]uint64)
}

func newBitset(n int) *bitset {
	words, release := bitsetWordPool.GetZeroed((n + 63) / 64)
	return &bitset{words: words, release: release}
}

func (b *bitset) set(i int) {
	b.words[i>>6] |= 1 << (uint(i) & 63)
}

func (b *bitset) has(i int) bool {
	return b.words[i>>6]&(1<<(uint(i)&63)) != 0
}

func (b *bitset) count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}

	return n
}

func (b *bitset) reset() {
	clear(b.words)
}

func (b *bitset) free() {
	if b.release != nil {
		b.release(b.words)
		b.release = nil
		b.words = nil
	}
}
