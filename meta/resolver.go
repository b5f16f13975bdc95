package meta

import (
	"fmt"

	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/format"
	"github.com/arloliu/metagraph/internal/pool"
)

// genericOffsetUnit is the addressing granularity of generic pointers.
const genericOffsetUnit = 16

var workStackPool = pool.NewSlicePool[Value](256)

// ReferenceSet reports whether a top-level value is the target of some pointer.
type ReferenceSet interface {
	IsReferenced(block, index int) bool
}

// Resolver links the pointer descriptors of decoded blocks to their targets.
//
// Every top-level value occupies one slot of a flat arena (blocks in order, values
// in position order); targets are marked in a bitset over that arena.
type Resolver struct {
	blocks     []*Block
	starts     []int
	total      int
	referenced *bitset
}

var _ ReferenceSet = (*Resolver)(nil)

// NewResolver creates a resolver over blocks. Call Release once the reference
// marks are no longer needed.
func NewResolver(blocks []*Block) *Resolver {
	r := &Resolver{
		blocks: blocks,
		starts: make([]int, len(blocks)),
	}
	for i, b := range blocks {
		r.starts[i] = r.total
		r.total += b.Len()
	}
	r.referenced = newBitset(r.total)

	return r
}

// Release returns the reference marks to the pool.
func (r *Resolver) Release() {
	r.referenced.free()
}

// Resolve resolves every descriptor reachable from the top-level values.
//
// Resolving an already resolved graph recomputes the same links and marks.
func (r *Resolver) Resolve() error {
	r.referenced.reset()

	stack, release := workStackPool.Get(r.total)
	defer func() { release(stack) }()

	for i := len(r.blocks) - 1; i >= 0; i-- {
		stack = append(stack, r.blocks[i].Values...)
	}

	for len(stack) > 0 {
		last := len(stack) - 1
		v := stack[last]
		stack[last] = nil
		stack = stack[:last]

		var err error
		switch v := v.(type) {
		case *Array:
			err = r.resolveArray(v)
		case *CharPointer:
			err = r.resolveCharPointer(v)
		case *Generic:
			err = r.resolveGeneric(v)
		case *BlockPointer:
			err = r.resolveBlockPointer(v)
		case *Structure:
			for _, field := range v.Fields() {
				stack = append(stack, field)
			}
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// IsReferenced reports whether value index of block is a resolution target.
func (r *Resolver) IsReferenced(block, index int) bool {
	return r.referenced.has(r.starts[block] + index)
}

// ReferencedCount returns the number of distinct resolution targets.
func (r *Resolver) ReferencedCount() int {
	return r.referenced.count()
}

// Total returns the number of top-level values.
func (r *Resolver) Total() int {
	return r.total
}

func (r *Resolver) target(ref BlockRef) (*Block, error) {
	if ref.Block < 0 || ref.Block >= len(r.blocks) {
		return nil, fmt.Errorf("%w: %s outside %d blocks", errs.ErrCorruptReference, ref, len(r.blocks))
	}

	return r.blocks[ref.Block], nil
}

// elementIndex converts a byte offset into an element index of b.
func elementIndex(b *Block, ref BlockRef, byteOffset uint64) (int, error) {
	size := uint64(b.ElementSize) //nolint:gosec
	if size == 0 || byteOffset%size != 0 {
		return 0, fmt.Errorf("%w: %s byte offset %d not aligned to element size %d",
			errs.ErrCorruptReference, ref, byteOffset, size)
	}

	return int(byteOffset / size), nil //nolint:gosec
}

func (r *Resolver) mark(block, index int) {
	r.referenced.set(r.starts[block] + index)
}

func (r *Resolver) resolveArray(a *Array) error {
	if !a.Ref.Valid {
		a.entries = nil
		a.resolved = true

		return nil
	}

	b, err := r.target(a.Ref)
	if err != nil {
		return err
	}
	start, err := elementIndex(b, a.Ref, uint64(a.Ref.Offset))
	if err != nil {
		return err
	}
	count := int(a.Count)
	if start+count > b.Len() {
		return fmt.Errorf("%w: array %s of %d entries exceeds %d elements",
			errs.ErrCorruptReference, a.Ref, count, b.Len())
	}

	entries := make([]Value, count)
	copy(entries, b.Values[start:start+count])
	for i := range count {
		r.mark(a.Ref.Block, start+i)
	}
	a.entries = entries
	a.resolved = true

	return nil
}

func (r *Resolver) resolveCharPointer(p *CharPointer) error {
	if !p.Ref.Valid {
		p.text = ""
		p.resolved = true

		return nil
	}

	b, err := r.target(p.Ref)
	if err != nil {
		return err
	}
	if b.Key != format.TypeInt8 && b.Key != format.TypeUint8 {
		return fmt.Errorf("%w: char pointer %s targets %s block", errs.ErrCorruptReference, p.Ref, b.Key)
	}

	start, length := int(p.Ref.Offset), int(p.Length)
	if start+length > b.Len() {
		return fmt.Errorf("%w: char pointer %s of %d chars exceeds %d elements",
			errs.ErrCorruptReference, p.Ref, length, b.Len())
	}

	buf := pool.GetTextBuffer()
	defer pool.PutTextBuffer(buf)

	buf.Grow(length)
	for i, v := range b.Values[start : start+length] {
		s, ok := v.(*Scalar)
		if !ok {
			return fmt.Errorf("%w: char pointer %s element %d is %s",
				errs.ErrCorruptReference, p.Ref, start+i, v.Kind())
		}
		buf.WriteRune(rune(uint8(s.Uint()))) //nolint:gosec
	}
	p.text = buf.String()
	p.resolved = true

	return nil
}

func (r *Resolver) resolveGeneric(g *Generic) error {
	if !g.Ref.Valid {
		g.target = nil
		g.resolved = true

		return nil
	}

	b, err := r.target(g.Ref)
	if err != nil {
		return err
	}
	idx, err := elementIndex(b, g.Ref, uint64(g.Ref.Offset)*genericOffsetUnit)
	if err != nil {
		return err
	}
	if idx >= b.Len() {
		return fmt.Errorf("%w: generic %s resolves to element %d of %d",
			errs.ErrCorruptReference, g.Ref, idx, b.Len())
	}

	g.target = b.Values[idx]
	r.mark(g.Ref.Block, idx)
	g.resolved = true

	return nil
}

func (r *Resolver) resolveBlockPointer(p *BlockPointer) error {
	if !p.Ref.Valid {
		p.data = nil
		p.resolved = true

		return nil
	}

	b, err := r.target(p.Ref)
	if err != nil {
		return err
	}
	p.data = b.Data
	p.resolved = true

	return nil
}
