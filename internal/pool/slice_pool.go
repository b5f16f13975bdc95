package pool

import "sync"

// SlicePool recycles slices of T.
//
// Slices handed out by Get are reset to length zero; the caller appends to them and
// hands the final slice back through the returned release function so grown
// capacity is kept for the next user.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates a pool whose fresh slices have capacity defaultCap.
func NewSlicePool[T any](defaultCap int) *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any {
				s := make([]T, 0, defaultCap)
				return &s
			},
		},
	}
}

// Get retrieves an empty slice with at least capacity minCap.
//
// The caller must call release with the slice it finally used (which may have been
// regrown by append) once it no longer references it.
//
// Example:
//
//	stack, release := stackPool.Get(len(values))
//	defer func() { release(stack) }()
func (p *SlicePool[T]) Get(minCap int) ([]T, func([]T)) {
	ptr, _ := p.pool.Get().(*[]T)
	s := (*ptr)[:0]
	if cap(s) < minCap {
		s = make([]T, 0, minCap)
	}

	return s, func(used []T) {
		clear(used[:cap(used)])
		*ptr = used[:0]
		p.pool.Put(ptr)
	}
}

// GetZeroed retrieves a slice of exactly length n with every element zeroed.
func (p *SlicePool[T]) GetZeroed(n int) ([]T, func([]T)) {
	s, release := p.Get(n)
	s = s[:n]
	clear(s)

	return s, release
}
