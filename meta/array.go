package meta

import "iter"

// Array is a pointer to Count consecutive elements of another block.
//
// Ref.Offset is a byte offset into the target block. After resolution Entries holds
// the referenced elements themselves, not copies.
type Array struct {
	Ref      BlockRef
	Count    uint16
	Capacity uint16

	entries  []Value
	resolved bool
}

func (a *Array) Kind() Kind {
	return KindArray
}

// Resolved reports whether the array has been linked to its target block.
func (a *Array) Resolved() bool {
	return a.resolved
}

// Len returns the number of resolved entries.
func (a *Array) Len() int {
	return len(a.entries)
}

// At returns the i-th resolved entry.
func (a *Array) At(i int) Value {
	return a.entries[i]
}

// Entries returns the resolved entries. The slice is shared with the graph and must
// not be modified.
func (a *Array) Entries() []Value {
	return a.entries
}

// All iterates over the resolved entries in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.entries {
			if !yield(i, v) {
				return
			}
		}
	}
}
