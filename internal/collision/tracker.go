package collision

// Tracker records the first position at which each structure key was declared and
// counts later declarations of the same key.
//
// Resources occasionally carry the same structure info twice; the first declaration
// is authoritative and later ones are reported so callers can log them.
type Tracker struct {
	first      map[uint32]int
	duplicates map[uint32]int
}

// NewTracker creates a tracker sized for n declarations.
func NewTracker(n int) *Tracker {
	return &Tracker{
		first:      make(map[uint32]int, n),
		duplicates: make(map[uint32]int),
	}
}

// Track records a declaration of key at index. It returns the index of the first
// declaration and whether this declaration duplicates an earlier one.
func (t *Tracker) Track(key uint32, index int) (int, bool) {
	if first, exists := t.first[key]; exists {
		t.duplicates[key]++
		return first, true
	}
	t.first[key] = index

	return index, false
}

// Duplicates returns how many extra declarations each repeated key had.
func (t *Tracker) Duplicates() map[uint32]int {
	return t.duplicates
}
