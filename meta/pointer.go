package meta

// CharPointer is a pointer to Length consecutive byte elements forming a string.
//
// Unlike Array and Generic, Ref.Offset counts elements, not bytes.
type CharPointer struct {
	Ref      BlockRef
	Length   uint16
	Capacity uint16

	text     string
	resolved bool
}

func (p *CharPointer) Kind() Kind {
	return KindCharPointer
}

// Resolved reports whether the text has been read from the target block.
func (p *CharPointer) Resolved() bool {
	return p.resolved
}

// Text returns the resolved string. Each byte maps to the character with the same code.
func (p *CharPointer) Text() string {
	return p.text
}

// Generic is a pointer to a single element whose type is only known once the
// target block is.
//
// Ref.Offset is expressed in 16-byte units.
type Generic struct {
	Ref BlockRef

	target   Value
	resolved bool
}

func (g *Generic) Kind() Kind {
	return KindGeneric
}

// Resolved reports whether the pointer has been linked.
func (g *Generic) Resolved() bool {
	return g.resolved
}

// Target returns the referenced element, or nil for a null pointer.
func (g *Generic) Target() Value {
	return g.target
}

// BlockPointer references the raw content of a whole block.
type BlockPointer struct {
	Ref BlockRef

	data     []byte
	resolved bool
}

func (p *BlockPointer) Kind() Kind {
	return KindBlockPointer
}

// Resolved reports whether the pointer has been linked.
func (p *BlockPointer) Resolved() bool {
	return p.resolved
}

// Data returns the raw bytes of the target block, or nil for a null pointer.
// The slice is shared with the graph and must not be modified.
func (p *BlockPointer) Data() []byte {
	return p.data
}
