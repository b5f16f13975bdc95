package meta

import "fmt"

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat
	KindVector3
	KindVector4
	KindHash
	KindEnum
	KindFlags
	KindBytes
	KindString
	KindArray
	KindCharPointer
	KindGeneric
	KindBlockPointer
	KindStructure
)

var kindNames = [...]string{
	KindInvalid:      "Invalid",
	KindBool:         "Bool",
	KindInt8:         "Int8",
	KindUint8:        "Uint8",
	KindInt16:        "Int16",
	KindUint16:       "Uint16",
	KindInt32:        "Int32",
	KindUint32:       "Uint32",
	KindFloat:        "Float",
	KindVector3:      "Vector3",
	KindVector4:      "Vector4",
	KindHash:         "Hash",
	KindEnum:         "Enum",
	KindFlags:        "Flags",
	KindBytes:        "Bytes",
	KindString:       "String",
	KindArray:        "Array",
	KindCharPointer:  "CharPointer",
	KindGeneric:      "Generic",
	KindBlockPointer: "BlockPointer",
	KindStructure:    "Structure",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsScalar reports whether values of this kind are self-contained.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindString
}

// Value is a decoded element of a meta resource.
//
// Concrete types are *Scalar, *Bytes, *String, *Array, *CharPointer, *Generic,
// *BlockPointer and *Structure. Values are owned by the decoded graph; the pointer
// variants hold non-owning references to values of other blocks, so two handles to
// the same element compare equal.
type Value interface {
	Kind() Kind
}

// Pointer layout: the low 12 bits hold the 1-based block index, the next 20 bits the offset.
const (
	pointerBlockMask   = 0xFFF
	pointerOffsetShift = 12
	pointerOffsetMask  = 0xFFFFF
)

// BlockRef is a decoded block-relative pointer.
//
// Block is zero-based. A pointer whose block index is 0 on the wire decodes to a
// BlockRef with Valid false; no block or element index is ever derived from it.
type BlockRef struct {
	Block  int
	Offset uint32
	Valid  bool
}

// ParsePointer decodes a packed block pointer.
func ParsePointer(ptr uint32) BlockRef {
	idx := ptr & pointerBlockMask
	if idx == 0 {
		return BlockRef{}
	}

	return BlockRef{
		Block:  int(idx) - 1,
		Offset: (ptr >> pointerOffsetShift) & pointerOffsetMask,
		Valid:  true,
	}
}

// MakePointer packs a 1-based block index and an offset into the wire representation.
// A blockIndex of 0 produces a null pointer.
func MakePointer(blockIndex int, offset uint32) uint32 {
	if blockIndex == 0 {
		return 0
	}

	return uint32(blockIndex)&pointerBlockMask | (offset&pointerOffsetMask)<<pointerOffsetShift //nolint:gosec
}

func (r BlockRef) String() string {
	if !r.Valid {
		return "null"
	}

	return fmt.Sprintf("block %d +0x%X", r.Block+1, r.Offset)
}
