package meta

import (
	"iter"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/arloliu/metagraph/format"
	"github.com/arloliu/metagraph/internal/hash"
)

// arrayItemKey names the pseudo-field describing the element type of an array field.
const arrayItemKey = 0x100

// StructureInfo describes the layout of one structure type.
type StructureInfo struct {
	// Key is the name hash of the structure; blocks of this structure carry it as type key.
	Key uint32
	// Length is the byte size of one instance.
	Length uint32
	// Fields are the field layouts in declaration order.
	Fields []FieldInfo
}

// FieldInfo describes one field of a structure.
type FieldInfo struct {
	Key    uint32          // field name hash
	Offset uint32          // byte offset inside the instance
	Type   format.DataType // wire layout
	// RefIndex is the index of the field describing array elements, or -1.
	RefIndex int16
	// RefKey is the structure key of nested structures, the enum key of enums and
	// flags, or the element count of inline arrays.
	RefKey uint32
}

// Structure is a decoded instance of a structure type: an ordered mapping of field
// name hash to value.
type Structure struct {
	key    uint32
	fields *orderedmap.OrderedMap[uint32, Value]
}

func newStructure(key uint32, capacity int) *Structure {
	return &Structure{
		key:    key,
		fields: orderedmap.NewOrderedMapWithCapacity[uint32, Value](capacity),
	}
}

func (s *Structure) Kind() Kind {
	return KindStructure
}

// Key returns the structure type key.
func (s *Structure) Key() uint32 {
	return s.key
}

// Len returns the number of fields.
func (s *Structure) Len() int {
	return s.fields.Len()
}

// Field returns the value of the field with the given name hash.
func (s *Structure) Field(key uint32) (Value, bool) {
	return s.fields.Get(key)
}

// FieldByName hashes name and looks the field up.
func (s *Structure) FieldByName(name string) (Value, bool) {
	return s.Field(hash.Joaat(name))
}

// Fields iterates over the fields in declaration order.
func (s *Structure) Fields() iter.Seq2[uint32, Value] {
	return s.fields.AllFromFront()
}

func (s *Structure) set(key uint32, v Value) {
	s.fields.Set(key, v)
}
