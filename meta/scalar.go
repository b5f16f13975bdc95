package meta

import "math"

// Scalar is a self-contained numeric value: a block element of a built-in kind or a
// numeric structure field.
//
// Integers are kept as their raw bits; use the accessor matching Kind. Enum and flags
// values additionally carry the name hash of their enum type.
type Scalar struct {
	kind    Kind
	bits    uint64
	vec     [4]float32
	enumKey uint32
}

func newInt(kind Kind, v int64) *Scalar {
	return &Scalar{kind: kind, bits: uint64(v)} //nolint:gosec
}

func newUint(kind Kind, v uint64) *Scalar {
	return &Scalar{kind: kind, bits: v}
}

func newFloat(v float32) *Scalar {
	return &Scalar{kind: KindFloat, bits: uint64(math.Float32bits(v))}
}

func newVector(kind Kind, v [4]float32) *Scalar {
	return &Scalar{kind: kind, vec: v}
}

func newEnum(kind Kind, v int64, enumKey uint32) *Scalar {
	return &Scalar{kind: kind, bits: uint64(v), enumKey: enumKey} //nolint:gosec
}

func (s *Scalar) Kind() Kind {
	return s.kind
}

// Int returns the value as a signed integer. Signed kinds are sign-extended.
func (s *Scalar) Int() int64 {
	return int64(s.bits) //nolint:gosec
}

// Uint returns the raw integer bits.
func (s *Scalar) Uint() uint64 {
	return s.bits
}

// Bool returns the value of a Bool field; any non-zero byte is true.
func (s *Scalar) Bool() bool {
	return s.bits != 0
}

// Float returns the value of a Float.
func (s *Scalar) Float() float32 {
	return math.Float32frombits(uint32(s.bits)) //nolint:gosec
}

// Vector returns the components of a Vector3 or Vector4. W is zero for Vector3.
func (s *Scalar) Vector() [4]float32 {
	return s.vec
}

// EnumKey returns the enum type name hash of an Enum or Flags value.
func (s *Scalar) EnumKey() uint32 {
	return s.enumKey
}

// Bytes is an inline fixed-length byte array field.
type Bytes struct {
	data []byte
}

func (b *Bytes) Kind() Kind {
	return KindBytes
}

// Data returns the bytes; callers must not modify them.
func (b *Bytes) Data() []byte {
	return b.data
}

// String is an inline fixed-length character array field, cut at the first NUL.
type String struct {
	value string
}

func (s *String) Kind() Kind {
	return KindString
}

// Text returns the string value.
func (s *String) Text() string {
	return s.value
}
