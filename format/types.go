package format

import "fmt"

type (
	// TypeKey identifies the element type of a data block. Values below 0x100 are
	// built-in kinds; every other key is the name hash of a structure.
	TypeKey uint32
	// DataType identifies how a structure field is laid out.
	DataType        uint8
	CompressionType uint8
)

// Built-in block element kinds.
const (
	TypeGeneric TypeKey = 0x07 // TypeGeneric is a block of 8-byte generic pointers.
	TypeInt8    TypeKey = 0x10 // TypeInt8 is a block of signed bytes.
	TypeUint8   TypeKey = 0x11 // TypeUint8 is a block of unsigned bytes.
	TypeUint16  TypeKey = 0x13 // TypeUint16 is a block of 16-bit integers.
	TypeUint32  TypeKey = 0x15 // TypeUint32 is a block of 32-bit integers.
	TypeFloat   TypeKey = 0x21 // TypeFloat is a block of 32-bit floats.
	TypeVector4 TypeKey = 0x33 // TypeVector4 is a block of 16-byte float vectors.
	TypeHash    TypeKey = 0x4A // TypeHash is a block of 32-bit name hashes.
)

// Structure field layouts.
const (
	DataBool             DataType = 0x01
	DataStructure        DataType = 0x05
	DataStructurePointer DataType = 0x07
	DataInt8             DataType = 0x10
	DataUint8            DataType = 0x11
	DataInt16            DataType = 0x12
	DataUint16           DataType = 0x13
	DataInt32            DataType = 0x14
	DataUint32           DataType = 0x15
	DataFloat            DataType = 0x21
	DataVector3          DataType = 0x33
	DataVector4          DataType = 0x34
	DataArrayOfChars     DataType = 0x40
	DataCharPointer      DataType = 0x44
	DataHash             DataType = 0x4A
	DataArrayOfBytes     DataType = 0x50
	DataArray            DataType = 0x52
	DataBlockPointer     DataType = 0x59
	DataByteEnum         DataType = 0x60
	DataIntEnum          DataType = 0x62
	DataIntFlags1        DataType = 0x63
	DataShortFlags       DataType = 0x64
	DataIntFlags2        DataType = 0x65
)

const (
	CompressionNone    CompressionType = 0x1 // CompressionNone represents stored page data.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionDeflate CompressionType = 0x5 // CompressionDeflate represents raw deflate, the RSC7 default.
)

// IsBuiltin reports whether the key names a built-in element kind rather than a structure.
func (k TypeKey) IsBuiltin() bool {
	switch k {
	case TypeGeneric, TypeInt8, TypeUint8, TypeUint16, TypeUint32, TypeFloat, TypeVector4, TypeHash:
		return true
	default:
		return false
	}
}

func (k TypeKey) String() string {
	switch k {
	case TypeGeneric:
		return "Generic"
	case TypeInt8:
		return "Int8"
	case TypeUint8:
		return "Uint8"
	case TypeUint16:
		return "Uint16"
	case TypeUint32:
		return "Uint32"
	case TypeFloat:
		return "Float"
	case TypeVector4:
		return "Vector4"
	case TypeHash:
		return "Hash"
	default:
		return fmt.Sprintf("Structure(0x%08X)", uint32(k))
	}
}

func (d DataType) String() string {
	switch d {
	case DataBool:
		return "Bool"
	case DataStructure:
		return "Structure"
	case DataStructurePointer:
		return "StructurePointer"
	case DataInt8:
		return "Int8"
	case DataUint8:
		return "Uint8"
	case DataInt16:
		return "Int16"
	case DataUint16:
		return "Uint16"
	case DataInt32:
		return "Int32"
	case DataUint32:
		return "Uint32"
	case DataFloat:
		return "Float"
	case DataVector3:
		return "Vector3"
	case DataVector4:
		return "Vector4"
	case DataArrayOfChars:
		return "ArrayOfChars"
	case DataCharPointer:
		return "CharPointer"
	case DataHash:
		return "Hash"
	case DataArrayOfBytes:
		return "ArrayOfBytes"
	case DataArray:
		return "Array"
	case DataBlockPointer:
		return "DataBlockPointer"
	case DataByteEnum:
		return "ByteEnum"
	case DataIntEnum:
		return "IntEnum"
	case DataIntFlags1:
		return "IntFlags1"
	case DataShortFlags:
		return "ShortFlags"
	case DataIntFlags2:
		return "IntFlags2"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionDeflate:
		return "Deflate"
	default:
		return "Unknown"
	}
}
