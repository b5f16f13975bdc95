// Package section defines the binary layout of the meta content of a resource.
//
// All records live in the system region of an RSC7 container and are little-endian.
// Tables are reached through 64-bit virtual pointers (see the resource package):
//
//	┌───────────────────────────────────────────────────────────┐
//	│ MetaHeader (0x70 bytes at system offset 0)                │
//	│  - RootBlockIndex (4 bytes, offset 0x1C)                  │
//	│  - StructureInfos / EnumInfos / DataBlocks pointers       │
//	│  - Name / Useless pointers                                │
//	│  - StructureInfos / EnumInfos / DataBlocks counts         │
//	├───────────────────────────────────────────────────────────┤
//	│ StructureInfo table (N × 0x20)                            │
//	│  - name hash, instance size, pointer to field entries     │
//	│ StructureEntryInfo tables (M × 0x10 per structure)        │
//	├───────────────────────────────────────────────────────────┤
//	│ EnumInfo table (N × 0x18), EnumEntryInfo tables (M × 8)   │
//	├───────────────────────────────────────────────────────────┤
//	│ DataBlockInfo table (N × 0x10)                            │
//	│  - type key, byte length, pointer to block data           │
//	│ Block data                                                │
//	├───────────────────────────────────────────────────────────┤
//	│ Name (NUL-terminated)                                     │
//	└───────────────────────────────────────────────────────────┘
//
// Read turns these tables into the raw blocks and structure metadata consumed by
// the meta package. Meta.Bytes lays a Meta out again, which is how tools and tests
// produce system regions.
package section
