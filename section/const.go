package section

// Fixed record sizes of the meta layout, in bytes.
const (
	MetaHeaderSize         = 0x70 // meta header at the start of the system region
	DataBlockInfoSize      = 0x10 // one data block descriptor
	StructureInfoSize      = 0x20 // one structure descriptor
	StructureEntryInfoSize = 0x10 // one structure field descriptor
	EnumInfoSize           = 0x18 // one enum descriptor
	EnumEntryInfoSize      = 0x08 // one enum value
)

const (
	// MetaMagic is the constant stored at byte offset 0x10 of every meta header.
	MetaMagic int32 = 0x50524430
	// MetaMagicVersion is the constant stored at byte offset 0x14.
	MetaMagicVersion uint16 = 0x0079
	// metaRecordAlign is the alignment of tables and block data written by Bytes.
	metaRecordAlign = 16
)
