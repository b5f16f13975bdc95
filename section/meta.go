package section

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/format"
	"github.com/arloliu/metagraph/meta"
	"github.com/arloliu/metagraph/resource"
)

// Memory is the virtual memory of a loaded resource. *resource.File implements it.
type Memory interface {
	// Slice returns n bytes starting at the virtual address ptr.
	Slice(ptr uint64, n int) ([]byte, error)
	// Tail returns the bytes from ptr to the end of its region.
	Tail(ptr uint64) ([]byte, error)
}

var _ Memory = (*resource.File)(nil)

// EnumInfo describes one enum type with its named values.
type EnumInfo struct {
	// Key is the enum name hash.
	Key uint32
	// EnumKey is the key enum and flags fields reference.
	EnumKey uint32
	Entries []EnumEntry
}

// Meta is the content of a meta resource: the structure and enum metadata plus the
// undecoded data blocks.
type Meta struct {
	Header     MetaHeader
	Name       string
	Structures []meta.StructureInfo
	Enums      []EnumInfo
	// Blocks are in resource order; block pointers address them 1-based.
	Blocks []meta.RawBlock
}

// Read reads the meta content of a resource.
//
// Block data is not copied; every RawBlock aliases mem.
func Read(mem Memory) (*Meta, error) {
	head, err := mem.Tail(resource.SystemBase)
	if err != nil {
		return nil, err
	}
	h, err := ParseMetaHeader(head)
	if err != nil {
		return nil, err
	}

	m := &Meta{Header: h}

	if m.Structures, err = readStructures(mem, &h); err != nil {
		return nil, err
	}
	if m.Enums, err = readEnums(mem, &h); err != nil {
		return nil, err
	}
	if m.Blocks, err = readBlocks(mem, &h); err != nil {
		return nil, err
	}
	if m.Name, err = readName(mem, h.NamePointer); err != nil {
		return nil, err
	}

	return m, nil
}

// table returns count fixed-size records at ptr; an empty table may have a null pointer.
func table(mem Memory, ptr uint64, count, size int, what string) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}

	b, err := mem.Slice(ptr, count*size)
	if err != nil {
		return nil, fmt.Errorf("%s table: %w", what, err)
	}

	return b, nil
}

func readStructures(mem Memory, h *MetaHeader) ([]meta.StructureInfo, error) {
	count := int(h.StructureInfosCount)
	tbl, err := table(mem, h.StructureInfosPointer, count, StructureInfoSize, "structure info")
	if err != nil {
		return nil, err
	}

	infos := make([]meta.StructureInfo, count)
	for i := range count {
		var rec StructureInfoRecord
		rec.Parse(tbl[i*StructureInfoSize:])
		if rec.StructureSize < 0 {
			return nil, fmt.Errorf("%w: structure 0x%08X has size %d", errs.ErrCorruptBlock, rec.Key, rec.StructureSize)
		}

		n := int(rec.EntriesCount)
		entries, err := table(mem, rec.EntriesPointer, n, StructureEntryInfoSize, "structure entry")
		if err != nil {
			return nil, fmt.Errorf("structure 0x%08X: %w", rec.Key, err)
		}

		fields := make([]meta.FieldInfo, n)
		for j := range n {
			var entry StructureEntryInfo
			entry.Parse(entries[j*StructureEntryInfoSize:])
			if entry.DataOffset < 0 {
				return nil, fmt.Errorf("%w: structure 0x%08X field 0x%08X at offset %d",
					errs.ErrCorruptBlock, rec.Key, entry.EntryNameHash, entry.DataOffset)
			}
			fields[j] = meta.FieldInfo{
				Key:      entry.EntryNameHash,
				Offset:   uint32(entry.DataOffset),
				Type:     entry.DataType,
				RefIndex: entry.ReferenceTypeIndex,
				RefKey:   entry.ReferenceKey,
			}
		}

		infos[i] = meta.StructureInfo{Key: rec.Key, Length: uint32(rec.StructureSize), Fields: fields}
	}

	return infos, nil
}

func readEnums(mem Memory, h *MetaHeader) ([]EnumInfo, error) {
	count := int(h.EnumInfosCount)
	tbl, err := table(mem, h.EnumInfosPointer, count, EnumInfoSize, "enum info")
	if err != nil {
		return nil, err
	}

	enums := make([]EnumInfo, count)
	for i := range count {
		var rec EnumInfoRecord
		rec.Parse(tbl[i*EnumInfoSize:])
		if rec.EntriesCount < 0 {
			return nil, fmt.Errorf("%w: enum 0x%08X has %d entries", errs.ErrCorruptBlock, rec.EnumNameHash, rec.EntriesCount)
		}

		n := int(rec.EntriesCount)
		raw, err := table(mem, rec.EntriesPointer, n, EnumEntryInfoSize, "enum entry")
		if err != nil {
			return nil, fmt.Errorf("enum 0x%08X: %w", rec.EnumNameHash, err)
		}

		entries := make([]EnumEntry, n)
		for j := range entries {
			entries[j].Parse(raw[j*EnumEntryInfoSize:])
		}
		enums[i] = EnumInfo{Key: rec.EnumNameHash, EnumKey: rec.EnumKey, Entries: entries}
	}

	return enums, nil
}

func readBlocks(mem Memory, h *MetaHeader) ([]meta.RawBlock, error) {
	count := int(h.DataBlocksCount)
	tbl, err := table(mem, h.DataBlocksPointer, count, DataBlockInfoSize, "data block")
	if err != nil {
		return nil, err
	}

	blocks := make([]meta.RawBlock, count)
	for i := range count {
		var rec DataBlockInfo
		rec.Parse(tbl[i*DataBlockInfoSize:])

		var data []byte
		if rec.DataLength != 0 {
			data, err = mem.Slice(rec.DataPointer, int(rec.DataLength))
			if err != nil {
				return nil, fmt.Errorf("data block %d: %w", i+1, err)
			}
		}
		blocks[i] = meta.RawBlock{Key: format.TypeKey(rec.Key), Data: data}
	}

	return blocks, nil
}

func readName(mem Memory, ptr uint64) (string, error) {
	if ptr == 0 {
		return "", nil
	}

	tail, err := mem.Tail(ptr)
	if err != nil {
		return "", fmt.Errorf("name: %w", err)
	}
	end := bytes.IndexByte(tail, 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated name at 0x%08X", errs.ErrInvalidPointer, ptr)
	}

	return string(tail[:end]), nil
}

// Encode lays m out as a system region.
//
// Tables and block data are 16-byte aligned and addressed from resource.SystemBase.
// Header pointers and counts are derived from the contents; the remaining header
// fields are taken from m.Header and the magic constants are always written.
func (m *Meta) Encode() ([]byte, error) {
	if len(m.Structures) > math.MaxUint16 || len(m.Enums) > math.MaxUint16 || len(m.Blocks) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: too many tables for a meta header", errs.ErrInvalidHeaderSize)
	}

	w := &layoutWriter{buf: make([]byte, MetaHeaderSize)}
	h := m.Header
	h.Magic, h.MagicVersion = MetaMagic, MetaMagicVersion
	h.StructureInfosCount = uint16(len(m.Structures)) //nolint:gosec
	h.EnumInfosCount = uint16(len(m.Enums))           //nolint:gosec
	h.DataBlocksCount = uint16(len(m.Blocks))         //nolint:gosec

	if err := m.encodeStructures(w, &h); err != nil {
		return nil, err
	}
	m.encodeEnums(w, &h)
	if err := m.encodeBlocks(w, &h); err != nil {
		return nil, err
	}
	if m.Name != "" {
		h.NamePointer = w.write(append([]byte(m.Name), 0))
	}

	copy(w.buf, h.Bytes())

	return w.buf, nil
}

func (m *Meta) encodeStructures(w *layoutWriter, h *MetaHeader) error {
	if len(m.Structures) == 0 {
		return nil
	}

	tbl := w.reserve(len(m.Structures) * StructureInfoSize)
	h.StructureInfosPointer = resource.SystemBase + uint64(tbl) //nolint:gosec
	for i := range m.Structures {
		info := &m.Structures[i]
		if len(info.Fields) > math.MaxUint16 || info.Length > math.MaxInt32 {
			return fmt.Errorf("%w: structure 0x%08X cannot be encoded", errs.ErrCorruptBlock, info.Key)
		}

		rec := StructureInfoRecord{
			Key:           info.Key,
			StructureSize: int32(info.Length),      //nolint:gosec
			EntriesCount:  uint16(len(info.Fields)), //nolint:gosec
		}
		if len(info.Fields) > 0 {
			entries := make([]byte, 0, len(info.Fields)*StructureEntryInfoSize)
			for _, f := range info.Fields {
				entry := StructureEntryInfo{
					EntryNameHash:      f.Key,
					DataOffset:         int32(f.Offset), //nolint:gosec
					DataType:           f.Type,
					ReferenceTypeIndex: f.RefIndex,
					ReferenceKey:       f.RefKey,
				}
				entries = append(entries, entry.Bytes()...)
			}
			rec.EntriesPointer = w.write(entries)
		}
		copy(w.buf[tbl+i*StructureInfoSize:], rec.Bytes())
	}

	return nil
}

func (m *Meta) encodeEnums(w *layoutWriter, h *MetaHeader) {
	if len(m.Enums) == 0 {
		return
	}

	tbl := w.reserve(len(m.Enums) * EnumInfoSize)
	h.EnumInfosPointer = resource.SystemBase + uint64(tbl) //nolint:gosec
	for i, e := range m.Enums {
		rec := EnumInfoRecord{EnumNameHash: e.Key, EnumKey: e.EnumKey, EntriesCount: int32(len(e.Entries))} //nolint:gosec
		if len(e.Entries) > 0 {
			entries := make([]byte, 0, len(e.Entries)*EnumEntryInfoSize)
			for _, entry := range e.Entries {
				entries = append(entries, entry.Bytes()...)
			}
			rec.EntriesPointer = w.write(entries)
		}
		copy(w.buf[tbl+i*EnumInfoSize:], rec.Bytes())
	}
}

func (m *Meta) encodeBlocks(w *layoutWriter, h *MetaHeader) error {
	if len(m.Blocks) == 0 {
		return nil
	}

	tbl := w.reserve(len(m.Blocks) * DataBlockInfoSize)
	h.DataBlocksPointer = resource.SystemBase + uint64(tbl) //nolint:gosec
	for i, b := range m.Blocks {
		if len(b.Data) > math.MaxInt32 {
			return fmt.Errorf("%w: data block %d of %d bytes", errs.ErrCorruptBlock, i+1, len(b.Data))
		}

		rec := DataBlockInfo{Key: uint32(b.Key), DataLength: int32(len(b.Data))} //nolint:gosec
		if len(b.Data) > 0 {
			rec.DataPointer = w.write(b.Data)
		}
		copy(w.buf[tbl+i*DataBlockInfoSize:], rec.Bytes())
	}

	return nil
}

// layoutWriter appends aligned records to a system region under construction.
type layoutWriter struct {
	buf []byte
}

// reserve appends n zero bytes at the next aligned offset and returns that offset.
func (w *layoutWriter) reserve(n int) int {
	if pad := len(w.buf) % metaRecordAlign; pad != 0 {
		w.buf = append(w.buf, make([]byte, metaRecordAlign-pad)...)
	}
	off := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)

	return off
}

// write appends b at the next aligned offset and returns its virtual address.
func (w *layoutWriter) write(b []byte) uint64 {
	off := w.reserve(len(b))
	copy(w.buf[off:], b)

	return resource.SystemBase + uint64(off) //nolint:gosec
}
