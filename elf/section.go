package elf

import (
	"bytes"
	"unicode/utf8"
)

// SectionUndef as names index means that the file has no section name
// string table.
const SectionUndef = 0

type SectionHeader struct {
	Name      string
	Type      SectionType
	Flags     SectionFlag
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64

	// NameIndex is the offset of Name in the section name string table.
	NameIndex uint32
}

// DecodeSections decodes the section header table described by h in two
// passes: all the entries are decoded first, then their names are read from
// the string table designated by h.NamesIndex.
func DecodeSections(buf []byte, h *FileHeader) ([]SectionHeader, error) {
	raw, err := decodeRawSections(buf, h)
	if err != nil {
		return nil, err
	}
	return resolveNames(buf, raw, h.NamesIndex)
}

func decodeRawSections(buf []byte, h *FileHeader) ([]SectionHeader, error) {
	r, err := h.reader(buf)
	if err != nil {
		return nil, err
	}
	list, err := table(buf, "section headers", h.SectionAddr, h.ShSize, h.ShCount, r.sect.Len)
	if err != nil {
		return nil, err
	}
	sections := make([]SectionHeader, 0, len(list))
	for _, base := range list {
		sh, err := readSectionHeader(r.at(base))
		if err != nil {
			return nil, err
		}
		sections = append(sections, sh)
	}
	return sections, nil
}

func readSectionHeader(r *reader) (SectionHeader, error) {
	var (
		sh  SectionHeader
		sl  = r.sect
		typ = r.u32("sh_type", sl.Type)
	)
	sh.NameIndex = r.u32("sh_name", sl.Name)
	sh.Flags = SectionFlag(r.word("sh_flags", sl.Flags))
	sh.Addr = r.word("sh_addr", sl.Addr)
	sh.Offset = r.word("sh_offset", sl.Offset)
	sh.Size = r.word("sh_size", sl.Size)
	sh.Link = r.u32("sh_link", sl.Link)
	sh.Info = r.u32("sh_info", sl.Info)
	sh.AddrAlign = r.word("sh_addralign", sl.AddrAlign)
	sh.EntSize = r.word("sh_entsize", sl.EntSize)
	if r.err != nil {
		return sh, r.err
	}
	var ok bool
	if sh.Type, ok = parseSectionType(typ); !ok {
		return sh, malformed("sh_type", r.base+sl.Type, "unknown section type %#x", typ)
	}
	return sh, nil
}

func resolveNames(buf []byte, raw []SectionHeader, index uint16) ([]SectionHeader, error) {
	sections := make([]SectionHeader, len(raw))
	copy(sections, raw)
	if len(sections) == 0 || index == SectionUndef {
		return sections, nil
	}
	if int(index) >= len(sections) {
		return nil, malformed("shstrndx", 0, "string table index %d out of range (%d sections)", index, len(sections))
	}
	var (
		strtab = raw[index]
		start  = strtab.Offset
		end    = strtab.Offset + strtab.Size
	)
	if end < start || start > uint64(len(buf)) || end > uint64(len(buf)) {
		return nil, malformed("shstrtab", int(min64(start, uint64(len(buf)))), "string table [%#x:%#x] out of bounds (size %d)", start, end, len(buf))
	}
	names := buf[start:end]
	for i := range sections {
		name, err := readName(names, sections[i].NameIndex)
		if err != nil {
			if e, ok := err.(*MalformedError); ok {
				e.Offset += int(start)
			}
			return nil, err
		}
		sections[i].Name = name
	}
	return sections, nil
}

func readName(names []byte, offset uint32) (string, error) {
	if uint64(offset) >= uint64(len(names)) {
		return "", malformed("sh_name", int(offset), "name offset %d past end of string table (size %d)", offset, len(names))
	}
	str := names[offset:]
	x := bytes.IndexByte(str, 0)
	if x < 0 {
		return "", malformed("sh_name", int(offset), "unterminated name")
	}
	str = str[:x]
	if !utf8.Valid(str) {
		return "", malformed("sh_name", int(offset), "name is not valid text")
	}
	return string(str), nil
}
