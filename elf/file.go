package elf

// File is the result of a complete decode: the header and both tables.
type File struct {
	FileHeader
	Progs    []ProgHeader
	Sections []SectionHeader

	buf []byte
}

// Decode runs the three stages in order and fails as soon as one fails. The
// returned File keeps buf to serve SectionData; buf must not be modified
// afterward.
func Decode(buf []byte) (*File, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	progs, err := DecodePrograms(buf, h)
	if err != nil {
		return nil, err
	}
	sections, err := DecodeSections(buf, h)
	if err != nil {
		return nil, err
	}
	f := File{
		FileHeader: *h,
		Progs:      progs,
		Sections:   sections,
		buf:        buf,
	}
	return &f, nil
}

func (f *File) Section(name string) *SectionHeader {
	for i := range f.Sections {
		if s := &f.Sections[i]; s.Name == name {
			return s
		}
	}
	return nil
}

func (f *File) SectionsByType(typ SectionType) []SectionHeader {
	var list []SectionHeader
	for _, s := range f.Sections {
		if s.Type == typ {
			list = append(list, s)
		}
	}
	return list
}

// SectionData returns the bytes of s as a view on the decoded buffer.
// Sections without file content give an empty slice.
func (f *File) SectionData(s *SectionHeader) ([]byte, error) {
	if s.Type == SectionNoBits || s.Type == SectionNull {
		return nil, nil
	}
	end := s.Offset + s.Size
	if end < s.Offset || end > uint64(len(f.buf)) {
		return nil, malformed("section", int(min64(s.Offset, uint64(len(f.buf)))), "%s: data [%#x:%#x] out of bounds (size %d)", s.Name, s.Offset, end, len(f.buf))
	}
	return f.buf[s.Offset:end], nil
}
