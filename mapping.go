package elfit

import (
	"github.com/midbel/elfit/elf"
)

type Segment struct {
	Index int
	elf.ProgHeader
	Sections []string
}

// Mapping gives, for each program header, the names of the sections it
// holds, following the rules readelf applies for its segment to section
// mapping.
func (o *Object) Mapping() []Segment {
	list := make([]Segment, 0, len(o.Progs))
	for i := range o.Progs {
		seg := Segment{
			Index:      i,
			ProgHeader: o.Progs[i],
		}
		for j := 1; j < len(o.Sections); j++ {
			s := &o.Sections[j]
			if isTbss(s, &seg.ProgHeader) || !inSegment(s, &seg.ProgHeader) {
				continue
			}
			seg.Sections = append(seg.Sections, s.Name)
		}
		list = append(list, seg)
	}
	return list
}

func isTLS(s *elf.SectionHeader) bool {
	return s.Flags&elf.SectionFlagTLS != 0
}

func isAlloc(s *elf.SectionHeader) bool {
	return s.Flags&elf.SectionFlagAlloc != 0
}

// isTbss reports a .tbss like section outside of the TLS segment, where it
// takes no room.
func isTbss(s *elf.SectionHeader, p *elf.ProgHeader) bool {
	return isTLS(s) && s.Type == elf.SectionNoBits && p.Type != elf.ProgTLS
}

func sectionSize(s *elf.SectionHeader, p *elf.ProgHeader) uint64 {
	if isTbss(s, p) {
		return 0
	}
	return s.Size
}

func allocOnly(t elf.ProgType) bool {
	switch t {
	case elf.ProgLoad, elf.ProgDynamic, elf.ProgGnuEhFrame, elf.ProgGnuStack, elf.ProgGnuRelro:
		return true
	default:
		return false
	}
}

func inSegment(s *elf.SectionHeader, p *elf.ProgHeader) bool {
	if isTLS(s) {
		if p.Type != elf.ProgTLS && p.Type != elf.ProgGnuRelro && p.Type != elf.ProgLoad {
			return false
		}
	} else if p.Type == elf.ProgTLS || p.Type == elf.ProgPhdr {
		return false
	}
	if !isAlloc(s) && allocOnly(p.Type) {
		return false
	}
	size := sectionSize(s, p)
	if s.Type != elf.SectionNoBits {
		if !within(s.Offset, size, p.Offset, p.SegmentSizeFile) {
			return false
		}
	}
	if isAlloc(s) && !within(s.Addr, size, p.VirtualAddr, p.SegmentSizeMem) {
		return false
	}
	if (p.Type == elf.ProgDynamic || p.Type == elf.ProgNote) && s.Size == 0 && p.SegmentSizeMem != 0 {
		return onEdge(s, p)
	}
	return true
}

// within checks that [at, at+size) lies in [base, base+limit) and that an
// empty range does not start at the end. limit-1 wraps on purpose for
// empty segments.
func within(at, size, base, limit uint64) bool {
	if at < base {
		return false
	}
	off := at - base
	if off > limit-1 {
		return false
	}
	end := off + size
	return end >= off && end <= limit
}

// onEdge rejects empty sections that sit at the very start or end of a
// dynamic or note segment.
func onEdge(s *elf.SectionHeader, p *elf.ProgHeader) bool {
	if s.Type != elf.SectionNoBits {
		if s.Offset <= p.Offset || s.Offset-p.Offset >= p.SegmentSizeFile {
			return false
		}
	}
	if isAlloc(s) {
		if s.Addr <= p.VirtualAddr || s.Addr-p.VirtualAddr >= p.SegmentSizeMem {
			return false
		}
	}
	return true
}
