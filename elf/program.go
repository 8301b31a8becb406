package elf

type ProgHeader struct {
	Type            ProgType
	Flags           ProgFlag
	Offset          uint64
	VirtualAddr     uint64
	PhysicalAddr    uint64
	SegmentSizeFile uint64
	SegmentSizeMem  uint64
	Alignment       uint64
}

// DecodePrograms decodes the program header table described by h. The
// result has exactly h.PhCount entries in table order; the first entry that
// can not be decoded aborts the whole table.
func DecodePrograms(buf []byte, h *FileHeader) ([]ProgHeader, error) {
	r, err := h.reader(buf)
	if err != nil {
		return nil, err
	}
	list, err := table(buf, "program headers", h.ProgramAddr, h.PhSize, h.PhCount, r.prog.Size)
	if err != nil {
		return nil, err
	}
	progs := make([]ProgHeader, 0, len(list))
	for _, base := range list {
		ph, err := readProgramHeader(r.at(base))
		if err != nil {
			return nil, err
		}
		progs = append(progs, ph)
	}
	return progs, nil
}

func readProgramHeader(r *reader) (ProgHeader, error) {
	var (
		ph  ProgHeader
		pl  = r.prog
		typ = r.u32("p_type", pl.Type)
	)
	ph.Flags = ProgFlag(r.u32("p_flags", pl.Flags))
	ph.Offset = r.word("p_offset", pl.Offset)
	ph.VirtualAddr = r.word("p_vaddr", pl.Vaddr)
	ph.PhysicalAddr = r.word("p_paddr", pl.Paddr)
	ph.SegmentSizeFile = r.word("p_filesz", pl.Filesz)
	ph.SegmentSizeMem = r.word("p_memsz", pl.Memsz)
	ph.Alignment = r.word("p_align", pl.Align)
	if r.err != nil {
		return ph, r.err
	}
	var ok bool
	if ph.Type, ok = parseProgType(typ); !ok {
		return ph, malformed("p_type", r.base+pl.Type, "unknown segment type %#x", typ)
	}
	return ph, nil
}
