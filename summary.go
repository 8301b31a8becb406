package elfit

import (
	"github.com/midbel/elfit/elf"
)

type Summary struct {
	Name     string
	Arch     string
	Class    elf.Class
	Type     elf.Type
	Entry    uint64
	Segments int
	Sections int
	// Memory is the sum of the memory size of the loadable segments.
	Memory uint64
	// Disk is the size of the file content of the sections.
	Disk uint64
}

func (o *Object) Summary() Summary {
	s := Summary{
		Name:     o.Name(),
		Arch:     Arch(&o.FileHeader),
		Class:    o.Class,
		Type:     o.Type,
		Entry:    o.EntryAddr,
		Segments: len(o.Progs),
		Sections: len(o.Sections),
	}
	for _, p := range o.Progs {
		if p.Type == elf.ProgLoad {
			s.Memory += p.SegmentSizeMem
		}
	}
	for _, x := range o.Sections {
		if x.Type != elf.SectionNoBits && x.Type != elf.SectionNull {
			s.Disk += x.Size
		}
	}
	return s
}
