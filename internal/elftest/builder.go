// Package elftest assembles small ELF images and containers for tests. It
// writes every field at hard-coded offsets and does not depend on the
// decoder it serves.
package elftest

import (
	"encoding/binary"
)

const (
	Class32 = 1
	Class64 = 2
)

type Prog struct {
	Type   uint32
	Flags  uint32
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

type Section struct {
	Name      string
	Type      uint32
	Flags     uint64
	Addr      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64
	Data      []byte
	// Size is used for sections without Data (NOBITS).
	Size uint64
}

type Builder struct {
	Class      uint8
	Little     bool
	OSABI      uint8
	ABIVersion uint8
	Type       uint16
	Machine    uint16
	Entry      uint64
	Flags      uint32

	Progs    []Prog
	Sections []Section

	// Strtab is the index at which .shstrtab is inserted in Sections. A
	// value out of [1, len(Sections)] appends it at the end.
	Strtab   int
	NoStrtab bool

	// PhSize and ShSize override the size of the table entries.
	PhSize uint16
	ShSize uint16
}

// Image is a built file with the location of its tables.
type Image struct {
	Bytes    []byte
	Phoff    int
	Shoff    int
	PhSize   int
	ShSize   int
	Shstrndx int
	Offsets  []uint64
	Names    []uint32
}

func (b *Builder) order() binary.ByteOrder {
	if b.Little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (b *Builder) is64() bool {
	return b.Class != Class32
}

func (b *Builder) headerSize() int {
	if b.is64() {
		return 64
	}
	return 52
}

func (b *Builder) progSize() int {
	if b.PhSize != 0 {
		return int(b.PhSize)
	}
	if b.is64() {
		return 56
	}
	return 32
}

func (b *Builder) sectSize() int {
	if b.ShSize != 0 {
		return int(b.ShSize)
	}
	if b.is64() {
		return 64
	}
	return 40
}

func (b *Builder) sections() ([]Section, int) {
	if b.NoStrtab || len(b.Sections) == 0 {
		return b.Sections, 0
	}
	var (
		names []byte
		list  = make([]Section, 0, len(b.Sections)+1)
		at    = b.Strtab
	)
	if at < 1 || at > len(b.Sections) {
		at = len(b.Sections)
	}
	list = append(list, b.Sections[:at]...)
	list = append(list, Section{Name: ".shstrtab", Type: 3, AddrAlign: 1})
	list = append(list, b.Sections[at:]...)

	names = append(names, 0)
	for i := range list {
		if list[i].Name == "" {
			continue
		}
		names = append(names, list[i].Name...)
		names = append(names, 0)
	}
	list[at].Data = names
	return list, at
}

func (b *Builder) Build() *Image {
	var (
		img      Image
		order    = b.order()
		sections []Section
	)
	sections, img.Shstrndx = b.sections()
	img.PhSize = b.progSize()
	img.ShSize = b.sectSize()

	buf := make([]byte, b.headerSize())
	if len(b.Progs) > 0 {
		img.Phoff = len(buf)
		buf = append(buf, make([]byte, len(b.Progs)*img.PhSize)...)
	}
	img.Offsets = make([]uint64, len(sections))
	img.Names = make([]uint32, len(sections))
	var name uint32 = 1
	for i, s := range sections {
		if s.Name != "" && !b.NoStrtab {
			img.Names[i] = name
			name += uint32(len(s.Name)) + 1
		}
		if s.Type == 0 {
			continue
		}
		if len(s.Data) == 0 {
			img.Offsets[i] = uint64(len(buf))
			continue
		}
		for len(buf)%8 != 0 {
			buf = append(buf, 0)
		}
		img.Offsets[i] = uint64(len(buf))
		buf = append(buf, s.Data...)
	}
	if len(sections) > 0 {
		for len(buf)%8 != 0 {
			buf = append(buf, 0)
		}
		img.Shoff = len(buf)
		buf = append(buf, make([]byte, len(sections)*img.ShSize)...)
	}
	img.Bytes = buf

	b.putHeader(&img, order, len(sections))
	for i, p := range b.Progs {
		b.putProg(img.Bytes[img.Phoff+i*img.PhSize:], order, p)
	}
	for i, s := range sections {
		size := uint64(len(s.Data))
		if size == 0 {
			size = s.Size
		}
		b.putSection(img.Bytes[img.Shoff+i*img.ShSize:], order, s, img.Names[i], img.Offsets[i], size)
	}
	return &img
}

func (b *Builder) putHeader(img *Image, order binary.ByteOrder, count int) {
	buf := img.Bytes
	copy(buf, []byte{0x7f, 'E', 'L', 'F'})
	buf[4] = b.Class
	if b.Class == 0 {
		buf[4] = Class64
	}
	if b.Little {
		buf[5] = 1
	} else {
		buf[5] = 2
	}
	buf[6] = 1
	buf[7] = b.OSABI
	buf[8] = b.ABIVersion
	order.PutUint16(buf[0x10:], b.Type)
	order.PutUint16(buf[0x12:], b.Machine)
	order.PutUint32(buf[0x14:], 1)

	if b.is64() {
		order.PutUint64(buf[0x18:], b.Entry)
		order.PutUint64(buf[0x20:], uint64(img.Phoff))
		order.PutUint64(buf[0x28:], uint64(img.Shoff))
		order.PutUint32(buf[0x30:], b.Flags)
		order.PutUint16(buf[0x34:], 64)
		order.PutUint16(buf[0x36:], uint16(img.PhSize))
		order.PutUint16(buf[0x38:], uint16(len(b.Progs)))
		order.PutUint16(buf[0x3a:], uint16(img.ShSize))
		order.PutUint16(buf[0x3c:], uint16(count))
		order.PutUint16(buf[0x3e:], uint16(img.Shstrndx))
		return
	}
	order.PutUint32(buf[0x18:], uint32(b.Entry))
	order.PutUint32(buf[0x1c:], uint32(img.Phoff))
	order.PutUint32(buf[0x20:], uint32(img.Shoff))
	order.PutUint32(buf[0x24:], b.Flags)
	order.PutUint16(buf[0x28:], 52)
	order.PutUint16(buf[0x2a:], uint16(img.PhSize))
	order.PutUint16(buf[0x2c:], uint16(len(b.Progs)))
	order.PutUint16(buf[0x2e:], uint16(img.ShSize))
	order.PutUint16(buf[0x30:], uint16(count))
	order.PutUint16(buf[0x32:], uint16(img.Shstrndx))
}

func (b *Builder) putProg(buf []byte, order binary.ByteOrder, p Prog) {
	order.PutUint32(buf[0:], p.Type)
	if b.is64() {
		order.PutUint32(buf[4:], p.Flags)
		order.PutUint64(buf[8:], p.Offset)
		order.PutUint64(buf[16:], p.Vaddr)
		order.PutUint64(buf[24:], p.Paddr)
		order.PutUint64(buf[32:], p.Filesz)
		order.PutUint64(buf[40:], p.Memsz)
		order.PutUint64(buf[48:], p.Align)
		return
	}
	order.PutUint32(buf[4:], uint32(p.Offset))
	order.PutUint32(buf[8:], uint32(p.Vaddr))
	order.PutUint32(buf[12:], uint32(p.Paddr))
	order.PutUint32(buf[16:], uint32(p.Filesz))
	order.PutUint32(buf[20:], uint32(p.Memsz))
	order.PutUint32(buf[24:], p.Flags)
	order.PutUint32(buf[28:], uint32(p.Align))
}

func (b *Builder) putSection(buf []byte, order binary.ByteOrder, s Section, name uint32, offset, size uint64) {
	order.PutUint32(buf[0:], name)
	order.PutUint32(buf[4:], s.Type)
	if b.is64() {
		order.PutUint64(buf[8:], s.Flags)
		order.PutUint64(buf[16:], s.Addr)
		order.PutUint64(buf[24:], offset)
		order.PutUint64(buf[32:], size)
		order.PutUint32(buf[40:], s.Link)
		order.PutUint32(buf[44:], s.Info)
		order.PutUint64(buf[48:], s.AddrAlign)
		order.PutUint64(buf[56:], s.EntSize)
		return
	}
	order.PutUint32(buf[8:], uint32(s.Flags))
	order.PutUint32(buf[12:], uint32(s.Addr))
	order.PutUint32(buf[16:], uint32(offset))
	order.PutUint32(buf[20:], uint32(size))
	order.PutUint32(buf[24:], s.Link)
	order.PutUint32(buf[28:], s.Info)
	order.PutUint32(buf[32:], uint32(s.AddrAlign))
	order.PutUint32(buf[36:], uint32(s.EntSize))
}

// SectionEntry returns the offset of the i-th section header.
func (i *Image) SectionEntry(n int) int {
	return i.Shoff + n*i.ShSize
}

func (i *Image) ProgEntry(n int) int {
	return i.Phoff + n*i.PhSize
}

// Executable gives a little endian x86-64 executable with a loadable text
// segment, a note, a bss and the usual null section.
func Executable() *Builder {
	text := make([]byte, 32)
	for i := range text {
		text[i] = 0x90
	}
	return &Builder{
		Class:   Class64,
		Little:  true,
		Type:    2,
		Machine: 0x3e,
		Entry:   0x401000,
		Progs: []Prog{
			{Type: 6, Flags: 4, Offset: 64, Vaddr: 0x400040, Paddr: 0x400040, Filesz: 112, Memsz: 112, Align: 8},
			{Type: 1, Flags: 5, Offset: 0, Vaddr: 0x400000, Paddr: 0x400000, Filesz: 0x1000, Memsz: 0x3000, Align: 0x1000},
		},
		Sections: []Section{
			{},
			{Name: ".text", Type: 1, Flags: 0x6, Addr: 0x401000, AddrAlign: 16, Data: text},
			{Name: ".note.gnu", Type: 7, Flags: 0x2, Addr: 0x400200, AddrAlign: 4, Data: []byte("GNU\x00notes\x00\x00\x00")},
			{Name: ".bss", Type: 8, Flags: 0x3, Addr: 0x402000, AddrAlign: 32, Size: 0x100},
		},
	}
}
