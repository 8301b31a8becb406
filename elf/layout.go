package elf

const (
	identClass      = 0x04
	identData       = 0x05
	identVersion    = 0x06
	identOSABI      = 0x07
	identABIVersion = 0x08
	identSize       = 0x10

	offType    = 0x10
	offMachine = 0x12
	offVersion = 0x14
	offEntry   = 0x18
)

type headerLayout struct {
	Entry     int
	Phoff     int
	Shoff     int
	Flags     int
	Ehsize    int
	Phentsize int
	Phnum     int
	Shentsize int
	Shnum     int
	Shstrndx  int
	Size      int
}

// the 64-bit program header moves Flags right after Type so that the
// following fields stay 8-byte aligned.
type progLayout struct {
	Type   int
	Flags  int
	Offset int
	Vaddr  int
	Paddr  int
	Filesz int
	Memsz  int
	Align  int
	Size   int
}

type sectLayout struct {
	Name      int
	Type      int
	Flags     int
	Addr      int
	Offset    int
	Size      int
	Link      int
	Info      int
	AddrAlign int
	EntSize   int
	Len       int
}

type layout struct {
	class  Class
	word   int
	read   func([]byte, bool) uint64
	header headerLayout
	prog   progLayout
	sect   sectLayout
}

var layout32 = layout{
	class: Class32,
	word:  4,
	read: func(b []byte, little bool) uint64 {
		return uint64(Uint32(b, little))
	},
	header: headerLayout{
		Entry:     0x18,
		Phoff:     0x1c,
		Shoff:     0x20,
		Flags:     0x24,
		Ehsize:    0x28,
		Phentsize: 0x2a,
		Phnum:     0x2c,
		Shentsize: 0x2e,
		Shnum:     0x30,
		Shstrndx:  0x32,
		Size:      0x34,
	},
	prog: progLayout{
		Type:   0x00,
		Offset: 0x04,
		Vaddr:  0x08,
		Paddr:  0x0c,
		Filesz: 0x10,
		Memsz:  0x14,
		Flags:  0x18,
		Align:  0x1c,
		Size:   0x20,
	},
	sect: sectLayout{
		Name:      0x00,
		Type:      0x04,
		Flags:     0x08,
		Addr:      0x0c,
		Offset:    0x10,
		Size:      0x14,
		Link:      0x18,
		Info:      0x1c,
		AddrAlign: 0x20,
		EntSize:   0x24,
		Len:       0x28,
	},
}

var layout64 = layout{
	class: Class64,
	word:  8,
	read:  Uint64,
	header: headerLayout{
		Entry:     0x18,
		Phoff:     0x20,
		Shoff:     0x28,
		Flags:     0x30,
		Ehsize:    0x34,
		Phentsize: 0x36,
		Phnum:     0x38,
		Shentsize: 0x3a,
		Shnum:     0x3c,
		Shstrndx:  0x3e,
		Size:      0x40,
	},
	prog: progLayout{
		Type:   0x00,
		Flags:  0x04,
		Offset: 0x08,
		Vaddr:  0x10,
		Paddr:  0x18,
		Filesz: 0x20,
		Memsz:  0x28,
		Align:  0x30,
		Size:   0x38,
	},
	sect: sectLayout{
		Name:      0x00,
		Type:      0x04,
		Flags:     0x08,
		Addr:      0x10,
		Offset:    0x18,
		Size:      0x20,
		Link:      0x28,
		Info:      0x2c,
		AddrAlign: 0x30,
		EntSize:   0x38,
		Len:       0x40,
	},
}

func layoutOf(c Class) *layout {
	switch c {
	case Class32:
		return &layout32
	case Class64:
		return &layout64
	default:
		return nil
	}
}

// reader keeps the first error it meets so that a record can be decoded
// field after field and checked once.
type reader struct {
	buf    []byte
	little bool
	base   int
	err    error
	*layout
}

func (r *reader) at(base int) *reader {
	r.base = base
	return r
}

func (r *reader) slice(field string, off, n int) []byte {
	if r.err != nil {
		return nil
	}
	pos := r.base + off
	if pos < 0 || n > len(r.buf) || pos > len(r.buf)-n {
		r.err = malformed(field, pos, "read of %d bytes out of bounds (size %d)", n, len(r.buf))
		return nil
	}
	return r.buf[pos : pos+n]
}

func (r *reader) u8(field string, off int) uint8 {
	b := r.slice(field, off, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u16(field string, off int) uint16 {
	b := r.slice(field, off, 2)
	if b == nil {
		return 0
	}
	return Uint16(b, r.little)
}

func (r *reader) u32(field string, off int) uint32 {
	b := r.slice(field, off, 4)
	if b == nil {
		return 0
	}
	return Uint32(b, r.little)
}

func (r *reader) word(field string, off int) uint64 {
	b := r.slice(field, off, r.layout.word)
	if b == nil {
		return 0
	}
	return r.layout.read(b, r.little)
}

// table returns the start offset of every entry of a fixed stride table and
// checks that the whole table lies in buf.
func table(buf []byte, field string, offset uint64, entsize, count uint16, min int) ([]int, error) {
	if count == 0 {
		return nil, nil
	}
	if int(entsize) < min {
		return nil, malformed(field, 0, "entry size %d smaller than %d", entsize, min)
	}
	size := uint64(entsize) * uint64(count)
	if offset > uint64(len(buf)) || size > uint64(len(buf))-offset {
		return nil, malformed(field, int(min64(offset, uint64(len(buf)))), "table of %d entries at %#x out of bounds (size %d)", count, offset, len(buf))
	}
	list := make([]int, count)
	for i := range list {
		list[i] = int(offset) + i*int(entsize)
	}
	return list, nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
