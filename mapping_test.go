package elfit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/midbel/elfit/elf"
	"github.com/midbel/elfit/internal/elftest"
)

func mappingOf(t *testing.T, buf []byte) map[int][]string {
	t.Helper()
	list, err := Load("test", buf)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := make(map[int][]string)
	for _, seg := range list[0].Mapping() {
		got[seg.Index] = seg.Sections
	}
	return got
}

func TestMapping(t *testing.T) {
	got := mappingOf(t, elftest.Executable().Build().Bytes)
	want := map[int][]string{
		0: nil,
		1: {".text", ".note.gnu", ".bss"},
	}
	require.Equal(t, want, got)
}

func TestMappingTLS(t *testing.T) {
	const base = 0x400000
	b := elftest.Builder{
		Class:   elftest.Class64,
		Little:  true,
		Type:    3,
		Machine: 0x3e,
		Progs:   make([]elftest.Prog, 4),
		Sections: []elftest.Section{
			{},
			{Name: ".tdata", Type: 1, Flags: 0x403, AddrAlign: 8, Data: make([]byte, 16)},
			{Name: ".tbss", Type: 8, Flags: 0x403, AddrAlign: 8, Size: 0x20},
			{Name: ".note", Type: 7, Flags: 0x2, AddrAlign: 4, Data: make([]byte, 12)},
			{Name: ".comment", Type: 1, AddrAlign: 1, Data: []byte("GCC\x00")},
		},
	}
	// section offsets only depend on the number of program headers.
	img := b.Build()
	var (
		tdata = img.Offsets[1]
		tbss  = img.Offsets[2]
		note  = img.Offsets[3]
	)
	b.Sections[1].Addr = base + tdata
	b.Sections[2].Addr = base + tbss
	b.Sections[3].Addr = base + note
	b.Progs = []elftest.Prog{
		{Type: 1, Flags: 6, Offset: 0, Vaddr: base, Filesz: 0x1000, Memsz: 0x1000, Align: 0x1000},
		{Type: 7, Flags: 4, Offset: tdata, Vaddr: base + tdata, Filesz: 16, Memsz: 0x30, Align: 8},
		{Type: 0x6474e551, Flags: 6},
		{Type: 4, Flags: 4, Offset: note, Vaddr: base + note, Filesz: 12, Memsz: 12, Align: 4},
	}
	img = b.Build()
	require.Equal(t, tbss, img.Offsets[2])

	got := mappingOf(t, img.Bytes)
	want := map[int][]string{
		0: {".tdata", ".note"},
		1: {".tdata", ".tbss"},
		2: nil,
		3: {".note"},
	}
	require.Equal(t, want, got)
}

func TestWithin(t *testing.T) {
	testcases := []struct {
		at, size, base, limit uint64
		want                  bool
	}{
		{0x100, 0x10, 0x100, 0x10, true},
		{0x100, 0x11, 0x100, 0x10, false},
		{0xff, 0x1, 0x100, 0x10, false},
		{0x110, 0, 0x100, 0x10, false},
		{0x10f, 0x1, 0x100, 0x10, true},
		{0x100, 0, 0x100, 0, true},
		{0x101, 0, 0x100, 0, false},
		{0x100, ^uint64(0), 0x100, 0x10, false},
	}
	for _, testcase := range testcases {
		got := within(testcase.at, testcase.size, testcase.base, testcase.limit)
		require.Equal(t, testcase.want, got, "%+v", testcase)
	}
}

func TestMappingEmptyEdge(t *testing.T) {
	dyn := elf.ProgHeader{Type: elf.ProgDynamic, Offset: 0x100, VirtualAddr: 0x1100, SegmentSizeFile: 0x40, SegmentSizeMem: 0x40}
	testcases := []struct {
		section elf.SectionHeader
		want    bool
	}{
		{elf.SectionHeader{Type: elf.SectionDynamic, Flags: elf.SectionFlagAlloc, Offset: 0x100, Addr: 0x1100, Size: 0x40}, true},
		{elf.SectionHeader{Type: elf.SectionProgBits, Flags: elf.SectionFlagAlloc, Offset: 0x100, Addr: 0x1100}, false},
		{elf.SectionHeader{Type: elf.SectionProgBits, Flags: elf.SectionFlagAlloc, Offset: 0x120, Addr: 0x1120}, true},
		{elf.SectionHeader{Type: elf.SectionProgBits, Offset: 0x120, Addr: 0x1120, Size: 8}, false},
	}
	for _, testcase := range testcases {
		require.Equal(t, testcase.want, inSegment(&testcase.section, &dyn), "%+v", testcase.section)
	}
}
