package elf

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/elfit/internal/elftest"
)

func TestDecode(t *testing.T) {
	img := elftest.Executable().Build()
	f, err := Decode(img.Bytes)
	require.NoError(t, err)

	assert.True(t, f.Is64())
	assert.False(t, f.Is32())
	assert.Equal(t, binary.LittleEndian, f.ByteOrder())
	assert.Equal(t, TypeExec, f.Type)
	assert.Equal(t, MachineX86_64, f.Machine)
	assert.Equal(t, uint64(0x401000), f.EntryAddr)
	require.Len(t, f.Progs, 2)
	assert.Equal(t, ProgPhdr, f.Progs[0].Type)
	assert.Equal(t, ProgLoad, f.Progs[1].Type)
	assert.Equal(t, "R E", f.Progs[1].Flags.String())
	require.Len(t, f.Sections, 5)
	assert.Equal(t, ".shstrtab", f.Sections[img.Shstrndx].Name)

	text := f.Section(".text")
	require.NotNil(t, text)
	data, err := f.SectionData(text)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x90}, 32), data)

	bss := f.Section(".bss")
	require.NotNil(t, bss)
	data, err = f.SectionData(bss)
	require.NoError(t, err)
	assert.Empty(t, data)

	assert.Nil(t, f.Section(".data"))

	notes := f.SectionsByType(SectionNote)
	require.Len(t, notes, 1)
	assert.Equal(t, ".note.gnu", notes[0].Name)
	assert.Empty(t, f.SectionsByType(SectionDynamic))
}

func TestDecodeStopsAtFirstFailure(t *testing.T) {
	img := elftest.Executable().Build()
	binary.LittleEndian.PutUint32(img.Bytes[img.ProgEntry(1):], 8)
	binary.LittleEndian.PutUint32(img.Bytes[img.SectionEntry(1)+4:], 0x0c)

	f, err := Decode(img.Bytes)
	require.ErrorIs(t, err, ErrMalformed)
	require.Nil(t, f)

	var me *MalformedError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "p_type", me.Field)
	assert.Equal(t, img.ProgEntry(1), me.Offset)
}

func TestSectionDataOutOfBounds(t *testing.T) {
	img := elftest.Executable().Build()
	f, err := Decode(img.Bytes)
	require.NoError(t, err)

	text := *f.Section(".text")
	text.Size = uint64(len(img.Bytes))
	_, err = f.SectionData(&text)
	require.ErrorIs(t, err, ErrMalformed)

	text.Offset, text.Size = 16, ^uint64(0)
	_, err = f.SectionData(&text)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeConcurrent(t *testing.T) {
	img := elftest.Executable().Build()
	want, err := Decode(img.Bytes)
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		errs = make(chan error, 16)
	)
	for i := 0; i < cap(errs); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := Decode(img.Bytes)
			if err == nil && len(f.Sections) != len(want.Sections) {
				err = ErrMalformed
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
