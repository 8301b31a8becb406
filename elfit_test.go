package elfit

import (
	"archive/tar"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/elfit/elf"
	"github.com/midbel/elfit/internal/elftest"
)

func objectNames(list []*Object) []string {
	var names []string
	for _, o := range list {
		names = append(names, o.Name())
	}
	return names
}

func relocatable(machine uint16) []byte {
	b := elftest.Builder{
		Class:   elftest.Class64,
		Little:  true,
		Type:    1,
		Machine: machine,
		Sections: []elftest.Section{
			{},
			{Name: ".text", Type: 1, Flags: 0x6, AddrAlign: 4, Data: []byte{0xc3, 0, 0, 0}},
		},
	}
	return b.Build().Bytes
}

func TestLoadObject(t *testing.T) {
	list, err := Load("bin/app", elftest.Executable().Build().Bytes)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bin/app", list[0].Name())
	assert.Equal(t, elf.TypeExec, list[0].Type)
	assert.NotNil(t, list[0].Section(".text"))
}

func TestLoadArchives(t *testing.T) {
	var (
		first  = relocatable(0x3e)
		second = relocatable(0xb7)
		readme = []byte("not an object...")
	)
	testcases := []struct {
		name string
		data []byte
		want []string
	}{
		{
			name: "ar",
			data: elftest.Ar(
				elftest.Member{Name: "first.o", Data: first},
				elftest.Member{Name: "README", Data: readme},
				elftest.Member{Name: "second.o", Data: second},
			),
			want: []string{"ar(first.o)", "ar(second.o)"},
		},
		{
			name: "cpio",
			data: elftest.Cpio(
				elftest.Member{Name: "bin/first", Data: first},
				elftest.Member{Name: "etc/motd", Data: readme},
				elftest.Member{Name: "bin/second", Data: second},
			),
			want: []string{"cpio(bin/first)", "cpio(bin/second)"},
		},
		{
			name: "deb",
			data: elftest.Deb(
				elftest.Member{Name: "./usr/bin/first", Data: first},
				elftest.Member{Name: "./usr/share/doc/README", Data: readme},
				elftest.Member{Name: "./usr/lib/second.so", Data: second},
			),
			want: []string{"deb(usr/bin/first)", "deb(usr/lib/second.so)"},
		},
		{
			name: "empty",
			data: elftest.Ar(elftest.Member{Name: "README", Data: readme}),
		},
	}
	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			list, err := Load(testcase.name, testcase.data)
			require.NoError(t, err)
			require.Equal(t, testcase.want, objectNames(list))
			if len(list) == 2 {
				assert.Equal(t, elf.MachineX86_64, list[0].Machine)
				assert.Equal(t, elf.MachineAARCH64, list[1].Machine)
			}
		})
	}
}

func TestLoadCompressed(t *testing.T) {
	exe := elftest.Executable().Build().Bytes
	initrd := elftest.Cpio(elftest.Member{Name: "init", Data: exe})

	tests := []struct {
		File string
		Data func(*testing.T) []byte
		Want []string
	}{
		{"vmlinux.gz", func(*testing.T) []byte { return elftest.Gzip(exe) }, []string{"vmlinux.gz"}},
		{"initrd.zst", func(*testing.T) []byte { return elftest.Zstd(initrd) }, []string{"initrd.zst(init)"}},
		{"initrd.xz", func(t *testing.T) []byte { return elftest.Xz(t, initrd) }, []string{"initrd.xz(init)"}},
		{"initrd.cpio.gz.zst", func(*testing.T) []byte { return elftest.Zstd(elftest.Gzip(initrd)) }, []string{"initrd.cpio.gz.zst(init)"}},
	}
	for _, tt := range tests {
		t.Run(tt.File, func(t *testing.T) {
			list, err := Load(tt.File, tt.Data(t))
			require.NoError(t, err)
			require.Equal(t, tt.Want, objectNames(list))
		})
	}

	_, err := Load("triple.gz", elftest.Gzip(elftest.Gzip(elftest.Gzip(exe))))
	require.ErrorIs(t, err, ErrUnknown)
}

// truncatedTar gives a tar archive with a single member whose header
// announces size bytes while only data follows.
func truncatedTar(name string, size int64, data []byte) []byte {
	var buf bytes.Buffer
	w := tar.NewWriter(&buf)
	w.WriteHeader(&tar.Header{
		Name:     name,
		Typeflag: tar.TypeReg,
		Mode:     0755,
		Size:     size,
	})
	w.Write(data)
	w.Flush()
	return buf.Bytes()
}

func TestLoadTruncatedMember(t *testing.T) {
	exe := elftest.Executable().Build().Bytes

	t.Run("deb", func(t *testing.T) {
		data := truncatedTar("./usr/bin/app", 1<<50, exe[:64])
		deb := elftest.DebData(".gz", elftest.Gzip(data))
		var (
			list []*Object
			err  error
		)
		require.NotPanics(t, func() {
			list, err = Load("app.deb", deb)
		})
		require.Error(t, err)
		require.Nil(t, list)
		assert.Contains(t, err.Error(), "app.deb(usr/bin/app)")
	})
	t.Run("ar", func(t *testing.T) {
		ar := elftest.Ar(elftest.Member{Name: "app.o", Data: exe})
		ar = ar[:len(ar)-len(exe)/2]
		list, err := Load("libapp.a", ar)
		require.Error(t, err)
		require.Nil(t, list)
	})
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load("notes.txt", []byte("plain text file"))
	require.ErrorIs(t, err, ErrUnknown)

	_, err = Load("empty", nil)
	require.ErrorIs(t, err, ErrUnknown)

	bad := relocatable(0x3e)
	binary.LittleEndian.PutUint16(bad[0x12:], 0xffff)

	_, err = Load("app", bad)
	require.ErrorIs(t, err, elf.ErrMalformed)

	ar := elftest.Ar(
		elftest.Member{Name: "good.o", Data: relocatable(0x3e)},
		elftest.Member{Name: "bad.o", Data: bad},
	)
	list, err := Load("libx.a", ar)
	require.ErrorIs(t, err, elf.ErrMalformed)
	require.Nil(t, list)
	assert.Contains(t, err.Error(), "libx.a(bad.o)")
}

func TestSummary(t *testing.T) {
	list, err := Load("app", elftest.Executable().Build().Bytes)
	require.NoError(t, err)

	want := Summary{
		Name:     "app",
		Arch:     "amd64",
		Class:    elf.Class64,
		Type:     elf.TypeExec,
		Entry:    0x401000,
		Segments: 2,
		Sections: 5,
		Memory:   0x3000,
		Disk:     32 + 12 + 32,
	}
	require.Equal(t, want, list[0].Summary())
}
