package elftest

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os/exec"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type Member struct {
	Name string
	Data []byte
}

// Ar builds a GNU style ar archive.
func Ar(members ...Member) []byte {
	var buf bytes.Buffer
	buf.WriteString("!<arch>\n")
	for _, m := range members {
		fmt.Fprintf(&buf, "%-16s%-12d%-6d%-6d%-8o%-10d`\n", m.Name+"/", 0, 0, 0, 0644, len(m.Data))
		buf.Write(m.Data)
		if len(m.Data)%2 == 1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// Cpio builds a newc cpio archive terminated by its trailer.
func Cpio(members ...Member) []byte {
	var buf bytes.Buffer
	write := func(ino int, name string, mode int, data []byte) {
		fmt.Fprintf(&buf, "070701%08X%08X%08X%08X%08X%08X%08X%08X%08X%08X%08X%08X%08X",
			ino, mode, 0, 0, 1, 0, len(data), 0, 0, 0, 0, len(name)+1, 0)
		buf.WriteString(name)
		buf.WriteByte(0)
		for buf.Len()%4 != 0 {
			buf.WriteByte(0)
		}
		buf.Write(data)
		for buf.Len()%4 != 0 {
			buf.WriteByte(0)
		}
	}
	for i, m := range members {
		write(i+1, m.Name, 0100644, m.Data)
	}
	write(0, "TRAILER!!!", 0, nil)
	for buf.Len()%512 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// Deb builds a debian package whose data archive holds the given members.
func Deb(members ...Member) []byte {
	return DebData(".gz", Gzip(Tar(members...)))
}

// DebData builds a debian package around an already encoded data archive.
// ext is the extension following data.tar.
func DebData(ext string, data []byte) []byte {
	control := Tarball(Member{Name: "./control", Data: []byte("Package: test\nVersion: 0.1.0\n")})
	return Ar(
		Member{Name: "debian-binary", Data: []byte("2.0\n")},
		Member{Name: "control.tar.gz", Data: control},
		Member{Name: "data.tar" + ext, Data: data},
	)
}

// Tarball builds a gzip compressed tar archive.
func Tarball(members ...Member) []byte {
	return Gzip(Tar(members...))
}

func Tar(members ...Member) []byte {
	var (
		buf bytes.Buffer
		t   = tar.NewWriter(&buf)
	)
	t.WriteHeader(&tar.Header{
		Name:     "./usr/",
		Typeflag: tar.TypeDir,
		Mode:     0755,
	})
	for _, m := range members {
		h := tar.Header{
			Name:     m.Name,
			Typeflag: tar.TypeReg,
			Mode:     0755,
			Size:     int64(len(m.Data)),
		}
		t.WriteHeader(&h)
		t.Write(m.Data)
	}
	t.Close()
	return buf.Bytes()
}

func Gzip(data []byte) []byte {
	var (
		buf bytes.Buffer
		z   = gzip.NewWriter(&buf)
	)
	z.Write(data)
	z.Close()
	return buf.Bytes()
}

func Zstd(data []byte) []byte {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

// Xz compresses data with the xz program. The test is skipped when xz is
// not installed.
func Xz(t testing.TB, data []byte) []byte {
	t.Helper()
	if _, err := exec.LookPath("xz"); err != nil {
		t.Skip("xz program not found")
	}
	var out bytes.Buffer
	cmd := exec.Command("xz", "--compress", "--stdout")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("xz: %s", err)
	}
	return out.Bytes()
}
