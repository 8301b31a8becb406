// Package archive walks the containers in which ELF objects are usually
// shipped: static libraries, debian packages, cpio images and their
// compressed forms.
package archive

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/midbel/tape/ar"
	"github.com/pkg/errors"
	"github.com/smira/go-xz"
)

// WalkFunc is called for every regular member of an archive. r gives at
// most size bytes; what fn leaves unread is skipped.
type WalkFunc func(name string, size int64, r io.Reader) error

type Kind uint8

const (
	Unknown Kind = iota
	Ar
	Cpio
	Gzip
	Zstd
	Xz
)

func (k Kind) String() string {
	switch k {
	case Ar:
		return "ar"
	case Cpio:
		return "cpio"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Xz:
		return "xz"
	default:
		return "unknown"
	}
}

// Compressed reports whether k is a compression format rather than an
// archive.
func (k Kind) Compressed() bool {
	return k == Gzip || k == Zstd || k == Xz
}

var (
	cpioMagic    = []byte("070701")
	cpioCrcMagic = []byte("070702")
	gzipMagic    = []byte{0x1f, 0x8b}
	zstdMagic    = []byte{0x28, 0xb5, 0x2f, 0xfd}
	xzMagic      = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Detect gives the kind of container starting with magic.
func Detect(magic []byte) Kind {
	switch {
	case bytes.HasPrefix(magic, ar.Magic):
		return Ar
	case bytes.HasPrefix(magic, cpioMagic), bytes.HasPrefix(magic, cpioCrcMagic):
		return Cpio
	case bytes.HasPrefix(magic, gzipMagic):
		return Gzip
	case bytes.HasPrefix(magic, zstdMagic):
		return Zstd
	case bytes.HasPrefix(magic, xzMagic):
		return Xz
	default:
		return Unknown
	}
}

// Decompress wraps r with the reader of a compressed kind.
func Decompress(r io.Reader, k Kind) (io.Reader, error) {
	switch k {
	case Gzip:
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "gzip")
		}
		return z, nil
	case Zstd:
		z, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		return z.IOReadCloser(), nil
	case Xz:
		z, err := xz.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "xz")
		}
		return z, nil
	default:
		return nil, errors.Errorf("%s: not a compression format", k)
	}
}

// Walk calls fn for each member of the archive of kind k read from r.
func Walk(r io.Reader, k Kind, fn WalkFunc) error {
	switch k {
	case Ar:
		return WalkAr(r, fn)
	case Cpio:
		return WalkCpio(r, fn)
	default:
		return errors.Errorf("%s: not an archive format", k)
	}
}

func visit(name string, size int64, r io.Reader, fn WalkFunc) error {
	lr := io.LimitReader(r, size)
	if err := fn(name, size, lr); err != nil {
		return err
	}
	_, err := io.Copy(io.Discard, lr)
	return err
}
