package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/midbel/tape/ar"
	"github.com/pkg/errors"
)

const (
	debianFile = "debian-binary"
	debVersion = "2.0\n"
	debControl = "control.tar"
	debData    = "data.tar"
)

func walkDebian(r *ar.Reader, size int64, fn WalkFunc) error {
	if err := readDebian(io.LimitReader(r, size)); err != nil {
		return err
	}
	for {
		h, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errors.Errorf("deb: %s not found", debData)
			}
			return errors.Wrap(err, "deb")
		}
		var (
			name = strings.TrimSuffix(h.Filename, "/")
			body = io.LimitReader(r, int64(h.Size))
		)
		if !strings.HasPrefix(name, debData) {
			if _, err := io.Copy(io.Discard, body); err != nil {
				return err
			}
			continue
		}
		z, err := openData(body, path.Ext(name))
		if err != nil {
			return errors.Wrapf(err, "deb: %s", name)
		}
		if c, ok := z.(io.Closer); ok {
			defer c.Close()
		}
		return WalkTar(z, fn)
	}
}

func readDebian(r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if buf.String() != debVersion {
		return errors.Errorf("invalid debian version: got %q but expected %q", buf.String(), debVersion)
	}
	return nil
}

func openData(r io.Reader, ext string) (io.Reader, error) {
	switch ext {
	case ".tar":
		return r, nil
	case ".gz":
		return Decompress(r, Gzip)
	case ".zst":
		return Decompress(r, Zstd)
	case ".xz":
		return Decompress(r, Xz)
	default:
		return nil, errors.Errorf("unsupported compression %q", ext)
	}
}

// WalkTar walks the regular files of a tar archive. Names lose their
// leading "./".
func WalkTar(r io.Reader, fn WalkFunc) error {
	t := tar.NewReader(r)
	for {
		h, err := t.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "tar")
		}
		if h.Typeflag != tar.TypeReg {
			continue
		}
		if err := visit(strings.TrimPrefix(h.Name, "./"), h.Size, t, fn); err != nil {
			return err
		}
	}
}
