// Package elfit finds and decodes the ELF objects of a file, whether the
// file is an object itself or a container of objects.
package elfit

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/midbel/elfit/elf"
	"github.com/midbel/elfit/internal/archive"
)

var ErrUnknown = errors.New("unrecognized file type")

// maxDepth bounds the number of compression layers removed before an object
// or an archive is found.
const maxDepth = 2

type Object struct {
	Path   string
	Member string
	*elf.File
}

// Name gives the path of the object, followed by its member in parenthesis
// when the object comes from an archive.
func (o *Object) Name() string {
	if o.Member == "" {
		return o.Path
	}
	return o.Path + "(" + o.Member + ")"
}

func Open(file string) ([]*Object, error) {
	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Load(file, buf)
}

// Load decodes the object in buf or, when buf holds an archive, every object
// it contains. Members that are not ELF objects are skipped but a member
// with the ELF magic that fails to decode aborts the whole load.
func Load(file string, buf []byte) ([]*Object, error) {
	return load(file, buf, 0)
}

func load(file string, buf []byte, depth int) ([]*Object, error) {
	if bytes.HasPrefix(buf, elf.Magic) {
		f, err := elf.Decode(buf)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", file)
		}
		return []*Object{{Path: file, File: f}}, nil
	}
	switch k := archive.Detect(buf); {
	case k.Compressed() && depth < maxDepth:
		r, err := archive.Decompress(bytes.NewReader(buf), k)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", file)
		}
		data, err := io.ReadAll(r)
		if c, ok := r.(io.Closer); ok {
			if cerr := c.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%s: %s", file, k)
		}
		return load(file, data, depth+1)
	case k == archive.Ar || k == archive.Cpio:
		return loadArchive(file, bytes.NewReader(buf), k)
	default:
		return nil, errors.Wrapf(ErrUnknown, "%s", file)
	}
}

func loadArchive(file string, r io.Reader, k archive.Kind) ([]*Object, error) {
	var list []*Object
	err := archive.Walk(r, k, func(name string, size int64, r io.Reader) error {
		magic := make([]byte, len(elf.Magic))
		if _, err := io.ReadFull(r, magic); err != nil || !bytes.Equal(magic, elf.Magic) {
			return nil
		}
		buf, err := io.ReadAll(io.MultiReader(bytes.NewReader(magic), r))
		if err != nil {
			return errors.Wrapf(err, "%s(%s)", file, name)
		}
		if int64(len(buf)) < size {
			return errors.Wrapf(io.ErrUnexpectedEOF, "%s(%s)", file, name)
		}
		f, err := elf.Decode(buf)
		if err != nil {
			return errors.Wrapf(err, "%s(%s)", file, name)
		}
		list = append(list, &Object{Path: file, Member: name, File: f})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
