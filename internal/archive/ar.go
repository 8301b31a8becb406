package archive

import (
	"io"
	"strings"

	"github.com/midbel/tape/ar"
	"github.com/pkg/errors"
)

// WalkAr walks the members of an ar archive. The symbol and long name
// tables of static libraries are skipped. An archive whose first member is
// debian-binary is walked as a debian package.
func WalkAr(r io.Reader, fn WalkFunc) error {
	a, err := ar.NewReader(r)
	if err != nil {
		return errors.Wrap(err, "ar")
	}
	for i := 0; ; i++ {
		h, err := a.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "ar")
		}
		var (
			name = strings.TrimSuffix(h.Filename, "/")
			size = int64(h.Size)
		)
		if i == 0 && name == debianFile {
			return walkDebian(a, size, fn)
		}
		if skipMember(name) {
			if _, err := io.Copy(io.Discard, io.LimitReader(a, size)); err != nil {
				return err
			}
			continue
		}
		if err := visit(name, size, a, fn); err != nil {
			return err
		}
	}
}

func skipMember(name string) bool {
	return name == "" || name == "/" || name == "/SYM64" || strings.HasPrefix(name, "__.SYMDEF")
}
