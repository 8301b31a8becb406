package archive

import (
	"io"

	"github.com/midbel/tape/cpio"
	"github.com/pkg/errors"
)

const cpioTrailer = "TRAILER!!!"

// WalkCpio walks a newc cpio archive up to its trailer.
func WalkCpio(r io.Reader, fn WalkFunc) error {
	cp := cpio.NewReader(r)
	for {
		h, err := cp.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "cpio")
		}
		if h.Filename == cpioTrailer {
			return nil
		}
		if err := visit(h.Filename, int64(h.Size), cp, fn); err != nil {
			return err
		}
	}
}
