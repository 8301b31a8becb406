package elfit

import (
	"io"
)

type blank struct {
	io.Writer
	newlines int
}

// Clean returns a writer that squeezes runs of blank lines written to w
// into a single blank line.
func Clean(w io.Writer) io.Writer {
	return &blank{Writer: w}
}

func (b *blank) Write(bs []byte) (int, error) {
	xs := make([]byte, 0, len(bs))
	for _, c := range bs {
		if c == '\n' {
			b.newlines++
			if b.newlines > 2 {
				continue
			}
		} else {
			b.newlines = 0
		}
		xs = append(xs, c)
	}
	_, err := b.Writer.Write(xs)
	return len(bs), err
}
