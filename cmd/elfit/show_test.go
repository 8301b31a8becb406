package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/midbel/cli"
	"github.com/stretchr/testify/require"

	"github.com/midbel/elfit"
	"github.com/midbel/elfit/internal/elftest"
)

var errClosed = errors.New("stdout closed")

type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) {
	return 0, errClosed
}

func writeExecutable(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.WriteFile(file, elftest.Executable().Build().Bytes, 0o755))
	return file
}

func withStdout(t *testing.T, w io.Writer) {
	t.Helper()
	prev := stdout
	stdout = w
	t.Cleanup(func() { stdout = prev })
}

func TestPrintObjectsReportsWriteError(t *testing.T) {
	withStdout(t, closedWriter{})
	file := writeExecutable(t)

	err := printObjects([]string{file}, 1, func(w io.Writer, o *elfit.Object) error {
		_, err := io.WriteString(w, o.Name()+"\n")
		return err
	})
	require.ErrorIs(t, err, errClosed)
}

func TestRunProbeReportsWriteError(t *testing.T) {
	withStdout(t, closedWriter{})
	file := writeExecutable(t)

	err := runProbe(new(cli.Command), []string{file})
	require.ErrorIs(t, err, errClosed)
}
