package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/elfit"
	"github.com/midbel/elfit/elf"
	"github.com/midbel/elfit/internal/elftest"
)

func executable(t *testing.T) *elfit.Object {
	t.Helper()
	list, err := elfit.Load("bin/app", elftest.Executable().Build().Bytes)
	require.NoError(t, err)
	require.Len(t, list, 1)
	return list[0]
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Header(&buf, executable(t)))

	str := buf.String()
	for _, want := range []string{
		"ELF Header (bin/app):",
		"ELF64",
		"little endian",
		"EXEC (Executable file)",
		"Advanced Micro Devices X86-64",
		"amd64",
		"Entry point address:               0x401000",
		"Number of section headers:         5",
	} {
		assert.Contains(t, str, want)
	}
}

func TestSegments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Segments(&buf, executable(t), false))
	str := buf.String()
	assert.Contains(t, str, "PHDR")
	assert.Contains(t, str, "LOAD")
	assert.Contains(t, str, "R E")
	assert.NotContains(t, str, "Section to Segment mapping")

	buf.Reset()
	require.NoError(t, Segments(&buf, executable(t), true))
	str = buf.String()
	assert.Contains(t, str, "Section to Segment mapping")
	assert.Contains(t, str, "  01     .text .note.gnu .bss\n")
	assert.Contains(t, str, "  00\n")
}

func TestSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Sections(&buf, executable(t), 0))
	str := buf.String()
	assert.Contains(t, str, ".note.gnu")
	assert.Contains(t, str, "NOBITS")
	assert.Contains(t, str, "256 B")
	assert.Contains(t, str, "AX")

	buf.Reset()
	require.NoError(t, Sections(&buf, executable(t), 8))
	str = buf.String()
	assert.Contains(t, str, ".no[...]")
	assert.NotContains(t, str, ".note.gnu")
	assert.Contains(t, str, ".text")
}

func TestCutName(t *testing.T) {
	assert.Equal(t, ".shstrtab", cutName(".shstrtab", 0))
	assert.Equal(t, ".shstrtab", cutName(".shstrtab", 9))
	assert.Equal(t, ".sh[...]", cutName(".shstrtab", 8))
	assert.Equal(t, ".shstrtab", cutName(".shstrtab", 5))

	assert.Equal(t, ".données", cutName(".données", 8))
	assert.Equal(t, ".don[...]", cutName(".données.rel", 9))
	assert.Equal(t, "é[...]", cutName("éééééééé", 6))
}

func TestSummaries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summaries(&buf, []elfit.Summary{executable(t).Summary()}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	fields := strings.Fields(lines[1])
	require.Equal(t, []string{"bin/app", "amd64", "ELF64", "EXEC", "0x401000", "2", "5", "12", "KiB", "76", "B"}, fields)
}

func TestProbe(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Probe(&buf, "app", elf.Class32))
	require.Equal(t, "app: ELF32\n", buf.String())
}

func TestExecute(t *testing.T) {
	var (
		buf bytes.Buffer
		tpl = template.Must(template.New("test").Parse("first\n\n{{if .}}second{{end}}\n   \nthird\n"))
	)
	require.NoError(t, Execute(tpl, &buf, true))
	require.Equal(t, "first\nsecond\nthird\n", buf.String())

	fail := template.Must(template.New("fail").Funcs(template.FuncMap{
		"fail": func() (string, error) { return "", errors.New("boom") },
	}).Parse("line\n{{fail}}\n"))
	buf.Reset()
	require.Error(t, Execute(fail, &buf, nil))
}
