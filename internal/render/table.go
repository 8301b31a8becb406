// Package render prints decoded objects in the layout of readelf.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/midbel/textwrap"

	"github.com/midbel/elfit"
	"github.com/midbel/elfit/elf"
)

const ellipsis = "[...]"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 12, 2, 2, ' ', 0)
}

func Segments(w io.Writer, o *elfit.Object, mapping bool) error {
	ws := newTable(w)
	fmt.Fprintf(ws, "Program Headers (%s):\n", o.Name())
	fmt.Fprintln(ws, "  Type\tOffset\tVirtAddr\tPhysAddr\tFileSiz\tMemSiz\tFlg\tAlign")
	for _, p := range o.Progs {
		fmt.Fprintf(ws, "  %s\t%#x\t%#x\t%#x\t%#x\t%#x\t%s\t%#x\n",
			p.Type,
			p.Offset,
			p.VirtualAddr,
			p.PhysicalAddr,
			p.SegmentSizeFile,
			p.SegmentSizeMem,
			p.Flags,
			p.Alignment,
		)
	}
	if err := ws.Flush(); err != nil {
		return err
	}
	if !mapping || len(o.Progs) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, " Section to Segment mapping:")
	for _, seg := range o.Mapping() {
		prefix := fmt.Sprintf("  %02d     ", seg.Index)
		lines := wrapLines(strings.Join(seg.Sections, " "))
		if len(lines) == 0 {
			fmt.Fprintln(w, strings.TrimRight(prefix, " "))
			continue
		}
		for i, line := range lines {
			if i > 0 {
				prefix = strings.Repeat(" ", len(prefix))
			}
			fmt.Fprintf(w, "%s%s\n", prefix, line)
		}
	}
	return nil
}

func wrapLines(str string) []string {
	if str == "" {
		return nil
	}
	var (
		lines []string
		scan  = bufio.NewScanner(strings.NewReader(textwrap.Wrap(str)))
	)
	for scan.Scan() {
		lines = append(lines, scan.Text())
	}
	return lines
}

// Sections prints the section table. Names longer than width are cut, a
// width of zero keeps them whole.
func Sections(w io.Writer, o *elfit.Object, width int) error {
	ws := newTable(w)
	fmt.Fprintf(ws, "Section Headers (%s):\n", o.Name())
	fmt.Fprintln(ws, "  [Nr]\tName\tType\tAddress\tOffset\tSize\tEntSize\tFlags\tLink\tInfo\tAlign")
	for i, s := range o.Sections {
		fmt.Fprintf(ws, "  [%2d]\t%s\t%s\t%#x\t%#x\t%s\t%#x\t%s\t%d\t%d\t%d\n",
			i,
			cutName(s.Name, width),
			s.Type,
			s.Addr,
			s.Offset,
			humanize.IBytes(s.Size),
			s.EntSize,
			s.Flags,
			s.Link,
			s.Info,
			s.AddrAlign,
		)
	}
	return ws.Flush()
}

// cutName counts width in characters.
func cutName(name string, width int) string {
	if width <= len(ellipsis) || utf8.RuneCountInString(name) <= width {
		return name
	}
	runes := []rune(name)
	return string(runes[:width-len(ellipsis)]) + ellipsis
}

func Probe(w io.Writer, file string, class elf.Class) error {
	_, err := fmt.Fprintf(w, "%s: %s\n", file, class)
	return err
}

// Summaries prints one line per object.
func Summaries(w io.Writer, list []elfit.Summary) error {
	ws := newTable(w)
	fmt.Fprintln(ws, "Name\tArch\tClass\tType\tEntry\tSegments\tSections\tMemory\tDisk")
	for _, s := range list {
		fmt.Fprintf(ws, "%s\t%s\t%s\t%s\t%#x\t%d\t%d\t%s\t%s\n",
			s.Name,
			s.Arch,
			s.Class,
			typeName(s.Type),
			s.Entry,
			s.Segments,
			s.Sections,
			humanize.IBytes(s.Memory),
			humanize.IBytes(s.Disk),
		)
	}
	return ws.Flush()
}

// typeName keeps the short form of the object type, EXEC instead of
// "EXEC (Executable file)".
func typeName(t elf.Type) string {
	str := t.String()
	if x := strings.IndexByte(str, ' '); x > 0 {
		return str[:x]
	}
	return str
}
