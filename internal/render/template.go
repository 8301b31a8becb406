package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/midbel/elfit"
)

const headerText = `ELF Header ({{.Name}}):
  Magic:                             {{magic}}
  Class:                             {{.Class}}
  Data:                              {{.Endianness}}
  OS/ABI:                            {{.AbiOs}}
  ABI Version:                       {{.AbiVersion}}
  Type:                              {{.Type}}
  Machine:                           {{.Machine}}
  Architecture:                      {{arch .}}
  Entry point address:               {{hex .EntryAddr}}
  Start of program headers:          {{.ProgramAddr}} (bytes into file)
  Start of section headers:          {{.SectionAddr}} (bytes into file)
  Flags:                             {{hex .Flags}}
  Size of this header:               {{.Size}} (bytes)
  Size of program headers:           {{.PhSize}} (bytes)
  Number of program headers:         {{.PhCount}}
  Size of section headers:           {{.ShSize}} (bytes)
  Number of section headers:         {{.ShCount}}
  Section header string table index: {{.NamesIndex}}
`

var headerTemplate = template.Must(template.New("header").Funcs(funcs).Parse(headerText))

var funcs = template.FuncMap{
	"magic": func() string {
		return "7f 45 4c 46"
	},
	"arch": func(o *elfit.Object) string {
		return elfit.Arch(&o.FileHeader)
	},
	"hex": func(v interface{}) string {
		return fmt.Sprintf("%#x", v)
	},
}

func Header(w io.Writer, o *elfit.Object) error {
	return Execute(headerTemplate, w, o)
}

// Execute runs tpl and writes its output to w without its empty lines.
func Execute(tpl *template.Template, w io.Writer, ctx interface{}) error {
	var (
		pr, pw = io.Pipe()
		scan   = bufio.NewScanner(pr)
		errch  = make(chan error, 1)
	)
	go func() {
		err := tpl.Execute(pw, ctx)
		pw.CloseWithError(err)
		errch <- err
	}()
	for scan.Scan() {
		line := scan.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		io.WriteString(w, line)
		io.WriteString(w, "\n")
	}
	pr.Close()
	if err := <-errch; err != nil {
		return err
	}
	return scan.Err()
}
