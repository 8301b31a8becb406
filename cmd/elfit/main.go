package main

import (
	"os"
	"path/filepath"
	"text/template"

	"github.com/midbel/cli"
)

const helpText = `{{.Name}} decodes the structure of ELF objects, alone or inside archives (ar, deb, cpio).

Usage:

  {{.Name}} command [arguments]

The commands are:

{{range .Commands}}{{printf "  %-9s %s" .String .Short}}
{{end}}

Use {{.Name}} [command] -h for more information about its usage.
`

var commands = []*cli.Command{
	{
		Usage:   "show [-v] [-j jobs] [-w width] <file...>",
		Short:   "show header, segments and sections of ELF objects",
		Alias:   []string{"all"},
		Run:     runShow,
		Default: true,
	},
	{
		Usage: "probe <file...>",
		Short: "print the class of files without decoding them",
		Alias: []string{"class"},
		Run:   runProbe,
	},
	{
		Usage: "header [-v] [-j jobs] <file...>",
		Short: "show the file header of ELF objects",
		Alias: []string{"h"},
		Run:   runHeader,
	},
	{
		Usage: "segments [-v] [-j jobs] [-m] <file...>",
		Short: "show the program headers of ELF objects",
		Alias: []string{"programs", "l"},
		Run:   runSegments,
	},
	{
		Usage: "sections [-v] [-j jobs] [-w width] <file...>",
		Short: "show the section headers of ELF objects",
		Alias: []string{"S"},
		Run:   runSections,
	},
	{
		Usage: "list [-v] [-j jobs] <file...>",
		Short: "summarize the ELF objects found in files or archives",
		Alias: []string{"ls"},
		Run:   runList,
	},
}

func main() {
	cli.RunAndExit(commands, usage)
}

func usage() {
	data := struct {
		Name     string
		Commands []*cli.Command
	}{
		Name:     filepath.Base(os.Args[0]),
		Commands: commands,
	}
	t := template.Must(template.New("help").Parse(helpText))
	t.Execute(os.Stderr, data)

	os.Exit(2)
}
