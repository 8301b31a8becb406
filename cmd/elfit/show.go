package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log/level"
	"github.com/midbel/cli"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/midbel/elfit"
	"github.com/midbel/elfit/elf"
	"github.com/midbel/elfit/internal/render"
)

var stdout io.Writer = os.Stdout

func runShow(cmd *cli.Command, args []string) error {
	var (
		opts  = registerOptions(cmd)
		width = cmd.Flag.Int("w", envInt(EnvWidth, 0), "maximum width of section names")
	)
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	opts.setup()
	return printObjects(cmd.Flag.Args(), opts.Jobs, func(w io.Writer, o *elfit.Object) error {
		if err := render.Header(w, o); err != nil {
			return err
		}
		fmt.Fprintln(w)
		if err := render.Segments(w, o, true); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return render.Sections(w, o, *width)
	})
}

func runHeader(cmd *cli.Command, args []string) error {
	opts := registerOptions(cmd)
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	opts.setup()
	return printObjects(cmd.Flag.Args(), opts.Jobs, render.Header)
}

func runSegments(cmd *cli.Command, args []string) error {
	var (
		opts    = registerOptions(cmd)
		mapping = cmd.Flag.Bool("m", false, "show the section to segment mapping")
	)
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	opts.setup()
	return printObjects(cmd.Flag.Args(), opts.Jobs, func(w io.Writer, o *elfit.Object) error {
		return render.Segments(w, o, *mapping)
	})
}

func runSections(cmd *cli.Command, args []string) error {
	var (
		opts  = registerOptions(cmd)
		width = cmd.Flag.Int("w", envInt(EnvWidth, 0), "maximum width of section names")
	)
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	opts.setup()
	return printObjects(cmd.Flag.Args(), opts.Jobs, func(w io.Writer, o *elfit.Object) error {
		return render.Sections(w, o, *width)
	})
}

func runList(cmd *cli.Command, args []string) error {
	opts := registerOptions(cmd)
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	opts.setup()
	list, err := loadFiles(cmd.Flag.Args(), opts.Jobs)
	if err != nil {
		return err
	}
	var sums []elfit.Summary
	for _, o := range list {
		sums = append(sums, o.Summary())
	}
	return render.Summaries(stdout, sums)
}

func runProbe(cmd *cli.Command, args []string) error {
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	for _, file := range cmd.Flag.Args() {
		class, err := probeFile(file)
		if err != nil {
			return err
		}
		if err := render.Probe(stdout, file, class); err != nil {
			return err
		}
	}
	return nil
}

func probeFile(file string) (elf.Class, error) {
	r, err := os.Open(file)
	if err != nil {
		return elf.ClassUnknown, err
	}
	defer r.Close()

	magic := make([]byte, 16)
	n, err := io.ReadFull(r, magic)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return elf.ClassUnknown, err
	}
	return elf.PeekClass(magic[:n]), nil
}

func printObjects(files []string, jobs int, show func(io.Writer, *elfit.Object) error) error {
	list, err := loadFiles(files, jobs)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(elfit.Clean(stdout))
	for i, o := range list {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := show(w, o); err != nil {
			return err
		}
	}
	return w.Flush()
}

// loadFiles decodes files concurrently and gives their objects in the order
// of files.
func loadFiles(files []string, jobs int) ([]*elfit.Object, error) {
	if len(files) == 0 {
		return nil, errors.New("no file given")
	}
	var (
		g    errgroup.Group
		objs = make([][]*elfit.Object, len(files))
	)
	g.SetLimit(jobs)
	for i := range files {
		i := i
		g.Go(func() error {
			list, err := elfit.Open(files[i])
			if err != nil {
				level.Error(logger).Log("file", files[i], "err", err)
				return err
			}
			if len(list) == 0 {
				level.Warn(logger).Log("file", files[i], "msg", "no ELF object found")
			}
			for _, o := range list {
				level.Debug(logger).Log("file", o.Path, "member", o.Member, "class", o.Class, "sections", len(o.Sections))
			}
			objs[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all []*elfit.Object
	for _, list := range objs {
		all = append(all, list...)
	}
	return all, nil
}
