// internal/projectapp/app.go
package projectapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"circanno-core/annotate"
	"circanno-core/genome"

	"circanno/internal/appcore"
	"circanno/internal/cmdutil"
	"circanno/internal/projectcli"
	"circanno/internal/projoutput"
	"circanno/internal/refio"
	"circanno/internal/version"
	"circanno/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := projectcli.NewFlagSet("circanno-project")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = projectcli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := projectcli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "circanno-project version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	sources, err := refio.LoadSources(opts.References)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	var diagMu sync.Mutex
	diagf := func(format string, a ...any) {
		diagMu.Lock()
		cmdutil.Warnf(stderr, opts.Quiet, format, a...)
		diagMu.Unlock()
	}
	ann := annotate.New(annotate.Config{Diagf: diagf})

	coreOpts := appcore.Options{
		SeqFiles: opts.SeqFiles, Threads: opts.Threads,
		Quiet: opts.Quiet, NoRecordExitCode: opts.NoRecordExitCode,
	}
	writer := appcore.NewProjectionWriterFactory(opts.Output, opts.Sort, opts.Header)
	work := func(g *genome.Genome) (projoutput.Projection, error) {
		frames, err := ann.Project(g, sources)
		if err != nil {
			return projoutput.Projection{}, err
		}
		return projoutput.Projection{GenomeID: g.ID, Length: g.Len(), Fwd: frames[0], Rev: frames[1]}, nil
	}
	count := func(p projoutput.Projection) int { return p.Rows() }
	return appcore.Run[projoutput.Projection](parent, stdout, stderr, coreOpts, work, count, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
