// internal/app/app.go
package app

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
	"circanno-core/template"

	"circanno/internal/appconfig"
	"circanno/internal/appcore"
	"circanno/internal/cli"
	"circanno/internal/clibase"
	"circanno/internal/cmdutil"
	"circanno/internal/refio"
	"circanno/internal/version"
	"circanno/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("circanno")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
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

	opts, err := cli.ParseArgs(fs, argv)
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
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			cli.PrintExamples(outw)
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
		_, _ = fmt.Fprintf(outw, "circanno version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	cfg, err := appconfig.Load(opts.ConfigFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	templates, err := template.Read(opts.TemplateFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	sources, err := refio.LoadSources(opts.References)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	ir, err := refio.ParseIR(opts.IR)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	// Workers share stderr, so diagnostics serialize through one mutex.
	var diagMu sync.Mutex
	diagf := func(format string, a ...any) {
		diagMu.Lock()
		cmdutil.Warnf(stderr, opts.Quiet, format, a...)
		diagMu.Unlock()
	}
	ann := annotate.New(cfg.AnnotatorConfig(templates, diagf))

	coreOpts := appcore.Options{
		SeqFiles: opts.SeqFiles, Threads: opts.Threads,
		Quiet: opts.Quiet, NoRecordExitCode: opts.NoRecordExitCode,
	}
	writer := appcore.NewResultWriterFactory(opts.Output, opts.Sort, opts.Header)
	work := func(g *genome.Genome) (annotate.Result, error) {
		res, err := ann.Annotate(g, sources, ir)
		if err != nil {
			return annotate.Result{}, err
		}
		return *res, nil
	}
	count := func(r annotate.Result) int { return len(r.Records) }
	return appcore.Run[annotate.Result](parent, stdout, stderr, coreOpts, work, count, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
