// internal/templatesapp/app.go
package templatesapp

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"

	"circanno-core/feature"
	"circanno-core/template"

	"circanno/internal/templatescli"
	"circanno/internal/version"
	"circanno/internal/writers"
)

// Run derives placement templates from reference feature tables and
// prints them as TSV. The tool is single-shot, so there is no context
// plumbing and no worker pool.
func Run(argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := templatescli.NewFlagSet("circanno-templates")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := templatescli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "circanno-templates version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	refs := make([]*feature.RefGenome, 0, len(opts.FeatureFiles))
	for _, p := range opts.FeatureFiles {
		ref, err := feature.ReadTable(p)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		refs = append(refs, ref)
	}

	ts := template.Build(refs, template.BuildOptions{
		CountsFrac: opts.CountsFrac,
		Coverage:   opts.Coverage,
	})
	if err := template.Write(outw, ts); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return 0
}
