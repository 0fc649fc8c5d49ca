// internal/projectcli/options.go
package projectcli

import (
	"flag"
	"fmt"
	"io"

	"circanno/internal/clibase"
	"circanno/internal/cliutil"
)

// Options for circanno-project, the raw projection dump. The shared
// surface is the whole surface; json is rejected because fragment dumps
// are line oriented.
type Options struct {
	clibase.Common
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] -r ref.tsv=blocks.tsv target.fa\n", name)
		_, _ = fmt.Fprintln(out, "\nDumps every projected fragment before placement and refinement.")
	})
	return fs
}

func Parse() (Options, error) { return ParseArgs(NewFlagSet("circanno-project"), nil) }

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	fs.BoolVar(&help, "h", false, "show this help [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if c.Version {
		o.Common = c
		return o, nil
	}

	if err := clibase.AfterParse(fs, &c, noHeader, posArgs); err != nil {
		return o, err
	}
	if c.Output == "json" {
		return o, fmt.Errorf("invalid --output %q (projection dumps support text or jsonl)", c.Output)
	}

	o.Common = c
	return o, nil
}
