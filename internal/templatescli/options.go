// internal/templatescli/options.go
package templatescli

import (
	"errors"
	"flag"
	"fmt"

	"circanno/internal/cliutil"
	"circanno/internal/version"
)

// Options for circanno-templates, the template-table builder. It takes
// reference feature tables only, so it does not share the annotating
// tools' flag surface.
type Options struct {
	FeatureFiles []string
	CountsFrac   float64
	Coverage     float64
	Version      bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}
		fmt.Fprintf(out, "%s – circular genome annotation toolkit\n\n", name)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s [options] ref1.tsv [ref2.tsv ...] > templates.tsv\n", name)
		fmt.Fprintln(out, "\nDerives one template per feature path: median length, counts and")
		fmt.Fprintln(out, "coverage thresholds. The table feeds circanno via --templates.")
		fmt.Fprintln(out, "\nOptions:")
		fmt.Fprintf(out, "      --counts-frac float     Counts threshold as a fraction of occurrences [%s]\n", def("counts-frac"))
		fmt.Fprintf(out, "      --coverage float        Coverage threshold copied into every template [%s]\n", def("coverage"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
	return fs
}

func Parse() (Options, error) { return ParseArgs(NewFlagSet("circanno-templates"), nil) }

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	fs.Float64Var(&o.CountsFrac, "counts-frac", 1, "counts threshold as a fraction of path occurrences [1]")
	fs.Float64Var(&o.Coverage, "coverage", 0.1, "coverage threshold copied into every template [0.1]")
	fs.BoolVar(&o.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&o.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}

	exp, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return o, err
	}
	o.FeatureFiles = exp
	if len(o.FeatureFiles) == 0 {
		return o, errors.New("at least one reference feature table is required")
	}
	if o.CountsFrac < 0 {
		return o, errors.New("--counts-frac must not be negative")
	}
	if o.Coverage < 0 || o.Coverage > 1 {
		return o, errors.New("--coverage must be between 0 and 1")
	}
	return o, nil
}
