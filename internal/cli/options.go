// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"
	"io"

	"circanno/internal/clibase"
	"circanno/internal/cliutil"
)

type Options struct {
	clibase.Common

	// Annotation-specific
	TemplateFile string
	ConfigFile   string
	IR           string // A:B:LEN
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] -r ref.tsv=blocks.tsv -T templates.tsv target.fa\n", name)

		_, _ = fmt.Fprintln(out, "\nAnnotation:")
		_, _ = fmt.Fprintln(out, "  -T, --templates string      Feature template table [required]")
		_, _ = fmt.Fprintln(out, "      --config string         YAML annotation policy (start codons, tuning)")
		_, _ = fmt.Fprintln(out, "      --ir string             Inverted repeat as startA:startB:length")
	})
	return fs
}

func Parse() (Options, error) { return ParseArgs(NewFlagSet("circanno"), nil) }

// PrintExamples prints a tiny, focused quickstart for circanno.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "circanno", func(w io.Writer) {
		_, _ = fmt.Fprintln(out, "Annotate target plastomes from aligned reference annotations.")
		_, _ = fmt.Fprintln(out, "\nExample:")
		_, _ = fmt.Fprintln(out, "  circanno \\")
		_, _ = fmt.Fprintln(out, "    -r NC_000932.tsv=NC_000932-blocks.sam \\")
		_, _ = fmt.Fprintln(out, "    -T templates.tsv \\")
		_, _ = fmt.Fprintln(out, "    --output jsonl \\")
		_, _ = fmt.Fprintln(out, "    target-plastome.fna.gz")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	// Shared flags via clibase
	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	// Annotation flags
	fs.StringVar(&o.TemplateFile, "templates", "", "feature template table [required]")
	fs.StringVar(&o.TemplateFile, "T", "", "alias of --templates")
	fs.StringVar(&o.ConfigFile, "config", "", "YAML annotation policy file")
	fs.StringVar(&o.IR, "ir", "", "inverted repeat startA:startB:length")

	// Help / examples
	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	// Split & parse
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if c.Version {
		o.Common = c
		return o, nil
	}

	// Finalize header, expand pos, shared validation
	if err := clibase.AfterParse(fs, &c, noHeader, posArgs); err != nil {
		return o, err
	}
	// Annotation-specific validation
	if o.TemplateFile == "" {
		return o, fmt.Errorf("--templates is required")
	}

	// Embed shared options
	o.Common = c
	return o, nil
}
