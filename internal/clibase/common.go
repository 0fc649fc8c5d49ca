// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"circanno/internal/cliutil"
)

// Common holds CLI fields shared by circanno and circanno-project.
type Common struct {
	// Input
	References []string // features.tsv=blocks.{tsv,sam} bundles
	SeqFiles   []string // target FASTA files or '-'

	// Performance
	Threads int

	// Output
	Output           string // text|json|jsonl
	Sort             bool
	Header           bool
	NoRecordExitCode int

	// Misc
	Quiet   bool
	Version bool
}

// sliceValue appends each value to a *[]string (for repeatable flags)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// Register wires shared flags onto fs and returns a pointer to the "no-header"
// bool that the caller can use to set Common.Header = !noHeader after parsing.
func Register(fs *flag.FlagSet, c *Common) *bool {
	// Inputs
	refVal := &sliceValue{dst: &c.References}
	fs.Var(refVal, "reference", "reference bundle features.tsv=blocks.{tsv,sam} (repeatable)")
	fs.Var(refVal, "r", "alias of --reference")
	seqVal := &sliceValue{dst: &c.SeqFiles}
	fs.Var(seqVal, "sequences", "target FASTA file(s) (repeatable) or '-'")
	fs.Var(seqVal, "s", "alias of --sequences")

	// Performance
	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")

	// Output
	fs.StringVar(&c.Output, "output", "text", "output: text | json | jsonl [text]")
	fs.StringVar(&c.Output, "o", "text", "alias of --output")
	fs.BoolVar(&c.Sort, "sort", false, "sort outputs by genome id [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")
	fs.IntVar(&c.NoRecordExitCode, "no-record-exit-code", 1, "exit code when no records emitted [1]")

	// Misc
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress WARN diagnostics [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")

	return &noHeader
}

// AfterParse finalizes header and expands positionals, then runs shared validation.
func AfterParse(fs *flag.FlagSet, c *Common, noHeader *bool, posArgs []string) error {
	c.Header = !*noHeader

	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return err
		}
		c.SeqFiles = append(c.SeqFiles, exp...)
	}
	return Validate(c)
}

// Validate applies the CLI invariants shared by the annotating tools.
func Validate(c *Common) error {
	if len(c.References) == 0 {
		return errors.New("at least one --reference bundle is required")
	}
	for _, ref := range c.References {
		featPath, blockPath, ok := strings.Cut(ref, "=")
		if !ok || featPath == "" || blockPath == "" {
			return fmt.Errorf("bad --reference %q (want features.tsv=blocks.tsv)", ref)
		}
	}
	if len(c.SeqFiles) == 0 {
		return errors.New("at least one sequence file is required")
	}
	if c.Threads < 0 {
		return errors.New("--threads must not be negative")
	}
	switch c.Output {
	case "text", "json", "jsonl":
	default:
		return fmt.Errorf("invalid --output %q", c.Output)
	}
	if c.NoRecordExitCode < 0 || c.NoRecordExitCode > 255 {
		return errors.New("--no-record-exit-code must be between 0 and 255")
	}
	return nil
}
