// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK signals that ParseArgs consumed an --examples
// request. The app prints the quickstart and exits 0.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples frames a tool's quickstart: name header, the caller's
// body, then a pointer at full help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
