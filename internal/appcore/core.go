// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"circanno-core/genome"

	"circanno/internal/cmdutil"
	"circanno/internal/pipeline"
	"circanno/internal/writers"
)

type Options struct {
	SeqFiles []string

	Threads int

	Quiet            bool
	NoRecordExitCode int
}

// WorkFunc computes one output value per target genome.
type WorkFunc[T any] func(*genome.Genome) (T, error)

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run drives a full tool invocation: stream genomes through the worker
// pool, hand each result to the writer goroutine, and map the failure
// modes onto exit codes. count extracts the record tally a value
// contributes toward the no-record exit.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	work WorkFunc[T],
	count func(T) int,
	wf WriterFactory[T],
) int {
	outw := bufio.NewWriter(stdout)

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, perr := cmdutil.RunStream[T](
		ctx,
		pipeline.Config{Threads: thr},
		o.SeqFiles,
		work,
		count,
		func(x T) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	if total == 0 {
		return o.NoRecordExitCode
	}
	return 0
}
