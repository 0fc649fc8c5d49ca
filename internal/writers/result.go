// internal/writers/result.go
package writers

import (
	"io"

	"circanno-core/annotate"
	"circanno/internal/common"
	"circanno/internal/output"
)

type resultArgs struct {
	Sort   bool
	Header bool
	In     <-chan annotate.Result
}

func drainResults(ch <-chan annotate.Result) []annotate.Result {
	list := make([]annotate.Result, 0, 16)
	for res := range ch {
		list = append(list, res)
	}
	return list
}

func init() {
	// TEXT/TSV (stream or buffered+sort)
	RegisterResult(output.FormatText, func(w io.Writer, payload interface{}) error {
		args := payload.(resultArgs)
		if args.Sort {
			list := drainResults(args.In)
			common.SortResults(list)
			return output.WriteText(w, list, args.Header)
		}
		return output.StreamText(w, args.In, args.Header)
	})

	// JSON array of genome objects
	RegisterResult(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		args := payload.(resultArgs)
		list := drainResults(args.In)
		if args.Sort {
			common.SortResults(list)
		}
		return output.WriteJSON(w, list)
	})

	// JSONL streaming (one record per line, genome id inlined)
	RegisterResult(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		args := payload.(resultArgs)
		pipe, done := StartRecordJSONLWriter(w, 64)
		for res := range args.In {
			pipe <- res
		}
		close(pipe)
		return <-done
	})
}

// StartResultWriter spins up a writer goroutine for per-genome results.
func StartResultWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- annotate.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan annotate.Result, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteResult(format, out, resultArgs{Sort: sort, Header: header, In: in})
		// drain whatever a failed writer left behind so producers
		// never block
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
