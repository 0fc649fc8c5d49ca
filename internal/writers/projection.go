// internal/writers/projection.go
package writers

import (
	"io"

	"circanno/internal/common"
	"circanno/internal/output"
	"circanno/internal/projoutput"
)

type projectionArgs struct {
	Sort   bool
	Header bool
	In     <-chan projoutput.Projection
}

func drainProjections(ch <-chan projoutput.Projection) []projoutput.Projection {
	list := make([]projoutput.Projection, 0, 16)
	for p := range ch {
		list = append(list, p)
	}
	return list
}

func init() {
	// TEXT/TSV (stream or buffered+sort)
	RegisterProjection(output.FormatText, func(w io.Writer, payload interface{}) error {
		args := payload.(projectionArgs)
		if args.Sort {
			list := drainProjections(args.In)
			common.SortProjections(list)
			return projoutput.WriteText(w, list, args.Header)
		}
		return projoutput.StreamText(w, args.In, args.Header)
	})

	// JSONL streaming
	RegisterProjection(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		args := payload.(projectionArgs)
		pipe, done := StartProjectionJSONLWriter(w, 64)
		for p := range args.In {
			pipe <- p
		}
		close(pipe)
		return <-done
	})
}

// StartProjectionWriter spins up a writer goroutine for projection dumps.
func StartProjectionWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- projoutput.Projection, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan projoutput.Projection, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteProjection(format, out, projectionArgs{Sort: sort, Header: header, In: in})
		// drain whatever a failed writer left behind so producers
		// never block
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
