package appcore

import (
	"io"

	"circanno-core/annotate"

	"circanno/internal/projoutput"
	"circanno/internal/writers"
)

// ---------------- Result writer ----------------

type ResultWriterFactory struct {
	Format string
	Sort   bool
	Header bool
}

func NewResultWriterFactory(format string, sort, header bool) ResultWriterFactory {
	return ResultWriterFactory{Format: format, Sort: sort, Header: header}
}

func (w ResultWriterFactory) Start(out io.Writer, bufSize int) (chan<- annotate.Result, <-chan error) {
	return writers.StartResultWriter(out, w.Format, w.Sort, w.Header, bufSize)
}

// ---------------- Projection writer ----------------

type ProjectionWriterFactory struct {
	Format string
	Sort   bool
	Header bool
}

func NewProjectionWriterFactory(format string, sort, header bool) ProjectionWriterFactory {
	return ProjectionWriterFactory{Format: format, Sort: sort, Header: header}
}

func (w ProjectionWriterFactory) Start(out io.Writer, bufSize int) (chan<- projoutput.Projection, <-chan error) {
	return writers.StartProjectionWriter(out, w.Format, w.Sort, w.Header, bufSize)
}
