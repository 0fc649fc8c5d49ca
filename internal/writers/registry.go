// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
)

// Writer registries (format → handler). Result and projection writer
// files register themselves in init() blocks.
var (
	ResultWriters     = map[string]func(w io.Writer, data interface{}) error{}
	ProjectionWriters = map[string]func(w io.Writer, data interface{}) error{}
)

// Register helpers (idempotent last-wins)
func RegisterResult(format string, fn func(io.Writer, interface{}) error) { ResultWriters[format] = fn }
func RegisterProjection(format string, fn func(io.Writer, interface{}) error) {
	ProjectionWriters[format] = fn
}

// Dispatch helpers used by factories / callers.
func WriteResult(format string, w io.Writer, payload interface{}) error {
	fn, ok := ResultWriters[format]
	if !ok {
		return fmt.Errorf("unknown record format %q (no writer registered)", format)
	}
	return fn(w, payload)
}

func WriteProjection(format string, w io.Writer, payload interface{}) error {
	fn, ok := ProjectionWriters[format]
	if !ok {
		return fmt.Errorf("unknown projection format %q (no writer registered)", format)
	}
	return fn(w, payload)
}
