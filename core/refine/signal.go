// core/refine/signal.go
package refine

// Signal is a circular per-position score the refinement algorithms
// read. Positions are 1-based and wrap.
type Signal interface {
	Len() int
	At(pos int) int
}
