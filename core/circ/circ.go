// core/circ/circ.go
package circ

// Package circ holds the 1-based circular coordinate arithmetic shared by
// every stage of the annotator. Positions on a genome of length n are the
// integers 1..n; any out-of-range value denotes the same base after wrapping.

// Wrap maps an arbitrary 1-based position onto 1..n.
func Wrap(pos, n int) int {
	return ((pos-1)%n+n)%n + 1
}

// Index maps a 1-based circular position to a 0-based slice index.
func Index(pos, n int) int {
	return Wrap(pos, n) - 1
}

// Dist returns the number of forward steps from one position to another,
// in 0..n-1.
func Dist(from, to, n int) int {
	return ((to-from)%n + n) % n
}

// SpanLen returns the length of the inclusive span start..end walked
// forward, wrapping through the origin when end precedes start.
func SpanLen(start, end, n int) int {
	return Dist(start, end, n) + 1
}

// Phase advances a reading-frame phase by the given number of bases.
// A feature trimmed by advance bases at its 5' end keeps the same frame
// when its phase moves to Phase(p, advance).
func Phase(p, advance int) int {
	return ((p-advance)%3 + 3) % 3
}
