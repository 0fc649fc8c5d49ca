// Package pipeline streams FASTA records through a worker pool and
// calls a visit callback with each genome's output.
//
// The work function is the only contract; any per-genome computation
// (full annotation, raw projection, fakes in tests) slots in.
package pipeline
