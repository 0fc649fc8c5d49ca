// core/orf/start.go
package orf

import (
	"circanno-core/circ"
	"circanno-core/feature"
	"circanno-core/genome"
)

// FindStart relocates a coding feature's 5' end to the nearest
// acceptable start codon. The in-frame codon at the current start is
// checked first and committed in place if it already opens the gene.
// Otherwise the frame is scanned codon by codon in both directions at
// once, each direction giving up when it meets a stop codon, and the
// candidate with the smaller squared distance wins, forward on ties.
// Committing moves the start onto the codon, preserves the feature
// end, and resets the phase to zero. Without any candidate the
// feature is left untouched and false is returned.
func FindStart(g *genome.Genome, f *feature.Feature, policy StartPolicy) bool {
	n := g.Len()
	gene := f.Path.Gene
	p0 := f.Pos + f.Phase
	if policy.IsStart(g.Codon(p0), gene) {
		commitStart(f, p0, n)
		return true
	}

	// The forward scan may not run past the feature end and the
	// backward scan may not grow the feature beyond the genome, though
	// in practice a stop codon ends either scan long before that.
	fwd, bwd := 0, 0
	scanFwd, scanBwd := true, true
	for d := 3; d < n && (scanFwd || scanBwd); d += 3 {
		if scanFwd && d >= f.Length {
			scanFwd = false
		}
		if scanBwd && d >= n-f.Length {
			scanBwd = false
		}
		if scanFwd {
			c := g.Codon(p0 + d)
			if IsStop(c) {
				scanFwd = false
			} else if policy.IsStart(c, gene) {
				fwd = d
				scanFwd = false
			}
		}
		if scanBwd {
			c := g.Codon(p0 - d)
			if IsStop(c) {
				scanBwd = false
			} else if policy.IsStart(c, gene) {
				bwd = d
				scanBwd = false
			}
		}
	}

	switch {
	case fwd == 0 && bwd == 0:
		return false
	case fwd == 0:
		commitStart(f, p0-bwd, n)
	case bwd == 0:
		commitStart(f, p0+fwd, n)
	case bwd*bwd < fwd*fwd:
		commitStart(f, p0-bwd, n)
	default:
		commitStart(f, p0+fwd, n)
	}
	return true
}

func commitStart(f *feature.Feature, start, n int) {
	end := circ.Wrap(f.Pos+f.Length-1, n)
	f.Pos = circ.Wrap(start, n)
	f.Length = circ.SpanLen(f.Pos, end, n)
	f.Phase = 0
}
