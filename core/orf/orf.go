// core/orf/orf.go
package orf

import (
	"circanno-core/circ"
	"circanno-core/feature"
	"circanno-core/genome"
)

// segment is one stop-delimited stretch of a reading frame, in linear
// frame coordinates. Open segments reached the feature end without a
// stop.
type segment struct {
	pos    int
	length int
	open   bool
}

// LongestORF rescans f's reading frame on g and snaps the feature to
// the longest stop-delimited segment. Stops are included in their
// segment. When the longest segment is open at the feature end, the
// frame is walked onward codon by codon, growing the feature until a
// stop is reached (included); a stop on the very first codon past the
// end aborts the extension. Moving the start forward resets the phase
// to zero.
func LongestORF(g *genome.Genome, f *feature.Feature) {
	n := g.Len()
	fEnd := f.Pos + f.Length - 1
	segStart := f.Pos + f.Phase
	var segs []segment
	for c := segStart; c+2 <= fEnd; c += 3 {
		if IsStop(g.Codon(c)) {
			segs = append(segs, segment{pos: segStart, length: c + 2 - segStart + 1})
			segStart = c + 3
		}
	}
	if segStart <= fEnd {
		segs = append(segs, segment{pos: segStart, length: fEnd - segStart + 1, open: true})
	}
	if len(segs) == 0 {
		return
	}

	best := segs[0]
	for _, s := range segs[1:] {
		if s.length > best.length {
			best = s
		}
	}

	movedForward := best.pos > f.Pos
	f.Pos = circ.Wrap(best.pos, n)
	f.Length = best.length
	if movedForward {
		f.Phase = 0
	}

	if !best.open {
		return
	}
	c := best.pos + 3*(best.length/3)
	for steps := 0; steps*3 < n; steps++ {
		stop := IsStop(g.Codon(c))
		if stop && steps == 0 {
			return
		}
		f.Length = c + 3 - best.pos
		if stop {
			return
		}
		c += 3
	}
}
