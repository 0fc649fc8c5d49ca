// core/annotate/model.go
package annotate

import (
	"sort"

	"circanno-core/circ"
	"circanno-core/feature"
	"circanno-core/genome"
	"circanno-core/orf"
	"circanno-core/project"
	"circanno-core/refine"
	"circanno-core/stacks"
)

// Model is one gene instance on one strand: the consecutive features
// sharing a gene name, kept in transcription order.
type Model struct {
	Gene     string
	Features []*feature.Feature
}

// Exons counts the model's non-intron features.
func (m *Model) Exons() int {
	n := 0
	for _, f := range m.Features {
		if !f.Path.IsIntron() {
			n++
		}
	}
	return n
}

// Span returns the bases from the model's first start to its furthest
// end, walked forward on a genome of length n.
func (m *Model) Span(n int) int {
	if len(m.Features) == 0 {
		return 0
	}
	base := m.Features[0].Pos
	maxEnd := base - 1
	for _, f := range m.Features {
		end := base + circ.Dist(base, f.Pos, n) + f.Length - 1
		if end > maxEnd {
			maxEnd = end
		}
	}
	return maxEnd - base + 1
}

// buildModels groups features into gene models: sorted by position,
// consecutive features with the same gene name belong together.
func buildModels(feats []*feature.Feature) []*Model {
	sort.SliceStable(feats, func(i, j int) bool {
		if feats[i].Pos != feats[j].Pos {
			return feats[i].Pos < feats[j].Pos
		}
		return feats[i].Path.String() < feats[j].Path.String()
	})
	var out []*Model
	for _, f := range feats {
		if k := len(out) - 1; k >= 0 && out[k].Gene == f.Path.Gene {
			out[k].Features = append(out[k].Features, f)
			continue
		}
		out = append(out, &Model{Gene: f.Path.Gene, Features: []*feature.Feature{f}})
	}
	return out
}

// refineModel finalizes one model against its strand frame: features
// order by midpoint, the 3'-most coding feature gets its phase voted
// and its reading frame snapped to the longest ORF, interior
// boundaries reconcile walking 3'→5' with the fulcrum arbitrating
// small gaps, coding phases get voted and checked for frame
// continuity, and the 5'-most coding feature is moved onto a start
// codon.
func (a *Annotator) refineModel(m *Model, g *genome.Genome, set *stacks.Set, byPath map[string][]project.Annotation) {
	n := g.Len()
	sort.SliceStable(m.Features, func(i, j int) bool {
		return 2*m.Features[i].Pos+m.Features[i].Length < 2*m.Features[j].Pos+m.Features[j].Length
	})

	last := m.Features[len(m.Features)-1]
	var prevCoding *feature.Feature
	if last.Path.IsCDS() {
		last.Phase = a.phaseVote(g.ID, last, byPath[last.Path.String()], n)
		if !a.cfg.NoORF[m.Gene] {
			orf.LongestORF(g, last)
		}
		prevCoding = last
	}

	for i := len(m.Features) - 2; i >= 0; i-- {
		f, next := m.Features[i], m.Features[i+1]
		gap := boundaryGap(f, next, n)
		if gap != 0 {
			if abs(gap) < a.cfg.MaxGap {
				a.splitAtFulcrum(f, next, set, n)
			} else {
				a.cfg.Diagf("%s: %s and %s not adjacent (gap %d)", g.ID, f.Path, next.Path, gap)
			}
		}
		if f.Path.IsCDS() {
			f.Phase = a.phaseVote(g.ID, f, byPath[f.Path.String()], n)
			if prevCoding != nil && (prevCoding.Phase+f.Length)%3 != f.Phase {
				a.cfg.Diagf("%s: %s phase %d breaks frame continuity with %s", g.ID, f.Path, f.Phase, prevCoding.Path)
			}
			prevCoding = f
		}
	}

	first := m.Features[0]
	if first.Path.IsCDS() && !a.cfg.NoORF[m.Gene] {
		if !orf.FindStart(g, first, a.cfg.Starts) {
			a.cfg.Diagf("%s: no start codon found for %s", g.ID, first.Path)
		}
	}
}

// boundaryGap measures the signed distance between f's end and next's
// start: 0 for adjacent features, positive for a gap, negative for an
// overlap. Distances are read the short way around the circle.
func boundaryGap(f, next *feature.Feature, n int) int {
	after := circ.Wrap(f.Pos+f.Length, n)
	d := circ.Dist(after, next.Pos, n)
	if d > n/2 {
		return d - n
	}
	return d
}

// splitAtFulcrum re-draws the boundary between two features over the
// region spanning f's end and next's start, assigning each position to
// the feature whose evidence claims it.
func (a *Annotator) splitAtFulcrum(f, next *feature.Feature, set *stacks.Set, n int) {
	st1, st2 := set.Stack(f.Path), set.Stack(next.Path)
	if st1 == nil || st2 == nil {
		return
	}
	fEnd := f.Pos + f.Length - 1
	nextPos := f.Pos + circ.Dist(f.Pos, next.Pos, n)
	nextEnd := nextPos + next.Length - 1
	lo, hi := fEnd, nextPos
	if lo > hi {
		lo, hi = hi, lo
	}
	ful := refine.Fulcrum(set.Signal(st1), set.Signal(st2), lo, hi)
	f.Length = ful - f.Pos + 1
	next.Pos = circ.Wrap(ful+1, n)
	next.Length = nextEnd - ful
	if next.Length < 1 {
		next.Length = 1
	}
}

// phaseVote elects a coding feature's phase by majority over the
// overlapping annotations' implied frames at the feature start.
func (a *Annotator) phaseVote(genomeID string, f *feature.Feature, anns []project.Annotation, n int) int {
	var votes [3]int
	total := 0
	for i := range anns {
		ann := &anns[i]
		if d := circ.Dist(f.Pos, ann.Pos, n); d < f.Length {
			votes[(ann.Phase+d)%3]++
			total++
		} else if d := circ.Dist(ann.Pos, f.Pos, n); d < ann.Length {
			votes[circ.Phase(ann.Phase, d)]++
			total++
		}
	}
	if total == 0 {
		a.cfg.Diagf("%s: no phase evidence for %s", genomeID, f.Path)
		return 0
	}
	best := 0
	for p := 1; p < 3; p++ {
		if votes[p] > votes[best] {
			best = p
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
