// core/refine/vote.go
package refine

import (
	"sort"

	"circanno-core/circ"
	"circanno-core/feature"
	"circanno-core/project"
)

// Vote re-elects a feature's 5' and 3' edges from the annotations
// overlapping it. Each annotation predicts where the full feature
// would start and end by unwinding its own offsets, and backs both
// predictions with weight ((L-d)/L)^2 * coverage, where L is the
// feature length, d the distance between the annotation's edge and the
// feature's corresponding extremity, and coverage the source genome's
// alignment coverage. The predictions with the highest total weight
// win; a single heavy vote beats many light ones. Position ties go to
// the smaller position.
func Vote(f *feature.Feature, anns []project.Annotation, coverage map[string]float64, n int) {
	L := f.Length
	if L <= 0 {
		return
	}
	fEnd := circ.Wrap(f.Pos+f.Length-1, n)
	votes5 := map[int]float64{}
	votes3 := map[int]float64{}

	for i := range anns {
		a := &anns[i]
		if !a.Overlaps(f.Pos, f.Length, n) {
			continue
		}
		if a.Offset5 >= L || a.Offset3 >= L {
			continue
		}
		cov, ok := coverage[a.Genome]
		if !ok {
			cov = 1
		}
		if d := circ.Dist(f.Pos, a.Pos, n); d < L {
			w := float64(L-d) / float64(L)
			votes5[circ.Wrap(a.Pos-a.Offset5, n)] += w * w * cov
		}
		aEnd := circ.Wrap(a.Pos+a.Length-1, n)
		if d := circ.Dist(aEnd, fEnd, n); d < L {
			w := float64(L-d) / float64(L)
			votes3[circ.Wrap(a.Pos+a.Length+a.Offset3-1, n)] += w * w * cov
		}
	}

	start, ok5 := argmax(votes5)
	end, ok3 := argmax(votes3)
	if !ok5 {
		start = f.Pos
	}
	if !ok3 {
		end = fEnd
	}
	f.Pos = start
	f.Length = circ.SpanLen(start, end, n)
}

func argmax(votes map[int]float64) (int, bool) {
	if len(votes) == 0 {
		return 0, false
	}
	keys := make([]int, 0, len(votes))
	for k := range votes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	best, bestW := keys[0], votes[keys[0]]
	for _, k := range keys[1:] {
		if votes[k] > bestW {
			best, bestW = k, votes[k]
		}
	}
	return best, true
}
