// core/refine/window.go
package refine

import (
	"sort"

	"circanno-core/circ"
)

// Candidate is one window placement and its summed signal.
type Candidate struct {
	Pos   int
	Score int
}

// WindowMatch slides a window of the template width across the whole
// circular signal and collects placements whose summed signal is
// positive. Placements landing within width of the previously retained
// candidate replace it only when they score strictly higher, so the
// first seen wins exact ties. Candidates scoring below keep times the
// top score are discarded; the survivors come back ordered best first.
func WindowMatch(sig Signal, width int, keep float64) []Candidate {
	n := sig.Len()
	if n == 0 {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if width > n {
		width = n
	}

	sum := 0
	for k := 0; k < width; k++ {
		sum += sig.At(1 + k)
	}
	var cands []Candidate
	for pos := 1; pos <= n; pos++ {
		if sum > 0 {
			if k := len(cands) - 1; k >= 0 && circ.Dist(cands[k].Pos, pos, n) < width {
				if sum > cands[k].Score {
					cands[k] = Candidate{Pos: pos, Score: sum}
				}
			} else {
				cands = append(cands, Candidate{Pos: pos, Score: sum})
			}
		}
		sum += sig.At(pos+width) - sig.At(pos)
	}
	if len(cands) == 0 {
		return nil
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	top := float64(cands[0].Score)
	cut := len(cands)
	for i, c := range cands {
		if float64(c.Score) < keep*top {
			cut = i
			break
		}
	}
	return cands[:cut]
}
