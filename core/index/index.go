// core/index/index.go
package index

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"

	"circanno-core/feature"
)

// Hit is one overlap query result. Start and End give the feature's
// inclusive linear extent in the frame the query used; for the shifted
// alias of an origin-crossing feature the extent starts at or below
// zero, keeping offset arithmetic linear for callers.
type Hit struct {
	Feature *feature.Feature
	Start   int
	End     int
}

type entry struct {
	f          *feature.Feature
	start, end int // tree space, half-open
	id         uintptr
}

func (e entry) Overlap(b interval.IntRange) bool { return e.end > b.Start && e.start < b.End }
func (e entry) ID() uintptr                      { return e.id }
func (e entry) Range() interval.IntRange         { return interval.IntRange{Start: e.start, End: e.end} }

type query struct{ lo, hi int }

func (q query) Overlap(b interval.IntRange) bool { return q.hi > b.Start && q.lo < b.End }
func (q query) ID() uintptr                      { return 0 }
func (q query) Range() interval.IntRange         { return interval.IntRange{Start: q.lo, End: q.hi} }

// Index answers range-overlap queries over one strand's features of one
// reference genome. Features whose span crosses the origin are held
// twice, once in natural coordinates and once shifted left by the
// genome length, so purely linear queries see them on either side.
type Index struct {
	tree      interval.IntTree
	genomeLen int
	count     int
}

// New indexes features sorted by start position. Unsorted input is
// rejected rather than repaired so silent table corruption surfaces.
func New(features []feature.Feature, genomeLen int) (*Index, error) {
	if genomeLen < 1 {
		return nil, fmt.Errorf("index: non-positive genome length %d", genomeLen)
	}
	ix := &Index{genomeLen: genomeLen}
	var id uintptr
	for i := range features {
		if i > 0 && features[i].Pos < features[i-1].Pos {
			return nil, fmt.Errorf("index: features out of order at %q (start %d after %d)",
				features[i].Path, features[i].Pos, features[i-1].Pos)
		}
		f := &features[i]
		if err := ix.tree.Insert(entry{f: f, start: f.Pos, end: f.Pos + f.Length, id: id}, true); err != nil {
			return nil, fmt.Errorf("index: insert %q: %w", f.Path, err)
		}
		id++
		if f.EndPos() > genomeLen {
			alias := entry{f: f, start: f.Pos - genomeLen, end: f.Pos + f.Length - genomeLen, id: id}
			if err := ix.tree.Insert(alias, true); err != nil {
				return nil, fmt.Errorf("index: insert %q: %w", f.Path, err)
			}
			id++
		}
		ix.count++
	}
	ix.tree.AdjustRanges()
	return ix, nil
}

// Len reports how many features the index holds, aliases uncounted.
func (ix *Index) Len() int { return ix.count }

// Overlapping returns the features overlapping the inclusive linear
// range lo..hi, ordered by extent start.
func (ix *Index) Overlapping(lo, hi int) []Hit {
	if hi < lo {
		return nil
	}
	got := ix.tree.Get(query{lo: lo, hi: hi + 1})
	if len(got) == 0 {
		return nil
	}
	hits := make([]Hit, 0, len(got))
	for _, iv := range got {
		e := iv.(entry)
		hits = append(hits, Hit{Feature: e.f, Start: e.start, End: e.end - 1})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Start != hits[j].Start {
			return hits[i].Start < hits[j].Start
		}
		if hits[i].End != hits[j].End {
			return hits[i].End < hits[j].End
		}
		return hits[i].Feature.Path.String() < hits[j].Feature.Path.String()
	})
	return hits
}
