// core/stacks/stacks.go
package stacks

import (
	"sort"

	"circanno-core/circ"
	"circanno-core/feature"
	"circanno-core/project"
	"circanno-core/template"
)

// Stack is the per-path evidence counter: every base of every projected
// annotation for the path adds 3 at its positions.
type Stack struct {
	Path     feature.Path
	Template *template.Template
	Counts   []int32
	AnnCount int
}

// Set holds one strand frame's stacks plus the genome-wide shadow
// counter. The shadow starts at -1 everywhere and drops by 1 for every
// annotation base landing on a position, regardless of path, so dense
// regions demand more same-path support before the net signal turns
// positive.
type Set struct {
	GenomeLen int
	RefCount  int
	Shadow    []int32

	byPath map[string]*Stack
	order  []string
}

// Accumulate projects annotations into per-path stacks and the shared
// shadow. Annotations whose path has no template are dropped. The
// input is re-sorted by path and position first; callers may hand over
// annotations in any order.
func Accumulate(genomeLen int, anns []project.Annotation, templates template.Set, refCount int) *Set {
	sorted := append([]project.Annotation(nil), anns...)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Path.String(), sorted[j].Path.String()
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Pos < sorted[j].Pos
	})

	s := &Set{
		GenomeLen: genomeLen,
		RefCount:  refCount,
		Shadow:    make([]int32, genomeLen),
		byPath:    map[string]*Stack{},
	}
	for i := range s.Shadow {
		s.Shadow[i] = -1
	}

	for i := range sorted {
		a := &sorted[i]
		key := a.Path.String()
		st, ok := s.byPath[key]
		if !ok {
			tmpl, exists := templates[key]
			if !exists {
				continue
			}
			st = &Stack{Path: a.Path, Template: tmpl, Counts: make([]int32, genomeLen)}
			s.byPath[key] = st
			s.order = append(s.order, key)
		}
		for k := 0; k < a.Length; k++ {
			idx := circ.Index(a.Pos+k, genomeLen)
			st.Counts[idx] += 3
			s.Shadow[idx]--
		}
		st.AnnCount++
	}
	return s
}

// Stacks returns every path's stack in path order.
func (s *Set) Stacks() []*Stack {
	sort.Strings(s.order)
	out := make([]*Stack, len(s.order))
	for i, key := range s.order {
		out[i] = s.byPath[key]
	}
	return out
}

// Stack returns the counter for one path, or nil.
func (s *Set) Stack(p feature.Path) *Stack {
	return s.byPath[p.String()]
}

// PassesThresholds applies the template gate: enough contributing
// annotations, and enough summed evidence relative to what refCount
// full-length copies would deposit.
func (s *Set) PassesThresholds(st *Stack) bool {
	if st.Template == nil {
		return false
	}
	if float64(st.AnnCount) < st.Template.MinCounts {
		return false
	}
	var sum int64
	for _, c := range st.Counts {
		sum += int64(c)
	}
	expected := float64(s.RefCount) * float64(st.Template.MedianLength)
	if expected <= 0 {
		return false
	}
	return float64(sum)/3/expected >= st.Template.MinCoverage
}

// Depth reports the average per-reference evidence over a span: the
// stack sum over the span divided by 3*refCount*length. A span every
// reference supports end to end scores 1.
func (s *Set) Depth(st *Stack, pos, length int) float64 {
	if length <= 0 || s.RefCount == 0 {
		return 0
	}
	var sum int64
	for k := 0; k < length; k++ {
		sum += int64(st.Counts[circ.Index(pos+k, s.GenomeLen)])
	}
	return float64(sum) / (3 * float64(s.RefCount) * float64(length))
}

// Signal is the per-position refinement signal for one path: the
// path's own stack plus the shared shadow.
type Signal struct {
	stack  []int32
	shadow []int32
	n      int
}

// Signal builds the refinement view for one stack.
func (s *Set) Signal(st *Stack) Signal {
	return Signal{stack: st.Counts, shadow: s.Shadow, n: s.GenomeLen}
}

// Len returns the genome length the signal wraps over.
func (sig Signal) Len() int { return sig.n }

// At returns the net signal at a 1-based circular position.
func (sig Signal) At(pos int) int {
	i := circ.Index(pos, sig.n)
	return int(sig.stack[i] + sig.shadow[i])
}

// Sum totals the net signal over the inclusive circular span.
func (sig Signal) Sum(pos, length int) int {
	total := 0
	for k := 0; k < length; k++ {
		total += sig.At(pos + k)
	}
	return total
}
