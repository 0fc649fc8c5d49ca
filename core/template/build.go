// core/template/build.go
package template

import (
	"math"
	"sort"

	"circanno-core/feature"
)

// BuildOptions tunes template derivation from reference tables.
type BuildOptions struct {
	// CountsFrac scales the per-path occurrence count into the counts
	// threshold: MinCounts = ceil(CountsFrac * occurrences).
	CountsFrac float64
	// Coverage is copied into every template's MinCoverage.
	Coverage float64
}

// Build derives one template per feature path observed across refs.
// Lengths from both strands pool together; the median length of each
// path becomes its window size and the occurrence count scales into
// its counts threshold.
func Build(refs []*feature.RefGenome, o BuildOptions) []Template {
	lengths := map[string][]int{}
	for _, r := range refs {
		for _, fs := range [][]feature.Feature{r.Fwd, r.Rev} {
			for i := range fs {
				key := fs[i].Path.String()
				lengths[key] = append(lengths[key], fs[i].Length)
			}
		}
	}

	paths := make([]string, 0, len(lengths))
	for p := range lengths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]Template, 0, len(paths))
	for _, p := range paths {
		ls := lengths[p]
		out = append(out, Template{
			Path:         p,
			MedianLength: median(ls),
			MinCounts:    math.Ceil(o.CountsFrac * float64(len(ls))),
			MinCoverage:  o.Coverage,
		})
	}
	return out
}

// median returns the middle value, taking the lower of the two middle
// values on even counts.
func median(ls []int) int {
	sorted := append([]int(nil), ls...)
	sort.Ints(sorted)
	return sorted[(len(sorted)-1)/2]
}
