// internal/common/sort.go
package common

import (
	"sort"

	"circanno-core/annotate"
	"circanno/internal/projoutput"
)

// SortResults orders per-genome results by genome id (for --sort).
// Records inside a result already come out of the engine in a
// deterministic order.
func SortResults(list []annotate.Result) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].GenomeID < list[j].GenomeID
	})
}

// SortProjections orders projection dumps by genome id.
func SortProjections(list []projoutput.Projection) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].GenomeID < list[j].GenomeID
	})
}
