// internal/refio/refio.go
package refio

import (
	"fmt"
	"strconv"
	"strings"

	"circanno-core/annotate"
	"circanno-core/blocks"
	"circanno-core/feature"
)

// LoadSources materializes annotation sources from --reference
// arguments of the form features.tsv=blocks.tsv (or .sam). The
// feature table and the block file of a pair must describe the same
// reference genome.
func LoadSources(refs []string) ([]*annotate.Source, error) {
	sources := make([]*annotate.Source, 0, len(refs))
	for _, r := range refs {
		featPath, blockPath, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("bad --reference %q (want features.tsv=blocks.tsv)", r)
		}
		ref, err := feature.ReadTable(featPath)
		if err != nil {
			return nil, fmt.Errorf("reference features %s: %w", featPath, err)
		}
		bs, err := blocks.ReadFile(blockPath)
		if err != nil {
			return nil, fmt.Errorf("reference blocks %s: %w", blockPath, err)
		}
		src, err := annotate.NewSource(ref, bs)
		if err != nil {
			return nil, fmt.Errorf("reference %s: %w", ref.ID, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// ParseIR parses an --ir value of the form startA:startB:length, the
// 1-based starts of the two inverted-repeat copies plus their shared
// length. An empty value means no IR constraint.
func ParseIR(s string) (*annotate.IR, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("bad --ir %q (want startA:startB:length)", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad --ir %q: %v", s, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("bad --ir %q: negative coordinate", s)
		}
		vals[i] = v
	}
	if vals[0] < 1 || vals[1] < 1 {
		return nil, fmt.Errorf("bad --ir %q: starts are 1-based", s)
	}
	if vals[2] == 0 {
		return nil, fmt.Errorf("bad --ir %q: zero repeat length", s)
	}
	return &annotate.IR{PosA: vals[0], PosB: vals[1], Length: vals[2]}, nil
}
