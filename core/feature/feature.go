// core/feature/feature.go
package feature

import (
	"fmt"
	"strings"

	"github.com/biogo/biogo/feat"
)

// Strand aliases biogo's orientation type so indexes and records interoperate
// with feat consumers without an extra conversion layer.
type Strand = feat.Orientation

const (
	Forward = feat.Forward
	Reverse = feat.Reverse
)

// FormatStrand renders a strand as the single character used in feature
// tables and output rows.
func FormatStrand(s Strand) string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// ParseStrand parses the single-character strand column.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Forward, nil
	case "-":
		return Reverse, nil
	}
	return 0, fmt.Errorf("bad strand %q (want + or -)", s)
}

// Path identifies one reference feature as gene/instance/type/part,
// e.g. "psbA/1/CDS/1". Instance numbers gene copies within a reference;
// Part numbers pieces of a split feature.
type Path struct {
	Gene     string
	Instance string
	Type     string
	Part     string
}

// ParsePath splits a four-component feature identifier.
func ParsePath(s string) (Path, error) {
	f := strings.Split(s, "/")
	if len(f) != 4 {
		return Path{}, fmt.Errorf("bad feature path %q (want gene/instance/type/part)", s)
	}
	for _, c := range f {
		if c == "" {
			return Path{}, fmt.Errorf("bad feature path %q (empty component)", s)
		}
	}
	return Path{Gene: f[0], Instance: f[1], Type: f[2], Part: f[3]}, nil
}

func (p Path) String() string {
	return p.Gene + "/" + p.Instance + "/" + p.Type + "/" + p.Part
}

func (p Path) IsCDS() bool { return p.Type == "CDS" }

func (p Path) IsIntron() bool { return p.Type == "intron" }

// Feature is one annotated interval on a strand frame of a circular genome.
// Pos is 1-based; spans running past the genome end wrap through the origin.
type Feature struct {
	Path   Path
	Pos    int
	Length int
	Phase  int
}

// EndPos returns the inclusive 1-based end, unwrapped.
func (f *Feature) EndPos() int { return f.Pos + f.Length - 1 }

// Start, End and Len expose the feature as a 0-based half-open feat.Range
// for biogo consumers such as the interval index.
func (f *Feature) Start() int { return f.Pos - 1 }
func (f *Feature) End() int   { return f.Pos - 1 + f.Length }
func (f *Feature) Len() int   { return f.Length }

func (f *Feature) Name() string { return f.Path.String() }

func (f *Feature) Description() string { return f.Path.Type }

func (f *Feature) Location() feat.Feature { return nil }

var (
	_ feat.Range   = (*Feature)(nil)
	_ feat.Feature = (*Feature)(nil)
)
