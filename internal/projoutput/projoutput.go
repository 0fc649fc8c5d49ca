// internal/projoutput/projoutput.go
package projoutput

import (
	"fmt"
	"io"

	"circanno-core/feature"
	"circanno-core/project"
	"circanno/pkg/api"
)

// Projection carries one target genome's raw projected fragments,
// split by strand frame. Fragments keep the projector's emission order.
type Projection struct {
	GenomeID string
	Length   int
	Fwd      []project.Annotation
	Rev      []project.Annotation
}

// Rows counts the fragments across both frames.
func (p Projection) Rows() int { return len(p.Fwd) + len(p.Rev) }

// TSVHeader is the canonical column header for projection dumps.
const TSVHeader = "genome_id\tsource_id\tpath\tstrand\tstart\tlength\toffset5\toffset3\tphase"

// FormatRowTSV returns the 9 projection columns (no trailing newline).
func FormatRowTSV(genomeID string, strand feature.Strand, a project.Annotation) string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d",
		genomeID, a.Genome, a.Path, feature.FormatStrand(strand),
		a.Pos, a.Length, a.Offset5, a.Offset3, a.Phase,
	)
}

// ToAPIProjection converts one fragment to the stable wire schema (v1).
func ToAPIProjection(genomeID string, strand feature.Strand, a project.Annotation) api.ProjectionV1 {
	return api.ProjectionV1{
		Genome:  genomeID,
		Source:  a.Genome,
		Path:    a.Path.String(),
		Strand:  feature.FormatStrand(strand),
		Start:   a.Pos,
		Length:  a.Length,
		Offset5: a.Offset5,
		Offset3: a.Offset3,
		Phase:   a.Phase,
	}
}

func writeProjectionText(w io.Writer, p Projection) error {
	for i := range p.Fwd {
		if _, err := fmt.Fprintln(w, FormatRowTSV(p.GenomeID, feature.Forward, p.Fwd[i])); err != nil {
			return err
		}
	}
	for i := range p.Rev {
		if _, err := fmt.Fprintln(w, FormatRowTSV(p.GenomeID, feature.Reverse, p.Rev[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints one TSV row per projected fragment.
func WriteText(w io.Writer, list []Projection, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, p := range list {
		if err := writeProjectionText(w, p); err != nil {
			return err
		}
	}
	return nil
}

// StreamText is WriteText over a channel of projections.
func StreamText(w io.Writer, in <-chan Projection, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for p := range in {
		if err := writeProjectionText(w, p); err != nil {
			return err
		}
	}
	return nil
}
