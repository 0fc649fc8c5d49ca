// core/annotate/record.go
package annotate

import (
	"fmt"
	"strings"

	"circanno-core/feature"
	"circanno-core/genome"
	"circanno-core/orf"
	"circanno-core/stacks"
)

// Record is one finalized output row.
type Record struct {
	ID        string
	Strand    feature.Strand
	Pos       int
	Length    int
	Phase     int
	RelLength float64
	Depth     float64
	Note      string
}

// buildRecords flattens both strands' models into output records.
// Instance numbers count a gene's surviving models across both strands
// in emission order; inverted-repeat rows, when requested, trail the
// gene rows.
func (a *Annotator) buildRecords(frames [2]*genome.Genome, models [2][]*Model, sets [2]*stacks.Set, ir *IR) []Record {
	spans := map[string]int{}
	for si := range models {
		for _, m := range models[si] {
			if s := m.Span(sets[si].GenomeLen); s > spans[m.Gene] {
				spans[m.Gene] = s
			}
		}
	}

	strands := [2]feature.Strand{feature.Forward, feature.Reverse}
	instance := map[string]int{}
	var out []Record
	for si := range models {
		for _, m := range models[si] {
			out = append(out, a.modelRecords(m, strands[si], frames[si], sets[si], spans, instance)...)
		}
	}
	if ir != nil {
		out = append(out,
			Record{ID: "IR/1/repeat_region/1", Strand: feature.Forward, Pos: ir.PosA, Length: ir.Length, RelLength: 1},
			Record{ID: "IR/2/repeat_region/1", Strand: feature.Reverse, Pos: ir.PosB, Length: ir.Length, RelLength: 1},
		)
	}
	return out
}

func (a *Annotator) modelRecords(m *Model, strand feature.Strand, g *genome.Genome, set *stacks.Set, spans map[string]int, instance map[string]int) []Record {
	span := m.Span(set.GenomeLen)
	if span <= 0 {
		a.cfg.Diagf("%s: empty gene model %s", g.ID, m.Gene)
		return nil
	}
	if m.Exons() == 0 {
		a.cfg.Diagf("%s: gene model %s has no exons", g.ID, m.Gene)
	}

	var coding []*feature.Feature
	for _, f := range m.Features {
		if f.Path.IsCDS() {
			coding = append(coding, f)
		}
	}
	missingStart, prematureStop := false, false
	if len(coding) > 0 {
		if prot := orf.Translate(g, coding); len(prot) > 1 {
			prematureStop = strings.ContainsRune(prot[:len(prot)-1], '*')
		}
		if !a.cfg.NoORF[m.Gene] {
			fc := coding[0]
			missingStart = !a.cfg.Starts.IsStart(g.Codon(fc.Pos+fc.Phase), m.Gene)
		}
	}
	note := pseudoNote(span+10 < spans[m.Gene], missingStart, prematureStop)

	instance[m.Gene]++
	inst := instance[m.Gene]
	recs := make([]Record, 0, len(m.Features))
	for _, f := range m.Features {
		var depth, rel float64
		if st := set.Stack(f.Path); st != nil {
			depth = set.Depth(st, f.Pos, f.Length)
			if st.Template.MedianLength > 0 {
				rel = float64(f.Length) / float64(st.Template.MedianLength)
			}
		}
		recs = append(recs, Record{
			ID:        fmt.Sprintf("%s/%d/%s/%s", m.Gene, inst, f.Path.Type, f.Path.Part),
			Strand:    strand,
			Pos:       f.Pos,
			Length:    f.Length,
			Phase:     f.Phase,
			RelLength: rel,
			Depth:     depth,
			Note:      note,
		})
	}
	return recs
}

// pseudoNote concatenates the pseudogene evidence in fixed order.
func pseudoNote(short, missingStart, prematureStop bool) string {
	var reasons []string
	if short {
		reasons = append(reasons, "shorter than 2nd copy")
	}
	if missingStart {
		reasons = append(reasons, "no start codon")
	}
	if prematureStop {
		reasons = append(reasons, "premature stop codon")
	}
	if len(reasons) == 0 {
		return ""
	}
	return "possible pseudogene, " + strings.Join(reasons, ", ")
}
