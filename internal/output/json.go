// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"circanno-core/annotate"
	"circanno-core/feature"
	"circanno/pkg/api"
)

// ToAPIRecord converts a domain Record to the stable wire schema (v1).
// genomeID may be empty when the enclosing object names the genome.
func ToAPIRecord(genomeID string, r annotate.Record) api.RecordV1 {
	return api.RecordV1{
		Genome:    genomeID,
		ID:        r.ID,
		Strand:    feature.FormatStrand(r.Strand),
		Start:     r.Pos,
		Length:    r.Length,
		Phase:     r.Phase,
		RelLength: r.RelLength,
		Depth:     r.Depth,
		Note:      r.Note,
	}
}

// ToAPIGenome converts one genome's result to the wire schema (v1).
func ToAPIGenome(res annotate.Result) api.GenomeV1 {
	recs := make([]api.RecordV1, 0, len(res.Records))
	for _, r := range res.Records {
		recs = append(recs, ToAPIRecord("", r))
	}
	return api.GenomeV1{ID: res.GenomeID, Length: res.Length, Records: recs}
}

func toAPIGenomes(list []annotate.Result) []api.GenomeV1 {
	out := make([]api.GenomeV1, 0, len(list))
	for _, res := range list {
		out = append(out, ToAPIGenome(res))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 genome objects
// (pretty-indented).
func WriteJSON(w io.Writer, list []annotate.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toAPIGenomes(list))
}
