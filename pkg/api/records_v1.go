// pkg/api/records_v1.go
package api

// RecordV1 is the stable JSON/JSONL schema for one annotation record.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// Genome is set on JSONL rows; inside GenomeV1 it stays empty because the
// enclosing object already names the genome.
type RecordV1 struct {
	Genome    string  `json:"genome,omitempty"`
	ID        string  `json:"id"`
	Strand    string  `json:"strand"` // "+" | "-"
	Start     int     `json:"start"`
	Length    int     `json:"length"`
	Phase     int     `json:"phase"`
	RelLength float64 `json:"rel_length"`
	Depth     float64 `json:"depth"`
	Note      string  `json:"note,omitempty"`
}

// GenomeV1 groups one target genome's records.
type GenomeV1 struct {
	ID      string     `json:"id"`
	Length  int        `json:"length"`
	Records []RecordV1 `json:"records"`
}
