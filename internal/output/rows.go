// internal/output/rows.go
package output

import (
	"fmt"

	"circanno-core/annotate"
	"circanno-core/feature"
)

// FormatGenomeRowTSV returns the per-genome marker row that opens a
// genome's block in the record stream (no trailing newline).
func FormatGenomeRowTSV(res annotate.Result) string {
	return fmt.Sprintf("%s\t%d", res.GenomeID, res.Length)
}

// FormatRecordRowTSV returns the 8 record columns (no trailing newline).
func FormatRecordRowTSV(r annotate.Record) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%.3f\t%.3f\t%s",
		r.ID, feature.FormatStrand(r.Strand),
		r.Pos, r.Length, r.Phase,
		r.RelLength, r.Depth, r.Note,
	)
}
