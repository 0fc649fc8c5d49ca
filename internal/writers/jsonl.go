// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"circanno-core/annotate"
	"circanno-core/feature"
	"circanno/internal/jsonlutil"
	"circanno/internal/output"
	"circanno/internal/projoutput"
)

// StartRecordJSONLWriter streams each genome's records as one JSON line
// apiece (v1), with the genome id inlined on every line.
func StartRecordJSONLWriter(out io.Writer, bufSize int) (chan<- annotate.Result, <-chan error) {
	return jsonlutil.Start[annotate.Result](out, bufSize,
		func(enc *json.Encoder, res annotate.Result) error {
			for _, r := range res.Records {
				if err := enc.Encode(output.ToAPIRecord(res.GenomeID, r)); err != nil {
					return err
				}
			}
			return nil
		},
		IsBrokenPipe,
	)
}

// StartProjectionJSONLWriter streams each projected fragment as one JSON
// line (v1).
func StartProjectionJSONLWriter(out io.Writer, bufSize int) (chan<- projoutput.Projection, <-chan error) {
	return jsonlutil.Start[projoutput.Projection](out, bufSize,
		func(enc *json.Encoder, p projoutput.Projection) error {
			for i := range p.Fwd {
				if err := enc.Encode(projoutput.ToAPIProjection(p.GenomeID, feature.Forward, p.Fwd[i])); err != nil {
					return err
				}
			}
			for i := range p.Rev {
				if err := enc.Encode(projoutput.ToAPIProjection(p.GenomeID, feature.Reverse, p.Rev[i])); err != nil {
					return err
				}
			}
			return nil
		},
		IsBrokenPipe,
	)
}
