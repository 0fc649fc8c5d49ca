// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"circanno-core/annotate"
)

func writeGenomeText(w io.Writer, res annotate.Result) error {
	if _, err := fmt.Fprintln(w, FormatGenomeRowTSV(res)); err != nil {
		return err
	}
	for _, r := range res.Records {
		if _, err := fmt.Fprintln(w, FormatRecordRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints each genome's marker row followed by its record rows.
func WriteText(w io.Writer, list []annotate.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, res := range list {
		if err := writeGenomeText(w, res); err != nil {
			return err
		}
	}
	return nil
}

// StreamText is WriteText over a channel of results.
func StreamText(w io.Writer, in <-chan annotate.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for res := range in {
		if err := writeGenomeText(w, res); err != nil {
			return err
		}
	}
	return nil
}
