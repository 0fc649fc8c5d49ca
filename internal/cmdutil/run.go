package cmdutil

import (
	"context"

	"circanno-core/genome"
	"circanno/internal/pipeline"
)

// RunStream runs the shared genome pipeline, counting and streaming the
// per-genome outputs via send. It returns the total count and the first
// error encountered. count decides how much each output contributes to
// the total (records for annotation runs, rows for projection dumps).
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	seqFiles []string,
	work func(*genome.Genome) (T, error),
	count func(T) int,
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachGenome(ctx, cfg, seqFiles, work, func(v T) error {
		if err := send(v); err != nil {
			return err
		}
		total += count(v)
		return nil
	})
	return total, err
}
