// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"circanno-core/genome"
	"circanno/internal/runutil"
)

// Config controls the genome-scanning pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// ForEachGenome streams FASTA records from seqFiles to a worker pool,
// runs work on each genome, and hands the outputs to visit from a
// single collector goroutine. A genome id seen before is skipped, so a
// file listed twice does not annotate twice. Output order follows
// worker completion; callers wanting a fixed order sort downstream. It
// returns the first error encountered (including context cancellation).
func ForEachGenome[T any](
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	work func(*genome.Genome) (T, error),
	visit func(T) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	jobs := make(chan *genome.Genome, cfg.Threads*2)
	results := make(chan T, cfg.Threads*2)

	// Workers
	var (
		wg   sync.WaitGroup
		werr error
		wmu  sync.Mutex
	)
	fail := func(err error) {
		wmu.Lock()
		if werr == nil {
			werr = err
		}
		wmu.Unlock()
	}
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case g, ok := <-jobs:
					if !ok {
						return
					}
					out, err := work(g)
					if err != nil {
						fail(err)
						continue
					}
					select {
					case results <- out:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for v := range results {
			if cerr != nil {
				continue
			}
			if err := visit(v); err != nil && cerr == nil {
				cerr = err
			}
		}
	}()

	// Feed work
	seen := runutil.NewLRUSet[string](0)
feed:
	for _, fa := range seqFiles {
		err := genome.StreamFASTA(ctx, fa, func(g *genome.Genome) error {
			if seen.Add(g.ID) {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- g:
				return nil
			}
		})
		if err != nil {
			if ctx.Err() != nil {
				break feed
			}
			// Keep scanning other files; the first error wins.
			fail(err)
			continue
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if werr != nil {
		return werr
	}
	return cerr
}
