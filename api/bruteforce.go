package api

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/chronos/program"
)

// cancelCheckInterval is how many candidates run between context checks.
const cancelCheckInterval = 1024

// bruteForce tries every candidate from the start value upward, one at a
// time, and returns the first seed.
func (d *driverImpl) bruteForce(
	ctx context.Context,
	prog program.Program,
	want []uint8,
) (uint64, error) {
	var tried uint64

	for a := d.start; ; a++ {
		if d.maxCandidates > 0 && tried >= d.maxCandidates {
			return 0, ErrSearchExhausted
		}

		if tried%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		ok, err := d.try(a, prog, want)
		if err != nil {
			return 0, err
		}

		if ok {
			return a, nil
		}

		d.logProgress(a, tried, tried+1)
		tried++

		if a == math.MaxUint64 {
			return 0, ErrSearchExhausted
		}
	}
}

// parallelBruteForce walks the candidates in consecutive batches. Each batch
// is split into one contiguous chunk per worker. Batches are finished before
// the next one starts, and the lowest seed of the first batch holding any
// seed is the minimum.
func (d *driverImpl) parallelBruteForce(
	ctx context.Context,
	prog program.Program,
	want []uint8,
) (uint64, error) {
	var tried uint64
	lo := d.start

	for {
		n := d.batchSize
		if d.maxCandidates > 0 && d.maxCandidates-tried < n {
			n = d.maxCandidates - tried
		}
		if math.MaxUint64-lo < n {
			n = math.MaxUint64 - lo
		}
		if n == 0 {
			return 0, ErrSearchExhausted
		}

		seed, found, err := d.searchBatch(ctx, lo, n, prog, want)
		if err != nil {
			return 0, err
		}

		if found {
			return seed, nil
		}

		d.logProgress(lo+n-1, tried, tried+n)
		tried += n
		lo += n
	}
}

func (d *driverImpl) searchBatch(
	ctx context.Context,
	lo, n uint64,
	prog program.Program,
	want []uint8,
) (uint64, bool, error) {
	workers := uint64(d.workers)
	chunk := (n + workers - 1) / workers

	seeds := make([]uint64, workers)
	hits := make([]bool, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := uint64(0); w < workers && w*chunk < n; w++ {
		from := lo + w*chunk
		to := from + min(chunk, n-w*chunk)

		g.Go(func() error {
			for a := from; a < to; a++ {
				if (a-from)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}

				ok, err := d.try(a, prog, want)
				if err != nil {
					return err
				}

				if ok {
					seeds[w] = a
					hits[w] = true

					return nil
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, false, err
	}

	for w := range hits {
		if hits[w] {
			return seeds[w], true, nil
		}
	}

	return 0, false, nil
}
