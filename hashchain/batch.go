package hashchain

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SumAll hashes every input with r using at most workers goroutines and
// returns the digests in input order.  Each call owns its Lyra2 state, so no
// locking is needed.  A workers value below one means runtime.NumCPU().
//
// The first failing input cancels the rest and its error is returned.
func (r *Recipe) SumAll(ctx context.Context, inputs [][]byte,
	workers int) ([][]byte, error) {

	if workers < 1 {
		workers = runtime.NumCPU()
	}

	out := make([][]byte, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range inputs {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum, err := r.Sum(inputs[i])
			if err != nil {
				return err
			}
			out[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The caller may have cancelled before any goroutine started.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
