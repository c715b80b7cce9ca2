package future

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Parallel runs futures with at most limit executing at the same time.
// Result i always belongs to futures[i], whatever the completion order.
// The first failure cancels the context handed to the remaining futures and
// is returned. A limit below one means no bound.
func Parallel[T any](limit int, futures []Future[T]) Future[[]T] {
	return New(func(ctx context.Context) ([]T, error) {
		results := make([]T, len(futures))

		g, gctx := errgroup.WithContext(ctx)
		if limit > 0 {
			g.SetLimit(limit)
		}

		for i, f := range futures {
			g.Go(func() error {
				value, err := f.Run(gctx)
				if err != nil {
					return err
				}
				results[i] = value
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	})
}
