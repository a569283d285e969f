package swr

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Warm looks up every key, at most concurrency at a time (unbounded when
// concurrency <= 0), and returns the first failure. Keys already cached are
// not reloaded. After a failure, or once ctx is done, keys not yet started
// are skipped.
func (h *Handle[K, V]) Warm(ctx context.Context, keys []K, concurrency int) error {
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, _, err := h.Lookup(ctx, key)
			return err
		})
	}
	return g.Wait()
}
