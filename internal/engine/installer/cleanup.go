package installer

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"sync/atomic"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// cleanup deletes the stale paths that exist on disk, skipping everything in
// keep. It runs after installation so keep holds every path written this run.
func (r *run) cleanup(ctx context.Context, stale []domain.ScopedPath, keep map[domain.ScopedPath]struct{}) int {
	var deleted atomic.Int64
	seen := make(map[domain.ScopedPath]struct{}, len(stale))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.req.Parallelism)
	for _, p := range stale {
		if _, ok := keep[p]; ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		g.Go(func() error {
			err := os.Remove(p.Join(r.req.Dir))
			switch {
			case err == nil:
				deleted.Add(1)
				r.sink.Emit(domain.DeletedEvent{File: p})
			case errors.Is(err, iofs.ErrNotExist):
			default:
				r.fail(zerr.With(zerr.Wrap(err, "failed to delete stale file"), "file", p.String()))
			}
			return nil
		})
	}
	_ = g.Wait()
	return int(deleted.Load())
}
