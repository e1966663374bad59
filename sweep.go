package spherebox

import (
	"context"

	"github.com/akmonengine/spherebox/actor"
	"github.com/akmonengine/spherebox/geometry"
	"golang.org/x/sync/errgroup"
)

// sweepCheckEvery is how many spheres a worker tests between two context checks
const sweepCheckEvery = 256

// Sweep tests every sphere against box on up to workers goroutines. results[i] is the
// contact of spheres[i]. Scheduling stops once ctx is cancelled, in which case the
// context error is returned.
func Sweep(ctx context.Context, box actor.Box, spheres []actor.Sphere, workers int) ([]geometry.Contact, error) {
	workers = max(DEFAULT_WORKERS, workers)
	results := make([]geometry.Contact, len(spheres))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunkSize := max(1, (len(spheres)+workers-1)/workers)
	for start := 0; start < len(spheres); start += chunkSize {
		if gctx.Err() != nil {
			break
		}
		end := min(start+chunkSize, len(spheres))

		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%sweepCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				results[i] = geometry.SphereBox(spheres[i], box)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
