package saveppm

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hvec/raster"
)

type multiSaver []Saver

// Multi returns a Saver that saves to every saver concurrently.
// The first error cancels the context passed to the others and is returned.
// The image must not be mutated while the save is running.
func Multi(savers ...Saver) Saver {
	out := make(multiSaver, 0, len(savers))
	for _, s := range savers {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSaver) Save(ctx context.Context, name string, img *raster.Image) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range m {
		g.Go(func() error {
			return s.Save(ctx, name, img)
		})
	}
	return g.Wait()
}
