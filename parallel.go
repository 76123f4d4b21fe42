package img2skel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerBand keeps tiny images on a single goroutine.
const minRowsPerBand = 16

// parallelRows splits [0, height) into contiguous row bands and runs fn on
// each, concurrently when workers allows it. fn must only write to cells
// of its own rows. The per-band results are summed.
func parallelRows(height, workers int, fn func(y0, y1 int) int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bands := min(workers, (height+minRowsPerBand-1)/minRowsPerBand)
	if bands <= 1 {
		return fn(0, height)
	}

	chunk := (height + bands - 1) / bands
	counts := make([]int, bands)
	var g errgroup.Group
	for i := range bands {
		y0 := i * chunk
		y1 := min(y0+chunk, height)
		if y0 >= y1 {
			continue
		}
		g.Go(func() error {
			counts[i] = fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
