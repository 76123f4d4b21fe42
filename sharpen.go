package img2skel

import "math"

// outsideLuminance is the value assumed for neighbors that fall off the
// image when computing the weighted sum.
const outsideLuminance = 255

// Sharpen applies unsharp-mask style local contrast enhancement. For each
// pixel it blurs the luminance with cfg.Kernel, computes
//
//	S     = floor(sum(Scale * V(x+dx, y+dy) * Kernel[dy+1][dx+1]))
//	delta = BiasA + BiasB*S - V(x, y)
//
// and adds delta to each color channel, clamping to [0,255]. Neighbors
// outside the image count as full brightness (255).
func Sharpen(buf Buffer, cfg Config) (Matrix[RGB], error) {
	if err := buf.Validate(); err != nil {
		return Matrix[RGB]{}, err
	}
	lum := buf.luminances()
	col := buf.colors()
	inside := neighborTest(lum, cfg.LegacyEdges)

	cells := make([]RGB, buf.Len())
	parallelRows(buf.Height, cfg.Workers, func(y0, y1 int) int {
		for y := y0; y < y1; y++ {
			for x := 0; x < buf.Width; x++ {
				s := weightedSum(lum, inside, &cfg, x, y)
				delta := cfg.BiasA + cfg.BiasB*s - lum.at(x, y)
				c := col.at(x, y)
				cells[x+y*buf.Width] = RGB{
					R: clampChannel(int(c.R) + delta),
					G: clampChannel(int(c.G) + delta),
					B: clampChannel(int(c.B) + delta),
				}
			}
		}
		return 0
	})
	return newMatrix(buf.Width, buf.Height, cells), nil
}

// weightedSum returns floor(sum(Scale * N * w)) over the 3x3 neighborhood
// of (x, y). Terms are accumulated column by column (dx outer, dy inner)
// and each product is rounded on its own so the floor sees the same value
// on every platform.
func weightedSum(lum Matrix[int], inside func(x, y int) bool, cfg *Config, x, y int) int {
	var sum float64
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			n := outsideLuminance
			if inside(x+dx, y+dy) {
				n = lum.at(x+dx, y+dy)
			}
			w := cfg.Kernel[dy+1][dx+1]
			sum += float64(float64(cfg.Scale*float64(n)) * float64(w))
		}
	}
	return int(math.Floor(sum))
}

// neighborTest picks the bounds check used for neighbor lookups.
func neighborTest[T any](m Matrix[T], legacy bool) func(x, y int) bool {
	if legacy {
		return m.LinearInBounds
	}
	return m.InBounds
}
