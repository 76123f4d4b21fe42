package img2skel

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Binary pixel values used by the thinning matrices.
const (
	Background uint8 = 0
	Foreground uint8 = 1
)

// SubIteration selects one of the two alternating Zhang-Suen sub-passes.
// They differ only in which neighbor triples must contain a background
// pixel, which keeps erosion from drifting toward one side of a shape.
type SubIteration int

const (
	SubIterationA SubIteration = iota
	SubIterationB
)

func (s SubIteration) String() string {
	switch s {
	case SubIterationA:
		return "A"
	case SubIterationB:
		return "B"
	}
	return fmt.Sprintf("SubIteration(%d)", int(s))
}

// Neighbor positions p2..p9, clockwise from north, as indexes into a
// Neighborhood.
const (
	P2 = iota // north
	P3        // north-east
	P4        // east
	P5        // south-east
	P6        // south
	P7        // south-west
	P8        // west
	P9        // north-west
)

// neighborOffsets lists (dx, dy) for p2..p9.
var neighborOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// subIterationTriples holds, per sub-iteration, the two neighbor triples
// of which at least one member must be background for a deletion.
var subIterationTriples = [2][2][3]int{
	SubIterationA: {{P2, P4, P6}, {P4, P6, P8}},
	SubIterationB: {{P2, P4, P8}, {P2, P6, P8}},
}

// Triples returns the neighbor triples tested by s.
func (s SubIteration) Triples() [2][3]int {
	return subIterationTriples[s]
}

// Neighborhood holds the eight binary neighbors p2..p9 of a pixel.
type Neighborhood [8]uint8

// Count returns the number of foreground neighbors, B(P1).
func (n Neighborhood) Count() int {
	v := 0
	for _, p := range n {
		v += int(p)
	}
	return v
}

// Transitions returns the number of 0->1 transitions in the cyclic
// sequence p2, p3, ..., p9, p2, A(P1).
func (n Neighborhood) Transitions() int {
	t := 0
	for i := range n {
		if n[i] == 0 && n[(i+1)%len(n)] == 1 {
			t++
		}
	}
	return t
}

// Deletable reports whether a foreground pixel with neighborhood n is
// removed by sub-iteration s: it must have between two and six foreground
// neighbors, exactly one 0->1 transition, and a background pixel in each
// of the sub-iteration's triples.
func (s SubIteration) Deletable(n Neighborhood) bool {
	if v := n.Count(); v < 2 || v > 6 {
		return false
	}
	if n.Transitions() != 1 {
		return false
	}
	for _, tr := range s.Triples() {
		if n[tr[0]]*n[tr[1]]*n[tr[2]] != 0 {
			return false
		}
	}
	return true
}

// neighborhoodAt gathers p2..p9 around (x, y). Neighbors rejected by
// inside count as background.
func neighborhoodAt(m Matrix[uint8], inside func(x, y int) bool, x, y int) Neighborhood {
	var n Neighborhood
	for k, off := range neighborOffsets {
		nx, ny := x+off[0], y+off[1]
		if inside(nx, ny) {
			n[k] = m.at(nx, ny)
		}
	}
	return n
}

// Binarize marks every pixel whose red, green and blue channels are all at
// most cfg.Darkness as Foreground and everything else as Background.
func Binarize(buf Buffer, cfg Config) (Matrix[uint8], error) {
	if err := buf.Validate(); err != nil {
		return Matrix[uint8]{}, err
	}
	bottom := cfg.Darkness
	cells := make([]uint8, buf.Len())
	for i := range cells {
		c := buf.rgbAt(i)
		g := c.G
		if cfg.LegacyBinarize {
			g = c.B
		}
		if int(c.R) <= bottom && int(g) <= bottom && int(c.B) <= bottom {
			cells[i] = Foreground
		}
	}
	return newMatrix(buf.Width, buf.Height, cells), nil
}

// ThinStep runs one sub-iteration over the whole matrix. Every decision
// reads m; results go to a new matrix, which is returned together with the
// number of pixels deleted.
func ThinStep(m Matrix[uint8], s SubIteration, cfg Config) (Matrix[uint8], int) {
	inside := neighborTest(m, cfg.LegacyEdges)
	cells := make([]uint8, m.Len())
	deleted := parallelRows(m.height, cfg.Workers, func(y0, y1 int) int {
		n := 0
		for y := y0; y < y1; y++ {
			for x := 0; x < m.width; x++ {
				i := x + y*m.width
				if m.cells[i] == Background {
					continue
				}
				if s.Deletable(neighborhoodAt(m, inside, x, y)) {
					n++
					continue
				}
				cells[i] = Foreground
			}
		}
		return n
	})
	return newMatrix(m.width, m.height, cells), deleted
}

// ThinPass runs SubIterationA followed by SubIterationB and returns the
// resulting matrix and the deletions made by both.
func ThinPass(m Matrix[uint8], cfg Config) (Matrix[uint8], int) {
	a, da := ThinStep(m, SubIterationA, cfg)
	b, db := ThinStep(a, SubIterationB, cfg)
	return b, da + db
}

// PassFunc observes thinning progress. It is called after each full pass
// with the 1-based pass number, the matrix produced by the pass and the
// number of pixels it deleted.
type PassFunc func(pass int, m Matrix[uint8], deletions int)

// ThinResult is the outcome of Thin.
type ThinResult struct {
	// Matrix is the final binary matrix, or the last one computed when
	// thinning stopped early.
	Matrix Matrix[uint8]
	// Passes counts full passes, including the final one that deleted
	// nothing.
	Passes int
	// Deletions is the total number of pixels removed.
	Deletions int
	// Truncated is set when the pass limit or the context stopped
	// thinning before a fixed point.
	Truncated bool
}

// MaxPassesFor returns the pass limit used for a width x height image
// when Config.MaxPasses is zero. Each pass that does not terminate the
// loop peels at least one boundary layer, so the diagonal plus a final
// confirming pass is always enough for a shape that can converge.
func MaxPassesFor(width, height int) int {
	return int(math.Ceil(math.Hypot(float64(width), float64(height)))) + 2
}

// Thin repeats ThinPass until a pass deletes nothing. It stops with
// ErrConvergenceExceeded after cfg.MaxPasses passes, or with the context's
// error if ctx is done; the context is checked once per pass. In both
// cases the returned result holds the last matrix computed.
func Thin(ctx context.Context, m Matrix[uint8], cfg Config) (ThinResult, error) {
	limit := cfg.MaxPasses
	if limit <= 0 {
		limit = MaxPassesFor(m.width, m.height)
	}
	log := Logger()
	start := time.Now()

	res := ThinResult{Matrix: m}
	for {
		if err := ctx.Err(); err != nil {
			res.Truncated = true
			return res, fmt.Errorf("thinning stopped after %d passes: %w", res.Passes, err)
		}
		if res.Passes >= limit {
			res.Truncated = true
			log.Warn("thinning pass limit reached",
				"passes", res.Passes, "deletions", res.Deletions)
			return res, fmt.Errorf("%w after %d passes", ErrConvergenceExceeded, res.Passes)
		}

		next, deleted := ThinPass(res.Matrix, cfg)
		res.Matrix = next
		res.Passes++
		res.Deletions += deleted
		log.Debug("thinning pass", "pass", res.Passes, "deletions", deleted)
		if cfg.OnPass != nil {
			cfg.OnPass(res.Passes, next, deleted)
		}
		if deleted == 0 {
			break
		}
	}

	log.Debug("thinning converged",
		"passes", res.Passes,
		"deletions", res.Deletions,
		"elapsed", time.Since(start))
	return res, nil
}

// SkeletonResult is the outcome of Skeletonize.
type SkeletonResult struct {
	ThinResult
	// Image is the binary matrix rendered with the configured colors.
	Image Matrix[RGB]
}

// Skeletonize binarizes buf with cfg.Darkness and thins the foreground to
// a one pixel wide skeleton using the Zhang-Suen rule. Buffers are usually
// the rendered output of Grayscale. Errors from Thin are returned along
// with the partially thinned result.
func Skeletonize(ctx context.Context, buf Buffer, cfg Config) (SkeletonResult, error) {
	bin, err := Binarize(buf, cfg)
	if err != nil {
		return SkeletonResult{}, err
	}
	tr, err := Thin(ctx, bin, cfg)
	res := SkeletonResult{
		ThinResult: tr,
		Image:      RenderBinary(tr.Matrix, cfg.Foreground, cfg.Background),
	}
	return res, err
}

// RenderBinary maps Foreground cells to fg and all others to bg.
func RenderBinary(m Matrix[uint8], fg, bg RGB) Matrix[RGB] {
	return MapMatrix(m, func(v uint8) RGB {
		if v == Foreground {
			return fg
		}
		return bg
	})
}

// Overlay paints every Foreground cell of skel onto src in color c. Both
// matrices must have the same shape.
func Overlay(src Matrix[RGB], skel Matrix[uint8], c RGB) (Matrix[RGB], error) {
	if src.width != skel.width || src.height != skel.height {
		return Matrix[RGB]{}, fmt.Errorf("overlay %dx%d onto %dx%d: %w",
			skel.width, skel.height, src.width, src.height, ErrInvalidBuffer)
	}
	var points []Point[RGB]
	for y := 0; y < skel.height; y++ {
		for x := 0; x < skel.width; x++ {
			if skel.at(x, y) == Foreground {
				points = append(points, Point[RGB]{X: x, Y: y, Value: c})
			}
		}
	}
	return src.WithUpdates(points)
}
