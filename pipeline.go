package img2skel

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stages holds the output of every transform for one input image.
type Stages struct {
	Original  Matrix[RGB]
	Grayscale Matrix[RGB]
	Band      Matrix[RGB]
	BandRange Band
	Sharpen   Matrix[RGB]
	// Skeleton is nil when the pipeline ran without thinning.
	Skeleton *SkeletonResult
}

// Panel is a titled matrix, the unit laid out by ContactSheet.
type Panel struct {
	Title  string
	Matrix Matrix[RGB]
}

// Panels lists the stages in display order.
func (s Stages) Panels() []Panel {
	panels := []Panel{
		{"original", s.Original},
		{"grayscale", s.Grayscale},
		{fmt.Sprintf("band %d-%d", s.BandRange.Low, s.BandRange.High), s.Band},
		{"sharpen", s.Sharpen},
	}
	if s.Skeleton != nil {
		panels = append(panels, Panel{
			Title:  fmt.Sprintf("skeleton (%d passes)", s.Skeleton.Passes),
			Matrix: s.Skeleton.Image,
		})
	}
	return panels
}

// Pipeline runs the transforms side by side on one image: grayscale,
// brightness band, sharpen, and optionally skeletonization of the
// grayscale output.
type Pipeline struct {
	Config Config
	// Skeleton enables the thinning stage.
	Skeleton bool
}

// NewPipeline returns a pipeline using cfg with thinning enabled.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{Config: cfg, Skeleton: true}
}

// Run executes every stage on buf. The independent stages run
// concurrently. When thinning stops early the partial skeleton is kept
// in the returned Stages alongside the error.
func (p *Pipeline) Run(ctx context.Context, buf Buffer) (Stages, error) {
	if err := buf.Validate(); err != nil {
		return Stages{}, err
	}
	if err := p.Config.Validate(); err != nil {
		return Stages{}, fmt.Errorf("invalid config: %w", err)
	}

	cfg := p.Config
	band := cfg.Band
	if band == nil {
		lo, hi, err := Brightness(buf)
		if err != nil {
			return Stages{}, err
		}
		b := DefaultBand(lo, hi)
		band = &b
		Logger().Debug("derived brightness band",
			"min", lo, "max", hi, "low", b.Low, "high", b.High)
	}

	st := Stages{
		Original:  buf.colors(),
		BandRange: *band,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		start := time.Now()
		if st.Grayscale, err = Grayscale(buf); err != nil {
			return err
		}
		timeStage("grayscale", start)
		if !p.Skeleton {
			return nil
		}
		defer timeStage("skeleton", time.Now())
		res, err := Skeletonize(ctx, BufferFromMatrix(st.Grayscale), cfg)
		st.Skeleton = &res
		return err
	})
	g.Go(func() error {
		var err error
		defer timeStage("band", time.Now())
		st.Band, err = BrightnessBand(buf, band.Low, band.High)
		return err
	})
	g.Go(func() error {
		var err error
		defer timeStage("sharpen", time.Now())
		st.Sharpen, err = Sharpen(buf, cfg)
		return err
	})
	err := g.Wait()
	return st, err
}

func timeStage(name string, start time.Time) {
	Logger().Debug("stage done", "stage", name, "elapsed", time.Since(start))
}
