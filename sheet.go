package img2skel

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wbrown/img2skel/imageutil"
)

// SheetOptions controls ContactSheet layout.
type SheetOptions struct {
	// Columns is the number of panels per row; zero puts every panel on
	// one row.
	Columns int
	// Scale enlarges every cell to a Scale x Scale square.
	Scale int
	// Padding is the gap in pixels around and between panels.
	Padding int
	// FontSize is the caption size in points; zero disables captions.
	FontSize float64
	// Background fills the space between panels.
	Background RGB
	// Caption colors the caption text.
	Caption RGB
}

// DefaultSheetOptions returns a single-row layout with 12pt captions.
func DefaultSheetOptions() SheetOptions {
	return SheetOptions{
		Scale:      1,
		Padding:    8,
		FontSize:   12,
		Background: RGB{48, 48, 48},
		Caption:    White,
	}
}

var (
	captionFontOnce sync.Once
	captionFont     *truetype.Font
	captionFontErr  error
)

// loadCaptionFont parses the embedded Go Regular TrueType font once.
func loadCaptionFont() (*truetype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = freetype.ParseFont(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// ContactSheet lays panels out on a grid, each with its title rendered
// above it, the way the stages of one image are shown side by side.
func ContactSheet(panels []Panel, opts SheetOptions) (*image.RGBA, error) {
	if len(panels) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	cols := opts.Columns
	if cols <= 0 || cols > len(panels) {
		cols = len(panels)
	}
	rows := (len(panels) + cols - 1) / cols

	cellW, cellH := 0, 0
	for _, p := range panels {
		cellW = max(cellW, p.Matrix.Width()*opts.Scale)
		cellH = max(cellH, p.Matrix.Height()*opts.Scale)
	}

	var ttf *truetype.Font
	captionH, ascent := 0, 0
	if opts.FontSize > 0 {
		var err error
		if ttf, err = loadCaptionFont(); err != nil {
			return nil, fmt.Errorf("failed to load caption font: %w", err)
		}
		face := truetype.NewFace(ttf, &truetype.Options{
			Size:    opts.FontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		m := face.Metrics()
		ascent = m.Ascent.Ceil()
		captionH = (m.Ascent + m.Descent).Ceil() + opts.Padding/2
		face.Close()
	}

	pad := opts.Padding
	width := pad + cols*(cellW+pad)
	height := pad + rows*(captionH+cellH+pad)
	sheet := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{opts.Background.ToColor()},
		image.Point{}, draw.Src)

	var ctx *freetype.Context
	if ttf != nil {
		ctx = freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(ttf)
		ctx.SetFontSize(opts.FontSize)
		ctx.SetClip(sheet.Bounds())
		ctx.SetDst(sheet)
		ctx.SetSrc(&image.Uniform{opts.Caption.ToColor()})
		ctx.SetHinting(font.HintingFull)
	}

	for i, p := range panels {
		x0 := pad + (i%cols)*(cellW+pad)
		y0 := pad + (i/cols)*(captionH+cellH+pad)

		if ctx != nil && p.Title != "" {
			if _, err := ctx.DrawString(p.Title, freetype.Pt(x0, y0+ascent)); err != nil {
				return nil, fmt.Errorf("failed to draw caption %q: %w", p.Title, err)
			}
		}

		panel := ToImageScaled(p.Matrix, opts.Scale)
		at := image.Pt(x0, y0+captionH)
		draw.Draw(sheet, panel.Bounds().Add(at), panel, image.Point{}, draw.Src)
	}
	return sheet, nil
}

// SaveContactSheet renders panels with ContactSheet and writes the result
// to path.
func SaveContactSheet(panels []Panel, opts SheetOptions, path string) error {
	sheet, err := ContactSheet(panels, opts)
	if err != nil {
		return err
	}
	return imageutil.SaveImage(sheet, path)
}
