package img2skel

import (
	"image"

	"github.com/wbrown/img2skel/imageutil"
)

// ToImage renders a color matrix into an opaque RGBA image, one image
// pixel per cell.
func ToImage(m Matrix[RGB]) *image.RGBA {
	return ToImageScaled(m, 1)
}

// ToImageScaled renders a color matrix with every cell painted as a
// scale x scale square. A scale below one is treated as one.
func ToImageScaled(m Matrix[RGB], scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := imageutil.NewRGBAImage(m.width*scale, m.height*scale)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			drawCell(img, x*scale, y*scale, scale, m.at(x, y))
		}
	}
	return img.RGBA
}

// drawCell fills the scale x scale square at (px, py) with c.
func drawCell(img *imageutil.RGBAImage, px, py, scale int, c RGB) {
	col := imageutil.RGB{R: c.R, G: c.G, B: c.B}
	for dy := 0; dy < scale; dy++ {
		for dx := 0; dx < scale; dx++ {
			img.SetRGB(px+dx, py+dy, col)
		}
	}
}

// MatrixFromImage reads the colors of any decoded image into a matrix,
// discarding alpha.
func MatrixFromImage(img image.Image) Matrix[RGB] {
	return BufferFromImage(img).colors()
}

// SaveMatrix writes m to path in the format implied by its extension
// (see imageutil.SaveImage).
func SaveMatrix(m Matrix[RGB], path string) error {
	return imageutil.SaveImage(ToImage(m), path)
}

// SaveBinary writes a thinning matrix to path using the given colors.
func SaveBinary(m Matrix[uint8], fg, bg RGB, path string) error {
	return SaveMatrix(RenderBinary(m, fg, bg), path)
}
