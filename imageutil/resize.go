package imageutil

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation. It is the
	// only method that keeps a black/white image strictly two-valued.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// Fit shrinks img so that it fits inside maxWidth x maxHeight while
// keeping its aspect ratio. Images that already fit are returned as is,
// and a non-positive limit leaves that dimension unconstrained.
func Fit(img *RGBAImage, maxWidth, maxHeight int, interp Interpolation) *RGBAImage {
	width, height := img.Width(), img.Height()
	scale := 1.0
	if maxWidth > 0 && width > maxWidth {
		scale = float64(maxWidth) / float64(width)
	}
	if maxHeight > 0 && height > maxHeight {
		if s := float64(maxHeight) / float64(height); s < scale {
			scale = s
		}
	}
	if scale == 1.0 {
		return img
	}
	w := max(1, int(math.Round(float64(width)*scale)))
	h := max(1, int(math.Round(float64(height)*scale)))
	return Resize(img, w, h, interp)
}

// Crop returns the top-left maxWidth x maxHeight region of img, the way a
// fixed-size canvas clips an image drawn at its natural size.
func Crop(img *RGBAImage, maxWidth, maxHeight int) *RGBAImage {
	width := min(img.Width(), maxWidth)
	height := min(img.Height(), maxHeight)
	if width == img.Width() && height == img.Height() {
		return img
	}
	dst := NewRGBAImage(width, height)
	draw.Draw(dst.RGBA, dst.Bounds(), img.RGBA, image.Point{}, draw.Src)
	return dst
}
