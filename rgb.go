package img2skel

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255.
type RGB struct {
	R, G, B uint8
}

var (
	// White is the fill used for masked and background pixels.
	White = RGB{255, 255, 255}
	// Black is the default skeleton foreground.
	Black = RGB{0, 0, 0}
)

// Hex renders the color as a six-digit hexadecimal string such as
// "#FFFFFF".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer using the hexadecimal form.
func (c RGB) String() string { return c.Hex() }

// ToColor converts the color to an opaque color.RGBA for use with the
// standard image packages.
func (c RGB) ToColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ParseHex parses a "#RRGGBB" or "#RGB" color string. Case is ignored.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("failed to parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Luminance returns floor(0.299R + 0.587G + 0.114B), the BT.601 weighted
// brightness of a pixel, in [0,255].
//
// The sum is evaluated in float64 from left to right with each product
// rounded before the addition, so the result is identical on every
// platform (no fused multiply-add). A consequence of the binary
// representation of the weights is that some grays land one below their
// channel value, e.g. Luminance(128,128,128) == 127.
func Luminance(r, g, b uint8) int {
	y := float64(0.299*float64(r)) +
		float64(0.587*float64(g)) +
		float64(0.114*float64(b))
	v := int(y)
	if v > 255 {
		v = 255
	}
	return v
}

// Luminance returns the luminance of the color.
func (c RGB) Luminance() int {
	return Luminance(c.R, c.G, c.B)
}

// Gray returns the gray triple (v, v, v).
func Gray(v int) RGB {
	u := clampChannel(v)
	return RGB{u, u, u}
}

// clampChannel clamps an integer channel value to [0,255].
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
