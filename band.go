package img2skel

// BrightnessBand paints every pixel whose luminance Y satisfies
// p1 <= Y <= p2 white and keeps the original color of all others. It
// isolates a mid-tone band as a visual mask, which makes a useful
// pre-filter before thinning.
func BrightnessBand(buf Buffer, p1, p2 int) (Matrix[RGB], error) {
	if err := buf.Validate(); err != nil {
		return Matrix[RGB]{}, err
	}
	cells := make([]RGB, buf.Len())
	for i := range cells {
		c := buf.rgbAt(i)
		if y := c.Luminance(); y < p1 || y > p2 {
			cells[i] = c
		} else {
			cells[i] = White
		}
	}
	return newMatrix(buf.Width, buf.Height, cells), nil
}
