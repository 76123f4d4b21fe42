package img2skel

// Grayscale converts every pixel of buf to the gray triple (Y, Y, Y),
// where Y is the pixel's Luminance. The result has the shape of buf.
func Grayscale(buf Buffer) (Matrix[RGB], error) {
	if err := buf.Validate(); err != nil {
		return Matrix[RGB]{}, err
	}
	cells := make([]RGB, buf.Len())
	for i := range cells {
		cells[i] = Gray(buf.rgbAt(i).Luminance())
	}
	return newMatrix(buf.Width, buf.Height, cells), nil
}

// Brightness returns the smallest and largest luminance found in buf. An
// empty buffer reports (0, 0).
func Brightness(buf Buffer) (lo, hi int, err error) {
	if err := buf.Validate(); err != nil {
		return 0, 0, err
	}
	if buf.Len() == 0 {
		return 0, 0, nil
	}
	lo, hi = 255, 0
	for i := 0; i < buf.Len(); i++ {
		y := buf.rgbAt(i).Luminance()
		lo = min(lo, y)
		hi = max(hi, y)
	}
	return lo, hi, nil
}

// DefaultBand derives BrightnessBand thresholds from an image's luminance
// range: p1 is half the range and p2 lies 30 levels above it, wrapping
// modulo 255. When the wrap would put p2 below p1 the band is empty and
// BrightnessBand leaves every pixel untouched.
//
// Half of an odd range is a half-integer. Since luminance is integral,
// Y < r/2 is the same test as Y < ceil(r/2), and Y > r/2+30 the same as
// Y > floor(r/2)+30, so the integer thresholds select exactly the pixels
// the fractional ones would.
func DefaultBand(lo, hi int) Band {
	r := hi - lo
	return Band{Low: (r + 1) / 2, High: (r/2 + 30) % 255}
}
