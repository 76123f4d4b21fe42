package img2skel

import (
	"image"

	"github.com/wbrown/img2skel/imageutil"
)

// Buffer is a raw RGBA pixel buffer: 4 bytes per pixel in R, G, B, A
// order, row-major from the top-left corner, with no row padding.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
}

// NewBuffer validates pix against the given dimensions. The slice is used
// as is; transforms never write to it.
func NewBuffer(pix []byte, width, height int) (Buffer, error) {
	b := Buffer{Pix: pix, Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	return b, nil
}

// BufferFromImage flattens any decoded image into a Buffer.
func BufferFromImage(img image.Image) Buffer {
	rgba := imageutil.RGBAImageFromImage(img)
	return Buffer{
		Pix:    rgba.Pixels(),
		Width:  rgba.Width(),
		Height: rgba.Height(),
	}
}

// BufferFromMatrix renders a color matrix back into an opaque RGBA
// buffer, so the output of one transform can feed another.
func BufferFromMatrix(m Matrix[RGB]) Buffer {
	pix := make([]byte, 4*m.Len())
	for i, c := range m.cells {
		pix[4*i] = c.R
		pix[4*i+1] = c.G
		pix[4*i+2] = c.B
		pix[4*i+3] = 255
	}
	return Buffer{Pix: pix, Width: m.width, Height: m.height}
}

// Validate returns an ErrInvalidBuffer error unless the buffer holds
// exactly 4*Width*Height bytes.
func (b Buffer) Validate() error {
	want := 4 * b.Width * b.Height
	if b.Width < 0 || b.Height < 0 || len(b.Pix) != want {
		return &ShapeError{
			Width:  b.Width,
			Height: b.Height,
			Length: len(b.Pix),
			Want:   want,
		}
	}
	return nil
}

// Len returns the number of pixels.
func (b Buffer) Len() int { return b.Width * b.Height }

// rgbAt returns the color of the i-th pixel in row-major order.
func (b Buffer) rgbAt(i int) RGB {
	p := b.Pix[4*i : 4*i+3 : 4*i+3]
	return RGB{p[0], p[1], p[2]}
}

// colors decodes every pixel once.
func (b Buffer) colors() Matrix[RGB] {
	cells := make([]RGB, b.Len())
	for i := range cells {
		cells[i] = b.rgbAt(i)
	}
	return newMatrix(b.Width, b.Height, cells)
}

// luminances computes the luminance of every pixel once.
func (b Buffer) luminances() Matrix[int] {
	cells := make([]int, b.Len())
	for i := range cells {
		p := b.Pix[4*i : 4*i+3 : 4*i+3]
		cells[i] = Luminance(p[0], p[1], p[2])
	}
	return newMatrix(b.Width, b.Height, cells)
}
