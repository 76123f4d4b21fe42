// Package img2skel implements classical pixel-level transforms over raw
// RGBA buffers: luminance conversion, brightness-band masking, 3x3
// convolution sharpening and Zhang-Suen skeletonization.
//
// Every transform reads an immutable snapshot and produces a new Matrix of
// the same shape. Decoding image files and displaying the results are left
// to the caller; the imageutil package and the presentation helpers in this
// package (ToImage, RenderToAnsi, ContactSheet) cover the common cases.
package img2skel

// Matrix is an immutable two-dimensional grid of cells stored in row-major
// order, so the cell at (x, y) lives at index x + y*width.
type Matrix[T any] struct {
	width  int
	height int
	cells  []T
}

// Point is a single cell assignment used by WithUpdates.
type Point[T any] struct {
	X, Y  int
	Value T
}

// NewMatrix creates a matrix from a row-major cell slice. The slice is
// copied, so later changes by the caller do not leak into the matrix.
func NewMatrix[T any](width, height int, cells []T) (Matrix[T], error) {
	if width < 0 || height < 0 || len(cells) != width*height {
		return Matrix[T]{}, &ShapeError{
			Width:  width,
			Height: height,
			Length: len(cells),
			Want:   width * height,
		}
	}
	owned := make([]T, len(cells))
	copy(owned, cells)
	return Matrix[T]{width: width, height: height, cells: owned}, nil
}

// newMatrix adopts cells without copying. Callers must hand over a freshly
// allocated slice of length width*height that nothing else references.
func newMatrix[T any](width, height int, cells []T) Matrix[T] {
	return Matrix[T]{width: width, height: height, cells: cells}
}

// Width returns the number of columns.
func (m Matrix[T]) Width() int { return m.width }

// Height returns the number of rows.
func (m Matrix[T]) Height() int { return m.height }

// Len returns the number of cells, always Width()*Height().
func (m Matrix[T]) Len() int { return len(m.cells) }

// InBounds reports whether (x, y) addresses a cell of the matrix.
func (m Matrix[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// LinearInBounds reports whether the linear index x + y*width falls inside
// the cell slice. Unlike InBounds it lets x run off one row into the next,
// which is how the legacy edge handling addressed neighbors.
func (m Matrix[T]) LinearInBounds(x, y int) bool {
	i := x + y*m.width
	return i >= 0 && i < len(m.cells)
}

// At returns the cell at (x, y), or a *BoundsError if (x, y) lies outside
// [0,width) x [0,height).
func (m Matrix[T]) At(x, y int) (T, error) {
	if !m.InBounds(x, y) {
		var zero T
		return zero, &BoundsError{X: x, Y: y, Width: m.width, Height: m.height}
	}
	return m.cells[x+y*m.width], nil
}

// at is the unchecked accessor used by the transforms once a coordinate
// has passed InBounds or LinearInBounds.
func (m Matrix[T]) at(x, y int) T {
	return m.cells[x+y*m.width]
}

// Cells returns a copy of the row-major cell slice.
func (m Matrix[T]) Cells() []T {
	out := make([]T, len(m.cells))
	copy(out, m.cells)
	return out
}

// WithUpdates returns a new matrix with the given points overwritten. The
// receiver is left untouched. If any point is out of bounds no matrix is
// produced and the error identifies the first offending point.
func (m Matrix[T]) WithUpdates(points []Point[T]) (Matrix[T], error) {
	cells := make([]T, len(m.cells))
	copy(cells, m.cells)
	for _, p := range points {
		if !m.InBounds(p.X, p.Y) {
			return Matrix[T]{}, &BoundsError{
				X: p.X, Y: p.Y, Width: m.width, Height: m.height,
			}
		}
		cells[p.X+p.Y*m.width] = p.Value
	}
	return newMatrix(m.width, m.height, cells), nil
}

// Equal reports whether two matrices have the same shape and cells.
func Equal[T comparable](a, b Matrix[T]) bool {
	if a.width != b.width || a.height != b.height {
		return false
	}
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			return false
		}
	}
	return true
}

// MapMatrix applies fn to every cell of m and returns the resulting matrix.
func MapMatrix[T, U any](m Matrix[T], fn func(T) U) Matrix[U] {
	cells := make([]U, len(m.cells))
	for i, v := range m.cells {
		cells[i] = fn(v)
	}
	return newMatrix(m.width, m.height, cells)
}
