package img2skel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBuffer is returned when a pixel buffer does not hold
	// exactly 4*width*height bytes, or a matrix is built from a cell slice
	// of the wrong length.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")

	// ErrOutOfBounds signals an addressing defect: a coordinate outside
	// [0,width) x [0,height) was passed to At or WithUpdates.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrConvergenceExceeded is returned by Skeletonize when thinning hit
	// its pass limit before reaching a fixed point. The accompanying
	// result still holds the last computed matrix.
	ErrConvergenceExceeded = errors.New("thinning did not converge")
)

// BoundsError describes an out-of-bounds access.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("point (%d,%d) outside %dx%d matrix",
		e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// ShapeError describes a buffer or cell slice whose length does not match
// its declared dimensions.
type ShapeError struct {
	Width, Height int
	Length        int
	Want          int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%dx%d image needs %d elements, got %d",
		e.Width, e.Height, e.Want, e.Length)
}

func (e *ShapeError) Unwrap() error { return ErrInvalidBuffer }
