package img2skel

import (
	"errors"
	"testing"
)

func TestNewMatrixRejectsWrongLength(t *testing.T) {
	_, err := NewMatrix(3, 2, make([]int, 5))
	if !errors.Is(err, ErrInvalidBuffer) {
		t.Fatalf("Expected ErrInvalidBuffer, got %v", err)
	}
	var shape *ShapeError
	if !errors.As(err, &shape) || shape.Want != 6 || shape.Length != 5 {
		t.Errorf("Expected ShapeError{Want:6, Length:5}, got %#v", err)
	}
}

func TestMatrixRowMajorAddressing(t *testing.T) {
	m, err := NewMatrix(3, 2, []int{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if m.Width() != 3 || m.Height() != 2 || m.Len() != 6 {
		t.Fatalf("Unexpected shape %dx%d (%d cells)", m.Width(), m.Height(), m.Len())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v, err := m.At(x, y)
			if err != nil {
				t.Fatalf("At(%d,%d): %v", x, y, err)
			}
			if v != x+3*y {
				t.Errorf("At(%d,%d) = %d, want %d", x, y, v, x+3*y)
			}
		}
	}
}

func TestMatrixCopiesInput(t *testing.T) {
	cells := []int{1, 2, 3, 4}
	m, _ := NewMatrix(2, 2, cells)
	cells[0] = 99
	if v, _ := m.At(0, 0); v != 1 {
		t.Error("NewMatrix should copy its cells")
	}
	out := m.Cells()
	out[1] = 99
	if v, _ := m.At(1, 0); v != 2 {
		t.Error("Cells should return a copy")
	}
}

func TestMatrixBounds(t *testing.T) {
	m, _ := NewMatrix(3, 2, make([]int, 6))

	testCases := []struct {
		x, y   int
		in     bool
		linear bool
	}{
		{0, 0, true, true},
		{2, 1, true, true},
		{-1, 0, false, false},
		{3, 0, false, true}, // wraps onto (0, 1)
		{-1, 1, false, true}, // wraps onto (2, 0)
		{0, 2, false, false},
		{3, 1, false, false},
	}
	for _, tc := range testCases {
		if got := m.InBounds(tc.x, tc.y); got != tc.in {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.in)
		}
		if got := m.LinearInBounds(tc.x, tc.y); got != tc.linear {
			t.Errorf("LinearInBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.linear)
		}
	}
}

func TestMatrixAtOutOfBounds(t *testing.T) {
	m, _ := NewMatrix(2, 2, []int{1, 2, 3, 4})
	_, err := m.At(2, 0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Expected ErrOutOfBounds, got %v", err)
	}
	var be *BoundsError
	if !errors.As(err, &be) || be.X != 2 || be.Y != 0 {
		t.Errorf("Expected BoundsError at (2,0), got %#v", err)
	}
}

func TestWithUpdates(t *testing.T) {
	m, _ := NewMatrix(2, 2, []string{"a", "b", "c", "d"})

	updated, err := m.WithUpdates([]Point[string]{
		{X: 1, Y: 0, Value: "B"},
		{X: 0, Y: 1, Value: "C"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := NewMatrix(2, 2, []string{"a", "B", "C", "d"})
	if !Equal(updated, want) {
		t.Errorf("WithUpdates = %v, want %v", updated.Cells(), want.Cells())
	}
	if v, _ := m.At(1, 0); v != "b" {
		t.Error("WithUpdates should not modify the receiver")
	}

	_, err = m.WithUpdates([]Point[string]{{X: 0, Y: 0, Value: "x"}, {X: 5, Y: 5, Value: "y"}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds for (5,5), got %v", err)
	}
}

func TestEqualComparesShape(t *testing.T) {
	a, _ := NewMatrix(2, 3, make([]int, 6))
	b, _ := NewMatrix(3, 2, make([]int, 6))
	if Equal(a, b) {
		t.Error("Matrices of different shape should not be equal")
	}
}

func TestMapMatrix(t *testing.T) {
	m, _ := NewMatrix(2, 1, []uint8{Foreground, Background})
	out := MapMatrix(m, func(v uint8) int { return int(v) * 10 })
	if got := out.Cells(); got[0] != 10 || got[1] != 0 {
		t.Errorf("MapMatrix = %v", got)
	}
	if out.Width() != 2 || out.Height() != 1 {
		t.Error("MapMatrix should preserve shape")
	}
}
