package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Add with
	// different shapes or DotMultiply where a.Cols() != b.Rows().
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidSize indicates that the backing data does not hold rows*cols values.
	ErrInvalidSize = errors.New("matrix: invalid size")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// shapeErrorf wraps ErrDimensionMismatch with the operation and both operand shapes.
func shapeErrorf(op string, a, b *Matrix) error {
	return fmt.Errorf("%s: (%d,%d) vs (%d,%d): %w", op, a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
}
