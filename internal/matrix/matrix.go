// Package matrix implements the dense linear algebra used by the network engine.
//
// A Matrix is an immutable row-major grid of float64 values. Every operation
// returns a fresh Matrix and never mutates its operands, so values can be
// shared freely between goroutines.
//
// Shape violations are reported as errors wrapping ErrDimensionMismatch and
// no partially computed result is ever returned.
package matrix

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Matrix is a dense rows×cols matrix stored in row-major order.
// Element (r, c) lives at data[r*cols+c].
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New creates a rows×cols matrix from data in row-major order.
//
// The slice is copied. Returns ErrInvalidSize if len(data) != rows*cols.
//
// Example:
//
//	m, err := matrix.New(2, 2, []float64{1, 2, 3, 4})
func New(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("New(%d,%d) with %d values: %w", rows, cols, len(data), ErrInvalidSize)
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Matrix{rows: rows, cols: cols, data: buf}, nil
}

// Zeros creates a rows×cols matrix filled with zeros.
func Zeros(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Random creates a rows×cols matrix with values uniformly distributed in [0, 1).
// Note: Uses math/rand (not crypto/rand) - appropriate for weight initialization.
func Random(rows, cols int) *Matrix {
	m := Zeros(rows, cols)
	for i := range m.data {
		m.data[i] = rand.Float64() //nolint:gosec // G404: ML uses math/rand intentionally
	}
	return m
}

// RandomFrom is like Random but draws from rng, which makes initialization reproducible.
func RandomFrom(rng *rand.Rand, rows, cols int) *Matrix {
	m := Zeros(rows, cols)
	for i := range m.data {
		m.data[i] = rng.Float64()
	}
	return m
}

// FromVector creates a (len(v), 1) column matrix. The slice is copied.
func FromVector(v []float64) *Matrix {
	buf := make([]float64, len(v))
	copy(buf, v)
	return &Matrix{rows: len(v), cols: 1, data: buf}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Data returns a copy of the row-major backing values.
func (m *Matrix) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("At(%d,%d) on (%d,%d): %w", row, col, m.rows, m.cols, ErrOutOfRange)
	}
	return m.data[row*m.cols+col], nil
}

// SameShape reports whether m and other have identical dimensions.
func (m *Matrix) SameShape(other *Matrix) bool {
	return m.rows == other.rows && m.cols == other.cols
}

// Equal reports structural equality: same shape and bitwise-equal elements
// under ==. No tolerance is applied.
func (m *Matrix) Equal(other *Matrix) bool {
	if !m.SameShape(other) {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// String renders one row per line with tab-separated columns.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(strconv.FormatFloat(m.data[r*m.cols+c], 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
