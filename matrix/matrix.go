// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float64 matrices used by the network engine.
//
// Matrices are immutable: every operation returns a new Matrix. Operations
// with shape preconditions return an error wrapping ErrDimensionMismatch.
//
// Example:
//
//	a, _ := matrix.New(2, 3, []float64{1, 2, 3, 4, 5, 6})
//	b := matrix.FromVector([]float64{1, 0, 1})
//	c, err := a.DotMultiply(b) // shape (2, 1)
package matrix

import (
	"math/rand"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Matrix is a dense row-major matrix of float64 values.
type Matrix = matrix.Matrix

// Errors.
var (
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrInvalidSize       = matrix.ErrInvalidSize
	ErrOutOfRange        = matrix.ErrOutOfRange
)

// New creates a rows×cols matrix from row-major data.
func New(rows, cols int, data []float64) (*Matrix, error) {
	return matrix.New(rows, cols, data)
}

// Zeros creates a rows×cols matrix of zeros.
func Zeros(rows, cols int) *Matrix {
	return matrix.Zeros(rows, cols)
}

// Random creates a rows×cols matrix with values uniform in [0, 1).
func Random(rows, cols int) *Matrix {
	return matrix.Random(rows, cols)
}

// RandomFrom is like Random but draws from rng.
func RandomFrom(rng *rand.Rand, rows, cols int) *Matrix {
	return matrix.RandomFrom(rng, rows, cols)
}

// FromVector creates a (len(v), 1) column matrix.
func FromVector(v []float64) *Matrix {
	return matrix.FromVector(v)
}
