// SPDX-License-Identifier: MIT

// Package matrix - vector and matrix-vector kernels.
//
// Purpose:
//   - Declare the canonical numeric kernels (dot, norms, L1 distance, axpy,
//     dense matrix-vector product) used across the reduction algorithms.
//   - All kernels use fixed 0..n-1 loop orders and validate dimensions up
//     front; hot loops contain no branches beyond the arithmetic itself.
//
// Notes:
//   - Kernels operate on raw []float64 so the Arnoldi inner loops, which own
//     flat column buffers, pay no interface or accessor cost.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping (no magic strings).
const (
	opDot       = "Dot"
	opDist1     = "Dist1"
	opAddScaled = "AddScaled"
	opMatVec    = "MatVec"
)

// kernelErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Use only when err != nil.
func kernelErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Dot returns the inner product Σ x[i]*y[i].
//
// Errors:
//   - ErrDimensionMismatch when len(x) != len(y).
//
// Complexity: O(n).
func Dot(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, kernelErrorf(opDot, ErrDimensionMismatch)
	}

	var s float64
	var i int
	for i = 0; i < len(x); i++ { // deterministic 0..n-1
		s += x[i] * y[i]
	}

	return s, nil
}

// Norm1 returns Σ |x[i]| — the vector 1-norm. Complexity: O(n).
func Norm1(x []float64) float64 {
	var s float64
	var i int
	for i = 0; i < len(x); i++ {
		s += math.Abs(x[i])
	}

	return s
}

// Norm2 returns the Euclidean norm sqrt(Σ x[i]²). Complexity: O(n).
func Norm2(x []float64) float64 {
	var s float64
	var i int
	for i = 0; i < len(x); i++ {
		s += x[i] * x[i]
	}

	return math.Sqrt(s)
}

// Dist1 returns the L1 distance Σ |x[i]−y[i]|.
//
// Errors:
//   - ErrDimensionMismatch when len(x) != len(y).
//
// Complexity: O(n).
func Dist1(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, kernelErrorf(opDist1, ErrDimensionMismatch)
	}

	var s float64
	var i int
	for i = 0; i < len(x); i++ {
		s += math.Abs(x[i] - y[i])
	}

	return s, nil
}

// AddScaled performs dst[i] += a*x[i] in place (the classic axpy).
//
// Errors:
//   - ErrDimensionMismatch when len(dst) != len(x).
//
// Complexity: O(n), zero allocations.
func AddScaled(dst []float64, a float64, x []float64) error {
	if len(dst) != len(x) {
		return kernelErrorf(opAddScaled, ErrDimensionMismatch)
	}

	var i int
	for i = 0; i < len(x); i++ {
		dst[i] += a * x[i]
	}

	return nil
}

// Scale multiplies every element of x by a, in place. Complexity: O(n).
func Scale(x []float64, a float64) {
	var i int
	for i = 0; i < len(x); i++ {
		x[i] *= a
	}
}

// Zero clears x in place. Complexity: O(n).
func Zero(x []float64) {
	var i int
	for i = 0; i < len(x); i++ {
		x[i] = 0
	}
}

// MulVec computes dst = m·x for a dense m (row-major row-wise dot products).
// dst and x MUST NOT alias: the stepping engine relies on writing into a
// separate scratch buffer while reading the current state.
//
// Implementation:
//   - Stage 1: validate m non-nil, len(x)==Cols, len(dst)==Rows.
//   - Stage 2: one dot product per row over the flat buffer; fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity: O(r*c), zero allocations.
func MulVec(m *Dense, x, dst []float64) error {
	if m == nil {
		return kernelErrorf(opMatVec, ErrNilMatrix)
	}
	if len(x) != m.c || len(dst) != m.r {
		return kernelErrorf(opMatVec, ErrDimensionMismatch)
	}

	var i, j, base int
	var s float64
	for i = 0; i < m.r; i++ { // row-wise dot products, deterministic order
		base = i * m.c
		s = 0
		for j = 0; j < m.c; j++ {
			s += m.data[base+j] * x[j]
		}
		dst[i] = s
	}

	return nil
}
