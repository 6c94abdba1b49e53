// SPDX-License-Identifier: MIT

// Package matrix - CSC sparse storage (column-compressed).
//
// Purpose:
//   - Store large sparse operators with O(nnz) memory and column-major
//     iteration, matching the two access patterns of the aggregation core:
//     column scatter for MulVec and per-column sums for stochasticity checks.
//   - Stay immutable after construction: the transition operator is shared,
//     read-only state for every factorization and engine built over it.
//
// Complexity quicksheet:
//   - NewCSC: O(nnz + cols) two-pass build; MulVec: O(nnz); ColSum: O(nnz_j);
//     At: O(nnz_j) linear probe within one column.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// Triplet is one sparse coordinate entry (row, col, value).
// Duplicate (Row,Col) pairs are summed during construction — the standard
// coordinate-to-compressed semantics.
type Triplet struct {
	Row int
	Col int
	Val float64
}

// CSC is an immutable sparse matrix in compressed-sparse-column form.
//   - colPtr has len cols+1; column j occupies [colPtr[j], colPtr[j+1]).
//   - rowIdx/val hold row indices and values, row-sorted within each column.
type CSC struct {
	r, c   int
	colPtr []int
	rowIdx []int
	val    []float64
}

// NewCSC builds a CSC matrix from coordinate triplets.
//
// Implementation:
//   - Stage 1: validate shape and every triplet (bounds, finiteness).
//   - Stage 2: sort a copy of the triplets by (col, row) — deterministic layout
//     independent of input order.
//   - Stage 3: single merge pass summing duplicates and filling colPtr.
//
// Behavior highlights:
//   - Zero-valued triplets are kept out of the structure (they would only
//     inflate nnz; At still reports 0 for them).
//   - The input slice is never mutated.
//
// Errors:
//   - ErrBadShape   (rows/cols non-positive),
//   - ErrBadTriplet (entry outside the declared shape),
//   - ErrNaNInf     (non-finite value).
//
// Complexity: O(nnz log nnz) for the sort, O(nnz + cols) afterwards.
func NewCSC(rows, cols int, entries []Triplet) (*CSC, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewCSC(%d,%d): %w", rows, cols, ErrBadShape)
	}

	// Validate before any allocation proportional to nnz.
	var i int
	for i = 0; i < len(entries); i++ {
		e := entries[i]
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, fmt.Errorf("NewCSC: entry %d at (%d,%d): %w", i, e.Row, e.Col, ErrBadTriplet)
		}
		if math.IsNaN(e.Val) || math.IsInf(e.Val, 0) {
			return nil, fmt.Errorf("NewCSC: entry %d at (%d,%d): %w", i, e.Row, e.Col, ErrNaNInf)
		}
	}

	// Deterministic layout: sort a private copy by (col, row).
	sorted := make([]Triplet, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Col != sorted[b].Col {
			return sorted[a].Col < sorted[b].Col
		}
		return sorted[a].Row < sorted[b].Row
	})

	m := &CSC{
		r:      rows,
		c:      cols,
		colPtr: make([]int, cols+1),
		rowIdx: make([]int, 0, len(sorted)),
		val:    make([]float64, 0, len(sorted)),
	}

	// Merge pass: sum duplicates, drop exact zeros, fill column pointers.
	var col int
	for i = 0; i < len(sorted); {
		j := i + 1
		v := sorted[i].Val
		for j < len(sorted) && sorted[j].Col == sorted[i].Col && sorted[j].Row == sorted[i].Row {
			v += sorted[j].Val
			j++
		}
		if v != 0 {
			for col < sorted[i].Col {
				col++
				m.colPtr[col] = len(m.rowIdx)
			}
			m.rowIdx = append(m.rowIdx, sorted[i].Row)
			m.val = append(m.val, v)
		}
		i = j
	}
	for col < cols {
		col++
		m.colPtr[col] = len(m.rowIdx)
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *CSC) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *CSC) Cols() int { return m.c }

// NNZ returns the number of stored (structurally nonzero) entries.
// Complexity: O(1).
func (m *CSC) NNZ() int { return len(m.val) }

// At retrieves the element at (i, j); absent entries read as 0.
// Returns ErrOutOfRange on invalid indices.
// Complexity: O(nnz_j) linear probe within column j.
func (m *CSC) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("CSC.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	var p int
	for p = m.colPtr[j]; p < m.colPtr[j+1]; p++ { // row-sorted probe
		if m.rowIdx[p] == i {
			return m.val[p], nil
		}
	}

	return 0, nil
}

// ColSum returns Σ_i m[i,j] for column j — the mass leaving state j when the
// matrix is a column-stochastic operator.
//
// Errors:
//   - ErrOutOfRange on an invalid column index.
//
// Complexity: O(nnz_j).
func (m *CSC) ColSum(j int) (float64, error) {
	if j < 0 || j >= m.c {
		return 0, fmt.Errorf("CSC.ColSum(%d): %w", j, ErrOutOfRange)
	}

	var s float64
	var p int
	for p = m.colPtr[j]; p < m.colPtr[j+1]; p++ {
		s += m.val[p]
	}

	return s, nil
}

// MinValue returns the smallest stored value (0 for an empty structure).
// Used by ingestion checks to reject negative entries in one pass.
// Complexity: O(nnz).
func (m *CSC) MinValue() float64 {
	var minV float64
	var p int
	for p = 0; p < len(m.val); p++ {
		if p == 0 || m.val[p] < minV {
			minV = m.val[p]
		}
	}

	return minV
}

// MulVec computes dst = m·x by column scatter: for each column j with x[j]≠0,
// dst accumulates x[j] times the stored column. dst and x MUST NOT alias.
//
// Implementation:
//   - Stage 1: validate dimensions.
//   - Stage 2: clear dst, then scatter columns left to right (deterministic).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity: O(rows + nnz), zero allocations.
func (m *CSC) MulVec(x, dst []float64) error {
	if m == nil {
		return kernelErrorf(opMatVec, ErrNilMatrix)
	}
	if len(x) != m.c || len(dst) != m.r {
		return kernelErrorf(opMatVec, ErrDimensionMismatch)
	}

	Zero(dst)

	var j, p int
	var xj float64
	for j = 0; j < m.c; j++ { // left-to-right column order
		xj = x[j]
		if xj == 0 {
			continue // structural skip; contributes nothing
		}
		for p = m.colPtr[j]; p < m.colPtr[j+1]; p++ {
			dst[m.rowIdx[p]] += xj * m.val[p]
		}
	}

	return nil
}
