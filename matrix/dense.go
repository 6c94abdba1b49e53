// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support no-copy prefix windows (View) for algorithms that grow inside a
//     buffer preallocated at a capacity and operate on leading sub-regions.
//   - Enforce a numeric policy (rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); View: O(1).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"      // method tag used in error wrappers
	ctxSet     = "Set"     // method tag used in error wrappers
	ctxView    = "View"    // ctor tag for Dense.View
	ctxColInto = "ColInto" // method tag for Dense.ColInto
)

// ---------- formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Keeps a stable "Dense.<method>(row,col): underlying" shape so logs stay
// greppable while errors.Is still matches the sentinel.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set (policy default from options.go).
type Dense struct {
	r, c           int       // row and column counts (>0 for public constructors)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrBadShape.
//   - Stage 2: allocate the zero-filled buffer, set policy defaults.
//
// Errors:
//   - ErrBadShape (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseOf creates an r×c matrix initialized from a row-major slice.
// The slice is copied; the caller keeps ownership of data.
//
// Errors:
//   - ErrBadShape          (rows/cols non-positive),
//   - ErrDimensionMismatch (len(data) != rows*cols),
//   - ErrNaNInf            (non-finite entry under the default policy).
//
// Complexity: O(r*c).
func NewDenseOf(rows, cols int, data []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseOf(%d,%d): len(data)=%d: %w", rows, cols, len(data), ErrDimensionMismatch)
	}

	var i int
	for i = 0; i < len(data); i++ { // deterministic 0..n-1 walk
		if m.validateNaNInf && (math.IsNaN(data[i]) || math.IsInf(data[i], 0)) {
			return nil, fmt.Errorf("NewDenseOf(%d,%d): offset %d: %w", rows, cols, i, ErrNaNInf)
		}
		m.data[i] = data[i]
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// At retrieves the element at position (i, j).
// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
// Complexity: O(1).
func (m *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, denseErrorf(ctxAt, i, j, ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set assigns the value v at position (i, j), honoring the numeric policy.
// Returns ErrOutOfRange on invalid indices, ErrNaNInf on non-finite v when
// validation is enabled.
// Complexity: O(1).
func (m *Dense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return denseErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, i, j, ErrNaNInf)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Clone returns a deep, independent copy preserving the numeric policy.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// ColInto copies column j into dst (len(dst) must equal Rows()).
// The aggregation diagnostics walk basis columns through here; keeping the
// strided gather in-package avoids n error-checked At calls at call sites.
//
// Errors:
//   - ErrOutOfRange        (column index outside bounds),
//   - ErrDimensionMismatch (len(dst) != Rows()).
//
// Complexity: O(r).
func (m *Dense) ColInto(j int, dst []float64) error {
	if j < 0 || j >= m.c {
		return denseErrorf(ctxColInto, 0, j, ErrOutOfRange)
	}
	if len(dst) != m.r {
		return denseErrorf(ctxColInto, len(dst), j, ErrDimensionMismatch)
	}

	var i int
	for i = 0; i < m.r; i++ { // fixed top-to-bottom order
		dst[i] = m.data[i*m.c+j]
	}

	return nil
}

// String provides a readable row-wise dump for diagnostics.
// Not for hot paths; intended for logs and debugging.
// Complexity: O(r*c) time and formatting space.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// View creates a no-copy window [r0:r0+rows, c0:c0+cols) over the same storage.
//
// Implementation:
//   - Stage 1: validate window bounds; allow zero-area.
//   - Stage 2: return MatrixView with offsets.
//
// Behavior highlights:
//   - Writes via the view reflect in the base; policy is inherited.
//   - The adaptive selector reads growing factorizations exclusively through
//     leading-prefix views: bounds move, storage never does.
//
// Errors:
//   - ErrBadShape when the window is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) View(r0, c0, rows, cols int) (*MatrixView, error) {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w", ctxView, r0, c0, rows, cols, ErrBadShape)
	}

	return &MatrixView{
		base: m,    // share storage
		r0:   r0,   // top row in base
		c0:   c0,   // left col in base
		r:    rows, // view height
		c:    cols, // view width
	}, nil
}

// MatrixView is a non-owning window into a Dense (shared storage).
type MatrixView struct {
	base *Dense // underlying storage owner
	r0   int    // top-left row offset in base
	c0   int    // top-left col offset in base
	r    int    // view height
	c    int    // view width
}

// Rows returns the number of rows in the view. Complexity: O(1).
func (v *MatrixView) Rows() int { return v.r }

// Cols returns the number of columns in the view. Complexity: O(1).
func (v *MatrixView) Cols() int { return v.c }

// At reads element (i,j) in the view or returns ErrOutOfRange.
// Translates to base coordinates; never panics. Complexity: O(1).
func (v *MatrixView) At(i, j int) (float64, error) {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return 0, fmt.Errorf("MatrixView.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return v.base.data[(v.r0+i)*v.base.c+(v.c0+j)], nil
}

// Set writes element (i,j) in the view, honoring the base numeric policy.
// Complexity: O(1).
func (v *MatrixView) Set(i, j int, val float64) error {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if v.base.validateNaNInf && (math.IsNaN(val) || math.IsInf(val, 0)) {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrNaNInf)
	}
	v.base.data[(v.r0+i)*v.base.c+(v.c0+j)] = val // write through

	return nil
}

// Materialize copies the view into an independent Dense of the same shape.
// Used to freeze an accepted prefix: the copy's lifetime is detached from the
// growth buffer it was carved out of.
//
// Errors:
//   - ErrBadShape for zero-area views (nothing meaningful to freeze).
//
// Complexity: O(r*c).
func (v *MatrixView) Materialize() (*Dense, error) {
	res, err := NewDense(v.r, v.c)
	if err != nil {
		return nil, err
	}
	res.validateNaNInf = v.base.validateNaNInf

	var i, j int
	var src, dst int
	for i = 0; i < v.r; i++ { // fixed i→j order
		src = (v.r0+i)*v.base.c + v.c0
		dst = i * v.c
		for j = 0; j < v.c; j++ {
			res.data[dst+j] = v.base.data[src+j]
		}
	}

	return res, nil
}
