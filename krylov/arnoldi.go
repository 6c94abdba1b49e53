// SPDX-License-Identifier: MIT

// Package krylov - the Arnoldi factorization.
//
// Purpose:
//   - Grow an orthonormal basis of span{p₀, Pp₀, P²p₀, …} one vector at a
//     time, together with the projected operator Π = AᵀPA (upper Hessenberg).
//   - Keep every byte of growth inside buffers preallocated at the capacity:
//     the basis lives in one flat column-major slice, Π in one cap×cap Dense,
//     and sizes are tracked as explicit extents — bounds move, storage never.
//
// Look-ahead invariant:
//   - After Initialize and after every successful Expand, the leading k×k
//     window of Π is COMPLETE for the current size k: P·v_{k-1} has already
//     been formed and orthogonalized, its Gram-Schmidt coefficients written
//     into Π's column k-1, and the deflated remainder cached as the pending
//     next direction. Checkpoint evaluation therefore never needs a
//     throwaway expansion, and saturation surfaces exactly at the Expand
//     that would append the vanished direction.

package krylov

import (
	"fmt"

	"github.com/katalvlaran/mcagg/chain"
	"github.com/katalvlaran/mcagg/matrix"
)

// Factorization is an incrementally grown Arnoldi decomposition of (P, p₀).
// Not thread-safe; a single exclusive owner mutates it in place.
type Factorization struct {
	c    *chain.Chain // shared read-only operator
	n    int          // full state-space dimension
	cap  int          // maximum basis size (fixed preallocation)
	k    int          // current basis size, 1..cap
	beta float64      // ‖p₀‖₂, the aggregated initial mass

	vecs    []float64     // cap·n column-major basis; column i = vecs[i*n:(i+1)*n]
	pi      *matrix.Dense // cap×cap projected operator; leading k×k complete
	pending []float64     // n: deflated P·v_{k-1}, the next direction (unnormalized)
	resid   float64       // ‖pending‖₂ — the would-be subdiagonal entry

	coeffs    []float64 // cap: per-expansion Gram-Schmidt coefficients
	saturated bool      // sticky: set once the subspace ran out of directions
}

// Initialize seeds a factorization with p₀/‖p₀‖₂ as the first basis vector
// and establishes the look-ahead invariant at size 1.
//
// Implementation:
//   - Stage 1: contract checks — chain non-nil, capacity positive, matching
//     dimensions, nonzero initial norm.
//   - Stage 2: one-shot preallocation at the capacity (no growth later).
//   - Stage 3: write v₀, then look ahead: form P·v₀, fill Π[0,0], cache the
//     remainder.
//
// Errors:
//   - chain.ErrNilChain, ErrBadCapacity, ErrDimension, ErrDegenerateInput.
//
// Complexity: O(n·cap + cap²) allocation, O(n + nnz) arithmetic.
func Initialize(c *chain.Chain, p0 []float64, capacity int) (*Factorization, error) {
	if c == nil {
		return nil, fmt.Errorf("krylov.Initialize: %w", chain.ErrNilChain)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("krylov.Initialize: cap=%d: %w", capacity, ErrBadCapacity)
	}
	if len(p0) != c.Dim() {
		return nil, fmt.Errorf("krylov.Initialize: len(p0)=%d, dim=%d: %w", len(p0), c.Dim(), ErrDimension)
	}

	beta := matrix.Norm2(p0)
	if beta <= 0 {
		return nil, fmt.Errorf("krylov.Initialize: %w", ErrDegenerateInput)
	}

	n := c.Dim()
	pi, err := matrix.NewDense(capacity, capacity)
	if err != nil {
		return nil, err
	}

	f := &Factorization{
		c:       c,
		n:       n,
		cap:     capacity,
		k:       1,
		beta:    beta,
		vecs:    make([]float64, capacity*n),
		pi:      pi,
		pending: make([]float64, n),
		coeffs:  make([]float64, capacity),
	}

	// v₀ = p₀ / ‖p₀‖₂ into the first column slot.
	v0 := f.col(0)
	copy(v0, p0)
	matrix.Scale(v0, 1/beta)

	if err = f.lookAhead(); err != nil {
		return nil, err
	}

	return f, nil
}

// Size returns the current basis size k. Complexity: O(1).
func (f *Factorization) Size() int { return f.k }

// Dim returns the full state-space dimension n. Complexity: O(1).
func (f *Factorization) Dim() int { return f.n }

// Capacity returns the fixed preallocation bound. Complexity: O(1).
func (f *Factorization) Capacity() int { return f.cap }

// Beta returns ‖p₀‖₂ — the single nonzero entry of the aggregated initial
// distribution [β, 0, …, 0]. Complexity: O(1).
func (f *Factorization) Beta() float64 { return f.beta }

// Expand appends one basis vector from the cached pending direction, then
// re-establishes the look-ahead invariant at the new size.
//
// Implementation:
//   - Stage 1: saturation and capacity guards.
//   - Stage 2: breakdown check — a vanished residual means span{v₀..v_{k-1}}
//     is P-invariant; the current size is final.
//   - Stage 3: v_k = pending/resid, subdiagonal Π[k,k-1] = resid.
//   - Stage 4: look ahead at the new size.
//
// Errors:
//   - ErrBreakdown  (sticky; the factorization stays usable at size k),
//   - ErrAtCapacity (growth bound reached; also leaves state intact).
//
// Complexity: O(n·k + nnz) per call.
func (f *Factorization) Expand() error {
	if f.saturated {
		return fmt.Errorf("krylov.Expand: size %d: %w", f.k, ErrBreakdown)
	}
	if f.k == f.cap {
		return fmt.Errorf("krylov.Expand: %w", ErrAtCapacity)
	}
	if f.resid <= DefaultBreakdownTol {
		f.saturated = true
		return fmt.Errorf("krylov.Expand: size %d, residual %g: %w", f.k, f.resid, ErrBreakdown)
	}

	// Normalize the pending remainder into the next column slot.
	vk := f.col(f.k)
	copy(vk, f.pending)
	matrix.Scale(vk, 1/f.resid)

	// Subdiagonal entry closes column k-1 for the enlarged window.
	if err := f.pi.Set(f.k, f.k-1, f.resid); err != nil {
		return err
	}
	f.k++

	return f.lookAhead()
}

// Rayleigh returns a no-copy view of the k×k projected operator Π_k.
// Read-only by convention; the view tracks future growth of the base buffer
// only within its fixed k×k bounds.
func (f *Factorization) Rayleigh() (*matrix.MatrixView, error) {
	return f.pi.View(0, 0, f.k, f.k)
}

// Basis returns an independent n×k snapshot of the orthonormal basis A.
// For no-copy access to a single column, use BasisColumn.
// Complexity: O(n·k).
func (f *Factorization) Basis() (*matrix.Dense, error) {
	return f.basisCopy(f.k)
}

// BasisColumn returns basis vector j without copying. The slice aliases the
// factorization's storage: read-only, valid until the owner mutates f.
//
// Errors:
//   - matrix.ErrOutOfRange when j is outside [0, k).
func (f *Factorization) BasisColumn(j int) ([]float64, error) {
	if j < 0 || j >= f.k {
		return nil, fmt.Errorf("krylov.BasisColumn(%d): size %d: %w", j, f.k, matrix.ErrOutOfRange)
	}

	return f.col(j), nil
}

// col returns the storage slot of basis column i (package-internal, no
// bounds discipline beyond the caller's).
func (f *Factorization) col(i int) []float64 {
	return f.vecs[i*f.n : (i+1)*f.n]
}

// liftInto computes dst = A_k·x — disaggregation of an aggregated-space
// vector through the basis. len(x) must be k, len(dst) must be n.
// Complexity: O(n·k), zero allocations.
func (f *Factorization) liftInto(dst, x []float64) error {
	if len(x) != f.k || len(dst) != f.n {
		return fmt.Errorf("krylov.liftInto: %w", ErrDimension)
	}

	matrix.Zero(dst)
	var j int
	for j = 0; j < f.k; j++ { // deterministic column order
		if x[j] == 0 {
			continue
		}
		if err := matrix.AddScaled(dst, x[j], f.col(j)); err != nil {
			return err
		}
	}

	return nil
}

// basisCopy materializes the first k basis columns as a row-major Dense.
func (f *Factorization) basisCopy(k int) (*matrix.Dense, error) {
	b, err := matrix.NewDense(f.n, k)
	if err != nil {
		return nil, err
	}

	var i, j int
	var cj []float64
	for j = 0; j < k; j++ {
		cj = f.col(j)
		for i = 0; i < f.n; i++ {
			if err = b.Set(i, j, cj[i]); err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}

// lookAhead forms w = P·v_{k-1}, orthogonalizes it against all current basis
// vectors with two modified Gram-Schmidt passes, writes the coefficients
// into Π's column k-1, and caches the deflated remainder plus its norm.
//
// Two MGS passes are the standard re-orthogonalization against coefficient
// leakage when w is nearly inside the current span; the correction from the
// second pass folds into the same Π entries.
//
// Complexity: O(n·k + nnz), zero allocations (buffers preallocated).
func (f *Factorization) lookAhead() error {
	last := f.col(f.k - 1)
	if err := f.c.Apply(last, f.pending); err != nil {
		return err
	}

	var i int
	var h, c2 float64
	var vi []float64
	var err error

	// First pass: deflate and record coefficients.
	for i = 0; i < f.k; i++ {
		vi = f.col(i)
		if h, err = matrix.Dot(vi, f.pending); err != nil {
			return err
		}
		if err = matrix.AddScaled(f.pending, -h, vi); err != nil {
			return err
		}
		f.coeffs[i] = h
	}

	// Second pass: sweep out leaked components, fold corrections in.
	for i = 0; i < f.k; i++ {
		vi = f.col(i)
		if c2, err = matrix.Dot(vi, f.pending); err != nil {
			return err
		}
		if err = matrix.AddScaled(f.pending, -c2, vi); err != nil {
			return err
		}
		f.coeffs[i] += c2
	}

	// Publish column k-1 of Π.
	for i = 0; i < f.k; i++ {
		if err = f.pi.Set(i, f.k-1, f.coeffs[i]); err != nil {
			return err
		}
	}
	f.resid = matrix.Norm2(f.pending)

	return nil
}
