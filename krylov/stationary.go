// SPDX-License-Identifier: MIT

// Package krylov - stationary estimation through the projected operator.
//
// The aggregated stationary distribution is the eigenvector of Π_k nearest
// eigenvalue 1, rescaled so its lift through the basis has unit 1-norm. The
// dense eigensolver is a black box (gonum mat.Eigen); everything around it —
// pair selection, realness policy, mass normalization — lives here.

package krylov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/mcagg/matrix"
)

// Estimate computes the aggregated stationary distribution π_st at the
// factorization's current size k.
//
// Implementation:
//   - Stage 1: copy the k×k window of Π into a gonum dense and factorize.
//   - Stage 2: pick the eigenpair with minimal |λ − 1|.
//   - Stage 3: realness gate — any imaginary part above DefaultImagTol in
//     the value or the vector reports ErrNotConverged (no real-casting).
//   - Stage 4: scale so ‖A_k·π_st‖₁ = 1 with positive total signed mass
//     (a flipped sign is an eigensolver artifact, not chain structure).
//
// Behavior highlights:
//   - Never mutates the factorization; a failed call leaves no trace.
//
// Errors:
//   - ErrNotConverged (complex pair, eigensolver failure, or a zero lift).
//
// Complexity: O(k³) for the eigendecomposition + O(n·k) for the lift.
func Estimate(f *Factorization) ([]float64, error) {
	k := f.k

	// Dense copy of the active window for the solver.
	buf := make([]float64, k*k)
	var i, j int
	var v float64
	var err error
	for i = 0; i < k; i++ {
		for j = 0; j < k; j++ {
			if v, err = f.pi.At(i, j); err != nil {
				return nil, err
			}
			buf[i*k+j] = v
		}
	}

	vec, err := nearestUnitEigenvector(mat.NewDense(k, k, buf))
	if err != nil {
		return nil, err
	}

	// Normalize through the lift: π_st := vec / (sign(Σ lift) · ‖lift‖₁).
	lift := make([]float64, f.n)
	if err = f.liftInto(lift, vec); err != nil {
		return nil, err
	}
	mass := matrix.Norm1(lift)
	if mass == 0 {
		return nil, fmt.Errorf("krylov.Estimate: zero lift: %w", ErrNotConverged)
	}

	var signed float64
	for i = 0; i < f.n; i++ {
		signed += lift[i]
	}
	scale := 1 / mass
	if signed < 0 {
		scale = -scale
	}
	matrix.Scale(vec, scale)

	return vec, nil
}

// nearestUnitEigenvector returns the real eigenvector of a whose eigenvalue
// minimizes |λ − 1|, or ErrNotConverged when that pair is complex (or the
// solver fails outright).
func nearestUnitEigenvector(a *mat.Dense) ([]float64, error) {
	k, _ := a.Dims()

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenRight); !ok {
		return nil, fmt.Errorf("krylov: eigensolver failed at size %d: %w", k, ErrNotConverged)
	}

	values := eig.Values(nil)
	best := 0
	bestDist := math.Inf(1)
	var d float64
	var i int
	for i = 0; i < len(values); i++ { // deterministic tie-break: lowest index
		d = cmplxDist1(values[i])
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	if math.Abs(imag(values[best])) > DefaultImagTol {
		return nil, fmt.Errorf("krylov: eigenvalue %v at size %d: %w", values[best], k, ErrNotConverged)
	}

	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	out := make([]float64, k)
	var entry complex128
	for i = 0; i < k; i++ {
		entry = vecs.At(i, best)
		if math.Abs(imag(entry)) > DefaultImagTol {
			return nil, fmt.Errorf("krylov: complex eigenvector at size %d: %w", k, ErrNotConverged)
		}
		out[i] = real(entry)
	}

	return out, nil
}

// cmplxDist1 returns |λ − 1| for a complex eigenvalue.
func cmplxDist1(v complex128) float64 {
	return math.Hypot(real(v)-1, imag(v))
}
