// SPDX-License-Identifier: MIT

// Package krylov: sizing configuration and numeric tolerances. A single
// source of truth for defaults; Select validates every field before touching
// the factorization.

package krylov

// Numeric tolerances.
const (
	// DefaultBreakdownTol is the residual 2-norm below which the Arnoldi
	// process declares the subspace saturated. Basis vectors are unit norm
	// and the operator is stochastic, so an absolute threshold is adequate.
	DefaultBreakdownTol = 1e-12

	// DefaultImagTol bounds the imaginary magnitude (eigenvalue and every
	// eigenvector entry) below which an eigenpair counts as real.
	DefaultImagTol = 1e-9
)

// Sizing defaults.
const (
	// DefaultCap bounds the basis size and fixes the preallocation:
	// O(n·cap) for the basis plus O(cap²) for the projected operator.
	DefaultCap = 2000

	// DefaultTolerance is the acceptance threshold for the
	// stationary-weighted residual criterion.
	DefaultTolerance = 1e-4
)

// Options configures adaptive size selection.
//
// Fields:
//   - Tolerance   — criterion acceptance threshold ε > 0. +Inf is legal and
//     accepts the first checkpoint with a real stationary estimate.
//   - Checkpoints — strictly ascending basis sizes to evaluate, all ≥ 1.
//   - Cap         — preallocation bound; must strictly exceed the largest
//     checkpoint. Zero means DefaultCap.
//
// Example:
//
//	opts := &krylov.Options{
//	  Tolerance:   1e-5,
//	  Checkpoints: []int{16, 32, 64, 128},
//	  Cap:         256,
//	}
//	agg, err := krylov.Select(c, p0, opts)
type Options struct {
	Tolerance   float64
	Checkpoints []int
	Cap         int
}

// DefaultOptions returns the default sizing configuration: a doubling
// schedule from 8 to 1024 under DefaultCap.
func DefaultOptions() Options {
	return Options{
		Tolerance:   DefaultTolerance,
		Checkpoints: DefaultCheckpoints(),
		Cap:         DefaultCap,
	}
}

// DefaultCheckpoints returns a fresh copy of the doubling schedule
// {8, 16, …, 1024}. Callers may mutate the result freely.
func DefaultCheckpoints() []int {
	return []int{8, 16, 32, 64, 128, 256, 512, 1024}
}
