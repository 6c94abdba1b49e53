// SPDX-License-Identifier: MIT

// Package aggregate - the frozen Aggregation value.

package aggregate

import (
	"fmt"

	"github.com/katalvlaran/mcagg/matrix"
)

// Aggregation is a frozen reduced-order model of a chain: once built by the
// selector (or by hand in tests) every field is immutable by convention.
// Engines copy what they mutate, so one Aggregation may back any number of
// concurrent engine instances.
//
// Fields:
//   - N, Size     — full and aggregated dimensions (n, k).
//   - Pi          — k×k projected operator Π = AᵀPA.
//   - Basis       — n×k orthonormal basis A (row-major).
//   - Stationary  — π_st, real, scaled so ‖A·π_st‖₁ = 1.
//   - Initial     — π₀ = [‖p₀‖₂, 0, …, 0].
//   - Criterion   — the stationary-weighted residual at acceptance.
//   - Certified   — false when the sizing ran out of schedule and returned
//     the largest evaluated aggregation instead (usable but uncertified).
type Aggregation struct {
	N    int
	Size int

	Pi    *matrix.Dense
	Basis *matrix.Dense

	Stationary []float64
	Initial    []float64

	Criterion float64
	Certified bool
}

// Validate checks internal dimensional consistency. Engines call this once
// at construction so their hot paths can skip per-step checks.
//
// Errors:
//   - ErrNilAggregation, ErrBadAggregation.
func (a *Aggregation) Validate() error {
	if a == nil {
		return ErrNilAggregation
	}
	if a.Pi == nil || a.Basis == nil {
		return fmt.Errorf("aggregate: missing operator or basis: %w", ErrBadAggregation)
	}

	k, n := a.Size, a.N
	switch {
	case k < 1 || n < k:
		return fmt.Errorf("aggregate: n=%d k=%d: %w", n, k, ErrBadAggregation)
	case a.Pi.Rows() != k || a.Pi.Cols() != k:
		return fmt.Errorf("aggregate: Pi %dx%d, want %dx%d: %w", a.Pi.Rows(), a.Pi.Cols(), k, k, ErrBadAggregation)
	case a.Basis.Rows() != n || a.Basis.Cols() != k:
		return fmt.Errorf("aggregate: basis %dx%d, want %dx%d: %w", a.Basis.Rows(), a.Basis.Cols(), n, k, ErrBadAggregation)
	case len(a.Stationary) != k:
		return fmt.Errorf("aggregate: stationary len %d, want %d: %w", len(a.Stationary), k, ErrBadAggregation)
	case len(a.Initial) != k:
		return fmt.Errorf("aggregate: initial len %d, want %d: %w", len(a.Initial), k, ErrBadAggregation)
	}

	return nil
}
