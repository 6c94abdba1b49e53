// SPDX-License-Identifier: MIT

// Package chain - the Chain type and distribution helpers.

package chain

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mcagg/matrix"
)

// StochasticTol is the tolerance for column-mass and distribution-mass
// checks. Coordinate files round probabilities to a handful of decimals, so
// this is looser than matrix.DefaultEpsilon on purpose.
const StochasticTol = 1e-8

// Chain is an immutable discrete-time Markov chain: a column-stochastic
// sparse operator over n states. Construction validates the orientation
// convention documented in doc.go; afterwards the chain is shared, read-only
// state for any number of factorizations and engines.
type Chain struct {
	p *matrix.CSC // column-stochastic operator, columns sum to 1
	n int         // state-space dimension
}

// New wraps a sparse operator as a Chain after validating the stochastic
// contract.
//
// Implementation:
//   - Stage 1: non-nil, square shape.
//   - Stage 2: one pass for negativity (MinValue).
//   - Stage 3: per-column mass within StochasticTol of 1.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrBadShape (shape contract),
//   - ErrNegativeEntry, ErrNotStochastic.
//
// Complexity: O(nnz + n).
func New(p *matrix.CSC) (*Chain, error) {
	if p == nil {
		return nil, fmt.Errorf("chain.New: %w", matrix.ErrNilMatrix)
	}
	if p.Rows() != p.Cols() {
		return nil, fmt.Errorf("chain.New: %dx%d: %w", p.Rows(), p.Cols(), matrix.ErrBadShape)
	}
	if p.MinValue() < 0 {
		return nil, fmt.Errorf("chain.New: %w", ErrNegativeEntry)
	}

	var j int
	var s float64
	var err error
	for j = 0; j < p.Cols(); j++ {
		if s, err = p.ColSum(j); err != nil {
			return nil, err
		}
		if math.Abs(s-1) > StochasticTol {
			return nil, fmt.Errorf("chain.New: column %d sums to %g: %w", j, s, ErrNotStochastic)
		}
	}

	return &Chain{p: p, n: p.Rows()}, nil
}

// Dim returns the state-space dimension n. Complexity: O(1).
func (c *Chain) Dim() int { return c.n }

// Operator exposes the underlying column-stochastic matrix, read-only by
// convention. Complexity: O(1).
func (c *Chain) Operator() *matrix.CSC { return c.p }

// Apply computes dst = P·src, one transition step for a distribution.
// dst and src must not alias (same contract as matrix.MulVec).
//
// Errors:
//   - ErrNilChain, matrix.ErrDimensionMismatch.
//
// Complexity: O(n + nnz), zero allocations.
func (c *Chain) Apply(src, dst []float64) error {
	if c == nil {
		return ErrNilChain
	}

	return c.p.MulVec(src, dst)
}

// ValidateDistribution checks that p0 is a probability distribution of
// dimension n: nonnegative entries, total mass within StochasticTol of 1.
//
// Errors:
//   - matrix.ErrDimensionMismatch (wrong length),
//   - ErrBadDistribution (negative entry or mass away from 1).
//
// Complexity: O(n).
func ValidateDistribution(p0 []float64, n int) error {
	if len(p0) != n {
		return fmt.Errorf("chain.ValidateDistribution: len=%d want %d: %w", len(p0), n, matrix.ErrDimensionMismatch)
	}

	var i int
	var mass float64
	for i = 0; i < n; i++ {
		if p0[i] < 0 || math.IsNaN(p0[i]) || math.IsInf(p0[i], 0) {
			return fmt.Errorf("chain.ValidateDistribution: entry %d = %g: %w", i, p0[i], ErrBadDistribution)
		}
		mass += p0[i]
	}
	if math.Abs(mass-1) > StochasticTol {
		return fmt.Errorf("chain.ValidateDistribution: mass %g: %w", mass, ErrBadDistribution)
	}

	return nil
}

// Uniform returns the uniform distribution over n states (nil for n<=0).
// Complexity: O(n).
func Uniform(n int) []float64 {
	if n <= 0 {
		return nil
	}

	p := make([]float64, n)
	w := 1.0 / float64(n)
	var i int
	for i = 0; i < n; i++ {
		p[i] = w
	}

	return p
}

// Delta returns the point-mass distribution concentrated on state i
// (nil when the index is outside [0,n)). Complexity: O(n).
func Delta(n, i int) []float64 {
	if n <= 0 || i < 0 || i >= n {
		return nil
	}

	p := make([]float64, n)
	p[i] = 1

	return p
}
