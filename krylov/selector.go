// SPDX-License-Identifier: MIT

// Package krylov - adaptive size selection.
//
// Select finds the smallest aggregation meeting the tolerance without ever
// rebuilding the basis: one factorization grows monotonically through an
// ascending checkpoint schedule, and every checkpoint is evaluated on
// prefix windows of the same preallocated buffers.
//
// Degradation ladder (nothing below the first rung aborts):
//   - criterion ≤ ε at a checkpoint        → certified result, stop.
//   - complex eigenpair at a checkpoint    → try the next checkpoint.
//   - subspace breakdown during growth     → evaluate at the reached size,
//     then stop growing.
//   - schedule exhausted, no certification → return the largest checkpoint
//     that produced a real estimate, Certified=false (soft failure: usable
//     but uncertified).
//   - no checkpoint ever produced a real estimate → ErrNotConverged.
//
// A secondary bisection refinement between the last two evaluated
// checkpoints could shrink the accepted size further; it is a documented
// gap, deliberately left unimplemented.

package krylov

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/mcagg/aggregate"
	"github.com/katalvlaran/mcagg/chain"
	"github.com/katalvlaran/mcagg/matrix"
)

// candidate is the best evaluated aggregation so far (largest checkpoint
// with a real stationary estimate).
type candidate struct {
	size int
	pist []float64
	crit float64
}

// Select grows a Krylov basis for (P, p₀) across opts.Checkpoints and
// returns the smallest aggregation whose stationary-weighted residual
// criterion meets opts.Tolerance. nil opts means DefaultOptions.
//
// The returned aggregation is frozen: independent copies of Π_k and A_k,
// the stationary estimate, π₀ = [‖p₀‖₂, 0, …, 0], the final criterion
// value, and the certification flag.
//
// Errors:
//   - ErrBadTolerance, ErrBadSchedule (option contract),
//   - ErrDimension, ErrDegenerateInput, chain.ErrNilChain (via Initialize),
//   - ErrNotConverged (no checkpoint yielded a real estimate).
//
// Complexity: O(n·k_max² + k_max·nnz) growth and evaluation work plus one
// O(k³) eigendecomposition per checkpoint.
func Select(c *chain.Chain, p0 []float64, opts *Options) (*aggregate.Aggregation, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Cap == 0 {
		o.Cap = DefaultCap
	}
	if err := validateOptions(&o); err != nil {
		return nil, err
	}

	f, err := Initialize(c, p0, o.Cap)
	if err != nil {
		return nil, err
	}

	// Criterion workspaces, allocated once for the whole schedule.
	w1 := make([]float64, f.n)
	w2 := make([]float64, f.n)

	var best *candidate
	var saturated bool

	for _, target := range o.Checkpoints {
		for f.Size() < target && !saturated {
			if err = f.Expand(); err != nil {
				if errors.Is(err, ErrBreakdown) {
					saturated = true
					break
				}
				return nil, err
			}
		}

		pist, eErr := Estimate(f)
		if eErr != nil {
			if !errors.Is(eErr, ErrNotConverged) {
				return nil, eErr
			}
			if saturated {
				break // cannot grow past a saturated subspace
			}
			continue // recoverable: a larger checkpoint may turn real
		}

		crit, cErr := criterion(f, pist, w1, w2)
		if cErr != nil {
			return nil, cErr
		}
		best = &candidate{size: f.Size(), pist: pist, crit: crit}

		if crit <= o.Tolerance {
			return freeze(f, best, true)
		}
		if saturated {
			break
		}
	}

	if best == nil {
		return nil, fmt.Errorf("krylov.Select: no real stationary estimate up to size %d: %w", f.Size(), ErrNotConverged)
	}

	// Soft failure: schedule (or subspace) exhausted without certification.
	return freeze(f, best, false)
}

// validateOptions enforces the Select contract on a normalized Options.
func validateOptions(o *Options) error {
	if math.IsNaN(o.Tolerance) || o.Tolerance <= 0 {
		return fmt.Errorf("krylov.Select: tolerance %g: %w", o.Tolerance, ErrBadTolerance)
	}
	if len(o.Checkpoints) == 0 {
		return fmt.Errorf("krylov.Select: empty schedule: %w", ErrBadSchedule)
	}

	prev := 0
	for i, s := range o.Checkpoints {
		if s <= prev {
			return fmt.Errorf("krylov.Select: checkpoint[%d]=%d after %d: %w", i, s, prev, ErrBadSchedule)
		}
		prev = s
	}
	if o.Cap <= prev {
		return fmt.Errorf("krylov.Select: cap %d must exceed largest checkpoint %d: %w", o.Cap, prev, ErrBadSchedule)
	}

	return nil
}

// criterion evaluates Σ_i |π_st[i]| · ‖(A_kΠ_k − PA_k)[:,i]‖₁ at the
// factorization's current size — the stationary-weighted L1 residual of Π
// failing to commute with P through A. w1 and w2 are caller-owned
// n-workspaces (the selector reuses them across checkpoints).
//
// Complexity: O(n·k² + k·nnz), zero allocations.
func criterion(f *Factorization, pist []float64, w1, w2 []float64) (float64, error) {
	k := f.k
	var total float64
	var i, j, rows int
	var h float64
	var err error

	for i = 0; i < k; i++ {
		// w1 ← A·Π[:,i]; the Hessenberg column has rows 0..i+1 at most.
		matrix.Zero(w1)
		rows = i + 1
		if rows >= k {
			rows = k - 1
		}
		for j = 0; j <= rows; j++ {
			if h, err = f.pi.At(j, i); err != nil {
				return 0, err
			}
			if h == 0 {
				continue
			}
			if err = matrix.AddScaled(w1, h, f.col(j)); err != nil {
				return 0, err
			}
		}

		// w2 ← P·A[:,i]
		if err = f.c.Apply(f.col(i), w2); err != nil {
			return 0, err
		}

		colSum, dErr := matrix.Dist1(w1, w2)
		if dErr != nil {
			return 0, dErr
		}
		total += math.Abs(pist[i]) * colSum
	}

	return total, nil
}

// freeze materializes the accepted prefix into an independent Aggregation.
// cand.size may be smaller than the factorization's current size when a
// later checkpoint went complex; prefixes of the growth buffers are exactly
// the earlier state, so freezing never needs to rewind anything.
func freeze(f *Factorization, cand *candidate, certified bool) (*aggregate.Aggregation, error) {
	k := cand.size

	piView, err := f.pi.View(0, 0, k, k)
	if err != nil {
		return nil, err
	}
	pi, err := piView.Materialize()
	if err != nil {
		return nil, err
	}
	basis, err := f.basisCopy(k)
	if err != nil {
		return nil, err
	}

	initial := make([]float64, k)
	initial[0] = f.beta

	return &aggregate.Aggregation{
		N:          f.n,
		Size:       k,
		Pi:         pi,
		Basis:      basis,
		Stationary: cand.pist,
		Initial:    initial,
		Criterion:  cand.crit,
		Certified:  certified,
	}, nil
}
