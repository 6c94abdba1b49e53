// SPDX-License-Identifier: MIT

// Package aggregate - lock-step error instrumentation.
//
// Instrument wraps an Engine and co-evolves the EXACT full-space transient
// distribution p under the original operator, so the approximation error of
// the reduction can be measured empirically instead of trusted.
//
// Derived once at construction from Diff = AΠ − PA (n×k):
//   - d[i]    — per-column absolute sums of Diff (the reusable core of
//     every metric below),
//   - Err     — max_i d[i], the operator 1-norm of Diff,
//   - ErrSt   — ‖p̃_st − P·p̃_st‖₁ with p̃_st = A·π_st: how far the lifted
//     stationary vector is from actual invariance,
//   - ErrPiSt — Σ_i |π_st[i]|·d[i], the acceptance criterion re-evaluated
//     at the frozen size.
//
// Accumulated while stepping:
//   - ErrKBnd — running telescoping bound Σ_t Σ_i |π_t[i]|·d[i], valid ONLY
//     for steps taken in order from the initial state (precondition, not an
//     enforced invariant),
//   - ErrK    — latest measured ‖A·π_t − p_t‖₁.
//
// Negative near-zero entries in either trajectory are reported as-is, never
// clamped: they are signal about numerical health, not noise to hide.

package aggregate

import (
	"fmt"

	"github.com/katalvlaran/mcagg/chain"
	"github.com/katalvlaran/mcagg/matrix"
)

// Metrics is a value snapshot of the accumulated diagnostics.
type Metrics struct {
	Err     float64 // operator 1-norm of AΠ − PA
	ErrSt   float64 // L1 non-invariance of the lifted stationary vector
	ErrPiSt float64 // criterion at the frozen size
	ErrK    float64 // latest measured dynamic error
	ErrKBnd float64 // accumulated telescoping bound on the dynamic error
}

// Instrument co-evolves the aggregated and exact trajectories. Exclusive to
// one logical caller; no internal locking.
type Instrument struct {
	eng *Engine
	c   *chain.Chain

	exact   []float64 // exact full-space distribution p
	scratch []float64 // exact-step target; swapped after each step

	d    []float64 // per-column absolute sums of Diff (length k)
	lift []float64 // n-workspace for A·π and construction-time products
	work []float64 // second n-workspace (P-products)

	m Metrics
}

// NewInstrument wraps eng, seeds the exact trajectory at p0, and derives the
// frozen-size diagnostics.
//
// Implementation:
//   - Stage 1: contract checks — engine/chain non-nil, dimensions agree,
//     p0 is a valid distribution of length n.
//   - Stage 2: per-column pass j: d[j] = ‖A·Π[:,j] − P·A[:,j]‖₁, keeping the
//     peak for Err.
//   - Stage 3: stationary diagnostics ErrSt and ErrPiSt.
//
// Errors:
//   - ErrNilAggregation, chain.ErrNilChain, ErrChainMismatch,
//   - chain.ErrBadDistribution / matrix.ErrDimensionMismatch (bad p0).
//
// Complexity: O(n·k² + k·nnz) construction; O(n) extra memory beyond the
// two n-buffers of the exact trajectory.
func NewInstrument(eng *Engine, c *chain.Chain, p0 []float64) (*Instrument, error) {
	if eng == nil {
		return nil, fmt.Errorf("aggregate.NewInstrument: nil engine: %w", ErrNilAggregation)
	}
	if c == nil {
		return nil, fmt.Errorf("aggregate.NewInstrument: %w", chain.ErrNilChain)
	}
	agg := eng.Aggregation()
	if c.Dim() != agg.N {
		return nil, fmt.Errorf("aggregate.NewInstrument: chain dim %d, aggregation n %d: %w", c.Dim(), agg.N, ErrChainMismatch)
	}
	if err := chain.ValidateDistribution(p0, agg.N); err != nil {
		return nil, err
	}

	ins := &Instrument{
		eng:     eng,
		c:       c,
		exact:   make([]float64, agg.N),
		scratch: make([]float64, agg.N),
		d:       make([]float64, agg.Size),
		lift:    make([]float64, agg.N),
		work:    make([]float64, agg.N),
	}
	copy(ins.exact, p0)

	if err := ins.deriveFrozen(); err != nil {
		return nil, err
	}

	return ins, nil
}

// Engine exposes the wrapped engine (read its state; do not Step it directly
// while also using MeasureDynamicError — the bound accounting assumes every
// step flows through this instrument).
func (ins *Instrument) Engine() *Engine { return ins.eng }

// Exact returns the exact full-space distribution without copying.
// Read-only; stale after the next step.
func (ins *Instrument) Exact() []float64 { return ins.exact }

// Metrics returns a snapshot of the accumulated diagnostics.
func (ins *Instrument) Metrics() Metrics { return ins.m }

// StepAll advances both trajectories by one transition and accumulates the
// telescoping bound from the PRE-step aggregated state.
//
// Precondition (documented, not enforced): steps are taken in order from
// the initial state — the bound telescopes only along that trajectory.
//
// Complexity: O(k² + n + nnz), zero allocations.
func (ins *Instrument) StepAll() {
	// Bound term first: it weights the state the step consumes.
	pre := ins.eng.Distribution()
	var i int
	var term float64
	for i = 0; i < len(pre); i++ {
		term += abs(pre[i]) * ins.d[i]
	}
	ins.m.ErrKBnd += term

	ins.eng.Step()

	// Exact trajectory: p ← P·p with the same pointer rotation.
	_ = ins.c.Apply(ins.exact, ins.scratch) // shapes pinned at construction
	ins.exact, ins.scratch = ins.scratch, ins.exact
}

// MeasureDynamicError records ErrK = ‖A·π − p‖₁ at the CURRENT (pre-step)
// states, then advances both trajectories via StepAll. Use this exclusively
// (never interleaved with direct StepAll calls) when a per-step error trace
// is wanted; mixing the two desynchronizes measurement and bound.
//
// Returns the error just measured.
//
// Complexity: O(n·k + k² + nnz), zero allocations.
func (ins *Instrument) MeasureDynamicError() float64 {
	// Shapes were pinned at construction; neither call can fail.
	_ = ins.eng.Lift(ins.lift)
	ins.m.ErrK, _ = matrix.Dist1(ins.lift, ins.exact)

	ins.StepAll()

	return ins.m.ErrK
}

// deriveFrozen computes d, Err, ErrSt and ErrPiSt for the frozen
// aggregation.
func (ins *Instrument) deriveFrozen() error {
	agg := ins.eng.Aggregation()
	k := agg.Size

	piCol := make([]float64, k)
	var j int
	var dj float64
	var err error
	for j = 0; j < k; j++ {
		// lift ← A·Π[:,j]
		if err = agg.Pi.ColInto(j, piCol); err != nil {
			return err
		}
		if err = matrix.MulVec(agg.Basis, piCol, ins.lift); err != nil {
			return err
		}
		// work ← P·A[:,j] (reuse scratch for the gathered basis column)
		if err = agg.Basis.ColInto(j, ins.scratch); err != nil {
			return err
		}
		if err = ins.c.Apply(ins.scratch, ins.work); err != nil {
			return err
		}
		if dj, err = matrix.Dist1(ins.lift, ins.work); err != nil {
			return err
		}
		ins.d[j] = dj
		if dj > ins.m.Err {
			ins.m.Err = dj
		}
		ins.m.ErrPiSt += abs(agg.Stationary[j]) * dj
	}

	// ErrSt: lift the stationary vector once, push it through P once.
	if err = matrix.MulVec(agg.Basis, agg.Stationary, ins.lift); err != nil {
		return err
	}
	if err = ins.c.Apply(ins.lift, ins.work); err != nil {
		return err
	}
	if ins.m.ErrSt, err = matrix.Dist1(ins.lift, ins.work); err != nil {
		return err
	}

	return nil
}

// abs avoids a math.Abs call in the per-step hot loop.
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
