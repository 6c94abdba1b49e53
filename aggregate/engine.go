// SPDX-License-Identifier: MIT

// Package aggregate - the stepping engine.

package aggregate

import (
	"github.com/katalvlaran/mcagg/matrix"
)

// Engine evolves an aggregated distribution under the frozen operator Π.
// It owns two fixed k-buffers (current state and scratch) whose roles rotate
// after every step; nothing is allocated after construction. Not
// thread-safe; concurrent Step calls on one instance are undefined.
type Engine struct {
	agg     *Aggregation
	cur     []float64 // current aggregated distribution π
	scratch []float64 // step target; swapped into cur after each step
}

// NewEngine builds an engine positioned at the aggregated initial
// distribution π₀. Dimensional consistency is checked once here so Step can
// run unchecked.
//
// Errors:
//   - ErrNilAggregation, ErrBadAggregation.
//
// Complexity: O(k) allocation.
func NewEngine(agg *Aggregation) (*Engine, error) {
	if err := agg.Validate(); err != nil {
		return nil, err
	}

	cur := make([]float64, agg.Size)
	copy(cur, agg.Initial)

	return &Engine{
		agg:     agg,
		cur:     cur,
		scratch: make([]float64, agg.Size),
	}, nil
}

// Aggregation returns the frozen model this engine runs. Complexity: O(1).
func (e *Engine) Aggregation() *Aggregation { return e.agg }

// Step advances one transition: π ← Π·π. The product lands in the scratch
// buffer, then the two buffers swap roles — O(k²) time, zero allocations,
// repeatable indefinitely.
func (e *Engine) Step() {
	// Shapes were pinned by NewEngine; MulVec cannot fail here.
	_ = matrix.MulVec(e.agg.Pi, e.cur, e.scratch)
	e.cur, e.scratch = e.scratch, e.cur
}

// Distribution returns the current aggregated distribution without copying.
// The slice aliases engine-owned storage: read-only, and stale after the
// next Step (the buffer it points at becomes the scratch target).
func (e *Engine) Distribution() []float64 { return e.cur }

// Lift disaggregates the current state into full space: dst = A·π.
// len(dst) must equal the aggregation's N.
//
// Errors:
//   - matrix.ErrDimensionMismatch.
//
// Complexity: O(n·k), zero allocations.
func (e *Engine) Lift(dst []float64) error {
	return matrix.MulVec(e.agg.Basis, e.cur, dst)
}
