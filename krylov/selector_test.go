package krylov_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/mcagg/chain"
	"github.com/katalvlaran/mcagg/krylov"
	"github.com/katalvlaran/mcagg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSelect_OptionErrors covers the option contract: bad tolerance, bad
// schedules, and a cap that does not clear the schedule.
func TestSelect_OptionErrors(t *testing.T) {
	c := twoState(t)
	p0 := []float64{1, 0}

	for name, opts := range map[string]*krylov.Options{
		"zero tolerance":     {Tolerance: 0, Checkpoints: []int{2}, Cap: 4},
		"negative tolerance": {Tolerance: -1, Checkpoints: []int{2}, Cap: 4},
		"NaN tolerance":      {Tolerance: math.NaN(), Checkpoints: []int{2}, Cap: 4},
	} {
		_, err := krylov.Select(c, p0, opts)
		assert.ErrorIs(t, err, krylov.ErrBadTolerance, name)
	}

	for name, opts := range map[string]*krylov.Options{
		"empty schedule": {Tolerance: 1e-4, Checkpoints: nil, Cap: 4},
		"non-ascending":  {Tolerance: 1e-4, Checkpoints: []int{4, 2}, Cap: 8},
		"repeated":       {Tolerance: 1e-4, Checkpoints: []int{2, 2}, Cap: 8},
		"non-positive":   {Tolerance: 1e-4, Checkpoints: []int{0, 2}, Cap: 8},
		"cap too small":  {Tolerance: 1e-4, Checkpoints: []int{4}, Cap: 4},
	} {
		_, err := krylov.Select(c, p0, opts)
		assert.ErrorIs(t, err, krylov.ErrBadSchedule, name)
	}
}

// TestSelect_InfiniteTolerance: ε = +Inf accepts the smallest checkpoint
// outright — its criterion is finite, and anything finite passes.
func TestSelect_InfiniteTolerance(t *testing.T) {
	agg, err := krylov.Select(twoState(t), []float64{1, 0}, &krylov.Options{
		Tolerance:   math.Inf(1),
		Checkpoints: []int{1, 2},
		Cap:         4,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, agg.Size)
	assert.True(t, agg.Certified)
	assert.InDelta(t, 0.1, agg.Criterion, 1e-12, "‖AΠ₁−PA₁‖ column sum is exactly 0.1 here")
	assert.Equal(t, []float64{1}, agg.Initial, "π₀ = [‖p₀‖₂] at k=1")
}

// TestSelect_CertifiesExactSize: with a tight tolerance the first checkpoint
// fails and the second — where the 2-state subspace is exact — certifies
// with a vanishing criterion and the true stationary distribution.
func TestSelect_CertifiesExactSize(t *testing.T) {
	agg, err := krylov.Select(twoState(t), []float64{1, 0}, &krylov.Options{
		Tolerance:   1e-8,
		Checkpoints: []int{1, 2},
		Cap:         4,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, agg.Size)
	assert.True(t, agg.Certified)
	assert.LessOrEqual(t, agg.Criterion, 1e-8)
	assert.InDelta(t, 5.0/6.0, agg.Stationary[0], 1e-10)
	assert.InDelta(t, 1.0/6.0, agg.Stationary[1], 1e-10)
	assert.Equal(t, []float64{1, 0}, agg.Initial)
}

// TestSelect_ToleranceMonotonicity: loosening ε never grows the returned
// size (same chain, same schedule).
func TestSelect_ToleranceMonotonicity(t *testing.T) {
	c := ring(t, 8)
	p0 := chain.Delta(8, 0)
	schedule := []int{1, 2, 3, 4, 5, 6}

	sizes := make([]int, 0, 3)
	for _, tol := range []float64{1e-10, 1e-2, math.Inf(1)} {
		agg, err := krylov.Select(c, p0, &krylov.Options{
			Tolerance:   tol,
			Checkpoints: schedule,
			Cap:         10,
		})
		require.NoError(t, err)
		sizes = append(sizes, agg.Size)
	}

	assert.GreaterOrEqual(t, sizes[0], sizes[1], "tightest tolerance needs the largest basis")
	assert.GreaterOrEqual(t, sizes[1], sizes[2])
	assert.LessOrEqual(t, sizes[0], 10, "never above the cap")
	assert.GreaterOrEqual(t, sizes[2], 1, "never below the smallest checkpoint")
}

// TestSelect_BreakdownFallback: the 2-state subspace saturates at size 2,
// far below the only checkpoint; the selector must evaluate at the reached
// size instead of aborting, and here it even certifies.
func TestSelect_BreakdownFallback(t *testing.T) {
	agg, err := krylov.Select(twoState(t), []float64{1, 0}, &krylov.Options{
		Tolerance:   1e-6,
		Checkpoints: []int{5},
		Cap:         8,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, agg.Size, "fell back to the saturated size")
	assert.True(t, agg.Certified)
}

// TestSelect_SoftFailure: schedule exhausted without meeting ε returns the
// largest evaluated aggregation, uncertified — a value, not an error.
func TestSelect_SoftFailure(t *testing.T) {
	agg, err := krylov.Select(twoState(t), []float64{1, 0}, &krylov.Options{
		Tolerance:   1e-12,
		Checkpoints: []int{1},
		Cap:         2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, agg.Size)
	assert.False(t, agg.Certified)
	assert.InDelta(t, 0.1, agg.Criterion, 1e-12)
}

// TestSelect_FrozenCopiesAreIndependent: the returned aggregation must not
// alias selector buffers — it outlives the factorization that built it.
func TestSelect_FrozenCopiesAreIndependent(t *testing.T) {
	agg, err := krylov.Select(twoState(t), []float64{1, 0}, &krylov.Options{
		Tolerance:   1e-8,
		Checkpoints: []int{1, 2},
		Cap:         4,
	})
	require.NoError(t, err)
	require.NoError(t, agg.Validate())

	v, err := agg.Pi.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, v, 1e-14)

	v, err = agg.Basis.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-14, "first basis vector is e₀ for p₀ = e₀")
}

// TestSelect_NilOptionsUseDefaults: nil opts must behave exactly like
// DefaultOptions — on a tiny chain the schedule's smallest size exceeds the
// saturation point, exercising the breakdown fallback under defaults.
func TestSelect_NilOptionsUseDefaults(t *testing.T) {
	agg, err := krylov.Select(twoState(t), []float64{1, 0}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, agg.Size)
	assert.True(t, agg.Certified, "exact 2-state subspace beats the default tolerance")
	assert.InDelta(t, 1.0, matrix.Norm1(agg.Stationary), 1e-10, "identity basis here")
}
