package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/mcagg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCSC_Validation covers shape and triplet validation.
func TestNewCSC_Validation(t *testing.T) {
	_, err := matrix.NewCSC(0, 2, nil)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewCSC(2, 2, []matrix.Triplet{{Row: 2, Col: 0, Val: 1}})
	assert.ErrorIs(t, err, matrix.ErrBadTriplet, "row outside shape")

	_, err = matrix.NewCSC(2, 2, []matrix.Triplet{{Row: 0, Col: 0, Val: math.Inf(-1)}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestCSC_BuildAndAt verifies duplicate summation, zero dropping, and the
// read path, independent of input triplet order.
func TestCSC_BuildAndAt(t *testing.T) {
	m, err := matrix.NewCSC(3, 3, []matrix.Triplet{
		{Row: 2, Col: 1, Val: 0.25},
		{Row: 0, Col: 0, Val: 0.5},
		{Row: 0, Col: 0, Val: 0.5},  // duplicate: summed with the previous
		{Row: 1, Col: 2, Val: 0.0},  // exact zero: kept out of the structure
		{Row: 2, Col: 2, Val: -0.5}, // negatives are structural here, policy lives in chain
	})
	require.NoError(t, err)

	assert.Equal(t, 3, m.NNZ(), "zero entry dropped, duplicate merged")

	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "duplicates sum")

	v, err = m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "dropped zero reads as zero")

	_, err = m.At(3, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	assert.Equal(t, -0.5, m.MinValue())
}

// TestCSC_ColSum verifies per-column mass accounting.
func TestCSC_ColSum(t *testing.T) {
	m, err := matrix.NewCSC(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Val: 0.9},
		{Row: 1, Col: 0, Val: 0.1},
		{Row: 0, Col: 1, Val: 0.5},
		{Row: 1, Col: 1, Val: 0.5},
	})
	require.NoError(t, err)

	s, err := m.ColSum(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-15)

	_, err = m.ColSum(2)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestCSC_MulVec verifies the column-scatter product against a dense hand
// computation, including an empty column.
func TestCSC_MulVec(t *testing.T) {
	// M = [[0.9, 0.5, 0], [0.1, 0.5, 0], [0, 0, 0]] with an all-zero column 2.
	m, err := matrix.NewCSC(3, 3, []matrix.Triplet{
		{Row: 0, Col: 0, Val: 0.9},
		{Row: 1, Col: 0, Val: 0.1},
		{Row: 0, Col: 1, Val: 0.5},
		{Row: 1, Col: 1, Val: 0.5},
	})
	require.NoError(t, err)

	dst := []float64{-1, -1, -1} // stale values must be cleared by MulVec
	require.NoError(t, m.MulVec([]float64{1, 1, 1}, dst))
	assert.InDelta(t, 1.4, dst[0], 1e-15)
	assert.InDelta(t, 0.6, dst[1], 1e-15)
	assert.Equal(t, 0.0, dst[2])

	assert.ErrorIs(t, m.MulVec([]float64{1, 2}, dst), matrix.ErrDimensionMismatch)
}
