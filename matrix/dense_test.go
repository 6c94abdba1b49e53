package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/mcagg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDense_BadShape verifies that non-positive dimensions are rejected
// with ErrBadShape before any allocation happens.
func TestNewDense_BadShape(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrBadShape, "zero rows must error")

	_, err = matrix.NewDense(3, -1)
	assert.ErrorIs(t, err, matrix.ErrBadShape, "negative cols must error")
}

// TestNewDenseOf_Validation covers length mismatch and the NaN/Inf policy.
func TestNewDenseOf_Validation(t *testing.T) {
	_, err := matrix.NewDenseOf(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch, "short data must error")

	_, err = matrix.NewDenseOf(2, 2, []float64{1, 2, 3, math.NaN()})
	assert.ErrorIs(t, err, matrix.ErrNaNInf, "NaN must be rejected by default policy")

	m, err := matrix.NewDenseOf(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v, "row-major layout: (1,0) holds the third value")
}

// TestDense_AtSet_Bounds verifies the safe accessor contract: sentinel
// errors, no panics, no partial writes.
func TestDense_AtSet_Bounds(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange, "row past end")
	_, err = m.At(0, -1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange, "negative col")

	assert.ErrorIs(t, m.Set(0, 3, 1.0), matrix.ErrOutOfRange, "col past end")
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf, "+Inf rejected")

	require.NoError(t, m.Set(1, 2, 7.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)
}

// TestDense_Clone verifies deep-copy independence.
func TestDense_Clone(t *testing.T) {
	m, err := matrix.NewDenseOf(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, -1))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "mutating the clone must not touch the base")
}

// TestDense_ColInto verifies the strided column gather and its error surface.
func TestDense_ColInto(t *testing.T) {
	m, err := matrix.NewDenseOf(3, 2, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	dst := make([]float64, 3)
	require.NoError(t, m.ColInto(1, dst))
	assert.Equal(t, []float64{2, 4, 6}, dst)

	assert.ErrorIs(t, m.ColInto(2, dst), matrix.ErrOutOfRange, "column index past end")
	assert.ErrorIs(t, m.ColInto(0, make([]float64, 2)), matrix.ErrDimensionMismatch, "short dst")
}

// TestDense_View_Aliasing verifies that a prefix view shares storage with its
// base: writes through the view are visible from the base and vice versa.
func TestDense_View_Aliasing(t *testing.T) {
	m, err := matrix.NewDense(4, 4)
	require.NoError(t, err)

	v, err := m.View(0, 0, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, v.Rows())
	require.Equal(t, 2, v.Cols())

	require.NoError(t, v.Set(1, 1, 9.0))
	got, err := m.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got, "view writes through to the base buffer")

	require.NoError(t, m.Set(0, 1, 4.0))
	got, err = v.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got, "base writes are visible through the view")

	_, err = m.View(3, 3, 2, 2)
	assert.ErrorIs(t, err, matrix.ErrBadShape, "window must fit inside the base")
}

// TestMatrixView_Materialize verifies that freezing a prefix detaches its
// lifetime from the growth buffer.
func TestMatrixView_Materialize(t *testing.T) {
	m, err := matrix.NewDenseOf(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)

	v, err := m.View(0, 0, 2, 2)
	require.NoError(t, err)
	frozen, err := v.Materialize()
	require.NoError(t, err)

	require.NoError(t, m.Set(0, 0, -100))
	got, err := frozen.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got, "materialized copy must be independent of the base")
}
