package matrix_test

import (
	"testing"

	"github.com/katalvlaran/mcagg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDot covers the inner product and its dimension guard.
func TestDot(t *testing.T) {
	s, err := matrix.Dot([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 32.0, s)

	_, err = matrix.Dot([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestNorms checks Norm1/Norm2 on signed input.
func TestNorms(t *testing.T) {
	x := []float64{3, -4}
	assert.Equal(t, 7.0, matrix.Norm1(x))
	assert.Equal(t, 5.0, matrix.Norm2(x))
	assert.Equal(t, 0.0, matrix.Norm2(nil), "empty vector has zero norm")
}

// TestDist1 checks the L1 distance and its dimension guard.
func TestDist1(t *testing.T) {
	d, err := matrix.Dist1([]float64{1, 2}, []float64{4, 0})
	require.NoError(t, err)
	assert.Equal(t, 5.0, d)

	_, err = matrix.Dist1([]float64{1}, []float64{})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestAddScaled_Scale_Zero covers the in-place kernels.
func TestAddScaled_Scale_Zero(t *testing.T) {
	dst := []float64{1, 1, 1}
	require.NoError(t, matrix.AddScaled(dst, 2, []float64{1, 2, 3}))
	assert.Equal(t, []float64{3, 5, 7}, dst)

	assert.ErrorIs(t, matrix.AddScaled(dst, 1, []float64{1}), matrix.ErrDimensionMismatch)

	matrix.Scale(dst, 0.5)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, dst)

	matrix.Zero(dst)
	assert.Equal(t, []float64{0, 0, 0}, dst)
}

// TestMulVec_Dense verifies the dense matrix-vector product against a hand
// computation and its error surface.
func TestMulVec_Dense(t *testing.T) {
	m, err := matrix.NewDenseOf(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	dst := make([]float64, 2)
	require.NoError(t, matrix.MulVec(m, []float64{1, 0, -1}, dst))
	assert.Equal(t, []float64{-2, -2}, dst)

	assert.ErrorIs(t, matrix.MulVec(m, []float64{1, 2}, dst), matrix.ErrDimensionMismatch, "short x")
	assert.ErrorIs(t, matrix.MulVec(m, []float64{1, 2, 3}, make([]float64, 3)), matrix.ErrDimensionMismatch, "long dst")
	assert.ErrorIs(t, matrix.MulVec(nil, []float64{1, 2, 3}, dst), matrix.ErrNilMatrix)
}
