package matrix_test

import (
	"testing"

	"github.com/katalvlaran/mcagg/matrix"
)

// benchDense builds an n×n dense matrix with deterministic entries.
func benchDense(b *testing.B, n int) *matrix.Dense {
	b.Helper()
	vals := make([]float64, n*n)
	for i := range vals {
		vals[i] = float64(i%7) * 0.25
	}
	m, err := matrix.NewDenseOf(n, n, vals)
	if err != nil {
		b.Fatalf("dense: %v", err)
	}

	return m
}

// benchCSC builds an n×n sparse matrix with three entries per column.
func benchCSC(b *testing.B, n int) *matrix.CSC {
	b.Helper()
	entries := make([]matrix.Triplet, 0, 3*n)
	for j := 0; j < n; j++ {
		entries = append(entries,
			matrix.Triplet{Row: j, Col: j, Val: 0.5},
			matrix.Triplet{Row: (j + 1) % n, Col: j, Val: 0.3},
			matrix.Triplet{Row: (j + 2) % n, Col: j, Val: 0.2},
		)
	}
	m, err := matrix.NewCSC(n, n, entries)
	if err != nil {
		b.Fatalf("csc: %v", err)
	}

	return m
}

// benchmarkDenseMulVec times the dense matrix-vector product at size n.
func benchmarkDenseMulVec(b *testing.B, n int) {
	m := benchDense(b, n)
	x := make([]float64, n)
	dst := make([]float64, n)
	for i := range x {
		x[i] = float64(i + 1)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := matrix.MulVec(m, x, dst); err != nil {
			b.Fatalf("MulVec failed: %v", err)
		}
	}
}

// benchmarkCSCMulVec times the sparse matrix-vector product at size n.
func benchmarkCSCMulVec(b *testing.B, n int) {
	m := benchCSC(b, n)
	x := make([]float64, n)
	dst := make([]float64, n)
	for i := range x {
		x[i] = 1.0 / float64(n)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.MulVec(x, dst); err != nil {
			b.Fatalf("MulVec failed: %v", err)
		}
	}
}

// BenchmarkDenseMulVec_64 benchmarks the dense product on a 64×64 matrix.
func BenchmarkDenseMulVec_64(b *testing.B) { benchmarkDenseMulVec(b, 64) }

// BenchmarkDenseMulVec_512 benchmarks the dense product on a 512×512 matrix.
func BenchmarkDenseMulVec_512(b *testing.B) { benchmarkDenseMulVec(b, 512) }

// BenchmarkCSCMulVec_1024 benchmarks the sparse product on a 1024-state
// three-diagonal operator.
func BenchmarkCSCMulVec_1024(b *testing.B) { benchmarkCSCMulVec(b, 1024) }

// BenchmarkCSCMulVec_8192 benchmarks the sparse product on an 8192-state
// three-diagonal operator.
func BenchmarkCSCMulVec_8192(b *testing.B) { benchmarkCSCMulVec(b, 8192) }
