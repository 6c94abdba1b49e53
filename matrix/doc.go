// Package matrix provides the numeric substrate for Markov-chain
// aggregation: dense row-major storage, sparse column-compressed
// operators, and the small set of vector kernels the reduction
// algorithms are built from.
//
// The matrix package provides:
//
//   - Dense with O(1) element access, no-copy prefix Views for
//     growing-in-place algorithms, and safe At/Set (errors, not panics).
//   - CSC, a column-compressed sparse matrix tuned for the two access
//     patterns that matter here: column scatter (MulVec) and column sums.
//   - Vector kernels (Dot, Norm1, Norm2, Dist1, AddScaled, MulVec) with
//     strict dimension validation and deterministic loop orders.
//
// All arithmetic is float64. The numeric policy (NaN/Inf rejection on
// ingestion) is centralized in options.go and applied uniformly.
//
// See the examples in krylov and aggregate for usage patterns.
package matrix
