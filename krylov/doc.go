// Package krylov builds reduced-order approximations of Markov chains:
// an incremental Arnoldi factorization of (P, p₀), a stationary estimator
// over the projected operator, and an adaptive selector that grows the
// basis until a stationary-weighted residual criterion is met.
//
// The three entry points mirror the three phases:
//
//   - Initialize/Expand — grow an orthonormal Krylov basis one vector at a
//     time, with modified Gram-Schmidt re-orthogonalization for stability.
//     The factorization keeps a look-ahead invariant: at basis size k, the
//     full k×k projected operator Π_k = AᵀPA is already available, so any
//     size can be evaluated without a throwaway expansion.
//   - Estimate — the eigenpair of Π_k nearest eigenvalue 1 (the black-box
//     dense eigensolver is gonum's mat.Eigen), rescaled so the lifted
//     stationary vector has unit 1-norm. A complex eigenpair is reported as
//     ErrNotConverged, never silently real-cast.
//   - Select — walks an ascending checkpoint schedule over one running
//     factorization, evaluating criterion(k) = Σ_i |π_st[i]|·Σ_j |(AΠ−PA)[j,i]|
//     at each checkpoint, and freezes the smallest adequate aggregation.
//     Running out of schedule is a soft failure: the largest evaluated
//     aggregation is returned uncertified rather than discarded.
//
// All growth happens inside buffers preallocated at the cap: peak memory is
// O(n·cap + cap²) and no reallocation ever occurs mid-run. Nothing in this
// package is safe for concurrent use; each factorization has one owner.
package krylov
