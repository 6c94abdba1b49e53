// SPDX-License-Identifier: MIT
// Package krylov: sentinel error set. Only caller-contract violations are
// fatal; subspace saturation and complex eigenpairs are recoverable and the
// selector degrades through them (see selector.go).

package krylov

import "errors"

var (
	// ErrDimension indicates mismatched shapes between the operator and the
	// initial distribution at factorization setup.
	ErrDimension = errors.New("krylov: dimension mismatch")

	// ErrDegenerateInput indicates an initial distribution with zero norm —
	// there is no direction to seed the subspace with.
	ErrDegenerateInput = errors.New("krylov: zero initial distribution")

	// ErrBreakdown indicates the Arnoldi residual vanished: the Krylov
	// subspace is saturated and no further basis vector exists. The current
	// size is final; callers fall back to it rather than abort.
	ErrBreakdown = errors.New("krylov: subspace saturated")

	// ErrNotConverged indicates the eigenpair nearest 1 is complex at the
	// current size. Recoverable: a larger checkpoint usually resolves it.
	ErrNotConverged = errors.New("krylov: complex dominant eigenpair")

	// ErrBadSchedule indicates a checkpoint schedule that is empty, not
	// strictly ascending, not positive, or not strictly below the cap.
	ErrBadSchedule = errors.New("krylov: invalid checkpoint schedule")

	// ErrBadTolerance indicates a tolerance that is not positive (+Inf is
	// allowed and means "accept the first real estimate").
	ErrBadTolerance = errors.New("krylov: tolerance must be positive")

	// ErrBadCapacity indicates a non-positive preallocation capacity.
	ErrBadCapacity = errors.New("krylov: capacity must be positive")

	// ErrAtCapacity indicates an Expand call on a factorization that already
	// filled its preallocated buffers. Growth is bounded by construction.
	ErrAtCapacity = errors.New("krylov: factorization at capacity")
)
