// SPDX-License-Identifier: MIT
// Package aggregate: sentinel error set.

package aggregate

import "errors"

var (
	// ErrNilAggregation indicates a nil *Aggregation where one is required.
	ErrNilAggregation = errors.New("aggregate: nil aggregation")

	// ErrBadAggregation indicates an aggregation whose parts disagree on
	// dimensions (basis n×k vs operator k×k vs vectors of length k).
	ErrBadAggregation = errors.New("aggregate: inconsistent aggregation")

	// ErrChainMismatch indicates a chain whose dimension differs from the
	// aggregation's full-space dimension.
	ErrChainMismatch = errors.New("aggregate: chain does not match aggregation")
)
