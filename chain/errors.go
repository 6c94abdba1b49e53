// SPDX-License-Identifier: MIT
// Package chain: sentinel error set. All loaders and constructors return
// these sentinels (possibly wrapped with context) and tests match them via
// errors.Is.

package chain

import "errors"

var (
	// ErrBadFormat indicates a malformed header or data line in the
	// coordinate text format (wrong field count, unparsable number, or a
	// transition count that does not match the body).
	ErrBadFormat = errors.New("chain: malformed coordinate file")

	// ErrBadIndex indicates a negative state index in a data line.
	ErrBadIndex = errors.New("chain: negative state index")

	// ErrNegativeEntry indicates a negative transition probability.
	ErrNegativeEntry = errors.New("chain: negative transition probability")

	// ErrNotStochastic indicates a column whose mass deviates from 1 beyond
	// the numeric tolerance — the operator is not column-stochastic.
	ErrNotStochastic = errors.New("chain: operator is not column-stochastic")

	// ErrBadDistribution indicates a vector that is not a probability
	// distribution (negative entry, or mass away from 1).
	ErrBadDistribution = errors.New("chain: not a probability distribution")

	// ErrNilChain indicates a nil *Chain passed where one is required.
	ErrNilChain = errors.New("chain: nil chain")
)
