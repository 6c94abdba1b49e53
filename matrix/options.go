// SPDX-License-Identifier: MIT

// Package matrix: numeric policy. A single source of truth for the
// tolerances and validation switches used across the package, so no kernel
// carries its own magic numbers.

package matrix

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by structural
	// checks (column-sum validation, symmetry-style comparisons in tests).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on
	// ingestion and Set. Dense constructors start with this policy; disable
	// per-instance only when the caller guarantees finiteness upstream.
	DefaultValidateNaNInf = true
)
