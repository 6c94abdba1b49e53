// SPDX-License-Identifier: MIT
// Package krylov: narrow re-exports of private helpers for white-box tests.
// Nothing here ships in the public API contract.

package krylov

import "gonum.org/v1/gonum/mat"

// NearestUnitEigenvectorForTest exposes the eigenpair-selection policy so
// tests can drive it with crafted operators (e.g. rotation blocks whose
// pair nearest 1 is genuinely complex).
func NearestUnitEigenvectorForTest(a *mat.Dense) ([]float64, error) {
	return nearestUnitEigenvector(a)
}
