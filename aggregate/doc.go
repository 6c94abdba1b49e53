// Package aggregate holds a frozen reduced-order chain and runs it: the
// Engine steps an aggregated distribution forward in O(k²) per step with
// zero allocations, and Instrument co-evolves the exact full-space
// distribution in lock-step to quantify how much the reduction costs.
//
// The step contract is shared by composition, not hierarchy: Instrument
// wraps an Engine and adds the exact trajectory plus four diagnostics —
// only the "step forward" behavior is common, not the internal layout.
//
// Double buffering is pointer rotation: each trajectory owns two fixed
// buffers whose roles swap after every step; data never moves.
//
// Nothing here is safe for concurrent use; every Engine and Instrument
// instance belongs to exactly one logical caller.
package aggregate
