// Package chain defines the discrete-time Markov chain domain type and the
// coordinate-format loader that feeds it.
//
// Orientation convention (pinned, tested):
//
// The text format describes transitions of a row-stochastic chain, but each
// data line carries its entry as "col row value". Loading that field order
// literally — value lands at (row, col) — transposes the source, so the
// in-memory operator P is COLUMN-stochastic: every column sums to 1,
// distributions are column vectors evolving by p' = P·p, and stationarity
// reads P·π = π. Every consumer in this module (krylov, aggregate) assumes
// exactly this orientation; NewChain enforces it at construction.
//
// File format:
//
//	<ignored> <num_transitions>
//	<col> <row> <value>         (num_transitions lines, 0-based indices)
//
// Zero-valued entries are dropped on ingestion. The state-space dimension is
// inferred as one past the largest index seen.
package chain
