// Package mcagg reduces large discrete-time Markov chains to small
// aggregated chains whose transient and stationary behavior tracks the
// original — Krylov-subspace model-order reduction, in pure Go.
//
// 🚀 What is mcagg?
//
//	A deterministic, library-first toolkit that brings together:
//		• Sparse column-stochastic operators + a coordinate text loader
//		• An incremental Arnoldi factorization with modified Gram-Schmidt
//		• Stationary estimation through the projected operator's eigenpair
//		• Adaptive basis sizing under a stationary-weighted residual criterion
//		• A zero-allocation stepping engine with lock-step error instrumentation
//
// ✨ Why choose mcagg?
//
//   - Predictable numerics – fixed loop orders, explicit tolerances, no hidden state
//   - Rock-solid error surface – sentinel errors everywhere, matched via errors.Is
//   - Bounded memory – all growth happens inside buffers preallocated at the cap
//   - Small API – initialize, select, step, measure; nothing else to learn
//
// Under the hood, everything is organized under four subpackages:
//
//	matrix/    — dense storage with prefix views, CSC sparse operators, vector kernels
//	chain/     — the DTMC domain type and the coordinate-format loader
//	krylov/    — Arnoldi factorization, stationary estimator, adaptive size selector
//	aggregate/ — the frozen aggregation, stepping engine and error instrumentation
//
// Quick sketch:
//
//	c, _   := chain.LoadFile("web_graph.txt")
//	p0     := chain.Uniform(c.Dim())
//	agg, _ := krylov.Select(c, p0, nil) // nil opts: default schedule, cap 2000
//	eng, _ := aggregate.NewEngine(agg)
//	for t := 0; t < 1000; t++ {
//	    eng.Step() // O(k²) instead of O(n²)
//	}
//
// Dive into DESIGN.md and the examples/ directory for full scenarios,
// the stochastic-orientation convention, and the error-bound story.
//
//	go get github.com/katalvlaran/mcagg
package mcagg
