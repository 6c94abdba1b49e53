package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mcagg/aggregate"
	"github.com/katalvlaran/mcagg/chain"
	"github.com/katalvlaran/mcagg/krylov"
	"github.com/katalvlaran/mcagg/matrix"
)

// reduceCmd represents the reduce command.
var reduceCmd = &cobra.Command{
	Use:   "reduce <chain-file>",
	Short: "Build an adaptive aggregation of a chain and report its quality",
	Long: `Loads a sparse transition matrix, grows a Krylov basis from the chosen
initial distribution, and selects the smallest checkpoint size meeting the
tolerance. With --steps N it then runs the reduced model alongside the exact
chain and reports the dynamic error against its accumulated bound.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReduce(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reduceCmd)

	reduceCmd.Flags().Float64("tolerance", krylov.DefaultTolerance, "certification tolerance ε for the selection criterion")
	reduceCmd.Flags().IntSlice("checkpoints", nil, "ascending candidate sizes (default 8,16,...,1024)")
	reduceCmd.Flags().Int("cap", krylov.DefaultCap, "hard upper bound on the basis size")
	reduceCmd.Flags().Int("start", 0, "initial state index for a point-mass start")
	reduceCmd.Flags().Bool("uniform", false, "start from the uniform distribution instead of --start")
	reduceCmd.Flags().Int("steps", 0, "steps of instrumented reduced-vs-exact evolution to run")
}

// runReduce is the whole experiment: load, select, report, optionally evolve.
func runReduce(cmd *cobra.Command, path string) error {
	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}

	c, err := chain.LoadFile(path)
	if err != nil {
		return err
	}
	n := c.Dim()
	fmt.Printf("states:    %d (nnz %d)\n", n, c.Operator().NNZ())

	var p0 []float64
	switch {
	case cfg.Uniform:
		p0 = chain.Uniform(n)
	case cfg.Start < 0 || cfg.Start >= n:
		return fmt.Errorf("start state %d out of range [0,%d)", cfg.Start, n)
	default:
		p0 = chain.Delta(n, cfg.Start)
	}

	opts := krylov.Options{
		Tolerance:   cfg.Tolerance,
		Checkpoints: cfg.Checkpoints,
		Cap:         cfg.Cap,
	}
	agg, err := krylov.Select(c, p0, &opts)
	if err != nil {
		if errors.Is(err, krylov.ErrNotConverged) {
			return fmt.Errorf("no usable aggregation below size %d: %w", cfg.Cap, err)
		}
		return err
	}

	status := "NOT certified"
	if agg.Certified {
		status = "certified"
	}
	fmt.Printf("size:      %d (%s)\n", agg.Size, status)
	fmt.Printf("criterion: %.3e (tolerance %.3e)\n", agg.Criterion, cfg.Tolerance)
	if err = printStationary(agg); err != nil {
		return err
	}

	if cfg.Steps > 0 {
		return runInstrumented(agg, c, p0, cfg.Steps)
	}

	return nil
}

// mergedConfig resolves flag/file precedence: the YAML file (if any) sets the
// baseline, every explicitly changed flag wins over it.
func mergedConfig(cmd *cobra.Command) (*experimentConfig, error) {
	cfg := &experimentConfig{
		Tolerance:   krylov.DefaultTolerance,
		Checkpoints: krylov.DefaultCheckpoints(),
		Cap:         krylov.DefaultCap,
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		fileCfg, err := loadExperiment(path)
		if err != nil {
			return nil, err
		}
		if fileCfg.Tolerance > 0 {
			cfg.Tolerance = fileCfg.Tolerance
		}
		if len(fileCfg.Checkpoints) > 0 {
			cfg.Checkpoints = fileCfg.Checkpoints
		}
		if fileCfg.Cap > 0 {
			cfg.Cap = fileCfg.Cap
		}
		cfg.Start = fileCfg.Start
		cfg.Uniform = fileCfg.Uniform
		cfg.Steps = fileCfg.Steps
	}

	flags := cmd.Flags()
	if flags.Changed("tolerance") {
		cfg.Tolerance, _ = flags.GetFloat64("tolerance")
	}
	if flags.Changed("checkpoints") {
		cfg.Checkpoints, _ = flags.GetIntSlice("checkpoints")
	}
	if flags.Changed("cap") {
		cfg.Cap, _ = flags.GetInt("cap")
	}
	if flags.Changed("start") {
		cfg.Start, _ = flags.GetInt("start")
	}
	if flags.Changed("uniform") {
		cfg.Uniform, _ = flags.GetBool("uniform")
	}
	if flags.Changed("steps") {
		cfg.Steps, _ = flags.GetInt("steps")
	}

	return cfg, nil
}

// printStationary lifts the reduced stationary estimate back to state space
// and prints its heaviest entries.
func printStationary(agg *aggregate.Aggregation) error {
	lifted := make([]float64, agg.N)
	if err := matrix.MulVec(agg.Basis, agg.Stationary, lifted); err != nil {
		return err
	}

	idx := make([]int, agg.N)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return lifted[idx[a]] > lifted[idx[b]] })

	top := len(idx)
	if top > 5 {
		top = 5
	}
	fmt.Printf("stationary (top %d lifted entries):\n", top)
	for _, i := range idx[:top] {
		fmt.Printf("  [%6d] %.6f\n", i, lifted[i])
	}

	return nil
}

// runInstrumented evolves the reduced model next to the exact chain and
// prints the measured dynamic error against its a-priori bound.
func runInstrumented(agg *aggregate.Aggregation, c *chain.Chain, p0 []float64, steps int) error {
	eng, err := aggregate.NewEngine(agg)
	if err != nil {
		return err
	}
	ins, err := aggregate.NewInstrument(eng, c, p0)
	if err != nil {
		return err
	}

	m := ins.Metrics()
	fmt.Printf("frozen metrics: err=%.3e err_st=%.3e err_pi_st=%.3e\n", m.Err, m.ErrSt, m.ErrPiSt)

	fmt.Printf("%6s  %12s  %12s\n", "step", "err_k", "bound")
	for t := 1; t <= steps; t++ {
		errK := ins.MeasureDynamicError()
		fmt.Printf("%6d  %12.5e  %12.5e\n", t, errK, ins.Metrics().ErrKBnd)
	}

	return nil
}
