package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mcagg",
	Short: "mcagg reduces large Markov chains to small certified surrogates",
	Long: `mcagg builds a Krylov-subspace aggregation of a sparse column-stochastic
Markov chain: it grows an orthonormal basis around the initial distribution,
picks the smallest basis size whose stationarity-weighted residual clears a
tolerance, and freezes the result into a model that steps in the reduced
dimension only.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML experiment file; explicit flags override its values")
}
