package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mcagg/chain"
)

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info <chain-file>",
	Short: "Load a chain file and print its shape and sparsity",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := chain.LoadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		p := c.Operator()
		n := c.Dim()
		density := float64(p.NNZ()) / (float64(n) * float64(n))
		fmt.Printf("states:   %d\n", n)
		fmt.Printf("nonzeros: %d (density %.4f%%)\n", p.NNZ(), 100*density)
		fmt.Printf("smallest: %.6g\n", p.MinValue())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
