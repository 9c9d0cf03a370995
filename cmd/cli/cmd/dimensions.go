package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mapiker/internal/config"
)

// dimensionsCmd prints the active quality dimension catalog.
var dimensionsCmd = &cobra.Command{
	Use:   "dimensions",
	Short: "List the quality dimensions used for vendor comparison",
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range config.Get().Dimensions() {
			fmt.Printf("%-14s %s\n", d.ID, d.Name)
			for _, t := range d.Rubric {
				fmt.Printf("    >= %3d  %s\n", t.Min, t.Label)
			}
		}
	},
}
