package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"mapiker/core/quality"
	"mapiker/core/selection"
	"mapiker/internal/config"
)

var compareFormat string

// compareCmd builds the cross-vendor quality comparison for a project
// file.
var compareCmd = &cobra.Command{
	Use:   "compare <project.json>",
	Short: "Compare vendor quality for a project's selected products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := loadProjectFile(args[0])
		if err != nil {
			return err
		}

		resolved, err := selection.Resolve(project.MatchResult, project.Selection)
		if err != nil {
			return err
		}

		dims := config.Get().Dimensions()
		if err := quality.ValidateDimensions(dims); err != nil {
			return err
		}

		synth := quality.NewSynthesizer(dims)
		reports := synth.SynthesizeAll(project.ID, project.Region, resolved.Vendors())
		comparison, err := quality.Aggregate(reports)
		if err != nil {
			return err
		}

		if compareFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(comparison)
		}

		dimIDs := make([]string, 0, len(comparison.Dimensions))
		for id := range comparison.Dimensions {
			dimIDs = append(dimIDs, id)
		}
		sort.Strings(dimIDs)

		for _, dimID := range dimIDs {
			fmt.Printf("%s (best: %v)\n", dimID, comparison.BestByDimension[dimID])
			row := comparison.Dimensions[dimID]
			vendors := make([]string, 0, len(row))
			for v := range row {
				vendors = append(vendors, v)
			}
			sort.Strings(vendors)
			for _, v := range vendors {
				score := row[v]
				fmt.Printf("  %-16s %3d  %s\n", v, score.Score, score.Label)
			}
		}

		fmt.Printf("\nBest overall: %v\n", comparison.BestOverall)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareFormat, "format", "text", "output format (text, json)")
}
