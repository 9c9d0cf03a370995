package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mapiker/core/selection"
	"mapiker/core/types"
	"mapiker/internal/errors"
)

var resolveFormat string

// resolveCmd resolves the selection of a project file into the
// canonical product list.
var resolveCmd = &cobra.Command{
	Use:   "resolve <project.json>",
	Short: "Resolve a project's selection into its product list",
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

		if resolveFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(resolved.Products)
		}

		fmt.Printf("Resolved %d product(s)", len(resolved.Products))
		if resolved.Missing > 0 {
			fmt.Printf(" (%d selected id(s) no longer in catalog)", resolved.Missing)
		}
		fmt.Println()
		for _, p := range resolved.Products {
			fmt.Printf("  %-20s %-16s %s\n", p.ID, p.Provider, p.Name)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "text", "output format (text, json)")
}

// loadProjectFile reads a project record from a JSON file.
func loadProjectFile(path string) (*types.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to read project file", err)
	}
	var project types.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to parse project file", err)
	}
	return &project, nil
}
