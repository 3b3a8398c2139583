package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/suborbital/necrosis/features"
)

// FeaturesCmd returns the features command.
func FeaturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "list the compile-time features",
		Long:  "lists every feature flag, its build tag and whether it is compiled into this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			states := features.Snapshot()

			if asJSON, _ := cmd.Flags().GetBool(jsonFlag); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				if err := enc.Encode(states); err != nil {
					return errors.Wrap(err, "failed to Encode features")
				}

				return nil
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), featureTable(states))

			return errors.Wrap(err, "failed to write features")
		},
	}

	cmd.Flags().Bool(jsonFlag, false, "if passed, the features are printed as JSON")

	return cmd
}

var columnStyle = lipgloss.NewStyle().PaddingRight(2)

// featureTable lays the states out in aligned columns, one row per feature
// under a header row.
func featureTable(states []features.State) string {
	columns := [][]string{{"FEATURE"}, {"TAG"}, {"STATE"}, {"DESCRIPTION"}}

	for _, s := range states {
		state := "DISABLED"
		if s.Enabled {
			state = "ENABLED"
		}

		columns[0] = append(columns[0], s.Name)
		columns[1] = append(columns[1], s.Tag)
		columns[2] = append(columns[2], state)
		columns[3] = append(columns[3], s.Description)
	}

	blocks := make([]string, 0, len(columns))
	for i, col := range columns {
		style := columnStyle
		if i == len(columns)-1 {
			style = lipgloss.NewStyle()
		}

		blocks = append(blocks, style.Render(strings.Join(col, "\n")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
