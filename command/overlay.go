package command

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/suborbital/necrosis/overlay"
)

// OverlayCmd returns the overlay command.
func OverlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "render the debug overlay once",
		Long:  "renders the debug overlay for a fresh session, whether or not the overlay is compiled into the engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := oneShotEngine(cmd.OutOrStdout())
			if err != nil {
				return errors.Wrap(err, "failed to oneShotEngine")
			}

			if err := overlay.Render(cmd.OutOrStdout(), e.Overlay()); err != nil {
				return errors.Wrap(err, "failed to Render")
			}

			return nil
		},
	}

	return cmd
}
