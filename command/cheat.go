package command

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/suborbital/necrosis/features"
)

// CheatCmd returns the cheat command. It is only added to the CLI when the
// cheat system is compiled in.
func CheatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cheat <command> [args...]",
		Short: "run one cheat command",
		Long:  "runs a single developer cheat command, for example 'necrosis cheat spawn_item sword'",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := oneShotEngine(cmd.OutOrStdout())
			if err != nil {
				return errors.Wrap(err, "failed to oneShotEngine")
			}

			system, ok := e.Cheats().Get()
			if !ok {
				return errors.Errorf("%s is not compiled in, rebuild with -tags %s", features.CheatSystem, features.CheatSystem.Tag())
			}

			return system.Process(cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	return cmd
}
