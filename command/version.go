package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/suborbital/necrosis/release"
	"github.com/suborbital/necrosis/util"
)

const checkVersionTimeout = 2 * time.Second

// VersionCmd returns the version command.
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the necrosis version",
		Long:  "prints the version of this binary and, with --check, whether a newer release exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "necrosis v%s\n", release.Version())

			if check, _ := cmd.Flags().GetBool(checkFlag); !check {
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), checkVersionTimeout)
			defer cancel()

			msg, err := release.CheckForLatestVersion(ctx)
			if err != nil {
				// an unreachable release feed is not a reason to fail
				util.LogWarn(err.Error())
				return nil
			}

			if msg != "" {
				util.LogInfo(msg)
			} else {
				util.LogDone("necrosis is up to date")
			}

			return nil
		},
	}

	cmd.Flags().Bool(checkFlag, false, "if passed, the latest release is looked up on GitHub")

	return cmd
}
