// Package command holds the subcommands of the necrosis CLI.
package command

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/suborbital/necrosis/engine"
	"github.com/suborbital/necrosis/options"
	"github.com/suborbital/necrosis/release"
	"github.com/suborbital/necrosis/signaler"
)

// StartCmd returns the start command.
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "start",
		Short:   "start the necrosis engine",
		Long:    "starts the engine with the features compiled into this binary and runs until interrupted or the console input ends",
		Version: release.Version(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := optionsFromFlags(cmd.Flags())
			if err != nil {
				return errors.Wrap(err, "failed to optionsFromFlags")
			}

			mods = append(mods, options.UseOutput(cmd.OutOrStdout()))

			opts, err := options.New(nil, mods...)
			if err != nil {
				return errors.Wrap(err, "failed to options.New")
			}

			e, err := engine.New(opts)
			if err != nil {
				return errors.Wrap(err, "failed to engine.New")
			}

			wait, err := cmd.Flags().GetDuration(waitFlag)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("get duration flag '%s' value", waitFlag))
			}

			signals := signaler.Setup()
			signals.Start(e.Start)

			return signals.Wait(wait)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().String(appNameFlag, "", "if passed, it'll be used as NECROSIS_APP_NAME, otherwise 'Necrosis' will be used")
	cmd.Flags().String(consoleAddrFlag, "", "if passed, it'll be used as NECROSIS_CONSOLE_ADDR and the websocket console will listen there")
	cmd.Flags().Bool(stdinFlag, false, "if passed, console commands are read from stdin")
	cmd.Flags().Duration(waitFlag, 5*time.Second, "how long to wait for subsystems to stop after an interrupt")

	return cmd
}

func optionsFromFlags(flags *pflag.FlagSet) ([]options.Modifier, error) {
	appName, err := flags.GetString(appNameFlag)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("get string flag '%s' value", appNameFlag))
	}

	consoleAddr, err := flags.GetString(consoleAddrFlag)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("get string flag '%s' value", consoleAddrFlag))
	}

	mods := []options.Modifier{
		options.AppName(appName),
		options.ConsoleAddr(consoleAddr),
	}

	if flags.Changed(stdinFlag) {
		mods = append(mods, options.UseInput(os.Stdin))
	}

	return mods, nil
}
