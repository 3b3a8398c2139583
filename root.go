package main

import (
	"github.com/spf13/cobra"

	"github.com/suborbital/necrosis/command"
	"github.com/suborbital/necrosis/conditional"
	"github.com/suborbital/necrosis/features"
	"github.com/suborbital/necrosis/release"
)

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "necrosis",
		Short:   "Necrosis engine",
		Version: release.Version(),
		Long: `
Necrosis is a game engine whose optional subsystems (cheats, debug overlay,
command console and performance tracing) are chosen when it is built:

	go build -tags necrosis_cheat_system,necrosis_debug_overlay .

Run 'necrosis features' to see what this binary was built with.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(command.StartCmd())
	cmd.AddCommand(command.FeaturesCmd())
	cmd.AddCommand(command.OverlayCmd())
	cmd.AddCommand(command.VersionCmd())

	// developer only
	conditional.For(features.CheatSystem).Call(func() {
		cmd.AddCommand(command.CheatCmd())
	})

	cmd.SetVersionTemplate("necrosis v{{.Version}}\n")

	return cmd
}
