package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/suborbital/necrosis/featuregen"
	"github.com/suborbital/necrosis/util"
)

const (
	manifestFlag = "manifest"
	outFlag      = "out"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		util.LogFail(err.Error())
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "featuregen",
		Short: "generate compile-time feature flags",
		Long:  `featuregen reads a feature manifest (YAML or TOML) and writes the tagged and untagged constant files and the flag table.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, _ := cmd.Flags().GetString(manifestFlag)
			out, _ := cmd.Flags().GetString(outFlag)

			util.LogStart(fmt.Sprintf("generating features from %s", manifestPath))

			manifest, err := featuregen.Load(manifestPath)
			if err != nil {
				return errors.Wrap(err, "failed to Load")
			}

			written, err := featuregen.Generate(manifest, out)
			if err != nil {
				return errors.Wrap(err, "failed to Generate")
			}

			util.LogDone(fmt.Sprintf("generated %d files for %d features in %s", len(written), len(manifest.Features), out))

			return nil
		},
	}

	cmd.Flags().String(manifestFlag, "features.yaml", "path to the feature manifest")
	cmd.Flags().String(outFlag, ".", "directory to write the generated files to")

	return cmd
}
