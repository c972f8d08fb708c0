package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/asset-packager/internal/service/packager"
)

// stageCmd builds the staged archive without copying anything to a build location.
var stageCmd = &cobra.Command{
	Use:   "stage <project_dir>",
	Short: "Build scripts/tmp/assets from the project's assets directory",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return packager.StageAssets(cmd.Context(), &packager.Options{
			Args:   args,
			Config: cfg,
		})
	},
}
