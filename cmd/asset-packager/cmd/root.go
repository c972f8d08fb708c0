package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/asset-packager/internal/config"
	"github.com/oshokin/asset-packager/internal/logger"
	"github.com/oshokin/asset-packager/internal/service/packager"
	"github.com/oshokin/asset-packager/internal/version"
)

var (
	// configPath to the optional settings YAML file.
	configPath string
	// logLevel overrides the level from the settings file.
	logLevel string

	// rootCmd packages assets and the runtime library for a build.
	rootCmd = &cobra.Command{
		Use:   "asset-packager <project_dir> <build_type> <build_location>",
		Short: "Package game assets and the SDL2 runtime next to a build",
		Long: "Copies lib/SDL2-2.0.5/lib/{x86,x64}/SDL2.dll for build type 32 or 64 into build_location,\n" +
			"zips project_dir/assets into project_dir/scripts/tmp/assets and copies that archive into build_location.\n\n" +
			"A project_dir literally named \"stage\" or \"version\" selects that subcommand; pass it as ./stage or ./version.",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Argument checks live in the packager so they report the same error kind everywhere.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return packager.Run(cmd.Context(), &packager.Options{
				Args:   args,
				Config: cfg,
			})
		},
	}
)

// Execute runs the asset-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		logger.ErrorKV(ctx, "asset-packager failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}

	logger.Sync()
}

// loadConfig reads the settings file and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	logger.SetLevel(level)

	return cfg, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to optional settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(stageCmd)
}
