package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dshills/hookstorm/internal/config"
	"github.com/dshills/hookstorm/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbosity   int
	manifestDir string

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "hookstorm",
		Short: "Inspect and fire lifecycle hooks",
		Long: `hookstorm manages declarative hook manifests: collections of Lua
scripts and external commands attached to lifecycle event kinds. It can
validate manifests, list the configured hooks, and fire an event through
them for testing.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			if verbosity == 0 {
				verbosity = cfg.Verbosity()
			}
			if manifestDir == "" {
				manifestDir = cfg.ManifestDir
			}

			logging.Setup(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&manifestDir, "manifest-dir", "",
		"Directory holding hook manifests (default $HOOKSTORM_MANIFEST_DIR or ./hooks)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fireCmd)
}
