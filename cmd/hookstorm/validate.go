package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/hookstorm/internal/logging"
	"github.com/dshills/hookstorm/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every manifest in the manifest directory",
	Long: `Validate parses each manifest file and checks every hook declaration
against the schema, reporting problems per file. It exits non-zero when
any manifest fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Logger("cmd.validate")

		files, err := manifest.Files(manifestDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("No manifests found in %s\n", manifestDir)
			return nil
		}

		failures := 0
		for _, path := range files {
			m, err := manifest.Load(path)
			if err != nil {
				failures++
				fmt.Printf("FAIL  %s\n      %v\n", path, err)
				continue
			}
			fmt.Printf("ok    %s (%d hooks)\n", path, len(m.Hooks))
		}

		logger.Info().
			Int("files", len(files)).
			Int("failures", failures).
			Msg("validation finished")

		if failures > 0 {
			return fmt.Errorf("%d of %d manifests failed validation", failures, len(files))
		}
		return nil
	},
}
