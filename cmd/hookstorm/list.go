package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/hookstorm/internal/logging"
	"github.com/dshills/hookstorm/manifest"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured hooks grouped by event kind",
	Long: `List loads every manifest in the manifest directory and prints the
hooks it found, grouped by the event kind they fire on.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Logger("cmd.list")
		logger.Info().Str("manifest_dir", manifestDir).Msg("listing hooks")

		m, err := manifest.LoadDir(manifestDir)
		if err != nil {
			return err
		}
		if len(m.Hooks) == 0 {
			fmt.Printf("No hooks found in %s\n", manifestDir)
			return nil
		}

		grouped := m.ByEvent()
		kinds := make([]string, 0, len(grouped))
		for kind := range grouped {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)

		for _, kind := range kinds {
			fmt.Printf("%s:\n", kind)
			for _, h := range grouped[kind] {
				detail := h.Path
				if h.Type == "exec" {
					detail = strings.Join(h.Command, " ")
				}
				fmt.Printf("  [%s] %s  %s\n", h.Type, h.DisplayName(), detail)
			}
		}
		fmt.Printf("\n%d hooks across %d event kinds\n", len(m.Hooks), len(kinds))

		return nil
	},
}
