package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/hookstorm"
	"github.com/dshills/hookstorm/internal/logging"
	"github.com/dshills/hookstorm/manifest"
	"github.com/dshills/hookstorm/payload"
)

var fireData string

var fireCmd = &cobra.Command{
	Use:   "fire <kind>",
	Short: "Fire an event through the configured hooks",
	Long: `Fire loads the manifest directory, registers every hook, and triggers
one event of the given kind. Handler failures are logged and isolated;
the command reports a summary and exits zero regardless.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Logger("cmd.fire")
		kind := args[0]

		event := hookstorm.NewEvent(kind)
		if fireData != "" {
			doc, err := payload.ParseString(fireData)
			if err != nil {
				return fmt.Errorf("--data: %w", err)
			}
			event = event.WithData(doc.Value())
		}

		m, err := manifest.LoadDir(manifestDir)
		if err != nil {
			return err
		}

		hookLogger := logging.Logger("hooks")
		reg := hookstorm.New(hookstorm.WithLogger(hookLogger))

		applied, err := manifest.Apply(reg, m, manifest.Deps{
			Logger:      hookLogger,
			BaseDir:     manifestDir,
			LuaTimeout:  cfg.LuaTimeout,
			ExecTimeout: cfg.ExecTimeout,
		})
		if err != nil {
			return err
		}
		defer applied.Close()

		logger.Info().
			Str("kind", kind).
			Int("handlers", reg.HandlerCount(kind)).
			Msg("firing event")

		reg.Trigger(kind, event)

		stats := reg.Stats()
		summary, err := payload.FromValue(map[string]any{
			"kind":             kind,
			"handlers":         reg.HandlerCount(kind),
			"handlers_invoked": stats.HandlersInvoked,
			"handler_panics":   stats.HandlerPanics,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s", summary.Pretty())

		return nil
	},
}

func init() {
	fireCmd.Flags().StringVarP(&fireData, "data", "d", "",
		"JSON payload attached to the event")
}
