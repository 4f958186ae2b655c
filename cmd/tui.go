package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.withmatt.com/mailflow/internal/config"
	"go.withmatt.com/mailflow/internal/flow"
	"go.withmatt.com/mailflow/internal/tui"
)

func runPane(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Flows.Validate(
		config.TriggerListFolders,
		config.TriggerUpload,
		config.TriggerCreateFolder,
	); err != nil {
		return err
	}

	host, err := mailSource(cmd, cfg)
	if err != nil {
		return err
	}

	theme, err := config.ResolveTheme(cfg.Theme)
	if err != nil {
		return fmt.Errorf("unable to resolve theme: %w", err)
	}

	opts := tui.Options{
		Host:  host,
		Flows: flow.New(cfg.Flows.Endpoints()),
		Theme: theme,
		UI:    cfg.UI.WithDefaults(),
		Keys:  cfg.Keys,
	}
	if err := tui.Run(cmd.Context(), opts); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
