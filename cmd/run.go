package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.withmatt.com/mailflow/internal/config"
	"go.withmatt.com/mailflow/internal/flow"
	"go.withmatt.com/mailflow/internal/log"
	"go.withmatt.com/mailflow/internal/mailitem"
	"go.withmatt.com/mailflow/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the create-folder-by-domain flow for the email",
	Args:  cobra.NoArgs,
	RunE:  runCreateFolder,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runCreateFolder(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Flows.Validate(config.TriggerCreateFolder); err != nil {
		return err
	}

	item, err := openItem(cmd, cfg)
	if err != nil {
		return err
	}
	snap, err := mailitem.ReadSnapshot(cmd.Context(), item, mailitem.BodyFirst)
	if err != nil {
		log.Errorf("create-folder request failed: %v", err)
		return fmt.Errorf("%s %w", tui.MessageRunUnreachable, err)
	}

	resp, err := flow.New(cfg.Flows.Endpoints()).CreateFolder(cmd.Context(), snap)
	if err != nil {
		log.Errorf("create-folder request failed: %v", err)
		return fmt.Errorf("%s %w", tui.MessageRunUnreachable, err)
	}
	if !resp.OK() {
		log.Errorf("create-folder flow failed: %s", resp.Status)
		return fmt.Errorf("%s (%s)", tui.MessageRunFailed, resp.Status)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.MessageRunOK)
	return nil
}
