package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.withmatt.com/mailflow/internal/config"
	"go.withmatt.com/mailflow/internal/flow"
	"go.withmatt.com/mailflow/internal/tui"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List the automation folders",
	Args:  cobra.NoArgs,
	RunE:  runFolders,
}

func init() {
	rootCmd.AddCommand(foldersCmd)
}

func runFolders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Flows.Validate(config.TriggerListFolders); err != nil {
		return err
	}

	folders := flow.New(cfg.Flows.Endpoints()).ListFolders(cmd.Context())
	out := cmd.OutOrStdout()
	if len(folders) == 0 {
		fmt.Fprintln(out, tui.MessageNoFolders)
		return nil
	}
	for _, f := range folders {
		fmt.Fprintf(out, "%s\t%s\n", f.ID, f.Nome)
	}
	return nil
}
