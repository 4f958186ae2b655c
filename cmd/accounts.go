package cmd

import (
	"github.com/spf13/cobra"

	"go.withmatt.com/mailflow/internal/tui"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage accounts",
	Long:  "Launch an interactive account manager to add or remove the Gmail accounts emails are read from.",
	RunE:  runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	return tui.RunAccounts(cmd.Context(), cfg)
}
