package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go.withmatt.com/mailflow/internal/log"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "mailflow",
	Short:   "Relay the open email to automation workflows",
	Long:    `mailflow shows the automation folders for an email and sends the email to the one you pick.`,
	Version: version,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runPane,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		return log.Setup(debug)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return log.Close()
	},
}

func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "enable debug logging")
	flags.String("config", "", "path to the config file")
	addSourceFlags(rootCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
