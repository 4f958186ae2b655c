package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go.withmatt.com/mailflow/internal/config"
	"go.withmatt.com/mailflow/internal/flow"
	"go.withmatt.com/mailflow/internal/log"
	"go.withmatt.com/mailflow/internal/mailitem"
	"go.withmatt.com/mailflow/internal/tui"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the email to a folder",
	Args:  cobra.NoArgs,
	RunE:  runSave,
}

func init() {
	saveCmd.Flags().String("folder", "", "folder name (required)")
	saveCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	_ = saveCmd.MarkFlagRequired("folder")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("folder")
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return errors.New("--folder must not be empty")
	}
	yes, _ := cmd.Flags().GetBool("yes")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Flows.Validate(config.TriggerUpload); err != nil {
		return err
	}

	if !yes {
		ok, err := tui.ConfirmSave(cmd.Context(), folder)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), tui.MessageCancelled)
			return nil
		}
	}

	item, err := openItem(cmd, cfg)
	if err != nil {
		return err
	}
	snap, err := mailitem.ReadSnapshot(cmd.Context(), item, mailitem.AttachmentsFirst)
	if err != nil {
		log.Errorf("upload to folder %q failed: %v", folder, err)
		return fmt.Errorf("%s %w", tui.MessageUploadFailed, err)
	}

	resp, err := flow.New(cfg.Flows.Endpoints()).Upload(cmd.Context(), snap, folder)
	if err != nil {
		log.Errorf("upload to folder %q failed: %v", folder, err)
		return fmt.Errorf("%s %w", tui.MessageUploadFailed, err)
	}
	if !resp.OK() {
		log.Errorf("upload to folder %q failed: %s", folder, resp.Status)
		return fmt.Errorf("%s (%s)", tui.MessageUploadFailed, resp.Status)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.MessageUploadOK)
	return nil
}
