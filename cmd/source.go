package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go.withmatt.com/mailflow/internal/config"
	"go.withmatt.com/mailflow/internal/eml"
	"go.withmatt.com/mailflow/internal/gmail"
	"go.withmatt.com/mailflow/internal/mailitem"
	"go.withmatt.com/mailflow/internal/oauth"
	"go.withmatt.com/mailflow/internal/tui"
)

func addSourceFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("eml", "", "read the email from an .eml file")
	flags.String("account", "", "Gmail account name or address")
	flags.String("message", "", "Gmail message id")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	return cfg, nil
}

// mailSource picks the host the email is read from.
func mailSource(cmd *cobra.Command, cfg *config.Config) (tui.HostLoader, error) {
	flags := cmd.Flags()
	emlPath, _ := flags.GetString("eml")
	account, _ := flags.GetString("account")
	messageID, _ := flags.GetString("message")

	switch {
	case emlPath != "" && messageID != "":
		return nil, errors.New("--eml and --message cannot be used together")
	case emlPath != "":
		return func(context.Context) (mailitem.Item, error) {
			return eml.Open(emlPath)
		}, nil
	case messageID != "":
		email, err := resolveAccount(cfg, account)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (mailitem.Item, error) {
			srv, err := oauth.Service(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("unable to create Gmail service for %s: %w", email, err)
			}
			return gmail.OpenItem(ctx, gmail.NewClient(srv), messageID)
		}, nil
	default:
		return nil, errors.New("no email given. Use --eml <file> or --message <id>")
	}
}

// resolveAccount maps --account to a configured address. With a single
// configured account the flag may be omitted.
func resolveAccount(cfg *config.Config, account string) (string, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		switch len(cfg.Accounts) {
		case 0:
			return "", errors.New("no accounts configured. Run 'mailflow accounts' to add an account")
		case 1:
			return cfg.Accounts[0].Email, nil
		default:
			return "", errors.New("several accounts configured. Pick one with --account")
		}
	}
	for _, a := range cfg.Accounts {
		if strings.EqualFold(a.Name, account) || strings.EqualFold(a.Email, account) {
			return a.Email, nil
		}
	}
	if strings.Contains(account, "@") {
		return account, nil
	}
	return "", fmt.Errorf("unknown account %q", account)
}

// openItem runs the loader directly for the non-interactive commands.
func openItem(cmd *cobra.Command, cfg *config.Config) (mailitem.Item, error) {
	load, err := mailSource(cmd, cfg)
	if err != nil {
		return nil, err
	}
	item, err := load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("unable to open email: %w", err)
	}
	return item, nil
}
