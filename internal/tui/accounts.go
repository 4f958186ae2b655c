package tui

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"go.withmatt.com/mailflow/internal/config"
	"go.withmatt.com/mailflow/internal/oauth"
)

type accountAction int

const (
	actionAdd accountAction = iota
	actionRemove
	actionQuit
)

// accountManager edits the Gmail accounts emails can be read from. Every
// change is saved immediately.
type accountManager struct {
	cfg    *config.Config
	status string

	// authorize and forget are swapped out in tests.
	authorize func(ctx context.Context, email string) error
	forget    func(email string) error
}

// RunAccounts manages the Gmail accounts mailflow can read from.
func RunAccounts(ctx context.Context, cfg *config.Config) error {
	am := &accountManager{
		cfg: cfg,
		authorize: func(ctx context.Context, email string) error {
			fmt.Fprintln(os.Stderr, "Opening browser for Gmail authentication...")
			_, err := oauth.GetClient(ctx, email)
			return err
		},
		forget: oauth.DeleteToken,
	}
	return am.run(ctx)
}

func (am *accountManager) run(ctx context.Context) error {
	for ctx.Err() == nil {
		action, err := am.menu(ctx)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		switch action {
		case actionAdd:
			err = am.promptAdd(ctx)
		case actionRemove:
			err = am.promptRemove(ctx)
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (am *accountManager) menu(ctx context.Context) (accountAction, error) {
	options := []huh.Option[accountAction]{huh.NewOption("Add account", actionAdd)}
	if len(am.cfg.Accounts) > 0 {
		options = append(options, huh.NewOption("Remove account", actionRemove))
	}
	options = append(options, huh.NewOption("Quit", actionQuit))

	var fields []huh.Field
	if am.status != "" {
		fields = append(fields, huh.NewNote().Title("Status").Description(am.status))
	}
	action := actionAdd
	fields = append(fields,
		huh.NewNote().Title("Accounts").Description(formatAccountsNote(am.cfg.Accounts)),
		huh.NewSelect[accountAction]().Title("Action").Options(options...).Value(&action),
	)

	err := huh.NewForm(huh.NewGroup(fields...)).
		WithProgramOptions(tea.WithAltScreen()).
		RunWithContext(ctx)
	return action, err
}

func (am *accountManager) promptAdd(ctx context.Context) error {
	var name, email string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Placeholder("Work").
				Validate(requireText).Value(&name),
			huh.NewInput().Title("Gmail address").Placeholder("you@example.com").
				Validate(validateMailbox).Value(&email),
		),
	).WithProgramOptions(tea.WithAltScreen()).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		am.status = "Add canceled."
		return nil
	}
	if err != nil {
		return err
	}
	am.status = am.add(ctx, config.Account{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	})
	return nil
}

// add authorizes account and stores it, returning the status line to show.
func (am *accountManager) add(ctx context.Context, account config.Account) string {
	if accountIndex(am.cfg.Accounts, account.Email) >= 0 {
		return "Account already exists."
	}
	if err := am.authorize(ctx, account.Email); err != nil {
		return fmt.Sprintf("Auth failed: %v", err)
	}
	am.cfg.Accounts = append(am.cfg.Accounts, account)
	if err := config.Save(am.cfg); err != nil {
		return fmt.Sprintf("Save failed: %v", err)
	}
	return "Added " + account.Email
}

func (am *accountManager) promptRemove(ctx context.Context) error {
	if len(am.cfg.Accounts) == 0 {
		am.status = "No accounts configured."
		return nil
	}

	selected := am.cfg.Accounts[0].Email
	forget, confirm := true, false
	options := make([]huh.Option[string], 0, len(am.cfg.Accounts))
	for _, account := range am.cfg.Accounts {
		options = append(options, huh.NewOption(accountLabel(account), account.Email))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Account").Options(options...).Value(&selected),
			huh.NewConfirm().Title("Forget saved credentials?").Value(&forget),
			huh.NewConfirm().Title("Remove this account?").
				Affirmative("Remove").Negative("Cancel").Value(&confirm),
		),
	).WithProgramOptions(tea.WithAltScreen()).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) || (err == nil && !confirm) {
		am.status = "Remove canceled."
		return nil
	}
	if err != nil {
		return err
	}
	am.status = am.remove(selected, forget)
	return nil
}

func (am *accountManager) remove(email string, forget bool) string {
	idx := accountIndex(am.cfg.Accounts, email)
	if idx < 0 {
		return "No such account."
	}
	am.cfg.Accounts = slices.Delete(am.cfg.Accounts, idx, idx+1)
	if err := config.Save(am.cfg); err != nil {
		return fmt.Sprintf("Remove failed: %v", err)
	}
	if forget {
		if err := am.forget(email); err != nil {
			return fmt.Sprintf("Removed %s, but %v", email, err)
		}
	}
	return "Removed " + email
}

func requireText(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("required")
	}
	return nil
}

func validateMailbox(value string) error {
	if err := requireText(value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	if err != nil || addr.Name != "" {
		return errors.New("enter a bare address like you@example.com")
	}
	return nil
}

func accountLabel(account config.Account) string {
	if strings.TrimSpace(account.Name) == "" {
		return account.Email
	}
	return fmt.Sprintf("%s <%s>", account.Name, account.Email)
}

func formatAccountsNote(accounts []config.Account) string {
	if len(accounts) == 0 {
		return "No accounts configured."
	}
	lines := make([]string, len(accounts))
	for i, account := range accounts {
		lines[i] = "- " + accountLabel(account)
	}
	return strings.Join(lines, "\n")
}

func accountIndex(accounts []config.Account, email string) int {
	return slices.IndexFunc(accounts, func(a config.Account) bool {
		return strings.EqualFold(a.Email, email)
	})
}
