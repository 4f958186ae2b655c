package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"go.withmatt.com/mailflow/internal/config"
)

// Toasts stay up for about three seconds plus the fade.
const toastDurationSeconds = 4

// User-facing messages of the pane and the command line.
const (
	ConfirmPromptFormat   = "Save this email to folder %q?"
	MessageCancelled      = "Cancelled."
	MessageUploadOK       = "Email saved to folder successfully!"
	MessageUploadFailed   = "An error occurred while sending."
	MessageRunOK          = "Flow started successfully!"
	MessageRunFailed      = "Error triggering flow."
	MessageRunUnreachable = "Failed to connect to the automation service."
	MessageNoFolders      = "No folders found."
)

const (
	msgLoadingFolders = "Loading folders..."
	msgWaitingHost    = "Opening the email..."
	msgHostFailed     = "Unable to open the email."
)

func newAlertModel(theme config.Theme, width int) bubbleup.AlertModel {
	model := *bubbleup.NewAlertModel(width, true, toastDurationSeconds)

	model.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       bubbleup.InfoKey,
		ForeColor: firstColor(theme.Modal.SuccessFg, theme.Status.ModeBg, theme.Status.Fg),
		Prefix:    bubbleup.InfoNerdSymbol,
	})
	model.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       bubbleup.ErrorKey,
		ForeColor: firstColor(theme.Modal.ErrorFg, theme.Status.Fg),
		Prefix:    bubbleup.ErrorNerdSymbol,
	})

	return model
}

func firstColor(colors ...string) string {
	for _, c := range colors {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func (m Model) updateAlerts(msg tea.Msg) (Model, tea.Cmd) {
	outAlert, alertCmd := m.ui.alert.Update(msg)
	m.ui.alert = outAlert.(bubbleup.AlertModel)
	return m, alertCmd
}

// notify raises a toast and records it as the pane's latest notice.
func (m *Model) notify(kind noticeKind, text string) tea.Cmd {
	m.ui.notices = append(m.ui.notices, notice{kind: kind, text: text})
	alertKey := bubbleup.InfoKey
	if kind == noticeError {
		alertKey = bubbleup.ErrorKey
	}
	return m.ui.alert.NewAlertCmd(alertKey, text)
}

func (m Model) lastNotice() (notice, bool) {
	if len(m.ui.notices) == 0 {
		return notice{}, false
	}
	return m.ui.notices[len(m.ui.notices)-1], true
}
