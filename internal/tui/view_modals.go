package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// overlayModal centers a modal dialog on top of the base view.
func (m *Model) overlayModal(baseView string, modal string) string {
	dialogBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Modal.BorderFg)).
		Padding(1, 2)

	return overlay.Composite(
		dialogBoxStyle.Render(modal),
		baseView,
		overlay.Center,
		overlay.Center,
		0,
		0,
	)
}

func (m *Model) modalTitle(text string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true).
		Render(text)
}

func (m *Model) modalFooter(text string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(m.theme.Modal.FooterFg)).
		Render(text)
}

func (m *Model) renderHelpModal() string {
	var b strings.Builder

	modalWidth := max(40, min(80, m.ui.width-10))
	b.WriteString(m.modalTitle("Keyboard Shortcuts", modalWidth))
	b.WriteString("\n\n")

	helpModel := m.ui.help
	helpModel.ShowAll = true
	helpModel.Width = max(10, modalWidth-4)
	b.WriteString(helpModel.View(m.keyMap()))

	b.WriteString("\n\n")
	b.WriteString(m.modalFooter("Press any key to close", modalWidth))
	return b.String()
}

func (m *Model) renderConfirmModal() string {
	var b strings.Builder

	modalWidth := max(30, min(60, m.ui.width-10))
	b.WriteString(m.modalTitle("Confirm", modalWidth))
	b.WriteString("\n\n")
	b.WriteString(wordwrap.String(m.confirmText(), modalWidth))
	b.WriteString("\n\n")

	km := m.keyMap()
	footer := fmt.Sprintf(
		"%s %s • %s %s",
		km.confirm.Yes.Help().Key, km.confirm.Yes.Help().Desc,
		km.confirm.No.Help().Key, km.confirm.No.Help().Desc,
	)
	b.WriteString(m.modalFooter(footer, modalWidth))
	return b.String()
}

func (m *Model) renderSplashModal() string {
	text := "Sending..."
	if m.state != stateUploading && m.run.inFlight {
		text = "Starting flow..."
	}
	return m.ui.spinner.View() + " " + text
}

func (m *Model) renderPreviewModal() string {
	var b strings.Builder

	width := m.preview.viewport.Width
	b.WriteString(m.modalTitle("Preview", width))
	b.WriteString("\n\n")

	if m.preview.loading {
		b.WriteString(m.ui.spinner.View() + " Loading...")
	} else {
		b.WriteString(m.preview.viewport.View())
	}

	b.WriteString("\n\n")
	km := m.keyMap()
	footer := fmt.Sprintf(
		"%s/%s scroll • %s close • %d%%",
		km.preview.Up.Help().Key, km.preview.Down.Help().Key, km.preview.Close.Help().Key,
		int(m.preview.viewport.ScrollPercent()*100),
	)
	b.WriteString(m.modalFooter(footer, width))
	return b.String()
}
