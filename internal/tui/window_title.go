package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	windowTitleMaxRunes = 80
	windowTitleSuffix   = " - mailflow"
)

func (m *Model) setWindowTitleCmd() tea.Cmd {
	subject := ""
	if m.item != nil {
		subject = m.item.Subject()
	}
	return tea.SetWindowTitle(formatWindowTitle(subject))
}

func formatWindowTitle(body string) string {
	body = strings.TrimSpace(stripZeroWidth(body))
	if body == "" {
		return "mailflow"
	}
	maxBody := windowTitleMaxRunes - len([]rune(windowTitleSuffix))
	return truncateWidth(body, maxBody) + windowTitleSuffix
}
