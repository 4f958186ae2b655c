package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.updateSpinner(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case hostReadyMsg:
		return m.handleHostReady(msg)
	case foldersLoadedMsg:
		return m.handleFoldersLoaded(msg)
	case uploadDoneMsg:
		cmd := m.finishUpload(msg)
		return m, cmd
	case runDoneMsg:
		cmd := m.finishRun(msg)
		return m, cmd
	case previewLoadedMsg:
		return m.handlePreviewLoaded(msg)
	default:
		var cmd tea.Cmd
		m, cmd = m.updateAlerts(msg)
		return m, cmd
	}
}
