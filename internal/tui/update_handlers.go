package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"go.withmatt.com/mailflow/internal/log"
)

func (m Model) updateSpinner(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.ui.spinner, cmd = m.ui.spinner.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap()
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	// Close help on any keypress
	if m.ui.showHelp {
		m.ui.showHelp = false
		return m, nil
	}
	// Nothing is accepted while a request is in flight.
	if m.splashVisible() {
		return m, nil
	}
	if m.state == stateConfirmPending {
		return m.handleConfirmKey(msg, km)
	}
	if m.preview.show {
		return m.handlePreviewKey(msg, km)
	}
	return m.handleFoldersKey(msg, km)
}

// handleConfirmKey owns the keyboard while the prompt is open.
func (m Model) handleConfirmKey(msg tea.KeyMsg, km keyMap) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, km.confirm.Yes):
		cmd := m.acceptConfirm()
		return m, cmd
	case key.Matches(msg, km.confirm.No):
		cmd := m.declineConfirm()
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) handlePreviewKey(msg tea.KeyMsg, km keyMap) (tea.Model, tea.Cmd) {
	if key.Matches(msg, km.preview.Close) {
		m.closePreview()
		return m, nil
	}
	var cmd tea.Cmd
	m.preview.viewport, cmd = m.preview.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleFoldersKey(msg tea.KeyMsg, km keyMap) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, km.folders.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.folders.Help):
		m.ui.showHelp = true
		return m, nil
	case key.Matches(msg, km.folders.Up):
		if m.folders.cursor > 0 {
			m.folders.cursor--
			m.ensureCursorVisible()
		}
		return m, nil
	case key.Matches(msg, km.folders.Down):
		if m.folders.cursor < len(m.folders.items)-1 {
			m.folders.cursor++
			m.ensureCursorVisible()
		}
		return m, nil
	case key.Matches(msg, km.folders.Select):
		m.selectFolder()
		return m, nil
	case key.Matches(msg, km.folders.Run):
		cmd := m.startRun()
		return m, cmd
	case key.Matches(msg, km.folders.Preview):
		cmd := m.openPreview()
		return m, cmd
	case key.Matches(msg, km.folders.Refresh):
		if !m.canSelect() {
			return m, nil
		}
		cmd := m.enterFoldersLoading()
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ui.showHelp || m.splashVisible() || m.state == stateConfirmPending {
		return m, nil
	}
	if m.preview.show {
		var cmd tea.Cmd
		m.preview.viewport, cmd = m.preview.viewport.Update(msg)
		return m, cmd
	}
	if !m.canSelect() {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.folders.cursor > 0 {
			m.folders.cursor--
			m.ensureCursorVisible()
		}
	case tea.MouseButtonWheelDown:
		if m.folders.cursor < len(m.folders.items)-1 {
			m.folders.cursor++
			m.ensureCursorVisible()
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		idx, ok := m.folderAtRow(msg.Y)
		if !ok {
			return m, nil
		}
		m.folders.cursor = idx
		m.selectFolder()
	default:
		return m, nil
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	oldWidth := m.ui.width
	m.ui.width = msg.Width
	m.ui.height = msg.Height
	m.ui.mounted = true
	if msg.Width != oldWidth && msg.Width > 0 {
		m.ui.alert = newAlertModel(m.theme, msg.Width)
	}
	m.preview.viewport.Width = previewViewportWidth(msg.Width, m.uiConfig.PreviewWidth)
	m.preview.viewport.Height = previewViewportHeight(msg.Height)
	m.ensureCursorVisible()
	cmd := m.maybeLoadFolders()
	return m, cmd
}

func (m Model) handleHostReady(msg hostReadyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Errorf("unable to open mail item: %v", msg.err)
		m.hostErr = msg.err
		cmd := m.notify(noticeError, msgHostFailed)
		return m, cmd
	}
	m.item = msg.item
	logf("mail item ready subject=%q attachments=%d", m.item.Subject(), len(m.item.Attachments()))
	cmd := tea.Batch(m.maybeLoadFolders(), m.setWindowTitleCmd())
	return m, cmd
}

func (m Model) handleFoldersLoaded(msg foldersLoadedMsg) (tea.Model, tea.Cmd) {
	if m.state != stateFoldersLoading {
		return m, nil
	}
	logf("loaded %d folders", len(msg.folders))
	m.showFolders(msg.folders)
	return m, nil
}

func (m Model) handlePreviewLoaded(msg previewLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.preview.show {
		return m, nil
	}
	m.preview.loading = false
	if msg.err != nil {
		log.Errorf("unable to read body for preview: %v", msg.err)
		m.preview.viewport.SetContent("Unable to read the email body.")
		return m, nil
	}
	m.preview.viewport.SetContent(m.renderMarkdown(normalizeBody(msg.body)))
	m.preview.viewport.GotoTop()
	return m, nil
}
