package tui

// View renders the UI.
func (m Model) View() string {
	output := m.renderPaneView()

	// Overlay modals on top of the pane
	switch {
	case m.ui.showHelp:
		output = m.overlayModal(output, m.renderHelpModal())
	case m.splashVisible():
		output = m.overlayModal(output, m.renderSplashModal())
	case m.state == stateConfirmPending:
		output = m.overlayModal(output, m.renderConfirmModal())
	case m.preview.show:
		output = m.overlayModal(output, m.renderPreviewModal())
	}

	return m.ui.alert.Render(output)
}
