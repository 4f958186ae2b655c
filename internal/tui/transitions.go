package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"go.withmatt.com/mailflow/internal/flow"
	"go.withmatt.com/mailflow/internal/log"
)

// maybeLoadFolders leaves Idle once the mail item is open and the pane has
// been sized, whichever happens last.
func (m *Model) maybeLoadFolders() tea.Cmd {
	if m.state != stateIdle || m.item == nil || !m.ui.mounted {
		return nil
	}
	return m.enterFoldersLoading()
}

func (m *Model) enterFoldersLoading() tea.Cmd {
	m.state = stateFoldersLoading
	return m.loadFoldersCmd()
}

func (m *Model) showFolders(folders []flow.Folder) {
	m.state = stateFoldersShown
	m.folders.items = folders
	m.folders.cursor = min(max(m.folders.cursor, 0), max(len(folders)-1, 0))
	m.ensureCursorVisible()
}

// selectFolder opens the confirmation prompt for the folder under the cursor.
func (m *Model) selectFolder() {
	if !m.canSelect() {
		return
	}
	folder, ok := m.folders.selected()
	if !ok {
		return
	}
	m.confirm = confirmState{folder: folder.Nome}
	m.state = stateConfirmPending
}

func (m Model) canSelect() bool {
	return m.state == stateFoldersShown || m.state == stateDone
}

func (m Model) confirmText() string {
	return fmt.Sprintf(ConfirmPromptFormat, m.confirm.folder)
}

func (m *Model) declineConfirm() tea.Cmd {
	m.confirm = confirmState{}
	m.state = stateFoldersShown
	return m.notify(noticeInfo, MessageCancelled)
}

func (m *Model) acceptConfirm() tea.Cmd {
	folder := m.confirm.folder
	m.confirm = confirmState{}
	m.state = stateUploading
	m.outcome = outcomeNone
	logf("uploading to folder %q", folder)
	return m.uploadCmd(folder)
}

func (m *Model) finishUpload(msg uploadDoneMsg) tea.Cmd {
	if m.state != stateUploading {
		return nil
	}
	m.state = stateDone
	switch {
	case msg.err != nil:
		log.Errorf("upload to folder %q failed: %v", msg.folder, msg.err)
	case !msg.resp.OK():
		log.Errorf("upload to folder %q failed: %s", msg.folder, msg.resp.Status)
	default:
		m.outcome = outcomeSuccess
		return m.notify(noticeInfo, MessageUploadOK)
	}
	m.outcome = outcomeFailure
	return m.notify(noticeError, MessageUploadFailed)
}

// startRun posts the item to the create-folder trigger. It runs beside the
// folder flow and does not change its state.
func (m *Model) startRun() tea.Cmd {
	if m.run.inFlight || m.item == nil {
		return nil
	}
	m.run.inFlight = true
	logf("triggering create-folder flow")
	return m.createFolderCmd()
}

func (m *Model) finishRun(msg runDoneMsg) tea.Cmd {
	m.run.inFlight = false
	switch {
	case msg.err != nil:
		log.Errorf("create-folder request failed: %v", msg.err)
		return m.notify(noticeError, MessageRunUnreachable)
	case !msg.resp.OK():
		log.Errorf("create-folder flow failed: %s", msg.resp.Status)
		return m.notify(noticeError, MessageRunFailed)
	default:
		log.Infof("create-folder flow started")
		return m.notify(noticeInfo, MessageRunOK)
	}
}

// splashVisible reports whether a request started by the user is in flight.
func (m Model) splashVisible() bool {
	return m.state == stateUploading || m.run.inFlight
}

func (m *Model) openPreview() tea.Cmd {
	if m.item == nil {
		return nil
	}
	m.preview.show = true
	m.preview.loading = true
	m.preview.viewport.SetContent("")
	return m.loadPreviewCmd()
}

func (m *Model) closePreview() {
	m.preview.show = false
	m.preview.loading = false
}
