package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"go.withmatt.com/mailflow/internal/flow"
	"go.withmatt.com/mailflow/internal/mailitem"
)

type hostReadyMsg struct {
	item mailitem.Item
	err  error
}

type foldersLoadedMsg struct {
	folders []flow.Folder
}

type uploadDoneMsg struct {
	folder string
	resp   flow.Response
	err    error
}

type runDoneMsg struct {
	resp flow.Response
	err  error
}

type previewLoadedMsg struct {
	body string
	err  error
}

var errNoHost = errors.New("no mail source configured")

func (m Model) loadHostCmd() tea.Cmd {
	host := m.host
	ctx := m.ctx
	return func() tea.Msg {
		if host == nil {
			return hostReadyMsg{err: errNoHost}
		}
		item, err := host(ctx)
		return hostReadyMsg{item: item, err: err}
	}
}

func (m Model) loadFoldersCmd() tea.Cmd {
	flows := m.flows
	ctx := m.ctx
	return func() tea.Msg {
		return foldersLoadedMsg{folders: flows.ListFolders(ctx)}
	}
}

// uploadCmd reads the item fresh and posts it to the upload trigger.
func (m Model) uploadCmd(folder string) tea.Cmd {
	item := m.item
	flows := m.flows
	ctx := m.ctx
	return func() tea.Msg {
		snap, err := mailitem.ReadSnapshot(ctx, item, mailitem.AttachmentsFirst)
		if err != nil {
			return uploadDoneMsg{folder: folder, err: err}
		}
		resp, err := flows.Upload(ctx, snap, folder)
		return uploadDoneMsg{folder: folder, resp: resp, err: err}
	}
}

// createFolderCmd reads the item fresh and posts it to the create-folder
// trigger.
func (m Model) createFolderCmd() tea.Cmd {
	item := m.item
	flows := m.flows
	ctx := m.ctx
	return func() tea.Msg {
		snap, err := mailitem.ReadSnapshot(ctx, item, mailitem.BodyFirst)
		if err != nil {
			return runDoneMsg{err: err}
		}
		resp, err := flows.CreateFolder(ctx, snap)
		return runDoneMsg{resp: resp, err: err}
	}
}

func (m Model) loadPreviewCmd() tea.Cmd {
	item := m.item
	ctx := m.ctx
	return func() tea.Msg {
		body, err := mailitem.ReadBody(ctx, item)
		return previewLoadedMsg{body: body, err: err}
	}
}
