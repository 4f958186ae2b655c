// Package tui is the mailflow task pane: it lists the automation folders for
// the open mail item, confirms a selection and relays the email to the
// chosen workflow trigger.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"go.withmatt.com/mailflow/internal/config"
	"go.withmatt.com/mailflow/internal/flow"
	"go.withmatt.com/mailflow/internal/mailitem"
)

// Flows is the automation backend the pane drives.
type Flows interface {
	ListFolders(ctx context.Context) []flow.Folder
	Upload(ctx context.Context, snap mailitem.Snapshot, folderName string) (flow.Response, error)
	CreateFolder(ctx context.Context, snap mailitem.Snapshot) (flow.Response, error)
}

// HostLoader opens the mail item the pane works on. It is called once, off
// the UI loop.
type HostLoader func(ctx context.Context) (mailitem.Item, error)

// Options configures a pane.
type Options struct {
	Host  HostLoader
	Flows Flows
	Theme config.Theme
	UI    config.UIConfig
	Keys  config.KeyMap
}

// Model is the TUI application state
type Model struct {
	state   flowState
	outcome outcome

	ui      uiState
	folders folderState
	confirm confirmState
	preview previewState
	run     runState

	item    mailitem.Item
	hostErr error
	host    HostLoader
	flows   Flows

	theme    config.Theme
	uiConfig config.UIConfig
	keys     keyMap
	renderer *glamour.TermRenderer

	ctx context.Context
}

// New creates a new pane model
func New(ctx context.Context, opts Options) Model {
	ui := newUIState()
	ui.help = newHelpModel(opts.Theme)
	ui.alert = newAlertModel(opts.Theme, 0)

	uiConfig := opts.UI.WithDefaults()
	r, err := newGlamourRenderer(opts.Theme, uiConfig.PreviewWidth)
	if err != nil {
		logf("glamour renderer unavailable: %v", err)
	}

	model := Model{
		state:    stateIdle,
		ui:       ui,
		preview:  newPreviewState(),
		host:     opts.Host,
		flows:    opts.Flows,
		theme:    opts.Theme,
		uiConfig: uiConfig,
		keys:     keyMapFromConfig(opts.Keys),
		renderer: r,
		ctx:      ctx,
	}
	model.preview.viewport.KeyMap.Up = model.keys.preview.Up
	model.preview.viewport.KeyMap.Down = model.keys.preview.Down
	return model
}

func newGlamourRenderer(theme config.Theme, width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle(theme)),
		glamour.WithEmoji(),
		glamour.WithLinkFormatter(previewLinkFormatter()),
		glamour.WithWordWrap(width),
	)
}

// Init opens the mail item; folders load once it and the window are ready.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadHostCmd(),
		m.ui.spinner.Tick,
		m.ui.alert.Init(),
	)
}

// Run starts the pane
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
