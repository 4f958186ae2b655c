package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"go.dalton.dog/bubbleup"

	"go.withmatt.com/mailflow/internal/flow"
)

// flowState is where the pane is in the folder selection flow.
type flowState int

const (
	stateIdle flowState = iota
	stateFoldersLoading
	stateFoldersShown
	stateConfirmPending
	stateUploading
	stateDone
)

func (s flowState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateFoldersLoading:
		return "loading"
	case stateFoldersShown:
		return "folders"
	case stateConfirmPending:
		return "confirm"
	case stateUploading:
		return "uploading"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// outcome is the result of the last upload, meaningful in stateDone.
type outcome int

const (
	outcomeNone outcome = iota
	outcomeSuccess
	outcomeFailure
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeError
)

// notice is a toast that was raised, kept so the pane can show the last one
// in the status line after the toast fades.
type notice struct {
	kind noticeKind
	text string
}

type uiState struct {
	width    int
	height   int
	mounted  bool
	spinner  spinner.Model
	help     help.Model
	alert    bubbleup.AlertModel
	showHelp bool
	notices  []notice
}

type folderState struct {
	items        []flow.Folder
	cursor       int
	scrollOffset int
}

type confirmState struct {
	folder string
}

type previewState struct {
	show     bool
	loading  bool
	viewport viewport.Model
}

type runState struct {
	inFlight bool
}

func newUIState() uiState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return uiState{spinner: s}
}

func (f folderState) selected() (flow.Folder, bool) {
	if f.cursor < 0 || f.cursor >= len(f.items) {
		return flow.Folder{}, false
	}
	return f.items[f.cursor], true
}

func newPreviewState() previewState {
	return previewState{viewport: viewport.New(0, 0)}
}
