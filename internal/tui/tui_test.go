package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go.withmatt.com/mailflow/internal/config"
	"go.withmatt.com/mailflow/internal/flow"
	"go.withmatt.com/mailflow/internal/mailitem"
)

type fakeItem struct {
	attachments []mailitem.AttachmentRef
	failContent bool
}

func (f *fakeItem) Subject() string { return "Invoice 42" }

func (f *fakeItem) From() *mailitem.EmailAddress {
	return &mailitem.EmailAddress{EmailAddress: "billing@vendor.com"}
}

func (f *fakeItem) To() []mailitem.EmailAddress {
	return []mailitem.EmailAddress{{EmailAddress: "a@x.com"}, {EmailAddress: "b@x.com"}}
}

func (f *fakeItem) Attachments() []mailitem.AttachmentRef { return f.attachments }

func (f *fakeItem) GetBody(context.Context, mailitem.CoercionType) mailitem.AsyncResult[string] {
	return mailitem.Succeeded("Please find the invoice attached.")
}

func (f *fakeItem) GetAttachmentContent(_ context.Context, id string) mailitem.AsyncResult[mailitem.AttachmentContent] {
	if f.failContent {
		return mailitem.Failed[mailitem.AttachmentContent](errors.New("host unavailable"))
	}
	return mailitem.Succeeded(mailitem.AttachmentContent{
		Format:  mailitem.ContentFormatBase64,
		Content: "aGVsbG8=",
	})
}

// flowServer stands in for the three automation triggers.
type flowServer struct {
	*httptest.Server

	mu           sync.Mutex
	folders      string
	uploadStatus int
	createStatus int
	hits         map[string]int
	lastUpload   flow.UploadPayload
}

func newFlowServer(t *testing.T) *flowServer {
	t.Helper()
	fs := &flowServer{
		folders:      `[{"id":"1","nome":"Contracts"},{"id":"2","nome":"Invoices"}]`,
		uploadStatus: http.StatusOK,
		createStatus: http.StatusAccepted,
		hits:         map[string]int{},
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		fs.hits[r.URL.Path]++
		switch r.URL.Path {
		case "/folders":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(fs.folders))
		case "/upload":
			_ = json.NewDecoder(r.Body).Decode(&fs.lastUpload)
			w.WriteHeader(fs.uploadStatus)
		case "/create":
			w.WriteHeader(fs.createStatus)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *flowServer) hitCount(path string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[path]
}

func (fs *flowServer) endpoints() flow.Endpoints {
	return flow.Endpoints{
		ListFoldersURL:  fs.URL + "/folders",
		UploadURL:       fs.URL + "/upload",
		CreateFolderURL: fs.URL + "/create",
	}
}

func newTestModel(fs *flowServer, item mailitem.Item) Model {
	return New(context.Background(), Options{
		Host: func(context.Context) (mailitem.Item, error) {
			return item, nil
		},
		Flows: flow.New(fs.endpoints()),
		Theme: config.Theme{},
		UI:    config.UIConfig{},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// shownModel drives a model to FoldersShown.
func shownModel(t *testing.T, fs *flowServer, item mailitem.Item) Model {
	t.Helper()
	m := newTestModel(fs, item)
	m, _ = update(t, m, m.loadHostCmd()())
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd == nil || m.state != stateFoldersLoading {
		t.Fatalf("state: got %v, want %v", m.state, stateFoldersLoading)
	}
	m, _ = update(t, m, m.loadFoldersCmd()())
	if m.state != stateFoldersShown {
		t.Fatalf("state: got %v, want %v", m.state, stateFoldersShown)
	}
	return m
}

func noticeTexts(m Model) []string {
	out := make([]string, 0, len(m.ui.notices))
	for _, n := range m.ui.notices {
		out = append(out, n.text)
	}
	return out
}

func TestFoldersLoadWaitsForHostAndMount(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	m := newTestModel(fs, &fakeItem{})

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil || m.state != stateIdle {
		t.Fatalf("mounted without item: state %v", m.state)
	}

	m, _ = update(t, m, m.loadHostCmd()())
	if m.state != stateFoldersLoading {
		t.Fatalf("state: got %v, want %v", m.state, stateFoldersLoading)
	}

	m, _ = update(t, m, m.loadFoldersCmd()())
	if m.state != stateFoldersShown {
		t.Fatalf("state: got %v, want %v", m.state, stateFoldersShown)
	}
	if len(m.folders.items) != 2 || m.folders.items[1].Nome != "Invoices" {
		t.Errorf("folders: got %+v", m.folders.items)
	}
	if got := fs.hitCount("/folders"); got != 1 {
		t.Errorf("list calls: got %d, want 1", got)
	}
}

func TestHostFailureStaysIdle(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	m := New(context.Background(), Options{
		Host: func(context.Context) (mailitem.Item, error) {
			return nil, errors.New("no item")
		},
		Flows: flow.New(fs.endpoints()),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, m.loadHostCmd()())

	if m.state != stateIdle {
		t.Errorf("state: got %v, want %v", m.state, stateIdle)
	}
	if !strings.Contains(m.renderFolderList(), msgHostFailed) {
		t.Errorf("pane should explain the failure, got %q", m.renderFolderList())
	}
	if got := fs.hitCount("/folders"); got != 0 {
		t.Errorf("list calls: got %d, want 0", got)
	}
}

func TestEmptyFolderList(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	fs.folders = `{"error":"x"}`
	m := shownModel(t, fs, &fakeItem{})

	if len(m.folders.items) != 0 {
		t.Fatalf("folders: got %+v, want none", m.folders.items)
	}
	if !strings.Contains(m.renderFolderList(), MessageNoFolders) {
		t.Errorf("list: got %q, want %q", m.renderFolderList(), MessageNoFolders)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateFoldersShown {
		t.Errorf("selecting nothing should not prompt, state %v", m.state)
	}
}

func TestConfirmUploadSuccess(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	item := &fakeItem{attachments: []mailitem.AttachmentRef{
		{ID: "a1", Name: "invoice.pdf", Size: 5, AttachmentType: mailitem.AttachmentTypeFile},
	}}
	m := shownModel(t, fs, item)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateConfirmPending {
		t.Fatalf("state: got %v, want %v", m.state, stateConfirmPending)
	}
	if want := `Save this email to folder "Invoices"?`; m.confirmText() != want {
		t.Errorf("prompt: got %q, want %q", m.confirmText(), want)
	}

	m, cmd := update(t, m, keyRunes("y"))
	if m.state != stateUploading || !m.splashVisible() {
		t.Fatalf("state: got %v splash=%v", m.state, m.splashVisible())
	}
	if cmd == nil {
		t.Fatal("confirm should dispatch the upload")
	}

	m, _ = update(t, m, cmd())
	if m.state != stateDone || m.outcome != outcomeSuccess {
		t.Errorf("state: got %v outcome %v", m.state, m.outcome)
	}
	if m.splashVisible() {
		t.Error("splash should be hidden")
	}
	if got := noticeTexts(m); len(got) != 1 || got[0] != MessageUploadOK {
		t.Errorf("notices: got %q", got)
	}
	if got := fs.hitCount("/upload"); got != 1 {
		t.Errorf("upload calls: got %d, want 1", got)
	}

	fs.mu.Lock()
	payload := fs.lastUpload
	fs.mu.Unlock()
	if payload.FolderName != "Invoices" || payload.To != "a@x.com" || payload.From != "billing@vendor.com" {
		t.Errorf("payload: got %+v", payload)
	}
	if len(payload.Attachments) != 1 || payload.Attachments[0].ContentType != "application/pdf" {
		t.Errorf("attachments: got %+v", payload.Attachments)
	}
}

func TestConfirmDeclined(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	m := shownModel(t, fs, &fakeItem{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateConfirmPending {
		t.Fatalf("state: got %v, want %v", m.state, stateConfirmPending)
	}

	m, _ = update(t, m, keyRunes("n"))
	if m.state != stateFoldersShown {
		t.Errorf("state: got %v, want %v", m.state, stateFoldersShown)
	}
	if got := noticeTexts(m); len(got) != 1 || got[0] != MessageCancelled {
		t.Errorf("notices: got %q", got)
	}
	if got := fs.hitCount("/upload"); got != 0 {
		t.Errorf("upload calls: got %d, want 0", got)
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	m := shownModel(t, fs, &fakeItem{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	for _, msg := range []tea.KeyMsg{keyRunes("c"), keyRunes("r"), tea.KeyMsg{Type: tea.KeyDown}} {
		var cmd tea.Cmd
		m, cmd = update(t, m, msg)
		if cmd != nil || m.state != stateConfirmPending {
			t.Errorf("%s: state %v cmd %v", msg, m.state, cmd != nil)
		}
	}
	if m.run.inFlight {
		t.Error("run should not start behind the prompt")
	}
}

func TestUploadFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		item   *fakeItem
		hits   int
	}{
		{name: "non-ok response", status: http.StatusInternalServerError, item: &fakeItem{}, hits: 1},
		{
			name:   "attachment fetch fails",
			status: http.StatusOK,
			item: &fakeItem{
				attachments: []mailitem.AttachmentRef{{ID: "a1", Name: "x.pdf"}},
				failContent: true,
			},
			hits: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := newFlowServer(t)
			fs.uploadStatus = tt.status
			m := shownModel(t, fs, tt.item)

			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			m, cmd := update(t, m, keyRunes("y"))
			m, _ = update(t, m, cmd())

			if m.state != stateDone || m.outcome != outcomeFailure {
				t.Errorf("state: got %v outcome %v", m.state, m.outcome)
			}
			if m.splashVisible() {
				t.Error("splash should be hidden")
			}
			if got := noticeTexts(m); len(got) != 1 || got[0] != MessageUploadFailed {
				t.Errorf("notices: got %q", got)
			}
			if got := fs.hitCount("/upload"); got != tt.hits {
				t.Errorf("upload calls: got %d, want %d", got, tt.hits)
			}
		})
	}
}

func TestSelectionIgnoredWhileUploading(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	m := shownModel(t, fs, &fakeItem{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, upload := update(t, m, keyRunes("y"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.state != stateUploading {
		t.Errorf("key while uploading: state %v", m.state)
	}
	click := tea.MouseMsg{X: 4, Y: listHeaderHeight, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	m, cmd = update(t, m, click)
	if cmd != nil || m.state != stateUploading {
		t.Errorf("click while uploading: state %v", m.state)
	}

	m, _ = update(t, m, upload())
	if got := fs.hitCount("/upload"); got != 1 {
		t.Errorf("upload calls: got %d, want 1", got)
	}
	if m.state != stateDone {
		t.Errorf("state: got %v, want %v", m.state, stateDone)
	}
}

func TestDoneAllowsNewSelection(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	m := shownModel(t, fs, &fakeItem{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, keyRunes("y"))
	m, _ = update(t, m, cmd())

	click := tea.MouseMsg{X: 4, Y: listHeaderHeight + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	m, _ = update(t, m, click)
	if m.state != stateConfirmPending || m.confirm.folder != "Invoices" {
		t.Errorf("click: state %v folder %q", m.state, m.confirm.folder)
	}
}

func TestRefreshReloadsFolders(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	m := shownModel(t, fs, &fakeItem{})
	m, cmd := update(t, m, keyRunes("r"))
	if m.state != stateFoldersLoading || cmd == nil {
		t.Fatalf("state: got %v", m.state)
	}
	m, _ = update(t, m, cmd())
	if m.state != stateFoldersShown {
		t.Errorf("state: got %v", m.state)
	}
	if got := fs.hitCount("/folders"); got != 2 {
		t.Errorf("list calls: got %d, want 2", got)
	}
}

func TestRunOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		item   *fakeItem
		closed bool
		want   string
	}{
		{name: "accepted", status: http.StatusAccepted, item: &fakeItem{}, want: MessageRunOK},
		{name: "non-ok", status: http.StatusBadRequest, item: &fakeItem{}, want: MessageRunFailed},
		{name: "unreachable", status: http.StatusOK, item: &fakeItem{}, closed: true, want: MessageRunUnreachable},
		{
			name:   "host error",
			status: http.StatusOK,
			item: &fakeItem{
				attachments: []mailitem.AttachmentRef{{ID: "a1", Name: "x.pdf"}},
				failContent: true,
			},
			want: MessageRunUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := newFlowServer(t)
			fs.createStatus = tt.status
			m := shownModel(t, fs, tt.item)
			if tt.closed {
				fs.Close()
			}

			m, cmd := update(t, m, keyRunes("c"))
			if !m.run.inFlight || !m.splashVisible() || cmd == nil {
				t.Fatalf("run did not start: inFlight=%v", m.run.inFlight)
			}
			if m.state != stateFoldersShown {
				t.Errorf("run changed folder state to %v", m.state)
			}

			m, _ = update(t, m, cmd())
			if m.run.inFlight || m.splashVisible() {
				t.Error("splash should be hidden")
			}
			if got := noticeTexts(m); len(got) != 1 || got[0] != tt.want {
				t.Errorf("notices: got %q, want [%q]", got, tt.want)
			}
		})
	}
}

func TestSecondRunIgnoredWhileInFlight(t *testing.T) {
	t.Parallel()

	fs := newFlowServer(t)
	m := shownModel(t, fs, &fakeItem{})

	m, first := update(t, m, keyRunes("c"))
	m, second := update(t, m, keyRunes("c"))
	if second != nil {
		t.Error("second run should be ignored")
	}

	m, _ = update(t, m, first())
	if got := fs.hitCount("/create"); got != 1 {
		t.Errorf("create calls: got %d, want 1", got)
	}
	if len(m.ui.notices) != 1 {
		t.Errorf("notices: got %d, want 1", len(m.ui.notices))
	}
}

func TestFolderAtRow(t *testing.T) {
	t.Parallel()

	m := Model{}
	m.ui.height = listHeaderHeight + listFooterHeight + 2
	m.folders.items = make([]flow.Folder, 5)
	m.folders.cursor = 4
	m.ensureCursorVisible()

	if m.folders.scrollOffset != 3 {
		t.Fatalf("scroll offset: got %d, want 3", m.folders.scrollOffset)
	}
	if idx, ok := m.folderAtRow(listHeaderHeight); !ok || idx != 3 {
		t.Errorf("first row: got %d %v, want 3", idx, ok)
	}
	if _, ok := m.folderAtRow(listHeaderHeight + 2); ok {
		t.Error("row past the list should not match")
	}
	if _, ok := m.folderAtRow(0); ok {
		t.Error("header row should not match")
	}
}

func TestFormatWindowTitle(t *testing.T) {
	t.Parallel()

	if got := formatWindowTitle("  "); got != "mailflow" {
		t.Errorf("empty: got %q", got)
	}
	if got := formatWindowTitle("Invoice\u200b 42"); got != "Invoice 42 - mailflow" {
		t.Errorf("subject: got %q", got)
	}
}
