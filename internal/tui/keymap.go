package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"go.withmatt.com/mailflow/internal/config"
)

type foldersKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Run     key.Binding
	Preview key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

type previewKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Close key.Binding
}

type keyMap struct {
	confirmActive bool
	previewActive bool

	folders foldersKeyMap
	confirm confirmKeyMap
	preview previewKeyMap
}

func keyMapFromConfig(cfg config.KeyMap) keyMap {
	return keyMap{
		folders: foldersKeyMap{
			Up: makeBinding(bindingDef{keys: []string{"k", "up"}, desc: "up"}, cfg.Folders.Up),
			Down: makeBinding(
				bindingDef{keys: []string{"j", "down"}, desc: "down"},
				cfg.Folders.Down,
			),
			Select: makeBinding(
				bindingDef{keys: []string{"enter"}, desc: "save to folder"},
				cfg.Folders.Select,
			),
			Run: makeBinding(
				bindingDef{keys: []string{"c"}, desc: "create folder"},
				cfg.Folders.Run,
			),
			Preview: makeBinding(
				bindingDef{keys: []string{"p"}, desc: "preview"},
				cfg.Folders.Preview,
			),
			Refresh: makeBinding(
				bindingDef{keys: []string{"r"}, desc: "refresh"},
				cfg.Folders.Refresh,
			),
			Help: makeBinding(bindingDef{keys: []string{"?"}, desc: "help"}, cfg.Folders.Help),
			Quit: makeBinding(
				bindingDef{keys: []string{"q", "esc", "ctrl+c"}, desc: "quit"},
				cfg.Folders.Quit,
			),
		},
		confirm: confirmKeyMap{
			Yes: makeBinding(
				bindingDef{keys: []string{"y", "Y", "enter"}, desc: "yes"},
				cfg.Confirm.Yes,
			),
			No: makeBinding(
				bindingDef{keys: []string{"n", "N", "esc"}, desc: "no"},
				cfg.Confirm.No,
			),
		},
		preview: previewKeyMap{
			Up: makeBinding(bindingDef{keys: []string{"k", "up"}, desc: "scroll up"}, cfg.Preview.Up),
			Down: makeBinding(
				bindingDef{keys: []string{"j", "down"}, desc: "scroll down"},
				cfg.Preview.Down,
			),
			Close: makeBinding(
				bindingDef{keys: []string{"esc", "q", "p"}, desc: "close"},
				cfg.Preview.Close,
			),
		},
	}
}

func (m Model) keyMap() keyMap {
	km := m.keys
	km.confirmActive = m.state == stateConfirmPending
	km.previewActive = m.preview.show
	return km
}

type bindingDef struct {
	keys []string
	desc string
}

func makeBinding(def bindingDef, override []string) key.Binding {
	keys := def.keys
	if len(override) > 0 {
		keys = override
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(formatHelpKeys(keys), def.desc),
	)
}

func formatHelpKeys(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		label := formatKeyLabel(key)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return strings.Join(out, "/")
}

func formatKeyLabel(key string) string {
	switch key {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case " ":
		return "space"
	default:
		return key
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch {
	case k.confirmActive:
		return []key.Binding{k.confirm.Yes, k.confirm.No}
	case k.previewActive:
		return []key.Binding{k.preview.Up, k.preview.Down, k.preview.Close}
	default:
		return []key.Binding{
			k.folders.Up,
			k.folders.Down,
			k.folders.Select,
			k.folders.Run,
			k.folders.Help,
			k.folders.Quit,
		}
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	switch {
	case k.confirmActive:
		return [][]key.Binding{{k.confirm.Yes, k.confirm.No}}
	case k.previewActive:
		return [][]key.Binding{
			{k.preview.Up, k.preview.Down},
			{k.preview.Close},
		}
	default:
		return [][]key.Binding{
			{k.folders.Up, k.folders.Down},
			{k.folders.Select, k.folders.Run},
			{k.folders.Preview, k.folders.Refresh},
			{k.folders.Help, k.folders.Quit},
		}
	}
}
