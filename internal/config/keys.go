package config

type KeyMap struct {
	Folders FoldersKeyMap `toml:"folders"`
	Confirm ConfirmKeyMap `toml:"confirm"`
	Preview PreviewKeyMap `toml:"preview"`
}

type FoldersKeyMap struct {
	Up      []string `toml:"up"`
	Down    []string `toml:"down"`
	Select  []string `toml:"select"`
	Run     []string `toml:"run"`
	Preview []string `toml:"preview"`
	Refresh []string `toml:"refresh"`
	Help    []string `toml:"help"`
	Quit    []string `toml:"quit"`
}

type ConfirmKeyMap struct {
	Yes []string `toml:"yes"`
	No  []string `toml:"no"`
}

type PreviewKeyMap struct {
	Up    []string `toml:"up"`
	Down  []string `toml:"down"`
	Close []string `toml:"close"`
}
