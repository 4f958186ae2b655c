package config

type UIConfig struct {
	FolderIcon string `toml:"folder_icon"`
	// PreviewWidth caps the body preview's word wrap.
	PreviewWidth int `toml:"preview_width"`
}

func (u UIConfig) WithDefaults() UIConfig {
	if u.FolderIcon == "" {
		u.FolderIcon = "📁"
	}
	if u.PreviewWidth <= 0 {
		u.PreviewWidth = 80
	}
	return u
}
