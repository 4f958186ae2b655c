package config

import (
	"fmt"
	"net/url"
	"strings"

	"go.withmatt.com/mailflow/internal/flow"
)

// Flows holds the signed trigger URLs of the automation workflows.
type Flows struct {
	ListFoldersURL  string `toml:"list_folders_url"  env:"MAILFLOW_LIST_FOLDERS_URL"`
	UploadURL       string `toml:"upload_url"        env:"MAILFLOW_UPLOAD_URL"`
	CreateFolderURL string `toml:"create_folder_url" env:"MAILFLOW_CREATE_FOLDER_URL"`
}

// Trigger names an endpoint for validation.
type Trigger int

const (
	TriggerListFolders Trigger = iota
	TriggerUpload
	TriggerCreateFolder
)

func (t Trigger) String() string {
	switch t {
	case TriggerListFolders:
		return "list_folders_url"
	case TriggerUpload:
		return "upload_url"
	case TriggerCreateFolder:
		return "create_folder_url"
	default:
		return "unknown"
	}
}

func (f Flows) url(t Trigger) string {
	switch t {
	case TriggerListFolders:
		return f.ListFoldersURL
	case TriggerUpload:
		return f.UploadURL
	case TriggerCreateFolder:
		return f.CreateFolderURL
	default:
		return ""
	}
}

// Validate checks that every required trigger has an absolute http(s) URL.
func (f Flows) Validate(required ...Trigger) error {
	for _, t := range required {
		raw := strings.TrimSpace(f.url(t))
		if raw == "" {
			return fmt.Errorf("flows.%s is not configured", t)
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("flows.%s: %w", t, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("flows.%s must be an absolute http(s) URL", t)
		}
	}
	return nil
}

// Endpoints converts the config into the flow client's endpoint set.
func (f Flows) Endpoints() flow.Endpoints {
	return flow.Endpoints{
		ListFoldersURL:  strings.TrimSpace(f.ListFoldersURL),
		UploadURL:       strings.TrimSpace(f.UploadURL),
		CreateFolderURL: strings.TrimSpace(f.CreateFolderURL),
	}
}
