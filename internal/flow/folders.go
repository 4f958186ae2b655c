package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.withmatt.com/mailflow/internal/log"
)

// Folder is a storage destination as returned by the list trigger.
type Folder struct {
	ID   FolderID `json:"id"`
	Nome string   `json:"nome"`
}

// FolderID accepts both string and numeric ids.
type FolderID string

func (id *FolderID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FolderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("folder id: %w", err)
	}
	*id = FolderID(n.String())
	return nil
}

// ListFolders asks the list trigger for the available folders. It never
// fails: every error is logged and yields an empty list.
func (c *Client) ListFolders(ctx context.Context) []Folder {
	folders, err := c.listFolders(ctx)
	if err != nil {
		log.Errorf("failed to load folders: %v", err)
		return []Folder{}
	}
	log.Infof("loaded %d folders", len(folders))
	return folders
}

func (c *Client) listFolders(ctx context.Context) ([]Folder, error) {
	resp, err := c.post(ctx, "list folders", c.endpoints.ListFoldersURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("list folders: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError("list folders", c.endpoints.ListFoldersURL, err)
	}
	log.Printf("list folders raw response: %s", data)

	return decodeFolders(data)
}

func decodeFolders(data []byte) ([]Folder, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	if !isJSONArray(raw) {
		return nil, fmt.Errorf("list folders: %w: %s", ErrUnexpectedShape, truncate(string(raw), 200))
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	// A malformed entry only drops itself.
	folders := make([]Folder, 0, len(entries))
	for i, entry := range entries {
		var f Folder
		if string(bytes.TrimSpace(entry)) == "null" {
			log.Errorf("list folders: skipping entry %d: null", i)
			continue
		}
		if err := json.Unmarshal(entry, &f); err != nil {
			log.Errorf("list folders: skipping entry %d: %v", i, err)
			continue
		}
		folders = append(folders, f)
	}
	return folders, nil
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
