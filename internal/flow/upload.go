package flow

import (
	"context"

	"go.withmatt.com/mailflow/internal/mailitem"
)

// UploadPayload is the body sent to the save-to-folder trigger.
type UploadPayload struct {
	FolderName  string                      `json:"folderName"`
	Subject     string                      `json:"subject"`
	From        string                      `json:"from"`
	To          string                      `json:"to"`
	Attachments []mailitem.AttachmentRecord `json:"attachments"`
	Body        string                      `json:"body"`
}

// CreateFolderPayload is the body sent to the create-folder-by-domain trigger.
type CreateFolderPayload struct {
	Subject     string                      `json:"subject"`
	To          string                      `json:"to"`
	From        string                      `json:"from"`
	Body        string                      `json:"body"`
	Attachments []mailitem.AttachmentRecord `json:"attachments"`
}

func NewUploadPayload(snap mailitem.Snapshot, folderName string) UploadPayload {
	return UploadPayload{
		FolderName:  folderName,
		Subject:     snap.Subject,
		From:        snap.From,
		To:          snap.To,
		Attachments: nonNil(snap.Attachments),
		Body:        snap.Body,
	}
}

func NewCreateFolderPayload(snap mailitem.Snapshot) CreateFolderPayload {
	return CreateFolderPayload{
		Subject:     snap.Subject,
		To:          snap.To,
		From:        snap.From,
		Body:        snap.Body,
		Attachments: nonNil(snap.Attachments),
	}
}

// Upload posts the snapshot to the save-to-folder trigger. A non-2xx status
// is reported through Response; only transport failures return an error.
func (c *Client) Upload(
	ctx context.Context,
	snap mailitem.Snapshot,
	folderName string,
) (Response, error) {
	return c.send(ctx, "upload", c.endpoints.UploadURL, NewUploadPayload(snap, folderName))
}

// CreateFolder posts the snapshot to the trigger that creates a folder named
// after the sender's domain.
func (c *Client) CreateFolder(ctx context.Context, snap mailitem.Snapshot) (Response, error) {
	return c.send(ctx, "create folder", c.endpoints.CreateFolderURL, NewCreateFolderPayload(snap))
}

func nonNil(records []mailitem.AttachmentRecord) []mailitem.AttachmentRecord {
	if records == nil {
		return []mailitem.AttachmentRecord{}
	}
	return records
}
