package gmail

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/gmail/v1"
)

// userID addresses the authorized user's own mailbox.
const userID = "me"

// Client wraps Gmail API service
type Client struct {
	srv *gmail.Service
}

func NewClient(srv *gmail.Service) *Client {
	return &Client{srv: srv}
}

// GetMessage fetches messageID with its full MIME tree.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	msg, err := c.srv.Users.Messages.Get(userID, messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}
	return GmailToMessage(msg), nil
}

// GetAttachmentData returns the attachment as Gmail sends it, base64url
// encoded.
func (c *Client) GetAttachmentData(ctx context.Context, messageID, attachmentID string) (string, error) {
	body, err := c.srv.Users.Messages.Attachments.Get(userID, messageID, attachmentID).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("get attachment %s: %w", attachmentID, err)
	}
	return body.Data, nil
}

// toStdBase64 re-encodes a base64url payload, padded or not, as standard
// base64.
func toStdBase64(data string) (string, error) {
	if data == "" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		if raw, err = base64.URLEncoding.DecodeString(data); err != nil {
			return "", err
		}
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
