// Package eml serves a saved RFC 5322 message file as the open mail item.
package eml

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jhillyerd/enmime"

	"go.withmatt.com/mailflow/internal/mailitem"
)

// Item is a parsed message. Attachments are numbered att-1, att-2, ... in the
// order enmime reports them, regular attachments before inline parts.
type Item struct {
	envelope *enmime.Envelope
	parts    []*enmime.Part
	inline   []bool
}

var _ mailitem.Item = (*Item)(nil)

// Open parses the message stored at path.
func Open(path string) (*Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a message from r.
func Read(r io.Reader) (*Item, error) {
	envelope, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	item := &Item{envelope: envelope}
	for _, part := range envelope.Attachments {
		item.parts = append(item.parts, part)
		item.inline = append(item.inline, false)
	}
	for _, part := range envelope.Inlines {
		item.parts = append(item.parts, part)
		item.inline = append(item.inline, true)
	}
	return item, nil
}

func (i *Item) Subject() string {
	return i.envelope.GetHeader("Subject")
}

func (i *Item) From() *mailitem.EmailAddress {
	addrs := i.addresses("From")
	if len(addrs) == 0 {
		return nil
	}
	return &addrs[0]
}

func (i *Item) To() []mailitem.EmailAddress {
	return i.addresses("To")
}

func (i *Item) Attachments() []mailitem.AttachmentRef {
	refs := make([]mailitem.AttachmentRef, 0, len(i.parts))
	for n, part := range i.parts {
		refs = append(refs, mailitem.AttachmentRef{
			ID:             attachmentID(n),
			Name:           part.FileName,
			ContentType:    part.ContentType,
			Size:           int64(len(part.Content)),
			IsInline:       i.inline[n],
			AttachmentType: mailitem.AttachmentTypeFile,
		})
	}
	return refs
}

func (i *Item) GetBody(_ context.Context, coercion mailitem.CoercionType) mailitem.AsyncResult[string] {
	switch coercion {
	case mailitem.CoercionText:
		// enmime already down-converts HTML-only messages into Text.
		return mailitem.Succeeded(i.envelope.Text)
	case mailitem.CoercionHTML:
		if i.envelope.HTML != "" {
			return mailitem.Succeeded(i.envelope.HTML)
		}
		return mailitem.Succeeded(i.envelope.Text)
	default:
		return mailitem.Failed[string](fmt.Errorf("unsupported coercion type: %s", coercion))
	}
}

func (i *Item) GetAttachmentContent(
	_ context.Context,
	id string,
) mailitem.AsyncResult[mailitem.AttachmentContent] {
	n, ok := parseAttachmentID(id)
	if !ok || n >= len(i.parts) {
		return mailitem.Failed[mailitem.AttachmentContent](
			fmt.Errorf("attachment %q not found", id),
		)
	}
	return mailitem.Succeeded(mailitem.AttachmentContent{
		Format:  mailitem.ContentFormatBase64,
		Content: base64.StdEncoding.EncodeToString(i.parts[n].Content),
	})
}

func (i *Item) addresses(header string) []mailitem.EmailAddress {
	list, err := i.envelope.AddressList(header)
	if err != nil {
		raw := strings.TrimSpace(i.envelope.GetHeader(header))
		if raw == "" {
			return []mailitem.EmailAddress{}
		}
		return []mailitem.EmailAddress{{EmailAddress: raw}}
	}
	out := make([]mailitem.EmailAddress, 0, len(list))
	for _, addr := range list {
		out = append(out, mailitem.EmailAddress{
			DisplayName:  addr.Name,
			EmailAddress: addr.Address,
		})
	}
	return out
}

func attachmentID(n int) string {
	return "att-" + strconv.Itoa(n+1)
}

func parseAttachmentID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "att-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
