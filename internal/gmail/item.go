package gmail

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.withmatt.com/mailflow/internal/mailitem"
)

// attachmentFetcher is the slice of Client that Item needs.
type attachmentFetcher interface {
	GetAttachmentData(ctx context.Context, messageID, attachmentID string) (string, error)
}

// Item exposes a fetched Gmail message as the open mail item.
type Item struct {
	msg     *Message
	fetcher attachmentFetcher
}

var _ mailitem.Item = (*Item)(nil)

// NewItem wraps msg. Attachment content is fetched lazily through client.
func NewItem(client *Client, msg *Message) *Item {
	return &Item{msg: msg, fetcher: client}
}

// OpenItem fetches messageID and wraps it.
func OpenItem(ctx context.Context, client *Client, messageID string) (*Item, error) {
	msg, err := client.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	return NewItem(client, msg), nil
}

func (i *Item) Subject() string {
	return i.msg.Subject
}

func (i *Item) From() *mailitem.EmailAddress {
	if strings.TrimSpace(i.msg.From) == "" {
		return nil
	}
	addrs := parseAddresses(i.msg.From)
	if len(addrs) == 0 {
		return nil
	}
	return &addrs[0]
}

func (i *Item) To() []mailitem.EmailAddress {
	return parseAddresses(i.msg.To)
}

func (i *Item) Attachments() []mailitem.AttachmentRef {
	refs := make([]mailitem.AttachmentRef, 0, len(i.msg.Parts))
	for _, att := range i.msg.Parts {
		refs = append(refs, mailitem.AttachmentRef{
			ID:             att.AttachmentID,
			Name:           att.Filename,
			ContentType:    att.MimeType,
			Size:           att.Size,
			IsInline:       att.Inline,
			AttachmentType: mailitem.AttachmentTypeFile,
		})
	}
	return refs
}

func (i *Item) GetBody(_ context.Context, coercion mailitem.CoercionType) mailitem.AsyncResult[string] {
	switch coercion {
	case mailitem.CoercionHTML:
		if i.msg.HTML != "" {
			return mailitem.Succeeded(i.msg.HTML)
		}
		return mailitem.Succeeded(i.msg.Text)
	case mailitem.CoercionText:
		if i.msg.Text != "" {
			return mailitem.Succeeded(i.msg.Text)
		}
		return mailitem.Succeeded(mailitem.HTMLToText(i.msg.HTML))
	default:
		return mailitem.Failed[string](errors.New("unsupported coercion type: " + string(coercion)))
	}
}

func (i *Item) GetAttachmentContent(
	ctx context.Context,
	id string,
) mailitem.AsyncResult[mailitem.AttachmentContent] {
	data, err := i.fetcher.GetAttachmentData(ctx, i.msg.ID, id)
	if err != nil {
		return mailitem.Failed[mailitem.AttachmentContent](err)
	}
	content, err := toStdBase64(data)
	if err != nil {
		return mailitem.Failed[mailitem.AttachmentContent](err)
	}
	return mailitem.Succeeded(mailitem.AttachmentContent{
		Format:  mailitem.ContentFormatBase64,
		Content: content,
	})
}

// parseAddresses parses an address header, keeping unparseable input as a
// bare address so nothing the host shows is dropped.
func parseAddresses(header string) []mailitem.EmailAddress {
	header = strings.TrimSpace(header)
	if header == "" {
		return []mailitem.EmailAddress{}
	}
	list, err := mail.ParseAddressList(header)
	if err != nil {
		return []mailitem.EmailAddress{{EmailAddress: header}}
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
