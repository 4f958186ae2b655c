package gmail

import (
	"encoding/base64"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// GmailToMessage flattens a Gmail API message.
func GmailToMessage(msg *gmail.Message) *Message {
	out := &Message{ID: msg.Id}
	if msg.Payload == nil {
		return out
	}

	for _, h := range msg.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "from":
			out.From = h.Value
		case "to":
			out.To = h.Value
		case "subject":
			out.Subject = h.Value
		}
	}
	out.walk(msg.Payload)
	return out
}

// walk visits the MIME tree depth first. The first text/plain and text/html
// bodies win; every part with a filename and attachment ID is collected in
// document order.
func (m *Message) walk(part *gmail.MessagePart) {
	if part.Filename != "" {
		if part.Body != nil && part.Body.AttachmentId != "" {
			m.Parts = append(m.Parts, attachmentPart(part))
		}
		return
	}

	if part.Body != nil && part.Body.Data != "" {
		switch part.MimeType {
		case "text/plain":
			if m.Text == "" {
				m.Text = decodeBody(part.Body.Data)
			}
		case "text/html":
			if m.HTML == "" {
				m.HTML = decodeBody(part.Body.Data)
			}
		}
	}

	for _, child := range part.Parts {
		m.walk(child)
	}
}

func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// attachmentPart reads the part's Content-ID and disposition. A part with a
// Content-ID and no disposition is treated as inline.
func attachmentPart(part *gmail.MessagePart) Part {
	p := Part{
		AttachmentID: part.Body.AttachmentId,
		Filename:     part.Filename,
		MimeType:     part.MimeType,
		Size:         part.Body.Size,
	}
	disposition := ""
	for _, h := range part.Headers {
		switch strings.ToLower(h.Name) {
		case "content-id":
			p.ContentID = strings.Trim(strings.TrimSpace(h.Value), "<>")
		case "content-disposition":
			disposition = strings.ToLower(strings.TrimSpace(h.Value))
		}
	}
	if disposition == "" {
		p.Inline = p.ContentID != ""
	} else {
		p.Inline = strings.HasPrefix(disposition, "inline")
	}
	return p
}
