package mailitem

import "context"

// AttachmentRecord is an attachment with its content resolved.
type AttachmentRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ContentType    string `json:"contentType"`
	Size           int64  `json:"size"`
	ContentBytes   string `json:"contentBytes"`
	IsInline       bool   `json:"isInline"`
	AttachmentType string `json:"attachmentType"`
}

// Snapshot is the mail item as captured for a single user action.
type Snapshot struct {
	Subject     string
	From        string
	To          string
	Body        string
	Attachments []AttachmentRecord
}

// ReadOrder picks which host request ReadSnapshot issues first.
type ReadOrder int

const (
	// BodyFirst reads the body, then the attachments.
	BodyFirst ReadOrder = iota
	// AttachmentsFirst resolves the attachments, then reads the body.
	AttachmentsFirst
)

// ReadSnapshot captures the item's fields, plain-text body and attachments,
// issuing the two host reads in the given order. The first failure stops
// the read. Only the first recipient is kept in To.
func ReadSnapshot(ctx context.Context, item Item, order ReadOrder) (Snapshot, error) {
	snap := Snapshot{
		Subject: item.Subject(),
		From:    senderAddress(item),
		To:      firstRecipient(item),
	}

	readBody := func() (err error) {
		snap.Body, err = ReadBody(ctx, item)
		return err
	}
	readAttachments := func() (err error) {
		snap.Attachments, err = ResolveAttachments(ctx, item)
		return err
	}

	steps := []func() error{readBody, readAttachments}
	if order == AttachmentsFirst {
		steps = []func() error{readAttachments, readBody}
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// ReadBody requests the body as plain text.
func ReadBody(ctx context.Context, item Item) (string, error) {
	res := item.GetBody(ctx, CoercionText)
	if res.Status != StatusSucceeded {
		return "", hostError("get body", res.Error)
	}
	return res.Value, nil
}

// ResolveAttachments fetches every attachment's content in order, one at a
// time. A single failure aborts the rest and nothing is returned.
func ResolveAttachments(ctx context.Context, item Item) ([]AttachmentRecord, error) {
	refs := item.Attachments()
	records := make([]AttachmentRecord, 0, len(refs))
	for _, ref := range refs {
		res := item.GetAttachmentContent(ctx, ref.ID)
		if res.Status != StatusSucceeded {
			return nil, &AttachmentFetchError{
				ID:   ref.ID,
				Name: ref.Name,
				Err:  hostError("get attachment content", res.Error),
			}
		}

		records = append(records, AttachmentRecord{
			ID:             ref.ID,
			Name:           ref.Name,
			ContentType:    contentTypeFor(ref),
			Size:           ref.Size,
			ContentBytes:   res.Value.Content,
			IsInline:       ref.IsInline,
			AttachmentType: ref.AttachmentType,
		})
	}
	return records, nil
}

func senderAddress(item Item) string {
	from := item.From()
	if from == nil {
		return ""
	}
	return from.EmailAddress
}

func firstRecipient(item Item) string {
	to := item.To()
	if len(to) == 0 {
		return ""
	}
	return to[0].EmailAddress
}
