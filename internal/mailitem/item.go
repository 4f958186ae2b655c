// Package mailitem reads the open mail item through the host mail API and
// turns it into a Snapshot ready to be relayed to an automation trigger.
package mailitem

import "context"

// CoercionType selects the body format requested from the host.
type CoercionType string

const (
	CoercionText CoercionType = "text"
	CoercionHTML CoercionType = "html"
)

// AsyncStatus mirrors the status field of a host callback result.
type AsyncStatus int

const (
	StatusSucceeded AsyncStatus = iota
	StatusFailed
)

// AsyncResult is the outcome of a host request: a value on success, the
// host's error otherwise.
type AsyncResult[T any] struct {
	Status AsyncStatus
	Value  T
	Error  error
}

func Succeeded[T any](value T) AsyncResult[T] {
	return AsyncResult[T]{Status: StatusSucceeded, Value: value}
}

func Failed[T any](err error) AsyncResult[T] {
	return AsyncResult[T]{Status: StatusFailed, Error: err}
}

// EmailAddress is a single mailbox as exposed by the host.
type EmailAddress struct {
	DisplayName  string
	EmailAddress string
}

// AttachmentRef describes an attachment before its content is fetched.
type AttachmentRef struct {
	ID             string
	Name           string
	ContentType    string
	Size           int64
	IsInline       bool
	AttachmentType string
}

// AttachmentContent is the host's answer to a content request. Content is
// base64 encoded.
type AttachmentContent struct {
	Format  string
	Content string
}

// Item is the host's view of the currently open email.
type Item interface {
	Subject() string
	// From returns nil when the host has no sender for the item.
	From() *EmailAddress
	To() []EmailAddress
	Attachments() []AttachmentRef
	GetBody(ctx context.Context, coercion CoercionType) AsyncResult[string]
	GetAttachmentContent(ctx context.Context, id string) AsyncResult[AttachmentContent]
}

const (
	AttachmentTypeFile  = "file"
	ContentFormatBase64 = "base64"
)
