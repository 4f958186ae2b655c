package gmail

// Message is the part of a Gmail message mailflow relays: the addressing
// headers, the first text and HTML bodies found and the attachment parts.
type Message struct {
	ID      string
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
	Parts   []Part
}

// Part is an attachment whose data is fetched separately by ID.
type Part struct {
	AttachmentID string
	Filename     string
	MimeType     string
	Size         int64
	ContentID    string
	Inline       bool
}
