package mailitem

import (
	"context"
	"errors"
	"slices"
	"testing"
)

type fakeItem struct {
	subject     string
	from        *EmailAddress
	to          []EmailAddress
	attachments []AttachmentRef
	body        AsyncResult[string]
	contents    map[string]AsyncResult[AttachmentContent]

	bodyCalls    []CoercionType
	contentCalls []string
	// calls records body and content requests in the order they were made.
	calls        []string
}

func (f *fakeItem) Subject() string { return f.subject }
func (f *fakeItem) From() *EmailAddress { return f.from }
func (f *fakeItem) To() []EmailAddress { return f.to }
func (f *fakeItem) Attachments() []AttachmentRef { return f.attachments }

func (f *fakeItem) GetBody(_ context.Context, coercion CoercionType) AsyncResult[string] {
	f.bodyCalls = append(f.bodyCalls, coercion)
	f.calls = append(f.calls, "body")
	return f.body
}

func (f *fakeItem) GetAttachmentContent(_ context.Context, id string) AsyncResult[AttachmentContent] {
	f.contentCalls = append(f.contentCalls, id)
	f.calls = append(f.calls, "content:"+id)
	if res, ok := f.contents[id]; ok {
		return res
	}
	return Failed[AttachmentContent](errors.New("no such attachment"))
}

func content(b64 string) AsyncResult[AttachmentContent] {
	return Succeeded(AttachmentContent{Format: ContentFormatBase64, Content: b64})
}

func TestResolveAttachments_Empty(t *testing.T) {
	t.Parallel()

	item := &fakeItem{}
	records, err := ResolveAttachments(context.Background(), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records == nil {
		t.Error("records should be an empty slice, got nil")
	}
	if len(records) != 0 {
		t.Errorf("records: got %d, want 0", len(records))
	}
	if len(item.contentCalls) != 0 {
		t.Errorf("content calls: got %v, want none", item.contentCalls)
	}
}

func TestResolveAttachments_ContentTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ref         AttachmentRef
		contentType string
	}{
		{
			name:        "explicit type preserved",
			ref:         AttachmentRef{ID: "1", Name: "photo.png", ContentType: "application/x-custom"},
			contentType: "application/x-custom",
		},
		{
			name:        "uppercase extension",
			ref:         AttachmentRef{ID: "1", Name: "report.PDF"},
			contentType: "application/pdf",
		},
		{
			name:        "unknown extension",
			ref:         AttachmentRef{ID: "1", Name: "foo.xyz"},
			contentType: "application/octet-stream",
		},
		{
			name:        "no extension",
			ref:         AttachmentRef{ID: "1", Name: "README"},
			contentType: "application/octet-stream",
		},
		{
			name:        "bare extension as name",
			ref:         AttachmentRef{ID: "1", Name: "PDF"},
			contentType: "application/pdf",
		},
		{
			name:        "trailing dot",
			ref:         AttachmentRef{ID: "1", Name: "invoice."},
			contentType: "application/octet-stream",
		},
		{
			name:        "double extension uses last",
			ref:         AttachmentRef{ID: "1", Name: "archive.tar.zip"},
			contentType: "application/zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := &fakeItem{
				attachments: []AttachmentRef{tt.ref},
				contents:    map[string]AsyncResult[AttachmentContent]{"1": content("AAAA")},
			}
			records, err := ResolveAttachments(context.Background(), item)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(records) != 1 {
				t.Fatalf("records: got %d, want 1", len(records))
			}
			if records[0].ContentType != tt.contentType {
				t.Errorf("ContentType: got %q, want %q", records[0].ContentType, tt.contentType)
			}
		})
	}
}

func TestResolveAttachments_PreservesOrderAndFields(t *testing.T) {
	t.Parallel()

	item := &fakeItem{
		attachments: []AttachmentRef{
			{ID: "a", Name: "one.txt", Size: 3, AttachmentType: AttachmentTypeFile},
			{ID: "b", Name: "two.png", Size: 10, IsInline: true, AttachmentType: AttachmentTypeFile},
		},
		contents: map[string]AsyncResult[AttachmentContent]{
			"a": content("b25l"),
			"b": content("dHdv"),
		},
	}

	records, err := ResolveAttachments(context.Background(), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
	if got := item.contentCalls; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("content calls: got %v, want [a b]", got)
	}

	first := records[0]
	if first.ID != "a" || first.Name != "one.txt" || first.ContentBytes != "b25l" {
		t.Errorf("first record: got %+v", first)
	}
	if first.ContentType != "text/plain" {
		t.Errorf("first ContentType: got %q, want %q", first.ContentType, "text/plain")
	}
	if first.IsInline {
		t.Error("first record should not be inline")
	}
	second := records[1]
	if !second.IsInline || second.Size != 10 || second.AttachmentType != AttachmentTypeFile {
		t.Errorf("second record: got %+v", second)
	}
}

func TestResolveAttachments_FailureAbortsAll(t *testing.T) {
	t.Parallel()

	hostErr := errors.New("item not found")
	item := &fakeItem{
		attachments: []AttachmentRef{
			{ID: "1", Name: "a.pdf"},
			{ID: "2", Name: "b.pdf"},
			{ID: "3", Name: "c.pdf"},
		},
		contents: map[string]AsyncResult[AttachmentContent]{
			"1": content("AAAA"),
			"2": Failed[AttachmentContent](hostErr),
			"3": content("CCCC"),
		},
	}

	records, err := ResolveAttachments(context.Background(), item)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if records != nil {
		t.Errorf("records: got %v, want nil", records)
	}

	var fetchErr *AttachmentFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *AttachmentFetchError, got %T", err)
	}
	if fetchErr.ID != "2" {
		t.Errorf("failed ID: got %q, want %q", fetchErr.ID, "2")
	}
	var apiErr *HostAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected wrapped *HostAPIError, got %v", err)
	}
	if !errors.Is(err, hostErr) {
		t.Errorf("expected host error in chain, got %v", err)
	}
	if got := item.contentCalls; len(got) != 2 {
		t.Errorf("content calls: got %v, want [1 2]", got)
	}
}

func TestReadSnapshot(t *testing.T) {
	t.Parallel()

	item := &fakeItem{
		subject: "Quarterly numbers",
		from:    &EmailAddress{DisplayName: "Ann", EmailAddress: "ann@example.com"},
		to: []EmailAddress{
			{EmailAddress: "a@x.com"},
			{EmailAddress: "b@x.com"},
		},
		body: Succeeded("see attached"),
		attachments: []AttachmentRef{
			{ID: "1", Name: "q3.xlsx"},
		},
		contents: map[string]AsyncResult[AttachmentContent]{"1": content("UEsDBA==")},
	}

	snap, err := ReadSnapshot(context.Background(), item, BodyFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Subject != "Quarterly numbers" {
		t.Errorf("Subject: got %q", snap.Subject)
	}
	if snap.From != "ann@example.com" {
		t.Errorf("From: got %q, want %q", snap.From, "ann@example.com")
	}
	if snap.To != "a@x.com" {
		t.Errorf("To: got %q, want %q", snap.To, "a@x.com")
	}
	if snap.Body != "see attached" {
		t.Errorf("Body: got %q", snap.Body)
	}
	if len(item.bodyCalls) != 1 || item.bodyCalls[0] != CoercionText {
		t.Errorf("body calls: got %v, want [text]", item.bodyCalls)
	}
	if len(snap.Attachments) != 1 {
		t.Fatalf("Attachments: got %d, want 1", len(snap.Attachments))
	}
	want := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if snap.Attachments[0].ContentType != want {
		t.Errorf("ContentType: got %q, want %q", snap.Attachments[0].ContentType, want)
	}
}

func TestReadSnapshot_MissingSenderAndRecipients(t *testing.T) {
	t.Parallel()

	item := &fakeItem{subject: "draft", body: Succeeded("")}
	snap, err := ReadSnapshot(context.Background(), item, BodyFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.From != "" || snap.To != "" {
		t.Errorf("From/To: got %q/%q, want empty", snap.From, snap.To)
	}
	if snap.Attachments == nil {
		t.Error("Attachments should be empty, not nil")
	}
}

func TestReadSnapshot_BodyFailure(t *testing.T) {
	t.Parallel()

	item := &fakeItem{
		body:        Failed[string](errors.New("permission denied")),
		attachments: []AttachmentRef{{ID: "1", Name: "a.pdf"}},
	}
	_, err := ReadSnapshot(context.Background(), item, BodyFirst)

	var apiErr *HostAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *HostAPIError, got %v", err)
	}
	if apiErr.Op != "get body" {
		t.Errorf("Op: got %q, want %q", apiErr.Op, "get body")
	}
	if len(item.contentCalls) != 0 {
		t.Errorf("attachments should not be fetched after a body failure, got %v", item.contentCalls)
	}
}

func TestReadBody_FailedWithoutError(t *testing.T) {
	t.Parallel()

	item := &fakeItem{body: AsyncResult[string]{Status: StatusFailed}}
	_, err := ReadBody(context.Background(), item)
	if !errors.Is(err, errUnknownHostFailure) {
		t.Errorf("expected errUnknownHostFailure, got %v", err)
	}
}

func TestMimeType(t *testing.T) {
	t.Parallel()

	if got, ok := MimeType("docx"); !ok ||
		got != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Errorf("docx: got %q, %v", got, ok)
	}
	if _, ok := MimeType("PDF"); ok {
		t.Error("lookup should be case-sensitive; callers lowercase first")
	}
}

func TestReadSnapshot_Order(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		order     ReadOrder
		body      AsyncResult[string]
		contents  map[string]AsyncResult[AttachmentContent]
		wantCalls []string
		wantErr   bool
	}{
		{
			name:      "body first",
			order:     BodyFirst,
			body:      Succeeded("hi"),
			contents:  map[string]AsyncResult[AttachmentContent]{"1": content("AA=="), "2": content("AA==")},
			wantCalls: []string{"body", "content:1", "content:2"},
		},
		{
			name:      "attachments first",
			order:     AttachmentsFirst,
			body:      Succeeded("hi"),
			contents:  map[string]AsyncResult[AttachmentContent]{"1": content("AA=="), "2": content("AA==")},
			wantCalls: []string{"content:1", "content:2", "body"},
		},
		{
			name:      "attachment failure skips body",
			order:     AttachmentsFirst,
			body:      Succeeded("hi"),
			contents:  map[string]AsyncResult[AttachmentContent]{"2": content("AA==")},
			wantCalls: []string{"content:1"},
			wantErr:   true,
		},
		{
			name:      "body failure skips attachments",
			order:     BodyFirst,
			body:      Failed[string](errors.New("offline")),
			wantCalls: []string{"body"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := &fakeItem{
				body:        tt.body,
				attachments: []AttachmentRef{{ID: "1", Name: "a.pdf"}, {ID: "2", Name: "b.pdf"}},
				contents:    tt.contents,
			}
			snap, err := ReadSnapshot(context.Background(), item, tt.order)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if !slices.Equal(item.calls, tt.wantCalls) {
				t.Errorf("calls: got %v, want %v", item.calls, tt.wantCalls)
			}
			if tt.wantErr {
				return
			}
			if snap.Body != "hi" || len(snap.Attachments) != 2 {
				t.Errorf("snapshot: got %+v", snap)
			}
		})
	}
}
