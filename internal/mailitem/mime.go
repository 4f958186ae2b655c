package mailitem

import "strings"

const defaultContentType = "application/octet-stream"

var mimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"txt":  "text/plain",
	"zip":  "application/zip",
	"rar":  "application/x-rar-compressed",
}

// MimeType looks up a lowercase file extension (without the dot).
func MimeType(ext string) (string, bool) {
	mime, ok := mimeTypes[ext]
	return mime, ok
}

// contentTypeFor prefers the host-supplied type, then the extension table.
func contentTypeFor(ref AttachmentRef) string {
	if ref.ContentType != "" {
		return ref.ContentType
	}
	if mime, ok := MimeType(extension(ref.Name)); ok {
		return mime
	}
	return defaultContentType
}

// extension is the lowercase text after the last dot, or the whole name when
// there is no dot.
func extension(name string) string {
	return strings.ToLower(name[strings.LastIndex(name, ".")+1:])
}
