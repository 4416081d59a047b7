package gdrive

import (
	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

// Native Google Workspace MIME types
const (
	MimeDocument     = "application/vnd.google-apps.document"
	MimeSpreadsheet  = "application/vnd.google-apps.spreadsheet"
	MimePresentation = "application/vnd.google-apps.presentation"
	MimeFolder       = "application/vnd.google-apps.folder"
)

var kindMimeTypes = map[docs.Kind]string{
	docs.KindDocument:     MimeDocument,
	docs.KindSpreadsheet:  MimeSpreadsheet,
	docs.KindPresentation: MimePresentation,
	docs.KindFolder:       MimeFolder,
}

// MimeType returns the native MIME type of a creatable kind
func MimeType(kind docs.Kind) (string, bool) {
	mime, ok := kindMimeTypes[kind]
	return mime, ok
}

// KindOf maps a Drive MIME type to an entry kind. Anything that is not native is a file.
func KindOf(mimeType string) docs.Kind {
	for kind, mime := range kindMimeTypes {
		if mime == mimeType {
			return kind
		}
	}

	return docs.KindFile
}
