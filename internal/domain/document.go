package domain

import (
	"fmt"
	"strings"
)

// Document is a stored text or binary blob. Text documents carry their
// content in Body; binary documents (images etc.) carry it in Blob and are
// never scanned for references. Exactly one of the two is populated.
type Document struct {
	ID    int64
	Title string
	Body  string
	Blob  []byte
}

// IsBinary reports whether the document holds opaque bytes instead of text.
func (d *Document) IsBinary() bool {
	return d.Blob != nil
}

// DisplayTitle returns the title, or "(untitled)" when blank.
func (d *Document) DisplayTitle() string {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

const previewLength = 60

// Preview returns a one-line description of the document body: the first 60
// characters for text documents, or a byte-count placeholder for binary ones.
func (d *Document) Preview() string {
	if d.IsBinary() {
		return fmt.Sprintf("[%d bytes]", len(d.Blob))
	}
	body := d.Body
	if runes := []rune(body); len(runes) > previewLength {
		body = string(runes[:previewLength])
	}
	body = strings.ReplaceAll(body, "\n", " ")
	return strings.ReplaceAll(body, "\r", " ")
}

// IndexEntry is one row of the store index listing.
type IndexEntry struct {
	ID          int64
	Title       string
	Description string
}

// ChildDoc is a derived child entry: a document referenced from a parent
// body. Missing is set when the target id does not resolve in the store.
type ChildDoc struct {
	ID      int64
	Title   string
	Missing bool
}
