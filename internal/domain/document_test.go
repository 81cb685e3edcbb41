package domain

import (
	"strings"
	"testing"
)

func TestDocumentPreview(t *testing.T) {
	t.Run("short text body", func(t *testing.T) {
		d := &Document{ID: 1, Title: "t", Body: "hello\nworld"}
		if got := d.Preview(); got != "hello world" {
			t.Errorf("expected newline flattened, got %q", got)
		}
	})

	t.Run("long text body is clipped", func(t *testing.T) {
		d := &Document{Body: strings.Repeat("a", 100)}
		if got := d.Preview(); len(got) != 60 {
			t.Errorf("expected 60-char preview, got %d chars", len(got))
		}
	})

	t.Run("binary body shows size placeholder", func(t *testing.T) {
		d := &Document{Blob: make([]byte, 12345)}
		if got := d.Preview(); got != "[12345 bytes]" {
			t.Errorf("expected size placeholder, got %q", got)
		}
		if !d.IsBinary() {
			t.Error("expected IsBinary")
		}
	})
}

func TestDisplayTitle(t *testing.T) {
	if got := (&Document{Title: "  "}).DisplayTitle(); got != "(untitled)" {
		t.Errorf("expected (untitled), got %q", got)
	}
	if got := (&Document{Title: "Notes"}).DisplayTitle(); got != "Notes" {
		t.Errorf("expected Notes, got %q", got)
	}
}
