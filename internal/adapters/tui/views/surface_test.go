package views

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"funkit/internal/application"
	"funkit/internal/ports"
)

func newPlainSurface(text string) *TextSurface {
	s := NewTextSurface(lipgloss.NewStyle())
	s.SetText(text)
	return s
}

func TestTextSurfaceStyles(t *testing.T) {
	s := newPlainSurface("hello world")

	if s.CanElide() {
		t.Error("terminal surface must not report elide capability")
	}

	if err := s.ApplyStyle(ports.StyleLink, 0, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ApplyStyle(ports.StyleLink, 6, 20); err == nil {
		t.Error("out-of-bounds range should be rejected")
	}
	if err := s.ApplyStyle(ports.StyleLink, 5, 3); err == nil {
		t.Error("inverted range should be rejected")
	}

	if err := s.ClearStyle(ports.StyleLink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.styles) != 0 {
		t.Errorf("styles survived clear: %v", s.styles)
	}
}

func TestTextSurfaceSetTextDropsStyles(t *testing.T) {
	s := newPlainSurface("hello")
	s.ApplyStyle(ports.StyleLink, 0, 5)

	s.SetText("replaced")
	if len(s.styles) != 0 {
		t.Errorf("styles survived SetText: %v", s.styles)
	}
	if s.Text() != "replaced" {
		t.Errorf("text = %q", s.Text())
	}
}

func TestTextSurfaceIndexAt(t *testing.T) {
	s := newPlainSurface("first\nsecond line\nlast")

	tests := []struct {
		name string
		x, y int
		want int
		ok   bool
	}{
		{"start of first line", 0, 0, 0, true},
		{"inside first line", 3, 0, 3, true},
		{"start of second line", 0, 1, 6, true},
		{"inside second line", 7, 1, 13, true},
		{"third line", 2, 2, 20, true},
		{"past end of line", 9, 0, 0, false},
		{"line out of range", 0, 5, 0, false},
		{"negative", -1, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.IndexAt(tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("idx = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTextSurfaceRender(t *testing.T) {
	// An empty lipgloss style renders identity, so the output must be the
	// text itself regardless of applied ranges.
	s := newPlainSurface("see Intro now\nsecond")
	s.ApplyStyle(ports.StyleLink, 4, 9)

	if got := s.Render(); got != "see Intro now\nsecond" {
		t.Errorf("rendered = %q", got)
	}
}

func TestTextSurfaceWithOverlay(t *testing.T) {
	s := newPlainSurface("go to [Intro](doc:1) now")
	overlay := application.NewOverlay(s, nil, nil)

	if err := overlay.Render(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Text() != "go to Intro now" {
		t.Errorf("visible text = %q", s.Text())
	}

	links := overlay.Links()
	if len(links) != 1 || links[0].LabelStart != 6 || links[0].LabelEnd != 11 {
		t.Fatalf("links = %+v", links)
	}

	// Click via surface coordinates: column 8 on line 0 is inside "Intro".
	if idx, ok := s.IndexAt(8, 0); !ok || !overlay.Hovering(idx) {
		t.Errorf("expected position (8, 0) to hover the link (idx=%d ok=%v)", idx, ok)
	}
}
