package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"funkit/internal/ports"
)

// styleRange is one applied named style over a half-open rune range.
type styleRange struct {
	name  string
	start int
	end   int
}

// TextSurface is a ports.Surface over a plain terminal text pane. Terminal
// cells cannot be hidden in place, so CanElide is false and overlays rewrite
// the content. Styles are kept as named rune ranges and baked into the
// output when the pane is rendered.
type TextSurface struct {
	text      []rune
	styles    []styleRange
	view      ports.ViewState
	linkStyle lipgloss.Style
}

var _ ports.Surface = (*TextSurface)(nil)

// NewTextSurface creates an empty surface rendering links with the given style.
func NewTextSurface(linkStyle lipgloss.Style) *TextSurface {
	return &TextSurface{linkStyle: linkStyle}
}

// CanElide reports that this surface cannot hide ranges in place.
func (s *TextSurface) CanElide() bool {
	return false
}

// Text returns the surface's current text.
func (s *TextSurface) Text() string {
	return string(s.text)
}

// SetText replaces the content. Applied styles do not survive a replace.
func (s *TextSurface) SetText(text string) error {
	s.text = []rune(text)
	s.styles = nil
	return nil
}

// ApplyStyle records a named style over [start, end) rune indices.
func (s *TextSurface) ApplyStyle(name string, start, end int) error {
	if start < 0 || end < start || end > len(s.text) {
		return fmt.Errorf("style range [%d, %d) out of bounds (len %d)", start, end, len(s.text))
	}
	s.styles = append(s.styles, styleRange{name: name, start: start, end: end})
	return nil
}

// ClearStyle removes all ranges applied under a name.
func (s *TextSurface) ClearStyle(name string) error {
	kept := s.styles[:0]
	for _, r := range s.styles {
		if r.name != name {
			kept = append(kept, r)
		}
	}
	s.styles = kept
	return nil
}

// IndexAt maps a column/line position in the content to a rune index.
func (s *TextSurface) IndexAt(x, y int) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	lineStart := 0
	line := 0
	for i, r := range s.text {
		if line == y {
			break
		}
		if r == '\n' {
			line++
			lineStart = i + 1
		}
	}
	if line != y {
		return 0, false
	}
	idx := lineStart + x
	for i := lineStart; i < idx && i < len(s.text); i++ {
		if s.text[i] == '\n' {
			return 0, false
		}
	}
	if idx > len(s.text) {
		return 0, false
	}
	return idx, true
}

// View returns the remembered scroll/caret state.
func (s *TextSurface) View() ports.ViewState {
	return s.view
}

// RestoreView re-applies a previously captured view state.
func (s *TextSurface) RestoreView(v ports.ViewState) {
	s.view = v
}

// Render returns the content with link ranges styled for display.
func (s *TextSurface) Render() string {
	linked := make([]bool, len(s.text))
	for _, r := range s.styles {
		if r.name != ports.StyleLink {
			continue
		}
		for i := r.start; i < r.end; i++ {
			linked[i] = true
		}
	}

	var b strings.Builder
	i := 0
	for i < len(s.text) {
		j := i
		for j < len(s.text) && linked[j] == linked[i] && s.text[j] != '\n' {
			j++
		}
		chunk := string(s.text[i:j])
		if linked[i] {
			b.WriteString(s.linkStyle.Render(chunk))
		} else {
			b.WriteString(chunk)
		}
		if j < len(s.text) && s.text[j] == '\n' {
			b.WriteByte('\n')
			j++
		}
		i = j
	}
	return b.String()
}
