package ports

// Style names applied by the link overlay. Surfaces may render them however
// they like; StyleHidden is only used on elide-capable surfaces.
const (
	StyleLink   = "link"
	StyleHidden = "hidden"
)

// ViewState captures scroll and caret position across a content replace.
type ViewState struct {
	ScrollFraction float64
	Caret          int // character index
}

// Surface is the rendering-surface capability boundary consumed by the link
// overlay. All ranges are character (rune) indices, half-open [start, end).
type Surface interface {
	// CanElide reports whether the surface can hide a character range
	// while keeping it part of the addressable text. Probed once at
	// overlay initialization.
	CanElide() bool

	// Text returns the full current content.
	Text() string

	// SetText atomically replaces the full content.
	SetText(text string) error

	// ApplyStyle marks a range with a named style.
	ApplyStyle(name string, start, end int) error

	// ClearStyle removes a named style everywhere.
	ClearStyle(name string) error

	// IndexAt resolves a pointer position to a character index.
	// ok is false when the position does not map to text.
	IndexAt(x, y int) (idx int, ok bool)

	// View returns the current scroll and caret state.
	View() ViewState

	// RestoreView restores scroll and caret state best-effort.
	RestoreView(state ViewState)
}
