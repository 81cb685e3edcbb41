package application

import (
	"fmt"

	"github.com/charmbracelet/log"

	"funkit/internal/domain"
	"funkit/internal/ports"
)

// LinkRegion is one currently rendered clickable label range. Offsets are
// character indices into the surface's addressable text: the source text on
// elide-capable surfaces, the visible text on rewrite surfaces.
type LinkRegion struct {
	LabelStart int
	LabelEnd   int
	TargetID   int64
}

// OnOpenFunc is invoked when a rendered link is activated.
type OnOpenFunc func(targetID int64)

// Overlay keeps clickable link regions synchronized with live text on a
// rendering surface. The render strategy is probed once at construction:
// surfaces that can elide never have their text rewritten; others get the
// markup stripped into a visible text on each render.
//
// The link table the overlay holds is what click handling consults. It is
// one render cycle behind the raw text by design, and it is never dropped
// by a scan that comes back empty: a previously rendered link must not
// silently disappear (see Render).
type Overlay struct {
	surface ports.Surface
	onOpen  OnOpenFunc
	logger  *log.Logger
	elide   bool
	links   []LinkRegion
}

// NewOverlay creates an overlay bound to a surface and an open callback.
func NewOverlay(surface ports.Surface, onOpen OnOpenFunc, logger *log.Logger) *Overlay {
	if logger == nil {
		logger = log.Default()
	}
	return &Overlay{
		surface: surface,
		onOpen:  onOpen,
		logger:  logger,
		elide:   surface.CanElide(),
	}
}

// Render re-derives link regions from the surface's current text and applies
// them. A failure on one reference skips that reference and continues; it
// never aborts the pass.
//
// When the scan finds no references but the previous link table was
// non-empty, the previous table is retained and its regions reapplied over
// the unchanged text. This guards against a transient empty scan making
// rendered links vanish; the table is replaced as soon as any scan returns
// matches, and cleared only by Reset.
func (o *Overlay) Render() error {
	if o.elide {
		return o.renderElide()
	}
	return o.renderRewrite()
}

func (o *Overlay) renderElide() error {
	if err := o.clearStyles(); err != nil {
		return err
	}

	text := o.surface.Text()
	refs := domain.Scan(text)
	if len(refs) == 0 && len(o.links) > 0 {
		o.reapply(o.links)
		return nil
	}

	links := make([]LinkRegion, 0, len(refs))
	for _, ref := range refs {
		if err := o.applyElided(ref); err != nil {
			o.logger.Warn("skipping reference", "target", ref.TargetID, "err", err)
			continue
		}
		links = append(links, LinkRegion{LabelStart: ref.LabelStart, LabelEnd: ref.LabelEnd, TargetID: ref.TargetID})
	}
	o.links = links
	return nil
}

func (o *Overlay) applyElided(ref domain.Reference) error {
	// Hide '[' and '](doc:ID)', leave the label visible and clickable.
	if err := o.surface.ApplyStyle(ports.StyleHidden, ref.Start, ref.LabelStart); err != nil {
		return fmt.Errorf("hide opening markup: %w", err)
	}
	if err := o.surface.ApplyStyle(ports.StyleHidden, ref.LabelEnd, ref.End); err != nil {
		return fmt.Errorf("hide closing markup: %w", err)
	}
	if err := o.surface.ApplyStyle(ports.StyleLink, ref.LabelStart, ref.LabelEnd); err != nil {
		return fmt.Errorf("mark label: %w", err)
	}
	return nil
}

func (o *Overlay) renderRewrite() error {
	text := o.surface.Text()
	refs := domain.Scan(text)

	if len(refs) == 0 {
		// No rewrite: replacing content here would destroy user edits
		// and scroll state. Reapply what was previously rendered.
		if err := o.surface.ClearStyle(ports.StyleLink); err != nil {
			return err
		}
		o.reapply(o.links)
		return nil
	}

	visible, links := stripMarkup(text, refs)

	view := o.surface.View()
	view.Caret = visibleIndex(refs, view.Caret)
	if err := o.surface.SetText(visible); err != nil {
		return fmt.Errorf("replace content: %w", err)
	}
	o.surface.RestoreView(view)

	if err := o.surface.ClearStyle(ports.StyleLink); err != nil {
		return err
	}
	kept := links[:0]
	for _, l := range links {
		if err := o.surface.ApplyStyle(ports.StyleLink, l.LabelStart, l.LabelEnd); err != nil {
			o.logger.Warn("skipping reference", "target", l.TargetID, "err", err)
			continue
		}
		kept = append(kept, l)
	}
	o.links = kept
	return nil
}

func (o *Overlay) clearStyles() error {
	if err := o.surface.ClearStyle(ports.StyleLink); err != nil {
		return err
	}
	return o.surface.ClearStyle(ports.StyleHidden)
}

func (o *Overlay) reapply(links []LinkRegion) {
	for _, l := range links {
		if err := o.surface.ApplyStyle(ports.StyleLink, l.LabelStart, l.LabelEnd); err != nil {
			o.logger.Warn("reapplying link failed", "target", l.TargetID, "err", err)
		}
	}
}

// Links returns a copy of the current link table.
func (o *Overlay) Links() []LinkRegion {
	out := make([]LinkRegion, len(o.links))
	copy(out, o.links)
	return out
}

// Click resolves a character index against the link table and invokes the
// open callback on a hit. It reports whether a link was activated.
func (o *Overlay) Click(idx int) bool {
	for _, l := range o.links {
		if idx >= l.LabelStart && idx < l.LabelEnd {
			if o.onOpen != nil {
				o.onOpen(l.TargetID)
			}
			return true
		}
	}
	return false
}

// ClickAt resolves a pointer position via the surface, then behaves as Click.
func (o *Overlay) ClickAt(x, y int) bool {
	idx, ok := o.surface.IndexAt(x, y)
	if !ok {
		return false
	}
	return o.Click(idx)
}

// Hovering reports whether a character index is inside a rendered link,
// for optional cursor feedback. It is stateless.
func (o *Overlay) Hovering(idx int) bool {
	for _, l := range o.links {
		if idx >= l.LabelStart && idx < l.LabelEnd {
			return true
		}
	}
	return false
}

// Reset drops the link table, e.g. when the surface content is replaced
// with a different document.
func (o *Overlay) Reset() {
	o.links = nil
}

// stripMarkup computes the visible text with all markup removed and only
// labels retained, plus each label's region in that visible text.
func stripMarkup(text string, refs []domain.Reference) (string, []LinkRegion) {
	runes := []rune(text)
	visible := make([]rune, 0, len(runes))
	links := make([]LinkRegion, 0, len(refs))

	pos := 0
	for _, ref := range refs {
		visible = append(visible, runes[pos:ref.Start]...)
		start := len(visible)
		visible = append(visible, runes[ref.LabelStart:ref.LabelEnd]...)
		links = append(links, LinkRegion{LabelStart: start, LabelEnd: len(visible), TargetID: ref.TargetID})
		pos = ref.End
	}
	visible = append(visible, runes[pos:]...)
	return string(visible), links
}

// visibleIndex maps a character index in the source text to the
// corresponding index in the stripped visible text, best-effort: indices
// inside removed markup clamp to the label.
func visibleIndex(refs []domain.Reference, idx int) int {
	removed := 0
	for _, ref := range refs {
		if idx <= ref.Start {
			break
		}
		if idx >= ref.End {
			removed += (ref.End - ref.Start) - (ref.LabelEnd - ref.LabelStart)
			continue
		}
		// Inside this reference: clamp into the visible label.
		offset := idx - ref.LabelStart
		if offset < 0 {
			offset = 0
		}
		if labelLen := ref.LabelEnd - ref.LabelStart; offset > labelLen {
			offset = labelLen
		}
		return ref.Start - removed + offset
	}
	return idx - removed
}
