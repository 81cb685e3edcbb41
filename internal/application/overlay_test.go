package application

import (
	"fmt"
	"reflect"
	"testing"

	"funkit/internal/ports"
)

// styledRange records one ApplyStyle call on the fake surface.
type styledRange struct {
	name       string
	start, end int
}

// fakeSurface implements ports.Surface in memory. When elide is false it
// represents a surface that cannot hide substrings, forcing the overlay
// onto the rewrite strategy.
type fakeSurface struct {
	elide    bool
	text     string
	styles   []styledRange
	view     ports.ViewState
	setTexts int // number of SetText calls

	failStyle *styledRange // when set, ApplyStyle on this exact range fails
}

var _ ports.Surface = (*fakeSurface)(nil)

func (s *fakeSurface) CanElide() bool { return s.elide }

func (s *fakeSurface) Text() string { return s.text }

func (s *fakeSurface) SetText(text string) error {
	s.text = text
	s.setTexts++
	return nil
}

func (s *fakeSurface) ApplyStyle(name string, start, end int) error {
	if f := s.failStyle; f != nil && f.name == name && f.start == start && f.end == end {
		return fmt.Errorf("style rejected")
	}
	s.styles = append(s.styles, styledRange{name, start, end})
	return nil
}

func (s *fakeSurface) ClearStyle(name string) error {
	kept := s.styles[:0]
	for _, r := range s.styles {
		if r.name != name {
			kept = append(kept, r)
		}
	}
	s.styles = kept
	return nil
}

func (s *fakeSurface) IndexAt(x, y int) (int, bool) {
	if y != 0 || x < 0 || x >= len([]rune(s.text)) {
		return 0, false
	}
	return x, true
}

func (s *fakeSurface) View() ports.ViewState { return s.view }

func (s *fakeSurface) RestoreView(v ports.ViewState) { s.view = v }

func (s *fakeSurface) ranges(name string) []styledRange {
	var out []styledRange
	for _, r := range s.styles {
		if r.name == name {
			out = append(out, r)
		}
	}
	return out
}

func TestOverlayElide(t *testing.T) {
	t.Run("marks labels and hides markup without rewriting", func(t *testing.T) {
		surface := &fakeSurface{elide: true, text: "see [Intro](doc:1)."}
		o := NewOverlay(surface, nil, nil)

		if err := o.Render(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if surface.setTexts != 0 {
			t.Error("elide strategy must never rewrite the text")
		}
		if surface.text != "see [Intro](doc:1)." {
			t.Errorf("source text mutated: %q", surface.text)
		}

		wantLinks := []LinkRegion{{LabelStart: 5, LabelEnd: 10, TargetID: 1}}
		if got := o.Links(); !reflect.DeepEqual(got, wantLinks) {
			t.Errorf("link table = %+v, want %+v", got, wantLinks)
		}

		hidden := surface.ranges(ports.StyleHidden)
		wantHidden := []styledRange{
			{ports.StyleHidden, 4, 5},   // '['
			{ports.StyleHidden, 10, 18}, // '](doc:1)'
		}
		if !reflect.DeepEqual(hidden, wantHidden) {
			t.Errorf("hidden ranges = %+v, want %+v", hidden, wantHidden)
		}
	})

	t.Run("render is idempotent for unchanged text", func(t *testing.T) {
		surface := &fakeSurface{elide: true, text: "[a](doc:1) and [b](doc:2)"}
		o := NewOverlay(surface, nil, nil)

		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		first := o.Links()
		firstStyles := append([]styledRange(nil), surface.styles...)

		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(o.Links(), first) {
			t.Errorf("second render changed the link table: %+v vs %+v", o.Links(), first)
		}
		if !reflect.DeepEqual(surface.styles, firstStyles) {
			t.Errorf("second render changed applied styles")
		}
	})

	t.Run("empty scan retains prior links", func(t *testing.T) {
		surface := &fakeSurface{elide: true, text: "[a](doc:1)"}
		o := NewOverlay(surface, nil, nil)
		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		prior := o.Links()

		surface.text = "edited away"
		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(o.Links(), prior) {
			t.Errorf("links dropped on empty scan: %+v, want %+v", o.Links(), prior)
		}
		if links := surface.ranges(ports.StyleLink); len(links) != 1 {
			t.Errorf("expected prior link region reapplied, got %+v", links)
		}
	})

	t.Run("non-empty scan supersedes retained links", func(t *testing.T) {
		surface := &fakeSurface{elide: true, text: "[a](doc:1)"}
		o := NewOverlay(surface, nil, nil)
		if err := o.Render(); err != nil {
			t.Fatal(err)
		}

		surface.text = "x [b](doc:2)"
		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		links := o.Links()
		if len(links) != 1 || links[0].TargetID != 2 {
			t.Errorf("expected new scan to replace table, got %+v", links)
		}
	})

	t.Run("one bad reference does not abort the pass", func(t *testing.T) {
		surface := &fakeSurface{elide: true, text: "[a](doc:1) [b](doc:2)"}
		// Reject the hidden-markup style of the first reference.
		surface.failStyle = &styledRange{ports.StyleHidden, 0, 1}
		o := NewOverlay(surface, nil, nil)

		if err := o.Render(); err != nil {
			t.Fatalf("render must not abort: %v", err)
		}
		links := o.Links()
		if len(links) != 1 || links[0].TargetID != 2 {
			t.Errorf("expected failing reference skipped, got %+v", links)
		}
	})
}

func TestOverlayRewrite(t *testing.T) {
	t.Run("rewrites to visible text with remapped offsets", func(t *testing.T) {
		surface := &fakeSurface{text: "go to [Intro](doc:1) now"}
		o := NewOverlay(surface, nil, nil)

		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		if surface.text != "go to Intro now" {
			t.Errorf("visible text = %q", surface.text)
		}
		want := []LinkRegion{{LabelStart: 6, LabelEnd: 11, TargetID: 1}}
		if got := o.Links(); !reflect.DeepEqual(got, want) {
			t.Errorf("link table = %+v, want %+v", got, want)
		}
	})

	t.Run("second render leaves visible text byte-identical", func(t *testing.T) {
		surface := &fakeSurface{text: "[a](doc:1) mid [b](doc:2)"}
		o := NewOverlay(surface, nil, nil)

		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		visible := surface.text
		table := o.Links()

		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		if surface.text != visible {
			t.Errorf("visible text changed across renders: %q vs %q", surface.text, visible)
		}
		if !reflect.DeepEqual(o.Links(), table) {
			t.Errorf("link table changed across renders")
		}
		if surface.setTexts != 1 {
			t.Errorf("empty rescan must not rewrite content, got %d rewrites", surface.setTexts)
		}
	})

	t.Run("caret inside markup clamps into the label", func(t *testing.T) {
		surface := &fakeSurface{text: "[Intro](doc:1)"}
		surface.view = ports.ViewState{Caret: 9} // inside "(doc:1)"
		o := NewOverlay(surface, nil, nil)

		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		if surface.view.Caret != 5 {
			t.Errorf("caret = %d, want clamped to label end 5", surface.view.Caret)
		}
	})

	t.Run("caret after markup shifts left", func(t *testing.T) {
		surface := &fakeSurface{text: "[a](doc:1) tail"}
		surface.view = ports.ViewState{Caret: 13} // 'a' + ' tail' offset in source
		o := NewOverlay(surface, nil, nil)

		if err := o.Render(); err != nil {
			t.Fatal(err)
		}
		// Source index 13 is 9 markup chars past the label.
		if surface.view.Caret != 4 {
			t.Errorf("caret = %d, want 4", surface.view.Caret)
		}
	})
}

func TestOverlayClick(t *testing.T) {
	var opened []int64
	surface := &fakeSurface{elide: true, text: "[a](doc:7) x [b](doc:9)"}
	o := NewOverlay(surface, func(id int64) { opened = append(opened, id) }, nil)
	if err := o.Render(); err != nil {
		t.Fatal(err)
	}

	if !o.Click(1) {
		t.Error("click inside first label should hit")
	}
	if o.Click(5) {
		t.Error("click on markup should miss")
	}
	if !o.ClickAt(14, 0) {
		t.Error("pointer click inside second label should hit")
	}
	if o.ClickAt(3, 2) {
		t.Error("pointer off the text should miss")
	}
	if !reflect.DeepEqual(opened, []int64{7, 9}) {
		t.Errorf("opened = %v, want [7 9]", opened)
	}

	if !o.Hovering(1) || o.Hovering(5) {
		t.Error("hover feedback should mirror click regions")
	}
}

func TestOverlayReset(t *testing.T) {
	surface := &fakeSurface{elide: true, text: "[a](doc:1)"}
	o := NewOverlay(surface, nil, nil)
	if err := o.Render(); err != nil {
		t.Fatal(err)
	}
	o.Reset()
	if len(o.Links()) != 0 {
		t.Error("reset should drop the link table")
	}

	// After a reset an empty scan stays empty: nothing to retain.
	surface.text = "plain"
	if err := o.Render(); err != nil {
		t.Fatal(err)
	}
	if len(o.Links()) != 0 {
		t.Errorf("expected empty table, got %+v", o.Links())
	}
}
