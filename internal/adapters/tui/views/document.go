package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"funkit/internal/adapters/tui/styles"
	"funkit/internal/application"
	"funkit/internal/domain"
	"funkit/internal/ports"
)

// DocumentKeyMap defines key bindings for the document view
type DocumentKeyMap struct {
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	NextLink key.Binding
	Follow   key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

var DocumentKeys = DocumentKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	NextLink: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next link"),
	),
	Follow: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "follow link"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy link markup"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Layout offsets used to translate mouse positions into content coordinates:
// the app frame pads (1, 2) and the header takes three lines.
const (
	contentLeft = 2
	contentTop  = 4
)

// DocumentModel renders one document with its reference markup rewritten
// into clickable labels.
type DocumentModel struct {
	ViewState

	store   ports.DocumentStore
	surface *TextSurface
	overlay *application.Overlay

	doc        *domain.Document
	offset     int
	linkCursor int
	pending    *int64
}

// NewDocumentModel creates a document view reading from store.
func NewDocumentModel(store ports.DocumentStore, linkStyle lipgloss.Style, logger *log.Logger) *DocumentModel {
	m := &DocumentModel{
		store:   store,
		surface: NewTextSurface(linkStyle),
	}
	m.overlay = application.NewOverlay(m.surface, func(id int64) {
		m.pending = &id
	}, logger)
	return m
}

// Init initializes the document view
func (m *DocumentModel) Init() tea.Cmd {
	return nil
}

// Load fetches a document and renders its links.
func (m *DocumentModel) Load(id int64) error {
	doc, err := m.store.Get(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: document %d", application.ErrNotFound, id)
	}

	m.doc = doc
	m.offset = 0
	m.linkCursor = 0
	m.ClearMessage()

	body := doc.Body
	if doc.IsBinary() {
		body = doc.Preview()
	}
	if err := m.surface.SetText(body); err != nil {
		return err
	}
	m.overlay.Reset()
	return m.overlay.Render()
}

// Update handles messages for the document view
func (m *DocumentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.pending = nil
			if m.overlay.ClickAt(msg.X-contentLeft, msg.Y-contentTop+m.offset) {
				return m, m.openPending()
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DocumentKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, DocumentKeys.Back):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, DocumentKeys.Up):
			if m.offset > 0 {
				m.offset--
			}
			return m, nil

		case key.Matches(msg, DocumentKeys.Down):
			if m.offset < m.maxOffset() {
				m.offset++
			}
			return m, nil

		case key.Matches(msg, DocumentKeys.NextLink):
			m.cycleLink()
			return m, nil

		case key.Matches(msg, DocumentKeys.Follow):
			return m, m.followLink()

		case key.Matches(msg, DocumentKeys.Copy):
			return m, m.copyMarkup()
		}
	}

	return m, nil
}

func (m *DocumentModel) cycleLink() {
	links := m.overlay.Links()
	if len(links) == 0 {
		m.SetMessage("no links in this document", false)
		return
	}
	m.linkCursor = (m.linkCursor + 1) % len(links)
	l := links[m.linkCursor]
	m.SetMessage(fmt.Sprintf("link %d/%d → document %d", m.linkCursor+1, len(links), l.TargetID), false)
}

func (m *DocumentModel) followLink() tea.Cmd {
	links := m.overlay.Links()
	if len(links) == 0 {
		return nil
	}
	if m.linkCursor >= len(links) {
		m.linkCursor = 0
	}
	m.pending = nil
	if m.overlay.Click(links[m.linkCursor].LabelStart) {
		return m.openPending()
	}
	return nil
}

func (m *DocumentModel) openPending() tea.Cmd {
	if m.pending == nil {
		return nil
	}
	id := *m.pending
	m.pending = nil
	return func() tea.Msg {
		return OpenDocumentMsg{ID: id}
	}
}

func (m *DocumentModel) copyMarkup() tea.Cmd {
	if m.doc == nil {
		return nil
	}
	markup := fmt.Sprintf("[%s](doc:%d)", m.doc.DisplayTitle(), m.doc.ID)
	if err := clipboard.WriteAll(markup); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	m.SetMessage(fmt.Sprintf("copied %s", markup), false)
	return nil
}

func (m *DocumentModel) maxOffset() int {
	lines := strings.Count(m.surface.Text(), "\n") + 1
	visible := m.contentHeight()
	if lines <= visible {
		return 0
	}
	return lines - visible
}

func (m *DocumentModel) contentHeight() int {
	h := m.Height - contentTop - 4 // frame, status and help lines
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the document view
func (m *DocumentModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("funkit"))
	b.WriteString("\n")
	if m.doc != nil {
		b.WriteString(styles.InputLabel.Render(fmt.Sprintf("#%d %s", m.doc.ID, m.doc.DisplayTitle())))
	}
	b.WriteString("\n\n")

	lines := strings.Split(m.surface.Render(), "\n")
	end := m.offset + m.contentHeight()
	if end > len(lines) {
		end = len(lines)
	}
	start := m.offset
	if start > len(lines) {
		start = len(lines)
	}
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n")

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *DocumentModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "scroll"},
		{"tab", "next link"},
		{"enter", "follow"},
		{"c", "copy markup"},
		{"esc", "back"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}
