package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"funkit/internal/adapters/tui/styles"
	"funkit/internal/application"
	"funkit/internal/domain"
)

// BrowserKeyMap defines key bindings for the tree browser view
type BrowserKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	Jump        key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	ToggleIDs   key.Binding
	ToggleNums  key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Jump: key.NewBinding(
		key.WithKeys("/", "g"),
		key.WithHelp("/", "jump to id"),
	),
	ExpandAll: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "expand all"),
	),
	CollapseAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "collapse all"),
	),
	ToggleIDs: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "toggle ids"),
	),
	ToggleNums: key.NewBinding(
		key.WithKeys("#"),
		key.WithHelp("#", "toggle numbers"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// expandAllDepth bounds how deep "expand all" loads; a reference graph can
// be unbounded, a visual expand-all cannot.
const expandAllDepth = 3

// BrowserModel is the model for the lazy tree browser view. All controller
// calls happen on the update goroutine; only the roots scan, which touches
// the whole corpus, runs as a command.
type BrowserModel struct {
	ViewState

	graph *application.Deriver
	ctrl  *application.Controller
	flat  []*application.TreeItem

	cursor      int
	showIDs     bool
	showNumbers bool

	jumping    bool
	jump       textinput.Model
	directOpen *int64
}

// NewBrowserModel creates a new browser model over a derived graph.
func NewBrowserModel(graph *application.Deriver) *BrowserModel {
	jump := textinput.New()
	jump.Placeholder = "Doc 12"
	jump.CharLimit = 32

	m := &BrowserModel{
		graph:       graph,
		showNumbers: true,
		jump:        jump,
	}
	m.ctrl = application.NewController(graph, func(id int64) {
		m.directOpen = &id
	})
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadRoots
}

type rootsMsg struct {
	ids []int64
	err error
}

func (m *BrowserModel) loadRoots() tea.Msg {
	ids, err := m.graph.Roots(context.Background())
	if err != nil {
		// A failed scan degrades to listing everything, never to an
		// empty tree.
		ids, fbErr := m.graph.AllIDs()
		if fbErr != nil {
			return errMsg{err}
		}
		return rootsMsg{ids: ids, err: err}
	}
	return rootsMsg{ids: ids}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case rootsMsg:
		m.ctrl.SetRoots(msg.ids)
		m.refreshFlat()
		if msg.err != nil {
			m.SetMessage(fmt.Sprintf("roots scan failed, showing all documents: %v", msg.err), true)
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case statusMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case tea.KeyMsg:
		if m.jumping {
			return m.updateJump(msg)
		}

		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.flat)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			return m, m.collapseSelected()

		case key.Matches(msg, BrowserKeys.Right):
			return m, m.expandSelected()

		case key.Matches(msg, BrowserKeys.Enter):
			if it := m.selectedItem(); it != nil && !it.Stub {
				id := it.TargetID
				return m, func() tea.Msg {
					return OpenDocumentMsg{ID: id}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Jump):
			m.jumping = true
			m.jump.SetValue("")
			m.jump.Focus()
			return m, textinput.Blink

		case key.Matches(msg, BrowserKeys.ExpandAll):
			if err := m.ctrl.ExpandToDepth(expandAllDepth); err != nil {
				m.SetMessage(err.Error(), true)
			}
			m.refreshFlat()
			return m, nil

		case key.Matches(msg, BrowserKeys.CollapseAll):
			for _, root := range m.ctrl.Roots() {
				m.ctrl.Collapse(root.Handle)
			}
			m.refreshFlat()
			return m, nil

		case key.Matches(msg, BrowserKeys.ToggleIDs):
			m.showIDs = !m.showIDs
			return m, nil

		case key.Matches(msg, BrowserKeys.ToggleNums):
			m.showNumbers = !m.showNumbers
			return m, nil

		case key.Matches(msg, BrowserKeys.Refresh):
			m.graph.Refresh()
			return m, m.loadRoots

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.jumping = false
		m.jump.Blur()
		return m, nil

	case "enter":
		m.jumping = false
		m.jump.Blur()
		return m, m.jumpTo(m.jump.Value())
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m *BrowserModel) jumpTo(raw string) tea.Cmd {
	id, ok := domain.ParseDocID(raw)
	if !ok {
		m.SetMessage(fmt.Sprintf("not a document id: %q", raw), true)
		return nil
	}

	m.directOpen = nil
	res, err := m.ctrl.JumpTo(context.Background(), id)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	m.refreshFlat()

	if res == application.JumpOpenedDirectly && m.directOpen != nil {
		target := *m.directOpen
		m.SetMessage(fmt.Sprintf("no ancestry for %d, opening directly", id), false)
		return func() tea.Msg {
			return OpenDocumentMsg{ID: target}
		}
	}

	m.moveCursorToSelected()
	return nil
}

func (m *BrowserModel) expandSelected() tea.Cmd {
	it := m.selectedItem()
	if it == nil || it.Stub {
		return nil
	}
	if err := m.ctrl.Expand(it.Handle); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	m.refreshFlat()
	return nil
}

func (m *BrowserModel) collapseSelected() tea.Cmd {
	it := m.selectedItem()
	if it == nil {
		return nil
	}
	if it.Expanded {
		m.ctrl.Collapse(it.Handle)
		m.refreshFlat()
		return nil
	}
	// Move to parent
	if parent := it.Parent(); parent != nil {
		for i, n := range m.flat {
			if n == parent {
				m.cursor = i
				break
			}
		}
	}
	return nil
}

func (m *BrowserModel) selectedItem() *application.TreeItem {
	if m.cursor >= 0 && m.cursor < len(m.flat) {
		return m.flat[m.cursor]
	}
	return nil
}

func (m *BrowserModel) refreshFlat() {
	m.flat = m.ctrl.Flatten()
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowserModel) moveCursorToSelected() {
	sel := m.ctrl.Selected()
	if sel == nil {
		return
	}
	for i, n := range m.flat {
		if n == sel {
			m.cursor = i
			return
		}
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("funkit"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("document graph browser"))
	b.WriteString("\n\n")

	if len(m.flat) == 0 {
		b.WriteString(styles.MutedText.Render("Loading..."))
		b.WriteString("\n")
	}

	for i, it := range m.flat {
		b.WriteString(m.renderItem(it, i == m.cursor))
		b.WriteString("\n")
	}

	if m.jumping {
		b.WriteString("\n")
		b.WriteString(styles.InputLabel.Render("Jump to: "))
		b.WriteString(m.jump.View())
	}

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

func (m *BrowserModel) renderItem(it *application.TreeItem, selected bool) string {
	indent := strings.Repeat("  ", it.Depth())

	var prefix string
	switch {
	case it.Stub:
		prefix = styles.TreeLeaf
	case it.Expanded:
		prefix = styles.TreeExpanded
	case it.State == application.LoadLoaded && len(it.Children()) == 0:
		prefix = styles.TreeLeaf
	default:
		prefix = styles.TreeCollapsed
	}

	var parts []string
	if m.showNumbers && it.Number != "" {
		parts = append(parts, styles.NodeNumber.Render(it.Number))
	}
	if m.showIDs && !it.Stub {
		parts = append(parts, styles.NodeID.Render(fmt.Sprintf("#%d", it.TargetID)))
	}

	title := it.Title
	switch {
	case selected:
		parts = append(parts, styles.NodeSelected.Render(title))
	case it.Stub:
		parts = append(parts, styles.NodeStub.Render(title))
	case it.Missing:
		parts = append(parts, styles.NodeMissing.Render(title))
	default:
		parts = append(parts, styles.NodeTitle.Render(title))
	}

	return indent + styles.TreeBranch.Render(prefix) + strings.Join(parts, " ")
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"h/l", "collapse/expand"},
		{"enter", "open"},
		{"/", "jump"},
		{"r", "refresh"},
		{"?", "help"},
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
