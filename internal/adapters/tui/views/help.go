package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"funkit/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("funkit Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("document graph browser"))
	b.WriteString("\n\n")

	// Tree section
	b.WriteString(styles.InputLabel.Render("Tree"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / ←", "Collapse / go to parent"))
	b.WriteString(helpLine("l / →", "Expand"))
	b.WriteString(helpLine("Enter", "Open document"))
	b.WriteString(helpLine("E / C", "Expand all / collapse all"))
	b.WriteString(helpLine("/ or g", "Jump to id (\"12\" or \"Doc 12\")"))
	b.WriteString(helpLine("r", "Rescan the store"))
	b.WriteString(helpLine("i / #", "Toggle ids / numbers"))
	b.WriteString("\n")

	// Document section
	b.WriteString(styles.InputLabel.Render("Document"))
	b.WriteString("\n")
	b.WriteString(helpLine("Tab", "Cycle links"))
	b.WriteString(helpLine("Enter / click", "Follow link"))
	b.WriteString(helpLine("c", "Copy [title](doc:ID) markup"))
	b.WriteString(helpLine("Esc", "Back to tree"))
	b.WriteString("\n")

	// General section
	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	// Markup info
	b.WriteString(styles.InputLabel.Render("Reference Markup"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  [label](doc:ID) in a document body links to document ID."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  The tree shows each document's outgoing references."))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
