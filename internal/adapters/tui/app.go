package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"funkit/internal/adapters/tui/styles"
	"funkit/internal/adapters/tui/views"
	"funkit/internal/application"
	"funkit/internal/config"
	"funkit/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewDocument
	ViewHelp
)

// App is the main TUI application model
type App struct {
	store ports.DocumentStore

	state    ViewState
	browser  *views.BrowserModel
	document *views.DocumentModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.DocumentStore, cfg config.Config, logger *log.Logger) *App {
	graph := application.NewDeriver(store)
	linkStyle := styles.Link(cfg.LinkColor, cfg.LinkUnderline)

	return &App{
		store:    store,
		state:    ViewBrowser,
		browser:  views.NewBrowserModel(graph),
		document: views.NewDocumentModel(store, linkStyle, logger),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.document.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.OpenDocumentMsg:
		if err := a.document.Load(msg.ID); err != nil {
			a.state = ViewBrowser
			a.browser.SetMessage(err.Error(), true)
			return a, nil
		}
		a.state = ViewDocument
		return a, a.document.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewDocument:
		_, cmd = a.document.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewDocument:
		return a.document.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
