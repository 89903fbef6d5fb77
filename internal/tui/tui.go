// Package tui is the interactive search screen started by running sift
// without a subcommand.
package tui

import (
	"sift/internal/tools"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents which screen is active.
type ViewState int

const (
	ViewWelcome ViewState = iota
	ViewSearch
)

// Config holds configuration passed from the CLI layer.
type Config struct {
	Root      string
	GrepLimit int
	GlobLimit int
	ReadLimit int
	Service   *tools.Service
}

// Model is the top-level Bubble Tea model.
type Model struct {
	state  ViewState
	config Config
	width  int
	height int

	welcome welcomeModel
	search  searchModel
}

// New creates a new TUI model with the given config.
func New(cfg Config) Model {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Service == nil {
		cfg.Service = &tools.Service{}
	}
	return Model{
		state:   ViewWelcome,
		config:  cfg,
		welcome: newWelcomeModel(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.welcome.spinner.Tick, checkRoot(m.config.Root))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == ViewSearch {
			var c tea.Cmd
			m.search, c = m.search.Update(msg)
			return m, c
		}
		return m, nil

	case tea.KeyMsg:
		// Global quit.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state != ViewSearch {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd

	switch m.state {
	case ViewWelcome:
		m.welcome, cmd = m.welcome.Update(msg)
		if cmd != nil {
			return m, cmd
		}
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter && m.welcome.ready && m.welcome.err == nil {
			m.transitionToSearch()
		}

	case ViewSearch:
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) transitionToSearch() {
	m.search = newSearchModel(m.config)
	m.search.initViewport(m.width, m.height)
	m.state = ViewSearch
}

func (m Model) View() string {
	switch m.state {
	case ViewWelcome:
		return m.welcome.View(m.width, m.height)
	case ViewSearch:
		return m.search.View(m.width, m.height)
	}
	return ""
}

// Run starts the TUI program.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
