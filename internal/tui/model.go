// Package tui hosts the interactive front end: a bubbletea model that feeds
// key and timer events to the application state machine and draws frames
// from its state.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"wiper/internal/app"
	"wiper/internal/log"
	"wiper/internal/tui/messages"
	"wiper/internal/tui/styles"
	"wiper/internal/tui/views"
	"wiper/pkg/types"
)

// Model implements tea.Model around the state machine.
type Model struct {
	machine  *app.Machine
	layout   *views.Layout
	sized    bool
	quitting bool
	err      error
	onQuit   func()
}

// NewModel creates the bubbletea model for machine.
func NewModel(machine *app.Machine, theme styles.Theme) *Model {
	return &Model{
		machine: machine,
		layout:  views.NewLayout(theme),
	}
}

// OnQuit registers fn to run when the model decides to exit, before the
// program has torn down. It must not block.
func (m *Model) OnQuit(fn func()) {
	m.onQuit = fn
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		outcome, cmd := m.machine.HandleKey(types.Press(msg))
		if outcome == app.Exit {
			return m, m.quit(nil)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		if err := views.CheckSize(msg.Width, msg.Height); err != nil {
			log.LogError(err, "cannot draw")
			return m, m.quit(err)
		}
		m.layout.Resize(msg.Width, msg.Height)
		m.sized = true

	case messages.TickMsg:
		m.machine.Tick()

	case messages.DiskChangedMsg:
		m.machine.MarkStale()
	}

	return m, nil
}

func (m *Model) quit(err error) tea.Cmd {
	m.quitting = true
	m.err = err
	if m.onQuit != nil {
		m.onQuit()
	}
	return tea.Quit
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting || !m.sized {
		return ""
	}
	return m.layout.RenderMainView(m.machine)
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}
