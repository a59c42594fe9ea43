// Package tui provides the Bubble Tea prompt for playing in a terminal,
// locally or over SSH via Wish.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/text2048/internal/command"
	"github.com/vovakirdan/text2048/internal/core"
)

// Lines reserved below the transcript: input line and help line.
const chromeHeight = 2

// Model is the Bubble Tea model for the command prompt.
type Model struct {
	session    *command.Session
	config     core.RuntimeConfig
	input      textinput.Model
	viewport   viewport.Model
	help       help.Model
	keys       KeyMap
	transcript []entry
	stopped    bool // Game ended; the program is quitting
	quitting   bool // Player left with ctrl+c
}

// NewModel creates a prompt model driving the given session.
func NewModel(session *command.Session, cfg core.RuntimeConfig) Model {
	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.Placeholder = "move left"
	ti.CharLimit = 64
	ti.Focus()

	vp := viewport.New(cfg.Width, max(cfg.Height-chromeHeight, 1))

	m := Model{
		session:  session,
		config:   cfg,
		input:    ti,
		viewport: vp,
		help:     help.New(),
		keys:     DefaultKeyMap(),
		transcript: []entry{
			{kind: entryTitle, text: "2048. Type 'help' for commands."},
			{kind: entryReply, text: session.Look()},
		},
	}
	m.refresh()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.config.Width = msg.Width
		m.config.Height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the typed line to the session.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	reply := m.session.Process(line)

	kind := entryReply
	switch {
	case reply.Stop && reply.Text == command.MsgWin:
		kind = entryWin
	case reply.Stop:
		kind = entryEnd
	}

	m.transcript = append(m.transcript,
		entry{kind: entryEcho, text: m.config.Prompt + line},
		entry{kind: kind, text: reply.Text},
	)
	m.refresh()

	if reply.Stop {
		m.stopped = true
		m.input.Blur()
		return m, tea.Quit
	}
	return m, nil
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	m.viewport.SetContent(renderTranscript(m.transcript))
	m.viewport.GotoBottom()
}

// Stopped reports whether the game ended.
func (m Model) Stopped() bool {
	return m.stopped
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.stopped {
		// Leave the transcript on screen after the program exits.
		return renderTranscript(m.transcript) + "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.input.View(),
		m.help.View(m.keys),
	)
}

// Run starts the Bubble Tea program for a local terminal.
func Run(session *command.Session, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewModel(session, cfg))
	_, err := p.Run()
	return err
}
