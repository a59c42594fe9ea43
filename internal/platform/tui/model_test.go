package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/text2048/internal/command"
	"github.com/vovakirdan/text2048/internal/core"
	"github.com/vovakirdan/text2048/internal/t2048"
)

type fixedRand struct{}

func (fixedRand) Intn(int) int      { return 0 }
func (fixedRand) Float64() float64 { return 0.5 }

func newTestModel(board t2048.Board) Model {
	game := t2048.NewGameFromBoard(board, fixedRand{})
	session := command.NewSession(game, command.WithLogger(log.New(io.Discard)))
	return NewModel(session, core.DefaultConfig())
}

func send(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModelStartsWithBoard(t *testing.T) {
	m := newTestModel(t2048.Board{{2}})

	require.Len(t, m.transcript, 2)
	assert.Equal(t, "You see several tiles on the grid.\nThe tile A1 holds the number 2.", m.transcript[1].text)
	assert.Contains(t, m.View(), "The tile A1 holds the number 2.")
}

func TestModelSubmitMove(t *testing.T) {
	m := newTestModel(t2048.Board{{2, 2, 0, 0}})

	m, cmd := send(t, m, "move left")
	assert.Nil(t, cmd)
	assert.False(t, m.Stopped())
	assert.Equal(t, "", m.input.Value())

	n := len(m.transcript)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, entry{kind: entryEcho, text: "> move left"}, m.transcript[n-2])
	assert.Contains(t, m.transcript[n-1].text, "The tile A1 holds the number 4.")
}

func TestModelQuitStops(t *testing.T) {
	m := newTestModel(t2048.Board{{2}})

	m, cmd := send(t, m, "quit")
	require.NotNil(t, cmd)
	assert.True(t, m.Stopped())

	last := m.transcript[len(m.transcript)-1]
	assert.Equal(t, entryEnd, last.kind)
	assert.Equal(t, "You gave up. Your final score was 0.", last.text)
	assert.Contains(t, m.View(), "You gave up.")
}

func TestModelCtrlCLeaves(t *testing.T) {
	m := newTestModel(t2048.Board{{2}})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t2048.Board{{2}})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model := next.(Model)
	assert.Equal(t, 100, model.viewport.Width)
	assert.Equal(t, 40-chromeHeight, model.viewport.Height)
}
