package command

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/text2048/internal/t2048"
)

// Player-facing replies.
const (
	MsgWhat    = "What?"
	MsgNothing = "That did nothing. What are you doing?"
	MsgPanic   = "You panic as expected."
	MsgWin     = "You win! Now go outside."
	MsgOver    = "The game is over."
	msgGaveUp  = "You gave up. Your final score was %d."
	msgLost    = "You lost. Your final score was %d."
	msgScore   = "Your score is %d."
)

const helpText = `Commands:
  move <up|down|left|right>  slide every tile in that direction
  look                       describe the tiles on the grid
  score                      show your score
  panic                      panic
  quit                       give up`

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// Result summarizes a finished game.
type Result struct {
	SessionID string
	Outcome   Outcome
	Score     int
	MaxTile   int
	Moves     int
}

// Recorder receives the result of every finished game.
type Recorder interface {
	RecordResult(Result) error
}

// Reply is the answer to one line of input.
type Reply struct {
	Text string
	// Stop is set once the game has ended; the caller should stop reading.
	Stop bool
}

// Session owns one game and serializes the commands issued against it.
type Session struct {
	mu       sync.Mutex
	id       string
	game     *t2048.Game
	recorder Recorder
	logger   *log.Logger
	outcome  Outcome
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder records finished games.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithLogger sets the logger used for session events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithID sets the session identifier used in logs and results.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession wraps a game.
func NewSession(game *t2048.Game, opts ...Option) *Session {
	s := &Session{game: game}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns the current game state.
func (s *Session) Snapshot() t2048.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Look describes the board.
func (s *Session) Look() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Render()
}

// Done reports whether the game has ended, and how.
func (s *Session) Done() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome, s.outcome != ""
}

// Process runs one line of input.
func (s *Session) Process(line string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome != "" {
		return Reply{Text: MsgOver, Stop: true}
	}

	cmd := Parse(line)
	switch cmd.Verb {
	case VerbQuit:
		return s.finish(OutcomeQuit, fmt.Sprintf(msgGaveUp, s.game.Score()))
	case VerbMove:
		return s.move(cmd.Arg(0))
	case VerbPanic:
		return Reply{Text: MsgPanic}
	case VerbLook:
		return Reply{Text: s.game.Render()}
	case VerbScore:
		return Reply{Text: fmt.Sprintf(msgScore, s.game.Score())}
	case VerbHelp:
		return Reply{Text: Help()}
	}
	return Reply{Text: MsgWhat}
}

// Move applies a direction directly, bypassing text parsing.
func (s *Session) Move(dir t2048.Direction) Reply {
	return s.Process(string(VerbMove) + " " + dir.String())
}

func (s *Session) move(arg string) Reply {
	dir, err := t2048.ParseDirection(arg)
	if err != nil {
		return Reply{Text: MsgWhat}
	}

	if !s.game.Move(dir) {
		return Reply{Text: MsgNothing}
	}

	// Win is checked first: reaching 2048 on a stuck board is still a win.
	if s.game.IsWin() {
		return s.finish(OutcomeWon, MsgWin)
	}
	if s.game.IsGameOver() {
		return s.finish(OutcomeLost, fmt.Sprintf(msgLost, s.game.Score()))
	}
	return Reply{Text: s.game.Render()}
}

func (s *Session) finish(outcome Outcome, text string) Reply {
	s.outcome = outcome

	result := Result{
		SessionID: s.id,
		Outcome:   outcome,
		Score:     s.game.Score(),
		MaxTile:   s.game.MaxTile(),
		Moves:     s.game.Moves(),
	}
	s.logger.Info("game finished",
		"session", s.id,
		"outcome", outcome,
		"score", result.Score,
		"moves", result.Moves,
	)

	if s.recorder != nil {
		if err := s.recorder.RecordResult(result); err != nil {
			s.logger.Warn("could not record result", "session", s.id, "error", err)
		}
	}

	return Reply{Text: text, Stop: true}
}

// Help returns the command summary.
func Help() string {
	return strings.TrimSpace(helpText)
}
