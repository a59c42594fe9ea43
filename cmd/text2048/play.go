package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/text2048/internal/command"
	"github.com/vovakirdan/text2048/internal/platform/repl"
	"github.com/vovakirdan/text2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Commands:
  move <up|down|left|right>  - Slide every tile
  look                       - Describe the grid again
  score                      - Show the current score
  help                       - List the commands
  quit                       - Give up

On a terminal the game runs in a scrolling prompt (PgUp/PgDn to scroll,
Ctrl+C to leave). When input is piped, commands are read line by line:

  printf 'move left\nmove up\nquit\n' | text2048 play --seed 1

Examples:
  text2048 play
  text2048 play --seed 42
  text2048 play --db ~/.text2048/scores.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return playTerminal()
	}
	return playLines(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

// playTerminal runs one game in the Bubble Tea prompt.
func playTerminal() error {
	// Log lines on stderr would tear through the prompt while it is drawn.
	sessionLogger := logger.WithPrefix("game")
	sessionLogger.SetLevel(log.WarnLevel)

	session, release := startSession(sessionLogger)
	defer release()

	cfg := runtimeConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.Width = w
		cfg.Height = h
	}

	if err := tui.Run(session, cfg); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}

// playLines runs one game reading a command per line from in.
func playLines(ctx context.Context, in io.Reader, out io.Writer) error {
	session, release := startSession(logger.WithPrefix("game"))
	defer release()

	if err := repl.Run(ctx, in, out, session, runtimeConfig().Prompt); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}

// startSession opens the score store and registers one game. The returned
// func forgets the game and closes the store.
func startSession(l *log.Logger) (*command.Session, func()) {
	store := openStore()
	sessions := newRegistry(store, l)
	id, session := sessions.Create()

	return session, func() {
		sessions.Remove(id)
		if store != nil {
			store.Close()
		}
	}
}
