// Package repl runs a game as a plain read-print loop over any reader and
// writer: pipes, scripts, or SSH sessions without a terminal.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/vovakirdan/text2048/internal/command"
)

// Run reads one command per line from in and writes each reply to out,
// preceded by prompt. It returns when the game ends, in reaches EOF, or ctx
// is cancelled. Reaching EOF is not an error.
func Run(ctx context.Context, in io.Reader, out io.Writer, session *command.Session, prompt string) error {
	if _, err := fmt.Fprintln(out, session.Look()); err != nil {
		return fmt.Errorf("repl: write: %w", err)
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := io.WriteString(out, prompt); err != nil {
			return fmt.Errorf("repl: write: %w", err)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("repl: read: %w", err)
			}
			fmt.Fprintln(out)
			return nil
		}

		reply := session.Process(scanner.Text())
		if _, err := fmt.Fprintln(out, reply.Text); err != nil {
			return fmt.Errorf("repl: write: %w", err)
		}
		if reply.Stop {
			return nil
		}
	}
}
