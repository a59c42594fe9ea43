// Package command turns lines of player text into moves on a game and
// produces the replies shown to the player.
package command

import "strings"

// Verb identifies a player command.
type Verb string

const (
	VerbNone  Verb = ""
	VerbQuit  Verb = "quit"
	VerbMove  Verb = "move"
	VerbPanic Verb = "panic"
	VerbLook  Verb = "look"
	VerbScore Verb = "score"
	VerbHelp  Verb = "help"
)

// Command is a tokenized line of input.
type Command struct {
	Verb Verb
	Args []string
}

// Parse lowercases a line and splits it on whitespace. The first token is the
// verb; unknown verbs are kept as-is so the dispatcher can reject them.
func Parse(line string) Command {
	tokens := strings.Fields(strings.ToLower(line))
	if len(tokens) == 0 {
		return Command{}
	}
	return Command{Verb: Verb(tokens[0]), Args: tokens[1:]}
}

// Arg returns the i-th argument or "" when it is missing.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
