package t2048

import (
	"fmt"
	"strings"
)

const rowLetters = "ABCD"

// CellName returns the player-facing name of a cell, e.g. "A1" for the top-left.
func CellName(row, col int) string {
	return fmt.Sprintf("%c%d", rowLetters[row], col+1)
}

// Render describes every tile on the board, one per line, scanning rows top
// to bottom and columns left to right.
func (g *Game) Render() string {
	return RenderBoard(g.board)
}

// RenderBoard is Render for a bare board.
func RenderBoard(board Board) string {
	var sb strings.Builder
	sb.WriteString("You see several tiles on the grid.")
	for r := range BoardSize {
		for c := range BoardSize {
			if board[r][c] == 0 {
				continue
			}
			fmt.Fprintf(&sb, "\nThe tile %s holds the number %d.", CellName(r, c), board[r][c])
		}
	}
	return sb.String()
}
