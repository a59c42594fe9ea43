package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// BoardSize is the board dimension. It is fixed.
const BoardSize = 4

// WinTile is the tile value that wins the game.
const WinTile = 2048

// Board represents a 4x4 game board. Row 0 is the top, column 0 the left.
type Board [BoardSize][BoardSize]int

// Line is one row or column of the board.
type Line [BoardSize]int

// Directions lists every valid direction in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the command word for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a command word into a Direction.
// Matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// axis describes how a direction walks the board: which lines it takes
// and whether they are reduced from the far end.
type axis struct {
	columns  bool
	reversed bool
}

func axisOf(dir Direction) axis {
	switch dir {
	case DirUp:
		return axis{columns: true}
	case DirDown:
		return axis{columns: true, reversed: true}
	case DirRight:
		return axis{reversed: true}
	default:
		return axis{}
	}
}

// line extracts line i of the board as seen by the axis.
func (a axis) line(board *Board, i int) Line {
	var l Line
	for j := range BoardSize {
		k := j
		if a.reversed {
			k = BoardSize - 1 - j
		}
		if a.columns {
			l[j] = board[k][i]
		} else {
			l[j] = board[i][k]
		}
	}
	return l
}

// store writes l back as line i, undoing any reversal.
func (a axis) store(board *Board, i int, l Line) {
	for j := range BoardSize {
		k := j
		if a.reversed {
			k = BoardSize - 1 - j
		}
		if a.columns {
			board[k][i] = l[j]
		} else {
			board[i][k] = l[j]
		}
	}
}

// Reduce compacts a line toward index 0 and merges equal neighbours once.
// A tile produced by a merge does not merge again in the same call.
// Returns the new line, whether it differs from the input, and the score
// gained (each merge of two v tiles adds 2v).
func Reduce(in Line) (out Line, changed bool, score int) {
	// Compact
	n := 0
	for _, v := range in {
		if v != 0 {
			out[n] = v
			n++
		}
	}

	// Merge, single left-to-right sweep
	for i := 0; i < BoardSize-1; i++ {
		if out[i] == 0 || out[i] != out[i+1] {
			continue
		}
		out[i] *= 2
		score += out[i]
		for j := i + 1; j < BoardSize-1; j++ {
			out[j] = out[j+1]
		}
		out[BoardSize-1] = 0
	}

	return out, out != in, score
}

// Slide performs a move in the given direction on a copy of the board.
// Returns the new board, score gained, and whether the board changed.
// An invalid direction leaves the board as is.
func Slide(board Board, dir Direction) (Board, int, bool) {
	if !dir.Valid() {
		return board, 0, false
	}

	a := axisOf(dir)
	totalScore := 0
	changed := false

	for i := range BoardSize {
		newLine, lineChanged, score := Reduce(a.line(&board, i))
		a.store(&board, i, newLine)
		totalScore += score
		changed = changed || lineChanged
	}

	return board, totalScore, changed
}

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for r := range BoardSize {
		for c := range BoardSize {
			if board[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// TileCount returns the number of non-empty cells.
func TileCount(board Board) int {
	return BoardSize*BoardSize - len(EmptyCells(board))
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if board[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
// Only the right and lower neighbours are checked; adjacency is symmetric.
func HasPossibleMerge(board Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			val := board[r][c]
			if val == 0 {
				continue
			}
			if c < BoardSize-1 && board[r][c+1] == val {
				return true
			}
			if r < BoardSize-1 && board[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if board[r][c] > maxVal {
				maxVal = board[r][c]
			}
		}
	}
	return maxVal
}

// IsGameOver returns true if the board is full and no neighbours are equal.
func IsGameOver(board Board) bool {
	return !HasEmptyCell(board) && !HasPossibleMerge(board)
}

// IsWin returns true if any tile has reached WinTile.
func IsWin(board Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if board[r][c] == WinTile {
				return true
			}
		}
	}
	return false
}
