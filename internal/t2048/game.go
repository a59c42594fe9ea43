// Package t2048 implements the 2048 sliding-tile puzzle engine: line
// reduction, moves, tile spawning and end-of-game detection.
package t2048

import "math/rand"

// Game holds one board and its score. It is not safe for concurrent use.
type Game struct {
	board   Board
	score   int
	moves   int
	spawner *Spawner
}

// NewGame creates a game with an empty board and two spawned tiles.
func NewGame(rng Rand) *Game {
	g := &Game{spawner: NewSpawner(rng)}
	g.spawner.Spawn(&g.board)
	g.spawner.Spawn(&g.board)
	return g
}

// NewSeeded creates a game whose spawns are driven by the given seed.
func NewSeeded(seed int64) *Game {
	return NewGame(rand.New(rand.NewSource(seed)))
}

// NewGameFromBoard creates a game in an arbitrary position with zero score.
// No tiles are spawned.
func NewGameFromBoard(board Board, rng Rand) *Game {
	return &Game{board: board, spawner: NewSpawner(rng)}
}

// Move slides the board in dir. When at least one line changed, the score
// is updated and exactly one tile is spawned. Returns whether the board changed.
// An invalid direction is ignored and reported as no change.
func (g *Game) Move(dir Direction) bool {
	newBoard, scoreGained, changed := Slide(g.board, dir)
	if !changed {
		return false
	}

	g.board = newBoard
	g.score += scoreGained
	g.moves++
	g.spawner.Spawn(&g.board)

	return true
}

// Score returns the accumulated score.
func (g *Game) Score() int {
	return g.score
}

// Moves returns the number of moves that changed the board.
func (g *Game) Moves() int {
	return g.moves
}

// Board returns a copy of the board.
func (g *Game) Board() Board {
	return g.board
}

// MaxTile returns the highest tile on the board.
func (g *Game) MaxTile() int {
	return MaxTile(g.board)
}

// IsGameOver reports whether no move can change the board.
func (g *Game) IsGameOver() bool {
	return IsGameOver(g.board)
}

// IsWin reports whether the board holds a WinTile.
func (g *Game) IsWin() bool {
	return IsWin(g.board)
}
