package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateWin      GameStateType = "win"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the observable game state for transports and tests.
type Snapshot struct {
	Board   Board         `json:"board"`
	Score   int           `json:"score"`
	Moves   int           `json:"moves"`
	MaxTile int           `json:"max_tile"`
	State   GameStateType `json:"state"`
}

// Snapshot returns the current game snapshot. A win is reported even when
// the board is also stuck.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.IsWin():
		state = StateWin
	case g.IsGameOver():
		state = StateGameOver
	}

	return Snapshot{
		Board:   g.board,
		Score:   g.score,
		Moves:   g.moves,
		MaxTile: MaxTile(g.board),
		State:   state,
	}
}
