package t2048

// Spawn4Prob is the probability that a spawned tile is a 4 instead of a 2.
const Spawn4Prob = 0.10

// Rand is the randomness a Spawner draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Spawner places new tiles on empty cells.
type Spawner struct {
	rng Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Spawn puts a 2 (90%) or a 4 (10%) on a uniformly chosen empty cell.
// It does nothing on a full board and reports whether a tile was placed.
func (s *Spawner) Spawn(board *Board) (Cell, bool) {
	emptyCells := EmptyCells(*board)
	if len(emptyCells) == 0 {
		return Cell{}, false
	}

	cell := emptyCells[s.rng.Intn(len(emptyCells))]

	value := 2
	if s.rng.Float64() < Spawn4Prob {
		value = 4
	}

	board[cell.Row][cell.Col] = value
	return cell, true
}
