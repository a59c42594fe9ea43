package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

// fixedRand always picks the same empty-cell index and tile roll.
type fixedRand struct {
	idx  int
	roll float64
}

func (r *fixedRand) Intn(n int) int {
	if r.idx >= n {
		return n - 1
	}
	return r.idx
}

func (r *fixedRand) Float64() float64 {
	return r.roll
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name     string
		input    Line
		expected Line
		changed  bool
		score    int
	}{
		{
			name:     "simple merge",
			input:    Line{2, 2, 0, 0},
			expected: Line{4, 0, 0, 0},
			changed:  true,
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    Line{2, 2, 2, 0},
			expected: Line{4, 2, 0, 0},
			changed:  true,
			score:    4,
		},
		{
			name:     "double merge",
			input:    Line{2, 2, 2, 2},
			expected: Line{4, 4, 0, 0},
			changed:  true,
			score:    8,
		},
		{
			name:     "merged tile does not merge again",
			input:    Line{2, 2, 4, 0},
			expected: Line{4, 4, 0, 0},
			changed:  true,
			score:    4,
		},
		{
			name:     "no merge possible",
			input:    Line{2, 4, 8, 16},
			expected: Line{2, 4, 8, 16},
			changed:  false,
			score:    0,
		},
		{
			name:     "slide with gap",
			input:    Line{0, 0, 2, 2},
			expected: Line{4, 0, 0, 0},
			changed:  true,
			score:    4,
		},
		{
			name:     "slide with multiple gaps",
			input:    Line{2, 0, 0, 2},
			expected: Line{4, 0, 0, 0},
			changed:  true,
			score:    4,
		},
		{
			name:     "no change needed",
			input:    Line{4, 2, 0, 0},
			expected: Line{4, 2, 0, 0},
			changed:  false,
			score:    0,
		},
		{
			name:     "empty row",
			input:    Line{0, 0, 0, 0},
			expected: Line{0, 0, 0, 0},
			changed:  false,
			score:    0,
		},
		{
			name:     "single tile at far end",
			input:    Line{0, 0, 0, 2},
			expected: Line{2, 0, 0, 0},
			changed:  true,
			score:    0,
		},
		{
			name:     "single tile already at edge",
			input:    Line{2, 0, 0, 0},
			expected: Line{2, 0, 0, 0},
			changed:  false,
			score:    0,
		},
		{
			name:     "merge after gap keeps order",
			input:    Line{8, 0, 4, 4},
			expected: Line{8, 8, 0, 0},
			changed:  true,
			score:    8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, changed, score := Reduce(tt.input)
			if result != tt.expected {
				t.Errorf("Reduce(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if changed != tt.changed {
				t.Errorf("Reduce(%v) changed = %v, want %v", tt.input, changed, tt.changed)
			}
			if score != tt.score {
				t.Errorf("Reduce(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestReduceConservesTiles(t *testing.T) {
	values := []int{0, 2, 4, 8}

	// Every line over {0,2,4,8}
	for a := range values {
		for b := range values {
			for c := range values {
				for d := range values {
					in := Line{values[a], values[b], values[c], values[d]}
					out, changed, score := Reduce(in)

					inSum, outSum := 0, 0
					inCount, outCount := 0, 0
					for i := range BoardSize {
						inSum += in[i]
						outSum += out[i]
						if in[i] != 0 {
							inCount++
						}
						if out[i] != 0 {
							outCount++
						}
					}

					if inSum != outSum {
						t.Fatalf("Reduce(%v) = %v: tile sum %d, want %d", in, out, outSum, inSum)
					}
					if outCount > inCount {
						t.Fatalf("Reduce(%v) = %v: tile count grew", in, out)
					}
					if changed != (in != out) {
						t.Fatalf("Reduce(%v) changed = %v with output %v", in, changed, out)
					}
					if inCount == outCount && score != 0 {
						t.Fatalf("Reduce(%v) scored %d without a merge", in, score)
					}
					if inCount > outCount && score == 0 {
						t.Fatalf("Reduce(%v) merged without scoring", in)
					}
				}
			}
		}
	}
}

func TestOneMergePerTilePerMove(t *testing.T) {
	// [4, 4, 4, 4] should become [8, 8, 0, 0], not [16, 0, 0, 0]
	row := Line{4, 4, 4, 4}
	result, _, score := Reduce(row)

	expected := Line{8, 8, 0, 0}
	if result != expected {
		t.Errorf("Reduce(%v) = %v, want %v (one merge per tile per move)", row, result, expected)
	}

	// Score should be 8+8 = 16, not 8+16 = 24
	if score != 16 {
		t.Errorf("Reduce(%v) score = %d, want 16", row, score)
	}
}

func TestSlideLeft(t *testing.T) {
	board := Board{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	expected := Board{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	result, score, changed := Slide(board, DirLeft)

	if result != expected {
		t.Errorf("Slide left: got\n%v\nwant\n%v", result, expected)
	}

	if !changed {
		t.Error("Slide left should indicate board changed")
	}

	expectedScore := 4 + 8 + 8
	if score != expectedScore {
		t.Errorf("Slide left score = %d, want %d", score, expectedScore)
	}
}

func TestSlideRight(t *testing.T) {
	board := Board{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	expected := Board{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	}

	result, _, changed := Slide(board, DirRight)

	if result != expected {
		t.Errorf("Slide right: got\n%v\nwant\n%v", result, expected)
	}

	if !changed {
		t.Error("Slide right should indicate board changed")
	}
}

func TestSlideUp(t *testing.T) {
	board := Board{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	}

	expected := Board{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	result, _, changed := Slide(board, DirUp)

	if result != expected {
		t.Errorf("Slide up: got\n%v\nwant\n%v", result, expected)
	}

	if !changed {
		t.Error("Slide up should indicate board changed")
	}
}

func TestSlideDown(t *testing.T) {
	board := Board{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	}

	expected := Board{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	result, _, changed := Slide(board, DirDown)

	if result != expected {
		t.Errorf("Slide down: got\n%v\nwant\n%v", result, expected)
	}

	if !changed {
		t.Error("Slide down should indicate board changed")
	}
}

func TestSlideInvalidDirection(t *testing.T) {
	board := Board{{2, 2, 0, 0}}

	result, score, changed := Slide(board, Direction(42))
	if changed || score != 0 || result != board {
		t.Errorf("Slide with invalid direction = (%v, %d, %v), want untouched board", result, score, changed)
	}
}

func TestMoveMergesAndSpawns(t *testing.T) {
	g := NewGameFromBoard(Board{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, &fixedRand{idx: 0, roll: 0.5})

	if !g.Move(DirLeft) {
		t.Fatal("Move(left) should change the board")
	}

	// First empty cell after the slide is A2
	expected := Board{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if g.Board() != expected {
		t.Errorf("board after Move(left):\n%v\nwant\n%v", g.Board(), expected)
	}

	if g.Score() != 4 {
		t.Errorf("Score = %d, want 4", g.Score())
	}

	if g.Moves() != 1 {
		t.Errorf("Moves = %d, want 1", g.Moves())
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	board := Board{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	g := NewGameFromBoard(board, &fixedRand{})

	if g.Move(DirLeft) {
		t.Error("Move(left) should not change already left-aligned tiles")
	}

	if g.Board() != board {
		t.Errorf("board changed on a no-op move:\n%v", g.Board())
	}

	if g.Score() != 0 || g.Moves() != 0 {
		t.Errorf("no-op move changed score/moves: %d/%d", g.Score(), g.Moves())
	}
}

func TestStuckBoardRejectsAllMoves(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 4, 8},
		{16, 32, 64, 128},
	}
	g := NewGameFromBoard(board, &fixedRand{})

	if !g.IsGameOver() {
		t.Fatal("Board with no moves should be game over")
	}

	for _, dir := range Directions {
		if g.Move(dir) {
			t.Errorf("Move(%s) on a stuck board returned true", dir)
		}
	}

	if g.Board() != board || g.Score() != 0 {
		t.Error("stuck board was modified")
	}
}

func TestMoveMatchesSlide(t *testing.T) {
	g := NewSeeded(7)

	for i := range 300 {
		dir := Directions[i%len(Directions)]
		before := g.Board()
		scoreBefore := g.Score()

		expected, gained, changed := Slide(before, dir)
		moved := g.Move(dir)

		if moved != changed {
			t.Fatalf("move %d: Move(%s) = %v, Slide reported %v", i, dir, moved, changed)
		}

		if !moved {
			if g.Board() != before || g.Score() != scoreBefore {
				t.Fatalf("move %d: no-op Move(%s) mutated the game", i, dir)
			}
			continue
		}

		if TileCount(g.Board()) != TileCount(expected)+1 {
			t.Fatalf("move %d: expected exactly one spawned tile", i)
		}

		if g.Score() != scoreBefore+gained {
			t.Fatalf("move %d: score = %d, want %d", i, g.Score(), scoreBefore+gained)
		}

		if g.IsGameOver() {
			break
		}
	}
}

func TestSpawnValue(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want int
	}{
		{name: "low roll spawns 4", roll: 0.05, want: 4},
		{name: "boundary roll spawns 2", roll: 0.10, want: 2},
		{name: "high roll spawns 2", roll: 0.95, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var board Board
			cell, ok := NewSpawner(&fixedRand{idx: 5, roll: tt.roll}).Spawn(&board)
			if !ok {
				t.Fatal("Spawn on an empty board should place a tile")
			}
			if cell != (Cell{Row: 1, Col: 1}) {
				t.Errorf("Spawn cell = %v, want {1 1}", cell)
			}
			if board[1][1] != tt.want {
				t.Errorf("Spawn value = %d, want %d", board[1][1], tt.want)
			}
		})
	}
}

func TestSpawnDistribution(t *testing.T) {
	const spawns = 10000
	spawner := NewSpawner(rand.New(rand.NewSource(42)))

	fours := 0
	var hits [BoardSize][BoardSize]int
	for range spawns {
		var board Board
		cell, ok := spawner.Spawn(&board)
		if !ok {
			t.Fatal("Spawn on an empty board should place a tile")
		}
		switch board[cell.Row][cell.Col] {
		case 4:
			fours++
		case 2:
		default:
			t.Fatalf("Spawn value = %d, want 2 or 4", board[cell.Row][cell.Col])
		}
		if TileCount(board) != 1 {
			t.Fatalf("Spawn placed %d tiles, want 1", TileCount(board))
		}
		hits[cell.Row][cell.Col]++
	}

	// Expect about 1000 fours; the standard deviation is 30.
	if fours < 850 || fours > 1150 {
		t.Errorf("fours = %d of %d, want about %d", fours, spawns, spawns/10)
	}

	// Expect about 625 hits per cell.
	for r := range BoardSize {
		for c := range BoardSize {
			if hits[r][c] < 500 || hits[r][c] > 750 {
				t.Errorf("cell %s chosen %d times, want about %d", CellName(r, c), hits[r][c], spawns/(BoardSize*BoardSize))
			}
		}
	}
}

func TestSpawnFullBoard(t *testing.T) {
	board := Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	before := board

	if _, ok := NewSpawner(&fixedRand{}).Spawn(&board); ok {
		t.Error("Spawn on a full board should do nothing")
	}
	if board != before {
		t.Error("Spawn modified a full board")
	}
}

func TestGameOver(t *testing.T) {
	// Board with no empty cells and no possible merges
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}

	if !IsGameOver(board) {
		t.Error("Board with no moves should be game over")
	}

	// Board with no empty cells but possible merges
	boardWithMerge := Board{
		{2, 2, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}

	if IsGameOver(boardWithMerge) {
		t.Error("Board with possible merge should not be game over")
	}

	// Vertical pair only
	boardWithVerticalMerge := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 16},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}

	if IsGameOver(boardWithVerticalMerge) {
		t.Error("Board with vertical merge should not be game over")
	}

	// Board with empty cells
	boardWithEmpty := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 0, 4096},
		{8192, 16384, 32768, 65536},
	}

	if IsGameOver(boardWithEmpty) {
		t.Error("Board with empty cell should not be game over")
	}
}

func TestWinPrecedesGameOver(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}
	g := NewGameFromBoard(board, &fixedRand{})

	if !g.IsWin() {
		t.Error("Board holding 2048 should be a win")
	}

	if snap := g.Snapshot(); snap.State != StateWin {
		t.Errorf("Snapshot State = %s, want %s", snap.State, StateWin)
	}

	if IsWin(Board{{1024, 1024}}) {
		t.Error("Board without 2048 should not be a win")
	}
}

func TestDeterministicSpawn(t *testing.T) {
	// Same seed, same initial board
	g1 := NewSeeded(12345)
	g2 := NewSeeded(12345)

	if g1.Board() != g2.Board() {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", g1.Board(), g2.Board())
	}

	if n := TileCount(g1.Board()); n != 2 {
		t.Errorf("new game has %d tiles, want 2", n)
	}

	if g1.Score() != 0 {
		t.Errorf("new game score = %d, want 0", g1.Score())
	}
}

func TestMaxTile(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	}

	max := MaxTile(board)
	if max != 2048 {
		t.Errorf("MaxTile = %d, want 2048", max)
	}
}

func TestEmptyCells(t *testing.T) {
	board := Board{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	cells := EmptyCells(board)
	if len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}

	if cells[0] != (Cell{Row: 0, Col: 1}) {
		t.Errorf("first empty cell = %v, want {0 1}", cells[0])
	}
}

func TestRender(t *testing.T) {
	g := NewGameFromBoard(Board{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 8},
		{0, 1024, 0, 0},
	}, &fixedRand{})

	want := "You see several tiles on the grid.\n" +
		"The tile A1 holds the number 2.\n" +
		"The tile C4 holds the number 8.\n" +
		"The tile D2 holds the number 1024."

	if got := g.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions {
		got, err := ParseDirection(dir.String())
		if err != nil || got != dir {
			t.Errorf("ParseDirection(%q) = %v, %v", dir.String(), got, err)
		}
	}

	if got, err := ParseDirection("LEFT"); err != nil || got != DirLeft {
		t.Errorf("ParseDirection(LEFT) = %v, %v", got, err)
	}

	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("ParseDirection(sideways) error = %v, want ErrUnknownDirection", err)
	}
}

func TestSnapshot(t *testing.T) {
	g := NewSeeded(42)

	snap := g.Snapshot()

	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want playing", snap.State)
	}

	if snap.Score != 0 || snap.Moves != 0 {
		t.Errorf("Snapshot Score/Moves = %d/%d, want 0/0", snap.Score, snap.Moves)
	}

	if snap.Board != g.Board() {
		t.Error("Snapshot Board does not match game board")
	}
}
