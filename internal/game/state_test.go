package game

import (
	"testing"

	"github.com/asha0127/PacMan/internal/maze"
)

func testMaze(t *testing.T) *maze.Maze {
	t.Helper()
	t.Setenv("PACMAN_LEVEL_DIR", t.TempDir())
	return maze.Load(1)
}

func TestPelletSeedingSkipsSpawnArea(t *testing.T) {
	mz := testMaze(t)
	spawnRow, spawnCol := 9, 11
	s := newLevelState(mz, spawnRow, spawnCol)

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			key := cellKey{spawnRow + dr, spawnCol + dc}
			if s.pellets[key] || s.power[key] {
				t.Fatalf("cell (%d,%d) near spawn must stay empty", key.row, key.col)
			}
		}
	}

	// Every open cell outside the spawn area and corners carries a pellet.
	for row := 0; row < maze.Rows; row++ {
		for col := 0; col < maze.Cols; col++ {
			if !mz.IsOpen(row, col) {
				continue
			}
			if abs(row-spawnRow) <= 1 && abs(col-spawnCol) <= 1 {
				continue
			}
			key := cellKey{row, col}
			if !s.pellets[key] && !s.power[key] {
				t.Fatalf("open cell (%d,%d) has no collectible", row, col)
			}
		}
	}
}

func TestPowerPelletsAtOpenCorners(t *testing.T) {
	mz := testMaze(t)
	s := newLevelState(mz, 9, 11)

	corners := []cellKey{
		{1, 1},
		{1, maze.Cols - 2},
		{maze.Rows - 2, 1},
		{maze.Rows - 2, maze.Cols - 2},
	}
	for _, c := range corners {
		if !mz.IsOpen(c.row, c.col) {
			continue
		}
		if !s.power[c] {
			t.Fatalf("open corner (%d,%d) must hold a power pellet", c.row, c.col)
		}
		if s.pellets[c] {
			t.Fatalf("corner (%d,%d) must not also hold a plain pellet", c.row, c.col)
		}
	}
}

func TestCollectAtRespectsRange(t *testing.T) {
	mz := testMaze(t)
	s := newLevelState(mz, 9, 11)

	var key cellKey
	for k := range s.pellets {
		key = k
		break
	}
	cx := maze.CellCenterX(key.col)
	cy := maze.CellCenterY(key.row)

	// Standing in the same cell but outside the pickup radius: no collect.
	if pellet, power := s.collectAt(cx+collectDistance+2, cy); pellet || power {
		t.Fatal("collection outside range must fail")
	}
	if pellet, _ := s.collectAt(cx+collectDistance-2, cy); !pellet {
		t.Fatal("collection inside range must succeed")
	}
	if pellet, power := s.collectAt(cx, cy); pellet || power {
		t.Fatal("a collected cell must stay empty")
	}
}

func TestClearedAndFraction(t *testing.T) {
	mz := testMaze(t)
	s := newLevelState(mz, 9, 11)
	if s.cleared() {
		t.Fatal("fresh board must not report cleared")
	}
	if f := s.remainingFraction(); f != 1.0 {
		t.Fatalf("fresh fraction = %v, want 1.0", f)
	}

	s.pellets = map[cellKey]bool{}
	s.power = map[cellKey]bool{}
	if !s.cleared() {
		t.Fatal("empty board must report cleared")
	}
	if f := s.remainingFraction(); f != 0 {
		t.Fatalf("cleared fraction = %v, want 0", f)
	}
}
