package entities

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asha0127/PacMan/internal/maze"
)

const testDT = 1.0 / 60.0

// fallbackMaze loads the built-in layout by pointing the level dir at an
// empty temp dir.
func fallbackMaze(t *testing.T) *maze.Maze {
	t.Helper()
	t.Setenv("PACMAN_LEVEL_DIR", t.TempDir())
	return maze.Load(1)
}

func TestDesiredDirectionIntoWallNeverCommits(t *testing.T) {
	mz := fallbackMaze(t)
	m := &Mover{X: maze.CellCenterX(1), Y: maze.CellCenterY(1), SpeedMultiplier: 1}

	// Cell (0,1) above is a wall in the fallback layout.
	for i := 0; i < 120; i++ {
		m.SetDesiredDirection(DirUp)
		m.Update(mz, BaseSpeed, testDT)
	}
	if m.Dir != DirNone {
		t.Fatalf("direction committed toward a wall: %v", m.Dir)
	}
	if m.X != maze.CellCenterX(1) || m.Y != maze.CellCenterY(1) {
		t.Fatalf("mover drifted while fully blocked: (%v,%v)", m.X, m.Y)
	}
}

func TestMoveAlongOpenCorridor(t *testing.T) {
	mz := fallbackMaze(t)
	m := &Mover{X: maze.CellCenterX(1), Y: maze.CellCenterY(1), SpeedMultiplier: 1}

	m.SetDesiredDirection(DirRight)
	for i := 0; i < 60; i++ {
		m.Update(mz, BaseSpeed, testDT)
	}
	// 120 px/s for 1 s = 120 px = 3 cells.
	if m.Dir != DirRight {
		t.Fatalf("direction = %v, want right", m.Dir)
	}
	want := maze.CellCenterX(1) + 120
	if math.Abs(m.X-want) > 1 {
		t.Fatalf("X = %v, want about %v", m.X, want)
	}
	if m.Y != maze.CellCenterY(1) {
		t.Fatalf("Y drifted off the corridor center: %v", m.Y)
	}
}

func TestBlockedMovementStopsDead(t *testing.T) {
	mz := fallbackMaze(t)
	// Heading right out of (1,11); (1,12) is a wall.
	m := &Mover{X: maze.CellCenterX(11), Y: maze.CellCenterY(1), Dir: DirRight, SpeedMultiplier: 1}

	m.Update(mz, BaseSpeed, testDT)
	if m.Dir != DirNone {
		t.Fatalf("direction = %v, want none after hitting wall", m.Dir)
	}
	if m.X != maze.CellCenterX(11) {
		t.Fatalf("mover moved into the wall: X = %v", m.X)
	}
}

func TestTurnCommitsOnlyWhenAligned(t *testing.T) {
	mz := fallbackMaze(t)
	// Off-center vertically well beyond the tolerance: a horizontal turn
	// must not commit.
	m := &Mover{
		X:               maze.CellCenterX(1),
		Y:               maze.CellCenterY(1) + maze.AlignmentTolerance + 2,
		Dir:             DirNone,
		SpeedMultiplier: 1,
	}
	m.SetDesiredDirection(DirRight)
	m.Update(mz, BaseSpeed, testDT)
	if m.Dir == DirRight {
		t.Fatal("turn committed while misaligned beyond tolerance")
	}

	// Within tolerance the turn commits and snaps Y to the center.
	m.Y = maze.CellCenterY(1) + maze.AlignmentTolerance/2
	m.Update(mz, BaseSpeed, testDT)
	if m.Dir != DirRight {
		t.Fatalf("direction = %v, want right once aligned", m.Dir)
	}
	if m.Y != maze.CellCenterY(1) {
		t.Fatalf("Y = %v, want snapped to %v", m.Y, maze.CellCenterY(1))
	}
}

func TestTunnelWrapSymmetric(t *testing.T) {
	mz := fallbackMaze(t)
	m := &Mover{Y: maze.CellCenterY(maze.TunnelRow), SpeedMultiplier: 1}

	// Exit the left edge: re-enter at the rightmost column.
	m.X = -5
	m.wrapTunnel(mz)
	if m.X != maze.CellCenterX(maze.Cols-1) {
		t.Fatalf("left exit wrapped to X = %v, want %v", m.X, maze.CellCenterX(maze.Cols-1))
	}

	// Exit the right edge: re-enter at the leftmost column.
	m.X = float64(maze.Cols*maze.CellSize) + 5
	m.wrapTunnel(mz)
	if m.X != maze.CellCenterX(0) {
		t.Fatalf("right exit wrapped to X = %v, want %v", m.X, maze.CellCenterX(0))
	}
}

func TestTunnelWrapBlockedDestination(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PACMAN_LEVEL_DIR", dir)

	// A layout whose tunnel row is open on the left edge only: wrapping
	// off the left edge must bounce back to column 0.
	rows := make([]string, maze.Rows)
	for r := range rows {
		cells := make([]string, maze.Cols)
		for c := range cells {
			cells[c] = "1"
		}
		if r == maze.TunnelRow {
			for c := 0; c < maze.Cols-1; c++ {
				cells[c] = "0"
			}
		}
		rows[r] = strings.Join(cells, ",")
	}
	if err := os.WriteFile(filepath.Join(dir, "level1.csv"), []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	mz := maze.Load(1)

	m := &Mover{X: -5, Y: maze.CellCenterY(maze.TunnelRow), SpeedMultiplier: 1}
	m.wrapTunnel(mz)
	if m.X != maze.CellCenterX(0) {
		t.Fatalf("wrap into a walled edge should stay on own edge, got X = %v", m.X)
	}
}
