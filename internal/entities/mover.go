package entities

import (
	"math"

	"github.com/asha0127/PacMan/internal/maze"
)

// BaseSpeed is the unscaled movement speed in pixels per second.
const BaseSpeed = 120.0

// Mover is the shared movement primitive for the player and the ghosts:
// continuous pixel position driven by a current direction, with a buffered
// desired direction that only commits when the entity is aligned with its
// cell center and the adjacent cell is open.
type Mover struct {
	X, Y            float64
	Dir             Direction
	DesiredDir      Direction
	SpeedMultiplier float64
}

func (m *Mover) SetPosition(x, y float64) {
	m.X = x
	m.Y = y
}

// SetDesiredDirection records movement intent; the turn is committed by a
// later Update once alignment and topology allow it.
func (m *Mover) SetDesiredDirection(d Direction) {
	m.DesiredDir = d
}

// Cell returns the grid cell the mover's center currently occupies.
func (m *Mover) Cell() (row, col int) {
	return int(m.Y / maze.CellSize), int(m.X / maze.CellSize)
}

// Update advances the mover by speed*dt pixels, committing a buffered turn
// first if possible. Movement into a wall stops the mover dead: direction
// is cleared rather than sliding along the obstacle.
func (m *Mover) Update(mz *maze.Maze, speed, dt float64) {
	row, col := m.Cell()
	cx := maze.CellCenterX(col)
	cy := maze.CellCenterY(row)

	if m.DesiredDir != DirNone && m.DesiredDir != m.Dir {
		m.attemptTurn(mz, row, col, cx, cy)
	}
	m.attemptMove(mz, cx, cy, speed, dt)
}

func (m *Mover) attemptTurn(mz *maze.Maze, row, col int, cx, cy float64) {
	dx, dy := m.DesiredDir.Delta()
	if !m.alignedFor(m.DesiredDir, cx, cy) || !mz.IsOpenOrTunnel(row+dy, col+dx) {
		return
	}
	// Snap the perpendicular axis so the turn starts from the corridor center.
	switch m.DesiredDir {
	case DirLeft, DirRight:
		m.Y = cy
	case DirUp, DirDown:
		m.X = cx
	}
	m.Dir = m.DesiredDir
}

// alignedFor reports whether the perpendicular axis is close enough to the
// cell center to permit a turn in the given direction.
func (m *Mover) alignedFor(d Direction, cx, cy float64) bool {
	switch d {
	case DirLeft, DirRight:
		return math.Abs(m.Y-cy) < maze.AlignmentTolerance
	case DirUp, DirDown:
		return math.Abs(m.X-cx) < maze.AlignmentTolerance
	default:
		return false
	}
}

func (m *Mover) attemptMove(mz *maze.Maze, cx, cy float64, speed, dt float64) {
	if m.Dir == DirNone {
		return
	}
	step := speed * dt
	tx, ty := m.X, m.Y
	switch m.Dir {
	case DirLeft:
		tx -= step
	case DirRight:
		tx += step
	case DirUp:
		ty -= step
	case DirDown:
		ty += step
	}
	if !mz.CanMoveTo(tx, ty) {
		m.Dir = DirNone
		return
	}
	m.X, m.Y = tx, ty
	m.snapIfClose(cx, cy)
}

// snapIfClose removes perpendicular drift accumulated from repeated
// floating-point steps.
func (m *Mover) snapIfClose(cx, cy float64) {
	if (m.Dir == DirLeft || m.Dir == DirRight) && math.Abs(m.Y-cy) < maze.AlignmentTolerance {
		m.Y = cy
	}
	if (m.Dir == DirUp || m.Dir == DirDown) && math.Abs(m.X-cx) < maze.AlignmentTolerance {
		m.X = cx
	}
}

// canMove reports whether the adjacent cell in the given direction is open,
// counting the tunnel extension beyond the horizontal edges.
func (m *Mover) canMove(mz *maze.Maze, d Direction) bool {
	if d == DirNone {
		return false
	}
	dx, dy := d.Delta()
	row, col := m.Cell()
	return mz.IsOpenOrTunnel(row+dy, col+dx)
}

// wrapTunnel teleports the mover across the maze when it has crossed a
// horizontal edge on the tunnel row. If the destination edge cell is walled
// the mover is put back on its own edge instead.
func (m *Mover) wrapTunnel(mz *maze.Maze) {
	row := int(math.Floor(m.Y / maze.CellSize))
	col := int(math.Floor(m.X / maze.CellSize))

	switch {
	case col < 0:
		if row >= 0 && row < maze.Rows && mz.IsOpen(row, maze.Cols-1) {
			m.X = maze.CellCenterX(maze.Cols - 1)
		} else {
			m.X = maze.CellCenterX(0)
		}
	case col >= maze.Cols:
		if row >= 0 && row < maze.Rows && mz.IsOpen(row, 0) {
			m.X = maze.CellCenterX(0)
		} else {
			m.X = maze.CellCenterX(maze.Cols - 1)
		}
	}
}
