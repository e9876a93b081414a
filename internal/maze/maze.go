package maze

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	Rows     = 13
	Cols     = 25
	CellSize = 40

	// TunnelRow is the single row that wraps horizontally at the maze edges.
	TunnelRow = 6

	// AlignmentTolerance is the max perpendicular distance (px) from a cell
	// center at which an entity may commit a turn.
	AlignmentTolerance = 4.0

	// RadiusOffset shrinks the collision footprint so entities fit corridors.
	RadiusOffset = 2
)

const (
	cellOpen = 0
	cellWall = 1
)

// Maze is the static wall layout for one level. Immutable after Load.
type Maze struct {
	level  int
	layout [][]int
}

// Load builds the maze for the given level from its CSV file, falling back
// to the built-in layout if the file is missing or malformed. Load never
// fails: a maze is always returned.
func Load(level int) *Maze {
	m := &Maze{level: level}
	path := filepath.Join(levelDir(), fmt.Sprintf("level%d.csv", level))
	layout, err := loadCSV(path)
	if err != nil {
		log.Warnf("failed to load level %d (%v), using fallback layout", level, err)
		layout = fallbackLayout()
	}
	m.layout = layout
	return m
}

// levelDir resolves where level CSVs live. PACMAN_LEVEL_DIR overrides the
// default relative assets path.
func levelDir() string {
	if env := os.Getenv("PACMAN_LEVEL_DIR"); env != "" {
		return env
	}
	return filepath.Join("assets", "maps")
}

// loadCSV reads a rows x cols grid of comma-separated 0/1 integers. Blank
// lines and a UTF-8 BOM are tolerated; a dimension mismatch is an error so
// the caller can fall back.
func loadCSV(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var layout [][]int
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row []int
		for _, cell := range strings.Split(line, ",") {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("bad cell %q: %w", cell, err)
			}
			row = append(row, v)
		}
		if len(row) > 0 {
			layout = append(layout, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(layout) != Rows {
		return nil, fmt.Errorf("expected %d rows, got %d", Rows, len(layout))
	}
	for i, row := range layout {
		if len(row) != Cols {
			return nil, fmt.Errorf("row %d: expected %d cols, got %d", i, Cols, len(row))
		}
	}
	return layout, nil
}

// Level returns the level number this maze was built for.
func (m *Maze) Level() int { return m.level }

// IsOpen reports whether the cell is inside the grid and not a wall.
// Out-of-bounds cells are closed by definition.
func (m *Maze) IsOpen(row, col int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return false
	}
	return m.layout[row][col] == cellOpen
}

// IsOpenOrTunnel is IsOpen extended with the tunnel rule: columns outside
// the grid on the tunnel row count as open so entities can wrap.
func (m *Maze) IsOpenOrTunnel(row, col int) bool {
	if row == TunnelRow && (col < 0 || col >= Cols) {
		return true
	}
	return m.IsOpen(row, col)
}

// CanMoveTo reports whether an entity centered at (x, y) fits without
// overlapping a wall. The footprint is a square inset from the cell size,
// tested at its four corners.
func (m *Maze) CanMoveTo(x, y float64) bool {
	const radius = CellSize/2.0 - RadiusOffset

	leftCol := int((x - radius) / CellSize)
	rightCol := int((x + radius) / CellSize)
	topRow := int((y - radius) / CellSize)
	bottomRow := int((y + radius) / CellSize)

	return m.IsOpenOrTunnel(topRow, leftCol) &&
		m.IsOpenOrTunnel(topRow, rightCol) &&
		m.IsOpenOrTunnel(bottomRow, leftCol) &&
		m.IsOpenOrTunnel(bottomRow, rightCol)
}

// CellCenterX returns the pixel x of a column's center.
func CellCenterX(col int) float64 {
	return float64(col)*CellSize + CellSize/2.0
}

// CellCenterY returns the pixel y of a row's center.
func CellCenterY(row int) float64 {
	return float64(row)*CellSize + CellSize/2.0
}

// FindSpawn returns the open cell nearest the target, searching outward in
// expanding rings. Falls back to the maze center if nothing is open.
func (m *Maze) FindSpawn(targetRow, targetCol int) (row, col int) {
	if m.IsOpen(targetRow, targetCol) {
		return targetRow, targetCol
	}

	maxRadius := Rows
	if Cols > Rows {
		maxRadius = Cols
	}
	for radius := 1; radius <= maxRadius; radius++ {
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				if abs(dr) != radius && abs(dc) != radius {
					continue // only the ring perimeter
				}
				r, c := targetRow+dr, targetCol+dc
				if m.IsOpen(r, c) {
					return r, c
				}
			}
		}
	}
	return Rows / 2, Cols / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
