package game

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/asha0127/PacMan/internal/maze"
)

const (
	pelletPoints      = 10
	powerPelletPoints = 50
	catchPoints       = 400

	collectDistance = 15.0

	pelletPulsePeriod = 0.5
	pelletPulseMin    = 0.6
)

type cellKey struct{ row, col int }

// levelState is the per-level collectible bookkeeping: which cells still
// hold a pellet or power pellet, and the shared pulse animation.
type levelState struct {
	pellets map[cellKey]bool
	power   map[cellKey]bool
	total   int

	pulse      *gween.Sequence
	pulseScale float32
}

// newLevelState seeds pellets on every open cell except a 3x3 area around
// the player spawn, then upgrades the four corner cells to power pellets
// where they are open.
func newLevelState(mz *maze.Maze, spawnRow, spawnCol int) *levelState {
	s := &levelState{
		pellets:    make(map[cellKey]bool),
		power:      make(map[cellKey]bool),
		pulseScale: 1,
	}

	for row := 0; row < maze.Rows; row++ {
		for col := 0; col < maze.Cols; col++ {
			if !mz.IsOpen(row, col) {
				continue
			}
			if abs(row-spawnRow) <= 1 && abs(col-spawnCol) <= 1 {
				continue
			}
			s.pellets[cellKey{row, col}] = true
		}
	}

	corners := []cellKey{
		{1, 1},
		{1, maze.Cols - 2},
		{maze.Rows - 2, 1},
		{maze.Rows - 2, maze.Cols - 2},
	}
	for _, c := range corners {
		if mz.IsOpen(c.row, c.col) {
			delete(s.pellets, c)
			s.power[c] = true
		}
	}
	s.total = len(s.pellets) + len(s.power)

	grow := gween.New(pelletPulseMin, 1, pelletPulsePeriod, ease.InOutQuad)
	shrink := gween.New(1, pelletPulseMin, pelletPulsePeriod, ease.InOutQuad)
	s.pulse = gween.NewSequence(grow, shrink)
	s.pulse.SetLoop(-1)
	return s
}

// update advances the shared pellet pulse.
func (s *levelState) update(dt float64) {
	v, _, _ := s.pulse.Update(float32(dt))
	s.pulseScale = v
}

// collectAt removes the pellet or power pellet under the given position
// when it is within collection range of its cell center.
func (s *levelState) collectAt(x, y float64) (pellet, power bool) {
	row := int(y) / maze.CellSize
	col := int(x) / maze.CellSize
	key := cellKey{row, col}
	if !s.pellets[key] && !s.power[key] {
		return false, false
	}
	dx := x - maze.CellCenterX(col)
	dy := y - maze.CellCenterY(row)
	if math.Hypot(dx, dy) > collectDistance {
		return false, false
	}
	if s.pellets[key] {
		delete(s.pellets, key)
		return true, false
	}
	delete(s.power, key)
	return false, true
}

// remaining counts uncollected pellets of both kinds.
func (s *levelState) remaining() int {
	return len(s.pellets) + len(s.power)
}

// remainingFraction is remaining/total, used to pick the chase audio tier.
func (s *levelState) remainingFraction() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.remaining()) / float64(s.total)
}

// cleared reports the level win condition: every collectible gone.
func (s *levelState) cleared() bool {
	return s.remaining() == 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
