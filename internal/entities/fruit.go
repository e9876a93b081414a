package entities

import (
	"math"
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/asha0127/PacMan/internal/maze"
)

const (
	FruitPoints = 200

	fruitSpawnInterval   = 30.0
	fruitVisibleDuration = 20.0
	fruitCollectDistance = 15.0
	fruitTypes           = 4
)

// Fruit is the bonus item: at most one instance, cycling through spawn
// countdown, visible window, and (after collection) a score popup.
type Fruit struct {
	X, Y float64
	Type int

	active       bool
	spawnTimer   float64
	visibleTimer float64

	popup          *gween.Tween
	popupAlpha     float32
	PopupX, PopupY float64
}

func NewFruit() *Fruit {
	return &Fruit{spawnTimer: fruitSpawnInterval}
}

func (f *Fruit) Active() bool { return f.active }

// Points returns the score value for collecting the fruit.
func (f *Fruit) Points() int { return FruitPoints }

// Update runs the three independent timers. The spawn countdown is held
// while the popup is showing so a fresh fruit never overlaps the score.
func (f *Fruit) Update(mz *maze.Maze, dt float64) {
	if f.popup != nil {
		alpha, done := f.popup.Update(float32(dt))
		f.popupAlpha = alpha
		if done {
			f.popup = nil
			f.popupAlpha = 0
		}
	}

	if f.active {
		f.visibleTimer += dt
		if f.visibleTimer >= fruitVisibleDuration {
			f.active = false
			f.spawnTimer = fruitSpawnInterval
		}
	} else if f.popup == nil {
		f.spawnTimer -= dt
		if f.spawnTimer <= 0 {
			f.spawn(mz)
			f.spawnTimer = fruitSpawnInterval
		}
	}
}

// spawn places the fruit at a random open cell. With no open cell at all
// it falls back to the maze center.
func (f *Fruit) spawn(mz *maze.Maze) {
	f.Type = rand.Intn(fruitTypes)

	var open [][2]int
	for row := 0; row < maze.Rows; row++ {
		for col := 0; col < maze.Cols; col++ {
			if mz.IsOpen(row, col) {
				open = append(open, [2]int{row, col})
			}
		}
	}

	row, col := maze.Rows/2, maze.Cols/2
	if len(open) > 0 {
		cell := open[rand.Intn(len(open))]
		row, col = cell[0], cell[1]
	}
	f.X = maze.CellCenterX(col)
	f.Y = maze.CellCenterY(row)
	f.active = true
	f.visibleTimer = 0
}

// TryCollect deactivates the fruit and starts the popup when the player is
// within collection range. Returns whether a collection happened.
func (f *Fruit) TryCollect(playerX, playerY float64) bool {
	if !f.active {
		return false
	}
	if math.Hypot(playerX-f.X, playerY-f.Y) > fruitCollectDistance {
		return false
	}
	f.active = false
	f.spawnTimer = fruitSpawnInterval
	f.popup = gween.New(1, 0, popupDuration, ease.Linear)
	f.popupAlpha = 1
	f.PopupX, f.PopupY = f.X, f.Y
	return true
}

// PopupActive reports whether the score popup is showing.
func (f *Fruit) PopupActive() bool { return f.popup != nil }

// PopupAlpha returns the popup opacity, 0 when inactive.
func (f *Fruit) PopupAlpha() float32 { return f.popupAlpha }

// SpriteFrame returns the sheet coordinates for the current fruit type.
func (f *Fruit) SpriteFrame() (col, row int) {
	return 2, f.Type
}
