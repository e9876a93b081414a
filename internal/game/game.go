package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/asha0127/PacMan/internal/entities"
	"github.com/asha0127/PacMan/internal/maze"
)

// maxDeltaTime clamps the per-frame step so a stall (window drag, debugger
// pause) cannot teleport entities through walls.
const maxDeltaTime = 1.0 / 30.0

const ghostCollisionDistance = 20.0

type phase int

const (
	phaseMenu phase = iota
	phasePlaying
	phaseNameEntry
	phaseLeaderboard
)

// Game is the top-level ebiten state: menu flow around a running level,
// which in turn is the maze, the collectible bookkeeping, the entities and
// the global mode machine.
type Game struct {
	settings Settings
	phase    phase

	mz     *maze.Maze
	state  *levelState
	player *entities.Player
	ghosts []*entities.Ghost
	fruit  *entities.Fruit
	audio  *AudioManager

	mode    GameMode
	level   int
	score   int
	running bool
	paused  bool

	dying      bool
	dyingFrame int
	dyingTimer float64
	holdTimer  float64

	dotAlternate bool
	lastTick     time.Time

	nameInput  string
	menuCursor int

	fullscreen bool
	scale      float64
	quit       bool
}

// New builds a game sitting on the menu with the given defaults.
func New(settings Settings) *Game {
	rand.Seed(time.Now().UnixNano())
	g := &Game{
		settings: settings,
		phase:    phaseMenu,
		audio:    NewAudioManager(""),
		lastTick: time.Now(),
	}
	g.computeScale()
	return g
}

// startLevel loads the level, reseeds collectibles, and places everyone at
// their spawn cells. carryScore keeps the running total across endless
// levels; a fresh run passes 0.
func (g *Game) startLevel(level int, carryScore int) {
	g.level = level
	g.score = carryScore
	g.mz = maze.Load(level)

	playerRow, playerCol := g.mz.FindSpawn(maze.Rows/2+3, maze.Cols/2)
	g.player = entities.NewPlayer(
		maze.CellCenterX(playerCol), maze.CellCenterY(playerRow),
		g.settings.PlayerPalette, g.settings.Difficulty.Multiplier(),
	)

	mult := g.settings.Difficulty.Multiplier()
	g.ghosts = nil
	for _, spawn := range []struct {
		row, col int
		palette  string
		ai       entities.GhostAI
	}{
		{maze.Rows/2 - 3, maze.Cols / 2, "RED_BLUE_WHITE", entities.RandomPatrol},
		{maze.Rows/2 + 1, maze.Cols/2 + 5, "PINK_BLUE_WHITE", entities.Ambusher},
	} {
		row, col := g.mz.FindSpawn(spawn.row, spawn.col)
		g.ghosts = append(g.ghosts, entities.NewGhost(
			maze.CellCenterX(col), maze.CellCenterY(row),
			spawn.palette, spawn.ai, mult,
		))
	}

	g.state = newLevelState(g.mz, playerRow, playerCol)
	g.fruit = entities.NewFruit()

	g.mode = ModeStarting
	g.running = true
	g.paused = false
	g.dying = false
	g.holdTimer = 0
	g.phase = phasePlaying
	g.lastTick = time.Now()

	g.audio.StopAll()
	g.audio.Play("start")
	logrus.WithFields(logrus.Fields{
		"level":      level,
		"difficulty": g.settings.Difficulty.String(),
		"endless":    g.settings.Endless,
	}).Info("level started")
}

// Score returns the current run total.
func (g *Game) Score() int { return g.score }

// Mode returns the current global mode.
func (g *Game) Mode() GameMode { return g.mode }

// Running reports whether a level is actively simulating.
func (g *Game) Running() bool { return g.running }

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	if dt > maxDeltaTime {
		dt = maxDeltaTime
	}

	switch g.phase {
	case phaseMenu:
		g.updateMenu()
	case phaseNameEntry:
		g.updateNameEntry()
	case phaseLeaderboard:
		g.updateLeaderboard()
	case phasePlaying:
		g.handlePlayInput()
		if !g.paused {
			g.step(dt)
		}
	}

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// step advances one simulation tick. The order matters: collection before
// ghost updates so a freshly scared ghost flees immediately, collisions
// after all movement so positions agree.
func (g *Game) step(dt float64) {
	g.updateBackgroundAudio()
	g.updateMode(dt)
	for _, gh := range g.ghosts {
		gh.UpdateScorePopup(dt)
	}
	if g.mode == ModeStarting || g.mode == ModeVictory || g.mode == ModeGameOver {
		return
	}

	g.state.update(dt)
	g.player.PowerMode = g.mode == ModePower
	g.player.Update(g.mz, dt)

	if pellet, power := g.state.collectAt(g.player.X, g.player.Y); pellet || power {
		if power {
			g.score += powerPelletPoints
			g.audio.Play("power_dot")
			for _, gh := range g.ghosts {
				gh.SetScared()
			}
		} else {
			g.score += pelletPoints
			if g.dotAlternate {
				g.audio.Play("dot2")
			} else {
				g.audio.Play("dot1")
			}
			g.dotAlternate = !g.dotAlternate
		}
	}

	for _, gh := range g.ghosts {
		gh.Update(g.mz, g.player.X, g.player.Y, g.player.Dir, dt)
	}

	g.fruit.Update(g.mz, dt)
	if g.fruit.TryCollect(g.player.X, g.player.Y) {
		g.score += g.fruit.Points()
		g.audio.Play("fruit")
	}

	g.checkGhostCollisions()

	if g.mode != ModeGameOver && g.state.cleared() {
		g.setMode(ModeVictory)
		logrus.WithFields(logrus.Fields{"level": g.level, "score": g.score}).Info("level cleared")
	}
}

// updateBackgroundAudio keeps exactly one background loop running for the
// current mode: the chase tier for the remaining collectibles, or the
// power loop while any ghost is scared, plus the return loop while a
// caught ghost is flying home.
func (g *Game) updateBackgroundAudio() {
	switch g.mode {
	case ModeNormal:
		cue := chaseCueFor(g.state.remainingFraction())
		g.audio.stopChaseLoopsExcept(cue)
		g.audio.Play(cue)
	case ModePower:
		g.audio.stopChaseLoopsExcept("")
	}

	caught := false
	for _, gh := range g.ghosts {
		if gh.IsCaught() {
			caught = true
			break
		}
	}
	if caught {
		g.audio.Play("ghost_retreat")
	} else {
		g.audio.Stop("ghost_retreat")
	}
}

func (g *Game) handlePlayInput() {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA):
		g.player.SetDesiredDirection(entities.DirLeft)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD):
		g.player.SetDesiredDirection(entities.DirRight)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW):
		g.player.SetDesiredDirection(entities.DirUp)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS):
		g.player.SetDesiredDirection(entities.DirDown)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fullscreen = !g.fullscreen
		ebiten.SetFullscreen(g.fullscreen)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.audio.StopAll()
		g.running = false
		g.phase = phaseMenu
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.audio.StopAll()
		g.running = false
		g.phase = phaseLeaderboard
	}
}

// computeScale fits the native maze resolution into roughly 75% of the
// display.
func (g *Game) computeScale() {
	nativeW := maze.Cols * maze.CellSize
	nativeH := maze.Rows*maze.CellSize + hudHeight
	sw, sh := ebiten.ScreenSizeInFullscreen()
	fit := 0.75
	scaleW := float64(sw) * fit / float64(nativeW)
	scaleH := float64(sh) * fit / float64(nativeH)
	g.scale = math.Min(scaleW, scaleH)
	if g.scale <= 0 || math.IsNaN(g.scale) || math.IsInf(g.scale, 0) {
		g.scale = 1.0
	}
}

// ScreenWidth is the scaled window width.
func (g *Game) ScreenWidth() int {
	return int(float64(maze.Cols*maze.CellSize) * g.scale)
}

// ScreenHeight is the scaled window height, including the HUD strip.
func (g *Game) ScreenHeight() int {
	return int(float64(maze.Rows*maze.CellSize+hudHeight) * g.scale)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth(), g.ScreenHeight()
}
