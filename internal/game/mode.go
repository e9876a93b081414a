package game

import "github.com/asha0127/PacMan/internal/entities"

// GameMode is the global phase of a run. Starting holds until the intro
// jingle finishes; PowerMode is derived from ghost state rather than its
// own timer, so it ends exactly when the last scared ghost recovers.
type GameMode int

const (
	ModeStarting GameMode = iota
	ModeNormal
	ModePower
	ModeVictory
	ModeGameOver
)

func (m GameMode) String() string {
	switch m {
	case ModeStarting:
		return "STARTING"
	case ModeNormal:
		return "NORMAL"
	case ModePower:
		return "POWER_MODE"
	case ModeVictory:
		return "VICTORY"
	case ModeGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

const (
	gameOverHoldDuration = 3.0
	victoryHoldDuration  = 4.3
)

// updateMode advances the global mode machine for one tick. Terminal
// sequences run on timers instead of blocking: the death animation plays
// frame by frame, then the game-over screen holds, then control passes to
// the post-game flow.
func (g *Game) updateMode(dt float64) {
	switch g.mode {
	case ModeStarting:
		if !g.audio.IsPlaying("start") {
			g.setMode(ModeNormal)
		}

	case ModeNormal, ModePower:
		if g.anyGhostScared() {
			g.setMode(ModePower)
		} else {
			g.setMode(ModeNormal)
		}

	case ModeVictory:
		g.holdTimer += dt
		if g.holdTimer >= victoryHoldDuration {
			g.finishVictory()
		}

	case ModeGameOver:
		if g.dying {
			g.dyingTimer += dt
			if g.dyingTimer >= entities.DyingFrameDuration {
				g.dyingTimer = 0
				g.dyingFrame++
				if g.dyingFrame >= entities.DyingFrameCount {
					g.dying = false
					g.holdTimer = 0
				}
			}
			return
		}
		g.holdTimer += dt
		if g.holdTimer >= gameOverHoldDuration {
			g.finishGameOver()
		}
	}
}

// setMode switches modes and runs the entry actions for the new mode.
// Same-mode calls are no-ops so it is safe to call every tick.
func (g *Game) setMode(mode GameMode) {
	if g.mode == mode {
		return
	}
	prev := g.mode
	g.mode = mode

	switch mode {
	case ModePower:
		g.audio.stopChaseLoopsExcept("")
		g.audio.Play("ghost_blue")
	case ModeNormal:
		if prev == ModePower {
			g.audio.Stop("ghost_blue")
		}
	case ModeVictory:
		g.audio.StopAll()
		g.audio.Play("cutscene")
		g.holdTimer = 0
	case ModeGameOver:
		g.audio.StopAll()
		g.audio.Play("die")
		g.dying = true
		g.dyingFrame = 0
		g.dyingTimer = 0
	}
}

func (g *Game) anyGhostScared() bool {
	for _, gh := range g.ghosts {
		if gh.IsScared() {
			return true
		}
	}
	return false
}

// finishVictory either advances to the next level (endless runs loop
// through all levels keeping the score) or ends the run.
func (g *Game) finishVictory() {
	if g.settings.Endless {
		next := g.level + 1
		if next > MaxLevel {
			next = 1
		}
		g.startLevel(next, g.score)
		return
	}
	g.enterPostGame()
}

// finishGameOver moves from the held game-over screen into the post-game
// flow: name entry for a scoring endless run, otherwise back to the menu.
func (g *Game) finishGameOver() {
	g.enterPostGame()
}

func (g *Game) enterPostGame() {
	g.running = false
	if !g.settings.Endless {
		g.phase = phaseMenu
		return
	}
	if g.score > 0 {
		g.phase = phaseNameEntry
	} else {
		g.phase = phaseLeaderboard
	}
}
