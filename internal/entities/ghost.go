package entities

import (
	"math"
	"math/rand"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/asha0127/PacMan/internal/maze"
)

// GhostState is the per-ghost behavior machine. It cycles for the life of
// a level: Chasing -> Scared -> Caught -> Cooldown -> Chasing.
type GhostState int

const (
	StateChasing GhostState = iota
	StateScared
	StateCaught
	StateCooldown
)

// GhostAI selects the chase strategy used while far from the player.
type GhostAI int

const (
	// RandomPatrol wanders and locks on when the player is close.
	RandomPatrol GhostAI = iota
	// Ambusher aims ahead of the player's heading until close.
	Ambusher
)

const (
	scaredBaseDuration  = 15.0 // seconds, divided by the speed multiplier
	scaredWarningTime   = 3.0  // flash during the final seconds
	flashPeriod         = 1.0 / 3.0
	cooldownDuration    = 3.0
	caughtSpeedFactor   = 1.5
	lockOnDistance      = 150.0
	ambushLead          = 200.0
	escapeDistance      = 100.0
	randomRetargetTime  = 2.0
	stallNudgeDistance  = 25.0
	homeArrivalDistance = 5.0
	intersectionSlack   = 3.0
	escapeSampleStride  = 2 // sample every other cell when fleeing
	ghostAnimDuration   = 0.2
	popupDuration       = 1.0
)

// Ghost is the AI-driven entity. Desired direction comes from the state
// machine instead of input; replanning is gated to intersections via an
// explicit last-decision cell.
type Ghost struct {
	Mover
	Palette string

	state   GhostState
	ai      GhostAI
	scared  float64 // elapsed scared time
	scaredD float64 // scaled scared duration for this activation
	flash   float64
	cool    float64

	homeX, homeY     float64
	targetX, targetY float64
	escapeX, escapeY float64

	randomDir      Direction
	randomDirTimer float64

	// Cell where the last steering decision was made; replanning is skipped
	// until the ghost reaches a different intersection.
	lastDecisionRow, lastDecisionCol int

	animFrame int
	animTimer float64

	popup          *gween.Tween
	popupAlpha     float32
	PopupX, PopupY float64
}

func NewGhost(x, y float64, palette string, ai GhostAI, speedMultiplier float64) *Ghost {
	return &Ghost{
		Mover:           Mover{X: x, Y: y, SpeedMultiplier: speedMultiplier},
		Palette:         palette,
		state:           StateChasing,
		ai:              ai,
		homeX:           maze.CellCenterX(maze.Cols / 2),
		homeY:           maze.CellCenterY(maze.Rows / 2),
		randomDir:       DirRight,
		lastDecisionRow: -1,
		lastDecisionCol: -1,
	}
}

func (g *Ghost) State() GhostState { return g.state }
func (g *Ghost) AI() GhostAI       { return g.ai }

func (g *Ghost) IsScared() bool { return g.state == StateScared }
func (g *Ghost) IsCaught() bool { return g.state == StateCaught }

// CanInteract reports whether the ghost participates in player collisions.
// Cooldown ghosts are immune while they wait at home.
func (g *Ghost) CanInteract() bool { return g.state != StateCooldown }

// SetScared puts the ghost into its vulnerable window. Caught ghosts are
// already heading home and stay caught. Harder difficulties shorten the
// window: duration = base / multiplier.
func (g *Ghost) SetScared() {
	if g.state == StateCaught {
		return
	}
	g.state = StateScared
	g.scared = 0
	g.flash = 0
	g.scaredD = scaredBaseDuration / g.SpeedMultiplier
	g.resetDecision()
}

// SetCaught sends the ghost home. Movement ignores walls until it arrives.
func (g *Ghost) SetCaught() {
	g.state = StateCaught
	g.resetDecision()
}

// SetChasing resets all per-mode timers and resumes the hunt.
func (g *Ghost) SetChasing() {
	g.state = StateChasing
	g.scared = 0
	g.flash = 0
	g.cool = 0
	g.resetDecision()
}

// ScaredDuration returns the difficulty-scaled vulnerable window in
// seconds for the current multiplier.
func (g *Ghost) ScaredDuration() float64 {
	return scaredBaseDuration / g.SpeedMultiplier
}

// Speed returns the current speed in px/s. Caught ghosts return home at
// 1.5x the (difficulty-scaled) base speed.
func (g *Ghost) Speed() float64 {
	if g.state == StateCaught {
		return BaseSpeed * g.SpeedMultiplier * caughtSpeedFactor
	}
	return BaseSpeed * g.SpeedMultiplier
}

// Update advances the state machine and moves the ghost for one tick.
func (g *Ghost) Update(mz *maze.Maze, playerX, playerY float64, playerDir Direction, dt float64) {
	g.targetX, g.targetY = playerX, playerY

	if g.state == StateScared {
		g.scared += dt
		g.flash += dt
		if g.scared >= g.scaredD {
			g.SetChasing()
		}
	}

	switch g.state {
	case StateChasing:
		dist := math.Hypot(g.targetX-g.X, g.targetY-g.Y)
		g.randomDirTimer += dt
		if g.shouldReplan(mz) {
			g.markDecision()
			switch {
			case dist < lockOnDistance:
				g.steerTowards(mz, g.targetX, g.targetY)
			case g.ai == Ambusher:
				ax, ay := g.ambushPoint(playerDir)
				g.steerTowards(mz, ax, ay)
			default:
				g.steerRandomPatrol(mz)
			}
		}
		g.Mover.Update(mz, g.Speed(), dt)
		g.nudgeIfStalled(dist, dt)
		g.wrapTunnel(mz)

	case StateScared:
		dist := math.Hypot(g.targetX-g.X, g.targetY-g.Y)
		g.randomDirTimer += dt
		if g.shouldReplan(mz) {
			g.markDecision()
			if dist < escapeDistance {
				g.findEscapeTarget(mz)
				g.steerTowards(mz, g.escapeX, g.escapeY)
			} else {
				g.steerRandomPatrol(mz)
			}
		}
		g.Mover.Update(mz, g.Speed(), dt)
		g.wrapTunnel(mz)

	case StateCaught:
		g.moveTowardsHome(dt)

	case StateCooldown:
		g.cool += dt
		if g.cool >= cooldownDuration {
			g.SetChasing()
		}
	}

	g.animTimer += dt
	if g.animTimer > ghostAnimDuration {
		g.animFrame = (g.animFrame + 1) % 2
		g.animTimer = 0
	}
}

// shouldReplan gates direction decisions: always when stopped or blocked,
// otherwise only at a navigable intersection not yet decided at.
func (g *Ghost) shouldReplan(mz *maze.Maze) bool {
	if g.Dir == DirNone || !g.canMove(mz, g.Dir) {
		return true
	}
	row, col := g.Cell()
	if row == g.lastDecisionRow && col == g.lastDecisionCol {
		return false
	}
	return g.atIntersection(mz)
}

func (g *Ghost) markDecision() {
	g.lastDecisionRow, g.lastDecisionCol = g.Cell()
}

func (g *Ghost) resetDecision() {
	g.lastDecisionRow, g.lastDecisionCol = -1, -1
}

// atIntersection reports whether the ghost is near a cell center with two
// or more open non-reverse directions.
func (g *Ghost) atIntersection(mz *maze.Maze) bool {
	row, col := g.Cell()
	if math.Abs(g.X-maze.CellCenterX(col)) > intersectionSlack ||
		math.Abs(g.Y-maze.CellCenterY(row)) > intersectionSlack {
		return false
	}
	opposite := g.Dir.Opposite()
	open := 0
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if d != opposite && g.canMove(mz, d) {
			open++
		}
	}
	return open >= 2
}

// steerTowards ranks the four directions by how much they close the
// dominant-axis gap to the target and picks the best open one, avoiding an
// immediate reversal unless nothing else is open.
func (g *Ghost) steerTowards(mz *maze.Maze, tx, ty float64) {
	dx, dy := g.wrapAwareDelta(tx, ty)
	opposite := g.Dir.Opposite()

	type ranked struct {
		dir    Direction
		weight float64
	}
	var candidates []ranked
	if dx > 0 {
		candidates = append(candidates, ranked{DirRight, math.Abs(dx)})
	}
	if dx < 0 {
		candidates = append(candidates, ranked{DirLeft, math.Abs(dx)})
	}
	if dy > 0 {
		candidates = append(candidates, ranked{DirDown, math.Abs(dy)})
	}
	if dy < 0 {
		candidates = append(candidates, ranked{DirUp, math.Abs(dy)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	for _, c := range candidates {
		if c.dir != opposite && g.canMove(mz, c.dir) {
			g.SetDesiredDirection(c.dir)
			return
		}
	}
	for _, c := range candidates {
		if g.canMove(mz, c.dir) {
			g.SetDesiredDirection(c.dir)
			return
		}
	}
	for _, d := range []Direction{DirRight, DirLeft, DirDown, DirUp} {
		if g.canMove(mz, d) {
			g.SetDesiredDirection(d)
			return
		}
	}
}

// wrapAwareDelta is the axis delta to the target with the horizontal
// component corrected for the tunnel: when the direct gap exceeds half the
// maze width the wrapped route is shorter, so the sign flips.
func (g *Ghost) wrapAwareDelta(tx, ty float64) (dx, dy float64) {
	dx = tx - g.X
	dy = ty - g.Y
	width := float64(maze.Cols * maze.CellSize)
	if dx > width/2 {
		dx -= width
	} else if dx < -width/2 {
		dx += width
	}
	return dx, dy
}

// steerRandomPatrol keeps the current random heading, retargeting every
// couple of seconds or when the heading is blocked. Reversal is a last
// resort.
func (g *Ghost) steerRandomPatrol(mz *maze.Maze) {
	if g.randomDirTimer >= randomRetargetTime || g.Dir == DirNone || !g.canMove(mz, g.Dir) {
		g.randomDirTimer = 0
		opposite := g.Dir.Opposite()
		var valid []Direction
		for _, d := range []Direction{DirRight, DirLeft, DirDown, DirUp} {
			if d != opposite && g.canMove(mz, d) {
				valid = append(valid, d)
			}
		}
		if len(valid) == 0 {
			for _, d := range []Direction{DirRight, DirLeft, DirDown, DirUp} {
				if g.canMove(mz, d) {
					valid = append(valid, d)
				}
			}
		}
		if len(valid) > 0 {
			g.randomDir = valid[rand.Intn(len(valid))]
		}
	}
	g.SetDesiredDirection(g.randomDir)
}

// ambushPoint projects a target ahead of the player along its heading.
func (g *Ghost) ambushPoint(playerDir Direction) (x, y float64) {
	x, y = g.targetX, g.targetY
	switch playerDir {
	case DirRight:
		x += ambushLead
	case DirLeft:
		x -= ambushLead
	case DirDown:
		y += ambushLead
	case DirUp:
		y -= ambushLead
	}
	return x, y
}

// findEscapeTarget samples open cells on a coarse stride and keeps the one
// farthest from the player.
func (g *Ghost) findEscapeTarget(mz *maze.Maze) {
	best := 0.0
	g.escapeX, g.escapeY = g.X, g.Y
	for row := 0; row < maze.Rows; row += escapeSampleStride {
		for col := 0; col < maze.Cols; col += escapeSampleStride {
			if !mz.IsOpen(row, col) {
				continue
			}
			x := maze.CellCenterX(col)
			y := maze.CellCenterY(row)
			d := math.Hypot(g.targetX-x, g.targetY-y)
			if d > best {
				best = d
				g.escapeX, g.escapeY = x, y
			}
		}
	}
}

// nudgeIfStalled forces a one-axis step toward the player when the ghost
// is nearly touching but stopped, so it cannot wedge in a corner forever.
func (g *Ghost) nudgeIfStalled(dist, dt float64) {
	if dist >= stallNudgeDistance || g.Dir != DirNone {
		return
	}
	dx := g.targetX - g.X
	dy := g.targetY - g.Y
	step := g.Speed() * dt
	if math.Abs(dx) > math.Abs(dy) && math.Abs(dx) > 1.0 {
		if dx > 0 {
			g.X += step
		} else {
			g.X -= step
		}
	} else if math.Abs(dy) > 1.0 {
		if dy > 0 {
			g.Y += step
		} else {
			g.Y -= step
		}
	}
}

// moveTowardsHome flies the ghost straight home through walls, then parks
// it in cooldown on arrival.
func (g *Ghost) moveTowardsHome(dt float64) {
	dx := g.homeX - g.X
	dy := g.homeY - g.Y
	dist := math.Hypot(dx, dy)
	if dist < homeArrivalDistance {
		g.SetPosition(g.homeX, g.homeY)
		g.state = StateCooldown
		g.cool = 0
		return
	}

	step := g.Speed() * dt
	g.X += dx / dist * step
	g.Y += dy / dist * step

	// Face the travel direction for rendering.
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			g.Dir = DirRight
		} else {
			g.Dir = DirLeft
		}
	} else {
		if dy > 0 {
			g.Dir = DirDown
		} else {
			g.Dir = DirUp
		}
	}
	g.DesiredDir = g.Dir
}

// TriggerScorePopup starts the catch-score popup at the given position.
func (g *Ghost) TriggerScorePopup(x, y float64) {
	g.popup = gween.New(1, 0, popupDuration, ease.Linear)
	g.popupAlpha = 1
	g.PopupX, g.PopupY = x, y
}

// UpdateScorePopup advances the popup fade; separate from Update so it
// keeps fading while the ghost itself is mid-state-change.
func (g *Ghost) UpdateScorePopup(dt float64) {
	if g.popup == nil {
		return
	}
	alpha, done := g.popup.Update(float32(dt))
	g.popupAlpha = alpha
	if done {
		g.popup = nil
		g.popupAlpha = 0
	}
}

// PopupAlpha returns the current popup opacity, 0 when inactive.
func (g *Ghost) PopupAlpha() float32 { return g.popupAlpha }

// PopupActive reports whether the catch-score popup is showing.
func (g *Ghost) PopupActive() bool { return g.popup != nil }

// Flashing reports whether the scared warning blink is currently in its
// "on" half: 3 blinks per second at 50% duty during the final seconds.
func (g *Ghost) Flashing() bool {
	if g.state != StateScared {
		return false
	}
	remaining := g.scaredD - g.scared
	if remaining > scaredWarningTime {
		return false
	}
	return math.Mod(g.flash, flashPeriod) >= flashPeriod/2
}

// SpriteFrame returns the sheet coordinates for the current facing and
// walk frame. Scared ghosts use the dedicated scared frames regardless of
// direction.
func (g *Ghost) SpriteFrame() (col, row int, flipX, flipY bool) {
	frame2 := g.animFrame == 1
	if g.state == StateScared {
		if frame2 {
			return 1, 1, false, false
		}
		return 1, 0, false, false
	}
	switch g.Dir {
	case DirRight:
		if frame2 {
			return 0, 1, false, false
		}
		return 0, 0, false, false
	case DirLeft:
		if frame2 {
			return 0, 5, false, false
		}
		return 0, 4, false, false
	case DirDown:
		if frame2 {
			return 0, 3, false, false
		}
		return 0, 2, false, false
	case DirUp:
		if frame2 {
			return 0, 7, false, false
		}
		return 0, 6, false, false
	default:
		return 0, 0, false, false
	}
}

// DrawPalette returns the palette the renderer should use this frame,
// accounting for caught/cooldown override and the scared warning flash.
func (g *Ghost) DrawPalette() string {
	switch {
	case g.state == StateCaught || g.state == StateCooldown:
		return "BLACK_BLUE_WHITE"
	case g.state == StateScared && g.Flashing():
		return "RED_WHITE_GREEN"
	case g.state == StateScared:
		return "WHITE_BLUE_RED"
	default:
		return g.Palette
	}
}
