package entities

import "github.com/asha0127/PacMan/internal/maze"

// Mouth animation frames cycle open -> closing -> closed.
const (
	mouthOpen = iota
	mouthClosing
	mouthClosed
)

const (
	playerAnimDuration = 0.1 // seconds per mouth frame
	powerModeBoost     = 1.1
)

// Player is the input-driven entity. Desired direction is set externally
// from keyboard polling; PowerMode is set by the game controller and only
// affects speed.
type Player struct {
	Mover
	Palette   string
	PowerMode bool

	animFrame int
	animTimer float64
}

func NewPlayer(x, y float64, palette string, speedMultiplier float64) *Player {
	return &Player{
		Mover:   Mover{X: x, Y: y, SpeedMultiplier: speedMultiplier},
		Palette: palette,
	}
}

// Speed returns the current speed in px/s, including the power-mode boost.
func (p *Player) Speed() float64 {
	s := BaseSpeed * p.SpeedMultiplier
	if p.PowerMode {
		s *= powerModeBoost
	}
	return s
}

// Update moves the player, wraps across the tunnel row, and advances the
// mouth animation. Collection checks are the game controller's job.
func (p *Player) Update(mz *maze.Maze, dt float64) {
	p.Mover.Update(mz, p.Speed(), dt)
	p.wrapTunnel(mz)

	p.animTimer += dt
	if p.animTimer > playerAnimDuration {
		p.animFrame = (p.animFrame + 1) % 3
		p.animTimer = 0
	}
}

// SpriteFrame returns the sheet coordinates and flips for the current
// facing and mouth frame. Frames live at columns 3..5 of the sheet.
func (p *Player) SpriteFrame() (col, row int, flipX, flipY bool) {
	col = 3 + p.animFrame
	switch p.Dir {
	case DirRight:
		return col, 6, false, false
	case DirLeft:
		return col, 6, true, false
	case DirDown:
		if p.animFrame == mouthClosed {
			return col, 6, false, false
		}
		return col, 7, false, false
	case DirUp:
		if p.animFrame == mouthClosed {
			return col, 6, false, true
		}
		return col, 7, false, true
	default:
		return 5, 6, false, false // closed mouth while stopped
	}
}

// DyingFrame returns the sheet coordinates of one of the 12 death
// animation frames, in order.
func DyingFrame(i int) (col, row int) {
	frames := [12][2]int{
		{3, 0}, {3, 1}, {3, 2}, {3, 3}, {3, 4}, {3, 5},
		{4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4}, {4, 5},
	}
	if i < 0 {
		i = 0
	}
	if i >= len(frames) {
		i = len(frames) - 1
	}
	return frames[i][0], frames[i][1]
}

// DyingFrameCount is the length of the death animation sequence.
const DyingFrameCount = 12

// DyingFrameDuration is how long each death frame is held, in seconds.
const DyingFrameDuration = 0.08
