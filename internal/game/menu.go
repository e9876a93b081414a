package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const maxNameLength = 12

// Menu rows, top to bottom.
const (
	menuRowDifficulty = iota
	menuRowLevel
	menuRowPalette
	menuRowEndless
	menuRowCount
)

// Selectable player palettes; the first token is the body color.
var playerPalettes = []string{
	"YELLOW_BLACK_WHITE",
	"GREEN_BLACK_WHITE",
	"ORANGE_BLACK_WHITE",
	"PURPLE_BLACK_WHITE",
}

// updateMenu handles the pre-game screen: pick difficulty, starting level
// and endless mode, then Enter starts the run.
func (g *Game) updateMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.menuCursor = (g.menuCursor + menuRowCount - 1) % menuRowCount
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.menuCursor = (g.menuCursor + 1) % menuRowCount
	}

	delta := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		delta = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		delta = 1
	}
	if delta != 0 {
		switch g.menuCursor {
		case menuRowDifficulty:
			d := int(g.settings.Difficulty) + delta
			if d < int(DifficultyEasy) {
				d = int(DifficultyCrazy)
			}
			if d > int(DifficultyCrazy) {
				d = int(DifficultyEasy)
			}
			g.settings.Difficulty = Difficulty(d)
		case menuRowLevel:
			l := g.settings.StartLevel + delta
			if l < 1 {
				l = MaxLevel
			}
			if l > MaxLevel {
				l = 1
			}
			g.settings.StartLevel = l
		case menuRowPalette:
			idx := 0
			for i, p := range playerPalettes {
				if p == g.settings.PlayerPalette {
					idx = i
					break
				}
			}
			idx = (idx + delta + len(playerPalettes)) % len(playerPalettes)
			g.settings.PlayerPalette = playerPalettes[idx]
		case menuRowEndless:
			g.settings.Endless = !g.settings.Endless
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		g.startLevel(g.settings.StartLevel, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.phase = phaseLeaderboard
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.quit = true
	}
}

// updateNameEntry collects a leaderboard name after a run ends.
func (g *Game) updateNameEntry() {
	var chars []rune
	chars = ebiten.AppendInputChars(chars)
	for _, r := range chars {
		if len([]rune(g.nameInput)) >= maxNameLength {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == ' ' || r == '_' || r == '-' {
			g.nameInput += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		rs := []rune(g.nameInput)
		if len(rs) > 0 {
			g.nameInput = string(rs[:len(rs)-1])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		if len([]rune(g.nameInput)) > 0 {
			g.settings.PlayerName = g.nameInput
			_ = SaveScore(ScoreRecord{Name: g.nameInput, Score: g.score})
			g.nameInput = ""
			g.phase = phaseLeaderboard
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.nameInput = ""
		g.phase = phaseLeaderboard
	}
}

// updateLeaderboard shows the score table until the player backs out.
func (g *Game) updateLeaderboard() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.phase = phaseMenu
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.quit = true
	}
}
