package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/asha0127/PacMan/internal/entities"
	"github.com/asha0127/PacMan/internal/maze"
)

const hudHeight = 32

// glyphWidth approximates basicfont.Face7x13 for centering.
const glyphWidth = 7

// Wall color per level, cycling for endless runs.
var levelWallColors = []color.RGBA{
	{R: 33, G: 33, B: 255, A: 255},  // level 1: blue
	{R: 0, G: 160, B: 60, A: 255},   // level 2: green
	{R: 140, G: 60, B: 200, A: 255}, // level 3: purple
	{R: 200, G: 40, B: 40, A: 255},  // level 4: red
	{R: 230, G: 130, B: 30, A: 255}, // level 5: orange
}

var namedColors = map[string]color.RGBA{
	"YELLOW": {R: 255, G: 221, B: 0, A: 255},
	"RED":    {R: 255, G: 0, B: 0, A: 255},
	"PINK":   {R: 255, G: 128, B: 255, A: 255},
	"BLUE":   {R: 64, G: 64, B: 255, A: 255},
	"WHITE":  {R: 240, G: 240, B: 240, A: 255},
	"BLACK":  {R: 40, G: 40, B: 48, A: 255},
	"GREEN":  {R: 0, G: 200, B: 80, A: 255},
	"ORANGE": {R: 255, G: 128, B: 0, A: 255},
	"PURPLE": {R: 160, G: 64, B: 220, A: 255},
}

// paletteColor resolves a palette string like "RED_BLUE_WHITE" to its body
// color, the first token.
func paletteColor(palette string) color.RGBA {
	token := palette
	if i := strings.IndexByte(palette, '_'); i >= 0 {
		token = palette[:i]
	}
	if c, ok := namedColors[token]; ok {
		return c
	}
	return namedColors["YELLOW"]
}

var fruitColors = []color.RGBA{
	{R: 255, G: 40, B: 40, A: 255},  // cherry
	{R: 255, G: 180, B: 40, A: 255}, // orange
	{R: 255, G: 220, B: 60, A: 255}, // banana
	{R: 120, G: 220, B: 60, A: 255}, // melon
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	nativeW := maze.Cols * maze.CellSize
	nativeH := maze.Rows*maze.CellSize + hudHeight
	off := ebiten.NewImage(nativeW, nativeH)

	switch g.phase {
	case phaseMenu:
		g.drawMenu(off, nativeW, nativeH)
	case phaseNameEntry:
		g.drawNameEntry(off, nativeW, nativeH)
	case phaseLeaderboard:
		g.drawLeaderboard(off, nativeW, nativeH)
	case phasePlaying:
		g.drawLevel(off)
		g.drawHUD(off, nativeW, nativeH)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.scale, g.scale)
	screen.DrawImage(off, op)
}

func (g *Game) drawLevel(off *ebiten.Image) {
	wallColor := levelWallColors[(g.level-1)%len(levelWallColors)]
	for row := 0; row < maze.Rows; row++ {
		for col := 0; col < maze.Cols; col++ {
			if !g.mz.IsOpen(row, col) {
				vector.DrawFilledRect(off,
					float32(col*maze.CellSize), float32(row*maze.CellSize),
					maze.CellSize, maze.CellSize, wallColor, false)
			}
		}
	}

	pelletColor := color.RGBA{R: 255, G: 230, B: 180, A: 255}
	for key := range g.state.pellets {
		vector.DrawFilledCircle(off,
			float32(maze.CellCenterX(key.col)), float32(maze.CellCenterY(key.row)),
			4*g.state.pulseScale, pelletColor, true)
	}
	for key := range g.state.power {
		vector.DrawFilledCircle(off,
			float32(maze.CellCenterX(key.col)), float32(maze.CellCenterY(key.row)),
			8*g.state.pulseScale, pelletColor, true)
	}

	if g.fruit.Active() {
		vector.DrawFilledCircle(off, float32(g.fruit.X), float32(g.fruit.Y),
			maze.CellSize/2-10, fruitColors[g.fruit.Type%len(fruitColors)], true)
	}

	for _, gh := range g.ghosts {
		vector.DrawFilledCircle(off, float32(gh.X), float32(gh.Y),
			maze.CellSize/2-4, paletteColor(gh.DrawPalette()), true)
	}

	g.drawPlayer(off)
	g.drawPopups(off)

	if g.mode == ModeVictory {
		g.drawCentered(off, "LEVEL CLEARED", maze.Rows*maze.CellSize/2,
			color.RGBA{R: 255, G: 215, B: 0, A: 255})
	}
	if g.mode == ModeGameOver && !g.dying {
		g.drawCentered(off, "GAME OVER", maze.Rows*maze.CellSize/2,
			color.RGBA{R: 255, G: 60, B: 60, A: 255})
	}
	if g.paused {
		g.drawCentered(off, "PAUSED", maze.Rows*maze.CellSize/2, color.White)
	}
}

// drawPlayer renders the player circle, shrinking through the death
// animation frames when the run has just ended.
func (g *Game) drawPlayer(off *ebiten.Image) {
	radius := float32(maze.CellSize/2 - 4)
	if g.mode == ModeGameOver {
		if !g.dying {
			return
		}
		shrink := float32(entities.DyingFrameCount-g.dyingFrame) / float32(entities.DyingFrameCount)
		radius *= shrink
		if radius <= 0 {
			return
		}
	}
	vector.DrawFilledCircle(off, float32(g.player.X), float32(g.player.Y),
		radius, paletteColor(g.player.Palette), true)
}

func (g *Game) drawPopups(off *ebiten.Image) {
	for _, gh := range g.ghosts {
		if gh.PopupActive() {
			drawFadingText(off, fmt.Sprintf("%d", catchPoints), gh.PopupX, gh.PopupY, gh.PopupAlpha())
		}
	}
	if g.fruit.PopupActive() {
		drawFadingText(off, fmt.Sprintf("%d", entities.FruitPoints), g.fruit.PopupX, g.fruit.PopupY, g.fruit.PopupAlpha())
	}
}

func drawFadingText(off *ebiten.Image, s string, x, y float64, alpha float32) {
	a := uint8(alpha * 255)
	c := color.RGBA{R: a, G: a, B: a, A: a}
	text.Draw(off, s, basicfont.Face7x13, int(x)-len(s)*glyphWidth/2, int(y), c)
}

func (g *Game) drawHUD(off *ebiten.Image, nativeW, nativeH int) {
	line := fmt.Sprintf("Score: %d  Level: %d  %s", g.score, g.level, g.mode)
	if best := BestScore(); best != nil {
		line += fmt.Sprintf("  Best: %d (%s)", best.Score, best.Name)
	}
	text.Draw(off, line, basicfont.Face7x13, 4, nativeH-hudHeight/2, color.White)
}

func (g *Game) drawMenu(off *ebiten.Image, nativeW, nativeH int) {
	y := nativeH/2 - 70
	g.drawCentered(off, "PAC-MAN", y, color.RGBA{R: 255, G: 221, B: 0, A: 255})
	y += 28

	rows := []string{
		fmt.Sprintf("Difficulty: %s", g.settings.Difficulty),
		fmt.Sprintf("Level: %d", g.settings.StartLevel),
		fmt.Sprintf("Color: %s", strings.SplitN(g.settings.PlayerPalette, "_", 2)[0]),
		fmt.Sprintf("Endless: %v", g.settings.Endless),
	}
	for i, row := range rows {
		c := color.RGBA{R: 160, G: 160, B: 160, A: 255}
		if i == g.menuCursor {
			c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			row = "> " + row + " <"
		}
		g.drawCentered(off, row, y, c)
		y += 18
	}
	y += 14
	g.drawCentered(off, "Enter: start   L: scores   Q: quit", y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
}

func (g *Game) drawNameEntry(off *ebiten.Image, nativeW, nativeH int) {
	g.drawCentered(off, fmt.Sprintf("Final score: %d", g.score), nativeH/2-20,
		color.RGBA{R: 255, G: 215, B: 0, A: 255})
	g.drawCentered(off, "Enter name: "+g.nameInput+"_", nativeH/2, color.White)
	g.drawCentered(off, "Enter: save   Esc: skip", nativeH/2+24,
		color.RGBA{R: 128, G: 128, B: 128, A: 255})
}

func (g *Game) drawLeaderboard(off *ebiten.Image, nativeW, nativeH int) {
	y := nativeH/2 - 80
	g.drawCentered(off, "High Scores", y, color.RGBA{R: 255, G: 215, B: 0, A: 255})
	y += 18
	for i, rec := range TopScores(10) {
		g.drawCentered(off, fmt.Sprintf("%2d. %-12s %6d", i+1, rec.Name, rec.Score), y, color.White)
		y += 14
	}
	y += 14
	g.drawCentered(off, "Enter: menu   Q: quit", y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
}

func (g *Game) drawCentered(off *ebiten.Image, s string, y int, c color.Color) {
	w := off.Bounds().Dx()
	text.Draw(off, s, basicfont.Face7x13, (w-len(s)*glyphWidth)/2, y, c)
}
