package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/asha0127/PacMan/internal/game"
)

func main() {
	g := game.New(game.DefaultSettings())
	ebiten.SetWindowTitle("Pac-Man")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowSize(g.ScreenWidth(), g.ScreenHeight())
	if err := ebiten.RunGame(g); err != nil {
		logrus.Fatal(err)
	}
}
