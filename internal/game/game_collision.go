package game

import (
	"math"

	"github.com/sirupsen/logrus"
)

// checkGhostCollisions resolves player/ghost contact after all movement
// has settled. A scared ghost is caught and sent home for points; any
// other touchable ghost ends the run.
func (g *Game) checkGhostCollisions() {
	for _, gh := range g.ghosts {
		if !gh.CanInteract() || gh.IsCaught() {
			continue
		}
		if math.Hypot(g.player.X-gh.X, g.player.Y-gh.Y) > ghostCollisionDistance {
			continue
		}

		if gh.IsScared() {
			gh.SetCaught()
			g.score += catchPoints
			gh.TriggerScorePopup(gh.X, gh.Y)
			g.audio.Play("ghost_eat")
			continue
		}

		logrus.WithFields(logrus.Fields{"score": g.score, "level": g.level}).Info("player caught")
		g.running = false
		g.setMode(ModeGameOver)
		return
	}
}
