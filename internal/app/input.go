package app

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

// Held keys fire once, then repeat after repeatDelay ticks every repeatEvery ticks.
const (
	repeatDelay = 18
	repeatEvery = 3
)

func repeating(keys ...ebiten.Key) bool {
	for _, k := range keys {
		d := inpututil.KeyPressDuration(k)
		if d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0) {
			return true
		}
	}
	return false
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

var ammoKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

// handleInput maps keys onto match intents. Rejected intents are expected
// while it is not the player's turn and are dropped.
func (g *Game) handleInput() {
	m := g.match

	switch {
	case repeating(ebiten.KeyA, ebiten.KeyArrowLeft):
		g.intent(m.Move(-1))
	case repeating(ebiten.KeyD, ebiten.KeyArrowRight):
		g.intent(m.Move(1))
	}
	switch {
	case repeating(ebiten.KeyW, ebiten.KeyArrowUp):
		g.intent(m.Aim(1))
	case repeating(ebiten.KeyS, ebiten.KeyArrowDown):
		g.intent(m.Aim(-1))
	}
	switch {
	case repeating(ebiten.KeyE, ebiten.KeyEqual):
		g.intent(m.AdjustPower(1))
	case repeating(ebiten.KeyQ, ebiten.KeyMinus):
		g.intent(m.AdjustPower(-1))
	}

	ids := m.Catalog().IDs()
	for i, k := range ammoKeys {
		if i < len(ids) && inpututil.IsKeyJustPressed(k) {
			g.intent(m.SelectAmmo(ids[i]))
		}
	}
	if justPressed(ebiten.KeyTab) {
		g.intent(m.CycleAmmo(1))
	}
	if justPressed(ebiten.KeySpace, ebiten.KeyEnter) {
		g.intent(m.Fire())
	}

	if justPressed(ebiten.KeyM) && g.music != nil {
		if g.music.ToggleMusic() {
			g.setStatus("Music on")
		} else {
			g.setStatus("Music off")
		}
	}
	if justPressed(ebiten.KeyC) {
		g.copyReport()
	}
	if justPressed(ebiten.KeyL) {
		g.showLog = !g.showLog
	}
	if justPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
}

// intent surfaces the rejections the player should hear about.
func (g *Game) intent(err error) {
	switch {
	case err == nil:
	case errors.Is(err, game.ErrAmmoEmpty):
		g.setStatus("Out of ammo")
	case errors.Is(err, game.ErrAmmoUnavailable):
		g.setStatus("No rounds of that kind left")
	default:
		g.logger.Debug("intent rejected", "err", err)
	}
}

// copyReport puts the match report on the system clipboard.
func (g *Game) copyReport() {
	m := g.match
	report := game.BuildReport(m.SimLog).String() + m.SimLog.Summary(m)
	if err := clipboard.WriteAll(report); err != nil {
		g.logger.Warn("clipboard unavailable", "err", err)
		g.setStatus("Clipboard unavailable")
		return
	}
	g.setStatus("Report copied to clipboard")
}
