package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

const hudBarHeight = 40

var (
	colHUDBack = color.RGBA{R: 8, G: 12, B: 20, A: 200}
	colHUDEdge = color.RGBA{R: 70, G: 90, B: 130, A: 200}
	colHUDText = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	colHUDDim  = color.RGBA{R: 150, G: 160, B: 175, A: 255}
	colHUDHot  = color.RGBA{R: 255, G: 215, B: 0, A: 255}
)

// drawText uses the classic text.Draw signature with the 7x13 face.
func drawText(img *ebiten.Image, s string, x, y int, col color.Color) {
	text.Draw(img, s, basicfont.Face7x13, x, y, col)
}

// HUDLines renders the heads-up values as the two text rows of the top bar.
func HUDLines(v game.HUD) (top, bottom string) {
	top = fmt.Sprintf("LEVEL %d   %s   YOU %d/%d   ENEMY %d/%d",
		v.Level, v.Turn, v.PlayerHealth, v.PlayerMax, v.EnemyHealth, v.EnemyMax)
	bottom = fmt.Sprintf("POWER %.0f   ANGLE %.0f   WIND %s   AMMO %s [%s]",
		v.Power, v.Angle, v.Wind, v.Ammo, v.AmmoCount)
	return top, bottom
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := float32(g.width)
	vector.FillRect(screen, 0, 0, w, hudBarHeight, colHUDBack, false)
	vector.StrokeLine(screen, 0, hudBarHeight, w, hudBarHeight, 1, colHUDEdge, false)

	hud := g.match.HUD()
	top, bottom := HUDLines(hud)
	drawText(screen, top, 8, 16, colHUDText)
	col := colHUDDim
	if hud.InputEnabled {
		col = colHUDHot
	}
	drawText(screen, bottom, 8, 33, col)

	help := "A/D move  W/S aim  Q/E power  1-3/Tab ammo  Space fire  M music  C copy  L log"
	if g.music != nil && g.music.MusicOn() {
		help += "  [music on]"
	}
	drawText(screen, help, 8, g.height-8, colHUDDim)

	if hud.Banner != "" {
		g.drawBanner(screen, hud.Turn, hud.Banner)
	}
	if g.status != "" && g.frame < g.statusUntil {
		drawText(screen, g.status, 8, hudBarHeight+18, colHUDHot)
	}
	if g.debug {
		m := g.match
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f FPS %.0f  tick %d  phase %s  seed %d  particles %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), m.CurrentTick(), m.Phase, m.Seed(), m.Particles.Len()),
			8, hudBarHeight+24)
	}
}

func (g *Game) drawBanner(screen *ebiten.Image, title, sub string) {
	const bw, bh = 280, 60
	x := float32(g.width)/2 - bw/2
	y := float32(g.height)/2 - bh/2
	vector.FillRect(screen, x, y, bw, bh, colHUDBack, false)
	vector.StrokeRect(screen, x, y, bw, bh, 1, colHUDHot, false)
	drawText(screen, title, int(x)+bw/2-len(title)*7/2, int(y)+24, colHUDHot)
	drawText(screen, sub, int(x)+bw/2-len(sub)*7/2, int(y)+44, colHUDText)
}
