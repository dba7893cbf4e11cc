package app

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

var (
	colSky        = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	colGround     = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	colGroundEdge = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	colWall       = color.RGBA{R: 160, G: 82, B: 45, A: 255}
	colOutline    = color.RGBA{A: 255}
	colPlayer     = color.RGBA{R: 40, G: 80, B: 200, A: 255}
	colEnemy      = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	colBarrel     = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	colHPBack     = color.RGBA{R: 220, G: 53, B: 69, A: 255}
	colHPFront    = color.RGBA{R: 40, G: 167, B: 69, A: 255}
	colShell      = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// Barrel sprites are drawn at this size regardless of the source image.
const barrelDrawW, barrelDrawH = 45.0, 12.0

func (g *Game) drawWorld(screen *ebiten.Image) {
	m := g.match
	if bg := g.assets.Image(spriteBackground); bg != nil {
		op := &ebiten.DrawImageOptions{}
		b := bg.Bounds()
		op.GeoM.Scale(float64(g.width)/float64(b.Dx()), float64(g.height)/float64(b.Dy()))
		screen.DrawImage(bg, op)
	} else {
		vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), colSky, false)
	}

	g.drawTerrain(screen, m.Terrain)
	for _, w := range m.Walls {
		vector.FillRect(screen, float32(w.X), float32(w.Y), float32(w.W), float32(w.H), colWall, false)
		vector.StrokeRect(screen, float32(w.X), float32(w.Y), float32(w.W), float32(w.H), 1, colOutline, false)
	}
	for _, t := range m.Tanks {
		if t != nil {
			g.drawTank(screen, t)
		}
	}
	for _, p := range m.Projectiles() {
		drawShell(screen, p)
	}
	for i := range m.Particles.P {
		p := &m.Particles.P[i]
		vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), fade(p.Col, p.Alpha()), true)
	}
}

// drawTerrain fills the ground polygon in white on a scratch buffer and
// composites it tinted, then traces the surface line.
func (g *Game) drawTerrain(screen *ebiten.Image, ter *game.Terrain) {
	if ter == nil || len(ter.Heights) == 0 {
		return
	}
	if g.terrainBuf == nil {
		g.terrainBuf = ebiten.NewImage(g.width, g.height)
	}
	buf := g.terrainBuf
	buf.Clear()

	w, h := float32(g.width), float32(g.height)
	var path vector.Path
	path.MoveTo(0, h)
	path.LineTo(0, float32(ter.Heights[0]))
	for i := 1; i < len(ter.Heights); i++ {
		path.LineTo(float32(ter.SampleX(i)), float32(ter.Heights[i]))
	}
	path.LineTo(w, float32(ter.Heights[len(ter.Heights)-1]))
	path.LineTo(w, h)
	path.Close()
	vector.FillPath(buf, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(colGround)
	screen.DrawImage(buf, op)

	for i := 1; i < len(ter.Heights); i++ {
		x0, y0 := float32(ter.SampleX(i-1)), float32(ter.Heights[i-1])
		x1, y1 := float32(ter.SampleX(i)), float32(ter.Heights[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colGroundEdge, true)
	}
}

func (g *Game) drawTank(screen *ebiten.Image, t *game.Tank) {
	body := t.Body()
	name, fallback := spriteTankPlayer, colPlayer
	if t.Side == game.SideEnemy {
		name, fallback = spriteTankEnemy, colEnemy
	}
	if img := g.assets.Image(name); img != nil {
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		op.GeoM.Scale(body.W/float64(b.Dx()), body.H/float64(b.Dy()))
		op.GeoM.Translate(body.X, body.Y)
		screen.DrawImage(img, op)
	} else {
		vector.FillRect(screen, float32(body.X), float32(body.Y), float32(body.W), float32(body.H), fallback, false)
	}

	pivot := t.Pivot()
	if img := g.assets.Image(spriteBarrel); img != nil {
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		op.GeoM.Scale(barrelDrawW/float64(b.Dx()), barrelDrawH/float64(b.Dy()))
		op.GeoM.Translate(0, -barrelDrawH/2)
		op.GeoM.Rotate(-t.Angle * math.Pi / 180)
		op.GeoM.Translate(pivot.X, pivot.Y)
		screen.DrawImage(img, op)
	} else {
		end := t.BarrelEnd()
		vector.StrokeLine(screen, float32(pivot.X), float32(pivot.Y), float32(end.X), float32(end.Y), 6, colBarrel, true)
	}

	// health bar above the hull
	barW := float32(body.W * 0.8)
	barX := float32(t.X) - barW/2
	barY := float32(body.Y) - 10
	vector.FillRect(screen, barX, barY, barW, 6, colHPBack, false)
	vector.FillRect(screen, barX, barY, barW*float32(t.HealthFraction()), 6, colHPFront, false)
	vector.StrokeRect(screen, barX, barY, barW, 6, 1, colOutline, false)
}

func drawShell(screen *ebiten.Image, p *game.Projectile) {
	trail := p.Trail()
	for i := 1; i < len(trail); i++ {
		a := float64(i) / float64(len(trail))
		vector.StrokeLine(screen,
			float32(trail[i-1].X), float32(trail[i-1].Y),
			float32(trail[i].X), float32(trail[i].Y),
			2, fade(color.RGBA{R: 60, G: 60, B: 60, A: 255}, a*0.6), true)
	}
	vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), colShell, true)
}

// fade scales a straight-alpha colour into premultiplied form at alpha a.
func fade(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
