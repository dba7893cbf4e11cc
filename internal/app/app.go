// Package app is the ebiten frontend: it turns keys into match intents and
// draws the match state. All game rules live in internal/game.
package app

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

// statusTicks is how long a transient status line stays up (~2s at 60TPS).
const statusTicks = 120

// MusicToggler switches the background loop. The audio synth is one.
type MusicToggler interface {
	ToggleMusic() bool
	MusicOn() bool
}

// Options configures the frontend.
type Options struct {
	AssetDir string
	Music    MusicToggler // nil disables the toggle
	Logger   *log.Logger
	Debug    bool
}

// Game implements ebiten.Game around one match.
type Game struct {
	match  *game.MatchContext
	music  MusicToggler
	logger *log.Logger
	assets *Assets
	battle *BattleLog

	width, height int // playfield
	cursor        int // next SimLog sequence to feed into the battle log
	showLog       bool
	debug         bool

	terrainBuf *ebiten.Image

	status      string
	statusUntil int
	frame       int
}

// New wraps a started match.
func New(m *game.MatchContext, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	w, h := int(m.Width), int(m.Height)
	return &Game{
		match:   m,
		music:   opts.Music,
		logger:  logger,
		assets:  NewAssets(opts.AssetDir, logger),
		battle:  NewBattleLog(),
		width:   w,
		height:  h,
		showLog: true,
		debug:   opts.Debug,
	}
}

func (g *Game) Update() error {
	g.frame++
	g.handleInput()
	g.match.Tick(1 / float64(ebiten.TPS()))
	g.pullEvents()
	return nil
}

// pullEvents copies new SimLog entries into the battle log.
func (g *Game) pullEvents() {
	sl := g.match.SimLog
	for _, e := range sl.Since(g.cursor) {
		if msg, ok := Describe(e); ok {
			g.battle.Add(e.Tick, e.Side, msg)
		}
	}
	g.cursor = sl.Total()
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.frame + statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWorld(screen)
	g.drawHUD(screen)
	if g.showLog {
		g.battle.Draw(screen, g.width, g.height)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	if g.showLog {
		return g.width + logPanelWidth, g.height
	}
	return g.width, g.height
}
