package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 14
)

// BattleEntry is a single line in the battle log.
type BattleEntry struct {
	Tick    int
	Side    string // "P", "E" or "--"
	Message string
}

// BattleLog is a ring buffer of match events rendered beside the playfield.
type BattleLog struct {
	entries []BattleEntry
	head    int
	count   int
}

// NewBattleLog creates a battle log with a fixed capacity.
func NewBattleLog() *BattleLog {
	return &BattleLog{entries: make([]BattleEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (bl *BattleLog) Add(tick int, side, msg string) {
	bl.entries[bl.head] = BattleEntry{Tick: tick, Side: side, Message: msg}
	bl.head = (bl.head + 1) % logMaxEntries
	if bl.count < logMaxEntries {
		bl.count++
	}
}

// Recent returns entries oldest first.
func (bl *BattleLog) Recent() []BattleEntry {
	out := make([]BattleEntry, bl.count)
	for i := 0; i < bl.count; i++ {
		idx := (bl.head - bl.count + i + logMaxEntries) % logMaxEntries
		out[i] = bl.entries[idx]
	}
	return out
}

// Describe turns a SimLog entry into a battle log line. Entries not worth
// showing return false.
func Describe(e game.SimLogEntry) (string, bool) {
	switch e.Category {
	case "shot":
		return "fires " + e.Value, true
	case "impact":
		if e.Key == "expired" || e.Key == "offscreen" {
			return "shell lost (" + e.Key + ")", true
		}
		return "hits " + e.Key, true
	case "damage":
		return "takes " + e.Value, true
	case "terrain":
		return fmt.Sprintf("crater depth %.0f", e.NumVal), true
	case "cluster":
		return "cluster splits " + e.Value, true
	case "wind":
		return "wind " + e.Value, true
	case "turn":
		return "turn: " + e.Value, true
	case "round":
		return e.Key + " " + e.Value, true
	case "ammo":
		return "ammo " + e.Key + " " + e.Value, true
	case "save":
		return "progress " + e.Key, true
	default:
		return "", false
	}
}

// Draw renders the panel at panelX.
func (bl *BattleLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, logPanelWidth, float32(panelH), color.RGBA{R: 14, G: 16, B: 22, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	vector.FillRect(screen, px, 0, logPanelWidth, 18, color.RGBA{R: 26, G: 30, B: 42, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "BATTLE LOG", panelX+8, 2)
	vector.StrokeLine(screen, px, 18, px+logPanelWidth, 18, 1, color.RGBA{R: 60, G: 80, B: 110, A: 200}, false)

	entries := bl.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const highlight = 3

	y := 22
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, px+2, float32(y), logPanelWidth-4, logLineHeight, color.RGBA{R: 34, G: 40, B: 56, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, sideColor(e.Side), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += logLineHeight
	}
}

func sideColor(side string) color.RGBA {
	switch side {
	case "P":
		return color.RGBA{R: 70, G: 120, B: 220, A: 255}
	case "E":
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}
}
