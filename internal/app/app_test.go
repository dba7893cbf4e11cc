package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

func TestBattleLog_RingOrder(t *testing.T) {
	bl := NewBattleLog()
	for i := 0; i < logMaxEntries+5; i++ {
		bl.Add(i, "P", "msg")
	}
	got := bl.Recent()
	if len(got) != logMaxEntries {
		t.Fatalf("len = %d, want %d", len(got), logMaxEntries)
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != logMaxEntries+4 {
		t.Fatalf("window = %d..%d", got[0].Tick, got[len(got)-1].Tick)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Tick != got[i-1].Tick+1 {
			t.Fatalf("entries out of order at %d: %d after %d", i, got[i].Tick, got[i-1].Tick)
		}
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		e    game.SimLogEntry
		want string
		ok   bool
	}{
		{game.SimLogEntry{Category: "shot", Key: "fire", Value: "heavy a=45.0 p=60"}, "fires heavy", true},
		{game.SimLogEntry{Category: "impact", Key: "offscreen"}, "shell lost", true},
		{game.SimLogEntry{Category: "impact", Key: "tank"}, "hits tank", true},
		{game.SimLogEntry{Category: "flight", Key: "primary"}, "", false},
	}
	for _, c := range cases {
		got, ok := Describe(c.e)
		if ok != c.ok || !strings.HasPrefix(got, c.want) {
			t.Errorf("Describe(%s/%s) = %q, %v; want prefix %q, %v", c.e.Category, c.e.Key, got, ok, c.want, c.ok)
		}
	}
}

func TestHUDLines(t *testing.T) {
	tm := game.NewTestMatch(game.WithMatchSeed(3))
	top, bottom := HUDLines(tm.HUD())
	if !strings.Contains(top, "LEVEL 1") || !strings.Contains(top, "Your turn") {
		t.Errorf("top line %q", top)
	}
	if !strings.Contains(bottom, "POWER 50") || !strings.Contains(bottom, "AMMO Normal [∞]") {
		t.Errorf("bottom line %q", bottom)
	}
}

func TestPullEvents_FeedsBattleLog(t *testing.T) {
	tm := game.NewTestMatch(game.WithMatchSeed(5))
	g := &Game{match: tm.MatchContext, battle: NewBattleLog()}
	g.pullEvents()
	before := len(g.battle.Recent())
	if err := tm.Fire(); err != nil {
		t.Fatal(err)
	}
	g.pullEvents()
	after := g.battle.Recent()
	if len(after) != before+1 {
		t.Fatalf("battle log grew by %d, want 1", len(after)-before)
	}
	if !strings.HasPrefix(after[len(after)-1].Message, "fires normal") {
		t.Errorf("last message %q", after[len(after)-1].Message)
	}
	g.pullEvents()
	if len(g.battle.Recent()) != before+1 {
		t.Fatal("pullEvents replayed entries")
	}
}

func TestAssets_MissingSpriteWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	a := NewAssets(t.TempDir(), log.New(&buf))
	for i := 0; i < 3; i++ {
		if img := a.Image(spriteTankPlayer); img != nil {
			t.Fatal("missing sprite returned an image")
		}
	}
	if n := strings.Count(buf.String(), "sprite unavailable"); n != 1 {
		t.Fatalf("warned %d times, want 1:\n%s", n, buf.String())
	}
	if NewAssets("", nil).Image(spriteBarrel) != nil {
		t.Fatal("disabled assets returned an image")
	}
}
