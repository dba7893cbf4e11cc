package replay

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

func TestRecorder_CapturesMatchShots(t *testing.T) {
	rec := NewRecorder(7, "test")
	tm := game.NewTestMatch(
		game.WithMatchSeed(7),
		game.WithObserver(rec),
		game.WithCalmWind(),
	)
	if err := tm.Fire(); err != nil {
		t.Fatalf("fire: %v", err)
	}
	tm.RunUntil(func(m *game.MatchContext) bool {
		return m.Phase == game.PhasePlayerTurn && rec.Len() >= 2
	}, 60*30)

	if rec.Len() < 2 {
		tm.Dump(t)
		t.Fatalf("recorded %d shots, want player and enemy", rec.Len())
	}
	f := rec.File()
	if f.Shots[0].Side != "player" || f.Shots[1].Side != "enemy" {
		t.Errorf("shot order = %s, %s", f.Shots[0].Side, f.Shots[1].Side)
	}
	if f.Shots[0].Ammo != string(game.AmmoNormal) {
		t.Errorf("first shot ammo = %s", f.Shots[0].Ammo)
	}
}

func TestRecorder_WriteRead(t *testing.T) {
	rec := NewRecorder(99, "duel")
	rec.OnShot(game.ShotRecord{Tick: 10, Level: 2, Side: game.SidePlayer, Ammo: game.AmmoHeavy, Angle: 45, Power: 60})
	rec.OnShot(game.ShotRecord{Tick: 200, Level: 2, Side: game.SideEnemy, Ammo: game.AmmoNormal, Angle: 130, Power: 55, Wind: -0.02})

	var buf bytes.Buffer
	n, err := rec.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, buffer has %d", n, buf.Len())
	}

	f, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if f.Seed != 99 || f.Label != "duel" || len(f.Shots) != 2 {
		t.Fatalf("unexpected file %+v", f)
	}
	if f.Shots[1].Wind != -0.02 || f.Shots[1].Side != "enemy" {
		t.Errorf("second shot = %+v", f.Shots[1])
	}
	if got := f.BySide(); got["player"] != 1 || got["enemy"] != 1 {
		t.Errorf("BySide = %v", got)
	}
}

func TestRead_RejectsOtherVersions(t *testing.T) {
	b, err := msgpack.Marshal(&File{Version: FormatVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Read(bytes.NewReader(b)); err == nil {
		t.Fatal("expected version error")
	}
	if _, err := Read(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Fatal("expected decode error")
	}
}
