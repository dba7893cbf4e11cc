package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lyminhthai2009/tank-duel/internal/game"
	"github.com/lyminhthai2009/tank-duel/internal/replay"
)

func TestDetectStalemate_FalseWhenRoundResolved(t *testing.T) {
	rs := runStats{report: game.MatchReport{
		Victories: 1,
		Player:    game.SideReport{Shots: 20},
		Enemy:     game.SideReport{Shots: 20},
	}}
	if stalled, reason := detectStalemate(rs); stalled {
		t.Fatalf("expected stalemate=false once a round ended (reason=%s)", reason)
	}
}

func TestDetectStalemate_TrueWhenShotsMissForever(t *testing.T) {
	rs := runStats{report: game.MatchReport{
		Player: game.SideReport{Shots: 10, Hits: 0},
		Enemy:  game.SideReport{Shots: 10, Hits: 1},
	}}
	stalled, reason := detectStalemate(rs)
	if !stalled {
		t.Fatalf("expected stalemate=true, got false (reason=%s)", reason)
	}
	if !strings.Contains(reason, "low_hit_rate") {
		t.Fatalf("expected reason to mention low_hit_rate, got: %s", reason)
	}
}

func TestDetectStalemate_FalseWhenTooFewShots(t *testing.T) {
	rs := runStats{report: game.MatchReport{Player: game.SideReport{Shots: 2}}}
	if stalled, _ := detectStalemate(rs); stalled {
		t.Fatal("expected stalemate=false with too few shots")
	}
}

func TestRunMatch_DeterministicPerSeed(t *testing.T) {
	quiet := log.New(io.Discard)
	a, err := runMatch(game.DefaultConfig(), quiet, 1, 11, 60*40, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := runMatch(game.DefaultConfig(), quiet, 1, 11, 60*40, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.shots == 0 {
		t.Fatal("no shots fired in 40 simulated seconds")
	}
	if a.report.String() != b.report.String() || a.shots != b.shots {
		t.Fatalf("same seed diverged:\n%s\nvs\n%s", a.report, b.report)
	}
}

func TestWriteReplay(t *testing.T) {
	dir := t.TempDir()
	rs, err := runMatch(game.DefaultConfig(), log.New(io.Discard), 2, 5, 60*20, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := writeReplay(dir, rs); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "run-02-seed-5.msgpack"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := replay.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != 5 || len(got.Shots) != rs.shots {
		t.Fatalf("replay seed=%d shots=%d, want 5 and %d", got.Seed, len(got.Shots), rs.shots)
	}
}

func TestFormatCounts_Sorted(t *testing.T) {
	got := formatCounts(map[game.AmmoID]int{game.AmmoNormal: 3, game.AmmoCluster: 1})
	if got != "cluster=1 normal=3" {
		t.Fatalf("formatCounts = %q", got)
	}
}
