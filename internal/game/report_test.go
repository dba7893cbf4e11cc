package game

import (
	"strings"
	"testing"
)

func TestBuildReport(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "--", "round", "setup", "level=1", 1)
	sl.Add(10, "P", "shot", "fire", "heavy a=45.0 p=60", 60)
	sl.Add(40, "P", "impact", "tank", "heavy x=800 y=380", 800)
	sl.Add(40, "E", "damage", "hit", "-48 hp=52/100", 48)
	sl.Add(90, "E", "shot", "fire", "normal a=140.0 p=70", 70)
	sl.Add(130, "E", "impact", "ground", "normal x=300 y=420", 300)
	sl.Add(200, "P", "shot", "fire", "cluster a=50.0 p=55", 55)
	sl.Add(240, "P", "impact", "wall", "cluster x=512 y=300", 512)
	sl.Add(240, "P", "cluster", "fragment", "n=4", 4)
	sl.Add(241, "P", "impact", "tank", "normal x=801 y=380", 801)
	sl.Add(241, "E", "damage", "hit", "-52 hp=0/100", 52)
	sl.Add(241, "P", "round", "end", "victory level=1", 1)
	sl.Add(332, "--", "round", "setup", "level=2", 2)
	sl.Add(340, "P", "ammo", "empty", "heavy", 0)
	sl.Add(360, "--", "wind", "change", "→ light", 0.03)
	sl.Add(400, "E", "impact", "expired", "normal", 0)
	sl.Add(410, "--", "terrain", "crater", "x=1", 20)

	r := BuildReport(sl)
	if r.Player.Shots != 2 || r.Player.Hits != 2 || r.Player.DamageDealt != 100 || r.Player.WallHits != 1 {
		t.Fatalf("player %+v", r.Player)
	}
	if r.Player.AmmoUsed[AmmoHeavy] != 1 || r.Player.AmmoUsed[AmmoCluster] != 1 {
		t.Fatalf("player ammo %v", r.Player.AmmoUsed)
	}
	if r.Enemy.Shots != 1 || r.Enemy.GroundHits != 1 || r.Enemy.Misses != 1 || r.Enemy.DamageDealt != 0 {
		t.Fatalf("enemy %+v", r.Enemy)
	}
	if r.Victories != 1 || r.Defeats != 0 || r.HighestLevel != 2 || r.FirstHitTick != 40 {
		t.Fatalf("rounds %+v", r)
	}
	if r.ClusterSplits != 1 || r.Fragments != 4 || r.Craters != 1 || r.EmptyClicks != 1 || r.WindChanges != 1 {
		t.Fatalf("events %+v", r)
	}
	if r.Ticks != 410 {
		t.Fatalf("ticks = %d", r.Ticks)
	}
	if acc := r.Player.Accuracy(); acc != 1 {
		t.Fatalf("accuracy = %v", acc)
	}
	out := r.String()
	if !strings.Contains(out, "ammo=cluster:1,heavy:1") || !strings.Contains(out, "victories=1") {
		t.Fatalf("report text:\n%s", out)
	}
}

func TestBuildReport_FromMatch(t *testing.T) {
	tm := NewTestMatch(WithFlatGround(400), WithoutWalls(), WithCalmWind(), WithTankHealth(SideEnemy, 10))
	e := tm.Enemy()
	tm.Primary = &Projectile{X: e.X, Y: e.Y - 20, Radius: 5, Owner: SidePlayer, Ammo: AmmoNormal, Life: 1}
	tm.shooter = SidePlayer
	tm.Phase = PhaseResolving
	tm.Tick(TickDT)

	r := BuildReport(tm.SimLog)
	if r.Player.Hits != 1 || r.Player.DamageDealt != 10 || r.Victories != 1 {
		tm.Dump(t)
		t.Fatalf("report %+v", r)
	}
}
