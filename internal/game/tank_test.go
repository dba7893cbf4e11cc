package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestTank_AngleClampAndDamage(t *testing.T) {
	cfg := DefaultConfig().Tank
	tk := NewTank(SidePlayer, 100, 100, cfg)
	if tk.Angle != cfg.PlayerStartAim || !tk.FacingRight {
		t.Fatalf("player start = angle %v facingRight %v", tk.Angle, tk.FacingRight)
	}
	tk.SetAngle(400)
	if tk.Angle != cfg.MaxAngle {
		t.Fatalf("angle = %v, want %v", tk.Angle, cfg.MaxAngle)
	}
	tk.SetAngle(-10)
	if tk.Angle != cfg.MinAngle {
		t.Fatalf("angle = %v, want %v", tk.Angle, cfg.MinAngle)
	}

	if got := tk.TakeDamage(30); got != 30 || tk.Health != 70 {
		t.Fatalf("applied %d, health %d", got, tk.Health)
	}
	if got := tk.TakeDamage(500); got != 70 || tk.Health != 0 || tk.Alive() {
		t.Fatalf("overkill applied %d, health %d", got, tk.Health)
	}
}

func TestTank_BarrelGeometry(t *testing.T) {
	cfg := DefaultConfig().Tank
	tk := NewTank(SideEnemy, 500, 100, cfg)
	tk.Y = 400
	if tk.Angle != cfg.EnemyStartAngle || tk.FacingRight {
		t.Fatalf("enemy start = angle %v facingRight %v", tk.Angle, tk.FacingRight)
	}
	tk.SetAngle(90)
	p := tk.Pivot()
	end := tk.BarrelEnd()
	if math.Abs(end.X-p.X) > 1e-9 || math.Abs(p.Y-end.Y-cfg.BarrelLength) > 1e-9 {
		t.Fatalf("vertical barrel: pivot %v end %v", p, end)
	}
	body := tk.Body()
	if body.Y+body.H != 400 || body.X+body.W/2 != 500 {
		t.Fatalf("body %+v does not stand on (500,400)", body)
	}
}

func TestSide_Opponent(t *testing.T) {
	if SidePlayer.Opponent() != SideEnemy || SideEnemy.Opponent() != SidePlayer {
		t.Fatal("opponent mapping")
	}
	if SidePlayer.Label() != "P" || SideEnemy.Label() != "E" {
		t.Fatal("labels")
	}
}

func TestParticleSystem_PoolOverwrites(t *testing.T) {
	ps := NewParticleSystem(10)
	rng := rand.New(rand.NewSource(1))
	ps.Burst(0, 0, 25, rng)
	if ps.Len() != 10 {
		t.Fatalf("pool holds %d, want 10", ps.Len())
	}
	phys := DefaultConfig().Physics
	for i := 0; i < 200; i++ {
		ps.Update(TickDT, phys)
	}
	if ps.Len() != 0 {
		t.Fatalf("%d particles survived 200 ticks", ps.Len())
	}
	ps.Burst(0, 0, 3, rng)
	ps.Clear()
	if ps.Len() != 0 {
		t.Fatal("clear left particles")
	}
}
