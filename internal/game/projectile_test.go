package game

import (
	"math"
	"testing"
)

func normalKind(t *testing.T) AmmoKind {
	t.Helper()
	cat, err := DefaultConfig().Ammo.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	return cat.Default()
}

func TestSpawnProjectile_Velocity(t *testing.T) {
	phys := DefaultConfig().Physics
	p := SpawnProjectile(0, 0, 90, 50, SidePlayer, normalKind(t), phys)
	speed := 50 * phys.SpeedFactor
	if math.Abs(p.VX) > 1e-9 {
		t.Fatalf("vertical shot has VX=%v", p.VX)
	}
	if math.Abs(p.VY+speed) > 1e-9 {
		t.Fatalf("VY = %v, want %v (upward is negative)", p.VY, -speed)
	}
	if p.Life != phys.Lifetime {
		t.Fatalf("Life = %v, want %v", p.Life, phys.Lifetime)
	}
}

func TestProjectileStep_Deterministic(t *testing.T) {
	phys := DefaultConfig().Physics
	a := SpawnProjectile(100, 400, 45, 60, SidePlayer, normalKind(t), phys)
	b := SpawnProjectile(100, 400, 45, 60, SidePlayer, normalKind(t), phys)
	for i := 0; i < 120; i++ {
		a.Step(TickDT, 0.03, phys)
		b.Step(TickDT, 0.03, phys)
	}
	if a.X != b.X || a.Y != b.Y || a.VX != b.VX || a.VY != b.VY {
		t.Fatalf("identical shells diverged: (%v,%v) vs (%v,%v)", a.X, a.Y, b.X, b.Y)
	}
}

func TestProjectileStep_GravityAndWind(t *testing.T) {
	phys := DefaultConfig().Physics
	calm := SpawnProjectile(100, 400, 45, 60, SidePlayer, normalKind(t), phys)
	windy := SpawnProjectile(100, 400, 45, 60, SidePlayer, normalKind(t), phys)
	vy0 := calm.VY
	for i := 0; i < 60; i++ {
		calm.Step(TickDT, 0, phys)
		windy.Step(TickDT, 0.05, phys)
	}
	if calm.VY <= vy0 {
		t.Fatalf("gravity did not pull the shell down: VY %v -> %v", vy0, calm.VY)
	}
	if windy.X <= calm.X {
		t.Fatalf("tailwind shell at x=%v, calm shell at x=%v", windy.X, calm.X)
	}
}

func TestProjectileStep_ExpiredDoesNotMove(t *testing.T) {
	phys := DefaultConfig().Physics
	p := SpawnProjectile(10, 10, 30, 40, SidePlayer, normalKind(t), phys)
	p.Life = TickDT / 2
	p.Step(TickDT, 0, phys)
	if !p.Expired() {
		t.Fatal("shell should be expired")
	}
	if p.X != 10 || p.Y != 10 {
		t.Fatalf("expired shell moved to (%v,%v)", p.X, p.Y)
	}
}

func TestProjectileTrail_Capped(t *testing.T) {
	phys := DefaultConfig().Physics
	p := SpawnProjectile(0, 0, 45, 60, SidePlayer, normalKind(t), phys)
	for i := 0; i < phys.TrailLength*3; i++ {
		p.Step(TickDT, 0, phys)
	}
	trail := p.Trail()
	if len(trail) != phys.TrailLength {
		t.Fatalf("trail length %d, want %d", len(trail), phys.TrailLength)
	}
	if last := trail[len(trail)-1]; last.X != p.X || last.Y != p.Y {
		t.Fatalf("newest trail point %v is not the shell position (%v,%v)", last, p.X, p.Y)
	}
}
