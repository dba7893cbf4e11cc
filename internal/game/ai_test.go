package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestErrorEnvelope_ShrinksWithLevel(t *testing.T) {
	cfg := DefaultConfig().AI
	a, p := ErrorEnvelope(5, cfg)
	if math.Abs(a-25.0/6) > 1e-9 || math.Abs(p-20.0/6) > 1e-9 {
		t.Fatalf("level 5 envelope = (%v,%v), want (%v,%v)", a, p, 25.0/6, 20.0/6)
	}
	a1, p1 := ErrorEnvelope(1, cfg)
	a0, p0 := ErrorEnvelope(0, cfg)
	if a0 != a1 || p0 != p1 {
		t.Fatal("level below 1 should be treated as level 1")
	}
	prev := a1
	for lvl := 2; lvl <= 10; lvl++ {
		cur, _ := ErrorEnvelope(lvl, cfg)
		if cur >= prev {
			t.Fatalf("envelope did not shrink at level %d: %v >= %v", lvl, cur, prev)
		}
		prev = cur
	}
}

func TestEstimateShot_MirrorsForLeftwardShots(t *testing.T) {
	cfg := DefaultConfig()
	lim := LimitsFrom(cfg)
	left := NewTank(SidePlayer, 100, 100, cfg.Tank)
	right := NewTank(SideEnemy, 900, 100, cfg.Tank)
	left.Y, right.Y = 400, 400

	toRight := EstimateShot(left, 900, 400, cfg.AI, lim)
	toLeft := EstimateShot(right, 100, 400, cfg.AI, lim)
	if toRight.Angle <= 0 || toRight.Angle >= 90 {
		t.Fatalf("rightward angle %v not in (0,90)", toRight.Angle)
	}
	if toLeft.Angle <= 90 || toLeft.Angle >= 180 {
		t.Fatalf("leftward angle %v not in (90,180)", toLeft.Angle)
	}
	if math.Abs((180-toLeft.Angle)-toRight.Angle) > 1e-9 {
		t.Fatalf("shots are not mirror images: %v vs %v", toRight.Angle, toLeft.Angle)
	}
	if toLeft.Power != toRight.Power {
		t.Fatalf("power differs: %v vs %v", toLeft.Power, toRight.Power)
	}
}

func TestChooseShot_AlwaysWithinLimits(t *testing.T) {
	cfg := DefaultConfig()
	lim := LimitsFrom(cfg)
	rng := rand.New(rand.NewSource(17))
	positions := [][2]float64{{874, 150}, {1000, 10}, {100, 1000}, {500, 520}}
	for _, pos := range positions {
		attacker := NewTank(SideEnemy, pos[0], 100, cfg.Tank)
		defender := NewTank(SidePlayer, pos[1], 100, cfg.Tank)
		attacker.Y, defender.Y = 300, 500
		for lvl := 1; lvl <= 8; lvl++ {
			for i := 0; i < 50; i++ {
				s := ChooseShot(attacker, defender, lvl, cfg.AI, lim, rng)
				if s.Angle < lim.MinAngle || s.Angle > lim.MaxAngle {
					t.Fatalf("angle %v outside [%v,%v]", s.Angle, lim.MinAngle, lim.MaxAngle)
				}
				if s.Power < lim.MinPower || s.Power > lim.MaxPower {
					t.Fatalf("power %v outside [%v,%v]", s.Power, lim.MinPower, lim.MaxPower)
				}
			}
		}
	}
}

func TestChooseShot_ErrorBoundedByEnvelope(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AI.AimJitter = 0
	lim := LimitsFrom(cfg)
	attacker := NewTank(SideEnemy, 874, 100, cfg.Tank)
	defender := NewTank(SidePlayer, 150, 100, cfg.Tank)
	attacker.Y, defender.Y = 400, 400
	base := EstimateShot(attacker, defender.X, defender.Y-defender.Height/2, cfg.AI, lim)
	maxA, maxP := ErrorEnvelope(3, cfg.AI)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		s := ChooseShot(attacker, defender, 3, cfg.AI, lim, rng)
		if math.Abs(s.Angle-base.Angle) > maxA/2+1e-9 {
			t.Fatalf("angle error %v exceeds %v", s.Angle-base.Angle, maxA/2)
		}
		if math.Abs(s.Power-base.Power) > maxP/2+1e-9 {
			t.Fatalf("power error %v exceeds %v", s.Power-base.Power, maxP/2)
		}
	}
}
