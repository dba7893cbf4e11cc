package game

import (
	"math"
	"math/rand"
)

// WindState is a horizontal acceleration bias shared by every shell in
// flight, re-rolled on a fixed timer.
type WindState struct {
	Speed float64
	timer float64
}

// Reroll draws a new speed in [-MaxSpeed, MaxSpeed), pushing near-zero draws
// out to +/-MinMagnitude so there is always some drift.
func (w *WindState) Reroll(cfg WindConfig, rng *rand.Rand) {
	w.Speed = (rng.Float64() - 0.5) * 2 * cfg.MaxSpeed
	if math.Abs(w.Speed) < cfg.MinMagnitude {
		sign := 1.0
		if w.Speed < 0 {
			sign = -1
		}
		w.Speed = cfg.MinMagnitude * sign
	}
	w.timer = 0
}

// Update advances the timer and re-rolls when the interval elapses. It
// reports whether the speed changed.
func (w *WindState) Update(dt float64, cfg WindConfig, rng *rand.Rand) bool {
	w.timer += dt
	if w.timer < cfg.Interval {
		return false
	}
	w.Reroll(cfg, rng)
	return true
}

// Label is the HUD description: an arrow and a strength word.
func (w WindState) Label() string {
	abs := math.Abs(w.Speed)
	if abs < 0.015 {
		return "-- calm"
	}
	dir := "→"
	if w.Speed < 0 {
		dir = "←"
	}
	switch {
	case abs < 0.06:
		return dir + " light"
	case abs < 0.11:
		return dir + " moderate"
	default:
		return dir + " strong"
	}
}
