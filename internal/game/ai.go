package game

import (
	"math"
	"math/rand"
)

// Shot is a firing solution.
type Shot struct {
	Angle float64
	Power float64
}

// ShotLimits bounds a firing solution.
type ShotLimits struct {
	MinAngle, MaxAngle float64
	MinPower, MaxPower float64
}

// LimitsFrom collects the angle and power bounds from the config.
func LimitsFrom(cfg Config) ShotLimits {
	return ShotLimits{
		MinAngle: cfg.Tank.MinAngle,
		MaxAngle: cfg.Tank.MaxAngle,
		MinPower: cfg.Physics.MinPower,
		MaxPower: cfg.Physics.MaxPower,
	}
}

// ErrorEnvelope returns the maximum random angle and power perturbation for
// a level. Higher levels shrink the envelope.
func ErrorEnvelope(level int, cfg AIConfig) (angle, power float64) {
	if level < 1 {
		level = 1
	}
	return cfg.AngleErrorBase / float64(level+1), cfg.PowerErrorBase / float64(level+1)
}

// EstimateShot is the error-free heuristic: power from straight-line distance,
// angle from the bearing to the aim point raised by distance/(power*k+c).
// The raise always lifts the barrel toward vertical, whichever way the
// attacker faces. It is a coarse guess, not an inverted ballistic solution.
func EstimateShot(attacker *Tank, aimX, aimY float64, cfg AIConfig, lim ShotLimits) Shot {
	dx := aimX - attacker.X
	dy := attacker.Y - aimY
	dist := math.Hypot(dx, dy)
	power := clamp(cfg.BasePower+dist*cfg.PowerPerPixel, lim.MinPower, lim.MaxPower)

	angle := math.Atan2(dy, dx) * 180 / math.Pi
	if angle < -90 {
		// down-and-left bearings continue past 180 instead of wrapping negative
		angle += 360
	}
	lift := dist / (power*cfg.ElevationMul + cfg.ElevationAdd)
	if dx < 0 {
		// leftward bearings sit in (90,180]; toward vertical is a smaller angle
		angle -= lift
	} else {
		angle += lift
	}
	return Shot{Angle: angle, Power: power}
}

// ChooseShot aims attacker at defender: a jittered aim point near the
// defender's centre, the heuristic estimate, then independent angle and power
// errors drawn from the level's envelope. The result is always inside lim.
func ChooseShot(attacker, defender *Tank, level int, cfg AIConfig, lim ShotLimits, rng *rand.Rand) Shot {
	aimX := defender.X + (rng.Float64()-0.5)*defender.Width*cfg.AimJitter
	aimY := defender.Y - defender.Height/2
	shot := EstimateShot(attacker, aimX, aimY, cfg, lim)

	maxAngle, maxPower := ErrorEnvelope(level, cfg)
	shot.Angle += (rng.Float64() - 0.5) * maxAngle
	shot.Power += (rng.Float64() - 0.5) * maxPower

	shot.Angle = clamp(shot.Angle, lim.MinAngle, lim.MaxAngle)
	shot.Power = clamp(shot.Power, lim.MinPower, lim.MaxPower)
	return shot
}
