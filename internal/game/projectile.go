package game

import "math"

// Point is a 2D position in playfield pixels.
type Point struct {
	X, Y float64
}

// Projectile is a shell in flight. Owner identifies the firing side only.
type Projectile struct {
	X, Y      float64
	VX, VY    float64
	Radius    float64
	Owner     Side
	Ammo      AmmoID
	Life      float64 // seconds left before the shell expires
	Secondary bool    // cluster fragment; never fragments again

	trail    []Point
	trailCap int
}

// SpawnProjectile launches a shell from (x,y). angleDeg is counterclockwise
// from +x; screen y grows downward so the vertical component is negated.
func SpawnProjectile(x, y, angleDeg, power float64, owner Side, kind AmmoKind, cfg PhysicsConfig) *Projectile {
	rad := angleDeg * math.Pi / 180
	speed := power * cfg.SpeedFactor
	p := &Projectile{
		X:        x,
		Y:        y,
		VX:       speed * math.Cos(rad),
		VY:       -speed * math.Sin(rad),
		Radius:   kind.Radius,
		Owner:    owner,
		Ammo:     kind.ID,
		Life:     cfg.Lifetime,
		trailCap: cfg.TrailLength,
	}
	p.pushTrail()
	return p
}

// Expired reports whether the lifetime budget is spent.
func (p *Projectile) Expired() bool { return p.Life <= 0 }

// Step advances the shell by dt seconds under gravity and wind. An expired
// shell is not integrated.
func (p *Projectile) Step(dt, wind float64, cfg PhysicsConfig) {
	p.Life -= dt
	if p.Expired() {
		return
	}
	p.VY += cfg.Gravity * cfg.GravityScale * dt
	p.VX += wind * cfg.WindScale * dt
	p.X += p.VX * cfg.TimeScale * dt
	p.Y += p.VY * cfg.TimeScale * dt
	p.pushTrail()
}

// Trail returns recent positions, oldest first. Rendering only.
func (p *Projectile) Trail() []Point { return p.trail }

func (p *Projectile) pushTrail() {
	if p.trailCap <= 0 {
		return
	}
	if len(p.trail) >= p.trailCap {
		copy(p.trail, p.trail[1:])
		p.trail = p.trail[:len(p.trail)-1]
	}
	p.trail = append(p.trail, Point{p.X, p.Y})
}
