package game

import (
	"image/color"
	"math"
	"math/rand"
)

// Particle is explosion debris. It has no gameplay effect.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64
	MaxLife float64
	Radius  float64
	Gravity float64 // per-particle gravity factor
	Col     color.RGBA
}

// Alpha is the draw opacity in [0,1], fading with remaining life.
func (p *Particle) Alpha() float64 { return clamp(p.Life*1.5, 0, 1) }

var debrisPalette = [...]color.RGBA{
	{R: 255, G: 165, B: 0, A: 255},  // orange
	{R: 255, G: 140, B: 0, A: 255},  // dark orange
	{R: 255, G: 69, B: 0, A: 255},   // orange red
	{R: 255, G: 215, B: 0, A: 255},  // gold
}

// ParticleSystem is a bounded debris pool. When full, new particles overwrite
// old ones in circular order.
type ParticleSystem struct {
	Max    int
	P      []Particle
	ovrIdx int
}

// NewParticleSystem allocates a pool of at most maxParticles.
func NewParticleSystem(maxParticles int) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = 2000
	}
	return &ParticleSystem{Max: maxParticles, P: make([]Particle, 0, maxParticles)}
}

// Clear drops every particle.
func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

// Add inserts one particle.
func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// Burst emits count debris particles at (x,y).
func (ps *ParticleSystem) Burst(x, y float64, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		a := rng.Float64() * math.Pi * 2
		speed := 1 + rng.Float64()*5
		life := 0.4 + rng.Float64()*0.8
		ps.Add(Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(a) * speed,
			VY:      math.Sin(a)*speed - rng.Float64()*2,
			Life:    life,
			MaxLife: life,
			Radius:  1 + rng.Float64()*3,
			Gravity: 0.5 + rng.Float64()*0.5,
			Col:     debrisPalette[rng.Intn(len(debrisPalette))],
		})
	}
}

// Update integrates and prunes particles that faded or shrank away.
func (ps *ParticleSystem) Update(dt float64, cfg PhysicsConfig) {
	kept := ps.P[:0]
	for _, p := range ps.P {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.VY += cfg.Gravity * 5 * p.Gravity * dt
		p.X += p.VX * cfg.TimeScale * dt
		p.Y += p.VY * cfg.TimeScale * dt
		p.Radius *= 0.96
		if p.Radius < 0.5 {
			continue
		}
		kept = append(kept, p)
	}
	ps.P = kept
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// Len is the number of live particles.
func (ps *ParticleSystem) Len() int { return len(ps.P) }
