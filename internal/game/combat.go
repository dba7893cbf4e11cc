package game

import "fmt"

// Fragments spray around straight down.
const fragmentBaseAngle = 270.0

// resolveImpact applies one collision outcome. Expired and offscreen shells
// vanish silently. Everything else explodes: sound, debris, then tank damage,
// crater carving or fragmentation depending on what was hit and the ammo.
func (m *MatchContext) resolveImpact(p *Projectile, out CollisionOutcome) {
	side := p.Owner.Label()
	if !out.Explodes() {
		m.SimLog.Add(m.tick, side, "impact", out.Kind.String(), string(p.Ammo), 0)
		return
	}

	kind, ok := m.catalog.Kind(p.Ammo)
	if !ok {
		kind = m.catalog.Default()
	}
	dmg := kind.RollDamage(m.rng)

	m.sound.Play(SoundExplode)
	mc := m.cfg.Match
	n := mc.ParticleMin
	if mc.ParticleJitter > 0 {
		n += m.rng.Intn(mc.ParticleJitter)
	}
	m.Particles.Burst(out.X, out.Y, n, m.rng)
	m.SimLog.Add(m.tick, side, "impact", out.Kind.String(),
		fmt.Sprintf("%s x=%.0f y=%.0f", kind.ID, out.X, out.Y), out.X)

	switch out.Kind {
	case CollisionTank:
		applied := out.Tank.TakeDamage(dmg)
		m.SimLog.Add(m.tick, out.Tank.Side.Label(), "damage", "hit",
			fmt.Sprintf("-%d hp=%d/%d", applied, out.Tank.Health, out.Tank.MaxHealth), float64(applied))
		m.evaluateRound()
	case CollisionGround:
		if _, heavy := kind.Effect.(HeavyImpact); heavy {
			m.carveCrater(out.X)
		}
	}

	if c, ok := kind.Effect.(Cluster); ok && !p.Secondary {
		m.spawnFragments(out.X, out.Y, c, p.Owner)
	}
}

// carveCrater deforms the ground around x and re-seats both tanks.
func (m *MatchContext) carveCrater(x float64) {
	cc := m.cfg.Combat
	radius := cc.CraterRadius + m.rng.Float64()*cc.CraterRadiusJitter
	depth := cc.CraterDepth + m.rng.Float64()*cc.CraterDepthJitter
	touched := m.Terrain.Deform(x, radius, depth)
	for _, t := range m.Tanks {
		if t != nil {
			t.SnapTo(m.Terrain)
		}
	}
	m.SimLog.Add(m.tick, "--", "terrain", "crater",
		fmt.Sprintf("x=%.0f r=%.1f d=%.1f samples=%d", x, radius, depth, touched), depth)
}

// spawnFragments throws c.Count secondary shells downward from the impact.
// They fly as the default kind and never fragment again.
func (m *MatchContext) spawnFragments(x, y float64, c Cluster, owner Side) {
	cc := m.cfg.Combat
	base := m.catalog.Default()
	for i := 0; i < c.Count; i++ {
		angle := fragmentBaseAngle + (m.rng.Float64()-0.5)*c.Spread + (m.rng.Float64()-0.5)*cc.FragmentAngleJitter
		power := cc.FragmentPower + m.rng.Float64()*cc.FragmentPowerJitter
		f := SpawnProjectile(x, y+cc.FragmentSpawnOffsetY, angle, power, owner, base, m.cfg.Physics)
		f.Life = cc.FragmentLifetime + m.rng.Float64()*cc.FragmentLifeJitter
		f.Secondary = true
		m.Secondaries = append(m.Secondaries, f)
	}
	m.SimLog.Add(m.tick, owner.Label(), "cluster", "fragment", fmt.Sprintf("n=%d", c.Count), float64(c.Count))
}
