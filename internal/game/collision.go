package game

// CollisionKind tags the result of one collision check.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionExpired
	CollisionGround
	CollisionWall
	CollisionTank
	CollisionOffscreen
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionNone:
		return "none"
	case CollisionExpired:
		return "expired"
	case CollisionGround:
		return "ground"
	case CollisionWall:
		return "wall"
	case CollisionTank:
		return "tank"
	case CollisionOffscreen:
		return "offscreen"
	default:
		return "unknown"
	}
}

// CollisionOutcome is what a projectile ran into this step. Wall is set only
// for CollisionWall, Tank only for CollisionTank; X/Y is the impact point for
// ground, wall and tank hits.
type CollisionOutcome struct {
	Kind CollisionKind
	X, Y float64
	Wall *Wall
	Tank *Tank
}

// Hit reports whether the outcome ends the projectile.
func (o CollisionOutcome) Hit() bool { return o.Kind != CollisionNone }

// Explodes reports whether the outcome has an impact point.
func (o CollisionOutcome) Explodes() bool {
	return o.Kind == CollisionGround || o.Kind == CollisionWall || o.Kind == CollisionTank
}

// CheckCollision tests p in fixed priority order: expired, ground, wall, tank
// (never the owner), offscreen. The first match wins.
func CheckCollision(p *Projectile, ter *Terrain, walls []Wall, tanks []*Tank) CollisionOutcome {
	if p.Expired() {
		return CollisionOutcome{Kind: CollisionExpired}
	}
	if ground := ter.HeightAt(p.X); p.Y+p.Radius >= ground {
		return CollisionOutcome{Kind: CollisionGround, X: p.X, Y: ground}
	}
	for i := range walls {
		if walls[i].ContainsStrict(p.X, p.Y) {
			return CollisionOutcome{Kind: CollisionWall, X: p.X, Y: p.Y, Wall: &walls[i]}
		}
	}
	for _, t := range tanks {
		if t == nil || t.Side == p.Owner {
			continue
		}
		if t.Body().OverlapsBox(p.X, p.Y, p.Radius) {
			return CollisionOutcome{Kind: CollisionTank, X: p.X, Y: p.Y, Tank: t}
		}
	}
	if margin := p.Radius * 5; p.X < -margin || p.X > ter.Width+margin {
		return CollisionOutcome{Kind: CollisionOffscreen}
	}
	return CollisionOutcome{Kind: CollisionNone}
}
