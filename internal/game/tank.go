package game

import "math"

// Side identifies the two combatants.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Label is the short tag used in event logs.
func (s Side) Label() string {
	if s == SidePlayer {
		return "P"
	}
	return "E"
}

// Tank sits on the terrain with (X, Y) at its ground-contact midpoint.
type Tank struct {
	Side        Side
	X, Y        float64
	Width       float64
	Height      float64
	Angle       float64 // barrel angle in degrees, counterclockwise from +x
	FacingRight bool
	Health      int
	MaxHealth   int

	barrelLength float64
	barrelPivot  float64
	minAngle     float64
	maxAngle     float64
}

// NewTank builds a tank at x with the configured geometry. Call SnapTo to
// place it on the ground.
func NewTank(side Side, x float64, health int, cfg TankConfig) *Tank {
	t := &Tank{
		Side:         side,
		X:            x,
		Width:        cfg.Width,
		Height:       cfg.Height,
		FacingRight:  side == SidePlayer,
		Health:       health,
		MaxHealth:    health,
		barrelLength: cfg.BarrelLength,
		barrelPivot:  cfg.BarrelPivot,
		minAngle:     cfg.MinAngle,
		maxAngle:     cfg.MaxAngle,
	}
	if side == SidePlayer {
		t.Angle = cfg.PlayerStartAim
	} else {
		t.Angle = cfg.EnemyStartAngle
	}
	return t
}

// SnapTo sets Y to the ground height under the tank.
func (t *Tank) SnapTo(ter *Terrain) { t.Y = ter.HeightAt(t.X) }

// Alive reports whether health is above zero.
func (t *Tank) Alive() bool { return t.Health > 0 }

// SetAngle clamps the barrel into the allowed arc.
func (t *Tank) SetAngle(deg float64) { t.Angle = clamp(deg, t.minAngle, t.maxAngle) }

// TakeDamage subtracts amount, flooring at zero, and returns the damage
// actually applied.
func (t *Tank) TakeDamage(amount int) int {
	before := t.Health
	t.Health -= amount
	if t.Health < 0 {
		t.Health = 0
	}
	return before - t.Health
}

// Body is the hit box: Width x Height standing on the ground-contact point.
func (t *Tank) Body() Rect {
	return Rect{X: t.X - t.Width/2, Y: t.Y - t.Height, W: t.Width, H: t.Height}
}

// Pivot is the barrel's rotation point.
func (t *Tank) Pivot() Point {
	return Point{X: t.X, Y: t.Y - t.Height*t.barrelPivot}
}

// BarrelEnd is where shells leave the barrel.
func (t *Tank) BarrelEnd() Point {
	rad := t.Angle * math.Pi / 180
	p := t.Pivot()
	return Point{X: p.X + t.barrelLength*math.Cos(rad), Y: p.Y - t.barrelLength*math.Sin(rad)}
}

// HealthFraction is Health/MaxHealth in [0,1].
func (t *Tank) HealthFraction() float64 {
	if t.MaxHealth <= 0 {
		return 0
	}
	return clamp(float64(t.Health)/float64(t.MaxHealth), 0, 1)
}

// Wall is a static obstacle placed once per level.
type Wall struct {
	Rect
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// ContainsStrict reports whether (x,y) lies strictly inside r; points on the
// edge are outside.
func (r Rect) ContainsStrict(x, y float64) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

// OverlapsBox reports whether the box of half-size radius around (x,y)
// overlaps r, excluding touching edges.
func (r Rect) OverlapsBox(x, y, radius float64) bool {
	return x+radius > r.X && x-radius < r.X+r.W &&
		y+radius > r.Y && y-radius < r.Y+r.H
}
