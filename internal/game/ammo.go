package game

import (
	"fmt"
	"math/rand"
)

// AmmoID names an ammo kind. It is also the key of the persisted ammo counts.
type AmmoID string

const (
	AmmoNormal  AmmoID = "normal"
	AmmoCluster AmmoID = "cluster"
	AmmoHeavy   AmmoID = "heavy"
)

// Unlimited marks an inventory slot that never runs out.
const Unlimited = -1

// Effect is the special behaviour of an ammo kind on impact. A nil Effect is
// plain explosive damage.
type Effect interface {
	effectName() string
}

// Cluster fragments the primary projectile into Count sub-munitions fanned
// around straight down within Spread degrees.
type Cluster struct {
	Count  int
	Spread float64
}

// HeavyImpact craters the terrain when it lands on ground.
type HeavyImpact struct{}

func (Cluster) effectName() string     { return "cluster" }
func (HeavyImpact) effectName() string { return "heavy_impact" }

// EffectName returns the tag of e, or "none".
func EffectName(e Effect) string {
	if e == nil {
		return "none"
	}
	return e.effectName()
}

// AmmoKind is an immutable catalog entry.
type AmmoKind struct {
	ID       AmmoID
	Name     string
	DamageLo int
	DamageHi int
	Radius   float64
	Effect   Effect
}

// RollDamage returns an integer uniformly drawn from [DamageLo, DamageHi].
func (k AmmoKind) RollDamage(rng *rand.Rand) int {
	if k.DamageHi <= k.DamageLo {
		return k.DamageLo
	}
	return k.DamageLo + rng.Intn(k.DamageHi-k.DamageLo+1)
}

// Catalog maps ammo IDs to kinds and remembers their display order.
type Catalog struct {
	kinds map[AmmoID]AmmoKind
	order []AmmoID
	def   AmmoID
}

// Catalog converts the YAML ammo specs into typed kinds.
func (c AmmoConfig) Catalog() (*Catalog, error) {
	cat := &Catalog{kinds: make(map[AmmoID]AmmoKind, len(c.Kinds)), def: c.Default}
	for _, s := range c.Kinds {
		if s.ID == "" {
			return nil, fmt.Errorf("ammo kind without id")
		}
		if _, dup := cat.kinds[s.ID]; dup {
			return nil, fmt.Errorf("duplicate ammo kind %q", s.ID)
		}
		if s.DamageLo < 0 || s.DamageHi < s.DamageLo {
			return nil, fmt.Errorf("ammo %q: damage range [%d,%d] is invalid", s.ID, s.DamageLo, s.DamageHi)
		}
		k := AmmoKind{ID: s.ID, Name: s.Name, DamageLo: s.DamageLo, DamageHi: s.DamageHi, Radius: s.Radius}
		if k.Radius <= 0 {
			k.Radius = 5
		}
		switch s.Effect {
		case "", "none":
		case "cluster":
			if s.Count <= 0 {
				return nil, fmt.Errorf("ammo %q: cluster needs a positive count", s.ID)
			}
			k.Effect = Cluster{Count: s.Count, Spread: s.Spread}
		case "heavy_impact":
			k.Effect = HeavyImpact{}
		default:
			return nil, fmt.Errorf("ammo %q: unknown effect %q", s.ID, s.Effect)
		}
		cat.kinds[s.ID] = k
		cat.order = append(cat.order, s.ID)
	}
	if _, ok := cat.kinds[cat.def]; !ok {
		return nil, fmt.Errorf("default ammo %q is not in the catalog", cat.def)
	}
	return cat, nil
}

// Kind looks up an ammo kind.
func (c *Catalog) Kind(id AmmoID) (AmmoKind, bool) {
	k, ok := c.kinds[id]
	return k, ok
}

// Default is the fallback kind: the AI's only ammo and the player's selection
// whenever a finite kind runs dry.
func (c *Catalog) Default() AmmoKind { return c.kinds[c.def] }

// IDs returns the kinds in catalog order.
func (c *Catalog) IDs() []AmmoID { return append([]AmmoID(nil), c.order...) }

// AmmoInventory maps a kind to its remaining count. Unlimited (negative)
// counts never deplete.
type AmmoInventory map[AmmoID]int

// StartingInventory builds the default inventory from the config.
func (c AmmoConfig) StartingInventory() AmmoInventory {
	inv := make(AmmoInventory, len(c.Kinds))
	for _, s := range c.Kinds {
		n := s.StartWith
		if n < 0 {
			n = Unlimited
		}
		inv[s.ID] = n
	}
	return inv
}

// Available reports whether id can be fired right now.
func (inv AmmoInventory) Available(id AmmoID) bool {
	return inv.IsUnlimited(id) || inv[id] > 0
}

// IsUnlimited reports whether id never depletes.
func (inv AmmoInventory) IsUnlimited(id AmmoID) bool {
	n, ok := inv[id]
	return ok && n < 0
}

// Consume takes one round of id. It returns false, and changes nothing, when
// the slot is empty or missing.
func (inv AmmoInventory) Consume(id AmmoID) bool {
	n, ok := inv[id]
	if !ok || n == 0 {
		return false
	}
	if n > 0 {
		inv[id] = n - 1
	}
	return true
}

// Clone returns an independent copy.
func (inv AmmoInventory) Clone() AmmoInventory {
	out := make(AmmoInventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Selectable lists kinds with a nonzero or unlimited count, in catalog order.
func (inv AmmoInventory) Selectable(cat *Catalog) []AmmoID {
	var out []AmmoID
	for _, id := range cat.IDs() {
		if inv.Available(id) {
			out = append(out, id)
		}
	}
	return out
}

// Label formats the count of id for the HUD.
func (inv AmmoInventory) Label(id AmmoID) string {
	if inv.IsUnlimited(id) {
		return "∞"
	}
	return fmt.Sprintf("%d", inv[id])
}

// normalize drops unknown kinds, fills missing ones with zero and restores the
// default kind to unlimited. Restored saves go through here.
func (inv AmmoInventory) normalize(cat *Catalog) AmmoInventory {
	out := make(AmmoInventory, len(cat.order))
	for _, id := range cat.order {
		out[id] = 0
	}
	for id, n := range inv {
		if _, ok := cat.kinds[id]; !ok {
			continue
		}
		if n < 0 {
			n = Unlimited
		}
		out[id] = n
	}
	if out[cat.def] == 0 {
		out[cat.def] = Unlimited
	}
	return out
}
