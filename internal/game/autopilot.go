package game

import (
	"errors"
	"math/rand"
)

// Autopilot plays the player side for headless runs. It aims with the same
// heuristic as the enemy at a fixed skill level and spends special ammo at
// random.
type Autopilot struct {
	Skill      int     // error envelope level, higher is sharper
	SpecialOdd float64 // chance per shot of picking a special kind if one is left
	rng        *rand.Rand
}

// NewAutopilot builds an autopilot with its own RNG stream.
func NewAutopilot(skill int, seed int64) *Autopilot {
	return &Autopilot{
		Skill:      skill,
		SpecialOdd: 0.3,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- simulated player
	}
}

// Drive takes the player's turn when input is open. It reports whether a
// shell was fired.
func (a *Autopilot) Drive(m *MatchContext) (bool, error) {
	if !m.InputEnabled() {
		return false, nil
	}
	player, enemy := m.Player(), m.Enemy()
	shot := ChooseShot(player, enemy, a.Skill, m.cfg.AI, m.limits, a.rng)

	if err := m.SelectAmmo(a.pickAmmo(m)); err != nil {
		return false, err
	}
	if err := m.SetAim(shot.Angle); err != nil {
		return false, err
	}
	if err := m.SetPower(shot.Power); err != nil {
		return false, err
	}
	if err := m.Fire(); err != nil {
		if errors.Is(err, ErrAmmoEmpty) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *Autopilot) pickAmmo(m *MatchContext) AmmoID {
	def := m.catalog.Default().ID
	if a.rng.Float64() >= a.SpecialOdd {
		return def
	}
	var specials []AmmoID
	for _, id := range m.Inventory.Selectable(m.catalog) {
		if id != def {
			specials = append(specials, id)
		}
	}
	if len(specials) == 0 {
		return def
	}
	return specials[a.rng.Intn(len(specials))]
}
