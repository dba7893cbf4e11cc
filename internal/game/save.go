package game

import (
	"errors"
	"fmt"
)

// SaveState is the persisted progress record. Ammo counts below zero mean
// unlimited, since JSON has no infinity.
type SaveState struct {
	Level            int            `json:"level"`
	PlayerHealth     int            `json:"playerHealth"`
	PlayerAmmoCounts map[AmmoID]int `json:"playerAmmoCounts"`
}

// Validate reports whether the record can seed a level.
func (s SaveState) Validate() error {
	if s.Level <= 0 {
		return fmt.Errorf("save level must be > 0, got %d", s.Level)
	}
	if s.PlayerHealth < 0 {
		return fmt.Errorf("save player health must be >= 0, got %d", s.PlayerHealth)
	}
	return nil
}

// Store is a durable slot for a single SaveState. Load returns (nil, nil)
// when nothing is saved; a non-nil error means the slot is unreadable.
type Store interface {
	Load() (*SaveState, error)
	Save(SaveState) error
	Clear() error
}

// ErrCorruptSave is wrapped by stores when a record exists but cannot be decoded.
var ErrCorruptSave = errors.New("corrupt save")

// MemoryStore keeps the record in memory. It is the default store and the one
// tests use.
type MemoryStore struct {
	state *SaveState
	Saves int
	Fail  error // returned by every call when set
}

func (s *MemoryStore) Load() (*SaveState, error) {
	if s.Fail != nil {
		return nil, s.Fail
	}
	if s.state == nil {
		return nil, nil
	}
	cp := *s.state
	cp.PlayerAmmoCounts = copyCounts(s.state.PlayerAmmoCounts)
	return &cp, nil
}

func (s *MemoryStore) Save(st SaveState) error {
	if s.Fail != nil {
		return s.Fail
	}
	st.PlayerAmmoCounts = copyCounts(st.PlayerAmmoCounts)
	s.state = &st
	s.Saves++
	return nil
}

func (s *MemoryStore) Clear() error {
	if s.Fail != nil {
		return s.Fail
	}
	s.state = nil
	return nil
}

func copyCounts(in map[AmmoID]int) map[AmmoID]int {
	if in == nil {
		return nil
	}
	out := make(map[AmmoID]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
