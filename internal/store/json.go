// Package store persists level progress for the game core.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

// JSONFile keeps the save record in a single JSON file.
type JSONFile struct {
	path string
}

// OpenJSON returns a store backed by path. The file is created on first save.
func OpenJSON(path string) (*JSONFile, error) {
	if path == "" {
		return nil, errors.New("json store: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("json store: %w", err)
		}
	}
	return &JSONFile{path: path}, nil
}

func (s *JSONFile) Load() (*game.SaveState, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return decode(b)
}

// Save writes through a temp file so a crash never leaves half a record.
func (s *JSONFile) Save(st game.SaveState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONFile) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONFile) Close() error { return nil }

func decode(b []byte) (*game.SaveState, error) {
	var st game.SaveState
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrCorruptSave, err)
	}
	return &st, nil
}
