package store

import (
	"fmt"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

// Backend is a game.Store that holds a resource.
type Backend interface {
	game.Store
	Close() error
}

type memory struct{ game.MemoryStore }

func (*memory) Close() error { return nil }

// Open picks the backend named by cfg. "none" keeps progress in memory only.
func Open(cfg game.SaveConfig) (Backend, error) {
	switch cfg.Backend {
	case "", "json":
		return OpenJSON(cfg.Path)
	case "sqlite":
		return OpenSQLite(cfg.Path, cfg.Key)
	case "none":
		return &memory{}, nil
	default:
		return nil, fmt.Errorf("unknown save backend %q", cfg.Backend)
	}
}
