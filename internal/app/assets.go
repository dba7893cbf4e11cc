package app

import (
	_ "image/png"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Sprite file names looked up under the asset directory.
const (
	spriteBackground = "background.png"
	spriteTankPlayer = "tank_blue.png"
	spriteTankEnemy  = "tank_red.png"
	spriteBarrel     = "barrel.png"
)

// Assets loads sprites lazily. A sprite that fails to load is reported once
// and then drawn with its fallback shape.
type Assets struct {
	dir    string
	logger *log.Logger
	cache  map[string]*ebiten.Image
}

// NewAssets serves sprites from dir. An empty dir disables sprites entirely.
func NewAssets(dir string, logger *log.Logger) *Assets {
	return &Assets{dir: dir, logger: logger, cache: make(map[string]*ebiten.Image)}
}

// Image returns the sprite or nil when it is unavailable.
func (a *Assets) Image(name string) *ebiten.Image {
	if a == nil || a.dir == "" {
		return nil
	}
	if img, ok := a.cache[name]; ok {
		return img
	}
	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(a.dir, name))
	if err != nil {
		a.logger.Warn("sprite unavailable, drawing fallback", "sprite", name, "err", err)
		img = nil
	}
	a.cache[name] = img
	return img
}
