package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lyminhthai2009/tank-duel/internal/app"
	"github.com/lyminhthai2009/tank-duel/internal/audio"
	"github.com/lyminhthai2009/tank-duel/internal/game"
	"github.com/lyminhthai2009/tank-duel/internal/store"
)

func main() {
	var configPath string
	var saveBackend string
	var savePath string
	var assetDir string
	var seed int64
	var debug bool
	var mute bool

	flag.StringVar(&configPath, "config", "tankduel.yaml", "YAML config overlay (missing file means defaults)")
	flag.StringVar(&saveBackend, "save", "", "save backend override: json, sqlite or none")
	flag.StringVar(&savePath, "save-path", "", "save file override")
	flag.StringVar(&assetDir, "assets", "assets", "sprite directory")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	flag.BoolVar(&debug, "debug", false, "show the debug line")
	flag.BoolVar(&mute, "mute", false, "disable audio")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "tankduel"})

	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("config", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, keeping info", "level", cfg.Log.Level)
	}
	if saveBackend != "" {
		cfg.Save.Backend = saveBackend
	}
	if savePath != "" {
		cfg.Save.Path = savePath
	}

	saves, err := store.Open(cfg.Save)
	if err != nil {
		logger.Fatal("open save store", "backend", cfg.Save.Backend, "path", cfg.Save.Path, "err", err)
	}
	defer saves.Close()
	logSaveHistory(logger, saves)

	opts := []game.MatchOption{
		game.WithLogger(logger),
		game.WithStore(saves),
	}
	if seed != 0 {
		opts = append(opts, game.WithSeed(seed))
	}

	var appOpts app.Options
	if !mute {
		synth, err := audio.NewSynth(logger)
		if err != nil {
			logger.Warn("audio unavailable, running silent", "err", err)
		} else {
			defer synth.Close()
			opts = append(opts, game.WithSound(synth))
			appOpts.Music = synth
		}
	}

	m, err := game.NewMatch(cfg, opts...)
	if err != nil {
		saves.Close()
		logger.Fatal("new match", "err", err)
	}
	m.Start()
	logger.Info("match started", "level", m.Level, "seed", m.Seed(), "save", cfg.Save.Backend)

	appOpts.AssetDir = assetDir
	appOpts.Logger = logger
	appOpts.Debug = debug
	g := app.New(m, appOpts)

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(g.Layout(0, 0))
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("run", "err", err)
	}
}

// logSaveHistory reports the victory history kept by the SQLite backend.
// Other backends keep no history.
func logSaveHistory(logger *log.Logger, saves store.Backend) {
	db, ok := saves.(*store.SQLite)
	if !ok {
		return
	}
	cleared, err := db.RoundsCleared()
	if err != nil {
		logger.Debug("save history unavailable", "err", err)
		return
	}
	best, err := db.BestLevel()
	if err != nil {
		logger.Debug("save history unavailable", "err", err)
		return
	}
	logger.Info("save history", "rounds_cleared", cleared, "best_level", best)
}
