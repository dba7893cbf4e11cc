package game

import (
	"io"

	"github.com/charmbracelet/log"
)

// TestMatch is a headless match harness for tests and the headless report.
// It wraps a started MatchContext with scene overrides applied after setup.
type TestMatch struct {
	*MatchContext
	Cfg   Config
	Store *MemoryStore
	Sound *RecordingSound

	seed    int64
	verbose bool
	saved   *SaveState
	opts    []MatchOption
}

// testOptionKind controls the pass in which an option is applied.
type testOptionKind int

const (
	testOptInfra testOptionKind = iota // config, seed, store: before the match exists
	testOptScene                       // terrain, tanks, wind: after Start
)

// TestOption is a builder applied to a TestMatch during construction.
type TestOption struct {
	kind testOptionKind
	fn   func(*TestMatch)
}

// WithMatchSeed sets the RNG seed for deterministic runs.
func WithMatchSeed(seed int64) TestOption {
	return TestOption{testOptInfra, func(tm *TestMatch) { tm.seed = seed }}
}

// WithConfig edits the config before the match is built.
func WithConfig(edit func(*Config)) TestOption {
	return TestOption{testOptInfra, func(tm *TestMatch) { edit(&tm.Cfg) }}
}

// WithSavedState pre-loads the store so Start resumes from st.
func WithSavedState(st SaveState) TestOption {
	return TestOption{testOptInfra, func(tm *TestMatch) { tm.saved = &st }}
}

// WithVerboseLog records per-tick flight entries.
func WithVerboseLog() TestOption {
	return TestOption{testOptInfra, func(tm *TestMatch) { tm.verbose = true }}
}

// WithObserver registers a shot observer.
func WithObserver(o ShotObserver) TestOption {
	return TestOption{testOptInfra, func(tm *TestMatch) { tm.opts = append(tm.opts, WithShotObserver(o)) }}
}

// WithCalmWind zeroes the wind and stops it from re-rolling.
func WithCalmWind() TestOption {
	return TestOption{testOptScene, func(tm *TestMatch) {
		tm.Wind.Speed = 0
		tm.cfg.Wind.Interval = 1e9
	}}
}

// WithFlatGround replaces the terrain with a flat profile at y and re-seats
// tanks and walls on it.
func WithFlatGround(y float64) TestOption {
	return TestOption{testOptScene, func(tm *TestMatch) {
		tm.FlattenTerrain(y)
	}}
}

// WithoutWalls removes every wall.
func WithoutWalls() TestOption {
	return TestOption{testOptScene, func(tm *TestMatch) { tm.Walls = nil }}
}

// WithTankAt moves a tank to x and snaps it to the ground.
func WithTankAt(side Side, x float64) TestOption {
	return TestOption{testOptScene, func(tm *TestMatch) { tm.PlaceTank(side, x) }}
}

// WithTankHealth sets a tank's current health.
func WithTankHealth(side Side, hp int) TestOption {
	return TestOption{testOptScene, func(tm *TestMatch) { tm.Tanks[side].Health = hp }}
}

// NewTestMatch builds and starts a match in two passes: infrastructure
// options, then Start, then scene options. It panics on an invalid config.
func NewTestMatch(opts ...TestOption) *TestMatch {
	tm := &TestMatch{
		Cfg:   DefaultConfig(),
		Store: &MemoryStore{},
		Sound: &RecordingSound{},
		seed:  1,
	}
	for _, o := range opts {
		if o.kind == testOptInfra {
			o.fn(tm)
		}
	}
	if tm.saved != nil {
		if err := tm.Store.Save(*tm.saved); err != nil {
			panic(err)
		}
		tm.Store.Saves = 0
	}
	mopts := append([]MatchOption{
		WithSeed(tm.seed),
		WithStore(tm.Store),
		WithSound(tm.Sound),
		WithLogger(log.New(io.Discard)),
		WithSimLog(NewSimLog(tm.verbose)),
	}, tm.opts...)
	m, err := NewMatch(tm.Cfg, mopts...)
	if err != nil {
		panic(err)
	}
	tm.MatchContext = m
	m.Start()
	for _, o := range opts {
		if o.kind == testOptScene {
			o.fn(tm)
		}
	}
	return tm
}

// FlattenTerrain swaps in flat ground at y and re-seats tanks and walls.
func (tm *TestMatch) FlattenTerrain(y float64) {
	tm.Terrain = FlatTerrain(tm.Width, tm.Height, tm.cfg.Terrain.Resolution, y)
	for _, t := range tm.Tanks {
		t.SnapTo(tm.Terrain)
	}
	for i := range tm.Walls {
		w := &tm.Walls[i]
		bottom := tm.Terrain.HeightAt(w.X + w.W/2)
		top := bottom - w.H
		if top < 0 {
			top = 0
		}
		w.Y, w.H = top, bottom-top
	}
}

// PlaceTank moves a tank to x on the current terrain.
func (tm *TestMatch) PlaceTank(side Side, x float64) {
	t := tm.Tanks[side]
	t.X = x
	t.SnapTo(tm.Terrain)
}

// RunTicks advances the match n ticks of TickDT.
func (tm *TestMatch) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tm.Tick(TickDT)
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which the predicate was satisfied, or -1.
func (tm *TestMatch) RunUntil(predicate func(*MatchContext) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tm.Tick(TickDT)
		if predicate(tm.MatchContext) {
			return tm.CurrentTick()
		}
	}
	return -1
}

// RecordingSound remembers every sound it was asked to play.
type RecordingSound struct {
	Played []Sound
}

func (r *RecordingSound) Play(s Sound) { r.Played = append(r.Played, s) }

// Count returns how many times s was played.
func (r *RecordingSound) Count(s Sound) int {
	n := 0
	for _, p := range r.Played {
		if p == s {
			n++
		}
	}
	return n
}

// logSink is the part of testing.TB that Dump needs.
type logSink interface {
	Helper()
	Log(args ...any)
}

// Dump writes the SimLog and a summary to t.Log.
func (tm *TestMatch) Dump(t logSink) {
	t.Helper()
	if len(tm.SimLog.Entries()) == 0 {
		t.Log("(no log entries)")
	} else {
		t.Log("\n" + tm.SimLog.Format())
	}
	t.Log(tm.SimLog.Summary(tm.MatchContext))
}
