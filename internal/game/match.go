package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// TickDT is the nominal frame step at 60 Hz.
const TickDT = 1.0 / 60

// Phase is the match turn state.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlayerTurn
	PhaseResolving
	PhaseAITurn
	PhaseRoundEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseResolving:
		return "resolving"
	case PhaseAITurn:
		return "ai_turn"
	case PhaseRoundEnd:
		return "round_end"
	default:
		return "unknown"
	}
}

// Intent errors.
var (
	ErrNotPlayerTurn    = errors.New("not the player's turn")
	ErrProjectileActive = errors.New("a projectile is still in flight")
	ErrAmmoEmpty        = errors.New("ammo depleted")
	ErrUnknownAmmo      = errors.New("unknown ammo kind")
	ErrAmmoUnavailable  = errors.New("ammo kind has no rounds left")
)

// Scheduler task names.
const (
	taskSettle   = "settle"
	taskAIThink  = "ai_think"
	taskAIFire   = "ai_fire"
	taskRoundEnd = "round_end"
)

// MatchOption configures a MatchContext at construction.
type MatchOption func(*MatchContext)

// WithSeed seeds the match RNG. Without it the seed is time-based.
func WithSeed(seed int64) MatchOption {
	return func(m *MatchContext) { m.seed = seed }
}

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) MatchOption {
	return func(m *MatchContext) { m.logger = l }
}

// WithStore sets the progress store.
func WithStore(s Store) MatchOption {
	return func(m *MatchContext) { m.store = s }
}

// WithSound sets the sound sink.
func WithSound(s SoundSink) MatchOption {
	return func(m *MatchContext) { m.sound = s }
}

// WithShotObserver registers an observer for fired shells.
func WithShotObserver(o ShotObserver) MatchOption {
	return func(m *MatchContext) { m.observers = append(m.observers, o) }
}

// WithPlayfield overrides the configured playfield size.
func WithPlayfield(w, h float64) MatchOption {
	return func(m *MatchContext) { m.Width, m.Height = w, h }
}

// WithSimLog replaces the default event log, e.g. with a verbose one.
func WithSimLog(sl *SimLog) MatchOption {
	return func(m *MatchContext) { m.SimLog = sl }
}

// MatchContext is the whole duel: terrain, both tanks, the shells in flight,
// wind, and the turn machine. It is single-threaded; the host calls Tick once
// per frame and routes player input through the intent methods.
type MatchContext struct {
	Width, Height float64

	Level    int
	Phase    Phase
	Turn     Side
	GameOver bool

	Power        float64
	SelectedAmmo AmmoID
	Inventory    AmmoInventory
	AIThinking   bool

	Terrain     *Terrain
	Tanks       [2]*Tank // indexed by Side
	Walls       []Wall
	Wind        WindState
	Primary     *Projectile
	Secondaries []*Projectile
	Particles   *ParticleSystem

	SimLog    *SimLog
	RoundEnds int
	Victories int
	Defeats   int

	cfg       Config
	catalog   *Catalog
	limits    ShotLimits
	seed      int64
	rng       *rand.Rand
	logger    *log.Logger
	store     Store
	sound     SoundSink
	observers []ShotObserver
	sched     Scheduler
	tick      int
	shooter   Side
	warned    map[string]bool
}

// NewMatch validates cfg and builds a match. Call Start to load progress and
// enter the first level.
func NewMatch(cfg Config, opts ...MatchOption) (*MatchContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	cat, err := cfg.Ammo.Catalog()
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	m := &MatchContext{
		Width:   float64(cfg.Window.Width),
		Height:  float64(cfg.Window.Height),
		cfg:     cfg,
		catalog: cat,
		limits:  LimitsFrom(cfg),
		seed:    time.Now().UnixNano(),
		warned:  make(map[string]bool),
	}
	for _, o := range opts {
		o(m)
	}
	m.rng = rand.New(rand.NewSource(m.seed)) // #nosec G404 -- gameplay randomness, not security
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.store == nil {
		m.store = &MemoryStore{}
	}
	if m.sound == nil {
		m.sound = silentSink{}
	}
	if m.SimLog == nil {
		m.SimLog = NewSimLog(false)
	}
	m.SimLog.SetLimit(cfg.Match.EventLimit)
	m.Particles = NewParticleSystem(cfg.Match.MaxParticles)
	m.SelectedAmmo = cat.Default().ID
	return m, nil
}

// Start loads saved progress and sets up the level it names, or level 1.
func (m *MatchContext) Start() {
	saved := m.loadSave()
	level := 1
	if saved != nil {
		level = saved.Level
	}
	m.logger.Info("match start", "level", level, "seed", m.seed, "resumed", saved != nil)
	m.Setup(level, saved)
}

// loadSave returns a valid saved record or nil. Unreadable and invalid
// records are cleared.
func (m *MatchContext) loadSave() *SaveState {
	st, err := m.store.Load()
	if err != nil {
		m.logger.Warn("discarding unreadable save", "err", err)
		m.clearSave()
		return nil
	}
	if st == nil {
		return nil
	}
	if err := st.Validate(); err != nil {
		m.logger.Warn("discarding invalid save", "err", err)
		m.clearSave()
		return nil
	}
	return st
}

// Setup builds a fresh level. saved, if non-nil, restores the player's health
// and ammo; otherwise the player starts full.
func (m *MatchContext) Setup(level int, saved *SaveState) {
	if level < 1 {
		level = 1
	}
	m.sched.CancelAll()
	m.Phase = PhaseSetup
	m.Level = level
	m.GameOver = false
	m.AIThinking = false
	m.Turn = SidePlayer
	m.shooter = SidePlayer
	m.Primary = nil
	for i := range m.Secondaries {
		m.Secondaries[i] = nil
	}
	m.Secondaries = m.Secondaries[:0]
	m.Particles.Clear()
	m.Power = m.cfg.Tank.DefaultPower
	m.SelectedAmmo = m.catalog.Default().ID

	m.Terrain = GenerateTerrain(m.Width, m.Height, m.cfg.Terrain, m.rng)

	tc := m.cfg.Tank
	playerHealth := tc.PlayerHealth
	inv := m.cfg.Ammo.StartingInventory()
	if saved != nil {
		if saved.PlayerHealth > 0 && saved.PlayerHealth <= tc.PlayerHealth {
			playerHealth = saved.PlayerHealth
		}
		if saved.PlayerAmmoCounts != nil {
			inv = AmmoInventory(copyCounts(saved.PlayerAmmoCounts))
		}
	}
	m.Inventory = inv.normalize(m.catalog)

	player := NewTank(SidePlayer, tc.EdgeOffset, tc.PlayerHealth, tc)
	player.Health = playerHealth
	enemy := NewTank(SideEnemy, m.Width-tc.EdgeOffset, tc.EnemyHealth+tc.EnemyPerLevel*(level-1), tc)
	player.SnapTo(m.Terrain)
	enemy.SnapTo(m.Terrain)
	m.Tanks = [2]*Tank{SidePlayer: player, SideEnemy: enemy}

	m.Walls = m.Walls[:0]
	m.Walls = append(m.Walls, m.placeWall())

	m.Wind.Reroll(m.cfg.Wind, m.rng)

	m.SimLog.Add(m.tick, "--", "round", "setup",
		fmt.Sprintf("level=%d enemy_hp=%d player_hp=%d", level, enemy.Health, player.Health), float64(level))
	m.logger.Debug("level ready", "level", level, "wind", m.Wind.Speed, "enemy_hp", enemy.Health)
	m.Phase = PhasePlayerTurn
}

// placeWall puts the central obstacle on the ground at mid-field, clipped to
// the top of the playfield.
func (m *MatchContext) placeWall() Wall {
	mc := m.cfg.Match
	bottom := m.Terrain.HeightAt(m.Width / 2)
	h := mc.WallMinHeight + m.rng.Float64()*mc.WallJitter
	top := bottom - h
	if top < 0 {
		top = 0
	}
	return Wall{Rect{X: m.Width/2 - mc.WallWidth/2, Y: top, W: mc.WallWidth, H: bottom - top}}
}

// Tick advances the match by dt seconds, clamped to MaxDeltaTime.
func (m *MatchContext) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > m.cfg.Physics.MaxDeltaTime {
		dt = m.cfg.Physics.MaxDeltaTime
	}
	m.tick++
	m.sched.Advance(dt)
	if m.Phase == PhaseSetup {
		return
	}
	if m.Wind.Update(dt, m.cfg.Wind, m.rng) {
		m.SimLog.Add(m.tick, "--", "wind", "change", m.Wind.Label(), m.Wind.Speed)
	}
	m.stepProjectiles(dt)
	m.Particles.Update(dt, m.cfg.Physics)
	m.advanceTurn()
}

func (m *MatchContext) stepProjectiles(dt float64) {
	phys := m.cfg.Physics
	tanks := m.Tanks[:]
	if p := m.Primary; p != nil {
		p.Step(dt, m.Wind.Speed, phys)
		m.SimLog.AddVerbose(m.tick, p.Owner.Label(), "flight", "primary",
			fmt.Sprintf("x=%.1f y=%.1f", p.X, p.Y), p.Y)
		if out := CheckCollision(p, m.Terrain, m.Walls, tanks); out.Hit() {
			m.Primary = nil
			m.resolveImpact(p, out)
		}
	}
	if len(m.Secondaries) == 0 {
		return
	}
	live := m.Secondaries[:0]
	for _, s := range m.Secondaries {
		s.Step(dt, m.Wind.Speed, phys)
		if out := CheckCollision(s, m.Terrain, m.Walls, tanks); out.Hit() {
			m.resolveImpact(s, out)
			continue
		}
		live = append(live, s)
	}
	for i := len(live); i < len(m.Secondaries); i++ {
		m.Secondaries[i] = nil
	}
	m.Secondaries = live
}

// advanceTurn schedules the next pacing step once the board is quiet.
func (m *MatchContext) advanceTurn() {
	if m.GameOver || m.ProjectilesActive() {
		return
	}
	switch m.Phase {
	case PhaseResolving:
		if !m.sched.Pending(taskSettle) {
			m.sched.After(m.cfg.Match.SettleDelay, taskSettle, m.switchTurn)
		}
	case PhaseAITurn:
		if m.AIThinking {
			return
		}
		m.AIThinking = true
		delay := m.cfg.Match.AIThinkMin + m.rng.Float64()*m.cfg.Match.AIThinkJitter
		m.sched.After(delay, taskAIThink, m.aiAim)
	}
}

func (m *MatchContext) switchTurn() {
	if m.GameOver || m.Phase != PhaseResolving || m.ProjectilesActive() {
		return
	}
	if m.shooter == SidePlayer {
		m.Turn = SideEnemy
		m.Phase = PhaseAITurn
	} else {
		m.Turn = SidePlayer
		m.Phase = PhasePlayerTurn
		m.AIThinking = false
	}
	m.SimLog.Add(m.tick, m.Turn.Label(), "turn", "begin", m.Phase.String(), 0)
}

func (m *MatchContext) aiMayAct() bool {
	return m.Phase == PhaseAITurn && m.Turn == SideEnemy && !m.GameOver && !m.ProjectilesActive()
}

// aiAim turns the barrel, then fires after a short pause so the aim is visible.
func (m *MatchContext) aiAim() {
	if !m.aiMayAct() {
		m.AIThinking = false
		return
	}
	enemy, player := m.Tanks[SideEnemy], m.Tanks[SidePlayer]
	shot := ChooseShot(enemy, player, m.Level, m.cfg.AI, m.limits, m.rng)
	enemy.SetAngle(shot.Angle)
	m.SimLog.Add(m.tick, "E", "ai", "aim", fmt.Sprintf("a=%.1f p=%.0f", shot.Angle, shot.Power), shot.Angle)
	m.sched.After(m.cfg.Match.AIAimDelay, taskAIFire, func() {
		if !m.aiMayAct() {
			m.AIThinking = false
			return
		}
		m.launch(enemy, shot.Power, m.catalog.Default())
	})
}

// launch fires kind from t's barrel and hands the turn to resolution.
func (m *MatchContext) launch(t *Tank, power float64, kind AmmoKind) {
	at := t.BarrelEnd()
	m.Primary = SpawnProjectile(at.X, at.Y, t.Angle, power, t.Side, kind, m.cfg.Physics)
	m.shooter = t.Side
	m.Phase = PhaseResolving
	m.sound.Play(SoundFire)
	m.SimLog.Add(m.tick, t.Side.Label(), "shot", "fire",
		fmt.Sprintf("%s a=%.1f p=%.0f", kind.ID, t.Angle, power), power)
	rec := ShotRecord{
		Tick:  m.tick,
		Level: m.Level,
		Side:  t.Side,
		Ammo:  kind.ID,
		Angle: t.Angle,
		Power: power,
		Wind:  m.Wind.Speed,
		X:     t.X,
		Y:     t.Y,
	}
	for _, o := range m.observers {
		o.OnShot(rec)
	}
}

// evaluateRound ends the round when a tank is destroyed. Enemy defeat is
// checked first and the round resolves at most once.
func (m *MatchContext) evaluateRound() {
	if m.GameOver {
		return
	}
	switch {
	case !m.Tanks[SideEnemy].Alive():
		m.endRound(true)
	case !m.Tanks[SidePlayer].Alive():
		m.endRound(false)
	}
}

func (m *MatchContext) endRound(won bool) {
	m.GameOver = true
	m.Phase = PhaseRoundEnd
	m.RoundEnds++
	m.sched.CancelAll()

	nextLevel := 1
	var carry *SaveState
	if won {
		m.Victories++
		nextLevel = m.Level + 1
		carry = &SaveState{
			Level:            nextLevel,
			PlayerHealth:     m.Tanks[SidePlayer].Health,
			PlayerAmmoCounts: m.Inventory.Clone(),
		}
		m.persist(*carry)
		m.SimLog.Add(m.tick, "P", "round", "end", fmt.Sprintf("victory level=%d", m.Level), float64(m.Level))
		m.logger.Info("enemy destroyed", "level", m.Level, "player_hp", carry.PlayerHealth)
	} else {
		m.Defeats++
		m.clearSave()
		m.SimLog.Add(m.tick, "E", "round", "end", fmt.Sprintf("defeat level=%d", m.Level), float64(m.Level))
		m.logger.Info("player destroyed", "level", m.Level)
	}
	m.sched.After(m.cfg.Match.RoundEndDelay, taskRoundEnd, func() { m.Setup(nextLevel, carry) })
}

func (m *MatchContext) persist(st SaveState) {
	if err := m.store.Save(st); err != nil {
		m.warnOnce("save", "could not persist progress", "err", err)
		return
	}
	m.SimLog.Add(m.tick, "--", "save", "write", fmt.Sprintf("level=%d hp=%d", st.Level, st.PlayerHealth), float64(st.Level))
}

func (m *MatchContext) clearSave() {
	if err := m.store.Clear(); err != nil {
		m.warnOnce("clear", "could not clear saved progress", "err", err)
		return
	}
	m.SimLog.Add(m.tick, "--", "save", "clear", "", 0)
}

func (m *MatchContext) warnOnce(key, msg string, kv ...interface{}) {
	if m.warned[key] {
		return
	}
	m.warned[key] = true
	m.logger.Warn(msg, kv...)
}

// ---- Intents ----

// InputEnabled reports whether player intents are accepted right now.
func (m *MatchContext) InputEnabled() bool {
	return m.Phase == PhasePlayerTurn && m.Turn == SidePlayer && !m.GameOver && !m.ProjectilesActive()
}

func (m *MatchContext) gate() error {
	if m.InputEnabled() {
		return nil
	}
	if m.ProjectilesActive() {
		return ErrProjectileActive
	}
	return ErrNotPlayerTurn
}

// Move drives the player tank one step left (dir<0) or right (dir>0). Steps
// that would leave the playfield are ignored.
func (m *MatchContext) Move(dir int) error {
	if err := m.gate(); err != nil {
		return err
	}
	if dir == 0 {
		return nil
	}
	t := m.Tanks[SidePlayer]
	step := m.cfg.Tank.MoveSpeed * m.cfg.Tank.MoveStep
	if dir < 0 {
		step = -step
	}
	nx := t.X + step
	if nx > t.Width/3 && nx < m.Width-t.Width/3 {
		t.X = nx
		t.SnapTo(m.Terrain)
	}
	return nil
}

// Aim raises (dir>0) or lowers (dir<0) the barrel by one angle step.
func (m *MatchContext) Aim(dir int) error {
	if err := m.gate(); err != nil {
		return err
	}
	t := m.Tanks[SidePlayer]
	t.SetAngle(t.Angle + float64(sign(dir))*m.cfg.Tank.AngleStep)
	return nil
}

// SetAim sets the barrel angle directly, clamped to the allowed arc.
func (m *MatchContext) SetAim(deg float64) error {
	if err := m.gate(); err != nil {
		return err
	}
	m.Tanks[SidePlayer].SetAngle(deg)
	return nil
}

// AdjustPower changes power by one step in the direction of dir.
func (m *MatchContext) AdjustPower(dir int) error {
	return m.SetPower(m.Power + float64(sign(dir))*m.cfg.Tank.PowerStep)
}

// SetPower sets power, clamped to the configured range.
func (m *MatchContext) SetPower(p float64) error {
	if err := m.gate(); err != nil {
		return err
	}
	m.Power = clamp(p, m.cfg.Physics.MinPower, m.cfg.Physics.MaxPower)
	return nil
}

// SelectAmmo picks the kind the next player shot uses.
func (m *MatchContext) SelectAmmo(id AmmoID) error {
	if err := m.gate(); err != nil {
		return err
	}
	if _, ok := m.catalog.Kind(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAmmo, id)
	}
	if !m.Inventory.Available(id) {
		return fmt.Errorf("%w: %s", ErrAmmoUnavailable, id)
	}
	m.SelectedAmmo = id
	return nil
}

// CycleAmmo steps the selection through the kinds that still have rounds.
func (m *MatchContext) CycleAmmo(dir int) error {
	if err := m.gate(); err != nil {
		return err
	}
	ids := m.Inventory.Selectable(m.catalog)
	if len(ids) == 0 {
		return ErrAmmoEmpty
	}
	cur := 0
	for i, id := range ids {
		if id == m.SelectedAmmo {
			cur = i
			break
		}
	}
	next := (cur + sign(dir) + len(ids)) % len(ids)
	m.SelectedAmmo = ids[next]
	return nil
}

// Fire launches the selected ammo from the player tank. An empty finite kind
// plays the empty click and fires nothing.
func (m *MatchContext) Fire() error {
	if err := m.gate(); err != nil {
		return err
	}
	kind, ok := m.catalog.Kind(m.SelectedAmmo)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAmmo, m.SelectedAmmo)
	}
	if !m.Inventory.Consume(kind.ID) {
		m.sound.Play(SoundEmpty)
		m.SimLog.Add(m.tick, "P", "ammo", "empty", string(kind.ID), 0)
		return ErrAmmoEmpty
	}
	if !m.Inventory.Available(kind.ID) {
		m.SelectedAmmo = m.catalog.Default().ID
		m.SimLog.Add(m.tick, "P", "ammo", "depleted", string(kind.ID), 0)
	}
	m.launch(m.Tanks[SidePlayer], m.Power, kind)
	return nil
}

// ---- Read accessors ----

// CurrentTick is the number of ticks processed so far.
func (m *MatchContext) CurrentTick() int { return m.tick }

// Clock is elapsed simulation time in seconds.
func (m *MatchContext) Clock() float64 { return m.sched.Now() }

// Seed is the RNG seed the match was built with.
func (m *MatchContext) Seed() int64 { return m.seed }

// Config returns the match configuration.
func (m *MatchContext) Config() Config { return m.cfg }

// Catalog returns the ammo catalog.
func (m *MatchContext) Catalog() *Catalog { return m.catalog }

// Player returns the player tank.
func (m *MatchContext) Player() *Tank { return m.Tanks[SidePlayer] }

// Enemy returns the enemy tank.
func (m *MatchContext) Enemy() *Tank { return m.Tanks[SideEnemy] }

// ProjectilesActive reports whether any shell, primary or fragment, is flying.
func (m *MatchContext) ProjectilesActive() bool {
	return m.Primary != nil || len(m.Secondaries) > 0
}

// Projectiles lists every shell in flight, primary first.
func (m *MatchContext) Projectiles() []*Projectile {
	out := make([]*Projectile, 0, 1+len(m.Secondaries))
	if m.Primary != nil {
		out = append(out, m.Primary)
	}
	return append(out, m.Secondaries...)
}

// HUD is everything the heads-up display shows, computed by the core.
type HUD struct {
	Level        int
	Turn         string
	Phase        Phase
	PlayerHealth int
	PlayerMax    int
	EnemyHealth  int
	EnemyMax     int
	Power        float64
	Angle        float64
	Wind         string
	Ammo         string
	AmmoCount    string
	InputEnabled bool
	Banner       string
}

// HUD snapshots the display values.
func (m *MatchContext) HUD() HUD {
	h := HUD{
		Level:        m.Level,
		Phase:        m.Phase,
		Power:        m.Power,
		Wind:         m.Wind.Label(),
		AmmoCount:    m.Inventory.Label(m.SelectedAmmo),
		InputEnabled: m.InputEnabled(),
	}
	if k, ok := m.catalog.Kind(m.SelectedAmmo); ok {
		h.Ammo = k.Name
	}
	if p := m.Tanks[SidePlayer]; p != nil {
		h.PlayerHealth, h.PlayerMax, h.Angle = p.Health, p.MaxHealth, p.Angle
	}
	if e := m.Tanks[SideEnemy]; e != nil {
		h.EnemyHealth, h.EnemyMax = e.Health, e.MaxHealth
	}
	switch {
	case m.Phase == PhaseRoundEnd && !m.Tanks[SideEnemy].Alive():
		h.Turn = "VICTORY"
		h.Banner = fmt.Sprintf("Level %d cleared", m.Level)
	case m.Phase == PhaseRoundEnd:
		h.Turn = "DEFEAT"
		h.Banner = "Back to level 1"
	case m.Turn == SidePlayer:
		h.Turn = "Your turn"
	case m.AIThinking:
		h.Turn = "Enemy aiming..."
	default:
		h.Turn = "Enemy turn"
	}
	return h
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
