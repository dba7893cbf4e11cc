package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a match. Zero values are never used directly;
// DefaultConfig supplies the canonical set and LoadConfig overlays a YAML file.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Terrain TerrainConfig `yaml:"terrain"`
	Tank    TankConfig    `yaml:"tank"`
	Wind    WindConfig    `yaml:"wind"`
	Match   MatchConfig   `yaml:"match"`
	Combat  CombatConfig  `yaml:"combat"`
	AI      AIConfig      `yaml:"ai"`
	Ammo    AmmoConfig    `yaml:"ammo"`
	Save    SaveConfig    `yaml:"save"`
	Log     LogConfig     `yaml:"log"`
}

// WindowConfig sizes the playfield and titles the window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`  // playfield width in px
	Height int    `yaml:"height"` // playfield height in px
}

// PhysicsConfig drives projectile integration and power limits.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	GravityScale float64 `yaml:"gravity_scale"`
	WindScale    float64 `yaml:"wind_scale"`
	TimeScale    float64 `yaml:"time_scale"`   // nominal updates per second
	SpeedFactor  float64 `yaml:"speed_factor"` // power -> initial speed
	Lifetime     float64 `yaml:"lifetime"`     // seconds
	TrailLength  int     `yaml:"trail_length"`
	MinPower     float64 `yaml:"min_power"`
	MaxPower     float64 `yaml:"max_power"`
	MaxDeltaTime float64 `yaml:"max_delta_time"`
}

// TerrainConfig shapes the generated ground profile.
type TerrainConfig struct {
	Resolution    float64 `yaml:"resolution"`
	StartMin      float64 `yaml:"start_min"` // fraction of height
	StartMax      float64 `yaml:"start_max"`
	StepBias      float64 `yaml:"step_bias"` // delta = (r - bias) * scale
	StepScale     float64 `yaml:"step_scale"`
	MinHeightFrac float64 `yaml:"min_height_frac"`
	BottomMargin  float64 `yaml:"bottom_margin"`
	SmoothPasses  int     `yaml:"smooth_passes"`
	FloorMargin   float64 `yaml:"floor_margin"` // deformation floor below the playfield bottom
}

// TankConfig covers tank geometry, health and aiming steps.
type TankConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BarrelLength    float64 `yaml:"barrel_length"`
	BarrelPivot     float64 `yaml:"barrel_pivot"` // fraction of height above ground contact
	MoveSpeed       float64 `yaml:"move_speed"`   // px/s
	MoveStep        float64 `yaml:"move_step"`    // seconds of movement per intent
	EdgeOffset      float64 `yaml:"edge_offset"`
	PlayerHealth    int     `yaml:"player_health"`
	EnemyHealth     int     `yaml:"enemy_health"`
	EnemyPerLevel   int     `yaml:"enemy_health_per_level"`
	MinAngle        float64 `yaml:"min_angle"`
	MaxAngle        float64 `yaml:"max_angle"`
	AngleStep       float64 `yaml:"angle_step"`
	PowerStep       float64 `yaml:"power_step"`
	DefaultPower    float64 `yaml:"default_power"`
	PlayerStartAim  float64 `yaml:"player_start_angle"`
	EnemyStartAngle float64 `yaml:"enemy_start_angle"`
}

// WindConfig sets how often and how hard the wind changes.
type WindConfig struct {
	Interval     float64 `yaml:"interval"`      // seconds between re-rolls
	MaxSpeed     float64 `yaml:"max_speed"`     // |wind| upper bound
	MinMagnitude float64 `yaml:"min_magnitude"` // non-zero floor
}

// MatchConfig holds turn pacing delays, wall placement and particle budgets.
type MatchConfig struct {
	SettleDelay    float64 `yaml:"settle_delay"`
	AIThinkMin     float64 `yaml:"ai_think_min"`
	AIThinkJitter  float64 `yaml:"ai_think_jitter"`
	AIAimDelay     float64 `yaml:"ai_aim_delay"`
	RoundEndDelay  float64 `yaml:"round_end_delay"`
	WallWidth      float64 `yaml:"wall_width"`
	WallMinHeight  float64 `yaml:"wall_min_height"`
	WallJitter     float64 `yaml:"wall_height_jitter"`
	ParticleMin    int     `yaml:"particle_min"`
	ParticleJitter int     `yaml:"particle_jitter"`
	MaxParticles   int     `yaml:"max_particles"`
	EventLimit     int     `yaml:"event_limit"` // 0 = unbounded
}

// CombatConfig sizes heavy craters and cluster fragments.
type CombatConfig struct {
	CraterRadius         float64 `yaml:"crater_radius"`
	CraterRadiusJitter   float64 `yaml:"crater_radius_jitter"`
	CraterDepth          float64 `yaml:"crater_depth"`
	CraterDepthJitter    float64 `yaml:"crater_depth_jitter"`
	FragmentPower        float64 `yaml:"fragment_power"`
	FragmentPowerJitter  float64 `yaml:"fragment_power_jitter"`
	FragmentLifetime     float64 `yaml:"fragment_lifetime"`
	FragmentLifeJitter   float64 `yaml:"fragment_lifetime_jitter"`
	FragmentAngleJitter  float64 `yaml:"fragment_angle_jitter"`
	FragmentSpawnOffsetY float64 `yaml:"fragment_spawn_offset_y"`
}

// AIConfig tunes the enemy aiming heuristic and its error envelope.
type AIConfig struct {
	BasePower      float64 `yaml:"base_power"`
	PowerPerPixel  float64 `yaml:"power_per_pixel"`
	ElevationMul   float64 `yaml:"elevation_power_mul"`
	ElevationAdd   float64 `yaml:"elevation_power_add"`
	AimJitter      float64 `yaml:"aim_jitter"` // fraction of defender width
	AngleErrorBase float64 `yaml:"angle_error_base"`
	PowerErrorBase float64 `yaml:"power_error_base"`
}

// AmmoSpec is the YAML form of an AmmoKind. Effect is one of "", "cluster",
// "heavy_impact"; it is converted into a typed Effect by AmmoConfig.Catalog.
type AmmoSpec struct {
	ID        AmmoID  `yaml:"id"`
	Name      string  `yaml:"name"`
	DamageLo  int     `yaml:"damage_lo"`
	DamageHi  int     `yaml:"damage_hi"`
	Radius    float64 `yaml:"radius"`
	Effect    string  `yaml:"effect"`
	Count     int     `yaml:"count"`
	Spread    float64 `yaml:"spread"`
	StartWith int     `yaml:"start_with"` // negative = unlimited
}

// AmmoConfig is the ammo catalog and the default kind.
type AmmoConfig struct {
	Default AmmoID     `yaml:"default"`
	Kinds   []AmmoSpec `yaml:"kinds"`
}

// SaveConfig picks the persistence backend.
type SaveConfig struct {
	Backend string `yaml:"backend"` // json | sqlite | none
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

// LogConfig sets the logger level name (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the canonical constant set.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Title: "Tank Duel", Width: 1024, Height: 576},
		Physics: PhysicsConfig{
			Gravity:      0.15,
			GravityScale: 10,
			WindScale:    60,
			TimeScale:    60,
			SpeedFactor:  0.18,
			Lifetime:     8,
			TrailLength:  20,
			MinPower:     10,
			MaxPower:     100,
			MaxDeltaTime: 0.05,
		},
		Terrain: TerrainConfig{
			Resolution:    5,
			StartMin:      0.6,
			StartMax:      0.8,
			StepBias:      0.48,
			StepScale:     12,
			MinHeightFrac: 0.3,
			BottomMargin:  40,
			SmoothPasses:  2,
			FloorMargin:   50,
		},
		Tank: TankConfig{
			Width:           70,
			Height:          40,
			BarrelLength:    35,
			BarrelPivot:     0.4,
			MoveSpeed:       150,
			MoveStep:        0.1,
			EdgeOffset:      150,
			PlayerHealth:    100,
			EnemyHealth:     100,
			EnemyPerLevel:   25,
			MinAngle:        5,
			MaxAngle:        175,
			AngleStep:       2,
			PowerStep:       5,
			DefaultPower:    50,
			PlayerStartAim:  45,
			EnemyStartAngle: 135,
		},
		Wind: WindConfig{Interval: 6, MaxSpeed: 0.075, MinMagnitude: 0.01},
		Match: MatchConfig{
			SettleDelay:    0.4,
			AIThinkMin:     1.2,
			AIThinkJitter:  0.8,
			AIAimDelay:     0.35,
			RoundEndDelay:  1.5,
			WallWidth:      60,
			WallMinHeight:  60,
			WallJitter:     60,
			ParticleMin:    15,
			ParticleJitter: 20,
			MaxParticles:   2000,
		},
		Combat: CombatConfig{
			CraterRadius:         35,
			CraterRadiusJitter:   10,
			CraterDepth:          18,
			CraterDepthJitter:    7,
			FragmentPower:        15,
			FragmentPowerJitter:  15,
			FragmentLifetime:     1.5,
			FragmentLifeJitter:   1,
			FragmentAngleJitter:  30,
			FragmentSpawnOffsetY: 5,
		},
		AI: AIConfig{
			BasePower:      35,
			PowerPerPixel:  0.12,
			ElevationMul:   0.6,
			ElevationAdd:   15,
			AimJitter:      0.3,
			AngleErrorBase: 25,
			PowerErrorBase: 20,
		},
		Ammo: AmmoConfig{
			Default: AmmoNormal,
			Kinds: []AmmoSpec{
				{ID: AmmoNormal, Name: "Normal", DamageLo: 25, DamageHi: 35, Radius: 5, StartWith: Unlimited},
				{ID: AmmoCluster, Name: "Cluster", DamageLo: 10, DamageHi: 15, Radius: 5, Effect: "cluster", Count: 4, Spread: 40, StartWith: 3},
				{ID: AmmoHeavy, Name: "Heavy", DamageLo: 40, DamageHi: 55, Radius: 7, Effect: "heavy_impact", StartWith: 2},
			},
		},
		Save: SaveConfig{Backend: "json", Path: "tankduel_save.json", Key: "tankDuelSaveData_v1"},
		Log:  LogConfig{Level: "info"},
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig. An empty path or
// a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Terrain.Resolution <= 0:
		return fmt.Errorf("terrain resolution must be positive, got %v", c.Terrain.Resolution)
	case c.Physics.MinPower <= 0 || c.Physics.MaxPower < c.Physics.MinPower:
		return fmt.Errorf("power range [%v,%v] is invalid", c.Physics.MinPower, c.Physics.MaxPower)
	case c.Physics.Lifetime <= 0:
		return errors.New("projectile lifetime must be positive")
	case c.Tank.MinAngle >= c.Tank.MaxAngle:
		return fmt.Errorf("angle range [%v,%v] is invalid", c.Tank.MinAngle, c.Tank.MaxAngle)
	case c.Wind.Interval <= 0:
		return errors.New("wind interval must be positive")
	}
	if _, err := c.Ammo.Catalog(); err != nil {
		return err
	}
	return nil
}
