// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Agent      AgentConfig      `yaml:"agent"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Score      ScoreConfig      `yaml:"score"`
	Scenery    SceneryConfig    `yaml:"scenery"`
	NEAT       NEATConfig       `yaml:"neat"`
	HUD        HUDConfig        `yaml:"hud"`
	Assets     AssetsConfig     `yaml:"assets"`
	Terminal   TerminalConfig   `yaml:"terminal"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Size is a width/height pair in world units.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PhysicsConfig holds the fixed simulation step.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`
	GroundY float64 `yaml:"ground_y"` // Resting altitude of agents and cacti
}

// AgentConfig holds dinosaur motion parameters.
type AgentConfig struct {
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
	JumpImpulse float64 `yaml:"jump_impulse"` // Upward velocity applied on jump
	Gravity     float64 `yaml:"gravity"`      // Velocity removed per tick while airborne
	RunSize     Size    `yaml:"run_size"`
	DuckSize    Size    `yaml:"duck_size"`
	JumpSize    Size    `yaml:"jump_size"`
}

// ObstaclesConfig holds obstacle spawning parameters.
type ObstaclesConfig struct {
	SpawnX          float64   `yaml:"spawn_x"`
	InitialVelocity float64   `yaml:"initial_velocity"`
	BirdSpeedOffset float64   `yaml:"bird_speed_offset"` // Added to the global velocity for birds
	DieSides        int       `yaml:"die_sides"`         // A roll of DieSides spawns a bird
	BirdAltitudes   []float64 `yaml:"bird_altitudes"`
	BirdSize        Size      `yaml:"bird_size"`
	CactusSizes     []Size    `yaml:"cactus_sizes"`
	FirstDelayMin   float64   `yaml:"first_delay_min"`
	FirstDelayMax   float64   `yaml:"first_delay_max"`
	DelayMin        float64   `yaml:"delay_min"`
	DelayMax        float64   `yaml:"delay_max"`
}

// DifficultyConfig holds the velocity ramp.
type DifficultyConfig struct {
	Interval  float64 `yaml:"interval"`
	Increment float64 `yaml:"increment"`
}

// ScoreConfig holds score accrual settings.
type ScoreConfig struct {
	Interval float64 `yaml:"interval"` // Seconds of play per point
}

// SceneryConfig holds the cosmetic background parameters.
type SceneryConfig struct {
	TerrainY         float64 `yaml:"terrain_y"`
	TerrainSize      Size    `yaml:"terrain_size"`
	TerrainSpacing   float64 `yaml:"terrain_spacing"` // x of the second strip
	CloudVelocity    float64 `yaml:"cloud_velocity"`
	CloudSize        Size    `yaml:"cloud_size"`
	CloudMinY        int     `yaml:"cloud_min_y"`
	CloudMaxY        int     `yaml:"cloud_max_y"`
	CloudFirstMin    float64 `yaml:"cloud_first_min"`
	CloudFirstMax    float64 `yaml:"cloud_first_max"`
	CloudDelayMin    float64 `yaml:"cloud_delay_min"`
	CloudDelayMax    float64 `yaml:"cloud_delay_max"`
	StarVelocity     float64 `yaml:"star_velocity"`
	StarSize         Size    `yaml:"star_size"`
	StarVariants     int     `yaml:"star_variants"`
	StarMinY         int     `yaml:"star_min_y"`
	StarMaxY         int     `yaml:"star_max_y"`
	StarDelayMin     float64 `yaml:"star_delay_min"`
	StarDelayMax     float64 `yaml:"star_delay_max"`
	StarFadeRate     float64 `yaml:"star_fade_rate"` // Opacity units per second
	MoonX            float64 `yaml:"moon_x"`
	MoonY            float64 `yaml:"moon_y"`
	MoonVelocity     float64 `yaml:"moon_velocity"`
	MoonPhases       []Size  `yaml:"moon_phases"`
	MoonWrapWidth    float64 `yaml:"moon_wrap_width"`    // Moon wraps once x + this < 0
	MoonWrapDistance float64 `yaml:"moon_wrap_distance"` // Distance added on wrap
	MoonVisibleX     float64 `yaml:"moon_visible_x"`     // Stars brighten while moon x is below this
}

// NEATConfig holds training loop settings.
type NEATConfig struct {
	ConfigPath       string  `yaml:"config_path"`
	Generations      int     `yaml:"generations"`
	CollisionPenalty float64 `yaml:"collision_penalty"` // Subtracted from fitness on elimination
	GenomeFile       string  `yaml:"genome_file"`
}

// HUDConfig holds heads-up display settings.
type HUDConfig struct {
	FontSize         int32   `yaml:"font_size"`
	GameOverFontSize int32   `yaml:"game_over_font_size"`
	ResetButton      Rect    `yaml:"reset_button"`
	GameOverY        float64 `yaml:"game_over_y"`
}

// Rect is an axis-aligned rectangle in world units with y pointing up.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return r.X <= x && x <= r.X+r.W && r.Y <= y && y <= r.Y+r.H
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	SpriteSheet string `yaml:"sprite_sheet"` // Empty or missing draws placeholder shapes
}

// TerminalConfig holds settings for the terminal front end.
type TerminalConfig struct {
	KeyHold float64 `yaml:"key_hold"` // Seconds a key press is held, terminals report no releases
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT32         float32
	ScreenW32    float32
	ScreenH32    float32
	KeyHoldTicks int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if they do not parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	switch {
	case c.Physics.DT <= 0:
		return fmt.Errorf("config: physics.dt must be positive")
	case len(c.Obstacles.CactusSizes) == 0:
		return fmt.Errorf("config: obstacles.cactus_sizes must not be empty")
	case len(c.Obstacles.BirdAltitudes) == 0:
		return fmt.Errorf("config: obstacles.bird_altitudes must not be empty")
	case c.Obstacles.DieSides < 1:
		return fmt.Errorf("config: obstacles.die_sides must be at least 1")
	case c.Obstacles.DelayMax < c.Obstacles.DelayMin || c.Obstacles.FirstDelayMax < c.Obstacles.FirstDelayMin:
		return fmt.Errorf("config: obstacle delay max below min")
	case c.Difficulty.Interval <= 0:
		return fmt.Errorf("config: difficulty.interval must be positive")
	case c.Score.Interval <= 0:
		return fmt.Errorf("config: score.interval must be positive")
	case len(c.Scenery.MoonPhases) == 0:
		return fmt.Errorf("config: scenery.moon_phases must not be empty")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	ticks := int(c.Terminal.KeyHold/c.Physics.DT + 0.5)
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.KeyHoldTicks = ticks
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
