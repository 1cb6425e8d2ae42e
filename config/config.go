// Package config provides configuration loading for the arena simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tuning parameter of the simulation.
// A loaded Config is treated as immutable and passed to the tick driver.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Grid        GridConfig        `yaml:"grid"`
	Agent       AgentConfig       `yaml:"agent"`
	Dash        DashConfig        `yaml:"dash"`
	Effects     EffectsConfig     `yaml:"effects"`
	Food        FoodConfig        `yaml:"food"`
	Evolution   EvolutionConfig   `yaml:"evolution"`
	AI          AIConfig          `yaml:"ai"`
	Population  PopulationConfig  `yaml:"population"`
	Items       ItemsConfig       `yaml:"items"`
	Collision   CollisionConfig   `yaml:"collision"`
	Charge      ChargeConfig      `yaml:"charge"`
	Boss        BossConfig        `yaml:"boss"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical front end.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"` // also the tick rate: one tick per frame
}

// GridConfig holds the playfield dimensions in pixels.
type GridConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// AgentConfig holds base agent parameters.
type AgentConfig struct {
	InitialLength     int     `yaml:"initial_length"`
	InitialEnergy     float64 `yaml:"initial_energy"`
	BaseMaxEnergy     float64 `yaml:"base_max_energy"`
	MaxEnergyPerStat  float64 `yaml:"max_energy_per_stat"` // max energy gained per ENERGY level above 1
	BaseDrain         float64 `yaml:"base_drain"`          // energy lost per tick before efficiency
	EfficiencyPerStat float64 `yaml:"efficiency_per_stat"` // drain reduction per ENERGY level above 1
	SpeedPerStat      float64 `yaml:"speed_per_stat"`      // step increase per SPEED level above 1
	BossDrainFactor   float64 `yaml:"boss_drain_factor"`   // drain multiplier while a boss is alive
	MessageDuration   int     `yaml:"message_duration"`
}

// DashConfig holds dash ability parameters.
type DashConfig struct {
	Duration           int     `yaml:"duration"`
	Cooldown           int     `yaml:"cooldown"`
	EnergyPerTick      float64 `yaml:"energy_per_tick"`
	StartCost          float64 `yaml:"start_cost"`
	SpeederStartCost   float64 `yaml:"speeder_start_cost"`
	Invincible         int     `yaml:"invincible"`
	SpeederInvincible  int     `yaml:"speeder_invincible"`
	UltimateInvincible int     `yaml:"ultimate_invincible"`
}

// EffectsConfig holds special item durations and the tank ability cooldown.
type EffectsConfig struct {
	Shield       int `yaml:"shield"`
	SpeedBoost   int `yaml:"speed_boost"`
	Ghost        int `yaml:"ghost"`
	TankCooldown int `yaml:"tank_cooldown"`
}

// FoodConfig holds food rewards.
type FoodConfig struct {
	Energy       float64 `yaml:"energy"`
	Score        int     `yaml:"score"`
	Exp          int     `yaml:"exp"`
	BonusEnergy  float64 `yaml:"bonus_energy"`
	BonusScore   int     `yaml:"bonus_score"`
	BonusExp     int     `yaml:"bonus_exp"`
	BonusGrowth  int     `yaml:"bonus_growth"`
	SpecialScore int     `yaml:"special_score"`
	HunterAbsorb float64 `yaml:"hunter_absorb"` // absorption radius multiplier for HUNTER
}

// EvolutionConfig holds leveling and evolution parameters.
type EvolutionConfig struct {
	BaseExpToLevel       int     `yaml:"base_exp_to_level"`
	ExpMultiplier        float64 `yaml:"exp_multiplier"`
	MaxStatLevel         int     `yaml:"max_stat_level"`
	StatPointEvery       int     `yaml:"stat_point_every"` // levels divisible by this grant a stat point
	TierLevel            int     `yaml:"tier_level"`
	UltimateLevel        int     `yaml:"ultimate_level"`
	SpeederDashReduction int     `yaml:"speeder_dash_reduction"`
	TankEnergyBonus      float64 `yaml:"tank_energy_bonus"`
}

// AIConfig holds the AI decision parameters.
type AIConfig struct {
	DetectionRange         float64 `yaml:"detection_range"`
	ChaseEnergyThreshold   float64 `yaml:"chase_energy_threshold"`
	RetreatEnergyThreshold float64 `yaml:"retreat_energy_threshold"`
	ChaseDuration          int     `yaml:"chase_duration"`
	DashRange              float64 `yaml:"dash_range"`
	DashEnergy             float64 `yaml:"dash_energy"`
	RandomTurnChance       float64 `yaml:"random_turn_chance"`
}

// PopulationConfig holds AI population upkeep and spawn placement parameters.
type PopulationConfig struct {
	Min               int     `yaml:"min"`
	Max               int     `yaml:"max"`
	CheckInterval     int     `yaml:"check_interval"`
	ClassicAI         int     `yaml:"classic_ai"`
	EvolutionAI       int     `yaml:"evolution_ai"`
	SpawnProtection   int     `yaml:"spawn_protection"`
	SafeDistance      float64 `yaml:"safe_distance"`
	EdgePadding       int     `yaml:"edge_padding"`
	SpawnAttempts     int     `yaml:"spawn_attempts"`
	FallbackMinRadius float64 `yaml:"fallback_min_radius"`
	FallbackMaxRadius float64 `yaml:"fallback_max_radius"`
}

// ItemsConfig holds food and item spawn scheduling.
type ItemsConfig struct {
	FoodTarget    int                `yaml:"food_target"`
	SpawnAttempts int                `yaml:"spawn_attempts"`
	MaxBonus      int                `yaml:"max_bonus"`
	MaxSpecial    int                `yaml:"max_special"`
	Evolution     ItemScheduleConfig `yaml:"evolution"`
	Boss          ItemScheduleConfig `yaml:"boss"`
}

// ItemScheduleConfig holds per-mode item intervals in ticks.
type ItemScheduleConfig struct {
	BonusInterval   int `yaml:"bonus_interval"`
	SpecialInterval int `yaml:"special_interval"`
}

// CollisionConfig holds the bounty paid to the player for body kills.
type CollisionConfig struct {
	KillScore int `yaml:"kill_score"`
	KillExp   int `yaml:"kill_exp"`
}

// ChargeConfig holds the player's boss-fight special attack.
type ChargeConfig struct {
	Cost       float64 `yaml:"cost"`
	Duration   int     `yaml:"duration"`
	Invincible int     `yaml:"invincible"`
	Damage     float64 `yaml:"damage"`
}

// BossConfig holds the boss encounter script.
type BossConfig struct {
	MaxHealth          float64   `yaml:"max_health"`
	Phase2Time         int       `yaml:"phase2_time"`
	Phase3Time         int       `yaml:"phase3_time"`
	Phase2HealthRatio  float64   `yaml:"phase2_health_ratio"`
	Phase3HealthRatio  float64   `yaml:"phase3_health_ratio"`
	Phase2LengthFactor int       `yaml:"phase2_length_factor"`
	Phase3LengthFactor int       `yaml:"phase3_length_factor"`
	MinLength          int       `yaml:"min_length"`
	SizeMultipliers    []float64 `yaml:"size_multipliers"` // per phase, contact radius in cells
	Phase1Cooldown     int       `yaml:"phase1_cooldown"`
	Phase2Cooldown     int       `yaml:"phase2_cooldown"`
	Phase2Shots        int       `yaml:"phase2_shots"`
	BurstInterval      int       `yaml:"burst_interval"`
	BurstCooldown      int       `yaml:"burst_cooldown"`
	MaxBursts          int       `yaml:"max_bursts"`
	CircularShots      int       `yaml:"circular_shots"`
	EnhancedShots      int       `yaml:"enhanced_shots"`
	EnhanceDelay       int       `yaml:"enhance_delay"`
	HomingBaseSpeed    float64   `yaml:"homing_base_speed"` // homing speed is this plus the phase
	CircularSpeed      float64   `yaml:"circular_speed"`
	Phase2ChaseRange   float64   `yaml:"phase2_chase_range"`
	Phase3ChaseRange   float64   `yaml:"phase3_chase_range"`
	Phase3DashRange    float64   `yaml:"phase3_dash_range"`
	Phase3DashDuration int       `yaml:"phase3_dash_duration"`
	Phase3DashCooldown int       `yaml:"phase3_dash_cooldown"`
	Phase2SpeedFactor  float64   `yaml:"phase2_speed_factor"`
	Phase2MoveDelay    int       `yaml:"phase2_move_delay"`
	DashSpeedFactor    float64   `yaml:"dash_speed_factor"`
	GlobalAttack       int       `yaml:"global_attack_interval"` // 0 disables the global attack
	GlobalWarning      int       `yaml:"global_attack_warning"`
	GlobalDuration     int       `yaml:"global_attack_duration"`
	SafeZoneDivisor    int       `yaml:"safe_zone_divisor"`
	MessageDuration    int       `yaml:"message_duration"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats window
}

// LeaderboardConfig holds leaderboard persistence settings.
type LeaderboardConfig struct {
	Path string `yaml:"path"`
	Size int    `yaml:"size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cell        float64 // Grid.CellSize as float64
	MaxX        float64 // largest legal head X
	MaxY        float64 // largest legal head Y
	TickSeconds float64 // wall-clock seconds per tick at TargetFPS
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size must be positive, got %d", c.Grid.CellSize))
	} else if c.Grid.CellSize >= c.Grid.Width || c.Grid.CellSize >= c.Grid.Height {
		errs = append(errs, fmt.Errorf("grid %dx%d is too small for cell size %d",
			c.Grid.Width, c.Grid.Height, c.Grid.CellSize))
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Agent.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("agent.initial_length must be at least 1, got %d", c.Agent.InitialLength))
	}
	if c.Population.Min > c.Population.Max {
		errs = append(errs, fmt.Errorf("population.min %d exceeds population.max %d", c.Population.Min, c.Population.Max))
	}
	if c.Evolution.ExpMultiplier <= 1 {
		errs = append(errs, fmt.Errorf("evolution.exp_multiplier must exceed 1, got %v", c.Evolution.ExpMultiplier))
	}
	if len(c.Boss.SizeMultipliers) != 3 {
		errs = append(errs, fmt.Errorf("boss.size_multipliers needs one entry per phase, got %d", len(c.Boss.SizeMultipliers)))
	}
	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cell = float64(c.Grid.CellSize)
	c.Derived.MaxX = float64(c.Grid.Width - c.Grid.CellSize)
	c.Derived.MaxY = float64(c.Grid.Height - c.Grid.CellSize)
	c.Derived.TickSeconds = 1.0 / float64(c.Screen.TargetFPS)
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
