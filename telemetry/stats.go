package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Arena state at window end
	AICount     int     `csv:"ai"`
	PlayerAlive bool    `csv:"player_alive"`
	PlayerScore int     `csv:"player_score"`
	PlayerLevel int     `csv:"player_level"`
	FoodCount   int     `csv:"food"`
	Projectiles int     `csv:"projectiles"`
	BossPhase   int     `csv:"boss_phase"`
	BossHealth  float64 `csv:"boss_health"`

	// Events during window
	Spawns          int     `csv:"spawns"`
	AIDeaths        int     `csv:"ai_deaths"`
	PlayerDeaths    int     `csv:"player_deaths"`
	Kills           int     `csv:"kills"`
	FoodEaten       int     `csv:"food_eaten"`
	BonusEaten      int     `csv:"bonus_eaten"`
	SpecialsEaten   int     `csv:"specials_eaten"`
	LevelUps        int     `csv:"level_ups"`
	Evolutions      int     `csv:"evolutions"`
	ImmunitySaves   int     `csv:"immunity_saves"`
	BossHits        int     `csv:"boss_hits"`
	BossDamage      float64 `csv:"boss_damage"`
	ProjectileKills int     `csv:"projectile_kills"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Body lengths
	LengthMean float64 `csv:"length_mean"`
	LengthMax  float64 `csv:"length_max"`
}

// Distribution summarises a sample.
type Distribution struct {
	Mean float64
	P10  float64
	P50  float64
	P90  float64
	Max  float64
}

// ComputeDistribution calculates mean, empirical percentiles and max.
// Returns the zero value for an empty sample.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Distribution{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ai", s.AICount),
		slog.Bool("player_alive", s.PlayerAlive),
		slog.Int("player_score", s.PlayerScore),
		slog.Int("player_level", s.PlayerLevel),
		slog.Int("food", s.FoodCount),
		slog.Int("projectiles", s.Projectiles),
		slog.Int("boss_phase", s.BossPhase),
		slog.Float64("boss_health", s.BossHealth),
		slog.Int("spawns", s.Spawns),
		slog.Int("ai_deaths", s.AIDeaths),
		slog.Int("player_deaths", s.PlayerDeaths),
		slog.Int("kills", s.Kills),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("bonus_eaten", s.BonusEaten),
		slog.Int("specials_eaten", s.SpecialsEaten),
		slog.Int("level_ups", s.LevelUps),
		slog.Int("evolutions", s.Evolutions),
		slog.Int("immunity_saves", s.ImmunitySaves),
		slog.Int("boss_hits", s.BossHits),
		slog.Float64("boss_damage", s.BossDamage),
		slog.Int("projectile_kills", s.ProjectileKills),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("length_mean", s.LengthMean),
		slog.Float64("length_max", s.LengthMax),
	)
}
