package telemetry

import "github.com/pthm-cable/serpent/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns          int
	aiDeaths        int
	playerDeaths    int
	kills           int
	foodEaten       int
	bonusEaten      int
	specialsEaten   int
	levelUps        int
	evolutions      int
	immunitySaves   int
	bossHits        int
	bossDamage      float64
	projectileKills int
}

// NewCollector creates a new stats collector.
// windowTicks: how many simulation ticks each stats window lasts
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowTicks int, dt float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int32(windowTicks),
		dt:                  dt,
	}
}

// Record updates the window counters for one event.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventSpawn:
		c.spawns++
	case EventDeath:
		if e.Kind == components.KindPlayer {
			c.playerDeaths++
		} else {
			c.aiDeaths++
		}
		if e.Detail == CauseProjectile {
			c.projectileKills++
		}
	case EventKill:
		c.kills++
	case EventFood:
		switch e.Detail {
		case FoodPlain:
			c.foodEaten++
		case FoodBonus:
			c.bonusEaten++
		default:
			c.specialsEaten++
		}
	case EventLevelUp:
		c.levelUps++
	case EventEvolve:
		c.evolutions++
	case EventImmunitySave:
		c.immunitySaves++
	case EventBossHit:
		c.bossHits++
		c.bossDamage += e.Amount
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Population is the arena state sampled at the end of a window.
type Population struct {
	AI          int
	PlayerAlive bool
	PlayerScore int
	PlayerLevel int
	Food        int
	Projectiles int
	BossPhase   int
	BossHealth  float64
	Energies    []float64 // energy of every live non-boss agent
	Lengths     []float64 // body length of every live non-boss agent
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop Population) WindowStats {
	energy := ComputeDistribution(pop.Energies)
	length := ComputeDistribution(pop.Lengths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		AICount:     pop.AI,
		PlayerAlive: pop.PlayerAlive,
		PlayerScore: pop.PlayerScore,
		PlayerLevel: pop.PlayerLevel,
		FoodCount:   pop.Food,
		Projectiles: pop.Projectiles,
		BossPhase:   pop.BossPhase,
		BossHealth:  pop.BossHealth,

		Spawns:          c.spawns,
		AIDeaths:        c.aiDeaths,
		PlayerDeaths:    c.playerDeaths,
		Kills:           c.kills,
		FoodEaten:       c.foodEaten,
		BonusEaten:      c.bonusEaten,
		SpecialsEaten:   c.specialsEaten,
		LevelUps:        c.levelUps,
		Evolutions:      c.evolutions,
		ImmunitySaves:   c.immunitySaves,
		BossHits:        c.bossHits,
		BossDamage:      c.bossDamage,
		ProjectileKills: c.projectileKills,

		EnergyMean: energy.Mean,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,

		LengthMean: length.Mean,
		LengthMax:  length.Max,
	}

	// Reset for next window
	*c = Collector{
		windowDurationTicks: c.windowDurationTicks,
		dt:                  c.dt,
		windowStartTick:     currentTick,
	}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
