// Package game owns the ECS world and drives the arena one tick at a time.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// Mode selects the ruleset of a run.
type Mode uint8

const (
	ModeClassic Mode = iota
	ModeEvolution
	ModeBoss
)

var modeNames = [...]string{"CLASSIC", "EVOLUTION", "BOSS"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "UNKNOWN"
}

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want classic, evolution or boss)", s)
}

// Progression reports whether the mode has leveling, items and evolution.
func (m Mode) Progression() bool {
	return m != ModeClassic
}

// Outcome is the state of the run.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "VICTORY"
	case OutcomeDefeat:
		return "DEFEAT"
	default:
		return "RUNNING"
	}
}

// Options configures a new game.
type Options struct {
	Mode           Mode
	Seed           int64  // 0 = time-based
	PlayerName     string // defaults to "YOU"
	Autopilot      bool   // the player is steered by the AI
	Logger         *slog.Logger
	LogStats       bool
	OutputDir      string                 // empty disables CSV output
	Leaderboard    *telemetry.Leaderboard // nil disables score submission
	StepsPerUpdate int
	StatsCallback  func(telemetry.WindowStats)
}

// agentMapper covers the components every agent entity carries.
type agentMapper = ecs.Map7[
	components.Agent,
	components.Body,
	components.Energy,
	components.Dash,
	components.Status,
	components.Progress,
	components.Message,
]

type agentFilter = ecs.Filter7[
	components.Agent,
	components.Body,
	components.Energy,
	components.Dash,
	components.Status,
	components.Progress,
	components.Message,
]

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	log  *slog.Logger
	mode Mode

	world *ecs.World
	rng   *rand.Rand
	seed  int64

	// Entity mappers
	agentMapper *agentMapper
	agentFilter *agentFilter
	chaseMap    *ecs.Map1[components.Chase]
	bossMap     *ecs.Map1[components.Boss]
	foodMapper  *ecs.Map2[components.Position, components.Food]
	foodFilter  *ecs.Filter2[components.Position, components.Food]
	projMapper  *ecs.Map2[components.Position, components.Projectile]
	projFilter  *ecs.Filter2[components.Position, components.Projectile]

	// Food index, rebuilt each tick
	foods *systems.FoodGrid

	player     ecs.Entity
	playerID   uint32
	hasPlayer  bool
	boss       ecs.Entity
	hasBoss    bool
	playerName string
	autopilot  bool

	commands []Command

	// State
	tick           int32
	nextID         uint32
	outcome        Outcome
	finalScore     int
	paused         bool
	stepsPerUpdate int
	bonusTimer     int
	specialTimer   int
	populationTick int

	// Telemetry
	collector       *telemetry.Collector
	perfCollector   *telemetry.PerfCollector
	lifetimeTracker *telemetry.LifetimeTracker
	outputManager   *telemetry.OutputManager
	leaderboard     *telemetry.Leaderboard
	events          []telemetry.Event // emitted during the current tick
	recentEvents    []telemetry.Event
	logStats        bool
	statsCallback   func(telemetry.WindowStats)
}

// New creates a game and spawns the opening arena for opts.Mode.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game: nil config")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	name := opts.PlayerName
	if name == "" {
		name = "YOU"
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("game: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:            cfg,
		log:            logger,
		mode:           opts.Mode,
		world:          world,
		rng:            rand.New(rand.NewSource(seed)),
		seed:           seed,
		playerName:     name,
		autopilot:      opts.Autopilot,
		stepsPerUpdate: steps,
		nextID:         1,

		agentMapper: ecs.NewMap7[
			components.Agent,
			components.Body,
			components.Energy,
			components.Dash,
			components.Status,
			components.Progress,
			components.Message,
		](world),
		agentFilter: ecs.NewFilter7[
			components.Agent,
			components.Body,
			components.Energy,
			components.Dash,
			components.Status,
			components.Progress,
			components.Message,
		](world),
		chaseMap:   ecs.NewMap1[components.Chase](world),
		bossMap:    ecs.NewMap1[components.Boss](world),
		foodMapper: ecs.NewMap2[components.Position, components.Food](world),
		foodFilter: ecs.NewFilter2[components.Position, components.Food](world),
		projMapper: ecs.NewMap2[components.Position, components.Projectile](world),
		projFilter: ecs.NewFilter2[components.Position, components.Projectile](world),

		foods: systems.NewFoodGrid(float64(cfg.Grid.Width), float64(cfg.Grid.Height), cfg.Derived.Cell),

		collector:       telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.TickSeconds),
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.StatsWindow),
		lifetimeTracker: telemetry.NewLifetimeTracker(),
		outputManager:   om,
		leaderboard:     opts.Leaderboard,
		logStats:        opts.LogStats,
		statsCallback:   opts.StatsCallback,
	}
	// Both item timers start primed at the bonus interval.
	g.bonusTimer = g.itemSchedule().BonusInterval
	g.specialTimer = g.bonusTimer

	g.spawnOpening()
	g.flushEvents()
	g.logRunStart()

	return g, nil
}

// Update runs StepsPerUpdate simulation ticks unless paused or finished.
func (g *Game) Update() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate && g.outcome == OutcomeRunning; i++ {
		g.Step()
	}
}

// Step advances the simulation exactly one tick. It is a no-op once the run
// has an outcome.
func (g *Game) Step() {
	if g.outcome != OutcomeRunning {
		return
	}
	g.perfCollector.StartTick()
	g.simulationStep()
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushEvents()
	g.flushTelemetry()
	g.perfCollector.EndTick(g.agentCount())
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	g.flushEvents()
	if err := g.outputManager.Close(); err != nil {
		g.log.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 { return g.tick }

// Mode returns the ruleset of the run.
func (g *Game) Mode() Mode { return g.mode }

// Outcome returns the run state.
func (g *Game) Outcome() Outcome { return g.outcome }

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 { return g.seed }

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config { return g.cfg }

// Paused reports whether Update is suspended.
func (g *Game) Paused() bool { return g.paused }

// SetPaused suspends or resumes Update. Step ignores it.
func (g *Game) SetPaused(p bool) { g.paused = p }

// StepsPerUpdate returns the ticks run per Update call.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// SetStepsPerUpdate sets the ticks run per Update call, clamped to [1, 10].
func (g *Game) SetStepsPerUpdate(n int) { g.stepsPerUpdate = max(1, min(n, 10)) }

// RecentEvents returns the events emitted by the last tick.
func (g *Game) RecentEvents() []telemetry.Event { return g.recentEvents }
