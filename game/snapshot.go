package game

import (
	"slices"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// AgentView is a copy of one agent's visible state.
type AgentView struct {
	ID        uint32
	Name      string
	Kind      components.Kind
	Direction components.Direction
	Segments  []components.Position
	Energy    float64
	MaxEnergy float64
	Score     int

	Level      int
	Exp        int
	ExpToLevel int
	StatPoints int
	Stats      [components.StatCount]int
	Form       components.Form
	CanEvolve  bool

	Dashing      bool
	DashCooldown int
	Invincible   bool
	Effects      [components.EffectCount]int
	TankActive   bool
	TankCooldown int
	Charging     bool
	Protected    bool // spawn protection

	Message string
}

// FoodView is a food item on the grid.
type FoodView struct {
	Pos  components.Position
	Food components.Food
}

// ProjectileView is a boss projectile in flight.
type ProjectileView struct {
	Pos      components.Position
	Circular bool
}

// BossView is the boss payload of the boss agent.
type BossView struct {
	AgentID        uint32
	Health         float64
	MaxHealth      float64
	Phase          int
	Pattern        components.Pattern
	SizeMultiplier float64
	Status         string
	GlobalWarning  bool
	GlobalActive   bool
	SafeZone       components.Rect
}

// Snapshot is a value-only copy of the arena for presentation.
// Nothing in it aliases simulation state.
type Snapshot struct {
	Tick   int32
	Mode   Mode
	Paused bool

	Agents      []AgentView // spawn order
	Player      *AgentView  // nil once the player is gone
	Boss        *BossView   // nil outside boss mode or after victory
	Food        []FoodView
	Projectiles []ProjectileView

	Outcome     Outcome
	FinalScore  int
	Leaderboard []telemetry.ScoreEntry
	Events      []telemetry.Event
}

// Snapshot copies the current arena state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Mode:       g.mode,
		Paused:     g.paused,
		Outcome:    g.outcome,
		FinalScore: g.finalScore,
		Events:     slices.Clone(g.recentEvents),
	}
	if g.leaderboard != nil {
		s.Leaderboard = g.leaderboard.Entries()
	}

	for _, h := range g.agents() {
		a := h.ref
		if !a.Agent.Alive {
			continue
		}
		s.Agents = append(s.Agents, g.viewAgent(a))
		if a.Boss != nil {
			s.Boss = viewBoss(a, g.cfg.Screen.TargetFPS)
		}
	}
	for i := range s.Agents {
		if s.Agents[i].Kind == components.KindPlayer {
			s.Player = &s.Agents[i]
		}
	}

	fq := g.foodFilter.Query()
	for fq.Next() {
		pos, food := fq.Get()
		s.Food = append(s.Food, FoodView{Pos: *pos, Food: *food})
	}
	pq := g.projFilter.Query()
	for pq.Next() {
		pos, p := pq.Get()
		s.Projectiles = append(s.Projectiles, ProjectileView{Pos: *pos, Circular: p.Circular})
	}
	return s
}

func (g *Game) viewAgent(a systems.AgentRef) AgentView {
	return AgentView{
		ID:        a.Agent.ID,
		Name:      a.Agent.Name,
		Kind:      a.Agent.Kind,
		Direction: a.Agent.Direction,
		Segments:  slices.Clone(a.Body.Segments),
		Energy:    a.Energy.Value,
		MaxEnergy: systems.MaxEnergy(g.cfg, a.Progress),
		Score:     a.Agent.Score,

		Level:      a.Progress.Level,
		Exp:        a.Progress.Exp,
		ExpToLevel: a.Progress.ExpToLevel,
		StatPoints: a.Progress.StatPoints,
		Stats:      a.Progress.Stats,
		Form:       a.Progress.Form,
		CanEvolve:  g.mode.Progression() && systems.CanEvolve(g.cfg, a.Progress),

		Dashing:      a.Dash.Active,
		DashCooldown: a.Dash.Cooldown,
		Invincible:   a.Dash.Invincible > 0 || a.Status.CollisionImmune,
		Effects:      a.Status.Effects,
		TankActive:   a.Status.Tank.Active,
		TankCooldown: a.Status.Tank.Cooldown,
		Charging:     a.Status.Charge.Active,
		Protected:    a.Status.SpawnProtection > 0,

		Message: visibleMessage(a.Message),
	}
}

func viewBoss(a systems.AgentRef, tickRate int) *BossView {
	b := a.Boss
	return &BossView{
		AgentID:        a.Agent.ID,
		Health:         b.Health,
		MaxHealth:      b.MaxHealth,
		Phase:          b.Phase,
		Pattern:        b.Pattern,
		SizeMultiplier: b.SizeMultiplier,
		Status:         systems.BossStatus(b, tickRate),
		GlobalWarning:  b.Global.Warning > 0,
		GlobalActive:   b.Global.Active > 0,
		SafeZone:       b.Global.SafeZone,
	}
}

func visibleMessage(m *components.Message) string {
	if m.Duration <= 0 {
		return ""
	}
	return m.Text
}
