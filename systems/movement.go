package systems

import (
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// UpdateVitals runs the pre-move bookkeeping for one agent: protection
// counters and derived immunity, dash duration and drain, dash cooldown and
// the energy clamp. Returns false if the agent died.
func UpdateVitals(cfg *config.Config, a AgentRef, bossPresent bool) bool {
	st, d := a.Status, a.Dash

	protected := st.SpawnProtection > 0 || d.Invincible > 0
	if st.SpawnProtection > 0 {
		st.SpawnProtection--
	}
	if d.Invincible > 0 {
		d.Invincible--
	}
	switch {
	case protected:
		st.CollisionImmune = true
	case a.Progress.Form == components.FormTank:
		st.CollisionImmune = st.Tank.Active
	default:
		st.CollisionImmune = a.Progress.Form == components.FormUltimate || st.Has(components.EffectShield)
	}

	if d.Active {
		d.Duration--
		cost := cfg.Dash.EnergyPerTick
		if bossPresent {
			cost *= cfg.Agent.BossDrainFactor
		}
		a.Energy.Value -= cost
		if d.Duration <= 0 || a.Energy.Value <= 0 {
			endDash(cfg, d)
		}
	}

	if d.Cooldown > 0 {
		d.Cooldown--
	}

	return ClampEnergy(cfg, a)
}

// StepSize returns the distance the agent's head travels this tick.
func StepSize(cfg *config.Config, a AgentRef) float64 {
	step := cfg.Derived.Cell * (1 + float64(a.Progress.Stats[components.StatSpeed]-1)*cfg.Agent.SpeedPerStat)
	if a.Dash.Active {
		step *= 2
	}
	if a.Status.Has(components.EffectSpeedBoost) {
		step *= 2
	}
	if a.Status.Charge.Active {
		step *= 2
	}
	return step
}

// ClampToGrid keeps a head position inside the playfield.
func ClampToGrid(cfg *config.Config, p components.Position) components.Position {
	p.X = max(0, min(p.X, cfg.Derived.MaxX))
	p.Y = max(0, min(p.Y, cfg.Derived.MaxY))
	return p
}

// MoveResult reports what happened during an agent's move.
type MoveResult struct {
	SelfHit bool
	Ate     bool
	Food    FoodItem
	Levels  int
	Starved bool
}

// MoveAgent advances the agent one step, checks self-collision, drains
// energy and consumes at most one food item from foods.
func MoveAgent(cfg *config.Config, a AgentRef, bossPresent bool, foods *FoodGrid) MoveResult {
	var res MoveResult

	dx, dy := a.Agent.Direction.Vector()
	step := StepSize(cfg, a)
	head := a.Head()
	next := ClampToGrid(cfg, components.Position{X: head.X + dx*step, Y: head.Y + dy*step})

	if !a.Status.CollisionImmune && !a.Status.Has(components.EffectGhost) {
		for _, seg := range a.Body.Segments[1:] {
			if seg == next {
				a.Agent.Alive = false
				res.SelfHit = true
				return res
			}
		}
	}

	body := a.Body
	body.Segments = append(body.Segments, components.Position{})
	copy(body.Segments[1:], body.Segments[:len(body.Segments)-1])
	body.Segments[0] = next

	drain := cfg.Agent.BaseDrain
	if bossPresent {
		drain *= cfg.Agent.BossDrainFactor
	}
	efficiency := 1 - float64(a.Progress.Stats[components.StatEnergy]-1)*cfg.Agent.EfficiencyPerStat
	a.Energy.Value -= drain * efficiency

	growth := 0
	if foods != nil {
		radius := cfg.Derived.Cell * a.Progress.AbsorbFactor
		if i, ok := foods.FirstWithin(next, radius); ok {
			res.Ate = true
			res.Food = foods.Consume(i)
			growth, res.Levels = applyFood(cfg, a, res.Food.Food)
		}
	}

	if growth == 0 {
		body.Segments = body.Segments[:len(body.Segments)-1]
	} else {
		tail := body.Segments[len(body.Segments)-1]
		for range growth - 1 {
			body.Segments = append(body.Segments, tail)
		}
	}

	if !ClampEnergy(cfg, a) {
		res.Starved = true
	}
	return res
}

// applyFood credits a consumed item and returns the growth it grants.
func applyFood(cfg *config.Config, a AgentRef, f components.Food) (growth, levels int) {
	switch {
	case f.IsSpecial():
		ApplySpecialItem(cfg, a, f.Special)
		a.Agent.Score += cfg.Food.SpecialScore
		return 0, 0
	case f.Bonus:
		a.Energy.Value += cfg.Food.BonusEnergy
		a.Agent.Score += cfg.Food.BonusScore
		return cfg.Food.BonusGrowth, AddExp(cfg, a.Progress, cfg.Food.BonusExp)
	default:
		a.Energy.Value += cfg.Food.Energy
		a.Agent.Score += cfg.Food.Score
		return 1, AddExp(cfg, a.Progress, cfg.Food.Exp)
	}
}
