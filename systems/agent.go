package systems

import (
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// AgentRef bundles pointers to one agent's components.
// Chase is nil for agents not steered by the AI; Boss is nil for non-boss agents.
type AgentRef struct {
	Agent    *components.Agent
	Body     *components.Body
	Energy   *components.Energy
	Dash     *components.Dash
	Status   *components.Status
	Progress *components.Progress
	Message  *components.Message
	Chase    *components.Chase
	Boss     *components.Boss
}

// AgentSpec describes an agent to create.
type AgentSpec struct {
	ID        uint32
	Name      string
	Kind      components.Kind
	Head      components.Position
	Autopilot bool
}

// NewAgent allocates fresh components for an agent.
func NewAgent(cfg *config.Config, spec AgentSpec) AgentRef {
	length := cfg.Agent.InitialLength
	if spec.Kind == components.KindBoss {
		length = cfg.Boss.MinLength
	}
	progress := components.NewProgress(cfg.Evolution.BaseExpToLevel)

	a := AgentRef{
		Agent: &components.Agent{
			ID:        spec.ID,
			Name:      spec.Name,
			Kind:      spec.Kind,
			Alive:     true,
			Autopilot: spec.Autopilot,
		},
		Body:     ptr(components.NewBody(spec.Head, length, cfg.Derived.Cell)),
		Energy:   &components.Energy{Value: cfg.Agent.InitialEnergy},
		Dash:     &components.Dash{},
		Status:   &components.Status{},
		Progress: &progress,
		Message:  &components.Message{},
	}

	if a.Agent.Steered() || spec.Kind == components.KindBoss {
		a.Chase = &components.Chase{}
	}
	switch spec.Kind {
	case components.KindAI:
		a.Status.SpawnProtection = cfg.Population.SpawnProtection
		a.Status.CollisionImmune = true
	case components.KindBoss:
		a.Energy.Value = MaxEnergy(cfg, a.Progress)
		a.Boss = &components.Boss{
			Health:             cfg.Boss.MaxHealth,
			MaxHealth:          cfg.Boss.MaxHealth,
			Phase:              1,
			Pattern:            components.PatternNormal,
			ProjectileCooldown: cfg.Boss.Phase1Cooldown,
			SizeMultiplier:     cfg.Boss.SizeMultipliers[0],
		}
	}
	return a
}

func ptr[T any](v T) *T { return &v }

// Head returns the agent's head position.
func (a AgentRef) Head() components.Position {
	return a.Body.Head()
}

// IsBoss reports whether the agent carries the boss payload.
func (a AgentRef) IsBoss() bool {
	return a.Boss != nil
}

// MaxEnergy returns the energy cap for the agent's ENERGY stat.
func MaxEnergy(cfg *config.Config, p *components.Progress) float64 {
	return cfg.Agent.BaseMaxEnergy + float64(p.Stats[components.StatEnergy]-1)*cfg.Agent.MaxEnergyPerStat
}

// ClampEnergy bounds energy to [0, MaxEnergy]. Energy at or below zero kills
// the agent; the return value reports whether it is still alive.
func ClampEnergy(cfg *config.Config, a AgentRef) bool {
	if a.Energy.Value <= 0 {
		a.Energy.Value = 0
		a.Agent.Alive = false
		return false
	}
	if m := MaxEnergy(cfg, a.Progress); a.Energy.Value > m {
		a.Energy.Value = m
	}
	return true
}

// SetMessage shows text on the agent for the default duration.
func SetMessage(cfg *config.Config, a AgentRef, text string) {
	a.Message.Set(text, cfg.Agent.MessageDuration)
}
