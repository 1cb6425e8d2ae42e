package systems

import (
	"fmt"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// AddExp credits experience and applies every level-up it pays for.
// Returns the number of levels gained.
func AddExp(cfg *config.Config, p *components.Progress, amount int) int {
	p.Exp += amount
	gained := 0
	for p.ExpToLevel > 0 && p.Exp >= p.ExpToLevel {
		levelUp(cfg, p)
		gained++
	}
	return gained
}

func levelUp(cfg *config.Config, p *components.Progress) {
	p.Level++
	p.Exp -= p.ExpToLevel
	p.ExpToLevel = int(float64(p.ExpToLevel) * cfg.Evolution.ExpMultiplier)
	p.EvolutionPoints++
	if p.Level%cfg.Evolution.StatPointEvery == 0 {
		p.StatPoints++
	}
}

// CanEvolve reports whether an evolution choice is available.
func CanEvolve(cfg *config.Config, p *components.Progress) bool {
	if p.Level >= cfg.Evolution.UltimateLevel && p.Form != components.FormUltimate {
		return true
	}
	return p.Level >= cfg.Evolution.TierLevel && p.Form == components.FormNormal
}

// canEvolveTo validates a specific target form.
func canEvolveTo(cfg *config.Config, p *components.Progress, form components.Form) bool {
	switch form {
	case components.FormSpeeder, components.FormTank, components.FormHunter:
		return p.Form == components.FormNormal && p.Level >= cfg.Evolution.TierLevel
	case components.FormUltimate:
		return p.Form != components.FormUltimate && p.Level >= cfg.Evolution.UltimateLevel
	default:
		return false
	}
}

// Evolve switches the agent to form and applies its one-time side effects.
// Returns false and changes nothing when the form is not reachable.
func Evolve(cfg *config.Config, a AgentRef, form components.Form) bool {
	if !canEvolveTo(cfg, a.Progress, form) {
		return false
	}
	a.Progress.Form = form

	switch form {
	case components.FormSpeeder:
		a.Dash.Cooldown = max(0, a.Dash.Cooldown-cfg.Evolution.SpeederDashReduction)
	case components.FormTank:
		a.Energy.Value = min(MaxEnergy(cfg, a.Progress), a.Energy.Value+cfg.Evolution.TankEnergyBonus)
		a.Status.Tank.Active = true
		a.Status.CollisionImmune = true
	case components.FormHunter:
		a.Progress.AbsorbFactor = cfg.Food.HunterAbsorb
	case components.FormUltimate:
		a.Status.CollisionImmune = true
		a.Dash.Cooldown = 0
	}
	SetMessage(cfg, a, fmt.Sprintf("%s evolved into %s!", a.Agent.Name, form))
	return true
}

// UpgradeStat spends one stat point on stat. Returns false when no point is
// available or the stat is already at its cap.
func UpgradeStat(cfg *config.Config, p *components.Progress, stat components.Stat) bool {
	if stat >= components.StatCount || p.StatPoints < 1 || p.Stats[stat] >= cfg.Evolution.MaxStatLevel {
		return false
	}
	p.Stats[stat]++
	p.StatPoints--
	return true
}
