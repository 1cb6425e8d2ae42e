package systems

import (
	"fmt"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// ToggleDash stops an active dash or tries to start a new one.
// Returns true only when a dash was started.
func ToggleDash(cfg *config.Config, a AgentRef) bool {
	if a.Dash.Active {
		endDash(cfg, a.Dash)
		return false
	}
	return StartDash(cfg, a)
}

// StartDash begins a dash if the cooldown has elapsed and the agent can pay for it.
func StartDash(cfg *config.Config, a AgentRef) bool {
	if a.Dash.Active {
		return false
	}
	cost := cfg.Dash.StartCost
	if a.Progress.Form == components.FormSpeeder {
		cost = cfg.Dash.SpeederStartCost
	}
	if a.Dash.Cooldown > 0 || a.Energy.Value < cost {
		return false
	}

	a.Dash.Active = true
	a.Dash.Duration = cfg.Dash.Duration
	a.Energy.Value -= cost

	switch a.Progress.Form {
	case components.FormUltimate:
		a.Dash.Invincible = cfg.Dash.UltimateInvincible
	case components.FormSpeeder:
		a.Dash.Invincible = cfg.Dash.SpeederInvincible
	default:
		a.Dash.Invincible = cfg.Dash.Invincible
	}
	return true
}

func endDash(cfg *config.Config, d *components.Dash) {
	d.Active = false
	d.Duration = 0
	d.Cooldown = cfg.Dash.Cooldown
}

// ActivateTankImmunity arms the TANK form's one-shot immunity.
func ActivateTankImmunity(cfg *config.Config, a AgentRef) bool {
	t := &a.Status.Tank
	if a.Progress.Form != components.FormTank || t.Active || t.Used || t.Cooldown > 0 {
		return false
	}
	t.Active = true
	t.Used = true
	t.Cooldown = cfg.Effects.TankCooldown
	a.Status.CollisionImmune = true
	SetMessage(cfg, a, "One-shot immunity activated!")
	return true
}

// ConsumeTankImmunity spends an armed one-shot immunity in place of a lethal hit.
// Returns true when the hit was absorbed.
func ConsumeTankImmunity(cfg *config.Config, a AgentRef) bool {
	if !a.Status.Tank.Active {
		return false
	}
	a.Status.Tank.Active = false
	a.Status.CollisionImmune = false
	SetMessage(cfg, a, "One-shot immunity consumed!")
	return true
}

// StartCharge begins the boss-fight charge attack.
func StartCharge(cfg *config.Config, a AgentRef) bool {
	if a.Status.Charge.Active || a.Energy.Value < cfg.Charge.Cost {
		return false
	}
	a.Energy.Value -= cfg.Charge.Cost
	a.Status.Charge = components.Charge{Active: true, Timer: cfg.Charge.Duration}
	a.Status.CollisionImmune = true
	a.Dash.Invincible = cfg.Charge.Invincible
	return true
}

// EffectDuration returns the configured duration of a special item effect.
func EffectDuration(cfg *config.Config, e components.Effect) int {
	switch e {
	case components.EffectShield:
		return cfg.Effects.Shield
	case components.EffectSpeedBoost:
		return cfg.Effects.SpeedBoost
	case components.EffectGhost:
		return cfg.Effects.Ghost
	}
	return 0
}

// ApplySpecialItem starts the item's timed effect on the agent.
func ApplySpecialItem(cfg *config.Config, a AgentRef, e components.Effect) {
	d := EffectDuration(cfg, e)
	if d <= 0 {
		return
	}
	a.Status.Effects[e] = d
	if e == components.EffectShield {
		a.Status.CollisionImmune = true
	}
	SetMessage(cfg, a, fmt.Sprintf("%s picked up %s!", a.Agent.Name, e))
}

// UpdateEffects counts down timed effects, the tank cooldown, the charge
// timer and the notification message.
func UpdateEffects(a AgentRef) {
	st := a.Status
	for i := range st.Effects {
		if st.Effects[i] > 0 {
			st.Effects[i]--
		}
	}

	if st.Tank.Cooldown > 0 {
		st.Tank.Cooldown--
		if st.Tank.Cooldown == 0 {
			st.Tank.Used = false
		}
	}

	if st.Charge.Active {
		st.Charge.Timer--
		if st.Charge.Timer <= 0 {
			st.Charge = components.Charge{}
		}
	}

	if a.Message.Duration > 0 {
		a.Message.Duration--
		if a.Message.Duration == 0 {
			a.Message.Text = ""
		}
	}
}
