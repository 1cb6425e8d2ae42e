package systems

import (
	"fmt"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// BossContactKind identifies the outcome of boss-versus-player resolution.
type BossContactKind uint8

const (
	BossContactNone BossContactKind = iota
	BossContactGlobal
	BossContactProjectile
	BossContactBody
	BossContactCharge
)

// BossContact reports what happened between the boss and the player.
type BossContact struct {
	Kind       BossContactKind
	Projectile int // index of the projectile that hit, -1 if none
	Damage     float64
	Victory    bool
}

// ResolveBossCollision checks, in order, the global attack, projectile hits
// and head contact between boss and player. At most one outcome applies.
// Projectile contact is lethal regardless of immunity.
func ResolveBossCollision(cfg *config.Config, boss, player AgentRef, projectiles []components.Position) BossContact {
	res := BossContact{Projectile: -1}
	if !boss.Agent.Alive || !player.Agent.Alive || boss.Boss == nil {
		return res
	}
	b := boss.Boss
	head := player.Head()

	if b.Global.Active > 0 && !b.Global.SafeZone.Contains(head) {
		player.Agent.Alive = false
		player.Message.Set("Caught by the global attack!", cfg.Boss.MessageDuration)
		res.Kind = BossContactGlobal
		return res
	}

	for i, p := range projectiles {
		if p.Dist(head) < cfg.Derived.Cell {
			player.Agent.Alive = false
			player.Message.Set("Hit by a boss projectile!", cfg.Boss.MessageDuration)
			res.Kind = BossContactProjectile
			res.Projectile = i
			return res
		}
	}

	if head.Dist(boss.Head()) >= cfg.Derived.Cell*b.SizeMultiplier {
		return res
	}

	if !player.Status.Charge.Active {
		player.Agent.Alive = false
		player.Message.Set("Crushed by the boss!", cfg.Boss.MessageDuration)
		res.Kind = BossContactBody
		return res
	}

	prev := b.Health
	b.Health -= cfg.Charge.Damage
	res.Kind = BossContactCharge
	res.Damage = cfg.Charge.Damage
	SetMessage(cfg, player, fmt.Sprintf("%.0f damage to the boss! (%.0f -> %.0f)", cfg.Charge.Damage, prev, b.Health))
	if b.Health <= 0 {
		b.Health = 0
		boss.Agent.Alive = false
		SetBossMessage(cfg, boss, "The boss has fallen!")
		res.Victory = true
	}
	return res
}
