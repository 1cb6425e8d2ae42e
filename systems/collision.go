package systems

import (
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// CollisionKind identifies what a collision did.
type CollisionKind uint8

const (
	CollisionHeadOn CollisionKind = iota // heads met
	CollisionBody                        // head ran into another body
)

// Collision records one resolved contact for the tick driver.
type Collision struct {
	Kind    CollisionKind
	AgentID uint32 // the agent affected
	OtherID uint32 // the agent it ran into
	Died    bool
	Saved   bool // a one-shot immunity absorbed the hit
	Bounty  bool // the other agent is the player and was paid for the kill
}

// ResolveCollisions resolves agent-versus-agent contacts after movement.
// Heads meeting are resolved once per unordered pair; head-to-body contacts
// are checked per ordered pair. Bosses must not be passed in.
func ResolveCollisions(cfg *config.Config, agents []AgentRef) []Collision {
	var out []Collision
	cell := cfg.Derived.Cell

	for i, a := range agents {
		if !a.Agent.Alive {
			continue
		}
		for j, b := range agents {
			if i == j || !b.Agent.Alive {
				continue
			}
			head := a.Head()

			if head.Dist(b.Head()) < cell {
				if i < j {
					out = record(out, hit(cfg, a, b, CollisionHeadOn))
					out = record(out, hit(cfg, b, a, CollisionHeadOn))
				}
				if !a.Agent.Alive {
					break
				}
				continue
			}

			for _, seg := range b.Body.Segments[1:] {
				if head.Dist(seg) >= cell {
					continue
				}
				c := hit(cfg, a, b, CollisionBody)
				if c.Died && b.Agent.Kind == components.KindPlayer {
					b.Agent.Score += cfg.Collision.KillScore
					AddExp(cfg, b.Progress, cfg.Collision.KillExp)
					c.Bounty = true
				}
				out = record(out, c)
				break
			}
			if !a.Agent.Alive {
				break
			}
		}
	}
	return out
}

// hit applies a lethal contact to a unless it is protected.
func hit(cfg *config.Config, a, other AgentRef, kind CollisionKind) Collision {
	c := Collision{Kind: kind, AgentID: a.Agent.ID, OtherID: other.Agent.ID}
	switch {
	case ConsumeTankImmunity(cfg, a):
		c.Saved = true
	case a.Status.CollisionImmune:
	default:
		a.Agent.Alive = false
		c.Died = true
	}
	return c
}

// record keeps only contacts that changed something.
func record(out []Collision, c Collision) []Collision {
	if c.Died || c.Saved {
		out = append(out, c)
	}
	return out
}
