package systems

import (
	"math/rand"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// Target is what the AI knows about the player this tick.
type Target struct {
	ID   uint32
	Head components.Position
}

// DecideDirection sets the agent's direction for this tick: chase the player
// when close and healthy, otherwise seek the nearest food, otherwise wander.
// player is nil when no live player exists.
func DecideDirection(cfg *config.Config, a AgentRef, player *Target, foods *FoodGrid, rng *rand.Rand) {
	if !a.Agent.Alive || a.Chase == nil {
		return
	}
	head := a.Head()
	c := a.Chase

	if player != nil {
		dist := head.Dist(player.Head)
		if dist < cfg.AI.DetectionRange && a.Energy.Value > cfg.AI.ChaseEnergyThreshold {
			c.Active = true
			c.Timer = cfg.AI.ChaseDuration
			c.TargetID = player.ID
			c.LastSeen = player.Head
		}

		if c.Active && a.Energy.Value > cfg.AI.RetreatEnergyThreshold {
			c.Timer--
			if c.Timer <= 0 {
				c.Active = false
				c.TargetID = 0
			} else {
				steerToward(a.Agent, head, player.Head)
				if dist < cfg.AI.DashRange && a.Energy.Value > cfg.AI.DashEnergy && !a.Dash.Active {
					StartDash(cfg, a)
				}
				return
			}
		}
	}

	if foods != nil {
		if food, ok := foods.Nearest(head); ok {
			steerToward(a.Agent, head, food)
			return
		}
	}

	if rng.Float64() < cfg.AI.RandomTurnChance {
		a.Agent.Direction = components.Directions[rng.Intn(len(components.Directions))]
	}
}

// steerToward picks the first matching axis correction, horizontal first.
// Leaves the direction unchanged when already on target.
func steerToward(agent *components.Agent, from, to components.Position) {
	switch {
	case to.X > from.X:
		agent.Direction = components.DirRight
	case to.X < from.X:
		agent.Direction = components.DirLeft
	case to.Y > from.Y:
		agent.Direction = components.DirDown
	case to.Y < from.Y:
		agent.Direction = components.DirUp
	}
}

// steerPrimaryAxis moves along whichever axis has the larger gap.
func steerPrimaryAxis(agent *components.Agent, from, to components.Position) {
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx) > abs(dy) {
		if dx > 0 {
			agent.Direction = components.DirRight
		} else {
			agent.Direction = components.DirLeft
		}
		return
	}
	if dy > 0 {
		agent.Direction = components.DirDown
	} else {
		agent.Direction = components.DirUp
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
