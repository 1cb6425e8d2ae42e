package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// testAgent builds an unprotected agent whose body trails left of head.
func testAgent(cfg *config.Config, id uint32, kind components.Kind, head components.Position) AgentRef {
	a := NewAgent(cfg, AgentSpec{ID: id, Name: "T", Kind: kind, Head: head})
	a.Status.SpawnProtection = 0
	a.Status.CollisionImmune = false
	return a
}

// withBody replaces an agent's segments.
func withBody(a AgentRef, segs ...components.Position) AgentRef {
	a.Body.Segments = segs
	return a
}

func pos(x, y float64) components.Position {
	return components.Position{X: x, Y: y}
}

// copyConfig returns a mutable copy of the defaults.
func copyConfig() *config.Config {
	cfg := *config.Default()
	return &cfg
}

// addFood inserts an item that has no backing entity.
func addFood(g *FoodGrid, p components.Position, f components.Food) {
	g.Insert(ecs.Entity{}, p, f)
}
