package game

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// agentHandle pairs an agent entity with its component pointers.
// Pointers are valid until the next structural change to the world.
type agentHandle struct {
	e   ecs.Entity
	ref systems.AgentRef
}

// spawnOpening creates the player, the mode's opponents and the first food.
func (g *Game) spawnOpening() {
	cfg := g.cfg
	cell := cfg.Grid.CellSize
	snap := func(v int) float64 { return float64(v - v%cell) }

	g.player = g.spawnAgent(systems.AgentSpec{
		Name:      g.playerName,
		Kind:      components.KindPlayer,
		Head:      components.Position{X: snap(cfg.Grid.Width / 4), Y: snap(cfg.Grid.Height / 2)},
		Autopilot: g.autopilot,
	}, components.DirRight)
	g.playerID = g.ref(g.player).Agent.ID
	g.hasPlayer = true

	switch g.mode {
	case ModeClassic:
		for range cfg.Population.ClassicAI {
			g.spawnAI()
		}
	case ModeEvolution:
		for range cfg.Population.EvolutionAI {
			g.spawnAI()
		}
	case ModeBoss:
		g.boss = g.spawnAgent(systems.AgentSpec{
			Name: "BOSS",
			Kind: components.KindBoss,
			Head: components.Position{X: snap(cfg.Grid.Width * 3 / 4), Y: snap(cfg.Grid.Height / 2)},
		}, components.DirLeft)
		g.hasBoss = true
	}

	g.refillFood()
}

// spawnAgent creates an agent entity from spec and returns it.
func (g *Game) spawnAgent(spec systems.AgentSpec, dir components.Direction) ecs.Entity {
	spec.ID = g.nextID
	g.nextID++

	ref := systems.NewAgent(g.cfg, spec)
	ref.Agent.Direction = dir

	e := g.agentMapper.NewEntity(ref.Agent, ref.Body, ref.Energy, ref.Dash, ref.Status, ref.Progress, ref.Message)
	if ref.Chase != nil {
		g.chaseMap.Add(e, ref.Chase)
	}
	if ref.Boss != nil {
		g.bossMap.Add(e, ref.Boss)
	}

	g.lifetimeTracker.Register(spec.ID, spec.Name, g.tick, ref.Body.Len())
	g.emit(telemetry.NewSpawnEvent(g.tick, spec.ID, spec.Kind, spec.Name))
	return e
}

// spawnAI places a new AI agent away from every live body.
func (g *Game) spawnAI() ecs.Entity {
	head := systems.FindSafeSpawn(g.cfg, g.rng, g.liveBodies())
	dir := components.Directions[g.rng.Intn(len(components.Directions))]
	return g.spawnAgent(systems.AgentSpec{
		Name: systems.GenerateName(g.rng),
		Kind: components.KindAI,
		Head: head,
	}, dir)
}

// ref gathers the component pointers of an agent entity.
func (g *Game) ref(e ecs.Entity) systems.AgentRef {
	agent, body, energy, dash, status, progress, msg := g.agentMapper.Get(e)
	r := systems.AgentRef{
		Agent:    agent,
		Body:     body,
		Energy:   energy,
		Dash:     dash,
		Status:   status,
		Progress: progress,
		Message:  msg,
	}
	if g.chaseMap.HasAll(e) {
		r.Chase = g.chaseMap.Get(e)
	}
	if g.bossMap.HasAll(e) {
		r.Boss = g.bossMap.Get(e)
	}
	return r
}

// agents returns every agent in spawn order.
func (g *Game) agents() []agentHandle {
	type entry struct {
		e  ecs.Entity
		id uint32
	}
	var entries []entry

	query := g.agentFilter.Query()
	for query.Next() {
		agent, _, _, _, _, _, _ := query.Get()
		entries = append(entries, entry{e: query.Entity(), id: agent.ID})
	}
	slices.SortFunc(entries, func(a, b entry) int { return int(a.id) - int(b.id) })

	handles := make([]agentHandle, len(entries))
	for i, en := range entries {
		handles[i] = agentHandle{e: en.e, ref: g.ref(en.e)}
	}
	return handles
}

// playerRef returns the player's components if the player entity exists.
func (g *Game) playerRef() (systems.AgentRef, bool) {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		return systems.AgentRef{}, false
	}
	return g.ref(g.player), true
}

// bossRef returns the boss's components if the boss entity exists.
func (g *Game) bossRef() (systems.AgentRef, bool) {
	if !g.hasBoss || !g.world.Alive(g.boss) {
		return systems.AgentRef{}, false
	}
	return g.ref(g.boss), true
}

// liveBodies returns the segments of every living agent.
func (g *Game) liveBodies() [][]components.Position {
	var bodies [][]components.Position
	query := g.agentFilter.Query()
	for query.Next() {
		agent, body, _, _, _, _, _ := query.Get()
		if agent.Alive {
			bodies = append(bodies, body.Segments)
		}
	}
	return bodies
}

// agentCount returns the number of agent entities, boss included.
func (g *Game) agentCount() int {
	n := 0
	query := g.agentFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// aiCount returns the number of living AI agents.
func (g *Game) aiCount() int {
	n := 0
	query := g.agentFilter.Query()
	for query.Next() {
		agent, _, _, _, _, _, _ := query.Get()
		if agent.Kind == components.KindAI && agent.Alive {
			n++
		}
	}
	return n
}

// cleanupDead removes dead agents. Killer credit has already been applied.
func (g *Game) cleanupDead() {
	// First pass: collect dead entities (must complete before modifying)
	type deadInfo struct {
		entity ecs.Entity
		id     uint32
		kind   components.Kind
		score  int
	}
	var toRemove []deadInfo

	query := g.agentFilter.Query()
	for query.Next() {
		agent, _, _, _, _, _, _ := query.Get()
		if !agent.Alive {
			toRemove = append(toRemove, deadInfo{
				entity: query.Entity(),
				id:     agent.ID,
				kind:   agent.Kind,
				score:  agent.Score,
			})
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, dead := range toRemove {
		g.world.RemoveEntity(dead.entity)

		switch dead.kind {
		case components.KindPlayer:
			g.hasPlayer = false
			g.finishRun(OutcomeDefeat, dead.score)
		case components.KindBoss:
			g.hasBoss = false
		}

		if stats := g.lifetimeTracker.Remove(dead.id, g.tick); stats != nil {
			g.log.Debug("agent removed", "id", dead.id, "kind", dead.kind.String(), "lifetime", stats)
		}
	}
}

// updatePopulation keeps the AI count inside the configured band.
func (g *Game) updatePopulation() {
	pc := &g.cfg.Population
	n := g.aiCount()

	g.populationTick++
	if g.populationTick >= pc.CheckInterval {
		if n < pc.Max {
			g.spawnAI()
			n++
		}
		g.populationTick = 0
	}

	for n < pc.Min {
		g.spawnAI()
		n++
		g.populationTick = 0
	}
}
