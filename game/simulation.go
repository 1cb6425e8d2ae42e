package game

import (
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// simulationStep runs one tick in fixed phase order.
func (g *Game) simulationStep() {
	g.tick++

	// Phase 1: boss state, projectiles and boss contact
	g.perfCollector.StartPhase(telemetry.PhaseBoss)
	g.rebuildFoodGrid()
	if g.mode == ModeBoss {
		g.updateBoss()
		if g.outcome != OutcomeRunning {
			return
		}
	}

	// Phase 2: queued player commands
	g.perfCollector.StartPhase(telemetry.PhaseIntents)
	g.applyCommands()

	// Phase 3: effects, vitals, AI decisions and movement per agent
	g.perfCollector.StartPhase(telemetry.PhaseMovement)
	g.updateAgents()
	g.removeEatenFood()

	// Phase 4: agent-versus-agent contacts
	g.perfCollector.StartPhase(telemetry.PhaseCollisions)
	g.resolveCollisions()

	// Phase 5: cleanup and arena upkeep
	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	g.perfCollector.StartPhase(telemetry.PhaseUpkeep)
	if g.outcome != OutcomeRunning {
		return
	}
	if g.mode == ModeEvolution {
		g.updatePopulation()
	}
	if g.mode.Progression() {
		g.updateItems()
	}
	g.refillFood()
}

// target returns what the AI sees of the player, or nil if the player is dead.
func target(player *systems.AgentRef) *systems.Target {
	if player == nil || !player.Agent.Alive {
		return nil
	}
	return &systems.Target{ID: player.Agent.ID, Head: player.Head()}
}

// updateBoss advances the boss script, moves projectiles and resolves
// boss-versus-player contact.
func (g *Game) updateBoss() {
	cfg := g.cfg
	boss, ok := g.bossRef()
	if !ok || !boss.Agent.Alive {
		return
	}
	var player *systems.AgentRef
	if p, ok := g.playerRef(); ok && p.Agent.Alive {
		player = &p
	}

	rep := systems.UpdateBoss(cfg, boss, player, g.rng)
	if rep.NewPhase > 0 {
		g.emit(telemetry.NewBossPhaseEvent(g.tick, boss.Agent.ID, rep.NewPhase))
		g.log.Info("boss phase", "tick", g.tick, "phase", rep.NewPhase, "length", boss.Body.Len())
	}
	if rep.Enhanced {
		g.log.Debug("boss bursts enhanced", "tick", g.tick)
	}
	if rep.GlobalWarning {
		g.log.Debug("global attack warning", "tick", g.tick, "safe_zone", boss.Boss.Global.SafeZone)
	}
	systems.DecideBossDirection(cfg, boss, target(player), g.foods, g.rng)

	// Spawning shots is a structural change; refs are re-read afterwards.
	g.spawnShots(rep.Shots)
	g.advanceProjectiles()

	boss, _ = g.bossRef()
	p, ok := g.playerRef()
	if !ok {
		return
	}
	entities, positions := g.projectiles()
	contact := systems.ResolveBossCollision(cfg, boss, p, positions)

	switch contact.Kind {
	case systems.BossContactGlobal:
		g.emitDeath(p, boss.Agent.ID, telemetry.CauseGlobal)
	case systems.BossContactProjectile:
		g.emitDeath(p, boss.Agent.ID, telemetry.CauseProjectile)
		g.world.RemoveEntity(entities[contact.Projectile])
	case systems.BossContactBody:
		g.emitDeath(p, boss.Agent.ID, telemetry.CauseBoss)
	case systems.BossContactCharge:
		g.emit(telemetry.NewBossHitEvent(g.tick, p.Agent.ID, boss.Agent.ID, contact.Damage))
		g.log.Info("boss hit", "tick", g.tick, "damage", contact.Damage, "health", boss.Boss.Health)
	}

	if contact.Victory {
		g.emitDeath(boss, p.Agent.ID, telemetry.CauseBoss)
		g.clearProjectiles()
		g.finishRun(OutcomeVictory, p.Agent.Score)
	}
}

// updateAgents runs effects, vitals, steering and movement for every agent
// in spawn order.
func (g *Game) updateAgents() {
	cfg := g.cfg
	handles := g.agents()
	bossPresent := false
	var player *systems.AgentRef
	for i := range handles {
		r := &handles[i].ref
		if r.IsBoss() && r.Agent.Alive {
			bossPresent = true
		}
		if r.Agent.Kind == components.KindPlayer {
			player = r
		}
	}

	for _, h := range handles {
		a := h.ref
		if !a.Agent.Alive {
			continue
		}
		systems.UpdateEffects(a)

		if a.IsBoss() {
			if item, ate := systems.MoveBoss(cfg, a, g.foods); ate {
				g.emit(telemetry.NewFoodEvent(g.tick, a.Agent.ID, a.Agent.Kind, foodDetail(item.Food)))
			}
			continue
		}

		if !systems.UpdateVitals(cfg, a, bossPresent) {
			g.emitDeath(a, 0, telemetry.CauseStarved)
			continue
		}

		if a.Agent.Steered() {
			t := target(player)
			if a.Agent.Kind == components.KindPlayer {
				t = nil
			}
			systems.DecideDirection(cfg, a, t, g.foods, g.rng)
		}

		levelBefore := a.Progress.Level
		res := systems.MoveAgent(cfg, a, bossPresent, g.foods)
		switch {
		case res.SelfHit:
			g.emitDeath(a, a.Agent.ID, telemetry.CauseSelf)
			continue
		case res.Ate:
			g.emit(telemetry.NewFoodEvent(g.tick, a.Agent.ID, a.Agent.Kind, foodDetail(res.Food.Food)))
		}
		g.emitLevelUps(a, levelBefore)
		if res.Starved {
			g.emitDeath(a, 0, telemetry.CauseStarved)
		}
		g.lifetimeTracker.UpdateLength(a.Agent.ID, a.Body.Len())
	}
}

// resolveCollisions resolves contacts between non-boss agents and records
// deaths, saves and bounties.
func (g *Game) resolveCollisions() {
	handles := g.agents()
	refs := make([]systems.AgentRef, 0, len(handles))
	byID := make(map[uint32]systems.AgentRef, len(handles))
	for _, h := range handles {
		if h.ref.IsBoss() {
			continue
		}
		refs = append(refs, h.ref)
		byID[h.ref.Agent.ID] = h.ref
	}

	player, hasPlayer := byID[g.playerID]
	levelBefore := 0
	if hasPlayer {
		levelBefore = player.Progress.Level
	}

	for _, c := range systems.ResolveCollisions(g.cfg, refs) {
		a := byID[c.AgentID]
		cause := telemetry.CauseBody
		if c.Kind == systems.CollisionHeadOn {
			cause = telemetry.CauseHeadOn
		}
		switch {
		case c.Saved:
			g.emit(telemetry.NewImmunitySaveEvent(g.tick, c.AgentID, a.Agent.Kind, c.OtherID))
		case c.Died:
			g.emitDeath(a, c.OtherID, cause)
		}
		if c.Bounty {
			g.emit(telemetry.NewKillEvent(g.tick, c.OtherID, c.AgentID, g.cfg.Collision.KillScore))
		}
	}

	if hasPlayer {
		g.emitLevelUps(player, levelBefore)
	}
}
