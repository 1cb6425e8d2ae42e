package game

import (
	"time"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// emit records an event for this tick's log and the window counters.
func (g *Game) emit(e telemetry.Event) {
	g.events = append(g.events, e)
	g.collector.Record(e)
	g.lifetimeTracker.Observe(e)
}

// emitDeath records the death of a.
func (g *Game) emitDeath(a systems.AgentRef, killerID uint32, cause string) {
	g.emit(telemetry.NewDeathEvent(g.tick, a.Agent.ID, a.Agent.Kind, killerID, cause))
}

// emitLevelUps records one event per level a gained since before.
func (g *Game) emitLevelUps(a systems.AgentRef, before int) {
	for lvl := before + 1; lvl <= a.Progress.Level; lvl++ {
		g.emit(telemetry.NewLevelUpEvent(g.tick, a.Agent.ID, a.Agent.Kind, lvl))
	}
}

// flushEvents writes this tick's events and keeps them for RecentEvents.
func (g *Game) flushEvents() {
	if len(g.events) == 0 {
		g.recentEvents = g.recentEvents[:0]
		return
	}
	if err := g.outputManager.WriteEvents(g.events); err != nil {
		g.log.Error("failed to write events", "error", err)
	}
	g.recentEvents = append(g.recentEvents[:0], g.events...)
	g.events = g.events[:0]
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samplePopulation())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		g.log.Info("stats", "window", stats)
		g.log.Info("perf", "window", perfStats)
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			g.log.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			g.log.Error("failed to write perf", "error", err)
		}
	}
}

// samplePopulation collects the arena state for a stats window.
func (g *Game) samplePopulation() telemetry.Population {
	var pop telemetry.Population

	query := g.agentFilter.Query()
	for query.Next() {
		agent, body, energy, _, _, progress, _ := query.Get()
		if !agent.Alive {
			continue
		}
		switch agent.Kind {
		case components.KindBoss:
			continue
		case components.KindPlayer:
			pop.PlayerAlive = true
			pop.PlayerScore = agent.Score
			pop.PlayerLevel = progress.Level
		case components.KindAI:
			pop.AI++
		}
		pop.Energies = append(pop.Energies, energy.Value)
		pop.Lengths = append(pop.Lengths, float64(body.Len()))
	}

	pop.Food, _, _ = g.foodCounts()
	es, _ := g.projectiles()
	pop.Projectiles = len(es)
	if boss, ok := g.bossRef(); ok {
		pop.BossPhase = boss.Boss.Phase
		pop.BossHealth = boss.Boss.Health
	}
	return pop
}

// finishRun fixes the outcome of the run. Defeats outside boss mode are
// submitted to the leaderboard.
func (g *Game) finishRun(outcome Outcome, score int) {
	if g.outcome != OutcomeRunning {
		return
	}
	g.outcome = outcome
	g.finalScore = score
	g.emit(telemetry.NewOutcomeEvent(g.tick, g.playerID, outcome == OutcomeVictory, score))
	g.logOutcome()

	if outcome != OutcomeDefeat || g.mode == ModeBoss || g.leaderboard == nil {
		return
	}
	if !g.leaderboard.Submit(g.playerName, score, time.Now()) {
		return
	}
	g.log.Info("new high score", "name", g.playerName, "score", score)
	if err := g.leaderboard.Save(); err != nil {
		g.log.Error("failed to save leaderboard", "path", g.leaderboard.Path(), "error", err)
	}
}

// FinalScore returns the player's score when the run ended.
func (g *Game) FinalScore() int { return g.finalScore }
