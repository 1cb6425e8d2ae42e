package game

// logRunStart logs the run parameters once the opening arena exists.
func (g *Game) logRunStart() {
	attrs := []any{
		"mode", g.mode.String(),
		"seed", g.seed,
		"player", g.playerName,
		"autopilot", g.autopilot,
		"grid_w", g.cfg.Grid.Width,
		"grid_h", g.cfg.Grid.Height,
		"ai", g.aiCount(),
	}
	if dir := g.outputManager.Dir(); dir != "" {
		attrs = append(attrs, "output_dir", dir, "run_id", g.outputManager.RunID())
	}
	g.log.Info("run started", attrs...)
}

// logOutcome logs the end of the run.
func (g *Game) logOutcome() {
	attrs := []any{
		"outcome", g.outcome.String(),
		"mode", g.mode.String(),
		"tick", g.tick,
		"score", g.finalScore,
	}
	if stats := g.lifetimeTracker.Get(g.playerID); stats != nil {
		attrs = append(attrs, "player", stats)
	}
	g.log.Info("run finished", attrs...)
}
