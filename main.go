package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/game"
	"github.com/pthm-cable/serpent/telemetry"
	"github.com/pthm-cable/serpent/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	modeName := flag.String("mode", "classic", "Game mode: classic, evolution or boss")
	headless := flag.Bool("headless", false, "Run without graphics")
	autopilot := flag.Bool("autopilot", false, "Let the AI steer the player")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	boardPath := flag.String("leaderboard", "", "Leaderboard file (empty = use config)")
	playerName := flag.String("name", "YOU", "Player name for the leaderboard")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")

	flag.Parse()

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	mode, err := game.ParseMode(*modeName)
	if err != nil {
		slog.Error("invalid mode", "error", err)
		os.Exit(1)
	}

	path := cfg.Leaderboard.Path
	if *boardPath != "" {
		path = *boardPath
	}
	board := telemetry.LoadLeaderboard(path, cfg.Leaderboard.Size)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Mode:           mode,
		Seed:           rngSeed,
		PlayerName:     *playerName,
		Autopilot:      *autopilot || *headless,
		Logger:         logger,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Leaderboard:    board,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.New(cfg, opts)
		if err != nil {
			slog.Error("failed to start game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"mode", mode,
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for g.Outcome() == game.OutcomeRunning {
			g.Update()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Serpent")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	// Restarts get a fresh seed; only the first run honours -seed.
	newGame := func() (*game.Game, error) {
		g, err := game.New(cfg, opts)
		opts.Seed = 0
		return g, err
	}

	app, err := ui.NewApp(cfg, board, newGame, logger)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	app.Run(*maxTicks)
}
