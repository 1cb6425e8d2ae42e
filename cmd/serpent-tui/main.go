// Command serpent-tui plays serpent in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/game"
	"github.com/pthm-cable/serpent/telemetry"
)

type terminal struct {
	screen tcell.Screen
	cfg    *config.Config
	opts   game.Options
	g      *game.Game
	paused bool
}

func (t *terminal) restart() error {
	g, err := game.New(t.cfg, t.opts)
	if err != nil {
		return err
	}
	if t.g != nil {
		t.g.Unload()
	}
	t.g = g
	t.paused = false
	t.opts.Seed = 0
	return nil
}

// handleInput returns false when the player quits.
func (t *terminal) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		act, cmd := translateKey(ev)
		switch act {
		case actionQuit:
			return false
		case actionPause:
			t.paused = !t.paused
		case actionRestart:
			if t.g.Outcome() != game.OutcomeRunning {
				if err := t.restart(); err != nil {
					slog.Error("restart failed", "error", err)
					return false
				}
			}
		case actionCommand:
			t.g.Submit(cmd)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *terminal) run() {
	tick := time.Duration(float64(time.Second) * t.cfg.Derived.TickSeconds)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}
		case <-ticker.C:
			t.g.SetPaused(t.paused)
			t.g.Update()
			snap := t.g.Snapshot()
			drawSnapshot(t.screen, t.cfg, &snap)
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	modeName := flag.String("mode", "classic", "Game mode: classic, evolution or boss")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	boardPath := flag.String("leaderboard", "", "Leaderboard file (empty = use config)")
	playerName := flag.String("name", "YOU", "Player name for the leaderboard")
	logFile := flag.String("log-file", "", "Write logs here (the terminal is busy drawing)")
	flag.Parse()

	if err := run(*configPath, *modeName, *seed, *boardPath, *playerName, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, modeName string, seed int64, boardPath, playerName, logFile string) error {
	logger := slog.New(slog.DiscardHandler)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewJSONHandler(f, nil))
	}
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	mode, err := game.ParseMode(modeName)
	if err != nil {
		return err
	}
	if boardPath == "" {
		boardPath = cfg.Leaderboard.Path
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	t := &terminal{
		screen: screen,
		cfg:    cfg,
		opts: game.Options{
			Mode:        mode,
			Seed:        seed,
			PlayerName:  playerName,
			Logger:      logger,
			Leaderboard: telemetry.LoadLeaderboard(boardPath, cfg.Leaderboard.Size),
		},
	}
	if err := t.restart(); err != nil {
		return err
	}
	defer func() { t.g.Unload() }()

	t.run()
	return nil
}
