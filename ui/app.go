package ui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/camera"
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/game"
	"github.com/pthm-cable/serpent/telemetry"
)

// NewGameFunc starts a fresh run, used for restarts after an outcome.
type NewGameFunc func() (*game.Game, error)

// App owns the window-side state of a graphical session. The window must be
// open before Run is called.
type App struct {
	cfg     *config.Config
	newGame NewGameFunc
	g       *game.Game
	board   *telemetry.Leaderboard

	cam       *camera.Camera
	arena     *ArenaRenderer
	hud       *HUD
	overlays  *OverlayRegistry
	controls  *ControlsPanel
	inspector *Inspector
	evolution *EvolutionPanel
	renderer  *Renderer

	selected   uint32
	userPaused bool
	screenW    int32
	screenH    int32
	log        *slog.Logger
}

// NewApp starts the first run and builds the panels.
func NewApp(cfg *config.Config, board *telemetry.Leaderboard, newGame NewGameFunc, log *slog.Logger) (*App, error) {
	g, err := newGame()
	if err != nil {
		return nil, err
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	cam := camera.New(float32(w), float32(h), float32(cfg.Grid.Width), float32(cfg.Grid.Height))
	return &App{
		cfg:       cfg,
		newGame:   newGame,
		g:         g,
		board:     board,
		cam:       cam,
		arena:     NewArenaRenderer(cfg, cam),
		hud:       NewHUD(),
		overlays:  NewOverlayRegistry(),
		controls:  NewControlsPanel(10, 200, 220),
		inspector: NewInspector(w-250, 80, 240),
		evolution: NewEvolutionPanel(cfg.Evolution),
		renderer:  NewRenderer(),
		screenW:   w,
		screenH:   h,
		log:       log,
	}, nil
}

// Game returns the current run.
func (a *App) Game() *game.Game { return a.g }

// Run drives input, simulation and drawing until the window closes or
// maxTicks is reached (0 = unlimited).
func (a *App) Run(maxTicks int) {
	defer func() { a.g.Unload() }()
	for !rl.WindowShouldClose() {
		a.handleInput()
		a.g.SetPaused(a.userPaused || a.evolution.IsOpen())
		a.g.Update()
		a.draw()

		if maxTicks > 0 && int(a.g.Tick()) >= maxTicks {
			a.log.Info("max ticks reached", "tick", a.g.Tick())
			return
		}
	}
}

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.userPaused = !a.userPaused
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		a.controls.Toggle()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		a.g.SetStepsPerUpdate(a.g.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		a.g.SetStepsPerUpdate(a.g.StepsPerUpdate() + 1)
	}

	for _, d := range a.overlays.descriptors {
		if rl.IsKeyPressed(d.Key) {
			a.overlays.Toggle(d.ID)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.ZoomBy(1 + 0.1*wheel)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		a.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !a.evolution.IsOpen() {
		m := rl.GetMousePosition()
		wx, wy := a.cam.ScreenToWorld(m.X, m.Y)
		s := a.g.Snapshot()
		if id, ok := PickAgent(s.Agents, float64(wx), float64(wy), 2*a.cfg.Derived.Cell); ok {
			a.selected = id
		} else {
			a.selected = 0
		}
	}

	if a.g.Outcome() != game.OutcomeRunning {
		if rl.IsKeyPressed(rl.KeyEnter) {
			a.restart()
		}
		return
	}

	s := a.g.Snapshot()
	if rl.IsKeyPressed(rl.KeyTab) && s.Player != nil && s.Mode.Progression() {
		a.evolution.SetOpen(!a.evolution.IsOpen() && Available(*s.Player, a.cfg.Evolution))
	}
	if a.evolution.IsOpen() {
		return
	}
	for _, c := range CommandsForKeys(func(k int32) bool { return rl.IsKeyPressed(k) }) {
		a.g.Submit(c)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	a.screenW, a.screenH = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	a.cam.Resize(float32(a.screenW), float32(a.screenH))
	a.inspector.SetPosition(a.screenW-250, 80)
}

// restart replaces a finished run with a fresh one.
func (a *App) restart() {
	g, err := a.newGame()
	if err != nil {
		a.log.Error("failed to restart", "error", err)
		return
	}
	a.g.Unload()
	a.g = g
	a.selected = 0
	a.evolution.SetOpen(false)
	a.cam.Reset()
}

// draw renders one frame.
func (a *App) draw() {
	s := a.g.Snapshot()

	if s.Player != nil && a.overlays.IsEnabled(OverlayFollow) && a.cam.Zoom > 1 {
		head := s.Player.Segments[0]
		a.cam.Follow(float32(head.X), float32(head.Y))
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.arena.Draw(&s, a.overlays, a.selected)
	if a.overlays.IsEnabled(OverlayMessages) {
		a.hud.DrawMessages(s.Agents, a.arena.ToScreen)
	}

	a.hud.Draw(HUDData{
		Title:        "Serpent",
		Mode:         s.Mode,
		Tick:         s.Tick,
		TickRate:     a.cfg.Screen.TargetFPS,
		Speed:        a.g.StepsPerUpdate(),
		FPS:          rl.GetFPS(),
		Paused:       a.userPaused,
		AICount:      countKind(s.Agents, components.KindAI),
		Player:       s.Player,
		Boss:         s.Boss,
		Best:         a.best(),
		ScreenWidth:  a.screenW,
		ScreenHeight: a.screenH,
	})

	if a.overlays.IsEnabled(OverlayInspector) {
		if v, ok := FindAgent(s.Agents, a.selected); ok {
			a.inspector.Draw(v, s.Mode.Progression())
		}
	}
	if a.overlays.IsEnabled(OverlayLeaderboard) {
		a.drawLeaderboard(AnchorTopRight, 220)
	}

	speed := a.controls.Draw(a.overlays, a.g.StepsPerUpdate())
	a.g.SetStepsPerUpdate(speed)

	if s.Player != nil {
		for _, c := range a.evolution.Draw(*s.Player, a.screenW, a.screenH) {
			a.g.Submit(c)
		}
		if !a.evolution.IsOpen() && s.Mode.Progression() && Available(*s.Player, a.cfg.Evolution) {
			rl.DrawText("Tab: spend points", 10, a.screenH-45, 14, rl.Yellow)
		}
	}

	if s.Outcome != game.OutcomeRunning {
		a.drawOutcome(&s)
	}
	a.hud.DrawControls(a.screenW, a.screenH, ControlsLegend)

	rl.EndDrawing()
}

func (a *App) best() int {
	if a.board == nil {
		return 0
	}
	return a.board.Best()
}

// drawLeaderboard draws the high score table at anchor and returns its bottom Y.
func (a *App) drawLeaderboard(anchor PanelAnchor, yOffset int32) int32 {
	r := a.renderer
	lines := int32(max(1, a.boardLen()))
	width, height := int32(300), (lines+2)*r.Theme.LineHeight+r.Theme.Padding*2
	x, y := Anchor(anchor, width, height, a.screenW, a.screenH, 10)
	y += yOffset
	r.DrawPanel(x, y, width, height)

	cx, cy := x+r.Theme.Padding, y+r.Theme.Padding
	cy = r.DrawSectionHeader(cx, cy, "High Scores")
	if a.boardLen() == 0 {
		rl.DrawText("no scores yet", cx, cy, r.Theme.FontSize, r.Theme.LabelColor)
		return cy + r.Theme.LineHeight
	}
	for i, e := range a.board.Entries() {
		rl.DrawText(fmt.Sprintf("%d. %-10s %6d  %s", i+1, e.Name, e.Score, e.Time), cx, cy, r.Theme.FontSize, r.Theme.ValueColor)
		cy += r.Theme.LineHeight
	}
	return cy
}

func (a *App) boardLen() int {
	if a.board == nil {
		return 0
	}
	return len(a.board.Entries())
}

// drawOutcome shows the end-of-run banner.
func (a *App) drawOutcome(s *game.Snapshot) {
	title, color := "GAME OVER", rl.Red
	if s.Outcome == game.OutcomeVictory {
		title, color = "VICTORY!", rl.Gold
	}
	rl.DrawRectangle(0, 0, a.screenW, a.screenH, rl.Fade(rl.Black, 0.55))

	w := rl.MeasureText(title, 48)
	y := a.screenH/2 - 120
	rl.DrawText(title, (a.screenW-w)/2, y, 48, color)
	y += 60

	line := fmt.Sprintf("Final score: %d", s.FinalScore)
	w = rl.MeasureText(line, 20)
	rl.DrawText(line, (a.screenW-w)/2, y, 20, rl.White)

	if s.Mode != game.ModeBoss {
		a.drawLeaderboard(AnchorCenter, 40)
	}

	hint := "Enter: play again | Esc: quit"
	w = rl.MeasureText(hint, 16)
	rl.DrawText(hint, (a.screenW-w)/2, a.screenH-80, 16, rl.LightGray)
}

func countKind(agents []game.AgentView, k components.Kind) int {
	n := 0
	for _, a := range agents {
		if a.Kind == k {
			n++
		}
	}
	return n
}
