package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/game"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Mode         game.Mode
	Tick         int32
	TickRate     int
	Speed        int
	FPS          int32
	Paused       bool
	AICount      int
	Player       *game.AgentView
	Boss         *game.BossView
	Best         int
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	rl.DrawText(fmt.Sprintf("%s  [%s]", data.Title, data.Mode), 10, 10, 20, rl.White)

	seconds := int(data.Tick) / max(1, data.TickRate)
	rl.DrawText(
		fmt.Sprintf("Time: %d:%02d | Speed: %dx | FPS: %d | AI: %d | Best: %d",
			seconds/60, seconds%60, data.Speed, data.FPS, data.AICount, data.Best),
		10, 35, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
	}

	if p := data.Player; p != nil {
		y := int32(80)
		rl.DrawText(fmt.Sprintf("Score: %d", p.Score), 10, y, 18, rl.White)
		y += 24
		y = r.DrawEnergyBar(10, y, "Energy", float32(p.Energy), float32(p.MaxEnergy), 300)
		if data.Mode.Progression() {
			ratio := float32(p.Exp) / float32(max(1, p.ExpToLevel))
			y = r.DrawBar(10, y, fmt.Sprintf("Lv %d", p.Level), ratio, fmt.Sprintf("%d/%d", p.Exp, p.ExpToLevel), 300, r.Theme.BarFill)
		}
		h.drawStatus(10, y, p)
	}

	if b := data.Boss; b != nil {
		h.drawBossBar(data.ScreenWidth, b)
	}
}

// drawStatus lists the player's active abilities and effects.
func (h *HUD) drawStatus(x, y int32, p *game.AgentView) {
	var parts []string
	switch {
	case p.Dashing:
		parts = append(parts, "DASH")
	case p.DashCooldown > 0:
		parts = append(parts, fmt.Sprintf("dash %d", p.DashCooldown))
	}
	if p.Charging {
		parts = append(parts, "CHARGE")
	}
	if p.TankActive {
		parts = append(parts, "IMMUNE")
	} else if p.TankCooldown > 0 {
		parts = append(parts, fmt.Sprintf("immunity %d", p.TankCooldown))
	}
	for e, left := range p.Effects {
		if left > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", components.Effect(e), left))
		}
	}
	for i, s := range parts {
		rl.DrawText(s, x, y+int32(i)*14, 12, rl.SkyBlue)
	}
}

// drawBossBar draws the boss health bar across the top right.
func (h *HUD) drawBossBar(screenW int32, b *game.BossView) {
	r := h.renderer
	width := int32(360)
	x := screenW - width - 10
	ratio := float32(b.Health / max(1, b.MaxHealth))
	r.DrawBar(x, 12, "BOSS", ratio, fmt.Sprintf("%.0f", b.Health), width, DefaultPalette().Boss[max(0, min(b.Phase-1, 2))])
	rl.DrawText(b.Status, x, 32, 12, rl.LightGray)
	if b.GlobalWarning {
		rl.DrawText("GLOBAL ATTACK INCOMING", x, 48, 16, rl.Red)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// DrawMessages shows agent notification text above their heads.
func (h *HUD) DrawMessages(agents []game.AgentView, toScreen func(x, y float32) (float32, float32)) {
	for _, a := range agents {
		if a.Message == "" || len(a.Segments) == 0 {
			continue
		}
		head := a.Segments[0]
		sx, sy := toScreen(float32(head.X), float32(head.Y))
		w := rl.MeasureText(a.Message, 12)
		rl.DrawText(a.Message, int32(sx)-w/2, int32(sy)-24, 12, rl.White)
	}
}
