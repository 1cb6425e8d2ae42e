package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/camera"
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/game"
)

// ArenaRenderer draws the playfield of a snapshot through a camera.
type ArenaRenderer struct {
	cfg     *config.Config
	cam     *camera.Camera
	theme   Theme
	palette Palette
}

// NewArenaRenderer creates a renderer for the configured grid.
func NewArenaRenderer(cfg *config.Config, cam *camera.Camera) *ArenaRenderer {
	return &ArenaRenderer{
		cfg:     cfg,
		cam:     cam,
		theme:   DefaultTheme(),
		palette: DefaultPalette(),
	}
}

// Draw renders grid, food, projectiles, boss attack zones and agents.
func (ar *ArenaRenderer) Draw(s *game.Snapshot, overlays *OverlayRegistry, selected uint32) {
	ar.drawBounds(overlays.IsEnabled(OverlayGrid))
	if s.Boss != nil {
		ar.drawGlobalAttack(s.Boss)
	}
	for _, f := range s.Food {
		ar.drawFood(f)
	}
	for _, p := range s.Projectiles {
		ar.drawProjectile(p)
	}
	for i := range s.Agents {
		a := &s.Agents[i]
		ar.drawAgent(a, s.Boss)
		if overlays.IsEnabled(OverlayNames) {
			ar.drawName(a)
		}
		if overlays.IsEnabled(OverlayHitRadius) {
			ar.drawRadius(a, s.Boss)
		}
		if a.ID == selected {
			ar.drawSelection(a)
		}
	}
}

// cell returns the on-screen rectangle of a grid cell at p, scaled by k.
func (ar *ArenaRenderer) cell(p components.Position, k float32) rl.Rectangle {
	c := float32(ar.cfg.Derived.Cell)
	s := ar.cam.Scale()
	size := c * k
	off := (size - c) / 2
	sx, sy := ar.cam.WorldToScreen(float32(p.X)-off, float32(p.Y)-off)
	return rl.Rectangle{X: sx, Y: sy, Width: size * s, Height: size * s}
}

func (ar *ArenaRenderer) visible(p components.Position, k float32) bool {
	c := float32(ar.cfg.Derived.Cell) * k
	return ar.cam.IsVisible(float32(p.X)+c/2, float32(p.Y)+c/2, c)
}

func (ar *ArenaRenderer) drawBounds(grid bool) {
	w, h := float32(ar.cfg.Grid.Width), float32(ar.cfg.Grid.Height)
	x0, y0 := ar.cam.WorldToScreen(0, 0)
	x1, y1 := ar.cam.WorldToScreen(w, h)
	rl.DrawRectangleRec(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, ar.theme.Background)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 2, ar.theme.PanelBorder)
	if !grid {
		return
	}
	c := float32(ar.cfg.Derived.Cell)
	for x := c; x < w; x += c {
		sx, _ := ar.cam.WorldToScreen(x, 0)
		rl.DrawLineV(rl.Vector2{X: sx, Y: y0}, rl.Vector2{X: sx, Y: y1}, ar.theme.GridLine)
	}
	for y := c; y < h; y += c {
		_, sy := ar.cam.WorldToScreen(0, y)
		rl.DrawLineV(rl.Vector2{X: x0, Y: sy}, rl.Vector2{X: x1, Y: sy}, ar.theme.GridLine)
	}
}

func (ar *ArenaRenderer) drawGlobalAttack(b *game.BossView) {
	if !b.GlobalWarning && !b.GlobalActive {
		return
	}
	w, h := float32(ar.cfg.Grid.Width), float32(ar.cfg.Grid.Height)
	x0, y0 := ar.cam.WorldToScreen(0, 0)
	x1, y1 := ar.cam.WorldToScreen(w, h)
	tint := ar.palette.Warning
	if b.GlobalActive {
		tint = ar.palette.GlobalFlash
	}
	rl.DrawRectangleRec(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, tint)

	z := b.SafeZone
	zx0, zy0 := ar.cam.WorldToScreen(float32(z.X), float32(z.Y))
	zx1, zy1 := ar.cam.WorldToScreen(float32(z.X+z.W), float32(z.Y+z.H))
	rect := rl.Rectangle{X: zx0, Y: zy0, Width: zx1 - zx0, Height: zy1 - zy0}
	rl.DrawRectangleRec(rect, ar.palette.SafeZone)
	rl.DrawRectangleLinesEx(rect, 2, rl.Green)
}

func (ar *ArenaRenderer) drawFood(f game.FoodView) {
	if !ar.visible(f.Pos, 1) {
		return
	}
	color := ar.palette.Food
	switch {
	case f.Food.IsSpecial():
		color = ar.effectColor(f.Food.Special)
	case f.Food.Bonus:
		color = ar.palette.Bonus
	}
	r := ar.cell(f.Pos, 0.8)
	rl.DrawCircleV(rl.Vector2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}, r.Width/2, color)
}

func (ar *ArenaRenderer) effectColor(e components.Effect) rl.Color {
	switch e {
	case components.EffectShield:
		return ar.palette.Shield
	case components.EffectSpeedBoost:
		return ar.palette.SpeedBoost
	default:
		return ar.palette.Ghost
	}
}

func (ar *ArenaRenderer) drawProjectile(p game.ProjectileView) {
	if !ar.visible(p.Pos, 1) {
		return
	}
	color := ar.palette.Projectile
	if p.Circular {
		color = ar.palette.Circular
	}
	sx, sy := ar.cam.WorldToScreen(float32(p.Pos.X), float32(p.Pos.Y))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 4*ar.cam.Scale(), color)
}

func (ar *ArenaRenderer) drawAgent(a *game.AgentView, boss *game.BossView) {
	body, head := ar.palette.AI, ar.palette.AIHead
	k := float32(1)
	switch a.Kind {
	case components.KindPlayer:
		body, head = ar.palette.Player, ar.palette.PlayerHead
	case components.KindBoss:
		if boss != nil {
			body = ar.palette.Boss[max(0, min(boss.Phase-1, 2))]
			k = float32(boss.SizeMultiplier)
		}
		head = rl.ColorBrightness(body, 0.3)
	}
	if a.Effects[components.EffectGhost] > 0 {
		body = rl.Fade(body, 0.4)
	}

	for i := len(a.Segments) - 1; i >= 0; i-- {
		seg := a.Segments[i]
		if !ar.visible(seg, k) {
			continue
		}
		c := body
		if i == 0 {
			c = head
		}
		rl.DrawRectangleRec(ar.cell(seg, k*0.9), c)
	}

	if len(a.Segments) == 0 {
		return
	}
	h := ar.cell(a.Segments[0], k*1.2)
	switch {
	case a.Charging:
		rl.DrawRectangleLinesEx(h, 2, rl.Red)
	case a.Invincible || a.Protected:
		rl.DrawRectangleLinesEx(h, 1, rl.White)
	}
}

func (ar *ArenaRenderer) drawName(a *game.AgentView) {
	if len(a.Segments) == 0 {
		return
	}
	head := a.Segments[0]
	sx, sy := ar.cam.WorldToScreen(float32(head.X), float32(head.Y))
	label := a.Name
	if a.Kind != components.KindBoss && a.Level > 1 {
		label = fmt.Sprintf("%s L%d", a.Name, a.Level)
	}
	w := rl.MeasureText(label, 10)
	rl.DrawText(label, int32(sx)-w/2, int32(sy)-12, 10, rl.LightGray)
}

func (ar *ArenaRenderer) drawRadius(a *game.AgentView, boss *game.BossView) {
	if len(a.Segments) == 0 {
		return
	}
	c := ar.cfg.Derived.Cell
	radius := c
	if a.Kind == components.KindBoss && boss != nil {
		radius = c * boss.SizeMultiplier
	}
	head := a.Segments[0]
	sx, sy := ar.cam.WorldToScreen(float32(head.X), float32(head.Y))
	rl.DrawCircleLines(int32(sx), int32(sy), float32(radius)*ar.cam.Scale(), rl.Fade(rl.Yellow, 0.6))
}

func (ar *ArenaRenderer) drawSelection(a *game.AgentView) {
	if len(a.Segments) == 0 {
		return
	}
	rl.DrawRectangleLinesEx(ar.cell(a.Segments[0], 1.8), 1, rl.Yellow)
}

// ToScreen exposes the camera transform for overlays drawn by the app.
func (ar *ArenaRenderer) ToScreen(x, y float32) (float32, float32) {
	return ar.cam.WorldToScreen(x, y)
}
