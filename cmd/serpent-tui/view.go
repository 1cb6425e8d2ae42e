package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/game"
)

// hudRows are reserved at the top of the terminal for status text.
const hudRows = 2

// projection maps world positions onto terminal cells, squeezing the grid
// into whatever the terminal offers.
type projection struct {
	cell       float64
	sx, sy     float64
	cols, rows int
}

func newProjection(cfg *config.Config, w, h int) projection {
	cols := cfg.Grid.Width / cfg.Grid.CellSize
	rows := cfg.Grid.Height / cfg.Grid.CellSize
	avail := max(h-hudRows, 1)
	return projection{
		cell: cfg.Derived.Cell,
		sx:   min(float64(w)/float64(cols), 1),
		sy:   min(float64(avail)/float64(rows), 1),
		cols: min(w, cols),
		rows: min(avail, rows),
	}
}

func (p projection) at(pos components.Position) (x, y int) {
	x = int(pos.X / p.cell * p.sx)
	y = int(pos.Y / p.cell * p.sy)
	return min(max(x, 0), p.cols-1), min(max(y, 0), p.rows-1) + hudRows
}

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.Color(240))
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBonus  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleShot   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

var effectStyles = map[components.Effect]tcell.Style{
	components.EffectShield:     tcell.StyleDefault.Foreground(tcell.ColorAqua),
	components.EffectSpeedBoost: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	components.EffectGhost:      tcell.StyleDefault.Foreground(tcell.ColorSilver),
}

func agentStyle(a game.AgentView) tcell.Style {
	switch a.Kind {
	case components.KindPlayer:
		if a.Dashing {
			return tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
		}
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case components.KindBoss:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawSnapshot renders one frame.
func drawSnapshot(s tcell.Screen, cfg *config.Config, snap *game.Snapshot) {
	s.Clear()
	w, h := s.Size()
	p := newProjection(cfg, w, h)

	for x := 0; x < p.cols; x++ {
		s.SetContent(x, hudRows-1, '─', nil, styleBorder)
	}

	if b := snap.Boss; b != nil && b.GlobalWarning {
		drawText(s, 0, 1, styleWarn, "!! GLOBAL ATTACK INCOMING: find the safe zone !!")
	}

	for _, f := range snap.Food {
		x, y := p.at(f.Pos)
		switch {
		case f.Food.Special != components.EffectNone:
			s.SetContent(x, y, '◆', nil, effectStyles[f.Food.Special])
		case f.Food.Bonus:
			s.SetContent(x, y, '★', nil, styleBonus)
		default:
			s.SetContent(x, y, '•', nil, styleFood)
		}
	}

	for _, pr := range snap.Projectiles {
		x, y := p.at(pr.Pos)
		s.SetContent(x, y, '*', nil, styleShot)
	}

	for _, a := range snap.Agents {
		style := agentStyle(a)
		for i := len(a.Segments) - 1; i >= 0; i-- {
			x, y := p.at(a.Segments[i])
			ch := 'o'
			if i == 0 {
				ch = '@'
			}
			s.SetContent(x, y, ch, nil, style)
		}
	}

	drawText(s, 0, 0, styleHUD, statusLine(snap))

	if snap.Outcome != game.OutcomeRunning {
		msg := fmt.Sprintf(" %s  score %d  (enter: restart, q: quit) ", snap.Outcome, snap.FinalScore)
		drawText(s, max((w-len(msg))/2, 0), h/2, styleHUD.Reverse(true), msg)
	} else if h > hudRows+1 {
		drawText(s, 0, h-1, styleBorder, legend)
	}

	s.Show()
}

// statusLine summarises the run for the top HUD row.
func statusLine(snap *game.Snapshot) string {
	line := fmt.Sprintf("%s  tick %d", snap.Mode, snap.Tick)
	if snap.Paused {
		line += "  [PAUSED]"
	}
	if pl := snap.Player; pl != nil {
		line += fmt.Sprintf("  energy %.0f/%.0f  score %d", pl.Energy, pl.MaxEnergy, pl.Score)
		if snap.Mode.Progression() {
			line += fmt.Sprintf("  lv %d %s", pl.Level, pl.Form)
			if pl.StatPoints > 0 {
				line += fmt.Sprintf("  +%d pts", pl.StatPoints)
			}
		}
		if pl.Message != "" {
			line += "  " + pl.Message
		}
	}
	if b := snap.Boss; b != nil {
		line += fmt.Sprintf("  boss %.0f/%.0f P%d %s", b.Health, b.MaxHealth, b.Phase, b.Status)
	}
	return line
}
