package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/game"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name    string
		ev      *tcell.EventKey
		wantAct action
		wantCmd game.Command
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), actionCommand, game.CmdTurn(components.DirUp)},
		{"wasd left", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), actionCommand, game.CmdTurn(components.DirLeft)},
		{"dash", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), actionCommand, game.CmdDash()},
		{"evolve tank", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), actionCommand, game.CmdEvolve(components.FormTank)},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), actionPause, game.Command{}},
		{"quit", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), actionQuit, game.Command{}},
		{"restart", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), actionRestart, game.Command{}},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), actionNone, game.Command{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, cmd := translateKey(tt.ev)
			if act != tt.wantAct || cmd != tt.wantCmd {
				t.Errorf("translateKey = (%d, %+v), want (%d, %+v)", act, cmd, tt.wantAct, tt.wantCmd)
			}
		})
	}
}

func TestProjection(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name  string
		w, h  int
		pos   components.Position
		wantX int
		wantY int
	}{
		{"roomy terminal keeps one cell per grid cell", 200, 100, components.Position{X: 250, Y: 380}, 25, 38 + hudRows},
		{"small terminal squeezes", 51, 40, components.Position{X: 500, Y: 0}, 25, hudRows},
		{"far corner clamps", 80, 24, components.Position{X: 5000, Y: 5000}, 79, 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProjection(cfg, tt.w, tt.h)
			x, y := p.at(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("at(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}
