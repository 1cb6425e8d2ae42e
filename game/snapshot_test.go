package game

import (
	"testing"

	"github.com/pthm-cable/serpent/components"
)

func TestSnapshot_BossMode(t *testing.T) {
	g := newTestGame(t, ModeBoss, Options{})
	s := g.Snapshot()

	if len(s.Agents) != 2 {
		t.Fatalf("agents = %d, want 2", len(s.Agents))
	}
	if s.Player == nil || s.Player.Kind != components.KindPlayer {
		t.Fatalf("player view = %+v", s.Player)
	}
	if s.Boss == nil {
		t.Fatal("boss view missing")
	}
	if s.Boss.Phase != 1 || s.Boss.Health != g.cfg.Boss.MaxHealth {
		t.Errorf("boss = phase %d hp %v", s.Boss.Phase, s.Boss.Health)
	}
	if s.Mode != ModeBoss || s.Outcome != OutcomeRunning {
		t.Errorf("mode/outcome = %v/%v", s.Mode, s.Outcome)
	}
}

func TestSnapshot_DoesNotAlias(t *testing.T) {
	g := newTestGame(t, ModeClassic, Options{})
	s := g.Snapshot()
	head := s.Player.Segments[0]

	s.Player.Segments[0] = components.Position{X: -1, Y: -1}
	s.Agents[0].Energy = -5

	p := mustPlayer(t, g)
	if p.Head() != head {
		t.Errorf("player head changed through snapshot: %v", p.Head())
	}
	if p.Energy.Value < 0 {
		t.Error("player energy changed through snapshot")
	}
}

func TestSnapshot_Messages(t *testing.T) {
	g := newTestGame(t, ModeEvolution, Options{})
	p := mustPlayer(t, g)
	p.Message.Set("hello", 2)

	if got := g.Snapshot().Player.Message; got != "hello" {
		t.Errorf("message = %q, want hello", got)
	}
	g.Step()
	g.Step()
	if got := g.Snapshot().Player.Message; got != "" {
		t.Errorf("message after expiry = %q, want empty", got)
	}
}

func TestSnapshot_CanEvolve(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{ModeClassic, false},
		{ModeEvolution, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			g := newTestGame(t, tt.mode, Options{})
			mustPlayer(t, g).Progress.Level = g.cfg.Evolution.TierLevel
			if got := g.Snapshot().Player.CanEvolve; got != tt.want {
				t.Errorf("CanEvolve = %v, want %v", got, tt.want)
			}
		})
	}
}
