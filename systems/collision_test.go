package systems

import (
	"testing"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

func TestResolveCollisions_HeadOnBothDie(t *testing.T) {
	cfg := config.Default()
	a := withBody(testAgent(cfg, 1, components.KindPlayer, pos(200, 200)),
		pos(200, 200), pos(190, 200), pos(180, 200))
	b := withBody(testAgent(cfg, 2, components.KindAI, pos(200, 200)),
		pos(200, 200), pos(210, 200), pos(220, 200))

	got := ResolveCollisions(cfg, []AgentRef{a, b})

	if a.Agent.Alive || b.Agent.Alive {
		t.Errorf("alive = (%v, %v), want both dead", a.Agent.Alive, b.Agent.Alive)
	}
	if len(got) != 2 {
		t.Fatalf("collisions = %d, want 2", len(got))
	}
	for _, c := range got {
		if c.Kind != CollisionHeadOn || !c.Died {
			t.Errorf("collision %+v, want fatal head-on", c)
		}
	}
}

func TestResolveCollisions_HeadOnDeathReportedOnce(t *testing.T) {
	cfg := config.Default()
	a := withBody(testAgent(cfg, 2, components.KindAI, pos(200, 200)),
		pos(200, 200), pos(190, 200), pos(180, 200))
	b := withBody(testAgent(cfg, 3, components.KindAI, pos(200, 200)),
		pos(200, 200), pos(210, 200), pos(220, 200))
	// c's tail sits on the cell where a and b meet.
	c := withBody(testAgent(cfg, 4, components.KindAI, pos(200, 220)),
		pos(200, 220), pos(200, 210), pos(200, 200))

	got := ResolveCollisions(cfg, []AgentRef{a, b, c})

	deaths := map[uint32]int{}
	for _, col := range got {
		if col.Died {
			deaths[col.AgentID]++
		}
	}
	for id, n := range deaths {
		if n != 1 {
			t.Errorf("agent %d reported dead %d times, want 1", id, n)
		}
	}
	if len(deaths) != 2 || deaths[2] != 1 || deaths[3] != 1 {
		t.Errorf("deaths = %v, want agents 2 and 3 once each", deaths)
	}
	if !c.Agent.Alive {
		t.Error("bystander whose tail was on the meeting cell died")
	}
}

func TestResolveCollisions_ImmuneSurvivesHeadOn(t *testing.T) {
	cfg := config.Default()
	a := withBody(testAgent(cfg, 1, components.KindAI, pos(200, 200)),
		pos(200, 200), pos(190, 200), pos(180, 200))
	a.Status.CollisionImmune = true
	b := withBody(testAgent(cfg, 2, components.KindAI, pos(205, 200)),
		pos(205, 200), pos(215, 200), pos(225, 200))

	ResolveCollisions(cfg, []AgentRef{a, b})

	if !a.Agent.Alive {
		t.Error("immune agent died")
	}
	if b.Agent.Alive {
		t.Error("unprotected agent survived")
	}
}

func TestResolveCollisions_TankOneShot(t *testing.T) {
	cfg := config.Default()
	tank := withBody(testAgent(cfg, 1, components.KindPlayer, pos(300, 300)),
		pos(300, 300), pos(290, 300), pos(280, 300))
	tank.Progress.Form = components.FormTank
	tank.Status.Tank.Active = true
	tank.Status.CollisionImmune = true

	first := withBody(testAgent(cfg, 2, components.KindAI, pos(300, 320)),
		pos(300, 320), pos(300, 310), pos(300, 300))
	second := withBody(testAgent(cfg, 3, components.KindAI, pos(300, 280)),
		pos(300, 280), pos(300, 290), pos(300, 300))

	got := ResolveCollisions(cfg, []AgentRef{tank, first, second})

	if len(got) != 2 {
		t.Fatalf("collisions = %+v, want 2 entries", got)
	}
	if !got[0].Saved || got[0].AgentID != 1 || got[0].OtherID != 2 {
		t.Errorf("first collision = %+v, want tank saved by immunity", got[0])
	}
	if !got[1].Died || got[1].AgentID != 1 || got[1].OtherID != 3 {
		t.Errorf("second collision = %+v, want tank killed", got[1])
	}
	if tank.Status.Tank.Active {
		t.Error("immunity flag should be cleared")
	}
	if tank.Message.Text == "" {
		t.Error("expected an immunity notification")
	}
	if !first.Agent.Alive || !second.Agent.Alive {
		t.Error("the other agents should be unharmed")
	}
}

func TestResolveCollisions_PlayerBounty(t *testing.T) {
	cfg := config.Default()
	player := withBody(testAgent(cfg, 1, components.KindPlayer, pos(500, 500)),
		pos(500, 500), pos(490, 500), pos(480, 500))
	ai := withBody(testAgent(cfg, 2, components.KindAI, pos(490, 500)),
		pos(490, 500), pos(490, 510), pos(490, 520))

	got := ResolveCollisions(cfg, []AgentRef{player, ai})

	if ai.Agent.Alive {
		t.Fatal("AI should die on the player's body")
	}
	if !player.Agent.Alive {
		t.Fatal("player should survive")
	}
	if len(got) != 1 || !got[0].Bounty || got[0].Kind != CollisionBody {
		t.Fatalf("collisions = %+v, want one body kill with bounty", got)
	}
	if player.Agent.Score != cfg.Collision.KillScore {
		t.Errorf("score = %d, want %d", player.Agent.Score, cfg.Collision.KillScore)
	}
	if player.Progress.Level != 3 {
		t.Errorf("level = %d, want 3 after %d exp", player.Progress.Level, cfg.Collision.KillExp)
	}
}

func TestResolveCollisions_Empty(t *testing.T) {
	cfg := config.Default()
	if got := ResolveCollisions(cfg, nil); len(got) != 0 {
		t.Errorf("collisions = %v, want none", got)
	}
}
