package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

func TestDecideDirection(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name      string
		energy    float64
		player    *Target
		food      []components.Position
		startDir  components.Direction
		wantDir   components.Direction
		wantChase bool
		wantDash  bool
	}{
		{
			name:      "chases nearby player",
			energy:    100,
			player:    &Target{ID: 9, Head: pos(200, 100)},
			food:      []components.Position{pos(100, 50)},
			wantDir:   components.DirRight,
			wantChase: true,
		},
		{
			name:      "dashes when adjacent",
			energy:    100,
			player:    &Target{ID: 9, Head: pos(100, 130)},
			wantDir:   components.DirDown,
			wantChase: true,
			wantDash:  true,
		},
		{
			name:    "tired agent seeks food",
			energy:  35,
			player:  &Target{ID: 9, Head: pos(120, 100)},
			food:    []components.Position{pos(100, 50)},
			wantDir: components.DirUp,
		},
		{
			name:    "far player ignored",
			energy:  100,
			player:  &Target{ID: 9, Head: pos(900, 700)},
			food:    []components.Position{pos(50, 300)},
			wantDir: components.DirLeft,
		},
		{
			name:    "horizontal before vertical",
			energy:  100,
			food:    []components.Position{pos(150, 150)},
			wantDir: components.DirRight,
		},
		{
			name:     "nearest food wins",
			energy:   100,
			food:     []components.Position{pos(400, 100), pos(100, 140)},
			startDir: components.DirLeft,
			wantDir:  components.DirDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAgent(cfg, 1, components.KindAI, pos(100, 100))
			a.Energy.Value = tt.energy
			a.Agent.Direction = tt.startDir
			foods := NewFoodGrid(1024, 768, 10)
			for _, f := range tt.food {
				addFood(foods, f, components.Food{})
			}

			DecideDirection(cfg, a, tt.player, foods, rand.New(rand.NewSource(1)))

			if a.Agent.Direction != tt.wantDir {
				t.Errorf("direction = %v, want %v", a.Agent.Direction, tt.wantDir)
			}
			if a.Chase.Active != tt.wantChase {
				t.Errorf("chasing = %v, want %v", a.Chase.Active, tt.wantChase)
			}
			if a.Dash.Active != tt.wantDash {
				t.Errorf("dashing = %v, want %v", a.Dash.Active, tt.wantDash)
			}
		})
	}
}

func TestDecideDirection_ChaseExpires(t *testing.T) {
	cfg := config.Default()
	a := testAgent(cfg, 1, components.KindAI, pos(100, 100))
	a.Chase.Active = true
	a.Chase.Timer = 1
	foods := NewFoodGrid(1024, 768, 10)
	addFood(foods, pos(100, 300), components.Food{})

	// Player out of detection range: the chase timer runs out this tick.
	DecideDirection(cfg, a, &Target{ID: 9, Head: pos(800, 100)}, foods, rand.New(rand.NewSource(1)))

	if a.Chase.Active {
		t.Error("chase should expire")
	}
	if a.Agent.Direction != components.DirDown {
		t.Errorf("direction = %v, want DOWN toward food", a.Agent.Direction)
	}
}

func TestDecideDirection_NoFoodRandomTurn(t *testing.T) {
	cfg := copyConfig()
	cfg.AI.RandomTurnChance = 0
	a := testAgent(cfg, 1, components.KindAI, pos(100, 100))
	a.Agent.Direction = components.DirUp

	DecideDirection(cfg, a, nil, NewFoodGrid(1024, 768, 10), rand.New(rand.NewSource(1)))
	if a.Agent.Direction != components.DirUp {
		t.Errorf("direction = %v, want unchanged UP", a.Agent.Direction)
	}

	cfg.AI.RandomTurnChance = 1
	rng := rand.New(rand.NewSource(3))
	seen := map[components.Direction]bool{}
	for i := 0; i < 100; i++ {
		DecideDirection(cfg, a, nil, nil, rng)
		seen[a.Agent.Direction] = true
	}
	if len(seen) != 4 {
		t.Errorf("random turns visited %d directions, want 4", len(seen))
	}
}
