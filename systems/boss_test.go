package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

func testBoss(cfg *config.Config, head components.Position) AgentRef {
	return NewAgent(cfg, AgentSpec{ID: 100, Name: "BOSS", Kind: components.KindBoss, Head: head})
}

func testPlayer(cfg *config.Config, length int) AgentRef {
	p := testAgent(cfg, 1, components.KindPlayer, pos(300, 300))
	p.Body.Resize(length)
	return p
}

// ---------- Phase machine ----------

func TestUpdateBoss_PhaseTransitions(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name      string
		health    float64
		survival  int
		playerLen int
		wantPhase int
		wantLen   int
	}{
		{"health skips to phase 3", 50, 0, 5, 3, 20},
		{"health forces phase 2", 110, 0, 3, 2, 6},
		{"time reaches phase 2", 200, 2699, 4, 2, 8},
		{"time reaches phase 3", 200, 5399, 1, 3, 4},
		{"stays in phase 1", 200, 10, 4, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boss := testBoss(cfg, pos(700, 300))
			boss.Boss.Health = tt.health
			boss.Boss.SurvivalTime = tt.survival
			player := testPlayer(cfg, tt.playerLen)

			rep := UpdateBoss(cfg, boss, &player, rand.New(rand.NewSource(1)))

			if boss.Boss.Phase != tt.wantPhase {
				t.Fatalf("phase = %d, want %d", boss.Boss.Phase, tt.wantPhase)
			}
			if boss.Body.Len() != tt.wantLen {
				t.Errorf("body length = %d, want %d", boss.Body.Len(), tt.wantLen)
			}
			if tt.wantPhase > 1 {
				if rep.NewPhase != tt.wantPhase {
					t.Errorf("report phase = %d, want %d", rep.NewPhase, tt.wantPhase)
				}
				if want := cfg.Boss.SizeMultipliers[tt.wantPhase-1]; boss.Boss.SizeMultiplier != want {
					t.Errorf("size multiplier = %v, want %v", boss.Boss.SizeMultiplier, want)
				}
				if boss.Boss.Pattern != components.Pattern(tt.wantPhase-1) {
					t.Errorf("pattern = %v", boss.Boss.Pattern)
				}
			}
		})
	}
}

func TestUpdateBoss_PhaseNeverDecreases(t *testing.T) {
	cfg := config.Default()
	boss := testBoss(cfg, pos(700, 300))
	boss.Boss.Health = 40
	player := testPlayer(cfg, 3)
	rng := rand.New(rand.NewSource(1))

	UpdateBoss(cfg, boss, &player, rng)
	boss.Boss.Health = boss.Boss.MaxHealth
	for i := 0; i < 100; i++ {
		UpdateBoss(cfg, boss, &player, rng)
		if boss.Boss.Phase != 3 {
			t.Fatalf("phase dropped to %d", boss.Boss.Phase)
		}
	}
}

func TestUpdateBoss_EnhancedBursts(t *testing.T) {
	cfg := config.Default()
	boss := testBoss(cfg, pos(700, 300))
	boss.Boss.Phase = 2
	boss.Boss.SurvivalTime = cfg.Boss.Phase3Time - 1
	player := testPlayer(cfg, 3)
	rng := rand.New(rand.NewSource(1))

	UpdateBoss(cfg, boss, &player, rng)
	if boss.Boss.Phase != 3 || boss.Boss.Enhanced {
		t.Fatalf("phase=%d enhanced=%v, want 3/false", boss.Boss.Phase, boss.Boss.Enhanced)
	}

	enhancedAt := 0
	for i := 1; i <= cfg.Boss.EnhanceDelay; i++ {
		if rep := UpdateBoss(cfg, boss, &player, rng); rep.Enhanced {
			enhancedAt = i
		}
	}
	if enhancedAt != cfg.Boss.EnhanceDelay {
		t.Errorf("enhanced after %d ticks, want %d", enhancedAt, cfg.Boss.EnhanceDelay)
	}
}

// ---------- Projectiles ----------

func TestUpdateBoss_Fire(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name         string
		phase        int
		bursts       int
		wantShots    int
		wantCooldown int
		wantBursts   int
	}{
		{"phase 1 single homing", 1, 0, 1, 75, 0},
		{"phase 2 double homing", 2, 0, 2, 45, 0},
		{"phase 3 burst", 3, 0, 8, 5, 1},
		{"phase 3 burst rest", 3, 3, 8, 45, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boss := testBoss(cfg, pos(700, 300))
			boss.Boss.Phase = tt.phase
			boss.Boss.ProjectileCooldown = 0
			boss.Boss.BurstCount = tt.bursts
			player := testPlayer(cfg, 3)

			rep := UpdateBoss(cfg, boss, &player, rand.New(rand.NewSource(1)))

			if len(rep.Shots) != tt.wantShots {
				t.Fatalf("shots = %d, want %d", len(rep.Shots), tt.wantShots)
			}
			if boss.Boss.ProjectileCooldown != tt.wantCooldown {
				t.Errorf("cooldown = %d, want %d", boss.Boss.ProjectileCooldown, tt.wantCooldown)
			}
			if boss.Boss.BurstCount != tt.wantBursts {
				t.Errorf("bursts = %d, want %d", boss.Boss.BurstCount, tt.wantBursts)
			}
		})
	}
}

func TestHomingShotAimsAtPlayer(t *testing.T) {
	cfg := config.Default()
	boss := testBoss(cfg, pos(700, 300))
	boss.Boss.ProjectileCooldown = 0
	player := testPlayer(cfg, 3)

	rep := UpdateBoss(cfg, boss, &player, rand.New(rand.NewSource(1)))

	p := rep.Shots[0].Projectile
	if math.Abs(p.DX+4) > 1e-9 || math.Abs(p.DY) > 1e-9 || p.Circular {
		t.Errorf("projectile = %+v, want DX=-4 DY=0 homing", p)
	}
}

func TestAdvanceProjectile(t *testing.T) {
	cfg := config.Default()
	p := pos(1020, 100)
	if AdvanceProjectile(cfg, &p, &components.Projectile{DX: 5}) {
		t.Error("projectile past the right edge should be removed")
	}
	p = pos(500, 100)
	if !AdvanceProjectile(cfg, &p, &components.Projectile{DX: -3, DY: 4}) {
		t.Error("projectile inside the grid should survive")
	}
	if p != pos(497, 104) {
		t.Errorf("position = %v, want {497 104}", p)
	}
}

// ---------- Global attack ----------

func TestGlobalAttack(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		cfg := config.Default()
		boss := testBoss(cfg, pos(700, 300))
		boss.Boss.Phase = 3
		player := testPlayer(cfg, 3)
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 500; i++ {
			UpdateBoss(cfg, boss, &player, rng)
			if boss.Boss.Global.Pending() {
				t.Fatal("global attack started with interval 0")
			}
		}
	})

	t.Run("warning then active", func(t *testing.T) {
		cfg := copyConfig()
		cfg.Boss.GlobalAttack = 10
		boss := testBoss(cfg, pos(700, 300))
		boss.Boss.Phase = 3
		boss.Boss.SurvivalTime = 9
		player := testPlayer(cfg, 3)
		rng := rand.New(rand.NewSource(1))

		rep := UpdateBoss(cfg, boss, &player, rng)
		if !rep.GlobalWarning {
			t.Fatal("expected a warning at the interval")
		}
		zone := boss.Boss.Global.SafeZone
		if zone.W != float64(cfg.Grid.Width/6) || zone.H != float64(cfg.Grid.Height/6) {
			t.Errorf("safe zone = %+v, want 1/6 of the grid", zone)
		}

		activeAt := 0
		for i := 1; i <= cfg.Boss.GlobalWarning; i++ {
			if UpdateBoss(cfg, boss, &player, rng).GlobalActive {
				activeAt = i
			}
		}
		if activeAt != cfg.Boss.GlobalWarning {
			t.Errorf("active after %d ticks, want %d", activeAt, cfg.Boss.GlobalWarning)
		}
		if boss.Boss.Global.Active != cfg.Boss.GlobalDuration {
			t.Errorf("active window = %d, want %d", boss.Boss.Global.Active, cfg.Boss.GlobalDuration)
		}
	})
}

// ---------- Boss collisions ----------

func TestResolveBossCollision(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name        string
		setup       func(boss, player AgentRef)
		projectiles []components.Position
		wantKind    BossContactKind
		wantAlive   bool
		wantHealth  float64
	}{
		{
			name:       "no contact",
			setup:      func(boss, player AgentRef) {},
			wantKind:   BossContactNone,
			wantAlive:  true,
			wantHealth: 200,
		},
		{
			name: "global attack outside safe zone",
			setup: func(boss, player AgentRef) {
				boss.Boss.Global.Active = 5
				boss.Boss.Global.SafeZone = components.Rect{X: 0, Y: 0, W: 50, H: 50}
			},
			wantKind:   BossContactGlobal,
			wantHealth: 200,
		},
		{
			name: "global attack inside safe zone",
			setup: func(boss, player AgentRef) {
				boss.Boss.Global.Active = 5
				boss.Boss.Global.SafeZone = components.Rect{X: 250, Y: 250, W: 100, H: 100}
			},
			wantKind:   BossContactNone,
			wantAlive:  true,
			wantHealth: 200,
		},
		{
			name:        "projectile hit ignores immunity",
			setup:       func(boss, player AgentRef) { player.Status.CollisionImmune = true },
			projectiles: []components.Position{pos(600, 600), pos(305, 300)},
			wantKind:    BossContactProjectile,
			wantHealth:  200,
		},
		{
			name: "body contact kills",
			setup: func(boss, player AgentRef) {
				boss.Body.Segments[0] = pos(315, 300)
			},
			wantKind:   BossContactBody,
			wantHealth: 200,
		},
		{
			name: "charge deals damage",
			setup: func(boss, player AgentRef) {
				boss.Body.Segments[0] = pos(315, 300)
				player.Status.Charge = components.Charge{Active: true, Timer: 5}
			},
			wantKind:   BossContactCharge,
			wantAlive:  true,
			wantHealth: 190,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boss := testBoss(cfg, pos(700, 300))
			player := testPlayer(cfg, 3)
			tt.setup(boss, player)

			got := ResolveBossCollision(cfg, boss, player, tt.projectiles)

			if got.Kind != tt.wantKind {
				t.Errorf("kind = %d, want %d", got.Kind, tt.wantKind)
			}
			if player.Agent.Alive != tt.wantAlive {
				t.Errorf("player alive = %v, want %v", player.Agent.Alive, tt.wantAlive)
			}
			if boss.Boss.Health != tt.wantHealth {
				t.Errorf("boss health = %v, want %v", boss.Boss.Health, tt.wantHealth)
			}
			if tt.wantKind == BossContactProjectile && got.Projectile != 1 {
				t.Errorf("projectile index = %d, want 1", got.Projectile)
			}
		})
	}
}

func TestResolveBossCollision_Victory(t *testing.T) {
	cfg := config.Default()
	boss := testBoss(cfg, pos(310, 300))
	boss.Boss.Health = 10
	player := testPlayer(cfg, 3)
	player.Status.Charge.Active = true

	got := ResolveBossCollision(cfg, boss, player, nil)

	if !got.Victory || boss.Agent.Alive {
		t.Errorf("victory=%v boss alive=%v, want victory", got.Victory, boss.Agent.Alive)
	}
}

// ---------- Boss movement ----------

func TestMoveBoss(t *testing.T) {
	cfg := config.Default()

	t.Run("phase 2 half speed with delay", func(t *testing.T) {
		boss := testBoss(cfg, pos(700, 300))
		boss.Boss.Phase = 2
		boss.Agent.Direction = components.DirLeft

		MoveBoss(cfg, boss, nil)
		if got := boss.Head(); got != pos(695, 300) {
			t.Errorf("head = %v, want {695 300}", got)
		}
		MoveBoss(cfg, boss, nil)
		if got := boss.Head(); got != pos(695, 300) {
			t.Errorf("head moved during delay: %v", got)
		}
		if boss.Body.Len() != 3 {
			t.Errorf("body length = %d, want 3", boss.Body.Len())
		}
	})

	t.Run("phase 1 grows from food", func(t *testing.T) {
		boss := testBoss(cfg, pos(700, 300))
		foods := NewFoodGrid(1024, 768, 10)
		addFood(foods, pos(725, 300), components.Food{Bonus: true})

		if _, ate := MoveBoss(cfg, boss, foods); !ate {
			t.Fatal("boss should reach food within its enlarged radius")
		}
		if boss.Body.Len() != 6 {
			t.Errorf("body length = %d, want 6", boss.Body.Len())
		}
		if boss.Energy.Value != MaxEnergy(cfg, boss.Progress) {
			t.Errorf("boss energy = %v, want max", boss.Energy.Value)
		}
	})
}

func TestDecideBossDirection(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name     string
		phase    int
		player   components.Position
		wantDir  components.Direction
		wantDash bool
	}{
		{"phase 2 chases within range", 2, pos(700, 100), components.DirUp, false},
		{"phase 2 ignores distant player", 2, pos(100, 300), components.DirRight, false},
		{"phase 3 always chases", 3, pos(100, 320), components.DirLeft, false},
		{"phase 3 dashes when close", 3, pos(700, 400), components.DirDown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boss := testBoss(cfg, pos(700, 300))
			boss.Boss.Phase = tt.phase

			DecideBossDirection(cfg, boss, &Target{ID: 1, Head: tt.player}, nil, rand.New(rand.NewSource(1)))

			if boss.Agent.Direction != tt.wantDir {
				t.Errorf("direction = %v, want %v", boss.Agent.Direction, tt.wantDir)
			}
			if boss.Dash.Active != tt.wantDash {
				t.Errorf("dashing = %v, want %v", boss.Dash.Active, tt.wantDash)
			}
		})
	}
}
