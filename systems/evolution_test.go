package systems

import (
	"testing"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

func TestAddExp_ReachesEvolutionTier(t *testing.T) {
	cfg := config.Default()
	p := components.NewProgress(100)
	p.Level = 4

	if got := AddExp(cfg, &p, 100); got != 1 {
		t.Fatalf("levels gained = %d, want 1", got)
	}
	if p.Level != 5 {
		t.Errorf("level = %d, want 5", p.Level)
	}
	if p.Exp != 0 {
		t.Errorf("exp = %d, want 0", p.Exp)
	}
	if p.ExpToLevel != 150 {
		t.Errorf("exp to level = %d, want 150", p.ExpToLevel)
	}
	if !CanEvolve(cfg, &p) {
		t.Error("CanEvolve should be true at level 5 in NORMAL form")
	}
}

func TestAddExp_MultipleLevels(t *testing.T) {
	cfg := config.Default()
	p := components.NewProgress(100)

	// 100 + 150 + 225 = 475, leaving 25 toward the 337 threshold.
	if got := AddExp(cfg, &p, 500); got != 3 {
		t.Fatalf("levels gained = %d, want 3", got)
	}
	if p.Level != 4 || p.Exp != 25 || p.ExpToLevel != 337 {
		t.Errorf("got level=%d exp=%d next=%d, want 4/25/337", p.Level, p.Exp, p.ExpToLevel)
	}
	// Level 2 and 4 grant stat points; every level grants an evolution point.
	if p.StatPoints != 2 {
		t.Errorf("stat points = %d, want 2", p.StatPoints)
	}
	if p.EvolutionPoints != 3 {
		t.Errorf("evolution points = %d, want 3", p.EvolutionPoints)
	}
}

func TestAddExp_Monotonic(t *testing.T) {
	cfg := config.Default()
	p := components.NewProgress(cfg.Evolution.BaseExpToLevel)

	prevLevel, prevNext := p.Level, p.ExpToLevel
	for i := 0; i < 200; i++ {
		AddExp(cfg, &p, 37*(i%5+1))
		if p.Level < prevLevel {
			t.Fatalf("level decreased from %d to %d", prevLevel, p.Level)
		}
		if p.Level > prevLevel && p.ExpToLevel <= prevNext {
			t.Fatalf("exp to level did not grow: %d -> %d", prevNext, p.ExpToLevel)
		}
		prevLevel, prevNext = p.Level, p.ExpToLevel
	}
}

func TestCanEvolve(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name  string
		level int
		form  components.Form
		want  bool
	}{
		{"too low", 4, components.FormNormal, false},
		{"first tier", 5, components.FormNormal, true},
		{"tier taken", 7, components.FormTank, false},
		{"ultimate unlocked", 10, components.FormHunter, true},
		{"already ultimate", 12, components.FormUltimate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := components.NewProgress(100)
			p.Level = tt.level
			p.Form = tt.form
			if got := CanEvolve(cfg, &p); got != tt.want {
				t.Errorf("CanEvolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvolve_SideEffects(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name  string
		form  components.Form
		check func(t *testing.T, a AgentRef)
	}{
		{"speeder", components.FormSpeeder, func(t *testing.T, a AgentRef) {
			if a.Dash.Cooldown != 5 {
				t.Errorf("dash cooldown = %d, want 5", a.Dash.Cooldown)
			}
		}},
		{"tank", components.FormTank, func(t *testing.T, a AgentRef) {
			if a.Energy.Value != 100 {
				t.Errorf("energy = %v, want clamped 100", a.Energy.Value)
			}
			if !a.Status.Tank.Active || !a.Status.CollisionImmune {
				t.Error("tank should arm its one-shot immunity")
			}
		}},
		{"hunter", components.FormHunter, func(t *testing.T, a AgentRef) {
			if a.Progress.AbsorbFactor != cfg.Food.HunterAbsorb {
				t.Errorf("absorb = %v, want %v", a.Progress.AbsorbFactor, cfg.Food.HunterAbsorb)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAgent(cfg, 1, components.KindPlayer, pos(100, 100))
			a.Progress.Level = 5
			a.Energy.Value = 80
			a.Dash.Cooldown = 20

			if !Evolve(cfg, a, tt.form) {
				t.Fatal("Evolve returned false")
			}
			if a.Progress.Form != tt.form {
				t.Errorf("form = %v, want %v", a.Progress.Form, tt.form)
			}
			tt.check(t, a)
		})
	}
}

func TestEvolve_Rejections(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name  string
		level int
		from  components.Form
		to    components.Form
	}{
		{"below tier", 4, components.FormNormal, components.FormTank},
		{"ultimate too early", 9, components.FormTank, components.FormUltimate},
		{"tier to tier", 8, components.FormSpeeder, components.FormHunter},
		{"back to normal", 10, components.FormTank, components.FormNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAgent(cfg, 1, components.KindPlayer, pos(100, 100))
			a.Progress.Level = tt.level
			a.Progress.Form = tt.from
			if Evolve(cfg, a, tt.to) {
				t.Error("Evolve succeeded, want rejection")
			}
			if a.Progress.Form != tt.from {
				t.Errorf("form changed to %v", a.Progress.Form)
			}
		})
	}
}

func TestEvolve_Ultimate(t *testing.T) {
	cfg := config.Default()
	a := testAgent(cfg, 1, components.KindPlayer, pos(100, 100))
	a.Progress.Level = 10
	a.Progress.Form = components.FormHunter
	a.Dash.Cooldown = 90

	if !Evolve(cfg, a, components.FormUltimate) {
		t.Fatal("Evolve to ULTIMATE failed")
	}
	if a.Dash.Cooldown != 0 || !a.Status.CollisionImmune {
		t.Errorf("cooldown=%d immune=%v, want 0/true", a.Dash.Cooldown, a.Status.CollisionImmune)
	}
}

func TestUpgradeStat(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name   string
		points int
		level  int
		want   bool
	}{
		{"spends a point", 1, 1, true},
		{"no points", 0, 1, false},
		{"at cap", 3, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := components.NewProgress(100)
			p.StatPoints = tt.points
			p.Stats[components.StatSpeed] = tt.level

			got := UpgradeStat(cfg, &p, components.StatSpeed)
			if got != tt.want {
				t.Fatalf("UpgradeStat = %v, want %v", got, tt.want)
			}
			wantLevel, wantPoints := tt.level, tt.points
			if tt.want {
				wantLevel++
				wantPoints--
			}
			if p.Stats[components.StatSpeed] != wantLevel || p.StatPoints != wantPoints {
				t.Errorf("stat=%d points=%d, want %d/%d", p.Stats[components.StatSpeed], p.StatPoints, wantLevel, wantPoints)
			}
		})
	}
}

func TestMaxEnergyScalesWithStat(t *testing.T) {
	cfg := config.Default()
	p := components.NewProgress(100)
	p.Stats[components.StatEnergy] = 3
	if got := MaxEnergy(cfg, &p); got != 140 {
		t.Errorf("MaxEnergy = %v, want 140", got)
	}
}
