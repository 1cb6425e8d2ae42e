package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Grid.CellSize != 10 {
		t.Errorf("Grid.CellSize = %d, want 10", cfg.Grid.CellSize)
	}
	if cfg.Derived.MaxX != 1014 || cfg.Derived.MaxY != 758 {
		t.Errorf("Derived bounds = (%v, %v), want (1014, 758)", cfg.Derived.MaxX, cfg.Derived.MaxY)
	}
	if cfg.Boss.GlobalAttack != 0 {
		t.Errorf("Boss.GlobalAttack = %d, want 0 (disabled by default)", cfg.Boss.GlobalAttack)
	}
	if cfg.Leaderboard.Size != 3 {
		t.Errorf("Leaderboard.Size = %d, want 3", cfg.Leaderboard.Size)
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("population:\n  max: 9\nboss:\n  global_attack_interval: 900\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Population.Max != 9 {
		t.Errorf("Population.Max = %d, want 9", cfg.Population.Max)
	}
	if cfg.Population.Min != 3 {
		t.Errorf("Population.Min = %d, want default 3", cfg.Population.Min)
	}
	if cfg.Boss.GlobalAttack != 900 {
		t.Errorf("Boss.GlobalAttack = %d, want 900", cfg.Boss.GlobalAttack)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero cell size", "grid:\n  cell_size: 0\n"},
		{"cell larger than grid", "grid:\n  width: 8\n"},
		{"min above max", "population:\n  min: 8\n  max: 4\n"},
		{"flat exp curve", "evolution:\n  exp_multiplier: 1.0\n"},
		{"missing phase sizes", "boss:\n  size_multipliers: [2.0]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file succeeded, want error")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Boss.MaxHealth != cfg.Boss.MaxHealth {
		t.Errorf("Boss.MaxHealth = %v, want %v", loaded.Boss.MaxHealth, cfg.Boss.MaxHealth)
	}
	if loaded.Derived.Cell != cfg.Derived.Cell {
		t.Errorf("Derived.Cell = %v, want %v", loaded.Derived.Cell, cfg.Derived.Cell)
	}
}
