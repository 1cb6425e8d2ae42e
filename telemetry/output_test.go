package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// nil manager is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteEvents([]Event{{}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}
	if om.RunID() == "" {
		t.Error("RunID is empty")
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig error: %v", err)
	}
	for _, end := range []int32{150, 300} {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: end, AICount: 3}); err != nil {
			t.Fatalf("WriteTelemetry error: %v", err)
		}
	}
	events := []Event{
		NewSpawnEvent(1, 2, components.KindAI, "Vox17"),
		NewDeathEvent(9, 2, components.KindAI, 1, CauseHeadOn),
	}
	if err := om.WriteEvents(events); err != nil {
		t.Fatalf("WriteEvents error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	telemetry := readLines(t, filepath.Join(dir, "telemetry.csv"))
	if len(telemetry) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2 rows", len(telemetry))
	}
	if !strings.HasPrefix(telemetry[0], "run_id,window_end,") {
		t.Errorf("header = %q", telemetry[0])
	}
	if !strings.HasPrefix(telemetry[2], om.RunID()+",300,") {
		t.Errorf("second row = %q", telemetry[2])
	}

	evLines := readLines(t, filepath.Join(dir, "events.csv"))
	if len(evLines) != 3 {
		t.Fatalf("events.csv has %d lines, want 3", len(evLines))
	}
	if !strings.Contains(evLines[2], ",death,") || !strings.Contains(evLines[2], CauseHeadOn) {
		t.Errorf("death row = %q", evLines[2])
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
