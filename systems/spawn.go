package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

var namePrefixes = []string{"Neo", "Axe", "Lyn", "Koz", "Dex", "Zex", "Vox", "Tyr", "Lux", "Kai"}

// GenerateName returns a short AI name such as "Neo42".
func GenerateName(rng *rand.Rand) string {
	return fmt.Sprintf("%s%d", namePrefixes[rng.Intn(len(namePrefixes))], 10+rng.Intn(90))
}

// FindSafeSpawn picks a grid-snapped spawn point away from the walls and
// from every segment in bodies. When no candidate is far enough, the
// candidate with the largest clearance wins; if every candidate touched a
// segment, a point on a ring around the centre is used.
func FindSafeSpawn(cfg *config.Config, rng *rand.Rand, bodies [][]components.Position) components.Position {
	pc := &cfg.Population
	cell := cfg.Grid.CellSize
	pad := pc.EdgePadding

	var best components.Position
	bestClearance := 0.0
	found := false

	for range pc.SpawnAttempts {
		x := randBetween(rng, pad, cfg.Grid.Width-pad)
		y := randBetween(rng, pad, cfg.Grid.Height-pad)
		p := components.Position{X: float64(x - x%cell), Y: float64(y - y%cell)}

		clearance := math.Inf(1)
		for _, body := range bodies {
			for _, seg := range body {
				clearance = min(clearance, p.Dist(seg))
			}
		}
		if clearance > bestClearance {
			bestClearance = clearance
			best = p
			found = true
		}
		if clearance >= pc.SafeDistance {
			return p
		}
	}
	if found {
		return best
	}

	angle := rng.Float64() * 2 * math.Pi
	r := pc.FallbackMinRadius + rng.Float64()*(pc.FallbackMaxRadius-pc.FallbackMinRadius)
	x := int(float64(cfg.Grid.Width/2) + math.Cos(angle)*r)
	y := int(float64(cfg.Grid.Height/2) + math.Sin(angle)*r)
	return ClampToGrid(cfg, components.Position{X: float64(x - x%cell), Y: float64(y - y%cell)})
}

// RandomFreeCell picks a random grid cell for which occupied returns false.
// Gives up after the configured number of attempts.
func RandomFreeCell(cfg *config.Config, rng *rand.Rand, occupied func(components.Position) bool) (components.Position, bool) {
	cols := (cfg.Grid.Width - cfg.Grid.CellSize) / cfg.Grid.CellSize
	rows := (cfg.Grid.Height - cfg.Grid.CellSize) / cfg.Grid.CellSize
	for range cfg.Items.SpawnAttempts {
		p := components.Position{
			X: float64(rng.Intn(cols+1) * cfg.Grid.CellSize),
			Y: float64(rng.Intn(rows+1) * cfg.Grid.CellSize),
		}
		if !occupied(p) {
			return p, true
		}
	}
	return components.Position{}, false
}

// randBetween returns a uniform int in [lo, hi], or lo when the range is empty.
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
