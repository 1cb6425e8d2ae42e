package components

// Pattern names the boss behaviour tier shown to players.
type Pattern uint8

const (
	PatternNormal Pattern = iota
	PatternEvolved1
	PatternEvolved2
)

// GlobalAttack is the boss's telegraphed arena-wide attack.
type GlobalAttack struct {
	Warning  int // ticks of warning left
	Active   int // ticks of active damage left
	SafeZone Rect
}

// Pending reports whether the attack is warning or active.
func (g *GlobalAttack) Pending() bool {
	return g.Warning > 0 || g.Active > 0
}

// Boss is the payload that turns an agent into the boss.
type Boss struct {
	Health             float64
	MaxHealth          float64
	Phase              int
	Pattern            Pattern
	SurvivalTime       int
	ProjectileCooldown int
	BurstCount         int
	Enhanced           bool
	EnhanceAt          int // survival time at which bursts enhance; 0 when unscheduled
	MoveDelay          int
	SizeMultiplier     float64
	Global             GlobalAttack
}

// HealthRatio returns health as a fraction of max health.
func (b *Boss) HealthRatio() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return b.Health / b.MaxHealth
}
