// Package components defines ECS components for the arena simulation.
package components

// Effect is a timed status effect granted by a special item.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectShield
	EffectSpeedBoost
	EffectGhost
	EffectCount
)

// SpecialEffects lists the effects a special item can carry.
var SpecialEffects = [3]Effect{EffectShield, EffectSpeedBoost, EffectGhost}

// Dash holds the dash ability state.
type Dash struct {
	Active     bool
	Duration   int // ticks left in the current dash
	Cooldown   int // ticks until the next dash may start
	Invincible int // ticks of dash invincibility left
}

// TankImmunity is the TANK form's one-shot collision immunity.
type TankImmunity struct {
	Active   bool
	Used     bool
	Cooldown int
}

// Charge is the boss-fight special attack. Every agent carries it; zero means idle.
type Charge struct {
	Active bool
	Timer  int
}

// Status holds timed effects and the derived collision immunity.
type Status struct {
	Effects         [EffectCount]int // remaining ticks, indexed by Effect
	SpawnProtection int
	CollisionImmune bool
	Tank            TankImmunity
	Charge          Charge
}

// Has reports whether effect e has time remaining.
func (s *Status) Has(e Effect) bool {
	return s.Effects[e] > 0
}

// Food is a collectible. A non-None Special makes it a special item.
type Food struct {
	Bonus   bool
	Special Effect
}

// IsSpecial reports whether the food is a timed-effect item.
func (f Food) IsSpecial() bool {
	return f.Special != EffectNone
}

// Projectile is a boss shot moving at a fixed velocity.
type Projectile struct {
	DX, DY   float64
	Circular bool
}
