package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// Shot is a projectile the boss fired this tick.
type Shot struct {
	Pos        components.Position
	Projectile components.Projectile
}

// BossReport summarises a boss state update.
type BossReport struct {
	Shots         []Shot
	NewPhase      int  // phase entered this tick, 0 if unchanged
	Enhanced      bool // circular bursts were enhanced this tick
	GlobalWarning bool // a global attack warning started this tick
	GlobalActive  bool // the global attack entered its active window this tick
}

// UpdateBoss advances survival time, the phase machine, cooldowns,
// projectile fire and the global attack. player is nil when no live player exists.
func UpdateBoss(cfg *config.Config, boss AgentRef, player *AgentRef, rng *rand.Rand) BossReport {
	var rep BossReport
	b := boss.Boss
	if b == nil || !boss.Agent.Alive {
		return rep
	}
	bc := &cfg.Boss

	b.SurvivalTime++

	playerLen := 0
	if player != nil {
		playerLen = player.Body.Len()
	}
	ratio := b.HealthRatio()
	switch {
	case ratio <= bc.Phase3HealthRatio && b.Phase < 3:
		enterPhase(cfg, boss, 3, playerLen)
		SetBossMessage(cfg, boss, "The boss was forced into its final form!")
		rep.NewPhase = 3
	case ratio <= bc.Phase2HealthRatio && b.Phase < 2:
		enterPhase(cfg, boss, 2, playerLen)
		SetBossMessage(cfg, boss, "The boss was forced into phase 2!")
		rep.NewPhase = 2
	case b.SurvivalTime >= bc.Phase3Time && b.Phase < 3:
		enterPhase(cfg, boss, 3, playerLen)
		rep.NewPhase = 3
	case b.SurvivalTime >= bc.Phase2Time && b.Phase < 2:
		enterPhase(cfg, boss, 2, playerLen)
		rep.NewPhase = 2
	}

	if b.Phase >= 3 && !b.Enhanced && b.EnhanceAt > 0 && b.SurvivalTime >= b.EnhanceAt {
		b.Enhanced = true
		rep.Enhanced = true
		SetBossMessage(cfg, boss, "The boss's barrage grows stronger!")
	}

	if d := boss.Dash; d.Active {
		d.Duration--
		if d.Duration <= 0 {
			d.Active = false
			d.Duration = 0
		}
	}
	if boss.Dash.Cooldown > 0 {
		boss.Dash.Cooldown--
	}

	if b.ProjectileCooldown > 0 {
		b.ProjectileCooldown--
	} else {
		rep.Shots = fire(cfg, boss, player)
	}

	rep.GlobalWarning, rep.GlobalActive = updateGlobalAttack(cfg, boss, rng)
	return rep
}

// enterPhase applies a phase transition: pattern, size, dash reset and body resize.
func enterPhase(cfg *config.Config, boss AgentRef, phase, playerLen int) {
	b := boss.Boss
	bc := &cfg.Boss
	b.Phase = phase
	b.Pattern = components.Pattern(phase - 1)
	b.SizeMultiplier = bc.SizeMultipliers[phase-1]
	*boss.Dash = components.Dash{}

	factor := bc.Phase2LengthFactor
	if phase == 3 {
		factor = bc.Phase3LengthFactor
		b.BurstCount = 0
		b.EnhanceAt = b.SurvivalTime + bc.EnhanceDelay
		SetBossMessage(cfg, boss, "The boss reached its final form!")
	} else {
		SetBossMessage(cfg, boss, "The boss evolved into phase 2!")
	}
	if playerLen > 0 {
		boss.Body.Resize(max(bc.MinLength, playerLen*factor))
	}
}

// fire spawns the phase's projectile pattern and resets the cooldown.
func fire(cfg *config.Config, boss AgentRef, player *AgentRef) []Shot {
	b := boss.Boss
	bc := &cfg.Boss
	alive := player != nil && player.Agent.Alive

	var shots []Shot
	switch b.Phase {
	case 1:
		if alive {
			shots = append(shots, homing(cfg, boss, player.Head()))
		}
		b.ProjectileCooldown = bc.Phase1Cooldown
	case 2:
		if alive {
			for range bc.Phase2Shots {
				shots = append(shots, homing(cfg, boss, player.Head()))
			}
		}
		b.ProjectileCooldown = bc.Phase2Cooldown
	default:
		if alive {
			shots = circular(cfg, boss)
		}
		if b.BurstCount >= bc.MaxBursts {
			b.ProjectileCooldown = bc.BurstCooldown
			b.BurstCount = 0
		} else {
			b.ProjectileCooldown = bc.BurstInterval
			b.BurstCount++
		}
	}
	return shots
}

func homing(cfg *config.Config, boss AgentRef, target components.Position) Shot {
	from := boss.Head()
	speed := cfg.Boss.HomingBaseSpeed + float64(boss.Boss.Phase)
	dx, dy := target.X-from.X, target.Y-from.Y
	var p components.Projectile
	if l := math.Hypot(dx, dy); l > 0 {
		p.DX = dx / l * speed
		p.DY = dy / l * speed
	}
	return Shot{Pos: from, Projectile: p}
}

// circular fans a ring of shots, rotated by the burst index.
func circular(cfg *config.Config, boss AgentRef) []Shot {
	b := boss.Boss
	bc := &cfg.Boss
	n := bc.CircularShots
	if b.Enhanced {
		n = bc.EnhancedShots
	}
	from := boss.Head()
	rot := 2 * math.Pi * float64(b.BurstCount) / float64(max(1, bc.MaxBursts))

	shots := make([]Shot, 0, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + rot
		shots = append(shots, Shot{
			Pos: from,
			Projectile: components.Projectile{
				DX:       math.Cos(angle) * bc.CircularSpeed,
				DY:       math.Sin(angle) * bc.CircularSpeed,
				Circular: true,
			},
		})
	}
	return shots
}

// updateGlobalAttack runs the telegraphed arena attack. Disabled when the
// configured interval is zero.
func updateGlobalAttack(cfg *config.Config, boss AgentRef, rng *rand.Rand) (warned, activated bool) {
	b := boss.Boss
	g := &b.Global
	bc := &cfg.Boss

	if g.Active > 0 {
		g.Active--
		if g.Active == 0 {
			g.SafeZone = components.Rect{}
		}
	}
	if g.Warning > 0 {
		g.Warning--
		if g.Warning == 0 {
			g.Active = bc.GlobalDuration
			activated = true
			SetBossMessage(cfg, boss, "Global attack!")
		}
	}

	if bc.GlobalAttack > 0 && b.Phase >= 3 && !g.Pending() && b.SurvivalTime%bc.GlobalAttack == 0 {
		w := cfg.Grid.Width / bc.SafeZoneDivisor
		h := cfg.Grid.Height / bc.SafeZoneDivisor
		g.SafeZone = components.Rect{
			X: float64(rng.Intn(cfg.Grid.Width - w + 1)),
			Y: float64(rng.Intn(cfg.Grid.Height - h + 1)),
			W: float64(w),
			H: float64(h),
		}
		g.Warning = max(1, bc.GlobalWarning)
		warned = true
		SetBossMessage(cfg, boss, "Global attack incoming! Reach the safe zone!")
	}
	return warned, activated
}

// SetBossMessage shows text on the boss for the boss message duration.
func SetBossMessage(cfg *config.Config, boss AgentRef, text string) {
	boss.Message.Set(text, cfg.Boss.MessageDuration)
}

// DecideBossDirection runs the phase's pursuit policy.
func DecideBossDirection(cfg *config.Config, boss AgentRef, player *Target, foods *FoodGrid, rng *rand.Rand) {
	b := boss.Boss
	if b == nil || !boss.Agent.Alive || player == nil {
		return
	}
	head := boss.Head()
	dist := head.Dist(player.Head)

	switch b.Phase {
	case 1:
		DecideDirection(cfg, boss, player, foods, rng)
	case 2:
		if dist < cfg.Boss.Phase2ChaseRange {
			steerPrimaryAxis(boss.Agent, head, player.Head)
		}
	default:
		steerPrimaryAxis(boss.Agent, head, player.Head)
		d := boss.Dash
		if dist < cfg.Boss.Phase3DashRange && !d.Active && d.Cooldown <= 0 {
			d.Active = true
			d.Duration = cfg.Boss.Phase3DashDuration
			d.Cooldown = cfg.Boss.Phase3DashCooldown
		}
	}
}

// MoveBoss advances the boss. Eating never drains or rewards it; only
// phase 1 grows from food.
func MoveBoss(cfg *config.Config, boss AgentRef, foods *FoodGrid) (FoodItem, bool) {
	b := boss.Boss
	if b.MoveDelay > 0 {
		b.MoveDelay--
		return FoodItem{}, false
	}

	step := cfg.Derived.Cell
	if boss.Dash.Active {
		step *= cfg.Boss.DashSpeedFactor
	}
	if b.Phase == 2 {
		step *= cfg.Boss.Phase2SpeedFactor
	}
	dx, dy := boss.Agent.Direction.Vector()
	head := boss.Head()
	next := ClampToGrid(cfg, components.Position{X: head.X + dx*step, Y: head.Y + dy*step})

	body := boss.Body
	body.Segments = append([]components.Position{next}, body.Segments...)

	var eaten FoodItem
	ate := false
	if foods != nil {
		if i, ok := foods.FirstWithin(next, cfg.Derived.Cell*b.SizeMultiplier); ok {
			eaten = foods.Consume(i)
			ate = true
		}
	}
	if ate {
		if b.Phase == 1 {
			growth := 1
			if eaten.Food.Bonus {
				growth = cfg.Food.BonusGrowth
			}
			tail := body.Segments[len(body.Segments)-1]
			for range growth {
				body.Segments = append(body.Segments, tail)
			}
		}
	} else {
		body.Segments = body.Segments[:len(body.Segments)-1]
	}

	boss.Energy.Value = MaxEnergy(cfg, boss.Progress)
	if b.Phase == 2 {
		b.MoveDelay = cfg.Boss.Phase2MoveDelay
	}
	return eaten, ate
}

// BossStatus is a short HUD line for the boss.
func BossStatus(b *components.Boss, tickRate int) string {
	return fmt.Sprintf("Phase %d %s  HP %.0f/%.0f  %ds", b.Phase, b.Pattern, b.Health, b.MaxHealth, b.SurvivalTime/max(1, tickRate))
}
