package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// itemSchedule returns the item intervals of the current mode.
func (g *Game) itemSchedule() config.ItemScheduleConfig {
	if g.mode == ModeBoss {
		return g.cfg.Items.Boss
	}
	return g.cfg.Items.Evolution
}

// rebuildFoodGrid indexes every food entity for this tick.
func (g *Game) rebuildFoodGrid() {
	g.foods.Clear()
	query := g.foodFilter.Query()
	for query.Next() {
		pos, food := query.Get()
		g.foods.Insert(query.Entity(), *pos, *food)
	}
}

// removeEatenFood deletes the entities of items consumed this tick.
func (g *Game) removeEatenFood() {
	for _, it := range g.foods.Items() {
		if it.Eaten && g.world.Alive(it.E) {
			g.world.RemoveEntity(it.E)
		}
	}
}

// foodCounts returns the number of food entities by category.
func (g *Game) foodCounts() (total, bonus, special int) {
	query := g.foodFilter.Query()
	for query.Next() {
		_, food := query.Get()
		total++
		switch {
		case food.IsSpecial():
			special++
		case food.Bonus:
			bonus++
		}
	}
	return total, bonus, special
}

// occupied reports whether a cell holds food or an agent segment.
func (g *Game) occupied(bodies [][]components.Position) func(components.Position) bool {
	return func(p components.Position) bool {
		query := g.foodFilter.Query()
		for query.Next() {
			pos, _ := query.Get()
			if *pos == p {
				query.Close()
				return true
			}
		}
		for _, body := range bodies {
			for _, seg := range body {
				if seg == p {
					return true
				}
			}
		}
		return false
	}
}

// spawnFood places one food item on a free cell. Returns false when no free
// cell was found within the attempt budget.
func (g *Game) spawnFood(food components.Food) bool {
	pos, ok := systems.RandomFreeCell(g.cfg, g.rng, g.occupied(g.liveBodies()))
	if !ok {
		return false
	}
	g.foodMapper.NewEntity(&pos, &food)
	return true
}

// refillFood tops the arena up to the food target with plain food.
func (g *Game) refillFood() {
	total, _, _ := g.foodCounts()
	for ; total < g.cfg.Items.FoodTarget; total++ {
		if !g.spawnFood(components.Food{}) {
			return
		}
	}
}

// updateItems runs the bonus and special item timers.
func (g *Game) updateItems() {
	sched := g.itemSchedule()
	_, bonus, special := g.foodCounts()

	g.bonusTimer++
	if g.bonusTimer >= sched.BonusInterval {
		if bonus < g.cfg.Items.MaxBonus {
			g.spawnFood(components.Food{Bonus: true})
		}
		g.bonusTimer = 0
	}

	g.specialTimer++
	if g.specialTimer >= sched.SpecialInterval {
		if special < g.cfg.Items.MaxSpecial {
			effect := components.SpecialEffects[g.rng.Intn(len(components.SpecialEffects))]
			g.spawnFood(components.Food{Special: effect})
		}
		g.specialTimer = 0
	}
}

// foodDetail names an eaten item for the event log.
func foodDetail(f components.Food) string {
	switch {
	case f.IsSpecial():
		return f.Special.String()
	case f.Bonus:
		return telemetry.FoodBonus
	default:
		return telemetry.FoodPlain
	}
}

// spawnShots creates projectile entities for the boss's shots.
func (g *Game) spawnShots(shots []systems.Shot) {
	for i := range shots {
		g.projMapper.NewEntity(&shots[i].Pos, &shots[i].Projectile)
	}
}

// advanceProjectiles moves every projectile and removes those off the grid.
func (g *Game) advanceProjectiles() {
	var gone []ecs.Entity
	query := g.projFilter.Query()
	for query.Next() {
		pos, p := query.Get()
		if !systems.AdvanceProjectile(g.cfg, pos, p) {
			gone = append(gone, query.Entity())
		}
	}
	for _, e := range gone {
		g.world.RemoveEntity(e)
	}
}

// projectiles returns the live projectile entities and their positions.
func (g *Game) projectiles() ([]ecs.Entity, []components.Position) {
	var es []ecs.Entity
	var ps []components.Position
	query := g.projFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		es = append(es, query.Entity())
		ps = append(ps, *pos)
	}
	return es, ps
}

// clearProjectiles removes every projectile, used when the fight ends.
func (g *Game) clearProjectiles() {
	es, _ := g.projectiles()
	for _, e := range es {
		g.world.RemoveEntity(e)
	}
}
