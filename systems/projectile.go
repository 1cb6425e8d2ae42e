package systems

import (
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// AdvanceProjectile moves a projectile one tick. Returns false once it has
// left the playfield.
func AdvanceProjectile(cfg *config.Config, pos *components.Position, p *components.Projectile) bool {
	pos.X += p.DX
	pos.Y += p.DY
	w, h := float64(cfg.Grid.Width), float64(cfg.Grid.Height)
	return pos.X >= 0 && pos.X <= w && pos.Y >= 0 && pos.Y <= h
}
