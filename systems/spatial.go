// Package systems provides the per-tick rules of the arena simulation.
// Functions operate on component pointers so they can be driven by the
// ECS world in package game or directly from tests.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/components"
)

// FoodItem is one collectible tracked by the FoodGrid.
type FoodItem struct {
	E     ecs.Entity
	Pos   components.Position
	Food  components.Food
	Eaten bool
}

// FoodGrid provides radius lookups over food items using a cell-based grid.
// Items keep insertion order so lookups break ties deterministically.
type FoodGrid struct {
	cellSize float64
	cols     int
	rows     int
	items    []FoodItem
	cells    [][]int // item indices per cell
}

// NewFoodGrid creates a grid covering the given playfield size.
func NewFoodGrid(width, height, cellSize float64) *FoodGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 2)
	}

	return &FoodGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all items from the grid.
func (g *FoodGrid) Clear() {
	g.items = g.items[:0]
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a food item.
func (g *FoodGrid) Insert(e ecs.Entity, pos components.Position, food components.Food) {
	g.items = append(g.items, FoodItem{E: e, Pos: pos, Food: food})
	idx := g.cellIndex(pos.X, pos.Y)
	g.cells[idx] = append(g.cells[idx], len(g.items)-1)
}

// Items returns every tracked item, eaten ones included.
func (g *FoodGrid) Items() []FoodItem {
	return g.items
}

// Remaining returns the number of items not yet eaten.
func (g *FoodGrid) Remaining() int {
	n := 0
	for i := range g.items {
		if !g.items[i].Eaten {
			n++
		}
	}
	return n
}

// FirstWithin returns the uneaten item with the lowest index that is strictly
// closer than radius. Indices follow Insert order, which is the ECS query order
// of the rebuild, not spawn order.
func (g *FoodGrid) FirstWithin(p components.Position, radius float64) (int, bool) {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol := int(p.X / g.cellSize)
	centerRow := int(p.Y / g.cellSize)

	best := -1
	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}
			for _, i := range g.cells[row*g.cols+col] {
				it := &g.items[i]
				if it.Eaten || (best >= 0 && i > best) {
					continue
				}
				if p.Dist(it.Pos) < radius {
					best = i
				}
			}
		}
	}
	return best, best >= 0
}

// Nearest returns the closest uneaten item by Euclidean distance.
func (g *FoodGrid) Nearest(p components.Position) (components.Position, bool) {
	bestDist := math.Inf(1)
	var best components.Position
	found := false
	for i := range g.items {
		it := &g.items[i]
		if it.Eaten {
			continue
		}
		if d := p.Dist(it.Pos); d < bestDist {
			bestDist = d
			best = it.Pos
			found = true
		}
	}
	return best, found
}

// Consume marks item i eaten and returns it.
func (g *FoodGrid) Consume(i int) FoodItem {
	g.items[i].Eaten = true
	return g.items[i]
}

// Occupied reports whether an uneaten item sits exactly at p.
func (g *FoodGrid) Occupied(p components.Position) bool {
	for _, i := range g.cells[g.cellIndex(p.X, p.Y)] {
		if !g.items[i].Eaten && g.items[i].Pos == p {
			return true
		}
	}
	return false
}

// cellIndex returns the flat index for a playfield position.
func (g *FoodGrid) cellIndex(x, y float64) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
