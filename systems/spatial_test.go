package systems

import (
	"testing"

	"github.com/pthm-cable/serpent/components"
)

func TestFoodGrid_FirstWithin(t *testing.T) {
	g := NewFoodGrid(1024, 768, 10)
	addFood(g, pos(108, 100), components.Food{})
	addFood(g, pos(102, 100), components.Food{Bonus: true})
	addFood(g, pos(400, 400), components.Food{})

	i, ok := g.FirstWithin(pos(100, 100), 10)
	if !ok || i != 0 {
		t.Fatalf("FirstWithin = %d, %v; want the first inserted item", i, ok)
	}

	g.Consume(i)
	i, ok = g.FirstWithin(pos(100, 100), 10)
	if !ok || i != 1 {
		t.Fatalf("after consume FirstWithin = %d, %v; want 1", i, ok)
	}

	if _, ok := g.FirstWithin(pos(100, 110), 10); ok {
		t.Error("radius should be strict")
	}
	if g.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", g.Remaining())
	}
}

func TestFoodGrid_Nearest(t *testing.T) {
	g := NewFoodGrid(1024, 768, 10)
	addFood(g, pos(120, 100), components.Food{})
	addFood(g, pos(300, 300), components.Food{})

	g.Consume(0)
	got, ok := g.Nearest(pos(100, 100))
	if !ok || got != pos(300, 300) {
		t.Errorf("Nearest = %v, %v; want eaten items skipped", got, ok)
	}

	g.Clear()
	if _, ok := g.Nearest(pos(100, 100)); ok {
		t.Error("Nearest on an empty grid should report false")
	}
}

func TestFoodGrid_Occupied(t *testing.T) {
	g := NewFoodGrid(1024, 768, 10)
	addFood(g, pos(50, 60), components.Food{})

	if !g.Occupied(pos(50, 60)) {
		t.Error("expected cell to be occupied")
	}
	if g.Occupied(pos(60, 60)) {
		t.Error("neighbouring cell should be free")
	}
	g.Consume(0)
	if g.Occupied(pos(50, 60)) {
		t.Error("eaten food should not occupy its cell")
	}
}
