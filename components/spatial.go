package components

import "math"

// Position is a pixel coordinate on the playfield.
type Position struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two positions.
func (p Position) Dist(o Position) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Direction is one of the four cardinal movement directions.
type Direction uint8

const (
	DirRight Direction = iota // zero value: agents start heading right
	DirUp
	DirDown
	DirLeft
)

// Directions lists every direction in the order used for random picks.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Vector returns the unit step for the direction in screen coordinates (Y grows down).
func (d Direction) Vector() (dx, dy float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}
