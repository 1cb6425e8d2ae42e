package components

// Body holds an agent's segments, head first.
type Body struct {
	Segments []Position
}

// NewBody lays out length segments trailing to the left of the head.
func NewBody(head Position, length int, cell float64) Body {
	segs := make([]Position, length)
	for i := range segs {
		segs[i] = Position{X: head.X - float64(i)*cell, Y: head.Y}
	}
	return Body{Segments: segs}
}

// Head returns the first segment. The body must not be empty.
func (b *Body) Head() Position {
	return b.Segments[0]
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.Segments)
}

// Resize grows the body by duplicating the tail, or truncates it, to exactly n segments.
func (b *Body) Resize(n int) {
	if n < 1 {
		n = 1
	}
	for len(b.Segments) < n {
		b.Segments = append(b.Segments, b.Segments[len(b.Segments)-1])
	}
	b.Segments = b.Segments[:n]
}
