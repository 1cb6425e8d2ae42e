// Package camera provides a 2D camera that fits the bounded arena into the
// window and optionally zooms in on a point.
package camera

// Camera controls the viewport into the arena.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom relative to the fitted scale (1.0 = whole arena visible)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions
	WorldW, WorldH float32

	MaxZoom float32

	// fit is the scale at which the whole world fits the viewport
	fit float32
}

// New creates a camera showing the whole world.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		WorldW:  worldW,
		WorldH:  worldH,
		MaxZoom: 4.0,
	}
	c.Resize(viewportW, viewportH)
	c.Reset()
	return c
}

// Scale returns screen pixels per world unit.
func (c *Camera) Scale() float32 {
	return c.fit * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 + (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/s
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX && wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions and recomputes the fitted scale.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit = min(viewportW/c.WorldW, viewportH/c.WorldH)
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.clampCenter()
}

// Follow centers the camera on a world point, staying inside the world.
func (c *Camera) Follow(wx, wy float32) {
	c.X, c.Y = wx, wy
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to [1, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, 1, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampCenter keeps the view inside the world where the zoom allows it.
// An axis narrower than the viewport stays centered (letterboxed).
func (c *Camera) clampCenter() {
	if c.fit == 0 || c.Zoom == 0 {
		return
	}
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	c.X = clampAxis(c.X, halfW, c.WorldW)
	c.Y = clampAxis(c.Y, halfH, c.WorldH)
}

func clampAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
