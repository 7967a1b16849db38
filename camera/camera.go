// Package camera maps the fixed-size simulation surface into a resizable window.
package camera

// Camera fits the simulation surface into the window, preserving aspect ratio
// (letterbox), with optional zoom and pan for a closer look at the flame.
type Camera struct {
	// Position is the view center in world coordinates
	X, Y float32

	// Zoom on top of the fit scale (1.0 = whole surface visible)
	Zoom float32

	// Viewport dimensions (window size)
	ViewportW, ViewportH float32

	// World dimensions (simulation surface)
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	fit float32
}

// New creates a camera showing the whole surface.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   1.0,
		MaxZoom:   4.0,
	}
	c.fit = fitScale(viewportW, viewportH, worldW, worldH)
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
// Points in the letterbox bars map outside [0, World).
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/s
	return wx, wy
}

// Contains reports whether a world point lies on the simulation surface.
func (c *Camera) Contains(wx, wy float32) bool {
	return wx >= 0 && wy >= 0 && wx < c.WorldW && wy < c.WorldH
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// SurfaceRect returns the on-screen rectangle covered by the surface.
func (c *Camera) SurfaceRect() (x, y, w, h float32) {
	x, y = c.WorldToScreen(0, 0)
	s := c.Scale()
	return x, y, c.WorldW * s, c.WorldH * s
}

// Resize updates viewport dimensions and the fit scale.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit = fitScale(viewportW, viewportH, c.WorldW, c.WorldH)
	c.clampCenter()
}

// Pan moves the view by the given delta in screen pixels. The view center
// stays on the surface.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the whole-surface view.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// clampCenter keeps the center where at least the fitted view stays on the surface.
func (c *Camera) clampCenter() {
	if c.Zoom <= 1 {
		c.X, c.Y = c.WorldW/2, c.WorldH/2
		return
	}
	c.X = clamp(c.X, 0, c.WorldW)
	c.Y = clamp(c.Y, 0, c.WorldH)
}

func fitScale(viewportW, viewportH, worldW, worldH float32) float32 {
	if worldW <= 0 || worldH <= 0 {
		return 1
	}
	return min(viewportW/worldW, viewportH/worldH)
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
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
