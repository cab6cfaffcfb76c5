// Package camera maps the fixed game world onto the window.
package camera

// Camera letterboxes the world into the viewport at a uniform scale.
// World y points up from the bottom edge; screen y points down.
type Camera struct {
	// World dimensions
	WorldW, WorldH float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Scale is screen pixels per world unit.
	Scale float32

	// Offset of the world's bottom-left corner's screen x and the world's
	// top edge's screen y.
	OffsetX, OffsetY float32
}

// New creates a camera showing the whole world.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{WorldW: worldW, WorldH: worldH}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize updates viewport dimensions and recomputes the letterbox.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH

	c.Scale = viewportW / c.WorldW
	if s := viewportH / c.WorldH; s < c.Scale {
		c.Scale = s
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	c.OffsetX = (viewportW - c.WorldW*c.Scale) / 2
	c.OffsetY = (viewportH - c.WorldH*c.Scale) / 2
}

// WorldToScreen converts a world point to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.OffsetX + wx*c.Scale
	sy = c.OffsetY + (c.WorldH-wy)*c.Scale
	return sx, sy
}

// ScreenToWorld converts screen coordinates to a world point.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = (sx - c.OffsetX) / c.Scale
	wy = c.WorldH - (sy-c.OffsetY)/c.Scale
	return wx, wy
}

// RectToScreen converts a world box anchored at its bottom-left corner to a
// screen rectangle anchored at its top-left corner.
func (c *Camera) RectToScreen(x, y, w, h float32) (sx, sy, sw, sh float32) {
	sx, sy = c.WorldToScreen(x, y+h)
	return sx, sy, w * c.Scale, h * c.Scale
}

// IsVisible reports whether any part of the world box lies inside the world
// bounds shown on screen.
func (c *Camera) IsVisible(x, y, w, h float32) bool {
	return x+w > 0 && x < c.WorldW && y+h > 0 && y < c.WorldH
}
