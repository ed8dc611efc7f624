package sim

// Camera is a viewport centered on (X, Y).
type Camera struct {
	X, Y          float32
	Width, Height float32
}

func NewCamera(x, y, width, height float32) Camera {
	return Camera{X: x, Y: y, Width: width, Height: height}
}

// Rect returns the world-space rectangle the camera sees.
func (c Camera) Rect() Rect {
	return Rect{X: c.X - c.Width/2, Y: c.Y - c.Height/2, W: c.Width, H: c.Height}
}

// Follow recenters the camera on target.
func (c *Camera) Follow(target Vec2) {
	c.X = target.X
	c.Y = target.Y
}

// ToScreen converts a world position into viewport-relative coordinates.
func (c Camera) ToScreen(p Vec2) Vec2 {
	r := c.Rect()
	return Vec2{X: p.X - r.X, Y: p.Y - r.Y}
}
