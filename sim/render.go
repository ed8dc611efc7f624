package sim

import "image/color"

// Canvas is the drawing surface supplied by the render collaborator.
// Coordinates are in world units; the canvas maps them to the screen.
type Canvas interface {
	FillCircle(center Vec2, radius float32, clr color.Color)
	FillRect(r Rect, clr color.Color)
	StrokeRect(r Rect, width float32, clr color.Color)
}

// RenderBehavior draws an entity at its extrapolated position.
type RenderBehavior interface {
	Draw(canvas Canvas, dest Vec2, width, height float32)
}

// PointRender draws a filled circle at the entity's center.
type PointRender struct {
	Radius float32
	Color  color.Color
}

func (p PointRender) Draw(canvas Canvas, dest Vec2, _, _ float32) {
	canvas.FillCircle(dest, p.Radius, p.Color)
}

// RectRender fills the entity's bounding box and optionally outlines it.
type RectRender struct {
	Color   color.Color
	Outline color.Color
}

func (r RectRender) Draw(canvas Canvas, dest Vec2, width, height float32) {
	bounds := CenteredRect(dest, width, height)
	canvas.FillRect(bounds, r.Color)
	if r.Outline != nil {
		canvas.StrokeRect(bounds, 2, r.Outline)
	}
}
