// Package ebitenrender draws a simulation onto an ebiten image.
package ebitenrender

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/ledge/sim"
)

var (
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	GridColor       = color.RGBA{60, 60, 60, 255}
)

// Canvas implements sim.Canvas on top of an ebiten image. World coordinates
// are shifted by the camera so the camera's top-left corner lands on the
// image origin.
type Canvas struct {
	Target    *ebiten.Image
	Camera    sim.Camera
	AntiAlias bool
}

func NewCanvas(target *ebiten.Image, camera sim.Camera) *Canvas {
	return &Canvas{Target: target, Camera: camera, AntiAlias: true}
}

func (c *Canvas) FillCircle(center sim.Vec2, radius float32, clr color.Color) {
	p := c.Camera.ToScreen(center)
	vector.DrawFilledCircle(c.Target, p.X, p.Y, radius, clr, c.AntiAlias)
}

func (c *Canvas) FillRect(r sim.Rect, clr color.Color) {
	p := c.Camera.ToScreen(sim.Vec2{X: r.X, Y: r.Y})
	vector.DrawFilledRect(c.Target, p.X, p.Y, r.W, r.H, clr, c.AntiAlias)
}

func (c *Canvas) StrokeRect(r sim.Rect, width float32, clr color.Color) {
	p := c.Camera.ToScreen(sim.Vec2{X: r.X, Y: r.Y})
	vector.StrokeRect(c.Target, p.X, p.Y, r.W, r.H, width, clr, c.AntiAlias)
}

// DrawGrid strokes the cell boundaries of grid that fall inside the camera.
func (c *Canvas) DrawGrid(grid *sim.Grid, clr color.Color) {
	for _, line := range GridLines(grid, c.Camera.Rect()) {
		from := c.Camera.ToScreen(line.From)
		to := c.Camera.ToScreen(line.To)
		vector.StrokeLine(c.Target, from.X, from.Y, to.X, to.Y, 1, clr, false)
	}
}

// Frame clears the target, draws the world as seen by the canvas camera and
// optionally the grid overlay. It returns the number of entities drawn.
func (c *Canvas) Frame(world *sim.World, lag float32, showGrid bool) int {
	c.Target.Fill(BackgroundColor)
	if showGrid {
		c.DrawGrid(world.Grid(), GridColor)
	}
	return world.Draw(c, c.Camera.Rect(), lag)
}
