package ebitenrender

import (
	"math"

	"github.com/plus3/ledge/sim"
)

// Line is a segment in world coordinates.
type Line struct {
	From, To sim.Vec2
}

// GridLines returns the cell boundaries of grid clipped to viewport:
// vertical lines first, left to right, then horizontal lines top to bottom.
func GridLines(grid *sim.Grid, viewport sim.Rect) []Line {
	cellW, cellH := grid.CellSize()
	worldW := float32(grid.Width()) * cellW
	worldH := float32(grid.Height()) * cellH

	minX, maxX := max(viewport.X, 0), min(viewport.Right(), worldW)
	minY, maxY := max(viewport.Y, 0), min(viewport.Bottom(), worldH)
	if minX > maxX || minY > maxY {
		return nil
	}

	var lines []Line
	for i := firstLine(minX, cellW); float32(i)*cellW <= maxX; i++ {
		x := float32(i) * cellW
		lines = append(lines, Line{From: sim.Vec2{X: x, Y: minY}, To: sim.Vec2{X: x, Y: maxY}})
	}
	for j := firstLine(minY, cellH); float32(j)*cellH <= maxY; j++ {
		y := float32(j) * cellH
		lines = append(lines, Line{From: sim.Vec2{X: minX, Y: y}, To: sim.Vec2{X: maxX, Y: y}})
	}
	return lines
}

func firstLine(v, cell float32) int {
	return int(math.Ceil(float64(v / cell)))
}
