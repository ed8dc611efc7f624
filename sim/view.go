package sim

import (
	"math"

	"github.com/kamstrup/intmap"
)

// worldView is the frozen pre-tick picture of every collidable body. Physics
// resolution reads from it while the grid's live entities are mutated, so
// results do not depend on iteration order.
type worldView struct {
	grid      *Grid
	snapshots []Snapshot               // cell-major, insertion order
	spans     *intmap.Map[int, [2]int] // cell -> [start, end) into snapshots
	reach     float32                  // largest half-extent of any snapshot
}

// collidableView snapshots the collidable entities of the grid.
func (g *Grid) collidableView() *worldView {
	view := &worldView{
		grid:  g,
		spans: intmap.New[int, [2]int](64),
	}

	for cell, ids := range g.cells {
		start := len(view.snapshots)
		for _, id := range ids {
			entity := g.entity(id)
			if !entity.Collidable {
				continue
			}
			view.snapshots = append(view.snapshots, entity.Snapshot())
			view.reach = max(view.reach, entity.Width/2, entity.Height/2)
		}
		if end := len(view.snapshots); end > start {
			view.spans.Put(cell, [2]int{start, end})
		}
	}

	return view
}

// near appends to buf the snapshots that entity could touch this tick.
func (v *worldView) near(entity *Entity, gravity Vec2, buf []Snapshot) []Snapshot {
	if len(v.snapshots) == 0 {
		return buf
	}

	// Vertical speed is clamped by Update; horizontal speed is not.
	velocity := entity.Velocity()
	pending := entity.pendingForce()
	speed := abs32(velocity.X) + abs32(pending.X) + abs32(gravity.X) + TerminalVelocity + abs32(gravity.Y)
	margin := v.reach + speed + max(v.grid.cellWidth, v.grid.cellHeight)
	area := entity.Bounds().Expand(margin)

	minX, minY := v.grid.rawCell(Vec2{X: area.X, Y: area.Y})
	maxX, maxY := v.grid.rawCell(Vec2{X: area.Right(), Y: area.Bottom()})
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, v.grid.width-1), min(maxY, v.grid.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			span, ok := v.spans.Get(y*v.grid.width + x)
			if !ok {
				continue
			}
			for _, snapshot := range v.snapshots[span[0]:span[1]] {
				if snapshot.Id != entity.id {
					buf = append(buf, snapshot)
				}
			}
		}
	}
	return buf
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
