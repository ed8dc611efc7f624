package debugui

import "github.com/plus3/ledge/sim"

// NewDebugOverlay builds an overlay with the stats window, the cell viewer and
// the entity browser wired together: clicking a cell filters the browser.
func NewDebugOverlay(world *sim.World, stepper *sim.Stepper) *Overlay {
	timer := NewFrameTimer()
	stats := NewWorldStatsWindow(120)
	cells := NewCellViewer()
	browser := NewEntityBrowser(100)

	overlay := &Overlay{}
	overlay.Add(func() {
		stats.Render(world, stepper, timer.GetDeltaTime())
	})
	overlay.Add(func() {
		if cell := cells.Render(world); cell != nil {
			browser.FilterCell(cell)
		}
	})
	overlay.Add(func() {
		browser.Render(world)
	})
	return overlay
}
