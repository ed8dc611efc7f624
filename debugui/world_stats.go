package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ledge/sim"
)

func NewWorldStatsWindow(historyFrames int) *WorldStatsWindow {
	return &WorldStatsWindow{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		tickHistory:   make([]float32, historyFrames),
		frameIndex:    0,
	}
}

// Record stores one frame's timings in the history ring.
func (ws *WorldStatsWindow) Record(deltaTime float32, ticks sim.TickStats) {
	ws.frameHistory[ws.frameIndex] = deltaTime * 1000.0
	ws.tickHistory[ws.frameIndex] = float32(ticks.LastDuration.Microseconds()) / 1000.0
	ws.frameIndex = (ws.frameIndex + 1) % ws.historyFrames
}

// AvgFrameTime returns the mean recorded frame time in milliseconds.
func (ws *WorldStatsWindow) AvgFrameTime() float32 {
	var avgFrameTime float32
	for _, ft := range ws.frameHistory {
		avgFrameTime += ft
	}
	return avgFrameTime / float32(ws.historyFrames)
}

func (ws *WorldStatsWindow) Render(world *sim.World, stepper *sim.Stepper, deltaTime float32) {
	ticks := stepper.Stats()
	ws.Record(deltaTime, ticks)

	if !imgui.BeginV("World Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := world.CollectStats()

	imgui.Text(fmt.Sprintf("Level: %d / %d", world.CurrentLevel()+1, len(world.Levels())))
	imgui.Text(fmt.Sprintf("Entities: %d (%d collidable)", stats.EntityCount, stats.CollidableCount))
	imgui.Text(fmt.Sprintf("Standing: %d  Falling: %d", stats.StandingCount, stats.FallingCount))
	imgui.Text(fmt.Sprintf("Grid: %dx%d, %d occupied, max %d per cell", stats.GridWidth, stats.GridHeight, stats.OccupiedCells, stats.MaxCellOccupancy))

	avgFrameTime := ws.AvgFrameTime()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Ticks: %d (%d dropped)", ticks.Count, ticks.Dropped))
	imgui.Text(fmt.Sprintf("Tick Time: avg %s  min %s  max %s", ticks.AvgDuration, ticks.MinDuration, ticks.MaxDuration))
	imgui.Text(fmt.Sprintf("Lag: %.2f", stepper.Lag()))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ws.frameHistory[0], int32(len(ws.frameHistory)))
	imgui.Text("Last Tick Graph (ms)")
	imgui.PlotLinesFloatPtr("##ticktime", &ws.tickHistory[0], int32(len(ws.tickHistory)))

	if imgui.TreeNodeStr("Settings") {
		settings := world.Settings()
		imgui.BulletText(fmt.Sprintf("Gravity: %.3f", settings.Gravity))
		imgui.BulletText(fmt.Sprintf("World: %.0fx%.0f", settings.Width, settings.Height))
		imgui.BulletText(fmt.Sprintf("Cell: %.0fx%.0f", settings.CellWidth, settings.CellHeight))
		imgui.BulletText(fmt.Sprintf("Step: %s", stepper.Step()))
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
