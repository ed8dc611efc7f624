package sim_test

import (
	"image/color"
	"testing"

	"github.com/plus3/ledge/sim"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// newTestWorld creates a world whose log output is captured by the returned hook.
func newTestWorld(t testing.TB, width, height, cell, gravity float32) (*sim.World, *test.Hook) {
	t.Helper()

	world, err := sim.NewWorld(sim.Settings{
		Gravity:    gravity,
		Width:      width,
		Height:     height,
		CellWidth:  cell,
		CellHeight: cell,
	}, sim.NewEntityBuilder())
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	world.SetLogger(logger)
	return world, hook
}

func spawnPlatform(t testing.TB, world *sim.World, x, y, w, h float32) sim.EntityId {
	t.Helper()

	platform := world.Builder().Create().
		Location(x, y).
		Size(w, h).
		Collidable(true).
		PhysicsBehavior(sim.StaticBody{}).
		RenderBehavior(sim.RectRender{Color: color.White}).
		Build()
	require.NoError(t, world.Spawn(platform))
	return platform.Id()
}

func spawnBody(t testing.TB, world *sim.World, x, y, w, h float32) sim.EntityId {
	t.Helper()

	body := sim.NewPlayer(world.Builder(), x, y, w, h, sim.PointRender{Radius: w / 2, Color: color.White})
	require.NoError(t, world.Spawn(body))
	return body.Id()
}

type drawCall struct {
	kind   string
	center sim.Vec2
	rect   sim.Rect
}

// recordingCanvas remembers every primitive drawn on it.
type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) FillCircle(center sim.Vec2, _ float32, _ color.Color) {
	c.calls = append(c.calls, drawCall{kind: "circle", center: center})
}

func (c *recordingCanvas) FillRect(r sim.Rect, _ color.Color) {
	c.calls = append(c.calls, drawCall{kind: "fill", rect: r, center: r.Center()})
}

func (c *recordingCanvas) StrokeRect(r sim.Rect, _ float32, _ color.Color) {
	c.calls = append(c.calls, drawCall{kind: "stroke", rect: r, center: r.Center()})
}

type countingTicker struct {
	ticks int
}

func (c *countingTicker) Tick() { c.ticks++ }

func discardLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}
