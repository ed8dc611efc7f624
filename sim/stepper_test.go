package sim_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/ledge/sim"
	"github.com/stretchr/testify/assert"
)

func TestStepper(t *testing.T) {
	t.Run("accumulates partial ticks", func(t *testing.T) {
		stepper := sim.NewStepper(50)
		assert.Equal(t, 20*time.Millisecond, stepper.Step())

		assert.Equal(t, 0, stepper.Advance(10*time.Millisecond))
		assert.Equal(t, float32(0.5), stepper.Lag())

		assert.Equal(t, 2, stepper.Advance(40*time.Millisecond))
		assert.Equal(t, float32(0.5), stepper.Lag())

		assert.Equal(t, 1, stepper.Advance(10*time.Millisecond))
		assert.Equal(t, float32(0), stepper.Lag())
	})

	t.Run("negative elapsed is ignored", func(t *testing.T) {
		stepper := sim.NewStepper(50)
		assert.Equal(t, 0, stepper.Advance(-time.Second))
		assert.Equal(t, float32(0), stepper.Lag())
	})

	t.Run("max ticks per frame drops the surplus", func(t *testing.T) {
		stepper := sim.NewStepper(50)
		stepper.MaxTicksPerFrame = 3

		assert.Equal(t, 3, stepper.Advance(time.Second+5*time.Millisecond))
		assert.Equal(t, float32(0.25), stepper.Lag())
		assert.Equal(t, int64(47), stepper.Stats().Dropped)
	})

	t.Run("default rate", func(t *testing.T) {
		assert.Equal(t, time.Second/sim.DefaultUpdatesPerSecond, sim.NewStepper(0).Step())
	})
}

func TestStepperFrame(t *testing.T) {
	stepper := sim.NewStepper(100)
	ticker := &countingTicker{}

	assert.Equal(t, 3, stepper.Frame(35*time.Millisecond, ticker))
	assert.Equal(t, 3, ticker.ticks)

	stats := stepper.Stats()
	assert.Equal(t, int64(3), stats.Count)
	assert.LessOrEqual(t, stats.MinDuration, stats.MaxDuration)
	assert.Equal(t, stats.TotalDuration/3, stats.AvgDuration)

	empty := sim.NewStepper(100).Stats()
	assert.Equal(t, time.Duration(0), empty.MinDuration)
	assert.Equal(t, time.Duration(0), empty.AvgDuration)
}

func TestStepperRun(t *testing.T) {
	stepper := sim.NewStepper(100)
	ticker := &countingTicker{}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	stepper.Run(ctx, ticker)

	assert.Greater(t, ticker.ticks, 0)
	assert.Equal(t, int64(ticker.ticks), stepper.Stats().Count)
}

func TestCamera(t *testing.T) {
	camera := sim.NewCamera(640, 360, 1280, 720)
	assert.Equal(t, sim.Rect{X: 0, Y: 0, W: 1280, H: 720}, camera.Rect())

	camera.Follow(sim.Vec2{X: 50, Y: 50})
	assert.Equal(t, sim.Rect{X: -590, Y: -310, W: 1280, H: 720}, camera.Rect())
	assert.Equal(t, sim.Vec2{X: 640, Y: 360}, camera.ToScreen(sim.Vec2{X: 50, Y: 50}))
}
