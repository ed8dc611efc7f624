package sim_test

import (
	"testing"

	"github.com/plus3/ledge/sim"
	"github.com/stretchr/testify/assert"
)

func platformSnapshot(id sim.EntityId, x, y, w, h float32) sim.Snapshot {
	return sim.Snapshot{
		Id:         id,
		Position:   sim.Vec2{X: x, Y: y},
		Width:      w,
		Height:     h,
		Collidable: true,
	}
}

func TestFreeBodyTerminalVelocity(t *testing.T) {
	tests := []struct {
		name  string
		force float32
		want  float32
	}{
		{"falling", 100, sim.TerminalVelocity},
		{"rising", -100, -sim.TerminalVelocity},
		{"below limit", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := &sim.FreeBody{}
			pos := sim.Vec2{}
			state := sim.StateFalling

			body.ApplyForce(sim.Vec2{Y: tt.force})
			body.Update(&pos, 1, 1, nil, &state)

			assert.Equal(t, tt.want, body.Velocity().Y)
			assert.Equal(t, tt.want, pos.Y)
		})
	}

	t.Run("sustained force", func(t *testing.T) {
		body := &sim.FreeBody{}
		pos := sim.Vec2{}
		state := sim.StateFalling

		for range 100 {
			body.ApplyForce(sim.Vec2{Y: 1})
			body.Update(&pos, 1, 1, nil, &state)
			assert.LessOrEqual(t, body.Velocity().Y, sim.TerminalVelocity)
		}
	})
}

func TestFreeBodyLanding(t *testing.T) {
	body := &sim.FreeBody{}
	pos := sim.Vec2{X: 0, Y: 0}
	state := sim.StateFalling
	platform := platformSnapshot(1, 0, 18, 40, 10)

	body.ApplyForce(sim.Vec2{Y: 20})
	body.Update(&pos, 10, 10, []sim.Snapshot{platform}, &state)

	assert.Equal(t, platform.Position.Y-platform.Height/2-5, pos.Y)
	assert.Equal(t, float32(8), pos.Y)
	assert.Equal(t, sim.Vec2{}, body.Velocity())
	assert.Equal(t, sim.StateStanding, state)

	t.Run("stays standing while supported", func(t *testing.T) {
		body.Update(&pos, 10, 10, []sim.Snapshot{platform}, &state)
		assert.Equal(t, float32(8), pos.Y)
		assert.Equal(t, sim.StateStanding, state)
	})

	t.Run("falls once support is gone", func(t *testing.T) {
		body.Update(&pos, 10, 10, nil, &state)
		assert.Equal(t, sim.StateFalling, state)
	})
}

func TestFreeBodySideOverlap(t *testing.T) {
	body := &sim.FreeBody{}
	pos := sim.Vec2{}
	state := sim.StateFalling
	wall := platformSnapshot(1, 12, 0, 10, 10)

	body.ApplyForce(sim.Vec2{X: 5})
	body.Update(&pos, 10, 10, []sim.Snapshot{wall}, &state)

	assert.Equal(t, sim.Vec2{X: 5, Y: 0}, pos)
	assert.Equal(t, sim.Vec2{}, body.Velocity())
	assert.Equal(t, sim.StateFalling, state)
}

func TestFreeBodyIgnoresNonCollidable(t *testing.T) {
	body := &sim.FreeBody{}
	pos := sim.Vec2{}
	state := sim.StateFalling
	ghost := platformSnapshot(1, 0, 18, 40, 10)
	ghost.Collidable = false

	body.ApplyForce(sim.Vec2{Y: 10})
	body.Update(&pos, 10, 10, []sim.Snapshot{ghost}, &state)

	assert.Equal(t, float32(10), pos.Y)
	assert.Equal(t, float32(10), body.Velocity().Y)
}

func TestFreeBodyForceIsPerTick(t *testing.T) {
	body := &sim.FreeBody{}
	pos := sim.Vec2{}
	state := sim.StateFalling

	body.ApplyForce(sim.Vec2{X: 1, Y: 1})
	body.Update(&pos, 1, 1, nil, &state)
	body.Update(&pos, 1, 1, nil, &state)

	assert.Equal(t, sim.Vec2{X: 1, Y: 1}, body.Velocity())
	assert.Equal(t, sim.Vec2{X: 2, Y: 2}, pos)
}

func TestStaticBody(t *testing.T) {
	body := sim.StaticBody{}
	pos := sim.Vec2{X: 3, Y: 4}
	state := sim.StateNone

	body.ApplyForce(sim.Vec2{Y: 100})
	body.Update(&pos, 1, 1, []sim.Snapshot{platformSnapshot(1, 3, 4, 10, 10)}, &state)

	assert.Equal(t, sim.Vec2{X: 3, Y: 4}, pos)
	assert.Equal(t, sim.StateNone, state)
	assert.Equal(t, sim.Vec2{}, body.Velocity())
}

func TestRectOverlaps(t *testing.T) {
	a := sim.Rect{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, a.Overlaps(sim.Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.False(t, a.Overlaps(sim.Rect{X: 10, Y: 0, W: 10, H: 10}), "shared edge")
	assert.False(t, a.Overlaps(sim.Rect{X: 0, Y: 20, W: 10, H: 10}))
	assert.Equal(t, sim.Rect{X: -5, Y: -5, W: 10, H: 10}, sim.CenteredRect(sim.Vec2{}, 10, 10))
}
