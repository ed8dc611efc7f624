package sim_test

import (
	"errors"
	"testing"

	"github.com/plus3/ledge/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid(t *testing.T) (*sim.Grid, *sim.EntityBuilder) {
	t.Helper()

	grid, err := sim.NewGrid(10, 10, 5, 5)
	require.NoError(t, err)
	return grid, sim.NewEntityBuilder()
}

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height float32
		cell          float32
		wantW, wantH  int
		wantErr       bool
	}{
		{"exact", 10, 10, 5, 2, 2, false},
		{"partial cells dropped", 12, 19, 5, 2, 3, false},
		{"default world", 5000, 5000, 50, 100, 100, false},
		{"zero cell", 10, 10, 0, 0, 0, true},
		{"world smaller than cell", 4, 10, 5, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := sim.NewGrid(tt.width, tt.height, tt.cell, tt.cell)
			if tt.wantErr {
				assert.ErrorIs(t, err, sim.ErrInvalidSettings)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, grid.Width())
			assert.Equal(t, tt.wantH, grid.Height())
		})
	}
}

func TestGridQuery(t *testing.T) {
	grid, builder := newTestGrid(t)
	require.NoError(t, grid.Insert(builder.Create().Location(3, 3).Build()))

	found, err := grid.Query(sim.Rect{X: 0, Y: 0, W: 5, H: 5})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = grid.Query(sim.Rect{X: 6, Y: 6, W: 2, H: 2})
	require.NoError(t, err)
	assert.Empty(t, found)

	t.Run("overhanging rect is clipped", func(t *testing.T) {
		found, err := grid.Query(sim.Rect{X: -100, Y: -100, W: 1000, H: 1000})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("rect entirely outside", func(t *testing.T) {
		_, err := grid.Query(sim.Rect{X: 20, Y: 20, W: 5, H: 5})
		assert.ErrorIs(t, err, sim.ErrCellOutOfBounds)

		_, err = grid.Query(sim.Rect{X: -30, Y: 0, W: 5, H: 5})
		assert.ErrorIs(t, err, sim.ErrCellOutOfBounds)
	})
}

func TestGridInsertionOrder(t *testing.T) {
	grid, builder := newTestGrid(t)

	first := builder.Create().Location(1, 1).Size(1, 1).Build()
	second := builder.Create().Location(3, 3).Size(1, 1).Build()
	require.NoError(t, grid.Insert(first))
	require.NoError(t, grid.Insert(second))

	found, err := grid.Query(sim.Rect{X: 0, Y: 0, W: 4, H: 4})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, first.Id(), found[0].Id())
	assert.Equal(t, second.Id(), found[1].Id())

	ids, err := grid.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []sim.EntityId{first.Id(), second.Id()}, ids)
}

func TestGridInsertErrors(t *testing.T) {
	grid, builder := newTestGrid(t)

	t.Run("out of bounds", func(t *testing.T) {
		err := grid.Insert(builder.Create().Location(11, 3).Build())
		require.Error(t, err)
		assert.ErrorIs(t, err, sim.ErrCellOutOfBounds)

		var oob *sim.CellOutOfBoundsError
		require.True(t, errors.As(err, &oob))
		assert.Equal(t, 2, oob.X)
		assert.Equal(t, 0, oob.Y)

		err = grid.Insert(builder.Create().Location(-1, 3).Build())
		assert.ErrorIs(t, err, sim.ErrCellOutOfBounds)
		assert.Equal(t, 0, grid.Len())
	})

	t.Run("duplicate identity", func(t *testing.T) {
		entity := builder.Create().Location(1, 1).Build()
		require.NoError(t, grid.Insert(entity))
		assert.ErrorIs(t, grid.Insert(entity), sim.ErrDuplicateEntity)
		assert.Equal(t, 1, grid.Len())
	})
}

func TestGridRelocate(t *testing.T) {
	grid, builder := newTestGrid(t)
	entity := builder.Create().Location(2, 2).Build()
	require.NoError(t, grid.Insert(entity))

	t.Run("across a boundary", func(t *testing.T) {
		live, ok := grid.Get(entity.Id())
		require.True(t, ok)
		old := live.Position
		live.Position = sim.Vec2{X: 2, Y: 7}

		require.NoError(t, grid.Relocate(entity.Id(), old, live.Position))

		ids, _ := grid.Cell(0, 0)
		assert.NotContains(t, ids, entity.Id())
		ids, _ = grid.Cell(0, 1)
		assert.Contains(t, ids, entity.Id())

		x, y, ok := grid.Locate(entity.Id())
		require.True(t, ok)
		assert.Equal(t, 0, x)
		assert.Equal(t, 1, y)
	})

	t.Run("within a cell", func(t *testing.T) {
		require.NoError(t, grid.Relocate(entity.Id(), sim.Vec2{X: 2, Y: 7}, sim.Vec2{X: 3, Y: 8}))
		ids, _ := grid.Cell(0, 1)
		assert.Equal(t, []sim.EntityId{entity.Id()}, ids)
	})

	t.Run("outside the grid", func(t *testing.T) {
		err := grid.Relocate(entity.Id(), sim.Vec2{X: 2, Y: 7}, sim.Vec2{X: 2, Y: 12})
		assert.ErrorIs(t, err, sim.ErrCellOutOfBounds)

		x, y, ok := grid.Locate(entity.Id())
		require.True(t, ok)
		assert.Equal(t, 0, x)
		assert.Equal(t, 1, y)
	})

	t.Run("unknown identity", func(t *testing.T) {
		err := grid.Relocate(999, sim.Vec2{X: 2, Y: 2}, sim.Vec2{X: 7, Y: 7})
		assert.ErrorIs(t, err, sim.ErrEntityNotFound)
	})
}

func TestGridRemove(t *testing.T) {
	grid, builder := newTestGrid(t)

	a := builder.Create().Location(1, 1).Build()
	b := builder.Create().Location(2, 2).Build()
	c := builder.Create().Location(3, 3).Build()
	for _, e := range []sim.Entity{a, b, c} {
		require.NoError(t, grid.Insert(e))
	}

	removed, err := grid.Remove(b.Id())
	require.NoError(t, err)
	assert.Equal(t, b.Id(), removed.Id())
	assert.Equal(t, 2, grid.Len())

	ids, _ := grid.Cell(0, 0)
	assert.Equal(t, []sim.EntityId{a.Id(), c.Id()}, ids)

	_, ok := grid.Get(b.Id())
	assert.False(t, ok)

	_, err = grid.Remove(b.Id())
	assert.ErrorIs(t, err, sim.ErrEntityNotFound)

	// freed slot is reused without disturbing live pointers
	live, _ := grid.Get(a.Id())
	require.NoError(t, grid.Insert(builder.Create().Location(8, 8).Build()))
	again, _ := grid.Get(a.Id())
	assert.Same(t, live, again)
}

func TestGridSnapshot(t *testing.T) {
	grid, builder := newTestGrid(t)
	entity := builder.Create().
		Location(2, 2).
		Size(1, 1).
		Collidable(true).
		PhysicsBehavior(sim.StaticBody{}).
		Build()
	require.NoError(t, grid.Insert(entity))

	snapshots := grid.Snapshot()
	require.Len(t, snapshots, 1)

	live, _ := grid.Get(entity.Id())
	live.Position = sim.Vec2{X: 4, Y: 4}

	assert.Equal(t, sim.Vec2{X: 2, Y: 2}, snapshots[0].Position)
	assert.True(t, snapshots[0].Collidable)
	assert.Equal(t, entity.Id(), snapshots[0].Id)
}

func TestGridCellCopy(t *testing.T) {
	grid, builder := newTestGrid(t)
	require.NoError(t, grid.Insert(builder.Create().Location(1, 1).Build()))

	ids, err := grid.Cell(0, 0)
	require.NoError(t, err)
	ids[0] = 42

	again, _ := grid.Cell(0, 0)
	assert.Equal(t, sim.EntityId(0), again[0])

	_, err = grid.Cell(2, 0)
	assert.ErrorIs(t, err, sim.ErrCellOutOfBounds)
}

func TestGridAllOrder(t *testing.T) {
	grid, builder := newTestGrid(t)

	late := builder.Create().Location(8, 8).Build()  // cell (1,1)
	early := builder.Create().Location(1, 1).Build() // cell (0,0)
	mid := builder.Create().Location(8, 1).Build()   // cell (1,0)
	for _, e := range []sim.Entity{late, early, mid} {
		require.NoError(t, grid.Insert(e))
	}

	var ids []sim.EntityId
	for _, e := range grid.All() {
		ids = append(ids, e.Id())
	}
	assert.Equal(t, []sim.EntityId{early.Id(), mid.Id(), late.Id()}, ids)
}
