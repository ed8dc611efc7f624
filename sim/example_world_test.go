package sim_test

import (
	"fmt"
	"image/color"
	"time"

	"github.com/plus3/ledge/sim"
)

// ExampleWorld drops a body onto a platform and lets it settle. Each Tick
// integrates every body against the same pre-tick snapshot and then moves
// identities between grid cells.
func ExampleWorld() {
	world, err := sim.NewWorld(sim.Settings{
		Gravity:    0.15,
		Width:      200,
		Height:     200,
		CellWidth:  50,
		CellHeight: 50,
	}, sim.NewEntityBuilder())
	if err != nil {
		panic(err)
	}

	world.AddLevel(sim.Level{
		Platforms: []sim.PlatformData{
			{X: 100, Y: 125, Width: 100, Height: 50, Kind: sim.KindPlatform, Color: color.RGBA{G: 255, A: 255}},
		},
	})
	world.SetLogger(discardLogger())
	if err := world.LoadLevel(0); err != nil {
		panic(err)
	}

	player := sim.NewPlayer(world.Builder(), 100, 50, 20, 20, nil)
	if err := world.Spawn(player); err != nil {
		panic(err)
	}

	for range 100 {
		world.Tick()
	}

	entity, _ := world.Get(player.Id())
	x, y, _ := world.Grid().Locate(player.Id())
	fmt.Printf("position (%.1f, %.1f) %s\n", entity.Position.X, entity.Position.Y, entity.State)
	fmt.Printf("cell (%d, %d)\n", x, y)

	// Output:
	// position (100.0, 90.0) standing
	// cell (2, 1)
}

// ExampleGrid_Query shows that only the cells overlapping the rectangle are
// consulted.
func ExampleGrid_Query() {
	grid, _ := sim.NewGrid(10, 10, 5, 5)
	builder := sim.NewEntityBuilder()
	_ = grid.Insert(builder.Create().Location(3, 3).Build())

	near, _ := grid.Query(sim.Rect{X: 0, Y: 0, W: 5, H: 5})
	far, _ := grid.Query(sim.Rect{X: 6, Y: 6, W: 2, H: 2})
	fmt.Println(len(near), len(far))

	// Output:
	// 1 0
}

// ExampleStepper converts frame time into fixed ticks and reports how far
// the renderer should extrapolate.
func ExampleStepper() {
	stepper := sim.NewStepper(50)
	ticker := &countingTicker{}

	for _, frame := range []time.Duration{16 * time.Millisecond, 16 * time.Millisecond, 16 * time.Millisecond} {
		ran := stepper.Frame(frame, ticker)
		fmt.Printf("ticks=%d lag=%.2f\n", ran, stepper.Lag())
	}

	// Output:
	// ticks=0 lag=0.80
	// ticks=1 lag=0.60
	// ticks=1 lag=0.40
}
