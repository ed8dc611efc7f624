package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/ledge/config"
	"github.com/plus3/ledge/internal/logger"
	"github.com/plus3/ledge/sim"
	"github.com/sirupsen/logrus"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	bodyCount := flag.Int("bodies", 10000, "The number of falling bodies to spawn.")
	configPath := flag.String("config", "", "Optional YAML world config. Defaults to the built-in world.")
	seed := flag.Uint64("seed", 1, "Seed for body placement.")
	realtime := flag.Bool("realtime", false, "Tick at the configured rate instead of as fast as possible.")
	profileMode := flag.String("profile", "", "Write a profile: cpu or mem.")
	profileDir := flag.String("profile-dir", ".", "Directory for profile output.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log := logger.New()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(*profileDir), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.WithError(err).Fatal("failed to load config")
		}
	}

	log.Info("Starting stress test...")

	world, err := cfg.NewWorld(sim.NewEntityBuilder())
	if err != nil {
		log.WithError(err).Fatal("failed to build world")
	}
	world.SetLogger(log)

	log.WithField("bodies", *bodyCount).Info("Populating world...")
	floors, spawned := populate(world, rand.New(rand.NewPCG(*seed, *seed)), *bodyCount)
	log.WithFields(logrus.Fields{"floors": floors, "bodies": spawned}).Info("Population complete.")

	report := &Report{
		Duration:       *duration,
		Bodies:         spawned,
		Floors:         floors,
		Realtime:       *realtime,
		Entities:       world.Grid().Len(),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.WithField("duration", *duration).Info("Running simulation...")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if *realtime {
		stepper := cfg.NewStepper()
		stepper.Run(ctx, world)
		report.Ticks = stepper.Stats()
	} else {
		runFlat(ctx, world, report)
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Finish(world.CollectStats())
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

// runFlat ticks as fast as possible until ctx is done, sampling every tick.
func runFlat(ctx context.Context, world *sim.World, report *Report) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			updateStart := time.Now()
			world.Tick()
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.Ticks.Count++
		}
	}
}

// populate lays a row of floor platforms along the bottom of the world and
// scatters bodies above them. It returns the number of floors and bodies
// actually inserted.
func populate(world *sim.World, rng *rand.Rand, bodies int) (int, int) {
	settings := world.Settings()
	builder := world.Builder()
	floorY := settings.Height - 2*settings.CellHeight

	floors := 0
	for x := settings.CellWidth; x < settings.Width; x += 4 * settings.CellWidth {
		platform := builder.Create().
			Location(x, floorY).
			Size(3*settings.CellWidth, settings.CellHeight).
			Collidable(true).
			PhysicsBehavior(sim.StaticBody{}).
			Build()
		if world.Spawn(platform) == nil {
			floors++
		}
	}

	spawned := 0
	for range bodies {
		x := rng.Float32() * settings.Width
		y := rng.Float32() * (floorY - 2*settings.CellHeight)
		body := sim.NewPlayer(builder, x, y, settings.CellWidth/2, settings.CellHeight, nil)
		if world.Spawn(body) == nil {
			spawned++
		}
	}
	return floors, spawned
}
