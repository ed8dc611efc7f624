package sim

import (
	"context"
	"time"
)

// DefaultUpdatesPerSecond is the tick rate used when none is configured.
const DefaultUpdatesPerSecond = 50

// Ticker is anything that advances by one fixed step. *World implements it.
type Ticker interface {
	Tick()
}

// TickStats provides execution statistics for the ticks run by a Stepper.
type TickStats struct {
	Count         int64
	Dropped       int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// Stepper converts variable frame time into a whole number of fixed ticks.
// Leftover time carries over to the next frame and is exposed as Lag for
// render extrapolation.
type Stepper struct {
	// MaxTicksPerFrame caps how many ticks a single frame may run. Time beyond
	// the cap is discarded so a stalled frame cannot snowball. Zero disables
	// the cap.
	MaxTicksPerFrame int

	step        time.Duration
	accumulator time.Duration

	count         int64
	dropped       int64
	minDuration   time.Duration
	maxDuration   time.Duration
	lastDuration  time.Duration
	totalDuration time.Duration
}

// NewStepper creates a stepper ticking ups times per second. A non-positive
// rate falls back to DefaultUpdatesPerSecond.
func NewStepper(ups int) *Stepper {
	if ups <= 0 {
		ups = DefaultUpdatesPerSecond
	}
	return &Stepper{
		step:        time.Second / time.Duration(ups),
		minDuration: time.Duration(1<<63 - 1),
	}
}

// Step returns the fixed tick duration.
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Advance accumulates elapsed time and returns how many ticks are due.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		s.accumulator += elapsed
	}

	ticks := int(s.accumulator / s.step)
	s.accumulator -= time.Duration(ticks) * s.step

	if s.MaxTicksPerFrame > 0 && ticks > s.MaxTicksPerFrame {
		s.dropped += int64(ticks - s.MaxTicksPerFrame)
		ticks = s.MaxTicksPerFrame
	}
	return ticks
}

// Lag returns the fraction of a tick accumulated but not yet simulated, in
// [0, 1).
func (s *Stepper) Lag() float32 {
	return float32(s.accumulator) / float32(s.step)
}

// Frame advances by elapsed and runs every due tick on t, timing each one.
// It returns the number of ticks run.
func (s *Stepper) Frame(elapsed time.Duration, t Ticker) int {
	ticks := s.Advance(elapsed)
	for range ticks {
		start := time.Now()
		t.Tick()
		s.record(time.Since(start))
	}
	return ticks
}

func (s *Stepper) record(duration time.Duration) {
	s.count++
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

// Run drives t in real time until the context is cancelled.
func (s *Stepper) Run(ctx context.Context, t Ticker) {
	ticker := time.NewTicker(s.step)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(lastTime)
			lastTime = now
			s.Frame(elapsed, t)
		}
	}
}

// Stats returns statistics about the ticks run so far.
func (s *Stepper) Stats() TickStats {
	stats := TickStats{
		Count:         s.count,
		Dropped:       s.dropped,
		MaxDuration:   s.maxDuration,
		LastDuration:  s.lastDuration,
		TotalDuration: s.totalDuration,
	}
	if s.count > 0 {
		stats.MinDuration = s.minDuration
		stats.AvgDuration = s.totalDuration / time.Duration(s.count)
	}
	return stats
}
