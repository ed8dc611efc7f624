package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/ledge/sim"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Bodies   int
	Floors   int
	Realtime bool
	// Entities counts everything in the world once populated, level
	// platforms included.
	Entities int

	// Results
	Ticks          sim.TickStats
	TotalTime      time.Duration
	UpdateTime     Stats
	World          sim.WorldStats
	Evicted        int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Finish records the final world statistics and how many entities left the
// world during the run.
func (r *Report) Finish(stats sim.WorldStats) {
	r.World = stats
	r.Evicted = r.Entities - stats.EntityCount
}

// TickTime picks the per-tick timing for the mode the test ran in.
func (r *Report) TickTime() Stats {
	if r.Realtime {
		return Stats{Min: r.Ticks.MinDuration, Max: r.Ticks.MaxDuration, Avg: r.Ticks.AvgDuration}
	}
	return r.UpdateTime
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Platformer Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Bodies:** {{.Bodies}}
- **Floor Platforms:** {{.Floors}}
- **Mode:** {{if .Realtime}}fixed rate{{else}}flat out{{end}}

## Performance Results
- **Total Ticks:** {{.Ticks.Count}}{{if .Ticks.Dropped}} ({{.Ticks.Dropped}} dropped){{end}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## World
- **Entities:** {{.World.EntityCount}} ({{.World.CollidableCount}} collidable)
- **Standing / Falling:** {{.World.StandingCount}} / {{.World.FallingCount}}
- **Evicted:** {{.Evicted}}
- **Occupied Cells:** {{.World.OccupiedCells}} of {{mul .World.GridWidth .World.GridHeight}} (max {{.World.MaxCellOccupancy}} per cell)

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc | mb}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc | mb}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys | mb}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"mul": func(a, b int) int {
			return a * b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
